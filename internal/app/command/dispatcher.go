package command

import (
	"context"
	"fmt"
	"strings"

	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"
	"block_scanner/internal/pkg/metrics"
)

// ChartImageName is the file name attached to chart replies.
const ChartImageName = "portfolio.png"

// Reply is what a command sends back to the chat.
type Reply struct {
	Text      string `json:"text"`
	Image     []byte `json:"image,omitempty"`
	ImageName string `json:"imageName,omitempty"`
}

type handlerFunc func(ctx context.Context, args []string) (Reply, error)

type command struct {
	usage   string
	minArgs int
	run     handlerFunc
}

// Dispatcher parses chat lines and routes them to the services.
type Dispatcher struct {
	prefix    string
	scanner   port.ScannerService
	portfolio port.PortfolioService
	logger    port.Logger
	commands  map[string]command
}

// NewDispatcher creates a dispatcher recognizing lines that start with prefix.
func NewDispatcher(prefix string, scanner port.ScannerService, portfolio port.PortfolioService, l port.Logger) *Dispatcher {
	d := &Dispatcher{prefix: prefix, scanner: scanner, portfolio: portfolio, logger: l}
	d.commands = map[string]command{
		"hello":        {run: d.hello},
		"help":         {run: d.help},
		"balance":      {usage: "balance <address|name>", minArgs: 1, run: d.balance},
		"balancemulti": {usage: "balancemulti <address|name> [address|name ...]", minArgs: 1, run: d.balanceMulti},
		"gas":          {run: d.gas},
		"eth":          {run: d.ethPrice},
		"ethsupply":    {run: d.ethSupply},
		"blockreward":  {usage: "blockreward <block number>", minArgs: 1, run: d.blockReward},
		"blocksmined":  {usage: "blocksmined <address|name>", minArgs: 1, run: d.blocksMined},
		"ens":          {usage: "ens <name>", minArgs: 1, run: d.ens},
		"portfolio":    {usage: "portfolio <address|name>", minArgs: 1, run: d.portfolioText},
		"portfoliopic": {usage: "portfoliopic <address|name>", minArgs: 1, run: d.portfolioChart},
	}
	return d
}

// HandleLine executes a chat line. ok is false when the line is not addressed to the bot.
func (d *Dispatcher) HandleLine(ctx context.Context, line string) (reply Reply, ok bool) {
	if !strings.HasPrefix(line, d.prefix) {
		return Reply{}, false
	}
	fields := strings.Fields(strings.TrimPrefix(line, d.prefix))
	if len(fields) == 0 {
		return d.Execute(ctx, "help", nil), true
	}
	return d.Execute(ctx, fields[0], fields[1:]), true
}

// Execute runs a single command. Failures are turned into a text reply; a ScanError
// contributes its message verbatim, any other error is shown as "Error: <err>".
func (d *Dispatcher) Execute(ctx context.Context, name string, args []string) (reply Reply) {
	name = strings.ToLower(name)
	cmd, ok := d.commands[name]
	if !ok {
		metrics.ObserveCommand("unknown", "rejected")
		return Reply{Text: fmt.Sprintf("Unknown command %q. Try %shelp", name, d.prefix)}
	}
	if len(args) < cmd.minArgs {
		metrics.ObserveCommand(name, "rejected")
		return Reply{Text: "Usage: " + d.prefix + cmd.usage}
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Command panicked", "command", name, "panic", r)
			metrics.ObserveCommand(name, "error")
			reply = Reply{Text: "Error: internal error"}
		}
	}()

	reply, err := cmd.run(ctx, args)
	if err != nil {
		outcome := "error"
		if se, ok := entity.AsScanError(err); ok {
			outcome = se.Kind.String()
			d.logger.Info("Command finished without data", "command", name, "kind", outcome, "error", err)
		} else {
			d.logger.Error("Command failed", "command", name, "error", err)
		}
		metrics.ObserveCommand(name, outcome)
		return Reply{Text: ErrorText(err)}
	}

	metrics.ObserveCommand(name, "ok")
	return reply
}

// ErrorText renders err for the user.
func ErrorText(err error) string {
	if se, ok := entity.AsScanError(err); ok {
		return se.Message
	}
	return "Error: " + err.Error()
}

func textReply(text string, err error) (Reply, error) {
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text}, nil
}

func (d *Dispatcher) hello(context.Context, []string) (Reply, error) {
	return Reply{Text: "Hi"}, nil
}

func (d *Dispatcher) help(context.Context, []string) (Reply, error) {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, line := range []string{
		"hello",
		"help",
		"balance <address|name>",
		"balancemulti <address|name> [address|name ...]",
		"gas",
		"eth",
		"ethsupply",
		"blockreward <block number>",
		"blocksmined <address|name>",
		"ens <name>",
		"portfolio <address|name>",
		"portfoliopic <address|name>",
	} {
		b.WriteString(d.prefix + line + "\n")
	}
	return Reply{Text: b.String()}, nil
}

func (d *Dispatcher) balance(ctx context.Context, args []string) (Reply, error) {
	return textReply(d.scanner.Balance(ctx, args[0]))
}

func (d *Dispatcher) balanceMulti(ctx context.Context, args []string) (Reply, error) {
	return textReply(d.scanner.BalanceMulti(ctx, args))
}

func (d *Dispatcher) gas(ctx context.Context, _ []string) (Reply, error) {
	return textReply(d.scanner.GasPrice(ctx))
}

func (d *Dispatcher) ethPrice(ctx context.Context, _ []string) (Reply, error) {
	return textReply(d.scanner.EthPrice(ctx))
}

func (d *Dispatcher) ethSupply(ctx context.Context, _ []string) (Reply, error) {
	return textReply(d.scanner.EthSupply(ctx))
}

func (d *Dispatcher) blockReward(ctx context.Context, args []string) (Reply, error) {
	return textReply(d.scanner.BlockReward(ctx, args[0]))
}

func (d *Dispatcher) blocksMined(ctx context.Context, args []string) (Reply, error) {
	return textReply(d.scanner.BlocksMined(ctx, args[0]))
}

func (d *Dispatcher) ens(ctx context.Context, args []string) (Reply, error) {
	return textReply(d.scanner.ResolveENS(ctx, args[0]))
}

func (d *Dispatcher) portfolioText(ctx context.Context, args []string) (Reply, error) {
	return textReply(d.portfolio.PortfolioText(ctx, args[0]))
}

func (d *Dispatcher) portfolioChart(ctx context.Context, args []string) (Reply, error) {
	chart, err := d.portfolio.PortfolioChart(ctx, args[0])
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: chart.Caption, Image: chart.Image, ImageName: ChartImageName}, nil
}
