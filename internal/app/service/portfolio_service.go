package service

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"unicode/utf8"

	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"
	"block_scanner/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// MsgNoChartData is the chart-mode reply when no priced token has a positive value.
const MsgNoChartData = "No ERC20 token balances found for the given address."

// PortfolioOptions holds the presentation settings of the portfolio pipeline.
type PortfolioOptions struct {
	MessageSizeLimit int
	ChartTopN        int
}

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	resolver *IdentifierResolver
	holdings port.TokenHoldings
	explorer port.BlockExplorer
	prices   *TokenPriceService
	renderer port.ChartRenderer
	network  entity.NetworkDefinition
	market   entity.MarketSnapshot
	opts     PortfolioOptions
	logger   port.Logger
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(
	resolver *IdentifierResolver,
	holdings port.TokenHoldings,
	explorer port.BlockExplorer,
	prices *TokenPriceService,
	renderer port.ChartRenderer,
	network entity.NetworkDefinition,
	market entity.MarketSnapshot,
	opts PortfolioOptions,
	l port.Logger,
) port.PortfolioService {
	if opts.ChartTopN <= 0 {
		opts.ChartTopN = 10
	}
	return &PortfolioServiceImpl{
		resolver: resolver,
		holdings: holdings,
		explorer: explorer,
		prices:   prices,
		renderer: renderer,
		network:  network,
		market:   market,
		opts:     opts,
		logger:   l,
	}
}

// PortfolioText renders every holding of identifier as a single message.
func (s *PortfolioServiceImpl) PortfolioText(ctx context.Context, identifier string) (string, error) {
	address, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return "", err
	}
	s.logger.Debug("Fetching portfolio", "address", address)

	snapshot, err := s.holdings.GetTokenBalances(ctx, address)
	if err != nil {
		return "", err
	}

	priced := s.prices.EnrichPrices(ctx, snapshot.Fungible)
	text := FormatPortfolioText(address, priced, snapshot.NonFungible)

	if s.opts.MessageSizeLimit > 0 && utf8.RuneCountInString(text) > s.opts.MessageSizeLimit {
		s.logger.Info("Portfolio reply too long, sending explorer link",
			"address", address, "kind", entity.KindPresentationOverflow.String(), "length", utf8.RuneCountInString(text))
		return OverflowMessage(s.network, address), nil
	}

	s.logger.Info("Portfolio rendered", "address", address, "fungible", len(priced), "nonFungible", len(snapshot.NonFungible))
	return text, nil
}

// PortfolioChart renders the top holdings of identifier by USD value.
func (s *PortfolioServiceImpl) PortfolioChart(ctx context.Context, identifier string) (*entity.PortfolioChart, error) {
	address, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// A holdings outcome takes precedence over a native-balance failure.
	var (
		snapshot    *entity.PortfolioSnapshot
		holdingsErr error
		wei         *big.Int
		balanceErr  error
		g           errgroup.Group
	)
	g.Go(func() error {
		snapshot, holdingsErr = s.holdings.GetTokenBalances(ctx, address)
		return nil
	})
	g.Go(func() error {
		wei, balanceErr = s.explorer.GetBalance(ctx, address)
		return nil
	})
	_ = g.Wait()

	if holdingsErr != nil {
		return nil, holdingsErr
	}
	if balanceErr != nil {
		return nil, fmt.Errorf("failed to fetch native balance: %w", balanceErr)
	}
	balance := utils.ToDecimal(wei, s.network.Decimals)

	priced := s.prices.EnrichPrices(ctx, snapshot.Fungible)
	native := entity.ChartSlice{
		Symbol:   s.network.NativeSymbol,
		ValueUSD: balance.Mul(s.market.NativeUSDPrice),
		IsNative: true,
	}

	slices := BuildChartSlices(priced, native, s.opts.ChartTopN)
	if !hasTokenSlice(slices) {
		s.logger.Info("No priced token balances for chart", "address", address)
		return nil, entity.NewScanError(entity.KindNoData, MsgNoChartData)
	}

	short := utils.ShortAddress(address)
	image, err := s.renderer.RenderPie("Portfolio for "+short, slices)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	s.logger.Info("Portfolio chart rendered", "address", address, "slices", len(slices), "bytes", len(image))
	return &entity.PortfolioChart{
		Address: address,
		Caption: fmt.Sprintf("Top ERC20 token balances for %s:", short),
		Slices:  slices,
		Image:   image,
	}, nil
}

// FormatPortfolioText builds the text-mode reply. Fungible lines read
// "SYMBOL: amount ($value)", with the value omitted when the price is unknown.
// Non-fungible lines carry the raw unscaled balance.
func FormatPortfolioText(address string, fungible []entity.PricedEntry, nonFungible []entity.BalanceEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Token balances for %s :\n", utils.ShortAddress(address))

	if len(fungible) > 0 {
		b.WriteString("\nERC20 Token Balances:\n")
		for _, p := range fungible {
			b.WriteString(p.Label())
			b.WriteString(": ")
			b.WriteString(utils.FormatAmount(p.Amount()))
			if value, ok := p.ValueUSD(); ok {
				b.WriteString(" ($" + value.StringFixed(2) + ")")
			}
			b.WriteString("\n")
		}
	}

	if len(nonFungible) > 0 {
		b.WriteString("\nNon-ERC20 Balances (Possibly NFTs):\n")
		for _, e := range nonFungible {
			fmt.Fprintf(&b, "%s: %s %s\n", e.ShortLabel(), e.RawBalanceString(), e.Symbol)
		}
	}

	return b.String()
}

// OverflowMessage is sent instead of a portfolio that exceeds the message size limit.
func OverflowMessage(network entity.NetworkDefinition, address string) string {
	return "Portfolio exceeds Discord's message limit. To see all balances : " + network.AddressURL(address)
}

// BuildChartSlices selects the chart slices: holdings with a positive USD value sorted
// descending, truncated to topN. A positive native slice that misses the cut is appended
// after the top N, so the result holds at most topN+1 slices.
func BuildChartSlices(priced []entity.PricedEntry, native entity.ChartSlice, topN int) []entity.ChartSlice {
	candidates := make([]entity.ChartSlice, 0, len(priced)+1)
	for _, p := range priced {
		value, ok := p.ValueUSD()
		if !ok || !value.IsPositive() {
			continue
		}
		candidates = append(candidates, entity.ChartSlice{Symbol: p.Label(), ValueUSD: value})
	}

	nativeIncluded := native.ValueUSD.IsPositive()
	if nativeIncluded {
		native.IsNative = true
		candidates = append(candidates, native)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ValueUSD.GreaterThan(candidates[j].ValueUSD)
	})

	if topN <= 0 || len(candidates) <= topN {
		return candidates
	}

	top := candidates[:topN:topN]
	if nativeIncluded && !hasNativeSlice(top) {
		top = append(top, native)
	}
	return top
}

func hasNativeSlice(slices []entity.ChartSlice) bool {
	for _, s := range slices {
		if s.IsNative {
			return true
		}
	}
	return false
}

func hasTokenSlice(slices []entity.ChartSlice) bool {
	for _, s := range slices {
		if !s.IsNative {
			return true
		}
	}
	return false
}
