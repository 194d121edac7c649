package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"
	"block_scanner/internal/pkg/utils"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

var weiPerGwei = big.NewInt(1_000_000_000)

// ScannerOptions holds the settings of the chain-data commands.
type ScannerOptions struct {
	MinedBlocksPageSize   int
	MaxConcurrentRoutines int
}

// ScannerServiceImpl implements port.ScannerService.
type ScannerServiceImpl struct {
	resolver *IdentifierResolver
	names    port.NameResolver
	explorer port.BlockExplorer
	network  entity.NetworkDefinition
	market   entity.MarketSnapshot
	opts     ScannerOptions
	logger   port.Logger
}

// NewScannerService creates a new instance of ScannerServiceImpl.
func NewScannerService(
	resolver *IdentifierResolver,
	names port.NameResolver,
	explorer port.BlockExplorer,
	network entity.NetworkDefinition,
	market entity.MarketSnapshot,
	opts ScannerOptions,
	l port.Logger,
) port.ScannerService {
	if opts.MinedBlocksPageSize <= 0 {
		opts.MinedBlocksPageSize = 20
	}
	if opts.MaxConcurrentRoutines <= 0 {
		opts.MaxConcurrentRoutines = 1
	}
	return &ScannerServiceImpl{
		resolver: resolver,
		names:    names,
		explorer: explorer,
		network:  network,
		market:   market,
		opts:     opts,
		logger:   l,
	}
}

func (s *ScannerServiceImpl) nativeBalance(ctx context.Context, address string) (string, error) {
	wei, err := s.explorer.GetBalance(ctx, address)
	if err != nil {
		return "", err
	}
	return utils.FormatAmount(utils.ToDecimal(wei, s.network.Decimals)), nil
}

// Balance reports the native balance of identifier and its USD value at the snapshot price.
func (s *ScannerServiceImpl) Balance(ctx context.Context, identifier string) (string, error) {
	address, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return "", err
	}
	wei, err := s.explorer.GetBalance(ctx, address)
	if err != nil {
		return "", err
	}
	amount := utils.ToDecimal(wei, s.network.Decimals)
	usd := amount.Mul(s.market.NativeUSDPrice)
	return fmt.Sprintf("Balance for %s: %s %s (%s$)",
		utils.ShortAddress(address), amount.StringFixed(4), s.network.NativeSymbol, usd.StringFixed(2)), nil
}

// BalanceMulti reports one balance line per identifier, in input order. A failing
// identifier produces an error line and does not abort the others.
func (s *ScannerServiceImpl) BalanceMulti(ctx context.Context, identifiers []string) (string, error) {
	lines := make([]string, len(identifiers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrentRoutines)
	for i, id := range identifiers {
		g.Go(func() error {
			lines[i] = s.balanceLine(gctx, id)
			return nil
		})
	}
	_ = g.Wait()

	return strings.Join(lines, "\n"), nil
}

func (s *ScannerServiceImpl) balanceLine(ctx context.Context, identifier string) string {
	address, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		if entity.IsKind(err, entity.KindNotFound) {
			return fmt.Sprintf("%s : %s", identifier, MsgNoSuchName)
		}
		return fmt.Sprintf("%s : Error: %v", identifier, err)
	}
	balance, err := s.nativeBalance(ctx, address)
	if err != nil {
		s.logger.Warn("Balance lookup failed", "address", address, "error", err)
		return fmt.Sprintf("%s : Error: %v", utils.ShortAddress(address), err)
	}
	return fmt.Sprintf("%s : %s %s", utils.ShortAddress(address), balance, s.network.NativeSymbol)
}

// GasPrice reports the current gas price in whole gwei.
func (s *ScannerServiceImpl) GasPrice(ctx context.Context) (string, error) {
	wei, err := s.explorer.GetGasPrice(ctx)
	if err != nil {
		return "", err
	}
	gwei := new(big.Int).Quo(wei, weiPerGwei)
	return fmt.Sprintf("Current gas price : %s gwei", gwei.String()), nil
}

// EthPrice reports the snapshot price of the native coin.
func (s *ScannerServiceImpl) EthPrice(_ context.Context) (string, error) {
	return fmt.Sprintf("Current %s Price : %s$", s.network.NativeSymbol, s.market.NativeUSDPrice.String()), nil
}

// EthSupply reports the snapshot supply of the native coin with thousands separators.
func (s *ScannerServiceImpl) EthSupply(_ context.Context) (string, error) {
	supply, _ := s.market.NativeSupply.Float64()
	return fmt.Sprintf("Current %s Supply : %s %s",
		s.network.NativeSymbol, humanize.FormatFloat("#,###.####", supply), s.network.NativeSymbol), nil
}

// BlockReward reports the reward paid for blockNumber.
func (s *ScannerServiceImpl) BlockReward(ctx context.Context, blockNumber string) (string, error) {
	wei, err := s.explorer.GetBlockReward(ctx, blockNumber)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Block Reward : %s %s",
		utils.FormatAmount(utils.ToDecimal(wei, s.network.Decimals)), s.network.NativeSymbol), nil
}

// BlocksMined lists the most recent blocks mined by identifier with their rewards.
func (s *ScannerServiceImpl) BlocksMined(ctx context.Context, identifier string) (string, error) {
	address, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return "", err
	}

	noBlocks := entity.NewScanError(entity.KindNoData, fmt.Sprintf("%s has not mined any blocks yet.", identifier))
	blocks, err := s.explorer.GetMinedBlocks(ctx, address, 1, s.opts.MinedBlocksPageSize)
	if err != nil {
		s.logger.Warn("Mined blocks lookup failed", "address", address, "error", err)
		noBlocks.Err = err
		return "", noBlocks
	}
	if len(blocks) == 0 {
		return "", noBlocks
	}
	if len(blocks) > s.opts.MinedBlocksPageSize {
		blocks = blocks[:s.opts.MinedBlocksPageSize]
	}

	rewards := make([]string, len(blocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrentRoutines)
	for i, blk := range blocks {
		g.Go(func() error {
			wei, err := s.explorer.GetBlockReward(gctx, blk.BlockNumber)
			if err != nil {
				return fmt.Errorf("failed to fetch reward for block %s: %w", blk.BlockNumber, err)
			}
			rewards[i] = utils.FormatAmount(utils.ToDecimal(wei, s.network.Decimals))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %d blocks mined by %s:\n", len(blocks), utils.ShortAddress(address))
	for i, blk := range blocks {
		fmt.Fprintf(&b, "%d. Block: %s - Reward: %s %s\n", i+1, blk.BlockNumber, rewards[i], s.network.NativeSymbol)
	}
	return b.String(), nil
}

// ResolveENS returns the address behind name.
func (s *ScannerServiceImpl) ResolveENS(ctx context.Context, name string) (string, error) {
	address, found, err := s.names.ResolveName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	if !found {
		return "", entity.NewScanError(entity.KindNotFound, MsgNoSuchName)
	}
	return address, nil
}
