package service

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"
	"block_scanner/internal/pkg/logger"

	"github.com/shopspring/decimal"
)

var testLogger = logger.NewSlogAdapter("component", "test")

var testNetwork = entity.NetworkDefinition{
	Name:             "Ethereum",
	NativeSymbol:     "ETH",
	Decimals:         18,
	BlockExplorerURL: "https://etherscan.io",
	NameSuffix:       ".eth",
}

type fakeNames struct {
	names map[string]string
	err   error
	calls atomic.Int32
}

func (f *fakeNames) ResolveName(_ context.Context, name string) (string, bool, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", false, f.err
	}
	addr, ok := f.names[name]
	return addr, ok, nil
}

type fakeHoldings struct {
	snapshot *entity.PortfolioSnapshot
	err      error
	delay    time.Duration
	calls    atomic.Int32
}

func (f *fakeHoldings) GetTokenBalances(_ context.Context, address string) (*entity.PortfolioSnapshot, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if f.err != nil {
		return nil, f.err
	}
	snap := *f.snapshot
	snap.Address = address
	return &snap, nil
}

type fakePricer struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
	seen   []string
}

func (f *fakePricer) GetTokenPrice(_ context.Context, contract string) decimal.NullDecimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, contract)
	if p, ok := f.prices[contract]; ok {
		return decimal.NewNullDecimal(p)
	}
	return decimal.NullDecimal{}
}

type fakeExplorer struct {
	balances   map[string]*big.Int
	balanceErr error
	blocks     []port.MinedBlock
	blocksErr  error
	rewards    map[string]*big.Int
	gasPrice   *big.Int
	supply     *big.Int
	price      decimal.Decimal
}

func (f *fakeExplorer) GetBalance(_ context.Context, address string) (*big.Int, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	if b, ok := f.balances[address]; ok {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeExplorer) GetMinedBlocks(_ context.Context, _ string, _, _ int) ([]port.MinedBlock, error) {
	return f.blocks, f.blocksErr
}

func (f *fakeExplorer) GetBlockReward(_ context.Context, blockNumber string) (*big.Int, error) {
	if r, ok := f.rewards[blockNumber]; ok {
		return r, nil
	}
	return nil, errors.New("unknown block")
}

func (f *fakeExplorer) GetGasPrice(context.Context) (*big.Int, error) { return f.gasPrice, nil }

func (f *fakeExplorer) GetEthSupply(context.Context) (*big.Int, error) { return f.supply, nil }

func (f *fakeExplorer) GetEthUsdPrice(context.Context) (decimal.Decimal, error) { return f.price, nil }

type fakeRenderer struct {
	title  string
	slices []entity.ChartSlice
}

func (f *fakeRenderer) RenderPie(title string, slices []entity.ChartSlice) ([]byte, error) {
	f.title = title
	f.slices = slices
	return []byte("png"), nil
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000_000_000_000))
}

func fungible(symbol, contract string, raw *big.Int) entity.BalanceEntry {
	return entity.BalanceEntry{Symbol: symbol, Name: symbol, RawAmount: raw, Decimals: 18, ContractAddress: contract, Kind: entity.Fungible}
}
