package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"block_scanner/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walletAddr = "0x1234567890abcdef1234567890abcdef12345678"

type portfolioFixture struct {
	names    *fakeNames
	holdings *fakeHoldings
	pricer   *fakePricer
	explorer *fakeExplorer
	renderer *fakeRenderer
	opts     PortfolioOptions
}

func newPortfolioFixture() *portfolioFixture {
	return &portfolioFixture{
		names:    &fakeNames{names: map[string]string{"alice.eth": walletAddr}},
		holdings: &fakeHoldings{snapshot: &entity.PortfolioSnapshot{}},
		pricer:   &fakePricer{prices: map[string]decimal.Decimal{}},
		explorer: &fakeExplorer{balances: map[string]*big.Int{}},
		renderer: &fakeRenderer{},
		opts:     PortfolioOptions{MessageSizeLimit: 2000, ChartTopN: 10},
	}
}

func (f *portfolioFixture) service(nativePrice int64) *PortfolioServiceImpl {
	resolver := NewIdentifierResolver(f.names, ".eth", testLogger)
	prices := NewTokenPriceService(f.pricer, 4, testLogger)
	market := entity.MarketSnapshot{NativeUSDPrice: decimal.NewFromInt(nativePrice)}
	return NewPortfolioService(resolver, f.holdings, f.explorer, prices, f.renderer, testNetwork, market, f.opts, testLogger).(*PortfolioServiceImpl)
}

func TestPortfolioTextEndToEnd(t *testing.T) {
	f := newPortfolioFixture()
	f.holdings.snapshot.Add(fungible("TOK", "0xtok", ether(2)))
	f.holdings.snapshot.Add(entity.BalanceEntry{Symbol: "CNFT", Name: "Cool", RawAmount: big.NewInt(1), Kind: entity.NonFungible, ContractAddress: "0xnft"})
	f.pricer.prices["0xtok"] = decimal.NewFromInt(3)

	text, err := f.service(2000).PortfolioText(context.Background(), "alice.eth")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Token balances for 0x1234...5678 :\n"))
	assert.Contains(t, text, "\nERC20 Token Balances:\nTOK: 2.0 ($6.00)\n")
	assert.Contains(t, text, "\nNon-ERC20 Balances (Possibly NFTs):\nCool: 1 CNFT\n")
	assert.Equal(t, []string{"0xtok"}, f.pricer.seen, "collectibles are never priced")
}

func TestPortfolioTextOmitsUnknownPrice(t *testing.T) {
	f := newPortfolioFixture()
	f.holdings.snapshot.Add(fungible("ABC", "0xabc", ether(5)))

	text, err := f.service(2000).PortfolioText(context.Background(), walletAddr)
	require.NoError(t, err)
	assert.Contains(t, text, "ABC: 5.0\n")
	assert.NotContains(t, text, "$")
	assert.NotContains(t, text, "Non-ERC20")
}

func TestPortfolioTextKeepsDuplicateSymbols(t *testing.T) {
	f := newPortfolioFixture()
	f.holdings.snapshot.Add(fungible("DUP", "0xone", ether(1)))
	f.holdings.snapshot.Add(fungible("DUP", "0xtwo", ether(2)))

	text, err := f.service(2000).PortfolioText(context.Background(), walletAddr)
	require.NoError(t, err)
	assert.Contains(t, text, "DUP: 1.0\n")
	assert.Contains(t, text, "DUP: 2.0\n")
}

func TestPortfolioTextOverflow(t *testing.T) {
	f := newPortfolioFixture()
	for i := 0; i < 200; i++ {
		f.holdings.snapshot.Add(fungible(fmt.Sprintf("TOKEN%03d", i), fmt.Sprintf("0x%03d", i), ether(int64(i+1))))
	}

	text, err := f.service(2000).PortfolioText(context.Background(), walletAddr)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio exceeds Discord's message limit. To see all balances : https://etherscan.io/address/"+walletAddr, text)
}

func TestPortfolioTextLimitCountsCharacters(t *testing.T) {
	f := newPortfolioFixture()
	f.holdings.snapshot.Add(fungible("ÄÖÜ", "0xumlaut", ether(1)))
	text := FormatPortfolioText(walletAddr, []entity.PricedEntry{{BalanceEntry: f.holdings.snapshot.Fungible[0]}}, nil)

	f.opts.MessageSizeLimit = len([]rune(text))
	got, err := f.service(2000).PortfolioText(context.Background(), walletAddr)
	require.NoError(t, err)
	assert.Equal(t, text, got)

	f.opts.MessageSizeLimit = len([]rune(text)) - 1
	got, err = f.service(2000).PortfolioText(context.Background(), walletAddr)
	require.NoError(t, err)
	assert.Equal(t, OverflowMessage(testNetwork, walletAddr), got)
}

func TestPortfolioUnknownNameStopsPipeline(t *testing.T) {
	f := newPortfolioFixture()

	_, err := f.service(2000).PortfolioText(context.Background(), "nobody.eth")
	require.Error(t, err)
	assert.True(t, entity.IsKind(err, entity.KindNotFound))
	assert.Equal(t, MsgNoSuchName, err.Error())
	assert.Zero(t, f.holdings.calls.Load())

	_, err = f.service(2000).PortfolioChart(context.Background(), "nobody.eth")
	assert.True(t, entity.IsKind(err, entity.KindNotFound))
	assert.Zero(t, f.holdings.calls.Load())
}

func TestPortfolioPassesHoldingsOutcomesThrough(t *testing.T) {
	for _, kind := range []entity.ErrorKind{entity.KindNoData, entity.KindUpstreamUnavailable} {
		t.Run(kind.String(), func(t *testing.T) {
			f := newPortfolioFixture()
			want := entity.NewScanError(kind, "upstream says "+kind.String())
			f.holdings.err = want

			_, err := f.service(2000).PortfolioText(context.Background(), walletAddr)
			assert.ErrorIs(t, err, want)

			_, err = f.service(2000).PortfolioChart(context.Background(), walletAddr)
			assert.ErrorIs(t, err, want)
			assert.Empty(t, f.pricer.seen)
		})
	}
}

func TestPortfolioChartHoldingsOutcomeWinsOverBalanceFailure(t *testing.T) {
	f := newPortfolioFixture()
	f.holdings.delay = 20 * time.Millisecond
	f.holdings.err = entity.NewScanError(entity.KindNoData, "No tokens found at this address.")
	f.explorer.balanceErr = errors.New("rate limited")

	_, err := f.service(2000).PortfolioChart(context.Background(), walletAddr)
	require.Error(t, err)
	assert.True(t, entity.IsKind(err, entity.KindNoData))
	assert.Equal(t, "No tokens found at this address.", err.Error())
}

func TestPortfolioChartBalanceFailure(t *testing.T) {
	f := newPortfolioFixture()
	f.holdings.snapshot.Add(fungible("TOK", "0xtok", ether(1)))
	f.explorer.balanceErr = errors.New("rate limited")

	_, err := f.service(2000).PortfolioChart(context.Background(), walletAddr)
	assert.EqualError(t, err, "failed to fetch native balance: rate limited")
}

func TestPortfolioChartNativeForcedIn(t *testing.T) {
	f := newPortfolioFixture()
	for i := 0; i < 12; i++ {
		f.holdings.snapshot.Add(fungible(fmt.Sprintf("T%02d", i), fmt.Sprintf("0x%02d", i), ether(int64(100+i))))
		f.pricer.prices[fmt.Sprintf("0x%02d", i)] = decimal.NewFromInt(1)
	}
	f.explorer.balances[walletAddr] = ether(1)

	chart, err := f.service(1).PortfolioChart(context.Background(), walletAddr)
	require.NoError(t, err)
	require.Len(t, chart.Slices, 11)
	assert.Equal(t, "T11", chart.Slices[0].Symbol)
	assert.True(t, chart.Slices[10].IsNative)
	assert.Equal(t, "ETH ($1.00)", chart.Slices[10].Label())
	assert.Equal(t, "Top ERC20 token balances for 0x1234...5678:", chart.Caption)
	assert.Equal(t, []byte("png"), chart.Image)
	assert.Equal(t, chart.Slices, f.renderer.slices)
}

func TestPortfolioChartNativeRankedNormally(t *testing.T) {
	f := newPortfolioFixture()
	for i := 0; i < 12; i++ {
		f.holdings.snapshot.Add(fungible(fmt.Sprintf("T%02d", i), fmt.Sprintf("0x%02d", i), ether(int64(100+i))))
		f.pricer.prices[fmt.Sprintf("0x%02d", i)] = decimal.NewFromInt(1)
	}
	nativeWei, _ := new(big.Int).SetString("103500000000000000000", 10)
	f.explorer.balances[walletAddr] = nativeWei

	chart, err := f.service(1).PortfolioChart(context.Background(), walletAddr)
	require.NoError(t, err)
	require.Len(t, chart.Slices, 10)
	assert.True(t, chart.Slices[8].IsNative)
	assert.Equal(t, "ETH ($103.50)", chart.Slices[8].Label())
}

func TestPortfolioChartNoPricedTokens(t *testing.T) {
	f := newPortfolioFixture()
	f.holdings.snapshot.Add(fungible("ZERO", "0xzero", ether(1)))
	f.pricer.prices["0xzero"] = decimal.Zero
	f.holdings.snapshot.Add(fungible("NOPRICE", "0xnp", ether(1)))
	f.explorer.balances[walletAddr] = ether(10)

	_, err := f.service(2000).PortfolioChart(context.Background(), walletAddr)
	require.Error(t, err)
	assert.True(t, entity.IsKind(err, entity.KindNoData))
	assert.Equal(t, MsgNoChartData, err.Error())
}

func TestBuildChartSlices(t *testing.T) {
	priced := func(symbol string, amount int64, price string) entity.PricedEntry {
		p := entity.PricedEntry{BalanceEntry: fungible(symbol, "0x"+symbol, ether(amount))}
		if price != "" {
			p.PriceUSD = decimal.NewNullDecimal(decimal.RequireFromString(price))
		}
		return p
	}

	t.Run("excludes non-positive and unpriced", func(t *testing.T) {
		slices := BuildChartSlices([]entity.PricedEntry{
			priced("A", 1, "2"),
			priced("B", 1, "0"),
			priced("C", 0, "5"),
			priced("D", 1, ""),
		}, entity.ChartSlice{Symbol: "ETH"}, 10)
		require.Len(t, slices, 1)
		assert.Equal(t, "A", slices[0].Symbol)
	})

	t.Run("sorted descending", func(t *testing.T) {
		slices := BuildChartSlices([]entity.PricedEntry{
			priced("LOW", 1, "1"),
			priced("HIGH", 1, "9"),
		}, entity.ChartSlice{Symbol: "ETH", ValueUSD: decimal.NewFromInt(5)}, 10)
		require.Len(t, slices, 3)
		assert.Equal(t, []string{"HIGH", "ETH", "LOW"}, []string{slices[0].Symbol, slices[1].Symbol, slices[2].Symbol})
	})

	t.Run("zero native is never forced in", func(t *testing.T) {
		var entries []entity.PricedEntry
		for i := 0; i < 11; i++ {
			entries = append(entries, priced(fmt.Sprintf("T%d", i), 1, "1"))
		}
		slices := BuildChartSlices(entries, entity.ChartSlice{Symbol: "ETH"}, 10)
		assert.Len(t, slices, 10)
		assert.False(t, hasNativeSlice(slices))
	})
}
