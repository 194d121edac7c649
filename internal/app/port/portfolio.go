package port

import (
	"context"

	"block_scanner/internal/domain/entity"
)

// ChartRenderer rasterizes chart slices.
type ChartRenderer interface {
	RenderPie(title string, slices []entity.ChartSlice) ([]byte, error)
}

// PortfolioService defines the portfolio aggregation pipeline.
type PortfolioService interface {
	// PortfolioText resolves identifier and renders its token balances as a text message.
	PortfolioText(ctx context.Context, identifier string) (string, error)

	// PortfolioChart resolves identifier and renders the top holdings by USD value.
	PortfolioChart(ctx context.Context, identifier string) (*entity.PortfolioChart, error)
}

// ScannerService defines the remaining chain-data commands.
type ScannerService interface {
	Balance(ctx context.Context, identifier string) (string, error)
	BalanceMulti(ctx context.Context, identifiers []string) (string, error)
	GasPrice(ctx context.Context) (string, error)
	EthPrice(ctx context.Context) (string, error)
	EthSupply(ctx context.Context) (string, error)
	BlockReward(ctx context.Context, blockNumber string) (string, error)
	BlocksMined(ctx context.Context, identifier string) (string, error)
	ResolveENS(ctx context.Context, name string) (string, error)
}
