package port

import (
	"context"
	"math/big"

	"block_scanner/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// MinedBlock is one entry of an address's mined-blocks history.
type MinedBlock struct {
	BlockNumber string
}

// BlockExplorer defines the block-explorer API used for native-coin data.
// Every method is a single round trip; failures are returned, never retried.
type BlockExplorer interface {
	// GetBalance returns the native-coin balance of address in wei.
	GetBalance(ctx context.Context, address string) (*big.Int, error)

	// GetMinedBlocks returns one page of blocks mined by address, most recent first.
	GetMinedBlocks(ctx context.Context, address string, page, pageSize int) ([]MinedBlock, error)

	// GetBlockReward returns the reward of the given block in wei.
	GetBlockReward(ctx context.Context, blockNumber string) (*big.Int, error)

	// GetGasPrice returns the current gas price in wei.
	GetGasPrice(ctx context.Context) (*big.Int, error)

	// GetEthSupply returns the total native-coin supply in wei.
	GetEthSupply(ctx context.Context) (*big.Int, error)

	// GetEthUsdPrice returns the last native-coin price in USD.
	GetEthUsdPrice(ctx context.Context) (decimal.Decimal, error)
}

// TokenHoldings defines the token-balance API.
type TokenHoldings interface {
	// GetTokenBalances returns the classified token balances of address. The
	// "couldn't access" and "no tokens" outcomes are *entity.ScanError values.
	GetTokenBalances(ctx context.Context, address string) (*entity.PortfolioSnapshot, error)
}

// TokenPricer defines the token-price API. Lookups are best-effort: any failure
// yields an invalid NullDecimal.
type TokenPricer interface {
	GetTokenPrice(ctx context.Context, contractAddress string) decimal.NullDecimal
}

// NameResolver resolves human-readable names to canonical addresses.
type NameResolver interface {
	// ResolveName returns the address and true, or false when no mapping exists.
	ResolveName(ctx context.Context, name string) (string, bool, error)
}
