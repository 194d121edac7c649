package service

import (
	"context"
	"fmt"
	"time"

	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"
	"block_scanner/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// LoadMarketSnapshot fetches the native-coin price and total supply. It is called once
// at start; the snapshot is not refreshed afterwards.
func LoadMarketSnapshot(ctx context.Context, explorer port.BlockExplorer, nativeDecimals int32) (entity.MarketSnapshot, error) {
	var snap entity.MarketSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		price, err := explorer.GetEthUsdPrice(gctx)
		if err != nil {
			return fmt.Errorf("failed to load native coin price: %w", err)
		}
		snap.NativeUSDPrice = price
		return nil
	})
	g.Go(func() error {
		supply, err := explorer.GetEthSupply(gctx)
		if err != nil {
			return fmt.Errorf("failed to load native coin supply: %w", err)
		}
		snap.NativeSupply = utils.ToDecimal(supply, nativeDecimals)
		return nil
	})
	if err := g.Wait(); err != nil {
		return entity.MarketSnapshot{}, err
	}
	snap.FetchedAt = time.Now()
	return snap, nil
}
