package service

import (
	"context"

	"block_scanner/internal/app/port"
	"block_scanner/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

// TokenPriceService enriches fungible balances with USD prices.
type TokenPriceService struct {
	pricer        port.TokenPricer
	maxConcurrent int
	logger        port.Logger
}

// NewTokenPriceService creates a price enricher issuing at most maxConcurrent lookups at once.
func NewTokenPriceService(pricer port.TokenPricer, maxConcurrent int, logger port.Logger) *TokenPriceService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &TokenPriceService{pricer: pricer, maxConcurrent: maxConcurrent, logger: logger}
}

// EnrichPrices returns one PricedEntry per input entry, in input order. Entries without
// a contract reference, and lookups that fail, keep an absent price.
func (s *TokenPriceService) EnrichPrices(ctx context.Context, entries []entity.BalanceEntry) []entity.PricedEntry {
	priced := make([]entity.PricedEntry, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, e := range entries {
		priced[i].BalanceEntry = e
		if !e.Priceable() {
			continue
		}
		g.Go(func() error {
			priced[i].PriceUSD = s.pricer.GetTokenPrice(gctx, e.ContractAddress)
			return nil
		})
	}
	_ = g.Wait()

	missing := 0
	for _, p := range priced {
		if !p.PriceUSD.Valid {
			missing++
		}
	}
	s.logger.Debug("Price enrichment finished", "entries", len(priced), "withoutPrice", missing)
	return priced
}
