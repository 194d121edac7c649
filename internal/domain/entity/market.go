package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketSnapshot holds values fetched once at process start. It is passed explicitly
// to the services that need it and is never refreshed.
type MarketSnapshot struct {
	NativeUSDPrice decimal.Decimal
	NativeSupply   decimal.Decimal // in whole coins
	FetchedAt      time.Time
}
