package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"block_scanner/internal/app/port"
	"block_scanner/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// coinGeckoClientImpl implements port.TokenPricer against the CoinGecko contract endpoint.
type coinGeckoClientImpl struct {
	http       httpGetter
	baseURL    string
	platform   string
	vsCurrency string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewCoinGeckoClient creates a token-price client. requestsPerMinute throttles outgoing
// requests to stay inside the public API quota; zero disables throttling.
func NewCoinGeckoClient(baseURL, platform, vsCurrency string, timeout time.Duration, requestsPerMinute int, logger *zap.Logger) port.TokenPricer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("CoinGeckoClient")

	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 5)
	}
	return &coinGeckoClientImpl{
		http:       newHTTPGetter("coingecko", timeout, logger),
		baseURL:    strings.TrimRight(baseURL, "/"),
		platform:   platform,
		vsCurrency: strings.ToLower(vsCurrency),
		limiter:    limiter,
		logger:     logger,
	}
}

// GetTokenPrice implements port.TokenPricer. Every failure collapses to an absent price.
func (c *coinGeckoClientImpl) GetTokenPrice(ctx context.Context, contractAddress string) decimal.NullDecimal {
	if contractAddress == "" {
		return decimal.NullDecimal{}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Debug("Price lookup skipped", zap.String("contract", contractAddress), zap.Error(err))
		return decimal.NullDecimal{}
	}

	requestURL := fmt.Sprintf("%s/coins/%s/contract/%s", c.baseURL, c.platform, strings.ToLower(contractAddress))
	status, body, err := c.http.get(ctx, requestURL)
	if err != nil || status != fasthttp.StatusOK {
		return decimal.NullDecimal{}
	}

	var resp entity.CoinGeckoContractResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("Failed to decode CoinGecko response", zap.String("contract", contractAddress), zap.Error(err))
		return decimal.NullDecimal{}
	}
	if resp.MarketData == nil {
		return decimal.NullDecimal{}
	}
	return resp.MarketData.CurrentPrice[c.vsCurrency]
}
