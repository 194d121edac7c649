package client

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"block_scanner/internal/app/port"
	domain "block_scanner/internal/domain/entity"
	"block_scanner/internal/entity"
	"block_scanner/internal/pkg/utils"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Messages shown to the user verbatim.
const (
	MsgHoldingsUnavailable = "Error: Couldn't access the Ethplorer API."
	MsgNoTokens            = "No tokens found at this address."
)

// ethplorerClientImpl implements port.TokenHoldings against the Ethplorer API.
type ethplorerClientImpl struct {
	http    httpGetter
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewEthplorerClient creates a token-holdings client.
func NewEthplorerClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) port.TokenHoldings {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("EthplorerClient")
	return &ethplorerClientImpl{
		http:    newHTTPGetter("ethplorer", timeout, logger),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

// GetTokenBalances implements port.TokenHoldings.
func (c *ethplorerClientImpl) GetTokenBalances(ctx context.Context, address string) (*domain.PortfolioSnapshot, error) {
	requestURL := fmt.Sprintf("%s/getAddressInfo/%s?apiKey=%s", c.baseURL, url.PathEscape(address), url.QueryEscape(c.apiKey))

	status, body, err := c.http.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		return nil, &domain.ScanError{
			Kind:    domain.KindUpstreamUnavailable,
			Message: MsgHoldingsUnavailable,
			Err:     &domain.UpstreamError{Service: "Ethplorer", StatusCode: status, Message: string(truncate(body, 200))},
		}
	}

	var info entity.EthplorerAddressInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, &domain.UpstreamError{Service: "Ethplorer", Message: fmt.Sprintf("malformed address info payload: %v", err)}
	}
	if info.Error != nil {
		return nil, &domain.ScanError{
			Kind:    domain.KindUpstreamUnavailable,
			Message: MsgHoldingsUnavailable,
			Err:     &domain.UpstreamError{Service: "Ethplorer", Message: info.Error.Message},
		}
	}
	if len(info.Tokens) == 0 {
		return nil, domain.NewScanError(domain.KindNoData, MsgNoTokens)
	}

	snapshot := &domain.PortfolioSnapshot{Address: address}
	for _, tok := range info.Tokens {
		raw, err := rawTokenBalance(tok)
		if err != nil {
			c.logger.Warn("Skipping token with unreadable balance",
				zap.String("address", address),
				zap.String("token", tok.TokenInfo.Address),
				zap.Error(err))
			continue
		}
		snapshot.Add(domain.ClassifyToken(domain.TokenInfo{
			Address:     tok.TokenInfo.Address,
			Name:        tok.TokenInfo.Name,
			Symbol:      tok.TokenInfo.Symbol,
			Decimals:    tok.TokenInfo.Decimals.Value,
			HasDecimals: tok.TokenInfo.Decimals.Valid,
			RawBalance:  raw,
		}))
	}

	c.logger.Debug("Fetched token balances",
		zap.String("address", address),
		zap.Int("fungible", len(snapshot.Fungible)),
		zap.Int("nonFungible", len(snapshot.NonFungible)))
	return snapshot, nil
}

// rawTokenBalance prefers the exact rawBalance string over the float balance.
func rawTokenBalance(tok entity.EthplorerToken) (*big.Int, error) {
	if tok.RawBalance != "" {
		return utils.ParseBigInt(tok.RawBalance)
	}
	if tok.Balance != "" {
		return utils.ParseBigInt(string(tok.Balance))
	}
	return new(big.Int), nil
}
