package client

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"block_scanner/internal/app/port"
	domain "block_scanner/internal/domain/entity"
	"block_scanner/internal/entity"
	"block_scanner/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const etherscanService = "Etherscan"

// etherscanClientImpl implements port.BlockExplorer against the Etherscan API.
type etherscanClientImpl struct {
	http    httpGetter
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewEtherscanClient creates a block-explorer client.
func NewEtherscanClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) port.BlockExplorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("EtherscanClient")
	return &etherscanClientImpl{
		http:    newHTTPGetter("etherscan", timeout, logger),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

func (c *etherscanClientImpl) buildURL(module, action string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("module", module)
	params.Set("action", action)
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	return c.baseURL + "?" + params.Encode()
}

// call performs a status/message/result request and returns the raw result on status "1".
func (c *etherscanClientImpl) call(ctx context.Context, module, action string, params url.Values) (*entity.EtherscanResponse, error) {
	status, body, err := c.http.get(ctx, c.buildURL(module, action, params))
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		return nil, &domain.UpstreamError{Service: etherscanService, StatusCode: status, Message: string(truncate(body, 200))}
	}

	var resp entity.EtherscanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed %s/%s payload: %v", module, action, err)}
	}
	return &resp, nil
}

func (c *etherscanClientImpl) callOK(ctx context.Context, module, action string, params url.Values) (*entity.EtherscanResponse, error) {
	resp, err := c.call(ctx, module, action, params)
	if err != nil {
		return nil, err
	}
	if resp.Status != "1" {
		return nil, &domain.UpstreamError{Service: etherscanService, Message: describeFailure(resp)}
	}
	return resp, nil
}

// describeFailure prefers the string result, which carries the real reason on status "0".
func describeFailure(resp *entity.EtherscanResponse) string {
	var detail string
	if err := json.Unmarshal(resp.Result, &detail); err == nil && detail != "" {
		return detail
	}
	if resp.Message != "" {
		return resp.Message
	}
	return "unexpected response status " + resp.Status
}

func (c *etherscanClientImpl) stringResult(resp *entity.EtherscanResponse, what string) (string, error) {
	var s string
	if err := json.Unmarshal(resp.Result, &s); err != nil {
		return "", &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed %s result: %v", what, err)}
	}
	return s, nil
}

func (c *etherscanClientImpl) weiResult(resp *entity.EtherscanResponse, what string) (*big.Int, error) {
	s, err := c.stringResult(resp, what)
	if err != nil {
		return nil, err
	}
	v, err := utils.ParseBigInt(s)
	if err != nil {
		return nil, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed %s result: %v", what, err)}
	}
	return v, nil
}

// GetBalance implements port.BlockExplorer.
func (c *etherscanClientImpl) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	resp, err := c.callOK(ctx, "account", "balance", url.Values{"address": {address}, "tag": {"latest"}})
	if err != nil {
		return nil, err
	}
	return c.weiResult(resp, "balance")
}

// GetMinedBlocks implements port.BlockExplorer. An address without mined blocks
// yields an empty slice.
func (c *etherscanClientImpl) GetMinedBlocks(ctx context.Context, address string, page, pageSize int) ([]port.MinedBlock, error) {
	params := url.Values{
		"address":   {address},
		"blocktype": {"blocks"},
		"page":      {strconv.Itoa(page)},
		"offset":    {strconv.Itoa(pageSize)},
	}
	resp, err := c.call(ctx, "account", "getminedblocks", params)
	if err != nil {
		return nil, err
	}
	if resp.Status != "1" {
		if strings.HasPrefix(strings.ToLower(resp.Message), "no transactions found") {
			return []port.MinedBlock{}, nil
		}
		return nil, &domain.UpstreamError{Service: etherscanService, Message: describeFailure(resp)}
	}

	var items []entity.MinedBlockItem
	if err := json.Unmarshal(resp.Result, &items); err != nil {
		return nil, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed mined blocks result: %v", err)}
	}
	blocks := make([]port.MinedBlock, 0, len(items))
	for _, it := range items {
		blocks = append(blocks, port.MinedBlock{BlockNumber: it.BlockNumber})
	}
	return blocks, nil
}

// GetBlockReward implements port.BlockExplorer.
func (c *etherscanClientImpl) GetBlockReward(ctx context.Context, blockNumber string) (*big.Int, error) {
	resp, err := c.callOK(ctx, "block", "getblockreward", url.Values{"blockno": {blockNumber}})
	if err != nil {
		return nil, err
	}
	var result entity.BlockRewardResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed block reward result: %v", err)}
	}
	reward, err := utils.ParseBigInt(result.BlockReward)
	if err != nil {
		return nil, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed block reward %q", result.BlockReward)}
	}
	return reward, nil
}

// GetGasPrice implements port.BlockExplorer. The proxy endpoint answers with a hex quantity.
func (c *etherscanClientImpl) GetGasPrice(ctx context.Context) (*big.Int, error) {
	status, body, err := c.http.get(ctx, c.buildURL("proxy", "eth_gasPrice", nil))
	if err != nil {
		return nil, err
	}
	if status != fasthttp.StatusOK {
		return nil, &domain.UpstreamError{Service: etherscanService, StatusCode: status, Message: string(truncate(body, 200))}
	}

	var resp entity.EtherscanProxyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// Rate-limit errors come back in the status/message/result envelope instead.
		var env entity.EtherscanResponse
		if json.Unmarshal(body, &env) == nil && env.Status == "0" {
			return nil, &domain.UpstreamError{Service: etherscanService, Message: describeFailure(&env)}
		}
		return nil, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed gas price payload: %v", err)}
	}
	if resp.Error != nil {
		return nil, &domain.UpstreamError{Service: etherscanService, Message: resp.Error.Message}
	}
	price, err := hexutil.DecodeBig(resp.Result)
	if err != nil {
		return nil, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed gas price %q: %v", resp.Result, err)}
	}
	return price, nil
}

// GetEthSupply implements port.BlockExplorer.
func (c *etherscanClientImpl) GetEthSupply(ctx context.Context) (*big.Int, error) {
	resp, err := c.callOK(ctx, "stats", "ethsupply", nil)
	if err != nil {
		return nil, err
	}
	return c.weiResult(resp, "eth supply")
}

// GetEthUsdPrice implements port.BlockExplorer.
func (c *etherscanClientImpl) GetEthUsdPrice(ctx context.Context) (decimal.Decimal, error) {
	resp, err := c.callOK(ctx, "stats", "ethprice", nil)
	if err != nil {
		return decimal.Zero, err
	}
	var result entity.EthPriceResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return decimal.Zero, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed eth price result: %v", err)}
	}
	price, err := decimal.NewFromString(result.EthUSD)
	if err != nil {
		return decimal.Zero, &domain.UpstreamError{Service: etherscanService, Message: fmt.Sprintf("malformed eth price %q", result.EthUSD)}
	}
	return price, nil
}
