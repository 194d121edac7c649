package entity

import jsoniter "github.com/json-iterator/go"

// EtherscanResponse is the envelope of every non-proxy Etherscan endpoint.
// Result is kept raw because its shape depends on the endpoint and on Status.
type EtherscanResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Result  jsoniter.RawMessage `json:"result"`
}

// EtherscanProxyResponse is the JSON-RPC style envelope of module=proxy endpoints.
type EtherscanProxyResponse struct {
	JSONRPC string             `json:"jsonrpc"`
	ID      int                `json:"id"`
	Result  string             `json:"result"`
	Error   *EtherscanRPCError `json:"error,omitempty"`
}

// EtherscanRPCError is the error object of a proxy response.
type EtherscanRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MinedBlockItem is one element of action=getminedblocks.
type MinedBlockItem struct {
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	BlockReward string `json:"blockReward"`
}

// BlockRewardResult is the result of action=getblockreward.
type BlockRewardResult struct {
	BlockNumber          string `json:"blockNumber"`
	TimeStamp            string `json:"timeStamp"`
	BlockMiner           string `json:"blockMiner"`
	BlockReward          string `json:"blockReward"`
	UncleInclusionReward string `json:"uncleInclusionReward"`
}

// EthPriceResult is the result of action=ethprice.
type EthPriceResult struct {
	EthBTC          string `json:"ethbtc"`
	EthBTCTimestamp string `json:"ethbtc_timestamp"`
	EthUSD          string `json:"ethusd"`
	EthUSDTimestamp string `json:"ethusd_timestamp"`
}
