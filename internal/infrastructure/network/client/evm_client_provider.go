package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"block_scanner/internal/app/port"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
)

// CallerProvider hands out a contract caller for read-only eth_call requests.
type CallerProvider interface {
	Caller(ctx context.Context) (ethereum.ContractCaller, error)
}

// evmCallerProvider dials the configured RPC endpoints lazily, trying each in order,
// and caches the first client that connects.
type evmCallerProvider struct {
	rpcURLs           []string
	connectionTimeout time.Duration
	logger            port.Logger

	mu     sync.Mutex
	client *ethclient.Client
}

// NewEVMCallerProvider creates a CallerProvider over a primary RPC URL and its fallbacks.
func NewEVMCallerProvider(rpcURLs []string, connectionTimeout time.Duration, logger port.Logger) CallerProvider {
	return &evmCallerProvider{
		rpcURLs:           rpcURLs,
		connectionTimeout: connectionTimeout,
		logger:            logger,
	}
}

// Caller implements CallerProvider.
func (p *evmCallerProvider) Caller(ctx context.Context) (ethereum.ContractCaller, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	if len(p.rpcURLs) == 0 {
		return nil, fmt.Errorf("no RPC endpoints configured for name resolution")
	}

	var lastErr error
	for _, rpcURL := range p.rpcURLs {
		dialCtx, cancel := context.WithTimeout(ctx, p.connectionTimeout)
		client, err := ethclient.DialContext(dialCtx, rpcURL)
		cancel()
		if err == nil {
			p.logger.Info("Connected to RPC endpoint for name resolution")
			p.client = client
			return client, nil
		}
		p.logger.Warn("RPC endpoint unavailable, trying next", "error", err)
		lastErr = fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}
	return nil, fmt.Errorf("all RPC connection attempts failed: %w", lastErr)
}

// Close releases the cached client, if any.
func (p *evmCallerProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
}
