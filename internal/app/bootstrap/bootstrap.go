package bootstrap

import (
	"context"
	"fmt"
	"time"

	"block_scanner/internal/app/command"
	"block_scanner/internal/app/port"
	"block_scanner/internal/app/service"
	"block_scanner/internal/client"
	"block_scanner/internal/domain/entity"
	"block_scanner/internal/infrastructure/configloader"
	clientprovider "block_scanner/internal/infrastructure/network/client"
	networkdefinition "block_scanner/internal/infrastructure/network/definition"
	"block_scanner/internal/infrastructure/render"
	"block_scanner/internal/pkg/logger"

	"go.uber.org/zap"
)

// App holds the wired services shared by the binaries.
type App struct {
	Network    entity.NetworkDefinition
	Market     entity.MarketSnapshot
	Dispatcher *command.Dispatcher
	Portfolio  port.PortfolioService
	closers    []func()
}

// Close releases long-lived connections.
func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
}

func millis(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }

func seconds(s int) time.Duration { return time.Duration(s) * time.Second }

// New builds the upstream clients and services from cfg and loads the market snapshot.
func New(ctx context.Context, cfg *configloader.Config, zapLogger *zap.Logger) (*App, error) {
	network := networkdefinition.FromConfig(cfg.Network)

	explorer := client.NewEtherscanClient(cfg.Etherscan.BaseURL, cfg.Etherscan.APIKey,
		millis(cfg.Etherscan.RequestTimeoutMillis), zapLogger)
	holdings := client.NewEthplorerClient(cfg.Ethplorer.BaseURL, cfg.Ethplorer.APIKey,
		millis(cfg.Ethplorer.RequestTimeoutMillis), zapLogger)
	pricer := client.NewCoinGeckoClient(cfg.CoinGecko.BaseURL, cfg.CoinGecko.AssetPlatform, cfg.CoinGecko.VsCurrency,
		millis(cfg.CoinGecko.RequestTimeoutMillis), cfg.CoinGecko.RequestsPerMinute, zapLogger)

	callers := clientprovider.NewEVMCallerProvider(cfg.ENS.RPCURLs, seconds(cfg.ENS.ConnectionTimeoutSeconds),
		logger.NewSlogAdapter("component", "evm"))
	names := clientprovider.NewENSResolver(callers, cfg.ENS.RegistryAddress, seconds(cfg.ENS.CallTimeoutSeconds),
		logger.NewSlogAdapter("component", "ens"))

	app := &App{Network: network}
	if c, ok := callers.(interface{ Close() }); ok {
		app.closers = append(app.closers, c.Close)
	}

	market, err := service.LoadMarketSnapshot(ctx, explorer, network.Decimals)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load market snapshot: %w", err)
	}
	app.Market = market
	logger.Info("Market snapshot loaded",
		"price", market.NativeUSDPrice.String(), "supply", market.NativeSupply.String(), "network", network.Name)

	svcLogger := logger.NewSlogAdapter("component", "service")
	resolver := service.NewIdentifierResolver(names, network.NameSuffix, svcLogger)
	prices := service.NewTokenPriceService(pricer, cfg.Performance.MaxConcurrentRoutines, svcLogger)
	renderer := render.NewPieChartRenderer(cfg.Presentation.ChartWidth, cfg.Presentation.ChartHeight)

	app.Portfolio = service.NewPortfolioService(resolver, holdings, explorer, prices, renderer, network, market,
		service.PortfolioOptions{
			MessageSizeLimit: cfg.Presentation.MessageSizeLimit,
			ChartTopN:        cfg.Presentation.ChartTopN,
		}, svcLogger)
	scanner := service.NewScannerService(resolver, names, explorer, network, market,
		service.ScannerOptions{
			MinedBlocksPageSize:   cfg.Presentation.MinedBlocksPageSize,
			MaxConcurrentRoutines: cfg.Performance.MaxConcurrentRoutines,
		}, svcLogger)

	app.Dispatcher = command.NewDispatcher(cfg.Presentation.CommandPrefix, scanner, app.Portfolio,
		logger.NewSlogAdapter("component", "command"))
	return app, nil
}
