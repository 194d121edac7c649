package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port               string   `yaml:"port"`
	ReadTimeoutSeconds int      `yaml:"readTimeoutSeconds"`
	AllowedOrigins     []string `yaml:"allowedOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// EtherscanConfig holds block-explorer API configuration.
type EtherscanConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// EthplorerConfig holds token-holdings API configuration.
type EthplorerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// CoinGeckoConfig holds CoinGecko API specific configurations.
type CoinGeckoConfig struct {
	BaseURL              string `yaml:"baseURL"`
	AssetPlatform        string `yaml:"assetPlatform"`
	VsCurrency           string `yaml:"vsCurrency"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RequestsPerMinute    int    `yaml:"requestsPerMinute"`
}

// ENSConfig holds the JSON-RPC endpoints used for name resolution.
type ENSConfig struct {
	RPCURLs                  []string `yaml:"rpcURLs"`
	RegistryAddress          string   `yaml:"registryAddress"`
	ConnectionTimeoutSeconds int      `yaml:"connectionTimeoutSeconds"`
	CallTimeoutSeconds       int      `yaml:"callTimeoutSeconds"`
}

// PresentationConfig holds reply formatting limits.
type PresentationConfig struct {
	MessageSizeLimit    int    `yaml:"messageSizeLimit"`
	ChartTopN           int    `yaml:"chartTopN"`
	ChartWidth          int    `yaml:"chartWidth"`
	ChartHeight         int    `yaml:"chartHeight"`
	MinedBlocksPageSize int    `yaml:"minedBlocksPageSize"`
	CommandPrefix       string `yaml:"commandPrefix"`
}

// NetworkConfig describes the chain the bot reports on.
type NetworkConfig struct {
	Name             string `yaml:"name"`
	NativeSymbol     string `yaml:"nativeSymbol"`
	Decimals         int32  `yaml:"decimals"`
	BlockExplorerURL string `yaml:"blockExplorerURL"`
	NameSuffix       string `yaml:"nameSuffix"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"maxConcurrentRoutines"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Network      NetworkConfig      `yaml:"network"`
	Etherscan    EtherscanConfig    `yaml:"etherscan"`
	Ethplorer    EthplorerConfig    `yaml:"ethplorer"`
	CoinGecko    CoinGeckoConfig    `yaml:"coingecko"`
	ENS          ENSConfig          `yaml:"ens"`
	Presentation PresentationConfig `yaml:"presentation"`
	Performance  PerformanceConfig  `yaml:"performance"`
}

// Load reads the YAML configuration file from the given path, unmarshals it,
// overlays secrets from the environment and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes and applies env overrides and defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv("ETHERSCAN_API_KEY"); key != "" {
		cfg.Etherscan.APIKey = key
	}
	if key := os.Getenv("ETHPLORER_API_KEY"); key != "" {
		cfg.Ethplorer.APIKey = key
	}
	if key := os.Getenv("INFURA_API_KEY"); key != "" && len(cfg.ENS.RPCURLs) == 0 {
		cfg.ENS.RPCURLs = []string{"https://mainnet.infura.io/v3/" + key}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeoutSeconds <= 0 {
		cfg.Server.ReadTimeoutSeconds = 30
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	// Network fields stay empty unless configured; networkdefinition fills them
	// from the known definition for network.name.
	cfg.Network.BlockExplorerURL = strings.TrimRight(cfg.Network.BlockExplorerURL, "/")

	if cfg.Etherscan.BaseURL == "" {
		cfg.Etherscan.BaseURL = "https://api.etherscan.io/api"
		logrus.Infof("Etherscan.BaseURL not set, defaulting to %s", cfg.Etherscan.BaseURL)
	}
	if cfg.Etherscan.RequestTimeoutMillis <= 0 {
		cfg.Etherscan.RequestTimeoutMillis = 10000
	}
	if cfg.Etherscan.APIKey == "" {
		logrus.Warn("Etherscan API key is not set; requests will use the anonymous rate limit")
	}

	if cfg.Ethplorer.BaseURL == "" {
		cfg.Ethplorer.BaseURL = "https://api.ethplorer.io"
		logrus.Infof("Ethplorer.BaseURL not set, defaulting to %s", cfg.Ethplorer.BaseURL)
	}
	if cfg.Ethplorer.APIKey == "" {
		cfg.Ethplorer.APIKey = "freekey"
	}
	if cfg.Ethplorer.RequestTimeoutMillis <= 0 {
		cfg.Ethplorer.RequestTimeoutMillis = 15000
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.AssetPlatform == "" {
		cfg.CoinGecko.AssetPlatform = "ethereum"
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}
	if cfg.CoinGecko.RequestTimeoutMillis <= 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
	}
	if cfg.CoinGecko.RequestsPerMinute <= 0 {
		cfg.CoinGecko.RequestsPerMinute = 30 // public tier
	}

	if cfg.ENS.RegistryAddress == "" {
		cfg.ENS.RegistryAddress = "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"
	}
	if cfg.ENS.ConnectionTimeoutSeconds <= 0 {
		cfg.ENS.ConnectionTimeoutSeconds = 10
	}
	if cfg.ENS.CallTimeoutSeconds <= 0 {
		cfg.ENS.CallTimeoutSeconds = 10
	}

	if cfg.Presentation.MessageSizeLimit <= 0 {
		cfg.Presentation.MessageSizeLimit = 2000 // Discord
	}
	if cfg.Presentation.ChartTopN <= 0 {
		cfg.Presentation.ChartTopN = 10
	}
	if cfg.Presentation.ChartWidth <= 0 {
		cfg.Presentation.ChartWidth = 640
	}
	if cfg.Presentation.ChartHeight <= 0 {
		cfg.Presentation.ChartHeight = 480
	}
	if cfg.Presentation.MinedBlocksPageSize <= 0 {
		cfg.Presentation.MinedBlocksPageSize = 20
	}
	if cfg.Presentation.CommandPrefix == "" {
		cfg.Presentation.CommandPrefix = "!scan "
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 5
	}
}

// Validate checks settings that have no sensible default.
func (c *Config) Validate() error {
	if len(c.ENS.RPCURLs) == 0 {
		logrus.Warn("No ENS RPC URLs configured (set ens.rpcURLs or INFURA_API_KEY); name resolution will be unavailable")
	}
	for _, u := range c.ENS.RPCURLs {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("ens.rpcURLs contains an empty entry")
		}
	}
	if c.Presentation.ChartTopN > 50 {
		return fmt.Errorf("presentation.chartTopN must be at most 50, got %d", c.Presentation.ChartTopN)
	}
	return nil
}
