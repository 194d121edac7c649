package networkdefinition

import (
	"strings"

	"block_scanner/internal/domain/entity"
	"block_scanner/internal/infrastructure/configloader"
)

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		Name:             "Ethereum Mainnet",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://etherscan.io",
		NameSuffix:       ".eth",
	}
	Sepolia = entity.NetworkDefinition{
		Name:             "Sepolia",
		NativeSymbol:     "ETH",
		Decimals:         18,
		BlockExplorerURL: "https://sepolia.etherscan.io",
		NameSuffix:       ".eth",
	}
)

var allKnownDefinitions = map[string]entity.NetworkDefinition{
	"ethereum mainnet": Ethereum,
	"ethereum":         Ethereum,
	"mainnet":          Ethereum,
	"sepolia":          Sepolia,
}

// FromConfig returns the known definition matching cfg.Name, with any explicitly
// configured field taking precedence. Unknown names start from Ethereum.
func FromConfig(cfg configloader.NetworkConfig) entity.NetworkDefinition {
	def, ok := allKnownDefinitions[strings.ToLower(strings.TrimSpace(cfg.Name))]
	if !ok {
		def = Ethereum
		if cfg.Name != "" {
			def.Name = cfg.Name
		}
	}
	if cfg.NativeSymbol != "" {
		def.NativeSymbol = cfg.NativeSymbol
	}
	if cfg.Decimals > 0 {
		def.Decimals = cfg.Decimals
	}
	if cfg.BlockExplorerURL != "" {
		def.BlockExplorerURL = strings.TrimRight(cfg.BlockExplorerURL, "/")
	}
	if cfg.NameSuffix != "" {
		def.NameSuffix = cfg.NameSuffix
	}
	return def
}
