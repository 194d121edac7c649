package networkdefinition

import (
	"testing"

	"block_scanner/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
)

func TestFromConfigKnownNetwork(t *testing.T) {
	def := FromConfig(configloader.NetworkConfig{Name: "Sepolia"})
	assert.Equal(t, "https://sepolia.etherscan.io", def.BlockExplorerURL)
	assert.Equal(t, "https://sepolia.etherscan.io/address/0xabc", def.AddressURL("0xabc"))
}

func TestFromConfigOverrides(t *testing.T) {
	def := FromConfig(configloader.NetworkConfig{
		Name:             "Custom",
		NativeSymbol:     "XETH",
		Decimals:         9,
		BlockExplorerURL: "https://explorer.example/",
		NameSuffix:       ".xyz",
	})
	assert.Equal(t, "Custom", def.Name)
	assert.Equal(t, "XETH", def.NativeSymbol)
	assert.Equal(t, int32(9), def.Decimals)
	assert.Equal(t, "https://explorer.example", def.BlockExplorerURL)
	assert.Equal(t, ".xyz", def.NameSuffix)
}

func TestFromConfigEmpty(t *testing.T) {
	assert.Equal(t, Ethereum, FromConfig(configloader.NetworkConfig{}))
}
