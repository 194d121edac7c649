package entity

// NetworkDefinition describes the chain the scanner reports on.
type NetworkDefinition struct {
	Name             string `json:"name" yaml:"name"`
	NativeSymbol     string `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         int32  `json:"decimals" yaml:"decimals"` // native coin decimals
	BlockExplorerURL string `json:"blockExplorerUrl" yaml:"blockExplorerUrl"`
	NameSuffix       string `json:"nameSuffix" yaml:"nameSuffix"` // marks human-readable names
}

// AddressURL returns the explorer page for an address.
func (n NetworkDefinition) AddressURL(address string) string {
	return n.BlockExplorerURL + "/address/" + address
}
