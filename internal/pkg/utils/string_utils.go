package utils

// ShortAddress abbreviates an address to its first six and last four characters.
// Inputs too short to abbreviate are returned unchanged.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
