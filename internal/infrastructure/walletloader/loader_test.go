package walletloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"block_scanner/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchList = `# team wallets
0x1234567890abcdef1234567890abcdef12345678

vitalik.eth
1234567890abcdef1234567890abcdef12345678
0xnothex
  0xABCDEF0000000000000000000000000000000001  
`

func TestLoadKeepsOrderAndSkipsInvalid(t *testing.T) {
	l := NewWatchListLoader(".eth", logger.NewSlogAdapter())

	ids, err := l.Load(strings.NewReader(watchList))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0x1234567890abcdef1234567890abcdef12345678",
		"vitalik.eth",
		"0xABCDEF0000000000000000000000000000000001",
	}, ids)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(watchList), 0o600))

	ids, err := NewWatchListLoader(".eth", logger.NewSlogAdapter()).LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	_, err = NewWatchListLoader(".eth", logger.NewSlogAdapter()).LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to open watch list")
}
