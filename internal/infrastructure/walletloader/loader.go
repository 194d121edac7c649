package walletloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"block_scanner/internal/app/port"

	"github.com/ethereum/go-ethereum/common"
)

// WatchListLoader reads identifiers for batch balance lookups from a text file.
// Each non-empty line that is not a "#" comment holds one address or name.
type WatchListLoader struct {
	nameSuffix string
	logger     port.Logger
}

// NewWatchListLoader creates a loader accepting hex addresses and names containing nameSuffix.
func NewWatchListLoader(nameSuffix string, logger port.Logger) *WatchListLoader {
	return &WatchListLoader{nameSuffix: nameSuffix, logger: logger}
}

// LoadFile reads the watch list at path.
func (l *WatchListLoader) LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open watch list %s: %w", path, err)
	}
	defer file.Close()

	ids, err := l.Load(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch list %s: %w", path, err)
	}
	l.logger.Info("Watch list loaded", "count", len(ids), "path", path)
	return ids, nil
}

// Load reads identifiers from r, keeping file order and skipping malformed lines.
func (l *WatchListLoader) Load(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !l.valid(line) {
			l.logger.Warn("Skipping invalid watch list entry", "lineNumber", lineNum, "entry", line)
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (l *WatchListLoader) valid(entry string) bool {
	if l.nameSuffix != "" && strings.Contains(entry, l.nameSuffix) {
		return true
	}
	return common.IsHexAddress(entry) && strings.HasPrefix(entry, "0x")
}
