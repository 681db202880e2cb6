package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigFileName is the document name inside the user config directory
const DefaultConfigFileName = "config.json"

// DefaultConfigPath returns <user config dir>/hito/config.json
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "hito", DefaultConfigFileName), nil
}
