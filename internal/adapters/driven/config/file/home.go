package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the shotbrain home directory.
const HomeEnv = "SHOTBRAIN_HOME"

// HomeDir returns the directory holding config, database and vault.
// Defaults to ~/.shotbrain.
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".shotbrain"), nil
}
