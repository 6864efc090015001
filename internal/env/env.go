package env

import (
	"os"
	"path/filepath"
)

// WorkDir returns the tool's per-user state directory, creating it if
// needed. The incremental-cache state and the per-version library
// store live under it.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(userCacheDir, ".daffodil-build")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
