// Package filex holds file system helpers for the client's local data.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDirPerm keeps the session store private to the current user.
const DataDirPerm os.FileMode = 0o700

// EnsureDataDir creates dir if needed and returns its absolute path. A
// relative dir is resolved against the working directory.
func EnsureDataDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, DataDirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}
