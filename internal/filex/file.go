// Package filex holds filesystem helpers for export output.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// SafeName replaces path separators so a generated export name such as
// "USS Nott - 3rd Voyage Log.png" always stays a single file name.
func SafeName(name string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", "\x00", "")
	return r.Replace(name)
}
