package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/daex/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configDir and cacheDir are the runtime directories named after the
// executable.
var (
	configDir = pkg.ConfigDir
	cacheDir  = pkg.CacheDir
)

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
