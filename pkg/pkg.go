//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the daex module embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It appears in help
	// text, generated file banners, and default config paths.
	Name = "daex"
	// Description is a short, human-readable summary used in help output.
	Description = "DAE model exporter for MATLAB"
)

// EnvPrefix returns the prefix of environment variables bound to CLI flags.
func EnvPrefix() string {
	return strings.ToUpper(Name) + "_"
}
