package cmd

import "github.com/ardnew/daex/pkg"

// Predefined errors (sentinel values).
var (
	ErrReadModel   = pkg.NewError("read model")
	ErrWriteOutput = pkg.NewError("write output")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrNoContext   = pkg.NewError("command context unavailable")
)
