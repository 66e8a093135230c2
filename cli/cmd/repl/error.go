package repl

import "github.com/ardnew/daex/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("history index out of range")
	ErrNoModel     = pkg.NewError("no model loaded")
)
