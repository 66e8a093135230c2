package cmd

import (
	"context"

	"github.com/ardnew/daex/cli/cmd/repl"
	"github.com/ardnew/daex/log"
)

// Repl starts an interactive formula translator over a model.
type Repl struct {
	Input `embed:""`

	Namespace string `default:"p" help:"Parameter structure name" short:"n"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := r.load(ctx)
	if err != nil {
		return err
	}

	cacheDir := ""
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, m, r.Namespace, cacheDir, log.Default())
}
