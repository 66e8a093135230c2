package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/daex/model"
)

// Fmt reads a model in any supported format and writes it as YAML or JSON.
type Fmt struct {
	Input `embed:""`

	To string `default:"yaml" enum:"yaml,json" help:"Output format" short:"t"`

	Out io.Writer `kong:"-"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := f.load(ctx)
	if err != nil {
		return err
	}

	to, err := model.ParseFormat(f.To)
	if err != nil {
		return err
	}

	if err := model.Encode(ctx, output(f.Out), m, to); err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("format", f.To))
	}

	return nil
}
