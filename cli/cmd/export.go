package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/ardnew/daex/matlab"
)

// Export writes the MATLAB class file and example script of a model and
// prints the path of each file written.
type Export struct {
	Input `embed:""`

	Dir       string `default:"."            help:"Output directory"                      short:"o" type:"existingdir"`
	NoExample bool   `help:"Skip the example driver script"`
	Generator string `default:"${generator}" help:"Generator name written in file banners"`

	Out io.Writer `kong:"-"`
}

// Run executes the export command.
func (e *Export) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := e.load(ctx)
	if err != nil {
		return err
	}

	opts := []matlab.Option{matlab.WithExample(!e.NoExample)}

	if e.Generator != "" {
		opts = append(opts, matlab.WithGenerator(e.Generator))
	}

	paths, err := matlab.Export(ctx, m, e.Dir, opts...)
	if err != nil {
		return err
	}

	out := output(e.Out)

	for _, path := range paths {
		if _, err := fmt.Fprintln(out, path); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
