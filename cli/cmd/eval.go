package cmd

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/ardnew/daex/eval"
)

// Eval prints the value of every parameter and state of a model at the
// initial time, one "id = value" line each, in declaration order.
type Eval struct {
	Input `embed:""`

	Out io.Writer `kong:"-"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := e.load(ctx)
	if err != nil {
		return err
	}

	vals, err := eval.Initial(ctx, m)
	if err != nil {
		return err
	}

	var b strings.Builder

	line := func(id string) {
		b.WriteString(id + " = " + strconv.FormatFloat(vals[id], 'g', -1, 64) + "\n")
	}

	line(eval.TimeVar)

	for _, p := range m.Parameters {
		line(p.ID)
	}

	for _, s := range m.States {
		line(s.ID)
	}

	return write(output(e.Out), b.String())
}
