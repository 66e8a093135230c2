package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/daex/lang"
	"github.com/ardnew/daex/log"
)

// Order prints the state evaluation order of a model, one id per line.
type Order struct {
	Input `embed:""`

	Kind bool `help:"Print each state's kind after its id" short:"k"`

	Out io.Writer `kong:"-"`
}

// Run executes the order command.
func (o *Order) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := o.load(ctx)
	if err != nil {
		return err
	}

	ordered, err := lang.Resolve(m.States, lang.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	var b strings.Builder

	for _, s := range ordered {
		b.WriteString(s.ID)

		if o.Kind {
			b.WriteString("\t" + s.Kind.String())
		}

		b.WriteByte('\n')
	}

	return write(output(o.Out), b.String())
}

// Translate prints a formula rewritten as a MATLAB expression.
type Translate struct {
	Formula   string   `arg:""                                   help:"Formula to translate"`
	Params    []string `help:"Parameter ids to qualify"          sep:","`
	Model     string   `help:"Qualify the parameters of a model" short:"m"                       type:"existingfile"`
	Namespace string   `default:"p"                              help:"Parameter structure name" short:"n"`

	Out io.Writer `kong:"-"`
}

// Run executes the translate command.
func (t *Translate) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	params := lang.NewSet(t.Params...)

	m, err := loadOptional(ctx, t.Model)
	if err != nil {
		return err
	}

	if m != nil {
		for id := range m.ParameterIDs() {
			params[id] = struct{}{}
		}
	}

	translated, err := lang.Translate(t.Formula, params, lang.WithNamespace(t.Namespace))
	if err != nil {
		return err
	}

	log.TraceContext(ctx, "translated formula",
		slog.String("formula", t.Formula),
		slog.String("matlab", translated),
	)

	return write(output(t.Out), translated+"\n")
}

// Refs prints the known names a formula references, one per occurrence.
type Refs struct {
	Formula string   `arg:""                                             help:"Formula to scan"`
	Known   []string `help:"Names to report"                             sep:","`
	Model   string   `help:"Report the states and parameters of a model" short:"m" type:"existingfile"`
	Unique  bool     `help:"Report each name once, sorted"               short:"u"`

	Out io.Writer `kong:"-"`
}

// Run executes the refs command.
func (r *Refs) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	known := lang.NewSet(r.Known...)

	m, err := loadOptional(ctx, r.Model)
	if err != nil {
		return err
	}

	if m != nil {
		for id := range m.StateIDs() {
			known[id] = struct{}{}
		}

		for id := range m.ParameterIDs() {
			known[id] = struct{}{}
		}
	}

	refs, err := lang.References(r.Formula, known)
	if err != nil {
		return err
	}

	if r.Unique {
		refs = lang.NewSet(refs...).Sorted()
	}

	var b strings.Builder

	for _, id := range refs {
		b.WriteString(id + "\n")
	}

	return write(output(r.Out), b.String())
}

func write(w io.Writer, s string) error {
	if _, err := fmt.Fprint(w, s); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
