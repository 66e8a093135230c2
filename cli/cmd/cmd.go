package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/daex/model"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Input selects the model a command reads.
type Input struct {
	Model  string `arg:""     default:"-"          help:"Model file or '-' for stdin"                                      name:"model"`
	Format string `default:"" enum:",yaml,json,hcl" help:"Model format (default: from file extension, yaml for stdin)" short:"F"`

	Stdin io.Reader `kong:"-"`
}

// load reads and validates the selected model.
func (in Input) load(ctx context.Context) (*model.Model, error) {
	if in.Model != stdinSource && in.Format == "" {
		m, err := model.Load(ctx, in.Model)
		if err != nil {
			return nil, ErrReadModel.Wrap(err).With(slog.String("file", in.Model))
		}

		return m, nil
	}

	format := model.FormatYAML

	if in.Format != "" {
		f, err := model.ParseFormat(in.Format)
		if err != nil {
			return nil, ErrReadModel.Wrap(err)
		}

		format = f
	}

	r := in.Stdin
	if r == nil {
		r = os.Stdin
	}

	if in.Model != stdinSource {
		file, err := os.Open(in.Model)
		if err != nil {
			return nil, ErrReadModel.Wrap(err).With(slog.String("file", in.Model))
		}
		defer file.Close()

		r = file
	}

	m, err := model.Decode(ctx, r, format)
	if err != nil {
		return nil, ErrReadModel.Wrap(err).With(slog.String("file", in.Model))
	}

	return m, nil
}

// loadOptional loads the model at path, or returns nil when path is empty.
func loadOptional(ctx context.Context, path string) (*model.Model, error) {
	if path == "" {
		return nil, nil
	}

	return Input{Model: path}.load(ctx)
}

// output returns w, or stdout when w is nil.
func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}
