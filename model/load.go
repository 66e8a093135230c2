package model

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/daex/log"
)

// Load reads, decodes, and validates the model file at path. The format is
// chosen by the file extension.
func Load(ctx context.Context, path string) (*Model, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
	}

	m, err := decode(ctx, filepath.Base(path), data, format)
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "loaded model",
		slog.String("path", path),
		slog.String("name", m.Name),
		slog.Int("parameters", len(m.Parameters)),
		slog.Int("states", len(m.States)),
	)

	return m, nil
}

// Decode reads a model encoded as format from r and validates it.
func Decode(ctx context.Context, r io.Reader, format Format) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return decode(ctx, "model"+format.Extension(), data, format)
}

func decode(ctx context.Context, name string, data []byte, format Format) (*Model, error) {
	var (
		m   *Model
		err error
	)

	switch format {
	case FormatYAML, FormatJSON:
		m, err = decodeYAML(ctx, data)
	case FormatHCL:
		if filepath.Ext(name) != FormatHCL.Extension() {
			name += FormatHCL.Extension()
		}

		m, err = decodeHCL(ctx, name, data)
	default:
		return nil, ErrUnknownFormat.With(slog.String("format", format.String()))
	}

	if err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	log.TraceContext(ctx, "decoded model",
		slog.String("source", name),
		slog.String("format", format.String()),
	)

	return m, nil
}

// Encode writes m to w as YAML or JSON. Options keep their declaration
// order; numeric option values are written as numbers.
func Encode(ctx context.Context, w io.Writer, m *Model, format Format) error {
	var (
		b   []byte
		err error
	)

	switch format {
	case FormatYAML:
		b, err = encodeYAML(ctx, m)
	case FormatJSON:
		b, err = encodeJSON(m)
	default:
		return ErrEncode.Wrap(ErrUnknownFormat).With(slog.String("format", format.String()))
	}

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", format.String()))
	}

	_, err = w.Write(b)

	return err
}
