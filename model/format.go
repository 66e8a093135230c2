package model

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// Format identifies a model file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
	FormatHCL
)

var formatNames = [...]string{
	FormatYAML: "yaml",
	FormatJSON: "json",
	FormatHCL:  "hcl",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}

	return formatNames[f]
}

// Extension returns the canonical file extension of f, including the dot.
func (f Format) Extension() string { return "." + f.String() }

// ParseFormat parses a format name or file extension, with or without the
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "hcl":
		return FormatHCL, nil
	}

	return 0, ErrUnknownFormat.With(slog.String("format", s))
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, ErrUnknownFormat.With(slog.String("path", path))
	}

	return ParseFormat(ext)
}
