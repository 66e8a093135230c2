package matlab

import (
	"bytes"
	"fmt"
	"strings"
)

// writer accumulates tab-indented lines of MATLAB source.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) line(depth int, s string) {
	w.buf.WriteString(strings.Repeat("\t", depth))
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

func (w *writer) linef(depth int, format string, args ...any) {
	w.line(depth, fmt.Sprintf(format, args...))
}

func (w *writer) blank() { w.buf.WriteByte('\n') }

// warning writes the generated-file banner followed by a blank line.
func (w *writer) warning(depth int, generator string) {
	w.linef(depth, "%% This file was automatically generated by %s.", generator)
	w.line(depth, "% Any changes you make to it will be overwritten the next time")
	w.line(depth, "% the file is generated.")
	w.blank()
}

// quote returns s as a MATLAB character vector literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
