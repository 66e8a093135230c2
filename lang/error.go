package lang

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/daex/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrMalformedExpression = pkg.NewError("malformed expression")
	ErrCyclicDependency    = pkg.NewError("cyclic dependency")
)

// SyntaxError reports a formula that cannot be tokenized.
// It wraps [ErrMalformedExpression].
type SyntaxError struct {
	Formula string // The formula being tokenized
	Offset  int    // Byte offset of the offending input
	Reason  string // What was wrong at Offset
}

func newSyntaxError(formula string, offset int, reason string) *SyntaxError {
	return &SyntaxError{Formula: formula, Offset: offset, Reason: reason}
}

// Column returns the 1-based rune column of Offset.
func (e *SyntaxError) Column() int {
	return utf8.RuneCountInString(e.Formula[:min(e.Offset, len(e.Formula))]) + 1
}

// Snippet returns the formula with a caret under the offending column.
func (e *SyntaxError) Snippet() string {
	var b strings.Builder

	b.WriteString("  | ")
	b.WriteString(e.Formula)
	b.WriteString("\n  | ")
	b.WriteString(strings.Repeat(" ", e.Column()-1))
	b.WriteString("^")

	return b.String()
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return ErrMalformedExpression.Error() +
		" at column " + strconv.Itoa(e.Column()) + ": " + e.Reason +
		"\n" + e.Snippet()
}

// Unwrap returns [ErrMalformedExpression].
func (e *SyntaxError) Unwrap() error { return ErrMalformedExpression }

// LogValue implements slog.LogValuer.
func (e *SyntaxError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrMalformedExpression.Error()),
		slog.String("reason", e.Reason),
		slog.String("formula", e.Formula),
		slog.Int("offset", e.Offset),
		slog.Int("column", e.Column()),
	)
}

// DependencyError reports assignment states that cannot be ordered.
// It wraps [ErrCyclicDependency].
type DependencyError struct {
	// States lists every unresolved state in declaration order.
	States []string
	// Cycle is a closed reference path among States, starting and ending
	// with the same id. A self reference is a cycle of one state.
	Cycle []string
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	var b strings.Builder

	b.WriteString(ErrCyclicDependency.Error())
	b.WriteString(": unresolved states ")
	b.WriteString(strings.Join(e.States, ", "))

	if len(e.Cycle) > 0 {
		b.WriteString(" (cycle ")
		b.WriteString(strings.Join(e.Cycle, " -> "))
		b.WriteString(")")
	}

	return b.String()
}

// Unwrap returns [ErrCyclicDependency].
func (e *DependencyError) Unwrap() error { return ErrCyclicDependency }

// LogValue implements slog.LogValuer.
func (e *DependencyError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrCyclicDependency.Error()),
		slog.Any("states", e.States),
		slog.String("cycle", strings.Join(e.Cycle, " -> ")),
	)
}
