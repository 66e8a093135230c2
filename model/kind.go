package model

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"log/slog"
	"strings"
)

// Kind classifies a state by how its value is determined.
type Kind int

const (
	// KindODE is a state whose time derivative is given by its equation.
	KindODE Kind = iota // ode
	// KindAlgebraic is a state defined implicitly by its equation, solved
	// alongside the ODE states.
	KindAlgebraic // algebraic
	// KindAssignment is a state computed explicitly from other states and
	// parameters. It has no dynamics of its own.
	KindAssignment // assignment
)

// kindAlias maps accepted spellings that are not a Kind's canonical name.
var kindAlias = map[string]Kind{
	"assigment": KindAssignment,
	"alg":       KindAlgebraic,
}

// ParseKind parses the case-insensitive text form of a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for k := KindODE; k <= KindAssignment; k++ {
		if k.String() == name {
			return k, nil
		}
	}

	if k, ok := kindAlias[name]; ok {
		return k, nil
	}

	return 0, ErrUnknownKind.With(slog.String("kind", s))
}

// Dynamic reports whether states of kind k occupy a slot of the solver's
// state vector (ODE and algebraic states).
func (k Kind) Dynamic() bool {
	return k == KindODE || k == KindAlgebraic
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}
