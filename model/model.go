package model

import (
	"log/slog"

	"github.com/ardnew/daex/pkg"
)

// Errors returned by this package. Decorated copies match with errors.Is.
var (
	ErrDecode        = pkg.NewError("decode model")
	ErrEncode        = pkg.NewError("encode model")
	ErrUnknownFormat = pkg.NewError("unknown model format")
	ErrInvalidModel  = pkg.NewError("invalid model")
	ErrUnknownKind   = pkg.NewError("unknown state kind")
)

// Parameter is a named constant of the model, emitted into the generated
// parameter structure.
type Parameter struct {
	ID    string
	Value float64
}

// State is a model variable. Equation is the derivative of an ODE state,
// the residual of an algebraic state, or the defining expression of an
// assignment state.
type State struct {
	ID       string
	Kind     Kind
	Equation string
	Initial  float64
	Context  string
}

// Option is a simulation option. Value is echoed verbatim into generated
// code.
type Option struct {
	Key   string
	Value string
}

// Model is a complete DAE model.
//
// Parameter ids and state ids must be disjoint; the translator cannot tell
// a parameter from a state with the same name.
type Model struct {
	Name       string
	Parameters []Parameter
	States     []State
	Options    []Option
}

// ModelName returns the model name used for generated identifiers.
func (m *Model) ModelName() string { return m.Name }

// GetStates returns the states in declaration order.
func (m *Model) GetStates() []State { return m.States }

// GetParameters returns the parameters in declaration order.
func (m *Model) GetParameters() []Parameter { return m.Parameters }

// GetOptions returns the simulation options in declaration order.
func (m *Model) GetOptions() []Option { return m.Options }

// StateIDs returns the set of all state ids.
func (m *Model) StateIDs() map[string]struct{} {
	set := make(map[string]struct{}, len(m.States))
	for _, s := range m.States {
		set[s.ID] = struct{}{}
	}

	return set
}

// ParameterIDs returns the set of all parameter ids.
func (m *Model) ParameterIDs() map[string]struct{} {
	set := make(map[string]struct{}, len(m.Parameters))
	for _, p := range m.Parameters {
		set[p.ID] = struct{}{}
	}

	return set
}

// OptionValue returns the value of the option named key.
func (m *Model) OptionValue(key string) (string, bool) {
	for _, o := range m.Options {
		if o.Key == key {
			return o.Value, true
		}
	}

	return "", false
}

// Validate reports the first structural problem found in m.
//
// Cyclic references among assignment states are not detected here; they are
// reported when the states are ordered.
func (m *Model) Validate() error {
	if !IsIdentifier(m.Name) {
		return invalid("model name is not an identifier", slog.String("name", m.Name))
	}

	params := make(map[string]struct{}, len(m.Parameters))

	for _, p := range m.Parameters {
		if !IsIdentifier(p.ID) {
			return invalid("parameter id is not an identifier", slog.String("id", p.ID))
		}

		if _, dup := params[p.ID]; dup {
			return invalid("duplicate parameter id", slog.String("id", p.ID))
		}

		params[p.ID] = struct{}{}
	}

	states := make(map[string]struct{}, len(m.States))

	for _, s := range m.States {
		if !IsIdentifier(s.ID) {
			return invalid("state id is not an identifier", slog.String("id", s.ID))
		}

		if _, dup := states[s.ID]; dup {
			return invalid("duplicate state id", slog.String("id", s.ID))
		}

		if _, clash := params[s.ID]; clash {
			return invalid("state id is also a parameter id", slog.String("id", s.ID))
		}

		if s.Kind < KindODE || s.Kind > KindAssignment {
			return invalid("state kind is invalid",
				slog.String("id", s.ID), slog.String("kind", s.Kind.String()))
		}

		if s.Equation == "" {
			return invalid("state has no equation",
				slog.String("id", s.ID), slog.String("kind", s.Kind.String()))
		}

		states[s.ID] = struct{}{}
	}

	for _, o := range m.Options {
		if !IsIdentifier(o.Key) {
			return invalid("option key is not an identifier", slog.String("key", o.Key))
		}
	}

	return nil
}

func invalid(reason string, attrs ...slog.Attr) error {
	return ErrInvalidModel.With(append([]slog.Attr{slog.String("reason", reason)}, attrs...)...)
}
