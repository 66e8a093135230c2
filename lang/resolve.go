package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/daex/model"
)

// pending is an assignment state awaiting its references.
type pending struct {
	index int
	refs  []string
}

// Order returns the ids of states in evaluation order.
//
// ODE and algebraic states come first, in declaration order; their values
// are supplied by the solver. Assignment states follow, each placed after
// every state its equation references. Unresolved assignment states are
// scanned repeatedly in declaration order, and a state becomes available to
// later states of the same scan as soon as it is placed.
//
// If a scan places nothing, Order returns a [*DependencyError] naming the
// states left over. A state that references itself can never be placed.
// Names that are not state ids do not constrain the order.
func Order(states []model.State, opts ...Option) ([]string, error) {
	index, err := order(states, makeOptions(opts...))
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(index))
	for i, n := range index {
		ids[i] = states[n].ID
	}

	return ids, nil
}

// Resolve is like [Order] but returns the states themselves.
func Resolve(states []model.State, opts ...Option) ([]model.State, error) {
	index, err := order(states, makeOptions(opts...))
	if err != nil {
		return nil, err
	}

	ordered := make([]model.State, len(index))
	for i, n := range index {
		ordered[i] = states[n]
	}

	return ordered, nil
}

// order returns indexes into states in evaluation order.
func order(states []model.State, o options) ([]int, error) {
	all := make(Set, len(states))
	for _, s := range states {
		all[s.ID] = struct{}{}
	}

	var (
		result   = make([]int, 0, len(states))
		resolved = make(Set, len(states))
		wait     []pending
	)

	for i, s := range states {
		if s.Kind.Dynamic() {
			result = append(result, i)
			resolved[s.ID] = struct{}{}

			continue
		}

		refs, err := References(s.Equation, all)
		if err != nil {
			return nil, err
		}

		wait = append(wait, pending{index: i, refs: refs})
	}

	ctx := context.Background()

	for scan := 1; len(wait) > 0; scan++ {
		before := len(wait)
		keep := wait[:0]

		for _, p := range wait {
			if !resolvedAll(resolved, p.refs) {
				keep = append(keep, p)

				continue
			}

			result = append(result, p.index)
			resolved[states[p.index].ID] = struct{}{}
		}

		wait = keep

		o.logger.TraceContext(ctx, "dependency scan",
			slog.Int("scan", scan),
			slog.Int("placed", before-len(wait)),
			slog.Int("remaining", len(wait)),
		)

		if len(wait) == before {
			return nil, dependencyError(states, resolved, wait)
		}
	}

	return result, nil
}

func resolvedAll(resolved Set, refs []string) bool {
	for _, ref := range refs {
		if !resolved.Has(ref) {
			return false
		}
	}

	return true
}

// dependencyError describes the states left in wait. Every waiting state
// references at least one other waiting state, so following the first
// unresolved reference from the first waiting state always closes a cycle.
func dependencyError(states []model.State, resolved Set, wait []pending) *DependencyError {
	err := &DependencyError{States: make([]string, len(wait))}

	refs := make(map[string][]string, len(wait))

	for i, p := range wait {
		id := states[p.index].ID
		err.States[i] = id
		refs[id] = p.refs
	}

	seen := make(map[string]int, len(wait))
	path := []string{}

	for id := err.States[0]; ; {
		if at, ok := seen[id]; ok {
			err.Cycle = append(path[at:], id)

			break
		}

		seen[id] = len(path)
		path = append(path, id)

		next := ""

		for _, ref := range refs[id] {
			if !resolved.Has(ref) {
				next = ref

				break
			}
		}

		if next == "" {
			break
		}

		id = next
	}

	return err
}
