package lang

import "slices"

// Set is a set of identifiers.
type Set map[string]struct{}

// NewSet returns a Set containing ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

// Has reports whether id is in s. A nil Set is empty.
func (s Set) Has(id string) bool {
	_, ok := s[id]

	return ok
}

// Sorted returns the members of s in lexical order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

// References returns the name tokens of equation that are members of
// known, in the order they occur. A name that occurs more than once is
// returned once per occurrence.
func References(equation string, known Set) ([]string, error) {
	var refs []string

	for tok, err := range Tokenize(equation) {
		if err != nil {
			return nil, err
		}

		if tok.Kind == KindName && known.Has(tok.Text) {
			refs = append(refs, tok.Text)
		}
	}

	return refs, nil
}
