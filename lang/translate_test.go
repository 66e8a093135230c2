package lang

import (
	"errors"
	"testing"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		equation string
		params   Set
		opts     []Option
		want     string
	}{
		{"parameter product", "a*b+c", NewSet("a"), nil, "p.a.*b + c"},
		{"no parameters", "a1+1", nil, nil, "a1 + 1"},
		{"unary minus", "-k*x", NewSet("k"), nil, " - p.k.*x"},
		{"division and power", "x/y^2", nil, nil, "x./y.^2"},
		{"double star power", "a**b", NewSet("a"), nil, "p.a.^b"},
		{"adjacent names merge", "a b", NewSet("a"), nil, "p.ab"},
		{"numbers unchanged", "1.5e-3*2", nil, nil, "1.5e-3.*2"},
		{"parentheses unchanged", "((x))", nil, nil, "((x))"},
		{"function call", "exp(-t/tau)", NewSet("tau"), nil, "exp( - t./p.tau)"},
		{"commas verbatim", "max(a, b)", NewSet("b"), nil, "max(a,p.b)"},
		{"relational verbatim", "x >= 1 && y != 2", nil, nil, "x>=1&&y!=2"},
		{"string verbatim", "f('a*b')", nil, nil, "f('a*b')"},
		{"whitespace dropped", " k  *  x ", NewSet("k"), nil, "p.k.*x"},
		{"parameter name as prefix", "kk*k", NewSet("k"), nil, "kk.*p.k"},
		{"custom namespace", "k*x", NewSet("k"), []Option{WithNamespace("q")}, "q.k.*x"},
		{"empty namespace", "k*x", NewSet("k"), []Option{WithNamespace("")}, "k.*x"},
		{"empty", "", NewSet("k"), nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.equation, tt.params, tt.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTranslateDeterministic(t *testing.T) {
	params := NewSet("k", "v")

	first, err := Translate("v*x/(k+x)", params)
	if err != nil {
		t.Fatal(err)
	}

	for range 10 {
		got, _ := Translate("v*x/(k+x)", params)
		if got != first {
			t.Fatalf("expected %q, got %q", first, got)
		}
	}
}

func TestTranslateError(t *testing.T) {
	_, err := Translate("k*x $", NewSet("k"))
	if !errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("expected ErrMalformedExpression, got %v", err)
	}
}

func TestReferences(t *testing.T) {
	tests := []struct {
		name     string
		equation string
		known    Set
		want     []string
	}{
		{"all known", "x + 2*y - z", NewSet("x", "y", "z", "w"), []string{"x", "y", "z"}},
		{"duplicates kept", "x*x + y", NewSet("x", "y"), []string{"x", "x", "y"}},
		{"unknown ignored", "k*x + exp(t)", NewSet("x"), []string{"x"}},
		{"encounter order", "z + a", NewSet("a", "z"), []string{"z", "a"}},
		{"strings ignored", "f('x')", NewSet("x"), nil},
		{"none", "1 + 2", NewSet("x"), nil},
		{"nil set", "x", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := References(tt.equation, tt.known)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("reference %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestReferencesError(t *testing.T) {
	refs, err := References("x + 2y", NewSet("x"))
	if !errors.Is(err, ErrMalformedExpression) {
		t.Fatalf("expected ErrMalformedExpression, got %v", err)
	}

	if refs != nil {
		t.Errorf("expected no references, got %v", refs)
	}
}

func TestSet(t *testing.T) {
	s := NewSet("b", "a", "b")

	if len(s) != 2 || !s.Has("a") || s.Has("c") {
		t.Errorf("unexpected set %v", s)
	}

	if got := s.Sorted(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}

	var empty Set
	if empty.Has("a") {
		t.Error("expected nil set to be empty")
	}
}
