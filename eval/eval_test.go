package eval

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ardnew/daex/lang"
	"github.com/ardnew/daex/model"
)

func TestExpression(t *testing.T) {
	vals := Values{"x": 2, "k": 0.5, "t": 0}

	tests := []struct {
		equation string
		want     float64
	}{
		{"-k*x", -1},
		{"x^3", 8},
		{"x/4", 0.5},
		{"1/2", 0.5},
		{"exp(0) + log(1)", 1},
		{"log10(100)", 2},
		{"sqrt(x*8)", 4},
		{"sin(0) + cos(0) + tan(0)", 1},
		{"pow(x, 0.5)*pow(x, 0.5)", 2},
		{"abs(-x)", 2},
		{"min(x, k) + max(x, k)", 2.5},
		{"floor(k) + ceil(k)", 1},
		{"x > 1", 1},
		{"x < 1", 0},
		{"3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.equation, func(t *testing.T) {
			got, err := Expression(tt.equation, vals)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name     string
		equation string
	}{
		{"unknown name", "y + 1"},
		{"syntax", "x +"},
		{"string result", `"abc"`},
		{"wrong arity", "exp(1, 2)"},
		{"non-numeric argument", `sqrt("a")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expression(tt.equation, Values{"x": 1})
			if !errors.Is(err, ErrEvaluate) {
				t.Fatalf("expected ErrEvaluate, got %v", err)
			}
		})
	}
}

func TestInitial(t *testing.T) {
	m := &model.Model{
		Name:       "enzyme",
		Parameters: []model.Parameter{{ID: "k", Value: 2}, {ID: "Km", Value: 1}},
		States: []model.State{
			{ID: "rate", Kind: model.KindAssignment, Equation: "k*S/(Km+S)"},
			{ID: "S", Kind: model.KindODE, Equation: "-rate", Initial: 3},
			{ID: "double", Kind: model.KindAssignment, Equation: "2*rate + t"},
			{ID: "z", Kind: model.KindAlgebraic, Equation: "z - S", Initial: 3},
		},
		Options: []model.Option{{Key: "t_init", Value: "1"}},
	}

	vals, err := Initial(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Values{"k": 2, "Km": 1, "S": 3, "z": 3, "rate": 1.5, "double": 4, "t": 1}
	for id, x := range want {
		if got, ok := vals[id]; !ok || math.Abs(got-x) > 1e-12 {
			t.Errorf("%s: expected %v, got %v (%v)", id, x, got, ok)
		}
	}
}

func TestInitialErrors(t *testing.T) {
	cyclic := &model.Model{
		Name: "m",
		States: []model.State{
			{ID: "a", Kind: model.KindAssignment, Equation: "b"},
			{ID: "b", Kind: model.KindAssignment, Equation: "a"},
		},
	}

	if _, err := Initial(context.Background(), cyclic); !errors.Is(err, lang.ErrCyclicDependency) {
		t.Errorf("expected ErrCyclicDependency, got %v", err)
	}

	badTime := &model.Model{Name: "m", Options: []model.Option{{Key: "t_init", Value: "soon"}}}

	if _, err := Initial(context.Background(), badTime); !errors.Is(err, ErrEvaluate) {
		t.Errorf("expected ErrEvaluate, got %v", err)
	}

	unbound := &model.Model{
		Name:   "m",
		States: []model.State{{ID: "a", Kind: model.KindAssignment, Equation: "q*2"}},
	}

	if _, err := Initial(context.Background(), unbound); !errors.Is(err, ErrEvaluate) {
		t.Errorf("expected ErrEvaluate, got %v", err)
	}
}
