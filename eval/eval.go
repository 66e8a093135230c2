package eval

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/expr-lang/expr"

	"github.com/ardnew/daex/lang"
	"github.com/ardnew/daex/log"
	"github.com/ardnew/daex/model"
	"github.com/ardnew/daex/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrEvaluate   = pkg.NewError("evaluate equation")
	ErrNotNumeric = pkg.NewError("result is not numeric")
)

// TimeVar is the name bound to the initial time, unless a parameter or
// state has the same name.
const TimeVar = "t"

// Values maps parameter and state ids to their values.
type Values map[string]float64

// env converts v into an expr-lang environment.
func (v Values) env() map[string]any {
	env := make(map[string]any, len(v))
	for id, x := range v {
		env[id] = x
	}

	return env
}

// Initial returns the value of every parameter and state of m at the
// initial time. The initial time is the t_init option, or zero.
func Initial(ctx context.Context, m *model.Model) (Values, error) {
	vals := make(Values, len(m.Parameters)+len(m.States)+1)

	t0 := 0.0

	if s, ok := m.OptionValue("t_init"); ok {
		t, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, ErrEvaluate.Wrap(err).With(slog.String("option", "t_init"))
		}

		t0 = t
	}

	vals[TimeVar] = t0

	for _, p := range m.Parameters {
		vals[p.ID] = p.Value
	}

	ordered, err := lang.Resolve(m.States, lang.WithLogger(log.Default()))
	if err != nil {
		return nil, err
	}

	for _, s := range ordered {
		if s.Kind.Dynamic() {
			vals[s.ID] = s.Initial

			continue
		}

		x, err := Expression(s.Equation, vals)
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.String("state", s.ID))
		}

		log.TraceContext(ctx, "evaluated assignment",
			slog.String("state", s.ID),
			slog.Float64("value", x),
		)

		vals[s.ID] = x
	}

	return vals, nil
}

// Expression evaluates equation with the identifiers in vals bound.
func Expression(equation string, vals Values) (float64, error) {
	env := vals.env()

	opts := append([]expr.Option{expr.Env(env)}, functions...)

	program, err := expr.Compile(equation, opts...)
	if err != nil {
		return 0, ErrEvaluate.Wrap(err).With(slog.String("equation", equation))
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return 0, ErrEvaluate.Wrap(err).With(slog.String("equation", equation))
	}

	x, err := toFloat(out)
	if err != nil {
		return 0, ErrEvaluate.Wrap(err).With(slog.String("equation", equation))
	}

	return x, nil
}

// functions supplements the expr-lang builtins (abs, min, max, floor,
// ceil) with the math functions a rate law commonly uses.
var functions = []expr.Option{
	unary("exp", math.Exp),
	unary("log", math.Log),
	unary("log10", math.Log10),
	unary("sqrt", math.Sqrt),
	unary("sin", math.Sin),
	unary("cos", math.Cos),
	unary("tan", math.Tan),
	binary("pow", math.Pow),
}

func unary(name string, fn func(float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s: expected 1 argument, got %d", name, len(params))
		}

		x, err := toFloat(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return fn(x), nil
	})
}

func binary(name string, fn func(float64, float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(params))
		}

		x, err := toFloat(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		y, err := toFloat(params[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		return fn(x, y), nil
	})
}

// toFloat converts an expr-lang result to float64. Booleans convert to 1
// and 0.
func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}

		return 0, nil
	}

	return 0, ErrNotNumeric.With(slog.String("type", fmt.Sprintf("%T", v)))
}
