package matlab

import (
	"math"
	"strconv"
	"strings"

	"github.com/ardnew/daex/lang"
	"github.com/ardnew/daex/model"
)

// Method bodies are nested three tabs deep: classdef, methods, function.
const body = 3

// emitter renders the classdef for one model.
type emitter struct {
	writer

	src     Source
	opts    options
	params  lang.Set
	dynamic []model.State // ODE and algebraic states, in declaration order
	ordered []model.State // all states in evaluation order
}

func newEmitter(src Source, opts options) (*emitter, error) {
	ordered, err := lang.Resolve(src.GetStates())
	if err != nil {
		return nil, err
	}

	e := &emitter{
		src:     src,
		opts:    opts,
		params:  make(lang.Set, len(src.GetParameters())),
		ordered: ordered,
	}

	for _, p := range src.GetParameters() {
		e.params[p.ID] = struct{}{}
	}

	for _, s := range src.GetStates() {
		if s.Kind.Dynamic() {
			e.dynamic = append(e.dynamic, s)
		}
	}

	return e, nil
}

func (e *emitter) bytes() []byte { return e.buf.Bytes() }

func (e *emitter) translate(equation string) (string, error) {
	return lang.Translate(equation, e.params)
}

func (e *emitter) class() error {
	e.header()
	e.constructor()
	e.defaultParameters()
	e.initialConditions()
	e.massMatrix()
	e.simulationOptions()

	if err := e.ode(); err != nil {
		return err
	}

	if err := e.simout2struct(); err != nil {
		return err
	}

	e.plot()

	e.line(1, "end")
	e.line(0, "end")

	return nil
}

func (e *emitter) header() {
	e.linef(0, "classdef %s", e.src.ModelName())
	e.warning(1, e.opts.generator)
	e.line(1, "properties")
	e.line(2, "p      % Default model parameters.")
	e.line(2, "x0     % Default initial conditions.")
	e.line(2, "M      % Mass matrix for DAE systems.")
	e.line(2, "opts   % Simulation options.")
	e.line(1, "end")
	e.blank()
	e.line(1, "methods")
}

func (e *emitter) constructor() {
	name := e.src.ModelName()

	e.linef(2, "function obj = %s()", name)
	e.linef(body, "%%%% Constructor of %s.", name)
	e.line(body, "obj.p    = obj.default_parameters();")
	e.line(body, "obj.x0   = obj.initial_conditions();")
	e.line(body, "obj.M    = obj.mass_matrix();")
	e.line(body, "obj.opts = obj.simulation_options();")
	e.line(2, "end")
	e.blank()
}

func (e *emitter) defaultParameters() {
	e.line(2, "function p = default_parameters(~)")
	e.line(body, "%% Default parameters value.")
	e.line(body, "p = [];")

	for _, p := range e.src.GetParameters() {
		e.linef(body, "p.%s = %s;", p.ID, number(p.Value))
	}

	e.line(2, "end")
	e.blank()
}

func (e *emitter) initialConditions() {
	e.line(2, "function x0 = initial_conditions(~)")
	e.line(body, "%% Default initial conditions.")
	e.line(body, "x0 = [")

	for _, s := range e.dynamic {
		if s.Kind == model.KindAlgebraic {
			e.linef(body+1, "%s %% %s (algebraic)", number(s.Initial), s.ID)
		} else {
			e.linef(body+1, "%s %% %s", number(s.Initial), s.ID)
		}
	}

	e.line(body, "];")
	e.line(2, "end")
	e.blank()
}

// massMatrix writes a diagonal matrix with 1 for each ODE state and 0 for
// each algebraic state.
func (e *emitter) massMatrix() {
	e.line(2, "function M = mass_matrix(~)")
	e.line(body, "%% Mass matrix for DAE systems.")
	e.line(body, "M = [")

	n := len(e.dynamic)

	for i, s := range e.dynamic {
		diag := "0"
		if s.Kind == model.KindODE {
			diag = "1"
		}

		row := make([]string, n)
		for j := range row {
			row[j] = "0"
		}

		row[i] = diag

		e.line(body+1, strings.Join(row, " "))
	}

	e.line(body, "];")
	e.line(2, "end")
	e.blank()
}

func (e *emitter) simulationOptions() {
	e.line(2, "function opts = simulation_options(~)")
	e.line(body, "%% Default simulation options.")
	e.line(body, "opts = [];")

	for _, o := range e.src.GetOptions() {
		e.linef(body, "opts.%s = %s;", o.Key, o.Value)
	}

	e.line(2, "end")
	e.blank()
}

// localStates binds every state to a local variable: ODE and algebraic
// states from the rows of x, then assignment states in evaluation order.
func (e *emitter) localStates() error {
	e.line(body, "% ODE and algebraic states:")

	for i, s := range e.dynamic {
		e.linef(body, "%s = x(%d,:);", s.ID, i+1)
	}

	e.blank()
	e.line(body, "% Assignment states:")

	for _, s := range e.ordered {
		if s.Kind.Dynamic() {
			continue
		}

		eq, err := e.translate(s.Equation)
		if err != nil {
			return err
		}

		e.linef(body, "%s = %s;", s.ID, eq)
	}

	e.blank()

	return nil
}

func (e *emitter) ode() error {
	e.line(2, "function dx = ode(~,t,x,p)")
	e.line(body, "%% Evaluate the ODE.")
	e.line(body, "%")
	e.line(body, "% Args:")
	e.line(body, "%\t t Current time in the simulation.")
	e.line(body, "%\t x Array with the state value.")
	e.line(body, "%\t p Struct with the parameters.")
	e.line(body, "%")
	e.line(body, "% Return:")
	e.line(body, "%\t dx Array with the ODE.")
	e.blank()

	if err := e.localStates(); err != nil {
		return err
	}

	for i, s := range e.dynamic {
		eq, err := e.translate(s.Equation)
		if err != nil {
			return err
		}

		e.linef(body, "%% der(%s)", s.ID)
		e.linef(body, "dx(%d,1) = %s;", i+1, eq)
		e.blank()
	}

	e.line(2, "end")
	e.blank()

	return nil
}

func (e *emitter) simout2struct() error {
	e.line(2, "function out = simout2struct(~,t,x,p)")
	e.line(body, "%% Convert the simulation output into an easy-to-use struct.")
	e.blank()
	e.line(body, "% We need to transpose state matrix.")
	e.line(body, "x = x';")

	if err := e.localStates(); err != nil {
		return err
	}

	e.line(body, "% Save simulation time.")
	e.line(body, "out.t = t;")
	e.blank()
	e.line(body, "% Vector for extending single-value states and parameters.")
	e.line(body, "ones_t = ones(size(t'));")
	e.blank()
	e.line(body, "% Save states.")

	for _, s := range e.src.GetStates() {
		e.linef(body, "out.%[1]s = (%[1]s.*ones_t)';", s.ID)
	}

	e.blank()
	e.line(body, "% Save parameters.")

	for _, p := range e.src.GetParameters() {
		e.linef(body, "out.%[1]s = (p.%[1]s.*ones_t)';", p.ID)
	}

	e.blank()
	e.line(2, "end")
	e.blank()

	return nil
}

// plot writes one figure per state context, in order of first appearance.
// States without a context are plotted in a figure named after the model.
func (e *emitter) plot() {
	e.line(2, "function plot(~,out)")
	e.line(body, "%% Plot simulation result.")

	var (
		names  []string
		groups = map[string][]model.State{}
	)

	for _, s := range e.src.GetStates() {
		c := s.Context
		if c == "" {
			c = e.src.ModelName()
		}

		if _, ok := groups[c]; !ok {
			names = append(names, c)
		}

		groups[c] = append(groups[c], s)
	}

	for _, c := range names {
		states := groups[c]
		rows, cols := grid(len(states))

		e.linef(body, "figure('Name',%s);", quote(c))

		for i, s := range states {
			e.linef(body, "subplot(%d,%d,%d);", rows, cols, i+1)
			e.linef(body, "plot(out.t, out.%s);", s.ID)
			e.linef(body, "title(%s);", quote(s.ID))
			e.line(body, "ylim([0, +inf]);")
			e.line(body, "grid on;")
			e.blank()
		}
	}

	e.line(2, "end")
}

// grid returns the subplot layout for n plots: a square of side
// ceil(sqrt(n)), with columns removed while the remaining ones still hold
// n plots.
func grid(n int) (rows, cols int) {
	rows = int(math.Ceil(math.Sqrt(float64(n))))
	cols = rows

	for cols > 1 && rows*(cols-1) >= n {
		cols--
	}

	return rows, cols
}

// number formats v with the fewest digits that parse back to v.
func number(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
