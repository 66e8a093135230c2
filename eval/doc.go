// Package eval computes the values of a model's states at the initial
// time. Parameters and the initial conditions of ODE and algebraic states
// are bound first; assignment states are then evaluated in dependency
// order with expr-lang.
//
// Formulas use the model's own syntax, where ^ is exponentiation. The math
// functions exp, log, log10, sqrt, sin, cos, tan, pow, abs, min, max,
// floor, and ceil are available.
package eval
