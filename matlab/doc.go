// Package matlab renders a DAE model as MATLAB source.
//
// [Class] produces a classdef file holding the model's default parameters,
// initial conditions, mass matrix, and simulation options, together with
// methods that evaluate the right-hand side for ode15s, expand a
// simulation result into a struct, and plot it. [Example] produces a driver
// script that simulates the class with its defaults. [Export] writes both
// files to a directory.
//
// Equations are rewritten with [lang.Translate] and assignment states are
// emitted in [lang.Order], so the generated code evaluates every local
// variable after the variables it uses.
package matlab
