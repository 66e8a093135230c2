// Package model defines the DAE model consumed by the exporter: named
// parameters, typed states with their equations, and simulation options.
//
// A model is loaded from YAML, JSON, or HCL with [Load] or [Decode] and
// checked with [Model.Validate]. Loaded models are read-only; the lang and
// matlab packages only reorder and rewrite what a model declares.
package model
