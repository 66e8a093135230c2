// Package cli contains the command line interface for daex.
//
// # Usage
//
//	daex [flags] <command> [args]
//
// The default command is export, so "daex model.yaml" writes model.m and
// model_example.m into the current directory.
//
// # Commands
//
//   - export: write the MATLAB class file and example driver script
//   - order: print the state evaluation order
//   - translate: rewrite a formula as a MATLAB expression
//   - refs: print the names a formula references
//   - eval: print parameter and state values at the initial time
//   - fmt: reformat a model file as YAML or JSON
//   - repl: translate formulas interactively against a model
//   - init: write the current flag values to the configuration file
//
// Model files are YAML (.yaml, .yml), JSON (.json), or HCL (.hcl); "-"
// reads YAML from stdin unless --format says otherwise.
//
// # Configuration
//
// Flag defaults are read from config.yaml and config.json in the user
// configuration directory (e.g. ~/.config/daex). Keys are flag names,
// with hyphens or underscores:
//
//	log_level: debug
//	log_format: text
//
// Every flag can also be set with a DAEX_ environment variable, such as
// DAEX_LOG_LEVEL. Command-line flags take precedence.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output and indent JSON output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// The profiling flags are then available:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/daex/pprof)
package cli
