// Package cmd implements the daex subcommands.
//
// Each subcommand is a kong command struct with a Run(context.Context)
// method. Commands that read a model embed [Input]; output goes to the
// command's Out writer, or stdout when unset.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file written by [Init].
	ConfigIdentifier = "config"
)
