// Package cli wires together the Cobra command tree for the gavel binary.
//
// It defines the root command and all subcommands (review, analyze, github,
// serve, cache, config, models, version), binds flags, reads configuration,
// runs the review pipeline, and returns deterministic exit codes for CI
// gating.
package cli
