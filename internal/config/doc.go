// Package config loads the gavel configuration from a YAML file.
//
// The file defaults to .gavel.yaml in the working directory. Values of the
// form ${VAR} and ${VAR:-default} are interpolated from the environment
// before parsing, so API keys never need to appear in the file itself.
// Fields absent from the file keep their built-in defaults.
//
// Use [Load] to obtain a [Config] and [Example] for a starter file.
package config
