// Package config resolves the CLI's own runtime settings from multiple sources
// (YAML settings file, environment variables, CLI flags) with precedence:
// CLI flags > YAML settings > Environment variables > Defaults. It does not
// read the node configuration itself; see package scaffold for that.
package config
