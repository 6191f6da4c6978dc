// Package config loads service configuration from YAML files,
// .env files and environment variables, in that order of precedence
// (environment wins). Provider credentials are expected to come from
// the environment; the YAML file carries tunables like poll intervals
// and server timeouts.
package config
