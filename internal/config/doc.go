// Package config loads the per-run configuration from the environment.
//
// All settings are read once at startup into an immutable Config passed to
// the core components, keeping those components testable with injected
// configuration. Structural selectors are validated at load time.
package config
