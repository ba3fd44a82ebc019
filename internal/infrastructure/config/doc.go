// Package config loads host configuration from the environment.
//
// All settings have sensible defaults so the host starts with nothing but
// EDITOR_URL set. Load validates the combination: with discovery disabled a
// static editor URL is required.
package config
