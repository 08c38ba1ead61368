// Package config loads retransdiff settings from built-in defaults, an optional YAML file, the settings table of the history database, and RETRANSDIFF_* environment variables, in
// increasing order of priority. Every field remembers which layer supplied it (see Provenance), so `retransdiff settings list` can explain where a value came from.
package config
