// Package config loads, normalizes, and validates the spool TOML
// configuration. Defaults are chosen so a bare `spool run` in a
// directory containing an urls/ folder does something sensible.
package config
