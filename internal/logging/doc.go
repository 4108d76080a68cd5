// Package logging provides slog construction helpers and the attribute
// vocabulary shared across spool components. Two output formats are
// supported: a compact console format for interactive runs and JSON for
// log collection.
package logging
