// Package format provides the ANSI ColorScheme used by cahirp's terminal
// diagnostics: internal/diag's TextSink colorizes diagnostic lines with it.
// The CLI's --pretty build summary is styled separately with lipgloss.
package format
