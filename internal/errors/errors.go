// Package errors defines the structured error and diagnostic types cahirp
// uses to report the failure kinds named in the recipe engine's error model:
// parse diagnostics, missing files, unresolved cursors, and persist failures.
//
// Every kind is its own exported struct implementing the standard error
// interface, carrying exactly the fields a caller needs to render a useful
// message or to discriminate the kind with errors.As.
package errors

import "fmt"

// ParseDiagnostic is returned when a recipe form or parameter fails to parse.
// The offending form is skipped; parsing of the remaining forms continues.
type ParseDiagnostic struct {
	// Mod is the owning mod's directory name.
	Mod string

	// File is the recipe file the offending form came from.
	File string

	// Reason describes what went wrong.
	Reason string
}

// Error implements the error interface.
func (e *ParseDiagnostic) Error() string {
	return fmt.Sprintf("recipe syntax error in %s (mod %s): %s", e.File, e.Mod, e.Reason)
}

// NewParseDiagnostic creates a new ParseDiagnostic.
func NewParseDiagnostic(mod, file, reason string) *ParseDiagnostic {
	return &ParseDiagnostic{Mod: mod, File: file, Reason: reason}
}

// MissingFileError is reported when a file(suffix) parameter resolves to no
// readable file anywhere in the search path. Directives targeting only
// missing files are effectively no-ops; this is not a build failure.
type MissingFileError struct {
	// Suffix is the path suffix that could not be resolved.
	Suffix string
}

// Error implements the error interface.
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("could not find %s in the output, merged, mod, or pristine content folders; skipping", e.Suffix)
}

// NewMissingFileError creates a new MissingFileError.
func NewMissingFileError(suffix string) *MissingFileError {
	return &MissingFileError{Suffix: suffix}
}

// NoLocationError is reported when a directive's cursor resolution ends out
// of bounds or off a character boundary. The file is left unchanged; the
// directive still counts as executed (it still contributes its Define
// effects) to keep the orchestrator making forward progress.
type NoLocationError struct {
	// DirectiveID identifies the directive that failed to resolve.
	DirectiveID int

	// File is the target file the directive was emitting into.
	File string

	// Notes carries every note(...) parameter from the directive, surfaced
	// verbatim to help the operator find and fix the recipe.
	Notes []string
}

// Error implements the error interface.
func (e *NoLocationError) Error() string {
	msg := fmt.Sprintf("no location found for directive #%d in %s", e.DirectiveID, e.File)
	for _, note := range e.Notes {
		msg += fmt.Sprintf("\n  note: %s", note)
	}
	return msg
}

// NewNoLocationError creates a new NoLocationError.
func NewNoLocationError(directiveID int, file string, notes []string) *NoLocationError {
	return &NoLocationError{DirectiveID: directiveID, File: file, Notes: notes}
}

// PersistError is reported when writing one pool entry to disk fails.
// Persist always attempts every remaining entry regardless.
type PersistError struct {
	// Path is the output path that failed to write.
	Path string

	// Cause is the underlying I/O error.
	Cause error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Path, e.Cause)
}

// Unwrap allows errors.Is/errors.As to reach the underlying I/O error.
func (e *PersistError) Unwrap() error {
	return e.Cause
}

// NewPersistError creates a new PersistError.
func NewPersistError(path string, cause error) *PersistError {
	return &PersistError{Path: path, Cause: cause}
}

// ModsRootError is the one catastrophic failure that aborts a build: the
// engine could not even enumerate the mods directory.
type ModsRootError struct {
	// Path is the mods root that could not be read.
	Path string

	// Cause is the underlying I/O error.
	Cause error
}

// Error implements the error interface.
func (e *ModsRootError) Error() string {
	return fmt.Sprintf("could not read mods folder %s: %v", e.Path, e.Cause)
}

// Unwrap allows errors.Is/errors.As to reach the underlying I/O error.
func (e *ModsRootError) Unwrap() error {
	return e.Cause
}

// NewModsRootError creates a new ModsRootError.
func NewModsRootError(path string, cause error) *ModsRootError {
	return &ModsRootError{Path: path, Cause: cause}
}
