// Package filepool implements the in-memory mutable-file cache (§4.3): a
// map, built once at construction and never structurally mutated again, from
// output-relative path suffix to a mutex-guarded cell holding that file's
// current contents. Concurrent emits into distinct suffixes never block each
// other; concurrent emits into the same suffix serialize on that cell's
// mutex, following the teacher's per-key-lock-over-a-read-only-map pattern.
package filepool

import (
	"os"
	"path/filepath"
	"sync"

	cahirperrors "github.com/aelto/cahirp/internal/errors"
	"github.com/aelto/cahirp/internal/source"
)

// cell is the single-slot mutable-file cache entry for one resolved suffix.
type cell struct {
	mu       sync.Mutex
	contents string
}

// Lock acquires exclusive access to the cell and returns its current
// contents and an Unlock closure that stores the new contents and releases
// the lock. Callers must always call Unlock exactly once.
func (c *cell) Lock() (string, func(newContents string)) {
	c.mu.Lock()
	return c.contents, func(newContents string) {
		c.contents = newContents
		c.mu.Unlock()
	}
}

// Pool is the resolved, read-only-structure file cache for one build.
type Pool struct {
	outputRoot string
	cells      map[string]*cell
}

// Build resolves every suffix in suffixes against searchPath, in order,
// taking the first directory that yields readable contents. Resolved
// suffixes are stored once, keyed by the suffix itself; duplicate
// resolutions across directives are collapsed. Suffixes that resolve
// nowhere are reported in the returned errors, one MissingFileError per suffix, and get
// no pool entry — directives referencing them silently have no effect.
func Build(reader source.Reader, outputRoot string, searchPath []string, suffixes []string) (*Pool, []error) {
	p := &Pool{outputRoot: outputRoot, cells: make(map[string]*cell)}
	var errs []error

	seen := make(map[string]bool)
	for _, suffix := range suffixes {
		if seen[suffix] {
			continue
		}
		seen[suffix] = true

		contents, ok := resolve(reader, searchPath, suffix)
		if !ok {
			errs = append(errs, cahirperrors.NewMissingFileError(suffix))
			continue
		}
		p.cells[suffix] = &cell{contents: contents}
	}

	return p, errs
}

func resolve(reader source.Reader, searchPath []string, suffix string) (string, bool) {
	for _, dir := range searchPath {
		contents, err := reader.Read(filepath.Join(dir, suffix))
		if err == nil {
			return contents, true
		}
	}
	return "", false
}

// Lock returns the cell for suffix and whether it exists in the pool. A
// directive targeting a suffix with no pool entry (a missing file) should
// skip emitting into it entirely.
func (p *Pool) Lock(suffix string) (*cell, bool) {
	c, ok := p.cells[suffix]
	return c, ok
}

// Suffixes returns every resolved suffix in the pool, for diagnostics and
// tests. Order is unspecified.
func (p *Pool) Suffixes() []string {
	out := make([]string, 0, len(p.cells))
	for s := range p.cells {
		out = append(out, s)
	}
	return out
}

// Persist writes every pool cell to <outputRoot>/<suffix>, creating missing
// parent directories as needed. Writes are atomic: each file is written to a
// sibling temp file in the same directory, fsync'd, then renamed into place,
// so a crash mid-persist never leaves a half-written script on disk. Persist
// always attempts every entry regardless of earlier failures, collecting one
// PersistError per failed write.
func (p *Pool) Persist() []error {
	var errs []error

	for suffix, c := range p.cells {
		dest := filepath.Join(p.outputRoot, suffix)
		if err := writeAtomic(dest, c.contents); err != nil {
			errs = append(errs, cahirperrors.NewPersistError(dest, err))
		}
	}

	return errs
}

func writeAtomic(dest, contents string) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".cahirp-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(contents); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, dest)
}
