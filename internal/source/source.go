// Package source defines the narrow external collaborators the recipe
// engine consumes for filesystem access (§6): a text reader that loads a
// file's contents with line endings normalized, and a mod enumerator that
// lists the installed mod directories. Concrete implementations talk to the
// real filesystem; tests substitute in-memory fakes, the same way the
// teacher substitutes CommandExecutor in the discovery package.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Reader loads a file's contents as a string with carriage returns stripped.
type Reader interface {
	Read(path string) (string, error)
}

// FileReader is the default Reader, backed by the real filesystem.
type FileReader struct{}

// Read implements Reader.
func (FileReader) Read(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(raw), "\r", ""), nil
}

// Exists reports whether path names a readable regular file.
func (FileReader) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ModEnumerator lists the mod directories installed under a game root.
type ModEnumerator interface {
	Mods(gameRoot string) ([]string, error)
}

// DirModEnumerator is the default ModEnumerator: every entry directly under
// <gameRoot>/mods, in sorted order. Entries whose name starts with '~' are
// still returned — callers decide whether disabled mods should be skipped,
// since different consumers (seeding, file resolution) treat them differently.
type DirModEnumerator struct{}

// Mods implements ModEnumerator.
func (DirModEnumerator) Mods(gameRoot string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(gameRoot, "mods"))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Disabled reports whether a mod directory name marks it disabled (§6: folder
// names starting with '~' are ignored).
func Disabled(modName string) bool {
	return strings.HasPrefix(modName, "~")
}
