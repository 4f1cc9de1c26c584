// Package modscan enumerates the installed mods under a game root and
// resolves the filesystem layout the recipe engine searches: the recipe
// folder inside each mod, and the four-tier script search path the file
// pool consults (§4.3, §6).
package modscan

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/aelto/cahirp/internal/source"
)

const (
	// MergedModName is the pre-merged scripts mod consulted ahead of the
	// pristine content and behind per-mod overrides.
	MergedModName = "mod0000_MergedFiles"

	// OutputModName is the engine's own output mod; it is excluded from the
	// per-mod search tier so a build never reads back its own prior output
	// through that tier (the output root itself is still consulted first,
	// per §4.3 tier 1).
	OutputModName = "mod00000_Cahirp"

	recipeDirName   = "cahirp"
	scriptsRelDir   = "content/scripts"
	pristineRelPath = "content/content0/scripts"
	manifestName    = "cahirp.yaml"
)

// Mod describes one installed mod directory.
type Mod struct {
	// Name is the directory name under <gameRoot>/mods.
	Name string

	// Path is the absolute path to the mod directory.
	Path string

	// Disabled is true when Name starts with '~' (§6).
	Disabled bool
}

// RecipeDir returns the mod's recipe folder, <mod>/cahirp.
func (m Mod) RecipeDir() string {
	return filepath.Join(m.Path, recipeDirName)
}

// ScriptsDir returns the mod's script search folder, <mod>/content/scripts.
func (m Mod) ScriptsDir() string {
	return filepath.Join(m.Path, scriptsRelDir)
}

// ManifestPath returns the mod's optional cahirp.yaml path.
func (m Mod) ManifestPath() string {
	return filepath.Join(m.Path, manifestName)
}

// List enumerates every mod directory under gameRoot/mods, in sorted order.
func List(enum source.ModEnumerator, gameRoot string) ([]Mod, error) {
	names, err := enum.Mods(gameRoot)
	if err != nil {
		return nil, err
	}

	mods := make([]Mod, 0, len(names))
	for _, name := range names {
		mods = append(mods, Mod{
			Name:     name,
			Path:     filepath.Join(gameRoot, "mods", name),
			Disabled: source.Disabled(name),
		})
	}
	return mods, nil
}

// Enabled filters out disabled (tilde-prefixed) mods.
func Enabled(mods []Mod) []Mod {
	var out []Mod
	for _, m := range mods {
		if !m.Disabled {
			out = append(out, m)
		}
	}
	return out
}

// RecipeFiles lists every recipe file directly under a mod's recipe folder,
// in sorted order. A mod with no recipe folder contributes no files, which
// is not an error.
func RecipeFiles(mod Mod) ([]string, error) {
	entries, err := os.ReadDir(mod.RecipeDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(mod.RecipeDir(), e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// SearchPath builds the ordered list of directories the file pool resolves a
// file(suffix) parameter against (§4.3):
//  1. the output root (already-patched version, if the pool is re-entered)
//  2. the merged-scripts folder
//  3. every enabled mod's scripts folder, excluding the engine's own output
//     mod and the merged-scripts mod
//  4. the pristine content folder
func SearchPath(gameRoot, outputRoot string, mods []Mod) []string {
	path := []string{outputRoot}
	path = append(path, filepath.Join(gameRoot, "mods", MergedModName, scriptsRelDir))

	for _, m := range Enabled(mods) {
		if m.Name == MergedModName || m.Name == OutputModName {
			continue
		}
		path = append(path, m.ScriptsDir())
	}

	path = append(path, filepath.Join(gameRoot, pristineRelPath))
	return path
}
