// Package manifest parses the optional per-mod cahirp.yaml descriptor
// (display name, load-order hint), a supplemented feature with no
// counterpart in the original tool. Absence of the file is not an error —
// most mods ship none.
package manifest

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ModManifest is the optional metadata a mod may ship in cahirp.yaml at its
// root, alongside its cahirp/ recipe folder and content/scripts/ tree.
type ModManifest struct {
	// DisplayName is parsed but not consulted by the build; diagnostics
	// always name a mod by its directory name.
	DisplayName string `yaml:"display_name"`

	// LoadOrder is a hint consumed by internal/ordering to place this mod's
	// directives earlier or later relative to mods without a manifest. Lower
	// values sort first; the zero value means "no preference".
	LoadOrder int `yaml:"load_order"`
}

// Load reads and parses path's cahirp.yaml. A missing file is not an error:
// it returns (nil, nil) so callers can treat "no manifest" and "empty
// manifest" identically.
func Load(path string) (*ModManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var m ModManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
