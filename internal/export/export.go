// Package export implements the named-export/import mechanism (§4.2):
// directives marked with export(key) register their parameter list as a
// reusable locator template; every use(key) placeholder elsewhere is spliced
// with that template and removed. Exporters never execute — they exist
// purely to be reused.
package export

import "github.com/aelto/cahirp/internal/recipe"

// Expand partitions directives into exporters and the rest, builds the
// key -> exporter-parameters index (first occurrence wins on key collision),
// then rewrites every non-exporter's parameter list by splicing in the
// matching exporter's parameters wherever a use(key) appears. The returned
// slice contains only non-exporter directives, in their original order —
// exporters are withheld from execution per §4.2.
//
// Expansion is idempotent (§8 property 4) as long as no exporter carries a
// use(key) of its own: the returned directives then hold no use(key), so
// running Expand twice over its own output is a no-op beyond the exporter
// filtering it already performed. An exporter's own use(key) is copied into
// the importer unexpanded, and a second Expand drops it.
func Expand(directives []recipe.Directive) []recipe.Directive {
	index := buildIndex(directives)

	out := make([]recipe.Directive, 0, len(directives))
	for _, d := range directives {
		if d.Params.HasExport() {
			continue
		}
		out = append(out, d.WithParams(expandParams(d.Params, index)))
	}
	return out
}

// UnresolvedUse pairs a use(key) parameter with the directive it appeared in,
// for a key with no matching exporter — used by the lint command to surface
// a dangling reference before a build would silently drop it.
type UnresolvedUse struct {
	Directive recipe.Directive
	Key       string
}

// UnresolvedUses scans directives for every use(key) whose key has no
// matching export(key) anywhere in the corpus.
func UnresolvedUses(directives []recipe.Directive) []UnresolvedUse {
	index := buildIndex(directives)

	var out []UnresolvedUse
	for _, d := range directives {
		for _, p := range d.Params {
			if p.Kind != recipe.KindUse {
				continue
			}
			if _, ok := index[p.Value]; !ok {
				out = append(out, UnresolvedUse{Directive: d, Key: p.Value})
			}
		}
	}
	return out
}

func buildIndex(directives []recipe.Directive) map[string]recipe.Params {
	index := make(map[string]recipe.Params)
	for _, d := range directives {
		key, ok := d.Params.FirstExportKey()
		if !ok {
			continue
		}
		if _, exists := index[key]; exists {
			continue // first occurrence wins
		}
		index[key] = withoutExport(d.Params)
	}
	return index
}

// withoutExport strips every KindExport parameter from params, so a
// splice site receives only the exporter's locators — not the export(key)
// marker that produced the template in the first place.
func withoutExport(params recipe.Params) recipe.Params {
	out := make(recipe.Params, 0, len(params))
	for _, p := range params {
		if p.Kind != recipe.KindExport {
			out = append(out, p)
		}
	}
	return out
}

// expandParams walks params left to right; at each use(key), the key's
// exporter parameters are spliced in (and the use parameter itself dropped),
// so order after expansion is: everything before use, the exporter's
// parameters, everything after use (§3 invariant). A use(key) with no
// matching exporter is dropped silently — it contributes nothing to the
// cursor, which is equivalent to the locator simply being absent.
func expandParams(params recipe.Params, index map[string]recipe.Params) recipe.Params {
	out := make(recipe.Params, 0, len(params))
	for _, p := range params {
		if p.Kind != recipe.KindUse {
			out = append(out, p)
			continue
		}
		if exported, ok := index[p.Value]; ok {
			out = append(out, exported...)
		}
	}
	return out
}
