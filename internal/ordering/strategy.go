package ordering

import (
	"sort"
	"strings"

	"github.com/aelto/cahirp/internal/modscan"
)

// sortByHintThenName sorts mods by ascending LoadOrderHint (absent hints
// treated as 0), breaking ties with a case-insensitive name comparison so
// the fallback ordering is deterministic across runs.
func sortByHintThenName(mods []modscan.Mod, hints LoadOrderHint) {
	sort.Slice(mods, func(i, j int) bool {
		hi, hj := hints[mods[i].Name], hints[mods[j].Name]
		if hi != hj {
			return hi < hj
		}
		return strings.ToLower(mods[i].Name) < strings.ToLower(mods[j].Name)
	})
}
