// Package ordering determines the sequence mods are processed in: the order
// their recipes are parsed and their directives assigned ids, and — because
// that is also the order the file pool's per-mod search tier is built in —
// the order their scripts are consulted when two mods both define the same
// file (§4.3). Adapted from the teacher's category/target ordering service:
// the same three-tier strategy (explicit list, then a hint, then a stable
// default) now orders mods instead of help categories.
package ordering

import "github.com/aelto/cahirp/internal/modscan"

// Service applies a mod ordering strategy to a discovered mod list.
type Service struct {
	// Explicit lists mod names that must come first, in the given order
	// (e.g. from a --mod-order flag). Mods not named here follow, ordered
	// by LoadOrder hints.
	Explicit []string
}

// NewService creates a Service with the given explicit mod order.
func NewService(explicit []string) *Service {
	return &Service{Explicit: explicit}
}

// LoadOrderHint is the per-mod load-order hint resolved from an optional
// cahirp.yaml manifest (§10.5); mods without a manifest hint are treated as 0.
type LoadOrderHint map[string]int

// Apply returns mods in a new order: first every mod named in s.Explicit, in that
// order (mods named but not discovered are silently skipped — a typo in the
// flag should not abort a build); then every remaining mod sorted by its
// LoadOrderHint ascending, ties broken alphabetically by name (the teacher's
// stable default-category fallback, generalized).
func (s *Service) Apply(mods []modscan.Mod, hints LoadOrderHint) []modscan.Mod {
	byName := make(map[string]modscan.Mod, len(mods))
	for _, m := range mods {
		byName[m.Name] = m
	}

	ordered := make([]modscan.Mod, 0, len(mods))
	used := make(map[string]bool)

	for _, name := range s.Explicit {
		if m, ok := byName[name]; ok && !used[name] {
			ordered = append(ordered, m)
			used[name] = true
		}
	}

	var remaining []modscan.Mod
	for _, m := range mods {
		if !used[m.Name] {
			remaining = append(remaining, m)
		}
	}
	sortByHintThenName(remaining, hints)

	return append(ordered, remaining...)
}
