// Package ordering sorts the discovered mod list before parsing (§10.5).
//
// Two tiers apply:
//   - Explicit: mod names given via --mod-order come first, in that order.
//   - Hint: every other mod, sorted by its cahirp.yaml load_order hint
//     (ascending), ties broken alphabetically by mod name.
package ordering
