// Package orchestrator drives the fixpoint scheduler over the name set
// (§4.6): each wave it selects every directive whose guards currently hold,
// leaving the rest for the next wave, until a wave selects nothing.
package orchestrator

import (
	"github.com/aelto/cahirp/internal/nameset"
	"github.com/aelto/cahirp/internal/recipe"
)

// Orchestrator holds the residual (not-yet-executed) directives between
// waves. It is not safe for concurrent use: the build driver owns it
// single-threaded and only calls NextWave between the parallel phases that
// actually execute a wave's directives.
type Orchestrator struct {
	toSkip   []recipe.Directive
	names    *nameset.Set
	finished bool
}

// New creates an Orchestrator over every executable directive (exporters
// must already have been withheld by the export package) and the name set
// it will test eligibility against.
func New(directives []recipe.Directive, names *nameset.Set) *Orchestrator {
	return &Orchestrator{toSkip: directives, names: names}
}

// Finished reports whether the most recent NextWave call selected nothing,
// meaning every remaining directive's guards are permanently unmet.
func (o *Orchestrator) Finished() bool {
	return o.finished
}

// NextWave selects this wave's eligible directives using the two-tier rule
// from §4.6:
//   - Tier 1: directives with no ifndef parameter whose every ifdef holds.
//   - Tier 2: directives with at least one ifndef parameter, considered only
//     when tier 1 selected nothing this wave — deliberately delaying
//     negative guards so other directives get a chance to define names
//     first (§9, scenario S4).
//
// Directives not selected this wave carry over as the residual for the next
// call. When a wave selects nothing, Orchestrator is marked Finished and any
// remaining residual is abandoned with its guards unmet.
func (o *Orchestrator) NextWave() []recipe.Directive {
	if o.finished {
		return nil
	}

	var tier1, tier1Skip, tier2, tier2Skip []recipe.Directive
	for _, d := range o.toSkip {
		if !eligible(d, o.names) {
			if d.Params.HasIfNotDef() {
				tier2Skip = append(tier2Skip, d)
			} else {
				tier1Skip = append(tier1Skip, d)
			}
			continue
		}
		if d.Params.HasIfNotDef() {
			tier2 = append(tier2, d)
		} else {
			tier1 = append(tier1, d)
		}
	}

	var toRun []recipe.Directive
	var toSkip []recipe.Directive
	if len(tier1) > 0 {
		toRun = tier1
		toSkip = append(toSkip, tier1Skip...)
		toSkip = append(toSkip, tier2...)
		toSkip = append(toSkip, tier2Skip...)
	} else {
		toRun = tier2
		toSkip = append(toSkip, tier1Skip...)
		toSkip = append(toSkip, tier2Skip...)
	}

	o.toSkip = toSkip
	if len(toRun) == 0 {
		o.finished = true
	}
	return toRun
}

// eligible reports whether every ifdef in d's parameters is satisfied and
// every ifndef is not.
func eligible(d recipe.Directive, names *nameset.Set) bool {
	for _, n := range d.Params.IfDefs() {
		if !names.Has(n) {
			return false
		}
	}
	for _, n := range d.Params.IfNotDefs() {
		if names.Has(n) {
			return false
		}
	}
	return true
}
