// Package build is the glue driver (§2, §5): it scans the installed mods,
// parses every recipe, assigns stable directive ids, expands exports,
// constructs the file pool, drives the orchestrator to a fixpoint — emitting
// each wave's directives in parallel — and persists the result. Parsing and
// wave execution run in parallel; persisting and everything between the
// phases runs single-threaded on the calling goroutine.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aelto/cahirp/internal/cursor"
	"github.com/aelto/cahirp/internal/diag"
	"github.com/aelto/cahirp/internal/emitter"
	cahirperrors "github.com/aelto/cahirp/internal/errors"
	"github.com/aelto/cahirp/internal/export"
	"github.com/aelto/cahirp/internal/filepool"
	"github.com/aelto/cahirp/internal/manifest"
	"github.com/aelto/cahirp/internal/modscan"
	"github.com/aelto/cahirp/internal/nameset"
	"github.com/aelto/cahirp/internal/orchestrator"
	"github.com/aelto/cahirp/internal/ordering"
	"github.com/aelto/cahirp/internal/recipe"
	"github.com/aelto/cahirp/internal/source"
)

// Config configures one build pass.
type Config struct {
	// GameRoot is the root of the game install (contains mods/ and content/).
	GameRoot string

	// OutputRoot is the directory patched scripts are written under.
	// Defaults to <GameRoot>/mods/mod00000_Cahirp/content/scripts.
	OutputRoot string

	// Clean wipes OutputRoot before building.
	Clean bool

	// Jobs bounds the worker pool used for parsing and wave execution;
	// persisting writes files one at a time. Defaults to runtime.NumCPU()
	// when zero.
	Jobs int

	// ModOrder lists mod names that must be processed before the rest, in
	// the given order (§10.5).
	ModOrder []string
}

// Result summarizes a completed build pass.
type Result struct {
	// ModsProcessed is the number of enabled mods whose recipes were parsed.
	ModsProcessed int

	// DirectivesExecuted is the number of directives the orchestrator ran
	// (including ones whose emit found no location).
	DirectivesExecuted int

	// Waves is the number of orchestrator passes that ran at least one
	// directive.
	Waves int

	// NonFatal collects the recovered missing-file and persist errors from
	// the build. A no-location emit is reported through the Sink only and
	// does not appear here. A non-empty NonFatal does not mean Run returned
	// an error.
	NonFatal []error
}

// Driver runs build passes against real or fake collaborators.
type Driver struct {
	Config     Config
	Reader     source.Reader
	Enumerator source.ModEnumerator
	Sink       diag.Sink
}

// NewDriver creates a Driver against the real filesystem, emitting
// diagnostics to sink (diag.NopSink{} if nil).
func NewDriver(cfg Config, sink diag.Sink) *Driver {
	if sink == nil {
		sink = diag.NopSink{}
	}
	return &Driver{
		Config:     cfg,
		Reader:     source.FileReader{},
		Enumerator: source.DirModEnumerator{},
		Sink:       sink,
	}
}

// Run executes exactly one build pass (§2). It returns an error only when the
// mods root cannot be enumerated (a ModsRootError, §7), when Clean is set and
// OutputRoot cannot be removed, or when a mod's recipe folder cannot be
// listed. Every other problem is recovered and reported through Sink;
// missing files and persist failures are also recorded in Result.NonFatal.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	jobs := d.Config.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	d.Sink.Emit(diag.Event{Kind: diag.KindBuildStarted, DirectiveID: -1, Message: fmt.Sprintf("building from %s", d.Config.GameRoot)})

	mods, err := modscan.List(d.Enumerator, d.Config.GameRoot)
	if err != nil {
		return nil, cahirperrors.NewModsRootError(d.Config.GameRoot+"/mods", err)
	}
	mods = d.orderMods(mods)

	if d.Config.Clean {
		if err := os.RemoveAll(d.Config.OutputRoot); err != nil {
			return nil, err
		}
	}

	enabled := modscan.Enabled(mods)
	directives, parseDiags, err := d.parseAll(ctx, enabled, jobs)
	if err != nil {
		return nil, err
	}
	for _, pd := range parseDiags {
		d.Sink.Emit(diag.Event{Kind: diag.KindParseDiagnostic, Mod: pd.Mod, File: pd.File, DirectiveID: -1, Message: pd.Reason})
	}

	assignIDs(directives)
	executable := export.Expand(directives)

	names := nameset.New(seedNames(mods))

	searchPath := modscan.SearchPath(d.Config.GameRoot, d.Config.OutputRoot, mods)
	pool, poolErrs := filepool.Build(d.Reader, d.Config.OutputRoot, searchPath, collectFiles(executable))
	for _, e := range poolErrs {
		var mf *cahirperrors.MissingFileError
		if errors.As(e, &mf) {
			d.Sink.Emit(diag.Event{Kind: diag.KindMissingFile, DirectiveID: -1, Message: mf.Error()})
		}
	}

	waves, executed := d.runWaves(ctx, executable, pool, names, jobs)

	persistErrs := pool.Persist()
	for _, e := range persistErrs {
		d.Sink.Emit(diag.Event{Kind: diag.KindPersistError, DirectiveID: -1, Message: e.Error()})
	}

	nonFatal := append(append([]error{}, poolErrs...), persistErrs...)
	d.Sink.Emit(diag.Event{Kind: diag.KindBuildFinished, DirectiveID: -1, Count: executed})

	return &Result{
		ModsProcessed:      len(enabled),
		DirectivesExecuted: executed,
		Waves:              waves,
		NonFatal:           nonFatal,
	}, nil
}

func (d *Driver) orderMods(mods []modscan.Mod) []modscan.Mod {
	hints := ordering.LoadOrderHint{}
	for _, m := range mods {
		mf, err := manifest.Load(m.ManifestPath())
		if err == nil && mf != nil {
			hints[m.Name] = mf.LoadOrder
		}
	}
	return ordering.NewService(d.Config.ModOrder).Apply(mods, hints)
}

type parsedMod struct {
	directives []recipe.Directive
	diags      []*cahirperrors.ParseDiagnostic
}

// parseAll parses every enabled mod's recipe files in parallel (§5 phase a),
// returning directives in stable mod-then-file-then-form order so id
// assignment is deterministic across runs.
func (d *Driver) parseAll(ctx context.Context, mods []modscan.Mod, jobs int) ([]recipe.Directive, []*cahirperrors.ParseDiagnostic, error) {
	results := make([]parsedMod, len(mods))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, m := range mods {
		i, m := i, m
		g.Go(func() error {
			files, err := modscan.RecipeFiles(m)
			if err != nil {
				return err
			}

			var directives []recipe.Directive
			var diags []*cahirperrors.ParseDiagnostic
			for _, f := range files {
				content, err := d.Reader.Read(f)
				if err != nil {
					diags = append(diags, cahirperrors.NewParseDiagnostic(m.Name, f, err.Error()))
					continue
				}
				ds, dg := recipe.ParseFileContent(content, m.Name, f)
				directives = append(directives, ds...)
				diags = append(diags, dg...)
			}
			results[i] = parsedMod{directives: directives, diags: diags}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var directives []recipe.Directive
	var diags []*cahirperrors.ParseDiagnostic
	for _, r := range results {
		directives = append(directives, r.directives...)
		diags = append(diags, r.diags...)
	}
	return directives, diags, nil
}

// assignIDs assigns each directive a stable, process-unique id in the order
// they were discovered (§3).
func assignIDs(directives []recipe.Directive) {
	for i := range directives {
		directives[i].ID = recipe.DirectiveID(i)
	}
}

// seedNames produces the installed.<modname> seed set (§3) for every
// discovered mod, enabled or not — a disabled mod is still "installed", just
// inert for recipe execution.
func seedNames(mods []modscan.Mod) []string {
	seed := make([]string, 0, len(mods))
	for _, m := range mods {
		seed = append(seed, "installed."+m.Name)
	}
	return seed
}

func collectFiles(directives []recipe.Directive) []string {
	var out []string
	for _, d := range directives {
		out = append(out, d.Params.Files()...)
	}
	return out
}

// runWaves drives the orchestrator to a fixpoint, executing each wave's
// directives in parallel (§5 phase b) and merging their define() effects
// into names before the next wave starts.
func (d *Driver) runWaves(ctx context.Context, executable []recipe.Directive, pool *filepool.Pool, names *nameset.Set, jobs int) (waves int, executed int) {
	orch := orchestrator.New(executable, names)

	for {
		wave := orch.NextWave()
		if len(wave) == 0 {
			break
		}
		waves++

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(jobs)

		var mu sync.Mutex
		var defined []string

		for _, directive := range wave {
			directive := directive
			g.Go(func() error {
				d.emit(directive, pool)

				if ds := directive.Params.Defines(); len(ds) > 0 {
					mu.Lock()
					defined = append(defined, ds...)
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait() // emit never returns an error; it only reports diagnostics

		names.AddAll(defined)
		executed += len(wave)
		d.Sink.Emit(diag.Event{Kind: diag.KindWavePassed, DirectiveID: -1, Count: len(wave)})
	}

	return waves, executed
}

// emit resolves the cursor and splices code for directive into every
// file(suffix) it targets. A directive targeting a suffix with no pool entry
// (already reported as missing) has no effect there. A failed cursor
// resolution is reported but still leaves the directive "executed" (§4.6):
// the caller always counts it and its define() effects still apply.
func (d *Driver) emit(directive recipe.Directive, pool *filepool.Pool) {
	for _, suffix := range directive.Params.Files() {
		cell, ok := pool.Lock(suffix)
		if !ok {
			continue
		}

		contents, unlock := cell.Lock()
		pos := cursor.Resolve(directive.Params, contents)
		newContents, ok := emitter.Emit(contents, directive.Code, pos)
		if !ok {
			unlock(contents)
			d.Sink.Emit(diag.Event{
				Kind:        diag.KindNoLocation,
				Mod:         directive.SourceMod,
				File:        suffix,
				DirectiveID: int(directive.ID),
				Notes:       directive.Params.Notes(),
			})
			continue
		}
		unlock(newContents)
	}
}
