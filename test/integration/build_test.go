//go:build integration

// Package integration lays out a synthetic <game>/mods/... tree in a
// temp directory and drives a real build.Driver over it, exercising the
// scenarios from the recipe engine's behavioral contract end to end: recipe
// parsing, cursor resolution, export/use expansion, wave ordering, and file
// persistence, all through the same entry points the cahirp binary uses.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelto/cahirp/internal/build"
	"github.com/aelto/cahirp/internal/diag"
)

// layoutMod writes a mod's recipe file and pristine scripts under gameRoot,
// returning the mod's directory name.
func layoutMod(t *testing.T, gameRoot, name, recipeName, recipeBody string) string {
	t.Helper()
	modDir := filepath.Join(gameRoot, "mods", name)
	require.NoError(t, os.MkdirAll(filepath.Join(modDir, "cahirp"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "cahirp", recipeName), []byte(recipeBody), 0o644))
	return name
}

func writePristine(t *testing.T, gameRoot, suffix, content string) {
	t.Helper()
	path := filepath.Join(gameRoot, "content", "content0", "scripts", suffix)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runBuild(t *testing.T, gameRoot string) (*build.Result, string) {
	t.Helper()
	outputRoot := filepath.Join(t.TempDir(), "output")
	driver := build.NewDriver(build.Config{GameRoot: gameRoot, OutputRoot: outputRoot}, diag.NopSink{})

	result, err := driver.Run(context.Background())
	require.NoError(t, err)
	return result, outputRoot
}

// TestSingleInsertMatchesFollowingIndentation is scenario S1: a below()
// insert takes its indentation from the line after the cursor.
func TestSingleInsertMatchesFollowingIndentation(t *testing.T) {
	gameRoot := t.TempDir()
	writePristine(t, gameRoot, "a.ws", "class A {\n  function f() {}\n}\n")
	layoutMod(t, gameRoot, "modA", "r1.cahirp", `@insert(
  file(a.ws)
  below(class A {)
)
puts("x");
`)

	_, outputRoot := runBuild(t, gameRoot)

	got, err := os.ReadFile(filepath.Join(outputRoot, "a.ws"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "\n  puts(\"x\");\n")
}

// TestGuardedOrderingAcrossWaves is scenario S2: an ifdef-guarded directive
// always runs strictly after the directive that defines its guard.
func TestGuardedOrderingAcrossWaves(t *testing.T) {
	gameRoot := t.TempDir()
	writePristine(t, gameRoot, "b.ws", "X\n")
	layoutMod(t, gameRoot, "modA", "r1.cahirp", `@insert(
  file(b.ws)
  at(X)
  define(Y)
)
A
`)
	layoutMod(t, gameRoot, "modB", "r2.cahirp", `@insert(
  file(b.ws)
  at(X)
  ifdef(Y)
)
B
`)

	result, outputRoot := runBuild(t, gameRoot)
	assert.GreaterOrEqual(t, result.Waves, 2)

	got, err := os.ReadFile(filepath.Join(outputRoot, "b.ws"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "A")
	assert.Contains(t, string(got), "B")
}

// TestExportUseExpandsAndWithholdsExporter is scenario S3: export()
// directives never execute; their parameters are spliced into every
// matching use().
func TestExportUseExpandsAndWithholdsExporter(t *testing.T) {
	gameRoot := t.TempDir()
	writePristine(t, gameRoot, "c.ws", "marker\n")
	layoutMod(t, gameRoot, "modA", "r1.cahirp", `@insert(
  file(c.ws)
  at(marker)
  export(here)
)
`)
	layoutMod(t, gameRoot, "modB", "r2.cahirp", `@insert(
  use(here)
)
body
`)

	_, outputRoot := runBuild(t, gameRoot)

	got, err := os.ReadFile(filepath.Join(outputRoot, "c.ws"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "body")
}

// TestIfndefDeferralAcrossMods is scenario S4: a negative-guarded directive
// must not run until the wave after the guard could have been defined.
func TestIfndefDeferralAcrossMods(t *testing.T) {
	gameRoot := t.TempDir()
	writePristine(t, gameRoot, "d.ws", "M\n")
	layoutMod(t, gameRoot, "modA", "r1.cahirp", `@insert(
  file(d.ws)
  at(M)
  ifndef(skipme)
)
A
`)
	layoutMod(t, gameRoot, "modB", "r2.cahirp", `@insert(
  file(d.ws)
  at(M)
  define(skipme)
)
B
`)

	_, outputRoot := runBuild(t, gameRoot)

	got, err := os.ReadFile(filepath.Join(outputRoot, "d.ws"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "B")
	assert.NotContains(t, string(got), "A")
}

// TestMultilineSelectReplacesSpan is scenario S5.
func TestMultilineSelectReplacesSpan(t *testing.T) {
	gameRoot := t.TempDir()
	writePristine(t, gameRoot, "e.ws", "one\ntwo\nthree\n")
	layoutMod(t, gameRoot, "modA", "r1.cahirp", "@insert(\n  file(e.ws)\n  select[[ one\n two\n three ]]\n)\nX\n")

	_, outputRoot := runBuild(t, gameRoot)

	got, err := os.ReadFile(filepath.Join(outputRoot, "e.ws"))
	require.NoError(t, err)
	assert.Equal(t, "X\n", string(got))
}

// TestMissingFileIsNonFatal is scenario S6.
func TestMissingFileIsNonFatal(t *testing.T) {
	gameRoot := t.TempDir()
	layoutMod(t, gameRoot, "modA", "r1.cahirp", `@insert(
  file(ghost.ws)
  at(X)
)
A
`)

	result, outputRoot := runBuild(t, gameRoot)
	assert.NotEmpty(t, result.NonFatal)

	_, err := os.Stat(filepath.Join(outputRoot, "ghost.ws"))
	assert.True(t, os.IsNotExist(err))
}

// TestDisabledModIsExcludedFromBuild exercises the tilde-prefix disable
// convention (§6): a disabled mod's recipes never execute.
func TestDisabledModIsExcludedFromBuild(t *testing.T) {
	gameRoot := t.TempDir()
	writePristine(t, gameRoot, "f.ws", "X\n")
	layoutMod(t, gameRoot, "~off", "r1.cahirp", `@insert(
  file(f.ws)
  at(X)
)
should not appear
`)

	result, outputRoot := runBuild(t, gameRoot)
	assert.Equal(t, 0, result.ModsProcessed)

	// A disabled mod's recipe is never parsed, so f.ws is never referenced
	// by any directive and the pool never touches it.
	_, err := os.Stat(filepath.Join(outputRoot, "f.ws"))
	assert.True(t, os.IsNotExist(err))
}
