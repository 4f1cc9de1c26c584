package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelto/cahirp/internal/lint"
)

func TestCountErrorsOnlyCountsErrorSeverity(t *testing.T) {
	warnings := []lint.Warning{
		{Severity: lint.SeverityError},
		{Severity: lint.SeverityWarning},
		{Severity: lint.SeverityError},
	}
	assert.Equal(t, 2, countErrors(warnings))
}

func TestRunLintReportsUnresolvedUse(t *testing.T) {
	gameRoot := t.TempDir()
	modDir := filepath.Join(gameRoot, "mods", "modA", "cahirp")
	require.NoError(t, os.MkdirAll(modDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modDir, "r1.cahirp"), []byte("@insert(\n  use(ghost)\n)\nbody\n"), 0o644))

	cmd := newLintCmd(NewConfig())
	var out bytes.Buffer
	cmd.SetOut(&out)

	config := NewConfig()
	config.GameRoot = gameRoot
	err := runLint(cmd, config)

	assert.Error(t, err)
	assert.Contains(t, out.String(), "unresolved-use")
}

func TestRunLintCleanCorpusSucceeds(t *testing.T) {
	gameRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(gameRoot, "mods"), 0o755))

	cmd := newLintCmd(NewConfig())
	var out bytes.Buffer
	cmd.SetOut(&out)

	config := NewConfig()
	config.GameRoot = gameRoot
	err := runLint(cmd, config)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "no lint findings")
}
