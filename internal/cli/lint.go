package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	cahirperrors "github.com/aelto/cahirp/internal/errors"
	"github.com/aelto/cahirp/internal/export"
	"github.com/aelto/cahirp/internal/filepool"
	"github.com/aelto/cahirp/internal/lint"
	"github.com/aelto/cahirp/internal/modscan"
	"github.com/aelto/cahirp/internal/recipe"
	"github.com/aelto/cahirp/internal/source"
)

func newLintCmd(config *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check the recipe corpus without writing any output",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return processFlagsAfterParse(cmd, config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config.UseColor = ResolveColorMode(config)
			return runLint(cmd, config)
		},
	}
	return cmd
}

// runLint parses every enabled mod's recipe files and reports every finding
// lint knows how to detect, without building anything: parse errors,
// dangling use(key) references, and file(suffix) parameters that resolve
// nowhere in the search path.
func runLint(cmd *cobra.Command, config *Config) error {
	reader := source.FileReader{}
	enumerator := source.DirModEnumerator{}

	mods, err := modscan.List(enumerator, config.GameRoot)
	if err != nil {
		return cahirperrors.NewModsRootError(config.GameRoot+"/mods", err)
	}

	var directives []recipe.Directive
	var warnings []lint.Warning

	for _, m := range modscan.Enabled(mods) {
		files, err := modscan.RecipeFiles(m)
		if err != nil {
			return err
		}
		for _, f := range files {
			content, err := reader.Read(f)
			if err != nil {
				warnings = append(warnings, lint.FromParseDiagnostics([]*cahirperrors.ParseDiagnostic{
					cahirperrors.NewParseDiagnostic(m.Name, f, err.Error()),
				})...)
				continue
			}
			ds, diags := recipe.ParseFileContent(content, m.Name, f)
			directives = append(directives, ds...)
			warnings = append(warnings, lint.FromParseDiagnostics(diags)...)
		}
	}

	warnings = append(warnings, lint.CheckUnresolvedUses(directives)...)

	executable := export.Expand(directives)
	outputRoot := resolveOutputRoot(config)
	searchPath := modscan.SearchPath(config.GameRoot, outputRoot, mods)
	_, poolErrs := filepool.Build(reader, outputRoot, searchPath, collectFileParams(executable))
	warnings = append(warnings, lint.CheckMissingFiles(poolErrs)...)

	printWarnings(cmd.OutOrStdout(), config, warnings)

	for _, w := range warnings {
		if w.Severity == lint.SeverityError {
			return fmt.Errorf("lint found %d error(s)", countErrors(warnings))
		}
	}
	return nil
}

func collectFileParams(directives []recipe.Directive) []string {
	var out []string
	for _, d := range directives {
		out = append(out, d.Params.Files()...)
	}
	return out
}

func countErrors(warnings []lint.Warning) int {
	n := 0
	for _, w := range warnings {
		if w.Severity == lint.SeverityError {
			n++
		}
	}
	return n
}

func printWarnings(w io.Writer, config *Config, warnings []lint.Warning) {
	if config.JSON {
		enc := json.NewEncoder(w)
		for _, warning := range warnings {
			_ = enc.Encode(warning)
		}
		return
	}
	for _, warning := range warnings {
		fmt.Fprintln(w, warning.String())
	}
	if len(warnings) == 0 {
		fmt.Fprintln(w, "no lint findings")
	}
}
