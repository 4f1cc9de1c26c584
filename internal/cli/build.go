package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aelto/cahirp/internal/build"
	"github.com/aelto/cahirp/internal/diag"
	"github.com/aelto/cahirp/internal/modscan"
)

func newBuildCmd(config *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run one build pass over the installed mods",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return processFlagsAfterParse(cmd, config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config.UseColor = ResolveColorMode(config)
			return runBuild(cmd, config)
		},
	}
	cmd.Flags().BoolVar(&config.Clean, "clean", false, "Wipe the output root before building")
	annotateFlag(cmd, "clean", modeGroupLabel)
	return cmd
}

// resolveOutputRoot fills in the default output root when the caller left it
// blank: <game-root>/mods/mod00000_Cahirp/content/scripts.
func resolveOutputRoot(config *Config) string {
	if config.OutputRoot != "" {
		return config.OutputRoot
	}
	return filepath.Join(config.GameRoot, "mods", modscan.OutputModName, "content", "scripts")
}

// newSink builds the diagnostic sink a build/watch/lint run reports through,
// matching the resolved --json/--color flags.
func newSink(w io.Writer, config *Config) diag.Sink {
	if config.JSON {
		return diag.NewJSONSink(w)
	}
	return diag.NewTextSink(w, config.UseColor)
}

func runBuild(cmd *cobra.Command, config *Config) error {
	outputRoot := resolveOutputRoot(config)

	sink := newSink(cmd.OutOrStdout(), config)
	driver := build.NewDriver(build.Config{
		GameRoot:   config.GameRoot,
		OutputRoot: outputRoot,
		Clean:      config.Clean || config.OutputRoot == "",
		Jobs:       config.Jobs,
		ModOrder:   config.ModOrder,
	}, sink)

	result, err := driver.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), config, result)
	return nil
}

// printSummary renders the post-build tally. The --pretty layout uses
// lipgloss; the plain layout matches the rest of the CLI's unstyled output.
func printSummary(w io.Writer, config *Config, result *build.Result) {
	if config.JSON {
		return
	}

	line := fmt.Sprintf("%d mod(s), %d directive(s) across %d wave(s), %d non-fatal issue(s)",
		result.ModsProcessed, result.DirectivesExecuted, result.Waves, len(result.NonFatal))

	if !config.Pretty {
		fmt.Fprintln(w, line)
		return
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())
	if len(result.NonFatal) > 0 {
		style = style.BorderForeground(lipgloss.Color("3"))
	} else {
		style = style.BorderForeground(lipgloss.Color("2"))
	}
	fmt.Fprintln(w, style.Render(line))
}
