package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// setupFlags configures the flags shared by every subcommand on cmd and
// binds them to config. Mode-specific flags (--clean) are added by the
// subcommand that needs them.
func setupFlags(cmd *cobra.Command, config *Config) {
	var noColor bool
	var forceColor bool

	cmd.PersistentFlags().StringVar(&config.GameRoot,
		"game-root", ".", "Root of the game install (contains mods/ and content/)")
	cmd.PersistentFlags().StringVar(&config.OutputRoot,
		"output-root", "", "Directory patched scripts are written under (default <game-root>/mods/mod00000_Cahirp/content/scripts)")
	cmd.PersistentFlags().IntVar(&config.Jobs,
		"jobs", 0, "Worker pool size for parsing and wave execution (default runtime.NumCPU())")
	cmd.PersistentFlags().StringSliceVar(&config.ModOrder,
		"mod-order", []string{}, "Mods to process before the rest, in order (comma-separated)")
	cmd.PersistentFlags().BoolVarP(&config.Verbose,
		"verbose", "v", false, "Accepted but has no effect; wave progress is always reported")
	cmd.PersistentFlags().BoolVar(&config.JSON,
		"json", false, "Emit diagnostics as newline-delimited JSON instead of colorized text")
	cmd.PersistentFlags().BoolVar(&config.Pretty,
		"pretty", false, "Render the summary with an alternate styled layout")
	cmd.PersistentFlags().BoolVar(&forceColor,
		"color", false, "Force colored output")
	cmd.PersistentFlags().BoolVar(&noColor,
		"no-color", false, "Disable colored output")
}

// processFlagsAfterParse resolves the mutually-exclusive color flags once
// Cobra has parsed the command line.
func processFlagsAfterParse(cmd *cobra.Command, config *Config) error {
	noColor := cmd.Flags().Lookup("no-color").Changed
	forceColor := cmd.Flags().Lookup("color").Changed

	if noColor && forceColor {
		return fmt.Errorf("cannot use both --color and --no-color flags")
	}

	if cmd.Flags().Lookup("jobs").Changed && config.Jobs == 0 {
		return fmt.Errorf("--jobs 0 is invalid; omit the flag to use runtime.NumCPU()")
	}

	switch {
	case forceColor:
		config.ColorMode = ColorAlways
	case noColor:
		config.ColorMode = ColorNever
	default:
		config.ColorMode = ColorAuto
	}

	if config.JSON && config.Pretty {
		return fmt.Errorf("cannot use both --json and --pretty flags")
	}

	return nil
}
