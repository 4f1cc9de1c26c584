package cli

// ColorMode represents the color output mode for the CLI.
type ColorMode int

const (
	// ColorAuto enables color output when connected to a terminal.
	ColorAuto ColorMode = iota

	// ColorAlways forces color output regardless of terminal detection.
	ColorAlways

	// ColorNever disables color output.
	ColorNever
)

// String returns the string representation of ColorMode.
func (c ColorMode) String() string {
	switch c {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// Config holds all CLI configuration options, shared across the build,
// watch, and lint subcommands.
type Config struct {
	// Global options

	// GameRoot is the root of the game install (contains mods/ and
	// content/). Defaults to the current working directory.
	GameRoot string

	// OutputRoot is the directory patched scripts are written under.
	// Defaults to <GameRoot>/mods/mod00000_Cahirp/content/scripts.
	OutputRoot string

	// Jobs bounds the worker pool used for parsing and wave execution;
	// persisting writes files one at a time. Defaults to runtime.NumCPU()
	// when zero.
	Jobs int

	// ModOrder lists mod names that must be processed before the rest, in
	// the given order.
	ModOrder []string

	// ColorMode determines when to use colored output.
	ColorMode ColorMode

	// Verbose is set by --verbose but no command reads it: per-wave
	// progress diagnostics are reported whether or not it is set.
	Verbose bool

	// JSON switches diagnostics to newline-delimited JSON instead of the
	// colorized text report.
	JSON bool

	// Pretty renders the build summary with an alternate lipgloss-styled
	// layout instead of the plain text report.
	Pretty bool

	// Build/watch options

	// Clean wipes OutputRoot before building.
	Clean bool

	// Derived state (computed at runtime)

	// UseColor is the resolved color setting based on ColorMode and terminal detection.
	UseColor bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ColorMode: ColorAuto,
		ModOrder:  []string{},
	}
}
