// Package cli provides the command-line interface for cahirp using Cobra.
//
// This package handles argument parsing, flag validation, terminal detection,
// and delegates to the build, lint, and diag packages for actual
// functionality. Apart from cmd/cahirp printing the error Execute returns, it
// is the only package that interacts with os.Args and stdout/stderr.
//
// # Commands
//
// The CLI provides three commands:
//   - cahirp build (default): run one build pass over the installed mods
//   - cahirp watch: rebuild automatically as recipe files change
//   - cahirp lint: check the recipe corpus without writing any output
//
// # Color Detection
//
// Color output is automatically enabled when stdout is a terminal.
// This can be overridden with --color (force on) or --no-color (force off).
// When output is piped, colors are disabled by default.
//
// # Configuration
//
// The Config struct holds all CLI configuration and is passed to each
// subcommand's run function, which translates the relevant fields for the
// build, lint, and diag packages. It includes both user-provided flags and
// derived state computed at runtime (e.g., UseColor).
package cli
