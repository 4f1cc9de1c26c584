package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aelto/cahirp/internal/version"
)

const (
	modeGroupLabel   = "Mode"
	inputGroupLabel  = "Input"
	outputGroupLabel = "Output/formatting"
	miscGroupLabel   = "Misc"
)

func init() {
	cobra.AddTemplateFunc("flagGroups", flagGroupsFunc)
}

// NewRootCmd creates the root command for cahirp. Invoked with no
// subcommand, it runs a build — the same default behavior as running
// `cahirp build` directly.
func NewRootCmd() *cobra.Command {
	config := NewConfig()

	rootCmd := &cobra.Command{
		Use:     "cahirp",
		Short:   "Declarative recipe engine for patching modded game scripts",
		Version: version.Version,
		Long: `cahirp applies recipe(.cahirp) files from installed mods onto the game's
scripts, splicing code at named locations instead of overwriting whole files.

Default behavior runs a build. Use a subcommand for other operations:
  cahirp build          Run one build pass (default)
  cahirp watch          Rebuild automatically as recipe files change
  cahirp lint           Check the recipe corpus without writing any output

Recipe directives:
  @context(...)          Shares parameters with every later @insert in the file
  @insert(...)    body   Splices body at a located position in a target file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return processFlagsAfterParse(cmd, config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config.UseColor = ResolveColorMode(config)
			return runBuild(cmd, config)
		},
	}

	setupFlags(rootCmd, config)
	annotateFlag(rootCmd, "game-root", inputGroupLabel)
	annotateFlag(rootCmd, "output-root", inputGroupLabel)
	annotateFlag(rootCmd, "mod-order", inputGroupLabel)
	annotateFlag(rootCmd, "jobs", miscGroupLabel)
	annotateFlag(rootCmd, "verbose", miscGroupLabel)
	annotateFlag(rootCmd, "color", outputGroupLabel)
	annotateFlag(rootCmd, "no-color", outputGroupLabel)
	annotateFlag(rootCmd, "json", outputGroupLabel)
	annotateFlag(rootCmd, "pretty", outputGroupLabel)

	rootCmd.AddCommand(newBuildCmd(config))
	rootCmd.AddCommand(newWatchCmd(config))
	rootCmd.AddCommand(newLintCmd(config))

	rootCmd.SetUsageTemplate(usageTemplate)

	return rootCmd
}

// annotateFlag adds a group annotation to a flag for custom help grouping.
func annotateFlag(cmd *cobra.Command, flagName, group string) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(flagName)
	}

	if flag != nil {
		if flag.Annotations == nil {
			flag.Annotations = make(map[string][]string)
		}
		flag.Annotations["group"] = []string{group}
	}
}

// usageTemplate is a custom template that groups flags by their annotations.
const usageTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{flagGroups .}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// flagGroupsFunc generates grouped flag output for the custom usage template.
func flagGroupsFunc(cmd *cobra.Command) string {
	groupOrder := []string{modeGroupLabel, inputGroupLabel, outputGroupLabel, miscGroupLabel}

	flagsByGroup := make(map[string][]string)
	seenFlags := make(map[string]bool)

	processFlags := func(flags *pflag.FlagSet) {
		flags.VisitAll(func(flag *pflag.Flag) {
			if flag.Hidden {
				return
			}
			if seenFlags[flag.Name] {
				return
			}
			seenFlags[flag.Name] = true

			group := miscGroupLabel
			if flag.Annotations != nil {
				if groups, ok := flag.Annotations["group"]; ok && len(groups) > 0 {
					group = groups[0]
				}
			}

			flagsByGroup[group] = append(flagsByGroup[group], formatFlagUsage(flag))
		})
	}

	processFlags(cmd.Flags())
	processFlags(cmd.PersistentFlags())

	var sb strings.Builder
	for _, group := range groupOrder {
		flags, ok := flagsByGroup[group]
		if !ok || len(flags) == 0 {
			continue
		}

		sb.WriteString(group)
		sb.WriteString(":\n")
		for _, flagUsage := range flags {
			sb.WriteString(flagUsage)
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// formatFlagUsage formats a single flag for display in the help output.
func formatFlagUsage(flag *pflag.Flag) string {
	var sb strings.Builder

	if flag.Shorthand != "" && flag.ShorthandDeprecated == "" {
		sb.WriteString("  -")
		sb.WriteString(flag.Shorthand)
		sb.WriteString(", ")
	} else {
		sb.WriteString("      ")
	}

	sb.WriteString("--")
	sb.WriteString(flag.Name)

	if flag.Value.Type() != "bool" {
		sb.WriteString(" ")
		typeName := flag.Value.Type()
		switch typeName {
		case "stringSlice":
			typeName = "strings"
		case "intSlice":
			typeName = "ints"
		}
		sb.WriteString(typeName)
	}

	currentLen := sb.Len()
	paddingNeeded := 36 - currentLen
	if paddingNeeded > 0 {
		sb.WriteString(strings.Repeat(" ", paddingNeeded))
	} else {
		sb.WriteString("   ")
	}

	sb.WriteString(flag.Usage)

	if shouldShowDefault(flag) {
		sb.WriteString(fmt.Sprintf(" (default %s)", flag.DefValue))
	}

	sb.WriteString("\n")

	return sb.String()
}

// shouldShowDefault determines if a flag's default value should be displayed.
func shouldShowDefault(flag *pflag.Flag) bool {
	if flag.DefValue == "" {
		return false
	}
	if flag.Value.Type() == "bool" && flag.DefValue == "false" {
		return false
	}
	if flag.DefValue == "[]" {
		return false
	}
	return true
}
