// Package cli implements the snipper command line
package cli

import (
	"github.com/arthur-debert/snipper/internal/version"
	"github.com/arthur-debert/snipper/pkg/cobrax/topics"
	"github.com/arthur-debert/snipper/pkg/logging"
	"github.com/arthur-debert/snipper/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Without a subcommand it runs the
// processor like "snipper run".
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "snipper",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRunExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.process(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.root, "root", "r", ".", MsgFlagRoot)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.format, "format", "o", "auto", MsgFlagFormat)
	flags.StringVar(&opts.glob, "glob", "", MsgFlagGlob)
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	flags.BoolVar(&opts.diff, "diff", false, MsgFlagDiff)
	flags.BoolVar(&opts.check, "check", false, MsgFlagCheck)
	flags.StringSliceVar(&opts.skip, "skip-handler", nil, MsgFlagSkipHandler)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return output.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("skip-handler", handlerNamesCompletion)

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "COMMANDS:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newSnippetsCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	if _, err := topics.Initialize(rootCmd, helpTopics(), topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.Markdown(0),
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}
