package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arthur-debert/snipper/internal/version"
	"github.com/arthur-debert/snipper/pkg/config"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers/registry"
	"github.com/arthur-debert/snipper/pkg/handlers/snippets"
	"github.com/arthur-debert/snipper/pkg/output"
	"github.com/arthur-debert/snipper/pkg/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func handlerNamesCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return registry.Names(), cobra.ShellCompDirectiveNoFileComp
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Example: MsgRunExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.process(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// newSnippetsCmd lists snippets by running only the snippet readers,
// without writing
func newSnippetsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "snippets",
		Short:   MsgSnippetsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return opts.fail(r, err)
			}

			listing := *opts
			listing.dryRun = true
			listing.diff = false
			listing.skip = nil
			for _, name := range registry.Names() {
				if name != snippets.ReaderName {
					listing.skip = append(listing.skip, name)
				}
			}
			p, err := listing.newProcessor(cfg)
			if err != nil {
				return opts.fail(r, err)
			}
			result, err := p.Process(cmd.Context())
			if err != nil {
				return opts.fail(r, err)
			}
			return r.RenderSnippets(output.NewSnippetReports(result.Snippets))
		},
	}
}

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			w := watch.New(cfg.Root,
				func(ctx context.Context) error {
					return opts.process(ctx, cmd.OutOrStdout())
				},
				watch.WithDebounce(debounce),
				watch.WithIgnoreDirs(cfg.IgnoreDirs...),
			)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return w.Watch(ctx)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, MsgFlagDebounce)
	return cmd
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var effective bool
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if effective {
				cfg, err = opts.loadConfig()
			} else {
				cfg, err = config.Defaults()
			}
			if err != nil {
				return err
			}
			data, err := config.GenerateTOML(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newManCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "SNIPPER",
				Section: "1",
				Source:  "snipper " + version.Version,
				Manual:  "snipper manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", filepath.Clean(dir))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagManDir)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}
