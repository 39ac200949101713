// Package topics adds help topics to a Cobra application. Topics are
// files of an fs.FS, usually embedded in the binary, shown by
// "help <topic>". Topics named option-<flag> document a flag and are also
// found as "help --<flag>".
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/spf13/cobra"
)

const optionPrefix = "option-"

// Topic is one help file
type Topic struct {
	Name     string
	FilePath string
	// Title is the first line of the file without Markdown heading marks
	Title   string
	Content string
}

// Option reports whether the topic documents a flag
func (t *Topic) Option() bool {
	return strings.HasPrefix(t.Name, optionPrefix)
}

// Options configures a TopicManager
type Options struct {
	// Extensions considered as topics, [".txt", ".md"] by default
	Extensions []string

	// Renderer for topic content, Plain by default
	Renderer Renderer
}

// TopicManager holds the topics found in a filesystem
type TopicManager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// New reads every topic of fsys
func New(fsys fs.FS, opts Options) (*TopicManager, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".txt", ".md"}
	}
	tm := &TopicManager{topics: map[string]*Topic{}, renderer: opts.Renderer}
	if tm.renderer == nil {
		tm.renderer = Plain
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !slices.Contains(exts, path.Ext(p)) {
			return err
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		tm.topics[name] = &Topic{
			Name:     name,
			FilePath: p,
			Title:    title(string(content)),
			Content:  string(content),
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to scan help topics")
	}
	return tm, nil
}

func title(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(strings.TrimLeft(line, "#")); line != "" {
			return line
		}
	}
	return ""
}

// GetTopic looks a topic up by name. Flag style names (--dry-run) also
// find "option-dry-run".
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if topic, ok := tm.topics[name]; ok {
		return topic, true
	}
	topic, ok := tm.topics[optionPrefix+name]
	return topic, ok
}

// ListTopics returns all topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the topic content formatted by the renderer
func (tm *TopicManager) Render(topic *Topic) string {
	return tm.renderer.Render(topic.Content, path.Ext(topic.FilePath))
}

// WriteList prints the topics grouped into general and option topics
func (tm *TopicManager) WriteList(w io.Writer, app string) error {
	if len(tm.topics) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	section := func(header string, option bool) {
		first := true
		for _, name := range tm.ListTopics() {
			topic := tm.topics[name]
			if topic.Option() != option {
				continue
			}
			if first {
				fmt.Fprintf(tw, "\n%s\n", header)
				first = false
			}
			label := name
			if option {
				label = "--" + strings.TrimPrefix(name, optionPrefix)
			}
			fmt.Fprintf(tw, "  %s\t%s\n", label, topic.Title)
		}
	}
	fmt.Fprint(tw, "Available help topics:\n")
	section("General topics:", false)
	section("Option topics:", true)
	fmt.Fprintf(tw, "\nUse '%s help <topic>' to read about a specific topic.\n", app)
	return tw.Flush()
}

// suggest returns topics sharing a prefix with name
func (tm *TopicManager) suggest(name string) []string {
	name = strings.TrimLeft(name, "-")
	var out []string
	for _, t := range tm.ListTopics() {
		if strings.HasPrefix(t, name) || strings.HasPrefix(strings.TrimPrefix(t, optionPrefix), name) {
			out = append(out, t)
		}
	}
	return out
}

// Initialize replaces the help command of rootCmd with one that also
// knows the topics of fsys. Unknown names are an error.
func Initialize(rootCmd *cobra.Command, fsys fs.FS, opts Options) (*TopicManager, error) {
	tm, err := New(fsys, opts)
	if err != nil {
		return nil, err
	}

	help := rootCmd.HelpFunc()
	app := rootCmd.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: fmt.Sprintf(`Show help for a command or a topic.

'%[1]s help topics' lists the topics, '%[1]s help --<flag>' explains a flag.`, app),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if c.IsAvailableCommand() {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				help(rootCmd, args)
				return nil
			case args[0] == "topics":
				return tm.WriteList(cmd.OutOrStdout(), app)
			}
			if topic, ok := tm.GetTopic(args[0]); ok {
				_, err := fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
				return err
			}
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				help(target, args)
				return nil
			}
			suggestions := append(rootCmd.SuggestionsFor(args[0]), tm.suggest(args[0])...)
			return errors.Newf(errors.ErrNotFound, "unknown help topic %q", args[0]).
				WithDetail("suggestions", suggestions)
		},
	}

	rootCmd.SetHelpCommand(helpCmd)
	return tm, nil
}
