package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/snipper/pkg/output/styles"
	"github.com/pterm/pterm"
)

const labelWidth = 12

// textRenderer lays out human readable output. The terminal and the
// plain text renderers differ only in how they paint.
type textRenderer struct {
	w           io.Writer
	paint       func(style, s string) string
	errorPrefix string
}

func newTerminal(w io.Writer) *textRenderer {
	return &textRenderer{
		w: w,
		paint: func(style, s string) string {
			return styles.GetStyle(style).Render(s)
		},
		errorPrefix: pterm.Error.Prefix.Text,
	}
}

func newText(w io.Writer) *textRenderer {
	return &textRenderer{
		w: w,
		paint: func(style, s string) string {
			switch style {
			case "Label":
				return fmt.Sprintf("%-*s", labelWidth, s)
			case "Indent":
				return "  " + s
			}
			return s
		},
		errorPrefix: "Error:",
	}
}

func (r *textRenderer) println(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

func (r *textRenderer) RenderReport(report *Report) error {
	var b strings.Builder

	if report.DryRun {
		b.WriteString(r.paint("DryRunBanner", "dry run, no files written"))
		b.WriteString("\n")
	}

	for _, f := range report.Files {
		if !f.Changed {
			continue
		}
		state := "updated"
		if !f.Written {
			state = "outdated"
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			r.paint("Label", state),
			r.paint("FilePath", f.Path),
			r.paint("Muted", "("+strings.Join(f.Configurations, ", ")+")"))
		if f.Diff != "" {
			b.WriteString(r.diff(f.Diff))
		}
	}

	summary := fmt.Sprintf("%d of %d files changed, %d snippets, passes %s in %s",
		report.Changed, len(report.Files), report.Snippets, formatPasses(report.Passes), report.Duration)
	if report.Changed == 0 {
		b.WriteString(r.paint("Unchanged", summary))
	} else if report.Check {
		b.WriteString(r.paint("Warning", summary))
	} else {
		b.WriteString(r.paint("Success", summary))
	}

	if err := r.println(b.String()); err != nil {
		return err
	}
	if report.Error != nil {
		return r.renderErrorReport(report.Error)
	}
	return nil
}

func (r *textRenderer) diff(d string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(d, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+") && !strings.HasPrefix(text, "+++"):
			text = r.paint("DiffAdd", text)
		case strings.HasPrefix(text, "-") && !strings.HasPrefix(text, "---"):
			text = r.paint("DiffRemove", text)
		}
		b.WriteString(r.paint("Indent", text))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *textRenderer) RenderSnippets(snippets []SnippetReport) error {
	if len(snippets) == 0 {
		return r.println(r.paint("Muted", "no snippets"))
	}
	var b strings.Builder
	for _, s := range snippets {
		where := "built in"
		if s.Source != "" {
			where = fmt.Sprintf("%s:%d", s.Source, s.Line)
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			r.paint("Handler", s.Name),
			r.paint("Muted", fmt.Sprintf("%d lines", s.Lines)),
			r.paint("FilePath", where))
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *textRenderer) RenderError(err error) error {
	return r.renderErrorReport(NewErrorReport(err))
}

func (r *textRenderer) renderErrorReport(e *ErrorReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.errorPrefix, r.paint("Error", e.Message))

	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s %v", r.paint("Label", k), e.Details[k])
	}
	return r.println(b.String())
}

func (r *textRenderer) RenderMessage(msg string) error {
	return r.println(msg)
}

func formatPasses(passes []int) string {
	parts := make([]string, len(passes))
	for i, p := range passes {
		parts[i] = fmt.Sprint(p)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
