package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for display. format is the topic file
// extension including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(content, format string) string

func (f RendererFunc) Render(content, format string) string { return f(content, format) }

// Plain returns topics unchanged
var Plain Renderer = RendererFunc(func(content, _ string) string { return content })

// Markdown renders .md topics for the terminal with glamour and leaves any
// other format alone. width 0 keeps glamour's wrapping. NO_COLOR selects
// the unstyled glamour theme.
func Markdown(width int) Renderer {
	return RendererFunc(func(content, format string) string {
		if format != ".md" {
			return content
		}
		options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
		if os.Getenv("NO_COLOR") != "" {
			options = []glamour.TermRendererOption{glamour.WithStandardStyle("notty")}
		}
		if width > 0 {
			options = append(options, glamour.WithWordWrap(width))
		}
		tr, err := glamour.NewTermRenderer(options...)
		if err != nil {
			return content
		}
		rendered, err := tr.Render(content)
		if err != nil {
			return content
		}
		return rendered
	})
}
