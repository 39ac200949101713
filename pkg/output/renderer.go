// Package output renders run results, snippet listings and errors in the
// format selected on the command line.
package output

import (
	"io"
	"os"

	"github.com/arthur-debert/snipper/pkg/errors"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderReport renders the outcome of a run
	RenderReport(report *Report) error

	// RenderSnippets renders a snippet listing
	RenderSnippets(snippets []SnippetReport) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format, detecting terminal
// capabilities when format is FormatAuto
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := w.(*os.File); ok {
			return NewRenderer(DetectFormat(file), w)
		}
		return NewRenderer(FormatText, w)
	case FormatTerminal:
		return newTerminal(w), nil
	case FormatText:
		return newText(w), nil
	case FormatJSON:
		return newJSON(w), nil
	case FormatYAML:
		return newYAML(w), nil
	case FormatJUnit:
		return newJUnit(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
