// Package trim implements the trim handler: trim="to=N" removes the
// indentation common to the non-blank lines of a region and indents
// every line by N spaces instead.
package trim

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/types"
)

// Name is the registry name of the trim handler
const Name = "trim"

// Options hold the default indentation
type Options struct {
	To int `option:"to"`
}

// Handler is the trim handler
type Handler struct {
	handlers.Base
	options Options
}

// New creates a trim handler running in pass 4 by default
func New(opts ...handlers.Option) *Handler {
	h := &Handler{}
	h.Base = handlers.NewBase(Name, 4, "trim", &h.options, opts...)
	return h
}

// Handle applies the trim directive to the regions of doc
func (h *Handler) Handle(ctx *types.RunContext, doc *document.Document) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return handlers.ForEachDirective(doc, h.Mnemonic(), func(r *document.Region, d *handlers.Directive) ([]string, error) {
		to, err := d.Params.Int("to", h.options.To)
		if err != nil {
			return nil, err
		}
		return Trim(r.Body, to), nil
	})
}

// Trim reindents lines to the given number of spaces. Lines shorter than
// the common indentation become empty before reindenting.
func Trim(lines []string, to int) []string {
	if to < 0 {
		to = 0
	}
	untab := -1
	for _, line := range lines {
		stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
		if stripped == "" {
			continue
		}
		if n := len(line) - len(stripped); untab < 0 || n < untab {
			untab = n
		}
	}

	prefix := strings.Repeat(" ", to)
	out := make([]string, len(lines))
	for i, line := range lines {
		rest := ""
		if untab >= 0 && len(line) >= untab {
			rest = line[untab:]
		}
		out[i] = prefix + rest
	}
	return out
}
