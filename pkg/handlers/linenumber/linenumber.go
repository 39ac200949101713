// Package linenumber implements the line-numberer handler:
//
//	number="start=1 step=1 format='%d. ' from=0 to=-1"
//
// Lines with an index in [from, to) are prefixed with their number, the
// others with blanks of the same width. The format takes one integer verb,
// or %s/%v for the decimal text. Negative from and to count from
// the end of the region.
package linenumber

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/params"
	"github.com/arthur-debert/snipper/pkg/types"
)

// Name is the registry name of the line numberer
const Name = "line-numberer"

// Options hold the numbering defaults
type Options struct {
	Start  int    `option:"start"`
	Step   int    `option:"step"`
	Format string `option:"format"`
	From   int    `option:"from"`
	// To is empty for "up to the last line"
	To string `option:"to"`
}

// Numbering is a resolved numbering request
type Numbering struct {
	Start  int
	Step   int
	Format string
	From   int
	// To is nil for no limit
	To *int
}

// Handler is the line numberer
type Handler struct {
	handlers.Base
	options Options
}

// New creates a line numberer running in pass 5 by default
func New(opts ...handlers.Option) *Handler {
	h := &Handler{options: Options{Start: 1, Step: 1, Format: "%d. "}}
	h.Base = handlers.NewBase(Name, 5, "number", &h.options, opts...)
	if err := checkFormat(h.options.Format); err != nil {
		h.Fail(err)
	}
	if h.options.To != "" {
		if _, err := strconv.Atoi(h.options.To); err != nil {
			h.Fail(errors.Newf(errors.ErrHandlerOptions, "handler %s: to=%q is not an integer", Name, h.options.To))
		}
	}
	return h
}

// Handle applies the number directive to the regions of doc
func (h *Handler) Handle(ctx *types.RunContext, doc *document.Document) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return handlers.ForEachDirective(doc, h.Mnemonic(), func(r *document.Region, d *handlers.Directive) ([]string, error) {
		n, err := h.Resolve(d.Params)
		if err != nil {
			return nil, err
		}
		return n.Apply(r.Body), nil
	})
}

// Resolve merges directive parameters over the handler defaults
func (h *Handler) Resolve(p *params.Params) (*Numbering, error) {
	var (
		n   = &Numbering{Format: p.GetDefault("format", h.options.Format)}
		err error
	)
	if n.Start, err = p.Int("start", h.options.Start); err != nil {
		return nil, err
	}
	if n.Step, err = p.Int("step", h.options.Step); err != nil {
		return nil, err
	}
	if n.From, err = p.Int("from", h.options.From); err != nil {
		return nil, err
	}
	to := p.GetDefault("to", h.options.To)
	if to != "" {
		v, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return nil, errors.Newf(errors.ErrSegmentParams, "parameter to=%q is not an integer", to)
		}
		n.To = &v
	}
	if err := checkFormat(n.Format); err != nil {
		return nil, err
	}
	return n, nil
}

// Apply numbers lines
func (n *Numbering) Apply(lines []string) []string {
	from := bound(n.From, len(lines))
	to := len(lines)
	if n.To != nil {
		to = bound(*n.To, len(lines))
	}

	out := make([]string, len(lines))
	number := n.Start
	for i, line := range lines {
		formatted := formatNumber(n.Format, number)
		if i >= from && i < to {
			out[i] = formatted + line
			number += n.Step
		} else {
			out[i] = strings.Repeat(" ", utf8.RuneCountInString(formatted)) + line
		}
	}
	return out
}

func bound(v, size int) int {
	if v < 0 {
		return size + v
	}
	return v
}

// verbs lists the verbs of a fmt format, skipping %%
func verbs(format string) []byte {
	var out []byte
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		for i < len(format) && strings.IndexByte("+-# 0123456789.", format[i]) >= 0 {
			i++
		}
		switch {
		case i == len(format):
			// a trailing % is never valid
			out = append(out, '%')
		case format[i] != '%':
			out = append(out, format[i])
		}
	}
	return out
}

// formatNumber formats n with an integer verb, or its decimal text with %s
// and %v
func formatNumber(format string, n int) string {
	if v := verbs(format); len(v) == 1 && (v[0] == 's' || v[0] == 'v') {
		return fmt.Sprintf(format, strconv.Itoa(n))
	}
	return fmt.Sprintf(format, n)
}

func checkFormat(format string) error {
	v := verbs(format)
	if len(v) != 1 || strings.IndexByte("dxXobsv", v[0]) < 0 {
		return errors.Newf(errors.ErrDirective,
			"format %q must contain exactly one verb, one of %%d %%x %%X %%o %%b %%s %%v", format)
	}
	return nil
}
