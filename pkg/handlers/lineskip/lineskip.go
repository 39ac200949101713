// Package lineskip implements the line-skipper handler. Lines of a region
// body are removed according to markers left in the source code:
//
//	// skip            starts skipping until a "skip end" line
//	// skip 2 lines    skips the next two lines
//	// skip till /}/   skips until a line matching the regex, which is kept
//
// The markers themselves are always removed. With skip="remove" only the
// lines matching the skip pattern are removed.
package lineskip

import (
	"regexp"
	"strconv"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/types"
)

// Name is the registry name of the line skipper
const Name = "line-skipper"

// RemoveID is the directive value removing only the marker lines
const RemoveID = "remove"

// Options are the marker patterns
type Options struct {
	Skip    *regexp.Regexp `option:"skip"`
	SkipEnd *regexp.Regexp `option:"skipEnd"`
	// SkipNrLines must capture the number of lines in group 1
	SkipNrLines *regexp.Regexp `option:"skipNrLines"`
	// SkipTill must capture the terminating regex in group 1
	SkipTill *regexp.Regexp `option:"skipTill"`
}

// DefaultOptions returns the standard markers
func DefaultOptions() Options {
	return Options{
		Skip:        regexp.MustCompile(`skip`),
		SkipEnd:     regexp.MustCompile(`skip\s+end`),
		SkipNrLines: regexp.MustCompile(`skip\s+(\+?\d+)\s+lines?`),
		SkipTill:    regexp.MustCompile(`skip\s+till\s+/(.*?)/`),
	}
}

// Handler is the line skipper
type Handler struct {
	handlers.Base
	options Options
}

// New creates a line skipper running in pass 3 by default
func New(opts ...handlers.Option) *Handler {
	h := &Handler{options: DefaultOptions()}
	h.Base = handlers.NewBase(Name, 3, "skip", &h.options, opts...)

	for key, re := range map[string]*regexp.Regexp{
		"skipNrLines": h.options.SkipNrLines,
		"skipTill":    h.options.SkipTill,
	} {
		if re.NumSubexp() < 1 {
			h.Fail(errors.Newf(errors.ErrHandlerOptions, "handler %s: %s pattern %q needs a capture group", Name, key, re))
		}
	}
	return h
}

// Handle applies the skip directive to the regions of doc
func (h *Handler) Handle(ctx *types.RunContext, doc *document.Document) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return handlers.ForEachDirective(doc, h.Mnemonic(), func(r *document.Region, d *handlers.Directive) ([]string, error) {
		if d.ID == RemoveID {
			return h.RemoveMarkers(r.Body), nil
		}
		return h.Skip(r.Body)
	})
}

// RemoveMarkers drops the lines matching the skip pattern
func (h *Handler) RemoveMarkers(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if !h.options.Skip.MatchString(line) {
			out = append(out, line)
		}
	}
	return out
}

// Skip removes the skipped lines together with their markers
func (h *Handler) Skip(lines []string) ([]string, error) {
	var (
		out      = make([]string, 0, len(lines))
		skipping bool
		counter  int
		till     *regexp.Regexp
	)
	for _, line := range lines {
		if skipping {
			switch {
			case counter > 0:
				counter--
				skipping = counter > 0
				till = nil
			case till != nil && till.MatchString(line):
				out = append(out, line)
				skipping, till = false, nil
			case h.options.SkipEnd.MatchString(line):
				skipping, till = false, nil
			}
			continue
		}

		if m := h.options.SkipNrLines.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrDirective, "invalid line count in %q", line)
			}
			counter, till, skipping = n, nil, true
			continue
		}
		if m := h.options.SkipTill.FindStringSubmatch(line); m != nil {
			re, err := regexp.Compile(m[1])
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid skip till pattern %q", m[1])
			}
			counter, till, skipping = 0, re, true
			continue
		}
		if h.options.Skip.MatchString(line) {
			counter, till, skipping = 0, nil, true
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
