package snippets

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/snippet"
	"github.com/arthur-debert/snipper/pkg/types"
)

// WriterName is the registry name of the markdown snippet writer
const WriterName = "md-snippet-writer"

// WriterOptions hold the defaults of the append directive
type WriterOptions struct {
	// Snippets are name patterns of snippets appended to every region
	Snippets []string `option:"snippets"`
	// Escape is replaced by a backslash in the patterns
	Escape string `option:"escape"`
}

// Writer replaces the body of every snip region with its snippet. Regions
// may append further snippets with append="snippets='pattern'".
type Writer struct {
	handlers.Base
	options WriterOptions
}

// NewWriter creates a writer running in pass 2 by default
func NewWriter(opts ...handlers.Option) *Writer {
	h := &Writer{}
	h.Base = handlers.NewBase(WriterName, 2, "append", &h.options, opts...)
	return h
}

// Handle fills the regions of a markdown document
func (h *Writer) Handle(ctx *types.RunContext, doc *document.Document) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if !doc.IsMarkdown() {
		return nil
	}
	return doc.EditRegions(func(r *document.Region) error {
		name := r.SnippetName()
		sn, ok := ctx.Snippets.Get(name)
		if !ok {
			return errors.Newf(errors.ErrSnippetNotFound,
				"%s:%d: snippet %q referenced by region %q is not defined", doc.RelPath, r.StartLine, name, r.Name).
				WithDetail("file", doc.RelPath).
				WithDetail("region", r.Name).
				WithDetail("snippet", name)
		}
		body := sn.Lines

		extra, err := h.appended(ctx.Snippets, r)
		if err != nil {
			return errors.Wrapf(err, errors.ErrDirective, "%s:%d: region %q", doc.RelPath, r.StartLine, r.Name).
				WithDetail("file", doc.RelPath)
		}
		r.Body = append(body, extra...)

		ctx.Logger.Trace().
			Str("region", r.Name).
			Str("snippet", name).
			Int("lines", len(r.Body)).
			Msg("Region written")
		return nil
	})
}

// appended returns the lines of the snippets selected by the append
// directive, one pattern after the other, matching names sorted.
func (h *Writer) appended(store *snippet.Store, r *document.Region) ([]string, error) {
	patterns := h.options.Snippets
	escape := h.options.Escape

	d, ok, err := handlers.ParseDirective(r, h.Mnemonic())
	if err != nil {
		return nil, err
	}
	if ok {
		if list := d.Params.All("snippets"); len(list) > 0 {
			patterns = list
		}
		escape = d.Params.GetDefault("escape", escape)
	}

	var lines []string
	for _, p := range patterns {
		if escape != "" {
			p = strings.ReplaceAll(p, escape, `\`)
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "invalid append pattern %q", p)
		}
		names := store.Match(re)
		if len(names) == 0 {
			return nil, errors.Newf(errors.ErrSnippetNotFound, "no snippet matches the append pattern %q", p).
				WithDetail("pattern", p)
		}
		for _, name := range names {
			sn, _ := store.Get(name)
			lines = append(lines, sn.Lines...)
		}
	}
	return lines, nil
}
