// Package snippets contains the handlers moving snippets from source
// files into markdown documents.
package snippets

import (
	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/snippet"
	"github.com/arthur-debert/snipper/pkg/types"
)

// ReaderName is the registry name of the snippet reader
const ReaderName = "snippet-reader"

// ReaderOptions are the options of the snippet reader
type ReaderOptions struct {
	// Start must capture the snippet name and parameters in group 1
	Start string `option:"start"`
	End   string `option:"end"`
}

// Reader collects snippet definitions into the run's snippet store
type Reader struct {
	handlers.Base
	options   ReaderOptions
	collector *snippet.Collector
}

// NewReader creates a snippet reader running in pass 1 by default
func NewReader(opts ...handlers.Option) *Reader {
	h := &Reader{
		options: ReaderOptions{Start: snippet.DefaultStart, End: snippet.DefaultEnd},
	}
	h.Base = handlers.NewBase(ReaderName, 1, "snippet", &h.options, opts...)

	collector, err := snippet.NewCollector(h.options.Start, h.options.End)
	if err != nil {
		h.Fail(err)
		return h
	}
	h.collector = collector
	return h
}

// Handle reads the snippets defined in doc
func (h *Reader) Handle(ctx *types.RunContext, doc *document.Document) error {
	if err := h.Validate(); err != nil {
		return err
	}
	lines, err := doc.SourceLines()
	if err != nil {
		return err
	}
	found, err := h.collector.Collect(doc.RelPath, lines)
	if err != nil {
		return err
	}
	for _, sn := range found {
		if err := ctx.Snippets.Put(sn); err != nil {
			return err
		}
		ctx.Logger.Trace().
			Str("snippet", sn.Name).
			Int("lines", len(sn.Lines)).
			Msg("Collected snippet")
	}
	if len(found) > 0 {
		ctx.Logger.Debug().Int("count", len(found)).Msg("Snippets collected")
	}
	return nil
}
