package types

import (
	"context"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/snippet"
	"github.com/rs/zerolog"
)

// Handler is a transform unit applied to the documents matched by a
// configuration. The processor calls Handle once per matched document for
// every pass contained in Passes.
type Handler interface {
	// Name returns the registry name of this handler
	Name() string

	// Passes returns the passes this handler takes part in
	Passes() PassSet

	// Handle processes a single document in the current pass
	Handle(ctx *RunContext, doc *document.Document) error
}

// Validator is implemented by handlers whose construction options can be
// invalid. Configurations call it before a run starts.
type Validator interface {
	Validate() error
}

// RunContext is the state shared by all handlers during a single run
type RunContext struct {
	// Context carries cancellation for the run
	Context context.Context

	// Pass is the pass currently executing
	Pass int

	// Snippets is the store filled by snippet readers and used by writers
	Snippets *snippet.Store

	// Logger is scoped to the current document and pass
	Logger zerolog.Logger
}
