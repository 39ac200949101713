// Package registry maps handler names, as used in configuration files, to
// handler constructors.
package registry

import (
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/handlers"
	"github.com/arthur-debert/snipper/pkg/handlers/linenumber"
	"github.com/arthur-debert/snipper/pkg/handlers/lineskip"
	"github.com/arthur-debert/snipper/pkg/handlers/regex"
	"github.com/arthur-debert/snipper/pkg/handlers/snippets"
	"github.com/arthur-debert/snipper/pkg/handlers/trim"
	"github.com/arthur-debert/snipper/pkg/registry"
	"github.com/arthur-debert/snipper/pkg/types"
)

// Factory creates a handler
type Factory func(opts ...handlers.Option) types.Handler

var factories = registry.New[Factory]()

func init() {
	MustRegister(snippets.ReaderName, func(opts ...handlers.Option) types.Handler { return snippets.NewReader(opts...) })
	MustRegister(snippets.WriterName, func(opts ...handlers.Option) types.Handler { return snippets.NewWriter(opts...) })
	MustRegister(lineskip.Name, func(opts ...handlers.Option) types.Handler { return lineskip.New(opts...) })
	MustRegister(regex.Name, func(opts ...handlers.Option) types.Handler { return regex.New(opts...) })
	MustRegister(trim.Name, func(opts ...handlers.Option) types.Handler { return trim.New(opts...) })
	MustRegister(linenumber.Name, func(opts ...handlers.Option) types.Handler { return linenumber.New(opts...) })
}

// Register adds a handler factory
func Register(name string, factory Factory) error {
	return factories.Register(name, factory)
}

// MustRegister is Register for init functions
func MustRegister(name string, factory Factory) {
	registry.MustRegister(factories, name, factory)
}

// Names lists the registered handlers sorted by name
func Names() []string {
	return factories.Names()
}

// Has reports whether name is registered
func Has(name string) bool {
	return factories.Has(name)
}

// Create builds and validates a handler. Empty passes keep the handler's
// default pass.
func Create(name string, passes []int, options map[string]interface{}) (types.Handler, error) {
	factory, err := factories.Get(name)
	if err != nil {
		return nil, errors.Newf(errors.ErrHandlerNotFound, "unknown handler %q", name).
			WithDetail("handler", name).
			WithDetail("available", Names())
	}

	var opts []handlers.Option
	if len(passes) > 0 {
		opts = append(opts, handlers.WithPasses(passes...))
	}
	if len(options) > 0 {
		opts = append(opts, handlers.WithOptions(options))
	}

	h := factory(opts...)
	if v, ok := h.(types.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return h, nil
}
