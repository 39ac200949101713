package handlers

import (
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/logging"
	"github.com/arthur-debert/snipper/pkg/types"
	"github.com/rs/zerolog"
)

// MnemonicOption is the option key renaming a handler's directive
const MnemonicOption = "mnemonic"

// Option configures a handler at construction time
type Option func(*settings)

type settings struct {
	passes   []int
	mnemonic string
	options  map[string]interface{}
}

// WithPasses sets the passes the handler runs in, replacing its default
func WithPasses(passes ...int) Option {
	return func(s *settings) {
		s.passes = passes
	}
}

// WithMnemonic renames the directive key the handler reacts to
func WithMnemonic(mnemonic string) Option {
	return func(s *settings) {
		s.mnemonic = mnemonic
	}
}

// WithOptions passes handler specific options. They are decoded into the
// handler's option struct; unknown keys are reported by Validate.
func WithOptions(options map[string]interface{}) Option {
	return func(s *settings) {
		if s.options == nil {
			s.options = make(map[string]interface{}, len(options))
		}
		for k, v := range options {
			s.options[k] = v
		}
	}
}

// Base implements the bookkeeping part of types.Handler. Concrete
// handlers embed it.
type Base struct {
	name     string
	passes   types.PassSet
	mnemonic string
	logger   zerolog.Logger
	err      error
}

// NewBase applies opts over the handler defaults and decodes the handler
// specific options into target, which may be nil for handlers without
// options. Decoding problems are kept and returned by Validate.
func NewBase(name string, defaultPass int, defaultMnemonic string, target interface{}, opts ...Option) Base {
	s := &settings{passes: []int{defaultPass}, mnemonic: defaultMnemonic}
	for _, opt := range opts {
		opt(s)
	}

	b := Base{
		name:   name,
		logger: logging.GetLogger("handlers." + name),
	}

	options := make(map[string]interface{}, len(s.options))
	for k, v := range s.options {
		options[k] = v
	}
	if m, ok := options[MnemonicOption]; ok {
		if ms, ok := m.(string); ok && ms != "" {
			s.mnemonic = ms
		} else {
			b.Fail(errors.Newf(errors.ErrHandlerOptions, "handler %s: mnemonic must be a non-empty string", name))
		}
		delete(options, MnemonicOption)
	}

	if len(s.passes) == 0 {
		b.Fail(errors.Newf(errors.ErrHandlerOptions, "handler %s: at least one pass is required", name))
	}
	for _, p := range s.passes {
		if p < 1 {
			b.Fail(errors.Newf(errors.ErrHandlerOptions, "handler %s: pass %d is not positive", name, p))
		}
	}
	b.passes = types.NewPassSet(s.passes...)
	b.mnemonic = s.mnemonic

	if target != nil {
		if err := DecodeOptions(options, target); err != nil {
			b.Fail(errors.Wrapf(err, errors.ErrHandlerOptions, "handler %s: invalid options", name))
		}
	} else if len(options) > 0 {
		b.Fail(errors.Newf(errors.ErrHandlerOptions, "handler %s takes no options", name))
	}
	return b
}

// Name returns the registry name
func (b *Base) Name() string {
	return b.name
}

// Passes returns the passes the handler runs in
func (b *Base) Passes() types.PassSet {
	return b.passes
}

// Mnemonic returns the directive key
func (b *Base) Mnemonic() string {
	return b.mnemonic
}

// Logger returns the handler's component logger
func (b *Base) Logger() zerolog.Logger {
	return b.logger
}

// Fail records a construction error. Only the first one is kept.
func (b *Base) Fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Validate returns the first construction error
func (b *Base) Validate() error {
	return b.err
}
