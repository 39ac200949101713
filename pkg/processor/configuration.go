package processor

import (
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/rules"
	"github.com/arthur-debert/snipper/pkg/types"
)

// Configuration binds a file selection to an ordered handler chain
//
//	processor.NewConfiguration().
//		File(`.*\.md$`).
//		Exclude("target").
//		Handler(snippets.NewWriter(), snippets.NewReader())
type Configuration struct {
	name     string
	file     string
	exclude  []string
	handlers []types.Handler
}

// NewConfiguration creates a configuration matching every file
func NewConfiguration() *Configuration {
	return &Configuration{}
}

// WithName names the configuration in logs and results
func (c *Configuration) WithName(name string) *Configuration {
	c.name = name
	return c
}

// Name returns the configured name, possibly empty
func (c *Configuration) Name() string {
	return c.name
}

// File sets the regex searched in the relative path of candidate files
func (c *Configuration) File(pattern string) *Configuration {
	c.file = pattern
	return c
}

// FilePattern returns the file regex
func (c *Configuration) FilePattern() string {
	return c.file
}

// Exclude adds regexes; a file matching any of them is not selected
func (c *Configuration) Exclude(patterns ...string) *Configuration {
	c.exclude = append(c.exclude, patterns...)
	return c
}

// Excludes returns the exclusion regexes
func (c *Configuration) Excludes() []string {
	return append([]string(nil), c.exclude...)
}

// Handler appends handlers. Within a pass they run in the order added.
func (c *Configuration) Handler(handlers ...types.Handler) *Configuration {
	c.handlers = append(c.handlers, handlers...)
	return c
}

// Handlers returns the handler chain
func (c *Configuration) Handlers() []types.Handler {
	return append([]types.Handler(nil), c.handlers...)
}

// Passes returns the sorted union of the handler passes
func (c *Configuration) Passes() []int {
	sets := make([]types.PassSet, 0, len(c.handlers))
	for _, h := range c.handlers {
		sets = append(sets, h.Passes())
	}
	return types.MergePasses(sets...)
}

// Validate checks the patterns and the handlers
func (c *Configuration) Validate() error {
	if _, err := c.rule(); err != nil {
		return err
	}
	for i, h := range c.handlers {
		if h == nil {
			return errors.Newf(errors.ErrInvalidInput, "handler %d of configuration %q is nil", i, c.name)
		}
		if v, ok := h.(types.Validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Configuration) rule() (*rules.Rule, error) {
	return rules.CompileRule(c.file, c.exclude)
}
