package processor

import (
	"github.com/arthur-debert/snipper/pkg/filesystem"
	"github.com/arthur-debert/snipper/pkg/rules"
	"github.com/arthur-debert/snipper/pkg/types"
)

// DefaultConcurrency bounds the number of documents loaded in parallel
const DefaultConcurrency = 8

// Options control a processor run
type Options struct {
	// Root is the directory the root glob is applied to
	Root string
	// FS defaults to the OS filesystem
	FS types.FS
	// DryRun computes the changes without writing them
	DryRun bool
	// Diff adds unified diffs of changed files to the result
	Diff bool
	// IgnoreDirs are directory names never descended into
	IgnoreDirs []string
	// Concurrency bounds document loading
	Concurrency int
	// HandlerFilter, when set, selects the handlers that run by name
	HandlerFilter func(name string) bool
}

// Option configures a processor
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Root:        ".",
		IgnoreDirs:  rules.DefaultIgnoreDirs,
		Concurrency: DefaultConcurrency,
	}
}

// WithRoot sets the processing root
func WithRoot(root string) Option {
	return func(o *Options) { o.Root = root }
}

// WithFS sets the filesystem
func WithFS(fs types.FS) Option {
	return func(o *Options) { o.FS = fs }
}

// WithDryRun disables writing
func WithDryRun(dryRun bool) Option {
	return func(o *Options) { o.DryRun = dryRun }
}

// WithDiff enables unified diffs in the result
func WithDiff(diff bool) Option {
	return func(o *Options) { o.Diff = diff }
}

// WithIgnoreDirs replaces the ignored directory names
func WithIgnoreDirs(dirs ...string) Option {
	return func(o *Options) { o.IgnoreDirs = dirs }
}

// WithConcurrency bounds document loading. Values below one mean one.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

// WithHandlerFilter restricts the handlers that run
func WithHandlerFilter(filter func(name string) bool) Option {
	return func(o *Options) { o.HandlerFilter = filter }
}

func (o *Options) normalize() {
	if o.Root == "" {
		o.Root = "."
	}
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
}
