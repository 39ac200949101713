package processor

import (
	"time"

	"github.com/arthur-debert/snipper/pkg/snippet"
)

// Result describes a processor run
type Result struct {
	Root   string
	Glob   string
	DryRun bool
	// Passes is the sorted union of all handler passes
	Passes []int
	// Files lists every document matched by at least one configuration
	Files      []FileResult
	Executions []HandlerExecution
	// Snippets is the store built during the run
	Snippets *snippet.Store
	Duration time.Duration
}

// FileResult describes what happened to one document
type FileResult struct {
	Path    string
	RelPath string
	// Configurations that matched the file, by name
	Configurations []string
	Changed        bool
	// Written is false for unchanged files and in dry runs
	Written bool
	// Diff is a unified diff, set for changed files when requested
	Diff string
}

// HandlerExecution records a single handler invocation
type HandlerExecution struct {
	Pass          int
	Configuration string
	Handler       string
	File          string
	Duration      time.Duration
	Error         error
}

// Changed returns the changed files
func (r *Result) Changed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Changed {
			out = append(out, f)
		}
	}
	return out
}

// ChangedCount returns the number of changed files
func (r *Result) ChangedCount() int {
	return len(r.Changed())
}

// Failed returns the failed execution, if any
func (r *Result) Failed() *HandlerExecution {
	for i := range r.Executions {
		if r.Executions[i].Error != nil {
			return &r.Executions[i]
		}
	}
	return nil
}
