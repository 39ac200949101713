package output

import (
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/processor"
	"github.com/arthur-debert/snipper/pkg/snippet"
)

// Report is the serializable view of a processor run
type Report struct {
	Root   string `json:"root" yaml:"root"`
	Glob   string `json:"glob" yaml:"glob"`
	DryRun bool   `json:"dry_run" yaml:"dry_run"`
	// Check marks changed files as failures
	Check    bool         `json:"check,omitempty" yaml:"check,omitempty"`
	Passes   []int        `json:"passes" yaml:"passes"`
	Files    []FileReport `json:"files" yaml:"files"`
	Changed  int          `json:"changed" yaml:"changed"`
	Snippets int          `json:"snippets" yaml:"snippets"`
	Duration string       `json:"duration" yaml:"duration"`
	Seconds  float64      `json:"-" yaml:"-"`
	Error    *ErrorReport `json:"error,omitempty" yaml:"error,omitempty"`
}

// FileReport describes one processed document
type FileReport struct {
	Path           string   `json:"path" yaml:"path"`
	Configurations []string `json:"configurations" yaml:"configurations"`
	Changed        bool     `json:"changed" yaml:"changed"`
	Written        bool     `json:"written" yaml:"written"`
	Diff           string   `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// ErrorReport is an error with its code and details
type ErrorReport struct {
	Code    string                 `json:"code" yaml:"code"`
	Message string                 `json:"message" yaml:"message"`
	File    string                 `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int                    `json:"line,omitempty" yaml:"line,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// SnippetReport describes one collected snippet
type SnippetReport struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Lines  int    `json:"lines" yaml:"lines"`
}

// NewReport builds a report from a run result. A nil result yields an
// empty report, err is attached when set.
func NewReport(result *processor.Result, check bool, err error) *Report {
	r := &Report{Check: check, Files: []FileReport{}}
	if result != nil {
		r.Root = result.Root
		r.Glob = result.Glob
		r.DryRun = result.DryRun
		r.Passes = result.Passes
		r.Duration = result.Duration.String()
		r.Seconds = result.Duration.Seconds()
		if result.Snippets != nil {
			r.Snippets = result.Snippets.Len()
		}
		for _, f := range result.Files {
			r.Files = append(r.Files, FileReport{
				Path:           f.RelPath,
				Configurations: f.Configurations,
				Changed:        f.Changed,
				Written:        f.Written,
				Diff:           f.Diff,
			})
			if f.Changed {
				r.Changed++
			}
		}
	}
	if err != nil {
		r.Error = NewErrorReport(err)
	}
	return r
}

// NewErrorReport converts err, keeping the code of snipper errors
func NewErrorReport(err error) *ErrorReport {
	r := &ErrorReport{
		Code:    string(errors.GetErrorCode(err)),
		Message: err.Error(),
		Details: errors.GetErrorDetails(err),
	}
	if file, line, ok := errors.Location(err); ok {
		r.File, r.Line = file, line
	}
	return r
}

// Failed reports whether the run errored or, in check mode, left files
// out of date
func (r *Report) Failed() bool {
	return r.Error != nil || (r.Check && r.Changed > 0)
}

// NewSnippetReports lists the snippets of store by name
func NewSnippetReports(store *snippet.Store) []SnippetReport {
	out := []SnippetReport{}
	if store == nil {
		return out
	}
	for _, sn := range store.All() {
		out = append(out, SnippetReport{
			Name:   sn.Name,
			Source: sn.Source,
			Line:   sn.Line,
			Lines:  len(sn.Lines),
		})
	}
	return out
}
