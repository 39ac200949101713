// Package processor runs configurations over a source tree in passes.
//
// A run scans the root, selects the files of every configuration, loads
// them once and then, for every pass in ascending order, for every
// configuration in order, for every selected file in path order, calls
// the configuration's handlers that take part in the pass. Changed
// documents are written at the end of the run.
package processor

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"sync"
	"time"

	"github.com/arthur-debert/snipper/pkg/document"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/logging"
	"github.com/arthur-debert/snipper/pkg/rules"
	"github.com/arthur-debert/snipper/pkg/snippet"
	"github.com/arthur-debert/snipper/pkg/types"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Processor executes configurations
type Processor struct {
	configs []*Configuration
	names   []string
	rules   []*rules.Rule
	scanner *rules.Scanner
	opts    Options
	logger  zerolog.Logger
}

// New validates the configurations and prepares a processor. An empty
// root glob selects rules.DefaultRootGlob.
func New(configs []*Configuration, rootGlob string, opts ...Option) (*Processor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.normalize()

	p := &Processor{
		configs: configs,
		opts:    o,
		logger:  logging.GetLogger("processor"),
	}
	for i, c := range configs {
		if c == nil {
			return nil, errors.Newf(errors.ErrInvalidInput, "configuration %d is nil", i+1)
		}
		name := c.Name()
		if name == "" {
			name = fmt.Sprintf("config-%d", i+1)
		}
		if err := c.Validate(); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "configuration %q is invalid", name).
				WithDetail("configuration", name)
		}
		rule, _ := c.rule()
		p.names = append(p.names, name)
		p.rules = append(p.rules, rule)
	}

	scanner, err := rules.NewScanner(o.FS, rootGlob, o.IgnoreDirs)
	if err != nil {
		return nil, err
	}
	p.scanner = scanner
	return p, nil
}

// Passes returns the sorted union of the passes of all handlers
func (p *Processor) Passes() []int {
	var sets []types.PassSet
	for _, c := range p.configs {
		for _, h := range c.handlers {
			if p.enabled(h) {
				sets = append(sets, h.Passes())
			}
		}
	}
	return types.MergePasses(sets...)
}

func (p *Processor) enabled(h types.Handler) bool {
	return p.opts.HandlerFilter == nil || p.opts.HandlerFilter(h.Name())
}

type loaded struct {
	doc  *document.Document
	mode fs.FileMode
}

// Process runs all passes and writes the changed documents. On error the
// partial result is returned together with the error and nothing is
// written.
func (p *Processor) Process(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{
		Root:     p.opts.Root,
		Glob:     p.scanner.Glob(),
		DryRun:   p.opts.DryRun,
		Passes:   p.Passes(),
		Snippets: snippet.NewStore(),
	}
	defer func() {
		result.Duration = time.Since(start)
	}()

	p.logger.Debug().
		Str("root", p.opts.Root).
		Str("glob", p.scanner.Glob()).
		Int("configurations", len(p.configs)).
		Ints("passes", result.Passes).
		Bool("dryRun", p.opts.DryRun).
		Msg("Starting run")

	// Step 1: select files
	files, err := p.scanner.Scan(p.opts.Root)
	if err != nil {
		return result, err
	}
	selected := make([][]rules.FileInfo, len(p.configs))
	matchedBy := map[string][]string{}
	var toLoad []rules.FileInfo
	for i, rule := range p.rules {
		selected[i] = rule.Filter(files)
		for _, f := range selected[i] {
			if _, seen := matchedBy[f.RelPath]; !seen {
				toLoad = append(toLoad, f)
			}
			matchedBy[f.RelPath] = append(matchedBy[f.RelPath], p.names[i])
		}
		p.logger.Debug().
			Str("configuration", p.names[i]).
			Int("files", len(selected[i])).
			Msg("Files selected")
	}

	// Step 2: load documents
	docs, err := p.load(ctx, toLoad)
	if err != nil {
		return result, err
	}

	// Step 3: run the passes
	if err := p.run(ctx, result, selected, docs); err != nil {
		return result, err
	}

	// Step 4: flush
	if err := p.flush(result, toLoad, docs, matchedBy); err != nil {
		return result, err
	}

	p.logger.Info().
		Int("files", len(result.Files)).
		Int("changed", result.ChangedCount()).
		Int("snippets", result.Snippets.Len()).
		Bool("dryRun", p.opts.DryRun).
		Dur("duration", time.Since(start)).
		Msg("Run completed")
	return result, nil
}

func (p *Processor) load(ctx context.Context, files []rules.FileInfo) (map[string]*loaded, error) {
	done := logging.Track(p.logger, "load documents")
	defer done()

	var (
		mu   sync.Mutex
		docs = make(map[string]*loaded, len(files))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for _, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrap(err, errors.ErrCanceled, "run canceled")
			}
			info, err := p.opts.FS.Stat(f.Path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", f.RelPath).
					WithDetail("file", f.RelPath)
			}
			content, err := p.opts.FS.ReadFile(f.Path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", f.RelPath).
					WithDetail("file", f.RelPath)
			}
			doc := document.New(f.Path, f.RelPath, content)

			mu.Lock()
			docs[f.RelPath] = &loaded{doc: doc, mode: info.Mode().Perm()}
			mu.Unlock()

			p.logger.Trace().
				Str("file", f.RelPath).
				Str("kind", doc.Kind.String()).
				Int("lines", doc.LineCount()).
				Msg("Document loaded")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (p *Processor) run(ctx context.Context, result *Result, selected [][]rules.FileInfo, docs map[string]*loaded) error {
	for _, pass := range result.Passes {
		p.logger.Debug().Int("pass", pass).Msg("Pass started")
		for i, c := range p.configs {
			for _, f := range selected[i] {
				if err := ctx.Err(); err != nil {
					return errors.Wrap(err, errors.ErrCanceled, "run canceled")
				}
				doc := docs[f.RelPath].doc
				for _, h := range c.handlers {
					if !h.Passes().Contains(pass) || !p.enabled(h) {
						continue
					}
					if err := p.invoke(ctx, result, pass, p.names[i], h, doc); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (p *Processor) invoke(ctx context.Context, result *Result, pass int, config string, h types.Handler, doc *document.Document) error {
	logger := p.logger.With().
		Int("pass", pass).
		Str("configuration", config).
		Str("handler", h.Name()).
		Str("file", doc.RelPath).
		Logger()

	rc := &types.RunContext{
		Context:  ctx,
		Pass:     pass,
		Snippets: result.Snippets,
		Logger:   logger,
	}

	start := time.Now()
	err := h.Handle(rc, doc)
	exec := HandlerExecution{
		Pass:          pass,
		Configuration: config,
		Handler:       h.Name(),
		File:          doc.RelPath,
		Duration:      time.Since(start),
	}
	if err != nil {
		exec.Error = errors.Wrapf(err, errors.ErrHandlerExecute,
			"handler %s failed on %s in pass %d", h.Name(), doc.RelPath, pass).
			WithDetail("handler", h.Name()).
			WithDetail("pass", pass).
			WithDetail("file", doc.RelPath).
			WithDetail("configuration", config)
		result.Executions = append(result.Executions, exec)
		logger.Error().Err(err).Msg("Handler failed")
		return exec.Error
	}
	result.Executions = append(result.Executions, exec)
	logger.Trace().Dur("duration", exec.Duration).Msg("Handler done")
	return nil
}

func (p *Processor) flush(result *Result, files []rules.FileInfo, docs map[string]*loaded, matchedBy map[string][]string) error {
	sorted := append([]rules.FileInfo(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RelPath < sorted[j].RelPath })

	for _, f := range sorted {
		l := docs[f.RelPath]
		fr := FileResult{
			Path:           f.Path,
			RelPath:        f.RelPath,
			Configurations: matchedBy[f.RelPath],
			Changed:        l.doc.Modified(),
		}
		if fr.Changed && p.opts.Diff {
			diff, err := unifiedDiff(f.RelPath, l.doc.Original(), l.doc.Content())
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "cannot diff %s", f.RelPath)
			}
			fr.Diff = diff
		}
		if fr.Changed && !p.opts.DryRun {
			if err := p.opts.FS.WriteFile(f.Path, l.doc.Content(), l.mode); err != nil {
				result.Files = append(result.Files, fr)
				return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", f.RelPath).
					WithDetail("file", f.RelPath)
			}
			fr.Written = true
			p.logger.Info().Str("file", f.RelPath).Msg("Document updated")
		} else if fr.Changed {
			p.logger.Info().Str("file", f.RelPath).Msg("Document would change")
		}
		result.Files = append(result.Files, fr)
	}
	return nil
}

func unifiedDiff(relPath string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + relPath,
		ToFile:   "b/" + relPath,
		Context:  3,
	})
}
