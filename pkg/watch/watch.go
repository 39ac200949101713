// Package watch re-runs a function whenever files below a directory
// change. Bursts of events are debounced into a single run.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce is the quiet period before a run
const DefaultDebounce = 300 * time.Millisecond

// RunFunc is called once at start and after every debounced change. An
// error is logged and watching continues.
type RunFunc func(ctx context.Context) error

// Watcher watches a directory tree
type Watcher struct {
	root       string
	ignoreDirs []string
	debounce   time.Duration
	run        RunFunc
	logger     zerolog.Logger
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnoreDirs sets directory names that are not watched
func WithIgnoreDirs(dirs ...string) Option {
	return func(w *Watcher) { w.ignoreDirs = dirs }
}

// New creates a watcher for root
func New(root string, run RunFunc, opts ...Option) *Watcher {
	w := &Watcher{
		root:       root,
		ignoreDirs: []string{".git"},
		debounce:   DefaultDebounce,
		run:        run,
		logger:     logging.GetLogger("watch"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch runs once, then blocks re-running on changes until ctx is done.
// Writes made by the run itself trigger one more run, which finds
// nothing left to change.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	defer func() { _ = fw.Close() }()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}
	w.logger.Info().Str("root", w.root).Msg("Watching for changes")

	w.invoke(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.ignored(event.Name) || (event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write)) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// new directories are watched as well
				if err := w.addTree(fw, event.Name); err != nil {
					w.logger.Debug().Err(err).Str("path", event.Name).Msg("Not watching new path")
				}
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("File changed")
			timer.Reset(w.debounce)

		case <-timer.C:
			w.invoke(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

func (w *Watcher) invoke(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := w.run(ctx); err != nil {
		w.logger.Error().Err(err).Msg("Run failed")
		return
	}
	w.logger.Debug().Dur("duration", time.Since(start)).Msg("Run completed")
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if slices.Contains(w.ignoreDirs, part) {
			return true
		}
	}
	return false
}

// addTree watches path and every directory below it. Regular files are
// covered by their parent directory.
func (w *Watcher) addTree(fw *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return errors.Wrapf(err, errors.ErrDirRead, "cannot watch %s", p).WithDetail("path", p)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && slices.Contains(w.ignoreDirs, d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return errors.Wrapf(err, errors.ErrDirRead, "cannot watch %s", p).WithDetail("path", p)
		}
		return nil
	})
}
