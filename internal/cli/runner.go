package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"slices"

	"github.com/arthur-debert/snipper/pkg/config"
	"github.com/arthur-debert/snipper/pkg/errors"
	"github.com/arthur-debert/snipper/pkg/filesystem"
	"github.com/arthur-debert/snipper/pkg/handlers/registry"
	"github.com/arthur-debert/snipper/pkg/logging"
	"github.com/arthur-debert/snipper/pkg/output"
	"github.com/arthur-debert/snipper/pkg/output/styles"
	"github.com/arthur-debert/snipper/pkg/processor"
)

// globalOptions are the flags shared by every command
type globalOptions struct {
	verbosity  int
	root       string
	configFile string
	glob       string
	format     string
	dryRun     bool
	diff       bool
	check      bool
	skip       []string
}

// reportedError marks an error that was already rendered
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported tells main not to print err again
func IsReported(err error) bool {
	var r *reportedError
	return stderrors.As(err, &r)
}

func (o *globalOptions) renderer(w io.Writer) (output.Renderer, error) {
	f, err := output.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(f, w)
}

func (o *globalOptions) loadConfig() (*config.Config, error) {
	overrides := map[string]interface{}{}
	if o.glob != "" {
		overrides["glob"] = o.glob
	}
	cfg, path, err := config.Load(config.LoadOptions{
		Root:      o.root,
		File:      o.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}
	if err := useTheme(cfg); err != nil {
		return nil, err
	}
	logger := logging.GetLogger("cli")
	logger.Debug().
		Str("config", path).
		Str("root", cfg.Root).
		Str("glob", cfg.Glob).
		Msg("Configuration loaded")
	return cfg, nil
}

// useTheme activates the project's terminal theme, or the default one
func useTheme(cfg *config.Config) error {
	path := cfg.StylesPath()
	if path == "" {
		styles.Use(nil)
		return nil
	}
	theme, err := styles.LoadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "cannot load styles")
	}
	styles.Use(theme)
	return nil
}

// newProcessor builds the processor for the loaded configuration and the
// command line flags
func (o *globalOptions) newProcessor(cfg *config.Config) (*processor.Processor, error) {
	for _, name := range o.skip {
		if !registry.Has(name) {
			return nil, errors.Newf(errors.ErrHandlerNotFound, MsgErrUnknownHandler, name).
				WithDetail("available", registry.Names())
		}
	}

	configs, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	dryRun := o.dryRun || o.check
	opts := cfg.ProcessorOptions()
	opts = append(opts,
		processor.WithDryRun(dryRun),
		processor.WithDiff(o.diff),
	)
	if dryRun {
		opts = append(opts, processor.WithFS(filesystem.NewReadOnlyOS()))
	}
	if len(o.skip) > 0 {
		skip := slices.Clone(o.skip)
		opts = append(opts, processor.WithHandlerFilter(func(name string) bool {
			return !slices.Contains(skip, name)
		}))
	}
	return processor.New(configs, cfg.Glob, opts...)
}

// process runs the processor once and renders the outcome
func (o *globalOptions) process(ctx context.Context, w io.Writer) error {
	r, err := o.renderer(w)
	if err != nil {
		return err
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return o.fail(r, err)
	}
	p, err := o.newProcessor(cfg)
	if err != nil {
		return o.fail(r, err)
	}

	result, runErr := p.Process(ctx)
	report := output.NewReport(result, o.check, runErr)
	if err := r.RenderReport(report); err != nil {
		return err
	}
	if runErr != nil {
		return &reportedError{err: runErr}
	}
	if report.Failed() {
		return &reportedError{err: fmt.Errorf(MsgErrOutdated, report.Changed)}
	}
	return nil
}

func (o *globalOptions) fail(r output.Renderer, err error) error {
	if rerr := r.RenderError(err); rerr != nil {
		return err
	}
	return &reportedError{err: err}
}
