package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/snipper/pkg/errors"
)

// NoLogFile disables the log file when used as Options.LogFile
const NoLogFile = "-"

// Options controls where log events go
type Options struct {
	// Verbosity is the number of -v flags given on the command line
	Verbosity int
	// Console receives human readable output, stderr when nil
	Console io.Writer
	// LogFile receives JSON events. Empty selects LogFilePath().
	LogFile string
	NoColor bool
}

// SetupLogger configures the global logger for a CLI invocation: console
// output on stderr plus the state log file
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity, NoColor: os.Getenv("NO_COLOR") != ""})
}

// Setup installs the global logger described by opts. A log file that can
// not be opened is reported on the console and otherwise ignored.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor,
	}}

	path := opts.LogFile
	if path == "" {
		path = LogFilePath()
	}
	var fileErr error
	if path != NoLogFile {
		var f *os.File
		if f, fileErr = openLogFile(path); fileErr == nil {
			writers = append(writers, f)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("Logger initialized")
}

// Level maps a -v count to a zerolog level. Warnings are always shown.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// LogFilePath is $XDG_STATE_HOME/snipper/snipper.log
func LogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return "snipper.log"
	}
	return filepath.Join(stateHome, "snipper", "snipper.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "cannot create log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot open log file")
	}
	return f, nil
}

// GetLogger returns a logger tagged with the component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// Track logs the start of an operation at debug level and returns the
// function that logs its completion and duration
func Track(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
