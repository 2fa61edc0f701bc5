// Package logging configures the zerolog logger used across hatch.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gorewood/hatch/internal/output"
)

// Setup configures the global logger for the given verbosity and writes
// human-readable lines to w. When logFile is set, records are also
// appended there as JSON if the file can be opened. The returned function
// closes the log file and must be called once logging is done.
//
//	0 warn, 1 info, 2 debug (with caller), 3+ trace
func Setup(verbosity int, w io.Writer, logFile string) (closeFn func() error) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !output.IsTTY(w),
	}}

	closeFn = func() error { return nil }
	var err error
	if logFile != "" {
		var file *os.File
		file, err = openLogFile(logFile)
		if err == nil {
			writers = append(writers, file)
			closeFn = file.Close
		}
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if err != nil {
		log.Debug().Err(err).Str("path", logFile).Msg("log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("logger initialized")
	return closeFn
}

// Get returns a logger tagged with the component name.
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Nop returns a disabled logger, for tests and library callers.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// FilePath returns the log file location under the XDG state directory.
func FilePath() string {
	return filepath.Join(xdg.StateHome, "hatch", "hatch.log")
}

// LogCommand logs a subprocess launch.
func LogCommand(logger zerolog.Logger, dir, name string, args []string) {
	logger.Debug().
		Str("command", name).
		Strs("args", args).
		Str("dir", dir).
		Msg("executing command")
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("operation completed")
	}
}

func levelFor(verbosity int) zerolog.Level {
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

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return file, nil
}
