// Package logger provides structured logging for insumos using zerolog.
// Batch progress and HTTP requests are always logged at info level; debug
// messages are only emitted when verbose mode is enabled via --verbose.
//
// Output is a human-friendly console format when stderr is a terminal and
// one JSON object per line otherwise.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	human   = isTerminal(os.Stderr)
	output  io.Writer = os.Stderr
	base    = build()
)

// build creates the logger from the current settings (caller must hold lock).
func build() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	w := output
	if human {
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build()
}

// SetOutput sets the output writer. Defaults to os.Stderr.
// The console format is used only if w is a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	human = isTerminal(w)
	base = build()
}

// SetHuman forces the console format on or off.
func SetHuman(h bool) {
	mu.Lock()
	defer mu.Unlock()
	human = h
	base = build()
}

// L returns the current structured logger.
func L() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

// With returns a child logger carrying the given string fields as
// key/value pairs.
func With(kv ...string) zerolog.Logger {
	ctx := L().With()
	for i := 0; i+1 < len(kv); i += 2 {
		ctx = ctx.Str(kv[i], kv[i+1])
	}
	return ctx.Logger()
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Debug().Msgf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	L().Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	L().Warn().Msgf(format, args...)
}

// Error logs an error with a message.
func Error(err error, format string, args ...any) {
	L().Error().Err(err).Msgf(format, args...)
}
