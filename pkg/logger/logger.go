// Package logger provides the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// Level is one of debug, info, warn, error. Unknown values fall back to info.
	Level string
	// Pretty switches to the human-readable console writer.
	Pretty bool
	// Output overrides the destination, mainly for tests. Defaults to stdout.
	Output io.Writer
}

var (
	mu   sync.Mutex
	base zerolog.Logger
	done bool
)

// Init configures the global logger. Subsequent calls are ignored.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	if done {
		return
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	base = zerolog.New(out).Level(parseLevel(opts.Level)).With().Timestamp().Logger()
	done = true
}

// Get returns the global logger, initialising it with defaults if needed.
func Get() zerolog.Logger {
	mu.Lock()
	initialised := done
	mu.Unlock()

	if !initialised {
		Init(Options{Level: "info"})
	}

	mu.Lock()
	defer mu.Unlock()
	return base
}

// Reset clears the initialised state so tests can reconfigure the logger.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	done = false
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
