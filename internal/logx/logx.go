// Package logx builds the diagnostic logger shared by jolt and its shims.
package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Level is debug, info, warn or error. Empty means warn.
	Level string
	// Verbose forces debug logging.
	Verbose bool
	// Dir, when set, also writes to a timestamped file inside it.
	Dir string
}

// New creates a logger writing to w (normally stderr). The returned closer
// must be closed when logging is no longer needed.
func New(w io.Writer, opts Options) (*log.Logger, io.Closer, error) {
	level := log.WarnLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = log.DebugLevel
	}

	var closer io.Closer = nopCloser{}
	if opts.Dir != "" {
		file, err := openFile(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(w, file)
		closer = file
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "jolt",
		Level:           level,
		ReportTimestamp: opts.Dir != "",
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func openFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	file, err := os.OpenFile(filepath.Join(dir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
