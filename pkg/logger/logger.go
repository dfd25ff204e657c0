package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const SearchIDKey ctxKey = "searchId"

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
		DisableColors:   true,
	})
	// The terminal belongs to the TUI until Setup points logs somewhere.
	logrus.SetOutput(io.Discard)
}

// Setup sends log output to the file at path, creating parent directories.
// An empty path keeps logs discarded. The returned closer releases the file.
func Setup(path, level string) (io.Closer, error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if strings.TrimSpace(path) == "" {
		logrus.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(file)
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func For(ctx context.Context) *logrus.Entry {
	id, ok := ctx.Value(SearchIDKey).(uint64)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.WithField("search_id", id)
}

func ContextWithSearch(ctx context.Context, seq uint64) context.Context {
	return context.WithValue(ctx, SearchIDKey, seq)
}

// Track logs how long an operation took once the returned func is called.
func Track(ctx context.Context, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		entry := For(ctx).WithField("duration", dur.String())

		if dur > 2*time.Second {
			entry.Warnf("%s completed (SLOW)", msg)
		} else {
			entry.Debugf("%s completed", msg)
		}
	}
}
