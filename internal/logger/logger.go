package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type ctxKey struct{}

type implLogger struct {
	logger *log.Logger
	level  string
}

// New creates a new Logger instance writing to stdout
func New(level string) Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput creates a Logger writing to w
func NewWithOutput(level string, w io.Writer) Logger {
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  strings.ToLower(level),
	}
}

// NewFile opens (or creates) path in append mode and returns a Logger writing to it.
// The returned closer must be closed by the caller.
func NewFile(level, path string) (Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithOutput(level, f), f, nil
}

// WithRequestID returns a context whose log lines are tagged with id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id set by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (l *implLogger) shouldLog(level string) bool {
	levels := map[string]int{
		"debug": 0,
		"info":  1,
		"warn":  2,
		"error": 3,
	}

	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) print(ctx context.Context, tag, msg string, args ...interface{}) {
	prefix := "[" + tag + "] "
	if id := RequestID(ctx); id != "" {
		prefix += "[" + id + "] "
	}
	l.logger.Printf(prefix+msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.print(ctx, "DEBUG", msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.print(ctx, "INFO", msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.print(ctx, "WARN", msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.print(ctx, "ERROR", msg, args...)
	}
}
