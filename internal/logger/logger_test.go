package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := NewWithOutput("info", &buf)

	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")
	log.Info(ctx, "formatted message: %s %d", "test", 123)

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message should be filtered at info level")
	}
	for _, want := range []string{"[INFO] info message", "[WARN] warn message", "[ERROR] error message", "formatted message: test 123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"error always logs", "debug", "error", true},
		{"warn filtered at error level", "error", "warn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestRequestIDPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", &buf)

	ctx := WithRequestID(context.Background(), "req-42")
	log.Info(ctx, "hello")

	if !strings.Contains(buf.String(), "[INFO] [req-42] hello") {
		t.Errorf("missing request id prefix: %q", buf.String())
	}
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("RequestID() = %q, want empty", got)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	log, closer, err := NewFile("info", path)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	log.Info(context.Background(), "written to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file content = %q", data)
	}
}
