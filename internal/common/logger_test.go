package common

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// captureLogs points the default logger at a buffer for the duration of
// a test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "debug console", level: "debug", format: "console"},
		{name: "info json", level: "info", format: "json"},
		{name: "empty format defaults to console", level: "warn", format: ""},
		{name: "bad level", level: "loud", format: "console", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := slog.Default()
			t.Cleanup(func() { slog.SetDefault(prev) })

			err := SetupLogger(tt.level, tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("SetupLogger(%q, %q) error = %v, want %v", tt.level, tt.format, err, ErrInvalidConfig)
				}
				return
			}
			if err != nil {
				t.Errorf("SetupLogger(%q, %q) error = %v", tt.level, tt.format, err)
			}
		})
	}
}

func TestLogError(t *testing.T) {
	buf := captureLogs(t)

	LogError(errors.New("boom"), "operation failed", Fields{"path": "ledger.json"})

	out := buf.String()
	if !strings.Contains(out, "operation failed") {
		t.Errorf("log output missing message: %s", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Errorf("log output missing error attr: %s", out)
	}
	if !strings.Contains(out, "path=ledger.json") {
		t.Errorf("log output missing field: %s", out)
	}
}

func TestLogInfo(t *testing.T) {
	buf := captureLogs(t)

	LogInfo("conversion applied", Fields{"records": 2})

	out := buf.String()
	if !strings.Contains(out, "conversion applied") {
		t.Errorf("log output missing message: %s", out)
	}
	if !strings.Contains(out, "records=2") {
		t.Errorf("log output missing field: %s", out)
	}
}
