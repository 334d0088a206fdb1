package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevelsPerEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		wantDebug bool
	}{
		{env: "local", wantDebug: true},
		{env: "dev", wantDebug: true},
		{env: "prod", wantDebug: false},
		{env: "staging", wantDebug: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.env, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "app.log")
			log, err := New(tc.env, path)
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			if got := log.Core().Enabled(zapcore.DebugLevel); got != tc.wantDebug {
				t.Fatalf("debug enabled = %v, want %v", got, tc.wantDebug)
			}
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New("prod", path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	log.Info("quote loaded")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"quote loaded"`) || !strings.Contains(out, `"env":"prod"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestNewWarnsOnUnknownEnv(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New("staging", path)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "invalid env") {
		t.Fatalf("expected warning about env, got %s", data)
	}
}
