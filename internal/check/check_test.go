package check

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/wavdenoise/internal/config"
)

func TestEndpointHost(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		want    string
		wantErr bool
	}{
		{"explicit port", "http://api.local:9000/denoise", "api.local:9000", false},
		{"default http port", "http://api.local/denoise", "api.local:80", false},
		{"default https port", "https://api.local/denoise", "api.local:443", false},
		{"missing scheme", "api.local:9000", "", true},
		{"wrong scheme", "ftp://api.local/denoise", "", true},
		{"no host", "http://", "", true},
		{"garbage", "http://[::bad", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := endpointHost(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("endpointHost(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrBadEndpoint) {
					t.Errorf("error should wrap ErrBadEndpoint: %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("endpointHost(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}

func TestCheckDeps_Remote(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeRemote
	cfg.APIAddrs = []string{"http://a:9000", "https://b/denoise"}
	if err := CheckDeps(&cfg); err != nil {
		t.Errorf("CheckDeps: %v", err)
	}

	cfg.APIAddrs = append(cfg.APIAddrs, "not-a-url")
	if err := CheckDeps(&cfg); !errors.Is(err, ErrBadEndpoint) {
		t.Errorf("want ErrBadEndpoint, got %v", err)
	}
}

func TestCheckDeps_LocalExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "nnnoiseless")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeLocal
	cfg.DenoiserPath = exe
	if err := CheckDeps(&cfg); err != nil {
		t.Errorf("CheckDeps: %v", err)
	}

	cfg.DenoiserPath = filepath.Join(dir, "missing")
	if err := CheckDeps(&cfg); !errors.Is(err, ErrDenoiserNotFound) {
		t.Errorf("want ErrDenoiserNotFound, got %v", err)
	}
}

func TestCheckDeps_LocalModelFile(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "nnnoiseless")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	model := filepath.Join(dir, "model.bin")
	if err := os.WriteFile(model, []byte("weights"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeLocal
	cfg.DenoiserPath = exe
	cfg.ModelPath = model
	if err := CheckDeps(&cfg); err != nil {
		t.Errorf("CheckDeps: %v", err)
	}

	cfg.ModelPath = filepath.Join(dir, "missing.bin")
	if err := CheckDeps(&cfg); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("want ErrModelNotFound, got %v", err)
	}
}

// mockLogger records calls for RunCheck tests.
type mockLogger struct {
	errors int
	warns  int
}

func (m *mockLogger) Info(string, ...interface{})        {}
func (m *mockLogger) Success(string, ...interface{})     {}
func (m *mockLogger) Warn(string, ...interface{})        { m.warns++ }
func (m *mockLogger) Error(string, ...interface{})       { m.errors++ }
func (m *mockLogger) Debug(bool, string, ...interface{}) {}

func TestRunCheck_RemoteBadURL(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeRemote
	cfg.APIAddrs = []string{"not-a-url"}

	log := &mockLogger{}
	if RunCheck(&cfg, log) {
		t.Error("RunCheck should report failure for a malformed endpoint")
	}
	if log.errors == 0 {
		t.Error("expected an error log line")
	}
}

func TestRunCheck_LocalMissingExecutable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeLocal
	cfg.DenoiserPath = filepath.Join(t.TempDir(), "missing")

	log := &mockLogger{}
	if RunCheck(&cfg, log) {
		t.Error("RunCheck should report failure for a missing executable")
	}
}
