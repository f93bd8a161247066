package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	policy := cfg.Policy()
	if policy.Window.Lookback != 30*time.Hour || policy.Window.MaxPoints != 29 {
		t.Errorf("window = %+v", policy.Window)
	}
	if policy.Bucket != 0 || policy.Layout.Width != 600 || policy.Layout.Height != 300 {
		t.Errorf("policy = %+v", policy)
	}
	if cfg.Redis != "redis://localhost:6379/0" || cfg.Concurrency != 8 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodescope.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvData, "")
	t.Setenv(EnvLookback, "")

	path := writeConfig(t, `
redis: redis://cache:6379/2
window:
  lookback: PT12H
  max_points: 50
bucket: 5m
layout:
  width: 800
  height: 200
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis != "redis://cache:6379/2" {
		t.Errorf("Redis = %q", cfg.Redis)
	}
	policy := cfg.Policy()
	if policy.Window.Lookback != 12*time.Hour || policy.Window.MaxPoints != 50 {
		t.Errorf("window = %+v", policy.Window)
	}
	if policy.Bucket != 5*time.Minute {
		t.Errorf("bucket = %v", policy.Bucket)
	}
	if policy.Layout.Width != 800 || cfg.Log.Level != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("unset fields keep defaults, Concurrency = %d", cfg.Concurrency)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvRedisURL, "redis://env:6379/0")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvData, "")
	t.Setenv(EnvLookback, "6h")

	cfg, err := Load(writeConfig(t, "redis: redis://file:6379/0\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis != "redis://env:6379/0" || cfg.Log.Level != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
	if time.Duration(cfg.Window.Lookback) != 6*time.Hour {
		t.Errorf("Lookback = %v", cfg.Window.Lookback)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvData, "")
	t.Setenv(EnvLookback, "")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing config file should fail")
	}
	if _, err := Load(writeConfig(t, "window:\n  max_points: -1\n")); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("negative max points err = %v", err)
	}
	if _, err := Load(writeConfig(t, "bucket: soon\n")); err == nil {
		t.Error("bad bucket should fail")
	}
	if _, err := Load(writeConfig(t, "log:\n  level: loud\n")); err == nil {
		t.Error("bad level should fail")
	}
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "30h", want: 30 * time.Hour},
		{in: "PT30H", want: 30 * time.Hour},
		{in: "pt90m", want: 90 * time.Minute},
		{in: "P1D", want: 24 * time.Hour},
		{in: "-1h", want: -time.Hour},
		{in: "later", wantErr: true},
		{in: "PXYZ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDuration(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "debug", "INFO", "warn", "error"} {
		if _, err := ParseLevel(in); err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) should fail")
	}
}
