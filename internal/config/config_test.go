package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"
)

func TestParseConfig_Defaults(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("eventfind", nil, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, DefaultBackendURL)
	}
	if cfg.Location != DefaultLocation {
		t.Errorf("Location = %q, want %q", cfg.Location, DefaultLocation)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %s, want 0 (no client-side timeout)", cfg.Timeout)
	}
	if cfg.Interest != "" {
		t.Errorf("Interest = %q, want empty", cfg.Interest)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	var buf bytes.Buffer
	args := []string{
		"--backend-url", "https://events.example.com",
		"--interest", "live acoustic music",
		"--location", "Minneapolis, MN",
		"--timeout", "30s",
		"--verbose",
	}
	cfg, err := ParseConfig("eventfind", args, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BackendURL != "https://events.example.com" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Interest != "live acoustic music" {
		t.Errorf("Interest = %q", cfg.Interest)
	}
	if cfg.Location != "Minneapolis, MN" {
		t.Errorf("Location = %q", cfg.Location)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be true")
	}
}

func TestParseConfig_ShortFlags(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("eventfind", []string{"-i", "jazz nights", "-l", "St. Paul, MN"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interest != "jazz nights" {
		t.Errorf("Interest = %q, want %q", cfg.Interest, "jazz nights")
	}
	if cfg.Location != "St. Paul, MN" {
		t.Errorf("Location = %q, want %q", cfg.Location, "St. Paul, MN")
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"BACKEND_URL", "http://10.0.0.5:9000")
	t.Setenv(EnvPrefix+"LOCATION", "Duluth, MN")
	t.Setenv(EnvPrefix+"TIMEOUT", "45s")

	var buf bytes.Buffer
	cfg, err := ParseConfig("eventfind", nil, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BackendURL != "http://10.0.0.5:9000" {
		t.Errorf("BackendURL = %q, env override not applied", cfg.BackendURL)
	}
	if cfg.Location != "Duluth, MN" {
		t.Errorf("Location = %q, env override not applied", cfg.Location)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %s, env override not applied", cfg.Timeout)
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"LOCATION", "Duluth, MN")

	var buf bytes.Buffer
	cfg, err := ParseConfig("eventfind", []string{"--location", "Rochester, MN"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Location != "Rochester, MN" {
		t.Errorf("Location = %q, CLI flag should win over env", cfg.Location)
	}
}

func TestParseConfig_InvalidBackendURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"relative", "localhost:8000/nope"},
		{"empty", ""},
		{"bad scheme", "ftp://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := ParseConfig("eventfind", []string{"--backend-url", tt.url}, &buf)
			if err == nil {
				t.Errorf("expected error for backend URL %q", tt.url)
			}
		})
	}
}

func TestParseConfig_NegativeTimeout(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("eventfind", []string{"--timeout", "-5s"}, &buf)
	if err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("eventfind", []string{"--help"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected usage output")
	}
}

func TestIsFlagSet(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("location", "", "")
	fs.String("timeout", "", "")

	if err := fs.Parse([]string{"--location", "x"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !isFlagSet(fs, "location") {
		t.Error("expected location to be reported as set")
	}
	if isFlagSet(fs, "timeout") {
		t.Error("expected timeout to be reported as unset")
	}
	if !isFlagSetAny(fs, "timeout", "location") {
		t.Error("expected isFlagSetAny to find location")
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}
