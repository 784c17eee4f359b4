package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CANVAS_ACCESS_TOKEN", "CANVAS_URL", "CANVAS_CACHE", "CANVAS_LOG", "BROWSER"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CANVAS_ACCESS_TOKEN", "  tok  ")
	t.Setenv("CANVAS_URL", "https://canvas.example")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccessToken != "tok" || cfg.BaseURL != "https://canvas.example" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if cfg.CachePath() != DefaultCachePath {
		t.Fatalf("expected default cache path, got %q", cfg.CachePath())
	}
	if cfg.LogFile != "" {
		t.Fatalf("expected no log file, got %q", cfg.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, err := cfg.Client(); err != nil {
		t.Fatalf("client: %v", err)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CANVAS_CACHE", "/var/tmp/env.json")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("cache", DefaultCachePath, "")
	fs.String("log", "", "")
	fs.String("browser", "", "")
	if err := fs.Parse([]string{"--cache", "~/planner.json", "--log", "debug.log"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	if want := filepath.Join(home, "planner.json"); cfg.Cache != want {
		t.Fatalf("expected %q, got %q", want, cfg.Cache)
	}
	if cfg.LogFile != "debug.log" {
		t.Fatalf("unexpected log file %q", cfg.LogFile)
	}
}

func TestEnvUsedWhenFlagUnset(t *testing.T) {
	clearEnv(t)
	t.Setenv("CANVAS_CACHE", "/var/tmp/env.json")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("cache", DefaultCachePath, "")
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache != "/var/tmp/env.json" {
		t.Fatalf("expected env cache path, got %q", cfg.Cache)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"missing token", Config{BaseURL: "https://canvas.example"}, ErrMissingToken},
		{"missing url", Config{AccessToken: "tok"}, ErrMissingURL},
		{"relative url", Config{AccessToken: "tok", BaseURL: "canvas.example"}, ErrInvalidURL},
		{"bad scheme", Config{AccessToken: "tok", BaseURL: "file:///etc"}, ErrInvalidURL},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if _, err := tc.cfg.Client(); err == nil {
				t.Fatalf("expected client construction to fail")
			}
		})
	}
}

func TestMissingTokenMessageNamesVariable(t *testing.T) {
	if !strings.Contains(ErrMissingToken.Error(), "CANVAS_ACCESS_TOKEN") {
		t.Fatalf("error should name the variable: %v", ErrMissingToken)
	}
}
