package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 || cfg.Log.Level != "warn" || cfg.List.Format != "" || cfg.Shim.Verbose {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "list:\n  format: Plain\nshim:\n  verbose: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("expected version 1, got %d", cfg.Version)
	}
	if cfg.List.Format != "plain" {
		t.Fatalf("expected normalised format, got %q", cfg.List.Format)
	}
	if !cfg.Shim.Verbose {
		t.Fatal("expected shim.verbose true")
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected default log level, got %q", cfg.Log.Level)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("list: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unmarshal config") {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
}

func TestMarshalRoundTripsKeys(t *testing.T) {
	out, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{"version: 1", "format:", "verbose: false", "level: warn", "file: false"} {
		if !strings.Contains(string(out), key) {
			t.Fatalf("expected %q in\n%s", key, out)
		}
	}
}

func TestValidate(t *testing.T) {
	if results := Default().Validate(); len(results) != 0 {
		t.Fatalf("expected defaults to validate, got %+v", results)
	}

	cfg := Default()
	cfg.Version = 2
	cfg.List.Format = "json"
	cfg.Log.Level = "trace"
	results := cfg.Validate()
	if len(results) != 3 {
		t.Fatalf("expected 3 findings, got %+v", results)
	}
	if !HasErrors(results) {
		t.Fatal("expected errors")
	}
	if HasErrors(results[:1]) {
		t.Fatal("expected version mismatch to be a warning")
	}
}
