package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Features.Combat || !cfg.Features.Trade || !cfg.Features.Needs || !cfg.Features.Dialogue {
		t.Fatalf("all features should default on: %+v", cfg.Features)
	}
	if cfg.Limits.MaxEventDepth != 8 || cfg.Limits.MaxRunSteps != 1000 {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
	if cfg.Seed != 0 {
		t.Fatalf("seed should default to 0 (time-based), got %d", cfg.Seed)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
features:
  combat: false
limits:
  max_run_steps: 50
seed: 42
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Features.Combat {
		t.Fatal("combat should be off")
	}
	if !cfg.Features.Trade || !cfg.Features.Dialogue {
		t.Fatal("unmentioned features should keep their defaults")
	}
	if cfg.Limits.MaxRunSteps != 50 || cfg.Limits.MaxEventDepth != 8 {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
	if cfg.Seed != 42 {
		t.Fatalf("seed = %d", cfg.Seed)
	}
}

func TestLoadReclampsBadLimits(t *testing.T) {
	path := writeConfig(t, `
limits:
  max_event_depth: -1
  max_run_steps: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits.MaxEventDepth != 8 || cfg.Limits.MaxRunSteps != 1000 {
		t.Fatalf("bad limits should fall back to defaults, got %+v", cfg.Limits)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file should error")
	}
	if _, err := Load(writeConfig(t, "features: [not, a, map]")); err == nil {
		t.Fatal("malformed yaml should error")
	}
}

func TestFeatureMap(t *testing.T) {
	cfg := Default()
	cfg.Features.Needs = false
	m := cfg.FeatureMap()
	if !m["combat"] || m["needs"] {
		t.Fatalf("FeatureMap = %v", m)
	}
}
