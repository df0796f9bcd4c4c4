package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("note:\n  notional: 2000\nrisk:\n  simulations: 5000\n  seed: 7\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Note.Notional != 2000 {
		t.Errorf("Notional = %v, want 2000", cfg.Note.Notional)
	}
	if cfg.Risk.Simulations != 5000 || cfg.Risk.Seed != 7 {
		t.Errorf("Risk = %+v, want simulations 5000 seed 7", cfg.Risk)
	}
	// Untouched fields keep the snapshot defaults.
	if cfg.Note.ISIN != "XS2392609181" {
		t.Errorf("ISIN = %q, want default", cfg.Note.ISIN)
	}
}

func TestValidateRejectsInvertedCollar(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Note.Floor = 0.05
	cfg.Note.Cap = 0.02
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for floor above cap")
	}
}
