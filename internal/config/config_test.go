package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
database:
  host: db.example.com
  port: 5433
geometry:
  resample_spacing: 2.5
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Host != "db.example.com" {
		t.Errorf("Expected overridden host, got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("Expected overridden port, got %d", cfg.Database.Port)
	}
	if cfg.Geometry.ResampleSpacing != 2.5 {
		t.Errorf("Expected overridden spacing, got %f", cfg.Geometry.ResampleSpacing)
	}

	// unset keys keep defaults
	if cfg.Database.User != "postgres" {
		t.Errorf("Expected default user, got %q", cfg.Database.User)
	}
	if cfg.Geometry.PartitionLength != 10.0 {
		t.Errorf("Expected default partition length, got %f", cfg.Geometry.PartitionLength)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
