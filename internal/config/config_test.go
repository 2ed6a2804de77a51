package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("ServerAddr = %q, want :8080", cfg.ServerAddr)
	}
	if cfg.Generation.LaneCount != 5 {
		t.Errorf("LaneCount = %d, want default 5", cfg.Generation.LaneCount)
	}
	if len(cfg.Tiles) == 0 || len(cfg.Rules) == 0 {
		t.Error("default tiles or rules missing")
	}
	if err := cfg.Generation.Validate(cfg.Catalog(), cfg.RuleSet()); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadServerAddrFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr != ":9999" {
		t.Errorf("ServerAddr = %q, want :9999", cfg.ServerAddr)
	}
}

func TestLoadPartialGenerationOverride(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"lane_count": 7, "seed": "override", "retention_rows": 48}`)
	if err := os.WriteFile(filepath.Join(dir, "generation.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Generation.LaneCount != 7 {
		t.Errorf("LaneCount = %d, want overridden 7", cfg.Generation.LaneCount)
	}
	if cfg.Generation.Seed != "override" {
		t.Errorf("Seed = %q, want overridden", cfg.Generation.Seed)
	}
	// Untouched fields keep their defaults.
	if cfg.Generation.ChunkRows != 12 {
		t.Errorf("ChunkRows = %d, want default 12", cfg.Generation.ChunkRows)
	}
}

func TestLoadTilesOverrideReplacesDefaults(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`[{"id": "surf.ice", "name": "Ice", "layer": "surface", "surface_type": "ground", "walkable": true}]`)
	if err := os.WriteFile(filepath.Join(dir, "tiles.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	catalog := cfg.Catalog()
	if catalog.Len() != 1 {
		t.Errorf("catalog has %d tiles, want only the override", catalog.Len())
	}
	if catalog.LookupByID("surf.ice") == nil {
		t.Error("overridden tile missing from catalog")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rules.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("malformed rules.json accepted")
	}
}
