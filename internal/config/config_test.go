package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Detail.Enabled {
		t.Error("expected detail rendering enabled by default")
	}
	if cfg.Detail.BeginLODIndex != 2 {
		t.Errorf("expected begin_lod_index 2, got %d", cfg.Detail.BeginLODIndex)
	}
	if cfg.Detail.TileResolutionMin != 4 {
		t.Errorf("expected tile_resolution_min 4, got %d", cfg.Detail.TileResolutionMin)
	}
	if cfg.Detail.TileResolutionMax != 8 {
		t.Errorf("expected tile_resolution_max 8, got %d", cfg.Detail.TileResolutionMax)
	}
	if cfg.Detail.MaxDeviationDegrees != 60 {
		t.Errorf("expected max_deviation_degrees 60, got %d", cfg.Detail.MaxDeviationDegrees)
	}
	if cfg.Detail.OctahedralEncoding {
		t.Error("expected octahedral encoding off by default")
	}
	if cfg.Detail.AtlasLayout != "atlas" {
		t.Errorf("expected atlas layout %q, got %q", "atlas", cfg.Detail.AtlasLayout)
	}

	if cfg.Block.Size != 16 {
		t.Errorf("expected block size 16, got %d", cfg.Block.Size)
	}
	if cfg.Field.Type != "terrain" {
		t.Errorf("expected field type terrain, got %s", cfg.Field.Type)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"deviation zero", func(c *Config) { c.Detail.MaxDeviationDegrees = 0 }},
		{"deviation 180", func(c *Config) { c.Detail.MaxDeviationDegrees = 180 }},
		{"tile res zero", func(c *Config) { c.Detail.TileResolutionMin = 0 }},
		{"max below min", func(c *Config) { c.Detail.TileResolutionMax = 2 }},
		{"bad layout", func(c *Config) { c.Detail.AtlasLayout = "cube" }},
		{"bad field", func(c *Config) { c.Field.Type = "torus" }},
		{"block size zero", func(c *Config) { c.Block.Size = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	content := `
detail:
  enabled: true
  begin_lod_index: 3
  tile_resolution_min: 8
  tile_resolution_max: 16
  max_deviation_degrees: 45
  octahedral_encoding: true
block:
  size: 32
logging:
  level: debug
`
	path := filepath.Join(tempDir, "voxeldetail.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Detail.BeginLODIndex != 3 {
		t.Errorf("expected begin_lod_index 3, got %d", cfg.Detail.BeginLODIndex)
	}
	if cfg.Detail.TileResolutionMin != 8 {
		t.Errorf("expected tile_resolution_min 8, got %d", cfg.Detail.TileResolutionMin)
	}
	if cfg.Detail.TileResolutionMax != 16 {
		t.Errorf("expected tile_resolution_max 16, got %d", cfg.Detail.TileResolutionMax)
	}
	if cfg.Detail.MaxDeviationDegrees != 45 {
		t.Errorf("expected max_deviation_degrees 45, got %d", cfg.Detail.MaxDeviationDegrees)
	}
	if !cfg.Detail.OctahedralEncoding {
		t.Error("expected octahedral encoding enabled")
	}
	if cfg.Block.Size != 32 {
		t.Errorf("expected block size 32, got %d", cfg.Block.Size)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	// Untouched sections keep their defaults.
	if cfg.Field.Type != "terrain" {
		t.Errorf("expected field type terrain, got %s", cfg.Field.Type)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_save_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := Default()
	cfg.Detail.TileResolutionMax = 32
	cfg.Output.Dir = "elsewhere"

	path := filepath.Join(tempDir, "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	if loaded.Detail.TileResolutionMax != 32 {
		t.Errorf("expected tile_resolution_max 32 after round trip, got %d", loaded.Detail.TileResolutionMax)
	}
	if loaded.Output.Dir != "elsewhere" {
		t.Errorf("expected output dir %q, got %q", "elsewhere", loaded.Output.Dir)
	}
}
