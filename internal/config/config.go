// Package config handles tool configuration loading and management.
package config

import "fmt"

// Config holds all tool settings.
type Config struct {
	Detail  DetailConfig  `yaml:"detail"`
	Field   FieldConfig   `yaml:"field"`
	Block   BlockConfig   `yaml:"block"`
	Workers WorkerConfig  `yaml:"workers"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// DetailConfig holds detail normal-map generation settings.
type DetailConfig struct {
	// If enabled, an atlas of normalmaps is generated for each cell of the
	// voxel mesh, to be sampled by a shader for extra visual detail.
	Enabled bool `yaml:"enabled"`
	// LOD index from which normalmaps start being generated.
	BeginLODIndex uint8 `yaml:"begin_lod_index"`
	// Tile resolution used at the beginning LOD. Doubles at each following
	// LOD index, clamped to the max.
	TileResolutionMin uint8 `yaml:"tile_resolution_min"`
	TileResolutionMax uint8 `yaml:"tile_resolution_max"`
	// Maximum allowed angle between mesh normals and field normals, in degrees.
	MaxDeviationDegrees uint8 `yaml:"max_deviation_degrees"`
	// Octahedral compression trades a bit of quality for 2 bytes per pixel
	// instead of 3.
	OctahedralEncoding bool `yaml:"octahedral_encoding"`
	// Atlas layout strategy: "atlas" (single 2D atlas) or "array"
	// (texture-array layers). Chosen once at configuration time.
	AtlasLayout string `yaml:"atlas_layout"`
}

// FieldConfig selects and parameterizes the distance field used by the tool.
type FieldConfig struct {
	Type      string  `yaml:"type"` // sphere, plane, terrain
	Radius    float32 `yaml:"radius"`
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
}

// BlockConfig describes the mesh block processed by the tool.
type BlockConfig struct {
	// Cells per axis.
	Size int `yaml:"size"`
	// LOD index the block is meshed at.
	LODIndex uint8 `yaml:"lod_index"`
}

// WorkerConfig holds worker pool settings.
type WorkerConfig struct {
	// Number of compute workers. Zero means one per CPU.
	Count int `yaml:"count"`
}

// OutputConfig holds output file paths.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	AtlasFile  string `yaml:"atlas_file"`
	LookupFile string `yaml:"lookup_file"`
	DataFile   string `yaml:"data_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Detail: DetailConfig{
			Enabled:             true,
			BeginLODIndex:       2,
			TileResolutionMin:   4,
			TileResolutionMax:   8,
			MaxDeviationDegrees: 60,
			OctahedralEncoding:  false,
			AtlasLayout:         "atlas",
		},
		Field: FieldConfig{
			Type:      "terrain",
			Radius:    24,
			Amplitude: 8,
			Frequency: 0.05,
		},
		Block: BlockConfig{
			Size:     16,
			LODIndex: 2,
		},
		Workers: WorkerConfig{
			Count: 0,
		},
		Output: OutputConfig{
			Dir:        "out",
			AtlasFile:  "atlas.png",
			LookupFile: "lookup.png",
			DataFile:   "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings ranges. Called by Load after all overrides apply.
func (c *Config) Validate() error {
	d := &c.Detail
	if d.MaxDeviationDegrees < 1 || d.MaxDeviationDegrees > 179 {
		return fmt.Errorf("detail.max_deviation_degrees must be in [1,179], got %d", d.MaxDeviationDegrees)
	}
	if d.TileResolutionMin == 0 {
		return fmt.Errorf("detail.tile_resolution_min must be at least 1")
	}
	if d.TileResolutionMax < d.TileResolutionMin {
		return fmt.Errorf("detail.tile_resolution_max (%d) below tile_resolution_min (%d)",
			d.TileResolutionMax, d.TileResolutionMin)
	}
	switch d.AtlasLayout {
	case "atlas", "array":
	default:
		return fmt.Errorf("detail.atlas_layout must be %q or %q, got %q", "atlas", "array", d.AtlasLayout)
	}
	switch c.Field.Type {
	case "sphere", "plane", "terrain":
	default:
		return fmt.Errorf("field.type must be sphere, plane or terrain, got %q", c.Field.Type)
	}
	if c.Block.Size < 1 || c.Block.Size > 255 {
		return fmt.Errorf("block.size must be in [1,255], got %d", c.Block.Size)
	}
	return nil
}
