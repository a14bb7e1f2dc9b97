// Package main is the entry point for the detail normal-map tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxeldetail/internal/config"
	"github.com/Faultbox/voxeldetail/internal/logger"
	"github.com/Faultbox/voxeldetail/internal/voxel"
	"github.com/Faultbox/voxeldetail/internal/voxel/detail"
	"github.com/Faultbox/voxeldetail/internal/voxel/field"
	"github.com/Faultbox/voxeldetail/internal/voxel/mesh"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Voxel Detail Tool ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("tool failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	f := buildField(cfg)

	m := mesh.BuildBlockMesh(f, voxel.Vec3i{}, cfg.Block.Size, cfg.Block.LODIndex)
	logger.Info("mesh block built",
		zap.Int("cells", len(m.Cells)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Uint8("lod", cfg.Block.LODIndex))
	if len(m.Cells) == 0 {
		return fmt.Errorf("field %q produced no surface cells in the block", cfg.Field.Type)
	}

	settings := detailSettings(cfg)
	p := detail.NewPipeline(settings, f, nil, cfg.Workers.Count)

	in := detail.BlockInput{
		Mesh:      m,
		BlockSize: cfg.Block.Size,
		LODIndex:  cfg.Block.LODIndex,
	}

	var out *detail.DetailTextureOutput
	if config.Preview() {
		var err error
		out, err = generateWithPreview(p, in)
		if err != nil {
			return err
		}
	} else {
		out = p.Generate(context.Background(), in)
		p.Close()
	}

	if !out.Valid() {
		return fmt.Errorf("no detail output published; check detail.enabled and begin_lod_index")
	}

	if err := writeImages(cfg, out.Images); err != nil {
		return err
	}
	if cfg.Output.DataFile != "" {
		if err := writeDataFile(cfg, m, f, settings); err != nil {
			return err
		}
	}

	logger.Info("done",
		zap.Int("atlas_px", out.Images.Atlas.Width),
		zap.Int("layers", out.Images.Layers),
		zap.String("dir", cfg.Output.Dir))
	return nil
}

// buildField constructs the distance field selected by the config. The block
// spans cfg.Block.Size cells of 1<<lod voxels; fields are parameterized to
// intersect it.
func buildField(cfg *config.Config) field.Sampler {
	extent := float32(int32(cfg.Block.Size) << cfg.Block.LODIndex)
	switch cfg.Field.Type {
	case "sphere":
		c := extent / 2
		return field.SphereField{
			Center: mgl32.Vec3{c, c, c},
			Radius: cfg.Field.Radius,
		}
	case "plane":
		return field.PlaneField{Height: extent / 2}
	default:
		return field.TerrainField{
			Base:      extent / 2,
			Amplitude: cfg.Field.Amplitude,
			Frequency: cfg.Field.Frequency,
		}
	}
}

func detailSettings(cfg *config.Config) detail.Settings {
	layout := detail.LayoutAtlas
	if cfg.Detail.AtlasLayout == "array" {
		layout = detail.LayoutArray
	}
	return detail.Settings{
		Enabled:             cfg.Detail.Enabled,
		BeginLODIndex:       cfg.Detail.BeginLODIndex,
		TileResolutionMin:   cfg.Detail.TileResolutionMin,
		TileResolutionMax:   cfg.Detail.TileResolutionMax,
		MaxDeviationDegrees: cfg.Detail.MaxDeviationDegrees,
		OctahedralEncoding:  cfg.Detail.OctahedralEncoding,
		Layout:              layout,
	}
}
