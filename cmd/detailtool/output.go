package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxeldetail/internal/config"
	"github.com/Faultbox/voxeldetail/internal/logger"
	"github.com/Faultbox/voxeldetail/internal/voxel/detail"
	"github.com/Faultbox/voxeldetail/internal/voxel/field"
	"github.com/Faultbox/voxeldetail/internal/voxel/mesh"
)

// writeImages saves the atlas and lookup images as PNG files.
func writeImages(cfg *config.Config, images detail.DetailImages) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	atlasPath := filepath.Join(cfg.Output.Dir, cfg.Output.AtlasFile)
	if err := savePNG(atlasPath, images.Atlas); err != nil {
		return fmt.Errorf("writing atlas: %w", err)
	}
	lookupPath := filepath.Join(cfg.Output.Dir, cfg.Output.LookupFile)
	if err := savePNG(lookupPath, images.Lookup); err != nil {
		return fmt.Errorf("writing lookup: %w", err)
	}

	logger.Info("images written",
		zap.String("atlas", atlasPath),
		zap.String("lookup", lookupPath))
	return nil
}

// savePNG encodes a packed 2- or 3-channel image as PNG. Two-channel pixels
// land in R and G with B zeroed.
func savePNG(path string, img *detail.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}

	rgba := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			off := (y*img.Width + x) * img.Channels
			var c color.NRGBA
			c.A = 0xff
			switch img.Channels {
			case 2:
				c.R = img.Pix[off]
				c.G = img.Pix[off+1]
			case 3:
				c.R = img.Pix[off]
				c.G = img.Pix[off+1]
				c.B = img.Pix[off+2]
			default:
				return fmt.Errorf("unsupported channel count %d", img.Channels)
			}
			rgba.SetNRGBA(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, rgba)
}

// writeDataFile serializes the raw tile data for later edited-region merges.
func writeDataFile(cfg *config.Config, m *mesh.Mesh, f field.Sampler, settings detail.Settings) error {
	res := settings.TileResolutionForLOD(cfg.Block.LODIndex)

	var data detail.DetailTextureData
	detail.ComputeDetailTextureData(detail.NewMeshCellIterator(m), m, f, nil, &data,
		detail.ComputeParams{
			TileResolution:      res,
			LODIndex:            cfg.Block.LODIndex,
			MaxDeviationRadians: radians(settings.MaxDeviationDegrees),
			OctahedralEncoding:  settings.OctahedralEncoding,
		})

	path := filepath.Join(cfg.Output.Dir, cfg.Output.DataFile)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating data file: %w", err)
	}
	defer out.Close()

	bpp := detail.BytesPerPixel(settings.OctahedralEncoding)
	if err := detail.WriteDetailTextureData(out, &data, int(res), bpp); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}

	logger.Info("tile data written", zap.String("path", path), zap.Int("tiles", len(data.Tiles)))
	return nil
}

func radians(degrees uint8) float32 {
	return float32(degrees) * math32.Pi / 180
}
