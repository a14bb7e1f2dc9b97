package detail

import (
	"context"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxeldetail/internal/logger"
	"github.com/Faultbox/voxeldetail/internal/tasks"
	"github.com/Faultbox/voxeldetail/internal/voxel"
	"github.com/Faultbox/voxeldetail/internal/voxel/field"
	"github.com/Faultbox/voxeldetail/internal/voxel/mesh"
)

// BlockInput is one mesh block queued for detail texture generation.
type BlockInput struct {
	Mesh           *mesh.Mesh
	OriginInVoxels voxel.Vec3i
	// Cells per block axis.
	BlockSize int
	LODIndex  uint8
	// Restrict processing to edited tiles.
	EditedTilesOnly bool
}

// Materializer converts packed images into GPU textures. It is only ever
// invoked on the thread owning the graphics context.
type Materializer func(DetailImages) (DetailTextures, error)

// Pipeline runs detail texture generation for independent mesh blocks on a
// worker pool. Blocks share only the read-only field and settings, so any
// number can be in flight at once.
type Pipeline struct {
	settings Settings
	field    field.Sampler
	mask     field.EditMask
	pool     *tasks.Pool

	renderQueue *tasks.MainQueue
	materialize Materializer
}

// NewPipeline creates a pipeline with the given worker count (zero means
// one worker per CPU). mask may be nil when edited-only updates are unused.
func NewPipeline(settings Settings, f field.Sampler, mask field.EditMask, workers int) *Pipeline {
	return &Pipeline{
		settings: settings,
		field:    f,
		mask:     mask,
		pool:     tasks.NewPool(workers),
	}
}

// SetMaterializer routes texture creation through q, the queue drained by
// the thread owning the graphics context. Without a materializer, outputs
// are published with images only.
func (p *Pipeline) SetMaterializer(q *tasks.MainQueue, m Materializer) {
	p.renderQueue = q
	p.materialize = m
}

// Generate schedules detail texture generation for one block and returns
// its output handle immediately. The handle is published at most once; if
// ctx is cancelled before publication the block is abandoned and the handle
// stays invalid forever, so consumers never observe a stale result.
func (p *Pipeline) Generate(ctx context.Context, in BlockInput) *DetailTextureOutput {
	out := &DetailTextureOutput{}

	p.pool.Submit(func() {
		if ctx.Err() != nil {
			return
		}
		if !p.settings.Enabled || in.LODIndex < p.settings.BeginLODIndex {
			logger.Warn("block below detail rendering range, skipping",
				zap.Uint8("lod", in.LODIndex),
				zap.Uint8("begin_lod", p.settings.BeginLODIndex))
			return
		}

		res := p.settings.TileResolutionForLOD(in.LODIndex)

		var data DetailTextureData
		ComputeDetailTextureData(NewMeshCellIterator(in.Mesh), in.Mesh, p.field, p.mask, &data,
			ComputeParams{
				TileResolution:      res,
				OriginInVoxels:      in.OriginInVoxels,
				LODIndex:            in.LODIndex,
				MaxDeviationRadians: float32(p.settings.MaxDeviationDegrees) * math32.Pi / 180,
				OctahedralEncoding:  p.settings.OctahedralEncoding,
				EditedTilesOnly:     in.EditedTilesOnly,
			})

		if ctx.Err() != nil {
			// Block was invalidated while computing; never publish.
			return
		}

		out.Images = PackNormalmapData(p.settings.Layout, &data, int(res), in.BlockSize, p.settings.OctahedralEncoding)

		logger.Debug("block detail data computed",
			zap.Int("tiles", len(data.Tiles)),
			zap.Uint32("tile_resolution", res),
			zap.Int("atlas_px", out.Images.Atlas.Width))

		if p.renderQueue == nil || p.materialize == nil {
			out.MarkValid()
			return
		}

		p.renderQueue.Post(func() {
			if ctx.Err() != nil {
				return
			}
			tex, err := p.materialize(out.Images)
			if err != nil {
				logger.Error("texture materialization failed", zap.Error(err))
			} else {
				out.Textures = tex
			}
			out.MarkValid()
		})
	})

	return out
}

// Close waits for all scheduled blocks to finish computing. Posted
// materialization tasks still need the render queue drained.
func (p *Pipeline) Close() {
	p.pool.Close()
}
