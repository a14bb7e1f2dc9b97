package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/voxeldetail/internal/engine/texture"
	"github.com/Faultbox/voxeldetail/internal/engine/window"
	"github.com/Faultbox/voxeldetail/internal/logger"
	"github.com/Faultbox/voxeldetail/internal/tasks"
	"github.com/Faultbox/voxeldetail/internal/voxel/detail"
)

// generateWithPreview runs generation with texture materialization enabled.
// A hidden window provides the GL context; main() runs on the locked OS
// thread, so the render queue drains here while workers compute.
func generateWithPreview(p *detail.Pipeline, in detail.BlockInput) (*detail.DetailTextureOutput, error) {
	w, err := window.New(window.Config{
		Title:  "voxeldetail",
		Width:  256,
		Height: 256,
		Hidden: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GL context: %w", err)
	}
	defer w.Close()

	q := tasks.NewMainQueue()
	p.SetMaterializer(q, texture.StoreNormalmapDataToTextures)

	out := p.Generate(context.Background(), in)

	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()
	q.RunUntil(done)

	if out.Valid() && out.Textures.Atlas != 0 {
		logger.Info("textures materialized",
			zap.Uint32("atlas", out.Textures.Atlas),
			zap.Uint32("lookup", out.Textures.Lookup))
		texture.Release(out.Textures)
	}
	return out, nil
}
