package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxeldetail/internal/voxel"
	"github.com/Faultbox/voxeldetail/internal/voxel/field"
)

func TestBuildBlockMeshPlane(t *testing.T) {
	// Plane at y=10 through an 8-cell block at LOD 2 (cell size 4),
	// centered in cell row y=2 so only that layer is surface.
	f := field.PlaneField{Height: 10}
	m := BuildBlockMesh(f, voxel.Vec3i{}, 8, 2)

	if len(m.Cells) == 0 {
		t.Fatal("expected surface cells for a plane through the block")
	}

	if len(m.Cells) != 8*8 {
		t.Errorf("expected 64 surface cells (one XZ layer), got %d", len(m.Cells))
	}

	for _, c := range m.Cells {
		if c.Position.Y != 2 {
			t.Errorf("surface cell at unexpected Y: %d", c.Position.Y)
		}
		if c.TriangleCount != 2 {
			t.Errorf("expected 2 triangles per cell, got %d", c.TriangleCount)
		}
	}

	// All quad vertices sit on the plane, all normals point up.
	for _, p := range m.Positions {
		if diff := p[1] - 10; diff > 0.01 || diff < -0.01 {
			t.Errorf("vertex not on plane: y=%f", p[1])
		}
	}
	for _, n := range m.Normals {
		if n[1] < 0.999 {
			t.Errorf("expected +Y normal, got %v", n)
		}
	}
}

func TestBuildBlockMeshSphereCellsAreDistinct(t *testing.T) {
	f := field.SphereField{Center: mgl32.Vec3{32, 32, 32}, Radius: 20}
	m := BuildBlockMesh(f, voxel.Vec3i{}, 16, 2)

	if len(m.Cells) == 0 {
		t.Fatal("expected surface cells for a sphere inside the block")
	}

	seen := make(map[voxel.Vec3i]bool)
	for _, c := range m.Cells {
		if seen[c.Position] {
			t.Fatalf("duplicate cell %v", c.Position)
		}
		seen[c.Position] = true
	}

	if m.TriangleCount() != 2*len(m.Cells) {
		t.Errorf("triangle count %d does not match 2 per cell (%d cells)",
			m.TriangleCount(), len(m.Cells))
	}
}

func TestBuildBlockMeshEmptyField(t *testing.T) {
	// Surface far away from the block.
	f := field.PlaneField{Height: 10000}
	m := BuildBlockMesh(f, voxel.Vec3i{}, 4, 0)

	if len(m.Cells) != 0 || len(m.Positions) != 0 {
		t.Errorf("expected empty mesh, got %d cells, %d vertices", len(m.Cells), len(m.Positions))
	}
}
