// Package mesh holds the read-only mesh buffers consumed by the detail
// sampler, together with the cell table mapping mesh cells to their
// triangles.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxeldetail/internal/voxel"
)

// Cell groups the triangles belonging to one mesh cell. Triangles of a cell
// are stored contiguously in the index buffer.
type Cell struct {
	// Cell coordinate within the block, in cells.
	Position voxel.Vec3i
	// Index of the cell's first triangle (not the first index).
	FirstTriangle uint32
	TriangleCount uint32
}

// Mesh is a block mesh with its cell decomposition. All slices are read-only
// once built; concurrent readers are safe.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []int32
	Cells     []Cell
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
