package detail

import (
	"fmt"

	"github.com/Faultbox/voxeldetail/internal/voxel"
	"github.com/Faultbox/voxeldetail/internal/voxel/mesh"
)

// MaxCellTriangles is the most triangle ranges one cell may carry. A cell
// decomposition producing more violates the upstream meshing contract.
const MaxCellTriangles = 5

// CurrentCellInfo holds the cell a CellIterator currently points at. It is
// overwritten in place on every Next call; callers must not retain
// references to it across calls.
type CurrentCellInfo struct {
	// Index-buffer offsets of the first index of each triangle in the cell.
	TriangleBeginIndices [MaxCellTriangles]uint32
	TriangleCount        uint32
	// Cell coordinate within the block, in cells.
	Position voxel.Vec3i
}

// CellIterator traverses the non-empty cells of a mesh block. Count must
// return the exact number of cells Next will yield, as it is used to size
// output buffers up front. After Next returns false, behavior of further
// Next calls is undefined until Rewind.
type CellIterator interface {
	Count() int
	Next(info *CurrentCellInfo) bool
	Rewind()
}

// MeshCellIterator traverses every cell of a mesh block in table order.
type MeshCellIterator struct {
	cells []mesh.Cell
	pos   int
}

// NewMeshCellIterator returns an iterator over all cells of m.
func NewMeshCellIterator(m *mesh.Mesh) *MeshCellIterator {
	return &MeshCellIterator{cells: m.Cells}
}

// Count returns the number of cells the iterator yields.
func (it *MeshCellIterator) Count() int {
	return len(it.cells)
}

// Next overwrites info with the next cell and advances.
func (it *MeshCellIterator) Next(info *CurrentCellInfo) bool {
	if it.pos >= len(it.cells) {
		return false
	}
	fillCellInfo(info, &it.cells[it.pos])
	it.pos++
	return true
}

// Rewind resets the iterator to the first cell.
func (it *MeshCellIterator) Rewind() {
	it.pos = 0
}

// SubsetCellIterator traverses a subset of a mesh block's cells, given by
// their positions in the cell table. Used for edited-tiles-only updates.
type SubsetCellIterator struct {
	cells  []mesh.Cell
	subset []int
	pos    int
}

// NewSubsetCellIterator returns an iterator over the cells of m selected by
// cellIndices (indices into the mesh cell table, in the order to visit).
func NewSubsetCellIterator(m *mesh.Mesh, cellIndices []int) *SubsetCellIterator {
	for _, ci := range cellIndices {
		if ci < 0 || ci >= len(m.Cells) {
			panic(fmt.Sprintf("detail: subset cell index %d out of range (%d cells)", ci, len(m.Cells)))
		}
	}
	return &SubsetCellIterator{cells: m.Cells, subset: cellIndices}
}

// Count returns the number of cells the iterator yields.
func (it *SubsetCellIterator) Count() int {
	return len(it.subset)
}

// Next overwrites info with the next selected cell and advances.
func (it *SubsetCellIterator) Next(info *CurrentCellInfo) bool {
	if it.pos >= len(it.subset) {
		return false
	}
	fillCellInfo(info, &it.cells[it.subset[it.pos]])
	it.pos++
	return true
}

// Rewind resets the iterator to the first selected cell.
func (it *SubsetCellIterator) Rewind() {
	it.pos = 0
}

func fillCellInfo(info *CurrentCellInfo, c *mesh.Cell) {
	if c.TriangleCount > MaxCellTriangles {
		panic(fmt.Sprintf("detail: cell %v has %d triangles, max is %d",
			c.Position, c.TriangleCount, MaxCellTriangles))
	}
	info.Position = c.Position
	info.TriangleCount = c.TriangleCount
	for i := uint32(0); i < c.TriangleCount; i++ {
		info.TriangleBeginIndices[i] = (c.FirstTriangle + i) * 3
	}
}
