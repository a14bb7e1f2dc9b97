package mesh

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxeldetail/internal/voxel"
	"github.com/Faultbox/voxeldetail/internal/voxel/field"
)

// BuildBlockMesh builds a coarse cell-aligned surface mesh from a distance
// field: one quad (two triangles) per surface cell, placed at the zero
// crossing along the cell's dominant gradient axis. It stands in for a real
// mesh simplifier, producing the same cell table shape the detail sampler
// consumes.
func BuildBlockMesh(s field.Sampler, originInVoxels voxel.Vec3i, blockSize int, lodIndex uint8) *Mesh {
	m := &Mesh{}
	cs := float32(int32(1) << lodIndex)
	halfDiag := 0.5 * cs * math32.Sqrt(3)

	for cz := 0; cz < blockSize; cz++ {
		for cy := 0; cy < blockSize; cy++ {
			for cx := 0; cx < blockSize; cx++ {
				cellMin := mgl32.Vec3{
					float32(originInVoxels.X) + float32(cx)*cs,
					float32(originInVoxels.Y) + float32(cy)*cs,
					float32(originInVoxels.Z) + float32(cz)*cs,
				}
				center := cellMin.Add(mgl32.Vec3{cs / 2, cs / 2, cs / 2})

				d := s.Sample(center, lodIndex)
				if math32.Abs(d) > halfDiag {
					continue
				}

				g := field.Gradient(s, center, cs/4, lodIndex)
				if g.LenSqr() < 1e-12 {
					continue
				}
				n := g.Normalize()

				axis := dominantAxis(n)
				quad := buildCellQuad(s, cellMin, cs, axis, lodIndex)

				base := int32(len(m.Positions))
				firstTri := uint32(len(m.Indices) / 3)
				for _, v := range quad {
					m.Positions = append(m.Positions, v)
					m.Normals = append(m.Normals, normalAt(s, v, cs/4, lodIndex, n))
				}
				// Two triangles per quad.
				m.Indices = append(m.Indices,
					base, base+1, base+2,
					base, base+2, base+3,
				)
				m.Cells = append(m.Cells, Cell{
					Position:      voxel.Vec3i{X: int32(cx), Y: int32(cy), Z: int32(cz)},
					FirstTriangle: firstTri,
					TriangleCount: 2,
				})
			}
		}
	}

	return m
}

// buildCellQuad returns the four corners of a quad spanning the cell
// perpendicular to axis, placed at the field's zero crossing along that
// axis (cell center depth when no sign change is found).
func buildCellQuad(s field.Sampler, cellMin mgl32.Vec3, cs float32, axis int, lodIndex uint8) [4]mgl32.Vec3 {
	u, v := perpendicularAxes(axis)

	depth := findCrossing(s, cellMin, cs, axis, lodIndex)

	var quad [4]mgl32.Vec3
	offsets := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, o := range offsets {
		p := cellMin
		p[u] += o[0] * cs
		p[v] += o[1] * cs
		p[axis] = depth
		quad[i] = p
	}
	return quad
}

// findCrossing bisects the field along axis through the cell center and
// returns the coordinate of the surface. Falls back to the cell center.
func findCrossing(s field.Sampler, cellMin mgl32.Vec3, cs float32, axis int, lodIndex uint8) float32 {
	u, v := perpendicularAxes(axis)
	mid := cellMin
	mid[u] += cs / 2
	mid[v] += cs / 2

	lo := cellMin[axis]
	hi := cellMin[axis] + cs

	at := func(t float32) float32 {
		p := mid
		p[axis] = t
		return s.Sample(p, lodIndex)
	}

	dLo := at(lo)
	dHi := at(hi)
	if (dLo < 0) == (dHi < 0) {
		return cellMin[axis] + cs/2
	}
	for i := 0; i < 12; i++ {
		t := (lo + hi) / 2
		if (at(t) < 0) == (dLo < 0) {
			lo = t
		} else {
			hi = t
		}
	}
	return (lo + hi) / 2
}

// normalAt returns the normalized field gradient at p, or fallback when the
// gradient vanishes.
func normalAt(s field.Sampler, p mgl32.Vec3, h float32, lodIndex uint8, fallback mgl32.Vec3) mgl32.Vec3 {
	g := field.Gradient(s, p, h, lodIndex)
	if g.LenSqr() < 1e-12 {
		return fallback
	}
	return g.Normalize()
}

// dominantAxis returns 0, 1 or 2 for the axis with the largest |component|.
func dominantAxis(n mgl32.Vec3) int {
	ax, ay, az := math32.Abs(n[0]), math32.Abs(n[1]), math32.Abs(n[2])
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

// perpendicularAxes returns the two remaining axes in XYZ order.
func perpendicularAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}
