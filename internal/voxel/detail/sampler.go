package detail

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxeldetail/internal/voxel"
	"github.com/Faultbox/voxeldetail/internal/voxel/field"
	"github.com/Faultbox/voxeldetail/internal/voxel/mesh"
)

// ComputeParams parameterizes one ComputeDetailTextureData run.
type ComputeParams struct {
	// Pixels per tile side.
	TileResolution uint32
	// Voxel-space origin of the mesh block.
	OriginInVoxels voxel.Vec3i
	// LOD index of the block; one cell spans 1<<LODIndex voxels per axis.
	LODIndex uint8
	// Maximum allowed angle between mesh normals and field normals.
	MaxDeviationRadians float32
	OctahedralEncoding  bool
	// If set, only cells whose voxel box contains edits (per the mask) are
	// processed, and TileIndices records each retained tile's position in
	// the dense cell sequence.
	EditedTilesOnly bool
}

// ComputeDetailTextureData rasterizes one tile of field-space normals for
// each cell yielded by the iterator, writing the result into out.
//
// For each cell an axis-aligned projection is picked from the cell's
// triangle normals. Each tile pixel is projected onto the cell's triangles
// to find the coarse surface depth and the mesh-interpolated normal there;
// the field normal comes from a central-difference gradient of f at that
// point. When the two disagree by more than MaxDeviationRadians, the field
// normal is rotated toward the mesh normal until the angle equals the
// threshold. Pixels not covered by any triangle fall back to the nearest
// triangle by in-plane distance to its centroid, with barycentric weights
// clamped; this fallback is deterministic.
//
// Tile order matches iteration order (after edited-only filtering) and
// Normals is laid out as consecutive per-tile pixel blocks in that order,
// pixel (i,j) at offset (j*res+i)*bytesPerPixel within its block.
func ComputeDetailTextureData(iter CellIterator, m *mesh.Mesh, f field.Sampler,
	mask field.EditMask, out *DetailTextureData, p ComputeParams) {

	if p.TileResolution == 0 {
		panic("detail: tile resolution must be at least 1")
	}

	res := int(p.TileResolution)
	bpp := BytesPerPixel(p.OctahedralEncoding)
	tileBytes := res * res * bpp
	cellSize := int32(1) << p.LODIndex

	out.Clear()
	expected := iter.Count()
	if cap(out.Tiles) < expected {
		out.Tiles = make([]Tile, 0, expected)
	}
	if cap(out.Normals) < expected*tileBytes {
		out.Normals = make([]byte, 0, expected*tileBytes)
	}

	iter.Rewind()
	var info CurrentCellInfo
	ordinal := -1
	for iter.Next(&info) {
		ordinal++

		if p.EditedTilesOnly {
			box := voxel.Box3i{
				Origin: p.OriginInVoxels.Add(info.Position.Mul(cellSize)),
				Size:   voxel.Vec3i{X: cellSize, Y: cellSize, Z: cellSize},
			}
			if mask == nil || !mask.ContainsEditsIn(box, p.LODIndex) {
				continue
			}
		}

		axis := pickProjectionAxis(m, &info)

		start := len(out.Normals)
		out.Normals = append(out.Normals, make([]byte, tileBytes)...)
		rasterizeTile(out.Normals[start:], m, f, &info, axis, p)

		out.Tiles = append(out.Tiles, Tile{
			X:    uint8(info.Position.X),
			Y:    uint8(info.Position.Y),
			Z:    uint8(info.Position.Z),
			Axis: axis,
		})
		if p.EditedTilesOnly {
			out.TileIndices = append(out.TileIndices, uint32(ordinal))
		}
	}
}

// pickProjectionAxis chooses the cardinal axis most aligned with the
// area-weighted average of the cell's triangle normals. Degenerate cells
// (near-zero average) fall back to the vertex normal sum, then to +Y.
func pickProjectionAxis(m *mesh.Mesh, info *CurrentCellInfo) uint8 {
	if info.TriangleCount == 0 {
		panic(fmt.Sprintf("detail: cell %v yielded with no triangles", info.Position))
	}

	var sum mgl32.Vec3
	for t := uint32(0); t < info.TriangleCount; t++ {
		begin := info.TriangleBeginIndices[t]
		a := m.Positions[m.Indices[begin]]
		b := m.Positions[m.Indices[begin+1]]
		c := m.Positions[m.Indices[begin+2]]
		sum = sum.Add(b.Sub(a).Cross(c.Sub(a)))
	}

	if sum.LenSqr() < 1e-12 {
		for t := uint32(0); t < info.TriangleCount; t++ {
			begin := info.TriangleBeginIndices[t]
			for k := uint32(0); k < 3; k++ {
				sum = sum.Add(m.Normals[m.Indices[begin+k]])
			}
		}
	}
	if sum.LenSqr() < 1e-12 {
		return AxisPosY
	}

	dim := 0
	best := math32.Abs(sum[0])
	for d := 1; d < 3; d++ {
		if a := math32.Abs(sum[d]); a > best {
			best = a
			dim = d
		}
	}

	axis := uint8(dim * 2)
	if sum[dim] < 0 {
		axis++
	}
	return axis
}

// rasterizeTile fills dst (res*res*bpp bytes) with encoded normals for one
// cell, projecting along axis.
func rasterizeTile(dst []byte, m *mesh.Mesh, f field.Sampler,
	info *CurrentCellInfo, axis uint8, p ComputeParams) {

	res := int(p.TileResolution)
	bpp := BytesPerPixel(p.OctahedralEncoding)
	cs := float32(int32(1) << p.LODIndex)
	dim := int(axis) / 2
	ud, vd := perpendicularDims(dim)

	cellMin := mgl32.Vec3{
		float32(p.OriginInVoxels.X) + float32(info.Position.X)*cs,
		float32(p.OriginInVoxels.Y) + float32(info.Position.Y)*cs,
		float32(p.OriginInVoxels.Z) + float32(info.Position.Z)*cs,
	}

	step := cs / float32(res)
	h := step / 2

	for j := 0; j < res; j++ {
		pv := cellMin[vd] + (float32(j)+0.5)*step
		for i := 0; i < res; i++ {
			pu := cellMin[ud] + (float32(i)+0.5)*step

			meshNormal, depth := sampleMeshAt(m, info, ud, vd, dim, pu, pv)

			var pos mgl32.Vec3
			pos[ud] = pu
			pos[vd] = pv
			pos[dim] = depth

			var fieldNormal mgl32.Vec3
			g := field.Gradient(f, pos, h, p.LODIndex)
			if g.LenSqr() < 1e-12 {
				fieldNormal = meshNormal
			} else {
				fieldNormal = g.Normalize()
			}

			fieldNormal = clampDeviation(fieldNormal, meshNormal, p.MaxDeviationRadians)

			EncodeNormal(dst[(j*res+i)*bpp:], fieldNormal, p.OctahedralEncoding)
		}
	}
}

// sampleMeshAt finds the triangle covering the in-plane point (pu,pv) and
// barycentrically interpolates the mesh vertex normals and the depth along
// the projection dim. Uncovered points use the nearest triangle by in-plane
// centroid distance with clamped barycentric weights.
func sampleMeshAt(m *mesh.Mesh, info *CurrentCellInfo, ud, vd, dim int,
	pu, pv float32) (mgl32.Vec3, float32) {

	const coverEps = 1e-4

	bestDist := float32(math32.MaxFloat32)
	bestTri := uint32(0)

	for t := uint32(0); t < info.TriangleCount; t++ {
		begin := info.TriangleBeginIndices[t]
		a := m.Positions[m.Indices[begin]]
		b := m.Positions[m.Indices[begin+1]]
		c := m.Positions[m.Indices[begin+2]]

		w0, w1, w2, ok := barycentric2D(pu, pv,
			a[ud], a[vd], b[ud], b[vd], c[ud], c[vd])
		if ok && w0 >= -coverEps && w1 >= -coverEps && w2 >= -coverEps {
			return interpolateTriangle(m, begin, w0, w1, w2, dim)
		}

		cu := (a[ud] + b[ud] + c[ud]) / 3
		cv := (a[vd] + b[vd] + c[vd]) / 3
		du, dv := pu-cu, pv-cv
		if d := du*du + dv*dv; d < bestDist {
			bestDist = d
			bestTri = t
		}
	}

	// No coverage: clamp onto the nearest triangle.
	begin := info.TriangleBeginIndices[bestTri]
	a := m.Positions[m.Indices[begin]]
	b := m.Positions[m.Indices[begin+1]]
	c := m.Positions[m.Indices[begin+2]]

	w0, w1, w2, ok := barycentric2D(pu, pv,
		a[ud], a[vd], b[ud], b[vd], c[ud], c[vd])
	if !ok {
		w0, w1, w2 = 1.0/3, 1.0/3, 1.0/3
	} else {
		w0, w1, w2 = clampBarycentric(w0, w1, w2)
	}
	return interpolateTriangle(m, begin, w0, w1, w2, dim)
}

// interpolateTriangle returns the normalized interpolated vertex normal and
// the interpolated coordinate along dim for the triangle starting at begin.
func interpolateTriangle(m *mesh.Mesh, begin uint32, w0, w1, w2 float32, dim int) (mgl32.Vec3, float32) {
	i0, i1, i2 := m.Indices[begin], m.Indices[begin+1], m.Indices[begin+2]

	n := m.Normals[i0].Mul(w0).Add(m.Normals[i1].Mul(w1)).Add(m.Normals[i2].Mul(w2))
	if n.LenSqr() < 1e-12 {
		// Opposing vertex normals cancelled out; use the face normal.
		a, b, c := m.Positions[i0], m.Positions[i1], m.Positions[i2]
		n = b.Sub(a).Cross(c.Sub(a))
		if n.LenSqr() < 1e-12 {
			n = mgl32.Vec3{0, 1, 0}
		}
	}

	depth := m.Positions[i0][dim]*w0 + m.Positions[i1][dim]*w1 + m.Positions[i2][dim]*w2
	return n.Normalize(), depth
}

// barycentric2D computes barycentric weights of (px,py) in the projected
// triangle (ax,ay)-(bx,by)-(cx,cy). ok is false for edge-on triangles.
func barycentric2D(px, py, ax, ay, bx, by, cx, cy float32) (w0, w1, w2 float32, ok bool) {
	den := (by-cy)*(ax-cx) + (cx-bx)*(ay-cy)
	if math32.Abs(den) < 1e-10 {
		return 0, 0, 0, false
	}
	w0 = ((by-cy)*(px-cx) + (cx-bx)*(py-cy)) / den
	w1 = ((cy-ay)*(px-cx) + (ax-cx)*(py-cy)) / den
	w2 = 1 - w0 - w1
	return w0, w1, w2, true
}

// clampBarycentric clamps weights to be non-negative and renormalizes.
func clampBarycentric(w0, w1, w2 float32) (float32, float32, float32) {
	if w0 < 0 {
		w0 = 0
	}
	if w1 < 0 {
		w1 = 0
	}
	if w2 < 0 {
		w2 = 0
	}
	sum := w0 + w1 + w2
	if sum < 1e-12 {
		return 1.0 / 3, 1.0 / 3, 1.0 / 3
	}
	return w0 / sum, w1 / sum, w2 / sum
}

// clampDeviation rotates n toward ref so the angle between them does not
// exceed maxRadians, preserving n's tangential direction.
func clampDeviation(n, ref mgl32.Vec3, maxRadians float32) mgl32.Vec3 {
	d := n.Dot(ref)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	angle := math32.Acos(d)
	if angle <= maxRadians {
		return n
	}

	tangent := n.Sub(ref.Mul(d))
	if tangent.LenSqr() < 1e-12 {
		tangent = anyPerpendicular(ref)
	} else {
		tangent = tangent.Normalize()
	}
	return ref.Mul(math32.Cos(maxRadians)).Add(tangent.Mul(math32.Sin(maxRadians)))
}

// anyPerpendicular returns a unit vector perpendicular to v, picked
// deterministically.
func anyPerpendicular(v mgl32.Vec3) mgl32.Vec3 {
	basis := mgl32.Vec3{1, 0, 0}
	if math32.Abs(v[0]) > math32.Abs(v[1]) {
		basis = mgl32.Vec3{0, 1, 0}
	}
	return v.Cross(basis).Normalize()
}

// perpendicularDims returns the two dims perpendicular to dim, in XYZ order.
func perpendicularDims(dim int) (int, int) {
	switch dim {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}
