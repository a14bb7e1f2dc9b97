package detail

import (
	"bytes"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxeldetail/internal/voxel"
	"github.com/Faultbox/voxeldetail/internal/voxel/field"
	"github.com/Faultbox/voxeldetail/internal/voxel/mesh"
)

// zPlaneField is a flat field whose boundary is the plane z = Z.
type zPlaneField struct {
	Z float32
}

func (f zPlaneField) Sample(p mgl32.Vec3, _ uint8) float32 {
	return p[2] - f.Z
}

// halfSpaceField has a constant gradient along an arbitrary direction.
type halfSpaceField struct {
	N mgl32.Vec3 // unit
	C float32
}

func (f halfSpaceField) Sample(p mgl32.Vec3, _ uint8) float32 {
	return p.Dot(f.N) - f.C
}

// singleCellQuadMesh builds one cell (LOD 2, 4 voxels wide) holding a flat
// quad at z=2 facing +Z.
func singleCellQuadMesh() *mesh.Mesh {
	up := mgl32.Vec3{0, 0, 1}
	return &mesh.Mesh{
		Positions: []mgl32.Vec3{
			{0, 0, 2}, {4, 0, 2}, {4, 4, 2}, {0, 4, 2},
		},
		Normals: []mgl32.Vec3{up, up, up, up},
		Indices: []int32{0, 1, 2, 0, 2, 3},
		Cells: []mesh.Cell{
			{Position: voxel.Vec3i{}, FirstTriangle: 0, TriangleCount: 2},
		},
	}
}

func baseParams(octahedral bool) ComputeParams {
	return ComputeParams{
		TileResolution:      4,
		LODIndex:            2,
		MaxDeviationRadians: 60 * math32.Pi / 180,
		OctahedralEncoding:  octahedral,
	}
}

func TestComputeFlatQuadFacingZ(t *testing.T) {
	m := singleCellQuadMesh()
	f := zPlaneField{Z: 2}

	var data DetailTextureData
	ComputeDetailTextureData(NewMeshCellIterator(m), m, f, nil, &data, baseParams(false))

	if len(data.Tiles) != 1 {
		t.Fatalf("expected 1 tile, got %d", len(data.Tiles))
	}
	if data.Tiles[0].Axis != AxisPosZ {
		t.Errorf("expected +Z projection axis (%d), got %d", AxisPosZ, data.Tiles[0].Axis)
	}
	if len(data.TileIndices) != 0 {
		t.Errorf("dense run should leave TileIndices empty, got %d entries", len(data.TileIndices))
	}
	if want := 4 * 4 * RawBytesPerPixel; len(data.Normals) != want {
		t.Fatalf("normals buffer is %d bytes, want %d", len(data.Normals), want)
	}

	up := mgl32.Vec3{0, 0, 1}
	for px := 0; px < 16; px++ {
		n := DecodeNormal(data.Normals[px*RawBytesPerPixel:], false)
		if n.Dot(up) < 0.999 {
			t.Errorf("pixel %d: normal %v, want ~(0,0,1)", px, n)
		}
	}
}

func TestComputeSizeInvariantBothEncodings(t *testing.T) {
	f := field.PlaneField{Height: 10}
	m := mesh.BuildBlockMesh(f, voxel.Vec3i{}, 4, 2)
	if len(m.Cells) == 0 {
		t.Fatal("expected surface cells")
	}

	for _, octahedral := range []bool{false, true} {
		var data DetailTextureData
		ComputeDetailTextureData(NewMeshCellIterator(m), m, f, nil, &data, baseParams(octahedral))

		if len(data.Tiles) != len(m.Cells) {
			t.Errorf("octahedral=%v: %d tiles for %d cells", octahedral, len(data.Tiles), len(m.Cells))
		}
		want := len(data.Tiles) * 4 * 4 * BytesPerPixel(octahedral)
		if len(data.Normals) != want {
			t.Errorf("octahedral=%v: normals buffer is %d bytes, want %d", octahedral, len(data.Normals), want)
		}
	}
}

func TestComputeDeviationClampAtSampler(t *testing.T) {
	m := singleCellQuadMesh()
	// Field gradient tilted 45 degrees away from the mesh normal.
	f := halfSpaceField{N: mgl32.Vec3{1, 0, 1}.Normalize()}

	p := baseParams(false)
	p.MaxDeviationRadians = 10 * math32.Pi / 180

	var data DetailTextureData
	ComputeDetailTextureData(NewMeshCellIterator(m), m, f, nil, &data, p)

	up := mgl32.Vec3{0, 0, 1}
	for px := 0; px < 16; px++ {
		n := DecodeNormal(data.Normals[px*RawBytesPerPixel:], false)
		deg := angularErrorDegrees(n, up)
		if deg > 11 {
			t.Errorf("pixel %d: deviation %f degrees exceeds 10 degree clamp", px, deg)
		}
		if deg < 9 {
			t.Errorf("pixel %d: deviation %f degrees, expected clamp to land at ~10", px, deg)
		}
	}
}

func TestClampDeviation(t *testing.T) {
	ref := mgl32.Vec3{0, 0, 1}
	max := 30 * math32.Pi / 180

	// 80 degrees off: must come back to exactly 30.
	tilted := mgl32.Vec3{math32.Sin(80 * math32.Pi / 180), 0, math32.Cos(80 * math32.Pi / 180)}
	got := clampDeviation(tilted, ref, max)
	if deg := angularErrorDegrees(got, ref); deg < 29.9 || deg > 30.1 {
		t.Errorf("clamped angle is %f degrees, want 30", deg)
	}
	// Tangential direction is preserved.
	if got[0] < 0 || math32.Abs(got[1]) > 1e-5 {
		t.Errorf("clamp lost tangential direction: %v", got)
	}

	// Within threshold: unchanged.
	slight := mgl32.Vec3{math32.Sin(10 * math32.Pi / 180), 0, math32.Cos(10 * math32.Pi / 180)}
	if got := clampDeviation(slight, ref, max); got != slight {
		t.Errorf("normal within threshold was modified: %v -> %v", slight, got)
	}

	// Antiparallel input still lands on the cone deterministically.
	opp := clampDeviation(mgl32.Vec3{0, 0, -1}, ref, max)
	if deg := angularErrorDegrees(opp, ref); deg < 29.9 || deg > 30.1 {
		t.Errorf("antiparallel clamp angle is %f degrees, want 30", deg)
	}
}

func TestComputeEditedTilesOnly(t *testing.T) {
	f := field.PlaneField{Height: 10}
	m := mesh.BuildBlockMesh(f, voxel.Vec3i{}, 4, 2)
	if len(m.Cells) != 16 {
		t.Fatalf("expected 16 surface cells, got %d", len(m.Cells))
	}

	// One edited voxel inside cell (1,2,1).
	mask := field.BoxEditMask{Box: voxel.Box3i{
		Origin: voxel.Vec3i{X: 5, Y: 9, Z: 5},
		Size:   voxel.Vec3i{X: 1, Y: 1, Z: 1},
	}}

	p := baseParams(false)
	p.EditedTilesOnly = true

	var data DetailTextureData
	ComputeDetailTextureData(NewMeshCellIterator(m), m, f, mask, &data, p)

	if len(data.Tiles) != 1 {
		t.Fatalf("expected 1 edited tile, got %d", len(data.Tiles))
	}
	tile := data.Tiles[0]
	if tile.X != 1 || tile.Y != 2 || tile.Z != 1 {
		t.Errorf("edited tile at cell (%d,%d,%d), want (1,2,1)", tile.X, tile.Y, tile.Z)
	}
	if len(data.TileIndices) != 1 {
		t.Fatalf("expected 1 tile index, got %d", len(data.TileIndices))
	}

	// The logical address is the cell's position in the dense sequence.
	wantOrdinal := uint32(0)
	found := false
	for i, c := range m.Cells {
		if c.Position == (voxel.Vec3i{X: 1, Y: 2, Z: 1}) {
			wantOrdinal = uint32(i)
			found = true
		}
	}
	if !found {
		t.Fatal("cell (1,2,1) missing from mesh")
	}
	if data.TileIndices[0] != wantOrdinal {
		t.Errorf("tile index %d, want %d", data.TileIndices[0], wantOrdinal)
	}
}

func TestComputeFallbackIsDeterministic(t *testing.T) {
	// A single small triangle leaves most tile pixels uncovered, forcing
	// the nearest-triangle fallback.
	up := mgl32.Vec3{0, 0, 1}
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 2}, {1, 0, 2}, {0, 1, 2}},
		Normals:   []mgl32.Vec3{up, up, up},
		Indices:   []int32{0, 1, 2},
		Cells: []mesh.Cell{
			{Position: voxel.Vec3i{}, FirstTriangle: 0, TriangleCount: 1},
		},
	}
	f := zPlaneField{Z: 2}

	var a, b DetailTextureData
	ComputeDetailTextureData(NewMeshCellIterator(m), m, f, nil, &a, baseParams(false))
	ComputeDetailTextureData(NewMeshCellIterator(m), m, f, nil, &b, baseParams(false))

	if !bytes.Equal(a.Normals, b.Normals) {
		t.Error("fallback sampling is not deterministic")
	}
	if len(a.Tiles) != 1 {
		t.Fatalf("expected 1 tile, got %d", len(a.Tiles))
	}
}
