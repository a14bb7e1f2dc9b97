// Package detail generates per-cell detail normal-map tiles for coarsened
// voxel meshes and packs them into an atlas plus a per-cell lookup image.
//
// UV-mapping a voxel mesh is not trivial. Instead the mesh is subdivided
// into a grid of cells; in each cell an axis-aligned projection is picked
// from the average of its triangle normals, a tile of field-space normals
// is rasterized through that projection, and all tiles are stored in an
// atlas. A shader reads the atlas through a lookup texture to find the tile
// for each cell.
package detail

// Deviation bounds accepted by Settings, in degrees.
const (
	MinDeviationDegrees = 1
	MaxDeviationDegrees = 179
)

// Settings is the static configuration for detail normal-map generation.
type Settings struct {
	// If enabled, an atlas of normalmaps is generated for each cell of the
	// voxel mesh, to add visual detail using a shader.
	Enabled bool
	// LOD index from which normalmaps start being generated.
	BeginLODIndex uint8
	// Tile resolution used at the beginning LOD. Resolution doubles at each
	// following LOD index, clamped to TileResolutionMax.
	TileResolutionMin uint8
	TileResolutionMax uint8
	// If the angle between mesh normals and field normals exceeds this,
	// the field normal's direction is clamped. Must stay within
	// [MinDeviationDegrees, MaxDeviationDegrees].
	MaxDeviationDegrees uint8
	// Octahedral compression trades a bit of quality for 2 bytes per pixel
	// instead of 3.
	OctahedralEncoding bool
	// How tiles are packed for sampling. The zero value is LayoutAtlas.
	Layout TileLayout
}

// TileLayout selects the packing strategy for generated tiles. It is chosen
// once at configuration time, not per block.
type TileLayout uint8

const (
	// LayoutAtlas packs all tiles into one square 2-D image.
	LayoutAtlas TileLayout = iota
	// LayoutArray stacks tiles as texture-array layers, one tile per layer.
	LayoutArray
)

// TileResolutionForLOD returns the tile resolution used at the given LOD
// index: TileResolutionMin at BeginLODIndex, doubling at each following LOD
// index, clamped to TileResolutionMax. LOD indices below BeginLODIndex are
// clamped to TileResolutionMin; callers gate on Enabled and the LOD range.
func (s Settings) TileResolutionForLOD(lodIndex uint8) uint32 {
	if lodIndex <= s.BeginLODIndex {
		return uint32(s.TileResolutionMin)
	}
	shift := uint32(lodIndex - s.BeginLODIndex)
	if shift > 16 {
		shift = 16
	}
	res := uint32(s.TileResolutionMin) << shift
	if res > uint32(s.TileResolutionMax) {
		res = uint32(s.TileResolutionMax)
	}
	return res
}
