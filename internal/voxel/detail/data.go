package detail

// Projection axis identifiers stored in Tile.Axis.
const (
	AxisPosX = uint8(iota)
	AxisNegX
	AxisPosY
	AxisNegY
	AxisPosZ
	AxisNegZ
)

// Bytes per encoded normal for each encoding mode.
const (
	RawBytesPerPixel        = 3
	OctahedralBytesPerPixel = 2
)

// BytesPerPixel returns the pixel stride for the given encoding mode.
func BytesPerPixel(octahedralEncoding bool) int {
	if octahedralEncoding {
		return OctahedralBytesPerPixel
	}
	return RawBytesPerPixel
}

// Tile identifies one square patch of encoded normals: the cell coordinate
// within the block plus the projection axis the tile was rasterized along.
type Tile struct {
	X, Y, Z uint8
	Axis    uint8
}

// DetailTextureData is the atlas-agnostic result of the detail sampler.
//
// Normals holds one encoded normal per pixel, tiles stored consecutively in
// the order cells were yielded by the iterator, TileResolution² pixels per
// tile. The pixel stride is 3 bytes (raw XYZ) or 2 bytes (octahedral); the
// encoding mode is not embedded here, callers track the settings that
// produced the data.
type DetailTextureData struct {
	Normals []byte
	Tiles   []Tile
	// Used when only edited tiles were computed: the logical address of each
	// tile within the block's dense tile sequence, parallel to Tiles. Empty
	// means tiles are dense and sequential.
	TileIndices []uint32
}

// Clear resets the buffers, keeping their capacity.
func (d *DetailTextureData) Clear() {
	d.Normals = d.Normals[:0]
	d.Tiles = d.Tiles[:0]
	d.TileIndices = d.TileIndices[:0]
}
