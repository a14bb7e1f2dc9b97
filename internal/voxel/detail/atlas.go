package detail

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Image is a packed 2-D byte image, Channels bytes per pixel, rows stored
// top to bottom with no padding.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// NewImage allocates a zeroed image.
func NewImage(width, height, channels int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// DetailImages pairs the tile atlas with the per-cell lookup image. They are
// always produced together; one without the other is invalid.
type DetailImages struct {
	Atlas  *Image
	Lookup *Image
	// Number of texture-array layers, or zero for the single-atlas layout.
	// With layers, Atlas holds them stacked vertically, tile resolution wide.
	Layers int
}

// Lookup image channel layout (3 bytes per pixel): atlas slot X, atlas slot
// Y, projection axis. A pixel of LookupNoTile in every channel marks a cell
// with no tile. Cell (x,y,z) maps to lookup pixel (x, y + z*blockSize).
const LookupNoTile = 0xff

// SquareGridSize returns the side of the smallest square grid holding
// itemCount items.
func SquareGridSize(itemCount int) int {
	return int(math32.Ceil(math32.Sqrt(float32(itemCount))))
}

// CopyPackedToAtlased copies a tightly packed src block of srcW×srcH pixels
// into the dst image of dstW×dstH pixels at (dstX,dstY), pixelSize bytes per
// pixel. The destination region must lie fully inside dst, buffers must
// match their declared dimensions, and src and dst must not overlap; any
// violation is a programming error and panics.
func CopyPackedToAtlased(dst []byte, dstW, dstH int, src []byte, srcW, srcH int,
	dstX, dstY, pixelSize int) {

	if srcW < 0 || srcH < 0 || dstW < 0 || dstH < 0 {
		panic("detail: negative image dimensions")
	}
	if dstX < 0 || dstY < 0 || dstX+srcW > dstW || dstY+srcH > dstH {
		panic(fmt.Sprintf("detail: destination region (%d,%d)+(%dx%d) outside %dx%d",
			dstX, dstY, srcW, srcH, dstW, dstH))
	}
	if len(src) != srcW*srcH*pixelSize {
		panic(fmt.Sprintf("detail: src buffer is %d bytes, want %d", len(src), srcW*srcH*pixelSize))
	}
	if len(dst) != dstW*dstH*pixelSize {
		panic(fmt.Sprintf("detail: dst buffer is %d bytes, want %d", len(dst), dstW*dstH*pixelSize))
	}
	if len(src) > 0 && len(dst) > 0 && &src[0] == &dst[0] {
		panic("detail: src and dst overlap")
	}

	srcRow := srcW * pixelSize
	dstRow := dstW * pixelSize
	dstBegin := (dstX + dstY*dstW) * pixelSize
	for y := 0; y < srcH; y++ {
		copy(dst[dstBegin+y*dstRow:dstBegin+y*dstRow+srcRow], src[y*srcRow:(y+1)*srcRow])
	}
}

// StoreLookupToImage builds the per-cell lookup image for a block of
// blockSize cells per axis: for each tile, the pixel at its cell coordinate
// records which atlas slot holds the tile and along which axis it was
// projected. Cells without a tile hold LookupNoTile in every channel.
func StoreLookupToImage(tiles []Tile, blockSize int) *Image {
	gridSide := SquareGridSize(len(tiles))
	if gridSide > 0xff {
		panic(fmt.Sprintf("detail: atlas grid side %d does not fit the lookup byte layout", gridSide))
	}

	img := NewImage(blockSize, blockSize*blockSize, 3)
	for i := range img.Pix {
		img.Pix[i] = LookupNoTile
	}

	for i, t := range tiles {
		x := int(t.X)
		y := int(t.Y) + int(t.Z)*blockSize
		if x >= img.Width || y >= img.Height {
			panic(fmt.Sprintf("detail: tile cell (%d,%d,%d) outside block of size %d",
				t.X, t.Y, t.Z, blockSize))
		}
		off := (y*img.Width + x) * img.Channels
		img.Pix[off] = uint8(i % gridSide)
		img.Pix[off+1] = uint8(i / gridSide)
		img.Pix[off+2] = t.Axis
	}
	return img
}

// StoreNormalmapDataToImages packs the per-tile normal data into a square
// atlas image, tiles laid out row-major in iteration order, and builds the
// paired lookup image.
func StoreNormalmapDataToImages(data *DetailTextureData, tileResolution int,
	blockSize int, octahedralEncoding bool) DetailImages {

	bpp := BytesPerPixel(octahedralEncoding)
	tileBytes := tileResolution * tileResolution * bpp
	if len(data.Normals) != len(data.Tiles)*tileBytes {
		panic(fmt.Sprintf("detail: normals buffer is %d bytes, want %d for %d tiles",
			len(data.Normals), len(data.Tiles)*tileBytes, len(data.Tiles)))
	}

	gridSide := SquareGridSize(len(data.Tiles))
	atlasSide := gridSide * tileResolution
	atlas := NewImage(atlasSide, atlasSide, bpp)

	for i := range data.Tiles {
		src := data.Normals[i*tileBytes : (i+1)*tileBytes]
		dstX := (i % gridSide) * tileResolution
		dstY := (i / gridSide) * tileResolution
		CopyPackedToAtlased(atlas.Pix, atlas.Width, atlas.Height,
			src, tileResolution, tileResolution, dstX, dstY, bpp)
	}

	return DetailImages{
		Atlas:  atlas,
		Lookup: StoreLookupToImage(data.Tiles, blockSize),
	}
}

// StoreNormalmapDataToLayeredImages packs the per-tile normal data for a
// texture array, one tile per layer, stacked vertically in upload order. The
// lookup image stores the layer index split over the first two channels
// (low byte, high byte) with the projection axis in the third.
func StoreNormalmapDataToLayeredImages(data *DetailTextureData, tileResolution int,
	blockSize int, octahedralEncoding bool) DetailImages {

	bpp := BytesPerPixel(octahedralEncoding)
	tileBytes := tileResolution * tileResolution * bpp
	if len(data.Normals) != len(data.Tiles)*tileBytes {
		panic(fmt.Sprintf("detail: normals buffer is %d bytes, want %d for %d tiles",
			len(data.Normals), len(data.Tiles)*tileBytes, len(data.Tiles)))
	}

	layers := len(data.Tiles)
	atlas := NewImage(tileResolution, tileResolution*layers, bpp)
	copy(atlas.Pix, data.Normals)

	lookup := NewImage(blockSize, blockSize*blockSize, 3)
	for i := range lookup.Pix {
		lookup.Pix[i] = LookupNoTile
	}
	for i, t := range data.Tiles {
		if i > 0xffff {
			panic("detail: layer index does not fit the lookup byte layout")
		}
		x := int(t.X)
		y := int(t.Y) + int(t.Z)*blockSize
		if x >= lookup.Width || y >= lookup.Height {
			panic(fmt.Sprintf("detail: tile cell (%d,%d,%d) outside block of size %d",
				t.X, t.Y, t.Z, blockSize))
		}
		off := (y*lookup.Width + x) * lookup.Channels
		lookup.Pix[off] = uint8(i & 0xff)
		lookup.Pix[off+1] = uint8(i >> 8)
		lookup.Pix[off+2] = t.Axis
	}

	return DetailImages{Atlas: atlas, Lookup: lookup, Layers: layers}
}

// PackNormalmapData packs tiles according to the configured layout.
func PackNormalmapData(layout TileLayout, data *DetailTextureData, tileResolution int,
	blockSize int, octahedralEncoding bool) DetailImages {

	if layout == LayoutArray {
		return StoreNormalmapDataToLayeredImages(data, tileResolution, blockSize, octahedralEncoding)
	}
	return StoreNormalmapDataToImages(data, tileResolution, blockSize, octahedralEncoding)
}
