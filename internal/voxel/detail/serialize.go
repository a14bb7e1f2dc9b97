package detail

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Serialized detail texture data layout (little-endian):
//
//	magic      [4]byte "VDTX"
//	version    uint8
//	bpp        uint8   bytes per pixel (2 or 3)
//	tileRes    uint16  pixels per tile side
//	tileCount  uint32
//	indexCount uint32  0 for dense data, else == tileCount
//	tiles      tileCount × {X,Y,Z,Axis uint8}
//	indices    indexCount × uint32
//	normals    tileCount × tileRes² × bpp bytes
//
// This is the transfer format for edited-region tile updates.

var serializeMagic = [4]byte{'V', 'D', 'T', 'X'}

const serializeVersion = 1

var byteOrder = binary.LittleEndian

// WriteDetailTextureData serializes data produced with the given tile
// resolution and pixel stride.
func WriteDetailTextureData(w io.Writer, data *DetailTextureData, tileResolution, bytesPerPixel int) error {
	if len(data.TileIndices) != 0 && len(data.TileIndices) != len(data.Tiles) {
		return fmt.Errorf("tile index count %d does not match tile count %d",
			len(data.TileIndices), len(data.Tiles))
	}
	wantNormals := len(data.Tiles) * tileResolution * tileResolution * bytesPerPixel
	if len(data.Normals) != wantNormals {
		return fmt.Errorf("normals buffer is %d bytes, want %d", len(data.Normals), wantNormals)
	}

	if _, err := w.Write(serializeMagic[:]); err != nil {
		return err
	}
	header := []any{
		uint8(serializeVersion),
		uint8(bytesPerPixel),
		uint16(tileResolution),
		uint32(len(data.Tiles)),
		uint32(len(data.TileIndices)),
	}
	for _, v := range header {
		if err := binary.Write(w, byteOrder, v); err != nil {
			return err
		}
	}
	if err := binary.Write(w, byteOrder, data.Tiles); err != nil {
		return err
	}
	if len(data.TileIndices) > 0 {
		if err := binary.Write(w, byteOrder, data.TileIndices); err != nil {
			return err
		}
	}
	_, err := w.Write(data.Normals)
	return err
}

// ReadDetailTextureData deserializes data written by WriteDetailTextureData,
// returning the data plus the tile resolution and pixel stride it was
// produced with.
func ReadDetailTextureData(r io.Reader) (*DetailTextureData, int, int, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, 0, 0, err
	}
	if magic != serializeMagic {
		return nil, 0, 0, fmt.Errorf("bad magic %q", magic)
	}

	var (
		version    uint8
		bpp        uint8
		tileRes    uint16
		tileCount  uint32
		indexCount uint32
	)
	for _, v := range []any{&version, &bpp, &tileRes, &tileCount, &indexCount} {
		if err := binary.Read(r, byteOrder, v); err != nil {
			return nil, 0, 0, err
		}
	}
	if version != serializeVersion {
		return nil, 0, 0, fmt.Errorf("unsupported version %d", version)
	}
	if bpp != RawBytesPerPixel && bpp != OctahedralBytesPerPixel {
		return nil, 0, 0, fmt.Errorf("unsupported pixel stride %d", bpp)
	}
	if indexCount != 0 && indexCount != tileCount {
		return nil, 0, 0, fmt.Errorf("index count %d does not match tile count %d", indexCount, tileCount)
	}

	data := &DetailTextureData{
		Tiles:   make([]Tile, tileCount),
		Normals: make([]byte, int(tileCount)*int(tileRes)*int(tileRes)*int(bpp)),
	}
	if err := binary.Read(r, byteOrder, data.Tiles); err != nil {
		return nil, 0, 0, err
	}
	if indexCount > 0 {
		data.TileIndices = make([]uint32, indexCount)
		if err := binary.Read(r, byteOrder, data.TileIndices); err != nil {
			return nil, 0, 0, err
		}
	}
	if _, err := io.ReadFull(r, data.Normals); err != nil {
		return nil, 0, 0, err
	}
	return data, int(tileRes), int(bpp), nil
}
