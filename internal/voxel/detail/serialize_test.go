package detail

import (
	"bytes"
	"testing"
)

func TestSerializeRoundTrip(t *testing.T) {
	data := &DetailTextureData{
		Tiles: []Tile{
			{X: 1, Y: 2, Z: 3, Axis: AxisNegY},
			{X: 4, Y: 5, Z: 6, Axis: AxisPosX},
		},
		TileIndices: []uint32{7, 42},
	}
	const tileRes = 2
	tileBytes := tileRes * tileRes * OctahedralBytesPerPixel
	for i := 0; i < len(data.Tiles)*tileBytes; i++ {
		data.Normals = append(data.Normals, byte(i*3+1))
	}

	var buf bytes.Buffer
	if err := WriteDetailTextureData(&buf, data, tileRes, OctahedralBytesPerPixel); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, gotRes, gotBpp, err := ReadDetailTextureData(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if gotRes != tileRes || gotBpp != OctahedralBytesPerPixel {
		t.Errorf("round trip resolution/stride = %d/%d, want %d/%d",
			gotRes, gotBpp, tileRes, OctahedralBytesPerPixel)
	}
	if len(got.Tiles) != len(data.Tiles) {
		t.Fatalf("tile count %d, want %d", len(got.Tiles), len(data.Tiles))
	}
	for i := range data.Tiles {
		if got.Tiles[i] != data.Tiles[i] {
			t.Errorf("tile %d = %+v, want %+v", i, got.Tiles[i], data.Tiles[i])
		}
	}
	for i := range data.TileIndices {
		if got.TileIndices[i] != data.TileIndices[i] {
			t.Errorf("tile index %d = %d, want %d", i, got.TileIndices[i], data.TileIndices[i])
		}
	}
	if !bytes.Equal(got.Normals, data.Normals) {
		t.Error("normals buffer did not round trip")
	}
}

func TestSerializeDenseHasNoIndices(t *testing.T) {
	data := &DetailTextureData{
		Tiles:   []Tile{{Axis: AxisPosZ}},
		Normals: make([]byte, RawBytesPerPixel),
	}

	var buf bytes.Buffer
	if err := WriteDetailTextureData(&buf, data, 1, RawBytesPerPixel); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, _, _, err := ReadDetailTextureData(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.TileIndices) != 0 {
		t.Errorf("expected no tile indices, got %d", len(got.TileIndices))
	}
}

func TestSerializeRejectsBadBuffers(t *testing.T) {
	data := &DetailTextureData{
		Tiles:   []Tile{{}},
		Normals: []byte{1},
	}
	var buf bytes.Buffer
	if err := WriteDetailTextureData(&buf, data, 4, RawBytesPerPixel); err == nil {
		t.Error("expected error for mismatched normals buffer")
	}

	if _, _, _, err := ReadDetailTextureData(bytes.NewReader([]byte("nope"))); err == nil {
		t.Error("expected error for bad magic")
	}
}
