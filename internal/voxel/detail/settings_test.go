package detail

import "testing"

func TestTileResolutionForLOD(t *testing.T) {
	s := Settings{
		Enabled:           true,
		BeginLODIndex:     2,
		TileResolutionMin: 4,
		TileResolutionMax: 16,
	}

	tests := []struct {
		lod  uint8
		want uint32
	}{
		{0, 4}, // below begin LOD, clamped to min
		{1, 4},
		{2, 4},
		{3, 8},
		{4, 16},
		{5, 16}, // clamped to max
		{10, 16},
	}

	for _, tt := range tests {
		if got := s.TileResolutionForLOD(tt.lod); got != tt.want {
			t.Errorf("TileResolutionForLOD(%d) = %d, want %d", tt.lod, got, tt.want)
		}
	}
}

func TestTileResolutionMonotonicAndBounded(t *testing.T) {
	s := Settings{
		BeginLODIndex:     1,
		TileResolutionMin: 2,
		TileResolutionMax: 64,
	}

	prev := uint32(0)
	for lod := uint8(0); lod < 24; lod++ {
		res := s.TileResolutionForLOD(lod)
		if res < uint32(s.TileResolutionMin) || res > uint32(s.TileResolutionMax) {
			t.Errorf("lod %d: resolution %d outside [%d,%d]",
				lod, res, s.TileResolutionMin, s.TileResolutionMax)
		}
		if res < prev {
			t.Errorf("lod %d: resolution %d decreased from %d", lod, res, prev)
		}
		prev = res
	}
}
