// Package texture uploads detail images to OpenGL textures.
//
// Every function here must run on the goroutine that owns the GL context.
// Callers typically post the upload through a tasks.MainQueue.
package texture

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxeldetail/internal/logger"
	"github.com/Faultbox/voxeldetail/internal/voxel/detail"
)

// StoreNormalmapDataToTextures uploads an atlas/lookup image pair and returns
// the resulting texture names. The lookup texture uses nearest filtering since
// its texels are slot addresses, not colors.
func StoreNormalmapDataToTextures(images detail.DetailImages) (detail.DetailTextures, error) {
	var out detail.DetailTextures

	var atlas uint32
	var err error
	if images.Layers > 0 {
		atlas, err = uploadArray(images.Atlas, images.Layers)
	} else {
		atlas, err = upload(images.Atlas)
	}
	if err != nil {
		return out, fmt.Errorf("uploading atlas texture: %w", err)
	}
	lookup, err := upload(images.Lookup)
	if err != nil {
		gl.DeleteTextures(1, &atlas)
		return out, fmt.Errorf("uploading lookup texture: %w", err)
	}

	out.Atlas = atlas
	out.Lookup = lookup
	logger.Debug("uploaded detail textures",
		zap.Int("atlas_size", images.Atlas.Width),
		zap.Int("lookup_height", images.Lookup.Height))
	return out, nil
}

// Release deletes the textures if they were created.
func Release(t detail.DetailTextures) {
	if t.Atlas != 0 {
		gl.DeleteTextures(1, &t.Atlas)
	}
	if t.Lookup != 0 {
		gl.DeleteTextures(1, &t.Lookup)
	}
}

func upload(img *detail.Image) (uint32, error) {
	if img == nil {
		return 0, fmt.Errorf("nil image")
	}

	var internalFormat int32
	var format uint32
	switch img.Channels {
	case 2:
		internalFormat = gl.RG8
		format = gl.RG
	case 3:
		internalFormat = gl.RGB8
		format = gl.RGB
	default:
		return 0, fmt.Errorf("unsupported channel count %d", img.Channels)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// Rows are tightly packed regardless of width.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		internalFormat,
		int32(img.Width),
		int32(img.Height),
		0,
		format,
		gl.UNSIGNED_BYTE,
		pixPtr(img.Pix),
	)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("glTexImage2D failed: 0x%04x", glErr)
	}
	return tex, nil
}

func pixPtr(pix []byte) unsafe.Pointer {
	if len(pix) == 0 {
		return nil
	}
	return unsafe.Pointer(&pix[0])
}

// uploadArray uploads an image holding layers stacked vertically as a
// texture array, one tile per layer.
func uploadArray(img *detail.Image, layers int) (uint32, error) {
	if img == nil {
		return 0, fmt.Errorf("nil image")
	}
	if layers <= 0 || img.Height%layers != 0 {
		return 0, fmt.Errorf("image height %d does not divide into %d layers", img.Height, layers)
	}

	var internalFormat int32
	var format uint32
	switch img.Channels {
	case 2:
		internalFormat = gl.RG8
		format = gl.RG
	case 3:
		internalFormat = gl.RGB8
		format = gl.RGB
	default:
		return 0, fmt.Errorf("unsupported channel count %d", img.Channels)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, tex)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage3D(
		gl.TEXTURE_2D_ARRAY,
		0,
		internalFormat,
		int32(img.Width),
		int32(img.Height/layers),
		int32(layers),
		0,
		format,
		gl.UNSIGNED_BYTE,
		pixPtr(img.Pix),
	)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("glTexImage3D failed: 0x%04x", glErr)
	}
	return tex, nil
}
