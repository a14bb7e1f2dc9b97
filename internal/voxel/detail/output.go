package detail

import "sync/atomic"

// DetailTextures pairs GPU texture handles for the atlas and lookup images.
// Handles are renderer texture names (OpenGL texture IDs); zero means the
// texture was not created.
type DetailTextures struct {
	Atlas  uint32
	Lookup uint32
}

// DetailTextureOutput holds whichever representation of a block's detail
// textures is ready. It is created empty, populated exactly once by the
// producing goroutine, then published with MarkValid. Consumers poll Valid
// and must not read Images or Textures until it returns true.
//
// Textures may stay zero when texture creation was not possible off the
// render thread; in that case Images carries the result.
type DetailTextureOutput struct {
	Images   DetailImages
	Textures DetailTextures

	valid atomic.Bool
}

// MarkValid publishes the output. It must be called exactly once, after all
// other fields are fully written; calling it twice panics.
func (o *DetailTextureOutput) MarkValid() {
	if !o.valid.CompareAndSwap(false, true) {
		panic("detail: DetailTextureOutput published twice")
	}
}

// Valid reports whether the output has been published. Once it returns
// true it never reverts, and all other fields are safe to read.
func (o *DetailTextureOutput) Valid() bool {
	return o.valid.Load()
}
