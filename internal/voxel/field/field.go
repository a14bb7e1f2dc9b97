// Package field defines the signed distance field collaborators consumed by
// the detail sampler, plus a few concrete fields used by the tool and tests.
package field

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxeldetail/internal/voxel"
)

// Sampler evaluates a signed distance field at a voxel-space point.
// Negative values are inside matter.
//
// Implementations must be pure functions of position and safe to call
// concurrently from multiple workers.
type Sampler interface {
	Sample(p mgl32.Vec3, lodIndex uint8) float32
}

// EditMask reports whether a voxel-space box contains edited voxels.
// Used to restrict detail texture updates to edited tiles.
type EditMask interface {
	ContainsEditsIn(box voxel.Box3i, lodIndex uint8) bool
}

// Gradient estimates the field gradient at p with central differences of
// step h. The result is not normalized; a near-zero vector means the field
// is locally flat or ambiguous there.
func Gradient(s Sampler, p mgl32.Vec3, h float32, lodIndex uint8) mgl32.Vec3 {
	inv := 1 / (2 * h)
	return mgl32.Vec3{
		(s.Sample(mgl32.Vec3{p[0] + h, p[1], p[2]}, lodIndex) - s.Sample(mgl32.Vec3{p[0] - h, p[1], p[2]}, lodIndex)) * inv,
		(s.Sample(mgl32.Vec3{p[0], p[1] + h, p[2]}, lodIndex) - s.Sample(mgl32.Vec3{p[0], p[1] - h, p[2]}, lodIndex)) * inv,
		(s.Sample(mgl32.Vec3{p[0], p[1], p[2] + h}, lodIndex) - s.Sample(mgl32.Vec3{p[0], p[1], p[2] - h}, lodIndex)) * inv,
	}
}

// BoxEditMask marks a single voxel-space box as edited.
type BoxEditMask struct {
	Box voxel.Box3i
}

// ContainsEditsIn reports whether the queried box overlaps the edited box.
func (m BoxEditMask) ContainsEditsIn(box voxel.Box3i, _ uint8) bool {
	return m.Box.Intersects(box)
}
