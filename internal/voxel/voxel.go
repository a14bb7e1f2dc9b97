// Package voxel holds the integer-space geometry types shared by the
// field, mesh and detail packages.
package voxel

// Vec3i is a voxel-space integer coordinate.
type Vec3i struct {
	X, Y, Z int32
}

// Add returns v + o.
func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Mul returns v scaled by s.
func (v Vec3i) Mul(s int32) Vec3i {
	return Vec3i{v.X * s, v.Y * s, v.Z * s}
}

// Box3i is an axis-aligned voxel-space box: [Origin, Origin+Size).
type Box3i struct {
	Origin Vec3i
	Size   Vec3i
}

// Intersects reports whether two boxes overlap.
func (b Box3i) Intersects(o Box3i) bool {
	if b.Origin.X >= o.Origin.X+o.Size.X || o.Origin.X >= b.Origin.X+b.Size.X {
		return false
	}
	if b.Origin.Y >= o.Origin.Y+o.Size.Y || o.Origin.Y >= b.Origin.Y+b.Size.Y {
		return false
	}
	if b.Origin.Z >= o.Origin.Z+o.Size.Z || o.Origin.Z >= b.Origin.Z+b.Size.Z {
		return false
	}
	return true
}

// Contains reports whether p lies inside the box.
func (b Box3i) Contains(p Vec3i) bool {
	return p.X >= b.Origin.X && p.X < b.Origin.X+b.Size.X &&
		p.Y >= b.Origin.Y && p.Y < b.Origin.Y+b.Size.Y &&
		p.Z >= b.Origin.Z && p.Z < b.Origin.Z+b.Size.Z
}
