package field

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SphereField is the signed distance to a sphere.
type SphereField struct {
	Center mgl32.Vec3
	Radius float32
}

// Sample returns the distance from p to the sphere surface.
func (f SphereField) Sample(p mgl32.Vec3, _ uint8) float32 {
	return p.Sub(f.Center).Len() - f.Radius
}

// PlaneField is the signed distance to a horizontal plane at Height.
// Matter is below the plane.
type PlaneField struct {
	Height float32
}

// Sample returns the distance from p to the plane.
func (f PlaneField) Sample(p mgl32.Vec3, _ uint8) float32 {
	return p[1] - f.Height
}

// TerrainField is a sine-based heightfield, useful as a cheap stand-in for a
// real terrain generator. Matter is below the height surface.
type TerrainField struct {
	Base      float32
	Amplitude float32
	Frequency float32
}

// Sample returns an approximate distance from p to the height surface.
// Exact only for flat regions, which is fine for normal estimation.
func (f TerrainField) Sample(p mgl32.Vec3, _ uint8) float32 {
	h := f.Base + f.Amplitude*math32.Sin(p[0]*f.Frequency)*math32.Cos(p[2]*f.Frequency)
	return p[1] - h
}
