package detail

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// EncodeNormal writes the unit normal n into dst using the selected
// encoding: 3 bytes of quantized XYZ, or 2 bytes of octahedral mapping.
// dst must have at least BytesPerPixel(octahedralEncoding) bytes.
func EncodeNormal(dst []byte, n mgl32.Vec3, octahedralEncoding bool) {
	if octahedralEncoding {
		u, v := octEncode(n)
		dst[0] = u
		dst[1] = v
		return
	}
	dst[0] = toSnorm8(n[0])
	dst[1] = toSnorm8(n[1])
	dst[2] = toSnorm8(n[2])
}

// DecodeNormal reads a normal previously written by EncodeNormal. The
// result is a unit vector up to quantization error.
func DecodeNormal(src []byte, octahedralEncoding bool) mgl32.Vec3 {
	if octahedralEncoding {
		return octDecode(src[0], src[1])
	}
	v := mgl32.Vec3{fromSnorm8(src[0]), fromSnorm8(src[1]), fromSnorm8(src[2])}
	if v.LenSqr() < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}

func toSnorm8(v float32) byte {
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	return byte(math32.Round((v*0.5 + 0.5) * 255))
}

func fromSnorm8(b byte) float32 {
	return float32(b)/255*2 - 1
}

func signNotZero(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// octEncode maps a unit vector onto an octahedron unfolded into a square,
// quantized to one byte per component.
func octEncode(n mgl32.Vec3) (byte, byte) {
	l1 := math32.Abs(n[0]) + math32.Abs(n[1]) + math32.Abs(n[2])
	if l1 < 1e-12 {
		// Degenerate input, encode +Y.
		n = mgl32.Vec3{0, 1, 0}
		l1 = 1
	}
	u := n[0] / l1
	v := n[1] / l1
	if n[2] < 0 {
		u, v = (1-math32.Abs(v))*signNotZero(u), (1-math32.Abs(u))*signNotZero(v)
	}
	return toSnorm8(u), toSnorm8(v)
}

// octDecode inverts octEncode up to quantization error.
func octDecode(bu, bv byte) mgl32.Vec3 {
	u := fromSnorm8(bu)
	v := fromSnorm8(bv)
	z := 1 - math32.Abs(u) - math32.Abs(v)
	if z < 0 {
		oldU := u
		u = (1 - math32.Abs(v)) * signNotZero(oldU)
		v = (1 - math32.Abs(oldU)) * signNotZero(v)
	}
	return mgl32.Vec3{u, v, z}.Normalize()
}
