package common

import (
	"math"

	"golang.org/x/image/math/f64"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Add3 returns a+b.
func Add3(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a-b.
func Sub3(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale3 returns v*s.
func Scale3(v f64.Vec3, s float64) f64.Vec3 {
	return f64.Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func Dot3(a, b f64.Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross3(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Add2 returns a+b.
func Add2(a, b f64.Vec2) f64.Vec2 {
	return f64.Vec2{a[0] + b[0], a[1] + b[1]}
}

// Sub2 returns a-b.
func Sub2(a, b f64.Vec2) f64.Vec2 {
	return f64.Vec2{a[0] - b[0], a[1] - b[1]}
}

// Scale2 returns v*s.
func Scale2(v f64.Vec2, s float64) f64.Vec2 {
	return f64.Vec2{v[0] * s, v[1] * s}
}

func Length2(v f64.Vec2) float64 {
	return math.Hypot(v[0], v[1])
}

// Normalize2 returns v scaled to unit length. A zero vector has no
// direction and is returned unchanged.
func Normalize2(v f64.Vec2) (f64.Vec2, bool) {
	l := Length2(v)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return f64.Vec2{}, false
	}
	return f64.Vec2{v[0] / l, v[1] / l}, true
}

// XY drops the z component.
func XY(v f64.Vec3) f64.Vec2 {
	return f64.Vec2{v[0], v[1]}
}
