package common

import "golang.org/x/image/math/f64"

// Rect is an axis-aligned rectangle anchored at its minimum corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Center() f64.Vec2 {
	return f64.Vec2{r.X + r.Width*0.5, r.Y + r.Height*0.5}
}

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r. The minimum edges are
// inclusive and the maximum edges exclusive.
func (r Rect) Contains(p f64.Vec2) bool {
	return p[0] >= r.X && p[0] < r.MaxX() &&
		p[1] >= r.Y && p[1] < r.MaxY()
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Inset shrinks r by the given edge amounts. Bottom is the low-y edge.
func (r Rect) Inset(top, bottom, left, right float64) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + bottom,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
}
