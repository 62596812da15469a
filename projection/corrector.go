package projection

import (
	"math"

	"github.com/milk9111/uiprojector/common"
	"golang.org/x/image/math/f64"
)

// Corrector adjusts a projected screen point before it is converted into
// surface space. Correct is called for every binding every frame and must
// not have side effects.
type Corrector interface {
	Correct(screen f64.Vec3) f64.Vec3
}

// CorrectorFunc adapts a function to Corrector.
type CorrectorFunc func(f64.Vec3) f64.Vec3

func (f CorrectorFunc) Correct(p f64.Vec3) f64.Vec3 { return f(p) }

type identity struct{}

func (identity) Correct(p f64.Vec3) f64.Vec3 { return p }

// Identity leaves points unchanged. It is the default corrector.
var Identity Corrector = identity{}

// Margins are insets from the edges of a bounding rectangle, in pixels.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// RectCorrector keeps points inside a fixed rectangle.
type RectCorrector struct {
	Rect common.Rect
}

func (c RectCorrector) Correct(p f64.Vec3) f64.Vec3 {
	return ClampToRect(p, c.Rect)
}

// ScreenCorrector keeps points inside the screen minus margins.
type ScreenCorrector struct {
	Display Display
	Margins Margins
}

func (c ScreenCorrector) Rect() common.Rect {
	w, h := c.Display.ScreenSize()
	return common.Rect{Width: w, Height: h}.
		Inset(c.Margins.Top, c.Margins.Bottom, c.Margins.Left, c.Margins.Right)
}

func (c ScreenCorrector) Correct(p f64.Vec3) f64.Vec3 {
	return ClampToRect(p, c.Rect())
}

// SafeAreaCorrector keeps points inside the display's safe area minus
// margins.
type SafeAreaCorrector struct {
	Display Display
	Margins Margins
}

func (c SafeAreaCorrector) Rect() common.Rect {
	return c.Display.SafeArea().
		Inset(c.Margins.Top, c.Margins.Bottom, c.Margins.Left, c.Margins.Right)
}

func (c SafeAreaCorrector) Correct(p f64.Vec3) f64.Vec3 {
	return ClampToRect(p, c.Rect())
}

// ClampToRect pulls p onto r along the ray from r's center through p when p
// is outside r or behind the camera (z < 0). Points behind the camera are
// mirrored first, since perspective division flips them. Points already
// inside r are returned unchanged. A corrected point has z = 0.
//
// Infinite coordinates point along their sign. Inputs with no direction
// from the center, including NaN, and rectangles with negative extent
// resolve to the center.
func ClampToRect(p f64.Vec3, r common.Rect) f64.Vec3 {
	behind := p[2] < 0
	if behind {
		p = common.Scale3(p, -1)
	}
	if !behind && r.Contains(common.XY(p)) {
		return p
	}

	center := r.Center()
	if r.Width < 0 || r.Height < 0 {
		return f64.Vec3{center[0], center[1], 0}
	}
	dir, ok := common.Normalize2(direction(common.Sub2(common.XY(p), center)))
	if !ok {
		return f64.Vec3{center[0], center[1], 0}
	}

	scale := math.Min(axisScale(r.Width*0.5, dir[0]), axisScale(r.Height*0.5, dir[1]))
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		return f64.Vec3{center[0], center[1], 0}
	}
	out := common.Add2(center, common.Scale2(dir, scale))
	return f64.Vec3{out[0], out[1], 0}
}

// direction keeps only the infinite components of d, as unit signs, when
// any are present.
func direction(d f64.Vec2) f64.Vec2 {
	if !math.IsInf(d[0], 0) && !math.IsInf(d[1], 0) {
		return d
	}
	var out f64.Vec2
	for i, v := range d {
		if math.IsInf(v, 0) {
			out[i] = math.Copysign(1, v)
		}
	}
	return out
}

// axisScale is how far along dir the center may travel before crossing
// the half extent on one axis. A zero component never crosses.
func axisScale(half, d float64) float64 {
	if d == 0 {
		return math.Inf(1)
	}
	return math.Abs(half / d)
}
