package render

import (
	"image/color"

	"github.com/milk9111/uiprojector/projection"
	"golang.org/x/image/math/f64"
)

var f64One = f64.Vec3{1, 1, 1}

// Label is a text badge that implements projection.Element. It is only
// drawn while active and parented under a live surface.
type Label struct {
	canvas *Canvas

	Text  string
	Color color.Color

	active   bool
	parent   *projection.Root
	scale    f64.Vec3
	anchored f64.Vec2
	local    f64.Vec3
}

func (l *Label) SetParent(r *projection.Root) {
	l.parent = r
}

func (l *Label) Parent() *projection.Root {
	return l.parent
}

func (l *Label) LocalScale() f64.Vec3 {
	return l.scale
}

func (l *Label) SetLocalScale(s f64.Vec3) {
	l.scale = s
}

func (l *Label) SetAnchoredPosition(p f64.Vec2) {
	l.anchored = p
}

func (l *Label) SetLocalPosition(p f64.Vec3) {
	l.local = p
}

func (l *Label) SetActive(active bool) {
	l.active = active
}

func (l *Label) Active() bool {
	return l.active
}

// Destroy removes the label from its canvas for good.
func (l *Label) Destroy() {
	l.active = false
	l.parent = nil
	if l.canvas != nil {
		l.canvas.remove(l)
		l.canvas = nil
	}
}

// ScreenPosition returns the label's y-up screen position and whether it
// should be drawn at all.
func (l *Label) ScreenPosition() (f64.Vec2, bool) {
	if !l.active || !l.parent.Live() {
		return f64.Vec2{}, false
	}
	local := l.anchored
	if l.parent.Mode() == projection.CameraSpace {
		local = f64.Vec2{l.local[0], l.local[1]}
	}
	return l.parent.LocalToScreen(local), true
}

// PixelScale is the label's size multiplier on screen.
func (l *Label) PixelScale() float64 {
	if l.parent == nil {
		return l.scale[0]
	}
	return l.scale[0] * l.parent.ScaleFactor()
}
