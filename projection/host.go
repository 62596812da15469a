package projection

import (
	"github.com/milk9111/uiprojector/common"
	"golang.org/x/image/math/f64"
)

// Camera projects world points onto the screen. The returned x and y are
// screen pixels (origin bottom-left, y up) and z is the signed depth along
// the camera's forward axis; z < 0 means the point is behind the camera.
type Camera interface {
	WorldToScreen(world f64.Vec3) f64.Vec3
}

// Viewporter is implemented by cameras that render into a sub-rectangle of
// the screen. Camera-space surfaces convert relative to this rectangle.
type Viewporter interface {
	Viewport() common.Rect
}

// Target is a 3D object a UI element follows. Targets are owned by the
// host and may die at any time.
type Target interface {
	Alive() bool
	WorldPosition() f64.Vec3
}

// Element is a 2D UI element positioned by a surface.
type Element interface {
	// SetParent moves the element under root. A nil root detaches it.
	SetParent(root *Root)
	LocalScale() f64.Vec3
	SetLocalScale(scale f64.Vec3)
	// SetAnchoredPosition is written by overlay surfaces.
	SetAnchoredPosition(pos f64.Vec2)
	// SetLocalPosition is written by camera-space surfaces.
	SetLocalPosition(pos f64.Vec3)
}

// Destroyer is implemented by elements that own resources. The default
// release action calls Destroy.
type Destroyer interface {
	Destroy()
}

// Display reports the current screen geometry.
type Display interface {
	ScreenSize() (width, height float64)
	// SafeArea is the part of the screen not covered by notches or cutouts.
	SafeArea() common.Rect
}

// StaticDisplay is a fixed-size Display. A zero Safe rectangle means the
// whole screen is safe.
type StaticDisplay struct {
	Width, Height float64
	Safe          common.Rect
}

func (d StaticDisplay) ScreenSize() (float64, float64) {
	return d.Width, d.Height
}

func (d StaticDisplay) SafeArea() common.Rect {
	if d.Safe == (common.Rect{}) {
		return common.Rect{Width: d.Width, Height: d.Height}
	}
	return d.Safe
}

// ReleaseFunc receives an element back when its binding is released.
type ReleaseFunc func(Element)

func destroyElement(el Element) {
	if d, ok := el.(Destroyer); ok {
		d.Destroy()
		return
	}
	el.SetParent(nil)
}
