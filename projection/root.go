package projection

import (
	"math"

	"github.com/milk9111/uiprojector/common"
	"golang.org/x/image/math/f64"
)

// Root is the node a surface parents its elements under. It owns the
// conversion between screen pixels and surface-local units. Local space is
// centered on the surface with y up.
type Root struct {
	id           SurfaceID
	name         string
	mode         RenderMode
	sortingOrder int
	pixelPerfect bool

	refW, refH, match float64

	display Display
	camera  Camera
	live    bool
}

func (r *Root) SurfaceID() SurfaceID { return r.id }
func (r *Root) Name() string         { return r.name }
func (r *Root) Mode() RenderMode     { return r.mode }
func (r *Root) SortingOrder() int    { return r.sortingOrder }
func (r *Root) PixelPerfect() bool   { return r.pixelPerfect }

// Live reports whether the surface behind this root still exists.
func (r *Root) Live() bool { return r != nil && r.live }

func (r *Root) configure(t Template) {
	r.name = t.Name
	r.mode = t.RenderMode
	r.sortingOrder = t.SortingOrder
	r.pixelPerfect = t.PixelPerfect
	r.refW = t.ReferenceWidth
	r.refH = t.ReferenceHeight
	r.match = t.MatchWidthOrHeight
}

// Rect is the screen rectangle the surface covers: the camera viewport
// for camera-space surfaces, otherwise the whole screen.
func (r *Root) Rect() common.Rect {
	if r.mode == CameraSpace {
		return r.cameraRect(r.camera)
	}
	return r.screenRect()
}

// ScaleFactor is the number of screen pixels per local unit.
func (r *Root) ScaleFactor() float64 {
	rect := r.Rect()
	return r.scaleFor(rect.Width, rect.Height)
}

// LocalToScreen converts a local position back into screen pixels.
func (r *Root) LocalToScreen(local f64.Vec2) f64.Vec2 {
	rect := r.Rect()
	return common.Add2(rect.Center(), common.Scale2(local, r.scaleFor(rect.Width, rect.Height)))
}

// screenToLocal is the camera-independent conversion used by overlays.
func (r *Root) screenToLocal(screen f64.Vec2) f64.Vec2 {
	return r.toLocal(screen, r.screenRect())
}

// screenToLocalCamera converts relative to cam's viewport.
func (r *Root) screenToLocalCamera(screen f64.Vec2, cam Camera) f64.Vec2 {
	return r.toLocal(screen, r.cameraRect(cam))
}

func (r *Root) toLocal(screen f64.Vec2, rect common.Rect) f64.Vec2 {
	scale := r.scaleFor(rect.Width, rect.Height)
	return common.Scale2(common.Sub2(screen, rect.Center()), 1/scale)
}

func (r *Root) screenRect() common.Rect {
	w, h := r.display.ScreenSize()
	return common.Rect{Width: w, Height: h}
}

func (r *Root) cameraRect(cam Camera) common.Rect {
	if vp, ok := cam.(Viewporter); ok {
		return vp.Viewport()
	}
	return r.screenRect()
}

// scaleFor is scale-with-screen-size: the width and height ratios against
// the reference resolution are blended in log space.
func (r *Root) scaleFor(w, h float64) float64 {
	if r.refW <= 0 || r.refH <= 0 || w <= 0 || h <= 0 {
		return 1
	}
	logW := math.Log2(w / r.refW)
	logH := math.Log2(h / r.refH)
	s := math.Pow(2, common.Lerp(logW, logH, r.match))
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return s
}
