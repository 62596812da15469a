// Package camera provides a perspective camera that implements
// projection.Camera.
//
// The world is left-handed with y up: at zero yaw and pitch the camera
// looks down +z with +x to its right.
package camera

import (
	"math"

	"github.com/milk9111/uiprojector/common"
	"golang.org/x/image/math/f64"
)

// minDepth keeps points on the camera plane from dividing by zero.
const minDepth = 1e-6

// Perspective is a pinhole camera. Yaw turns about world +y and positive
// pitch looks down.
type Perspective struct {
	Position f64.Vec3
	Yaw      float64
	Pitch    float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Rect is the pixel viewport the camera renders into.
	Rect common.Rect
}

// NewPerspective returns a camera at the origin covering a width x height
// screen.
func NewPerspective(fov, width, height float64) *Perspective {
	return &Perspective{
		FOV:  fov,
		Rect: common.Rect{Width: width, Height: height},
	}
}

func (c *Perspective) Forward() f64.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)
	return f64.Vec3{sy * cp, -sp, cy * cp}
}

func (c *Perspective) Right() f64.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	return f64.Vec3{cy, 0, -sy}
}

func (c *Perspective) Up() f64.Vec3 {
	return common.Cross3(c.Forward(), c.Right())
}

// Viewport implements projection.Viewporter.
func (c *Perspective) Viewport() common.Rect {
	return c.Rect
}

// WorldToScreen implements projection.Camera. The result's z is the
// distance along the forward axis; points behind the camera come out
// mirrored with negative z.
func (c *Perspective) WorldToScreen(p f64.Vec3) f64.Vec3 {
	d := common.Sub3(p, c.Position)
	x := common.Dot3(d, c.Right())
	y := common.Dot3(d, c.Up())
	z := common.Dot3(d, c.Forward())

	w := z
	if math.Abs(w) < minDepth {
		w = math.Copysign(minDepth, w)
	}

	halfH := math.Tan(c.FOV * 0.5)
	aspect := 1.0
	if c.Rect.Height > 0 {
		aspect = c.Rect.Width / c.Rect.Height
	}
	ndcX := x / (w * halfH * aspect)
	ndcY := y / (w * halfH)

	return f64.Vec3{
		c.Rect.X + (ndcX*0.5+0.5)*c.Rect.Width,
		c.Rect.Y + (ndcY*0.5+0.5)*c.Rect.Height,
		z,
	}
}

// Move translates the camera along its own axes.
func (c *Perspective) Move(right, up, forward float64) {
	c.Position = common.Add3(c.Position, common.Scale3(c.Right(), right))
	c.Position = common.Add3(c.Position, common.Scale3(c.Up(), up))
	c.Position = common.Add3(c.Position, common.Scale3(c.Forward(), forward))
}

// Rotate turns the camera. Pitch is clamped short of straight up or down.
func (c *Perspective) Rotate(yaw, pitch float64) {
	const limit = math.Pi/2 - 0.01
	c.Yaw = math.Mod(c.Yaw+yaw, 2*math.Pi)
	c.Pitch = math.Max(-limit, math.Min(limit, c.Pitch+pitch))
}
