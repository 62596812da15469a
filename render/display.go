package render

import (
	"math"

	"github.com/milk9111/uiprojector/common"
	"github.com/milk9111/uiprojector/projection"
)

// Display tracks the game's logical screen size. Screen space is y-up with
// the origin at the bottom-left corner.
type Display struct {
	width, height float64
	// Insets simulate a display with an unsafe border.
	Insets projection.Margins
}

func NewDisplay(width, height int, insets projection.Margins) *Display {
	return &Display{width: float64(width), height: float64(height), Insets: insets}
}

// Resize is called from the game's Layout.
func (d *Display) Resize(width, height int) {
	d.width = float64(width)
	d.height = float64(height)
}

func (d *Display) ScreenSize() (float64, float64) {
	return d.width, d.height
}

func (d *Display) SafeArea() common.Rect {
	r := common.Rect{Width: d.width, Height: d.height}.Inset(d.Insets.Top, d.Insets.Bottom, d.Insets.Left, d.Insets.Right)
	r.Width = math.Max(0, r.Width)
	r.Height = math.Max(0, r.Height)
	return r
}

// ToImage converts a y-up screen point to ebiten image coordinates.
func (d *Display) ToImage(x, y float64) (float64, float64) {
	return x, d.height - y
}

// RectToImage converts a y-up rectangle to the image-space top-left corner
// and size.
func (d *Display) RectToImage(r common.Rect) (x, y, w, h float64) {
	return r.X, d.height - r.MaxY(), r.Width, r.Height
}
