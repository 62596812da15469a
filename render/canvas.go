package render

import (
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/uiprojector/projection"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const labelPadding = 3

// Canvas owns labels and draws them surface by surface.
type Canvas struct {
	display *Display
	face    ebtext.Face
	labels  []*Label

	// Debug strokes each surface's bounds and the safe area.
	Debug bool
}

func NewCanvas(display *Display) *Canvas {
	return &Canvas{
		display: display,
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
	}
}

// NewLabel creates an inactive, unparented label.
func (c *Canvas) NewLabel(text string, clr color.Color) *Label {
	l := &Label{canvas: c, Text: text, Color: clr, scale: f64One}
	c.labels = append(c.labels, l)
	return l
}

func (c *Canvas) remove(l *Label) {
	if i := slices.Index(c.labels, l); i >= 0 {
		c.labels = slices.Delete(c.labels, i, i+1)
	}
}

// Len returns the number of labels owned by the canvas.
func (c *Canvas) Len() int {
	return len(c.labels)
}

// Visible returns the labels parented under root that would be drawn, in
// creation order.
func (c *Canvas) Visible(root *projection.Root) []*Label {
	var out []*Label
	for _, l := range c.labels {
		if l.parent != root {
			continue
		}
		if _, ok := l.ScreenPosition(); ok {
			out = append(out, l)
		}
	}
	return out
}

// Draw renders roots back to front.
func (c *Canvas) Draw(screen *ebiten.Image, roots []*projection.Root) {
	for _, root := range roots {
		if c.Debug {
			c.drawBounds(screen, root)
		}
		for _, l := range c.Visible(root) {
			c.drawLabel(screen, l, root.PixelPerfect())
		}
	}
	if c.Debug {
		x, y, w, h := c.display.RectToImage(c.display.SafeArea())
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colornames.Orange, false)
	}
}

func (c *Canvas) drawBounds(screen *ebiten.Image, root *projection.Root) {
	x, y, w, h := c.display.RectToImage(root.Rect())
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colornames.Lightgrey, false)
}

func (c *Canvas) drawLabel(screen *ebiten.Image, l *Label, pixelPerfect bool) {
	pos, _ := l.ScreenPosition()
	x, y := c.display.ToImage(pos[0], pos[1])
	scale := l.PixelScale()
	if scale <= 0 {
		return
	}

	tw, th := ebtext.Measure(l.Text, c.face, 0)
	w := (tw + 2*labelPadding) * scale
	h := (th + 2*labelPadding) * scale
	left := x - w/2
	top := y - h/2
	if pixelPerfect {
		left = math.Round(left)
		top = math.Round(top)
	}

	vector.FillRect(screen, float32(left), float32(top), float32(w), float32(h), color.RGBA{A: 160}, false)
	vector.StrokeRect(screen, float32(left), float32(top), float32(w), float32(h), 1, l.Color, false)

	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(left+labelPadding*scale, top+labelPadding*scale)
	op.ColorScale.ScaleWithColor(l.Color)
	ebtext.Draw(screen, l.Text, c.face, op)
}
