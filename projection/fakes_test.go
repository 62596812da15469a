package projection

import (
	"math"
	"testing"

	"github.com/milk9111/uiprojector/common"
	"golang.org/x/image/math/f64"
)

const eps = 1e-6

// orthoCamera maps world x/y straight onto the screen around a center
// point and reports world z as depth.
type orthoCamera struct {
	center f64.Vec2
}

func (c orthoCamera) WorldToScreen(p f64.Vec3) f64.Vec3 {
	return f64.Vec3{p[0] + c.center[0], p[1] + c.center[1], p[2]}
}

type viewportCamera struct {
	orthoCamera
	rect common.Rect
}

func (c viewportCamera) Viewport() common.Rect { return c.rect }

type panicCamera struct{}

func (panicCamera) WorldToScreen(f64.Vec3) f64.Vec3 { panic("camera destroyed") }

type fakeTarget struct {
	pos   f64.Vec3
	alive bool
}

func newTarget(x, y, z float64) *fakeTarget {
	return &fakeTarget{pos: f64.Vec3{x, y, z}, alive: true}
}

func (t *fakeTarget) Alive() bool             { return t.alive }
func (t *fakeTarget) WorldPosition() f64.Vec3 { return t.pos }

type fakeElement struct {
	parent    *Root
	scale     f64.Vec3
	anchored  f64.Vec2
	local     f64.Vec3
	writes    int
	destroyed int
}

func newElement() *fakeElement {
	return &fakeElement{scale: f64.Vec3{1, 1, 1}}
}

func (e *fakeElement) SetParent(r *Root) {
	e.parent = r
	// reparenting under a scaled root rescales the element
	if r != nil {
		e.scale = f64.Vec3{2, 2, 2}
	}
}
func (e *fakeElement) LocalScale() f64.Vec3           { return e.scale }
func (e *fakeElement) SetLocalScale(s f64.Vec3)       { e.scale = s }
func (e *fakeElement) SetAnchoredPosition(p f64.Vec2) { e.anchored = p; e.writes++ }
func (e *fakeElement) SetLocalPosition(p f64.Vec3)    { e.local = p; e.writes++ }
func (e *fakeElement) Destroy()                       { e.destroyed++ }

var testDisplay = StaticDisplay{Width: 1920, Height: 1080}

func testCamera() orthoCamera {
	return orthoCamera{center: f64.Vec2{960, 540}}
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	base := []Option{WithDisplay(testDisplay), WithPrimaryCamera(testCamera())}
	svc, err := NewService(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func near2(a, b f64.Vec2) bool {
	return near(a[0], b[0]) && near(a[1], b[1])
}

// releaseCounter counts release action invocations per element.
type releaseCounter map[Element]int

func (c releaseCounter) action() ReleaseFunc {
	return func(el Element) { c[el]++ }
}

func (c releaseCounter) total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}
