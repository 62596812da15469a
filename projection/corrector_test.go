package projection

import (
	"math"
	"testing"

	"github.com/milk9111/uiprojector/common"
	"golang.org/x/image/math/f64"
)

var fullHD = common.Rect{Width: 1920, Height: 1080}

func onOrInside(p f64.Vec3, r common.Rect) bool {
	return p[0] >= r.X-eps && p[0] <= r.MaxX()+eps &&
		p[1] >= r.Y-eps && p[1] <= r.MaxY()+eps
}

func TestIdentityCorrector(t *testing.T) {
	in := f64.Vec3{-50, 4000, -3}
	if got := Identity.Correct(in); got != in {
		t.Fatalf("identity changed %v to %v", in, got)
	}
}

func TestClampToRectInsideIsUnchanged(t *testing.T) {
	cases := []struct {
		name string
		p    f64.Vec3
	}{
		{"origin", f64.Vec3{0, 0, 1}},
		{"center", f64.Vec3{960, 540, 5}},
		{"near_max", f64.Vec3{1919.5, 1079.5, 0.1}},
		{"zero_depth", f64.Vec3{10, 20, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClampToRect(c.p, fullHD); got != c.p {
				t.Fatalf("expected %v unchanged, got %v", c.p, got)
			}
		})
	}
}

func TestClampToRectRightEdge(t *testing.T) {
	got := ClampToRect(f64.Vec3{2000, 500, 1}, fullHD)
	if !near(got[0], 1920) {
		t.Fatalf("expected x on right edge, got %v", got[0])
	}
	if got[1] < 0 || got[1] > 1080 {
		t.Fatalf("expected y within [0,1080], got %v", got[1])
	}
	// the point slides toward the center along the ray, not straight across
	wantY := 540 - 40*(960.0/1040.0)
	if !near(got[1], wantY) {
		t.Fatalf("expected y %v, got %v", wantY, got[1])
	}
}

func TestClampToRectBehindCamera(t *testing.T) {
	// behind the camera the projection is mirrored, so (-100,-100) is
	// really up and to the right of the screen
	got := ClampToRect(f64.Vec3{-100, -100, -1}, fullHD)
	if !onOrInside(got, fullHD) {
		t.Fatalf("expected point inside rect, got %v", got)
	}
	c := fullHD.Center()
	if got[0] >= c[0] || got[1] >= c[1] {
		t.Fatalf("expected mirrored point toward lower left, got %v", got)
	}

	// a point that would be inside the rect still gets pushed to the edge
	got = ClampToRect(f64.Vec3{-1000, -540, -2}, fullHD)
	if !near(got[0], 1920) && !near(got[0], 0) && !near(got[1], 0) && !near(got[1], 1080) {
		t.Fatalf("expected point on the boundary, got %v", got)
	}
}

func TestClampToRectInfiniteInput(t *testing.T) {
	inf := math.Inf(1)
	cases := []struct {
		name string
		p    f64.Vec3
		want f64.Vec2
	}{
		{"pos_inf_x", f64.Vec3{inf, 500, 1}, f64.Vec2{1920, 540}},
		{"neg_inf_x", f64.Vec3{-inf, 500, 1}, f64.Vec2{0, 540}},
		{"pos_inf_y", f64.Vec3{100, inf, 1}, f64.Vec2{960, 1080}},
		{"both_inf", f64.Vec3{inf, -inf, 1}, f64.Vec2{1500, 0}},
		{"behind_inf_x", f64.Vec3{inf, 0, -1}, f64.Vec2{0, 540}},
		{"nan_x", f64.Vec3{math.NaN(), 500, 1}, f64.Vec2{960, 540}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ClampToRect(c.p, fullHD)
			if !near2(common.XY(got), c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if got[2] != 0 {
				t.Fatalf("expected z 0, got %v", got[2])
			}
		})
	}
}

func TestClampToRectDegenerate(t *testing.T) {
	cases := []struct {
		name string
		p    f64.Vec3
		r    common.Rect
		want f64.Vec2
	}{
		{"behind_at_center", f64.Vec3{-960, -540, -1}, fullHD, f64.Vec2{960, 540}},
		{"zero_area_rect", f64.Vec3{500, 500, 1}, common.Rect{X: 10, Y: 10}, f64.Vec2{10, 10}},
		{"zero_width_vertical_dir", f64.Vec3{10, 500, 1}, common.Rect{X: 10, Y: 10, Height: 100}, f64.Vec2{10, 110}},
		{"negative_extent", f64.Vec3{5000, 5000, 1}, common.Rect{Width: -10, Height: 20}, f64.Vec2{-5, 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ClampToRect(c.p, c.r)
			if math.IsNaN(got[0]) || math.IsNaN(got[1]) || math.IsInf(got[0], 0) || math.IsInf(got[1], 0) {
				t.Fatalf("expected finite result, got %v", got)
			}
			if !near2(common.XY(got), c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestClampToRectAlwaysInside(t *testing.T) {
	r := common.Rect{X: 40, Y: 20, Width: 800, Height: 600}
	for x := -2000.0; x <= 2000; x += 137 {
		for y := -1500.0; y <= 1500; y += 111 {
			for _, z := range []float64{-5, 0, 5} {
				p := f64.Vec3{x, y, z}
				if got := ClampToRect(p, r); !onOrInside(got, r) {
					t.Fatalf("ClampToRect(%v) = %v outside %v", p, got, r)
				}
			}
		}
	}
}

func TestScreenAndSafeAreaRects(t *testing.T) {
	display := StaticDisplay{
		Width:  1920,
		Height: 1080,
		Safe:   common.Rect{X: 80, Y: 0, Width: 1760, Height: 1040},
	}
	m := Margins{Top: 10, Bottom: 20, Left: 30, Right: 40}

	screen := ScreenCorrector{Display: display, Margins: m}.Rect()
	if want := (common.Rect{X: 30, Y: 20, Width: 1850, Height: 1050}); screen != want {
		t.Fatalf("screen rect: expected %v, got %v", want, screen)
	}

	safe := SafeAreaCorrector{Display: display, Margins: m}.Rect()
	if want := (common.Rect{X: 110, Y: 20, Width: 1690, Height: 1010}); safe != want {
		t.Fatalf("safe rect: expected %v, got %v", want, safe)
	}

	got := SafeAreaCorrector{Display: display}.Correct(f64.Vec3{10, 520, 1})
	if !near(got[0], 80) {
		t.Fatalf("expected point clamped to safe left edge, got %v", got)
	}
}

func TestStaticDisplayDefaultsSafeAreaToScreen(t *testing.T) {
	d := StaticDisplay{Width: 800, Height: 600}
	if got := d.SafeArea(); got != (common.Rect{Width: 800, Height: 600}) {
		t.Fatalf("unexpected safe area %v", got)
	}
}
