package main

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/uiprojector/camera"
	"github.com/milk9111/uiprojector/common"
	"github.com/milk9111/uiprojector/config"
	"github.com/milk9111/uiprojector/projection"
	"github.com/milk9111/uiprojector/render"
	"github.com/milk9111/uiprojector/scene"
	"golang.org/x/image/math/f64"
)

type fakeKeys struct {
	pressed map[ebiten.Key]bool
	just    map[ebiten.Key]bool
}

func (k fakeKeys) Pressed(key ebiten.Key) bool     { return k.pressed[key] }
func (k fakeKeys) JustPressed(key ebiten.Key) bool { return k.just[key] }

func TestObjectProvider(t *testing.T) {
	w := scene.NewWorld()
	p := NewObjectProvider(w, 50, 10, 0, 7)

	if got := len(p.Objects()); got != 50 {
		t.Fatalf("expected 50 objects, got %d", got)
	}
	for _, e := range p.Objects() {
		pos := w.Transform(e).Position
		if d := math.Sqrt(common.Dot3(pos, pos)); d > 10+1e-9 {
			t.Fatalf("object %s outside the sphere at distance %v", e, d)
		}
	}

	for _, e := range p.Objects() {
		w.DestroyEntity(e)
	}
	if _, ok := p.GetRandom(); ok {
		t.Fatalf("expected no object once all are destroyed")
	}
}

func TestCameraController(t *testing.T) {
	cam := camera.NewPerspective(math.Pi/3, 800, 600)
	keys := fakeKeys{pressed: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
	ctrl := NewCameraController(cam, keys)

	keys.pressed[ebiten.KeyW] = true
	ctrl.Update(0.5)
	if !near(cam.Position[2], moveSpeed*0.5) {
		t.Fatalf("expected to fly forward, at %v", cam.Position)
	}

	keys.pressed[ebiten.KeyW] = false
	keys.pressed[ebiten.KeyArrowRight] = true
	ctrl.Update(0.5)
	if !near(cam.Yaw, rotationSpeed*0.5) {
		t.Fatalf("expected yaw %v, got %v", rotationSpeed*0.5, cam.Yaw)
	}

	keys.pressed[ebiten.KeyArrowRight] = false
	keys.just[ebiten.KeyR] = true
	ctrl.Update(0.5)
	if cam.Position != (f64.Vec3{}) || cam.Yaw != 0 || ctrl.Distance() != 0 {
		t.Fatalf("expected reset, got pos %v yaw %v", cam.Position, cam.Yaw)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

type straightCamera struct{}

func (straightCamera) WorldToScreen(p f64.Vec3) f64.Vec3 {
	return f64.Vec3{p[0] + 400, p[1] + 300, 10}
}

func newTestEmitter(t *testing.T, mutate func(*config.Config)) (*Emitter, *projection.Service, *scene.World) {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Objects = 5
	if mutate != nil {
		mutate(&cfg)
	}

	display := render.NewDisplay(800, 600, cfg.SafeArea())
	svc, err := projection.NewService(
		projection.WithDisplay(display),
		projection.WithPrimaryCamera(straightCamera{}),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	world := scene.NewWorld()
	em, err := NewEmitter(cfg, EmitterDeps{
		Service:  svc,
		Canvas:   render.NewCanvas(display),
		Display:  display,
		Provider: NewObjectProvider(world, cfg.Objects, 5, 0, 1),
		World:    world,
	})
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	return em, svc, world
}

func TestEmitterEmitAndRelease(t *testing.T) {
	for _, usePool := range []bool{true, false} {
		name := "pooled"
		if !usePool {
			name = "unpooled"
		}
		t.Run(name, func(t *testing.T) {
			em, svc, _ := newTestEmitter(t, func(c *config.Config) { c.UsePool = usePool })
			for i := 0; i < 3; i++ {
				if err := em.Emit(); err != nil {
					t.Fatalf("Emit: %v", err)
				}
			}
			svc.Update()
			if em.Count() != 3 {
				t.Fatalf("expected 3 bindings, got %d", em.Count())
			}

			if err := em.Release(); err != nil {
				t.Fatalf("Release: %v", err)
			}
			if em.Count() != 2 {
				t.Fatalf("expected 2 bindings after release, got %d", em.Count())
			}
			if usePool && em.labels.CountActive() != 2 {
				t.Fatalf("expected released label back in the pool, %d active", em.labels.CountActive())
			}

			if err := em.ReleaseAll(); err != nil {
				t.Fatalf("ReleaseAll: %v", err)
			}
			if em.Count() != 0 {
				t.Fatalf("expected empty surface, got %d", em.Count())
			}
			if err := em.Release(); err != nil {
				t.Fatalf("Release on empty stack: %v", err)
			}
		})
	}
}

func TestEmitterSkipsBindingsOfDeadObjects(t *testing.T) {
	em, svc, world := newTestEmitter(t, func(c *config.Config) { c.Objects = 1 })
	if err := em.Emit(); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	for _, e := range em.provider.Objects() {
		world.DestroyEntity(e)
	}
	svc.Update()
	if em.Count() != 0 {
		t.Fatalf("expected binding of a dead object to be dropped")
	}
	if err := em.Release(); err != nil {
		t.Fatalf("Release should skip stale handles: %v", err)
	}
	if err := em.Emit(); err == nil {
		t.Fatalf("expected emit to fail without live objects")
	}
}

func TestEmitterToggleMode(t *testing.T) {
	em, svc, _ := newTestEmitter(t, nil)
	if em.Template().RenderMode != projection.Overlay {
		t.Fatalf("expected overlay template")
	}
	if err := em.ToggleMode(); err != nil {
		t.Fatalf("ToggleMode: %v", err)
	}
	root, err := svc.Root(em.surface.ID())
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if root.Mode() != projection.CameraSpace {
		t.Fatalf("expected camera space after toggle, got %s", root.Mode())
	}

	other := em.Template()
	other.Name = "unrelated"
	other.SortingOrder = 99
	if err := em.ApplyTemplate(other); err != nil {
		t.Fatalf("ApplyTemplate: %v", err)
	}
	if root.SortingOrder() == 99 {
		t.Fatalf("template with another name must not touch the surface")
	}
}

func TestEmitterScriptCorrector(t *testing.T) {
	em, svc, _ := newTestEmitter(t, func(c *config.Config) {
		c.Correction = config.CorrectScript
		c.Script = "snap"
		c.ScreenOffset = []float64{0.6, 0.6}
	})
	if err := em.Emit(); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	svc.Update()
	if err := em.ReloadCorrector(); err != nil {
		t.Fatalf("ReloadCorrector: %v", err)
	}
	if em.corrector.inner == nil || em.Count() != 1 {
		t.Fatalf("expected the binding to survive a corrector reload")
	}
}
