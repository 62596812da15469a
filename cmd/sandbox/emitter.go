package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/milk9111/uiprojector/config"
	"github.com/milk9111/uiprojector/pool"
	"github.com/milk9111/uiprojector/projection"
	"github.com/milk9111/uiprojector/projection/scripted"
	"github.com/milk9111/uiprojector/render"
	"github.com/milk9111/uiprojector/scene"
	"github.com/milk9111/uiprojector/templates"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f64"
)

var palette = []color.RGBA{
	colornames.Gold,
	colornames.Deepskyblue,
	colornames.Tomato,
	colornames.Mediumspringgreen,
	colornames.Orchid,
}

// Emitter attaches labels to random objects and releases them in reverse
// order.
type Emitter struct {
	svc      *projection.Service
	surface  projection.SurfaceHandle
	template projection.Template
	canvas   *render.Canvas
	provider *ObjectProvider
	world    *scene.World
	logger   *zap.Logger

	labels    *pool.Pool[*render.Label]
	corrector *swapCorrector
	display   projection.Display
	cfg       config.Config

	handles []projection.BindingHandle
	emitted int
}

type EmitterDeps struct {
	Service  *projection.Service
	Canvas   *render.Canvas
	Display  projection.Display
	Provider *ObjectProvider
	World    *scene.World
	Logger   *zap.Logger
}

func NewEmitter(cfg config.Config, deps EmitterDeps) (*Emitter, error) {
	tmpl, err := templates.LoadTemplate(cfg.Template)
	if err != nil {
		return nil, err
	}
	surface, err := deps.Service.CreateSurface(tmpl, nil)
	if err != nil {
		return nil, fmt.Errorf("create surface from %s: %w", tmpl.Name, err)
	}

	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	e := &Emitter{
		svc:      deps.Service,
		surface:  surface,
		template: tmpl,
		canvas:   deps.Canvas,
		provider: deps.Provider,
		world:    deps.World,
		logger:   deps.Logger,
		display:  deps.Display,
		cfg:      cfg,
	}

	inner, err := e.buildCorrector()
	if err != nil {
		_ = surface.Dispose()
		return nil, err
	}
	e.corrector = &swapCorrector{inner: inner}

	if cfg.UsePool {
		e.labels = pool.New(pool.Hooks[*render.Label]{
			New: func() *render.Label {
				return deps.Canvas.NewLabel("", colornames.White)
			},
			OnGet: func(l *render.Label) { l.SetActive(true) },
			OnRelease: func(l *render.Label) {
				l.SetActive(false)
				l.SetParent(nil)
			},
			OnDestroy: func(l *render.Label) { l.Destroy() },
		}, cfg.PoolSize)
		e.labels.Warmup(cfg.PoolSize / 4)
	}
	return e, nil
}

func (e *Emitter) buildCorrector() (projection.Corrector, error) {
	switch e.cfg.Correction {
	case config.CorrectScreen:
		return projection.ScreenCorrector{Display: e.display, Margins: e.cfg.MarginInsets()}, nil
	case config.CorrectSafe:
		return projection.SafeAreaCorrector{Display: e.display, Margins: e.cfg.MarginInsets()}, nil
	case config.CorrectScript:
		src, err := templates.LoadScript(e.cfg.Script)
		if err != nil {
			return nil, fmt.Errorf("load script %s: %w", e.cfg.Script, err)
		}
		return scripted.New(src, e.display, e.logger.Named("script"))
	default:
		return projection.Identity, nil
	}
}

// Emit binds a new label to a random live object.
func (e *Emitter) Emit() error {
	target, ok := e.provider.GetRandom()
	if !ok {
		return errors.New("no live objects to follow")
	}

	label, err := e.newLabel()
	if err != nil {
		return err
	}
	label.Text = target.String()
	label.Color = palette[e.emitted%len(palette)]

	opts := []projection.BindingOption{
		projection.WithWorldOffset(e.cfg.WorldOffsetVec()),
		projection.WithScreenOffset(e.cfg.ScreenOffsetVec()),
		projection.WithCorrector(e.corrector),
	}
	if e.labels != nil {
		opts = append(opts, projection.WithReleaseAction(e.releaseToPool))
	}

	h, err := e.surface.AddBinding(label, e.world.Target(target), opts...)
	if err != nil {
		e.discard(label)
		return err
	}
	e.handles = append(e.handles, h)
	e.emitted++
	return nil
}

// Release drops the most recent live binding. Bindings the service already
// dropped, for example because their object expired, are skipped.
func (e *Emitter) Release() error {
	for len(e.handles) > 0 {
		h := e.handles[len(e.handles)-1]
		e.handles = e.handles[:len(e.handles)-1]
		if !h.IsValid() {
			continue
		}
		return h.Release()
	}
	return nil
}

// ReleaseAll clears the emitter's surface.
func (e *Emitter) ReleaseAll() error {
	e.handles = e.handles[:0]
	return e.surface.ClearAll()
}

// Count returns the number of live bindings on the emitter's surface.
func (e *Emitter) Count() int {
	n, err := e.svc.BindingCount(e.surface.ID())
	if err != nil {
		return 0
	}
	return n
}

// ToggleMode switches the surface between overlay and camera space.
func (e *Emitter) ToggleMode() error {
	tmpl := e.template.Clone()
	if tmpl.RenderMode == projection.Overlay {
		tmpl.RenderMode = projection.CameraSpace
	} else {
		tmpl.RenderMode = projection.Overlay
	}
	return e.ApplyTemplate(tmpl)
}

// ApplyTemplate pushes an edited version of the emitter's template.
func (e *Emitter) ApplyTemplate(tmpl projection.Template) error {
	if tmpl.Name != e.template.Name {
		return nil
	}
	if _, err := e.svc.ApplyTemplate(tmpl.Name, tmpl); err != nil {
		return err
	}
	e.template = tmpl
	return nil
}

// ReloadCorrector rebuilds the corrector from the current configuration.
// Live bindings pick it up on the next frame.
func (e *Emitter) ReloadCorrector() error {
	inner, err := e.buildCorrector()
	if err != nil {
		return err
	}
	e.corrector.inner = inner
	return nil
}

func (e *Emitter) Template() projection.Template {
	return e.template
}

func (e *Emitter) Close() error {
	err := e.surface.Dispose()
	if e.labels != nil {
		e.labels.Dispose()
	}
	return err
}

func (e *Emitter) newLabel() (*render.Label, error) {
	if e.labels == nil {
		l := e.canvas.NewLabel("", colornames.White)
		l.SetActive(true)
		return l, nil
	}
	return e.labels.Get()
}

func (e *Emitter) discard(l *render.Label) {
	if e.labels == nil {
		l.Destroy()
		return
	}
	e.releaseToPool(l)
}

func (e *Emitter) releaseToPool(el projection.Element) {
	l, ok := el.(*render.Label)
	if !ok {
		return
	}
	if err := e.labels.Release(l); err != nil {
		e.logger.Warn("label pool release failed", zap.Error(err))
	}
}

// swapCorrector lets a live binding's corrector be replaced on reload.
type swapCorrector struct {
	inner projection.Corrector
}

func (c *swapCorrector) Correct(p f64.Vec3) f64.Vec3 {
	return c.inner.Correct(p)
}
