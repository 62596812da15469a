package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/uiprojector/camera"
	"github.com/milk9111/uiprojector/config"
	"github.com/milk9111/uiprojector/projection"
	"github.com/milk9111/uiprojector/render"
	"github.com/milk9111/uiprojector/scene"
	"github.com/milk9111/uiprojector/templates"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f64"
)

const (
	fieldOfView = math.Pi / 3
	objectSize  = 40.0 // pixels at one unit of depth
)

type Game struct {
	cfg    config.Config
	logger *zap.Logger
	frames int
	debug  bool

	display    *render.Display
	cam        *camera.Perspective
	controller *CameraController

	world    *scene.World
	sched    *scene.Scheduler
	provider *ObjectProvider

	svc     *projection.Service
	canvas  *render.Canvas
	emitter *Emitter
	ui      *ebitenui.UI
	watcher *templates.Watcher
}

func NewGame(cfg config.Config, logger *zap.Logger) (*Game, error) {
	display := render.NewDisplay(cfg.WindowWidth, cfg.WindowHeight, cfg.SafeArea())

	cam := camera.NewPerspective(fieldOfView, float64(cfg.WindowWidth), float64(cfg.WindowHeight))
	cam.Position = f64.Vec3{0, 0, -cfg.Radius * 2.5}

	svc, err := projection.NewService(
		projection.WithLogger(logger.Named("projection")),
		projection.WithDisplay(display),
		projection.WithPrimaryCamera(cam),
	)
	if err != nil {
		return nil, err
	}

	world := scene.NewWorld()
	provider := NewObjectProvider(world, cfg.Objects, cfg.Radius, cfg.ObjectTTL, cfg.Seed)

	sched := scene.NewScheduler(scene.NewTTLSystem())
	// projection runs after everything that moves or kills targets
	sched.AddLate(scene.SystemFunc(func(*scene.World) { svc.Update() }))

	canvas := render.NewCanvas(display)
	canvas.Debug = cfg.Debug

	emitter, err := NewEmitter(cfg, EmitterDeps{
		Service:  svc,
		Canvas:   canvas,
		Display:  display,
		Provider: provider,
		World:    world,
		Logger:   logger.Named("emitter"),
	})
	if err != nil {
		_ = svc.Close()
		return nil, err
	}

	g := &Game{
		cfg:        cfg,
		logger:     logger,
		debug:      cfg.Debug,
		display:    display,
		cam:        cam,
		controller: NewCameraController(cam, nil),
		world:      world,
		sched:      sched,
		provider:   provider,
		svc:        svc,
		canvas:     canvas,
		emitter:    emitter,
	}
	g.ui = NewHUD(g)

	if cfg.Watch {
		g.watcher = g.startWatcher()
	}
	return g, nil
}

func (g *Game) startWatcher() *templates.Watcher {
	dirs := []string{g.cfg.TemplatesDir, filepath.Join(g.cfg.TemplatesDir, "scripts")}
	var existing []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			existing = append(existing, dir)
		}
	}
	if len(existing) == 0 {
		g.logger.Info("template hot reload disabled, no templates directory", zap.String("dir", g.cfg.TemplatesDir))
		return nil
	}
	w, err := templates.NewWatcher(existing...)
	if err != nil {
		g.logger.Warn("template watcher failed to start", zap.Error(err))
		return nil
	}
	g.logger.Info("watching templates", zap.Strings("dirs", existing))
	return w
}

func (g *Game) Update() error {
	g.frames++
	dt := 1 / float64(ebiten.TPS())

	g.controller.Update(dt)
	g.handleKeys()
	g.reload()
	g.ui.Update()
	g.sched.Update(g.world)
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.emit(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.release()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.releaseAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.toggleMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.debug = !g.debug
		g.canvas.Debug = g.debug
	}
}

func (g *Game) emit(n int) {
	for i := 0; i < n; i++ {
		if err := g.emitter.Emit(); err != nil {
			g.logger.Warn("emit failed", zap.Error(err))
			return
		}
	}
}

func (g *Game) release() {
	if err := g.emitter.Release(); err != nil {
		g.logger.Warn("release failed", zap.Error(err))
	}
}

func (g *Game) releaseAll() {
	if err := g.emitter.ReleaseAll(); err != nil {
		g.logger.Warn("release all failed", zap.Error(err))
	}
}

func (g *Game) toggleMode() {
	if err := g.emitter.ToggleMode(); err != nil {
		g.logger.Warn("toggle render mode failed", zap.Error(err))
	}
}

// reload applies template and script edits picked up by the watcher.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("template watcher error", zap.Error(err))
		}
	default:
	}

	for _, path := range g.watcher.Drain() {
		switch {
		case templates.IsScriptFile(path):
			if g.cfg.Correction != config.CorrectScript || templates.BaseName(path) != templates.BaseName(g.cfg.Script) {
				continue
			}
			if err := g.emitter.ReloadCorrector(); err != nil {
				g.logger.Warn("script reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			g.logger.Info("script reloaded", zap.String("path", path))
		case templates.IsTemplateFile(path):
			tmpl, err := templates.LoadTemplate(templates.BaseName(path))
			if err != nil {
				g.logger.Warn("template reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			if err := g.emitter.ApplyTemplate(tmpl); err != nil {
				g.logger.Warn("template apply failed", zap.String("path", path), zap.Error(err))
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x18, G: 0x1c, B: 0x24, A: 0xff})
	g.drawObjects(screen)
	g.canvas.Draw(screen, g.svc.Roots())
	g.ui.Draw(screen)

	tmpl := g.emitter.Template()
	msg := fmt.Sprintf("FPS: %.1f  objects: %d  labels: %d  surface: %s (%s)  correction: %s\n"+
		"WASD/QE move, arrows turn, R reset, Space emit, Backspace release, C clear, M mode, F1 debug",
		ebiten.ActualFPS(), len(g.provider.Objects()), g.emitter.Count(), tmpl.Name, tmpl.RenderMode, g.cfg.Correction)
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) drawObjects(screen *ebiten.Image) {
	for _, e := range g.provider.Objects() {
		t := g.world.Transform(e)
		if t == nil {
			continue
		}
		p := g.cam.WorldToScreen(t.Position)
		if p[2] <= 0.1 {
			continue
		}
		size := objectSize * t.Scale / p[2]
		x, y := g.display.ToImage(p[0], p[1])
		vector.FillRect(screen, float32(x-size/2), float32(y-size/2), float32(size), float32(size), colornames.Slategray, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.display.Resize(outsideWidth, outsideHeight)
	g.cam.Rect.Width = float64(outsideWidth)
	g.cam.Rect.Height = float64(outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	errs = append(errs, g.emitter.Close(), g.svc.Close())
	return errors.Join(errs...)
}
