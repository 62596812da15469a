package projection

import (
	"cmp"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

const defaultSurfaceName = "Default"

// Service is the directory of surfaces. It allocates surface and binding
// ids, routes binding operations to the owning surface and runs the
// per-frame projection pass when the host calls Update.
//
// A Service is not safe for concurrent use. Hosts that mutate it from more
// than one goroutine must serialize access.
type Service struct {
	logger  *zap.Logger
	display Display
	primary Camera

	surfaces    map[SurfaceID]*surface
	defaultID   SurfaceID
	nextSurface SurfaceID
	nextBinding BindingID
	closed      bool
}

// Option configures a Service.
type Option func(*serviceConfig)

type serviceConfig struct {
	logger      *zap.Logger
	display     Display
	primary     Camera
	defaultTmpl *Template
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *serviceConfig) { c.logger = l }
}

// WithDisplay sets the screen geometry source. The default is a 1920x1080
// StaticDisplay.
func WithDisplay(d Display) Option {
	return func(c *serviceConfig) { c.display = d }
}

// WithPrimaryCamera sets the camera used when a surface is created without
// one, including the default surface.
func WithPrimaryCamera(cam Camera) Option {
	return func(c *serviceConfig) { c.primary = cam }
}

// WithDefaultTemplate overrides the template of the default surface.
func WithDefaultTemplate(t Template) Option {
	return func(c *serviceConfig) { c.defaultTmpl = &t }
}

// NewService creates a Service and its default surface.
func NewService(opts ...Option) (*Service, error) {
	cfg := serviceConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.display == nil {
		cfg.display = StaticDisplay{Width: 1920, Height: 1080}
	}

	s := &Service{
		logger:   cfg.logger,
		display:  cfg.display,
		primary:  cfg.primary,
		surfaces: make(map[SurfaceID]*surface),
	}

	tmpl := s.defaultTemplate()
	if cfg.defaultTmpl != nil {
		tmpl = *cfg.defaultTmpl
	}
	id, err := s.createSurface(tmpl, nil)
	if err != nil {
		return nil, fmt.Errorf("projection: create default surface: %w", err)
	}
	s.defaultID = id
	return s, nil
}

// defaultTemplate is an overlay whose reference resolution is the screen
// size at startup.
func (s *Service) defaultTemplate() Template {
	w, h := s.display.ScreenSize()
	return Template{
		Name:            defaultSurfaceName,
		RenderMode:      Overlay,
		ReferenceWidth:  w,
		ReferenceHeight: h,
	}
}

// CreateSurface clones tmpl into a new surface that projects through cam.
// A nil cam selects the primary camera.
func (s *Service) CreateSurface(tmpl Template, cam Camera) (SurfaceHandle, error) {
	if s.closed {
		return SurfaceHandle{}, ErrClosed
	}
	id, err := s.createSurface(tmpl, cam)
	if err != nil {
		return SurfaceHandle{}, err
	}
	return SurfaceHandle{svc: s, id: id}, nil
}

func (s *Service) createSurface(tmpl Template, cam Camera) (SurfaceID, error) {
	if cam == nil {
		cam = s.primary
	}
	if cam == nil {
		return 0, fmt.Errorf("%w: surface %q", ErrNoCamera, tmpl.Name)
	}

	id := s.nextSurface
	surf, err := newSurface(id, tmpl.Clone(), cam, s.display, s.logger)
	if err != nil {
		return 0, err
	}
	s.nextSurface++
	s.surfaces[id] = surf

	s.logger.Debug("surface created",
		zap.Stringer("surface", id),
		zap.String("name", tmpl.Name),
		zap.Stringer("mode", tmpl.RenderMode))
	return id, nil
}

func (s *Service) lookup(id SurfaceID) (*surface, error) {
	if s.closed {
		return nil, ErrClosed
	}
	surf, ok := s.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSurfaceNotFound, id)
	}
	return surf, nil
}

// AddUI binds el to target on the given surface.
func (s *Service) AddUI(id SurfaceID, el Element, target Target, opts ...BindingOption) (BindingID, error) {
	surf, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	if el == nil {
		return 0, ErrNilElement
	}
	if target == nil {
		return 0, ErrNilTarget
	}
	if surf.dying {
		return 0, fmt.Errorf("%w: %s is being destroyed", ErrSurfaceNotFound, id)
	}

	bid := s.nextBinding
	s.nextBinding++
	surf.add(bid, newBinding(el, target, opts))
	return bid, nil
}

// ReleaseUI releases one binding. Releasing a binding that is already gone
// only logs a warning.
func (s *Service) ReleaseUI(id SurfaceID, bid BindingID) error {
	surf, err := s.lookup(id)
	if err != nil {
		return err
	}
	surf.release(bid)
	return nil
}

// ClearSurface releases every binding on a surface.
func (s *Service) ClearSurface(id SurfaceID) error {
	surf, err := s.lookup(id)
	if err != nil {
		return err
	}
	surf.clear()
	return nil
}

// DestroySurface releases every binding on a surface and then removes it.
// The id is never valid again.
func (s *Service) DestroySurface(id SurfaceID) error {
	surf, err := s.lookup(id)
	if err != nil {
		return err
	}
	if id == s.defaultID {
		return ErrDefaultSurface
	}
	s.destroy(surf)
	return nil
}

func (s *Service) destroy(surf *surface) {
	surf.dying = true
	n := surf.clear()
	// a release action may have destroyed it already
	if s.surfaces[surf.id] != surf {
		return
	}
	delete(s.surfaces, surf.id)
	surf.root.live = false
	s.logger.Debug("surface destroyed",
		zap.Stringer("surface", surf.id),
		zap.Int("released", n))
}

func (s *Service) IsValidSurface(id SurfaceID) bool {
	if s == nil || s.closed {
		return false
	}
	_, ok := s.surfaces[id]
	return ok
}

func (s *Service) IsValidUI(id SurfaceID, bid BindingID) bool {
	if s == nil || s.closed {
		return false
	}
	surf, ok := s.surfaces[id]
	if !ok {
		return false
	}
	return surf.has(bid)
}

// BindingCount reports the number of live bindings on a surface.
func (s *Service) BindingCount(id SurfaceID) (int, error) {
	surf, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return surf.len(), nil
}

func (s *Service) SortingOrder(id SurfaceID) (int, error) {
	surf, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return surf.root.sortingOrder, nil
}

func (s *Service) SetSortingOrder(id SurfaceID, order int) error {
	surf, err := s.lookup(id)
	if err != nil {
		return err
	}
	surf.root.sortingOrder = order
	return nil
}

// Root returns the root node of a surface.
func (s *Service) Root(id SurfaceID) (*Root, error) {
	surf, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return surf.root, nil
}

// Roots returns the live surface roots in compositing order: ascending
// sorting order, ties broken by id.
func (s *Service) Roots() []*Root {
	if s.closed {
		return nil
	}
	roots := make([]*Root, 0, len(s.surfaces))
	for _, surf := range s.surfaces {
		roots = append(roots, surf.root)
	}
	slices.SortFunc(roots, func(a, b *Root) int {
		if c := cmp.Compare(a.sortingOrder, b.sortingOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return roots
}

// Update runs one projection pass over every surface. Hosts call it once
// per frame after game state has been updated and before drawing.
func (s *Service) Update() {
	if s.closed {
		return
	}
	for _, id := range s.surfaceIDs() {
		surf, ok := s.surfaces[id]
		if !ok {
			continue
		}
		if n := surf.lateUpdate(); n > 0 {
			s.logger.Debug("released bindings with dead targets",
				zap.Stringer("surface", id),
				zap.Int("count", n))
		}
	}
}

// ApplyTemplate pushes a changed template to every live surface created
// from a template with the given name. A render mode change rebuilds the
// surface's projection. It returns the number of surfaces updated. An
// unsupported render mode is rejected before any surface changes.
func (s *Service) ApplyTemplate(name string, tmpl Template) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if tmpl.RenderMode != Overlay && tmpl.RenderMode != CameraSpace {
		return 0, fmt.Errorf("%w: %s (template %q)", ErrUnsupportedRenderMode, tmpl.RenderMode, name)
	}

	n := 0
	for _, id := range s.surfaceIDs() {
		surf := s.surfaces[id]
		if surf.template.Name != name {
			continue
		}
		if err := surf.reconfigure(tmpl.Clone()); err != nil {
			return n, fmt.Errorf("projection: reconfigure surface %s: %w", id, err)
		}
		n++
	}

	s.logger.Info("template applied",
		zap.String("template", name),
		zap.Stringer("mode", tmpl.RenderMode),
		zap.Int("surfaces", n))
	return n, nil
}

// Close destroys every client surface and clears the default surface.
// Afterwards all mutations fail with ErrClosed.
func (s *Service) Close() error {
	if s.closed {
		return nil
	}
	for _, id := range s.surfaceIDs() {
		if surf, ok := s.surfaces[id]; ok && id != s.defaultID {
			s.destroy(surf)
		}
	}
	if def, ok := s.surfaces[s.defaultID]; ok {
		def.dying = true
		def.clear()
		delete(s.surfaces, s.defaultID)
		def.root.live = false
	}
	s.closed = true
	return nil
}

func (s *Service) surfaceIDs() []SurfaceID {
	ids := make([]SurfaceID, 0, len(s.surfaces))
	for id := range s.surfaces {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Default returns the handle of the default surface.
func (s *Service) Default() DefaultSurface {
	return DefaultSurface{h: SurfaceHandle{svc: s, id: s.defaultID}}
}

// AddBinding binds el to target on the default surface.
func (s *Service) AddBinding(el Element, target Target, opts ...BindingOption) (BindingHandle, error) {
	return s.Default().AddBinding(el, target, opts...)
}

// ClearDefault releases every binding on the default surface.
func (s *Service) ClearDefault() error {
	return s.ClearSurface(s.defaultID)
}
