package projection

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// surface owns the bindings of one UI root and runs their projection pass.
type surface struct {
	id       SurfaceID
	template Template
	camera   Camera
	root     *Root
	strategy strategy
	bindings map[BindingID]*binding
	logger   *zap.Logger
	// dying is set once teardown starts. No bindings may be added after.
	dying bool
}

func newSurface(id SurfaceID, tmpl Template, cam Camera, display Display, logger *zap.Logger) (*surface, error) {
	if len(tmpl.Children) > 0 {
		logger.Debug("discarding template children",
			zap.String("template", tmpl.Name),
			zap.Int("count", len(tmpl.Children)))
		tmpl.Children = nil
	}

	root := &Root{id: id, display: display, camera: cam, live: true}
	root.configure(tmpl)
	st, err := newStrategy(tmpl.RenderMode, cam, root)
	if err != nil {
		return nil, err
	}

	return &surface{
		id:       id,
		template: tmpl,
		camera:   cam,
		root:     root,
		strategy: st,
		bindings: make(map[BindingID]*binding),
		logger:   logger.With(zap.Stringer("surface", id)),
	}, nil
}

// reconfigure swaps in a new template, rebuilding the strategy when the
// render mode changed. The surface is untouched on error.
func (s *surface) reconfigure(tmpl Template) error {
	tmpl.Children = nil
	st := s.strategy
	if tmpl.RenderMode != s.template.RenderMode {
		var err error
		if st, err = newStrategy(tmpl.RenderMode, s.camera, s.root); err != nil {
			return err
		}
	}
	s.template = tmpl
	s.root.configure(tmpl)
	s.strategy = st
	return nil
}

// add parents the element under the surface root and starts tracking it.
// The element's local scale survives the reparent.
func (s *surface) add(id BindingID, b *binding) {
	scale := b.element.LocalScale()
	b.element.SetParent(s.root)
	b.element.SetLocalScale(scale)
	s.bindings[id] = b
}

func (s *surface) has(id BindingID) bool {
	_, ok := s.bindings[id]
	return ok
}

func (s *surface) len() int {
	return len(s.bindings)
}

// release drops a binding and hands its element to the release action.
// Unknown ids are logged and ignored.
func (s *surface) release(id BindingID) {
	if !s.remove(id) {
		s.logger.Warn("release of unknown binding", zap.Stringer("binding", id))
	}
}

func (s *surface) remove(id BindingID) bool {
	b, ok := s.bindings[id]
	if !ok {
		return false
	}
	delete(s.bindings, id)
	b.release(b.element)
	return true
}

// clear releases the bindings present when it is called. Bindings a release
// action adds meanwhile stay. It returns the number released.
func (s *surface) clear() int {
	n := 0
	for _, id := range s.ids() {
		// an earlier release action may already have removed it
		if s.remove(id) {
			n++
		}
	}
	return n
}

// ids is a sorted snapshot of the live binding ids.
func (s *surface) ids() []BindingID {
	ids := make([]BindingID, 0, len(s.bindings))
	for id := range s.bindings {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// lateUpdate re-projects every binding. Bindings that fail are released
// once the pass is complete. It returns the number released.
func (s *surface) lateUpdate() int {
	var failed []BindingID
	for _, id := range s.ids() {
		b, ok := s.bindings[id]
		if !ok {
			continue
		}
		if err := s.project(b); err != nil {
			s.logger.Debug("dropping binding",
				zap.Stringer("binding", id),
				zap.Error(err))
			failed = append(failed, id)
		}
	}

	n := 0
	for _, id := range failed {
		if s.remove(id) {
			n++
		}
	}
	return n
}

func (s *surface) project(b *binding) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrProjectionPanic, r)
		}
	}()
	return s.strategy.project(b)
}
