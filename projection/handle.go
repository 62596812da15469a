package projection

// SurfaceHandle refers to a surface by id. Copies refer to the same
// surface. Dropping a handle without disposing it keeps the surface alive.
type SurfaceHandle struct {
	svc *Service
	id  SurfaceID
}

func (h SurfaceHandle) ID() SurfaceID { return h.id }

// IsValid reports whether the surface still exists.
func (h SurfaceHandle) IsValid() bool {
	return h.svc.IsValidSurface(h.id)
}

// AddBinding positions el over target every frame until released.
func (h SurfaceHandle) AddBinding(el Element, target Target, opts ...BindingOption) (BindingHandle, error) {
	if h.svc == nil {
		return BindingHandle{}, ErrSurfaceNotFound
	}
	bid, err := h.svc.AddUI(h.id, el, target, opts...)
	if err != nil {
		return BindingHandle{}, err
	}
	return BindingHandle{svc: h.svc, surface: h.id, id: bid}, nil
}

// ClearAll releases every binding on the surface.
func (h SurfaceHandle) ClearAll() error {
	if h.svc == nil {
		return ErrSurfaceNotFound
	}
	return h.svc.ClearSurface(h.id)
}

// Dispose destroys the surface after releasing its bindings.
func (h SurfaceHandle) Dispose() error {
	if h.svc == nil {
		return ErrSurfaceNotFound
	}
	return h.svc.DestroySurface(h.id)
}

func (h SurfaceHandle) SortingOrder() (int, error) {
	if h.svc == nil {
		return 0, ErrSurfaceNotFound
	}
	return h.svc.SortingOrder(h.id)
}

func (h SurfaceHandle) SetSortingOrder(order int) error {
	if h.svc == nil {
		return ErrSurfaceNotFound
	}
	return h.svc.SetSortingOrder(h.id, order)
}

func (h SurfaceHandle) Root() (*Root, error) {
	if h.svc == nil {
		return nil, ErrSurfaceNotFound
	}
	return h.svc.Root(h.id)
}

// DefaultSurface is the handle of the surface every Service creates at
// startup. It can be cleared but not disposed.
type DefaultSurface struct {
	h SurfaceHandle
}

func (d DefaultSurface) ID() SurfaceID   { return d.h.ID() }
func (d DefaultSurface) IsValid() bool   { return d.h.IsValid() }
func (d DefaultSurface) ClearAll() error { return d.h.ClearAll() }

func (d DefaultSurface) AddBinding(el Element, target Target, opts ...BindingOption) (BindingHandle, error) {
	return d.h.AddBinding(el, target, opts...)
}

func (d DefaultSurface) SortingOrder() (int, error)      { return d.h.SortingOrder() }
func (d DefaultSurface) SetSortingOrder(order int) error { return d.h.SetSortingOrder(order) }
func (d DefaultSurface) Root() (*Root, error)            { return d.h.Root() }

// BindingHandle refers to one binding.
type BindingHandle struct {
	svc     *Service
	surface SurfaceID
	id      BindingID
}

func (h BindingHandle) ID() BindingID        { return h.id }
func (h BindingHandle) SurfaceID() SurfaceID { return h.surface }

// IsValid reports whether the binding is still tracked.
func (h BindingHandle) IsValid() bool {
	return h.svc.IsValidUI(h.surface, h.id)
}

// Release hands the element back to the binding's release action. A
// second release only logs a warning; releasing after the surface is gone
// returns ErrSurfaceNotFound.
func (h BindingHandle) Release() error {
	if h.svc == nil {
		return ErrSurfaceNotFound
	}
	return h.svc.ReleaseUI(h.surface, h.id)
}
