package projection

import "errors"

var (
	// ErrUnsupportedRenderMode is returned when a surface would be created
	// (or reconfigured) with a render mode that cannot follow targets.
	ErrUnsupportedRenderMode = errors.New("projection: unsupported render mode")
	// ErrSurfaceNotFound is returned for operations against a surface id
	// that was never created or has been destroyed.
	ErrSurfaceNotFound = errors.New("projection: surface not found")
	// ErrDefaultSurface is returned when destroying the default surface.
	ErrDefaultSurface = errors.New("projection: default surface cannot be destroyed")
	ErrNoCamera       = errors.New("projection: no camera")
	ErrNilElement     = errors.New("projection: element is nil")
	ErrNilTarget      = errors.New("projection: target is nil")
	// ErrTargetGone reports that a binding's target is no longer alive.
	ErrTargetGone = errors.New("projection: target gone")
	// ErrProjectionPanic wraps a panic recovered while projecting one binding.
	ErrProjectionPanic = errors.New("projection: projection panicked")
	ErrClosed          = errors.New("projection: service closed")
)
