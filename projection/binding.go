package projection

import "golang.org/x/image/math/f64"

// binding is one tracked element/target pair.
type binding struct {
	element      Element
	target       Target
	worldOffset  f64.Vec3
	screenOffset f64.Vec2
	corrector    Corrector
	release      ReleaseFunc
}

// BindingOption configures a binding at creation.
type BindingOption func(*binding)

// WithWorldOffset is added to the target position before projection.
func WithWorldOffset(offset f64.Vec3) BindingOption {
	return func(b *binding) { b.worldOffset = offset }
}

// WithScreenOffset is added to the projected screen point, in pixels.
func WithScreenOffset(offset f64.Vec2) BindingOption {
	return func(b *binding) { b.screenOffset = offset }
}

// WithCorrector sets the correction policy. Nil keeps Identity.
func WithCorrector(c Corrector) BindingOption {
	return func(b *binding) {
		if c != nil {
			b.corrector = c
		}
	}
}

// WithReleaseAction is called once with the element when the binding is
// released. Without it the element is destroyed (Destroyer) or detached.
func WithReleaseAction(fn ReleaseFunc) BindingOption {
	return func(b *binding) {
		if fn != nil {
			b.release = fn
		}
	}
}

func newBinding(el Element, target Target, opts []BindingOption) *binding {
	b := &binding{
		element:   el,
		target:    target,
		corrector: Identity,
		release:   destroyElement,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}
