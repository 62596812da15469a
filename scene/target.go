package scene

import "golang.org/x/image/math/f64"

// Target tracks an entity's transform. It stops being alive once the entity
// is destroyed, even if the slot is reused.
type Target struct {
	world  *World
	entity Entity
}

func (t Target) Entity() Entity {
	return t.entity
}

func (t Target) Alive() bool {
	return t.world.IsAlive(t.entity) && t.world.transforms.Has(t.entity)
}

func (t Target) WorldPosition() f64.Vec3 {
	if tr := t.world.Transform(t.entity); tr != nil {
		return tr.Position
	}
	return f64.Vec3{}
}
