package scene

import "golang.org/x/image/math/f64"

// Transform places an entity in world space.
type Transform struct {
	Position f64.Vec3
	Scale    float64
}

// TTL destroys its entity after the given number of update ticks.
type TTL struct {
	Frames int
}

// World owns entities and their components.
type World struct {
	entities entityStore

	transforms SparseSet[Transform]
	ttls       SparseSet[TTL]
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// Spawn creates an entity with a transform at pos.
func (w *World) Spawn(pos f64.Vec3) Entity {
	e := w.CreateEntity()
	w.transforms.Set(e, Transform{Position: pos, Scale: 1})
	return e
}

// DestroyEntity kills e and drops its components. It returns false for an
// entity that was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	w.transforms.Remove(e)
	w.ttls.Remove(e)
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.live
}

func (w *World) SetTransform(e Entity, t Transform) bool {
	if !w.IsAlive(e) {
		return false
	}
	w.transforms.Set(e, t)
	return true
}

// Transform returns e's transform, or nil when e is dead or has none.
func (w *World) Transform(e Entity) *Transform {
	if !w.IsAlive(e) {
		return nil
	}
	return w.transforms.Get(e)
}

func (w *World) Transforms() *SparseSet[Transform] {
	return &w.transforms
}

func (w *World) SetTTL(e Entity, frames int) bool {
	if !w.IsAlive(e) {
		return false
	}
	w.ttls.Set(e, TTL{Frames: frames})
	return true
}

func (w *World) TTLs() *SparseSet[TTL] {
	return &w.ttls
}

// Target adapts e to projection.Target.
func (w *World) Target(e Entity) Target {
	return Target{world: w, entity: e}
}
