package scene

import (
	"testing"

	"github.com/milk9111/uiprojector/projection"
	"golang.org/x/image/math/f64"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.Spawn(f64.Vec3{float64(i), 0, 0}))
			}
			if w.Len() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.Len())
			}
			if c.destroyIndex >= 0 {
				e := ents[c.destroyIndex]
				if !w.DestroyEntity(e) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(e) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(e) {
					t.Fatalf("DestroyEntity should return false the second time")
				}
				if w.Transforms().Len() != c.create-1 {
					t.Fatalf("expected transform to be dropped")
				}
			}
		})
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(f64.Vec3{1, 2, 3})
	target := w.Target(a)
	w.DestroyEntity(a)

	b := w.Spawn(f64.Vec3{4, 5, 6})
	if a.id() != b.id() {
		t.Fatalf("expected slot %d to be reused, got %d", a.id(), b.id())
	}
	if a == b {
		t.Fatalf("reused slot must carry a new generation")
	}
	if target.Alive() {
		t.Fatalf("target of a destroyed entity must stay dead after slot reuse")
	}
	if got := w.Target(b).WorldPosition(); got != (f64.Vec3{4, 5, 6}) {
		t.Fatalf("expected new entity position, got %v", got)
	}
}

func TestTargetFollowsTransform(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(f64.Vec3{1, 1, 1})
	var target projection.Target = w.Target(e)

	w.Transform(e).Position = f64.Vec3{7, 8, 9}
	if got := target.WorldPosition(); got != (f64.Vec3{7, 8, 9}) {
		t.Fatalf("expected updated position, got %v", got)
	}

	bare := w.CreateEntity()
	if w.Target(bare).Alive() {
		t.Fatalf("entity without a transform is not a live target")
	}
	if (Target{}).Alive() {
		t.Fatalf("zero target must not be alive")
	}
}

func TestSparseSetSwapRemove(t *testing.T) {
	w := NewWorld()
	var set SparseSet[int]
	ents := []Entity{w.CreateEntity(), w.CreateEntity(), w.CreateEntity()}
	for i, e := range ents {
		set.Set(e, i*10)
	}
	if !set.Remove(ents[0]) {
		t.Fatalf("expected remove to succeed")
	}
	if set.Has(ents[0]) || set.Len() != 2 {
		t.Fatalf("expected first entity gone, len %d", set.Len())
	}
	if v := set.Get(ents[2]); v == nil || *v != 20 {
		t.Fatalf("moved value lost: %v", v)
	}
	if set.Remove(ents[0]) {
		t.Fatalf("second remove should report false")
	}
}

func TestTTLSystem(t *testing.T) {
	w := NewWorld()
	short := w.Spawn(f64.Vec3{})
	long := w.Spawn(f64.Vec3{})
	keep := w.Spawn(f64.Vec3{})
	w.SetTTL(short, 1)
	w.SetTTL(long, 3)

	sched := NewScheduler(NewTTLSystem())
	sched.Update(w)
	if w.IsAlive(short) {
		t.Fatalf("ttl 1 should expire after one tick")
	}
	sched.Update(w)
	if !w.IsAlive(long) {
		t.Fatalf("ttl 3 should survive two ticks")
	}
	sched.Update(w)
	if w.IsAlive(long) || !w.IsAlive(keep) {
		t.Fatalf("expected long expired and keep alive")
	}
}

func TestSchedulerRunsLatePhaseLast(t *testing.T) {
	var order []string
	sched := NewScheduler()
	sched.AddLate(SystemFunc(func(*World) { order = append(order, "late") }))
	sched.Add(SystemFunc(func(*World) { order = append(order, "update") }))
	sched.Add(nil)

	sched.Update(NewWorld())
	if len(order) != 2 || order[0] != "update" || order[1] != "late" {
		t.Fatalf("unexpected order %v", order)
	}
	if len(sched.Systems()) != 2 {
		t.Fatalf("expected 2 systems, got %d", len(sched.Systems()))
	}
}
