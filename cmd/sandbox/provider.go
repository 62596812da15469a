package main

import (
	"math/rand"

	"github.com/milk9111/uiprojector/common"
	"github.com/milk9111/uiprojector/scene"
	"golang.org/x/image/math/f64"
)

// ObjectProvider scatters target objects at random points inside a sphere
// and hands out random live ones.
type ObjectProvider struct {
	world   *scene.World
	rng     *rand.Rand
	objects []scene.Entity
}

func NewObjectProvider(world *scene.World, count int, radius float64, ttl int, seed int64) *ObjectProvider {
	p := &ObjectProvider{
		world:   world,
		rng:     rand.New(rand.NewSource(seed)),
		objects: make([]scene.Entity, 0, count),
	}
	for i := 0; i < count; i++ {
		e := world.Spawn(common.Scale3(insideUnitSphere(p.rng), radius))
		if ttl > 0 {
			// stagger expiry so targets vanish one at a time
			world.SetTTL(e, ttl+p.rng.Intn(ttl))
		}
		p.objects = append(p.objects, e)
	}
	return p
}

// GetRandom returns a random live object. It reports false once every
// object is gone.
func (p *ObjectProvider) GetRandom() (scene.Entity, bool) {
	p.prune()
	if len(p.objects) == 0 {
		return 0, false
	}
	return p.objects[p.rng.Intn(len(p.objects))], true
}

// Objects returns the live objects.
func (p *ObjectProvider) Objects() []scene.Entity {
	p.prune()
	return p.objects
}

func (p *ObjectProvider) prune() {
	live := p.objects[:0]
	for _, e := range p.objects {
		if p.world.IsAlive(e) {
			live = append(live, e)
		}
	}
	p.objects = live
}

func insideUnitSphere(rng *rand.Rand) f64.Vec3 {
	for {
		v := f64.Vec3{rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		if v[0]*v[0]+v[1]*v[1]+v[2]*v[2] <= 1 {
			return v
		}
	}
}
