package scene

// TTLSystem decrements frame-based TTL components and destroys entities when
// the TTL reaches zero.
type TTLSystem struct {
	expired []Entity
}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *World) {
	if w == nil {
		return
	}

	s.expired = s.expired[:0]
	for _, e := range w.ttls.Entities() {
		ttl := w.ttls.Get(e)
		if ttl.Frames > 0 {
			ttl.Frames--
		}
		if ttl.Frames <= 0 {
			s.expired = append(s.expired, e)
		}
	}
	for _, e := range s.expired {
		w.DestroyEntity(e)
	}
}
