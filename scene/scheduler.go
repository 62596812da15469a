package scene

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// SystemFunc lets a plain function run as a System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// Scheduler runs systems in two phases. Late systems see the state every
// regular system produced that frame.
type Scheduler struct {
	systems []System
	late    []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// AddLate appends a system to the late phase.
func (s *Scheduler) AddLate(system System) {
	if system == nil {
		return
	}
	s.late = append(s.late, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	for _, system := range s.late {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems)+len(s.late))
	systems = append(systems, s.systems...)
	return append(systems, s.late...)
}
