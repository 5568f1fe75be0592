package sim

import (
	"github.com/brentp/intintmap"
	"github.com/go-gl/mathgl/mgl64"
)

// Stick is a distance constraint between two particles.
type Stick struct {
	A, B int
	// Length is the rest length of the stick.
	Length float64
	// Compliance is the inverse stiffness: 0 is fully rigid.
	Compliance float64
}

// Body groups particles that the solver keeps in their rest shape, forming a
// rigid body.
type Body struct {
	Particles []int
	// Rest holds the rest offsets of Particles from the body's centre of mass.
	Rest []mgl64.Vec2
	// Kinematic bodies are moved by entities rather than by the solver.
	Kinematic bool
}

// Hinge pins a particle to a fixed point in the world.
type Hinge struct {
	Particle int
	Anchor   mgl64.Vec2
}

// Emitter spawns particles of a template at a rate while the simulation runs.
type Emitter struct {
	Pos, Dir mgl64.Vec2
	Template Particle
	// Rate is the number of particles emitted per second.
	Rate float64
	// Limit caps the total number of particles emitted. 0 means unlimited.
	Limit int
}

// World is the add-only store of constraints and bodies consumed by the
// solver. Level generation only ever inserts into a World; stepping it is the
// job of the real-time loop.
type World struct {
	sticks   []Stick
	bodies   []Body
	hinges   []Hinge
	emitters []Emitter

	// bodyOf maps particle indices to the body they belong to.
	bodyOf *intintmap.Map
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{bodyOf: intintmap.New(64, 0.6)}
}

// AddStick adds a stick constraint and returns its index.
func (w *World) AddStick(s Stick) int {
	w.sticks = append(w.sticks, s)
	return len(w.sticks) - 1
}

// AddBody adds a rigid body built from the particles passed. The rest shape
// is computed from the current positions of the particles in c.
func (w *World) AddBody(c *Particles, indices []int, kinematic bool) int {
	var centre mgl64.Vec2
	for _, i := range indices {
		centre = centre.Add(c.At(i).Pos)
	}
	if len(indices) > 0 {
		centre = centre.Mul(1 / float64(len(indices)))
	}
	b := Body{
		Particles: append([]int(nil), indices...),
		Rest:      make([]mgl64.Vec2, len(indices)),
		Kinematic: kinematic,
	}
	for n, i := range indices {
		b.Rest[n] = c.At(i).Pos.Sub(centre)
	}
	w.bodies = append(w.bodies, b)
	id := len(w.bodies) - 1
	for _, i := range indices {
		w.bodyOf.Put(int64(i), int64(id))
	}
	return id
}

// AddHinge pins a particle to an anchor and returns the hinge index.
func (w *World) AddHinge(h Hinge) int {
	w.hinges = append(w.hinges, h)
	return len(w.hinges) - 1
}

// AddEmitter adds a particle emitter and returns its index.
func (w *World) AddEmitter(e Emitter) int {
	w.emitters = append(w.emitters, e)
	return len(w.emitters) - 1
}

// BodyOf returns the body the particle at index i belongs to, if any.
func (w *World) BodyOf(i int) (int, bool) {
	id, ok := w.bodyOf.Get(int64(i))
	return int(id), ok
}

// Sticks returns all stick constraints. The slice must not be modified.
func (w *World) Sticks() []Stick { return w.sticks }

// Bodies returns all rigid bodies. The slice must not be modified.
func (w *World) Bodies() []Body { return w.bodies }

// Hinges returns all hinges. The slice must not be modified.
func (w *World) Hinges() []Hinge { return w.hinges }

// Emitters returns all emitters. The slice must not be modified.
func (w *World) Emitters() []Emitter { return w.emitters }
