package sim

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// CmToM converts centimetres to metres, the simulation's length unit.
func CmToM(cm float64) float64 {
	return cm / 100
}

// Material describes how the solver treats a particle.
type Material uint8

const (
	Solid Material = iota
	Fluid
	Gas
)

// String ...
func (m Material) String() string {
	switch m {
	case Solid:
		return "solid"
	case Fluid:
		return "fluid"
	case Gas:
		return "gas"
	}
	return "unknown"
}

// Particle is a single simulated particle. Particle values are used as
// prototypes: setters return a modified copy and leave the receiver untouched.
type Particle struct {
	Pos, PrevPos mgl64.Vec2
	Radius       float64
	Mass         float64
	Material     Material
	// Static particles are never moved by the solver.
	Static bool
	Colour [4]float32
}

// DefaultParticle returns a movable solid particle with unit mass.
func DefaultParticle() Particle {
	return Particle{
		Radius: 0.5,
		Mass:   1,
		Colour: [4]float32{1, 1, 1, 1},
	}
}

// WithRadius returns a copy of p with its radius set.
func (p Particle) WithRadius(r float64) Particle {
	p.Radius = r
	return p
}

// WithMass returns a copy of p with its mass set.
func (p Particle) WithMass(m float64) Particle {
	p.Mass = m
	return p
}

// WithMaterial returns a copy of p with its material set.
func (p Particle) WithMaterial(m Material) Particle {
	p.Material = m
	return p
}

// WithStatic returns a copy of p with its static flag set.
func (p Particle) WithStatic(static bool) Particle {
	p.Static = static
	return p
}

// WithColour returns a copy of p with its colour set.
func (p Particle) WithColour(c [4]float32) Particle {
	p.Colour = c
	return p
}

// At returns a copy of p placed at pos with zero velocity.
func (p Particle) At(pos mgl64.Vec2) Particle {
	p.Pos, p.PrevPos = pos, pos
	return p
}

// Particles is an append-only particle container. Indices returned by Push
// stay valid for the lifetime of the container.
type Particles struct {
	p []Particle
}

// NewParticles returns an empty container.
func NewParticles() *Particles {
	return &Particles{}
}

// Push appends p and returns its index.
func (c *Particles) Push(p Particle) int {
	c.p = append(c.p, p)
	return len(c.p) - 1
}

// Len returns the number of particles held.
func (c *Particles) Len() int {
	if c == nil {
		return 0
	}
	return len(c.p)
}

// At returns the particle at index i.
func (c *Particles) At(i int) Particle {
	return c.p[i]
}

// All iterates over all particles in insertion order.
func (c *Particles) All() iter.Seq2[int, Particle] {
	return func(yield func(int, Particle) bool) {
		for i, p := range c.p {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Bounds returns the axis aligned bounding box of all particle centres. ok is
// false if the container is empty.
func (c *Particles) Bounds() (lo, hi mgl64.Vec2, ok bool) {
	if c.Len() == 0 {
		return lo, hi, false
	}
	lo, hi = c.p[0].Pos, c.p[0].Pos
	for _, p := range c.p[1:] {
		lo = mgl64.Vec2{min(lo[0], p.Pos[0]), min(lo[1], p.Pos[1])}
		hi = mgl64.Vec2{max(hi[0], p.Pos[0]), max(hi[1], p.Pos[1])}
	}
	return lo, hi, true
}
