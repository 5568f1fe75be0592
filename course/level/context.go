package level

import (
	"github.com/df-mc/gauntlet/course/entity"
	"github.com/df-mc/gauntlet/course/level/rand"
	"github.com/df-mc/gauntlet/course/sim"
	"github.com/go-gl/mathgl/mgl64"
)

// ParticleRadius is the radius of every particle placed by level generation.
var ParticleRadius = sim.CmToM(10)

// Context is the state shared by all Operations during one generation run.
// Operations read and write its fields directly. A Context is created for a
// single run and must not be used by more than one goroutine.
type Context struct {
	// Particles receives every particle placed by Operations.
	Particles *sim.Particles
	// World receives constraints, bodies and emitters.
	World *sim.World
	// Entities receives gameplay entities.
	Entities *entity.System
	// Rand is the only source of randomness of the run.
	Rand *rand.Random

	// Cursor marks where the next block starts.
	Cursor mgl64.Vec2
	// XDirection is +1 or -1 depending on which way the course currently
	// extends along the x axis.
	XDirection float64
	// XDirectionChanged is set by an Operation that reversed XDirection and
	// is cleared by the Operation executed after it.
	XDirectionChanged bool
	// ParticleTemplate is the prototype for particles placed by Operations.
	ParticleTemplate sim.Particle

	// Operations holds a clone of every Operation executed so far, in order.
	Operations []Operation
	// IsFirst and IsLast report if the block being generated is the first or
	// the last one of the run. They are maintained by the Builder.
	IsFirst, IsLast bool
}

// NewContext returns a Context with the cursor at the origin, facing the
// positive x direction.
func NewContext(entities *entity.System, particles *sim.Particles, world *sim.World, r *rand.Random) *Context {
	if entities == nil || particles == nil || world == nil || r == nil {
		panic("level.NewContext: entities, particles, world and random source must not be nil")
	}
	return &Context{
		Particles:        particles,
		World:            world,
		Entities:         entities,
		Rand:             r,
		XDirection:       1,
		ParticleTemplate: sim.DefaultParticle().WithRadius(ParticleRadius),
		IsFirst:          true,
	}
}
