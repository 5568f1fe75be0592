package block

import (
	"github.com/df-mc/gauntlet/course/level"
	"github.com/df-mc/gauntlet/course/sim"
	"github.com/go-gl/mathgl/mgl64"
)

// FunnelMinParticles is the number of particles that must have been placed
// before a FluidFunnel may be chosen.
const FunnelMinParticles = 60

// FluidFunnel builds a funnel full of water hanging over the road, with an
// emitter topping it up while the course is played.
type FluidFunnel struct{}

func (FluidFunnel) Name() string { return "fluid_funnel" }

func (FluidFunnel) DefaultSpawnChance() float64 { return 0.5 }

func (FluidFunnel) Prepare(ctx *level.Context, candidates []level.Candidate) {
	if ctx.Particles.Len() < FunnelMinParticles {
		disable[FluidFunnel](candidates)
	}
}

func (FluidFunnel) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false

	width := ctx.Rand.Uniform(3, 5)
	depth := ctx.Rand.Uniform(1.5, 2.5)
	g := ground(ctx)
	gap := g.Radius * 4
	start := ctx.Cursor
	up := func(h float64) mgl64.Vec2 { return mgl64.Vec2{0, h} }

	rim := 1 + depth
	line(ctx, g, start.Add(up(rim)), start.Add(forward(ctx, width/2-gap/2)).Add(up(1)))
	line(ctx, g, start.Add(forward(ctx, width)).Add(up(rim)), start.Add(forward(ctx, width/2+gap/2)).Add(up(1)))

	water := ctx.ParticleTemplate.WithMaterial(sim.Fluid).WithColour(waterColour)
	spacing := water.Radius * 2
	centre := start.Add(forward(ctx, width/2)).Add(up(1 + depth*0.6))
	for row := -1; row <= 1; row++ {
		for col := -1; col <= 1; col++ {
			ctx.Particles.Push(water.At(centre.Add(mgl64.Vec2{float64(col) * spacing, float64(row) * spacing})))
		}
	}
	ctx.World.AddEmitter(sim.Emitter{
		Pos:      start.Add(forward(ctx, width/2)).Add(up(rim + 0.5)),
		Dir:      mgl64.Vec2{0, -1},
		Template: water,
		Rate:     20,
		Limit:    100,
	})

	floor(ctx, width)
}

func (f FluidFunnel) Clone() level.Operation { return f }
