package block

import (
	"github.com/df-mc/gauntlet/course/level"
	"github.com/df-mc/gauntlet/course/sim"
)

// SaggyBridge builds a rope bridge of loose planks hinged at both ends. The
// sticks joining the planks are slightly longer than the planks are apart, so
// the bridge sags once simulated.
type SaggyBridge struct{}

func (SaggyBridge) Name() string { return "saggy_bridge" }

func (SaggyBridge) DefaultSpawnChance() float64 { return 1 }

func (SaggyBridge) Prepare(*level.Context, []level.Candidate) {}

func (SaggyBridge) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false

	span := ctx.Rand.Uniform(4, 8)
	slack := ctx.Rand.Uniform(1.02, 1.1)
	start, end := ctx.Cursor, ctx.Cursor.Add(forward(ctx, span))

	planks := line(ctx, ctx.ParticleTemplate.WithColour(bridgeColour).WithMass(0.5), start, end)
	length := span / float64(len(planks)-1) * slack
	for i := 1; i < len(planks); i++ {
		ctx.World.AddStick(sim.Stick{A: planks[i-1], B: planks[i], Length: length, Compliance: 1e-4})
	}
	ctx.World.AddHinge(sim.Hinge{Particle: planks[0], Anchor: start})
	ctx.World.AddHinge(sim.Hinge{Particle: planks[len(planks)-1], Anchor: end})

	ctx.Cursor = end
	floor(ctx, 1)
}

func (s SaggyBridge) Clone() level.Operation { return s }
