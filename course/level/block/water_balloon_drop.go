package block

import (
	"math"

	"github.com/df-mc/gauntlet/course/level"
	"github.com/df-mc/gauntlet/course/sim"
	"github.com/go-gl/mathgl/mgl64"
)

const balloonSegments = 16

// WaterBalloonDrop builds a stretch of road with a soft balloon of water
// hanging above it, dropping onto the car as it passes.
type WaterBalloonDrop struct{}

func (WaterBalloonDrop) Name() string { return "water_balloon_drop" }

func (WaterBalloonDrop) DefaultSpawnChance() float64 { return 0.5 }

func (WaterBalloonDrop) Prepare(*level.Context, []level.Candidate) {}

func (WaterBalloonDrop) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false

	floor(ctx, 2)
	centre := ctx.Cursor.Add(forward(ctx, 1.5)).Add(mgl64.Vec2{0, ctx.Rand.Uniform(3, 5)})
	radius := 0.6

	skin := ctx.ParticleTemplate.WithMass(0.2)
	ring := make([]int, balloonSegments)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / balloonSegments
		ring[i] = ctx.Particles.Push(skin.At(centre.Add(mgl64.Vec2{math.Cos(a), math.Sin(a)}.Mul(radius))))
	}
	chord := 2 * radius * math.Sin(math.Pi/balloonSegments)
	for i := range ring {
		ctx.World.AddStick(sim.Stick{A: ring[i], B: ring[(i+1)%balloonSegments], Length: chord, Compliance: 1e-3})
	}

	water := ctx.ParticleTemplate.WithMaterial(sim.Fluid).WithColour(waterColour)
	for _, off := range []mgl64.Vec2{{0, 0}, {-0.25, 0}, {0.25, 0}, {0, 0.25}, {0, -0.25}} {
		ctx.Particles.Push(water.At(centre.Add(off)))
	}

	floor(ctx, 4)
}

func (w WaterBalloonDrop) Clone() level.Operation { return w }
