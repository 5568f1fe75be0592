package block

import (
	"github.com/df-mc/gauntlet/course/entity"
	"github.com/df-mc/gauntlet/course/level"
	"github.com/go-gl/mathgl/mgl64"
)

// Elevator builds a moving platform lifting the car onto a raised ledge. It
// needs a run-up and is never chosen directly after a direction reversal.
type Elevator struct{}

func (Elevator) Name() string { return "elevator" }

func (Elevator) DefaultSpawnChance() float64 { return 0.5 }

func (Elevator) Prepare(ctx *level.Context, candidates []level.Candidate) {
	if ctx.XDirectionChanged {
		disable[Elevator](candidates)
	}
}

func (Elevator) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false

	floor(ctx, 2)
	platform := line(ctx, ctx.ParticleTemplate.WithColour(markerColour), ctx.Cursor, ctx.Cursor.Add(forward(ctx, 2)))
	body := ctx.World.AddBody(ctx.Particles, platform, true)

	height := ctx.Rand.Uniform(2, 5)
	bottom := ctx.Cursor.Add(forward(ctx, 1))
	ctx.Entities.AddElevator(&entity.Elevator{
		Body:   body,
		Bottom: bottom,
		Top:    bottom.Add(mgl64.Vec2{0, height}),
		Speed:  1,
	})

	ctx.Cursor = ctx.Cursor.Add(forward(ctx, 2)).Add(mgl64.Vec2{0, height})
	floor(ctx, 3)
}

func (e Elevator) Clone() level.Operation { return e }
