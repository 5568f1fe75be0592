package block

import (
	"github.com/df-mc/gauntlet/course/level"
	"github.com/go-gl/mathgl/mgl64"
)

// Cliff builds a ledge followed by a drop onto lower ground.
type Cliff struct{}

func (Cliff) Name() string { return "cliff" }

func (Cliff) DefaultSpawnChance() float64 { return 1 }

func (Cliff) Prepare(*level.Context, []level.Candidate) {}

func (Cliff) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false

	floor(ctx, 2)
	drop := ctx.Rand.Uniform(1, 3)
	gap := ctx.Rand.Uniform(0.5, 1.5)
	ctx.Cursor = ctx.Cursor.Add(forward(ctx, gap)).Sub(mgl64.Vec2{0, drop})
	floor(ctx, 3)
}

func (c Cliff) Clone() level.Operation { return c }
