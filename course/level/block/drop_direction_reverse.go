package block

import (
	"github.com/df-mc/gauntlet/course/level"
	"github.com/go-gl/mathgl/mgl64"
)

// DropDirectionReverse ends the road at a wall with a drop in front of it. The
// course continues below, running back the way it came. It is never chosen
// for the first block or twice in a row.
type DropDirectionReverse struct{}

func (DropDirectionReverse) Name() string { return "drop_direction_reverse" }

func (DropDirectionReverse) DefaultSpawnChance() float64 { return 0.5 }

func (DropDirectionReverse) Prepare(ctx *level.Context, candidates []level.Candidate) {
	if ctx.IsFirst || ctx.XDirectionChanged {
		disable[DropDirectionReverse](candidates)
	}
}

func (DropDirectionReverse) Execute(ctx *level.Context) {
	floor(ctx, 3)
	wall := ctx.Cursor.Add(forward(ctx, 1))
	line(ctx, ground(ctx), wall, wall.Add(mgl64.Vec2{0, 3}))

	ctx.Cursor = wall.Sub(mgl64.Vec2{0, ctx.Rand.Uniform(2, 3)})
	ctx.XDirection = -ctx.XDirection
	ctx.XDirectionChanged = true
	floor(ctx, 2)
}

func (d DropDirectionReverse) Clone() level.Operation { return d }
