package block

import (
	"github.com/df-mc/gauntlet/course/entity"
	"github.com/df-mc/gauntlet/course/level"
	"github.com/go-gl/mathgl/mgl64"
)

// Finish builds the finish line. It is the only Operation allowed on the last
// block and is never chosen anywhere else. On a single block course the block
// is left to Spawn.
type Finish struct{}

func (Finish) Name() string { return "finish" }

func (Finish) DefaultSpawnChance() float64 { return 1 }

func (Finish) Prepare(ctx *level.Context, candidates []level.Candidate) {
	if ctx.IsLast && !ctx.IsFirst {
		exclusive[Finish](candidates)
		return
	}
	disable[Finish](candidates)
}

func (Finish) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false

	mark := ctx.Cursor.Add(forward(ctx, 3))
	floor(ctx, 6)
	// A post marks the end of the course so cars cannot drive off it.
	line(ctx, ground(ctx).WithColour(markerColour), ctx.Cursor, ctx.Cursor.Add(mgl64.Vec2{0, 2}))
	ctx.Entities.AddMarker(&entity.Marker{Kind: entity.MarkerFinish, Pos: mark, Width: 1})
}

func (f Finish) Clone() level.Operation { return f }
