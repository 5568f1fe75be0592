package block

import (
	"github.com/df-mc/gauntlet/course/entity"
	"github.com/df-mc/gauntlet/course/level"
)

// Spawn builds the start platform. It is the only Operation allowed on the
// first block and is never chosen anywhere else.
type Spawn struct{}

func (Spawn) Name() string { return "spawn" }

func (Spawn) DefaultSpawnChance() float64 { return 1 }

func (Spawn) Prepare(ctx *level.Context, candidates []level.Candidate) {
	if ctx.IsFirst {
		exclusive[Spawn](candidates)
		return
	}
	disable[Spawn](candidates)
}

func (Spawn) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false

	start := ctx.Cursor
	ctx.Cursor = start.Sub(forward(ctx, 4))
	floor(ctx, 8)
	ctx.Entities.AddMarker(&entity.Marker{Kind: entity.MarkerSpawn, Pos: start, Width: 2})
}

func (s Spawn) Clone() level.Operation { return s }
