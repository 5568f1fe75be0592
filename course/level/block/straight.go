package block

import "github.com/df-mc/gauntlet/course/level"

// Straight builds a flat stretch of road.
type Straight struct {
	// Chance overrides the default spawn chance of 1 if positive.
	Chance float64
}

func (Straight) Name() string { return "straight" }

func (s Straight) DefaultSpawnChance() float64 {
	if s.Chance > 0 {
		return s.Chance
	}
	return 1
}

func (Straight) Prepare(*level.Context, []level.Candidate) {}

func (Straight) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false
	floor(ctx, ctx.Rand.Uniform(3, 8))
}

func (s Straight) Clone() level.Operation { return s }
