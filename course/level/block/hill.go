package block

import (
	"math"

	"github.com/df-mc/gauntlet/course/level"
	"github.com/go-gl/mathgl/mgl64"
)

// Hill builds a smooth bump in the road.
type Hill struct{}

func (Hill) Name() string { return "hill" }

func (Hill) DefaultSpawnChance() float64 { return 1 }

func (Hill) Prepare(*level.Context, []level.Candidate) {}

func (Hill) Execute(ctx *level.Context) {
	ctx.XDirectionChanged = false

	width := ctx.Rand.Uniform(4, 8)
	height := ctx.Rand.Uniform(0.5, 2)
	p := ground(ctx)
	steps := int(math.Ceil(width / (p.Radius * 2)))
	for i := 0; i <= steps; i++ {
		s := float64(i) / float64(steps)
		offset := forward(ctx, width*s).Add(mgl64.Vec2{0, height * math.Sin(math.Pi*s)})
		ctx.Particles.Push(p.At(ctx.Cursor.Add(offset)))
	}
	ctx.Cursor = ctx.Cursor.Add(forward(ctx, width))
}

func (h Hill) Clone() level.Operation { return h }
