// Package block implements the Operations a course is composed of.
package block

import (
	"math"

	"github.com/df-mc/gauntlet/course/level"
	"github.com/df-mc/gauntlet/course/sim"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	groundColour = [4]float32{0.45, 0.42, 0.38, 1}
	bridgeColour = [4]float32{0.55, 0.35, 0.2, 1}
	waterColour  = [4]float32{0.2, 0.45, 0.9, 0.8}
	markerColour = [4]float32{0.9, 0.8, 0.1, 1}
)

// ground returns the template for static terrain particles.
func ground(ctx *level.Context) sim.Particle {
	return ctx.ParticleTemplate.WithStatic(true).WithColour(groundColour)
}

// line places particles of template p from a to b, spaced one particle
// diameter apart, and returns their indices. Both end points are included.
func line(ctx *level.Context, p sim.Particle, a, b mgl64.Vec2) []int {
	spacing := p.Radius * 2
	n := int(math.Ceil(b.Sub(a).Len() / spacing))
	if n < 1 {
		return []int{ctx.Particles.Push(p.At(a))}
	}
	indices := make([]int, 0, n+1)
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		indices = append(indices, ctx.Particles.Push(p.At(a.Add(b.Sub(a).Mul(f)))))
	}
	return indices
}

// forward returns a vector of length dist pointing in the current direction
// of the course.
func forward(ctx *level.Context, dist float64) mgl64.Vec2 {
	return mgl64.Vec2{dist * ctx.XDirection, 0}
}

// floor places a flat run of ground of length dist from the cursor in the
// current direction and moves the cursor to its end.
func floor(ctx *level.Context, dist float64) {
	end := ctx.Cursor.Add(forward(ctx, dist))
	line(ctx, ground(ctx), ctx.Cursor, end)
	ctx.Cursor = end
}

// is reports if op is an Operation of type T.
func is[T level.Operation](op level.Operation) bool {
	_, ok := op.(T)
	return ok
}

// exclusive zeroes the weight of every candidate that is not of type T.
func exclusive[T level.Operation](candidates []level.Candidate) {
	for i := range candidates {
		if !is[T](candidates[i].Operation) {
			candidates[i].Weight = 0
		}
	}
}

// disable zeroes the weight of every candidate of type T.
func disable[T level.Operation](candidates []level.Candidate) {
	for i := range candidates {
		if is[T](candidates[i].Operation) {
			candidates[i].Weight = 0
		}
	}
}
