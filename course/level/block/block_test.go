package block

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/df-mc/gauntlet/course/entity"
	"github.com/df-mc/gauntlet/course/level"
	"github.com/df-mc/gauntlet/course/level/rand"
	"github.com/df-mc/gauntlet/course/sim"
	"github.com/go-gl/mathgl/mgl64"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newContext(seed int64) *level.Context {
	return level.NewContext(entity.NewSystem(), sim.NewParticles(), sim.NewWorld(), rand.NewRandom(seed))
}

func names(ops []level.Operation) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = level.Name(op)
	}
	return out
}

func TestSpawnStraightFinishScenario(t *testing.T) {
	b := level.Config{Log: discard, Registry: level.NewRegistry(Spawn{}, Finish{}, Straight{Chance: 3})}.New()
	for seed := int64(0); seed < 200; seed++ {
		ctx := newContext(seed)
		b.Generate(ctx, 3)
		got := names(ctx.Operations)
		if len(got) != 3 || got[0] != "spawn" || got[1] != "straight" || got[2] != "finish" {
			t.Fatalf("seed %d: expected [spawn straight finish], got %v", seed, got)
		}
	}
}

func TestDefaultRegistryRules(t *testing.T) {
	b := level.Config{Log: discard, Registry: DefaultRegistry()}.New()
	for seed := int64(0); seed < 100; seed++ {
		ctx := newContext(seed)
		b.Generate(ctx, 30)
		got := names(ctx.Operations)
		if len(got) != 30 {
			t.Fatalf("seed %d: expected no skipped blocks, got %d operations", seed, len(got))
		}
		for i, name := range got {
			switch {
			case i == 0 && name != "spawn":
				t.Fatalf("seed %d: expected spawn first, got %s", seed, name)
			case i == len(got)-1 && name != "finish":
				t.Fatalf("seed %d: expected finish last, got %s", seed, name)
			case i > 0 && name == "spawn", i < len(got)-1 && name == "finish":
				t.Fatalf("seed %d: unexpected %s at block %d", seed, name, i)
			}
			if i == 0 {
				continue
			}
			prev := got[i-1]
			if prev == "drop_direction_reverse" && (name == "drop_direction_reverse" || name == "elevator") {
				t.Fatalf("seed %d: %s directly after a reversal at block %d", seed, name, i)
			}
		}
		if _, ok := ctx.Entities.Marker(entity.MarkerSpawn); !ok {
			t.Fatalf("seed %d: expected a spawn marker", seed)
		}
		if _, ok := ctx.Entities.Marker(entity.MarkerFinish); !ok {
			t.Fatalf("seed %d: expected a finish marker", seed)
		}
	}
}

func TestSingleBlockCourseIsSpawn(t *testing.T) {
	b := level.Config{Log: discard, Registry: DefaultRegistry()}.New()
	ctx := newContext(5)
	b.Generate(ctx, 1)
	if got := names(ctx.Operations); len(got) != 1 || got[0] != "spawn" {
		t.Fatalf("expected a single spawn block, got %v", got)
	}
}

func TestDailyLevelDeterministic(t *testing.T) {
	day := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)
	generate := func(at time.Time) ([]string, uint64, int) {
		b := level.Config{Log: discard, Registry: DefaultRegistry()}.New()
		rec := &level.PathRecorder{}
		b.Handle(rec)
		particles := sim.NewParticles()
		ctx := b.GenerateForDate(at, entity.NewSystem(), particles, sim.NewWorld())
		return names(ctx.Operations), level.Fingerprint(ctx.Operations, rec.Path), particles.Len()
	}

	n1, f1, p1 := generate(day)
	n2, f2, p2 := generate(day.Add(12 * time.Hour))
	if f1 != f2 || p1 != p2 || len(n1) != level.DefaultBlocks {
		t.Fatalf("expected identical levels within a day: %v (%d) vs %v (%d)", n1, p1, n2, p2)
	}

	differs := false
	for d := 1; d <= 5 && !differs; d++ {
		_, f, _ := generate(day.AddDate(0, 0, d))
		differs = f != f1
	}
	if !differs {
		t.Fatalf("expected levels of different days to differ")
	}
}

func TestFluidFunnelNeedsParticles(t *testing.T) {
	ctx := newContext(1)
	candidates := []level.Candidate{{Weight: 0.5, Operation: FluidFunnel{}}, {Weight: 1, Operation: Hill{}}}
	FluidFunnel{}.Prepare(ctx, candidates)
	if candidates[0].Weight != 0 || candidates[1].Weight != 1 {
		t.Fatalf("expected only the funnel to be disabled, got %v %v", candidates[0].Weight, candidates[1].Weight)
	}

	for i := 0; i < FunnelMinParticles; i++ {
		ctx.Particles.Push(ctx.ParticleTemplate)
	}
	candidates[0].Weight = 0.5
	FluidFunnel{}.Prepare(ctx, candidates)
	if candidates[0].Weight != 0.5 {
		t.Fatalf("expected funnel to stay enabled, got weight %v", candidates[0].Weight)
	}

	before := ctx.Particles.Len()
	FluidFunnel{}.Execute(ctx)
	if ctx.World.Emitters() == nil || len(ctx.World.Emitters()) != 1 {
		t.Fatalf("expected one emitter")
	}
	fluid := 0
	for i := before; i < ctx.Particles.Len(); i++ {
		if ctx.Particles.At(i).Material == sim.Fluid {
			fluid++
		}
	}
	if fluid != 9 {
		t.Fatalf("expected 9 fluid particles, got %d", fluid)
	}
}

func TestDropDirectionReverse(t *testing.T) {
	ctx := newContext(2)
	ctx.IsFirst = false
	candidates := []level.Candidate{{Weight: 0.5, Operation: DropDirectionReverse{}}, {Weight: 1, Operation: Elevator{}}}
	DropDirectionReverse{}.Prepare(ctx, candidates)
	if candidates[0].Weight != 0.5 {
		t.Fatalf("expected reversal to be allowed, got weight %v", candidates[0].Weight)
	}

	start := ctx.Cursor
	DropDirectionReverse{}.Execute(ctx)
	if ctx.XDirection != -1 || !ctx.XDirectionChanged {
		t.Fatalf("expected direction to flip, got %v (changed %v)", ctx.XDirection, ctx.XDirectionChanged)
	}
	if ctx.Cursor[1] >= start[1] {
		t.Fatalf("expected cursor to drop, got %v", ctx.Cursor)
	}

	DropDirectionReverse{}.Prepare(ctx, candidates)
	Elevator{}.Prepare(ctx, candidates)
	if candidates[0].Weight != 0 || candidates[1].Weight != 0 {
		t.Fatalf("expected reversal and elevator to be disabled after a reversal, got %v %v", candidates[0].Weight, candidates[1].Weight)
	}

	x := ctx.Cursor[0]
	Straight{}.Execute(ctx)
	if ctx.XDirectionChanged {
		t.Fatalf("expected the following block to clear the direction change")
	}
	if ctx.Cursor[0] >= x {
		t.Fatalf("expected the course to continue backwards, got %v from %v", ctx.Cursor[0], x)
	}
}

func TestElevatorExecute(t *testing.T) {
	ctx := newContext(3)
	start := ctx.Cursor
	Elevator{}.Execute(ctx)

	if len(ctx.World.Bodies()) != 1 || !ctx.World.Bodies()[0].Kinematic {
		t.Fatalf("expected one kinematic platform body")
	}
	if len(ctx.Entities.Elevators) != 1 {
		t.Fatalf("expected one elevator entity, got %d", len(ctx.Entities.Elevators))
	}
	e := ctx.Entities.Elevators[0]
	rise := e.Top[1] - e.Bottom[1]
	if rise < 2 || rise >= 5 {
		t.Fatalf("expected a rise in [2, 5), got %v", rise)
	}
	if math.Abs(ctx.Cursor[1]-start[1]-rise) > 1e-9 {
		t.Fatalf("expected cursor to end on the raised ledge, got %v", ctx.Cursor)
	}
	platform := ctx.World.Bodies()[e.Body].Particles
	if id, ok := ctx.World.BodyOf(platform[0]); !ok || id != e.Body {
		t.Fatalf("expected platform particles to belong to the elevator body")
	}
}

func TestSaggyBridgeExecute(t *testing.T) {
	ctx := newContext(4)
	SaggyBridge{}.Execute(ctx)
	hinges := ctx.World.Hinges()
	if len(hinges) != 2 {
		t.Fatalf("expected 2 hinges, got %d", len(hinges))
	}
	planks := hinges[1].Particle - hinges[0].Particle + 1
	if got := len(ctx.World.Sticks()); got != planks-1 {
		t.Fatalf("expected %d sticks, got %d", planks-1, got)
	}
	for _, s := range ctx.World.Sticks() {
		gap := ctx.Particles.At(s.B).Pos.Sub(ctx.Particles.At(s.A).Pos).Len()
		if s.Length <= gap {
			t.Fatalf("expected slack in every stick: length %v, gap %v", s.Length, gap)
		}
	}
}

func TestWaterBalloonDropExecute(t *testing.T) {
	ctx := newContext(6)
	WaterBalloonDrop{}.Execute(ctx)
	if got := len(ctx.World.Sticks()); got != balloonSegments {
		t.Fatalf("expected %d sticks, got %d", balloonSegments, got)
	}
	fluid := 0
	for _, p := range ctx.Particles.All() {
		if p.Material == sim.Fluid {
			fluid++
		}
	}
	if fluid != 5 {
		t.Fatalf("expected 5 fluid particles, got %d", fluid)
	}
}

func TestTerrainAdvancesCursor(t *testing.T) {
	for _, op := range []level.Operation{Hill{}, Straight{}, Cliff{}, SaggyBridge{}, WaterBalloonDrop{}, Elevator{}, Spawn{}, Finish{}} {
		ctx := newContext(8)
		ctx.XDirectionChanged = true
		op.Execute(ctx)
		if ctx.Cursor[0] <= 0 {
			t.Fatalf("%s: expected cursor to advance, got %v", level.Name(op), ctx.Cursor)
		}
		if ctx.XDirectionChanged {
			t.Fatalf("%s: expected direction change flag to be cleared", level.Name(op))
		}
		if ctx.Particles.Len() == 0 {
			t.Fatalf("%s: expected particles to be placed", level.Name(op))
		}
		for _, p := range ctx.Particles.All() {
			if p.Radius != level.ParticleRadius {
				t.Fatalf("%s: expected particle radius %v, got %v", level.Name(op), level.ParticleRadius, p.Radius)
			}
		}
	}
}

func TestSpawnCoversOrigin(t *testing.T) {
	ctx := newContext(1)
	Spawn{}.Execute(ctx)
	lo, hi, _ := ctx.Particles.Bounds()
	if lo[0] > 0 || hi[0] < 0 {
		t.Fatalf("expected the spawn platform to cover the origin, got %v..%v", lo, hi)
	}
	m, ok := ctx.Entities.Marker(entity.MarkerSpawn)
	if !ok || m.Pos != (mgl64.Vec2{}) {
		t.Fatalf("expected spawn marker at the origin")
	}
}

func TestClone(t *testing.T) {
	s := Straight{Chance: 3}
	c := s.Clone()
	if c != level.Operation(s) || c.DefaultSpawnChance() != 3 {
		t.Fatalf("expected clone to keep the chance, got %v", c.DefaultSpawnChance())
	}
	if (Straight{}).DefaultSpawnChance() != 1 {
		t.Fatalf("expected default chance 1")
	}
	if DefaultRegistry().Len() != 10 {
		t.Fatalf("expected 10 default operations, got %d", DefaultRegistry().Len())
	}
}

func TestForwardFollowsDirection(t *testing.T) {
	ctx := newContext(1)
	if got := forward(ctx, 2); got != (mgl64.Vec2{2, 0}) {
		t.Fatalf("expected (2, 0), got %v", got)
	}
	ctx.XDirection = -1
	if got := forward(ctx, 2); got != (mgl64.Vec2{-2, 0}) {
		t.Fatalf("expected (-2, 0) after a reversal, got %v", got)
	}
}
