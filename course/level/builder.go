package level

import (
	"log/slog"
	"time"

	"github.com/df-mc/gauntlet/course/entity"
	"github.com/df-mc/gauntlet/course/level/rand"
	"github.com/df-mc/gauntlet/course/sim"
)

// DefaultBlocks is the number of blocks generated for a dated level.
const DefaultBlocks = 10

// Config holds the settings of a Builder.
type Config struct {
	// Log is the Logger used for generation output. If nil, slog.Default()
	// is used.
	Log *slog.Logger
	// Registry holds the Operations to choose from. If nil, an empty Registry
	// is used and every generated level is empty.
	Registry *Registry
	// Blocks is the number of blocks generated by GenerateForDate. If 0 or
	// lower, DefaultBlocks is used.
	Blocks int
	// Handler is notified of every generated block. If nil, NopHandler is
	// used.
	Handler Handler
}

// New creates a Builder using the fields of conf.
func (conf Config) New() *Builder {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Registry == nil {
		conf.Registry = NewRegistry()
	}
	if conf.Blocks <= 0 {
		conf.Blocks = DefaultBlocks
	}
	if conf.Handler == nil {
		conf.Handler = NopHandler{}
	}
	if conf.Registry.Len() == 0 {
		conf.Log.Warn("level: registry is empty, generated levels will have no content")
	}
	return &Builder{conf: conf, log: conf.Log.With("subsystem", "level")}
}

// Builder composes levels from the Operations of a Registry.
type Builder struct {
	conf Config
	log  *slog.Logger
}

// NewBuilder returns a Builder with default settings choosing from r.
func NewBuilder(r *Registry) *Builder {
	return Config{Registry: r}.New()
}

// Registry returns the Registry the Builder chooses Operations from.
func (b *Builder) Registry() *Registry {
	return b.conf.Registry
}

// Blocks returns the number of blocks generated by GenerateForDate.
func (b *Builder) Blocks() int {
	return b.conf.Blocks
}

// Handle sets the Handler notified of generated blocks. Passing nil resets it
// to NopHandler. Handle must not be called during generation.
func (b *Builder) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	b.conf.Handler = h
}

// GenerateForDate generates a level seeded from the UTC day t falls on, so
// that every call on the same day produces the same level. The particles,
// world and entities passed are filled with the level's content and the
// Context of the run is returned.
func (b *Builder) GenerateForDate(t time.Time, entities *entity.System, particles *sim.Particles, world *sim.World) *Context {
	return b.GenerateSeeded(rand.SeedFromBeginningOfDay(t), entities, particles, world, b.conf.Blocks)
}

// GenerateSeeded creates a fresh Context around r and generates numBlocks
// blocks into it.
func (b *Builder) GenerateSeeded(r *rand.Random, entities *entity.System, particles *sim.Particles, world *sim.World, numBlocks int) *Context {
	ctx := NewContext(entities, particles, world, r)
	b.Generate(ctx, numBlocks)
	b.log.Info("Generated level.", "seed", r.Seed(), "blocks", numBlocks, "executed", len(ctx.Operations), "particles", particles.Len(), "entities", entities.Len())
	return ctx
}

// Generate adds numBlocks blocks to ctx. For every block, each registered
// Operation contributes a candidate with its default weight, every Operation
// may then adjust the weights, and one candidate is drawn at random in
// proportion to its weight and executed. If the weights of a block sum to
// zero or less, the block is skipped and ctx is left untouched.
func (b *Builder) Generate(ctx *Context, numBlocks int) *Builder {
	for bi := 0; bi < numBlocks; bi++ {
		ctx.IsFirst = bi == 0
		ctx.IsLast = bi == numBlocks-1

		candidates := b.conf.Registry.candidates()
		for op := range b.conf.Registry.All() {
			op.Prepare(ctx, candidates)
		}

		total := TotalWeight(candidates)
		if total <= 0 {
			b.log.Debug("Skipped block: no operation available.", "block", bi)
			b.conf.Handler.HandleSkip(ctx, bi)
			continue
		}
		// A positive total guarantees at least one selectable candidate.
		i, _ := Pick(candidates, ctx.Rand.Uniform(0, total))
		op := candidates[i].Operation
		ctx.Operations = append(ctx.Operations, op.Clone())
		op.Execute(ctx)

		b.log.Debug("Generated block.", "block", bi, "operation", Name(op), "cursor", ctx.Cursor)
		b.conf.Handler.HandleBlock(ctx, bi, op)
	}
	return b
}
