// Package course ties level generation, the simulation containers and record
// storage together into a daily course that may be reset at any time.
package course

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/df-mc/gauntlet/course/coursedb"
	"github.com/df-mc/gauntlet/course/entity"
	"github.com/df-mc/gauntlet/course/level"
	"github.com/df-mc/gauntlet/course/level/block"
	"github.com/df-mc/gauntlet/course/level/rand"
	"github.com/df-mc/gauntlet/course/sim"
	"github.com/go-gl/mathgl/mgl64"
)

// DayLayout is the layout days are formatted with in records.
const DayLayout = time.DateOnly

// CarSpawn is the position the car is placed at after a level is generated.
var CarSpawn = mgl64.Vec2{0, 1}

// Level is a generated level together with the containers it was generated
// into.
type Level struct {
	Record    coursedb.Record
	Particles *sim.Particles
	World     *sim.World
	Entities  *entity.System
	Car       *entity.Car
	// Operations holds the executed operations in order.
	Operations []level.Operation
}

// Course generates the level of the day and keeps it until it is reset. A
// Course is safe for concurrent use.
type Course struct {
	conf    Config
	log     *slog.Logger
	builder *level.Builder

	mu      sync.Mutex
	current *Level
}

// New creates a Course using the fields of conf. No level is generated until
// Reset is called.
func (conf Config) New() *Course {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.Registry == nil {
		conf.Registry = block.DefaultRegistry()
	}
	if conf.Blocks <= 0 {
		conf.Blocks = level.DefaultBlocks
	}
	if conf.SeedMode == "" {
		conf.SeedMode = SeedDay
	}
	if conf.Provider == nil {
		conf.Provider = coursedb.NopProvider{}
	}
	if conf.Handler == nil {
		conf.Handler = level.NopHandler{}
	}
	return &Course{
		conf:    conf,
		log:     conf.Log.With("subsystem", "course"),
		builder: level.Config{Log: conf.Log, Registry: conf.Registry, Blocks: conf.Blocks}.New(),
	}
}

// Random returns the generator a level reset at now is built with.
func (c *Course) Random(now time.Time) *rand.Random {
	switch c.conf.SeedMode {
	case SeedWeek:
		return rand.SeedFromBeginningOfWeek(now)
	case SeedFixed:
		return rand.NewRandom(c.conf.Seed)
	case SeedPhrase:
		return rand.SeedFromPhrase(c.conf.Phrase)
	default:
		return rand.SeedFromBeginningOfDay(now)
	}
}

// Reset throws away the current level and generates a new one for now into
// fresh containers. The car is spawned at CarSpawn and a Record of the level
// is stored. The new level is returned even if storing the record failed.
func (c *Course) Reset(now time.Time) (*Level, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	particles, world, entities := sim.NewParticles(), sim.NewWorld(), entity.NewSystem()
	path := &level.PathRecorder{}
	c.builder.Handle(level.MultiHandler(path, c.conf.Handler))

	r := c.Random(now)
	seed := r.Seed()
	ctx := c.builder.GenerateSeeded(r, entities, particles, world, c.conf.Blocks)
	car := spawnCar(ctx)

	l := &Level{
		Particles:  particles,
		World:      world,
		Entities:   entities,
		Car:        car,
		Operations: ctx.Operations,
		Record: coursedb.Record{
			Day:         now.UTC().Format(DayLayout),
			Seed:        seed,
			Blocks:      c.conf.Blocks,
			Operations:  make([]string, len(ctx.Operations)),
			Path:        path.Path,
			Particles:   particles.Len(),
			Fingerprint: level.Fingerprint(ctx.Operations, path.Path),
		},
	}
	for i, op := range ctx.Operations {
		l.Record.Operations[i] = level.Name(op)
	}
	if len(path.Skipped) > 0 {
		c.log.Warn("Level has skipped blocks.", "day", l.Record.Day, "skipped", path.Skipped)
	}
	c.current = l
	c.log.Info("Course reset.", "day", l.Record.Day, "mode", string(c.conf.SeedMode), "seed", seed, "fingerprint", fmt.Sprintf("%016x", l.Record.Fingerprint))

	if err := c.conf.Provider.Save(l.Record); err != nil {
		return l, fmt.Errorf("save record: %w", err)
	}
	return l, nil
}

// spawnCar places the car's chassis at CarSpawn as a single rigid body.
func spawnCar(ctx *level.Context) *entity.Car {
	p := ctx.ParticleTemplate.WithMass(2)
	indices := make([]int, 0, 4)
	for _, x := range []float64{-0.3, -0.1, 0.1, 0.3} {
		indices = append(indices, ctx.Particles.Push(p.At(CarSpawn.Add(mgl64.Vec2{x, 0}))))
	}
	ctx.World.AddBody(ctx.Particles, indices, false)
	return ctx.Entities.AddCar(&entity.Car{Pos: CarSpawn, Particles: indices})
}

// Level returns the current level, or false if the Course was never reset.
func (c *Course) Level() (*Level, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.current != nil
}

// Record returns the stored record of day.
func (c *Course) Record(day time.Time) (coursedb.Record, error) {
	return c.conf.Provider.Load(day.UTC().Format(DayLayout))
}

// History returns all stored records ordered by day.
func (c *Course) History() ([]coursedb.Record, error) {
	return c.conf.Provider.Records()
}

// Close closes the record Provider of the Course.
func (c *Course) Close() error {
	if err := c.conf.Provider.Close(); err != nil {
		return fmt.Errorf("close provider: %w", err)
	}
	return nil
}
