package rand

import (
	"math/rand/v2"
	"time"

	"github.com/segmentio/fasthash/fnv1a"
)

// Random is a seedable pseudo-random generator used for level generation. All
// randomness of a generation run is drawn from a single Random, so a run can
// be replayed entirely from the seed it was created with. A Random is not
// safe for concurrent use.
type Random struct {
	seed int64
	src  *rand.PCG
	r    *rand.Rand
}

// NewRandom returns a Random seeded with the seed passed.
func NewRandom(seed int64) *Random {
	r := &Random{}
	r.SetSeed(seed)
	return r
}

// SetSeed resets the generator to the start of the stream of the seed passed.
func (r *Random) SetSeed(seed int64) {
	r.seed = seed
	r.src = rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	r.r = rand.New(r.src)
}

// Seed returns the seed the Random was last seeded with.
func (r *Random) Seed() int64 {
	return r.seed
}

// Float64 returns a value in [0, 1).
func (r *Random) Float64() float64 {
	return r.r.Float64()
}

// Uniform returns a value in [low, high). If high is not greater than low,
// low is returned without advancing the stream.
func (r *Random) Uniform(low, high float64) float64 {
	if high <= low {
		return low
	}
	v := low + r.r.Float64()*(high-low)
	if v >= high {
		// Rounding of low+f*(high-low) may land on high for very wide ranges.
		v = low
	}
	return v
}

// Range returns a value in [low, high], both inclusive.
func (r *Random) Range(low, high int32) int32 {
	if high <= low {
		return low
	}
	return low + r.r.Int32N(high-low+1)
}

// Int31n returns a value in [0, n). It panics if n <= 0.
func (r *Random) Int31n(n int32) int32 {
	return r.r.Int32N(n)
}

// Bool returns true or false with equal probability.
func (r *Random) Bool() bool {
	return r.r.Uint64()&1 == 1
}

// Clone returns an independent Random positioned at the same point of the
// same stream. Draws from the clone do not affect r and vice versa.
func (r *Random) Clone() *Random {
	src := *r.src
	return &Random{seed: r.seed, src: &src, r: rand.New(&src)}
}

// DaySeed returns the seed for the UTC calendar day t falls on: the Unix time
// of midnight at the start of that day. Every t within the same day yields the
// same seed.
func DaySeed(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// WeekSeed returns the seed for the ISO week t falls on: the Unix time of
// midnight on the Monday starting that week, in UTC.
func WeekSeed(t time.Time) int64 {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

// SeedFromBeginningOfDay returns a Random seeded with DaySeed(t).
func SeedFromBeginningOfDay(t time.Time) *Random {
	return NewRandom(DaySeed(t))
}

// SeedFromBeginningOfWeek returns a Random seeded with WeekSeed(t).
func SeedFromBeginningOfWeek(t time.Time) *Random {
	return NewRandom(WeekSeed(t))
}

// PhraseSeed hashes a free-form seed phrase into a seed.
func PhraseSeed(phrase string) int64 {
	return int64(fnv1a.HashString64(phrase))
}

// SeedFromPhrase returns a Random seeded with PhraseSeed(phrase).
func SeedFromPhrase(phrase string) *Random {
	return NewRandom(PhraseSeed(phrase))
}
