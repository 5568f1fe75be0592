package level

import (
	"fmt"
	"strings"
)

// Operation produces the content of one block of a course. Implementations
// are small values, usually stateless, that are registered once in a Registry
// and cloned for every block they are considered for.
type Operation interface {
	// DefaultSpawnChance returns the weight the Operation is selected with
	// before any Operation adjusts it for the current block.
	DefaultSpawnChance() float64
	// Prepare may change the weight of any candidate, including candidates
	// of other Operations, for the block about to be generated. It is called
	// on every registered Operation in registry order, so changes made by
	// earlier Operations are visible to later ones. Prepare must only read
	// ctx.
	Prepare(ctx *Context, candidates []Candidate)
	// Execute builds the block: it advances the cursor, may change the
	// direction of the course and adds particles, constraints and entities.
	Execute(ctx *Context)
	// Clone returns an independent copy of the Operation.
	Clone() Operation
}

// Candidate pairs an Operation with its selection weight for one block.
type Candidate struct {
	Weight    float64
	Operation Operation
}

// Pick selects a candidate by walking the list in order and subtracting each
// weight from value. The first candidate at which value drops to zero or below
// is returned: for weights [2, 1, 1] values up to 2 select the first, values
// in (2, 3] the second and values in (3, 4) the third candidate, so earlier
// candidates win exact boundaries. Every weight is subtracted, so a negative
// weight shifts the walk towards later candidates, but a candidate with a
// weight of zero or less is never returned itself; the walk continues to the
// next positive one. If value is left above zero after the last candidate,
// the last positive candidate is returned. ok is false if no candidate has a
// positive weight.
func Pick(candidates []Candidate, value float64) (index int, ok bool) {
	last := -1
	for i, c := range candidates {
		value -= c.Weight
		if c.Weight <= 0 {
			continue
		}
		last = i
		if value <= 0 {
			return i, true
		}
	}
	return last, last >= 0
}

// TotalWeight returns the sum of all candidate weights.
func TotalWeight(candidates []Candidate) float64 {
	var total float64
	for _, c := range candidates {
		total += c.Weight
	}
	return total
}

// Name returns a human readable name of op. Operations may implement
// Name() string; otherwise the name of the type is used.
func Name(op Operation) string {
	if n, ok := op.(interface{ Name() string }); ok {
		return n.Name()
	}
	name := fmt.Sprintf("%T", op)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimPrefix(name, "*")
}
