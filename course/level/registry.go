package level

import (
	"iter"
	"slices"
)

// Registry holds the Operations a Builder may choose from, in the order they
// were registered. The order matters: Prepare is called in registry order and
// earlier Operations win ties during selection.
//
// Registering the same Operation more than once is allowed and doubles its
// presence in every candidate list. A Registry must not be modified while a
// Builder is generating with it.
type Registry struct {
	ops []Operation
}

// NewRegistry returns a Registry holding the Operations passed, in order.
func NewRegistry(ops ...Operation) *Registry {
	r := &Registry{}
	for _, op := range ops {
		r.Register(op)
	}
	return r
}

// Register appends op to the Registry.
func (r *Registry) Register(op Operation) {
	if op == nil {
		panic("level.Registry.Register: operation must not be nil")
	}
	r.ops = append(r.ops, op)
}

// All iterates over the registered Operations in registration order.
func (r *Registry) All() iter.Seq[Operation] {
	return slices.Values(r.ops)
}

// Operations returns a copy of the registered Operations in registration
// order.
func (r *Registry) Operations() []Operation {
	return slices.Clone(r.ops)
}

// Len returns the number of registered Operations.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ops)
}

// candidates builds a fresh candidate list for one block: one entry per
// registered Operation with its default weight and a clone of the Operation.
func (r *Registry) candidates() []Candidate {
	list := make([]Candidate, len(r.ops))
	for i, op := range r.ops {
		list[i] = Candidate{Weight: op.DefaultSpawnChance(), Operation: op.Clone()}
	}
	return list
}
