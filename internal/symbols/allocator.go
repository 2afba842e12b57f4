package symbols

import "math/rand/v2"

// Allocator hands out identities for declarations. Scopes.Declare rejects NoID.
type Allocator interface {
	Next() ID
}

// RandomAllocator draws uniformly from the 64-bit space.
type RandomAllocator struct {
	rng *rand.Rand
}

// NewRandomAllocator uses the runtime-seeded global source.
func NewRandomAllocator() *RandomAllocator {
	return &RandomAllocator{}
}

// NewSeededAllocator is reproducible for a given seed.
func NewSeededAllocator(seed uint64) *RandomAllocator {
	return &RandomAllocator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (a *RandomAllocator) Next() ID {
	for {
		var v uint64
		if a.rng != nil {
			v = a.rng.Uint64()
		} else {
			v = rand.Uint64()
		}
		if id := ID(v); id.IsValid() {
			return id
		}
	}
}

// SequentialAllocator returns 1, 2, 3, ... and is meant for tests and dumps
// that must not change between runs.
type SequentialAllocator struct {
	next uint64
}

func NewSequentialAllocator() *SequentialAllocator {
	return &SequentialAllocator{}
}

func (a *SequentialAllocator) Next() ID {
	a.next++
	return ID(a.next)
}

// FixedAllocator replays a list of identities and returns NoID once
// exhausted. It lets tests force collisions.
type FixedAllocator struct {
	IDs []ID
	pos int
}

func (a *FixedAllocator) Next() ID {
	if a.pos >= len(a.IDs) {
		return NoID
	}
	id := a.IDs[a.pos]
	a.pos++
	return id
}
