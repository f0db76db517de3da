package sampling

import (
	"math/rand"
	"time"
)

// RNGPool holds one independent generator per worker. A generator is only
// ever used by the worker that owns its slot, so no locking is needed and
// workers never produce correlated streams.
type RNGPool struct {
	seed int64
	rngs []*rand.Rand
}

// NewRNGPool creates size generators. Worker i is seeded with seed+i. A zero
// seed picks one from the clock.
func NewRNGPool(size int, seed int64) *RNGPool {
	if size < 1 {
		size = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p := &RNGPool{
		seed: seed,
		rngs: make([]*rand.Rand, size),
	}
	for i := range p.rngs {
		p.rngs[i] = rand.New(rand.NewSource(seed + int64(i)))
	}
	return p
}

// Get returns the generator owned by worker.
func (p *RNGPool) Get(worker int) *rand.Rand {
	return p.rngs[worker]
}

// Size returns the number of generators.
func (p *RNGPool) Size() int {
	return len(p.rngs)
}

// Seed returns the base seed the pool was created with.
func (p *RNGPool) Seed() int64 {
	return p.seed
}
