package sampling

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samcharles93/skipwalk/internal/tensor"
)

var (
	ErrEmptyWeights   = errors.New("sampling: weights cannot be empty")
	ErrNegativeWeight = errors.New("sampling: weights cannot be negative")
	ErrZeroWeights    = errors.New("sampling: sum of weights must be positive")
)

// slot keeps the probability and the alias of one table entry side by side so
// a draw touches a single cache line.
type slot struct {
	prob  float64
	alias int
}

// Alias draws indices from a fixed discrete distribution in O(1) using
// Walker's alias method.
//
// An Alias is immutable after construction and may be shared by any number
// of goroutines, each with its own *rand.Rand.
type Alias struct {
	slots []slot
}

// NewAlias builds the probability and alias tables for weights.
//
// Weights are scaled so that they sum to len(weights). Indices are then split
// into a small (<1) and a large (>=1) worklist and paired off: the small index
// keeps its scaled weight as probability and points its alias at the large
// index, whose leftover mass is reclassified. Indices left unpaired (including
// those stranded by rounding) get probability 1.
func NewAlias(weights []float64) (*Alias, error) {
	n := len(weights)
	if n == 0 {
		return nil, ErrEmptyWeights
	}
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: index %d", ErrNegativeWeight, i)
		}
	}
	sum := tensor.KahanSum(weights)
	if !(sum > 0) {
		return nil, ErrZeroWeights
	}

	scaled := make([]float64, n)
	factor := float64(n) / sum
	for i, w := range weights {
		scaled[i] = w * factor
	}

	slots := make([]slot, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, w := range scaled {
		slots[i].alias = i
		if w < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		slots[l].prob = scaled[l]
		slots[l].alias = g

		scaled[g] = (scaled[g] - 1) + scaled[l]
		if scaled[g] < 1 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}

	for _, g := range large {
		slots[g].prob = 1
	}
	for _, l := range small {
		slots[l].prob = 1
	}

	return &Alias{slots: slots}, nil
}

// Len returns the number of outcomes.
func (a *Alias) Len() int {
	return len(a.slots)
}

// Sample returns an index in [0, Len()) with probability proportional to its
// weight. It costs one uniform integer, one uniform real and one table lookup.
func (a *Alias) Sample(rng *rand.Rand) int {
	roll := rng.Intn(len(a.slots))
	s := a.slots[roll]
	if rng.Float64() < s.prob {
		return roll
	}
	return s.alias
}

// Probability returns the stored probability and alias for index i.
func (a *Alias) Probability(i int) (prob float64, alias int) {
	s := a.slots[i]
	return s.prob, s.alias
}
