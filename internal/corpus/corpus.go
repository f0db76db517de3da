// Package corpus holds sequences of tokens ("sentences") for training.
//
// Two shapes share the Corpus contract: Materialized stores every token up
// front in one flat buffer; Generated produces each sentence on demand from a
// pure generator function and a per-sentence seed captured at construction.
package corpus

import (
	"math/rand"
)

// Corpus is an indexed collection of sentences. Sentence must be safe to call
// from several goroutines at once.
type Corpus[W any] interface {
	SentenceCount() int
	Sentence(i int) []W
}

// Materialized is a flat token buffer plus separator offsets. Sentence i spans
// tokens[separators[i]:separators[i+1]].
type Materialized[W any] struct {
	tokens     []W
	separators []int
}

// NewMaterialized returns a corpus containing sentences in order.
func NewMaterialized[W any](sentences ...[]W) *Materialized[W] {
	c := &Materialized[W]{separators: []int{0}}
	for _, s := range sentences {
		c.AddSentence(s)
	}
	return c
}

// AddSentence appends tokens as a new sentence. Empty sentences are kept so
// indices line up with the input; training skips them.
func (c *Materialized[W]) AddSentence(tokens []W) {
	if len(c.separators) == 0 {
		c.separators = append(c.separators, 0)
	}
	c.tokens = append(c.tokens, tokens...)
	c.separators = append(c.separators, len(c.tokens))
}

func (c *Materialized[W]) SentenceCount() int {
	if len(c.separators) == 0 {
		return 0
	}
	return len(c.separators) - 1
}

// Sentence returns a read-only view into the flat buffer.
func (c *Materialized[W]) Sentence(i int) []W {
	start, end := c.separators[i], c.separators[i+1]
	return c.tokens[start:end:end]
}

// Len returns the total number of tokens.
func (c *Materialized[W]) Len() int {
	return len(c.tokens)
}

// Generator produces sentence index from seed. It must be deterministic in
// (index, seed) and safe for concurrent use.
type Generator[W any] func(index int, seed int64) []W

// Generated is a corpus whose sentences are produced lazily.
type Generated[W any] struct {
	gen   Generator[W]
	seeds []int64
}

// NewGenerated draws one seed per future sentence from rng, so repeated calls
// to Sentence(i) return the same sequence no matter which goroutine asks or
// in what order.
func NewGenerated[W any](gen Generator[W], count int, rng *rand.Rand) *Generated[W] {
	seeds := make([]int64, max(count, 0))
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	return &Generated[W]{gen: gen, seeds: seeds}
}

func (c *Generated[W]) SentenceCount() int {
	return len(c.seeds)
}

func (c *Generated[W]) Sentence(i int) []W {
	return c.gen(i, c.seeds[i])
}

// Encode maps every token of c through f. A materialized corpus is encoded
// eagerly into a new flat buffer; any other corpus is wrapped so tokens are
// mapped when a sentence is requested.
func Encode[W, T any](c Corpus[W], f func(W) T) Corpus[T] {
	if m, ok := c.(*Materialized[W]); ok {
		out := &Materialized[T]{
			tokens:     make([]T, len(m.tokens)),
			separators: append([]int(nil), m.separators...),
		}
		if len(out.separators) == 0 {
			out.separators = []int{0}
		}
		for i, w := range m.tokens {
			out.tokens[i] = f(w)
		}
		return out
	}
	return &mapped[W, T]{src: c, f: f}
}

type mapped[W, T any] struct {
	src Corpus[W]
	f   func(W) T
}

func (m *mapped[W, T]) SentenceCount() int {
	return m.src.SentenceCount()
}

func (m *mapped[W, T]) Sentence(i int) []T {
	words := m.src.Sentence(i)
	out := make([]T, len(words))
	for j, w := range words {
		out[j] = m.f(w)
	}
	return out
}
