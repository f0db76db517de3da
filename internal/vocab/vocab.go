package vocab

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/rand"

	"github.com/samcharles93/skipwalk/internal/sampling"
)

var (
	ErrUnknownWord  = errors.New("vocab: unknown word")
	ErrIDOutOfRange = errors.New("vocab: id out of range")
	ErrEmpty        = errors.New("vocab: no words")
)

// ID is the dense identifier of a word. IDs are assigned contiguously from 0
// in the order words are first added, so they index model rows directly.
type ID int32

// Vocab maps words to IDs and back and keeps an occurrence count per ID.
//
// A Vocab is built by a single goroutine; once InitSampling has run it is
// read-only and safe for concurrent use.
type Vocab[W comparable] struct {
	word2id  map[W]ID
	id2word  []W
	counts   []int64
	unigrams *sampling.Alias
}

// New returns an empty vocabulary.
func New[W comparable]() *Vocab[W] {
	return &Vocab[W]{word2id: make(map[W]ID)}
}

// Add counts one occurrence of w, assigning the next ID if w is new.
func (v *Vocab[W]) Add(w W) ID {
	return v.AddCount(w, 1)
}

// AddCount counts n occurrences of w, assigning the next ID if w is new.
func (v *Vocab[W]) AddCount(w W, n int64) ID {
	if id, ok := v.word2id[w]; ok {
		v.counts[id] += n
		return id
	}
	if len(v.id2word) >= math.MaxInt32 {
		panic("vocab: too many words")
	}
	id := ID(len(v.id2word))
	v.word2id[w] = id
	v.id2word = append(v.id2word, w)
	v.counts = append(v.counts, n)
	return id
}

// ID returns the identifier of w.
func (v *Vocab[W]) ID(w W) (ID, error) {
	id, ok := v.word2id[w]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownWord, w)
	}
	return id, nil
}

// MustID is ID for callers that only pass words they added. It panics on an
// unknown word.
func (v *Vocab[W]) MustID(w W) ID {
	id, ok := v.word2id[w]
	if !ok {
		panic(fmt.Sprintf("vocab: unknown word %v", w))
	}
	return id
}

// Word returns the word registered under id.
func (v *Vocab[W]) Word(id ID) (W, error) {
	if id < 0 || int(id) >= len(v.id2word) {
		var zero W
		return zero, fmt.Errorf("%w: %d", ErrIDOutOfRange, id)
	}
	return v.id2word[id], nil
}

// Has reports whether w was added.
func (v *Vocab[W]) Has(w W) bool {
	_, ok := v.word2id[w]
	return ok
}

// Count returns the number of occurrences recorded for id.
func (v *Vocab[W]) Count(id ID) int64 {
	return v.counts[id]
}

// Size returns the number of distinct words.
func (v *Vocab[W]) Size() int {
	return len(v.id2word)
}

// Words returns a copy of the words in ID order.
func (v *Vocab[W]) Words() []W {
	return append([]W(nil), v.id2word...)
}

// All iterates over (ID, word) pairs in ID order.
func (v *Vocab[W]) All() iter.Seq2[ID, W] {
	return func(yield func(ID, W) bool) {
		for i, w := range v.id2word {
			if !yield(ID(i), w) {
				return
			}
		}
	}
}

// InitSampling builds the noise distribution: ID i is drawn with probability
// proportional to count[i]^factor. It must run after counting is complete.
func (v *Vocab[W]) InitSampling(factor float64) error {
	if len(v.counts) == 0 {
		return ErrEmpty
	}
	weights := make([]float64, len(v.counts))
	for i, c := range v.counts {
		weights[i] = math.Pow(float64(c), factor)
	}
	alias, err := sampling.NewAlias(weights)
	if err != nil {
		return fmt.Errorf("vocab: init sampling: %w", err)
	}
	v.unigrams = alias
	return nil
}

// Sample draws an ID from the noise distribution. InitSampling must have been
// called first.
func (v *Vocab[W]) Sample(rng *rand.Rand) ID {
	return ID(v.unigrams.Sample(rng))
}
