// Package embedding holds trained vectors keyed by token and the queries and
// file formats built on top of them.
package embedding

import (
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/samcharles93/skipwalk/internal/tensor"
)

var (
	ErrUnknownWord       = errors.New("embedding: unknown word")
	ErrDuplicateWord     = errors.New("embedding: duplicate word")
	ErrDimensionMismatch = errors.New("embedding: dimension mismatch")
	ErrCorruptFile       = errors.New("embedding: corrupt file")
	ErrInvalidKey        = errors.New("embedding: key cannot be stored")
	ErrInsufficientSpace = errors.New("embedding: insufficient disk space")
)

// Embeddings maps each token to a fixed-length vector. Vectors live in one
// row-major matrix; row i belongs to Words()[i].
type Embeddings[W comparable] struct {
	words   []W
	index   map[W]int
	vectors tensor.Mat

	normsOnce sync.Once
	norms     []float32
}

// New pairs words with the rows of vectors. The matrix is kept, not copied.
func New[W comparable](words []W, vectors tensor.Mat) (*Embeddings[W], error) {
	if len(words) != vectors.R {
		return nil, fmt.Errorf("%w: %d words for %d rows", ErrDimensionMismatch, len(words), vectors.R)
	}
	index := make(map[W]int, len(words))
	for i, w := range words {
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateWord, w)
		}
		index[w] = i
	}
	return &Embeddings[W]{words: words, index: index, vectors: vectors}, nil
}

// Len returns the number of tokens.
func (e *Embeddings[W]) Len() int { return len(e.words) }

// Dimension returns the vector length.
func (e *Embeddings[W]) Dimension() int { return e.vectors.C }

// Has reports whether w has a vector.
func (e *Embeddings[W]) Has(w W) bool {
	_, ok := e.index[w]
	return ok
}

// Get returns the vector of w. The slice aliases internal storage.
func (e *Embeddings[W]) Get(w W) ([]float32, bool) {
	i, ok := e.index[w]
	if !ok {
		return nil, false
	}
	return e.vectors.Row(i), true
}

// Words returns the tokens in row order.
func (e *Embeddings[W]) Words() []W {
	return append([]W(nil), e.words...)
}

// All iterates over (token, vector) pairs in row order.
func (e *Embeddings[W]) All() iter.Seq2[W, []float32] {
	return func(yield func(W, []float32) bool) {
		for i, w := range e.words {
			if !yield(w, e.vectors.Row(i)) {
				return
			}
		}
	}
}

// rowNorms returns the length of every row, computed on first use.
func (e *Embeddings[W]) rowNorms() []float32 {
	e.normsOnce.Do(func() {
		e.norms = tensor.RowNorms(&e.vectors)
	})
	return e.norms
}

// Similarity returns the cosine similarity of the vectors of a and b.
func (e *Embeddings[W]) Similarity(a, b W) (float32, error) {
	va, ok := e.Get(a)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownWord, a)
	}
	vb, ok := e.Get(b)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownWord, b)
	}
	return tensor.CosineSimilarity(va, vb), nil
}
