// Package model holds the two embedding matrices trained by skip-gram.
//
// Rows are handed out as plain slices. Training goroutines write to them
// without synchronization and may race on the same row; the float data is
// never guarded by locks or atomics.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/samcharles93/skipwalk/internal/parallel"
	"github.com/samcharles93/skipwalk/internal/sampling"
	"github.com/samcharles93/skipwalk/internal/tensor"
)

var (
	ErrInsufficientMemory = errors.New("model: insufficient memory")
	ErrInvalidShape       = errors.New("model: invalid shape")
)

// availableMemory reports the bytes the OS can hand out without swapping.
var availableMemory = func() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// Model stores word (input) and context (output) embeddings as two
// rows × cols row-major matrices.
type Model struct {
	rows, cols int
	words      tensor.Mat
	contexts   tensor.Mat
	freed      bool
}

// New returns an empty model. Call Resize before use.
func New() *Model {
	return &Model{}
}

// Resize allocates both matrices, discarding any previous contents. It
// refuses shapes whose buffers would not fit in available memory.
func (m *Model) Resize(rows, cols int) error {
	if rows < 0 || cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if rows > 0 && cols > math.MaxInt/8/rows {
		return fmt.Errorf("%w: %dx%d overflows", ErrInsufficientMemory, rows, cols)
	}
	need := uint64(2 * rows * cols * 4)
	if avail, err := availableMemory(); err == nil && need > avail {
		return fmt.Errorf("%w: need %.1f MiB, %.1f MiB available",
			ErrInsufficientMemory, float64(need)/(1<<20), float64(avail)/(1<<20))
	}
	m.rows, m.cols = rows, cols
	m.words = tensor.NewMat(rows, cols)
	m.contexts = tensor.NewMat(rows, cols)
	m.freed = false
	return nil
}

// Rows returns the number of embedding rows.
func (m *Model) Rows() int { return m.rows }

// Cols returns the embedding dimension.
func (m *Model) Cols() int { return m.cols }

// Init fills every word cell with uniform(-0.5, 0.5)/cols and zeroes the
// context matrix. Rows are split statically across the pool's generators, so
// a fixed seed gives the same model for a given pool size.
func (m *Model) Init(pool *sampling.RNGPool) {
	scale := float32(m.cols)
	parallel.For(pool.Size(), m.rows, func(worker, start, end int) {
		lo, hi := start*m.cols, end*m.cols
		m.words.FillUniform(pool.Get(worker), lo, hi, -0.5, 0.5, scale)
		if !m.freed {
			m.contexts.Zero(lo, hi)
		}
	})
}

// WordEmbedding returns the mutable word row for id. id must be < Rows.
func (m *Model) WordEmbedding(id int) View {
	return View(m.words.Row(id))
}

// ContextEmbedding returns the mutable context row for id. id must be < Rows
// and the context matrix must not have been freed.
func (m *Model) ContextEmbedding(id int) View {
	return View(m.contexts.Row(id))
}

// Normalize scales every row of both matrices to unit L2 norm. All-zero rows
// are left alone.
func (m *Model) Normalize(workers int) {
	parallel.For(workers, m.rows, func(_, start, end int) {
		for i := start; i < end; i++ {
			tensor.Normalize(m.words.Row(i))
			if !m.freed {
				tensor.Normalize(m.contexts.Row(i))
			}
		}
	})
}

// FreeContextEmbeddings drops the context matrix. Only word embeddings are
// needed once training is over.
func (m *Model) FreeContextEmbeddings() {
	m.contexts = tensor.Mat{}
	m.freed = true
}

// HasContextEmbeddings reports whether the context matrix is still allocated.
func (m *Model) HasContextEmbeddings() bool {
	return !m.freed && m.contexts.Data != nil
}

// SizeMB is the current footprint of the allocated matrices in MiB.
func (m *Model) SizeMB() float64 {
	n := len(m.words.Data) + len(m.contexts.Data)
	return float64(n) * 4 / (1 << 20)
}

// EstimateSizeMB returns the footprint of a rows × cols model in MiB.
func EstimateSizeMB(rows, cols int) float64 {
	return float64(rows) * float64(cols) * 4 * 2 / (1 << 20)
}

// CopyWordEmbeddings returns an independent copy of the word matrix.
func (m *Model) CopyWordEmbeddings() tensor.Mat {
	out := tensor.NewMat(m.rows, m.cols)
	copy(out.Data, m.words.Data)
	return out
}
