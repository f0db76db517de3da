package embedding

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/samcharles93/skipwalk/internal/tensor"
)

// Neighbor is one result of a similarity query.
type Neighbor[W comparable] struct {
	Word       W
	Similarity float32
}

// neighborHeap is a min-heap on similarity, so the weakest of the current
// top k sits at the root.
type neighborHeap[W comparable] []Neighbor[W]

func (h neighborHeap[W]) Len() int           { return len(h) }
func (h neighborHeap[W]) Less(i, j int) bool { return h[i].Similarity < h[j].Similarity }
func (h neighborHeap[W]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap[W]) Push(x any)        { *h = append(*h, x.(Neighbor[W])) }
func (h *neighborHeap[W]) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

// Nearest returns the k tokens whose vectors have the highest cosine
// similarity to vec, best first. Tokens listed in exclude are skipped.
func (e *Embeddings[W]) Nearest(vec []float32, k int, exclude ...W) ([]Neighbor[W], error) {
	if len(vec) != e.Dimension() {
		return nil, fmt.Errorf("%w: query has %d values, embeddings have %d", ErrDimensionMismatch, len(vec), e.Dimension())
	}
	if k <= 0 {
		return nil, nil
	}
	skip := make(map[W]struct{}, len(exclude))
	for _, w := range exclude {
		skip[w] = struct{}{}
	}

	dots := make([]float32, len(e.words))
	tensor.MatVec(dots, &e.vectors, vec)
	norms := e.rowNorms()
	qn := float32(tensor.Norm(vec))

	h := make(neighborHeap[W], 0, k+1)
	for i, w := range e.words {
		if _, ok := skip[w]; ok {
			continue
		}
		var sim float32
		if qn != 0 && norms[i] != 0 {
			sim = dots[i] / (qn * norms[i])
		}
		if len(h) < k {
			heap.Push(&h, Neighbor[W]{Word: w, Similarity: sim})
			continue
		}
		if sim > h[0].Similarity {
			h[0] = Neighbor[W]{Word: w, Similarity: sim}
			heap.Fix(&h, 0)
		}
	}
	out := []Neighbor[W](h)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	return out, nil
}

// NearestTo returns the k nearest tokens to w, excluding w itself.
func (e *Embeddings[W]) NearestTo(w W, k int) ([]Neighbor[W], error) {
	vec, ok := e.Get(w)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownWord, w)
	}
	return e.Nearest(vec, k, w)
}
