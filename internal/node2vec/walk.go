package node2vec

import (
	"math/rand"

	"github.com/samcharles93/skipwalk/internal/graph"
)

// WalkGenerator produces backtracking random walks. Generate only reads the
// graph, so one generator serves every training goroutine.
type WalkGenerator[N comparable] struct {
	g         *graph.Graph[N]
	backtrack float64
	length    int
}

// NewWalkGenerator returns a generator over g.
func NewWalkGenerator[N comparable](g *graph.Graph[N], s Settings) *WalkGenerator[N] {
	return &WalkGenerator[N]{
		g:         g,
		backtrack: s.BacktrackProbability,
		length:    s.WalkLength,
	}
}

// Generate returns walk number index. The walk starts at node
// index % NodeCount and is fully determined by seed. It is shorter than the
// configured length when it reaches a node with no outbound edge.
func (w *WalkGenerator[N]) Generate(index int, seed int64) []N {
	count := w.g.NodeCount()
	if w.length <= 0 || count == 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))

	walk := make([]graph.NodeIndex, 1, w.length)
	walk[0] = graph.NodeIndex(index % count)
	for len(walk) < w.length {
		next, ok := w.step(walk, rng)
		if !ok {
			break
		}
		walk = append(walk, next)
	}

	out := make([]N, len(walk))
	for i, n := range walk {
		out[i] = w.g.Node(n)
	}
	return out
}

// step picks a uniform neighbour of the last node, or, with probability
// backtrack, of the node before it. The first step always leaves the start.
func (w *WalkGenerator[N]) step(walk []graph.NodeIndex, rng *rand.Rand) (graph.NodeIndex, bool) {
	from := walk[len(walk)-1]
	if len(walk) > 1 && rng.Float64() < w.backtrack {
		from = walk[len(walk)-2]
	}
	return w.g.RandomNeighborAt(from, rng)
}
