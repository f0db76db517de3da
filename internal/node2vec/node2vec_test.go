package node2vec

import (
	"errors"
	"math"
	"testing"

	"github.com/samcharles93/skipwalk/internal/graph"
	"github.com/samcharles93/skipwalk/internal/tensor"
	"github.com/samcharles93/skipwalk/internal/word2vec"
)

func walkSettings(backtrack float64, length int) Settings {
	s := DefaultSettings()
	s.BacktrackProbability = backtrack
	s.WalkLength = length
	return s
}

func cycle(k int) *graph.Graph[int64] {
	g := graph.New[int64]()
	for i := range k {
		g.AddEdge(int64(i), int64((i+1)%k))
	}
	return g
}

func TestCycleWalkHasNoRepeats(t *testing.T) {
	t.Parallel()
	const k = 7
	gen := NewWalkGenerator(cycle(k), walkSettings(0, k))
	for index := range 3 * k {
		walk := gen.Generate(index, int64(index)*31+1)
		if len(walk) != k {
			t.Fatalf("walk %d: got length %d want %d", index, len(walk), k)
		}
		if walk[0] != int64(index%k) {
			t.Fatalf("walk %d starts at %d, want %d", index, walk[0], index%k)
		}
		seen := map[int64]bool{}
		for _, n := range walk {
			if seen[n] {
				t.Fatalf("walk %d revisits %d: %v", index, n, walk)
			}
			seen[n] = true
		}
	}
}

func TestTwoNodeWalks(t *testing.T) {
	t.Parallel()
	g := graph.FromEdges([]graph.Edge[string]{{From: "a", To: "b"}, {From: "b", To: "a"}})

	forward := NewWalkGenerator(g, walkSettings(0, 10))
	walk := forward.Generate(0, 5)
	for i := 1; i < len(walk); i++ {
		if walk[i] == walk[i-1] {
			t.Fatalf("backtrack 0 must alternate: %v", walk)
		}
	}

	// Always stepping from the node two back: w[i] is the neighbour of w[i-2],
	// so the walk goes a, b, b, a, a, ... and does not strictly alternate.
	back := NewWalkGenerator(g, walkSettings(1, 10))
	walk = back.Generate(0, 5)
	if len(walk) != 10 || walk[0] != "a" || walk[1] != "b" {
		t.Fatalf("unexpected walk %v", walk)
	}
	for i := 2; i < len(walk); i++ {
		if walk[i] == walk[i-2] {
			t.Fatalf("backtrack 1: step %d repeats the node two back: %v", i, walk)
		}
	}
}

func TestWalkStopsAtDeadEnd(t *testing.T) {
	t.Parallel()
	g := graph.FromEdges([]graph.Edge[int]{{From: 1, To: 2}})
	if walk := NewWalkGenerator(g, walkSettings(0, 80)).Generate(0, 1); len(walk) != 2 {
		t.Fatalf("expected the walk to stop at the sink, got %v", walk)
	}
	// Starting at the sink yields just the start node.
	if walk := NewWalkGenerator(g, walkSettings(0, 80)).Generate(1, 1); len(walk) != 1 || walk[0] != 2 {
		t.Fatalf("walk from sink: got %v", walk)
	}
	if walk := NewWalkGenerator(g, walkSettings(0, 0)).Generate(0, 1); walk != nil {
		t.Fatalf("zero length walk: got %v", walk)
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	g := graph.New[int]()
	for i := range 20 {
		for j := range 4 {
			g.AddEdge(i, (i*7+j*3+1)%20)
		}
	}
	gen := NewWalkGenerator(g, walkSettings(0.5, 40))
	a, b := gen.Generate(3, 99), gen.Generate(3, 99)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("walks differ at %d: %v vs %v", i, a, b)
		}
	}
}

func TestLearnEmbeddingsSeparatesComponents(t *testing.T) {
	t.Parallel()
	var edges []graph.Edge[int64]
	for _, base := range []int64{0, 100} {
		for i := range int64(4) {
			for j := range int64(4) {
				if i != j {
					edges = append(edges, graph.Edge[int64]{From: base + i, To: base + j})
				}
			}
		}
	}

	s := DefaultSettings()
	s.Verbose = false
	s.Dimension = 16
	s.Epochs = 3
	s.WalkLength = 20
	s.WalksPerNode = 40
	s.Workers = 2
	s.Seed = 11
	n2v, err := New[int64](s)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	emb, err := n2v.LearnEmbeddings(edges)
	if err != nil {
		t.Fatalf("learn: %v", err)
	}
	if emb.Len() != 8 || emb.Dimension() != 16 {
		t.Fatalf("got %d embeddings of dimension %d", emb.Len(), emb.Dimension())
	}
	for node, v := range emb.All() {
		if n := tensor.Norm(v); math.Abs(n-1) > 1e-5 {
			t.Fatalf("node %d: norm %f", node, n)
		}
		nn, err := emb.NearestTo(node, 3)
		if err != nil {
			t.Fatalf("nearest: %v", err)
		}
		for _, other := range nn {
			if other.Word/100 != node/100 {
				t.Fatalf("node %d: neighbour %d from the other component (%+v)", node, other.Word, nn)
			}
		}
	}
}

func TestLearnEmbeddingsEmptyGraph(t *testing.T) {
	t.Parallel()
	s := DefaultSettings()
	s.Verbose = false
	n2v, err := New[int64](s)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := n2v.LearnEmbeddings(nil); !errors.Is(err, ErrEmptyGraph) {
		t.Fatalf("expected ErrEmptyGraph, got %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()
	s := DefaultSettings()
	s.BacktrackProbability = 1.5
	if _, err := New[int](s); !errors.Is(err, word2vec.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	s = DefaultSettings()
	s.Dimension = 0
	if err := s.Validate(); !errors.Is(err, word2vec.ErrInvalidSettings) {
		t.Fatalf("embedded settings not validated: %v", err)
	}
}
