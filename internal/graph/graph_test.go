package graph

import (
	"math"
	"math/rand"
	"testing"
)

func TestAddEdgeCreatesNodes(t *testing.T) {
	t.Parallel()
	g := New[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("c", "c")

	if g.NodeCount() != 3 || g.EdgeCount() != 3 {
		t.Fatalf("got %d nodes %d edges, want 3 and 3", g.NodeCount(), g.EdgeCount())
	}
	want := []string{"a", "b", "c"}
	for i, n := range g.Nodes() {
		if n != want[i] {
			t.Fatalf("node %d: got %q want %q", i, n, want[i])
		}
		idx, ok := g.Index(n)
		if !ok || g.Node(idx) != n {
			t.Fatalf("index round trip of %q failed", n)
		}
	}
	if g.OutDegree("a") != 2 || g.InDegree("b") != 2 {
		t.Fatalf("parallel edges must be kept: out(a)=%d in(b)=%d", g.OutDegree("a"), g.InDegree("b"))
	}
	if g.OutDegree("c") != 1 || g.InDegree("c") != 1 {
		t.Fatalf("self loop: out(c)=%d in(c)=%d", g.OutDegree("c"), g.InDegree("c"))
	}
	if g.HasNeighbor("b") {
		t.Fatalf("b has no outbound edge")
	}
	if g.HasNode("z") || g.OutDegree("z") != 0 {
		t.Fatalf("unknown node reported")
	}
	from, to := g.Edge(2)
	if g.Node(from) != "c" || g.Node(to) != "c" {
		t.Fatalf("edge 2: got %q -> %q", g.Node(from), g.Node(to))
	}
}

func TestAddNodeIsIdempotent(t *testing.T) {
	t.Parallel()
	g := New[int64]()
	first := g.AddNode(10)
	if again := g.AddNode(10); again != first || g.NodeCount() != 1 {
		t.Fatalf("re-adding a node changed the graph")
	}
}

func TestRandomNeighborIsUniform(t *testing.T) {
	t.Parallel()
	g := FromEdges([]Edge[int]{{From: 0, To: 1}, {From: 0, To: 2}, {From: 0, To: 3}, {From: 0, To: 3}})
	rng := rand.New(rand.NewSource(2))
	hits := map[int]int{}
	const draws = 80_000
	for range draws {
		n, ok := g.RandomNeighbor(0, rng)
		if !ok {
			t.Fatalf("node 0 has neighbours")
		}
		hits[n]++
	}
	// Uniform over edges, so the doubled edge to 3 is drawn twice as often.
	for n, want := range map[int]float64{1: 0.25, 2: 0.25, 3: 0.5} {
		if got := float64(hits[n]) / draws; math.Abs(got-want) > 0.01 {
			t.Fatalf("neighbour %d: frequency %.3f want %.2f", n, got, want)
		}
	}
	if _, ok := g.RandomNeighbor(1, rng); ok {
		t.Fatalf("node 1 has no outbound edge")
	}
	if _, ok := g.RandomNeighbor(99, rng); ok {
		t.Fatalf("unknown node has no neighbours")
	}
}
