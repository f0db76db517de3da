// Package graph is a directed multigraph over arbitrary comparable node ids.
//
// External ids are mapped to dense NodeIndex values in insertion order. Edges
// are stored once and referenced by EdgeIndex from both endpoints. Self loops
// and parallel edges are kept as given.
package graph

import "math/rand"

// NodeIndex is the dense internal index of a node.
type NodeIndex int32

// EdgeIndex is the dense internal index of an edge.
type EdgeIndex int32

// Edge is a directed edge between two external node ids.
type Edge[N comparable] struct {
	From, To N
}

type edgeData struct {
	from, to NodeIndex
}

type nodeData struct {
	out []EdgeIndex
	in  []EdgeIndex
}

// Graph is not safe for concurrent mutation. Once built, every read method
// may be called from many goroutines.
type Graph[N comparable] struct {
	index map[N]NodeIndex
	ids   []N
	nodes []nodeData
	edges []edgeData
}

// New returns an empty graph.
func New[N comparable]() *Graph[N] {
	return &Graph[N]{index: make(map[N]NodeIndex)}
}

// FromEdges builds a graph from an edge list.
func FromEdges[N comparable](edges []Edge[N]) *Graph[N] {
	g := New[N]()
	for _, e := range edges {
		g.AddEdge(e.From, e.To)
	}
	return g
}

// AddNode registers n and returns its index. Adding an existing node is a
// no-op.
func (g *Graph[N]) AddNode(n N) NodeIndex {
	if i, ok := g.index[n]; ok {
		return i
	}
	i := NodeIndex(len(g.ids))
	g.index[n] = i
	g.ids = append(g.ids, n)
	g.nodes = append(g.nodes, nodeData{})
	return i
}

// AddEdge appends a directed edge, creating either endpoint if needed.
func (g *Graph[N]) AddEdge(from, to N) EdgeIndex {
	f, t := g.AddNode(from), g.AddNode(to)
	e := EdgeIndex(len(g.edges))
	g.edges = append(g.edges, edgeData{from: f, to: t})
	g.nodes[f].out = append(g.nodes[f].out, e)
	g.nodes[t].in = append(g.nodes[t].in, e)
	return e
}

// HasNode reports whether n is in the graph.
func (g *Graph[N]) HasNode(n N) bool {
	_, ok := g.index[n]
	return ok
}

// Index returns the internal index of n.
func (g *Graph[N]) Index(n N) (NodeIndex, bool) {
	i, ok := g.index[n]
	return i, ok
}

// Node returns the external id stored at i.
func (g *Graph[N]) Node(i NodeIndex) N {
	return g.ids[i]
}

// Nodes returns every node id in index order.
func (g *Graph[N]) Nodes() []N {
	return append([]N(nil), g.ids...)
}

// Edge returns the endpoints of e.
func (g *Graph[N]) Edge(e EdgeIndex) (from, to NodeIndex) {
	d := g.edges[e]
	return d.from, d.to
}

// NodeCount returns the number of nodes.
func (g *Graph[N]) NodeCount() int { return len(g.ids) }

// EdgeCount returns the number of edges.
func (g *Graph[N]) EdgeCount() int { return len(g.edges) }

// OutDegree returns the number of edges leaving n, 0 for unknown nodes.
func (g *Graph[N]) OutDegree(n N) int {
	i, ok := g.index[n]
	if !ok {
		return 0
	}
	return len(g.nodes[i].out)
}

// InDegree returns the number of edges entering n, 0 for unknown nodes.
func (g *Graph[N]) InDegree(n N) int {
	i, ok := g.index[n]
	if !ok {
		return 0
	}
	return len(g.nodes[i].in)
}

// HasNeighbor reports whether n has an outbound edge.
func (g *Graph[N]) HasNeighbor(n N) bool {
	return g.OutDegree(n) > 0
}

// RandomNeighbor returns the target of an outbound edge of n chosen
// uniformly. ok is false when n is unknown or has no outbound edge.
func (g *Graph[N]) RandomNeighbor(n N, rng *rand.Rand) (N, bool) {
	var zero N
	i, ok := g.index[n]
	if !ok {
		return zero, false
	}
	j, ok := g.RandomNeighborAt(i, rng)
	if !ok {
		return zero, false
	}
	return g.ids[j], true
}

// OutDegreeAt is OutDegree by internal index.
func (g *Graph[N]) OutDegreeAt(i NodeIndex) int {
	return len(g.nodes[i].out)
}

// InDegreeAt is InDegree by internal index.
func (g *Graph[N]) InDegreeAt(i NodeIndex) int {
	return len(g.nodes[i].in)
}

// RandomNeighborAt is RandomNeighbor by internal index.
func (g *Graph[N]) RandomNeighborAt(i NodeIndex, rng *rand.Rand) (NodeIndex, bool) {
	out := g.nodes[i].out
	if len(out) == 0 {
		return 0, false
	}
	return g.edges[out[rng.Intn(len(out))]].to, true
}
