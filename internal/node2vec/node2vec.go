// Package node2vec embeds graph nodes by training skip-gram on random walks.
//
// Walks are never stored: the corpus keeps one seed per walk and regenerates
// a walk each time the trainer asks for it.
package node2vec

import (
	"errors"
	"math/rand"
	"time"

	"github.com/samcharles93/skipwalk/internal/corpus"
	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/graph"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/word2vec"
)

var ErrEmptyGraph = errors.New("node2vec: graph has no nodes")

// Node2Vec learns one embedding per node of a directed graph.
type Node2Vec[N comparable] struct {
	settings Settings
	w2v      *word2vec.Word2Vec[N]
	log      logger.Logger
}

// New validates s. Options are passed to the underlying trainer.
func New[N comparable](s Settings, opts ...word2vec.Option) (*Node2Vec[N], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w2v, err := word2vec.New[N](s.Settings, opts...)
	if err != nil {
		return nil, err
	}
	return &Node2Vec[N]{settings: s, w2v: w2v, log: w2v.Logger()}, nil
}

// Word2Vec exposes the trainer, for its vocabulary and run id.
func (n *Node2Vec[N]) Word2Vec() *word2vec.Word2Vec[N] { return n.w2v }

// ReadGraph builds a graph from edges and logs its size.
func (n *Node2Vec[N]) ReadGraph(edges []graph.Edge[N]) *graph.Graph[N] {
	n.log.Info("reading graph", "edges", len(edges))
	g := graph.FromEdges(edges)
	n.log.Info("graph ready", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g
}

// LearnEmbeddings builds the graph of edges and embeds its nodes.
func (n *Node2Vec[N]) LearnEmbeddings(edges []graph.Edge[N]) (*embedding.Embeddings[N], error) {
	return n.LearnGraph(n.ReadGraph(edges))
}

// LearnGraph embeds the nodes of g using WalksPerNode walks from each node.
func (n *Node2Vec[N]) LearnGraph(g *graph.Graph[N]) (*embedding.Embeddings[N], error) {
	if g.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}
	walks := g.NodeCount() * n.settings.WalksPerNode
	n.log.Info("generating walks", "walks", walks, "walk_length", n.settings.WalkLength,
		"backtrack_probability", n.settings.BacktrackProbability)

	seed := n.settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := NewWalkGenerator(g, n.settings)
	c := corpus.NewGenerated[N](gen.Generate, walks, rand.New(rand.NewSource(seed)))

	if err := n.w2v.Train(c); err != nil {
		return nil, err
	}
	return n.w2v.Embeddings()
}
