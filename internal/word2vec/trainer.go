package word2vec

import (
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/samcharles93/skipwalk/internal/corpus"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/model"
	"github.com/samcharles93/skipwalk/internal/parallel"
	"github.com/samcharles93/skipwalk/internal/sampling"
	"github.com/samcharles93/skipwalk/internal/tensor"
	"github.com/samcharles93/skipwalk/internal/vocab"
)

const (
	trainBatchSize   = 100
	minLearningCoeff = 1e-4
	progressInterval = 100 * time.Millisecond
)

type noiseSampler interface {
	Sample(rng *rand.Rand) vocab.ID
}

// trainer runs Hogwild SGD over the shared model. Workers read and write
// model rows with no locking; the processed-sentence counter is the only
// synchronized state and it keeps its value across train calls.
type trainer struct {
	s         Settings
	noise     noiseSampler
	model     *model.Model
	rngs      *sampling.RNGPool
	log       logger.Logger
	processed atomic.Int64
	deltas    [][]float32
}

func newTrainer(s Settings, noise noiseSampler, m *model.Model, rngs *sampling.RNGPool, log logger.Logger) *trainer {
	deltas := make([][]float32, rngs.Size())
	for i := range deltas {
		deltas[i] = make([]float32, m.Cols())
	}
	return &trainer{
		s:      s,
		noise:  noise,
		model:  m,
		rngs:   rngs,
		log:    log,
		deltas: deltas,
	}
}

// learningRate decays linearly with processed sentences and is floored at
// minLearningCoeff times the starting rate.
func (t *trainer) learningRate(expected int64) float32 {
	coeff := 1 - float64(t.processed.Load())/float64(expected+1)
	return float32(max(coeff, minLearningCoeff) * t.s.LearningRate)
}

func (t *trainer) progress(expected int64) float64 {
	if expected <= 0 {
		return 100
	}
	return min(100*float64(t.processed.Load())/float64(expected), 100)
}

// train runs all epochs over c. expected is the number of sentences the whole
// schedule will process, across every train call.
func (t *trainer) train(c corpus.Corpus[vocab.ID], expected int64) {
	progress := rate.Sometimes{Interval: progressInterval}
	n := c.SentenceCount()
	for epoch := range t.s.Epochs {
		parallel.Dynamic(t.rngs.Size(), n, trainBatchSize, func(worker, i int) {
			lr := t.learningRate(expected)
			if worker == 0 {
				progress.Do(func() {
					t.log.Debug("training", "epoch", epoch+1, "progress", t.progress(expected), "learning_rate", lr)
				})
			}
			t.trainSentence(worker, c.Sentence(i), lr)
			t.processed.Add(1)
		})
		t.log.Info("epoch done", "epoch", epoch+1, "epochs", t.s.Epochs,
			"progress", t.progress(expected), "learning_rate", t.learningRate(expected))
	}
}

func (t *trainer) trainSentence(worker int, sentence []vocab.ID, lr float32) {
	size := len(sentence)
	if size < 2 {
		return
	}
	rng := t.rngs.Get(worker)
	delta := model.View(t.deltas[worker])

	for pos, word := range sentence {
		wordVec := t.model.WordEmbedding(int(word))
		radius := t.contextSize(rng)
		delta.Zero()

		for off := -radius; off <= radius; off++ {
			ctxPos := pos + off
			if off == 0 || ctxPos < 0 || ctxPos >= size {
				continue
			}
			context := sentence[ctxPos]
			t.update(wordVec, delta, context, 1, lr)

			for range t.s.NegativeSamples {
				neg, ok := t.negative(rng, context)
				if !ok {
					continue
				}
				t.update(wordVec, delta, neg, 0, lr)
			}
		}
		wordVec.Add(delta.Const())
	}
}

// update applies one (word, context, label) example. The context row moves
// immediately; the word row's share goes into delta.
func (t *trainer) update(wordVec, delta model.View, context vocab.ID, label, lr float32) {
	ctxVec := t.model.ContextEmbedding(int(context))
	g := (label - tensor.FastSigmoid(wordVec.Dot(ctxVec))) * lr
	delta.Add(ctxVec.Scale(g))
	ctxVec.Add(wordVec.Scale(g))
}

func (t *trainer) negative(rng *rand.Rand, context vocab.ID) (vocab.ID, bool) {
	id := t.noise.Sample(rng)
	if id != context {
		return id, true
	}
	if t.s.NegativeCollision == CollisionResample {
		for range maxResample {
			if id = t.noise.Sample(rng); id != context {
				return id, true
			}
		}
	}
	return 0, false
}

func (t *trainer) contextSize(rng *rand.Rand) int {
	if !t.s.DynamicContext {
		return t.s.ContextSize
	}
	return 1 + rng.Intn(t.s.ContextSize)
}
