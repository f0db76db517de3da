// Package word2vec trains skip-gram embeddings with negative sampling.
//
// Training is lock-free: every worker updates the shared embedding rows
// directly (Hogwild SGD). With more than one worker the result depends on
// scheduling and is not bit-reproducible; with one worker and a fixed seed it
// is.
package word2vec

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/samcharles93/skipwalk/internal/corpus"
	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/model"
	"github.com/samcharles93/skipwalk/internal/parallel"
	"github.com/samcharles93/skipwalk/internal/sampling"
	"github.com/samcharles93/skipwalk/internal/vocab"
)

var (
	ErrEmptyCorpus     = errors.New("word2vec: empty corpus")
	ErrNotInitialized  = errors.New("word2vec: training not initialized")
	ErrAlreadyFinished = errors.New("word2vec: training already finished")
)

// Option customises a Word2Vec.
type Option func(*options)

type options struct {
	log   logger.Logger
	runID uuid.UUID
}

// WithLogger routes progress output to log. It is ignored when
// Settings.Verbose is false.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRunID tags every log line with id instead of a fresh random one.
func WithRunID(id uuid.UUID) Option {
	return func(o *options) { o.runID = id }
}

// Word2Vec learns one embedding per distinct token of a corpus.
//
// For a single shot call Train. To split work into stages call InitTraining,
// then TrainSome any number of times, then FinishTraining.
type Word2Vec[W comparable] struct {
	settings Settings
	workers  int
	log      logger.Logger
	runID    uuid.UUID

	vocab    *vocab.Vocab[W]
	model    *model.Model
	rngs     *sampling.RNGPool
	trainer  *trainer
	finished bool
}

// New validates s and returns an untrained Word2Vec.
func New[W comparable](s Settings, opts ...Option) (*Word2Vec[W], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.NegativeCollision == "" {
		s.NegativeCollision = CollisionSkip
	}
	o := options{log: logger.Default(), runID: uuid.New()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log
	if !s.Verbose {
		log = logger.Discard()
	}
	return &Word2Vec[W]{
		settings: s,
		workers:  parallel.Workers(s.Workers),
		log:      log.With("run", o.runID.String()),
		runID:    o.runID,
		model:    model.New(),
	}, nil
}

// Settings returns the configuration in use.
func (w *Word2Vec[W]) Settings() Settings { return w.settings }

// RunID identifies this training run in logs and exported metadata.
func (w *Word2Vec[W]) RunID() uuid.UUID { return w.runID }

// Logger returns the run's logger, tagged with the run id.
func (w *Word2Vec[W]) Logger() logger.Logger { return w.log }

// Vocab returns the learned vocabulary, or nil before InitTraining.
func (w *Word2Vec[W]) Vocab() *vocab.Vocab[W] { return w.vocab }

// Model returns the underlying matrices.
func (w *Word2Vec[W]) Model() *model.Model { return w.model }

// Train learns the vocabulary of c, trains on it and normalizes the result.
func (w *Word2Vec[W]) Train(c corpus.Corpus[W]) error {
	if err := w.InitTraining(c); err != nil {
		return err
	}
	if err := w.TrainSome(c, c.SentenceCount()); err != nil {
		return err
	}
	return w.FinishTraining()
}

// InitTraining counts the words of c, allocates and initializes the model and
// builds the negative sampling distribution.
func (w *Word2Vec[W]) InitTraining(c corpus.Corpus[W]) error {
	w.log.Info("learning vocabulary", "sentences", c.SentenceCount(), "workers", w.workers)
	w.vocab = vocab.Build(c, w.workers, w.log)
	if w.vocab.Size() == 0 {
		return ErrEmptyCorpus
	}
	w.log.Info("vocabulary ready", "words", w.vocab.Size())

	rows, cols := w.vocab.Size(), w.settings.Dimension
	w.log.Info("allocating model", "rows", rows, "cols", cols,
		"estimated_mb", model.EstimateSizeMB(rows, cols))
	if err := w.model.Resize(rows, cols); err != nil {
		return fmt.Errorf("word2vec: allocate model: %w", err)
	}

	w.rngs = sampling.NewRNGPool(w.workers, w.settings.Seed)
	w.log.Debug("initializing model", "seed", w.rngs.Seed())
	w.model.Init(w.rngs)

	w.log.Debug("building unigram distribution", "factor", w.settings.SubsamplingFactor)
	if err := w.vocab.InitSampling(w.settings.SubsamplingFactor); err != nil {
		return fmt.Errorf("word2vec: %w", err)
	}
	w.trainer = newTrainer(w.settings, w.vocab, w.model, w.rngs, w.log)
	w.finished = false
	return nil
}

// TrainSome runs Settings.Epochs passes over c. expected is the number of
// sentences per epoch across every TrainSome call of this run; it drives the
// learning-rate schedule. Every token of c must be in the vocabulary learned
// by InitTraining.
func (w *Word2Vec[W]) TrainSome(c corpus.Corpus[W], expected int) error {
	if w.trainer == nil {
		return ErrNotInitialized
	}
	if w.finished {
		return ErrAlreadyFinished
	}
	w.log.Info("starting training session", "sentences", c.SentenceCount(), "epochs", w.settings.Epochs)
	ids := corpus.Encode(c, w.vocab.MustID)
	w.trainer.train(ids, int64(w.settings.Epochs)*int64(expected))
	return nil
}

// FinishTraining drops the context matrix and normalizes the word rows. The
// model cannot be trained further afterwards.
func (w *Word2Vec[W]) FinishTraining() error {
	if w.trainer == nil {
		return ErrNotInitialized
	}
	w.log.Info("normalizing model")
	w.model.FreeContextEmbeddings()
	w.model.Normalize(w.workers)
	w.finished = true
	return nil
}

// Embeddings returns a copy of the word embeddings keyed by token.
func (w *Word2Vec[W]) Embeddings() (*embedding.Embeddings[W], error) {
	if w.vocab == nil {
		return nil, ErrNotInitialized
	}
	return embedding.New(w.vocab.Words(), w.model.CopyWordEmbeddings())
}
