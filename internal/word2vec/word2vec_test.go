package word2vec

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/samcharles93/skipwalk/internal/corpus"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/tensor"
	"github.com/samcharles93/skipwalk/internal/vocab"
)

func quiet(s Settings) Settings {
	s.Verbose = false
	return s
}

func TestEndToEndSmallCorpus(t *testing.T) {
	t.Parallel()
	s := quiet(DefaultSettings())
	s.Dimension = 4
	s.Epochs = 5
	s.NegativeSamples = 2

	w2v, err := New[string](s)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c := corpus.NewMaterialized([]string{"a", "b", "c"}, []string{"b", "c", "a"})
	if err := w2v.Train(c); err != nil {
		t.Fatalf("train: %v", err)
	}
	emb, err := w2v.Embeddings()
	if err != nil {
		t.Fatalf("embeddings: %v", err)
	}
	if emb.Len() != 3 {
		t.Fatalf("expected 3 keys, got %d", emb.Len())
	}
	for _, w := range []string{"a", "b", "c"} {
		v, ok := emb.Get(w)
		if !ok {
			t.Fatalf("missing %q", w)
		}
		if len(v) != 4 {
			t.Fatalf("%q: got %d values want 4", w, len(v))
		}
		if n := tensor.Norm(v); math.Abs(n-1) > 1e-5 {
			t.Fatalf("%q: norm %f", w, n)
		}
	}
}

func TestSingleWorkerIsReproducible(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	c := corpus.NewMaterialized[int64]()
	for range 300 {
		s := make([]int64, 2+rng.Intn(10))
		for i := range s {
			s[i] = int64(rng.Intn(40))
		}
		c.AddSentence(s)
	}

	run := func() [][]float32 {
		s := quiet(DefaultSettings())
		s.Dimension = 16
		s.Epochs = 2
		s.Workers = 1
		s.Seed = 42
		w2v, err := New[int64](s)
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		if err := w2v.Train(c); err != nil {
			t.Fatalf("train: %v", err)
		}
		emb, _ := w2v.Embeddings()
		var out [][]float32
		for _, v := range emb.All() {
			out = append(out, append([]float32(nil), v...))
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("vocab size differs: %d vs %d", len(a), len(b))
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("row %d col %d differs: %v vs %v", i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestParallelTrainingSeparatesClusters(t *testing.T) {
	t.Parallel()
	clusters := [][]string{
		{"the", "quick", "brown", "fox"},
		{"lazy", "sleepy", "old", "dog"},
	}
	rng := rand.New(rand.NewSource(9))
	c := corpus.NewMaterialized[string]()
	for i := range 2000 {
		words := clusters[i%2]
		s := make([]string, 8)
		for j := range s {
			s[j] = words[rng.Intn(len(words))]
		}
		c.AddSentence(s)
	}

	s := quiet(DefaultSettings())
	s.Dimension = 20
	s.Epochs = 5
	s.Workers = 4
	w2v, err := New[string](s)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w2v.Train(c); err != nil {
		t.Fatalf("train: %v", err)
	}
	emb, _ := w2v.Embeddings()

	for ci, words := range clusters {
		same := map[string]bool{}
		for _, w := range words {
			same[w] = true
		}
		for _, w := range words {
			nn, err := emb.NearestTo(w, len(words)-1)
			if err != nil {
				t.Fatalf("nearest to %q: %v", w, err)
			}
			for _, n := range nn {
				if !same[n.Word] {
					t.Fatalf("cluster %d: neighbour %q of %q is from the other cluster (%+v)", ci, n.Word, w, nn)
				}
			}
		}
	}
}

func TestStagedTraining(t *testing.T) {
	t.Parallel()
	s := quiet(DefaultSettings())
	s.Dimension = 8
	s.Workers = 2
	w2v, err := New[string](s, WithLogger(logger.Discard()), WithRunID(uuid.Nil))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c := corpus.NewMaterialized([]string{"x", "y", "z"})

	if err := w2v.TrainSome(c, 1); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := w2v.InitTraining(c); err != nil {
		t.Fatalf("init: %v", err)
	}
	for range 3 {
		if err := w2v.TrainSome(c, 3); err != nil {
			t.Fatalf("train some: %v", err)
		}
	}
	if got := w2v.trainer.processed.Load(); got != 3 {
		t.Fatalf("processed sentences: got %d want 3", got)
	}
	if err := w2v.FinishTraining(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if w2v.Model().HasContextEmbeddings() {
		t.Fatalf("context matrix should be freed after finishing")
	}
	if err := w2v.TrainSome(c, 3); !errors.Is(err, ErrAlreadyFinished) {
		t.Fatalf("expected ErrAlreadyFinished, got %v", err)
	}
	if w2v.RunID() != uuid.Nil {
		t.Fatalf("run id not applied")
	}
}

func TestEmptyCorpus(t *testing.T) {
	t.Parallel()
	w2v, err := New[string](quiet(DefaultSettings()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w2v.Train(corpus.NewMaterialized[string]()); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestDivergentLearningRateDoesNotPanic(t *testing.T) {
	t.Parallel()
	c := corpus.NewMaterialized[string]()
	for range 50 {
		c.AddSentence([]string{"a", "b", "c", "d", "e"})
	}
	for _, lr := range []float64{1, 1000, 1e20} {
		s := quiet(DefaultSettings())
		s.Dimension = 4
		s.Epochs = 50
		s.Workers = 1
		s.Seed = 1
		s.LearningRate = lr
		w, err := New[string](s)
		if err != nil {
			t.Fatalf("lr %g: %v", lr, err)
		}
		if err := w.Train(c); err != nil {
			t.Fatalf("lr %g: train: %v", lr, err)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()
	bad := []func(*Settings){
		func(s *Settings) { s.Dimension = 0 },
		func(s *Settings) { s.Epochs = -1 },
		func(s *Settings) { s.LearningRate = 0 },
		func(s *Settings) { s.LearningRate = math.NaN() },
		func(s *Settings) { s.LearningRate = math.Inf(1) },
		func(s *Settings) { s.SubsamplingFactor = math.NaN() },
		func(s *Settings) { s.SubsamplingFactor = math.Inf(-1) },
		func(s *Settings) { s.ContextSize = 0 },
		func(s *Settings) { s.NegativeSamples = -2 },
		func(s *Settings) { s.Workers = -1 },
		func(s *Settings) { s.NegativeCollision = "retry-forever" },
	}
	for i, mutate := range bad {
		s := DefaultSettings()
		mutate(&s)
		if _, err := New[string](s); !errors.Is(err, ErrInvalidSettings) {
			t.Errorf("case %d: expected ErrInvalidSettings, got %v", i, err)
		}
	}
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestParseCollisionPolicy(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]CollisionPolicy{"": CollisionSkip, "skip": CollisionSkip, "resample": CollisionResample} {
		got, err := ParseCollisionPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseCollisionPolicy(%q): got %q, %v", in, got, err)
		}
	}
}

// Ensure the vocabulary satisfies the sampler used by the trainer.
var _ noiseSampler = (*vocab.Vocab[string])(nil)
