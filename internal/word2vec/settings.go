package word2vec

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSettings = errors.New("word2vec: invalid settings")

// CollisionPolicy decides what happens when a negative sample draws the
// positive context it is meant to contrast with.
type CollisionPolicy string

const (
	// CollisionSkip drops the colliding draw, so that example gets one
	// negative sample fewer.
	CollisionSkip CollisionPolicy = "skip"
	// CollisionResample draws again, up to maxResample times, then skips.
	CollisionResample CollisionPolicy = "resample"
)

const maxResample = 3

// ParseCollisionPolicy validates a policy name. The empty string selects
// CollisionSkip.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case "", CollisionSkip:
		return CollisionSkip, nil
	case CollisionResample:
		return CollisionResample, nil
	default:
		return "", fmt.Errorf("%w: unknown collision policy %q", ErrInvalidSettings, s)
	}
}

// Settings configures skip-gram training.
type Settings struct {
	Dimension         int
	Epochs            int
	LearningRate      float64
	ContextSize       int
	DynamicContext    bool
	NegativeSamples   int
	SubsamplingFactor float64
	Verbose           bool

	// Workers is the number of training goroutines. Zero means GOMAXPROCS.
	Workers int
	// Seed feeds the per-worker generators. Zero picks one from the clock.
	Seed              int64
	NegativeCollision CollisionPolicy
}

// DefaultSettings returns the stock word2vec configuration.
func DefaultSettings() Settings {
	return Settings{
		Dimension:         100,
		Epochs:            1,
		LearningRate:      0.025,
		ContextSize:       5,
		DynamicContext:    true,
		NegativeSamples:   5,
		SubsamplingFactor: 0.75,
		Verbose:           true,
		NegativeCollision: CollisionSkip,
	}
}

// Validate reports the first out-of-range field.
func (s Settings) Validate() error {
	switch {
	case s.Dimension < 1:
		return fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidSettings, s.Dimension)
	case s.Epochs < 0:
		return fmt.Errorf("%w: epochs must not be negative, got %d", ErrInvalidSettings, s.Epochs)
	case !(s.LearningRate > 0) || math.IsInf(s.LearningRate, 0):
		return fmt.Errorf("%w: learning rate must be positive and finite, got %g", ErrInvalidSettings, s.LearningRate)
	case math.IsNaN(s.SubsamplingFactor) || math.IsInf(s.SubsamplingFactor, 0):
		return fmt.Errorf("%w: subsampling factor must be finite, got %g", ErrInvalidSettings, s.SubsamplingFactor)
	case s.ContextSize < 1:
		return fmt.Errorf("%w: context size must be positive, got %d", ErrInvalidSettings, s.ContextSize)
	case s.NegativeSamples < 0:
		return fmt.Errorf("%w: negative samples must not be negative, got %d", ErrInvalidSettings, s.NegativeSamples)
	case s.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidSettings, s.Workers)
	}
	if _, err := ParseCollisionPolicy(string(s.NegativeCollision)); err != nil {
		return err
	}
	return nil
}
