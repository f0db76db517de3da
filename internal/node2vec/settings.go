package node2vec

import (
	"fmt"

	"github.com/samcharles93/skipwalk/internal/word2vec"
)

// Settings configures walk generation on top of the embedding trainer.
type Settings struct {
	word2vec.Settings

	// BacktrackProbability is the chance that a step continues from the node
	// two steps back instead of the current one.
	BacktrackProbability float64
	WalkLength           int
	WalksPerNode         int
}

// DefaultSettings returns the stock node2vec configuration.
func DefaultSettings() Settings {
	return Settings{
		Settings:             word2vec.DefaultSettings(),
		BacktrackProbability: 0.5,
		WalkLength:           80,
		WalksPerNode:         10,
	}
}

// Validate reports the first out-of-range field.
func (s Settings) Validate() error {
	switch {
	case s.BacktrackProbability < 0 || s.BacktrackProbability > 1:
		return fmt.Errorf("%w: backtrack probability must be in [0, 1], got %g", word2vec.ErrInvalidSettings, s.BacktrackProbability)
	case s.WalkLength < 0:
		return fmt.Errorf("%w: walk length must not be negative, got %d", word2vec.ErrInvalidSettings, s.WalkLength)
	case s.WalksPerNode < 0:
		return fmt.Errorf("%w: walks per node must not be negative, got %d", word2vec.ErrInvalidSettings, s.WalksPerNode)
	}
	return s.Settings.Validate()
}
