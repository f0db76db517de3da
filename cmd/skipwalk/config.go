package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/samcharles93/skipwalk/internal/node2vec"
	"github.com/samcharles93/skipwalk/internal/word2vec"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the skipwalk configuration file (~/.config/skipwalk/config.yaml).
// All fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	// Training defaults
	Dimension         *int     `yaml:"dimension"`
	Epochs            *int     `yaml:"epochs"`
	LearningRate      *float64 `yaml:"learning_rate"`
	ContextSize       *int     `yaml:"context_size"`
	DynamicContext    *bool    `yaml:"dynamic_context"`
	NegativeSamples   *int     `yaml:"negative_samples"`
	SubsamplingFactor *float64 `yaml:"subsampling_factor"`
	NegativeCollision string   `yaml:"negative_collision"`
	Workers           *int     `yaml:"workers"`
	Seed              *int64   `yaml:"seed"`

	// Walks
	BacktrackProbability *float64 `yaml:"backtrack_probability"`
	WalkLength           *int     `yaml:"walk_length"`
	WalksPerNode         *int     `yaml:"walks_per_node"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

var cfg Config

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "skipwalk", "config.yaml")
}

// LoadConfig reads the config file at path, or at the default location when
// path is empty. A missing default file yields a zero Config; a missing
// explicit file is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyTrainingConfig applies config file defaults to the training settings
// when the corresponding CLI flag was not explicitly set.
func applyTrainingConfig(c *cli.Command, cfg Config, s *word2vec.Settings, collision *string) {
	if cfg.Dimension != nil && !c.IsSet("size") {
		s.Dimension = *cfg.Dimension
	}
	if cfg.Epochs != nil && !c.IsSet("epochs") {
		s.Epochs = *cfg.Epochs
	}
	if cfg.LearningRate != nil && !c.IsSet("alpha") {
		s.LearningRate = *cfg.LearningRate
	}
	if cfg.ContextSize != nil && !c.IsSet("window") {
		s.ContextSize = *cfg.ContextSize
	}
	if cfg.DynamicContext != nil && !c.IsSet("dynamic") {
		s.DynamicContext = *cfg.DynamicContext
	}
	if cfg.NegativeSamples != nil && !c.IsSet("negative") {
		s.NegativeSamples = *cfg.NegativeSamples
	}
	if cfg.SubsamplingFactor != nil && !c.IsSet("subsampling") {
		s.SubsamplingFactor = *cfg.SubsamplingFactor
	}
	if cfg.NegativeCollision != "" && !c.IsSet("collision") {
		*collision = cfg.NegativeCollision
	}
	if cfg.Workers != nil && !c.IsSet("workers") {
		s.Workers = *cfg.Workers
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		s.Seed = *cfg.Seed
	}
}

// applyWalkConfig applies config file defaults to the walk settings.
func applyWalkConfig(c *cli.Command, cfg Config, s *node2vec.Settings) {
	if cfg.BacktrackProbability != nil && !c.IsSet("backtrack") {
		s.BacktrackProbability = *cfg.BacktrackProbability
	}
	if cfg.WalkLength != nil && !c.IsSet("walk-length") {
		s.WalkLength = *cfg.WalkLength
	}
	if cfg.WalksPerNode != nil && !c.IsSet("walks") {
		s.WalksPerNode = *cfg.WalksPerNode
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
