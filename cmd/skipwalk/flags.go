package main

import (
	"github.com/samcharles93/skipwalk/internal/node2vec"
	"github.com/samcharles93/skipwalk/internal/word2vec"
	"github.com/urfave/cli/v3"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// trainingFlags binds the skip-gram settings. Flag defaults are taken from s,
// so callers pass a record filled by DefaultSettings.
func trainingFlags(s *word2vec.Settings, collision *string) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "size",
			Aliases:     []string{"s", "dim"},
			Usage:       "embedding dimension",
			Value:       s.Dimension,
			Destination: &s.Dimension,
		},
		&cli.IntFlag{
			Name:        "epochs",
			Aliases:     []string{"e"},
			Usage:       "passes over the corpus",
			Value:       s.Epochs,
			Destination: &s.Epochs,
		},
		&cli.Float64Flag{
			Name:        "alpha",
			Aliases:     []string{"a", "lr"},
			Usage:       "starting learning rate",
			Value:       s.LearningRate,
			Destination: &s.LearningRate,
		},
		&cli.IntFlag{
			Name:        "window",
			Aliases:     []string{"w"},
			Usage:       "context window size",
			Value:       s.ContextSize,
			Destination: &s.ContextSize,
		},
		&cli.BoolFlag{
			Name:        "dynamic",
			Aliases:     []string{"d"},
			Usage:       "shrink the window to a random size per position",
			Value:       s.DynamicContext,
			Destination: &s.DynamicContext,
		},
		&cli.IntFlag{
			Name:        "negative",
			Aliases:     []string{"n"},
			Usage:       "negative samples per context word",
			Value:       s.NegativeSamples,
			Destination: &s.NegativeSamples,
		},
		&cli.Float64Flag{
			Name:        "subsampling",
			Usage:       "exponent applied to word counts in the noise distribution",
			Value:       s.SubsamplingFactor,
			Destination: &s.SubsamplingFactor,
		},
		&cli.StringFlag{
			Name:        "collision",
			Usage:       "negative sample colliding with the context (skip, resample)",
			Value:       string(s.NegativeCollision),
			Destination: collision,
		},
		&cli.IntFlag{
			Name:        "workers",
			Aliases:     []string{"j"},
			Usage:       "training goroutines (0 = GOMAXPROCS)",
			Value:       s.Workers,
			Destination: &s.Workers,
		},
		&cli.Int64Flag{
			Name:        "seed",
			Usage:       "random seed (0 = time based)",
			Value:       s.Seed,
			Destination: &s.Seed,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "log training progress",
			Value:       s.Verbose,
			Destination: &s.Verbose,
		},
	}
}

func walkFlags(s *node2vec.Settings) []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:        "backtrack",
			Aliases:     []string{"p"},
			Usage:       "probability of stepping from the previous node instead of the current one",
			Value:       s.BacktrackProbability,
			Destination: &s.BacktrackProbability,
		},
		&cli.IntFlag{
			Name:        "walk-length",
			Aliases:     []string{"l"},
			Usage:       "nodes per walk",
			Value:       s.WalkLength,
			Destination: &s.WalkLength,
		},
		&cli.IntFlag{
			Name:        "walks",
			Aliases:     []string{"r"},
			Usage:       "walks started from every node",
			Value:       s.WalksPerNode,
			Destination: &s.WalksPerNode,
		},
	}
}

func outputFlags(output, format *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "embedding file to write (- for stdout)",
			Value:       "-",
			Destination: output,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "output format (binary, json)",
			Value:       formatBinary,
			Destination: format,
		},
	}
}

func keysFlag(keys *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "keys",
		Aliases:     []string{"k"},
		Usage:       "key type stored in the embedding file (string, int)",
		Value:       keysString,
		Destination: keys,
	}
}
