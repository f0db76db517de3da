package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/urfave/cli/v3"
)

func neighborsCmd() *cli.Command {
	var (
		modelPath string
		keys      string
		count     int
	)

	return &cli.Command{
		Name:      "neighbors",
		Usage:     "Print the nearest neighbours of words by cosine similarity",
		ArgsUsage: "word...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "model",
				Aliases:     []string{"m"},
				Usage:       "path to embedding file",
				Destination: &modelPath,
				Required:    true,
			},
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "neighbours per word",
				Value:       10,
				Destination: &count,
			},
			keysFlag(&keys),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := checkKeys(keys); err != nil {
				return err
			}
			if count < 1 {
				return cli.Exit("error: --count must be positive", 1)
			}
			words := cmd.Args().Slice()
			if len(words) == 0 {
				return cli.Exit("error: no query words given", 1)
			}
			log := logger.FromContext(ctx)
			out := bufio.NewWriter(os.Stdout)
			defer func() { _ = out.Flush() }()
			if keys == keysInt {
				return queryNeighbors[int64](out, log, modelPath, embedding.IntKeys[int64]{}, words, count)
			}
			return queryNeighbors[string](out, log, modelPath, embedding.StringKeys{}, words, count)
		},
	}
}

func queryNeighbors[W comparable](w io.Writer, log logger.Logger, path string, codec embedding.KeyCodec[W], queries []string, k int) error {
	e, err := embedding.Open(path, codec)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: load %s: %v", path, err), 1)
	}
	log.Debug("loaded embeddings", "path", path, "words", e.Len(), "dimension", e.Dimension())
	return printNeighbors(w, log, e, codec, queries, k)
}

// printNeighbors writes one block per query: the query followed by
// "neighbour<TAB>similarity" lines. Unknown queries are logged and skipped.
func printNeighbors[W comparable](w io.Writer, log logger.Logger, e *embedding.Embeddings[W], codec embedding.KeyCodec[W], queries []string, k int) error {
	for _, q := range queries {
		word, err := codec.ParseKey([]byte(q))
		if err != nil {
			log.Warn("skipping query", "word", q, "error", err)
			continue
		}
		neighbors, err := e.NearestTo(word, k)
		if err != nil {
			log.Warn("skipping query", "word", q, "error", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", q); err != nil {
			return err
		}
		for _, n := range neighbors {
			key, err := codec.AppendKey(nil, n.Word)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "  %s\t%.4f\n", key, n.Similarity); err != nil {
				return err
			}
		}
	}
	return nil
}
