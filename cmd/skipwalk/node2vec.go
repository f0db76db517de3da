package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/node2vec"
	"github.com/samcharles93/skipwalk/internal/word2vec"
	"github.com/urfave/cli/v3"
)

func node2vecCmd() *cli.Command {
	var (
		input     string
		output    string
		format    string
		collision string
	)
	s := node2vec.DefaultSettings()

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i", "graph"},
			Usage:       "edge list, one \"from to\" pair per line (- for stdin)",
			Value:       "-",
			Destination: &input,
		},
	}
	flags = append(flags, outputFlags(&output, &format)...)
	flags = append(flags, trainingFlags(&s.Settings, &collision)...)
	flags = append(flags, walkFlags(&s)...)

	return &cli.Command{
		Name:  "node2vec",
		Usage: "Learn node embeddings from random walks over a directed graph",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyTrainingConfig(cmd, cfg, &s.Settings, &collision)
			applyWalkConfig(cmd, cfg, &s)
			if err := checkFormat(format); err != nil {
				return err
			}
			policy, err := word2vec.ParseCollisionPolicy(collision)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			s.NegativeCollision = policy

			in, err := openInput(input)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			edges, err := readEdges(in)
			_ = in.Close()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("read edges", "input", input, "edges", len(edges))

			n2v, err := node2vec.New[int64](s, word2vec.WithLogger(log))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			emb, err := n2v.LearnEmbeddings(edges)
			if err != nil {
				return trainingError(log, err)
			}
			if err := writeEmbeddings[int64](output, format, emb, embedding.IntKeys[int64]{}); err != nil {
				return cli.Exit(fmt.Sprintf("error: write embeddings: %v", err), 1)
			}
			log.Info("wrote embeddings", "output", output, "format", format, "nodes", emb.Len(), "dimension", emb.Dimension())
			return nil
		},
	}
}
