package main

import (
	"context"
	"fmt"
	"time"

	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/word2vec"
	"github.com/urfave/cli/v3"
)

func trainCmd() *cli.Command {
	var (
		input     string
		output    string
		format    string
		collision string
	)
	s := word2vec.DefaultSettings()

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i", "train"},
			Usage:       "text corpus, one sentence per line (- for stdin)",
			Value:       "-",
			Destination: &input,
		},
	}
	flags = append(flags, outputFlags(&output, &format)...)
	flags = append(flags, trainingFlags(&s, &collision)...)

	return &cli.Command{
		Name:  "train",
		Usage: "Learn word embeddings from a text corpus",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyTrainingConfig(cmd, cfg, &s, &collision)
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
			start := time.Now()
			text, err := readSentences(in)
			_ = in.Close()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("read corpus", "input", input, "sentences", text.SentenceCount(), "words", text.Len(), "elapsed", time.Since(start))

			w2v, err := word2vec.New[string](s, word2vec.WithLogger(log))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err := w2v.Train(text); err != nil {
				return trainingError(log, err)
			}
			emb, err := w2v.Embeddings()
			if err != nil {
				return trainingError(log, err)
			}
			if err := writeEmbeddings[string](output, format, emb, embedding.StringKeys{}); err != nil {
				return cli.Exit(fmt.Sprintf("error: write embeddings: %v", err), 1)
			}
			log.Info("wrote embeddings", "output", output, "format", format, "words", emb.Len(), "dimension", emb.Dimension(), "run", w2v.RunID())
			return nil
		},
	}
}
