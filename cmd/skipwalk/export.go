package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/urfave/cli/v3"
)

func exportCmd() *cli.Command {
	var (
		input  string
		output string
		format string
		keys   string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "binary embedding file",
			Destination: &input,
			Required:    true,
		},
		keysFlag(&keys),
	}
	flags = append(flags, outputFlags(&output, &format)...)

	return &cli.Command{
		Name:  "export",
		Usage: "Convert an embedding file to another format",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.IsSet("format") {
				format = formatJSON
			}
			if err := checkFormat(format); err != nil {
				return err
			}
			if err := checkKeys(keys); err != nil {
				return err
			}
			log := logger.FromContext(ctx)
			if keys == keysInt {
				return convert[int64](log, input, output, format, embedding.IntKeys[int64]{})
			}
			return convert[string](log, input, output, format, embedding.StringKeys{})
		},
	}
}

func convert[W comparable](log logger.Logger, input, output, format string, codec embedding.KeyCodec[W]) error {
	e, err := embedding.Open(input, codec)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: load %s: %v", input, err), 1)
	}
	if err := writeEmbeddings(output, format, e, codec); err != nil {
		return cli.Exit(fmt.Sprintf("error: export: %v", err), 1)
	}
	log.Info("exported embeddings", "input", input, "output", output, "format", format, "words", e.Len())
	return nil
}
