package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/model"
	"github.com/urfave/cli/v3"
)

const (
	formatBinary = "binary"
	formatJSON   = "json"

	keysString = "string"
	keysInt    = "int"
)

func checkFormat(format string) error {
	switch format {
	case formatBinary, formatJSON:
		return nil
	default:
		return cli.Exit(fmt.Sprintf("error: unknown output format %q (want binary or json)", format), 1)
	}
}

func checkKeys(keys string) error {
	switch keys {
	case keysString, keysInt:
		return nil
	default:
		return cli.Exit(fmt.Sprintf("error: unknown key type %q (want string or int)", keys), 1)
	}
}

// writeEmbeddings stores e at path in the requested format. Binary files go
// through SaveFile so a failed write never leaves a truncated file behind.
func writeEmbeddings[W comparable](path, format string, e *embedding.Embeddings[W], codec embedding.KeyCodec[W]) error {
	toStdout := path == "" || path == "-"
	if format == formatBinary && !toStdout {
		return embedding.SaveFile(path, e, codec)
	}

	out := os.Stdout
	if !toStdout {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	bw := bufio.NewWriter(out)
	var err error
	if format == formatJSON {
		err = embedding.WriteJSON(bw, e, codec)
	} else {
		err = embedding.Save(bw, e, codec)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if out != os.Stdout {
		return out.Sync()
	}
	return nil
}

// trainingError maps a training failure to the CLI exit error.
func trainingError(log logger.Logger, err error) error {
	if errors.Is(err, model.ErrInsufficientMemory) {
		log.Error("insufficient memory", "error", err)
		return cli.Exit("error: insufficient memory", 1)
	}
	return cli.Exit(fmt.Sprintf("error: train: %v", err), 1)
}
