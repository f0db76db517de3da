package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/urfave/cli/v3"
)

// runCommand runs cmd without letting exit errors terminate the test binary.
func runCommand(cmd *cli.Command, args []string) error {
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	return cmd.Run(context.Background(), args)
}

func TestTrainCommandWritesEmbeddings(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "corpus.txt")
	out := filepath.Join(dir, "vec.bin")
	text := "the cat sat on the mat\nthe dog sat on the log\na cat and a dog\n"
	if err := os.WriteFile(in, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	args := []string{"train", "--input", in, "--output", out,
		"--size", "8", "--epochs", "3", "--workers", "1", "--seed", "7", "--verbose=false"}
	if err := runCommand(trainCmd(), args); err != nil {
		t.Fatalf("train: %v", err)
	}

	e, err := embedding.Open[string](out, embedding.StringKeys{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if e.Dimension() != 8 {
		t.Fatalf("dimension: got %d want 8", e.Dimension())
	}
	if e.Len() != 9 {
		t.Fatalf("words: got %d want 9", e.Len())
	}
	for _, w := range []string{"the", "cat", "log", "and"} {
		if !e.Has(w) {
			t.Fatalf("missing word %q", w)
		}
	}
}

func TestNode2VecCommandWritesJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "edges.txt")
	out := filepath.Join(dir, "nodes.jsonl")
	edges := "# triangle plus a tail\n1 2\n2 3\n3 1\n3 4\n"
	if err := os.WriteFile(in, []byte(edges), 0o644); err != nil {
		t.Fatal(err)
	}

	args := []string{"node2vec", "--input", in, "--output", out, "--format", "json",
		"--size", "4", "--walk-length", "10", "--walks", "5", "--workers", "1", "--seed", "3", "--verbose=false"}
	if err := runCommand(node2vecCmd(), args); err != nil {
		t.Fatalf("node2vec: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 4 {
		t.Fatalf("expected one JSON line per node, got %d:\n%s", lines, data)
	}
}

func TestTrainCommandRejectsBadFormat(t *testing.T) {
	args := []string{"train", "--input", filepath.Join(t.TempDir(), "missing.txt"), "--format", "csv"}
	if err := runCommand(trainCmd(), args); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}
