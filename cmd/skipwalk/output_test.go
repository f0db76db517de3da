package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/samcharles93/skipwalk/internal/embedding"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/tensor"
)

func testEmbeddings(t *testing.T) *embedding.Embeddings[string] {
	t.Helper()
	vectors := tensor.NewMatFromData(3, 2, []float32{
		1, 0,
		0.8, 0.6,
		0, 1,
	})
	e, err := embedding.New([]string{"east", "northeast", "north"}, vectors)
	if err != nil {
		t.Fatalf("embedding.New: %v", err)
	}
	return e
}

func TestWriteEmbeddingsBinary(t *testing.T) {
	e := testEmbeddings(t)
	path := filepath.Join(t.TempDir(), "vec.bin")
	if err := writeEmbeddings[string](path, formatBinary, e, embedding.StringKeys{}); err != nil {
		t.Fatalf("writeEmbeddings returned error: %v", err)
	}
	back, err := embedding.Open[string](path, embedding.StringKeys{})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if back.Len() != 3 || back.Dimension() != 2 {
		t.Fatalf("shape: got %dx%d", back.Len(), back.Dimension())
	}
	v, ok := back.Get("northeast")
	if !ok || v[0] != 0.8 || v[1] != 0.6 {
		t.Fatalf("northeast: got %v %v", v, ok)
	}
}

func TestWriteEmbeddingsJSON(t *testing.T) {
	e := testEmbeddings(t)
	path := filepath.Join(t.TempDir(), "vec.jsonl")
	if err := writeEmbeddings[string](path, formatJSON, e, embedding.StringKeys{}); err != nil {
		t.Fatalf("writeEmbeddings returned error: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry struct {
			Word   string    `json:"word"`
			Vector []float32 `json:"vector"`
		}
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		if len(entry.Vector) != 2 {
			t.Fatalf("vector length: got %d", len(entry.Vector))
		}
		words = append(words, entry.Word)
	}
	if got := strings.Join(words, ","); got != "east,northeast,north" {
		t.Fatalf("words: got %s", got)
	}
}

func TestPrintNeighbors(t *testing.T) {
	e := testEmbeddings(t)
	var buf bytes.Buffer
	err := printNeighbors[string](&buf, logger.Discard(), e, embedding.StringKeys{}, []string{"east", "missing"}, 1)
	if err != nil {
		t.Fatalf("printNeighbors returned error: %v", err)
	}
	want := "east\n  northeast\t0.8000\n"
	if buf.String() != want {
		t.Fatalf("output: got %q want %q", buf.String(), want)
	}
}

func TestModelSource(t *testing.T) {
	name, path := modelSource("wiki=/data/wiki.bin")
	if name != "wiki" || path != "/data/wiki.bin" {
		t.Fatalf("named: got %q %q", name, path)
	}
	name, path = modelSource("/data/graph.emb")
	if name != "graph" || path != "/data/graph.emb" {
		t.Fatalf("unnamed: got %q %q", name, path)
	}
}

func TestCheckFlags(t *testing.T) {
	if checkFormat("json") != nil || checkFormat("binary") != nil {
		t.Fatalf("valid formats rejected")
	}
	if checkFormat("csv") == nil {
		t.Fatalf("csv accepted")
	}
	if checkKeys("int") != nil || checkKeys("float") == nil {
		t.Fatalf("key validation wrong")
	}
}
