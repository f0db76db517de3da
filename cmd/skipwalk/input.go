package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samcharles93/skipwalk/internal/corpus"
	"github.com/samcharles93/skipwalk/internal/graph"
)

const (
	maxWordSize     = 100
	maxSentenceSize = 1000
	maxLineSize     = 64 << 20
)

// openInput opens path for reading; "" and "-" select stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// readSentences turns every non-empty line of r into one or more sentences of
// whitespace separated words. Words are cut to maxWordSize bytes and lines
// longer than maxSentenceSize words are split.
func readSentences(r io.Reader) (*corpus.Materialized[string], error) {
	c := corpus.NewMaterialized[string]()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		for len(fields) > 0 {
			n := min(len(fields), maxSentenceSize)
			sentence := make([]string, n)
			for i, f := range fields[:n] {
				sentence[i] = truncateWord(f)
			}
			c.AddSentence(sentence)
			fields = fields[n:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sentences: %w", err)
	}
	return c, nil
}

func truncateWord(w string) string {
	if len(w) <= maxWordSize {
		return w
	}
	end := maxWordSize
	for end > 0 && !utf8.RuneStart(w[end]) {
		end--
	}
	return w[:end]
}

// readEdges parses an edge list: one "from to" pair of integer node ids per
// line. Blank lines and lines starting with '#' are skipped; extra columns
// such as weights are ignored.
func readEdges(r io.Reader) ([]graph.Edge[int64], error) {
	var edges []graph.Edge[int64]
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("read edges: line %d: expected two node ids, got %q", line, text)
		}
		from, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read edges: line %d: %w", line, err)
		}
		to, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read edges: line %d: %w", line, err)
		}
		edges = append(edges, graph.Edge[int64]{From: from, To: to})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}
	return edges, nil
}
