package main

import (
	"strings"
	"testing"
)

func TestReadSentences(t *testing.T) {
	in := "the quick  fox\n\n  jumps\tover\n"
	c, err := readSentences(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readSentences returned error: %v", err)
	}
	if c.SentenceCount() != 2 {
		t.Fatalf("sentences: got %d want 2", c.SentenceCount())
	}
	want := [][]string{{"the", "quick", "fox"}, {"jumps", "over"}}
	for i, w := range want {
		got := c.Sentence(i)
		if strings.Join(got, " ") != strings.Join(w, " ") {
			t.Fatalf("sentence %d: got %q want %q", i, got, w)
		}
	}
}

func TestReadSentencesSplitsLongLines(t *testing.T) {
	words := make([]string, maxSentenceSize+5)
	for i := range words {
		words[i] = "w"
	}
	c, err := readSentences(strings.NewReader(strings.Join(words, " ")))
	if err != nil {
		t.Fatalf("readSentences returned error: %v", err)
	}
	if c.SentenceCount() != 2 {
		t.Fatalf("sentences: got %d want 2", c.SentenceCount())
	}
	if n := len(c.Sentence(0)); n != maxSentenceSize {
		t.Fatalf("first sentence: got %d words want %d", n, maxSentenceSize)
	}
	if n := len(c.Sentence(1)); n != 5 {
		t.Fatalf("second sentence: got %d words want 5", n)
	}
}

func TestTruncateWord(t *testing.T) {
	long := strings.Repeat("a", maxWordSize+20)
	if got := truncateWord(long); len(got) != maxWordSize {
		t.Fatalf("ascii: got %d bytes want %d", len(got), maxWordSize)
	}
	// byte 100 falls inside an 'é', so the cut moves back to byte 99.
	multi := "x" + strings.Repeat("é", 60)
	got := truncateWord(multi)
	if len(got) > maxWordSize {
		t.Fatalf("multibyte: got %d bytes", len(got))
	}
	if !strings.HasSuffix(got, "é") {
		t.Fatalf("multibyte: truncated inside a rune: %q", got[len(got)-2:])
	}
}

func TestReadEdges(t *testing.T) {
	in := "# comment\n1 2\n\n2 3 0.5\n  3\t1\n"
	edges, err := readEdges(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readEdges returned error: %v", err)
	}
	if len(edges) != 3 {
		t.Fatalf("edges: got %d want 3", len(edges))
	}
	if edges[1].From != 2 || edges[1].To != 3 {
		t.Fatalf("edge 1: got %+v", edges[1])
	}
	if edges[2].From != 3 || edges[2].To != 1 {
		t.Fatalf("edge 2: got %+v", edges[2])
	}
}

func TestReadEdgesErrors(t *testing.T) {
	for _, in := range []string{"1\n", "1 x\n", "a 2\n"} {
		if _, err := readEdges(strings.NewReader(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
