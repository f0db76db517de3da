package embedding

import (
	"bufio"
	"io"

	"github.com/goccy/go-json"
)

type jsonEntry struct {
	Word   string    `json:"word"`
	Vector []float32 `json:"vector"`
}

// WriteJSON writes one JSON object per line, {"word": ..., "vector": [...]},
// in row order.
func WriteJSON[W comparable](w io.Writer, e *Embeddings[W], codec KeyCodec[W]) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	var key []byte
	for i, word := range e.words {
		var err error
		if key, err = codec.AppendKey(key[:0], word); err != nil {
			return err
		}
		if err := enc.Encode(jsonEntry{Word: string(key), Vector: e.vectors.Row(i)}); err != nil {
			return err
		}
	}
	return bw.Flush()
}
