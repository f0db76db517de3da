package embedding

import (
	"bytes"
	"fmt"
	"strconv"
)

// KeyCodec writes and parses tokens in the embedding file format. Keys are
// separated from their vector by a single space, so encoded keys must not
// contain whitespace.
type KeyCodec[W comparable] interface {
	AppendKey(dst []byte, w W) ([]byte, error)
	ParseKey(b []byte) (W, error)
}

// StringKeys stores tokens verbatim.
type StringKeys struct{}

func (StringKeys) AppendKey(dst []byte, w string) ([]byte, error) {
	if w == "" || bytes.ContainsAny([]byte(w), " \t\r\n\v\f") {
		return dst, fmt.Errorf("%w: %q", ErrInvalidKey, w)
	}
	return append(dst, w...), nil
}

func (StringKeys) ParseKey(b []byte) (string, error) {
	return string(b), nil
}

// IntKeys stores integer node ids in decimal.
type IntKeys[W ~int | ~int32 | ~int64] struct{}

func (IntKeys[W]) AppendKey(dst []byte, w W) ([]byte, error) {
	return strconv.AppendInt(dst, int64(w), 10), nil
}

func (IntKeys[W]) ParseKey(b []byte) (W, error) {
	var zero W
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return zero, fmt.Errorf("%w: bad integer key %q", ErrCorruptFile, b)
	}
	if int64(W(n)) != n {
		return zero, fmt.Errorf("%w: key %d overflows", ErrCorruptFile, n)
	}
	return W(n), nil
}
