package embedding

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"

	"github.com/samcharles93/skipwalk/internal/tensor"
)

// File layout:
//
//	<count> <dimension>\n
//	<key> <dimension little-endian float32>\n   (count times)
//
// Keys are read up to the first whitespace byte; exactly one separator byte
// follows before the raw vector.

// Save writes e to w.
func Save[W comparable](w io.Writer, e *Embeddings[W], codec KeyCodec[W]) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", e.Len(), e.Dimension()); err != nil {
		return err
	}
	var key []byte
	raw := make([]byte, 4*e.Dimension())
	for i, word := range e.words {
		var err error
		key, err = codec.AppendKey(key[:0], word)
		if err != nil {
			return err
		}
		key = append(key, ' ')
		if _, err := bw.Write(key); err != nil {
			return err
		}
		for j, x := range e.vectors.Row(i) {
			binary.LittleEndian.PutUint32(raw[4*j:], math.Float32bits(x))
		}
		if _, err := bw.Write(raw); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// minEncodedSize is a lower bound on the size of the saved file.
func minEncodedSize[W comparable](e *Embeddings[W]) uint64 {
	return uint64(e.Len()) * uint64(4*e.Dimension()+3)
}

// SaveFile writes e to path atomically: the data goes to a temporary file in
// the same directory which then replaces path.
func SaveFile[W comparable](path string, e *Embeddings[W], codec KeyCodec[W]) (err error) {
	dir := filepath.Dir(path)
	if usage, uerr := disk.Usage(dir); uerr == nil && usage.Free < minEncodedSize(e) {
		return fmt.Errorf("%w: need at least %d bytes in %s, %d free", ErrInsufficientSpace, minEncodedSize(e), dir, usage.Free)
	}

	tmp, err := os.CreateTemp(dir, ".skipwalk-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = Save(tmp, e, codec); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Read parses embeddings from r.
func Read[W comparable](r io.Reader, codec KeyCodec[W]) (*Embeddings[W], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parse(data, codec)
}

// Open loads an embedding file. The file is memory-mapped while it is
// parsed; if mmap is unavailable it is read instead. The result does not
// reference the file.
func Open[W comparable](path string, codec KeyCodec[W]) (*Embeddings[W], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 <= 0 || size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%w: size %d", ErrCorruptFile, size64)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size64), unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		e, parseErr := parse(data, codec)
		if unmapErr := unix.Munmap(data); parseErr == nil && unmapErr != nil {
			return nil, unmapErr
		}
		return e, parseErr
	}

	return Read(f, codec)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\n', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

func parse[W comparable](data []byte, codec KeyCodec[W]) (*Embeddings[W], error) {
	nl := bytes.IndexByte(data, '\n')
	if nl < 0 {
		return nil, fmt.Errorf("%w: missing header", ErrCorruptFile)
	}
	fields := bytes.Fields(data[:nl])
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: bad header %q", ErrCorruptFile, data[:nl])
	}
	n, err := strconv.Atoi(string(fields[0]))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: bad count %q", ErrCorruptFile, fields[0])
	}
	dim, err := strconv.Atoi(string(fields[1]))
	if err != nil || dim < 1 {
		return nil, fmt.Errorf("%w: bad dimension %q", ErrCorruptFile, fields[1])
	}
	avail := len(data) - nl
	if dim > avail/4 || (n > 0 && avail/n < 4*dim+2) {
		return nil, fmt.Errorf("%w: %d entries of dimension %d do not fit in %d bytes", ErrCorruptFile, n, dim, len(data))
	}

	words := make([]W, n)
	vectors := tensor.NewMat(n, dim)
	pos := nl + 1
	for i := range n {
		for pos < len(data) && isSpace(data[pos]) {
			pos++
		}
		start := pos
		for pos < len(data) && !isSpace(data[pos]) {
			pos++
		}
		if pos == start || pos >= len(data) {
			return nil, fmt.Errorf("%w: truncated at entry %d", ErrCorruptFile, i)
		}
		if words[i], err = codec.ParseKey(data[start:pos]); err != nil {
			return nil, err
		}
		pos++
		if pos+4*dim > len(data) {
			return nil, fmt.Errorf("%w: truncated vector at entry %d", ErrCorruptFile, i)
		}
		row := vectors.Row(i)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[pos+4*j:]))
		}
		pos += 4 * dim
	}
	return New(words, vectors)
}
