package vocab

import (
	"hash/maphash"
	"time"

	"golang.org/x/time/rate"

	"github.com/samcharles93/skipwalk/internal/corpus"
	"github.com/samcharles93/skipwalk/internal/logger"
	"github.com/samcharles93/skipwalk/internal/parallel"
)

// countBatchSize is the number of sentences dispatched between two flushes.
const countBatchSize = 1000

// countingUnit owns one shard of the key space. Each worker appends to its own
// input buffer, so dispatch never contends; count folds the buffers into the
// shard's map and is only ever run by one goroutine per unit.
type countingUnit[W comparable] struct {
	inputs [][]W
	counts map[W]int64
	order  []W
}

func newCountingUnit[W comparable](workers int) *countingUnit[W] {
	return &countingUnit[W]{
		inputs: make([][]W, workers),
		counts: make(map[W]int64),
	}
}

func (u *countingUnit[W]) add(worker int, w W) {
	u.inputs[worker] = append(u.inputs[worker], w)
}

func (u *countingUnit[W]) count() {
	for i, in := range u.inputs {
		for _, w := range in {
			if _, seen := u.counts[w]; !seen {
				u.order = append(u.order, w)
			}
			u.counts[w]++
		}
		clear(in)
		u.inputs[i] = in[:0]
	}
}

// Counter counts word occurrences in parallel without a shared map: words are
// hashed to one of K shards (K = workers) and every shard is counted on its
// own.
type Counter[W comparable] struct {
	workers int
	units   []*countingUnit[W]
	seed    maphash.Seed
}

// NewCounter returns a counter with one shard per worker.
func NewCounter[W comparable](workers int) *Counter[W] {
	workers = parallel.Workers(workers)
	units := make([]*countingUnit[W], workers)
	for i := range units {
		units[i] = newCountingUnit[W](workers)
	}
	return &Counter[W]{
		workers: workers,
		units:   units,
		seed:    maphash.MakeSeed(),
	}
}

func (c *Counter[W]) dispatch(worker int, w W) {
	h := maphash.Comparable(c.seed, w) >> 16
	c.units[h%uint64(len(c.units))].add(worker, w)
}

func (c *Counter[W]) flush() {
	parallel.For(len(c.units), len(c.units), func(_, start, end int) {
		for _, u := range c.units[start:end] {
			u.count()
		}
	})
}

// CountCorpus counts every token of src. Sentences are processed in batches;
// after each batch every shard drains its buffers in parallel.
func (c *Counter[W]) CountCorpus(src corpus.Corpus[W], log logger.Logger) {
	total := src.SentenceCount()
	progress := rate.Sometimes{Interval: 100 * time.Millisecond}
	for start := 0; start < total; start += countBatchSize {
		progress.Do(func() {
			log.Debug("counting words", "progress", percent(start, total))
		})
		n := min(countBatchSize, total-start)
		parallel.Dynamic(c.workers, n, 1, func(worker, i int) {
			for _, w := range src.Sentence(start + i) {
				c.dispatch(worker, w)
			}
		})
		c.flush()
	}
}

// MergeInto copies the shard counts into v, shard by shard, each shard in
// first-seen order. This runs on a single goroutine.
func (c *Counter[W]) MergeInto(v *Vocab[W]) {
	for _, u := range c.units {
		for _, w := range u.order {
			v.AddCount(w, u.counts[w])
		}
	}
}

// Build counts every token of src with the given number of workers and
// returns the resulting vocabulary.
func Build[W comparable](src corpus.Corpus[W], workers int, log logger.Logger) *Vocab[W] {
	c := NewCounter[W](workers)
	c.CountCorpus(src, log)
	v := New[W]()
	c.MergeInto(v)
	return v
}

func percent(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100 * float64(done) / float64(total)
}
