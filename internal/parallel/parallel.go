// Package parallel provides the two loop shapes used by the training
// pipeline: a static split of a range across workers and a dynamically
// scheduled loop where workers claim fixed-size batches as they go.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Workers returns n if positive, otherwise GOMAXPROCS.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return max(runtime.GOMAXPROCS(0), 1)
}

// For splits [0, n) into at most workers contiguous chunks and runs fn on each
// chunk in its own goroutine. fn receives the worker index so it can pick
// per-worker state. For returns once every chunk is done.
func For(workers, n int, fn func(worker, start, end int)) {
	if n <= 0 {
		return
	}
	workers = min(Workers(workers), n)
	if workers <= 1 {
		fn(0, 0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := range workers {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(w, start, end)
		}()
	}
	wg.Wait()
}

// Dynamic runs fn(worker, i) for every i in [0, n). Workers repeatedly claim
// the next unclaimed batch of batch indices, so a slow item only delays the
// worker holding it. Items within a batch run in order; across batches there
// is no ordering.
func Dynamic(workers, n, batch int, fn func(worker, i int)) {
	if n <= 0 {
		return
	}
	if batch < 1 {
		batch = 1
	}
	batches := (n + batch - 1) / batch
	workers = min(Workers(workers), batches)

	var next atomic.Int64
	run := func(worker int) {
		for {
			b := int(next.Add(1) - 1)
			if b >= batches {
				return
			}
			end := min((b+1)*batch, n)
			for i := b * batch; i < end; i++ {
				fn(worker, i)
			}
		}
	}

	if workers <= 1 {
		run(0)
		return
	}
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(w)
		}()
	}
	wg.Wait()
}
