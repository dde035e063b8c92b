package tracer

import "sync"

// DefaultWorkers is used when Params.Workers is zero.
const DefaultWorkers = 4

// ParallelFor runs fn over contiguous chunks of [0, n) on up to workers
// goroutines and waits for all of them. Ranges shorter than minChunk run
// inline.
func ParallelFor(n, workers, minChunk int, fn func(start, end int)) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
