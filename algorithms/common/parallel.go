package common

import "sync"

// Data-parallel helpers for splitting elementwise loops and reductions
// across a fixed number of workers. Reductions combine per-worker partial
// sums by addition, so the result does not depend on how the index range
// is partitioned.

// Span is a half-open index range [Start, End).
type Span struct {
	Start int
	End   int
}

// PartitionRange splits [0, n) into at most workers contiguous spans.
// The last span absorbs the remainder. Returns a single span when
// workers <= 1 or n is too small to split.
func PartitionRange(n, workers int) []Span {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if n <= 0 {
		return nil
	}
	if workers == 1 {
		return []Span{{Start: 0, End: n}}
	}

	size := n / workers
	spans := make([]Span, workers)
	for i := range workers {
		spans[i] = Span{Start: i * size, End: (i + 1) * size}
	}
	spans[workers-1].End = n
	return spans
}

// ParallelFor runs fn over [0, n) partitioned across workers goroutines
// and waits for all of them. fn must not touch indices outside its span.
func ParallelFor(n, workers int, fn func(start, end int)) {
	spans := PartitionRange(n, workers)
	if len(spans) <= 1 {
		if n > 0 {
			fn(0, n)
		}
		return
	}

	var wg sync.WaitGroup
	for _, sp := range spans {
		wg.Add(1)
		go func(sp Span) {
			defer wg.Done()
			fn(sp.Start, sp.End)
		}(sp)
	}
	wg.Wait()
}

// ParallelSums computes the sum of data[i] and data[i]*data[i] in a single
// pass split across workers. Each worker accumulates into its own slot and
// the partials combine by addition.
func ParallelSums(data []float64, workers int) (sum, sumSq float64) {
	spans := PartitionRange(len(data), workers)
	if len(spans) == 0 {
		return 0, 0
	}

	partSum := make([]float64, len(spans))
	partSumSq := make([]float64, len(spans))

	var wg sync.WaitGroup
	for w, sp := range spans {
		wg.Add(1)
		go func(w int, sp Span) {
			defer wg.Done()
			var s, sq float64
			for i := sp.Start; i < sp.End; i++ {
				v := data[i]
				s += v
				sq += v * v
			}
			partSum[w] = s
			partSumSq[w] = sq
		}(w, sp)
	}
	wg.Wait()

	for w := range partSum {
		sum += partSum[w]
		sumSq += partSumSq[w]
	}
	return sum, sumSq
}
