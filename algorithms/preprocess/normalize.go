package preprocess

import (
	"math"

	"github.com/RyanBlaney/sonido-align/algorithms/common"
)

// Normalize centers samples to zero mean and scales them to unit variance,
// in place. Mean and variance come from a single reduction pass whose
// per-worker partials combine by addition, so the result is independent of
// how the range is partitioned.
//
// A constant signal has zero deviation; it is only centered (to all-zero),
// never divided.
func Normalize(samples []float64, workers int) {
	n := len(samples)
	if n == 0 {
		return
	}

	sum, sumSq := common.ParallelSums(samples, workers)
	mean := sum / float64(n)
	sigma := math.Sqrt(sumSq/float64(n) - mean*mean)

	if sigma == 0 || math.IsNaN(sigma) {
		common.ParallelFor(n, workers, func(start, end int) {
			for i := start; i < end; i++ {
				samples[i] -= mean
			}
		})
		return
	}

	common.ParallelFor(n, workers, func(start, end int) {
		for i := start; i < end; i++ {
			samples[i] = (samples[i] - mean) / sigma
		}
	})
}
