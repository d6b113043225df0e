package resample

import (
	"sync"

	"github.com/RyanBlaney/sonido-align/algorithms/common"
)

// minParallelInput is the input length below which chunking is not worth
// the per-chunk filter warmup.
const minParallelInput = 1 << 14

// Parallel resamples input by splitting it into workers contiguous chunks,
// resampling each chunk independently at the same ratio, and concatenating
// the per-chunk outputs in chunk order after all workers finish.
//
// Each chunk is treated as an independent signal, so the filter restarts
// cold at every boundary. The concatenated result's count and content can
// therefore differ slightly from the single-threaded path; that divergence
// is the accepted cost of the speedup and is deliberately left alone. The
// single-threaded path is the reference the output is judged against.
func Parallel(p Provider, input []float64, sourceRate, ratio float64, outHint, workers int) ([]float64, error) {
	if workers <= 1 || len(input) < minParallelInput || ratio == 1 {
		return p.Resample(input, sourceRate, ratio, outHint)
	}

	spans := common.PartitionRange(len(input), workers)
	if len(spans) <= 1 {
		return p.Resample(input, sourceRate, ratio, outHint)
	}

	chunks := make([][]float64, len(spans))
	errs := make([]error, len(spans))

	var wg sync.WaitGroup
	for w, sp := range spans {
		wg.Add(1)
		go func(w int, sp common.Span) {
			defer wg.Done()
			hint := int(float64(sp.End-sp.Start)*ratio + 0.5)
			chunks[w], errs[w] = p.Resample(input[sp.Start:sp.End], sourceRate, ratio, hint)
		}(w, sp)
	}
	wg.Wait()

	total := 0
	for w := range chunks {
		if errs[w] != nil {
			return nil, errs[w]
		}
		total += len(chunks[w])
	}

	out := make([]float64, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out, nil
}
