package align

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/RyanBlaney/sonido-align/algorithms/common"
	"github.com/RyanBlaney/sonido-align/algorithms/preprocess"
	"github.com/RyanBlaney/sonido-align/algorithms/resample"
	"github.com/RyanBlaney/sonido-align/logging"
)

// resize returns a fresh buffer of exactly n samples: the first
// min(len(x), n) are copied from x, the rest stay zero. Handles both
// padding and truncation.
func resize(x []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, x)
	return out
}

// commonSize is the smallest power of two >= minimal. Correlating at
// len(query)+len(base) or more keeps the circular correlation free of
// wraparound contamination over the true overlap.
func commonSize(minimal int) int {
	return common.NextPowerOfTwo(minimal)
}

// GetAudioRange locates the query signal inside the committed base signal
// and returns its offset and length in samples of the base's original
// rate. The offset may be negative when the query starts before the base.
// Repeated calls with the same arguments return the same Range.
func (s *Session) GetAudioRange(format preprocess.Format, samples any, sampleRate float64) (Range, error) {
	if s.closed {
		return Range{}, ErrSessionClosed
	}
	if s.base == nil {
		return Range{}, ErrBaseNotSet
	}
	if sampleRate <= 0 {
		return Range{}, fmt.Errorf("%w: sample rate %v", ErrInvalidArgument, sampleRate)
	}
	if n, err := preprocess.Length(format, samples); err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	} else if n == 0 {
		return Range{}, fmt.Errorf("%w: empty query signal", ErrInvalidArgument)
	}

	query, err := preprocess.Convert(format, samples)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	preprocess.Normalize(query, s.workers)

	ratio := s.workingRate / sampleRate
	if ratio != 1 {
		hint := int(math.Ceil(float64(len(query)) * ratio))
		query, err = resample.Parallel(s.resampler, query, sampleRate, ratio, hint, s.workers)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %v", ErrResample, err)
		}
	}
	queryLen := len(query)

	peak := s.correlate(query)

	// Rescale from the working rate back to the rate the base was
	// originally handed over at.
	toOriginal := s.originalRate / s.workingRate
	result := Range{
		Offset: int(math.Round(float64(peak) * toOriginal)),
		Length: int(math.Round(float64(queryLen) * toOriginal)),
	}

	s.logger.Debug("query aligned", logging.Fields{
		"query_samples": queryLen,
		"peak":          peak,
		"offset":        result.Offset,
		"length":        result.Length,
	})
	return result, nil
}

// correlate runs the spectral cross-correlation of the prepared query
// against the committed base and returns the lag of the correlation peak
// at the working rate. The base buffer itself is only read; padding works
// on a private copy.
func (s *Session) correlate(query []float64) int {
	queryLen := len(query)
	cs := commonSize(queryLen + s.baseLen)
	bins := cs/2 + 1

	padQuery := resize(query, cs)
	padBase := resize(s.base, cs)

	querySpec := s.transformer.Forward(padQuery)
	baseSpec := s.transformer.Forward(padBase)

	for _, entry := range s.filters {
		entry.fn(querySpec, entry.ctx)
		entry.fn(baseSpec, entry.ctx)
	}

	// Cross-power spectrum, elementwise and embarrassingly parallel.
	common.ParallelFor(bins, s.workers, func(start, end int) {
		for i := start; i < end; i++ {
			querySpec[i] = cmplx.Conj(querySpec[i]) * baseSpec[i]
		}
	})

	correlation := s.transformer.Inverse(querySpec, cs)

	// First occurrence wins on ties, so a constant correlation (all bins
	// filtered away) deterministically lands on index 0.
	peak := 0
	maxv := math.Inf(-1)
	for i, v := range correlation {
		if v > maxv {
			maxv = v
			peak = i
		}
	}

	// Indices near the top of the circular buffer are negative lags: the
	// query starts before the base or overlaps its tail. The queryLen/2
	// threshold is empirical and part of the observable contract.
	if peak > cs-queryLen/2 {
		peak -= cs
	}
	return peak
}
