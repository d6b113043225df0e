// Package align locates where a short query clip occurs inside a longer
// base recording using frequency-domain cross-correlation. A Session owns
// one prepared base signal and answers repeated queries against it,
// returning the offset and length of the query in samples of the base's
// original rate.
package align

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-align/algorithms/preprocess"
	"github.com/RyanBlaney/sonido-align/algorithms/resample"
	"github.com/RyanBlaney/sonido-align/algorithms/spectral"
	"github.com/RyanBlaney/sonido-align/logging"
)

// FilterFunc is a frequential filter callback. It mutates the half
// spectrum in place; ctx is the value registered alongside it. The chain
// applies each callback to the query spectrum and the base spectrum
// independently, never jointly, so a callback must not assume anything
// about the spectrum it is not currently handed.
type FilterFunc func(spectrum []complex128, ctx any)

type filterEntry struct {
	fn  FilterFunc
	ctx any
}

// Range is the result of a query: where the query starts inside the base
// and how long it is, both in samples of the base's original rate. Offset
// is negative when the query starts before the base does.
type Range struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Config assembles a session with explicit capabilities. Zero fields fall
// back to the defaults used by New.
type Config struct {
	// BaseSampleRate is the working rate every signal is brought to
	// before correlation. Must be positive.
	BaseSampleRate float64

	// Workers bounds the data-parallel fan-out for reductions, the
	// cross-power multiply, and chunked resampling. Values below 1 clamp
	// to 1 (fully sequential).
	Workers int

	// Transformer is the spectral transform capability. Defaults to the
	// gonum-backed FourierTransformer.
	Transformer spectral.Transformer

	// Resampler is the band-limited interpolation capability. Defaults to
	// the sinc provider at medium quality.
	Resampler resample.Provider

	// Logger overrides the global logger for this session.
	Logger logging.Logger
}

// Session holds one committed base signal, the filter chain, and the
// worker-count hint across repeated queries.
//
// Lifecycle: created empty, the base may be committed exactly once, then
// queries repeat freely until Close. After the base is committed and
// filter registration is finished, the session never mutates the base
// buffer or the filter list again, which is what makes concurrent
// read-only GetAudioRange calls safe.
type Session struct {
	workingRate  float64 // rate all signals are correlated at
	originalRate float64 // caller-supplied rate of the committed base
	base         []float64
	baseLen      int
	filters      []filterEntry
	workers      int

	transformer spectral.Transformer
	resampler   resample.Provider
	logger      logging.Logger

	closed bool
}

// New creates an empty session that will correlate at baseSampleRate
// using up to workers goroutines for data-parallel work.
func New(baseSampleRate float64, workers int) (*Session, error) {
	return NewWithConfig(&Config{
		BaseSampleRate: baseSampleRate,
		Workers:        workers,
	})
}

// NewWithConfig creates an empty session with explicit capabilities.
func NewWithConfig(cfg *Config) (*Session, error) {
	if cfg == nil || cfg.BaseSampleRate <= 0 {
		return nil, fmt.Errorf("%w: base sample rate must be positive", ErrInvalidArgument)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	transformer := cfg.Transformer
	if transformer == nil {
		transformer = spectral.NewFourierTransformer()
	}
	transformer.SetThreads(workers)

	provider := cfg.Resampler
	if provider == nil {
		provider = resample.NewSincProvider()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.WithFields(logging.Fields{
			"component": "align_session",
		})
	}

	return &Session{
		workingRate: cfg.BaseSampleRate,
		workers:     workers,
		transformer: transformer,
		resampler:   provider,
		logger:      logger,
	}, nil
}

// AddFrequentialFilter appends a (callback, context) pair to the filter
// chain. Filters run in registration order, once per spectrum. Register
// all filters before issuing concurrent queries.
func (s *Session) AddFrequentialFilter(fn FilterFunc, ctx any) error {
	if s.closed {
		return ErrSessionClosed
	}
	if fn == nil {
		return fmt.Errorf("%w: nil filter callback", ErrInvalidArgument)
	}
	s.filters = append(s.filters, filterEntry{fn: fn, ctx: ctx})
	return nil
}

// SetBaseAudio converts, normalizes and resamples the base signal to the
// working rate, then commits it. The commit happens only after the whole
// pipeline succeeds; on any error the session is exactly as it was. A
// second call fails with ErrBaseAlreadySet and leaves the committed base
// untouched.
func (s *Session) SetBaseAudio(format preprocess.Format, samples any, sampleRate float64) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.base != nil {
		return ErrBaseAlreadySet
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidArgument, sampleRate)
	}
	if n, err := preprocess.Length(format, samples); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	} else if n == 0 {
		return fmt.Errorf("%w: empty base signal", ErrInvalidArgument)
	}

	base, err := preprocess.Convert(format, samples)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	preprocess.Normalize(base, s.workers)

	ratio := s.workingRate / sampleRate
	if ratio != 1 {
		hint := int(math.Round(float64(len(base)) * ratio))
		base, err = resample.Parallel(s.resampler, base, sampleRate, ratio, hint, s.workers)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrResample, err)
		}
	}

	s.base = base
	s.baseLen = len(base)
	s.originalRate = sampleRate

	s.logger.Debug("base signal committed", logging.Fields{
		"working_rate":  s.workingRate,
		"original_rate": s.originalRate,
		"samples":       s.baseLen,
	})
	return nil
}

// Close releases the base buffer and the filter chain. It is idempotent
// and safe to call after failed operations; any other call on a closed
// session fails with ErrSessionClosed.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.base = nil
	s.baseLen = 0
	s.filters = nil
	s.closed = true
	return nil
}
