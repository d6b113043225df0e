// Package spectral provides the real-input forward/inverse transform
// capability consumed by the aligner. A spectrum of a real sequence of
// length L holds L/2+1 complex bins; the inverse returns the true
// (1/L-scaled) real sequence.
package spectral

import (
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer is the spectral transform capability.
//
// Implementations may thread internally; SetThreads is a hint and may be
// ignored. Implementations must be safe for concurrent Forward/Inverse
// calls because ready sessions run queries concurrently.
type Transformer interface {
	// Forward transforms a real sequence of length L into L/2+1 bins.
	Forward(samples []float64) []complex128

	// Inverse transforms L/2+1 bins back into a real sequence of length n.
	// The result is scaled by 1/n (a Forward/Inverse round trip is the
	// identity).
	Inverse(spectrum []complex128, n int) []float64

	// SetThreads passes the session's worker-count hint to the provider.
	SetThreads(workers int)
}

var setupOnce sync.Once

// initProviders performs one-time process-wide provider setup. Idempotent
// by construction; every constructor funnels through it.
func initProviders() {
	setupOnce.Do(func() {
		// gonum and go-dsp need no global state today. The guard stays so
		// a provider that does (FFTW-style threading init) has one place
		// to hook into.
	})
}

// FourierTransformer is the default Transformer, backed by
// gonum/dsp/fourier's real-input FFT. Plans are cached per size. A plan
// carries scratch state, so the lock is held for the whole transform,
// serializing concurrent callers rather than racing them.
type FourierTransformer struct {
	mu    sync.Mutex
	plans map[int]*fourier.FFT
}

// NewFourierTransformer creates the default gonum-backed transformer.
func NewFourierTransformer() *FourierTransformer {
	initProviders()
	return &FourierTransformer{plans: make(map[int]*fourier.FFT)}
}

// plan returns the cached fourier.FFT for size n, creating it on first
// use. Callers must hold t.mu.
func (t *FourierTransformer) plan(n int) *fourier.FFT {
	p, ok := t.plans[n]
	if !ok {
		p = fourier.NewFFT(n)
		t.plans[n] = p
	}
	return p
}

// Forward computes the real-input FFT, returning len(samples)/2+1 bins.
func (t *FourierTransformer) Forward(samples []float64) []complex128 {
	if len(samples) == 0 {
		return []complex128{}
	}
	dst := make([]complex128, len(samples)/2+1)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.plan(len(samples)).Coefficients(dst, samples)
}

// Inverse computes the scaled inverse real FFT of an n/2+1-bin spectrum.
func (t *FourierTransformer) Inverse(spectrum []complex128, n int) []float64 {
	if n == 0 {
		return []float64{}
	}
	dst := make([]float64, n)
	t.mu.Lock()
	t.plan(n).Sequence(dst, spectrum)
	t.mu.Unlock()
	// gonum's Sequence is unnormalized, same as FFTW.
	scale := 1.0 / float64(n)
	for i := range dst {
		dst[i] *= scale
	}
	return dst
}

// SetThreads is accepted for interface symmetry; gonum's FFT is
// single-threaded per call.
func (t *FourierTransformer) SetThreads(workers int) {}
