package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// GoDSPTransformer is an alternative Transformer backed by mjibson/go-dsp.
// It produces the same half-spectrum contract as FourierTransformer and is
// interchangeable with it.
type GoDSPTransformer struct{}

// NewGoDSPTransformer creates a go-dsp backed transformer.
func NewGoDSPTransformer() *GoDSPTransformer {
	initProviders()
	return &GoDSPTransformer{}
}

// Forward computes the FFT of a real sequence and keeps the first
// len(samples)/2+1 bins; the rest are redundant conjugates.
func (t *GoDSPTransformer) Forward(samples []float64) []complex128 {
	if len(samples) == 0 {
		return []complex128{}
	}
	full := fft.FFTReal(samples)
	return full[:len(samples)/2+1]
}

// Inverse rebuilds the Hermitian full spectrum from the half spectrum and
// inverts it. go-dsp's IFFT already applies the 1/n scale.
func (t *GoDSPTransformer) Inverse(spectrum []complex128, n int) []float64 {
	if n == 0 {
		return []float64{}
	}
	full := make([]complex128, n)
	copy(full, spectrum)
	for i := len(spectrum); i < n; i++ {
		full[i] = cmplx.Conj(full[n-i])
	}

	inv := fft.IFFT(full)
	out := make([]float64, n)
	for i, v := range inv {
		out[i] = real(v)
	}
	return out
}

// SetThreads sizes go-dsp's worker pool. The pool is process-global, so
// the last session to set it wins.
func (t *GoDSPTransformer) SetThreads(workers int) {
	fft.SetWorkerPoolSize(workers)
}
