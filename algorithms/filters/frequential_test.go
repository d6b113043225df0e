package filters

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func onesSpectrum(bins int) []complex128 {
	spec := make([]complex128, bins)
	for i := range spec {
		spec[i] = complex(1, 0)
	}
	return spec
}

func TestBandPassZeroesOutOfBandBins(t *testing.T) {
	// 129 bins of a 256-point transform at 1000 Hz: bin i sits at
	// i * 1000/256 Hz, so the 100-200 Hz band covers bins 26..51.
	spec := onesSpectrum(129)
	NewBandPass(1000, 100, 200).Apply(spec, nil)

	for i := range spec {
		freq := float64(i) * 1000.0 / 256.0
		inBand := freq >= 100 && freq <= 200
		if inBand {
			assert.Equal(t, complex(1, 0), spec[i], "bin %d should pass", i)
		} else {
			assert.Equal(t, complex(0, 0), spec[i], "bin %d should be zeroed", i)
		}
	}
}

func TestBandPassNoUpperBound(t *testing.T) {
	spec := onesSpectrum(65)
	NewBandPass(8000, 1000, 0).Apply(spec, nil)

	assert.Equal(t, complex(0, 0), spec[0], "DC is below the band")
	assert.Equal(t, complex(1, 0), spec[64], "Nyquist passes without an upper bound")
}

func TestPhaseTransformUnitMagnitude(t *testing.T) {
	spec := []complex128{
		complex(3, 4),
		complex(-2, 0),
		complex(0, 0.5),
	}
	NewPhaseTransform().Apply(spec, nil)

	for i, v := range spec {
		assert.InDelta(t, 1.0, cmplx.Abs(v), 1e-12, "bin %d", i)
	}

	// Phase is preserved: (3,4) whitens to (0.6, 0.8).
	assert.InDelta(t, 0.6, real(spec[0]), 1e-12)
	assert.InDelta(t, 0.8, imag(spec[0]), 1e-12)
}

func TestPhaseTransformLeavesSilentBinsSilent(t *testing.T) {
	spec := []complex128{0, complex(1e-15, 0), complex(1, 0)}
	NewPhaseTransform().Apply(spec, nil)

	assert.Equal(t, complex(0, 0), spec[0])
	assert.Equal(t, complex(0, 0), spec[1], "sub-epsilon bins must not be amplified")
	assert.Equal(t, complex(1, 0), spec[2])
}
