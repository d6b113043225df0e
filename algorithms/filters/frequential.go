// Package filters provides ready-made frequential filters for the
// alignment filter chain. Each filter mutates a half spectrum (L/2+1 bins
// of a real signal of length L) in place and is applied to the query and
// base spectra independently, so it must not assume anything about the
// spectrum it is not looking at.
package filters

import (
	"math/cmplx"
)

// BandPass keeps only the bins inside [LowHz, HighHz] and zeroes the rest.
// Zeroed bins contribute nothing to the cross-power spectrum, which
// restricts the correlation to the band of interest (voice band, for
// example, when aligning speech recordings).
type BandPass struct {
	// SampleRate is the working rate of the spectra the filter will see.
	SampleRate float64

	// LowHz and HighHz bound the passband, inclusive. HighHz <= 0 means
	// no upper bound.
	LowHz  float64
	HighHz float64
}

// NewBandPass creates a band-pass spectrum filter for the given working
// sample rate.
func NewBandPass(sampleRate, lowHz, highHz float64) *BandPass {
	return &BandPass{SampleRate: sampleRate, LowHz: lowHz, HighHz: highHz}
}

// Apply zeroes every bin outside the passband. The transform length is
// recovered from the bin count, so one filter works for any query size.
// The signature matches the chain callback contract; ctx is unused.
func (f *BandPass) Apply(spectrum []complex128, ctx any) {
	bins := len(spectrum)
	if bins < 2 {
		return
	}
	n := 2 * (bins - 1)
	hzPerBin := f.SampleRate / float64(n)

	for i := range spectrum {
		freq := float64(i) * hzPerBin
		if freq < f.LowHz || (f.HighHz > 0 && freq > f.HighHz) {
			spectrum[i] = 0
		}
	}
}

// PhaseTransform whitens a spectrum by scaling every bin to unit
// magnitude, keeping only phase. Running it on both spectra turns the
// cross-correlation into GCC-PHAT, which sharpens the peak for reverberant
// or level-mismatched recordings.
type PhaseTransform struct {
	// Epsilon guards the division for near-silent bins. Bins below it are
	// zeroed instead of amplified.
	Epsilon float64
}

// NewPhaseTransform creates a PHAT whitening filter with a standard guard.
func NewPhaseTransform() *PhaseTransform {
	return &PhaseTransform{Epsilon: 1e-12}
}

// Apply normalizes each bin to unit magnitude in place. ctx is unused.
func (f *PhaseTransform) Apply(spectrum []complex128, ctx any) {
	for i, v := range spectrum {
		mag := cmplx.Abs(v)
		if mag <= f.Epsilon {
			spectrum[i] = 0
			continue
		}
		spectrum[i] = v / complex(mag, 0)
	}
}
