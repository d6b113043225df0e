// Package resample wraps a band-limited interpolation capability behind a
// small provider interface and adds a data-parallel chunked variant.
package resample

import (
	"fmt"
	"strings"

	resampler "github.com/tphakala/go-audio-resampler"
)

// Provider is the band-limited resampler capability. Implementations are
// handed an input sequence, its source rate, the rate ratio output/input,
// and a desired output count, and return however many samples they
// actually produced. The hint is a request, not a guarantee: filter
// latency and rounding make the real count differ by a few samples.
type Provider interface {
	Resample(input []float64, sourceRate, ratio float64, outHint int) ([]float64, error)
}

// SincProvider resamples through tphakala's polyphase sinc resampler.
type SincProvider struct {
	// Quality selects the filter preset. Zero value is QualityQuick;
	// NewSincProvider defaults to QualityMedium.
	Quality resampler.QualityPreset
}

// NewSincProvider creates the default provider at medium quality,
// comparable to libsamplerate's fastest sinc converter.
func NewSincProvider() *SincProvider {
	return &SincProvider{Quality: resampler.QualityMedium}
}

// NewSincProviderQuality creates a provider with an explicit preset.
func NewSincProviderQuality(quality resampler.QualityPreset) *SincProvider {
	return &SincProvider{Quality: quality}
}

// ParsePreset maps a preset name to its QualityPreset. Accepted names are
// quick, low, medium, high and veryhigh, case-insensitive.
func ParsePreset(name string) (resampler.QualityPreset, error) {
	switch strings.ToLower(name) {
	case "quick":
		return resampler.QualityQuick, nil
	case "low":
		return resampler.QualityLow, nil
	case "medium":
		return resampler.QualityMedium, nil
	case "high":
		return resampler.QualityHigh, nil
	case "veryhigh", "very-high":
		return resampler.QualityVeryHigh, nil
	}
	return 0, fmt.Errorf("resample: unknown quality preset %q (want quick, low, medium, high or veryhigh)", name)
}

// Resample converts input from sourceRate to sourceRate*ratio. The whole
// signal is pushed through one resampler instance and the filter tail is
// flushed, so no trailing samples are lost. When a positive outHint is
// given and more samples were produced, the output is capped at the hint.
func (p *SincProvider) Resample(input []float64, sourceRate, ratio float64, outHint int) ([]float64, error) {
	if len(input) == 0 {
		return []float64{}, nil
	}
	if sourceRate <= 0 || ratio <= 0 {
		return nil, fmt.Errorf("resample: non-positive rate (source %v, ratio %v)", sourceRate, ratio)
	}
	if ratio == 1 {
		out := make([]float64, len(input))
		copy(out, input)
		return out, nil
	}

	r, err := resampler.New(&resampler.Config{
		InputRate:  sourceRate,
		OutputRate: sourceRate * ratio,
		Channels:   1,
		Quality:    resampler.QualitySpec{Preset: p.Quality},
	})
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	out, err := r.Process(input)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	tail, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	out = append(out, tail...)

	if outHint > 0 && len(out) > outHint {
		out = out[:outHint]
	}
	return out, nil
}
