package align

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-align/algorithms/preprocess"
)

func noiseSignal(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	return x
}

func TestNewRejectsNonPositiveRate(t *testing.T) {
	_, err := New(0, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(-8000, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewClampsWorkers(t *testing.T) {
	s, err := New(8000, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, s.workers)
}

func TestQueryBeforeCommitFails(t *testing.T) {
	s, err := New(8000, 1)
	require.NoError(t, err)

	_, err = s.GetAudioRange(preprocess.FormatFloat64, []float64{1, 2, 3}, 8000)
	assert.ErrorIs(t, err, ErrBaseNotSet)
}

func TestDoubleCommitRejectedAndFirstBaseSurvives(t *testing.T) {
	base := noiseSignal(4000, 1)
	s, err := New(8000, 1)
	require.NoError(t, err)

	require.NoError(t, s.SetBaseAudio(preprocess.FormatFloat64, base, 8000))

	err = s.SetBaseAudio(preprocess.FormatFloat64, noiseSignal(4000, 2), 8000)
	assert.ErrorIs(t, err, ErrBaseAlreadySet)

	// The committed base is untouched: a slice of the first signal is
	// still found where it was.
	query := base[1000:1800]
	r, err := s.GetAudioRange(preprocess.FormatFloat64, query, 8000)
	require.NoError(t, err)
	assert.InDelta(t, 1000, r.Offset, 1)
}

func TestCommitValidatesArguments(t *testing.T) {
	s, err := New(8000, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SetBaseAudio(preprocess.FormatFloat64, []float64{1}, 0), ErrInvalidArgument)
	assert.ErrorIs(t, s.SetBaseAudio(preprocess.FormatFloat64, []float64{}, 8000), ErrInvalidArgument)
	assert.ErrorIs(t, s.SetBaseAudio(preprocess.Format(99), []float64{1}, 8000), ErrInvalidArgument)

	// None of the failures committed anything.
	_, err = s.GetAudioRange(preprocess.FormatFloat64, []float64{1, 2}, 8000)
	assert.ErrorIs(t, err, ErrBaseNotSet)
}

func TestQueryValidatesArguments(t *testing.T) {
	s, err := New(8000, 1)
	require.NoError(t, err)
	require.NoError(t, s.SetBaseAudio(preprocess.FormatFloat64, noiseSignal(2000, 3), 8000))

	_, err = s.GetAudioRange(preprocess.FormatFloat64, []float64{1, 2}, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.GetAudioRange(preprocess.FormatFloat64, []float64{}, 8000)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.GetAudioRange(preprocess.Format(99), []float64{1, 2}, 8000)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// A mismatched buffer type is invalid, not a crash.
	_, err = s.GetAudioRange(preprocess.FormatInt16, []float64{1, 2}, 8000)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddFrequentialFilterRejectsNil(t *testing.T) {
	s, err := New(8000, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, s.AddFrequentialFilter(nil, nil), ErrInvalidArgument)
}

func TestFiltersRunInOrderOnBothSpectraIndependently(t *testing.T) {
	s, err := New(8000, 1)
	require.NoError(t, err)

	var calls []string
	record := func(label string) FilterFunc {
		return func(spectrum []complex128, ctx any) {
			calls = append(calls, label)
		}
	}
	require.NoError(t, s.AddFrequentialFilter(record("first"), nil))
	require.NoError(t, s.AddFrequentialFilter(record("second"), nil))

	require.NoError(t, s.SetBaseAudio(preprocess.FormatFloat64, noiseSignal(1000, 4), 8000))
	_, err = s.GetAudioRange(preprocess.FormatFloat64, noiseSignal(200, 5), 8000)
	require.NoError(t, err)

	// Each filter runs once on the query spectrum and once on the base
	// spectrum, in registration order.
	assert.Equal(t, []string{"first", "first", "second", "second"}, calls)
}

func TestFilterContextIsPassedThrough(t *testing.T) {
	s, err := New(8000, 1)
	require.NoError(t, err)

	type params struct{ gain float64 }
	var seen []*params
	fn := func(spectrum []complex128, ctx any) {
		seen = append(seen, ctx.(*params))
	}
	want := &params{gain: 2}
	require.NoError(t, s.AddFrequentialFilter(fn, want))

	require.NoError(t, s.SetBaseAudio(preprocess.FormatFloat64, noiseSignal(500, 6), 8000))
	_, err = s.GetAudioRange(preprocess.FormatFloat64, noiseSignal(100, 7), 8000)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Same(t, want, seen[0])
	assert.Same(t, want, seen[1])
}

func TestClosedSessionRejectsEverything(t *testing.T) {
	s, err := New(8000, 1)
	require.NoError(t, err)
	require.NoError(t, s.SetBaseAudio(preprocess.FormatFloat64, noiseSignal(500, 8), 8000))

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close(), "Close is idempotent")

	assert.ErrorIs(t, s.SetBaseAudio(preprocess.FormatFloat64, []float64{1}, 8000), ErrSessionClosed)
	assert.ErrorIs(t, s.AddFrequentialFilter(func([]complex128, any) {}, nil), ErrSessionClosed)
	_, err = s.GetAudioRange(preprocess.FormatFloat64, []float64{1}, 8000)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestCloseBeforeCommitIsSafe(t *testing.T) {
	s, err := New(8000, 1)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestIntegerFormatsAlignLikeFloat(t *testing.T) {
	// The same waveform handed over as int16 PCM must land on the same
	// offset: normalization removes the scale difference.
	rng := rand.New(rand.NewSource(9))
	baseF := make([]float64, 3000)
	baseI := make([]int16, 3000)
	for i := range baseF {
		v := rng.Float64()*2 - 1
		baseF[i] = v
		baseI[i] = int16(v * 10000)
	}

	s, err := New(8000, 1)
	require.NoError(t, err)
	require.NoError(t, s.SetBaseAudio(preprocess.FormatFloat64, baseF, 8000))

	r, err := s.GetAudioRange(preprocess.FormatInt16, baseI[1200:2200], 8000)
	require.NoError(t, err)
	assert.InDelta(t, 1200, r.Offset, 1)
	assert.InDelta(t, 1000, r.Length, 1)
}
