package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tonePCM builds 16-bit PCM frames of a swept tone, noisy enough for the
// correlator to lock onto.
func tonePCM(n int) []int {
	data := make([]int, n)
	for i := range data {
		phase := 2 * math.Pi * float64(i) * (200 + 0.05*float64(i)) / 8000
		data[i] = int(12000 * math.Sin(phase))
	}
	return data
}

func TestRunLocatesTrackWithQualityPreset(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.wav")
	trackPath := filepath.Join(dir, "track.wav")

	base := tonePCM(4000)
	writeTestWAV(t, basePath, base, 1, 8000)
	writeTestWAV(t, trackPath, base[1000:2000], 1, 8000)

	for _, quality := range []string{"medium", "high", "quick"} {
		err := run(&options{
			basePath:  basePath,
			trackPath: trackPath,
			threads:   2,
			quality:   quality,
		})
		assert.NoError(t, err, "quality %s", quality)
	}
}

func TestRunRejectsUnknownQualityPreset(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.wav")
	trackPath := filepath.Join(dir, "track.wav")

	base := tonePCM(2000)
	writeTestWAV(t, basePath, base, 1, 8000)
	writeTestWAV(t, trackPath, base[500:1000], 1, 8000)

	err := run(&options{
		basePath:  basePath,
		trackPath: trackPath,
		threads:   1,
		quality:   "studio",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quality preset")
}
