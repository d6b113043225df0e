package main

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// wavSignal is a decoded, mono, float64 audio file.
type wavSignal struct {
	samples []float64
	rate    float64
}

// loadWAVMono decodes a WAV file fully into memory and mixes interleaved
// channels down to mono by averaging each frame.
func loadWAVMono(path string) (*wavSignal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("missing format information: %s", path)
	}

	mono := mixToMono(buf.Data, buf.Format.NumChannels)
	if len(mono) == 0 {
		return nil, fmt.Errorf("no audio frames: %s", path)
	}

	return &wavSignal{
		samples: mono,
		rate:    float64(buf.Format.SampleRate),
	}, nil
}

// mixToMono averages interleaved PCM frames into one channel. Mono input
// is widened as-is.
func mixToMono(data []int, channels int) []float64 {
	if channels <= 1 {
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = float64(v)
		}
		return out
	}

	frames := len(data) / channels
	out := make([]float64, frames)
	for i := range frames {
		sum := 0
		for c := range channels {
			sum += data[i*channels+c]
		}
		out[i] = float64(sum) / float64(channels)
	}
	return out
}
