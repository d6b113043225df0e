// Package preprocess converts raw typed sample buffers into the float64
// working representation used by the rest of the pipeline and statistically
// normalizes them before correlation.
package preprocess

import (
	"fmt"
)

// Format tags the element type of a raw sample buffer.
type Format int

const (
	// FormatInt8 is signed 8-bit PCM ([]int8).
	FormatInt8 Format = iota

	// FormatInt16 is signed 16-bit PCM ([]int16).
	FormatInt16

	// FormatInt32 is signed 32-bit PCM ([]int32).
	FormatInt32

	// FormatInt is platform-width signed PCM ([]int).
	FormatInt

	// FormatInt64 is signed 64-bit PCM ([]int64).
	FormatInt64

	// FormatFloat32 is single-precision float samples ([]float32).
	FormatFloat32

	// FormatFloat64 is double-precision float samples ([]float64).
	// This is the working sample type, so conversion is a direct copy.
	FormatFloat64
)

func (f Format) String() string {
	switch f {
	case FormatInt8:
		return "int8"
	case FormatInt16:
		return "int16"
	case FormatInt32:
		return "int32"
	case FormatInt:
		return "int"
	case FormatInt64:
		return "int64"
	case FormatFloat32:
		return "float32"
	case FormatFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// ErrBadFormat reports an unknown format tag or a raw buffer whose element
// type does not match its tag.
type ErrBadFormat struct {
	Format Format
	Raw    any
}

func (e *ErrBadFormat) Error() string {
	return fmt.Sprintf("preprocess: raw buffer %T does not match format %s", e.Raw, e.Format)
}

// Convert widens a raw typed sample buffer to the float64 working
// representation. The returned slice is always freshly allocated; the
// caller keeps ownership of the input. An unknown tag or a mismatched
// buffer type fails before any output allocation.
func Convert(format Format, raw any) ([]float64, error) {
	switch format {
	case FormatInt8:
		if in, ok := raw.([]int8); ok {
			return widenInts(in), nil
		}
	case FormatInt16:
		if in, ok := raw.([]int16); ok {
			return widenInts(in), nil
		}
	case FormatInt32:
		if in, ok := raw.([]int32); ok {
			return widenInts(in), nil
		}
	case FormatInt:
		if in, ok := raw.([]int); ok {
			return widenInts(in), nil
		}
	case FormatInt64:
		if in, ok := raw.([]int64); ok {
			return widenInts(in), nil
		}
	case FormatFloat32:
		if in, ok := raw.([]float32); ok {
			out := make([]float64, len(in))
			for i, v := range in {
				out[i] = float64(v)
			}
			return out, nil
		}
	case FormatFloat64:
		if in, ok := raw.([]float64); ok {
			out := make([]float64, len(in))
			copy(out, in)
			return out, nil
		}
	}
	return nil, &ErrBadFormat{Format: format, Raw: raw}
}

// Length reports the sample count of a raw buffer without converting it.
// It fails the same way Convert does for a bad tag or mismatched type, so
// callers can validate arguments before any allocation.
func Length(format Format, raw any) (int, error) {
	switch format {
	case FormatInt8:
		if in, ok := raw.([]int8); ok {
			return len(in), nil
		}
	case FormatInt16:
		if in, ok := raw.([]int16); ok {
			return len(in), nil
		}
	case FormatInt32:
		if in, ok := raw.([]int32); ok {
			return len(in), nil
		}
	case FormatInt:
		if in, ok := raw.([]int); ok {
			return len(in), nil
		}
	case FormatInt64:
		if in, ok := raw.([]int64); ok {
			return len(in), nil
		}
	case FormatFloat32:
		if in, ok := raw.([]float32); ok {
			return len(in), nil
		}
	case FormatFloat64:
		if in, ok := raw.([]float64); ok {
			return len(in), nil
		}
	}
	return 0, &ErrBadFormat{Format: format, Raw: raw}
}

func widenInts[T int8 | int16 | int32 | int | int64](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
