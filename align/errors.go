package align

import "errors"

// Error taxonomy for the session API. Callers match with errors.Is; the
// wrapped messages carry the offending values.
var (
	// ErrInvalidArgument reports an unknown sample format, a raw buffer
	// that does not match its format tag, a non-positive sample rate, an
	// empty signal, or a nil filter callback.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBaseAlreadySet reports a second SetBaseAudio on a session whose
	// base signal is already committed. The committed base is untouched.
	ErrBaseAlreadySet = errors.New("base signal already set")

	// ErrBaseNotSet reports a GetAudioRange before any successful
	// SetBaseAudio.
	ErrBaseNotSet = errors.New("base signal not set")

	// ErrSessionClosed reports any use of a session after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrResample wraps a failure of the resampler capability.
	ErrResample = errors.New("resample failed")
)
