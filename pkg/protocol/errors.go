package protocol

import "errors"

// Decode and encode failures. Callers match with errors.Is; the returned
// errors usually wrap these with offset or field detail.
var (
	// ErrOutOfBounds is returned when a read would run past the buffer.
	ErrOutOfBounds = errors.New("protocol: read out of bounds")

	// ErrMalformedFrame is returned for empty or structurally invalid frames.
	ErrMalformedFrame = errors.New("protocol: malformed frame")

	// ErrInvalidArgument is returned before encoding when a caller supplied
	// value cannot be represented on the wire. Nothing is written.
	ErrInvalidArgument = errors.New("protocol: invalid argument")
)
