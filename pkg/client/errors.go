package client

import (
	"errors"
	"fmt"

	"github.com/eim-dev/eim-client/pkg/protocol"
)

var (
	// ErrChannelClosed is returned once the backend channel is gone. Every
	// pending request fails with it when the transport drops.
	ErrChannelClosed = errors.New("client: channel closed")

	// ErrTimeout is returned when a correlated command gets no reply within
	// Config.RequestTimeout. Only that request fails.
	ErrTimeout = errors.New("client: request timed out")

	// ErrBackend is wrapped by every BackendError.
	ErrBackend = errors.New("client: backend error")

	// ErrUnknownTrack is returned when a command names a track index the
	// cache does not hold.
	ErrUnknownTrack = errors.New("client: unknown track")
)

// BackendError is a failure the backend reported in a reply.
type BackendError struct {
	Op      protocol.Serverbound
	Message string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns ErrBackend.
func (e *BackendError) Unwrap() error {
	return ErrBackend
}
