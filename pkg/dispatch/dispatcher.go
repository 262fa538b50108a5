package dispatch

import (
	"sync"

	"github.com/eim-dev/eim-client/pkg/protocol"
)

// Handler consumes the payload of one packet. The decoder is positioned
// just past the opcode byte. A returned error marks the frame malformed;
// it never stops the read loop.
type Handler func(d *protocol.Decoder) error

// Dispatcher maps each clientbound opcode to at most one handler.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers [256]Handler
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Register installs h for op and returns the handler it replaced, if any.
func (d *Dispatcher) Register(op protocol.Clientbound, h Handler) Handler {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := d.handlers[op]
	d.handlers[op] = h
	return prev
}

// Unregister clears the handler for op.
func (d *Dispatcher) Unregister(op protocol.Clientbound) {
	d.mu.Lock()
	d.handlers[op] = nil
	d.mu.Unlock()
}

// Handler returns the handler registered for op, or nil.
func (d *Dispatcher) Handler(op protocol.Clientbound) Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.handlers[op]
}

// Dispatch invokes the handler for op synchronously. handled is false when
// no handler is registered, in which case the packet is dropped.
func (d *Dispatcher) Dispatch(op protocol.Clientbound, dec *protocol.Decoder) (handled bool, err error) {
	h := d.Handler(op)
	if h == nil {
		return false, nil
	}
	return true, h(dec)
}
