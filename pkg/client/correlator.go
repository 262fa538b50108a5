package client

import (
	"sync"
	"sync/atomic"
)

type reply struct {
	payload []byte
	err     error
}

// correlator matches Reply packets to the commands waiting for them.
type correlator struct {
	nextID atomic.Uint32

	mu      sync.Mutex
	pending map[uint32]chan reply
	closed  error
}

func newCorrelator() *correlator {
	return &correlator{pending: make(map[uint32]chan reply)}
}

// nextReplyID returns a fresh id. Ids wrap; by then the old holder of an id
// has long since resolved or timed out.
func (c *correlator) nextReplyID() uint32 {
	return c.nextID.Add(1)
}

// add registers id and returns the channel its reply arrives on.
func (c *correlator) add(id uint32) (<-chan reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed != nil {
		return nil, c.closed
	}
	ch := make(chan reply, 1)
	c.pending[id] = ch
	return ch, nil
}

// resolve delivers payload to the waiter for id. It reports false when no
// one is waiting, which is the case for a reply that arrives after its
// request timed out.
func (c *correlator) resolve(id uint32, payload []byte) bool {
	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if !ok {
		return false
	}
	ch <- reply{payload: payload}
	return true
}

// drop forgets id without delivering anything.
func (c *correlator) drop(id uint32) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// closeAll fails every pending request with err and refuses new ones.
func (c *correlator) closeAll(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed != nil {
		return
	}
	c.closed = err
	for id, ch := range c.pending {
		ch <- reply{err: err}
		delete(c.pending, id)
	}
}

// len returns the number of requests still waiting.
func (c *correlator) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
