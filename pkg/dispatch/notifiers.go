package dispatch

import "sync"

type registration struct {
	fn  func()
	gen uint64
}

// Notifiers holds one change callback per entity. Registering again for
// the same key replaces the previous callback.
type Notifiers[K comparable] struct {
	mu   sync.Mutex
	subs map[K]registration
	gen  uint64
}

// NewNotifiers creates an empty registry.
func NewNotifiers[K comparable]() *Notifiers[K] {
	return &Notifiers[K]{subs: make(map[K]registration)}
}

// Subscription is the handle returned by Register. Closing it removes the
// callback, unless another registration for the same key has replaced it.
type Subscription[K comparable] struct {
	n    *Notifiers[K]
	key  K
	gen  uint64
	once sync.Once
}

// Register installs fn as the callback for key.
func (n *Notifiers[K]) Register(key K, fn func()) *Subscription[K] {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.subs[key] = registration{fn: fn, gen: n.gen}
	return &Subscription[K]{n: n, key: key, gen: n.gen}
}

// Unregister removes whatever callback is installed for key.
func (n *Notifiers[K]) Unregister(key K) {
	n.mu.Lock()
	delete(n.subs, key)
	n.mu.Unlock()
}

// Notify calls the callback for key, if any. The callback runs on the
// caller's goroutine without the registry lock held, so it may register or
// close subscriptions itself.
func (n *Notifiers[K]) Notify(key K) {
	n.mu.Lock()
	r, ok := n.subs[key]
	n.mu.Unlock()
	if ok && r.fn != nil {
		r.fn()
	}
}

// Len returns the number of registered callbacks.
func (n *Notifiers[K]) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Key returns the entity this subscription watches.
func (s *Subscription[K]) Key() K {
	return s.key
}

// Close unregisters the callback. It is safe to call more than once.
func (s *Subscription[K]) Close() {
	s.once.Do(func() {
		s.n.mu.Lock()
		defer s.n.mu.Unlock()
		if r, ok := s.n.subs[s.key]; ok && r.gen == s.gen {
			delete(s.n.subs, s.key)
		}
	})
}
