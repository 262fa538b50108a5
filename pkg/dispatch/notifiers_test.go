package dispatch

import "testing"

func TestNotifiersIsolated(t *testing.T) {
	n := NewNotifiers[uint64]()
	var a, b int
	n.Register(1, func() { a++ })
	n.Register(2, func() { b++ })

	n.Notify(1)
	n.Notify(1)
	n.Notify(3)

	if a != 2 || b != 0 {
		t.Errorf("a = %d, b = %d; want 2, 0", a, b)
	}
}

func TestNotifiersReplace(t *testing.T) {
	n := NewNotifiers[uint64]()
	var old, cur int
	first := n.Register(5, func() { old++ })
	n.Register(5, func() { cur++ })

	n.Notify(5)
	if old != 0 || cur != 1 {
		t.Fatalf("old = %d, cur = %d; want 0, 1", old, cur)
	}

	// Closing the replaced subscription must not remove the new one.
	first.Close()
	n.Notify(5)
	if cur != 2 {
		t.Errorf("cur = %d after stale Close, want 2", cur)
	}
}

func TestSubscriptionCloseIdempotent(t *testing.T) {
	n := NewNotifiers[uint64]()
	calls := 0
	sub := n.Register(9, func() { calls++ })
	sub.Close()
	sub.Close()

	n.Notify(9)
	if calls != 0 {
		t.Errorf("calls = %d after Close, want 0", calls)
	}
	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0", n.Len())
	}
	if sub.Key() != 9 {
		t.Errorf("Key() = %d, want 9", sub.Key())
	}
}

func TestUnregisterThenNotify(t *testing.T) {
	n := NewNotifiers[uint64]()
	calls := 0
	n.Register(1, func() { calls++ })
	n.Unregister(1)
	n.Unregister(1)
	n.Notify(1)
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestCallbackMayResubscribe(t *testing.T) {
	n := NewNotifiers[uint64]()
	calls := 0
	var sub *Subscription[uint64]
	sub = n.Register(1, func() {
		calls++
		sub.Close()
	})
	n.Notify(1)
	n.Notify(1)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
