package model

// Table is an ordered set of entities reconciled from table packets.
// It is not safe for concurrent use; Store serializes access.
type Table[T Keyed] struct {
	items   map[EntityID]T
	order   []EntityID
	removed map[EntityID]struct{}
}

// NewTable creates an empty table.
func NewTable[T Keyed]() *Table[T] {
	return &Table[T]{
		items:   make(map[EntityID]T),
		removed: make(map[EntityID]struct{}),
	}
}

// Apply reconciles one decoded table packet and returns the ids that were
// written. single marks a delta. Removed ids are skipped in both modes.
func (t *Table[T]) Apply(records []T, single bool) []EntityID {
	if single {
		if len(records) != 1 {
			return nil
		}
		if t.Put(records[0]) {
			return []EntityID{records[0].Key()}
		}
		return nil
	}
	return t.ApplySnapshot(records)
}

// Put overlays one entity, appending it if it is new. It reports false
// when the id has been removed.
func (t *Table[T]) Put(v T) bool {
	id := v.Key()
	if _, gone := t.removed[id]; gone {
		return false
	}
	if _, ok := t.items[id]; !ok {
		t.order = append(t.order, id)
	}
	t.items[id] = v
	return true
}

// ApplySnapshot upserts every named entity and moves them, in snapshot
// order, ahead of the cached entities the snapshot did not name.
func (t *Table[T]) ApplySnapshot(records []T) []EntityID {
	named := make(map[EntityID]struct{}, len(records))
	applied := make([]EntityID, 0, len(records))
	for _, v := range records {
		id := v.Key()
		if _, gone := t.removed[id]; gone {
			continue
		}
		if _, dup := named[id]; dup {
			// Last record for an id wins; keep its first position.
			t.items[id] = v
			continue
		}
		named[id] = struct{}{}
		t.items[id] = v
		applied = append(applied, id)
	}

	order := make([]EntityID, 0, len(t.items))
	order = append(order, applied...)
	for _, id := range t.order {
		if _, ok := named[id]; !ok {
			order = append(order, id)
		}
	}
	t.order = order
	return applied
}

// Remove deletes id and prevents it from coming back. The master entity
// cannot be removed.
func (t *Table[T]) Remove(id EntityID) bool {
	if id.IsMaster() {
		return false
	}
	t.removed[id] = struct{}{}
	if _, ok := t.items[id]; !ok {
		return false
	}
	delete(t.items, id)
	for i, cur := range t.order {
		if cur == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Removed reports whether id has been removed.
func (t *Table[T]) Removed(id EntityID) bool {
	_, ok := t.removed[id]
	return ok
}

// Get returns the entity for id.
func (t *Table[T]) Get(id EntityID) (T, bool) {
	v, ok := t.items[id]
	return v, ok
}

// At returns the entity at position i.
func (t *Table[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(t.order) {
		var zero T
		return zero, false
	}
	return t.items[t.order[i]], true
}

// Index returns the position of id, or -1.
func (t *Table[T]) Index(id EntityID) int {
	for i, cur := range t.order {
		if cur == id {
			return i
		}
	}
	return -1
}

// Len returns the number of entities.
func (t *Table[T]) Len() int {
	return len(t.order)
}

// All returns the entities in order.
func (t *Table[T]) All() []T {
	out := make([]T, len(t.order))
	for i, id := range t.order {
		out[i] = t.items[id]
	}
	return out
}
