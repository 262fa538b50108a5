package model

import (
	"reflect"
	"testing"
)

func names(ts []Track) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func TestSnapshotThenDelta(t *testing.T) {
	tab := NewTable[Track]()
	tab.Apply([]Track{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}, false)
	applied := tab.Apply([]Track{{ID: 2, Name: "B'"}}, true)

	if !reflect.DeepEqual(applied, []EntityID{2}) {
		t.Errorf("applied = %v, want [2]", applied)
	}
	if got := names(tab.All()); !reflect.DeepEqual(got, []string{"A", "B'", "C"}) {
		t.Errorf("tracks = %v, want [A B' C]", got)
	}
}

func TestSnapshotKeepsUnnamed(t *testing.T) {
	tab := NewTable[Track]()
	tab.Apply([]Track{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}, false)
	tab.Apply([]Track{{ID: 3, Name: "C2"}, {ID: 1, Name: "A2"}}, false)

	if got := names(tab.All()); !reflect.DeepEqual(got, []string{"C2", "A2", "B"}) {
		t.Errorf("tracks = %v, want [C2 A2 B]", got)
	}
}

func TestEmptySnapshotIsNoop(t *testing.T) {
	tab := NewTable[Track]()
	tab.Apply([]Track{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, false)
	if applied := tab.Apply(nil, false); len(applied) != 0 {
		t.Errorf("applied = %v, want none", applied)
	}
	if tab.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tab.Len())
	}
}

func TestDeltaAppendsNewEntity(t *testing.T) {
	tab := NewTable[Track]()
	tab.Apply([]Track{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, false)
	tab.Apply([]Track{{ID: 9, Name: "Z"}}, true)
	if got := names(tab.All()); !reflect.DeepEqual(got, []string{"A", "B", "Z"}) {
		t.Errorf("tracks = %v", got)
	}
	if tab.Index(9) != 2 {
		t.Errorf("Index(9) = %d, want 2", tab.Index(9))
	}
}

func TestRemoveTombstones(t *testing.T) {
	tab := NewTable[Track]()
	tab.Apply([]Track{{ID: 0, Name: "Master"}, {ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, false)

	if !tab.Remove(1) {
		t.Fatal("Remove(1) = false")
	}
	if tab.Remove(1) {
		t.Error("second Remove(1) = true")
	}

	// Neither a delta nor a snapshot may bring it back.
	if applied := tab.Apply([]Track{{ID: 1, Name: "A"}}, true); len(applied) != 0 {
		t.Errorf("delta resurrected: %v", applied)
	}
	tab.Apply([]Track{{ID: 1, Name: "A"}, {ID: 2, Name: "B2"}}, false)
	if _, ok := tab.Get(1); ok {
		t.Error("snapshot resurrected removed id")
	}
	if !tab.Removed(1) {
		t.Error("Removed(1) = false")
	}
	if got := names(tab.All()); !reflect.DeepEqual(got, []string{"B2", "Master"}) {
		t.Errorf("tracks = %v", got)
	}
}

func TestRemoveMasterRefused(t *testing.T) {
	tab := NewTable[Track]()
	tab.Apply([]Track{{ID: MasterID, Name: "Master"}}, true)
	if tab.Remove(MasterID) {
		t.Error("Remove(master) = true")
	}
	if _, ok := tab.Get(MasterID); !ok {
		t.Error("master gone")
	}
}

func TestAtBounds(t *testing.T) {
	tab := NewTable[Track]()
	if _, ok := tab.At(0); ok {
		t.Error("At(0) on empty table ok")
	}
	tab.Put(Track{ID: 4})
	if _, ok := tab.At(-1); ok {
		t.Error("At(-1) ok")
	}
	if v, ok := tab.At(0); !ok || v.ID != 4 {
		t.Errorf("At(0) = %v, %v", v, ok)
	}
}
