package game

import "testing"

func TestWorldIDsAreNeverReused(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(box(0, 0, 1, 1))
	b := w.Spawn(box(0, 0, 1, 1))
	a.Remove(w.Removals())
	w.Flush()

	c := w.Spawn(box(0, 0, 1, 1))
	if c.ID <= b.ID {
		t.Fatalf("new id %d not above previous max %d", c.ID, b.ID)
	}
	if c.Handle.Slot != a.Handle.Slot {
		t.Fatalf("slot %d not reused, got %d", a.Handle.Slot, c.Handle.Slot)
	}
	if c.Handle.Gen == a.Handle.Gen {
		t.Fatal("reused slot kept its generation")
	}

	// The stale handle must not resolve to the new occupant
	if _, ok := w.Get(a.Handle); ok {
		t.Fatal("stale handle resolved")
	}
	if _, ok := w.Lookup(a.ID); ok {
		t.Fatal("removed id resolved")
	}
	if got, ok := w.Get(c.Handle); !ok || got != c {
		t.Fatal("live handle did not resolve to its entity")
	}
}

func TestWorldStaleRemovalIsNoop(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(box(0, 0, 1, 1))
	a.Remove(w.Removals())
	w.Flush()
	c := w.Spawn(box(0, 0, 1, 1))

	// A late removal through the old handle must not touch the new entity
	a.Remove(w.Removals())
	if n := w.Flush(); n != 0 {
		t.Fatalf("Flush removed %d, want 0", n)
	}
	if !w.Contains(c.Handle) {
		t.Fatal("new occupant was removed through a stale handle")
	}
	if w.Len() != 1 {
		t.Fatalf("Len = %d, want 1", w.Len())
	}
}

func TestWorldSnapshotOrder(t *testing.T) {
	w := NewWorld()
	var ids []EntityID
	for i := 0; i < 5; i++ {
		ids = append(ids, w.Spawn(box(0, 0, 1, 1)).ID)
	}
	first, _ := w.Lookup(ids[0])
	first.Remove(w.Removals())
	w.Flush()
	late := w.Spawn(box(0, 0, 1, 1))

	snap := w.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("snapshot has %d entities, want 5", len(snap))
	}
	for i := 1; i < len(snap); i++ {
		if snap[i-1].ID >= snap[i].ID {
			t.Fatalf("snapshot not ascending at %d: %d >= %d", i, snap[i-1].ID, snap[i].ID)
		}
	}
	if snap[len(snap)-1] != late {
		t.Fatal("latest entity should be last even though it reused slot 0")
	}

	w.Spawn(box(0, 0, 1, 1))
	if len(snap) != 5 {
		t.Fatal("snapshot changed after a later spawn")
	}
}
