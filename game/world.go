package game

import (
	"cmp"
	"slices"
)

// Handle addresses an arena slot. Gen must match the slot's current
// generation, so handles to removed entities never resolve.
type Handle struct {
	Slot uint32
	Gen  uint32
}

// RemovalQueue collects handles of entities to delete at the end of a tick
type RemovalQueue struct {
	handles []Handle
}

// Push enqueues a handle. Duplicates are allowed.
func (q *RemovalQueue) Push(h Handle) {
	q.handles = append(q.handles, h)
}

// Len returns the number of queued handles (duplicates included)
func (q *RemovalQueue) Len() int {
	return len(q.handles)
}

// Contains reports whether h is currently queued
func (q *RemovalQueue) Contains(h Handle) bool {
	for _, queued := range q.handles {
		if queued == h {
			return true
		}
	}
	return false
}

type slot struct {
	gen    uint32
	entity *Entity
}

// World owns every live entity in a dense slot arena
type World struct {
	slots    []slot
	free     []uint32
	byID     map[EntityID]Handle
	nextID   EntityID
	live     int
	removals RemovalQueue
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		slots:  make([]slot, 0, 256),
		free:   make([]uint32, 0, 64),
		byID:   make(map[EntityID]Handle, 256),
		nextID: 1,
	}
}

// Spawn registers an entity, assigning its ID and Handle
func (w *World) Spawn(e *Entity) *Entity {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.slots))
		w.slots = append(w.slots, slot{gen: 1})
	}

	e.ID = w.nextID
	w.nextID++
	e.Handle = Handle{Slot: idx, Gen: w.slots[idx].gen}
	w.slots[idx].entity = e
	w.byID[e.ID] = e.Handle
	w.live++
	return e
}

// Get resolves a handle. Stale or out-of-range handles return false.
func (w *World) Get(h Handle) (*Entity, bool) {
	if int(h.Slot) >= len(w.slots) {
		return nil, false
	}
	s := w.slots[h.Slot]
	if s.gen != h.Gen || s.entity == nil {
		return nil, false
	}
	return s.entity, true
}

// Lookup resolves a public ID
func (w *World) Lookup(id EntityID) (*Entity, bool) {
	h, ok := w.byID[id]
	if !ok {
		return nil, false
	}
	return w.Get(h)
}

// Contains reports whether the entity behind h is still registered
func (w *World) Contains(h Handle) bool {
	_, ok := w.Get(h)
	return ok
}

// Len returns the number of live entities
func (w *World) Len() int {
	return w.live
}

// Removals returns the world's pending removal queue
func (w *World) Removals() *RemovalQueue {
	return &w.removals
}

// Snapshot returns the live entities in ascending ID order. The slice is
// a copy; entities spawned afterwards do not appear in it.
func (w *World) Snapshot() []*Entity {
	out := make([]*Entity, 0, w.live)
	for i := range w.slots {
		if e := w.slots[i].entity; e != nil {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *Entity) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Flush deletes every queued entity and clears the queue. It returns how many
// entities were actually removed; absent or stale handles are skipped.
func (w *World) Flush() int {
	removed := 0
	for _, h := range w.removals.handles {
		if w.unregister(h) {
			removed++
		}
	}
	w.removals.handles = w.removals.handles[:0]
	return removed
}

// unregister frees the slot behind h and bumps its generation
func (w *World) unregister(h Handle) bool {
	e, ok := w.Get(h)
	if !ok {
		return false
	}
	s := &w.slots[h.Slot]
	s.entity = nil
	s.gen++
	w.free = append(w.free, h.Slot)
	delete(w.byID, e.ID)
	w.live--
	return true
}
