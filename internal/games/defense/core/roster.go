package core

import "fmt"

// Handle addresses an enemy in the roster. A handle stays valid until its
// enemy is removed; after that the slot's generation moves on and the handle
// never resolves again, even if the slot is reused.
type Handle struct {
	Index uint32
	Gen   uint32
}

// String returns a string representation of the handle.
func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.Index, h.Gen)
}

type slot struct {
	gen   uint32
	live  bool
	enemy Enemy
}

// Roster is an arena of enemy agents. Iteration order is spawn order.
type Roster struct {
	slots []slot
	free  []uint32
	order []Handle
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{}
}

// Add stores e and returns its handle.
func (r *Roster) Add(e Enemy) Handle {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{gen: 1})
	}
	s := &r.slots[idx]
	s.live = true
	h := Handle{Index: idx, Gen: s.gen}
	e.handle = h
	s.enemy = e
	r.order = append(r.order, h)
	return h
}

// Get resolves a handle. Returns false for removed or foreign handles.
func (r *Roster) Get(h Handle) (*Enemy, bool) {
	if int(h.Index) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[h.Index]
	if !s.live || s.gen != h.Gen {
		return nil, false
	}
	return &s.enemy, true
}

// Alive reports whether h resolves to an enemy that can still be attacked.
func (r *Roster) Alive(h Handle) bool {
	e, ok := r.Get(h)
	return ok && e.Alive()
}

// Remove releases the enemy behind h. Returns false if h was stale.
func (r *Roster) Remove(h Handle) bool {
	if _, ok := r.Get(h); !ok {
		return false
	}
	s := &r.slots[h.Index]
	s.live = false
	s.gen++
	s.enemy = Enemy{}
	r.free = append(r.free, h.Index)
	for i, o := range r.order {
		if o == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of enemies in the roster.
func (r *Roster) Len() int {
	return len(r.order)
}

// Handles returns a snapshot of live handles in spawn order.
// Callers may remove enemies while ranging over the result.
func (r *Roster) Handles() []Handle {
	out := make([]Handle, len(r.order))
	copy(out, r.order)
	return out
}

// Clear removes every enemy. Outstanding handles stop resolving.
func (r *Roster) Clear() {
	for _, h := range r.Handles() {
		r.Remove(h)
	}
}
