package wm

import (
	"slices"
)

// Registry maps window ids to their records. A missing entry is reported by
// the boolean results; destroy events can race with bookkeeping, so callers
// are expected to tolerate absence.
type Registry struct {
	windows map[WindowID]Window
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{windows: make(map[WindowID]Window)}
}

// Insert adds or replaces the record for w.ID.
func (r *Registry) Insert(w Window) {
	r.windows[w.ID] = w
}

// Get returns the record for id.
func (r *Registry) Get(id WindowID) (Window, bool) {
	w, ok := r.windows[id]
	return w, ok
}

// Update applies fn to the stored record for id and writes the result back.
// It returns false, without calling fn, when id is unknown.
func (r *Registry) Update(id WindowID, fn func(*Window)) bool {
	w, ok := r.windows[id]
	if !ok {
		return false
	}
	fn(&w)
	w.ID = id
	r.windows[id] = w
	return true
}

// Remove deletes id and reports whether it was present.
func (r *Registry) Remove(id WindowID) bool {
	if _, ok := r.windows[id]; !ok {
		return false
	}
	delete(r.windows, id)
	return true
}

// Contains reports whether id has a record.
func (r *Registry) Contains(id WindowID) bool {
	_, ok := r.windows[id]
	return ok
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// IDs returns every registered id in ascending order.
func (r *Registry) IDs() []WindowID {
	ids := make([]WindowID, 0, len(r.windows))
	for id := range r.windows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
