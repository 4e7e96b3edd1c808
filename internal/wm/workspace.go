package wm

import (
	"iter"
	"slices"
)

// Workspace is one virtual desktop: an ordered set of window ids. Iteration
// is always in ascending id order, which is the tiling order.
type Workspace struct {
	ids []WindowID
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Add inserts id, keeping the set sorted. Adding an existing id is a no-op.
func (ws *Workspace) Add(id WindowID) {
	i, found := slices.BinarySearch(ws.ids, id)
	if found {
		return
	}
	ws.ids = slices.Insert(ws.ids, i, id)
}

// Remove deletes id and reports whether it was a member.
func (ws *Workspace) Remove(id WindowID) bool {
	i, found := slices.BinarySearch(ws.ids, id)
	if !found {
		return false
	}
	ws.ids = slices.Delete(ws.ids, i, i+1)
	return true
}

// Update is the upsert used when a window's record changes after it was
// first inserted: membership of w.ID is guaranteed afterwards. The record
// itself is owned by the registry (see Context.UpdateWindow).
func (ws *Workspace) Update(w Window) {
	ws.Add(w.ID)
}

// Contains reports whether id is a member.
func (ws *Workspace) Contains(id WindowID) bool {
	_, found := slices.BinarySearch(ws.ids, id)
	return found
}

// Len returns the number of member ids, docks included.
func (ws *Workspace) Len() int {
	return len(ws.ids)
}

// IDs returns a copy of the member ids in ascending order.
func (ws *Workspace) IDs() []WindowID {
	return slices.Clone(ws.ids)
}

// Windows yields the registry record of every member, in ascending id
// order. Ids without a registry entry are stale and skipped.
func (ws *Workspace) Windows(reg *Registry) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		for _, id := range slices.Clone(ws.ids) {
			w, ok := reg.Get(id)
			if !ok {
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}

// Normal yields the Normal (tiled) windows of the workspace in ascending id
// order, skipping docks and stale ids.
func (ws *Workspace) Normal(reg *Registry) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		for w := range ws.Windows(reg) {
			if w.Kind != KindNormal {
				continue
			}
			if !yield(w) {
				return
			}
		}
	}
}

// NormalWindows collects Normal into a slice.
func (ws *Workspace) NormalWindows(reg *Registry) []Window {
	return slices.Collect(ws.Normal(reg))
}
