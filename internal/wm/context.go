package wm

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoScreenFound is returned when the context holds no screens at all.
var ErrNoScreenFound = errors.New("no screen found")

// Context aggregates every screen and the single window registry.
//
// Every id present in a workspace has a registry entry and every registry
// entry belongs to exactly one workspace of one screen. The focused screen
// is never stored: it is derived from the pointer position on each lookup.
type Context struct {
	Screens  []*Screen
	Registry *Registry
}

// NewContext builds a context with one screen per bounds rectangle, each
// owning workspaces empty workspaces.
func NewContext(bounds []Rect, workspaces int) *Context {
	screens := make([]*Screen, 0, len(bounds))
	for _, b := range bounds {
		screens = append(screens, NewScreen(b, workspaces))
	}
	return &Context{
		Screens:  screens,
		Registry: NewRegistry(),
	}
}

// FocusedScreenIndex returns the index of the first screen containing p, or
// 0 when none does. It returns -1 only when there are no screens.
func (c *Context) FocusedScreenIndex(p Point) int {
	if len(c.Screens) == 0 {
		return -1
	}
	for i, s := range c.Screens {
		if s.Contains(p) {
			return i
		}
	}
	return 0
}

// FocusedScreen resolves the screen under the pointer position p.
func (c *Context) FocusedScreen(p Point) (*Screen, error) {
	i := c.FocusedScreenIndex(p)
	if i < 0 {
		return nil, ErrNoScreenFound
	}
	return c.Screens[i], nil
}

// Register records w and adds it to the current workspace of s. A window
// already tracked elsewhere is moved, never duplicated.
func (c *Context) Register(s *Screen, w Window) {
	if c.Registry.Contains(w.ID) {
		c.detach(w.ID)
	}
	s.CurrentWorkspace().Add(w.ID)
	c.Registry.Insert(w)
}

// Unregister removes id from whichever workspace holds it and from the
// registry. It reports whether anything was removed.
func (c *Context) Unregister(id WindowID) bool {
	detached := c.detach(id)
	removed := c.Registry.Remove(id)
	return detached || removed
}

func (c *Context) detach(id WindowID) bool {
	found := false
	for _, s := range c.Screens {
		for _, ws := range s.Workspaces {
			if ws.Remove(id) {
				found = true
			}
		}
		if s.Focused == id {
			s.Focused = 0
		}
	}
	return found
}

// UpdateWindow replaces the record of a tracked window and makes sure its
// workspace still lists it. It returns false when w.ID is unknown.
func (c *Context) UpdateWindow(w Window) bool {
	if !c.Registry.Contains(w.ID) {
		return false
	}
	ws, _, ok := c.WindowWorkspace(w.ID)
	if !ok {
		return false
	}
	ws.Update(w)
	c.Registry.Insert(w)
	return true
}

// WindowWorkspace finds the workspace holding id across all screens.
func (c *Context) WindowWorkspace(id WindowID) (*Workspace, *Screen, bool) {
	for _, s := range c.Screens {
		if ws, _, ok := s.WindowWorkspace(id); ok {
			return ws, s, true
		}
	}
	return nil, nil, false
}

// ScreenOf returns the screen whose workspaces hold id.
func (c *Context) ScreenOf(id WindowID) (*Screen, bool) {
	_, s, ok := c.WindowWorkspace(id)
	return s, ok
}

// CheckInvariants verifies the registry/workspace bijection and that every
// screen has a valid current workspace.
func (c *Context) CheckInvariants() error {
	seen := make(map[WindowID]string)
	for si, s := range c.Screens {
		if s.Current < 0 || s.Current >= len(s.Workspaces) {
			return fmt.Errorf("screen %d: current workspace %d out of range", si, s.Current)
		}
		for wi, ws := range s.Workspaces {
			where := fmt.Sprintf("screen %d workspace %d", si, wi)
			for _, id := range ws.IDs() {
				if prev, dup := seen[id]; dup {
					return fmt.Errorf("window %d in both %s and %s", id, prev, where)
				}
				seen[id] = where
				if !c.Registry.Contains(id) {
					return fmt.Errorf("window %d in %s has no registry entry", id, where)
				}
			}
		}
	}
	for _, id := range c.Registry.IDs() {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("registered window %d belongs to no workspace", id)
		}
	}
	return nil
}
