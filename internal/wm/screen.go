package wm

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultWorkspaceCount is the number of workspaces created per screen when
// no other count is configured.
const DefaultWorkspaceCount = 10

// ErrWorkspaceOutOfRange is returned when switching to a workspace index the
// screen does not own.
var ErrWorkspaceOutOfRange = errors.New("workspace index out of range")

// Screen is one physical display region. It owns a fixed arena of
// workspaces addressed by index.
type Screen struct {
	X      int
	Y      int
	Width  int
	Height int

	Workspaces []*Workspace
	// Current always indexes into Workspaces.
	Current int
	// Focused is the window that last received input focus on this screen.
	Focused WindowID
}

// NewScreen creates a screen covering bounds with count empty workspaces.
// count below 1 is raised to 1 so Current is always valid.
func NewScreen(bounds Rect, count int) *Screen {
	if count < 1 {
		count = 1
	}
	workspaces := make([]*Workspace, count)
	for i := range workspaces {
		workspaces[i] = NewWorkspace()
	}
	return &Screen{
		X:          bounds.X,
		Y:          bounds.Y,
		Width:      bounds.Width,
		Height:     bounds.Height,
		Workspaces: workspaces,
	}
}

// Rect returns the screen bounds.
func (s *Screen) Rect() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Contains reports whether p lies inside the screen.
func (s *Screen) Contains(p Point) bool {
	return s.Rect().Contains(p)
}

// CurrentWorkspace returns the active workspace. A Current index outside the
// arena is an internal consistency failure and panics.
func (s *Screen) CurrentWorkspace() *Workspace {
	if s.Current < 0 || s.Current >= len(s.Workspaces) {
		panic(fmt.Sprintf("wm: screen current workspace %d outside [0,%d)", s.Current, len(s.Workspaces)))
	}
	return s.Workspaces[s.Current]
}

// HasWindowVisible reports whether id belongs to the current workspace.
func (s *Screen) HasWindowVisible(id WindowID) bool {
	return s.CurrentWorkspace().Contains(id)
}

// WindowWorkspace finds the workspace on this screen holding id.
func (s *Screen) WindowWorkspace(id WindowID) (*Workspace, int, bool) {
	for i, ws := range s.Workspaces {
		if ws.Contains(id) {
			return ws, i, true
		}
	}
	return nil, -1, false
}

// SwitchWorkspace makes index the current workspace. Membership of every
// workspace is left untouched.
func (s *Screen) SwitchWorkspace(index int) error {
	if index < 0 || index >= len(s.Workspaces) {
		return errors.Wrapf(ErrWorkspaceOutOfRange, "index %d, screen has %d", index, len(s.Workspaces))
	}
	s.Current = index
	return nil
}
