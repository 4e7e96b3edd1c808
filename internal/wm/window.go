package wm

import "fmt"

// WindowID is the server-assigned identifier of a client window.
type WindowID uint32

// Kind classifies a window for layout purposes.
type Kind int

const (
	// KindNormal windows are tiled by the active layout.
	KindNormal Kind = iota
	// KindDock windows (panels, status bars) keep their requested geometry
	// and stay on top.
	KindDock
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindDock:
		return "dock"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Point is a position in root-window coordinates.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Rect describes a rectangular region in root-window coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p lies inside the half-open rectangle
// [X, X+Width) x [Y, Y+Height).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Window is the semantic record kept for every managed window.
type Window struct {
	ID WindowID
	// FixedPosition and FixedSize are only set when the client asked for a
	// specific geometry through a configure request.
	FixedPosition *Point
	FixedSize     *Size
	Kind          Kind
}

// NewWindow returns a Normal window record with no geometry override.
func NewWindow(id WindowID) Window {
	return Window{ID: id, Kind: KindNormal}
}

// IsDock reports whether the window is exempt from tiling.
func (w Window) IsDock() bool {
	return w.Kind == KindDock
}
