// Package display defines the boundary between the window manager core and
// the windowing-server transport.
package display

import (
	"github.com/pkg/errors"

	"github.com/1broseidon/tdawm/internal/wm"
)

// ErrClosed is returned by NextEvent once the server connection is gone.
var ErrClosed = errors.New("display connection closed")

// Placer is the subset of the adapter the layout engine may use.
type Placer interface {
	MoveWindow(id wm.WindowID, x, y int)
	ResizeWindow(id wm.WindowID, width, height int)
	ShowWindow(id wm.WindowID)
}

// Adapter wraps the windowing-server connection. Every window operation is
// fire-and-forget: its effect is assumed applied before the next event.
type Adapter interface {
	Placer

	// NextEvent blocks until the server delivers the next event.
	NextEvent() (Event, error)

	HideWindow(id wm.WindowID)
	FocusWindow(id wm.WindowID)
	// FocusRoot drops input focus back to the root window.
	FocusRoot()
	RaiseWindow(id wm.WindowID)

	// SubscribeWindow asks for pointer-enter and property-change
	// notifications from id.
	SubscribeWindow(id wm.WindowID)
	// ClassifyWindow reads the window-type hint of id.
	ClassifyWindow(id wm.WindowID) wm.Kind

	// ConfigureWindow applies a requested geometry to a window the
	// window manager does not manage.
	ConfigureWindow(id wm.WindowID, r wm.Rect)
	// SendConfigureNotify reports id's current geometry to its client,
	// answering a configure request that was not honored as asked.
	SendConfigureNotify(id wm.WindowID)

	SetActiveWorkspaceHint(index int)
	SetWorkspaceCountHint(count int)

	// QueryScreens lists the physical screens, in server order.
	QueryScreens() ([]wm.Rect, error)
	PointerPosition() wm.Point

	// ParseKey resolves a key sequence such as "Mod4-Return" into a
	// modifier mask and the keycodes that produce the key.
	ParseKey(sequence string) (mods uint16, codes []byte, err error)
	GrabKey(mods uint16, code byte)

	// AtomName resolves a server atom for diagnostics.
	AtomName(atom uint32) string
}
