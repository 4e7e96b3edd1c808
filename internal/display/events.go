package display

import (
	"fmt"

	"github.com/1broseidon/tdawm/internal/wm"
)

// Event is a decoded server event. The concrete types below are the only
// implementations.
type Event interface {
	fmt.Stringer
	event()
}

// CreateNotify reports a new (not yet mapped) window.
type CreateNotify struct {
	Window wm.WindowID
}

// MapRequest asks the window manager to show a window.
type MapRequest struct {
	Window wm.WindowID
}

// DestroyNotify reports a destroyed window.
type DestroyNotify struct {
	Window wm.WindowID
}

// UnmapNotify reports an unmapped window.
type UnmapNotify struct {
	Window wm.WindowID
}

// EnterNotify reports the pointer entering a window.
type EnterNotify struct {
	Window wm.WindowID
	Root   wm.Point
}

// KeyPress reports a grabbed key. Mods has lock modifiers removed.
type KeyPress struct {
	Code byte
	Mods uint16
}

// PropertyNotify reports a property change on a window.
type PropertyNotify struct {
	Window wm.WindowID
	Atom   uint32
}

// ConfigureRequest carries the geometry a client asked for.
type ConfigureRequest struct {
	Window wm.WindowID
	X      int
	Y      int
	Width  int
	Height int
}

// ClientMessage is a client-to-window-manager message.
type ClientMessage struct {
	Window wm.WindowID
	Type   uint32
}

// RootConfigure reports that the root window was reconfigured.
type RootConfigure struct{}

// Unknown wraps any event the adapter does not decode.
type Unknown struct {
	Name string
}

func (CreateNotify) event()     {}
func (MapRequest) event()       {}
func (DestroyNotify) event()    {}
func (UnmapNotify) event()      {}
func (EnterNotify) event()      {}
func (KeyPress) event()         {}
func (PropertyNotify) event()   {}
func (ConfigureRequest) event() {}
func (ClientMessage) event()    {}
func (RootConfigure) event()    {}
func (Unknown) event()          {}

func (e CreateNotify) String() string  { return fmt.Sprintf("CreateNotify(%d)", e.Window) }
func (e MapRequest) String() string    { return fmt.Sprintf("MapRequest(%d)", e.Window) }
func (e DestroyNotify) String() string { return fmt.Sprintf("DestroyNotify(%d)", e.Window) }
func (e UnmapNotify) String() string   { return fmt.Sprintf("UnmapNotify(%d)", e.Window) }
func (e EnterNotify) String() string   { return fmt.Sprintf("EnterNotify(%d)", e.Window) }
func (e KeyPress) String() string      { return fmt.Sprintf("KeyPress(code=%d mods=%#x)", e.Code, e.Mods) }
func (e PropertyNotify) String() string {
	return fmt.Sprintf("PropertyNotify(%d atom=%d)", e.Window, e.Atom)
}
func (e ConfigureRequest) String() string {
	return fmt.Sprintf("ConfigureRequest(%d %dx%d+%d+%d)", e.Window, e.Width, e.Height, e.X, e.Y)
}
func (e ClientMessage) String() string {
	return fmt.Sprintf("ClientMessage(%d type=%d)", e.Window, e.Type)
}
func (RootConfigure) String() string { return "RootConfigure" }
func (e Unknown) String() string     { return "Unknown(" + e.Name + ")" }
