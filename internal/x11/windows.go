package x11

import (
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/tdawm/internal/wm"
)

const dockType = "_NET_WM_WINDOW_TYPE_DOCK"

func (c *Connection) window(id wm.WindowID) *xwindow.Window {
	return xwindow.New(c.XUtil, xproto.Window(id))
}

func (c *Connection) MoveWindow(id wm.WindowID, x, y int) {
	c.window(id).Move(x, y)
}

func (c *Connection) ResizeWindow(id wm.WindowID, width, height int) {
	c.window(id).Resize(max(width, 1), max(height, 1))
}

// ShowWindow maps id and marks it NormalState.
func (c *Connection) ShowWindow(id wm.WindowID) {
	c.window(id).Map()
	c.setWmState(id, icccm.StateNormal)
}

// HideWindow unmaps id and marks it IconicState so clients and pagers can
// tell it apart from a withdrawn window.
func (c *Connection) HideWindow(id wm.WindowID) {
	c.window(id).Unmap()
	c.setWmState(id, icccm.StateIconic)
}

func (c *Connection) setWmState(id wm.WindowID, state uint) {
	win := xproto.Window(id)
	if cur, ok := c.wmStates[win]; ok && cur == state {
		return
	}
	err := icccm.WmStateSet(c.XUtil, win, &icccm.WmState{State: state})
	if err != nil {
		c.log.Debug().Err(err).Uint32("window", uint32(id)).Msg("failed to set WM_STATE")
		return
	}
	if c.wmStates == nil {
		c.wmStates = make(map[xproto.Window]uint)
	}
	c.wmStates[win] = state
}

// ConfigureWindow grants a configure request of an unmanaged window.
func (c *Connection) ConfigureWindow(id wm.WindowID, r wm.Rect) {
	c.window(id).MoveResize(r.X, r.Y, max(r.Width, 1), max(r.Height, 1))
}

// SendConfigureNotify sends id a synthetic ConfigureNotify carrying its
// real geometry (ICCCM 4.1.5).
func (c *Connection) SendConfigureNotify(id wm.WindowID) {
	win := xproto.Window(id)
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		c.log.Debug().Err(err).Uint32("window", uint32(id)).Msg("failed to read geometry")
		return
	}
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		AboveSibling:     xproto.WindowNone,
		X:                geom.X,
		Y:                geom.Y,
		Width:            geom.Width,
		Height:           geom.Height,
		BorderWidth:      geom.BorderWidth,
		OverrideRedirect: false,
	}
	xproto.SendEvent(c.XUtil.Conn(), false, win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (c *Connection) FocusWindow(id wm.WindowID) {
	c.window(id).Focus()
	if err := ewmh.ActiveWindowSet(c.XUtil, xproto.Window(id)); err != nil {
		c.log.Debug().Err(err).Msg("failed to set _NET_ACTIVE_WINDOW")
	}
}

func (c *Connection) FocusRoot() {
	xproto.SetInputFocus(c.XUtil.Conn(), xproto.InputFocusPointerRoot, c.Root, xproto.TimeCurrentTime)
	if err := ewmh.ActiveWindowSet(c.XUtil, 0); err != nil {
		c.log.Debug().Err(err).Msg("failed to clear _NET_ACTIVE_WINDOW")
	}
}

func (c *Connection) RaiseWindow(id wm.WindowID) {
	c.window(id).Stack(xproto.StackModeAbove)
}

// SubscribeWindow selects pointer-enter and property-change events on id.
func (c *Connection) SubscribeWindow(id wm.WindowID) {
	if err := c.window(id).Listen(xproto.EventMaskEnterWindow, xproto.EventMaskPropertyChange); err != nil {
		c.log.Debug().Err(err).Uint32("window", uint32(id)).Msg("failed to subscribe")
	}
}

// ClassifyWindow reads _NET_WM_WINDOW_TYPE. Windows without the hint are
// Normal.
func (c *Connection) ClassifyWindow(id wm.WindowID) wm.Kind {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, xproto.Window(id))
	if err != nil {
		return wm.KindNormal
	}
	return kindFromTypes(types)
}

func kindFromTypes(types []string) wm.Kind {
	if slices.Contains(types, dockType) {
		return wm.KindDock
	}
	return wm.KindNormal
}

func (c *Connection) PointerPosition() wm.Point {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		c.log.Debug().Err(err).Msg("failed to query pointer")
		return wm.Point{}
	}
	return wm.Point{X: int(reply.RootX), Y: int(reply.RootY)}
}

func (c *Connection) AtomName(atom uint32) string {
	name, err := xprop.AtomName(c.XUtil, xproto.Atom(atom))
	if err != nil {
		return ""
	}
	return name
}
