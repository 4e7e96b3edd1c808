package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tdawm/internal/display"
	"github.com/1broseidon/tdawm/internal/wm"
)

// NextEvent blocks for the next X event. Protocol errors, usually requests
// racing a window's destruction, are logged and skipped.
func (c *Connection) NextEvent() (display.Event, error) {
	for {
		ev, xerr := c.XUtil.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, display.ErrClosed
		}
		if xerr != nil {
			c.log.Debug().Str("error", xerr.Error()).Msg("X error")
			continue
		}
		return c.translate(ev), nil
	}
}

func (c *Connection) translate(ev xgb.Event) display.Event {
	switch e := ev.(type) {
	case xproto.CreateNotifyEvent:
		if e.OverrideRedirect {
			break
		}
		return display.CreateNotify{Window: wm.WindowID(e.Window)}
	case xproto.MapRequestEvent:
		return display.MapRequest{Window: wm.WindowID(e.Window)}
	case xproto.DestroyNotifyEvent:
		delete(c.wmStates, e.Window)
		return display.DestroyNotify{Window: wm.WindowID(e.Window)}
	case xproto.UnmapNotifyEvent:
		return display.UnmapNotify{Window: wm.WindowID(e.Window)}
	case xproto.EnterNotifyEvent:
		return display.EnterNotify{
			Window: wm.WindowID(e.Event),
			Root:   wm.Point{X: int(e.RootX), Y: int(e.RootY)},
		}
	case xproto.KeyPressEvent:
		return display.KeyPress{Code: byte(e.Detail), Mods: keyModifiers(e.State, c.lockMask)}
	case xproto.PropertyNotifyEvent:
		return display.PropertyNotify{Window: wm.WindowID(e.Window), Atom: uint32(e.Atom)}
	case xproto.ConfigureRequestEvent:
		return c.configureRequest(e)
	case xproto.ClientMessageEvent:
		return display.ClientMessage{Window: wm.WindowID(e.Window), Type: uint32(e.Type)}
	case xproto.ConfigureNotifyEvent:
		if e.Window == c.Root {
			return display.RootConfigure{}
		}
	}
	return display.Unknown{Name: eventName(ev)}
}

// configureRequest fills the fields a client left out of its request with
// the window's current geometry.
func (c *Connection) configureRequest(e xproto.ConfigureRequestEvent) display.ConfigureRequest {
	req := display.ConfigureRequest{
		Window: wm.WindowID(e.Window),
		X:      int(e.X),
		Y:      int(e.Y),
		Width:  int(e.Width),
		Height: int(e.Height),
	}
	const all = xproto.ConfigWindowX | xproto.ConfigWindowY |
		xproto.ConfigWindowWidth | xproto.ConfigWindowHeight
	if e.ValueMask&all == all {
		return req
	}
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(e.Window)).Reply()
	if err != nil {
		return req
	}
	return mergeGeometry(req, e.ValueMask, int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height))
}

func mergeGeometry(req display.ConfigureRequest, mask uint16, x, y, width, height int) display.ConfigureRequest {
	if mask&xproto.ConfigWindowX == 0 {
		req.X = x
	}
	if mask&xproto.ConfigWindowY == 0 {
		req.Y = y
	}
	if mask&xproto.ConfigWindowWidth == 0 {
		req.Width = width
	}
	if mask&xproto.ConfigWindowHeight == 0 {
		req.Height = height
	}
	return req
}

func eventName(ev xgb.Event) string {
	if ev == nil {
		return "nil"
	}
	s := ev.String()
	for i, r := range s {
		if r == ' ' || r == '{' {
			return s[:i]
		}
	}
	return s
}
