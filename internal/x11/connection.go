// Package x11 implements the display adapter on top of an X11 connection.
package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/1broseidon/tdawm/internal/display"
)

// ErrOtherWindowManager is returned by Claim when the root window's
// substructure is already redirected.
var ErrOtherWindowManager = errors.New("another window manager is running")

// WMName is published on the supporting window.
const WMName = "tdawm"

// rootEventMask makes us the window manager: map and configure requests of
// top-level windows are redirected to us, and root geometry changes are
// reported.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify

var supportedHints = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DOCK",
}

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	log *zerolog.Logger
	// lockMask holds the lock modifiers stripped from key events.
	lockMask uint16
	support  *xwindow.Window
	// wmStates caches the WM_STATE last written per window. Every write
	// is a PropertyNotify to the client, so unchanged states are skipped.
	wmStates map[xproto.Window]uint
}

var _ display.Adapter = (*Connection)(nil)

// NewConnection connects to $DISPLAY and loads the keyboard mapping.
func NewConnection(log *zerolog.Logger) (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	keybind.Initialize(xu)

	c := &Connection{
		XUtil: xu,
		Root:     xu.RootWin(),
		log:      log,
		wmStates: make(map[xproto.Window]uint),
	}
	c.lockMask = configureIgnoreMods(xu)
	return c, nil
}

// Claim takes the window manager role and publishes the EWMH supporting
// window. It fails with ErrOtherWindowManager when the role is taken.
func (c *Connection) Claim() error {
	err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		c.Root,
		xproto.CwEventMask,
		[]uint32{rootEventMask},
	).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrOtherWindowManager
		}
		return errors.Wrap(err, "failed to select root events")
	}

	win, err := xwindow.Create(c.XUtil, c.Root)
	if err != nil {
		return errors.Wrap(err, "failed to create supporting window")
	}
	c.support = win
	for _, w := range []xproto.Window{c.Root, win.Id} {
		if err := ewmh.SupportingWmCheckSet(c.XUtil, w, win.Id); err != nil {
			c.log.Warn().Err(err).Msg("failed to set _NET_SUPPORTING_WM_CHECK")
		}
	}
	if err := ewmh.WmNameSet(c.XUtil, win.Id, WMName); err != nil {
		c.log.Warn().Err(err).Msg("failed to set _NET_WM_NAME")
	}
	if err := ewmh.SupportedSet(c.XUtil, supportedHints); err != nil {
		c.log.Warn().Err(err).Msg("failed to set _NET_SUPPORTED")
	}
	return nil
}

// Close cleanly disconnects from the X11 server.
func (c *Connection) Close() {
	if c.support != nil {
		c.support.Destroy()
	}
	c.XUtil.Conn().Close()
}
