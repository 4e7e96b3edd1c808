package x11

import (
	"strconv"

	"github.com/BurntSushi/xgbutil/ewmh"
)

// SetActiveWorkspaceHint publishes _NET_CURRENT_DESKTOP.
func (c *Connection) SetActiveWorkspaceHint(index int) {
	if err := ewmh.CurrentDesktopSet(c.XUtil, uint(index)); err != nil {
		c.log.Warn().Err(err).Msg("failed to set _NET_CURRENT_DESKTOP")
	}
}

// SetWorkspaceCountHint publishes _NET_NUMBER_OF_DESKTOPS and names the
// desktops after their selection digit.
func (c *Connection) SetWorkspaceCountHint(count int) {
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(count)); err != nil {
		c.log.Warn().Err(err).Msg("failed to set _NET_NUMBER_OF_DESKTOPS")
	}
	if err := ewmh.DesktopNamesSet(c.XUtil, desktopNames(count)); err != nil {
		c.log.Warn().Err(err).Msg("failed to set _NET_DESKTOP_NAMES")
	}
}

// desktopNames labels desktops 1..9 and the tenth 0, matching the keys
// that select them.
func desktopNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = strconv.Itoa((i + 1) % 10)
	}
	return names
}
