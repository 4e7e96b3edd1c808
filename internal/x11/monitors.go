package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	xgbxinerama "github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/pkg/errors"

	"github.com/1broseidon/tdawm/internal/wm"
)

// Monitor represents a physical display.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) rect() wm.Rect {
	return wm.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// QueryScreens lists the physical screens. Xinerama heads are preferred,
// then active RandR CRTCs, then the root window geometry.
func (c *Connection) QueryScreens() ([]wm.Rect, error) {
	if rects, err := c.xineramaScreens(); err != nil {
		c.log.Debug().Err(err).Msg("xinerama unavailable")
	} else if rects = uniqueRects(rects); len(rects) > 0 {
		return rects, nil
	}

	if monitors, err := c.GetMonitors(); err != nil {
		c.log.Debug().Err(err).Msg("randr unavailable")
	} else {
		rects := make([]wm.Rect, len(monitors))
		for i, m := range monitors {
			rects[i] = m.rect()
		}
		if rects = uniqueRects(rects); len(rects) > 0 {
			return rects, nil
		}
	}

	geom, err := xwindow.New(c.XUtil, c.Root).Geometry()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get root geometry")
	}
	return []wm.Rect{{X: geom.X(), Y: geom.Y(), Width: geom.Width(), Height: geom.Height()}}, nil
}

func (c *Connection) xineramaScreens() ([]wm.Rect, error) {
	if err := xgbxinerama.Init(c.XUtil.Conn()); err != nil {
		return nil, err
	}
	heads, err := xinerama.PhysicalHeads(c.XUtil)
	if err != nil {
		return nil, err
	}
	rects := make([]wm.Rect, 0, len(heads))
	for _, h := range heads {
		rects = append(rects, wm.Rect{X: h.X(), Y: h.Y(), Width: h.Width(), Height: h.Height()})
	}
	return rects, nil
}

// GetMonitors retrieves all active monitors using XRandR.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, errors.Wrap(err, "randr init failed")
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get screen resources")
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}
	return monitors, nil
}

// uniqueRects drops repeated rectangles (mirrored outputs), keeping the
// first occurrence.
func uniqueRects(rects []wm.Rect) []wm.Rect {
	out := make([]wm.Rect, 0, len(rects))
	seen := make(map[wm.Rect]struct{}, len(rects))
	for _, r := range rects {
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
