// Package controller owns the window manager state and drives it from the
// display server's event stream.
package controller

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/1broseidon/tdawm/internal/config"
	"github.com/1broseidon/tdawm/internal/display"
	"github.com/1broseidon/tdawm/internal/hotkeys"
	"github.com/1broseidon/tdawm/internal/layout"
	"github.com/1broseidon/tdawm/internal/spawn"
	"github.com/1broseidon/tdawm/internal/wm"
)

// windowTypeAtom is the only property whose changes can reclassify a
// window. Other properties, WM_STATE writes of our own included, are
// ignored.
const windowTypeAtom = "_NET_WM_WINDOW_TYPE"

// Publisher receives a copy of the state after every handled event.
type Publisher interface {
	Publish(wm.Snapshot)
}

// Controller is the single owner of the window manager state. None of its
// methods may be called concurrently.
type Controller struct {
	display display.Adapter
	spawner spawn.Spawner
	cfg     *config.Config
	log     *zerolog.Logger

	ctx    *wm.Context
	layout layout.Strategy
	// master is the most recently mapped Normal window. It survives
	// layout changes so cycling back to dwm keeps the same master.
	master wm.WindowID
	// ownUnmaps counts the unmaps we caused per window, so the matching
	// UnmapNotify events are not mistaken for a client withdrawing.
	ownUnmaps map[wm.WindowID]int
	keys      *hotkeys.Table
	publisher Publisher
}

// New returns a controller. Init must be called before Run.
func New(d display.Adapter, s spawn.Spawner, cfg *config.Config, log *zerolog.Logger) *Controller {
	return &Controller{
		display:   d,
		spawner:   s,
		cfg:       cfg,
		log:       log,
		keys:      hotkeys.NewTable(),
		ownUnmaps: make(map[wm.WindowID]int),
	}
}

// SetPublisher installs p as the snapshot receiver.
func (c *Controller) SetPublisher(p Publisher) {
	c.publisher = p
}

// Context exposes the state for inspection.
func (c *Controller) Context() *wm.Context { return c.ctx }

// Layout returns the active layout strategy.
func (c *Controller) Layout() layout.Strategy { return c.layout }

// Init discovers screens, builds the state, grabs keys, publishes the
// workspace hints and runs the startup commands.
func (c *Controller) Init() error {
	screens, err := c.display.QueryScreens()
	if err != nil {
		return errors.Wrap(err, "failed to query screens")
	}
	if len(screens) == 0 {
		return wm.ErrNoScreenFound
	}
	for i, s := range screens {
		c.log.Info().Int("screen", i).Int("x", s.X).Int("y", s.Y).
			Int("width", s.Width).Int("height", s.Height).Msg("screen detected")
	}
	c.ctx = wm.NewContext(screens, c.cfg.Workspaces)

	strategy, err := layout.Parse(c.cfg.DefaultLayout)
	if err != nil {
		return err
	}
	c.layout = strategy

	for _, err := range c.keys.RegisterAll(c.display, hotkeys.Bindings(c.cfg)) {
		c.log.Warn().Err(err).Msg("key binding skipped")
	}

	c.display.SetWorkspaceCountHint(c.cfg.Workspaces)
	c.display.SetActiveWorkspaceHint(0)

	for _, cmd := range c.cfg.Startup {
		c.spawn("startup", cmd)
	}

	c.publish()
	return nil
}

// Run handles events until the connection closes or a fatal error occurs.
// It never returns nil.
func (c *Controller) Run() error {
	for {
		ev, err := c.display.NextEvent()
		if err != nil {
			if errors.Is(err, display.ErrClosed) {
				return err
			}
			c.log.Warn().Err(err).Msg("event error")
			continue
		}
		if err := c.HandleEvent(ev); err != nil {
			return err
		}
	}
}

// HandleEvent processes one event to completion. Only fatal errors are
// returned; everything else is logged.
func (c *Controller) HandleEvent(ev display.Event) error {
	c.log.Debug().Stringer("event", ev).Msg("event")

	var err error
	switch e := ev.(type) {
	case display.CreateNotify:
		c.display.SubscribeWindow(e.Window)
	case display.MapRequest:
		err = c.onMapRequest(e.Window)
	case display.DestroyNotify:
		err = c.onDestroy(e.Window)
	case display.UnmapNotify:
		err = c.onUnmap(e.Window)
	case display.EnterNotify:
		c.onEnter(e.Window)
	case display.KeyPress:
		err = c.onKeyPress(e)
	case display.PropertyNotify:
		err = c.onPropertyChange(e)
	case display.ConfigureRequest:
		err = c.onConfigureRequest(e)
	case display.ClientMessage:
		c.log.Debug().Uint32("window", uint32(e.Window)).
			Str("type", c.display.AtomName(e.Type)).Msg("client message")
	case display.RootConfigure:
		c.log.Debug().Msg("root reconfigured, grabbing keys again")
		c.keys.Regrab(c.display)
	default:
		c.log.Debug().Stringer("event", ev).Msg("unhandled event")
	}
	if err != nil {
		return err
	}

	if c.debugEnabled() {
		if err := c.ctx.CheckInvariants(); err != nil {
			c.log.Error().Err(err).Stringer("event", ev).Msg("state invariant broken")
		}
	}
	c.publish()
	return nil
}

func (c *Controller) onMapRequest(id wm.WindowID) error {
	if _, screen, ok := c.ctx.WindowWorkspace(id); ok {
		if screen.HasWindowVisible(id) {
			c.display.ShowWindow(id)
		}
		return c.relayout()
	}

	c.display.RaiseWindow(id)

	screen, err := c.ctx.FocusedScreen(c.display.PointerPosition())
	if err != nil {
		return err
	}
	w := wm.NewWindow(id)
	c.ctx.Register(screen, w)
	screen.Focused = id
	c.display.SubscribeWindow(id)

	w.Kind = c.display.ClassifyWindow(id)
	c.ctx.UpdateWindow(w)
	if w.Kind == wm.KindNormal {
		c.master = id
		c.layout.SetMaster(id)
	}
	c.log.Info().Uint32("window", uint32(id)).Stringer("kind", w.Kind).
		Int("workspace", screen.Current).Msg("window managed")
	if err := c.relayout(); err != nil {
		return err
	}
	// Focus only once the layout pass has mapped the window.
	c.display.FocusWindow(id)
	return nil
}

func (c *Controller) onDestroy(id wm.WindowID) error {
	delete(c.ownUnmaps, id)
	if !c.ctx.Unregister(id) {
		c.log.Debug().Uint32("window", uint32(id)).Msg("destroy of untracked window")
	} else {
		c.log.Info().Uint32("window", uint32(id)).Msg("window released")
	}
	return c.relayout()
}

// onUnmap consumes the notifications of our own hides. Any other unmap is
// the client withdrawing its window, which stops managing it.
func (c *Controller) onUnmap(id wm.WindowID) error {
	if n := c.ownUnmaps[id]; n > 0 {
		if n == 1 {
			delete(c.ownUnmaps, id)
		} else {
			c.ownUnmaps[id] = n - 1
		}
		return nil
	}
	if !c.ctx.Unregister(id) {
		c.log.Debug().Uint32("window", uint32(id)).Msg("unmap of untracked window")
		return nil
	}
	c.log.Info().Uint32("window", uint32(id)).Msg("window withdrawn")
	return c.relayout()
}

// hide unmaps id and remembers that the resulting UnmapNotify is ours.
func (c *Controller) hide(id wm.WindowID) {
	c.ownUnmaps[id]++
	c.display.HideWindow(id)
}

func (c *Controller) onEnter(id wm.WindowID) {
	screen, ok := c.ctx.ScreenOf(id)
	if !ok || !screen.HasWindowVisible(id) {
		return
	}
	screen.Focused = id
	c.display.FocusWindow(id)
}

func (c *Controller) onPropertyChange(e display.PropertyNotify) error {
	id := e.Window
	old, ok := c.ctx.Registry.Get(id)
	if !ok {
		return nil
	}
	if c.display.AtomName(e.Atom) != windowTypeAtom {
		return nil
	}
	kind := c.display.ClassifyWindow(id)
	c.ctx.Registry.Update(id, func(w *wm.Window) { w.Kind = kind })
	if kind == old.Kind && kind != wm.KindDock {
		return nil
	}
	if kind != old.Kind {
		c.log.Info().Uint32("window", uint32(id)).Stringer("from", old.Kind).
			Stringer("to", kind).Msg("window reclassified")
	}
	return c.relayout()
}

func (c *Controller) onConfigureRequest(e display.ConfigureRequest) error {
	ok := c.ctx.Registry.Update(e.Window, func(w *wm.Window) {
		w.FixedPosition = &wm.Point{X: e.X, Y: e.Y}
		w.FixedSize = &wm.Size{Width: e.Width, Height: e.Height}
	})
	if !ok {
		c.log.Debug().Uint32("window", uint32(e.Window)).Msg("configure request for untracked window granted")
		c.display.ConfigureWindow(e.Window, wm.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height})
		return nil
	}
	if err := c.relayout(); err != nil {
		return err
	}
	c.display.SendConfigureNotify(e.Window)
	return nil
}

// relayout tiles every screen and then pins the docks.
func (c *Controller) relayout() error {
	if err := c.layout.Layout(c.display, c.ctx); err != nil {
		return err
	}
	c.placeDocks()
	return nil
}

// placeDocks puts every dock of every visible workspace at its requested
// geometry, on top.
func (c *Controller) placeDocks() {
	for _, screen := range c.ctx.Screens {
		for w := range screen.CurrentWorkspace().Windows(c.ctx.Registry) {
			if !w.IsDock() {
				continue
			}
			if w.FixedPosition != nil {
				c.display.MoveWindow(w.ID, w.FixedPosition.X, w.FixedPosition.Y)
			}
			if w.FixedSize != nil {
				c.display.ResizeWindow(w.ID, w.FixedSize.Width, w.FixedSize.Height)
			}
			c.display.ShowWindow(w.ID)
			c.display.RaiseWindow(w.ID)
		}
	}
}

func (c *Controller) debugEnabled() bool {
	return c.log.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel
}

func (c *Controller) publish() {
	if c.publisher == nil || c.ctx == nil {
		return
	}
	c.publisher.Publish(c.ctx.Snapshot(c.layout.Name()))
}
