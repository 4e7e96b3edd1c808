package controller

import (
	"github.com/1broseidon/tdawm/internal/display"
	"github.com/1broseidon/tdawm/internal/hotkeys"
	"github.com/1broseidon/tdawm/internal/layout"
)

func (c *Controller) onKeyPress(ev display.KeyPress) error {
	action, ok := c.keys.Resolve(ev)
	if !ok {
		c.log.Debug().Stringer("event", ev).Msg("unbound key")
		return nil
	}
	c.log.Debug().Stringer("action", action).Msg("key action")

	switch action.Kind {
	case hotkeys.CycleLayout:
		return c.cycleLayout()
	case hotkeys.SpawnTerminal:
		c.spawn("terminal", c.cfg.Terminal)
	case hotkeys.SpawnLauncher:
		c.spawn("launcher", c.cfg.Launcher)
	case hotkeys.SelectWorkspace:
		return c.switchWorkspace(action.Workspace)
	}
	return nil
}

// cycleLayout replaces the active strategy with the next one in the
// configured cycle.
func (c *Controller) cycleLayout() error {
	name := layout.Next(c.layout.Name(), c.cfg.LayoutCycle)
	next, err := layout.Parse(name)
	if err != nil {
		c.log.Warn().Err(err).Msg("layout cycle")
		return nil
	}
	next.SetMaster(c.master)
	c.layout = next
	c.log.Info().Str("layout", name).Msg("layout changed")
	return c.relayout()
}

// switchWorkspace makes index the current workspace of the screen under the
// pointer.
func (c *Controller) switchWorkspace(index int) error {
	screen, err := c.ctx.FocusedScreen(c.display.PointerPosition())
	if err != nil {
		return err
	}
	if index == screen.Current {
		c.log.Debug().Int("workspace", index).Msg("workspace already active")
		return nil
	}
	if index < 0 || index >= len(screen.Workspaces) {
		c.log.Warn().Int("workspace", index).Int("count", len(screen.Workspaces)).
			Msg("workspace out of range")
		return nil
	}

	for _, id := range screen.CurrentWorkspace().IDs() {
		c.hide(id)
	}
	c.display.FocusRoot()
	screen.Focused = 0
	if err := screen.SwitchWorkspace(index); err != nil {
		c.log.Warn().Err(err).Msg("workspace switch")
		return nil
	}
	c.display.SetActiveWorkspaceHint(index)
	c.log.Info().Int("workspace", index).Msg("workspace switched")
	return c.relayout()
}

func (c *Controller) spawn(what, command string) {
	if err := c.spawner.Spawn(command); err != nil {
		c.log.Error().Err(err).Str("what", what).Msg("spawn failed")
	}
}
