// Package hotkeys maps configured key sequences onto window manager actions.
package hotkeys

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/1broseidon/tdawm/internal/config"
	"github.com/1broseidon/tdawm/internal/display"
)

// ActionKind names what a key does.
type ActionKind int

const (
	CycleLayout ActionKind = iota + 1
	SpawnTerminal
	SpawnLauncher
	SelectWorkspace
)

// Action is a resolved key binding. Workspace is only meaningful for
// SelectWorkspace.
type Action struct {
	Kind      ActionKind
	Workspace int
}

func (a Action) String() string {
	switch a.Kind {
	case CycleLayout:
		return "cycle-layout"
	case SpawnTerminal:
		return "spawn-terminal"
	case SpawnLauncher:
		return "spawn-launcher"
	case SelectWorkspace:
		return fmt.Sprintf("select-workspace(%d)", a.Workspace)
	default:
		return "none"
	}
}

// Binding pairs a key sequence with its action.
type Binding struct {
	Sequence string
	Action   Action
}

// Bindings lists every binding the configuration asks for.
func Bindings(cfg *config.Config) []Binding {
	bindings := []Binding{
		{Sequence: cfg.Keys.Terminal, Action: Action{Kind: SpawnTerminal}},
		{Sequence: cfg.Keys.Launcher, Action: Action{Kind: SpawnLauncher}},
		{Sequence: cfg.Keys.CycleLayout, Action: Action{Kind: CycleLayout}},
	}
	for i, seq := range cfg.WorkspaceKeys() {
		bindings = append(bindings, Binding{Sequence: seq, Action: Action{Kind: SelectWorkspace, Workspace: i}})
	}
	return bindings
}

// Grabber is the part of the display adapter that knows about keys.
type Grabber interface {
	ParseKey(sequence string) (mods uint16, codes []byte, err error)
	GrabKey(mods uint16, code byte)
}

type chord struct {
	mods uint16
	code byte
}

// Table resolves key presses to actions.
type Table struct {
	actions map[chord]Action
	order   []chord
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{actions: make(map[chord]Action)}
}

// Register parses sequence, grabs every keycode producing it and binds
// them to action. A later binding for the same chord replaces the earlier
// one.
func (t *Table) Register(g Grabber, sequence string, action Action) error {
	mods, codes, err := g.ParseKey(sequence)
	if err != nil {
		return errors.Wrapf(err, "failed to parse key %q", sequence)
	}
	if len(codes) == 0 {
		return errors.Errorf("key %q has no keycode", sequence)
	}
	for _, code := range codes {
		c := chord{mods: mods, code: code}
		if _, ok := t.actions[c]; !ok {
			t.order = append(t.order, c)
		}
		t.actions[c] = action
		g.GrabKey(mods, code)
	}
	return nil
}

// RegisterAll registers every binding and returns one error per binding
// that could not be registered.
func (t *Table) RegisterAll(g Grabber, bindings []Binding) []error {
	var errs []error
	for _, b := range bindings {
		if err := t.Register(g, b.Sequence, b.Action); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Regrab grabs every registered chord again.
func (t *Table) Regrab(g Grabber) {
	for _, c := range t.order {
		g.GrabKey(c.mods, c.code)
	}
}

// Resolve returns the action bound to ev.
func (t *Table) Resolve(ev display.KeyPress) (Action, bool) {
	a, ok := t.actions[chord{mods: ev.Mods, code: ev.Code}]
	return a, ok
}

// Len returns the number of bound chords.
func (t *Table) Len() int { return len(t.order) }
