package layout

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/1broseidon/tdawm/internal/display"
	"github.com/1broseidon/tdawm/internal/wm"
)

// Kind identifies a tiling strategy.
type Kind string

const (
	KindHorizontal  Kind = "horizontal" // Columns side by side.
	KindVertical    Kind = "vertical"   // Rows stacked top to bottom.
	KindMasterStack Kind = "dwm"        // Master left half, stack right half.
)

var (
	// ErrNoScreenFound aborts a layout pass over a context without screens.
	ErrNoScreenFound = wm.ErrNoScreenFound
	// ErrUnknownLayout is returned by Parse for an unrecognised name.
	ErrUnknownLayout = errors.New("unknown layout")
)

// Names lists every strategy name in a stable order.
func Names() []string {
	return []string{string(KindMasterStack), string(KindHorizontal), string(KindVertical)}
}

// Placement is the geometry assigned to one window.
type Placement struct {
	Window wm.WindowID
	Rect   wm.Rect
}

// Strategy is the active tiling algorithm. Only the master-stack kind keeps
// state (the master window); the zero master means "none designated".
type Strategy struct {
	kind   Kind
	master wm.WindowID
}

// New returns a strategy of the given kind.
func New(kind Kind) Strategy {
	return Strategy{kind: kind}
}

// Parse builds a strategy from its name.
func Parse(name string) (Strategy, error) {
	kind := Kind(name)
	switch kind {
	case KindHorizontal, KindVertical, KindMasterStack:
		return New(kind), nil
	default:
		return Strategy{}, errors.Wrapf(ErrUnknownLayout, "%q", name)
	}
}

// Kind returns the strategy kind.
func (s Strategy) Kind() Kind { return s.kind }

// Name returns the strategy key.
func (s Strategy) Name() string { return string(s.kind) }

// Master returns the designated master window.
func (s Strategy) Master() wm.WindowID { return s.master }

// SetMaster designates the master window. Strategies without a master
// ignore it.
func (s *Strategy) SetMaster(id wm.WindowID) {
	if s.kind != KindMasterStack {
		return
	}
	s.master = id
}

// Next returns the name following current in cycle, wrapping around. A
// current name missing from cycle yields the first entry.
func Next(current string, cycle []string) string {
	if len(cycle) == 0 {
		return current
	}
	i := slices.Index(cycle, current)
	return cycle[(i+1)%len(cycle)]
}

// Arrange computes placements for the current workspace of every screen.
// Screens whose current workspace has no Normal window contribute nothing.
func (s Strategy) Arrange(ctx *wm.Context) ([]Placement, error) {
	if len(ctx.Screens) == 0 {
		return nil, ErrNoScreenFound
	}
	var placements []Placement
	for _, screen := range ctx.Screens {
		placements = append(placements, s.ArrangeScreen(screen, ctx.Registry)...)
	}
	return placements, nil
}

// ArrangeScreen computes placements for one screen's current workspace.
func (s Strategy) ArrangeScreen(screen *wm.Screen, reg *wm.Registry) []Placement {
	windows := screen.CurrentWorkspace().NormalWindows(reg)
	if len(windows) == 0 {
		return nil
	}
	bounds := screen.Rect()
	switch s.kind {
	case KindHorizontal:
		return horizontal(bounds, windows)
	case KindVertical:
		return vertical(bounds, windows)
	case KindMasterStack:
		return masterStack(bounds, windows, s.master)
	default:
		return nil
	}
}

// Apply issues move, resize, show for every placement, in that order, so a
// window never becomes visible with stale geometry.
func Apply(p display.Placer, placements []Placement) {
	for _, pl := range placements {
		p.MoveWindow(pl.Window, pl.Rect.X, pl.Rect.Y)
		p.ResizeWindow(pl.Window, pl.Rect.Width, pl.Rect.Height)
		p.ShowWindow(pl.Window)
	}
}

// Layout arranges ctx and applies the result through p.
func (s Strategy) Layout(p display.Placer, ctx *wm.Context) error {
	placements, err := s.Arrange(ctx)
	if err != nil {
		return err
	}
	Apply(p, placements)
	return nil
}
