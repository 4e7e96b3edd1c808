// Package displaytest provides an in-memory display.Adapter for tests.
package displaytest

import (
	"fmt"
	"strings"

	"github.com/1broseidon/tdawm/internal/display"
	"github.com/1broseidon/tdawm/internal/wm"
)

// Op names a recorded adapter call.
type Op string

const (
	OpMove       Op = "move"
	OpResize     Op = "resize"
	OpShow       Op = "show"
	OpHide       Op = "hide"
	OpFocus      Op = "focus"
	OpFocusRoot  Op = "focus-root"
	OpRaise      Op = "raise"
	OpSubscribe  Op = "subscribe"
	OpDesktop    Op = "desktop-hint"
	OpDesktops   Op = "desktop-count-hint"
	OpGrabKey    Op = "grab-key"
	OpClassified Op = "classify"
	OpConfigure  Op = "configure"
	OpNotify     Op = "configure-notify"
)

// Call is one recorded adapter call. A and B carry the numeric arguments
// (x/y, width/height, workspace index, modifiers/keycode); C and D are
// only used by configure calls for width/height.
type Call struct {
	Op     Op
	Window wm.WindowID
	A      int
	B      int
	C      int
	D      int
}

func (c Call) String() string {
	if c.Op == OpConfigure {
		return fmt.Sprintf("%s(%d,%d,%d,%d,%d)", c.Op, c.Window, c.A, c.B, c.C, c.D)
	}
	return fmt.Sprintf("%s(%d,%d,%d)", c.Op, c.Window, c.A, c.B)
}

// Key is a fake keyboard mapping entry.
type Key struct {
	Mods  uint16
	Codes []byte
}

// Recorder replays scripted events and records every call made on it.
type Recorder struct {
	Events  []display.Event
	Calls   []Call
	Screens []wm.Rect
	Pointer wm.Point
	// Kinds answers ClassifyWindow; unknown windows are Normal.
	Kinds map[wm.WindowID]wm.Kind
	// Keys answers ParseKey; unknown sequences fail.
	Keys  map[string]Key
	Atoms map[uint32]string
	// ScreensErr makes QueryScreens fail.
	ScreensErr error
}

var _ display.Adapter = (*Recorder)(nil)

// NewRecorder creates a recorder with the given screens.
func NewRecorder(screens ...wm.Rect) *Recorder {
	return &Recorder{
		Screens: screens,
		Kinds:   make(map[wm.WindowID]wm.Kind),
		Keys:    make(map[string]Key),
		Atoms:   make(map[uint32]string),
	}
}

// Push queues events for NextEvent.
func (r *Recorder) Push(events ...display.Event) {
	r.Events = append(r.Events, events...)
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Filter returns the recorded calls with one of the given ops.
func (r *Recorder) Filter(ops ...Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		for _, op := range ops {
			if c.Op == op {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// For returns the recorded calls targeting id.
func (r *Recorder) For(id wm.WindowID) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Window == id {
			out = append(out, c)
		}
	}
	return out
}

// Geometry returns the last move and resize issued for id.
func (r *Recorder) Geometry(id wm.WindowID) (wm.Rect, bool) {
	var rect wm.Rect
	moved, resized := false, false
	for _, c := range r.Calls {
		if c.Window != id {
			continue
		}
		switch c.Op {
		case OpMove:
			rect.X, rect.Y = c.A, c.B
			moved = true
		case OpResize:
			rect.Width, rect.Height = c.A, c.B
			resized = true
		}
	}
	return rect, moved && resized
}

func (r *Recorder) record(op Op, id wm.WindowID, a, b int) {
	r.Calls = append(r.Calls, Call{Op: op, Window: id, A: a, B: b})
}

func (r *Recorder) NextEvent() (display.Event, error) {
	if len(r.Events) == 0 {
		return nil, display.ErrClosed
	}
	ev := r.Events[0]
	r.Events = r.Events[1:]
	return ev, nil
}

func (r *Recorder) MoveWindow(id wm.WindowID, x, y int) { r.record(OpMove, id, x, y) }

func (r *Recorder) ResizeWindow(id wm.WindowID, width, height int) {
	r.record(OpResize, id, width, height)
}

func (r *Recorder) ShowWindow(id wm.WindowID)      { r.record(OpShow, id, 0, 0) }
func (r *Recorder) HideWindow(id wm.WindowID)      { r.record(OpHide, id, 0, 0) }
func (r *Recorder) FocusWindow(id wm.WindowID)     { r.record(OpFocus, id, 0, 0) }
func (r *Recorder) FocusRoot()                     { r.record(OpFocusRoot, 0, 0, 0) }
func (r *Recorder) RaiseWindow(id wm.WindowID)     { r.record(OpRaise, id, 0, 0) }
func (r *Recorder) SubscribeWindow(id wm.WindowID) { r.record(OpSubscribe, id, 0, 0) }

func (r *Recorder) ClassifyWindow(id wm.WindowID) wm.Kind {
	r.record(OpClassified, id, 0, 0)
	return r.Kinds[id]
}

func (r *Recorder) ConfigureWindow(id wm.WindowID, rect wm.Rect) {
	r.Calls = append(r.Calls, Call{Op: OpConfigure, Window: id, A: rect.X, B: rect.Y, C: rect.Width, D: rect.Height})
}

func (r *Recorder) SendConfigureNotify(id wm.WindowID) { r.record(OpNotify, id, 0, 0) }

func (r *Recorder) SetActiveWorkspaceHint(index int) { r.record(OpDesktop, 0, index, 0) }
func (r *Recorder) SetWorkspaceCountHint(count int)  { r.record(OpDesktops, 0, count, 0) }

func (r *Recorder) QueryScreens() ([]wm.Rect, error) {
	if r.ScreensErr != nil {
		return nil, r.ScreensErr
	}
	return append([]wm.Rect(nil), r.Screens...), nil
}

func (r *Recorder) PointerPosition() wm.Point { return r.Pointer }

func (r *Recorder) ParseKey(sequence string) (uint16, []byte, error) {
	k, ok := r.Keys[sequence]
	if !ok {
		return 0, nil, fmt.Errorf("unknown key sequence %q", sequence)
	}
	return k.Mods, k.Codes, nil
}

func (r *Recorder) GrabKey(mods uint16, code byte) { r.record(OpGrabKey, 0, int(mods), int(code)) }

func (r *Recorder) AtomName(atom uint32) string {
	if name, ok := r.Atoms[atom]; ok {
		return name
	}
	return fmt.Sprintf("atom-%d", atom)
}

// DefaultKeys maps the default key bindings onto a US keyboard layout:
// Mod4 is 0x40, digit keys 1..0 are keycodes 10..19.
func DefaultKeys() map[string]Key {
	const mod4 = 0x40
	keys := map[string]Key{
		"Mod4-Return": {Mods: mod4, Codes: []byte{36}},
		"Mod4-p":      {Mods: mod4, Codes: []byte{33}},
		"Mod4-d":      {Mods: mod4, Codes: []byte{40}},
	}
	for i, digit := range strings.Split("1234567890", "") {
		keys["Mod4-"+digit] = Key{Mods: mod4, Codes: []byte{byte(10 + i)}}
	}
	return keys
}
