package x11

import (
	"slices"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/tdawm/internal/display"
	"github.com/1broseidon/tdawm/internal/wm"
)

func TestIgnoreModCombos(t *testing.T) {
	tests := []struct {
		name                   string
		caps, numLock, scrlock uint16
		want                   []uint16
	}{
		{"caps only", xproto.ModMaskLock, 0, 0, []uint16{0, xproto.ModMaskLock}},
		{"caps and numlock", xproto.ModMaskLock, xproto.ModMask2, 0,
			[]uint16{0, xproto.ModMaskLock, xproto.ModMask2, xproto.ModMaskLock | xproto.ModMask2}},
		{"duplicate masks collapse", xproto.ModMaskLock, xproto.ModMask2, xproto.ModMask2,
			[]uint16{0, xproto.ModMaskLock, xproto.ModMask2, xproto.ModMaskLock | xproto.ModMask2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ignoreModCombos(tt.caps, tt.numLock, tt.scrlock)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIgnoreModCombos_ThreeLocks(t *testing.T) {
	got := ignoreModCombos(xproto.ModMaskLock, xproto.ModMask2, xproto.ModMask5)
	if len(got) != 8 {
		t.Fatalf("expected 8 combinations, got %v", got)
	}
}

func TestKeyModifiers_StripsLocksAndButtons(t *testing.T) {
	lock := uint16(xproto.ModMaskLock | xproto.ModMask2)
	state := uint16(xproto.ModMask4 | xproto.ModMaskLock | xproto.ModMask2 | xproto.KeyButMaskButton1)
	if got := keyModifiers(state, lock); got != xproto.ModMask4 {
		t.Fatalf("got %#x, want %#x", got, xproto.ModMask4)
	}
}

func TestKindFromTypes(t *testing.T) {
	if kindFromTypes(nil) != wm.KindNormal {
		t.Fatalf("no hint should be normal")
	}
	if kindFromTypes([]string{"_NET_WM_WINDOW_TYPE_NORMAL"}) != wm.KindNormal {
		t.Fatalf("normal hint should be normal")
	}
	if kindFromTypes([]string{"_NET_WM_WINDOW_TYPE_DOCK"}) != wm.KindDock {
		t.Fatalf("dock hint should be dock")
	}
}

func TestUniqueRects(t *testing.T) {
	a := wm.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	b := wm.Rect{X: 1920, Y: 0, Width: 1280, Height: 1024}
	got := uniqueRects([]wm.Rect{a, a, {}, b})
	if !slices.Equal(got, []wm.Rect{a, b}) {
		t.Fatalf("got %v", got)
	}
}

func TestDesktopNames(t *testing.T) {
	got := desktopNames(10)
	if got[0] != "1" || got[8] != "9" || got[9] != "0" {
		t.Fatalf("got %v", got)
	}
}

func TestMergeGeometry(t *testing.T) {
	req := display.ConfigureRequest{Window: 3, X: 10, Width: 300}
	got := mergeGeometry(req, xproto.ConfigWindowX|xproto.ConfigWindowWidth, 1, 2, 3, 4)
	want := display.ConfigureRequest{Window: 3, X: 10, Y: 2, Width: 300, Height: 4}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestTranslate(t *testing.T) {
	c := &Connection{Root: 1, lockMask: xproto.ModMaskLock}
	full := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)

	tests := []struct {
		name string
		in   xgb.Event
		want display.Event
	}{
		{"create", xproto.CreateNotifyEvent{Window: 5}, display.CreateNotify{Window: 5}},
		{"override redirect create", xproto.CreateNotifyEvent{Window: 5, OverrideRedirect: true}, display.Unknown{Name: "CreateNotify"}},
		{"map", xproto.MapRequestEvent{Window: 5}, display.MapRequest{Window: 5}},
		{"destroy", xproto.DestroyNotifyEvent{Window: 5}, display.DestroyNotify{Window: 5}},
		{"unmap", xproto.UnmapNotifyEvent{Window: 5}, display.UnmapNotify{Window: 5}},
		{"enter", xproto.EnterNotifyEvent{Event: 5, RootX: 30, RootY: 40}, display.EnterNotify{Window: 5, Root: wm.Point{X: 30, Y: 40}}},
		{"key", xproto.KeyPressEvent{Detail: 36, State: xproto.ModMask4 | xproto.ModMaskLock}, display.KeyPress{Code: 36, Mods: xproto.ModMask4}},
		{"property", xproto.PropertyNotifyEvent{Window: 5, Atom: 39}, display.PropertyNotify{Window: 5, Atom: 39}},
		{"configure request", xproto.ConfigureRequestEvent{Window: 5, X: 1, Y: 2, Width: 3, Height: 4, ValueMask: full},
			display.ConfigureRequest{Window: 5, X: 1, Y: 2, Width: 3, Height: 4}},
		{"client message", xproto.ClientMessageEvent{Window: 5, Type: 301}, display.ClientMessage{Window: 5, Type: 301}},
		{"root configure", xproto.ConfigureNotifyEvent{Window: 1}, display.RootConfigure{}},
		{"child configure", xproto.ConfigureNotifyEvent{Window: 5}, display.Unknown{Name: "ConfigureNotify"}},
		{"motion", xproto.MotionNotifyEvent{}, display.Unknown{Name: "MotionNotify"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.translate(tt.in); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslate_DestroyForgetsWmState(t *testing.T) {
	c := &Connection{Root: 1, wmStates: map[xproto.Window]uint{5: icccm.StateNormal, 6: icccm.StateIconic}}
	c.translate(xproto.DestroyNotifyEvent{Window: 5})
	if _, ok := c.wmStates[5]; ok {
		t.Fatalf("cached WM_STATE of destroyed window 5 kept")
	}
	if c.wmStates[6] != icccm.StateIconic {
		t.Fatalf("unrelated window 6 lost its cached state")
	}
}
