package wm

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistry_MissingEntriesAreReportedNotFatal(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Get(42); ok {
		t.Fatalf("expected unknown id to be absent")
	}
	if reg.Remove(42) {
		t.Fatalf("expected Remove of unknown id to report false")
	}
	called := false
	if reg.Update(42, func(*Window) { called = true }) {
		t.Fatalf("expected Update of unknown id to report false")
	}
	if called {
		t.Fatalf("update func must not run for unknown id")
	}
}

func TestRegistry_UpdateKeepsID(t *testing.T) {
	reg := NewRegistry()
	reg.Insert(NewWindow(5))
	ok := reg.Update(5, func(w *Window) {
		w.ID = 99
		w.Kind = KindDock
	})
	if !ok {
		t.Fatalf("expected update to succeed")
	}
	w, ok := reg.Get(5)
	if !ok || w.ID != 5 || w.Kind != KindDock {
		t.Fatalf("unexpected record after update: %+v ok=%v", w, ok)
	}
	if reg.Contains(99) {
		t.Fatalf("update must not re-key the record")
	}
}

func TestWorkspace_NormalIsSortedAndSkipsDocksAndStale(t *testing.T) {
	reg := NewRegistry()
	ws := NewWorkspace()
	for _, id := range []WindowID{9, 5, 7, 3} {
		ws.Add(id)
	}
	ws.Add(5)
	reg.Insert(NewWindow(9))
	reg.Insert(NewWindow(5))
	reg.Insert(Window{ID: 7, Kind: KindDock})
	// 3 is stale: in the workspace but not registered.

	var got []WindowID
	for w := range ws.Normal(reg) {
		got = append(got, w.ID)
	}
	if want := []WindowID{5, 9}; !slices.Equal(got, want) {
		t.Fatalf("Normal() = %v, want %v", got, want)
	}
	if ws.Len() != 4 {
		t.Fatalf("expected duplicate Add to be ignored, len=%d", ws.Len())
	}
}

func TestWorkspace_NormalStopsEarly(t *testing.T) {
	reg := NewRegistry()
	ws := NewWorkspace()
	for _, id := range []WindowID{1, 2, 3} {
		ws.Add(id)
		reg.Insert(NewWindow(id))
	}
	count := 0
	for range ws.Normal(reg) {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("expected early break to stop iteration, got %d", count)
	}
}

func TestWorkspace_UpdateIsUpsert(t *testing.T) {
	ws := NewWorkspace()
	ws.Update(Window{ID: 4})
	ws.Update(Window{ID: 4, Kind: KindDock})
	if !ws.Contains(4) || ws.Len() != 1 {
		t.Fatalf("expected single membership of 4, got %v", ws.IDs())
	}
}

func TestScreen_CurrentWorkspacePanicsOnCorruptIndex(t *testing.T) {
	s := NewScreen(Rect{Width: 100, Height: 100}, 2)
	s.Current = 5
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for corrupt workspace index")
		}
	}()
	s.CurrentWorkspace()
}

func TestScreen_SwitchWorkspace(t *testing.T) {
	s := NewScreen(Rect{Width: 100, Height: 100}, 3)
	s.CurrentWorkspace().Add(1)

	if err := s.SwitchWorkspace(3); !errors.Is(err, ErrWorkspaceOutOfRange) {
		t.Fatalf("expected ErrWorkspaceOutOfRange, got %v", err)
	}
	if s.Current != 0 {
		t.Fatalf("failed switch must not change current, got %d", s.Current)
	}
	if err := s.SwitchWorkspace(2); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if s.HasWindowVisible(1) {
		t.Fatalf("window 1 should not be visible on workspace 2")
	}
	ws, idx, ok := s.WindowWorkspace(1)
	if !ok || idx != 0 || ws != s.Workspaces[0] {
		t.Fatalf("expected window 1 on workspace 0, got idx=%d ok=%v", idx, ok)
	}
}

func TestNewScreen_ClampsWorkspaceCount(t *testing.T) {
	s := NewScreen(Rect{}, 0)
	if len(s.Workspaces) != 1 {
		t.Fatalf("expected 1 workspace, got %d", len(s.Workspaces))
	}
}

func TestContext_FocusedScreen(t *testing.T) {
	ctx := NewContext([]Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1280, Height: 1024},
	}, DefaultWorkspaceCount)

	tests := []struct {
		name string
		p    Point
		want int
	}{
		{"origin", Point{0, 0}, 0},
		{"right edge is exclusive", Point{1920, 10}, 1},
		{"second screen", Point{2500, 500}, 1},
		{"below second screen falls back", Point{2500, 1050}, 0},
		{"negative falls back", Point{-5, -5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.FocusedScreenIndex(tt.p); got != tt.want {
				t.Fatalf("FocusedScreenIndex(%v) = %d, want %d", tt.p, got, tt.want)
			}
			s, err := ctx.FocusedScreen(tt.p)
			if err != nil {
				t.Fatalf("FocusedScreen: %v", err)
			}
			if s != ctx.Screens[tt.want] {
				t.Fatalf("FocusedScreen returned wrong screen")
			}
		})
	}
}

func TestContext_FocusedScreenWithoutScreens(t *testing.T) {
	ctx := NewContext(nil, DefaultWorkspaceCount)
	if _, err := ctx.FocusedScreen(Point{}); !errors.Is(err, ErrNoScreenFound) {
		t.Fatalf("expected ErrNoScreenFound, got %v", err)
	}
}

func TestContext_RegisterUnregisterKeepsInvariants(t *testing.T) {
	ctx := NewContext([]Rect{
		{Width: 100, Height: 100},
		{X: 100, Width: 100, Height: 100},
	}, 3)
	s0, s1 := ctx.Screens[0], ctx.Screens[1]

	ctx.Register(s0, NewWindow(1))
	ctx.Register(s0, NewWindow(2))
	if err := s0.SwitchWorkspace(1); err != nil {
		t.Fatalf("switch: %v", err)
	}
	ctx.Register(s0, NewWindow(3))
	ctx.Register(s1, NewWindow(4))
	if err := ctx.CheckInvariants(); err != nil {
		t.Fatalf("invariants after register: %v", err)
	}

	// Re-registering moves instead of duplicating.
	ctx.Register(s1, NewWindow(1))
	if err := ctx.CheckInvariants(); err != nil {
		t.Fatalf("invariants after re-register: %v", err)
	}
	if s0.Workspaces[0].Contains(1) {
		t.Fatalf("window 1 must have left its old workspace")
	}

	// Removing a window on a workspace that is not current still works.
	s0.Focused = 2
	if !ctx.Unregister(2) {
		t.Fatalf("expected Unregister(2) to report removal")
	}
	if s0.Focused != 0 {
		t.Fatalf("expected focus to be cleared, got %d", s0.Focused)
	}
	if ctx.Unregister(77) {
		t.Fatalf("unknown id must report false")
	}
	if err := ctx.CheckInvariants(); err != nil {
		t.Fatalf("invariants after unregister: %v", err)
	}
}

func TestContext_CheckInvariantsDetectsMismatch(t *testing.T) {
	ctx := NewContext([]Rect{{Width: 10, Height: 10}}, 2)
	ctx.Screens[0].Workspaces[0].Add(1)
	if err := ctx.CheckInvariants(); err == nil {
		t.Fatalf("expected error for workspace id without registry entry")
	}

	ctx = NewContext([]Rect{{Width: 10, Height: 10}}, 2)
	ctx.Registry.Insert(NewWindow(2))
	if err := ctx.CheckInvariants(); err == nil {
		t.Fatalf("expected error for registry entry without workspace")
	}

	ctx = NewContext([]Rect{{Width: 10, Height: 10}}, 2)
	ctx.Registry.Insert(NewWindow(3))
	ctx.Screens[0].Workspaces[0].Add(3)
	ctx.Screens[0].Workspaces[1].Add(3)
	if err := ctx.CheckInvariants(); err == nil {
		t.Fatalf("expected error for window in two workspaces")
	}
}

func TestContext_UpdateWindow(t *testing.T) {
	ctx := NewContext([]Rect{{Width: 10, Height: 10}}, 2)
	ctx.Register(ctx.Screens[0], NewWindow(8))

	if !ctx.UpdateWindow(Window{ID: 8, Kind: KindDock}) {
		t.Fatalf("expected update of tracked window to succeed")
	}
	w, _ := ctx.Registry.Get(8)
	if !w.IsDock() {
		t.Fatalf("expected dock kind after update")
	}
	if ctx.UpdateWindow(Window{ID: 9}) {
		t.Fatalf("expected update of unknown window to fail")
	}
	if ctx.Registry.Contains(9) {
		t.Fatalf("failed update must not register the window")
	}
}

func TestContext_Snapshot(t *testing.T) {
	ctx := NewContext([]Rect{{Width: 1920, Height: 1080}}, 3)
	s := ctx.Screens[0]
	ctx.Register(s, NewWindow(1))
	ctx.Register(s, Window{ID: 2, Kind: KindDock})
	s.Focused = 1

	snap := ctx.Snapshot("dwm")
	if snap.Layout != "dwm" || snap.Windows != 2 || len(snap.Screens) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	ss := snap.Screens[0]
	if ss.Focused != 1 || ss.Docks != 1 || !slices.Equal(ss.WorkspaceWindows, []int{2, 0, 0}) {
		t.Fatalf("unexpected screen snapshot: %+v", ss)
	}

	ctx.Register(s, NewWindow(3))
	if snap.Screens[0].WorkspaceWindows[0] != 2 {
		t.Fatalf("snapshot must not alias live state")
	}
}
