package layout

import (
	"errors"
	"slices"
	"testing"

	"github.com/1broseidon/tdawm/internal/display/displaytest"
	"github.com/1broseidon/tdawm/internal/wm"
)

var fullHD = wm.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}

func contextWith(bounds wm.Rect, windows ...wm.Window) *wm.Context {
	ctx := wm.NewContext([]wm.Rect{bounds}, wm.DefaultWorkspaceCount)
	for _, w := range windows {
		ctx.Register(ctx.Screens[0], w)
	}
	return ctx
}

func normals(ids ...wm.WindowID) []wm.Window {
	out := make([]wm.Window, len(ids))
	for i, id := range ids {
		out[i] = wm.NewWindow(id)
	}
	return out
}

func rectsByWindow(t *testing.T, placements []Placement) map[wm.WindowID]wm.Rect {
	t.Helper()
	out := make(map[wm.WindowID]wm.Rect, len(placements))
	for _, p := range placements {
		if _, dup := out[p.Window]; dup {
			t.Fatalf("window %d placed twice", p.Window)
		}
		out[p.Window] = p.Rect
	}
	return out
}

func TestArrange_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		master  wm.WindowID
		windows []wm.WindowID
		want    map[wm.WindowID]wm.Rect
	}{
		{
			name:    "horizontal two windows",
			kind:    KindHorizontal,
			windows: []wm.WindowID{7, 5},
			want: map[wm.WindowID]wm.Rect{
				5: {X: 0, Y: 0, Width: 960, Height: 1080},
				7: {X: 960, Y: 0, Width: 960, Height: 1080},
			},
		},
		{
			name:    "vertical three windows",
			kind:    KindVertical,
			windows: []wm.WindowID{5, 7, 9},
			want: map[wm.WindowID]wm.Rect{
				5: {X: 0, Y: 0, Width: 1920, Height: 360},
				7: {X: 0, Y: 360, Width: 1920, Height: 360},
				9: {X: 0, Y: 720, Width: 1920, Height: 360},
			},
		},
		{
			name:    "master-stack with master 5",
			kind:    KindMasterStack,
			master:  5,
			windows: []wm.WindowID{5, 7, 9},
			want: map[wm.WindowID]wm.Rect{
				5: {X: 0, Y: 0, Width: 960, Height: 1080},
				7: {X: 960, Y: 0, Width: 960, Height: 540},
				9: {X: 960, Y: 540, Width: 960, Height: 540},
			},
		},
		{
			name:    "master-stack with master in the middle",
			kind:    KindMasterStack,
			master:  7,
			windows: []wm.WindowID{5, 7, 9},
			want: map[wm.WindowID]wm.Rect{
				7: {X: 0, Y: 0, Width: 960, Height: 1080},
				5: {X: 960, Y: 0, Width: 960, Height: 540},
				9: {X: 960, Y: 540, Width: 960, Height: 540},
			},
		},
		{
			name:    "master-stack single window fills screen",
			kind:    KindMasterStack,
			master:  42,
			windows: []wm.WindowID{7},
			want: map[wm.WindowID]wm.Rect{
				7: fullHD,
			},
		},
		{
			name:    "master-stack unknown master falls back to lowest id",
			kind:    KindMasterStack,
			master:  42,
			windows: []wm.WindowID{9, 5},
			want: map[wm.WindowID]wm.Rect{
				5: {X: 0, Y: 0, Width: 960, Height: 1080},
				9: {X: 960, Y: 0, Width: 960, Height: 1080},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.kind)
			s.SetMaster(tt.master)
			ctx := contextWith(fullHD, normals(tt.windows...)...)

			placements, err := s.Arrange(ctx)
			if err != nil {
				t.Fatalf("Arrange: %v", err)
			}
			got := rectsByWindow(t, placements)
			if len(got) != len(tt.want) {
				t.Fatalf("placed %d windows, want %d", len(got), len(tt.want))
			}
			for id, want := range tt.want {
				if got[id] != want {
					t.Fatalf("window %d at %+v, want %+v", id, got[id], want)
				}
			}
		})
	}
}

func TestLayout_IssuesMoveResizeShowInOrder(t *testing.T) {
	rec := displaytest.NewRecorder(fullHD)
	ctx := contextWith(fullHD, normals(5, 7)...)

	if err := New(KindHorizontal).Layout(rec, ctx); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	want := []displaytest.Call{
		{Op: displaytest.OpMove, Window: 5, A: 0, B: 0},
		{Op: displaytest.OpResize, Window: 5, A: 960, B: 1080},
		{Op: displaytest.OpShow, Window: 5},
		{Op: displaytest.OpMove, Window: 7, A: 960, B: 0},
		{Op: displaytest.OpResize, Window: 7, A: 960, B: 1080},
		{Op: displaytest.OpShow, Window: 7},
	}
	if !slices.Equal(rec.Calls, want) {
		t.Fatalf("calls = %v, want %v", rec.Calls, want)
	}
}

func TestLayout_ZeroWindowsIssuesNothing(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Parse(name)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			rec := displaytest.NewRecorder(fullHD)
			ctx := contextWith(fullHD)
			if err := s.Layout(rec, ctx); err != nil {
				t.Fatalf("Layout: %v", err)
			}
			if len(rec.Calls) != 0 {
				t.Fatalf("expected no adapter calls, got %v", rec.Calls)
			}
		})
	}
}

func TestLayout_IdempotentOnUnchangedState(t *testing.T) {
	for _, kind := range []Kind{KindHorizontal, KindVertical} {
		t.Run(string(kind), func(t *testing.T) {
			rec := displaytest.NewRecorder(fullHD)
			ctx := contextWith(fullHD, normals(3, 11, 4)...)
			s := New(kind)

			if err := s.Layout(rec, ctx); err != nil {
				t.Fatalf("first Layout: %v", err)
			}
			first := slices.Clone(rec.Calls)
			rec.Reset()
			if err := s.Layout(rec, ctx); err != nil {
				t.Fatalf("second Layout: %v", err)
			}
			if !slices.Equal(first, rec.Calls) {
				t.Fatalf("layout not idempotent:\n%v\n%v", first, rec.Calls)
			}
		})
	}
}

func TestHorizontal_PartitionCompleteness(t *testing.T) {
	bounds := wm.Rect{X: 100, Y: 20, Width: 1000, Height: 700}
	for n := 1; n <= 7; n++ {
		ids := make([]wm.WindowID, n)
		for i := range ids {
			ids[i] = wm.WindowID(100 - i*3)
		}
		ctx := contextWith(bounds, normals(ids...)...)
		placements, err := New(KindHorizontal).Arrange(ctx)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(placements) != n {
			t.Fatalf("n=%d: got %d placements", n, len(placements))
		}
		sum := 0
		for i, p := range placements {
			if p.Rect.Width != bounds.Width/n {
				t.Fatalf("n=%d: width %d, want %d", n, p.Rect.Width, bounds.Width/n)
			}
			if i > 0 {
				prev := placements[i-1]
				if prev.Window >= p.Window || prev.Rect.X >= p.Rect.X {
					t.Fatalf("n=%d: placements not ordered by ascending id left to right", n)
				}
			}
			sum += p.Rect.Width
		}
		if sum > bounds.Width {
			t.Fatalf("n=%d: widths sum to %d > %d", n, sum, bounds.Width)
		}
	}
}

func TestArrange_ExcludesDocks(t *testing.T) {
	ctx := contextWith(fullHD,
		wm.NewWindow(5),
		wm.Window{ID: 6, Kind: wm.KindDock},
		wm.NewWindow(7),
	)
	for _, name := range Names() {
		s, _ := Parse(name)
		s.SetMaster(6)
		placements, err := s.Arrange(ctx)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got := rectsByWindow(t, placements)
		if _, ok := got[6]; ok {
			t.Fatalf("%s: dock must not be tiled", name)
		}
		if len(got) != 2 {
			t.Fatalf("%s: expected 2 tiled windows, got %d", name, len(got))
		}
	}
}

func TestArrange_EmptyScreenDoesNotSkipOthers(t *testing.T) {
	right := wm.Rect{X: 1920, Y: 0, Width: 1280, Height: 1024}
	ctx := wm.NewContext([]wm.Rect{fullHD, right}, wm.DefaultWorkspaceCount)
	ctx.Register(ctx.Screens[1], wm.NewWindow(3))

	placements, err := New(KindVertical).Arrange(ctx)
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if len(placements) != 1 || placements[0].Rect != right {
		t.Fatalf("expected window 3 to fill the second screen, got %+v", placements)
	}
}

func TestArrange_OnlyCurrentWorkspace(t *testing.T) {
	ctx := contextWith(fullHD, normals(1, 2)...)
	if err := ctx.Screens[0].SwitchWorkspace(4); err != nil {
		t.Fatalf("switch: %v", err)
	}
	ctx.Register(ctx.Screens[0], wm.NewWindow(3))

	placements, err := New(KindHorizontal).Arrange(ctx)
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	if len(placements) != 1 || placements[0].Window != 3 || placements[0].Rect != fullHD {
		t.Fatalf("unexpected placements %+v", placements)
	}
}

func TestArrange_NoScreens(t *testing.T) {
	ctx := wm.NewContext(nil, wm.DefaultWorkspaceCount)
	rec := displaytest.NewRecorder()
	err := New(KindMasterStack).Layout(rec, ctx)
	if !errors.Is(err, ErrNoScreenFound) {
		t.Fatalf("expected ErrNoScreenFound, got %v", err)
	}
	if len(rec.Calls) != 0 {
		t.Fatalf("expected no calls, got %v", rec.Calls)
	}
}

func TestSetMaster_IgnoredByNonMasterStrategies(t *testing.T) {
	s := New(KindHorizontal)
	s.SetMaster(9)
	if s.Master() != 0 {
		t.Fatalf("horizontal layout must ignore SetMaster, got %d", s.Master())
	}
	d := New(KindMasterStack)
	d.SetMaster(9)
	if d.Master() != 9 {
		t.Fatalf("dwm layout must record master, got %d", d.Master())
	}
}

func TestParse(t *testing.T) {
	for _, name := range Names() {
		s, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Fatalf("Parse(%q).Name() = %q", name, s.Name())
		}
	}
	if _, err := Parse("spiral"); !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("expected ErrUnknownLayout, got %v", err)
	}
}

func TestNext(t *testing.T) {
	cycle := []string{"dwm", "horizontal", "vertical"}
	tests := []struct {
		current string
		want    string
	}{
		{"dwm", "horizontal"},
		{"horizontal", "vertical"},
		{"vertical", "dwm"},
		{"missing", "dwm"},
	}
	for _, tt := range tests {
		if got := Next(tt.current, cycle); got != tt.want {
			t.Fatalf("Next(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if got := Next("dwm", nil); got != "dwm" {
		t.Fatalf("Next with empty cycle = %q, want dwm", got)
	}
}
