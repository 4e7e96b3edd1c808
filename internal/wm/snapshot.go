package wm

// Snapshot is an immutable copy of the context, safe to hand to other
// goroutines.
type Snapshot struct {
	Layout  string
	Windows int
	Screens []ScreenSnapshot
}

// ScreenSnapshot describes one screen at snapshot time.
type ScreenSnapshot struct {
	Bounds           Rect
	CurrentWorkspace int
	Focused          WindowID
	// WorkspaceWindows holds the member count of every workspace.
	WorkspaceWindows []int
	// Docks counts dock windows on the current workspace.
	Docks int
}

// Snapshot copies the state needed for status reporting. layout is the name
// of the active layout strategy.
func (c *Context) Snapshot(layout string) Snapshot {
	snap := Snapshot{
		Layout:  layout,
		Windows: c.Registry.Len(),
		Screens: make([]ScreenSnapshot, 0, len(c.Screens)),
	}
	for _, s := range c.Screens {
		ss := ScreenSnapshot{
			Bounds:           s.Rect(),
			CurrentWorkspace: s.Current,
			Focused:          s.Focused,
			WorkspaceWindows: make([]int, len(s.Workspaces)),
		}
		for i, ws := range s.Workspaces {
			ss.WorkspaceWindows[i] = ws.Len()
		}
		for w := range s.CurrentWorkspace().Windows(c.Registry) {
			if w.IsDock() {
				ss.Docks++
			}
		}
		snap.Screens = append(snap.Screens, ss)
	}
	return snap
}
