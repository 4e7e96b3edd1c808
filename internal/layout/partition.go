package layout

import "github.com/1broseidon/tdawm/internal/wm"

// horizontal gives every window a full-height column of width W/N, left to
// right. The integer-division remainder stays unused on the right edge.
func horizontal(bounds wm.Rect, windows []wm.Window) []Placement {
	n := len(windows)
	width := bounds.Width / n
	placements := make([]Placement, n)
	for i, w := range windows {
		placements[i] = Placement{
			Window: w.ID,
			Rect: wm.Rect{
				X:      bounds.X + i*width,
				Y:      bounds.Y,
				Width:  width,
				Height: bounds.Height,
			},
		}
	}
	return placements
}

// vertical gives every window a full-width row of height H/N, top to bottom.
func vertical(bounds wm.Rect, windows []wm.Window) []Placement {
	n := len(windows)
	height := bounds.Height / n
	placements := make([]Placement, n)
	for i, w := range windows {
		placements[i] = Placement{
			Window: w.ID,
			Rect: wm.Rect{
				X:      bounds.X,
				Y:      bounds.Y + i*height,
				Width:  bounds.Width,
				Height: height,
			},
		}
	}
	return placements
}

// masterStack puts the master in the left half at full height and stacks the
// others in the right half. A single window takes the whole screen. When
// master is not among windows the lowest id stands in for it.
func masterStack(bounds wm.Rect, windows []wm.Window, master wm.WindowID) []Placement {
	n := len(windows)
	if n == 1 {
		return []Placement{{Window: windows[0].ID, Rect: bounds}}
	}

	effective := windows[0].ID
	for _, w := range windows {
		if w.ID == master {
			effective = master
			break
		}
	}

	half := bounds.Width / 2
	stackHeight := bounds.Height / (n - 1)
	placements := make([]Placement, 0, n)
	slot := 0
	for _, w := range windows {
		if w.ID == effective {
			placements = append(placements, Placement{
				Window: w.ID,
				Rect: wm.Rect{
					X:      bounds.X,
					Y:      bounds.Y,
					Width:  half,
					Height: bounds.Height,
				},
			})
			continue
		}
		placements = append(placements, Placement{
			Window: w.ID,
			Rect: wm.Rect{
				X:      bounds.X + half,
				Y:      bounds.Y + slot*stackHeight,
				Width:  half,
				Height: stackHeight,
			},
		})
		slot++
	}
	return placements
}
