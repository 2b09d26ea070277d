package driftgrid

import (
	"fmt"
	"os"
)

// engineStats holds cumulative frame counters for debug logging.
// Only read when Engine.debug is true.
type engineStats struct {
	frames  int
	wraps   int
	settles int
	selects int
	rebinds int
	lastLog float64
}

// debugLogInterval is how often, in seconds, the debug frame summary prints.
const debugLogInterval = 1.0

// debugLog prints a two-line frame summary to stderr.
func (e *Engine) debugLog() {
	if !e.debug {
		return
	}
	view := e.pan.View()
	_, _ = fmt.Fprintf(os.Stderr,
		"[driftgrid] slots: %d | view: (%.0f, %.0f) | speed: %.0f | ripple: %.2f\n",
		e.field.Len(), view.X, view.Y, e.pan.Speed(), e.ripple.MaxMagnitude())
	_, _ = fmt.Fprintf(os.Stderr,
		"[driftgrid] frames: %d | wraps: %d | settles: %d | selects: %d | rebinds: %d | videos: %d\n",
		e.stats.frames, e.stats.wraps, e.stats.settles, e.stats.selects,
		e.stats.rebinds, e.videos.ActiveCount())
}

// debugCheckField warns on stderr when a slot's base position escapes the
// guard band or two slots share a grid coordinate. Only called when the
// engine is in debug mode; release frames skip this entirely.
func debugCheckField(f *TileField) {
	if len(f.slots) == 0 {
		return
	}
	band := f.band()
	seen := make(map[Coord]int, len(f.slots))
	for i := range f.slots {
		s := &f.slots[i]
		if s.BaseX < band.X || s.BaseX >= band.X+band.Width ||
			s.BaseY < band.Y || s.BaseY >= band.Y+band.Height {
			_, _ = fmt.Fprintf(os.Stderr,
				"[driftgrid] warning: slot %d base (%.1f, %.1f) outside guard band\n",
				i, s.BaseX, s.BaseY)
		}
		if j, dup := seen[s.Coord]; dup {
			_, _ = fmt.Fprintf(os.Stderr,
				"[driftgrid] warning: slots %d and %d share coordinate (%d, %d)\n",
				j, i, s.Coord.Col, s.Coord.Row)
		}
		seen[s.Coord] = i
	}
}
