package driftgrid

import (
	"log"
	"math"
)

// poolPad accounts for partial tiles visible at both edges when the view
// offset is not cell-aligned.
const poolPad = 2

// TileSlot is one recyclable tile in the fixed pool. A slot's identity
// (Index) is permanent; its grid coordinate and media change only when it
// wraps across the field.
type TileSlot struct {
	// Index is the slot's position in the pool, stable for the pool's
	// lifetime. Sinks address visuals by this index.
	Index int
	// Coord is the slot's current address on the virtual grid.
	Coord Coord
	// MediaIndex is the catalog index currently assigned, or -1.
	MediaIndex int
	// BaseX, BaseY are the slot's resting screen position for the current
	// view offset, before the ripple offset is applied. Top-left corner.
	BaseX, BaseY float64
	// X, Y are the final rendered screen position, written by the engine
	// after per-tile offsets. Top-left corner.
	X, Y float64
	// Scale and Opacity are the last values pushed to the sink.
	Scale, Opacity float64
	// Visible reports whether the slot currently has usable content.
	Visible bool
}

// WrapEvent records one slot crossing the field edge during an advance.
type WrapEvent struct {
	Slot      int
	From, To  Coord
	Media     int // newly assigned catalog index, or -1
	PrevMedia int
}

// TileField owns the fixed pool of tile slots and the toroidal recycling
// that makes the pool cover an unbounded grid. It knows nothing about
// smoothing or rendering; it maps a view offset to slot positions and
// reassigns coordinates when slots leave the guard band.
type TileField struct {
	cfg     *Config
	catalog *Catalog
	picker  mediaPicker

	slots    []TileSlot
	occupied map[Coord]int // coord -> catalog index, one entry per slot

	cols, rows   int
	viewW, viewH float64
	// Window the pool tiles exactly once. A slot whose base position exits
	// the window (plus slack) teleports one field length back in.
	winMinX, winMinY float64
	fieldW, fieldH   float64
	slack            float64

	wraps []WrapEvent // reused each advance
}

func newTileField(cfg *Config, catalog *Catalog) *TileField {
	return &TileField{
		cfg:     cfg,
		catalog: catalog,
		picker:  mediaPicker{catalog: catalog, attempts: cfg.ProbeAttempts},
	}
}

// Build sizes the pool for the given viewport and seeds every slot with a
// coordinate and media assignment. Any previous pool state is discarded.
// A degenerate viewport produces an empty pool.
func (f *TileField) Build(viewW, viewH float64) {
	f.viewW = viewW
	f.viewH = viewH
	f.slots = nil
	f.occupied = make(map[Coord]int)
	f.cols = 0
	f.rows = 0
	if viewW <= 0 || viewH <= 0 {
		return
	}

	cell := f.cfg.CellSize
	f.cols = int(math.Ceil(viewW/cell)) + poolPad + 2*f.cfg.OverscanMargin
	f.rows = int(math.Ceil(viewH/cell)) + poolPad + 2*f.cfg.OverscanMargin
	f.fieldW = float64(f.cols) * cell
	f.fieldH = float64(f.rows) * cell
	f.winMinX = (viewW - f.fieldW) / 2
	f.winMinY = (viewH - f.fieldH) / 2

	// Slack may not exceed the off-screen margin or a lingering tile would
	// leave the far side of the viewport uncovered.
	maxSlack := math.Min((f.fieldW-viewW)/2, (f.fieldH-viewH)/2) - cell
	f.slack = clamp(f.cfg.WrapSlack, 0, math.Max(maxSlack, 0))

	f.slots = make([]TileSlot, f.cols*f.rows)
	startCol := -f.cols / 2
	startRow := -f.rows / 2
	i := 0
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			coord := Coord{Col: startCol + c, Row: startRow + r}
			media := f.picker.pick(coord, f.occupied)
			if media >= 0 {
				f.occupied[coord] = media
			}
			f.slots[i] = TileSlot{
				Index:      i,
				Coord:      coord,
				MediaIndex: media,
				Scale:      1,
				Opacity:    1,
				Visible:    media >= 0 && f.catalog.Usable(media),
			}
			i++
		}
	}
	if globalDebug {
		log.Printf("driftgrid: field built %dx%d (%d slots) for %dx%d viewport",
			f.cols, f.rows, len(f.slots), int(viewW), int(viewH))
	}
}

// Advance recomputes every slot's base position for the given view offset
// and recycles slots that left the guard band. The returned slice is valid
// until the next call.
func (f *TileField) Advance(view Vec2) []WrapEvent {
	f.wraps = f.wraps[:0]
	if len(f.slots) == 0 {
		return f.wraps
	}

	cell := f.cfg.CellSize
	originX := f.viewW/2 - cell/2
	originY := f.viewH/2 - cell/2
	minX := f.winMinX - f.slack
	maxX := f.winMinX + f.fieldW + f.slack
	minY := f.winMinY - f.slack
	maxY := f.winMinY + f.fieldH + f.slack

	for i := range f.slots {
		s := &f.slots[i]
		col, row := s.Coord.Col, s.Coord.Row
		x := originX + float64(col)*cell + view.X
		y := originY + float64(row)*cell + view.Y

		// Per-axis toroidal wrap. The window is half-open so every offset
		// has exactly one in-window representative; the loops are bounded
		// so a pathological offset cannot spin forever.
		steps := 0
		for x < minX && steps < f.cfg.MaxWrapSteps {
			col += f.cols
			x += f.fieldW
			steps++
		}
		for x >= maxX && steps < f.cfg.MaxWrapSteps {
			col -= f.cols
			x -= f.fieldW
			steps++
		}
		for y < minY && steps < f.cfg.MaxWrapSteps {
			row += f.rows
			y += f.fieldH
			steps++
		}
		for y >= maxY && steps < f.cfg.MaxWrapSteps {
			row -= f.rows
			y -= f.fieldH
			steps++
		}

		if col != s.Coord.Col || row != s.Coord.Row {
			f.relocate(s, Coord{Col: col, Row: row})
		}
		s.BaseX = x
		s.BaseY = y
	}
	return f.wraps
}

// relocate moves a slot to a new coordinate: the old occupancy entry is
// removed before the new media is picked, so the probe sees a consistent
// neighborhood, then the new entry is inserted.
func (f *TileField) relocate(s *TileSlot, to Coord) {
	from := s.Coord
	prev := s.MediaIndex
	delete(f.occupied, from)

	media := f.picker.pick(to, f.occupied)
	if media >= 0 {
		f.occupied[to] = media
	}
	s.Coord = to
	s.MediaIndex = media
	s.Visible = media >= 0 && f.catalog.Usable(media)

	f.wraps = append(f.wraps, WrapEvent{
		Slot:      s.Index,
		From:      from,
		To:        to,
		Media:     media,
		PrevMedia: prev,
	})
}

// Slot returns a pointer into the pool. Valid until the next Build.
func (f *TileField) Slot(i int) *TileSlot {
	return &f.slots[i]
}

// Slots returns the live pool. Callers must not grow or reorder it.
func (f *TileField) Slots() []TileSlot {
	return f.slots
}

// Len returns the pool size.
func (f *TileField) Len() int {
	return len(f.slots)
}

// Extent returns the pool dimensions in tiles.
func (f *TileField) Extent() (cols, rows int) {
	return f.cols, f.rows
}

// band returns the guard-banded rectangle that slot base positions
// (top-left corners) stay inside. The right and bottom edges are exclusive.
func (f *TileField) band() Rect {
	return Rect{
		X:      f.winMinX - f.slack,
		Y:      f.winMinY - f.slack,
		Width:  f.fieldW + 2*f.slack,
		Height: f.fieldH + 2*f.slack,
	}
}

// coordAt returns the virtual grid coordinate under a screen point for the
// given view offset. Pure geometry; works whether or not a slot currently
// holds that coordinate.
func (f *TileField) coordAt(x, y float64, view Vec2) Coord {
	cell := f.cfg.CellSize
	return Coord{
		Col: int(math.Floor((x - view.X - f.viewW/2 + cell/2) / cell)),
		Row: int(math.Floor((y - view.Y - f.viewH/2 + cell/2) / cell)),
	}
}

// SlotAt returns the index of the slot whose rendered rectangle contains
// the screen point, or -1. Uses final positions, so ripple displacement is
// respected during hit testing.
func (f *TileField) SlotAt(x, y float64) int {
	cell := f.cfg.CellSize
	for i := range f.slots {
		s := &f.slots[i]
		if x >= s.X && x < s.X+cell && y >= s.Y && y < s.Y+cell {
			return i
		}
	}
	return -1
}
