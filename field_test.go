package driftgrid

import (
	"math"
	"testing"
)

func newTestField(viewW, viewH float64, items int) *TileField {
	cfg := DefaultConfig()
	cfg.normalize()
	f := newTileField(&cfg, NewCatalog(testItems(items)))
	f.Build(viewW, viewH)
	return f
}

func checkOccupancyUnique(t *testing.T, f *TileField) {
	t.Helper()
	seen := make(map[Coord]int, f.Len())
	withMedia := 0
	for _, s := range f.Slots() {
		if prev, dup := seen[s.Coord]; dup {
			t.Fatalf("coord %v held by slots %d and %d", s.Coord, prev, s.Index)
		}
		seen[s.Coord] = s.Index
		if s.MediaIndex >= 0 {
			withMedia++
			if got, ok := f.occupied[s.Coord]; !ok || got != s.MediaIndex {
				t.Fatalf("occupancy for %v = %d,%v, slot says %d", s.Coord, got, ok, s.MediaIndex)
			}
		}
	}
	if len(f.occupied) != withMedia {
		t.Fatalf("occupancy has %d entries, want %d", len(f.occupied), withMedia)
	}
}

func checkInBand(t *testing.T, f *TileField) {
	t.Helper()
	b := f.band()
	for _, s := range f.Slots() {
		if s.BaseX < b.X-1e-9 || s.BaseX >= b.X+b.Width+1e-9 ||
			s.BaseY < b.Y-1e-9 || s.BaseY >= b.Y+b.Height+1e-9 {
			t.Fatalf("slot %d at (%f,%f) outside band %v", s.Index, s.BaseX, s.BaseY, b)
		}
	}
}

func TestFieldBuildSizing(t *testing.T) {
	f := newTestField(800, 600, 24)
	cols, rows := f.Extent()
	// ceil(800/260)=4 and ceil(600/260)=3, plus edge padding and one
	// overscan ring per side.
	if cols != 8 || rows != 7 {
		t.Errorf("extent = %dx%d, want 8x7", cols, rows)
	}
	if f.Len() != 56 {
		t.Errorf("Len = %d, want 56", f.Len())
	}
	checkOccupancyUnique(t, f)
}

func TestFieldBuildDegenerateViewport(t *testing.T) {
	f := newTestField(0, 600, 24)
	if f.Len() != 0 {
		t.Errorf("Len = %d for zero-width viewport, want 0", f.Len())
	}
	// Advance on an empty pool must be a no-op.
	if wraps := f.Advance(Vec2{X: 500}); len(wraps) != 0 {
		t.Errorf("Advance on empty pool produced %d wraps", len(wraps))
	}
}

func TestFieldBuildEmptyCatalog(t *testing.T) {
	cfg := DefaultConfig()
	cfg.normalize()
	f := newTileField(&cfg, NewCatalog(nil))
	f.Build(800, 600)
	if f.Len() == 0 {
		t.Fatal("pool should still allocate without media")
	}
	for _, s := range f.Slots() {
		if s.MediaIndex != -1 || s.Visible {
			t.Fatalf("slot %d has media %d visible=%v, want hidden placeholder", s.Index, s.MediaIndex, s.Visible)
		}
	}
	f.Advance(Vec2{X: 3000})
	checkInBand(t, f)
}

func TestFieldInitialNeighborsDistinct(t *testing.T) {
	f := newTestField(800, 600, 24)
	for _, s := range f.Slots() {
		right := Coord{s.Coord.Col + 1, s.Coord.Row}
		down := Coord{s.Coord.Col, s.Coord.Row + 1}
		for _, nc := range []Coord{right, down} {
			if n, ok := f.occupied[nc]; ok && n == s.MediaIndex {
				t.Errorf("adjacent coords %v and %v share media %d", s.Coord, nc, n)
			}
		}
	}
}

func TestFieldNoWrapKeepsMedia(t *testing.T) {
	f := newTestField(800, 600, 24)
	f.Advance(Vec2{})

	// The seeded layout can rest exactly on a window edge, so center the
	// oscillation: bias the view until the leftmost tile sits half a cell
	// inside the band on both axes.
	band := f.band()
	minLeft, minTop := math.Inf(1), math.Inf(1)
	for _, s := range f.Slots() {
		minLeft = math.Min(minLeft, s.BaseX)
		minTop = math.Min(minTop, s.BaseY)
	}
	cell := f.cfg.CellSize
	center := Vec2{
		X: cell/2 - (minLeft - band.X),
		Y: cell/2 - (minTop - band.Y),
	}
	f.Advance(center)
	before := make([]int, f.Len())
	for i, s := range f.Slots() {
		before[i] = s.MediaIndex
	}

	// A quarter-cell oscillation around the centered view never reaches a
	// band edge, so assignments must hold for the whole run.
	for frame := 0; frame < 1000; frame++ {
		view := Vec2{
			X: center.X + cell/4*math.Sin(float64(frame)*0.07),
			Y: center.Y + cell/4*math.Cos(float64(frame)*0.05),
		}
		if wraps := f.Advance(view); len(wraps) != 0 {
			t.Fatalf("frame %d: unexpected wrap %+v", frame, wraps[0])
		}
	}
	for i, s := range f.Slots() {
		if s.MediaIndex != before[i] {
			t.Errorf("slot %d media changed %d -> %d without wrapping", i, before[i], s.MediaIndex)
		}
	}
}

func TestFieldWrapKeepsBandAndOccupancy(t *testing.T) {
	f := newTestField(800, 600, 24)
	// Deterministic wandering pan covering several field lengths in both
	// axes and directions.
	view := Vec2{}
	for frame := 0; frame < 600; frame++ {
		view.X += 90 * math.Sin(float64(frame)*0.013+0.4)
		view.Y += 70 * math.Cos(float64(frame)*0.011)
		f.Advance(view)
		checkInBand(t, f)
		checkOccupancyUnique(t, f)
	}
}

func TestFieldWrapEvents(t *testing.T) {
	f := newTestField(800, 600, 24)
	f.Advance(Vec2{})
	cols, _ := f.Extent()

	// Pan exactly one field width to the right: every slot wraps once, one
	// field of columns leftward.
	wraps := f.Advance(Vec2{X: f.fieldW})
	if len(wraps) != f.Len() {
		t.Fatalf("wrapped %d slots, want all %d", len(wraps), f.Len())
	}
	for _, w := range wraps {
		if w.To.Col != w.From.Col-cols || w.To.Row != w.From.Row {
			t.Errorf("wrap %+v: want column shift of -%d", w, cols)
		}
		if w.Media != f.Slot(w.Slot).MediaIndex {
			t.Errorf("wrap event media %d, slot has %d", w.Media, f.Slot(w.Slot).MediaIndex)
		}
	}
	checkOccupancyUnique(t, f)
}

func TestFieldMediaChangesOnlyOnWrap(t *testing.T) {
	f := newTestField(800, 600, 24)
	f.Advance(Vec2{})
	prev := make([]int, f.Len())
	for i, s := range f.Slots() {
		prev[i] = s.MediaIndex
	}
	view := Vec2{}
	for frame := 0; frame < 300; frame++ {
		view.X += 120
		wraps := f.Advance(view)
		wrapped := make(map[int]bool, len(wraps))
		for _, w := range wraps {
			wrapped[w.Slot] = true
		}
		for i, s := range f.Slots() {
			if s.MediaIndex != prev[i] && !wrapped[i] {
				t.Fatalf("frame %d: slot %d media changed without a wrap event", frame, i)
			}
			prev[i] = s.MediaIndex
		}
	}
}

func TestFieldTeleportRecovers(t *testing.T) {
	f := newTestField(800, 600, 24)
	f.Advance(Vec2{})
	// A jump far beyond what one bounded wrap pass can absorb. Each advance
	// moves a stranded slot at most MaxWrapSteps field lengths, so a few
	// frames later everything must be back inside the band.
	huge := Vec2{X: f.fieldW * 30, Y: -f.fieldH * 20}
	for frame := 0; frame < 12; frame++ {
		f.Advance(huge)
		checkOccupancyUnique(t, f)
	}
	checkInBand(t, f)
}

func TestFieldCoordAt(t *testing.T) {
	f := newTestField(800, 600, 24)
	tests := []struct {
		name string
		x, y float64
		view Vec2
		want Coord
	}{
		{"viewport center", 400, 300, Vec2{}, Coord{0, 0}},
		{"one cell right", 400 + 260, 300, Vec2{}, Coord{1, 0}},
		{"one cell up", 400, 300 - 260, Vec2{}, Coord{0, -1}},
		{"view shifts content", 400, 300, Vec2{X: 260}, Coord{-1, 0}},
		{"edge of center cell", 400 + 129.9, 300, Vec2{}, Coord{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.coordAt(tt.x, tt.y, tt.view); got != tt.want {
				t.Errorf("coordAt(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFieldSlotAt(t *testing.T) {
	f := newTestField(800, 600, 24)
	f.Advance(Vec2{})
	// Rendered positions mirror base positions when no ripple is active.
	for i := range f.slots {
		f.slots[i].X = f.slots[i].BaseX
		f.slots[i].Y = f.slots[i].BaseY
	}
	got := f.SlotAt(400, 300)
	if got < 0 {
		t.Fatal("no slot under viewport center")
	}
	if c := f.Slot(got).Coord; c != (Coord{0, 0}) {
		t.Errorf("slot under center has coord %v, want {0 0}", c)
	}
	if f.SlotAt(-5000, -5000) != -1 {
		t.Error("point far outside field should hit no slot")
	}
}

func BenchmarkFieldAdvance(b *testing.B) {
	f := newTestField(1920, 1080, 24)
	view := Vec2{}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.X += 35
		f.Advance(view)
	}
}
