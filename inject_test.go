package driftgrid

import "testing"

func TestInjectClickSelects(t *testing.T) {
	e, _, store := newReadyEngine(testItems(40))

	e.InjectClick(400, 300)
	if len(e.inject) != 2 {
		t.Fatalf("queue = %d events, want 2", len(e.inject))
	}
	e.Step(stepDT) // press
	e.Step(stepDT) // release
	if got := store.count(EventSelect); got != 1 {
		t.Errorf("select events = %d, want 1", got)
	}
	if len(e.inject) != 0 {
		t.Errorf("queue not drained: %d left", len(e.inject))
	}
}

func TestInjectDragConsumesOneEventPerStep(t *testing.T) {
	e, _, _ := newReadyEngine(testItems(40))

	e.InjectDrag(400, 300, 700, 300, 5)
	if len(e.inject) != 5 {
		t.Fatalf("queue = %d events, want 5", len(e.inject))
	}
	for want := 4; want >= 0; want-- {
		e.Step(stepDT)
		if len(e.inject) != want {
			t.Fatalf("queue = %d after step, want %d", len(e.inject), want)
		}
	}
	if !e.pan.Inertial() {
		t.Error("injected drag did not fling on release")
	}
}

func TestInjectFlingCoasts(t *testing.T) {
	e, _, _ := newReadyEngine(testItems(40))

	e.InjectFling(700, 300, 200, 300)
	if len(e.inject) != 4 {
		t.Fatalf("queue = %d events, want 4", len(e.inject))
	}
	for i := 0; i < 4; i++ {
		e.Step(stepDT)
	}
	if !e.pan.Inertial() {
		t.Error("fling did not coast on release")
	}
	if e.Speed() < DefaultConfig().MinFlingSpeed {
		t.Errorf("release speed = %.0f, want at least %.0f", e.Speed(), DefaultConfig().MinFlingSpeed)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	e, _, _ := newReadyEngine(testItems(40))

	e.InjectDrag(100, 100, 200, 200, 0)
	if len(e.inject) != 2 {
		t.Errorf("queue = %d events, want press + release", len(e.inject))
	}
}

func TestInjectDragInterpolatesMoves(t *testing.T) {
	e, _, _ := newReadyEngine(testItems(40))

	e.InjectDrag(100, 300, 500, 300, 6)
	if len(e.inject) != 6 {
		t.Fatalf("queue = %d events, want 6", len(e.inject))
	}
	// press, four moves at 1/5..4/5, release
	wantX := []float64{100, 180, 260, 340, 420, 500}
	for i, ev := range e.inject {
		if !approxEqual(ev.x, wantX[i], epsilon) {
			t.Errorf("event %d at x=%v, want %v", i, ev.x, wantX[i])
		}
	}
}

func TestInjectIgnoredWhileGated(t *testing.T) {
	sink := NewRecordingSink()
	store := &recordingStore{}
	e := New(NewCatalog(testItems(24)), sink, DefaultConfig())
	e.SetEventStore(store)
	e.SetViewport(800, 600)
	e.Step(stepDT) // bind

	// Events are consumed on schedule but the gated engine discards them.
	e.InjectClick(400, 300)
	e.Step(stepDT)
	e.Step(stepDT)
	if len(e.inject) != 0 {
		t.Errorf("queue not drained while gated: %d left", len(e.inject))
	}
	if got := store.count(EventSelect); got != 0 {
		t.Errorf("gated click selected a tile")
	}
}
