package ecs

import (
	"github.com/phanxgames/driftgrid"
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []driftgrid.FieldEvent
	FieldEventType.Subscribe(world, func(w donburi.World, e driftgrid.FieldEvent) {
		received = append(received, e)
	})

	store.EmitEvent(driftgrid.FieldEvent{
		Kind:  driftgrid.EventWrap,
		Slot:  42,
		Coord: driftgrid.Coord{Col: 9, Row: -3},
		Media: driftgrid.MediaItem{ID: "clip-7", Kind: driftgrid.MediaVideo},
	})

	store.EmitEvent(driftgrid.FieldEvent{
		Kind: driftgrid.EventSettle,
	})

	// Events sit queued until processed.
	FieldEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Kind != driftgrid.EventWrap || e0.Slot != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Coord.Col != 9 || e0.Coord.Row != -3 {
		t.Errorf("event 0 coord: (%d,%d)", e0.Coord.Col, e0.Coord.Row)
	}
	if e0.Media.ID != "clip-7" {
		t.Errorf("event 0 media: %+v", e0.Media)
	}

	e1 := received[1]
	if e1.Kind != driftgrid.EventSettle {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEventStore(t *testing.T) {
	world := donburi.NewWorld()
	var store driftgrid.EventStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	FieldEventType.Subscribe(world, func(w donburi.World, e driftgrid.FieldEvent) {
		count1++
	})
	FieldEventType.Subscribe(world, func(w donburi.World, e driftgrid.FieldEvent) {
		count2++
	})

	store.EmitEvent(driftgrid.FieldEvent{Kind: driftgrid.EventSelect, Slot: 3})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
