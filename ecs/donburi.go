// Package ecs provides ECS adapters for driftgrid.
package ecs

import (
	"github.com/phanxgames/driftgrid"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FieldEventType is the Donburi event type for driftgrid field events.
// Subscribe to this in your ECS systems to receive wrap, select, settle,
// intro-done, and rebuild events.
var FieldEventType = events.NewEventType[driftgrid.FieldEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Field events are published to FieldEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) driftgrid.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event driftgrid.FieldEvent) {
	FieldEventType.Publish(s.world, event)
}
