// Package ecs provides ECS adapters for driftgrid's field event system.
//
// The primary adapter is [NewDonburiStore], which bridges driftgrid field
// events (wrap, select, settle, intro-done, rebuild) into a [Donburi] world
// as typed events. Subscribe to [FieldEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
