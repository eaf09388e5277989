// Package ecs provides ECS adapters for bramble's interaction events.
//
// The primary adapter is [NewDonburiSink], which bridges bramble interaction
// events (pointer, drag, focus, keyboard) into a [Donburi] world as typed
// events. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	screen.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
