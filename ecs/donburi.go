// Package ecs provides ECS adapters for bramble.
package ecs

import (
	"github.com/phanxgames/bramble"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for bramble interaction
// events. Subscribe to this in your ECS systems to receive pointer, drag,
// focus, and keyboard events.
var InteractionEventType = events.NewEventType[bramble.InteractionEvent]()

type donburiSink struct {
	world donburi.World
	types map[bramble.EventType]bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents. When types are given,
// only events of those types are published.
func NewDonburiSink(world donburi.World, types ...bramble.EventType) bramble.EventSink {
	s := &donburiSink{world: world}
	if len(types) > 0 {
		s.types = make(map[bramble.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *donburiSink) EmitEvent(event bramble.InteractionEvent) {
	if s.types != nil && !s.types[event.Type] {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
