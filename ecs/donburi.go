package ecs

import (
	"github.com/xwill007/cursor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for cursor interaction
// events. Subscribe to it in ECS systems to receive hover and select events.
var InteractionEventType = events.NewEventType[cursor.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued and delivered by InteractionEventType.ProcessEvents.
func NewDonburiStore(world donburi.World) cursor.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event cursor.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// OnSelect subscribes fn to select events only.
func OnSelect(world donburi.World, fn func(w donburi.World, e cursor.InteractionEvent)) {
	InteractionEventType.Subscribe(world, func(w donburi.World, e cursor.InteractionEvent) {
		if e.Type == cursor.EventSelect {
			fn(w, e)
		}
	})
}
