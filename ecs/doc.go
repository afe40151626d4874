// Package ecs provides ECS adapters for cursor interaction events.
//
// [NewDonburiStore] bridges hover and select events into a [Donburi] world
// as typed events. Subscribe to [InteractionEventType], or use [OnSelect]
// for selections only.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
