// Package ecs provides ECS adapters for arcade's world events.
//
// The primary adapter is [NewDonburiStore], which bridges arcade events
// (world bounds, collide, overlap, tile collide, step, pause) into a
// [Donburi] world as typed events. Subscribe to [PhysicsEventType] in your
// ECS systems to receive them, and tag entities with [BodyComponent] to match
// events back to them by body ID.
//
// Usage:
//
//	store := ecs.NewDonburiStore(ecsWorld)
//	physicsWorld.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
