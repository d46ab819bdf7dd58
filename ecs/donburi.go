// Package ecs provides ECS adapters for arcade.
package ecs

import (
	"github.com/phanxgames/arcade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PhysicsEventType is the Donburi event type for arcade world events.
// Subscribe to this in your ECS systems to receive collisions and steps.
var PhysicsEventType = events.NewEventType[arcade.Event]()

// BodyRef links an entity to an arcade body by its stable ID.
type BodyRef struct {
	ID uint32
}

// BodyComponent tags entities that own an arcade body.
var BodyComponent = donburi.NewComponentType[BodyRef]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are published to PhysicsEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) arcade.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event arcade.Event) {
	PhysicsEventType.Publish(s.world, event)
}

// NewBodyEntity creates an entity carrying a BodyComponent for b.
func NewBodyEntity(world donburi.World, b *arcade.Body) donburi.Entity {
	e := world.Create(BodyComponent)
	BodyComponent.SetValue(world.Entry(e), BodyRef{ID: b.ID})
	return e
}

// Involves reports whether the entity's body took part in the event.
func Involves(entry *donburi.Entry, event arcade.Event) bool {
	if !entry.HasComponent(BodyComponent) {
		return false
	}
	id := BodyComponent.Get(entry).ID
	return (event.Body1 != nil && event.Body1.ID == id) ||
		(event.Body2 != nil && event.Body2.ID == id)
}
