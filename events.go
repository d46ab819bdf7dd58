package arcade

import "slices"

// EventStore is the interface for optional ECS integration.
// When set on a World, every emitted event is forwarded to the ECS.
type EventStore interface {
	EmitEvent(event Event)
}

// Event describes something that happened during a step. Which fields are
// set depends on Type:
//
//   - EventWorldBounds: Body1, Edges (the blocked edges)
//   - EventCollide, EventOverlap: Body1, Body2, Object1, Object2
//   - EventTileCollide, EventTileOverlap: Body1, Tile, Object1, Object2
//   - EventWorldStep, EventPause, EventResume: Step only
type Event struct {
	Type EventType

	Body1 *Body
	Body2 *Body
	Tile  *Tile

	// Object1 and Object2 are what collide callbacks receive: the bodies'
	// sprites, or the bodies themselves when they have no sprite, or the tile.
	Object1 any
	Object2 any

	Edges Edges

	// Step is the world step count when the event fired.
	Step uint64
}

// --- Handler registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers [eventTypeCount][]eventHandler
	nextID   uint32
}

func (r *handlerRegistry) add(typ EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.handlers[typ] = append(r.handlers[typ], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: typ}
}

// CallbackHandle allows removing a registered world callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers[h.event] = s[:len(s)-1]
			return
		}
	}
}

// emit delivers ev to the registered handlers and the event store. Handlers
// registered or removed while ev is being delivered take effect from the
// next event.
func (w *World) emit(ev Event) {
	ev.Step = w.stepCount
	if hs := w.handlers.handlers[ev.Type]; len(hs) > 0 {
		for _, h := range slices.Clone(hs) {
			h.fn(ev)
		}
	}
	if w.store != nil {
		w.store.EmitEvent(ev)
	}
}

// --- World-level event registration ---

// On registers fn for events of the given type.
func (w *World) On(typ EventType, fn func(Event)) CallbackHandle {
	return w.handlers.add(typ, fn)
}

// OnWorldBounds registers a callback for bodies hitting the world bounds.
// Only bodies with OnWorldBounds set emit this event.
func (w *World) OnWorldBounds(fn func(Event)) CallbackHandle {
	return w.handlers.add(EventWorldBounds, fn)
}

// OnCollide registers a callback for body/body collisions.
func (w *World) OnCollide(fn func(Event)) CallbackHandle {
	return w.handlers.add(EventCollide, fn)
}

// OnOverlap registers a callback for body/body overlaps.
func (w *World) OnOverlap(fn func(Event)) CallbackHandle {
	return w.handlers.add(EventOverlap, fn)
}

// OnTileCollide registers a callback for body/tile collisions.
func (w *World) OnTileCollide(fn func(Event)) CallbackHandle {
	return w.handlers.add(EventTileCollide, fn)
}

// OnTileOverlap registers a callback for body/tile overlaps.
func (w *World) OnTileOverlap(fn func(Event)) CallbackHandle {
	return w.handlers.add(EventTileOverlap, fn)
}

// OnWorldStep registers a callback run after every step.
func (w *World) OnWorldStep(fn func(Event)) CallbackHandle {
	return w.handlers.add(EventWorldStep, fn)
}

// OnPause registers a callback for World.Pause.
func (w *World) OnPause(fn func(Event)) CallbackHandle {
	return w.handlers.add(EventPause, fn)
}

// OnResume registers a callback for World.Resume.
func (w *World) OnResume(fn func(Event)) CallbackHandle {
	return w.handlers.add(EventResume, fn)
}

// SetEventStore sets the optional ECS bridge.
func (w *World) SetEventStore(store EventStore) {
	w.store = store
}

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventWorldBounds:
		return "worldbounds"
	case EventCollide:
		return "collide"
	case EventOverlap:
		return "overlap"
	case EventTileCollide:
		return "tilecollide"
	case EventTileOverlap:
		return "tileoverlap"
	case EventWorldStep:
		return "worldstep"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	}
	return "unknown"
}
