package ecs

import (
	canvas "github.com/JusticeDevHub/canvas-engine"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/features/math"
)

// IdentityData names the scene object an entity mirrors.
type IdentityData struct {
	ID string
}

var (
	// Identity holds the scene object id of a mirrored entity.
	Identity = donburi.NewComponentType[IdentityData]()
	// Position holds the last logical position reported for the object.
	Position = donburi.NewComponentType[math.Vec2]()
)

// SceneEventType is the Donburi event type for scene lifecycle events.
// Subscribe to this in your ECS systems to react to creation, movement,
// destruction and collisions.
var SceneEventType = events.NewEventType[canvas.SceneEvent]()

// Bridge mirrors registered scene objects into a Donburi world. Each object
// gets an entity carrying Identity and Position; the entity is removed when
// the object is destroyed. Every event is also published to SceneEventType.
type Bridge struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewBridge creates a Bridge backed by world. Pass it to the scene with
// canvas.WithEventSink or Scene.SetEventSink.
func NewBridge(world donburi.World) *Bridge {
	return &Bridge{
		world:    world,
		entities: make(map[string]donburi.Entity),
	}
}

// EmitEvent implements canvas.EventSink.
func (b *Bridge) EmitEvent(event canvas.SceneEvent) {
	switch event.Type {
	case canvas.SceneObjectCreated:
		b.create(event)
	case canvas.SceneObjectMoved:
		if entry := b.entry(event.ID); entry != nil {
			Position.SetValue(entry, math.Vec2{X: event.X, Y: event.Y})
		}
	case canvas.SceneObjectDestroyed:
		if e, ok := b.entities[event.ID]; ok {
			if b.world.Valid(e) {
				b.world.Remove(e)
			}
			delete(b.entities, event.ID)
		}
	}
	SceneEventType.Publish(b.world, event)
}

// Entity returns the entity mirroring the object id.
func (b *Bridge) Entity(id string) (donburi.Entity, bool) {
	e, ok := b.entities[id]
	if !ok || !b.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}

// Len returns the number of mirrored objects.
func (b *Bridge) Len() int { return len(b.entities) }

func (b *Bridge) create(event canvas.SceneEvent) {
	if old, ok := b.entities[event.ID]; ok && b.world.Valid(old) {
		b.world.Remove(old)
	}
	e := b.world.Create(Identity, Position)
	entry := b.world.Entry(e)
	Identity.SetValue(entry, IdentityData{ID: event.ID})
	Position.SetValue(entry, math.Vec2{X: event.X, Y: event.Y})
	b.entities[event.ID] = e
}

func (b *Bridge) entry(id string) *donburi.Entry {
	e, ok := b.entities[id]
	if !ok || !b.world.Valid(e) {
		return nil
	}
	return b.world.Entry(e)
}
