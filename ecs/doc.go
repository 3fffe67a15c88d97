// Package ecs mirrors a canvas scene into a [Donburi] world.
//
// [NewBridge] implements canvas.EventSink. Every registered object becomes an
// entity with [Identity] and [Position] components, kept current as the
// object moves and removed when it is destroyed. The raw lifecycle events are
// also published to [SceneEventType] for systems that want them.
//
// Usage:
//
//	world := donburi.NewWorld()
//	bridge := ecs.NewBridge(world)
//	scene, err := canvas.NewScene(view, canvas.WithEventSink(bridge))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
