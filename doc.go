// Package canvas is a retained-mode 2D scene layer: a registry of named
// objects inside a rectangular viewport, with a camera that pans the whole
// scene, time-based linear movement and tag-based collision notification.
//
// The package tracks logical state only. Drawing is delegated to a [View]
// (see the ebitenview sub-package for an Ebitengine implementation), input
// arrives through [Scene.ObservePointer], [Scene.Click] and [Scene.KeyDown],
// and a frame scheduler calls [Scene.AdvanceFrame] once per display refresh.
//
// # Quick start
//
//	view := canvas.NewMemoryView(800, 600)
//	scene, err := canvas.NewScene(view, canvas.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	hero := scene.CreateObject("hero").SetPosition(-100, 0)
//	hero.MoveTo(100, 0, 50) // two seconds at 50 units/s
//	for range 120 {
//		scene.AdvanceFrame(1.0 / 60)
//	}
//
// # Coordinates
//
// Logical coordinates have their origin at the viewport center with +X right
// and +Y up. Views receive presentation coordinates (origin top-left, +Y down)
// and a single container pan derived from the camera position, so panning the
// camera right moves every node left. Directions use degrees with 0 up and
// 90 right, increasing clockwise.
//
// # Collisions
//
// [Object.OnCollision] subscribes an object to a tag and tags the object
// itself, so two objects subscribed to the same tag detect each other
// independently. Every position change re-runs the subscribed object's sweep
// and re-notifies every overlap; there is no enter/stay distinction.
//
// # Lifecycle
//
// Top-level objects live in the scene directory until [Object.Destroy] or
// [Scene.Shutdown]. Children created with [Object.CreateChild] move with their
// parent but are only reachable through it.
package canvas
