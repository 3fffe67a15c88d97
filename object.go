package canvas

import (
	"slices"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// CollisionHandler is invoked with the subscribing object and the object whose
// bounds overlap it.
type CollisionHandler func(self, other *Object)

// Function is a host-defined callback stored on an object by name.
type Function func(o *Object, args ...any) any

// Node is the capability shared by ordinary objects and the camera: an
// identity and a logical position that can be set or moved over time.
// It is implemented only by *Object and *Camera.
type Node interface {
	ID() string
	Position() Vec2
	Moving() bool
	node()
}

// Object is a placeable, movable, collidable scene node.
//
// Objects are created by Scene.CreateObject or Object.CreateChild and are
// single-threaded like the rest of the scene. Every setter returns the
// receiver so calls can be chained. Once destroyed, an object ignores all
// mutators.
type Object struct {
	body

	id     string
	viewID string
	scene  *Scene
	parent *Object

	children []*Object
	size     Size

	tags       []string
	handlers   map[string]CollisionHandler
	subscribed []string // collision tags in subscription order

	vars  map[string]any
	funcs map[string]Function

	inputSubs map[EventType]Subscription

	onDestroy func(*Object)
	onArrive  func(*Object)

	destroyed bool
	dying     bool
}

func newObject(s *Scene, id string, parent *Object) *Object {
	o := &Object{
		id:     id,
		viewID: id,
		scene:  s,
		parent: parent,
		size:   s.defaultSize,
	}
	if parent != nil {
		o.viewID = parent.viewID + "/" + id
	}
	return o
}

func (o *Object) node() {}

// ID returns the object's identity. It never changes after creation.
func (o *Object) ID() string { return o.id }

// Scene returns the scene that created the object.
func (o *Object) Scene() *Scene { return o.scene }

// Parent returns the parent object for children, or nil for top-level objects.
func (o *Object) Parent() *Object { return o.parent }

// Children returns the object's children. The returned slice MUST NOT be
// mutated by the caller.
func (o *Object) Children() []*Object { return o.children }

// Position returns the logical position. For children it is relative to the
// parent's origin.
func (o *Object) Position() Vec2 { return o.pos }

// ScenePosition returns the position in scene space: the local position plus
// every ancestor's position.
func (o *Object) ScenePosition() Vec2 {
	p := o.pos
	for a := o.parent; a != nil; a = a.parent {
		p = p.Add(a.pos)
	}
	return p
}

// ViewPosition returns where the object's center appears in the viewport,
// after the camera pan.
func (o *Object) ViewPosition() Vec2 {
	return Project(o.ScenePosition(), o.scene.size, o.scene.camera.pos)
}

// Size returns the object's bounding size.
func (o *Object) Size() Size { return o.size }

// Bounds returns the scene-space bounding rectangle centered on the object.
func (o *Object) Bounds() Rect {
	return Rect{Center: o.ScenePosition(), Size: o.size}
}

// Moving reports whether a movement is in flight.
func (o *Object) Moving() bool { return o.motion != nil }

// Movement returns a copy of the active movement.
func (o *Object) Movement() (Movement, bool) {
	if o.motion == nil {
		return Movement{}, false
	}
	return *o.motion, true
}

// Destroyed reports whether Destroy has been called.
func (o *Object) Destroyed() bool { return o.destroyed }

// Registered reports whether the object is reachable through the scene's
// directory. Children are never registered.
func (o *Object) Registered() bool {
	return o.parent == nil && o.scene.objects[o.id] == o
}

// alive reports whether the object still accepts mutation.
func (o *Object) alive(op string) bool {
	if o.destroyed {
		o.scene.debugCheckDestroyed(o, op)
		return false
	}
	return true
}

// --- Position & movement ---

// SetPosition places the object at (x, y) immediately, cancelling any active
// movement, and runs a collision sweep.
func (o *Object) SetPosition(x, y float64) *Object {
	if !o.alive("SetPosition") {
		return o
	}
	o.place(Vec2{x, y})
	o.moved()
	return o
}

// MoveTo starts a linear movement toward (x, y) at speed units per second,
// replacing any movement in flight. A non-positive speed or a target equal
// to the current position is ignored.
func (o *Object) MoveTo(x, y, speed float64) *Object {
	return o.MoveToEased(x, y, speed, nil)
}

// MoveToEased is MoveTo with progress shaped by an easing function. The
// duration is the same as the linear movement; nil means linear.
func (o *Object) MoveToEased(x, y, speed float64, fn ease.TweenFunc) *Object {
	if !o.alive("MoveTo") {
		return o
	}
	if !o.startMove(Vec2{x, y}, speed, fn) {
		o.scene.log.Debug("ignored movement",
			zap.String("id", o.id), zap.Float64("x", x), zap.Float64("y", y), zap.Float64("speed", speed))
	}
	return o
}

// MoveInDirection moves distance units along angleDegrees (0 is up, 90 is
// right, clockwise) at speed units per second.
func (o *Object) MoveInDirection(angleDegrees, distance, speed float64) *Object {
	target := o.pos.Add(Direction(angleDegrees).Scale(distance))
	return o.MoveTo(target.X, target.Y, speed)
}

// StopMovement cancels the active movement without changing position.
func (o *Object) StopMovement() *Object {
	if !o.alive("StopMovement") {
		return o
	}
	o.motion = nil
	return o
}

// SetSize sets the bounding size used for placement and collision.
func (o *Object) SetSize(width, height float64) *Object {
	if !o.alive("SetSize") {
		return o
	}
	o.size = Size{width, height}
	o.render()
	return o
}

// OnArrive sets a callback fired when a movement reaches its target. It does
// not fire when a movement is stopped or replaced.
func (o *Object) OnArrive(fn func(*Object)) *Object {
	if !o.alive("OnArrive") {
		return o
	}
	o.onArrive = fn
	return o
}

// tick advances the object's movement and its children's by dt. Collision
// sweeps are left to the frame's sweep pass.
func (o *Object) tick(dt float64) {
	if o.destroyed {
		return
	}
	if o.motion != nil {
		o.scene.stats.movements++
	}
	moved, arrived := o.step(dt)
	if moved {
		o.relocated()
	}
	if arrived && !o.destroyed && o.onArrive != nil {
		o.onArrive(o)
	}
	if len(o.children) == 0 || o.destroyed {
		return
	}
	for _, c := range slices.Clone(o.children) {
		c.tick(dt)
	}
}

// sweepTree runs the collision sweep for the object and its children.
func (o *Object) sweepTree() {
	if o.destroyed {
		return
	}
	o.scene.sweep(o)
	if len(o.children) == 0 || o.destroyed {
		return
	}
	for _, c := range slices.Clone(o.children) {
		c.sweepTree()
	}
}

// moved propagates an immediate position change to the view, the event sink
// and the collision detector.
func (o *Object) moved() {
	o.relocated()
	o.scene.sweep(o)
}

// relocated hands the new position to the view and the event sink.
func (o *Object) relocated() {
	o.render()
	if o.Registered() {
		p := o.pos
		o.scene.emit(SceneEvent{Type: SceneObjectMoved, ID: o.id, X: p.X, Y: p.Y})
	}
}

// render hands the object and its subtree to the view.
func (o *Object) render() {
	s := o.scene
	s.view.Place(o.viewID, LogicalToView(o.ScenePosition(), s.size), o.size)
	for _, c := range o.children {
		if !c.destroyed {
			c.render()
		}
	}
}

// --- Tags & collision ---

// AddTag marks the object with tag so that other objects subscribed to tag
// can detect it.
func (o *Object) AddTag(tag string) *Object {
	if !o.alive("AddTag") || o.HasTag(tag) {
		return o
	}
	o.tags = append(o.tags, tag)
	if o.Registered() {
		o.scene.index(o, tag)
	}
	return o
}

// RemoveTag removes tag from the object. Collision subscriptions for tag are
// kept.
func (o *Object) RemoveTag(tag string) *Object {
	if !o.alive("RemoveTag") {
		return o
	}
	i := slices.Index(o.tags, tag)
	if i < 0 {
		return o
	}
	o.tags = slices.Delete(o.tags, i, i+1)
	o.scene.unindex(o, tag)
	return o
}

// HasTag reports whether the object carries tag.
func (o *Object) HasTag(tag string) bool {
	return slices.Contains(o.tags, tag)
}

// Tags returns the object's tags in the order they were added. The returned
// slice MUST NOT be mutated.
func (o *Object) Tags() []string { return o.tags }

// OnCollision registers fn to run whenever the object's bounds overlap a
// registered object tagged tag. A later registration for the same tag
// replaces the earlier one. The object also adopts tag, so objects subscribed
// to the same tag detect it in turn.
func (o *Object) OnCollision(tag string, fn CollisionHandler) *Object {
	if fn == nil {
		panic("canvas: nil collision handler")
	}
	if !o.alive("OnCollision") {
		return o
	}
	if o.handlers == nil {
		o.handlers = make(map[string]CollisionHandler)
	}
	if _, ok := o.handlers[tag]; !ok {
		o.subscribed = append(o.subscribed, tag)
	}
	o.handlers[tag] = fn
	return o.AddTag(tag)
}

// OffCollision removes the collision handler for tag. The tag itself stays on
// the object.
func (o *Object) OffCollision(tag string) *Object {
	if !o.alive("OffCollision") {
		return o
	}
	if _, ok := o.handlers[tag]; !ok {
		return o
	}
	delete(o.handlers, tag)
	if i := slices.Index(o.subscribed, tag); i >= 0 {
		o.subscribed = slices.Delete(o.subscribed, i, i+1)
	}
	return o
}

// CollisionTags returns the tags the object has subscribed to, in
// subscription order. The returned slice MUST NOT be mutated.
func (o *Object) CollisionTags() []string { return o.subscribed }

// --- Variable & function stores ---

// SetVariable stores value under key.
func (o *Object) SetVariable(key string, value any) *Object {
	if !o.alive("SetVariable") {
		return o
	}
	if o.vars == nil {
		o.vars = make(map[string]any)
	}
	o.vars[key] = value
	return o
}

// GetVariable returns the value stored under key.
func (o *Object) GetVariable(key string) (any, bool) {
	v, ok := o.vars[key]
	return v, ok
}

// CreateFunction stores fn under name, replacing any previous function.
func (o *Object) CreateFunction(name string, fn Function) *Object {
	if !o.alive("CreateFunction") {
		return o
	}
	if o.funcs == nil {
		o.funcs = make(map[string]Function)
	}
	o.funcs[name] = fn
	return o
}

// CallFunction invokes the function stored under name. A missing name is a
// no-op and reports false.
func (o *Object) CallFunction(name string, args ...any) (any, bool) {
	fn, ok := o.funcs[name]
	if !ok || fn == nil {
		return nil, false
	}
	return fn(o, args...), true
}

// --- Input ---

// OnClick registers fn for clicks on the object, replacing any earlier click
// handler.
func (o *Object) OnClick(fn func(InputEvent)) *Object {
	return o.onInput(EventClick, fn)
}

// OnPointerEnter registers fn for the pointer entering the object's bounds.
func (o *Object) OnPointerEnter(fn func(InputEvent)) *Object {
	return o.onInput(EventPointerEnter, fn)
}

// OnPointerLeave registers fn for the pointer leaving the object's bounds.
func (o *Object) OnPointerLeave(fn func(InputEvent)) *Object {
	return o.onInput(EventPointerLeave, fn)
}

func (o *Object) onInput(kind EventType, fn func(InputEvent)) *Object {
	if !o.alive(kind.String() + " handler") {
		return o
	}
	if old, ok := o.inputSubs[kind]; ok {
		old.Remove()
	}
	if fn == nil {
		delete(o.inputSubs, kind)
		return o
	}
	if o.inputSubs == nil {
		o.inputSubs = make(map[EventType]Subscription)
	}
	o.inputSubs[kind] = o.scene.On(kind, o.viewID, fn)
	return o
}

// --- Hierarchy & lifecycle ---

// CreateChild creates an object anchored to this one. The child's position is
// relative to this object's origin and it moves rigidly with it, but it is not
// registered in the scene directory: it is only reachable through its parent.
// An empty id generates one. Reusing a sibling's id returns that sibling.
func (o *Object) CreateChild(id string) *Object {
	if id == "" {
		id = uuid.NewString()
	}
	if !o.alive("CreateChild") {
		c := newObject(o.scene, id, nil)
		c.destroyed = true
		return c
	}
	for _, c := range o.children {
		if c.id == id {
			o.scene.warnDuplicate(c.viewID)
			return c
		}
	}
	c := newObject(o.scene, id, o)
	o.children = append(o.children, c)
	c.render()
	return c
}

// OnDestroy sets the callback invoked at the start of Destroy. The object is
// still alive while the callback runs, so it may record final state on
// itself.
func (o *Object) OnDestroy(fn func(*Object)) *Object {
	if !o.alive("OnDestroy") {
		return o
	}
	o.onDestroy = fn
	return o
}

// Destroy invokes the destroy callback, destroys children, clears collision
// subscriptions, unregisters the object and removes its visual. Calling it
// again is a no-op.
func (o *Object) Destroy() {
	if o.destroyed || o.dying {
		return
	}
	o.dying = true
	if o.onDestroy != nil {
		o.onDestroy(o)
	}
	o.destroyed = true
	o.motion = nil
	for _, c := range slices.Clone(o.children) {
		c.Destroy()
	}
	o.children = nil
	o.handlers = nil
	o.subscribed = nil
	for _, sub := range o.inputSubs {
		sub.Remove()
	}
	o.inputSubs = nil
	o.funcs = nil
	o.onDestroy = nil
	o.onArrive = nil

	s := o.scene
	if s.hover == o {
		s.hover = nil
	}
	if o.parent != nil {
		o.parent.removeChild(o)
	} else {
		s.release(o)
	}
	s.view.Remove(o.viewID)
}

func (o *Object) removeChild(c *Object) {
	if i := slices.Index(o.children, c); i >= 0 {
		o.children = slices.Delete(o.children, i, i+1)
	}
}
