package canvas

import "slices"

// InputEvent carries input data to subscribers.
type InputEvent struct {
	Type EventType
	// Target is the scope the event was routed to: an object's view id, or
	// empty for scene-wide delivery.
	Target string
	// Object is the object under the pointer for object-scoped events.
	Object *Object
	// X and Y are the pointer position in logical scene coordinates.
	X, Y float64
	// ViewX and ViewY are the raw viewport-relative pointer position.
	ViewX, ViewY float64
	// Key identifies the key for EventKeyDown and EventKeyUp.
	Key string
}

// --- Handler registry ---

// subscriptionKey identifies a table entry: what happened and to whom.
// An empty scope means scene-wide.
type subscriptionKey struct {
	kind  EventType
	scope string
}

type inputHandler struct {
	id uint32
	fn func(InputEvent)
}

type handlerRegistry struct {
	entries map[subscriptionKey][]inputHandler
	nextID  uint32
}

func (r *handlerRegistry) add(key subscriptionKey, fn func(InputEvent)) uint32 {
	if r.entries == nil {
		r.entries = make(map[subscriptionKey][]inputHandler)
	}
	r.nextID++
	r.entries[key] = append(r.entries[key], inputHandler{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *handlerRegistry) remove(key subscriptionKey, id uint32) {
	list := r.entries[key]
	i := slices.IndexFunc(list, func(h inputHandler) bool { return h.id == id })
	if i < 0 {
		return
	}
	list = slices.Delete(list, i, i+1)
	if len(list) == 0 {
		delete(r.entries, key)
		return
	}
	r.entries[key] = list
}

// Subscription allows removing a registered input handler.
type Subscription struct {
	id  uint32
	key subscriptionKey
	reg *handlerRegistry
}

// Remove unregisters the handler so it no longer fires. Removing twice is
// harmless.
func (h Subscription) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.key, h.id)
}

// On registers fn for events of kind routed to scope. Scope is an object's
// view id (its ID for registered objects) or empty for every event of that
// kind.
func (s *Scene) On(kind EventType, scope string, fn func(InputEvent)) Subscription {
	if fn == nil {
		panic("canvas: nil input handler")
	}
	key := subscriptionKey{kind, scope}
	return Subscription{id: s.handlers.add(key, fn), key: key, reg: &s.handlers}
}

// Off removes every handler registered for kind and scope.
func (s *Scene) Off(kind EventType, scope string) {
	delete(s.handlers.entries, subscriptionKey{kind, scope})
}

// Dispatch delivers ev to scene-wide handlers for its type, then to handlers
// scoped to ev.Target. Handlers may add or remove subscriptions while being
// dispatched; changes apply from the next event.
func (s *Scene) Dispatch(ev InputEvent) {
	s.deliver(subscriptionKey{ev.Type, ""}, ev)
	if ev.Target != "" {
		s.deliver(subscriptionKey{ev.Type, ev.Target}, ev)
	}
}

func (s *Scene) deliver(key subscriptionKey, ev InputEvent) {
	list := s.handlers.entries[key]
	if len(list) == 0 {
		return
	}
	for _, h := range slices.Clone(list) {
		h.fn(ev)
	}
}

// --- Pointer & keys ---

// ObservePointer records the pointer at viewport-relative (vx, vy), origin
// top-left, and emits EventPointerMove plus enter/leave for the object under
// it. Readers see the position recorded by the most recent call.
func (s *Scene) ObservePointer(vx, vy float64) {
	if s.closed {
		return
	}
	s.pointer = Vec2{vx, vy}
	s.pointerSeen = true
	ev := s.pointerEvent(EventPointerMove)
	s.Dispatch(ev)

	under := s.topmostAt(Vec2{ev.X, ev.Y})
	if under == s.hover {
		return
	}
	prev := s.hover
	s.hover = under
	if prev != nil && !prev.destroyed {
		leave := s.pointerEvent(EventPointerLeave)
		leave.Target, leave.Object = prev.viewID, prev
		s.Dispatch(leave)
	}
	if under != nil {
		enter := s.pointerEvent(EventPointerEnter)
		enter.Target, enter.Object = under.viewID, under
		s.Dispatch(enter)
	}
}

// Click records the pointer at (vx, vy) and emits EventClick scene-wide and
// to the topmost object under it.
func (s *Scene) Click(vx, vy float64) {
	if s.closed {
		return
	}
	s.ObservePointer(vx, vy)
	ev := s.pointerEvent(EventClick)
	if o := s.topmostAt(Vec2{ev.X, ev.Y}); o != nil {
		ev.Target, ev.Object = o.viewID, o
	}
	s.Dispatch(ev)
}

// PointerPosition returns the last observed pointer position in logical
// coordinates, including the camera offset. Before any observation it
// returns the origin.
func (s *Scene) PointerPosition() Vec2 {
	if !s.pointerSeen {
		return Vec2{}
	}
	return s.ViewToLogical(s.pointer)
}

// KeyDown passes a key press through to EventKeyDown subscribers.
func (s *Scene) KeyDown(key string) {
	if s.closed {
		return
	}
	s.Dispatch(InputEvent{Type: EventKeyDown, Key: key})
}

// KeyUp passes a key release through to EventKeyUp subscribers.
func (s *Scene) KeyUp(key string) {
	if s.closed {
		return
	}
	s.Dispatch(InputEvent{Type: EventKeyUp, Key: key})
}

func (s *Scene) pointerEvent(kind EventType) InputEvent {
	p := s.ViewToLogical(s.pointer)
	return InputEvent{
		Type:  kind,
		X:     p.X,
		Y:     p.Y,
		ViewX: s.pointer.X,
		ViewY: s.pointer.Y,
	}
}
