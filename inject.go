package canvas

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticClick
	syntheticKeyDown
	syntheticKeyUp
)

// syntheticEvent represents a single injected input event. Pointer events use
// viewport-relative coordinates, the same space the input layer delivers.
type syntheticEvent struct {
	kind   syntheticKind
	vx, vy float64
	key    string
}

// InjectPointer queues a pointer observation at viewport position (x, y).
// Injected events are consumed one per AdvanceFrame, before movements
// advance.
func (s *Scene) InjectPointer(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticPointer, vx: x, vy: y})
}

// InjectClick queues a click at viewport position (x, y).
func (s *Scene) InjectClick(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticClick, vx: x, vy: y})
}

// InjectKey queues a key press (down) or release (!down).
func (s *Scene) InjectKey(key string, down bool) {
	kind := syntheticKeyUp
	if down {
		kind = syntheticKeyDown
	}
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: kind, key: key})
}

// InjectPath queues pointer observations linearly interpolated from
// (fromX, fromY) to (toX, toY) over frames frames. Minimum frames is 2.
func (s *Scene) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectPointer(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of injected events not yet consumed.
func (s *Scene) Pending() int { return len(s.injectQueue) }

// processInjectedInput pops one event from the inject queue and feeds it
// through the same entry points as the input layer. Reports whether an event
// was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPointer:
		s.ObservePointer(evt.vx, evt.vy)
	case syntheticClick:
		s.Click(evt.vx, evt.vy)
	case syntheticKeyDown:
		s.KeyDown(evt.key)
	case syntheticKeyUp:
		s.KeyUp(evt.key)
	}
	return true
}
