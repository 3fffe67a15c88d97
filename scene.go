package canvas

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventSink receives scene lifecycle notifications. When set on a Scene,
// object creation, movement, destruction and collision matches are forwarded
// to it, typically to mirror the scene into an ECS world.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// SceneEvent carries lifecycle data for an EventSink.
type SceneEvent struct {
	Type SceneEventType
	ID   string
	// OtherID and Tag are set for SceneCollision.
	OtherID string
	Tag     string
	// X and Y are the logical position of ID after the event.
	X, Y float64
}

// defaultObjectSize is the bounding size given to new objects unless
// WithDefaultSize says otherwise.
var defaultObjectSize = Size{50, 50}

// Option configures a Scene at construction.
type Option func(*Scene)

// WithLogger sets the logger used for warnings and diagnostics. The default
// discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scene) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefaultSize sets the bounding size of newly created objects.
func WithDefaultSize(width, height float64) Option {
	return func(s *Scene) { s.defaultSize = Size{width, height} }
}

// WithEventSink sets the lifecycle event sink.
func WithEventSink(sink EventSink) Option {
	return func(s *Scene) { s.sink = sink }
}

// WithDebug enables debug mode from construction.
func WithDebug(enabled bool) Option {
	return func(s *Scene) { s.debug = enabled }
}

// Scene is the object registry bound to one viewport. It owns the camera and
// the directory of top-level objects, creates objects, and advances their
// movements once per frame.
//
// A Scene is not safe for concurrent use. All calls, including input
// observation, must come from the goroutine driving AdvanceFrame.
type Scene struct {
	view View
	size Size

	camera   *Camera
	objects  map[string]*Object
	order    []*Object
	tagIndex map[string][]*Object
	frameBuf []*Object

	log       *zap.Logger
	sink      EventSink
	onError   func(error)
	onWarning func(error)

	defaultSize Size
	debug       bool
	closed      bool

	// Input state
	handlers    handlerRegistry
	pointer     Vec2 // last observed viewport-relative position
	pointerSeen bool
	hover       *Object
	injectQueue []syntheticEvent
	inputScript *InputScript

	frame uint64
	stats frameStats
}

// NewScene binds a scene to view. It returns ErrNoView when view is nil or
// reports a non-positive size.
func NewScene(view View, opts ...Option) (*Scene, error) {
	if view == nil {
		return nil, ErrNoView
	}
	size := view.Size()
	if !(size.Width > 0) || !(size.Height > 0) {
		return nil, ErrNoView
	}
	s := &Scene{
		view:        view,
		size:        size,
		objects:     make(map[string]*Object),
		tagIndex:    make(map[string][]*Object),
		log:         zap.NewNop(),
		defaultSize: defaultObjectSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.camera = newCamera(s)
	s.camera.moved()
	return s, nil
}

// CreateObject creates and registers an object under id at the origin. If id
// is already registered the existing object is returned unchanged and a
// duplicate-id warning is reported. An empty id generates a fresh one.
func (s *Scene) CreateObject(id string) *Object {
	if id == "" {
		id = uuid.NewString()
	}
	if s.closed {
		s.log.Warn("create on shut down scene", zap.String("id", id))
		o := newObject(s, id, nil)
		o.destroyed = true
		return o
	}
	if o, ok := s.objects[id]; ok {
		s.warnDuplicate(id)
		return o
	}
	o := newObject(s, id, nil)
	s.objects[id] = o
	s.order = append(s.order, o)
	o.render()
	s.emit(SceneEvent{Type: SceneObjectCreated, ID: id})
	return o
}

// GetObject returns the registered object for id.
func (s *Scene) GetObject(id string) (*Object, bool) {
	o, ok := s.objects[id]
	return o, ok
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Objects returns the registered objects in creation order. The slice is a
// copy and may be kept.
func (s *Scene) Objects() []*Object { return slices.Clone(s.order) }

// Len returns the number of registered objects.
func (s *Scene) Len() int { return len(s.order) }

// Size returns the viewport size the scene was bound with.
func (s *Scene) Size() Size { return s.size }

// Frame returns the number of completed AdvanceFrame calls.
func (s *Scene) Frame() uint64 { return s.frame }

// Closed reports whether Shutdown has been called.
func (s *Scene) Closed() bool { return s.closed }

// Unregister removes id from the directory without destroying the object.
// Objects call it as part of Destroy; calling it for an unknown id is a
// no-op.
func (s *Scene) Unregister(id string) {
	o, ok := s.objects[id]
	if !ok {
		return
	}
	delete(s.objects, id)
	if i := slices.Index(s.order, o); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	if s.hover == o {
		s.hover = nil
	}
}

// release drops a destroyed top-level object from the tag index and, if it
// is still registered, from the directory. The destroyed event is emitted
// either way.
func (s *Scene) release(o *Object) {
	for _, tag := range o.tags {
		s.unindex(o, tag)
	}
	if s.objects[o.id] == o {
		s.Unregister(o.id)
	}
	p := o.pos
	s.emit(SceneEvent{Type: SceneObjectDestroyed, ID: o.id, X: p.X, Y: p.Y})
}

// AdvanceFrame runs one frame tick. It steps the input script if one is
// attached, consumes one injected input event,
// advances every registered object's movement by dt seconds, then runs the
// collision sweep of every subscribed object once at its current position,
// then updates the camera. Objects destroyed during the tick are skipped;
// objects created during it take part from the next tick.
func (s *Scene) AdvanceFrame(dt float64) {
	if s.closed {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	s.stats = frameStats{}

	if s.inputScript != nil {
		s.inputScript.step(s)
	}
	s.processInjectedInput()

	s.frameBuf = append(s.frameBuf[:0], s.order...)
	for _, o := range s.frameBuf {
		o.tick(dt)
	}
	for _, o := range s.frameBuf {
		o.sweepTree()
	}
	clear(s.frameBuf)

	s.camera.update(dt)
	s.frame++

	if s.debug {
		s.stats.objects = len(s.order)
		s.debugLog(time.Since(t0))
	}
}

// Shutdown destroys every registered object, clears the directory and
// releases the view. Calling it again is a no-op.
func (s *Scene) Shutdown() {
	if s.closed {
		return
	}
	s.closed = true
	for _, o := range slices.Clone(s.order) {
		o.Destroy()
	}
	clear(s.objects)
	clear(s.tagIndex)
	s.order = nil
	s.frameBuf = nil
	s.camera.cancel()
	s.hover = nil
	s.injectQueue = nil
	s.inputScript = nil
	s.handlers = handlerRegistry{}
	s.view.Detach()
}

// LogicalToView maps a logical point to its on-screen viewport position,
// including the camera pan.
func (s *Scene) LogicalToView(p Vec2) Vec2 {
	return Project(p, s.size, s.camera.pos)
}

// ViewToLogical maps a viewport-relative point (origin top-left) to logical
// scene coordinates, including the camera pan.
func (s *Scene) ViewToLogical(v Vec2) Vec2 {
	return ViewToLogical(v, s.size, s.camera.pos)
}

// ObjectsAt returns the registered objects whose bounds contain the logical
// point p, in creation order.
func (s *Scene) ObjectsAt(p Vec2) []*Object {
	var out []*Object
	for _, o := range s.order {
		if o.Bounds().Contains(p) {
			out = append(out, o)
		}
	}
	return out
}

// topmostAt returns the topmost object containing p. Later registered
// objects are above earlier ones and children are above their parent, later
// children above earlier ones.
func (s *Scene) topmostAt(p Vec2) *Object {
	for i := len(s.order) - 1; i >= 0; i-- {
		if o := hitTree(s.order[i], p); o != nil {
			return o
		}
	}
	return nil
}

func hitTree(o *Object, p Vec2) *Object {
	for i := len(o.children) - 1; i >= 0; i-- {
		if c := hitTree(o.children[i], p); c != nil {
			return c
		}
	}
	if o.Bounds().Contains(p) {
		return o
	}
	return nil
}

// SetEventSink sets the lifecycle event sink.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// OnError sets the handler for detector inconsistencies. When unset they are
// logged at error level.
func (s *Scene) OnError(fn func(error)) {
	s.onError = fn
}

// OnWarning sets an additional handler for non-fatal warnings such as
// duplicate ids. Warnings are always logged.
func (s *Scene) OnWarning(fn func(error)) {
	s.onWarning = fn
}

func (s *Scene) warnDuplicate(id string) {
	s.log.Warn("duplicate object id", zap.String("id", id))
	if s.onWarning != nil {
		s.onWarning(&DuplicateIDError{ID: id})
	}
}

func (s *Scene) emit(ev SceneEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}
