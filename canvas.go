package canvas

import "math"

// Vec2 is a 2D vector used for positions, offsets and directions throughout
// the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by f on both axes.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return o.Sub(v).Len() }

// Size is a width/height pair in scene units.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle described by its center and size.
// Logical coordinates have +Y up, so Max is the top-right corner.
type Rect struct {
	Center Vec2
	Size   Size
}

// Min returns the bottom-left corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.Center.X - r.Size.Width/2, r.Center.Y - r.Size.Height/2}
}

// Max returns the top-right corner.
func (r Rect) Max() Vec2 {
	return Vec2{r.Center.X + r.Size.Width/2, r.Center.Y + r.Size.Height/2}
}

// Contains reports whether p lies inside the rectangle. Points on the edge
// are considered inside.
func (r Rect) Contains(p Vec2) bool {
	return math.Abs(p.X-r.Center.X) <= r.Size.Width/2 &&
		math.Abs(p.Y-r.Center.Y) <= r.Size.Height/2
}

// Overlaps reports whether r and other overlap. Rectangles sharing only an
// edge overlap.
func (r Rect) Overlaps(other Rect) bool {
	return math.Abs(r.Center.X-other.Center.X) <= (r.Size.Width+other.Size.Width)/2 &&
		math.Abs(r.Center.Y-other.Center.Y) <= (r.Size.Height+other.Size.Height)/2
}

// EventType identifies a kind of input event routed through the scene's
// subscription table.
type EventType uint8

const (
	EventPointerMove  EventType = iota // pointer observed at a new viewport position
	EventPointerDown                   // pointer button pressed
	EventPointerUp                     // pointer button released
	EventClick                         // press then release over the same target
	EventPointerEnter                  // pointer entered an object's bounds
	EventPointerLeave                  // pointer left an object's bounds
	EventKeyDown                       // key pressed (pass-through)
	EventKeyUp                         // key released (pass-through)
)

var eventTypeNames = [...]string{
	EventPointerMove:  "pointer-move",
	EventPointerDown:  "pointer-down",
	EventPointerUp:    "pointer-up",
	EventClick:        "click",
	EventPointerEnter: "pointer-enter",
	EventPointerLeave: "pointer-leave",
	EventKeyDown:      "key-down",
	EventKeyUp:        "key-up",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// SceneEventType identifies a lifecycle notification sent to an EventSink.
type SceneEventType uint8

const (
	SceneObjectCreated   SceneEventType = iota // object registered in the directory
	SceneObjectMoved                           // registered object changed position
	SceneObjectDestroyed                       // registered object destroyed
	SceneCollision                             // a subscribed sweep found an overlap
)
