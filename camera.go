package canvas

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CameraID is the identity reported by the scene's camera. The camera is not
// part of the object directory, so the id does not collide with objects.
const CameraID = "camera"

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the distinguished node whose position pans the whole scene.
// It moves like an object but is never drawn; instead its position feeds the
// view's container offset through PanOffset.
type Camera struct {
	body

	scene *Scene

	followTarget *Object
	followLerp   float64

	// BoundsEnabled clamps the camera position to Bounds.
	BoundsEnabled bool
	// Bounds is the logical rectangle the camera center is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	scrollTween *scrollAnim
}

func newCamera(s *Scene) *Camera {
	return &Camera{scene: s}
}

func (c *Camera) node() {}

// ID returns CameraID.
func (c *Camera) ID() string { return CameraID }

// Position returns the camera's logical position.
func (c *Camera) Position() Vec2 { return c.pos }

// Moving reports whether the camera has a movement, scroll or follow active.
func (c *Camera) Moving() bool {
	return c.motion != nil || c.scrollTween != nil || c.followTarget != nil
}

// PanOffset returns the presentation offset applied to the scene container.
func (c *Camera) PanOffset() Vec2 { return PanOffset(c.pos) }

// SetPosition moves the camera immediately, cancelling any movement, scroll
// or follow.
func (c *Camera) SetPosition(x, y float64) *Camera {
	c.cancel()
	c.place(Vec2{x, y})
	c.clamp()
	c.moved()
	return c
}

// MoveTo pans the camera linearly toward (x, y) at speed units per second.
// Invalid parameters are ignored.
func (c *Camera) MoveTo(x, y, speed float64) *Camera {
	if c.startMove(Vec2{x, y}, speed, nil) {
		c.scrollTween = nil
		c.followTarget = nil
	}
	return c
}

// MoveInDirection pans distance units along angleDegrees at speed.
func (c *Camera) MoveInDirection(angleDegrees, distance, speed float64) *Camera {
	target := c.pos.Add(Direction(angleDegrees).Scale(distance))
	return c.MoveTo(target.X, target.Y, speed)
}

// StopMovement cancels any movement, scroll or follow.
func (c *Camera) StopMovement() *Camera {
	c.cancel()
	return c
}

// Follow makes the camera track target with the given lerp factor each frame.
// A lerp of 1 snaps to the target every frame.
func (c *Camera) Follow(target *Object, lerp float64) *Camera {
	c.motion = nil
	c.scrollTween = nil
	c.followTarget = target
	c.followLerp = lerp
	return c
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() *Camera {
	c.followTarget = nil
	return c
}

// ScrollTo animates the camera to (x, y) over duration seconds using easeFn.
// A nil easeFn is linear.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) *Camera {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.motion = nil
	c.followTarget = nil
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.pos.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.pos.Y), float32(y), duration, easeFn),
	}
	return c
}

// SetBounds enables clamping of the camera center to bounds.
func (c *Camera) SetBounds(bounds Rect) *Camera {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clamp()
	return c
}

// ClearBounds disables bounds clamping.
func (c *Camera) ClearBounds() *Camera {
	c.BoundsEnabled = false
	return c
}

func (c *Camera) cancel() {
	c.motion = nil
	c.scrollTween = nil
	c.followTarget = nil
}

// update advances movement, follow and scroll. Called once per frame after
// objects have moved so follow targets are current.
func (c *Camera) update(dt float64) {
	prev := c.pos

	c.step(dt)

	if c.followTarget != nil {
		if c.followTarget.Destroyed() {
			c.followTarget = nil
		} else {
			t := c.followTarget.ScenePosition()
			c.pos.X += (t.X - c.pos.X) * c.followLerp
			c.pos.Y += (t.Y - c.pos.Y) * c.followLerp
		}
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(float32(dt))
			c.pos.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(float32(dt))
			c.pos.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	c.clamp()
	if c.pos != prev {
		c.moved()
	}
}

// clamp restricts the camera center to Bounds when enabled.
func (c *Camera) clamp() {
	if !c.BoundsEnabled {
		return
	}
	lo, hi := c.Bounds.Min(), c.Bounds.Max()
	c.pos.X = math.Max(lo.X, math.Min(c.pos.X, hi.X))
	c.pos.Y = math.Max(lo.Y, math.Min(c.pos.Y, hi.Y))
}

func (c *Camera) moved() {
	if c.scene.closed {
		return
	}
	c.scene.view.Pan(c.PanOffset())
}
