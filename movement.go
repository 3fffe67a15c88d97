package canvas

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Movement is an in-flight linear relocation from Start to Target at Speed
// scene units per second. Duration is fixed when the movement is created.
type Movement struct {
	Start    Vec2
	Target   Vec2
	Speed    float64
	Duration float64
	Elapsed  float64

	// easing shapes progress when non-nil; nil is linear.
	easing ease.TweenFunc
}

// NewMovement returns a movement from start to target at speed. It reports
// false when speed is not positive (or not finite) or start equals target.
func NewMovement(start, target Vec2, speed float64) (*Movement, bool) {
	return newMovement(start, target, speed, nil)
}

func newMovement(start, target Vec2, speed float64, fn ease.TweenFunc) (*Movement, bool) {
	if !(speed > 0) || math.IsInf(speed, 1) {
		return nil, false
	}
	dist := start.Dist(target)
	if dist == 0 || math.IsNaN(dist) {
		return nil, false
	}
	return &Movement{
		Start:    start,
		Target:   target,
		Speed:    speed,
		Duration: dist / speed,
		easing:   fn,
	}, true
}

// At returns the position elapsed seconds into the movement and whether the
// movement is complete. Once elapsed reaches Duration the result is exactly
// Target. Before that each axis is interpolated independently with
// t = elapsed/Duration.
func (m *Movement) At(elapsed float64) (Vec2, bool) {
	if elapsed >= m.Duration {
		return m.Target, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	t := m.progress(elapsed)
	return Vec2{
		X: m.Start.X + (m.Target.X-m.Start.X)*t,
		Y: m.Start.Y + (m.Target.Y-m.Start.Y)*t,
	}, false
}

// Progress returns the fraction of the movement's duration that has elapsed,
// in [0, 1].
func (m *Movement) Progress() float64 {
	if m.Elapsed >= m.Duration {
		return 1
	}
	if m.Elapsed <= 0 {
		return 0
	}
	return m.Elapsed / m.Duration
}

// Remaining returns the seconds left until arrival.
func (m *Movement) Remaining() float64 {
	return math.Max(0, m.Duration-m.Elapsed)
}

func (m *Movement) progress(elapsed float64) float64 {
	if m.easing == nil {
		return elapsed / m.Duration
	}
	return float64(m.easing(float32(elapsed), 0, 1, float32(m.Duration)))
}

// advance moves the clock forward by dt and returns the new position.
func (m *Movement) advance(dt float64) (Vec2, bool) {
	if dt > 0 {
		m.Elapsed += dt
	}
	return m.At(m.Elapsed)
}

// body is the position and movement state shared by objects and the camera.
type body struct {
	pos    Vec2
	motion *Movement
}

// place sets the position immediately and clears any active movement.
func (b *body) place(p Vec2) {
	b.motion = nil
	b.pos = p
}

// startMove replaces the active movement with one toward target. Reports
// false, leaving state untouched, when the parameters are invalid.
func (b *body) startMove(target Vec2, speed float64, fn ease.TweenFunc) bool {
	m, ok := newMovement(b.pos, target, speed, fn)
	if !ok {
		return false
	}
	b.motion = m
	return true
}

// step advances the active movement by dt. moved reports whether the
// position was updated; arrived reports whether the movement finished.
func (b *body) step(dt float64) (moved, arrived bool) {
	if b.motion == nil {
		return false, false
	}
	p, done := b.motion.advance(dt)
	b.pos = p
	if done {
		b.motion = nil
	}
	return true, done
}
