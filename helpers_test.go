package canvas

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const eps = 1e-6

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func approxVec(a, b Vec2) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

// newTestScene creates an 800x600 scene over a MemoryView.
func newTestScene(t *testing.T, opts ...Option) (*Scene, *MemoryView) {
	t.Helper()
	view := NewMemoryView(800, 600)
	s, err := NewScene(view, opts...)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s, view
}

// newObservedScene is newTestScene with an in-memory log at the given level.
func newObservedScene(t *testing.T, level zapcore.Level) (*Scene, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(level)
	s, _ := newTestScene(t, WithLogger(zap.New(core)))
	return s, logs
}

// recordingSink collects scene events.
type recordingSink struct {
	events []SceneEvent
}

func (r *recordingSink) EmitEvent(ev SceneEvent) {
	r.events = append(r.events, ev)
}

func (r *recordingSink) count(typ SceneEventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}
