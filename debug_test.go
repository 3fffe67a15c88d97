package canvas

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestDebugFrameLog(t *testing.T) {
	s, logs := newObservedScene(t, zapcore.DebugLevel)
	s.SetDebugMode(true)
	if !s.DebugMode() {
		t.Fatal("DebugMode not set")
	}
	s.CreateObject("a").MoveTo(10, 0, 10).OnCollision("t", func(_, _ *Object) {})
	s.CreateObject("b").AddTag("t")

	s.AdvanceFrame(0.1)
	frames := logs.FilterMessage("frame")
	if frames.Len() != 1 {
		t.Fatalf("frame logs = %d, want 1", frames.Len())
	}
	ctx := frames.All()[0].ContextMap()
	if ctx["objects"] != int64(2) || ctx["movements"] != int64(1) || ctx["collision_checks"] != int64(1) {
		t.Errorf("frame context = %v", ctx)
	}
}

func TestFrameLogOffByDefault(t *testing.T) {
	s, logs := newObservedScene(t, zapcore.DebugLevel)
	s.AdvanceFrame(0.1)
	if logs.FilterMessage("frame").Len() != 0 {
		t.Error("frame stats logged without debug mode")
	}
}

func TestDebugDestroyedMutationWarns(t *testing.T) {
	s, logs := newObservedScene(t, zapcore.WarnLevel)
	a := s.CreateObject("a")
	a.Destroy()

	a.SetPosition(1, 1)
	if logs.Len() != 0 {
		t.Errorf("logged without debug mode: %v", logs.All())
	}

	s.SetDebugMode(true)
	a.SetPosition(1, 1).AddTag("x")
	warns := logs.FilterMessage("mutation of destroyed object ignored")
	if warns.Len() != 2 {
		t.Fatalf("warnings = %d, want 2", warns.Len())
	}
	ctx := warns.All()[0].ContextMap()
	if ctx["op"] != "SetPosition" || ctx["id"] != "a" {
		t.Errorf("context = %v", ctx)
	}
	if a.Position() != (Vec2{}) || a.HasTag("x") {
		t.Error("mutation was applied")
	}
}

func TestIgnoredMovementLoggedAtDebug(t *testing.T) {
	s, logs := newObservedScene(t, zapcore.DebugLevel)
	s.CreateObject("a").MoveTo(5, 5, -1)
	if logs.FilterMessage("ignored movement").Len() != 1 {
		t.Errorf("logs = %v", logs.All())
	}
}

func TestUnresolvedColliderLoggedWithoutHandler(t *testing.T) {
	s, logs := newObservedScene(t, zapcore.ErrorLevel)
	a := s.CreateObject("a")
	s.CreateObject("b").AddTag("t")
	a.OnCollision("t", func(_, _ *Object) {})
	s.Unregister("b")
	a.SetPosition(0, 0)

	entries := logs.FilterMessage("collision detector inconsistency").All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("entries = %v", entries)
	}
}
