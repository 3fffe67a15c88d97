package canvas

import (
	"testing"
)

// --- Movement through the frame pass ---

func TestMoveToScenario(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a")
	a.MoveTo(100, 0, 50)

	m, ok := a.Movement()
	if !ok || m.Duration != 2 {
		t.Fatalf("Movement = (%+v, %v), want duration 2", m, ok)
	}

	s.AdvanceFrame(1)
	if !approxVec(a.Position(), Vec2{50, 0}) {
		t.Errorf("after 1s Position = %v, want (50, 0)", a.Position())
	}
	if !a.Moving() {
		t.Error("should still be moving after 1s")
	}

	s.AdvanceFrame(1)
	if a.Position() != (Vec2{100, 0}) {
		t.Errorf("after 2s Position = %v, want exactly (100, 0)", a.Position())
	}
	if a.Moving() {
		t.Error("movement should be cleared on arrival")
	}
}

func TestMoveToSmallTicks(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a").SetPosition(0, 0)
	a.MoveTo(0, 60, 60)
	for i := 0; i < 30; i++ {
		s.AdvanceFrame(1.0 / 60)
	}
	if !approxVec(a.Position(), Vec2{0, 30}) {
		t.Errorf("after 0.5s Position = %v, want (0, 30)", a.Position())
	}
	for i := 0; i < 40; i++ {
		s.AdvanceFrame(1.0 / 60)
	}
	if a.Position() != (Vec2{0, 60}) || a.Moving() {
		t.Errorf("Position = %v moving=%v, want (0, 60) at rest", a.Position(), a.Moving())
	}
}

func TestRetargetDiscardsTiming(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a")
	a.MoveTo(100, 0, 50)
	s.AdvanceFrame(1)

	here := a.Position()
	a.MoveTo(here.X, 100, 50)
	m, ok := a.Movement()
	if !ok {
		t.Fatal("re-target should leave an active movement")
	}
	if m.Start != here {
		t.Errorf("Start = %v, want position at re-target %v", m.Start, here)
	}
	if p, _ := m.At(0); p != here {
		t.Errorf("At(0) = %v, want %v", p, here)
	}
	if m.Elapsed != 0 || m.Duration != 2 {
		t.Errorf("Elapsed=%v Duration=%v, want fresh 0/2", m.Elapsed, m.Duration)
	}
}

func TestSetPositionClearsMovement(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a")
	a.MoveTo(100, 0, 50)
	s.AdvanceFrame(0.5)

	a.SetPosition(-20, 5)
	if a.Moving() {
		t.Fatal("SetPosition should clear the movement")
	}
	s.AdvanceFrame(1)
	if a.Position() != (Vec2{-20, 5}) {
		t.Errorf("Position = %v after tick, want (-20, 5)", a.Position())
	}
}

func TestMoveToInvalidIsNoOp(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a").SetPosition(10, 10)

	a.MoveTo(50, 50, 0)
	a.MoveTo(50, 50, -1)
	a.MoveTo(10, 10, 5)
	if a.Moving() {
		t.Error("invalid MoveTo calls should not start a movement")
	}

	a.MoveTo(20, 10, 10)
	a.MoveTo(0, 0, 0)
	m, ok := a.Movement()
	if !ok || m.Target != (Vec2{20, 10}) {
		t.Errorf("invalid MoveTo replaced active movement: %+v", m)
	}
}

func TestMoveInDirection(t *testing.T) {
	cases := []struct {
		angle float64
		want  Vec2
	}{
		{0, Vec2{0, 10}},
		{90, Vec2{10, 0}},
		{180, Vec2{0, -10}},
		{270, Vec2{-10, 0}},
		{-90, Vec2{-10, 0}},
	}
	for _, c := range cases {
		s, _ := newTestScene(t)
		a := s.CreateObject("a")
		a.MoveInDirection(c.angle, 10, 10)
		s.AdvanceFrame(1)
		if !approxVec(a.Position(), c.want) {
			t.Errorf("angle %v: Position = %v, want %v", c.angle, a.Position(), c.want)
		}
	}
}

func TestStopMovementIdempotent(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a")
	a.MoveTo(100, 0, 100)
	s.AdvanceFrame(0.25)
	a.StopMovement().StopMovement()
	if a.Moving() {
		t.Error("StopMovement should clear the movement")
	}
	s.AdvanceFrame(1)
	if !approxVec(a.Position(), Vec2{25, 0}) {
		t.Errorf("Position = %v, want (25, 0)", a.Position())
	}
}

func TestOnArrive(t *testing.T) {
	s, _ := newTestScene(t)
	var arrived int
	a := s.CreateObject("a").OnArrive(func(*Object) { arrived++ })

	a.MoveTo(10, 0, 10)
	s.AdvanceFrame(0.5)
	a.MoveTo(0, 10, 10) // replaced: no arrival
	s.AdvanceFrame(0.1)
	a.StopMovement() // stopped: no arrival
	if arrived != 0 {
		t.Fatalf("arrived = %d before any arrival", arrived)
	}

	a.MoveTo(0, 0, 100)
	s.AdvanceFrame(1)
	s.AdvanceFrame(1)
	if arrived != 1 {
		t.Errorf("arrived = %d, want 1", arrived)
	}
}

func TestMoveToEasedArrives(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a")
	a.MoveToEased(40, 0, 20, nil)
	s.AdvanceFrame(2)
	if a.Position() != (Vec2{40, 0}) {
		t.Errorf("Position = %v, want (40, 0)", a.Position())
	}
}

// --- Placement ---

func TestObjectPlacedInView(t *testing.T) {
	s, view := newTestScene(t)
	a := s.CreateObject("a")

	p, ok := view.Placement("a")
	if !ok {
		t.Fatal("created object should be placed")
	}
	if p.Center != (Vec2{400, 300}) || p.Size != defaultObjectSize {
		t.Errorf("Placement = %+v, want center (400,300) default size", p)
	}

	a.SetPosition(100, 50).SetSize(10, 20)
	p, _ = view.Placement("a")
	if p.Center != (Vec2{500, 250}) || p.Size != (Size{10, 20}) {
		t.Errorf("Placement = %+v, want center (500,250) size 10x20", p)
	}
}

func TestCameraDoesNotMoveNodes(t *testing.T) {
	s, view := newTestScene(t)
	s.CreateObject("a").SetPosition(10, 10)
	s.Camera().SetPosition(300, -200)

	p, _ := view.Placement("a")
	if p.Center != (Vec2{410, 290}) {
		t.Errorf("Placement = %v, want unshifted (410, 290)", p.Center)
	}
	if view.Offset() != (Vec2{-300, -200}) {
		t.Errorf("Offset = %v, want (-300, -200)", view.Offset())
	}
}

func TestViewPositionIncludesPan(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a").SetPosition(10, 10)
	s.Camera().SetPosition(10, 10)
	if a.ViewPosition() != (Vec2{400, 300}) {
		t.Errorf("ViewPosition = %v, want viewport center", a.ViewPosition())
	}
}

// --- Stores ---

func TestVariableStore(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a").SetVariable("hp", 3).SetVariable("name", "hero")

	if v, ok := a.GetVariable("hp"); !ok || v != 3 {
		t.Errorf("GetVariable(hp) = (%v, %v)", v, ok)
	}
	if _, ok := a.GetVariable("missing"); ok {
		t.Error("GetVariable(missing) should report absent")
	}
	a.SetVariable("hp", 2)
	if v, _ := a.GetVariable("hp"); v != 2 {
		t.Errorf("GetVariable(hp) = %v after overwrite, want 2", v)
	}
}

func TestFunctionStore(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a")
	a.CreateFunction("sum", func(o *Object, args ...any) any {
		total := 0
		for _, v := range args {
			total += v.(int)
		}
		return total
	})

	got, ok := a.CallFunction("sum", 1, 2, 3)
	if !ok || got != 6 {
		t.Errorf("CallFunction(sum) = (%v, %v), want (6, true)", got, ok)
	}
	if got, ok := a.CallFunction("missing"); ok || got != nil {
		t.Errorf("CallFunction(missing) = (%v, %v), want (nil, false)", got, ok)
	}
}

func TestTags(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a").AddTag("x").AddTag("y").AddTag("x")
	if len(a.Tags()) != 2 || !a.HasTag("x") || !a.HasTag("y") {
		t.Fatalf("Tags = %v, want [x y]", a.Tags())
	}
	if got := s.ObjectsWithTag("x"); len(got) != 1 || got[0] != a {
		t.Errorf("ObjectsWithTag(x) = %v", got)
	}
	a.RemoveTag("x")
	if a.HasTag("x") || len(s.ObjectsWithTag("x")) != 0 {
		t.Error("RemoveTag should drop the tag and its index entry")
	}
}

// --- Children ---

func TestCreateChildNotRegistered(t *testing.T) {
	s, _ := newTestScene(t)
	p := s.CreateObject("p")
	c := p.CreateChild("c")

	if _, ok := s.GetObject("c"); ok {
		t.Error("child should not be in the directory")
	}
	if c.Parent() != p || len(p.Children()) != 1 {
		t.Error("child should be reachable through its parent")
	}
	if c.Registered() {
		t.Error("child should not report Registered")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestChildMovesWithParent(t *testing.T) {
	s, view := newTestScene(t)
	p := s.CreateObject("p").SetPosition(10, 10)
	c := p.CreateChild("c").SetPosition(5, 0)

	if c.Position() != (Vec2{5, 0}) {
		t.Errorf("child Position = %v, want local (5, 0)", c.Position())
	}
	if c.ScenePosition() != (Vec2{15, 10}) {
		t.Errorf("child ScenePosition = %v, want (15, 10)", c.ScenePosition())
	}

	p.SetPosition(-10, 0)
	pl, ok := view.Placement("p/c")
	if !ok {
		t.Fatal("child should be placed under its path id")
	}
	if pl.Center != LogicalToView(Vec2{-5, 0}, s.Size()) {
		t.Errorf("child placement = %v, want %v", pl.Center, LogicalToView(Vec2{-5, 0}, s.Size()))
	}
	if c.Position() != (Vec2{5, 0}) {
		t.Error("parent movement should not change child's local position")
	}
}

func TestChildMovementTicks(t *testing.T) {
	s, _ := newTestScene(t)
	c := s.CreateObject("p").CreateChild("c")
	c.MoveTo(10, 0, 10)
	s.AdvanceFrame(1)
	if c.Position() != (Vec2{10, 0}) || c.Moving() {
		t.Errorf("child Position = %v moving=%v, want (10, 0) at rest", c.Position(), c.Moving())
	}
}

func TestCreateChildDuplicateReturnsSibling(t *testing.T) {
	s, _ := newTestScene(t)
	p := s.CreateObject("p")
	c1 := p.CreateChild("c")
	c2 := p.CreateChild("c")
	if c1 != c2 || len(p.Children()) != 1 {
		t.Error("duplicate child id should return the existing child")
	}
	if p.CreateChild("").ID() == "" {
		t.Error("empty child id should be generated")
	}
}

// --- Destroy ---

func TestDestroy(t *testing.T) {
	s, view := newTestScene(t)
	var called int
	a := s.CreateObject("a").OnDestroy(func(o *Object) {
		called++
		if o.ID() != "a" {
			t.Errorf("callback got %q", o.ID())
		}
	})
	a.AddTag("t").MoveTo(10, 0, 1)

	a.Destroy()
	a.Destroy()

	if called != 1 {
		t.Errorf("destroy callback called %d times, want 1", called)
	}
	if _, ok := s.GetObject("a"); ok {
		t.Error("destroyed object should be absent from the directory")
	}
	if _, ok := view.Placement("a"); ok {
		t.Error("destroyed object should be removed from the view")
	}
	if a.Moving() || !a.Destroyed() {
		t.Error("destroy should cancel movement and mark destroyed")
	}
	if len(s.ObjectsWithTag("t")) != 0 {
		t.Error("destroy should drop tag index entries")
	}
}

func TestMutatorsAfterDestroyAreNoOps(t *testing.T) {
	s, view := newTestScene(t)
	a := s.CreateObject("a").SetPosition(1, 1)
	a.Destroy()

	a.SetPosition(5, 5).MoveTo(10, 10, 1).AddTag("x").SetVariable("k", 1).SetSize(1, 1)
	a.OnCollision("x", func(_, _ *Object) {})

	if a.Position() != (Vec2{1, 1}) || a.Moving() || a.HasTag("x") {
		t.Error("mutators on a destroyed object should be ignored")
	}
	if _, ok := s.GetObject("a"); ok {
		t.Error("mutation must not resurrect the registry entry")
	}
	if _, ok := view.Placement("a"); ok {
		t.Error("mutation must not re-place the visual")
	}
	if c := a.CreateChild("c"); !c.Destroyed() || len(a.Children()) != 0 {
		t.Error("CreateChild on a destroyed object should return a dead child")
	}
}

func TestDestroyParentDestroysChildren(t *testing.T) {
	s, view := newTestScene(t)
	p := s.CreateObject("p")
	c := p.CreateChild("c")
	gc := c.CreateChild("g")

	p.Destroy()
	if !c.Destroyed() || !gc.Destroyed() {
		t.Error("children should be destroyed with the parent")
	}
	if len(view.IDs()) != 0 {
		t.Errorf("view still holds %v", view.IDs())
	}
}

func TestDestroyChildOnly(t *testing.T) {
	s, _ := newTestScene(t)
	p := s.CreateObject("p")
	c := p.CreateChild("c")
	c.Destroy()
	if len(p.Children()) != 0 {
		t.Error("destroyed child should be removed from its parent")
	}
	if _, ok := s.GetObject("p"); !ok {
		t.Error("parent should stay registered")
	}
}

func TestRecreateAfterDestroy(t *testing.T) {
	s, _ := newTestScene(t)
	a := s.CreateObject("a")
	a.Destroy()
	b := s.CreateObject("a")
	if a == b || b.Destroyed() {
		t.Error("creating a destroyed id again should create a fresh object")
	}
}

func TestDestroyCallbackSeesLiveObject(t *testing.T) {
	s, _ := newTestScene(t)
	calls := 0
	a := s.CreateObject("a").OnDestroy(func(o *Object) {
		calls++
		if o.Destroyed() {
			t.Error("object reported destroyed inside its destroy callback")
		}
		o.SetVariable("final", true)
		o.Destroy()
	})

	a.Destroy()
	if calls != 1 {
		t.Errorf("destroy callback called %d times, want 1", calls)
	}
	if v, ok := a.GetVariable("final"); !ok || v != true {
		t.Errorf("final = %v, %v; want true set by the callback", v, ok)
	}
	if !a.Destroyed() {
		t.Error("object should be destroyed after Destroy returns")
	}
}
