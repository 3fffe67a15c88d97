package canvas

import "testing"

func TestMemoryView(t *testing.T) {
	v := NewMemoryView(320, 240)
	if v.Size() != (Size{320, 240}) {
		t.Errorf("Size = %v", v.Size())
	}
	v.Place("a", Vec2{1, 2}, Size{3, 4})
	v.Place("b", Vec2{5, 6}, Size{7, 8})
	v.Place("a", Vec2{9, 9}, Size{3, 4})

	if ids := v.IDs(); len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("IDs = %v", ids)
	}
	if p, ok := v.Placement("a"); !ok || p.Center != (Vec2{9, 9}) {
		t.Errorf("Placement(a) = %v, %v", p, ok)
	}

	v.Remove("a")
	v.Remove("missing")
	if _, ok := v.Placement("a"); ok || len(v.IDs()) != 1 {
		t.Errorf("after Remove: IDs = %v", v.IDs())
	}

	v.Pan(Vec2{-3, 4})
	if v.Offset() != (Vec2{-3, 4}) {
		t.Errorf("Offset = %v", v.Offset())
	}

	v.Detach()
	if !v.Detached() || len(v.IDs()) != 0 {
		t.Error("Detach did not clear the view")
	}
}

func TestSceneDrivesView(t *testing.T) {
	s, v := newTestScene(t)
	a := s.CreateObject("a").SetSize(10, 20)
	a.CreateChild("c").SetPosition(0, 10)
	p, ok := v.Placement("a/c")
	if !ok || p.Center != (Vec2{400, 290}) || p.Size != (Size{50, 50}) {
		t.Errorf("child placement = %+v, %v", p, ok)
	}
	if p, _ := v.Placement("a"); p.Size != (Size{10, 20}) {
		t.Errorf("parent size = %v", p.Size)
	}

	a.Destroy()
	if len(v.IDs()) != 0 {
		t.Errorf("IDs after destroy = %v", v.IDs())
	}
}
