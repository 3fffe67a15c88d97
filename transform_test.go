package canvas

import (
	"math"
	"testing"
)

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, -4}
	inv := invertAffine(m)
	for _, p := range []Vec2{{0, 0}, {1, 1}, {-7.5, 3.25}} {
		if got := transformPoint(inv, transformPoint(m, p)); !approxVec(got, p) {
			t.Errorf("inverse round trip of %v = %v", p, got)
		}
	}
	if got := invertAffine([6]float64{1, 2, 2, 4, 5, 5}); got != identityTransform {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestLogicalToView(t *testing.T) {
	vp := Size{800, 600}
	cases := []struct {
		p, want Vec2
	}{
		{Vec2{0, 0}, Vec2{400, 300}},
		{Vec2{100, 50}, Vec2{500, 250}},
		{Vec2{-400, -300}, Vec2{0, 600}},
		{Vec2{400, 300}, Vec2{800, 0}},
	}
	for _, c := range cases {
		if got := LogicalToView(c.p, vp); got != c.want {
			t.Errorf("LogicalToView(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestProjectAppliesPan(t *testing.T) {
	vp := Size{800, 600}
	// The camera's own position always projects to the viewport center.
	for _, cam := range []Vec2{{0, 0}, {10, 0}, {-30, 75}} {
		if got := Project(cam, vp, cam); got != (Vec2{400, 300}) {
			t.Errorf("Project(cam=%v) = %v, want center", cam, got)
		}
	}
}

func TestViewToLogicalInvertsProject(t *testing.T) {
	vp := Size{1024, 768}
	cam := Vec2{12.5, -40}
	for _, p := range []Vec2{{0, 0}, {300, -200}, {-1.5, 2.25}} {
		if got := ViewToLogical(Project(p, vp, cam), vp, cam); !approxVec(got, p) {
			t.Errorf("round trip of %v = %v", p, got)
		}
	}
}

func TestPanOffset(t *testing.T) {
	if got := PanOffset(Vec2{10, 20}); got != (Vec2{-10, 20}) {
		t.Errorf("PanOffset = %v, want (-10, 20)", got)
	}
}

func TestDirection(t *testing.T) {
	cases := []struct {
		deg  float64
		want Vec2
	}{
		{0, Vec2{0, 1}},
		{90, Vec2{1, 0}},
		{180, Vec2{0, -1}},
		{270, Vec2{-1, 0}},
		{-90, Vec2{-1, 0}},
		{45, Vec2{math.Sqrt2 / 2, math.Sqrt2 / 2}},
	}
	for _, c := range cases {
		if got := Direction(c.deg); !approxVec(got, c.want) {
			t.Errorf("Direction(%v) = %v, want %v", c.deg, got, c.want)
		}
	}
}

func TestVec2(t *testing.T) {
	a, b := Vec2{3, 4}, Vec2{1, 1}
	if a.Add(b) != (Vec2{4, 5}) || a.Sub(b) != (Vec2{2, 3}) || a.Scale(2) != (Vec2{6, 8}) {
		t.Error("arithmetic mismatch")
	}
	if a.Len() != 5 || (Vec2{}).Dist(a) != 5 {
		t.Errorf("Len=%v Dist=%v", a.Len(), (Vec2{}).Dist(a))
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Center: Vec2{10, 10}, Size: Size{20, 10}}
	if r.Min() != (Vec2{0, 5}) || r.Max() != (Vec2{20, 15}) {
		t.Errorf("Min=%v Max=%v", r.Min(), r.Max())
	}
	if !r.Contains(Vec2{0, 5}) || !r.Contains(Vec2{10, 10}) || r.Contains(Vec2{21, 10}) {
		t.Error("Contains mismatch")
	}
}
