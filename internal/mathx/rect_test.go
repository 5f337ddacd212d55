package mathx

import "testing"

func TestSnap_InsideIsIdentity(t *testing.T) {
	r := R(0, 0, 10, 10)
	p := V2(3, 7)
	if got := r.Snap(p); got != p {
		t.Fatalf("snap of interior point moved it: %+v", got)
	}
}

func TestSnap_OutsideClampsToEdge(t *testing.T) {
	r := R(0, 0, 10, 10)
	cases := []struct{ in, want Vec2 }{
		{V2(-5, 5), V2(0, 5)},
		{V2(15, 15), V2(10, 10)},
		{V2(4, -1), V2(4, 0)},
	}
	for _, c := range cases {
		if got := r.Snap(c.in); got != c.want {
			t.Errorf("Snap(%+v) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestDilateContains(t *testing.T) {
	r := R(0, 0, 1, 1)
	if r.Contains(V2(1.2, 0.5)) {
		t.Fatal("point outside the rect reported inside")
	}
	if !r.Dilate(0.25).Contains(V2(1.2, 0.5)) {
		t.Fatal("dilated rect should contain the point")
	}
}

func TestOverlaps_SharedEdgeIsNotOverlap(t *testing.T) {
	r := R(0, 0, 1, 1)
	if !r.Overlaps(R(0.5, 0.5, 1, 1)) {
		t.Fatal("intersecting rects reported apart")
	}
	if r.Overlaps(R(1, 0, 1, 1)) {
		t.Fatal("rects sharing an edge reported overlapping")
	}
	if r.Overlaps(R(3, 3, 1, 1)) {
		t.Fatal("disjoint rects reported overlapping")
	}
}

func TestTriangleAABB(t *testing.T) {
	tri := Triangle{V2(1, 5), V2(-2, 3), V2(4, -1)}
	want := R(-2, -1, 6, 6)
	if got := tri.AABB(); got != want {
		t.Fatalf("AABB = %+v, want %+v", got, want)
	}
}
