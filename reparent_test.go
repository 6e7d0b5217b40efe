package easel

import "testing"

func newReparentCore(t *testing.T) (*testCore, *Reparenter) {
	t.Helper()
	tc := newTestCore()
	return tc, NewReparenter(tc.store, tc.syncer, tc.guard, nil)
}

func TestExitStaysWithAnyOverlap(t *testing.T) {
	tc, rep := newReparentCore(t)
	p := mustAdd(t, tc.store, "", NewFrame("p", 100, 100))
	c := mustAdd(t, tc.store, p.ID, NewRectangle("c", 150, 100))

	// One pixel of overlap on the right edge keeps the child attached.
	if rep.Resolve(c.ID, Rect{X: 99, Y: 0, Width: 150, Height: 100}) {
		t.Error("overlapping child must not reparent")
	}
	if tc.store.ParentOf(c.ID) != p {
		t.Error("parent changed")
	}
}

func TestExitDetachesOnZeroOverlap(t *testing.T) {
	tc, rep := newReparentCore(t)
	p := mustAdd(t, tc.store, "", NewFrame("p", 100, 100))
	c := mustAdd(t, tc.store, p.ID, NewRectangle("c", 50, 50))

	if !rep.Resolve(c.ID, Rect{X: 300, Y: 0, Width: 50, Height: 50}) {
		t.Fatal("fully-outside child must reparent")
	}
	if tc.store.ParentOf(c.ID) != nil {
		t.Error("child should be top-level")
	}
	// Position becomes absolute.
	assertNear(t, "x", c.X, 300)
	assertNear(t, "y", c.Y, 0)
}

func TestExitPrefersGreatestOverlapFrame(t *testing.T) {
	tc, rep := newReparentCore(t)
	p := mustAdd(t, tc.store, "", NewFrame("p", 100, 100))
	q := NewFrame("q", 100, 100)
	q.X = 200
	mustAdd(t, tc.store, "", q)
	r := NewFrame("r", 100, 100)
	r.X = 340
	mustAdd(t, tc.store, "", r)
	c := mustAdd(t, tc.store, p.ID, NewRectangle("c", 60, 60))

	// Bounds overlap q by 50px and r by 10px of width.
	if !rep.Resolve(c.ID, Rect{X: 250, Y: 10, Width: 100, Height: 60}) {
		t.Fatal("child must reparent")
	}
	if got := tc.store.ParentOf(c.ID); got != q {
		t.Fatalf("parent = %v, want q", got)
	}
	// Position converts to the new parent's space.
	assertNear(t, "x", c.X, 50)
	assertNear(t, "y", c.Y, 10)
}

func TestEntrySmallestContainerWins(t *testing.T) {
	tc, rep := newReparentCore(t)
	outer := mustAdd(t, tc.store, "", NewFrame("outer", 300, 300))
	inner := NewFrame("inner", 100, 100)
	inner.X, inner.Y = 50, 50
	mustAdd(t, tc.store, outer.ID, inner)
	loose := NewRectangle("loose", 20, 20)
	loose.X, loose.Y = 60, 60
	mustAdd(t, tc.store, "", loose)

	// Center (70, 70) lies in both; the smaller frame wins.
	if !rep.Resolve(loose.ID, Rect{X: 60, Y: 60, Width: 20, Height: 20}) {
		t.Fatal("parent-less node over a frame must reparent")
	}
	if tc.store.ParentOf(loose.ID) != inner {
		t.Error("smallest containing frame should win")
	}
	assertNear(t, "x", loose.X, 10)
	assertNear(t, "y", loose.Y, 10)
}

func TestEntryRequiresCenterContainment(t *testing.T) {
	tc, rep := newReparentCore(t)
	mustAdd(t, tc.store, "", NewFrame("f", 100, 100))
	loose := NewRectangle("loose", 80, 80)
	loose.X = 90
	mustAdd(t, tc.store, "", loose)

	// Bounds overlap the frame but the center (130, 40) is outside.
	if rep.Resolve(loose.ID, Rect{X: 90, Y: 0, Width: 80, Height: 80}) {
		t.Error("entry requires center containment, not overlap")
	}
	if tc.store.ParentOf(loose.ID) != nil {
		t.Error("node should stay top-level")
	}
}

func TestEntryIntoLayoutContainerClearsPosition(t *testing.T) {
	tc, rep := newReparentCore(t)
	f := NewFrame("f", 200, 200)
	f.Layout = LayoutVertical
	mustAdd(t, tc.store, "", f)
	loose := NewRectangle("loose", 20, 20)
	loose.X, loose.Y = 40, 40
	mustAdd(t, tc.store, "", loose)

	if !rep.Resolve(loose.ID, Rect{X: 40, Y: 40, Width: 20, Height: 20}) {
		t.Fatal("node over a layout container must reparent")
	}
	if tc.store.ParentOf(loose.ID) != f {
		t.Fatal("wrong parent")
	}
	// Layout supplies the position from here on.
	assertNear(t, "x", loose.X, 0)
	assertNear(t, "y", loose.Y, 0)
}

func TestEntryNeverTargetsOwnDescendant(t *testing.T) {
	tc, rep := newReparentCore(t)
	g := mustAdd(t, tc.store, "", NewGroup("g"))
	mustAdd(t, tc.store, g.ID, NewFrame("child frame", 100, 100))

	if rep.Resolve(g.ID, Rect{X: 10, Y: 10, Width: 20, Height: 20}) {
		t.Error("a container must not enter its own descendant")
	}
}
