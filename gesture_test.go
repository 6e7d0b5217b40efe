package easel

import "testing"

func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	return NewCanvas(NewSceneList(), WithMeasurer(stubMeasurer{}))
}

func addRect(t *testing.T, c *Canvas, name string, x, y, w, h float64) *Node {
	t.Helper()
	n := NewRectangle(name, w, h)
	n.X, n.Y = x, y
	mustAdd(t, c.Store(), "", n)
	return n
}

func TestMoveGestureWritesBackEveryFrame(t *testing.T) {
	c := newTestCanvas(t)
	n := addRect(t, c, "n", 10, 10, 50, 50)

	c.BeginGesture(GestureMove, n.ID)
	c.UpdateGesture(100, 20, 1, 0)

	o := c.Surface().ObjectByID(n.ID)
	assertNear(t, "object x", o.X, 110)
	assertNear(t, "object y", o.Y, 30)
	// The document tracks the drag frame by frame.
	assertNear(t, "node x", n.X, 110)
	assertNear(t, "node y", n.Y, 30)
}

func TestGestureDeltasAreAbsolute(t *testing.T) {
	c := newTestCanvas(t)
	n := addRect(t, c, "n", 10, 10, 50, 50)

	c.BeginGesture(GestureMove, n.ID)
	c.UpdateGesture(100, 0, 1, 0)
	c.UpdateGesture(100, 0, 1, 0)

	o := c.Surface().ObjectByID(n.ID)
	assertNear(t, "x", o.X, 110)
}

func TestResizeGestureBakesScaleOnEnd(t *testing.T) {
	c := newTestCanvas(t)
	n := addRect(t, c, "n", 0, 0, 40, 40)

	c.BeginGesture(GestureResize, n.ID)
	c.UpdateGesture(0, 0, 2, 0)
	c.EndGesture()

	if n.Width != Fixed(80) || n.Height != Fixed(80) {
		t.Errorf("size = %+v x %+v", n.Width, n.Height)
	}
	assertNear(t, "scale", n.ScaleX, 1)
	// The gesture scaled about the selection center (20, 20).
	assertNear(t, "x", n.X, -20)
}

func TestMultiSelectionMovesAsGroup(t *testing.T) {
	c := newTestCanvas(t)
	a := addRect(t, c, "a", 0, 0, 10, 10)
	b := addRect(t, c, "b", 1000, 1000, 10, 10)

	c.BeginGesture(GestureMove, a.ID, b.ID)
	c.UpdateGesture(30, 40, 1, 0)
	c.EndGesture()

	assertNear(t, "a.x", a.X, 30)
	assertNear(t, "a.y", a.Y, 40)
	assertNear(t, "b.x", b.X, 1030)
	assertNear(t, "b.y", b.Y, 1040)
}

func TestMultiSelectionScalesAboutUnionCenter(t *testing.T) {
	c := newTestCanvas(t)
	a := addRect(t, c, "a", 0, 0, 10, 10)
	b := addRect(t, c, "b", 990, 990, 10, 10)

	// Union (0,0)-(1000,1000), center (500, 500).
	c.BeginGesture(GestureResize, a.ID, b.ID)
	c.UpdateGesture(0, 0, 2, 0)
	c.EndGesture()

	assertNear(t, "a.x", a.X, -500)
	assertNear(t, "b.x", b.X, 1480)
	if a.Width != Fixed(20) {
		t.Errorf("a width = %+v", a.Width)
	}
}

func TestGestureUndoBatchClosesOneTickAfterEnd(t *testing.T) {
	c := newTestCanvas(t)
	n := addRect(t, c, "n", 0, 0, 50, 50)
	undo := c.Undo().(*MemoryUndoLog)

	c.BeginGesture(GestureMove, n.ID)
	if undo.BatchDepth() != 1 {
		t.Fatal("batch not opened on gesture start")
	}
	c.UpdateGesture(10, 0, 1, 0)
	c.EndGesture()

	// Still open: completion writes land inside the batch.
	if undo.BatchDepth() != 1 || undo.Batches() != 0 {
		t.Fatal("batch closed before the next tick")
	}
	c.Tick(0.016)
	if undo.BatchDepth() != 0 || undo.Batches() != 1 {
		t.Errorf("depth = %d, batches = %d", undo.BatchDepth(), undo.Batches())
	}

	// The committed snapshot holds the pre-gesture document.
	snap := undo.LastSnapshot()
	assertNear(t, "snapshot x", snap[0].X, 0)
}

func TestUnchangedGestureCancelsBatch(t *testing.T) {
	c := newTestCanvas(t)
	n := addRect(t, c, "n", 0, 0, 50, 50)
	undo := c.Undo().(*MemoryUndoLog)

	c.BeginGesture(GestureMove, n.ID)
	c.UpdateGesture(0, 0, 1, 0) // no travel
	c.EndGesture()
	c.Tick(0.016)

	if undo.Batches() != 0 || undo.BatchDepth() != 0 {
		t.Error("no-op gesture must cancel its batch")
	}
}

func TestCancelGestureRestoresDocumentAndScene(t *testing.T) {
	c := newTestCanvas(t)
	n := addRect(t, c, "n", 10, 10, 50, 50)
	undo := c.Undo().(*MemoryUndoLog)

	c.BeginGesture(GestureMove, n.ID)
	c.UpdateGesture(200, 0, 1, 0)
	c.CancelGesture()

	o := c.Surface().ObjectByID(n.ID)
	assertNear(t, "object x", o.X, 10)
	assertNear(t, "node x", n.X, 10)
	if undo.Batches() != 0 || undo.BatchDepth() != 0 {
		t.Error("cancelled gesture left a batch behind")
	}
}

func TestBeginGestureCancelsStaleSession(t *testing.T) {
	c := newTestCanvas(t)
	n := addRect(t, c, "n", 10, 10, 50, 50)
	undo := c.Undo().(*MemoryUndoLog)

	c.BeginGesture(GestureMove, n.ID)
	c.UpdateGesture(50, 0, 1, 0)
	c.BeginGesture(GestureMove, n.ID) // previous gesture never ended

	if undo.BatchDepth() != 1 {
		t.Errorf("depth = %d, want exactly the new gesture's batch", undo.BatchDepth())
	}
	// The stale gesture rolled back before the new one snapshotted.
	o := c.Surface().ObjectByID(n.ID)
	assertNear(t, "x", o.X, 10)
}

func TestMoveContainerKeepsChildRelativePosition(t *testing.T) {
	c := newTestCanvas(t)
	f := NewFrame("f", 100, 100)
	mustAdd(t, c.Store(), "", f)
	n := NewRectangle("n", 20, 20)
	n.X, n.Y = 10, 10
	mustAdd(t, c.Store(), f.ID, n)

	c.BeginGesture(GestureMove, f.ID)
	c.UpdateGesture(50, 0, 1, 0)
	c.EndGesture()

	// The frame moved; the child rides along without re-absorbing the
	// frame's translation into its own offset.
	assertNear(t, "frame x", f.X, 50)
	assertNear(t, "child rel x", n.X, 10)
	o := c.Surface().ObjectByID(n.ID)
	assertNear(t, "child abs x", o.X, 60)
}

func TestDragIntoPlainFrameStoresFrameRelativePosition(t *testing.T) {
	c := newTestCanvas(t)
	f := NewFrame("f", 100, 100)
	f.X = 200
	mustAdd(t, c.Store(), "", f)
	n := addRect(t, c, "n", 0, 0, 20, 20)

	c.BeginGesture(GestureMove, n.ID)
	c.UpdateGesture(250, 50, 1, 0)
	c.EndGesture()

	if p := c.Store().ParentOf(n.ID); p != f {
		t.Fatal("node should have dropped into the frame")
	}
	assertNear(t, "rel x", n.X, 50)
	assertNear(t, "rel y", n.Y, 50)
	o := c.Surface().ObjectByID(n.ID)
	assertNear(t, "abs x", o.X, 250)
}

func TestMoveOutOfFrameReparents(t *testing.T) {
	c := newTestCanvas(t)
	f := NewFrame("f", 100, 100)
	mustAdd(t, c.Store(), "", f)
	n := NewRectangle("n", 20, 20)
	n.X, n.Y = 10, 10
	mustAdd(t, c.Store(), f.ID, n)

	c.BeginGesture(GestureMove, n.ID)
	c.UpdateGesture(300, 0, 1, 0)
	c.EndGesture()

	if c.Store().ParentOf(n.ID) != nil {
		t.Fatal("node should have left the frame")
	}
	assertNear(t, "x", n.X, 310)
}

func TestMoveGestureSnapsToNeighbor(t *testing.T) {
	c := newTestCanvas(t)
	addRect(t, c, "anchor", 100, 300, 80, 40)
	n := addRect(t, c, "n", 0, 0, 50, 50)

	c.BeginGesture(GestureMove, n.ID)
	// Raw drag puts the left edge at 103; the anchor's left edge pulls it
	// to 100.
	c.UpdateGesture(103, 0, 1, 0)

	o := c.Surface().ObjectByID(n.ID)
	assertNear(t, "x", o.X, 100)
	if len(c.Guides()) != 1 {
		t.Fatalf("guides = %d, want 1", len(c.Guides()))
	}
	assertNear(t, "pos", c.Guides()[0].Pos, 100)

	c.EndGesture()
	if len(c.Guides()) != 0 {
		t.Error("guides survive gesture end")
	}
}

func TestReorderThroughGesture(t *testing.T) {
	c := newTestCanvas(t)
	f := NewFrame("f", 100, 300)
	f.Layout = LayoutVertical
	mustAdd(t, c.Store(), "", f)
	a := mustAdd(t, c.Store(), f.ID, NewRectangle("a", 100, 100))
	b := mustAdd(t, c.Store(), f.ID, NewRectangle("b", 100, 100))

	// Drag b above a's midpoint.
	c.BeginGesture(GestureMove, b.ID)
	c.UpdateGesture(0, -120, 1, 0)
	c.EndGesture()

	if f.Children[0] != b || f.Children[1] != a {
		t.Errorf("order = [%s %s], want [b a]", f.Children[0].Name, f.Children[1].Name)
	}
}
