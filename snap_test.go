package easel

import "testing"

func snapSurface(objs ...*Object) *SceneList {
	s := NewSceneList()
	for _, o := range objs {
		s.AddObject(o)
	}
	return s
}

func snapObject(id string, x, y, w, h float64) *Object {
	return &Object{NodeID: id, X: x, Y: y, Width: w, Height: h,
		ScaleX: 1, ScaleY: 1, Visible: true, TopLevel: true}
}

func TestSnapToLeftEdge(t *testing.T) {
	g := NewGuideEngine(snapSurface(snapObject("a", 100, 200, 80, 40)), 5)

	dx, dy := g.Snap(Rect{X: 103, Y: 0, Width: 50, Height: 50}, nil)
	assertNear(t, "dx", dx, -3)
	assertNear(t, "dy", dy, 0)

	if len(g.Guides) != 1 {
		t.Fatalf("guides = %d, want 1", len(g.Guides))
	}
	guide := g.Guides[0]
	if guide.Axis != AxisX {
		t.Error("expected a vertical guide")
	}
	assertNear(t, "pos", guide.Pos, 100)
	// Spans the union of both objects' vertical extents.
	assertNear(t, "start", guide.Start, 0)
	assertNear(t, "end", guide.End, 240)
}

func TestSnapSmallestDeltaWins(t *testing.T) {
	g := NewGuideEngine(snapSurface(
		snapObject("a", 100, 0, 10, 10),
		snapObject("b", 104, 100, 10, 10),
	), 5)

	dx, _ := g.Snap(Rect{X: 103, Y: 50, Width: 10, Height: 10}, nil)
	assertNear(t, "dx", dx, 1)
}

func TestSnapThresholdScalesWithZoom(t *testing.T) {
	surface := snapSurface(snapObject("a", 100, 0, 10, 10))
	g := NewGuideEngine(&zoomedSurface{SceneList: surface, zoom: 4}, 5)

	// Threshold 5px at zoom 4 is 1.25 scene units: 103 is out of range.
	dx, _ := g.Snap(Rect{X: 103, Y: 0, Width: 10, Height: 10}, nil)
	assertNear(t, "dx", dx, 0)

	dx, _ = g.Snap(Rect{X: 101, Y: 0, Width: 10, Height: 10}, nil)
	assertNear(t, "dx", dx, -1)
}

// zoomedSurface overrides the baseline scene's unit zoom.
type zoomedSurface struct {
	*SceneList
	zoom float64
}

func (z *zoomedSurface) Zoom() float64 { return z.zoom }

func TestSnapIgnoresExcludedAndHidden(t *testing.T) {
	hidden := snapObject("h", 100, 0, 10, 10)
	hidden.Visible = false
	nested := snapObject("n", 100, 0, 10, 10)
	nested.TopLevel = false
	g := NewGuideEngine(snapSurface(
		hidden, nested, snapObject("sel", 100, 0, 10, 10),
	), 5)

	dx, _ := g.Snap(Rect{X: 102, Y: 0, Width: 10, Height: 10}, map[string]bool{"sel": true})
	assertNear(t, "dx", dx, 0)
	if len(g.Guides) != 0 {
		t.Error("no guides expected")
	}
}

func TestSnapCenterCandidate(t *testing.T) {
	g := NewGuideEngine(snapSurface(snapObject("a", 0, 100, 100, 10)), 5)

	// Moving center at 52 snaps to the candidate center at 50.
	dx, _ := g.Snap(Rect{X: 42, Y: 0, Width: 20, Height: 20}, nil)
	assertNear(t, "dx", dx, -2)
}

func TestSnapClear(t *testing.T) {
	g := NewGuideEngine(snapSurface(snapObject("a", 100, 0, 10, 10)), 5)
	g.Snap(Rect{X: 101, Y: 0, Width: 10, Height: 10}, nil)
	if len(g.Guides) == 0 {
		t.Fatal("expected a guide before clear")
	}
	g.Clear()
	if len(g.Guides) != 0 {
		t.Error("guides survive clear")
	}
}
