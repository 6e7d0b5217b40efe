package easel

import (
	"math"
	"testing"
)

func sceneObject(id string, x, y, w, h float64, z int) *Object {
	return &Object{
		NodeID: id, Kind: NodeRectangle,
		X: x, Y: y, Width: w, Height: h,
		ScaleX: 1, ScaleY: 1,
		Opacity: 1, Visible: true, ZOrder: z,
	}
}

func TestSceneListDuplicateIDReplaces(t *testing.T) {
	s := NewSceneList()
	first := sceneObject("n", 0, 0, 10, 10, 0)
	second := sceneObject("n", 5, 5, 10, 10, 1)
	s.AddObject(first)
	s.AddObject(second)

	if len(s.Objects()) != 1 {
		t.Fatalf("objects = %d, want 1", len(s.Objects()))
	}
	if s.ObjectByID("n") != second {
		t.Error("lookup returns the replaced object")
	}
}

func TestSceneListRemove(t *testing.T) {
	s := NewSceneList()
	o := sceneObject("n", 0, 0, 10, 10, 0)
	s.AddObject(o)
	s.RemoveObject(o)
	if len(s.Objects()) != 0 || s.ObjectByID("n") != nil {
		t.Error("object not removed")
	}
	// Removing twice must not panic or disturb the scene.
	s.RemoveObject(o)
}

func TestObjectAtPicksTopmost(t *testing.T) {
	s := NewSceneList()
	back := sceneObject("back", 0, 0, 100, 100, 0)
	front := sceneObject("front", 25, 25, 50, 50, 5)
	s.AddObject(back)
	s.AddObject(front)

	if got := s.ObjectAt(50, 50); got != front {
		t.Errorf("hit = %v", got)
	}
	if got := s.ObjectAt(10, 10); got != back {
		t.Errorf("hit = %v", got)
	}
	if got := s.ObjectAt(200, 200); got != nil {
		t.Errorf("hit = %v, want nil", got)
	}
}

func TestObjectAtSkipsHidden(t *testing.T) {
	s := NewSceneList()
	o := sceneObject("n", 0, 0, 100, 100, 0)
	o.Visible = false
	s.AddObject(o)
	if s.ObjectAt(50, 50) != nil {
		t.Error("hidden object hit-tested")
	}
}

func TestObjectContainsRotated(t *testing.T) {
	s := NewSceneList()
	// 100x20 bar rotated 90 degrees about its center (50, 10): the hit area
	// becomes a vertical bar around x=50.
	o := sceneObject("bar", 0, 0, 100, 20, 0)
	o.Rotation = math.Pi / 2
	s.AddObject(o)

	if s.ObjectAt(50, 55) != o {
		t.Error("point inside rotated extent missed")
	}
	if s.ObjectAt(95, 10) != nil {
		t.Error("point outside rotated extent hit")
	}
}

func TestObjectBoundsAppliesScale(t *testing.T) {
	o := sceneObject("n", 10, 20, 30, 40, 0)
	o.ScaleX, o.ScaleY = 2, 0.5
	assertRect(t, "bounds", o.Bounds(), Rect{X: 10, Y: 20, Width: 60, Height: 20})
}
