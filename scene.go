package easel

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Object is the retained-mode rendering counterpart of a document node,
// keyed by the node's id. Geometry is absolute scene coordinates. Scene Sync
// owns creation and removal; gestures mutate geometry in place.
type Object struct {
	NodeID string
	Kind   NodeType

	// Absolute geometry
	X, Y          float64
	Width, Height float64
	ScaleX        float64
	ScaleY        float64
	Rotation      float64 // radians, about the object's center

	Opacity  float64
	Visible  bool
	TopLevel bool // direct child of the document root set
	ZOrder   int
	Clip     bool

	// Style
	Fills  []Paint
	Stroke *Stroke
	Shadow *Shadow

	// Content
	Points   []Vec2 // local geometry for line/polygon/path
	Text     string
	FontSize float64

	// Image content. Placeholder marks a synchronously-created stand-in
	// that the loader swaps for the real bitmap in place.
	Image       *ebiten.Image
	Placeholder bool

	// Edit state, preserved across in-place sync updates.
	Selected bool
	Editing  bool
}

// Bounds returns the object's axis-aligned bounds with scale applied,
// ignoring rotation.
func (o *Object) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width * o.ScaleX, Height: o.Height * o.ScaleY}
}

// contains reports whether the scene point lies inside the object, taking
// rotation about the object's center into account.
func (o *Object) contains(x, y float64) bool {
	b := o.Bounds()
	if o.Rotation != 0 {
		c := b.Center()
		x, y = rotateAboutPoint(x, y, c.X, c.Y, -o.Rotation)
	}
	return b.Contains(x, y)
}

// Surface is the retained rendering scene this core reconciles against. It
// is externally owned; the core only adds, removes, and mutates objects
// through this interface.
type Surface interface {
	AddObject(o *Object)
	RemoveObject(o *Object)
	Objects() []*Object
	ObjectByID(nodeID string) *Object
	ObjectAt(x, y float64) *Object
	DeviceToScene(x, y float64) (float64, float64)
	SceneToDevice(x, y float64) (float64, float64)
	Zoom() float64
	RequestRender()
}

// SceneList is the baseline Surface implementation: an ordered object set
// with id lookup and hit testing, identity device transform, and no-op
// render requests. View embeds it and supplies real device transforms.
type SceneList struct {
	objects []*Object
	byID    map[string]*Object
}

// NewSceneList creates an empty scene.
func NewSceneList() *SceneList {
	return &SceneList{byID: make(map[string]*Object)}
}

// AddObject appends an object. Objects with a duplicate node id replace the
// previous entry.
func (s *SceneList) AddObject(o *Object) {
	if o == nil || o.NodeID == "" {
		return
	}
	if prev, ok := s.byID[o.NodeID]; ok {
		s.RemoveObject(prev)
	}
	s.objects = append(s.objects, o)
	s.byID[o.NodeID] = o
}

// RemoveObject removes an object; unknown objects are a no-op.
func (s *SceneList) RemoveObject(o *Object) {
	if o == nil {
		return
	}
	for i, e := range s.objects {
		if e == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	if s.byID[o.NodeID] == o {
		delete(s.byID, o.NodeID)
	}
}

// Objects returns the scene's objects. The slice is shared; callers must not
// mutate its order.
func (s *SceneList) Objects() []*Object {
	return s.objects
}

// ObjectByID returns the object tagged with the node id, or nil.
func (s *SceneList) ObjectByID(nodeID string) *Object {
	return s.byID[nodeID]
}

// ObjectAt returns the topmost visible object containing the scene point, or
// nil.
func (s *SceneList) ObjectAt(x, y float64) *Object {
	var hit *Object
	for _, o := range s.objects {
		if !o.Visible || !o.contains(x, y) {
			continue
		}
		if hit == nil || o.ZOrder >= hit.ZOrder {
			hit = o
		}
	}
	return hit
}

// DeviceToScene is the identity transform on the baseline scene.
func (s *SceneList) DeviceToScene(x, y float64) (float64, float64) { return x, y }

// SceneToDevice is the identity transform on the baseline scene.
func (s *SceneList) SceneToDevice(x, y float64) (float64, float64) { return x, y }

// Zoom returns 1 on the baseline scene.
func (s *SceneList) Zoom() float64 { return 1 }

// RequestRender is a no-op on the baseline scene.
func (s *SceneList) RequestRender() {}
