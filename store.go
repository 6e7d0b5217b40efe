package easel

import (
	"fmt"

	"github.com/google/uuid"
)

// ChangeKind classifies a document mutation for subscribers. Structural
// changes invalidate the render-info cache; geometry changes do not.
type ChangeKind uint8

const (
	ChangeGeometry  ChangeKind = iota // position, size, rotation, style
	ChangeStructure                   // add, remove, move, layout-mode switch
)

// Change describes a single document mutation.
type Change struct {
	Kind   ChangeKind
	NodeID string
}

// DocumentStore owns the design-document tree. All writes from this core go
// through the store; nothing mutates Node fields behind its back. The store
// is single-threaded like the rest of the engine.
type DocumentStore struct {
	roots   []*Node
	byID    map[string]*Node
	parents map[string]*Node
	subs    []func(Change)
}

// NewDocumentStore creates an empty document.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		byID:    make(map[string]*Node),
		parents: make(map[string]*Node),
	}
}

// NodeByID returns the node with the given id, or nil.
func (s *DocumentStore) NodeByID(id string) *Node {
	return s.byID[id]
}

// ParentOf returns the parent of the node with the given id, or nil for
// top-level nodes and unknown ids.
func (s *DocumentStore) ParentOf(id string) *Node {
	return s.parents[id]
}

// Roots returns the top-level nodes in document order. The returned slice is
// shared; callers must not mutate it.
func (s *DocumentStore) Roots() []*Node {
	return s.roots
}

// IsDescendantOf reports whether id lies strictly below ancestorID.
func (s *DocumentStore) IsDescendantOf(id, ancestorID string) bool {
	for p := s.parents[id]; p != nil; p = s.parents[p.ID] {
		if p.ID == ancestorID {
			return true
		}
	}
	return false
}

// IsLayoutManaged reports whether the node's position is controlled by its
// parent's auto layout.
func (s *DocumentStore) IsLayoutManaged(id string) bool {
	p := s.parents[id]
	return p != nil && p.Layout != LayoutNone
}

// Subscribe registers a change listener and returns an unsubscribe function.
func (s *DocumentStore) Subscribe(fn func(Change)) func() {
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() { s.subs[idx] = nil }
}

func (s *DocumentStore) notify(c Change) {
	for _, fn := range s.subs {
		if fn != nil {
			fn(c)
		}
	}
}

// AddNode inserts a subtree under parentID, or as a top-level node when
// parentID is empty. Nodes without an ID are assigned one. Layout-managed
// children have their explicit position cleared.
func (s *DocumentStore) AddNode(parentID string, n *Node) error {
	if n == nil {
		return fmt.Errorf("add node: nil node")
	}
	var parent *Node
	if parentID != "" {
		parent = s.byID[parentID]
		if parent == nil {
			return fmt.Errorf("add node: unknown parent %q", parentID)
		}
		if !parent.IsContainer() {
			return fmt.Errorf("add node: parent %q is not a container", parentID)
		}
	}
	s.register(n, parent)
	if parent != nil {
		parent.Children = append(parent.Children, n)
		if parent.Layout != LayoutNone {
			n.X, n.Y = 0, 0
		}
	} else {
		s.roots = append(s.roots, n)
	}
	s.notify(Change{Kind: ChangeStructure, NodeID: n.ID})
	return nil
}

// register indexes a subtree, assigning ids where missing.
func (s *DocumentStore) register(n *Node, parent *Node) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	s.byID[n.ID] = n
	if parent != nil {
		s.parents[n.ID] = parent
	} else {
		delete(s.parents, n.ID)
	}
	for _, c := range n.Children {
		s.register(c, n)
		if n.Layout != LayoutNone {
			c.X, c.Y = 0, 0
		}
	}
}

// unregister removes a subtree from the indexes.
func (s *DocumentStore) unregister(n *Node) {
	delete(s.byID, n.ID)
	delete(s.parents, n.ID)
	for _, c := range n.Children {
		s.unregister(c)
	}
}

// RemoveNode detaches and unindexes a subtree. Unknown ids are a no-op.
func (s *DocumentStore) RemoveNode(id string) {
	n := s.byID[id]
	if n == nil {
		return
	}
	s.detach(n)
	s.unregister(n)
	s.notify(Change{Kind: ChangeStructure, NodeID: id})
}

// detach removes n from its parent's child list or from the roots.
func (s *DocumentStore) detach(n *Node) {
	if p := s.parents[n.ID]; p != nil {
		for i, c := range p.Children {
			if c == n {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
		delete(s.parents, n.ID)
		return
	}
	for i, r := range s.roots {
		if r == n {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			break
		}
	}
}

// MoveNode reparents a node. newParentID empty moves it to the top level.
// index -1 appends; otherwise the index is clamped into range. Moving a node
// under its own descendant is rejected.
func (s *DocumentStore) MoveNode(id, newParentID string, index int) error {
	n := s.byID[id]
	if n == nil {
		return fmt.Errorf("move node: unknown id %q", id)
	}
	var parent *Node
	if newParentID != "" {
		parent = s.byID[newParentID]
		if parent == nil {
			return fmt.Errorf("move node: unknown parent %q", newParentID)
		}
		if !parent.IsContainer() {
			return fmt.Errorf("move node: parent %q is not a container", newParentID)
		}
		if newParentID == id || s.IsDescendantOf(newParentID, id) {
			return fmt.Errorf("move node: %q into its own subtree", id)
		}
	}
	s.detach(n)
	if parent == nil {
		if index < 0 || index > len(s.roots) {
			index = len(s.roots)
		}
		s.roots = append(s.roots, nil)
		copy(s.roots[index+1:], s.roots[index:])
		s.roots[index] = n
		delete(s.parents, n.ID)
	} else {
		if index < 0 || index > len(parent.Children) {
			index = len(parent.Children)
		}
		parent.Children = append(parent.Children, nil)
		copy(parent.Children[index+1:], parent.Children[index:])
		parent.Children[index] = n
		s.parents[n.ID] = parent
		if parent.Layout != LayoutNone {
			n.X, n.Y = 0, 0
		}
	}
	s.notify(Change{Kind: ChangeStructure, NodeID: id})
	return nil
}

// NodeUpdate is a partial update applied by UpdateNode. Nil fields are left
// untouched.
type NodeUpdate struct {
	Name     *string
	X, Y     *float64
	Rotation *float64
	ScaleX   *float64
	ScaleY   *float64
	Width    *Sizing
	Height   *Sizing
	Opacity  *float64
	Visible  *bool
	Locked   *bool

	Layout  *LayoutMode
	Gap     *float64
	Padding *Padding
	Justify *Justify
	Align   *Align
	Clip    *bool

	Fills  []Paint
	Stroke *Stroke
	Shadow *Shadow

	Text     *string
	FontSize *float64
	Points   []Vec2
}

// UpdateNode applies a partial update. Position writes to a layout-managed
// child are discarded (the invariant: such children never carry explicit
// x/y). Switching a container's layout mode clears every child's position and
// counts as a structural change. Unknown ids are a no-op.
func (s *DocumentStore) UpdateNode(id string, u NodeUpdate) {
	n := s.byID[id]
	if n == nil {
		return
	}
	kind := ChangeGeometry
	managed := s.IsLayoutManaged(id)

	if u.Name != nil {
		n.Name = *u.Name
	}
	if u.X != nil && !managed {
		n.X = *u.X
	}
	if u.Y != nil && !managed {
		n.Y = *u.Y
	}
	if managed {
		n.X, n.Y = 0, 0
	}
	if u.Rotation != nil {
		n.Rotation = *u.Rotation
	}
	if u.ScaleX != nil {
		n.ScaleX = *u.ScaleX
	}
	if u.ScaleY != nil {
		n.ScaleY = *u.ScaleY
	}
	if u.Width != nil {
		n.Width = *u.Width
	}
	if u.Height != nil {
		n.Height = *u.Height
	}
	if u.Opacity != nil {
		n.Opacity = *u.Opacity
	}
	if u.Visible != nil {
		n.Visible = *u.Visible
	}
	if u.Locked != nil {
		n.Locked = *u.Locked
	}
	if u.Layout != nil && *u.Layout != n.Layout {
		n.Layout = *u.Layout
		if n.Layout != LayoutNone {
			for _, c := range n.Children {
				c.X, c.Y = 0, 0
			}
		}
		kind = ChangeStructure
	}
	if u.Gap != nil {
		n.Gap = *u.Gap
	}
	if u.Padding != nil {
		n.Padding = *u.Padding
	}
	if u.Justify != nil {
		n.Justify = *u.Justify
	}
	if u.Align != nil {
		n.Align = *u.Align
	}
	if u.Clip != nil {
		n.Clip = *u.Clip
	}
	if u.Fills != nil {
		n.Fills = u.Fills
	}
	if u.Stroke != nil {
		n.Stroke = u.Stroke
	}
	if u.Shadow != nil {
		n.Shadow = u.Shadow
	}
	if u.Text != nil {
		n.Text = *u.Text
	}
	if u.FontSize != nil {
		n.FontSize = *u.FontSize
	}
	if u.Points != nil {
		n.Points = u.Points
	}
	s.notify(Change{Kind: kind, NodeID: id})
}

// Snapshot returns a deep copy of the document tree. Undo batches capture
// one on gesture start.
func (s *DocumentStore) Snapshot() []*Node {
	out := make([]*Node, len(s.roots))
	for i, r := range s.roots {
		out[i] = cloneNode(r)
	}
	return out
}

// cloneNode deep-copies a subtree.
func cloneNode(n *Node) *Node {
	c := *n
	if n.Points != nil {
		c.Points = append([]Vec2(nil), n.Points...)
	}
	if n.Fills != nil {
		c.Fills = append([]Paint(nil), n.Fills...)
	}
	if n.Stroke != nil {
		st := *n.Stroke
		c.Stroke = &st
	}
	if n.Shadow != nil {
		sh := *n.Shadow
		c.Shadow = &sh
	}
	c.Children = make([]*Node, len(n.Children))
	for i, ch := range n.Children {
		c.Children[i] = cloneNode(ch)
	}
	return &c
}
