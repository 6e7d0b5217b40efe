package easel

import (
	"github.com/charmbracelet/log"
)

// sessionDeps bundles what the drag sessions need to resolve and commit.
type sessionDeps struct {
	store      *DocumentStore
	sync       *Syncer
	surface    Surface
	indicators *IndicatorLayer
	guard      *syncGuard
	log        *log.Logger
}

// ReorderSession tracks a drag that reorders nodes within their current
// layout parent. Sessions are ephemeral: create on gesture start, Commit or
// Cancel on gesture end. An abandoned session leaks its indicator into the
// next gesture, so Cancel is mandatory.
type ReorderSession struct {
	deps     sessionDeps
	ids      []string
	excluded map[string]bool
	parent   *Node
	index    int
	active   bool
}

// NewReorderSession starts a reorder for the given nodes, which must share a
// layout-container parent. Returns nil when the parent is not a layout
// container or the nodes disagree about their parent.
func NewReorderSession(deps sessionDeps, ids []string) *ReorderSession {
	if len(ids) == 0 {
		return nil
	}
	parent := deps.store.ParentOf(ids[0])
	if parent == nil || parent.Layout == LayoutNone {
		return nil
	}
	for _, id := range ids[1:] {
		if p := deps.store.ParentOf(id); p != parent {
			return nil
		}
	}
	return &ReorderSession{
		deps:     deps,
		ids:      ids,
		excluded: excludedSet(deps.store, ids),
		parent:   parent,
		active:   true,
	}
}

// excludedSet collects the given ids plus all their descendants.
func excludedSet(store *DocumentStore, ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	var mark func(n *Node)
	mark = func(n *Node) {
		out[n.ID] = true
		for _, c := range n.Children {
			mark(c)
		}
	}
	for _, id := range ids {
		if n := store.NodeByID(id); n != nil {
			mark(n)
		}
	}
	return out
}

// siblings returns the parent's visible children that are not being dragged.
func (s *ReorderSession) siblings() []*Node {
	out := make([]*Node, 0, len(s.parent.Children))
	for _, c := range s.parent.Children {
		if c.Visible && !s.excluded[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// Update recomputes the insertion index for the dragged nodes' main-axis
// center and publishes the insertion indicator. The index is the position
// among the remaining siblings: the first whose main-axis midpoint exceeds
// the dragged center, else append.
func (s *ReorderSession) Update(center Vec2) int {
	if !s.active {
		return -1
	}
	horizontal := s.parent.Layout == LayoutHorizontal
	mainCenter := center.Y
	if horizontal {
		mainCenter = center.X
	}

	sibs := s.siblings()
	info := s.deps.sync.Info()
	idx := len(sibs)
	for i, sib := range sibs {
		b, ok := info.Bounds(sib.ID)
		if !ok {
			continue
		}
		mid := b.Center().Y
		if horizontal {
			mid = b.Center().X
		}
		if mid > mainCenter {
			idx = i
			break
		}
	}
	s.index = idx
	s.publishIndicator(sibs, idx, horizontal)
	return idx
}

// publishIndicator places the insertion line at the midpoint between the two
// future neighbors, spanning the container's padded cross-axis extent.
func (s *ReorderSession) publishIndicator(sibs []*Node, idx int, horizontal bool) {
	if s.deps.indicators == nil {
		return
	}
	pb, ok := s.deps.sync.Info().Bounds(s.parent.ID)
	if !ok {
		return
	}
	info := s.deps.sync.Info()
	pad := s.parent.Padding

	// Main-axis edges of the gap the indicator sits in.
	var before, after float64
	if horizontal {
		before, after = pb.X+pad.Left, pb.X+pb.Width-pad.Right
	} else {
		before, after = pb.Y+pad.Top, pb.Y+pb.Height-pad.Bottom
	}
	if idx > 0 {
		if b, ok := info.Bounds(sibs[idx-1].ID); ok {
			if horizontal {
				before = b.X + b.Width
			} else {
				before = b.Y + b.Height
			}
		}
	}
	if idx < len(sibs) {
		if b, ok := info.Bounds(sibs[idx].ID); ok {
			if horizontal {
				after = b.X
			} else {
				after = b.Y
			}
		}
	}
	mid := (before + after) / 2

	if horizontal {
		s.deps.indicators.ShowInsertion(
			Vec2{X: mid, Y: pb.Y + pad.Top}, false, pb.Height-pad.Vertical())
	} else {
		s.deps.indicators.ShowInsertion(
			Vec2{X: pb.X + pad.Left, Y: mid}, true, pb.Width-pad.Horizontal())
	}
}

// Commit moves the dragged nodes to the last computed insertion index and
// clears the indicator.
func (s *ReorderSession) Commit() {
	if !s.active {
		return
	}
	s.active = false
	defer s.clearVisuals()

	release, ok := s.deps.guard.acquire()
	if !ok {
		return
	}
	defer release()

	// Anchor on the node preceding the insertion point rather than a list
	// index: MoveNode detaches before reinserting, so a dragged node that
	// sits before the target slot shifts every later index when it moves.
	sibs := s.siblings()
	var prev *Node
	if s.index < len(sibs) {
		anchor := sibs[s.index]
		for _, c := range s.parent.Children {
			if c == anchor {
				break
			}
			if !s.excluded[c.ID] {
				prev = c
			}
		}
	} else {
		for _, c := range s.parent.Children {
			if !s.excluded[c.ID] {
				prev = c
			}
		}
	}

	for _, id := range s.ids {
		n := s.deps.store.NodeByID(id)
		if n == nil {
			continue
		}
		idx := 0
		if prev != nil {
			seen := false
			for j, c := range s.parent.Children {
				if c == n {
					seen = true
				}
				if c == prev {
					idx = j + 1
					break
				}
			}
			if seen {
				// n detaches from before prev, shifting prev left by one.
				idx--
			}
		}
		if err := s.deps.store.MoveNode(id, s.parent.ID, idx); err != nil {
			if s.deps.log != nil {
				s.deps.log.Warn("reorder commit failed", "node", id, "err", err)
			}
			continue
		}
		prev = n
	}
}

// Cancel abandons the session and clears its visuals.
func (s *ReorderSession) Cancel() {
	if !s.active {
		return
	}
	s.active = false
	s.clearVisuals()
}

func (s *ReorderSession) clearVisuals() {
	if s.deps.indicators != nil {
		s.deps.indicators.ClearInsertion()
	}
}

// DragIntoSession tracks a drag that may drop nodes into a different
// container. Candidates are found by center point: the smallest-area
// enclosing layout container wins; otherwise any enclosing plain frame is an
// append-only target with a highlight and no insertion indicator.
type DragIntoSession struct {
	deps     sessionDeps
	ids      []string
	excluded map[string]bool
	target   *Node
	active   bool
}

// NewDragIntoSession starts a cross-container drag for the given nodes.
// Multi-node drags resolve against the selection centroid; all selected ids
// and their descendants are excluded from candidacy.
func NewDragIntoSession(deps sessionDeps, ids []string) *DragIntoSession {
	if len(ids) == 0 {
		return nil
	}
	return &DragIntoSession{
		deps:     deps,
		ids:      ids,
		excluded: excludedSet(deps.store, ids),
		active:   true,
	}
}

// Update resolves the drop target for the given center point (the selection
// centroid for multi-node drags) and publishes the matching visual. Returns
// the target container's id, or "" when there is none.
func (s *DragIntoSession) Update(center Vec2) string {
	if !s.active {
		return ""
	}
	info := s.deps.sync.Info()

	var bestLayout, bestFrame *Node
	var bestLayoutArea, bestFrameArea float64
	var rec func(nodes []*Node)
	rec = func(nodes []*Node) {
		for _, n := range nodes {
			if !s.excluded[n.ID] {
				if b, ok := info.Bounds(n.ID); ok && b.Contains(center.X, center.Y) {
					switch {
					case n.IsLayoutContainer():
						if bestLayout == nil || b.Area() < bestLayoutArea {
							bestLayout, bestLayoutArea = n, b.Area()
						}
					case n.Type == NodeFrame:
						if bestFrame == nil || b.Area() < bestFrameArea {
							bestFrame, bestFrameArea = n, b.Area()
						}
					}
				}
				rec(n.Children)
			}
		}
	}
	rec(s.deps.store.Roots())

	switch {
	case bestLayout != nil:
		s.target = bestLayout
		if b, ok := info.Bounds(bestLayout.ID); ok && s.deps.indicators != nil {
			s.deps.indicators.ShowTarget(b)
		}
		return bestLayout.ID
	case bestFrame != nil:
		s.target = bestFrame
		if b, ok := info.Bounds(bestFrame.ID); ok && s.deps.indicators != nil {
			s.deps.indicators.ShowTarget(b)
		}
		return bestFrame.ID
	default:
		s.target = nil
		if s.deps.indicators != nil {
			s.deps.indicators.ClearTarget()
		}
		return ""
	}
}

// Commit appends the dragged nodes to the resolved target. Layout targets
// clear manual position (the store enforces this); plain frames receive the
// node at its current absolute position converted to frame-relative.
func (s *DragIntoSession) Commit() {
	if !s.active {
		return
	}
	s.active = false
	defer s.clearVisuals()
	if s.target == nil {
		return
	}

	release, ok := s.deps.guard.acquire()
	if !ok {
		return
	}
	defer release()

	info := s.deps.sync.Info()
	tb, _ := info.Bounds(s.target.ID)
	for _, id := range s.ids {
		var abs Rect
		if o := s.deps.surface.ObjectByID(id); o != nil {
			abs = o.Bounds()
		} else if b, ok := info.Bounds(id); ok {
			abs = b
		}
		if err := s.deps.store.MoveNode(id, s.target.ID, -1); err != nil {
			if s.deps.log != nil {
				s.deps.log.Warn("drag-into commit failed", "node", id, "err", err)
			}
			continue
		}
		if s.target.Layout == LayoutNone {
			rx := abs.X - tb.X
			ry := abs.Y - tb.Y
			s.deps.store.UpdateNode(id, NodeUpdate{X: &rx, Y: &ry})
		}
	}
}

// Cancel abandons the session and clears its visuals.
func (s *DragIntoSession) Cancel() {
	if !s.active {
		return
	}
	s.active = false
	s.clearVisuals()
}

func (s *DragIntoSession) clearVisuals() {
	if s.deps.indicators != nil {
		s.deps.indicators.ClearTarget()
	}
}
