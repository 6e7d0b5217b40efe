package easel

import (
	"github.com/charmbracelet/log"
)

// Reparenter decides, from a node's post-gesture absolute bounds, whether and
// where the node changes parent.
//
// Exit and entry deliberately use different tests: a node leaves its parent
// only on strict zero overlap (stable while dragging within), but enters a
// new container as soon as its center lands inside one (specific while
// entering). Unifying the two would change perceived drag feel.
type Reparenter struct {
	store *DocumentStore
	sync  *Syncer
	guard *syncGuard
	log   *log.Logger
}

// NewReparenter wires a reparent resolver.
func NewReparenter(store *DocumentStore, sync *Syncer, guard *syncGuard, logger *log.Logger) *Reparenter {
	return &Reparenter{store: store, sync: sync, guard: guard, log: logger}
}

// Resolve runs reparent resolution for a node with the given post-gesture
// absolute bounds. Returns whether the node changed parent.
func (r *Reparenter) Resolve(nodeID string, bounds Rect) bool {
	n := r.store.NodeByID(nodeID)
	if n == nil {
		return false
	}
	if parent := r.store.ParentOf(nodeID); parent != nil {
		return r.resolveExit(n, parent, bounds)
	}
	return r.resolveEntry(n, bounds)
}

// resolveExit detaches the node when its bounds no longer overlap the current
// parent at all, reattaching to the top-level frame with the greatest overlap
// area, or to the root as a sibling.
func (r *Reparenter) resolveExit(n, parent *Node, bounds Rect) bool {
	pb, ok := r.sync.Info().Bounds(parent.ID)
	if !ok {
		return false
	}
	if bounds.Intersection(pb).Area() > 0 {
		// Any overlap at all keeps the node attached.
		return false
	}

	var best *Node
	var bestArea float64
	for _, root := range r.store.Roots() {
		if root.Type != NodeFrame || root.ID == n.ID {
			continue
		}
		rb, ok := r.sync.Info().Bounds(root.ID)
		if !ok {
			continue
		}
		area := bounds.Intersection(rb).Area()
		if area > 0 && (best == nil || area > bestArea) {
			best = root
			bestArea = area
		}
	}

	release, ok := r.guard.acquire()
	if !ok {
		return false
	}
	defer release()

	if best != nil {
		tb, _ := r.sync.Info().Bounds(best.ID)
		if err := r.store.MoveNode(n.ID, best.ID, -1); err != nil {
			return false
		}
		rx := bounds.X - tb.X
		ry := bounds.Y - tb.Y
		r.store.UpdateNode(n.ID, NodeUpdate{X: &rx, Y: &ry})
		if r.log != nil {
			r.log.Debug("reparent exit", "node", n.ID, "to", best.ID)
		}
		return true
	}

	if err := r.store.MoveNode(n.ID, "", -1); err != nil {
		return false
	}
	ax, ay := bounds.X, bounds.Y
	r.store.UpdateNode(n.ID, NodeUpdate{X: &ax, Y: &ay})
	if r.log != nil {
		r.log.Debug("reparent exit to root", "node", n.ID)
	}
	return true
}

// resolveEntry attaches a parent-less node to the smallest-area container
// whose bounds contain the node's bounds center. Frames and layout containers
// are both eligible.
func (r *Reparenter) resolveEntry(n *Node, bounds Rect) bool {
	center := bounds.Center()
	var best *Node
	var bestArea float64
	r.walk(func(c *Node) {
		if c.ID == n.ID || r.store.IsDescendantOf(c.ID, n.ID) {
			return
		}
		if c.Type != NodeFrame && !c.IsLayoutContainer() {
			return
		}
		cb, ok := r.sync.Info().Bounds(c.ID)
		if !ok || !cb.Contains(center.X, center.Y) {
			return
		}
		if best == nil || cb.Area() < bestArea {
			best = c
			bestArea = cb.Area()
		}
	})
	if best == nil {
		return false
	}

	release, ok := r.guard.acquire()
	if !ok {
		return false
	}
	defer release()

	tb, _ := r.sync.Info().Bounds(best.ID)
	if err := r.store.MoveNode(n.ID, best.ID, -1); err != nil {
		return false
	}
	if best.Layout == LayoutNone {
		rx := bounds.X - tb.X
		ry := bounds.Y - tb.Y
		r.store.UpdateNode(n.ID, NodeUpdate{X: &rx, Y: &ry})
	}
	// Layout targets keep no explicit position; MoveNode already cleared it.
	if r.log != nil {
		r.log.Debug("reparent entry", "node", n.ID, "into", best.ID)
	}
	return true
}

// walk visits every node in document order.
func (r *Reparenter) walk(fn func(*Node)) {
	var rec func(nodes []*Node)
	rec = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			rec(n.Children)
		}
	}
	rec(r.store.Roots())
}
