package easel

import (
	"github.com/charmbracelet/log"
)

// TransformBridge writes gesture-driven scene mutations back into the
// document model, converting absolute scene coordinates to parent-relative
// ones via the render-info cache. Every write is bracketed by the sync guard
// so the syncer never re-derives the scene from its own echo.
type TransformBridge struct {
	store *DocumentStore
	sync  *Syncer
	guard *syncGuard
	log   *log.Logger
}

// NewTransformBridge wires a bridge to the store and syncer.
func NewTransformBridge(store *DocumentStore, sync *Syncer, guard *syncGuard, logger *log.Logger) *TransformBridge {
	return &TransformBridge{store: store, sync: sync, guard: guard, log: logger}
}

// ApplyObject writes an object's current position and rotation to its node.
// Runs on every gesture frame; sizing is settled separately on completion.
// Lookups that fail abort silently.
func (b *TransformBridge) ApplyObject(o *Object) {
	if o == nil {
		return
	}
	n := b.store.NodeByID(o.NodeID)
	if n == nil {
		return
	}
	release, ok := b.guard.acquire()
	if !ok {
		return
	}
	defer release()

	rx, ry := b.sync.Info().AbsoluteToRelative(o.NodeID, o.X, o.Y)
	rot := o.Rotation
	b.store.UpdateNode(o.NodeID, NodeUpdate{X: &rx, Y: &ry, Rotation: &rot})
}

// CompleteObject settles an object's final geometry into the document at
// gesture end.
//
// Ordinary shapes bake accumulated scale into stored width/height and reset
// scale to 1. Shapes whose rendered size derives from their own geometry data
// (paths, polygons, lines) instead retain the scale and recompute size from
// the cached native dimension; baking would corrupt the point data.
//
// Degenerate results (near-zero bounds) are discarded rather than committed.
// Returns whether a write happened.
func (b *TransformBridge) CompleteObject(o *Object) bool {
	if o == nil {
		return false
	}
	n := b.store.NodeByID(o.NodeID)
	if n == nil {
		return false
	}
	if o.Bounds().IsDegenerate() {
		if b.log != nil {
			b.log.Debug("discarding degenerate gesture result", "node", o.NodeID)
		}
		return false
	}
	release, ok := b.guard.acquire()
	if !ok {
		return false
	}
	defer release()

	rx, ry := b.sync.Info().AbsoluteToRelative(o.NodeID, o.X, o.Y)
	rot := o.Rotation
	u := NodeUpdate{X: &rx, Y: &ry, Rotation: &rot}

	if n.ScaleRetaining() {
		sx, sy := o.ScaleX, o.ScaleY
		w := Fixed(n.NativeWidth * sx)
		h := Fixed(n.NativeHeight * sy)
		u.ScaleX, u.ScaleY = &sx, &sy
		u.Width, u.Height = &w, &h
	} else {
		one := 1.0
		w := Fixed(o.Width * o.ScaleX)
		h := Fixed(o.Height * o.ScaleY)
		u.ScaleX, u.ScaleY = &one, &one
		u.Width, u.Height = &w, &h
		o.Width, o.Height = w.Px, h.Px
		o.ScaleX, o.ScaleY = 1, 1
	}
	b.store.UpdateNode(o.NodeID, u)
	return true
}

// MemberAbsolutePosition recovers a group member's absolute position by
// composing the group transform with the member's local matrix and
// transforming the member's local origin. Multi-selection members are
// expressed in group-relative space, so their own translation alone is not
// an absolute position.
func MemberAbsolutePosition(group, local [6]float64) Vec2 {
	m := multiplyAffine(group, local)
	x, y := transformPoint(m, 0, 0)
	return Vec2{X: x, Y: y}
}
