package easel

// GestureKind distinguishes what a gesture manipulates.
type GestureKind uint8

const (
	GestureMove   GestureKind = iota // translate the selection
	GestureResize                    // scale the selection
	GestureRotate                    // rotate the selection
)

// objectStart is one selected object's pre-gesture state.
type objectStart struct {
	x, y     float64
	scaleX   float64
	scaleY   float64
	rotation float64
}

// gestureState is the ephemeral session for one active gesture. Created on
// gesture start, discarded on gesture end; stale sessions from an abandoned
// gesture are cancelled before a new one begins.
type gestureState struct {
	ids     []string
	kind    GestureKind
	exclude map[string]bool
	starts  map[string]objectStart
	center  Vec2 // selection bounds center at gesture start

	propagate []*PropagateSession
	reorder   *ReorderSession
	dragInto  *DragIntoSession

	changed bool
}

// BeginGesture opens a gesture session over the given nodes. The undo batch
// opens speculatively here; it is cancelled at completion if nothing changed.
// Any session left over from an abandoned gesture is cancelled first so its
// state cannot leak into this one.
func (c *Canvas) BeginGesture(kind GestureKind, ids ...string) {
	if c.gesture != nil {
		c.CancelGesture()
	}
	if len(ids) == 0 {
		return
	}

	g := &gestureState{
		ids:     ids,
		kind:    kind,
		exclude: excludedSet(c.store, ids),
		starts:  make(map[string]objectStart, len(ids)),
	}

	var union Rect
	first := true
	for _, id := range ids {
		o := c.surface.ObjectByID(id)
		if o == nil {
			continue
		}
		g.starts[id] = objectStart{
			x: o.X, y: o.Y,
			scaleX: o.ScaleX, scaleY: o.ScaleY,
			rotation: o.Rotation,
		}
		if first {
			union = o.Bounds()
			first = false
		} else {
			union = union.Union(o.Bounds())
		}
	}
	if len(g.starts) == 0 {
		return
	}
	g.center = union.Center()

	c.undo.StartBatch(c.store.Snapshot())

	deps := c.sessionDeps()
	for _, id := range ids {
		if n := c.store.NodeByID(id); n != nil && n.IsContainer() {
			if p := NewPropagateSession(deps, c.bridge, id); p != nil {
				g.propagate = append(g.propagate, p)
			}
		}
	}
	if kind == GestureMove {
		g.reorder = NewReorderSession(deps, ids)
		if g.reorder == nil {
			g.dragInto = NewDragIntoSession(deps, ids)
		}
	}

	c.gesture = g
}

func (c *Canvas) sessionDeps() sessionDeps {
	return sessionDeps{
		store:      c.store,
		sync:       c.syncer,
		surface:    c.surface,
		indicators: c.indicators,
		guard:      c.guard,
		log:        c.log,
	}
}

// UpdateGesture applies the gesture's accumulated delta — translation, scale
// factor, rotation — to the selection. Deltas are absolute from gesture
// start. Scene objects update every frame; document writes go through the
// transform bridge in callback firing order.
func (c *Canvas) UpdateGesture(dx, dy, scale, rotation float64) {
	g := c.gesture
	if g == nil {
		return
	}
	if scale == 0 {
		scale = 1
	}

	// Snap move gestures against other top-level objects.
	if g.kind == GestureMove && scale == 1 && rotation == 0 {
		moving := c.selectionStartBounds(g)
		moving.X += dx
		moving.Y += dy
		sx, sy := c.guides.Snap(moving, g.exclude)
		dx += sx
		dy += sy
	} else {
		c.guides.Clear()
	}

	// Group transform about the selection's start center. Members are
	// expressed in group-relative space; composing the group matrix with
	// each member's local matrix recovers the absolute position.
	group := gestureGroupMatrix(g.center, dx, dy, scale, rotation)
	for _, id := range g.ids {
		o := c.surface.ObjectByID(id)
		if o == nil {
			continue
		}
		start, ok := g.starts[id]
		if !ok {
			continue
		}
		local := composeTransform(start.x, start.y, 1, 1, 0)
		pos := MemberAbsolutePosition(group, local)
		o.X, o.Y = pos.X, pos.Y
		o.ScaleX = start.scaleX * scale
		o.ScaleY = start.scaleY * scale
		o.Rotation = start.rotation + rotation
		c.bridge.ApplyObject(o)
	}
	for _, p := range g.propagate {
		p.Apply(dx, dy, scale, rotation)
	}

	if dx != 0 || dy != 0 || scale != 1 || rotation != 0 {
		g.changed = true
	}

	// Reorder/drag-into resolve against the selection centroid.
	centroid := c.selectionCentroid(g)
	if g.reorder != nil {
		g.reorder.Update(centroid)
	}
	if g.dragInto != nil {
		g.dragInto.Update(centroid)
	}
	c.surface.RequestRender()
}

// gestureGroupMatrix builds the selection's group transform: scale and
// rotation about the start center, then translation.
func gestureGroupMatrix(center Vec2, dx, dy, scale, rotation float64) [6]float64 {
	m := composeTransform(center.X+dx, center.Y+dy, 1, 1, 0)
	m = multiplyAffine(m, composeTransform(0, 0, scale, scale, rotation))
	return multiplyAffine(m, composeTransform(-center.X, -center.Y, 1, 1, 0))
}

// selectionStartBounds returns the union of the selection's pre-gesture
// bounds.
func (c *Canvas) selectionStartBounds(g *gestureState) Rect {
	var union Rect
	first := true
	for id, s := range g.starts {
		o := c.surface.ObjectByID(id)
		if o == nil {
			continue
		}
		b := Rect{X: s.x, Y: s.y, Width: o.Width * s.scaleX, Height: o.Height * s.scaleY}
		if first {
			union = b
			first = false
		} else {
			union = union.Union(b)
		}
	}
	return union
}

// selectionCentroid returns the center of the selection's current bounds.
func (c *Canvas) selectionCentroid(g *gestureState) Vec2 {
	var union Rect
	first := true
	for _, id := range g.ids {
		o := c.surface.ObjectByID(id)
		if o == nil {
			continue
		}
		if first {
			union = o.Bounds()
			first = false
		} else {
			union = union.Union(o.Bounds())
		}
	}
	return union.Center()
}

// EndGesture completes the active gesture: final geometry settles into the
// document, reorder/drag-into targets commit, reparenting resolves, the
// render-info cache rebuilds, and the undo batch closes on the next Tick so
// completion writes land inside it.
//
// Completing can synchronously re-trigger this handler; the re-entrancy
// guard makes the nested call a no-op.
func (c *Canvas) EndGesture() {
	if c.completing {
		return
	}
	g := c.gesture
	if g == nil {
		return
	}
	c.completing = true
	defer func() { c.completing = false }()
	c.gesture = nil

	c.guides.Clear()

	// Reorder within the parent wins over cross-container drops.
	if g.reorder != nil {
		if g.changed {
			g.reorder.Commit()
		} else {
			g.reorder.Cancel()
		}
	}
	if g.dragInto != nil {
		if g.changed {
			g.dragInto.Commit()
		} else {
			g.dragInto.Cancel()
		}
	}

	// The commits above may have changed parent offsets; completion
	// converts absolute positions against current offsets.
	c.syncer.RebuildInfo()

	wrote := false
	for _, id := range g.ids {
		if o := c.surface.ObjectByID(id); o != nil {
			if c.bridge.CompleteObject(o) {
				wrote = true
			}
		}
	}

	// A completed container now sits at its new origin; descendants settle
	// relative to that, not to where the container started.
	c.syncer.RebuildInfo()
	for _, p := range g.propagate {
		p.Commit()
	}

	// Reparent from post-gesture absolute bounds.
	for _, id := range g.ids {
		if o := c.surface.ObjectByID(id); o != nil {
			c.reparenter.Resolve(id, o.Bounds())
		}
	}

	c.syncer.RebuildInfo()
	c.syncer.Sync()

	if g.changed && wrote {
		// Deferred one frame so completion writes land inside the batch.
		c.defer1(func() { c.undo.EndBatch() })
	} else {
		c.undo.CancelBatch()
	}
}

// CancelGesture abandons the active gesture, restoring pre-gesture object
// state and cancelling all sessions so nothing leaks into the next gesture.
func (c *Canvas) CancelGesture() {
	g := c.gesture
	if g == nil {
		return
	}
	c.gesture = nil

	for id, s := range g.starts {
		o := c.surface.ObjectByID(id)
		if o == nil {
			continue
		}
		o.X, o.Y = s.x, s.y
		o.ScaleX, o.ScaleY = s.scaleX, s.scaleY
		o.Rotation = s.rotation
		// Per-frame document writes already landed; undo them the same way
		// they were made. Scale was never written mid-gesture.
		c.bridge.ApplyObject(o)
	}
	for _, p := range g.propagate {
		p.Cancel()
	}
	if g.reorder != nil {
		g.reorder.Cancel()
	}
	if g.dragInto != nil {
		g.dragInto.Cancel()
	}
	c.guides.Clear()
	c.indicators.Clear()
	c.undo.CancelBatch()
	c.syncer.Sync()
}
