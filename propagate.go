package easel

// propEntry is one descendant's pre-gesture absolute transform.
type propEntry struct {
	id       string
	x, y     float64
	scaleX   float64
	scaleY   float64
	rotation float64
}

// PropagateSession cascades a moving/scaling/rotating container's transform
// to its descendants in real time. Descendant scene objects are mutated
// directly each frame — visual only, no document writes — and the accumulated
// result is committed once at gesture end so the undo batch sees a single
// write per descendant.
type PropagateSession struct {
	deps        sessionDeps
	bridge      *TransformBridge
	containerID string
	center      Vec2 // container center at gesture start
	entries     []propEntry
	active      bool
}

// NewPropagateSession snapshots the container's descendants at gesture start.
// Returns nil when the container has no descendants on the surface.
func NewPropagateSession(deps sessionDeps, bridge *TransformBridge, containerID string) *PropagateSession {
	container := deps.store.NodeByID(containerID)
	if container == nil || !container.IsContainer() || len(container.Children) == 0 {
		return nil
	}
	cb, ok := deps.sync.Info().Bounds(containerID)
	if !ok {
		return nil
	}

	var entries []propEntry
	var rec func(nodes []*Node)
	rec = func(nodes []*Node) {
		for _, n := range nodes {
			if o := deps.surface.ObjectByID(n.ID); o != nil {
				entries = append(entries, propEntry{
					id:       n.ID,
					x:        o.X,
					y:        o.Y,
					scaleX:   o.ScaleX,
					scaleY:   o.ScaleY,
					rotation: o.Rotation,
				})
			}
			rec(n.Children)
		}
	}
	rec(container.Children)
	if len(entries) == 0 {
		return nil
	}

	return &PropagateSession{
		deps:        deps,
		bridge:      bridge,
		containerID: containerID,
		center:      cb.Center(),
		entries:     entries,
		active:      true,
	}
}

// Apply applies the container's accumulated gesture delta — translation,
// uniform scale factor, and rotation about the container's start center — to
// every snapshotted descendant's scene object. Called every frame; deltas are
// absolute from gesture start, not incremental.
func (p *PropagateSession) Apply(dx, dy, scale, rotation float64) {
	if !p.active {
		return
	}
	if scale == 0 {
		scale = 1
	}
	for _, e := range p.entries {
		o := p.deps.surface.ObjectByID(e.id)
		if o == nil {
			continue
		}
		x := p.center.X + (e.x-p.center.X)*scale
		y := p.center.Y + (e.y-p.center.Y)*scale
		if rotation != 0 {
			x, y = rotateAboutPoint(x, y, p.center.X, p.center.Y, rotation)
		}
		o.X = x + dx
		o.Y = y + dy
		o.ScaleX = e.scaleX * scale
		o.ScaleY = e.scaleY * scale
		o.Rotation = e.rotation + rotation
	}
	p.deps.surface.RequestRender()
}

// Commit writes the accumulated descendant transforms to the document in one
// pass. Per-frame applications never touched the document, so the enclosing
// undo batch records exactly one write per descendant.
func (p *PropagateSession) Commit() {
	if !p.active {
		return
	}
	p.active = false
	for _, e := range p.entries {
		if o := p.deps.surface.ObjectByID(e.id); o != nil {
			p.bridge.CompleteObject(o)
		}
	}
}

// Cancel restores the snapshotted transforms on the scene objects and ends
// the session without writing.
func (p *PropagateSession) Cancel() {
	if !p.active {
		return
	}
	p.active = false
	for _, e := range p.entries {
		o := p.deps.surface.ObjectByID(e.id)
		if o == nil {
			continue
		}
		o.X, o.Y = e.x, e.y
		o.ScaleX, o.ScaleY = e.scaleX, e.scaleY
		o.Rotation = e.rotation
	}
	p.deps.surface.RequestRender()
}
