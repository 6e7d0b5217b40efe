package easel

// renderEntry is the derived per-node record enabling coordinate conversion.
type renderEntry struct {
	ParentOffsetX float64
	ParentOffsetY float64
	IsLayoutChild bool
	Bounds        Rect // resolved absolute bounds at build time
}

// RenderInfo is the derived table mapping node ids to their parent's absolute
// origin. It is the sole mechanism for absolute<->relative coordinate
// conversion and is rebuilt whenever the document changes.
type RenderInfo struct {
	entries map[string]renderEntry
}

// BuildRenderInfo walks the document and resolves every node's absolute
// placement using the layout resolver.
func BuildRenderInfo(store *DocumentStore, r *Resolver) *RenderInfo {
	ri := &RenderInfo{entries: make(map[string]renderEntry)}
	for _, root := range store.Roots() {
		if !root.Visible {
			continue
		}
		w := r.ResolveWidth(root, Unbounded)
		h := r.ResolveHeight(root, Unbounded)
		ri.walk(root, 0, 0, root.X, root.Y, w, h, false, r)
	}
	return ri
}

func (ri *RenderInfo) walk(n *Node, offX, offY, relX, relY, w, h float64, layoutChild bool, r *Resolver) {
	absX := offX + relX
	absY := offY + relY
	ri.entries[n.ID] = renderEntry{
		ParentOffsetX: offX,
		ParentOffsetY: offY,
		IsLayoutChild: layoutChild,
		Bounds:        Rect{X: absX, Y: absY, Width: w, Height: h},
	}
	if !n.IsContainer() {
		return
	}
	isLayout := n.Layout != LayoutNone
	for _, g := range r.LayoutChildren(n, w, h) {
		ri.walk(g.Node, absX, absY, g.X, g.Y, g.Width, g.Height, isLayout, r)
	}
}

// AbsoluteToRelative converts an absolute scene position into the node's
// parent-relative coordinates. Unknown ids return the input unchanged.
func (ri *RenderInfo) AbsoluteToRelative(id string, ax, ay float64) (float64, float64) {
	e, ok := ri.entries[id]
	if !ok {
		return ax, ay
	}
	return ax - e.ParentOffsetX, ay - e.ParentOffsetY
}

// RelativeToAbsolute converts parent-relative coordinates into absolute scene
// position. Unknown ids return the input unchanged.
func (ri *RenderInfo) RelativeToAbsolute(id string, rx, ry float64) (float64, float64) {
	e, ok := ri.entries[id]
	if !ok {
		return rx, ry
	}
	return rx + e.ParentOffsetX, ry + e.ParentOffsetY
}

// IsLayoutChild reports whether the node's position is supplied by its
// parent's auto layout.
func (ri *RenderInfo) IsLayoutChild(id string) bool {
	return ri.entries[id].IsLayoutChild
}

// Bounds returns the node's resolved absolute bounds as of the last rebuild.
func (ri *RenderInfo) Bounds(id string) (Rect, bool) {
	e, ok := ri.entries[id]
	return e.Bounds, ok
}

// Has reports whether the table carries an entry for id.
func (ri *RenderInfo) Has(id string) bool {
	_, ok := ri.entries[id]
	return ok
}
