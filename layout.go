package easel

// Unbounded marks an undefined parent-available extent passed to the
// resolve functions.
const Unbounded = -1

// defaultOpticalNudge is the downward correction, as a fraction of font
// size, applied to horizontally-centered single-line text. Mathematical
// centering puts such text visually too high.
const defaultOpticalNudge = 0.08

// ChildGeometry is the resolved placement of one child, parent-relative.
// The layout resolver returns fresh records; input nodes are never mutated.
type ChildGeometry struct {
	Node   *Node
	X, Y   float64
	Width  float64
	Height float64
}

// Resolver turns symbolic sizing (fill/fit/fixed) and container layout
// attributes into concrete geometry. All methods are side-effect-free; the
// store reference is used only for ancestry lookups.
type Resolver struct {
	store        *DocumentStore
	measure      Measurer
	opticalNudge float64
}

// NewResolver creates a resolver. A nil measurer falls back to the built-in
// fixed-width face.
func NewResolver(store *DocumentStore, m Measurer) *Resolver {
	if m == nil {
		m = defaultMeasurer()
	}
	return &Resolver{store: store, measure: m, opticalNudge: defaultOpticalNudge}
}

// ResolveWidth computes the concrete width of a node given the parent's
// available extent (Unbounded when undefined).
//
// Fixed resolves to itself. Fill resolves to the parent extent when defined;
// for non-text nodes it then falls back to the nearest page-root frame width,
// and finally to the intrinsic width. Fit computes from children for
// containers and from intrinsic measurement for leaves.
func (r *Resolver) ResolveWidth(n *Node, parentAvailable float64) float64 {
	switch n.Width.Mode {
	case SizeFixed:
		return n.Width.Px
	case SizeFill:
		if parentAvailable >= 0 {
			return parentAvailable
		}
		if n.Type != NodeText {
			if w, ok := r.pageRootWidth(n); ok {
				return w
			}
		}
		w, _ := r.intrinsicSize(n)
		return w
	case SizeFit:
		if n.IsContainer() && len(n.Children) > 0 {
			return r.FitContentWidth(n)
		}
		w, _ := r.intrinsicSize(n)
		return w
	default:
		return 0
	}
}

// ResolveHeight is the vertical counterpart of ResolveWidth. Fill with an
// undefined parent extent falls back directly to intrinsic measurement; the
// page-root fallback applies to widths only.
func (r *Resolver) ResolveHeight(n *Node, parentAvailable float64) float64 {
	switch n.Height.Mode {
	case SizeFixed:
		return n.Height.Px
	case SizeFill:
		if parentAvailable >= 0 {
			return parentAvailable
		}
		_, h := r.intrinsicSize(n)
		return h
	case SizeFit:
		if n.IsContainer() && len(n.Children) > 0 {
			return r.FitContentHeight(n)
		}
		_, h := r.intrinsicSize(n)
		return h
	default:
		return 0
	}
}

// pageRootWidth walks to the node's topmost ancestor and returns its fixed
// width, if it is a frame with one.
func (r *Resolver) pageRootWidth(n *Node) (float64, bool) {
	if r.store == nil {
		return 0, false
	}
	top := n
	for p := r.store.ParentOf(top.ID); p != nil; p = r.store.ParentOf(top.ID) {
		top = p
	}
	if top != n && top.Type == NodeFrame && top.Width.IsFixed() {
		return top.Width.Px, true
	}
	return 0, false
}

// intrinsicSize returns the natural content-based extent of a leaf node.
func (r *Resolver) intrinsicSize(n *Node) (w, h float64) {
	switch n.Type {
	case NodeText:
		return r.measure.MeasureText(n.Text, n.FontSize)
	case NodeLine, NodePolygon, NodePath:
		return pointsExtent(n.Points)
	case NodeImage:
		return n.NativeWidth, n.NativeHeight
	default:
		return 0, 0
	}
}

// FitContentWidth computes a container's width from its visible children:
// horizontal layout sums main-axis sizes plus gaps and padding; vertical
// layout takes the widest child plus padding. Containers without auto layout
// use the children's bounding extent.
func (r *Resolver) FitContentWidth(n *Node) float64 {
	children := visibleChildren(n)
	if len(children) == 0 {
		return n.Padding.Horizontal()
	}
	switch n.Layout {
	case LayoutHorizontal:
		var sum float64
		for _, c := range children {
			sum += r.ResolveWidth(c, Unbounded)
		}
		sum += n.Gap * float64(len(children)-1)
		return sum + n.Padding.Horizontal()
	case LayoutVertical:
		var maxW float64
		for _, c := range children {
			if w := r.ResolveWidth(c, Unbounded); w > maxW {
				maxW = w
			}
		}
		return maxW + n.Padding.Horizontal()
	default:
		var maxExtent float64
		for _, c := range children {
			if e := c.X + r.ResolveWidth(c, Unbounded); e > maxExtent {
				maxExtent = e
			}
		}
		return maxExtent + n.Padding.Right
	}
}

// FitContentHeight is the vertical counterpart of FitContentWidth.
func (r *Resolver) FitContentHeight(n *Node) float64 {
	children := visibleChildren(n)
	if len(children) == 0 {
		return n.Padding.Vertical()
	}
	switch n.Layout {
	case LayoutVertical:
		var sum float64
		for _, c := range children {
			sum += r.ResolveHeight(c, Unbounded)
		}
		sum += n.Gap * float64(len(children)-1)
		return sum + n.Padding.Vertical()
	case LayoutHorizontal:
		var maxH float64
		for _, c := range children {
			if h := r.ResolveHeight(c, Unbounded); h > maxH {
				maxH = h
			}
		}
		return maxH + n.Padding.Vertical()
	default:
		var maxExtent float64
		for _, c := range children {
			if e := c.Y + r.ResolveHeight(c, Unbounded); e > maxExtent {
				maxExtent = e
			}
		}
		return maxExtent + n.Padding.Bottom
	}
}

// visibleChildren filters hidden children; only visible ones participate in
// layout.
func visibleChildren(n *Node) []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// LayoutChildren computes the parent-relative placement of every visible
// child of parent, whose own resolved outer size is parentW x parentH.
//
// Layout mode none returns the children unchanged (stored position, resolved
// size). Otherwise a two-pass flex pass runs: fixed and fit main-axis sizes
// resolve first, the remainder distributes evenly across fill children, then
// cross-axis sizes resolve normally and justify/align place each child.
func (r *Resolver) LayoutChildren(parent *Node, parentW, parentH float64) []ChildGeometry {
	children := visibleChildren(parent)
	if len(children) == 0 {
		return nil
	}

	contentW := parentW - parent.Padding.Horizontal()
	contentH := parentH - parent.Padding.Vertical()

	if parent.Layout == LayoutNone {
		out := make([]ChildGeometry, len(children))
		for i, c := range children {
			out[i] = ChildGeometry{
				Node:   c,
				X:      c.X,
				Y:      c.Y,
				Width:  r.ResolveWidth(c, contentW),
				Height: r.ResolveHeight(c, contentH),
			}
		}
		return out
	}

	horizontal := parent.Layout == LayoutHorizontal
	mainAvail := contentH
	crossAvail := contentW
	if horizontal {
		mainAvail, crossAvail = contentW, contentH
	}

	// Pass 1: resolve fixed and fit main-axis sizes, defer fill children.
	mainSizes := make([]float64, len(children))
	var fixedTotal float64
	var fillCount int
	for i, c := range children {
		if mainSizing(c, horizontal).Mode == SizeFill {
			fillCount++
			continue
		}
		mainSizes[i] = r.resolveMain(c, horizontal, Unbounded)
		fixedTotal += mainSizes[i]
	}

	// Pass 2: distribute the remainder evenly across fill children.
	gapTotal := parent.Gap * float64(len(children)-1)
	if fillCount > 0 {
		remaining := mainAvail - fixedTotal - gapTotal
		if remaining < 0 {
			remaining = 0
		}
		share := remaining / float64(fillCount)
		for i, c := range children {
			if mainSizing(c, horizontal).Mode == SizeFill {
				mainSizes[i] = share
			}
		}
	}

	// Cross-axis sizes resolve normally for all children.
	crossSizes := make([]float64, len(children))
	for i, c := range children {
		crossSizes[i] = r.resolveCross(c, horizontal, crossAvail)
	}

	// Main-axis start offset and inter-child spacing by justify.
	var total float64
	for _, m := range mainSizes {
		total += m
	}
	offset, spacing := justifyPlacement(parent.Justify, mainAvail, total, gapTotal, parent.Gap, len(children))

	out := make([]ChildGeometry, len(children))
	for i, c := range children {
		cross := r.alignOffset(parent, c, horizontal, crossAvail, crossSizes[i])
		g := ChildGeometry{Node: c, Width: crossSizes[i], Height: mainSizes[i]}
		if horizontal {
			g.Width, g.Height = mainSizes[i], crossSizes[i]
			g.X = parent.Padding.Left + offset
			g.Y = parent.Padding.Top + cross
		} else {
			g.X = parent.Padding.Left + cross
			g.Y = parent.Padding.Top + offset
		}
		out[i] = g
		offset += mainSizes[i] + spacing
	}
	return out
}

// mainSizing returns the child's sizing attribute on the container's main axis.
func mainSizing(c *Node, horizontal bool) Sizing {
	if horizontal {
		return c.Width
	}
	return c.Height
}

// resolveMain resolves the child's main-axis size.
func (r *Resolver) resolveMain(c *Node, horizontal bool, avail float64) float64 {
	if horizontal {
		return r.ResolveWidth(c, avail)
	}
	return r.ResolveHeight(c, avail)
}

// resolveCross resolves the child's cross-axis size.
func (r *Resolver) resolveCross(c *Node, horizontal bool, avail float64) float64 {
	if horizontal {
		return r.ResolveHeight(c, avail)
	}
	return r.ResolveWidth(c, avail)
}

// justifyPlacement returns the main-axis start offset and the spacing added
// after each child.
//
// space_between with a single child degrades to zero spacing rather than
// dividing by zero; space_around ignores the configured gap entirely.
func justifyPlacement(j Justify, avail, total, gapTotal, gap float64, n int) (offset, spacing float64) {
	free := avail - total - gapTotal
	switch j {
	case JustifyCenter:
		return free / 2, gap
	case JustifyEnd:
		return free, gap
	case JustifySpaceBetween:
		if n > 1 {
			return 0, (avail - total) / float64(n-1)
		}
		return 0, 0
	case JustifySpaceAround:
		s := (avail - total) / float64(n)
		return s / 2, s
	default: // JustifyStart
		return 0, gap
	}
}

// alignOffset returns the child's cross-axis offset within the content box.
// Horizontally-centered single-line text gets a downward optical nudge
// proportional to its font size. When the child fits, the offset is clamped
// into the valid range.
func (r *Resolver) alignOffset(parent, c *Node, horizontal bool, crossAvail, childCross float64) float64 {
	var off float64
	switch parent.Align {
	case AlignCenter:
		off = (crossAvail - childCross) / 2
		if horizontal && c.Type == NodeText && isSingleLine(c.Text) {
			off += c.FontSize * r.opticalNudge
		}
	case AlignEnd:
		off = crossAvail - childCross
	default:
		off = 0
	}
	if childCross <= crossAvail {
		if off < 0 {
			off = 0
		}
		if max := crossAvail - childCross; off > max {
			off = max
		}
	}
	return off
}
