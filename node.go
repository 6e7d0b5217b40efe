package easel

// NodeType distinguishes the document-node variants. A single flat struct is
// used for all node types to avoid interface dispatch on the hot path; the
// type tag selects which fields are meaningful.
type NodeType uint8

const (
	NodeFrame     NodeType = iota // top-level or nested container with optional auto layout
	NodeRectangle                 // axis-aligned rectangle shape
	NodeEllipse                   // ellipse inscribed in the node's bounds
	NodeLine                      // straight segment defined by Points
	NodePolygon                   // closed polygon defined by Points
	NodePath                      // open or closed bezier path defined by Points
	NodeText                      // single- or multi-line text run
	NodeImage                     // bitmap from an external asset reference
	NodeGroup                     // loose grouping container with no own geometry
	NodeRef                       // reference to another node (component instance)
)

// String returns the lowercase tag name used in serialized documents.
func (t NodeType) String() string {
	switch t {
	case NodeFrame:
		return "frame"
	case NodeRectangle:
		return "rectangle"
	case NodeEllipse:
		return "ellipse"
	case NodeLine:
		return "line"
	case NodePolygon:
		return "polygon"
	case NodePath:
		return "path"
	case NodeText:
		return "text"
	case NodeImage:
		return "image"
	case NodeGroup:
		return "group"
	case NodeRef:
		return "ref"
	default:
		return "unknown"
	}
}

// LayoutMode selects how a container positions its children.
type LayoutMode uint8

const (
	LayoutNone       LayoutMode = iota // children keep their explicit x/y
	LayoutVertical                     // children stacked top-to-bottom
	LayoutHorizontal                   // children laid out left-to-right
)

// Node is a single element of the hierarchical design document.
//
// X and Y are parent-relative. For children of a layout container the stored
// position is meaningless: the document store forces it to zero on every
// write and the layout resolver supplies the real position.
type Node struct {
	// Identity
	ID   string
	Name string
	Type NodeType

	// Transform (parent-relative)
	X, Y     float64
	Rotation float64 // radians
	ScaleX   float64 // retained only for path/polygon nodes; 1 elsewhere
	ScaleY   float64

	// Sizing
	Width  Sizing
	Height Sizing

	// Native dimensions of geometry-derived shapes (paths, polygons) and
	// images, cached so resize gestures can recompute size without baking
	// scale into the point data.
	NativeWidth  float64
	NativeHeight float64

	// Visibility & interaction
	Opacity float64
	Visible bool
	Locked  bool

	// Container fields (frames and groups)
	Children []*Node
	Layout   LayoutMode
	Gap      float64
	Padding  Padding
	Justify  Justify
	Align    Align
	Clip     bool

	// Style
	Fills  []Paint
	Stroke *Stroke
	Shadow *Shadow

	// Text fields (NodeText)
	Text     string
	FontSize float64

	// Geometry data (NodeLine, NodePolygon, NodePath)
	Points []Vec2

	// Image fields (NodeImage)
	ImageRef string

	// Ref fields (NodeRef). An empty or unresolvable target produces no
	// scene object.
	RefID string
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.Opacity = 1
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.Justify = JustifyStart
	n.Align = AlignStart
}

// NewFrame creates a frame container with fixed dimensions and no auto layout.
func NewFrame(name string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeFrame, Width: Fixed(w), Height: Fixed(h)}
	nodeDefaults(n)
	return n
}

// NewRectangle creates a rectangle shape node.
func NewRectangle(name string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeRectangle, Width: Fixed(w), Height: Fixed(h)}
	nodeDefaults(n)
	return n
}

// NewEllipse creates an ellipse shape node inscribed in w x h.
func NewEllipse(name string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeEllipse, Width: Fixed(w), Height: Fixed(h)}
	nodeDefaults(n)
	return n
}

// NewText creates a text node sized to fit its content.
func NewText(name, content string, fontSize float64) *Node {
	n := &Node{Name: name, Type: NodeText, Text: content, FontSize: fontSize,
		Width: Fit(), Height: Fit()}
	nodeDefaults(n)
	return n
}

// NewImage creates an image node. The bitmap is resolved asynchronously by the
// scene factory's loader; until then the node renders as a placeholder.
func NewImage(name, ref string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeImage, ImageRef: ref,
		Width: Fixed(w), Height: Fixed(h), NativeWidth: w, NativeHeight: h}
	nodeDefaults(n)
	return n
}

// NewGroup creates a group container that fits its children.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeGroup, Width: Fit(), Height: Fit()}
	nodeDefaults(n)
	return n
}

// NewPath creates a path node from points, caching the native bounding box so
// resize gestures can retain scale instead of baking it into the points.
func NewPath(name string, points []Vec2) *Node {
	n := &Node{Name: name, Type: NodePath, Points: points}
	nodeDefaults(n)
	w, h := pointsExtent(points)
	n.NativeWidth = w
	n.NativeHeight = h
	n.Width = Fixed(w)
	n.Height = Fixed(h)
	return n
}

// NewPolygon creates a closed polygon node from points.
func NewPolygon(name string, points []Vec2) *Node {
	n := NewPath(name, points)
	n.Type = NodePolygon
	return n
}

// NewLine creates a line node between two points.
func NewLine(name string, from, to Vec2) *Node {
	n := NewPath(name, []Vec2{from, to})
	n.Type = NodeLine
	return n
}

// IsContainer reports whether the node can hold children.
func (n *Node) IsContainer() bool {
	return n.Type == NodeFrame || n.Type == NodeGroup
}

// IsLayoutContainer reports whether the node auto-positions its children.
func (n *Node) IsLayoutContainer() bool {
	return n.IsContainer() && n.Layout != LayoutNone
}

// ScaleRetaining reports whether resize gestures keep scale on the node
// instead of baking it into Width/Height. Shapes whose rendered size derives
// from their own geometry data would be corrupted by baking.
func (n *Node) ScaleRetaining() bool {
	return n.Type == NodePath || n.Type == NodePolygon || n.Type == NodeLine
}

// pointsExtent returns the width and height of the bounding box of points.
func pointsExtent(points []Vec2) (w, h float64) {
	if len(points) == 0 {
		return 0, 0
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxX - minX, maxY - minY
}
