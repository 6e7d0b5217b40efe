package easel

import (
	"encoding/json"
	"fmt"
	"os"
)

// documentNode is the JSON shape of one node in a saved document. Width,
// Height and Padding stay untyped so the lenient parsers decide what a
// number, string or object means.
type documentNode struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Rotation float64        `json:"rotation"`
	Width    any            `json:"width"`
	Height   any            `json:"height"`
	Layout   string         `json:"layout"`
	Gap      float64        `json:"gap"`
	Padding  any            `json:"padding"`
	Justify  string         `json:"justify"`
	Align    string         `json:"align"`
	Clip     bool           `json:"clip"`
	Opacity  *float64       `json:"opacity"`
	Visible  *bool          `json:"visible"`
	Locked   bool           `json:"locked"`
	Fills    []documentFill `json:"fills"`
	Stroke   *struct {
		Color [4]float64 `json:"color"`
		Width float64    `json:"width"`
	} `json:"stroke"`
	Shadow *struct {
		Color   [4]float64 `json:"color"`
		OffsetX float64    `json:"offsetX"`
		OffsetY float64    `json:"offsetY"`
		Blur    float64    `json:"blur"`
	} `json:"shadow"`
	Text     string         `json:"text"`
	FontSize float64        `json:"fontSize"`
	Points   [][2]float64   `json:"points"`
	Image    string         `json:"image"`
	Ref      string         `json:"ref"`
	Children []documentNode `json:"children"`
}

type documentFill struct {
	Kind     string     `json:"kind"`
	Color    [4]float64 `json:"color"`
	Gradient *struct {
		From  [2]float64 `json:"from"`
		To    [2]float64 `json:"to"`
		Stops []struct {
			Offset float64    `json:"offset"`
			Color  [4]float64 `json:"color"`
		} `json:"stops"`
	} `json:"gradient"`
}

type documentFile struct {
	Nodes []documentNode `json:"nodes"`
}

// LoadDocument reads a JSON document file and builds a populated store.
func LoadDocument(path string) (*DocumentStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes a JSON document and builds a populated store.
// Node ids from the file are kept; missing ids are assigned on insert.
func ParseDocument(data []byte) (*DocumentStore, error) {
	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	store := NewDocumentStore()
	for i := range doc.Nodes {
		if err := insertDocumentNode(store, &doc.Nodes[i], ""); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func insertDocumentNode(store *DocumentStore, dn *documentNode, parentID string) error {
	n, err := buildDocumentNode(dn)
	if err != nil {
		return err
	}
	if err := store.AddNode(parentID, n); err != nil {
		return fmt.Errorf("insert %q: %w", dn.Name, err)
	}
	for i := range dn.Children {
		if err := insertDocumentNode(store, &dn.Children[i], n.ID); err != nil {
			return err
		}
	}
	return nil
}

func buildDocumentNode(dn *documentNode) (*Node, error) {
	t, err := parseNodeType(dn.Type)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", dn.Name, err)
	}
	n := &Node{
		ID:       dn.ID,
		Name:     dn.Name,
		Type:     t,
		X:        dn.X,
		Y:        dn.Y,
		Rotation: dn.Rotation,
		Width:    ParseSizing(dn.Width),
		Height:   ParseSizing(dn.Height),
		Layout:   ParseLayoutMode(dn.Layout),
		Gap:      dn.Gap,
		Padding:  ParsePadding(dn.Padding),
		Clip:     dn.Clip,
		Locked:   dn.Locked,
		Text:     dn.Text,
		FontSize: dn.FontSize,
		ImageRef: dn.Image,
		RefID:    dn.Ref,
	}
	nodeDefaults(n)
	// Defaults reset alignment, so parse these after.
	n.Justify = ParseJustify(dn.Justify)
	n.Align = ParseAlign(dn.Align)
	if dn.Opacity != nil {
		n.Opacity = *dn.Opacity
	}
	if dn.Visible != nil {
		n.Visible = *dn.Visible
	}
	for _, p := range dn.Points {
		n.Points = append(n.Points, Vec2{X: p[0], Y: p[1]})
	}
	switch {
	case n.ScaleRetaining():
		n.NativeWidth, n.NativeHeight = pointsExtent(n.Points)
	case t == NodeImage:
		if n.Width.IsFixed() {
			n.NativeWidth = n.Width.Px
		}
		if n.Height.IsFixed() {
			n.NativeHeight = n.Height.Px
		}
	}
	for _, f := range dn.Fills {
		fill, err := buildDocumentFill(f)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", dn.Name, err)
		}
		n.Fills = append(n.Fills, fill)
	}
	if dn.Stroke != nil {
		n.Stroke = &Stroke{Color: colorFrom(dn.Stroke.Color), Width: dn.Stroke.Width}
	}
	if dn.Shadow != nil {
		n.Shadow = &Shadow{
			Color:   colorFrom(dn.Shadow.Color),
			OffsetX: dn.Shadow.OffsetX,
			OffsetY: dn.Shadow.OffsetY,
			Blur:    dn.Shadow.Blur,
		}
	}
	return n, nil
}

func buildDocumentFill(f documentFill) (Paint, error) {
	switch f.Kind {
	case "", "solid":
		return SolidPaint(colorFrom(f.Color)), nil
	case "gradient":
		if f.Gradient == nil {
			return Paint{}, fmt.Errorf("gradient fill without gradient body")
		}
		g := &Gradient{
			From: Vec2{X: f.Gradient.From[0], Y: f.Gradient.From[1]},
			To:   Vec2{X: f.Gradient.To[0], Y: f.Gradient.To[1]},
		}
		for _, s := range f.Gradient.Stops {
			g.Stops = append(g.Stops, GradientStop{Offset: s.Offset, Color: colorFrom(s.Color)})
		}
		g.Stops = clampStops(g.Stops)
		return Paint{Kind: PaintGradient, Gradient: g}, nil
	default:
		return Paint{}, fmt.Errorf("unknown fill kind %q", f.Kind)
	}
}

func parseNodeType(s string) (NodeType, error) {
	switch s {
	case "frame":
		return NodeFrame, nil
	case "rectangle", "rect":
		return NodeRectangle, nil
	case "ellipse":
		return NodeEllipse, nil
	case "line":
		return NodeLine, nil
	case "polygon":
		return NodePolygon, nil
	case "path":
		return NodePath, nil
	case "text":
		return NodeText, nil
	case "image":
		return NodeImage, nil
	case "group":
		return NodeGroup, nil
	case "ref":
		return NodeRef, nil
	default:
		return 0, fmt.Errorf("unknown node type %q", s)
	}
}

func colorFrom(c [4]float64) Color {
	return Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}
