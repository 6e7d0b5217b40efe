package easel

import (
	"strings"
	"testing"
)

const sampleDocument = `{
  "nodes": [
    {
      "id": "card", "type": "frame", "name": "card",
      "x": 40, "y": 40, "width": 320, "height": "fit",
      "layout": "vertical", "gap": 12, "padding": [16, 24],
      "justify": "center", "align": "center", "clip": true,
      "fills": [{"kind": "solid", "color": [1, 1, 1, 1]}],
      "children": [
        {
          "type": "text", "name": "title", "text": "Hello",
          "fontSize": 18, "width": "fit", "height": "fit",
          "opacity": 0.5
        },
        {
          "type": "rect", "name": "banner",
          "width": "fill", "height": 60,
          "fills": [{
            "kind": "gradient",
            "gradient": {
              "from": [0, 0], "to": [1, 0],
              "stops": [
                {"offset": -0.5, "color": [1, 0, 0, 1]},
                {"offset": 1.5, "color": [0, 0, 1, 1]}
              ]
            }
          }]
        }
      ]
    },
    {
      "type": "path", "name": "squiggle", "visible": false,
      "width": 40, "height": 30,
      "points": [[0, 0], [40, 10], [20, 30]],
      "stroke": {"color": [0, 0, 0, 1], "width": 2}
    }
  ]
}`

func TestParseDocumentBuildsTree(t *testing.T) {
	store, err := ParseDocument([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	roots := store.Roots()
	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}

	card := roots[0]
	if card.ID != "card" {
		t.Errorf("file id not kept: %q", card.ID)
	}
	if card.Type != NodeFrame || card.Layout != LayoutVertical {
		t.Error("frame layout not parsed")
	}
	if !card.Width.IsFixed() || card.Width.Px != 320 {
		t.Errorf("width = %+v", card.Width)
	}
	if card.Height.Mode != SizeFit {
		t.Errorf("height mode = %v", card.Height.Mode)
	}
	if card.Padding.Top != 16 || card.Padding.Left != 24 {
		t.Errorf("padding = %+v", card.Padding)
	}
	if card.Justify != JustifyCenter || card.Align != AlignCenter {
		t.Error("justify/align lost to defaults")
	}
	if !card.Clip {
		t.Error("clip not parsed")
	}

	if len(card.Children) != 2 {
		t.Fatalf("card children = %d", len(card.Children))
	}
	title := card.Children[0]
	if title.ID == "" {
		t.Error("missing id not assigned on insert")
	}
	if title.Text != "Hello" || title.FontSize != 18 {
		t.Error("text fields not parsed")
	}
	assertNear(t, "opacity", title.Opacity, 0.5)

	banner := card.Children[1]
	if banner.Width.Mode != SizeFill {
		t.Errorf("banner width mode = %v", banner.Width.Mode)
	}
	if len(banner.Fills) != 1 || banner.Fills[0].Kind != PaintGradient {
		t.Fatal("gradient fill not parsed")
	}
	stops := banner.Fills[0].Gradient.Stops
	assertNear(t, "stop0", stops[0].Offset, 0)
	assertNear(t, "stop1", stops[1].Offset, 1)
}

func TestParseDocumentPathNode(t *testing.T) {
	store, err := ParseDocument([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	squiggle := store.Roots()[1]
	if squiggle.Type != NodePath || len(squiggle.Points) != 3 {
		t.Fatal("path points not parsed")
	}
	if squiggle.Visible {
		t.Error("visible=false not honored")
	}
	// Native extent comes from the point cloud.
	assertNear(t, "native width", squiggle.NativeWidth, 40)
	assertNear(t, "native height", squiggle.NativeHeight, 30)
	if squiggle.Stroke == nil || squiggle.Stroke.Width != 2 {
		t.Error("stroke not parsed")
	}
}

func TestParseDocumentDefaults(t *testing.T) {
	store, err := ParseDocument([]byte(`{"nodes": [{"type": "rectangle", "name": "r", "width": 10, "height": 10}]}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	n := store.Roots()[0]
	if !n.Visible {
		t.Error("visibility should default on")
	}
	assertNear(t, "opacity", n.Opacity, 1)
	assertNear(t, "scaleX", n.ScaleX, 1)
	if n.Justify != JustifyStart || n.Align != AlignStart {
		t.Error("alignment defaults wrong")
	}
}

func TestParseDocumentUnknownNodeType(t *testing.T) {
	_, err := ParseDocument([]byte(`{"nodes": [{"type": "blob", "name": "b"}]}`))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unknown node type") {
		t.Errorf("error = %v", err)
	}
}

func TestParseDocumentUnknownFillKind(t *testing.T) {
	_, err := ParseDocument([]byte(`{"nodes": [{"type": "rect", "name": "r", "fills": [{"kind": "noise"}]}]}`))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unknown fill kind") {
		t.Errorf("error = %v", err)
	}
}

func TestParseDocumentMalformedJSON(t *testing.T) {
	if _, err := ParseDocument([]byte(`{"nodes": [`)); err == nil {
		t.Fatal("expected an error")
	}
}
