package easel

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// View is the ebiten-backed rendering surface: a SceneList plus a zoom/pan
// view transform and an immediate renderer for the retained objects. One
// View backs one Canvas.
type View struct {
	*SceneList

	zoom       float64
	panX, panY float64

	viewMatrix [6]float64
	invMatrix  [6]float64
	dirty      bool

	needsRender bool
	white       *ebiten.Image
	textCache   map[string]*textCacheEntry
}

// textCacheEntry is a rasterized text run keyed by node id.
type textCacheEntry struct {
	text string
	size float64
	img  *ebiten.Image
}

// NewView creates a view at zoom 1 with no pan.
func NewView() *View {
	return &View{
		SceneList: NewSceneList(),
		zoom:      1,
		dirty:     true,
		textCache: make(map[string]*textCacheEntry),
	}
}

// SetZoom sets the view scale factor (1 = 100%).
func (v *View) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	v.zoom = z
	v.dirty = true
	v.needsRender = true
}

// Zoom returns the current scale factor.
func (v *View) Zoom() float64 { return v.zoom }

// SetPan sets the scene coordinates of the device origin.
func (v *View) SetPan(x, y float64) {
	v.panX, v.panY = x, y
	v.dirty = true
	v.needsRender = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Scale(zoom) * Translate(-panX, -panY)
func (v *View) computeViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false
	z := v.zoom
	v.viewMatrix = [6]float64{z, 0, 0, z, -z * v.panX, -z * v.panY}
	v.invMatrix = invertAffine(v.viewMatrix)
	return v.viewMatrix
}

// DeviceToScene converts device (window) coordinates to scene coordinates.
func (v *View) DeviceToScene(x, y float64) (float64, float64) {
	v.computeViewMatrix()
	return transformPoint(v.invMatrix, x, y)
}

// SceneToDevice converts scene coordinates to device coordinates.
func (v *View) SceneToDevice(x, y float64) (float64, float64) {
	m := v.computeViewMatrix()
	return transformPoint(m, x, y)
}

// RequestRender flags the view for redraw on the next Draw call.
func (v *View) RequestRender() { v.needsRender = true }

// NeedsRender reports and clears the pending redraw flag.
func (v *View) NeedsRender() bool {
	n := v.needsRender
	v.needsRender = false
	return n
}

// whitePixel returns the shared 1x1 white source image for triangle fills.
func (v *View) whitePixel() *ebiten.Image {
	if v.white == nil {
		v.white = ebiten.NewImage(1, 1)
		v.white.Fill(color.White)
	}
	return v.white
}

// Draw renders every visible object in z-order, then the transient overlay
// (guides, indicators) when a canvas is supplied.
func (v *View) Draw(screen *ebiten.Image, canvas *Canvas) {
	v.computeViewMatrix()

	objs := append([]*Object(nil), v.Objects()...)
	// Insertion sort by z-order; scenes are mostly sorted already.
	for i := 1; i < len(objs); i++ {
		for j := i; j > 0 && objs[j-1].ZOrder > objs[j].ZOrder; j-- {
			objs[j-1], objs[j] = objs[j], objs[j-1]
		}
	}
	for _, o := range objs {
		if o.Visible {
			v.drawObject(screen, o)
		}
	}
	if canvas != nil {
		v.drawOverlay(screen, canvas)
	}
}

func (v *View) drawObject(screen *ebiten.Image, o *Object) {
	b := o.Bounds()
	dx, dy := v.SceneToDevice(b.X, b.Y)
	dw := b.Width * v.zoom
	dh := b.Height * v.zoom

	if o.Shadow != nil {
		sx := dx + o.Shadow.OffsetX*v.zoom
		sy := dy + o.Shadow.OffsetY*v.zoom
		vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(dw), float32(dh),
			toNRGBA(o.Shadow.Color, o.Opacity), true)
	}

	fill, hasFill := objectFillColor(o)

	switch o.Kind {
	case NodeEllipse:
		if hasFill {
			v.fillFan(screen, ellipsePerimeter(dx+dw/2, dy+dh/2, dw/2, dh/2, 48), fill, o.Opacity)
		}
		if o.Stroke != nil {
			v.strokeLoop(screen, ellipsePerimeter(dx+dw/2, dy+dh/2, dw/2, dh/2, 48), o.Stroke, o.Opacity)
		}
	case NodeLine:
		if len(o.Points) >= 2 && o.Stroke != nil {
			pts := v.devicePoints(o, b)
			for i := 1; i < len(pts); i++ {
				vector.StrokeLine(screen,
					float32(pts[i-1].X), float32(pts[i-1].Y),
					float32(pts[i].X), float32(pts[i].Y),
					float32(o.Stroke.Width*v.zoom), toNRGBA(o.Stroke.Color, o.Opacity), true)
			}
		}
	case NodePolygon, NodePath:
		pts := v.devicePoints(o, b)
		if hasFill && o.Kind == NodePolygon {
			v.fillFan(screen, pts, fill, o.Opacity)
		}
		if o.Stroke != nil {
			v.strokeLoop(screen, pts, o.Stroke, o.Opacity)
		}
	case NodeImage:
		if o.Image != nil {
			var op ebiten.DrawImageOptions
			iw, ih := o.Image.Bounds().Dx(), o.Image.Bounds().Dy()
			if iw > 0 && ih > 0 {
				op.GeoM.Scale(dw/float64(iw), dh/float64(ih))
			}
			op.GeoM.Translate(dx, dy)
			op.ColorScale.ScaleAlpha(float32(o.Opacity))
			screen.DrawImage(o.Image, &op)
		} else {
			// Placeholder until the loader swaps the bitmap in.
			vector.DrawFilledRect(screen, float32(dx), float32(dy), float32(dw), float32(dh),
				toNRGBA(Color{0.85, 0.85, 0.85, 1}, o.Opacity), true)
		}
	case NodeText:
		v.drawText(screen, o, dx, dy)
	default: // frame, rectangle, group, ref
		if hasFill {
			vector.DrawFilledRect(screen, float32(dx), float32(dy), float32(dw), float32(dh),
				toNRGBA(fill, o.Opacity), true)
		}
		if o.Stroke != nil {
			vector.StrokeRect(screen, float32(dx), float32(dy), float32(dw), float32(dh),
				float32(o.Stroke.Width*v.zoom), toNRGBA(o.Stroke.Color, o.Opacity), true)
		}
	}

	if o.Selected {
		vector.StrokeRect(screen, float32(dx), float32(dy), float32(dw), float32(dh),
			1.5, color.NRGBA{R: 0x2c, G: 0x7f, B: 0xff, A: 0xff}, true)
	}
}

// devicePoints maps an object's local geometry points to device space,
// applying the object's scale and rotation about its center.
func (v *View) devicePoints(o *Object, b Rect) []Vec2 {
	c := b.Center()
	out := make([]Vec2, len(o.Points))
	for i, p := range o.Points {
		x := b.X + p.X*o.ScaleX
		y := b.Y + p.Y*o.ScaleY
		if o.Rotation != 0 {
			x, y = rotateAboutPoint(x, y, c.X, c.Y, o.Rotation)
		}
		dxp, dyp := v.SceneToDevice(x, y)
		out[i] = Vec2{X: dxp, Y: dyp}
	}
	return out
}

// fillFan fills a convex perimeter with a triangle fan through the shared
// white pixel, the same submission path the renderer uses for meshes.
func (v *View) fillFan(screen *ebiten.Image, pts []Vec2, c Color, opacity float64) {
	if len(pts) < 3 {
		return
	}
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	r := float32(c.R)
	g := float32(c.G)
	bl := float32(c.B)
	a := float32(c.A * opacity)

	verts := make([]ebiten.Vertex, 0, len(pts)+1)
	verts = append(verts, ebiten.Vertex{
		DstX: float32(cx), DstY: float32(cy), SrcX: 0.5, SrcY: 0.5,
		ColorR: r * a, ColorG: g * a, ColorB: bl * a, ColorA: a,
	})
	for _, p := range pts {
		verts = append(verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y), SrcX: 0.5, SrcY: 0.5,
			ColorR: r * a, ColorG: g * a, ColorB: bl * a, ColorA: a,
		})
	}
	indices := make([]uint16, 0, len(pts)*3)
	for i := 1; i <= len(pts); i++ {
		next := i + 1
		if next > len(pts) {
			next = 1
		}
		indices = append(indices, 0, uint16(i), uint16(next))
	}
	op := &ebiten.DrawTrianglesOptions{}
	screen.DrawTriangles(verts, indices, v.whitePixel(), op)
}

// ellipsePerimeter samples segments points around an ellipse centered at
// (cx, cy) with radii rx, ry.
func ellipsePerimeter(cx, cy, rx, ry float64, segments int) []Vec2 {
	if segments < 3 {
		segments = 3
	}
	out := make([]Vec2, segments)
	step := 2 * math.Pi / float64(segments)
	for i := range out {
		a := float64(i) * step
		out[i] = Vec2{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return out
}

// strokeLoop strokes a closed perimeter.
func (v *View) strokeLoop(screen *ebiten.Image, pts []Vec2, s *Stroke, opacity float64) {
	if len(pts) < 2 {
		return
	}
	clr := toNRGBA(s.Color, opacity)
	w := float32(s.Width * v.zoom)
	for i := 0; i < len(pts); i++ {
		next := (i + 1) % len(pts)
		vector.StrokeLine(screen,
			float32(pts[i].X), float32(pts[i].Y),
			float32(pts[next].X), float32(pts[next].Y), w, clr, true)
	}
}

// drawText rasterizes the text run through the basic face and blits it. The
// rasterization is cached per node until text or size changes.
func (v *View) drawText(screen *ebiten.Image, o *Object, dx, dy float64) {
	if o.Text == "" {
		return
	}
	entry := v.textCache[o.NodeID]
	if entry == nil || entry.text != o.Text || entry.size != o.FontSize {
		entry = &textCacheEntry{text: o.Text, size: o.FontSize, img: rasterizeText(o.Text)}
		v.textCache[o.NodeID] = entry
	}
	if entry.img == nil {
		return
	}
	iw, ih := entry.img.Bounds().Dx(), entry.img.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	scale := 1.0
	if o.FontSize > 0 {
		scale = o.FontSize / 13 * v.zoom
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(dx, dy)
	op.ColorScale.ScaleAlpha(float32(o.Opacity))
	screen.DrawImage(entry.img, &op)
}

// rasterizeText renders text with the fixed basic face into an image.
func rasterizeText(text string) *ebiten.Image {
	face := basicfont.Face7x13
	lines := splitLines(text)
	lineH := face.Metrics().Height.Round()
	var maxW int
	for _, line := range lines {
		if w := font.MeasureString(face, line).Round(); w > maxW {
			maxW = w
		}
	}
	if maxW == 0 {
		return nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, maxW, lineH*len(lines)))
	d := font.Drawer{Dst: rgba, Src: image.Black, Face: face}
	ascent := face.Metrics().Ascent.Round()
	for i, line := range lines {
		d.Dot = fixed.P(0, ascent+i*lineH)
		d.DrawString(line)
	}
	return ebiten.NewImageFromImage(rgba)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// drawOverlay renders guides and drag indicators above the scene.
func (v *View) drawOverlay(screen *ebiten.Image, c *Canvas) {
	guideColor := color.NRGBA{R: 0xff, G: 0x3b, B: 0x8d, A: 0xff}
	for _, g := range c.Guides() {
		switch g.Axis {
		case AxisX:
			x, y0 := v.SceneToDevice(g.Pos, g.Start)
			_, y1 := v.SceneToDevice(g.Pos, g.End)
			vector.StrokeLine(screen, float32(x), float32(y0), float32(x), float32(y1), 1, guideColor, true)
		case AxisY:
			x0, y := v.SceneToDevice(g.Start, g.Pos)
			x1, _ := v.SceneToDevice(g.End, g.Pos)
			vector.StrokeLine(screen, float32(x0), float32(y), float32(x1), float32(y), 1, guideColor, true)
		}
	}

	ind := c.Indicators()
	if ins := ind.Insertion; ins != nil {
		clr := color.NRGBA{R: 0x2c, G: 0x7f, B: 0xff, A: uint8(math.Round(255 * ins.Alpha))}
		x, y := v.SceneToDevice(ins.Position.X, ins.Position.Y)
		if ins.Horizontal {
			vector.StrokeLine(screen, float32(x), float32(y), float32(x+ins.Length*v.zoom), float32(y), 2, clr, true)
		} else {
			vector.StrokeLine(screen, float32(x), float32(y), float32(x), float32(y+ins.Length*v.zoom), 2, clr, true)
		}
	}
	if t := ind.Target; t != nil {
		clr := color.NRGBA{R: 0x2c, G: 0x7f, B: 0xff, A: uint8(math.Round(160 * t.Alpha))}
		x, y := v.SceneToDevice(t.Bounds.X, t.Bounds.Y)
		vector.StrokeRect(screen, float32(x), float32(y),
			float32(t.Bounds.Width*v.zoom), float32(t.Bounds.Height*v.zoom), 2, clr, true)
	}
}

// objectFillColor flattens the object's fill stack to a single draw color.
// Gradients contribute their mean stop color; shading beyond that belongs to
// the styling layer, not this core.
func objectFillColor(o *Object) (Color, bool) {
	for i := len(o.Fills) - 1; i >= 0; i-- {
		f := o.Fills[i]
		switch f.Kind {
		case PaintSolid:
			return f.Color, true
		case PaintGradient:
			if f.Gradient == nil || len(f.Gradient.Stops) == 0 {
				continue
			}
			var c Color
			for _, s := range f.Gradient.Stops {
				c.R += s.Color.R
				c.G += s.Color.G
				c.B += s.Color.B
				c.A += s.Color.A
			}
			n := float64(len(f.Gradient.Stops))
			return Color{R: c.R / n, G: c.G / n, B: c.B / n, A: c.A / n}, true
		}
	}
	return Color{}, false
}

// toNRGBA converts a Color with an extra opacity multiplier to image/color.
func toNRGBA(c Color, opacity float64) color.NRGBA {
	clamp := func(v float64) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(math.Round(v * 255))
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A * opacity)}
}
