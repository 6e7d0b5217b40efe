package easel

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImageLoader resolves an image asset reference asynchronously. done is
// invoked on the engine's own turn with the loaded bitmap, or nil when the
// asset cannot be resolved.
type ImageLoader interface {
	Load(ref string, done func(img *ebiten.Image))
}

// Factory builds scene objects from document nodes. Image nodes whose bitmap
// has not loaded yet receive a synchronous placeholder; the loader later
// swaps the real bitmap into the same object, preserving z-order and clip.
type Factory struct {
	loader ImageLoader
	images map[string]*ebiten.Image
	log    *log.Logger
}

// NewFactory creates a factory. loader may be nil, in which case image nodes
// keep their placeholder.
func NewFactory(loader ImageLoader, logger *log.Logger) *Factory {
	return &Factory{
		loader: loader,
		images: make(map[string]*ebiten.Image),
		log:    logger,
	}
}

// Build creates the scene object for a node, tagged with the node's id.
// Unresolved ref nodes yield nil.
func (f *Factory) Build(n *Node, store *DocumentStore, ri *RenderInfo, r *Resolver, surface Surface) *Object {
	src := n
	if n.Type == NodeRef {
		target := store.NodeByID(n.RefID)
		if target == nil {
			return nil
		}
		src = target
	}
	o := &Object{NodeID: n.ID, Kind: src.Type, ScaleX: 1, ScaleY: 1}
	f.Apply(o, n, store, ri, r)
	if src.Type == NodeImage {
		f.resolveImage(o, src.ImageRef, surface)
	}
	return o
}

// Apply copies a node's resolved geometry and style onto an existing object,
// leaving identity, selection, and edit state untouched. Used for both fresh
// builds and in-place sync updates.
func (f *Factory) Apply(o *Object, n *Node, store *DocumentStore, ri *RenderInfo, r *Resolver) {
	src := n
	if n.Type == NodeRef {
		if target := store.NodeByID(n.RefID); target != nil {
			src = target
		}
	}

	if b, ok := ri.Bounds(n.ID); ok {
		o.X, o.Y = b.X, b.Y
		o.Width, o.Height = b.Width, b.Height
	} else {
		o.X, o.Y = n.X, n.Y
		o.Width = r.ResolveWidth(src, Unbounded)
		o.Height = r.ResolveHeight(src, Unbounded)
	}
	o.ScaleX = n.ScaleX
	o.ScaleY = n.ScaleY
	o.Rotation = n.Rotation
	o.Opacity = n.Opacity
	o.Visible = n.Visible
	o.Clip = src.Clip
	o.TopLevel = store.ParentOf(n.ID) == nil

	o.Fills = buildPaints(src.Fills)
	if src.Stroke != nil {
		st := *src.Stroke
		o.Stroke = &st
	} else {
		o.Stroke = nil
	}
	if src.Shadow != nil {
		sh := *src.Shadow
		o.Shadow = &sh
	} else {
		o.Shadow = nil
	}

	o.Points = src.Points
	o.Text = src.Text
	o.FontSize = src.FontSize
}

// buildPaints copies fills, clamping gradient stop offsets into [0, 1].
func buildPaints(fills []Paint) []Paint {
	if fills == nil {
		return nil
	}
	out := make([]Paint, len(fills))
	for i, fl := range fills {
		if fl.Kind == PaintGradient && fl.Gradient != nil {
			g := *fl.Gradient
			g.Stops = clampStops(g.Stops)
			fl.Gradient = &g
		}
		out[i] = fl
	}
	return out
}

// resolveImage attaches the bitmap for ref to the object. A cached bitmap
// attaches synchronously; otherwise the object gets a placeholder and the
// loader swaps the bitmap in place once it arrives.
func (f *Factory) resolveImage(o *Object, ref string, surface Surface) {
	if img, ok := f.images[ref]; ok {
		o.Image = img
		o.Placeholder = false
		return
	}
	o.Placeholder = true
	if f.loader == nil {
		return
	}
	f.loader.Load(ref, func(img *ebiten.Image) {
		if img == nil {
			if f.log != nil {
				f.log.Warn("image load failed", "ref", ref)
			}
			return
		}
		f.images[ref] = img
		// Swap in place: same object keeps its z-order and clip path.
		o.Image = img
		o.Placeholder = false
		if surface != nil {
			surface.RequestRender()
		}
	})
}
