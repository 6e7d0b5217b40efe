package easel

import (
	"github.com/charmbracelet/log"
)

// syncGuard gates the document write path. The core holds it while writing
// gesture results back to the document so the syncer does not re-derive the
// scene from its own echo. It is deliberately not a counter: nesting acquire
// regions is a programming error, and the second acquire fails instead of
// silently stacking.
type syncGuard struct {
	held bool
}

// acquire takes the guard and returns its release. ok is false when the
// guard is already held.
func (g *syncGuard) acquire() (release func(), ok bool) {
	if g.held {
		return nil, false
	}
	g.held = true
	return func() { g.held = false }, true
}

// Syncer keeps the rendering surface consistent with the document. It
// subscribes to store changes, rebuilds the render-info cache, and
// reconciles scene objects against the flattened tree by id.
type Syncer struct {
	store    *DocumentStore
	surface  Surface
	factory  *Factory
	resolver *Resolver
	guard    *syncGuard
	info     *RenderInfo
	log      *log.Logger

	unsubscribe func()
}

// NewSyncer wires a syncer. Call Start to begin listening for changes.
func NewSyncer(store *DocumentStore, surface Surface, factory *Factory, resolver *Resolver, guard *syncGuard, logger *log.Logger) *Syncer {
	return &Syncer{
		store:    store,
		surface:  surface,
		factory:  factory,
		resolver: resolver,
		guard:    guard,
		info:     BuildRenderInfo(store, resolver),
		log:      logger,
	}
}

// Start subscribes to document changes.
func (s *Syncer) Start() {
	if s.unsubscribe != nil {
		return
	}
	s.unsubscribe = s.store.Subscribe(s.onChange)
}

// Stop unsubscribes from document changes.
func (s *Syncer) Stop() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Info returns the current render-info cache.
func (s *Syncer) Info() *RenderInfo {
	return s.info
}

// RebuildInfo recomputes the render-info cache from the current document.
func (s *Syncer) RebuildInfo() {
	s.info = BuildRenderInfo(s.store, s.resolver)
}

func (s *Syncer) onChange(c Change) {
	if s.guard.held {
		// The write came from this core's own bridge; the scene already
		// reflects it.
		return
	}
	// Geometry writes reflow layout just like structural ones, and Sync
	// sources bounds from the cache, so every unguarded change refreshes it.
	s.RebuildInfo()
	s.Sync()
}

// Sync reconciles the surface against the document: orphaned objects are
// removed, surviving ones updated in place (preserving identity, selection,
// and edit state), and missing ones created. Running Sync twice with no
// intervening mutation is a no-op.
func (s *Syncer) Sync() {
	if s.surface == nil {
		// No surface attached yet; the next poll retries.
		return
	}

	type desired struct {
		node *Node
		z    int
	}
	want := make(map[string]desired)
	z := 0
	var flatten func(nodes []*Node)
	flatten = func(nodes []*Node) {
		for _, n := range nodes {
			if n.Type == NodeRef && s.store.NodeByID(n.RefID) == nil {
				// Unresolved refs have no renderable counterpart.
				continue
			}
			want[n.ID] = desired{node: n, z: z}
			z++
			flatten(n.Children)
		}
	}
	flatten(s.store.Roots())

	// Remove orphans.
	objs := s.surface.Objects()
	orphans := make([]*Object, 0)
	for _, o := range objs {
		if _, ok := want[o.NodeID]; !ok {
			orphans = append(orphans, o)
		}
	}
	for _, o := range orphans {
		s.surface.RemoveObject(o)
	}

	// Update survivors in place, create the rest.
	created := 0
	for id, d := range want {
		if o := s.surface.ObjectByID(id); o != nil {
			s.factory.Apply(o, d.node, s.store, s.info, s.resolver)
			o.ZOrder = d.z
			continue
		}
		o := s.factory.Build(d.node, s.store, s.info, s.resolver, s.surface)
		if o == nil {
			continue
		}
		o.ZOrder = d.z
		s.surface.AddObject(o)
		created++
	}

	if s.log != nil && (created > 0 || len(orphans) > 0) {
		s.log.Debug("scene sync", "created", created, "removed", len(orphans), "total", len(s.surface.Objects()))
	}
	s.surface.RequestRender()
}
