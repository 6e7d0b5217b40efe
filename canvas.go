package easel

import (
	"github.com/charmbracelet/log"
)

// Canvas owns one editing surface: the document store, the syncer keeping the
// rendering scene consistent, and all gesture state. Session state lives here
// rather than in package globals so multiple canvases can coexist.
type Canvas struct {
	store      *DocumentStore
	surface    Surface
	resolver   *Resolver
	factory    *Factory
	syncer     *Syncer
	bridge     *TransformBridge
	reparenter *Reparenter
	guides     *GuideEngine
	indicators *IndicatorLayer
	undo       UndoLog
	tuning     Tuning
	guard      *syncGuard
	log        *log.Logger
	measurer   Measurer
	loader     ImageLoader

	selection []string
	gesture   *gestureState
	deferred  []func()

	// completing guards the gesture-completion handler: committing a change
	// can synchronously re-trigger completion (e.g. discarding a selection).
	completing bool
}

// CanvasOption configures a Canvas at construction.
type CanvasOption func(*Canvas)

// WithTuning overrides the interaction constants.
func WithTuning(t Tuning) CanvasOption {
	return func(c *Canvas) { c.tuning = t }
}

// WithUndoLog attaches an external undo log.
func WithUndoLog(u UndoLog) CanvasOption {
	return func(c *Canvas) { c.undo = u }
}

// WithImageLoader attaches an asynchronous image loader.
func WithImageLoader(l ImageLoader) CanvasOption {
	return func(c *Canvas) { c.loader = l }
}

// WithMeasurer overrides the text measurer used for intrinsic sizing.
func WithMeasurer(m Measurer) CanvasOption {
	return func(c *Canvas) { c.measurer = m }
}

// WithLogger overrides the canvas logger.
func WithLogger(l *log.Logger) CanvasOption {
	return func(c *Canvas) { c.log = l }
}

// WithStore adopts an existing document store, e.g. one populated by
// LoadDocument, instead of starting from an empty document.
func WithStore(s *DocumentStore) CanvasOption {
	return func(c *Canvas) { c.store = s }
}

// NewCanvas creates a canvas reconciling the given surface against a fresh
// document. The syncer starts listening immediately.
func NewCanvas(surface Surface, opts ...CanvasOption) *Canvas {
	c := &Canvas{
		surface: surface,
		store:   NewDocumentStore(),
		tuning:  DefaultTuning(),
		guard:   &syncGuard{},
		undo:    NewMemoryUndoLog(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = loggerForTuning(c.tuning)
	}
	c.resolver = NewResolver(c.store, c.measurer)
	c.factory = NewFactory(c.loader, c.log)
	c.syncer = NewSyncer(c.store, surface, c.factory, c.resolver, c.guard, c.log)
	c.bridge = NewTransformBridge(c.store, c.syncer, c.guard, c.log)
	c.reparenter = NewReparenter(c.store, c.syncer, c.guard, c.log)
	c.guides = NewGuideEngine(surface, c.tuning.SnapThreshold)
	c.indicators = NewIndicatorLayer(c.tuning.IndicatorFade)
	c.syncer.Start()
	// An adopted store may already hold nodes that predate the subscription.
	c.syncer.Sync()
	// Guides are stale the moment the document structure shifts under them.
	c.store.Subscribe(func(ch Change) {
		if ch.Kind == ChangeStructure {
			c.guides.Clear()
		}
	})
	return c
}

// Store returns the canvas's document store. Automation producers feed
// subtrees through it like any other caller.
func (c *Canvas) Store() *DocumentStore { return c.store }

// Surface returns the rendering surface the canvas reconciles against.
func (c *Canvas) Surface() Surface { return c.surface }

// Syncer returns the scene syncer.
func (c *Canvas) Syncer() *Syncer { return c.syncer }

// Guides returns the currently published alignment guides.
func (c *Canvas) Guides() []Guide { return c.guides.Guides }

// Indicators returns the transient drag visual layer.
func (c *Canvas) Indicators() *IndicatorLayer { return c.indicators }

// Undo returns the canvas's undo log.
func (c *Canvas) Undo() UndoLog { return c.undo }

// SetSelection replaces the current selection, updating object edit state.
func (c *Canvas) SetSelection(ids ...string) {
	for _, id := range c.selection {
		if o := c.surface.ObjectByID(id); o != nil {
			o.Selected = false
		}
	}
	c.selection = append(c.selection[:0], ids...)
	for _, id := range ids {
		if o := c.surface.ObjectByID(id); o != nil {
			o.Selected = true
		}
	}
	c.surface.RequestRender()
}

// Selection returns the selected node ids in selection order.
func (c *Canvas) Selection() []string { return c.selection }

// Tick advances per-frame canvas state: deferred completion actions run
// first, then indicator animations. Call once per frame with the elapsed
// seconds.
func (c *Canvas) Tick(dt float32) {
	if len(c.deferred) > 0 {
		pending := c.deferred
		c.deferred = nil
		for _, fn := range pending {
			fn()
		}
	}
	c.indicators.Update(dt)
	if c.indicators.Animating() && c.surface != nil {
		c.surface.RequestRender()
	}
}

// defer1 schedules fn for the next Tick. Completion writes that must land
// inside the gesture's undo batch use this to delay the batch close.
func (c *Canvas) defer1(fn func()) {
	c.deferred = append(c.deferred, fn)
}
