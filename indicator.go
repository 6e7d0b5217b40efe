package easel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Indicator is the ephemeral insertion line shown while reordering inside a
// layout container. Presentation-only; never persisted.
type Indicator struct {
	Position   Vec2 // line start, absolute scene coordinates
	Horizontal bool // line orientation
	Length     float64
	Alpha      float64
}

// Highlight is the ephemeral drop-target outline shown while dragging over a
// plain frame. Presentation-only; never persisted.
type Highlight struct {
	Bounds Rect
	Alpha  float64
}

// IndicatorLayer owns the canvas's transient drag visuals and their fade
// animation. The canvas advances it from Tick.
type IndicatorLayer struct {
	Insertion *Indicator
	Target    *Highlight

	fadeSeconds    float32
	insertionTween *gween.Tween
	targetTween    *gween.Tween
}

// NewIndicatorLayer creates a layer whose visuals fade in over fadeSeconds.
func NewIndicatorLayer(fadeSeconds float64) *IndicatorLayer {
	if fadeSeconds <= 0 {
		fadeSeconds = 0.12
	}
	return &IndicatorLayer{fadeSeconds: float32(fadeSeconds)}
}

// ShowInsertion publishes the insertion line. Re-showing at a new position
// keeps the current alpha rather than restarting the fade.
func (l *IndicatorLayer) ShowInsertion(pos Vec2, horizontal bool, length float64) {
	alpha := 0.0
	if l.Insertion != nil {
		alpha = l.Insertion.Alpha
	} else {
		l.insertionTween = gween.New(0, 1, l.fadeSeconds, ease.OutQuad)
	}
	l.Insertion = &Indicator{Position: pos, Horizontal: horizontal, Length: length, Alpha: alpha}
}

// ShowTarget publishes the drop-target highlight.
func (l *IndicatorLayer) ShowTarget(bounds Rect) {
	alpha := 0.0
	if l.Target != nil {
		alpha = l.Target.Alpha
	} else {
		l.targetTween = gween.New(0, 1, l.fadeSeconds, ease.OutQuad)
	}
	l.Target = &Highlight{Bounds: bounds, Alpha: alpha}
}

// ClearInsertion removes the insertion line immediately.
func (l *IndicatorLayer) ClearInsertion() {
	l.Insertion = nil
	l.insertionTween = nil
}

// ClearTarget removes the drop-target highlight immediately.
func (l *IndicatorLayer) ClearTarget() {
	l.Target = nil
	l.targetTween = nil
}

// Clear removes all visuals.
func (l *IndicatorLayer) Clear() {
	l.ClearInsertion()
	l.ClearTarget()
}

// Animating reports whether a fade tween is still running.
func (l *IndicatorLayer) Animating() bool {
	return l.insertionTween != nil || l.targetTween != nil
}

// Update advances the fade tweens by dt seconds.
func (l *IndicatorLayer) Update(dt float32) {
	if l.Insertion != nil && l.insertionTween != nil {
		v, done := l.insertionTween.Update(dt)
		l.Insertion.Alpha = float64(v)
		if done {
			l.insertionTween = nil
		}
	}
	if l.Target != nil && l.targetTween != nil {
		v, done := l.targetTween.Update(dt)
		l.Target.Alpha = float64(v)
		if done {
			l.targetTween = nil
		}
	}
}
