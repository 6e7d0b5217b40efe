package easel

import "math"

// Axis identifies which coordinate a guide constrains.
type Axis uint8

const (
	AxisX Axis = iota // vertical guide line at a fixed x
	AxisY             // horizontal guide line at a fixed y
)

// Guide is an ephemeral alignment line published while a snap is active. Pos
// is the snapped coordinate on Axis; Start/End span the union of both
// objects' perpendicular extents.
type Guide struct {
	Axis       Axis
	Pos        float64
	Start, End float64
}

// GuideEngine computes snap deltas and alignment guides during move
// gestures. Candidates are the edge and center positions of other visible
// top-level objects; per axis the smallest delta under the zoom-normalized
// threshold wins.
type GuideEngine struct {
	surface   Surface
	threshold float64 // device pixels at zoom 1
	Guides    []Guide
}

// NewGuideEngine creates a guide engine with the given device-pixel
// threshold.
func NewGuideEngine(surface Surface, threshold float64) *GuideEngine {
	return &GuideEngine{surface: surface, threshold: threshold}
}

// snapCandidate is one axis value of a candidate object.
type snapCandidate struct {
	value  float64
	bounds Rect
}

// Snap computes the position adjustment for the moving bounds and publishes
// matching guides. exclude lists the node ids of the current selection.
// Returns the per-axis deltas to add to the dragged position (zero when no
// candidate is within threshold).
func (g *GuideEngine) Snap(moving Rect, exclude map[string]bool) (dx, dy float64) {
	g.Guides = g.Guides[:0]
	if g.surface == nil {
		return 0, 0
	}
	zoom := g.surface.Zoom()
	if zoom <= 0 {
		zoom = 1
	}
	threshold := g.threshold / zoom

	var xs, ys []snapCandidate
	for _, o := range g.surface.Objects() {
		if !o.Visible || !o.TopLevel || exclude[o.NodeID] {
			continue
		}
		b := o.Bounds()
		xs = append(xs,
			snapCandidate{b.X, b},
			snapCandidate{b.X + b.Width, b},
			snapCandidate{b.X + b.Width/2, b})
		ys = append(ys,
			snapCandidate{b.Y, b},
			snapCandidate{b.Y + b.Height, b},
			snapCandidate{b.Y + b.Height/2, b})
	}

	movingXs := []float64{moving.X, moving.X + moving.Width, moving.X + moving.Width/2}
	movingYs := []float64{moving.Y, moving.Y + moving.Height, moving.Y + moving.Height/2}

	dx, bestX := bestSnap(movingXs, xs, threshold)
	dy, bestY := bestSnap(movingYs, ys, threshold)

	if bestX != nil {
		snapped := Rect{X: moving.X + dx, Y: moving.Y, Width: moving.Width, Height: moving.Height}
		g.Guides = append(g.Guides, Guide{
			Axis:  AxisX,
			Pos:   bestX.value,
			Start: math.Min(snapped.Y, bestX.bounds.Y),
			End:   math.Max(snapped.Y+snapped.Height, bestX.bounds.Y+bestX.bounds.Height),
		})
	}
	if bestY != nil {
		snapped := Rect{X: moving.X, Y: moving.Y + dy, Width: moving.Width, Height: moving.Height}
		g.Guides = append(g.Guides, Guide{
			Axis:  AxisY,
			Pos:   bestY.value,
			Start: math.Min(snapped.X, bestY.bounds.X),
			End:   math.Max(snapped.X+snapped.Width, bestY.bounds.X+bestY.bounds.Width),
		})
	}
	return dx, dy
}

// bestSnap returns the smallest delta within threshold between any moving
// value and any candidate, plus the winning candidate.
func bestSnap(movingVals []float64, candidates []snapCandidate, threshold float64) (float64, *snapCandidate) {
	var best *snapCandidate
	var bestDelta float64
	for i := range candidates {
		for _, mv := range movingVals {
			delta := candidates[i].value - mv
			if math.Abs(delta) > threshold {
				continue
			}
			if best == nil || math.Abs(delta) < math.Abs(bestDelta) {
				best = &candidates[i]
				bestDelta = delta
			}
		}
	}
	return bestDelta, best
}

// Clear drops all published guides. Called on gesture end and on any
// structural modification.
func (g *GuideEngine) Clear() {
	g.Guides = g.Guides[:0]
}
