package easel

// PaintKind distinguishes solid from gradient fills.
type PaintKind uint8

const (
	PaintSolid    PaintKind = iota // single color
	PaintGradient                  // linear gradient between From and To
)

// Paint is applied to a shape's interior. Multiple fills stack in order.
type Paint struct {
	Kind     PaintKind
	Color    Color
	Gradient *Gradient
}

// SolidPaint returns a solid color fill.
func SolidPaint(c Color) Paint {
	return Paint{Kind: PaintSolid, Color: c}
}

// Gradient is a linear gradient in the shape's local unit space: From and To
// are fractions of the shape's bounds.
type Gradient struct {
	From, To Vec2
	Stops    []GradientStop
}

// GradientStop is a color at a normalized offset along the gradient axis.
// Offsets outside [0, 1] are clamped when the scene object is built.
type GradientStop struct {
	Offset float64
	Color  Color
}

// Stroke is an outline paint.
type Stroke struct {
	Color Color
	Width float64
}

// Shadow is a drop shadow behind the shape.
type Shadow struct {
	OffsetX, OffsetY float64
	Blur             float64
	Color            Color
}

// clampStops returns a copy of stops with offsets clamped into [0, 1].
// The input is not mutated.
func clampStops(stops []GradientStop) []GradientStop {
	out := make([]GradientStop, len(stops))
	for i, s := range stops {
		if s.Offset < 0 {
			s.Offset = 0
		} else if s.Offset > 1 {
			s.Offset = 1
		}
		out[i] = s
	}
	return out
}
