package easel

// SizeMode specifies how a Sizing value is interpreted.
type SizeMode uint8

const (
	SizeFixed SizeMode = iota // absolute pixels
	SizeFill                  // stretch to the parent's available extent
	SizeFit                   // shrink to content
)

// Sizing represents a dimension that is either a pixel literal or one of the
// symbolic modes "fill" / "fit".
type Sizing struct {
	Mode SizeMode
	Px   float64
}

// Fixed returns a Sizing with an absolute pixel value.
func Fixed(px float64) Sizing {
	return Sizing{Mode: SizeFixed, Px: px}
}

// Fill returns a Sizing that stretches to available space.
func Fill() Sizing {
	return Sizing{Mode: SizeFill}
}

// Fit returns a Sizing that shrinks to content.
func Fit() Sizing {
	return Sizing{Mode: SizeFit}
}

// IsFixed reports whether the sizing resolves without parent or content input.
func (s Sizing) IsFixed() bool { return s.Mode == SizeFixed }

// ParseSizing converts a serialized sizing value (number | "fill" | "fit")
// into a Sizing. Malformed values fall back to a fixed zero size rather than
// failing the document load.
func ParseSizing(v any) Sizing {
	switch t := v.(type) {
	case float64:
		return Fixed(t)
	case int:
		return Fixed(float64(t))
	case string:
		switch t {
		case "fill":
			return Fill()
		case "fit":
			return Fit()
		}
	}
	return Fixed(0)
}

// Padding is the inner spacing of a container on four sides.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// PaddingAll returns uniform padding on all sides.
func PaddingAll(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns Left + Right.
func (p Padding) Horizontal() float64 { return p.Left + p.Right }

// Vertical returns Top + Bottom.
func (p Padding) Vertical() float64 { return p.Top + p.Bottom }

// ParsePadding converts a serialized padding value into a Padding. Accepted
// shapes: uniform number, [vertical, horizontal], [top, right, bottom, left].
// Anything else yields zero padding.
func ParsePadding(v any) Padding {
	switch t := v.(type) {
	case float64:
		return PaddingAll(t)
	case int:
		return PaddingAll(float64(t))
	case []any:
		nums := make([]float64, 0, len(t))
		for _, e := range t {
			switch n := e.(type) {
			case float64:
				nums = append(nums, n)
			case int:
				nums = append(nums, float64(n))
			default:
				return Padding{}
			}
		}
		switch len(nums) {
		case 2:
			return Padding{Top: nums[0], Right: nums[1], Bottom: nums[0], Left: nums[1]}
		case 4:
			return Padding{Top: nums[0], Right: nums[1], Bottom: nums[2], Left: nums[3]}
		}
	}
	return Padding{}
}

// Justify specifies how children are distributed along the main axis.
type Justify uint8

const (
	JustifyStart        Justify = iota // pack at start
	JustifyCenter                      // center children
	JustifyEnd                         // pack at end
	JustifySpaceBetween                // even space between, none at edges
	JustifySpaceAround                 // even space around each child
)

// Align specifies how children are positioned on the cross axis.
type Align uint8

const (
	AlignStart  Align = iota // align to start of cross axis
	AlignCenter              // center on cross axis
	AlignEnd                 // align to end of cross axis
)

// ParseJustify normalizes a serialized justify string, accepting common CSS
// aliases. Unknown values default to start.
func ParseJustify(s string) Justify {
	switch s {
	case "start", "flex-start", "left", "top":
		return JustifyStart
	case "center":
		return JustifyCenter
	case "end", "flex-end", "right", "bottom":
		return JustifyEnd
	case "space_between", "space-between", "between":
		return JustifySpaceBetween
	case "space_around", "space-around", "around":
		return JustifySpaceAround
	default:
		return JustifyStart
	}
}

// ParseAlign normalizes a serialized align string, accepting common CSS
// aliases. Unknown values default to start.
func ParseAlign(s string) Align {
	switch s {
	case "start", "flex-start", "left", "top":
		return AlignStart
	case "center":
		return AlignCenter
	case "end", "flex-end", "right", "bottom":
		return AlignEnd
	default:
		return AlignStart
	}
}

// ParseLayoutMode normalizes a serialized layout mode string. Unknown values
// default to none.
func ParseLayoutMode(s string) LayoutMode {
	switch s {
	case "vertical", "column":
		return LayoutVertical
	case "horizontal", "row":
		return LayoutHorizontal
	default:
		return LayoutNone
	}
}
