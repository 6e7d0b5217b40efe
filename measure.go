package easel

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the rendered extent of a text run at a given font size.
// The layout resolver uses it for intrinsic sizing of text nodes.
type Measurer interface {
	MeasureText(text string, fontSize float64) (width, height float64)
}

// faceMeasurer measures text with an x/image font face, scaling the result
// from the face's native size to the requested font size.
type faceMeasurer struct {
	face       font.Face
	nativeSize float64
}

// NewFaceMeasurer wraps an x/image font face. nativeSize is the point size
// the face was created at; measurements scale linearly from it.
func NewFaceMeasurer(face font.Face, nativeSize float64) Measurer {
	return &faceMeasurer{face: face, nativeSize: nativeSize}
}

// defaultMeasurer measures with the fixed 7x13 basic face. Good enough for
// layout purposes when no real font stack is attached.
func defaultMeasurer() Measurer {
	return &faceMeasurer{face: basicfont.Face7x13, nativeSize: 13}
}

// MeasureText returns the width of the widest line and the total height of
// all lines at the requested font size.
func (m *faceMeasurer) MeasureText(text string, fontSize float64) (width, height float64) {
	if text == "" {
		return 0, 0
	}
	if fontSize <= 0 {
		fontSize = m.nativeSize
	}
	scale := fontSize / m.nativeSize

	lines := strings.Split(text, "\n")
	metrics := m.face.Metrics()
	lineHeight := float64(metrics.Height.Round()) * scale

	var maxW float64
	for _, line := range lines {
		w := float64(font.MeasureString(m.face, line).Round()) * scale
		if w > maxW {
			maxW = w
		}
	}
	return maxW, lineHeight * float64(len(lines))
}

// isSingleLine reports whether a text run has exactly one line. Used by the
// layout resolver's optical centering correction.
func isSingleLine(text string) bool {
	return text != "" && !strings.Contains(text, "\n")
}
