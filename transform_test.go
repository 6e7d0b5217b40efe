package easel

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func assertRect(t *testing.T, name string, got, want Rect) {
	t.Helper()
	assertNear(t, name+".X", got.X, want.X)
	assertNear(t, name+".Y", got.Y, want.Y)
	assertNear(t, name+".Width", got.Width, want.Width)
	assertNear(t, name+".Height", got.Height, want.Height)
}

// --- composeTransform ---

func TestComposeIdentity(t *testing.T) {
	got := composeTransform(0, 0, 1, 1, 0)
	assertMatrix(t, "identity", got, identityTransform)
}

func TestComposeTranslation(t *testing.T) {
	got := composeTransform(10, 20, 1, 1, 0)
	assertMatrix(t, "translation", got, [6]float64{1, 0, 0, 1, 10, 20})
}

func TestComposeScale(t *testing.T) {
	got := composeTransform(0, 0, 2, 3, 0)
	assertMatrix(t, "scale", got, [6]float64{2, 0, 0, 3, 0, 0})
}

func TestComposeRotation90(t *testing.T) {
	got := composeTransform(0, 0, 1, 1, math.Pi/2)
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", got, [6]float64{0, 1, -1, 0, 0, 0})
}

// --- multiplyAffine ---

func TestMultiplyIdentity(t *testing.T) {
	m := composeTransform(5, 7, 2, 2, 0.3)
	assertMatrix(t, "left identity", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "right identity", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyTranslations(t *testing.T) {
	a := composeTransform(10, 0, 1, 1, 0)
	b := composeTransform(0, 20, 1, 1, 0)
	assertMatrix(t, "combined", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestMultiplyScaleThenTranslate(t *testing.T) {
	// parent translates, child scales: point (1,1) → scaled (2,2) → moved (12,22)
	p := composeTransform(10, 20, 1, 1, 0)
	c := composeTransform(0, 0, 2, 2, 0)
	x, y := transformPoint(multiplyAffine(p, c), 1, 1)
	assertNear(t, "x", x, 12)
	assertNear(t, "y", y, 22)
}

// --- invertAffine ---

func TestInvertRoundTrip(t *testing.T) {
	m := composeTransform(12, -7, 2, 0.5, 0.4)
	inv := invertAffine(m)
	x, y := transformPoint(m, 3, 4)
	bx, by := transformPoint(inv, x, y)
	assertNear(t, "x", bx, 3)
	assertNear(t, "y", by, 4)
}

func TestInvertSingular(t *testing.T) {
	got := invertAffine([6]float64{0, 0, 0, 0, 5, 5})
	assertMatrix(t, "singular", got, identityTransform)
}

// --- rotateAboutPoint ---

func TestRotateAboutPoint(t *testing.T) {
	x, y := rotateAboutPoint(10, 0, 0, 0, math.Pi/2)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 10)

	x, y = rotateAboutPoint(60, 50, 50, 50, math.Pi)
	assertNear(t, "cx", x, 40)
	assertNear(t, "cy", y, 50)
}

// --- MemberAbsolutePosition ---

func TestMemberAbsolutePositionTranslation(t *testing.T) {
	group := composeTransform(100, 50, 1, 1, 0)
	local := composeTransform(10, 20, 1, 1, 0)
	pos := MemberAbsolutePosition(group, local)
	assertNear(t, "x", pos.X, 110)
	assertNear(t, "y", pos.Y, 70)
}

func TestMemberAbsolutePositionScaledGroup(t *testing.T) {
	// Group scales 2x about the origin: a member at (10, 0) lands at (20, 0).
	group := composeTransform(0, 0, 2, 2, 0)
	local := composeTransform(10, 0, 1, 1, 0)
	pos := MemberAbsolutePosition(group, local)
	assertNear(t, "x", pos.X, 20)
	assertNear(t, "y", pos.Y, 0)
}
