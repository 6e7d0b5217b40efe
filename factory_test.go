package easel

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// recordingLoader records requests and hands the done callback to the test.
type recordingLoader struct {
	refs []string
	done func(*ebiten.Image)
}

func (l *recordingLoader) Load(ref string, done func(*ebiten.Image)) {
	l.refs = append(l.refs, ref)
	l.done = done
}

func TestResolveImageRequestsLoad(t *testing.T) {
	loader := &recordingLoader{}
	f := NewFactory(loader, nil)
	o := &Object{NodeID: "img", Kind: NodeImage}

	f.resolveImage(o, "assets/logo.png", nil)
	if !o.Placeholder {
		t.Error("object not marked as placeholder")
	}
	if len(loader.refs) != 1 || loader.refs[0] != "assets/logo.png" {
		t.Errorf("loader refs = %v", loader.refs)
	}
}

func TestResolveImageFailedLoadKeepsPlaceholder(t *testing.T) {
	loader := &recordingLoader{}
	f := NewFactory(loader, nil)
	o := &Object{NodeID: "img", Kind: NodeImage}

	f.resolveImage(o, "assets/missing.png", nil)
	loader.done(nil)
	if !o.Placeholder || o.Image != nil {
		t.Error("failed load should leave the placeholder in place")
	}
}

func TestResolveImageWithoutLoader(t *testing.T) {
	f := NewFactory(nil, nil)
	o := &Object{NodeID: "img", Kind: NodeImage}
	f.resolveImage(o, "assets/logo.png", nil)
	if !o.Placeholder {
		t.Error("object not marked as placeholder")
	}
}

func TestBuildFillsClampsGradients(t *testing.T) {
	fills := []Paint{{
		Kind: PaintGradient,
		Gradient: &Gradient{
			Stops: []GradientStop{{Offset: -1}, {Offset: 2}},
		},
	}}
	out := buildPaints(fills)
	assertNear(t, "stop0", out[0].Gradient.Stops[0].Offset, 0)
	assertNear(t, "stop1", out[0].Gradient.Stops[1].Offset, 1)
	// The source gradient is left untouched.
	assertNear(t, "src stop0", fills[0].Gradient.Stops[0].Offset, -1)
}
