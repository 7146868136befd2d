package sink

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Roman-/img2pdf/pkg/layout"
)

func TestPNGPreview(t *testing.T) {
	plan := testPlan(t, 5, layout.SeparatorSolid)
	s := NewPNG(WithPage(1))
	out, err := Emit(plan, s)
	if err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 794 || b.Dy() != 1123 {
		t.Errorf("preview size = %dx%d, want 794x1123", b.Dx(), b.Dy())
	}

	// The vertical divider sits at 105mm, about 397px at 96 DPI.
	darkest := uint32(0xffff)
	for x := 395; x <= 398; x++ {
		r, _, _, _ := img.At(x, 300).RGBA()
		darkest = min(darkest, r)
	}
	if darkest > 0x8000 {
		t.Errorf("no separator drawn near x=397 (darkest red = %#x)", darkest)
	}

	// Page corner stays white.
	if r, g, b, _ := img.At(2, 2).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("corner pixel = %x,%x,%x, want white", r, g, b)
	}
}

func TestPNGPageOutOfRange(t *testing.T) {
	plan := testPlan(t, 3, layout.SeparatorNone)
	if _, err := Emit(plan, NewPNG(WithPage(4))); err == nil {
		t.Error("Emit() should fail for a page beyond the plan")
	}
}

func TestPNGDPI(t *testing.T) {
	plan := testPlan(t, 1, layout.SeparatorNone)
	s := NewPNG(WithDPI(25.4))
	if _, err := Emit(plan, s); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if b := s.Image().Bounds(); b.Dx() != 210 || b.Dy() != 297 {
		t.Errorf("preview size = %dx%d, want 210x297", b.Dx(), b.Dy())
	}
}

func TestPNGFill(t *testing.T) {
	plan := testPlan(t, 1, layout.SeparatorNone)

	s := NewPNG(WithFill(""))
	if _, err := Emit(plan, s); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if _, _, _, a := s.Image().At(2, 2).RGBA(); a != 0 {
		t.Errorf("corner alpha = %#x, want transparent", a)
	}

	s = NewPNG(WithFill("#ff0000"))
	if _, err := Emit(plan, s); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if r, g, b, _ := s.Image().At(2, 2).RGBA(); r != 0xffff || g != 0 || b != 0 {
		t.Errorf("corner pixel = %x,%x,%x, want red", r, g, b)
	}
}
