package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/kidspaint/internal/geom"
)

func TestPaintShadowOffsetsAndBlurs(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	p := NewPainter(img, geom.IdentityAffine())
	dot := Dot{Center: geom.Pt(20, 20), Radius: 6, Color: color.RGBA{R: 255, A: 255}, Opacity: 1}
	p.PaintShadow(ShadowOptions{Radius: 3, Offset: image.Pt(10, 10), Opacity: 1}, dot)

	if got := img.RGBAAt(30, 30).A; got == 0 {
		t.Fatal("expected shadow under the offset centre")
	}
	if got := img.RGBAAt(20, 20).A; got != 0 {
		t.Fatalf("unexpected shadow at original position: %d", got)
	}
	// Blur spreads alpha past the hard edge of the silhouette.
	if got := img.RGBAAt(30+7, 30).A; got == 0 {
		t.Fatal("expected blurred alpha outside the silhouette")
	}
}

func TestPaintShadowNoopWhenTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	p := NewPainter(img, geom.IdentityAffine())
	p.PaintShadow(ShadowOptions{Radius: 2, Opacity: 0}, Dot{Center: geom.Pt(5, 5), Radius: 3, Color: color.RGBA{A: 255}, Opacity: 1})
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("shadow painted with zero opacity")
		}
	}
}

func TestBoxBlurKeepsFlatImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	out := boxBlur(src, 2)
	for i, v := range out.Pix {
		if v != 200 {
			t.Fatalf("pixel %d = %d", i, v)
		}
	}
}
