package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/uuid"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/scene"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{R: 255, A: 255}
)

func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return int(x)-int(y) <= 2 && int(y)-int(x) <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func canvas(w, h int) (*image.RGBA, *Painter) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	p := NewPainter(img, geom.IdentityAffine())
	p.Clear(white)
	return img, p
}

func TestPolylineCoversPath(t *testing.T) {
	img, p := canvas(40, 40)
	p.Paint(Polyline{Points: []geom.Point{{X: 5, Y: 20}, {X: 35, Y: 20}}, Width: 6, Color: red, Opacity: 1})
	if got := img.RGBAAt(20, 20); !near(got, red) {
		t.Fatalf("centre pixel %+v", got)
	}
	if got := img.RGBAAt(20, 5); !near(got, white) {
		t.Fatalf("outside pixel %+v", got)
	}
}

func TestOverlappingContoursDoNotCancel(t *testing.T) {
	img, p := canvas(40, 40)
	// A sharp U-turn folds the outline back over itself.
	p.Paint(Polyline{Points: []geom.Point{{X: 5, Y: 20}, {X: 30, Y: 20}, {X: 5, Y: 21}}, Width: 8, Color: red, Opacity: 1})
	if got := img.RGBAAt(15, 20); !near(got, red) {
		t.Fatalf("overlap pixel %+v", got)
	}
}

func TestHalfOpacityBlends(t *testing.T) {
	img, p := canvas(20, 20)
	p.Paint(Dot{Center: geom.Pt(10, 10), Radius: 6, Color: color.RGBA{A: 255}, Opacity: 0.5})
	got := img.RGBAAt(10, 10)
	if got.R < 120 || got.R > 135 {
		t.Fatalf("blended pixel %+v", got)
	}
}

func TestSmileHasHoles(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	p := NewPainter(img, geom.IdentityAffine())
	p.Clear(white)
	st := scene.Sticker{ID: uuid.New(), Type: scene.StickerSmile, Position: geom.Pt(100, 100), Scale: 2, Color: red}
	p.Paint(Sticker(st))
	if got := img.RGBAAt(100, 100); !near(got, red) {
		t.Fatalf("face pixel %+v", got)
	}
	// Left eye centre: (-0.16, -0.12) * 180.
	if got := img.RGBAAt(100-29, 100-22); !near(got, white) {
		t.Fatalf("eye pixel %+v", got)
	}
}

func TestPainterTransformAndClip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	p := NewPainter(img, geom.Viewport{Scale: 2, Offset: geom.Pt(-10, -10)}.Affine())
	p.Paint(Dot{Center: geom.Pt(10, 10), Radius: 3, Color: red, Opacity: 1})
	if got := img.RGBAAt(10, 10); !near(got, red) {
		t.Fatalf("pixel %+v", got)
	}
	p.Paint(Dot{Center: geom.Pt(-100, -100), Radius: 3, Color: red, Opacity: 1})
}

func TestFitRect(t *testing.T) {
	r := FitRect(200, 100, geom.Rect{Max: geom.Pt(100, 100)})
	if !r.Min.Near(geom.Pt(0, 25), 1e-9) || !r.Max.Near(geom.Pt(100, 75), 1e-9) {
		t.Fatalf("fit %+v", r)
	}
	if !FitRect(0, 10, geom.Rect{Max: geom.Pt(1, 1)}).Empty() {
		t.Fatal("expected empty fit")
	}
}

func TestDrawImageScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
		if i%4 == 1 || i%4 == 2 {
			src.Pix[i] = 0
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	p := NewPainter(img, geom.IdentityAffine())
	p.DrawImage(src, geom.Rect{Min: geom.Pt(10, 10), Max: geom.Pt(30, 30)})
	if got := img.RGBAAt(20, 20); !near(got, red) {
		t.Fatalf("pixel %+v", got)
	}
	if got := img.RGBAAt(5, 5); got.A != 0 {
		t.Fatalf("outside pixel %+v", got)
	}
}
