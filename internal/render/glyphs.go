package render

import (
	"math"

	"github.com/example/kidspaint/internal/geom"
	"github.com/example/kidspaint/internal/scene"
)

// glyph is a sticker outline in unit space, centred on the origin and
// fitting inside [-0.5, 0.5] on both axes. Y grows downward.
type glyph struct {
	solids [][]geom.Point
	holes  [][]geom.Point
}

var glyphs = map[scene.StickerType]glyph{
	scene.StickerStar:    {solids: [][]geom.Point{starPoints(5, 0.5, 0.2)}},
	scene.StickerHeart:   {solids: [][]geom.Point{heartPoints()}},
	scene.StickerSmile:   smileGlyph(),
	scene.StickerFlower:  flowerGlyph(),
	scene.StickerSun:     sunGlyph(),
	scene.StickerMoon:    {solids: [][]geom.Point{moonPoints()}},
	scene.StickerCloud:   cloudGlyph(),
	scene.StickerBolt:    {solids: [][]geom.Point{{geom.Pt(0.1, -0.5), geom.Pt(-0.3, 0.05), geom.Pt(-0.02, 0.05), geom.Pt(-0.12, 0.5), geom.Pt(0.3, -0.08), geom.Pt(0.02, -0.08)}}},
	scene.StickerBalloon: balloonGlyph(),
	scene.StickerCrown:   {solids: [][]geom.Point{{geom.Pt(-0.45, 0.3), geom.Pt(-0.45, -0.25), geom.Pt(-0.22, 0), geom.Pt(0, -0.35), geom.Pt(0.22, 0), geom.Pt(0.45, -0.25), geom.Pt(0.45, 0.3)}}},
	scene.StickerMusic:   musicGlyph(),
	scene.StickerPaw:     pawGlyph(),
}

func ellipse(c geom.Point, rx, ry float64, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a))
	}
	return pts
}

func circle(c geom.Point, r float64) []geom.Point { return ellipse(c, r, r, 32) }

func rect(x0, y0, x1, y1 float64) []geom.Point {
	return []geom.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func starPoints(n int, outer, inner float64) []geom.Point {
	pts := make([]geom.Point, 0, n*2)
	for i := 0; i < n*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + math.Pi*float64(i)/float64(n)
		pts = append(pts, geom.Pt(r*math.Cos(a), r*math.Sin(a)))
	}
	return pts
}

func heartPoints() []geom.Point {
	const n, k = 64, 0.03
	pts := make([]geom.Point, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / n
		s := math.Sin(t)
		x := 16 * s * s * s
		y := -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t))
		pts[i] = geom.Pt(x*k, (y-2.5)*k)
	}
	return pts
}

func smileGlyph() glyph {
	var mouth []geom.Point
	for i := 0; i <= 16; i++ {
		a := geom.Radians(20 + 140*float64(i)/16)
		mouth = append(mouth, geom.Pt(0.3*math.Cos(a), 0.3*math.Sin(a)))
	}
	for i := 16; i >= 0; i-- {
		a := geom.Radians(20 + 140*float64(i)/16)
		mouth = append(mouth, geom.Pt(0.22*math.Cos(a), 0.22*math.Sin(a)))
	}
	return glyph{
		solids: [][]geom.Point{circle(geom.Pt(0, 0), 0.48)},
		holes: [][]geom.Point{
			circle(geom.Pt(-0.16, -0.12), 0.06),
			circle(geom.Pt(0.16, -0.12), 0.06),
			mouth,
		},
	}
}

func flowerGlyph() glyph {
	g := glyph{solids: [][]geom.Point{circle(geom.Pt(0, 0), 0.18)}}
	for i := 0; i < 6; i++ {
		a := 2 * math.Pi * float64(i) / 6
		g.solids = append(g.solids, circle(geom.Pt(0.3*math.Cos(a), 0.3*math.Sin(a)), 0.17))
	}
	return g
}

func sunGlyph() glyph {
	g := glyph{solids: [][]geom.Point{circle(geom.Pt(0, 0), 0.25)}}
	half := geom.Radians(12)
	for i := 0; i < 8; i++ {
		a := 2 * math.Pi * float64(i) / 8
		g.solids = append(g.solids, []geom.Point{
			geom.Pt(0.3*math.Cos(a-half), 0.3*math.Sin(a-half)),
			geom.Pt(0.5*math.Cos(a), 0.5*math.Sin(a)),
			geom.Pt(0.3*math.Cos(a+half), 0.3*math.Sin(a+half)),
			geom.Pt(0.2*math.Cos(a), 0.2*math.Sin(a)),
		})
	}
	return g
}

// moonPoints is a crescent: the left arc of an outer circle closed by a
// shallower arc of a circle centred to the right.
func moonPoints() []geom.Point {
	const r, steps = 0.45, 24
	var pts []geom.Point
	for i := 0; i <= steps; i++ {
		a := geom.Radians(60 + 240*float64(i)/steps)
		pts = append(pts, geom.Pt(r*math.Cos(a), r*math.Sin(a)))
	}
	c := geom.Pt(0.3, 0)
	start, end := pts[0], pts[len(pts)-1]
	rr := geom.Distance(c, start)
	from := geom.Angle(c, end) + 2*math.Pi
	to := geom.Angle(c, start)
	for i := 1; i < steps; i++ {
		a := from + (to-from)*float64(i)/steps
		pts = append(pts, geom.Pt(c.X+rr*math.Cos(a), c.Y+rr*math.Sin(a)))
	}
	return pts
}

func cloudGlyph() glyph {
	return glyph{solids: [][]geom.Point{
		circle(geom.Pt(-0.25, 0.08), 0.18),
		circle(geom.Pt(0, -0.05), 0.25),
		circle(geom.Pt(0.25, 0.08), 0.18),
		rect(-0.25, 0.06, 0.25, 0.26),
	}}
}

func balloonGlyph() glyph {
	return glyph{solids: [][]geom.Point{
		ellipse(geom.Pt(0, -0.12), 0.3, 0.36, 48),
		{{X: 0, Y: 0.2}, {X: 0.06, Y: 0.3}, {X: -0.06, Y: 0.3}},
		rect(-0.012, 0.28, 0.012, 0.5),
	}}
}

func musicGlyph() glyph {
	return glyph{solids: [][]geom.Point{
		ellipse(geom.Pt(-0.25, 0.3), 0.15, 0.11, 32),
		ellipse(geom.Pt(0.25, 0.2), 0.15, 0.11, 32),
		rect(-0.13, -0.3, -0.09, 0.3),
		rect(0.37, -0.4, 0.41, 0.2),
		{{X: -0.13, Y: -0.3}, {X: 0.41, Y: -0.4}, {X: 0.41, Y: -0.28}, {X: -0.13, Y: -0.18}},
	}}
}

func pawGlyph() glyph {
	return glyph{solids: [][]geom.Point{
		ellipse(geom.Pt(0, 0.18), 0.22, 0.18, 40),
		circle(geom.Pt(-0.3, -0.05), 0.09),
		circle(geom.Pt(-0.12, -0.25), 0.09),
		circle(geom.Pt(0.12, -0.25), 0.09),
		circle(geom.Pt(0.3, -0.05), 0.09),
	}}
}
