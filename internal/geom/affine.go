package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2x3 row-major affine matrix, laid out like f64.Aff3 so it can
// be handed straight to golang.org/x/image/draw transformers.
type Affine f64.Aff3

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine { return Affine{1, 0, 0, 0, 1, 0} }

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine { return Affine{1, 0, tx, 0, 1, ty} }

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Affine { return Affine{sx, 0, 0, 0, sy, 0} }

// Rotate returns a rotation by rad about the origin. Positive angles turn
// clockwise on a y-down screen.
func Rotate(rad float64) Affine {
	s, c := math.Sincos(rad)
	return Affine{c, -s, 0, s, c, 0}
}

// Mul returns a*b, which applies b first and then a.
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Apply transforms p.
func (a Affine) Apply(p Point) Point {
	return Point{a[0]*p.X + a[1]*p.Y + a[2], a[3]*p.X + a[4]*p.Y + a[5]}
}

// ApplyAll transforms every point into a new slice.
func (a Affine) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = a.Apply(p)
	}
	return out
}

// ScaleFactor returns the uniform scale of a, the square root of its
// determinant's magnitude.
func (a Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(a[0]*a[4] - a[1]*a[3]))
}

// Aff3 returns a as an f64.Aff3.
func (a Affine) Aff3() f64.Aff3 { return f64.Aff3(a) }
