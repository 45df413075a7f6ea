// Package geom provides the geometric primitives of the library: 3-D
// points built on gonum's r3 vectors, angle and torsion measures, and
// homogeneous transformation matrices used as rigid frames.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position or direction in 3-space, backed by gonum's r3
// vector. r3 exposes its arithmetic as free functions; Point carries
// the linear ones as methods so expressions chain.
type Point r3.Vec

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point(r3.Add(r3.Vec(p), r3.Vec(q))) }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point(r3.Sub(r3.Vec(p), r3.Vec(q))) }

// Scale returns f * p.
func (p Point) Scale(f float64) Point { return Point(r3.Scale(f, r3.Vec(p))) }

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return r3.Norm(r3.Vec(a.Sub(b)))
}

// SquareDistance returns the squared euclidean distance. Cutoff
// comparisons use it to avoid the square root.
func SquareDistance(a, b Point) float64 {
	d := r3.Vec(a.Sub(b))
	return r3.Dot(d, d)
}

// Cross returns the cross product of two vectors.
func Cross(a, b Point) Point {
	return Point(r3.Cross(r3.Vec(a), r3.Vec(b)))
}

// Dot returns the dot product of two vectors.
func Dot(a, b Point) float64 {
	return r3.Dot(r3.Vec(a), r3.Vec(b))
}

// Norm returns the euclidean length of v.
func Norm(v Point) float64 {
	return r3.Norm(r3.Vec(v))
}

// Normalize returns the unit vector along v.
func Normalize(v Point) Point {
	return v.Scale(1 / Norm(v))
}

// Angle returns the angle in radians at vertex b formed by points a and c.
func Angle(a, b, c Point) float64 {
	u := a.Sub(b)
	v := c.Sub(b)
	cos := Dot(u, v) / (Norm(u) * Norm(v))
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// Torsion returns the signed dihedral angle in (-pi, pi] around the b-c
// axis, looking from b toward c. The IUPAC sign convention applies: a
// clockwise rotation of d relative to a is positive.
func Torsion(a, b, c, d Point) float64 {
	b1 := b.Sub(a)
	b2 := c.Sub(b)
	b3 := d.Sub(c)
	n1 := Cross(b1, b2)
	n2 := Cross(b2, b3)
	x := Dot(n1, n2)
	y := Dot(Cross(n1, n2), Normalize(b2))
	return math.Atan2(y, x)
}
