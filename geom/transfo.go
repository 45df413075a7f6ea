package geom

import "math"

// Transfo is a rigid homogeneous transformation: a 4x4 matrix stored
// column-major whose upper-left 3x3 block is a rotation and whose fourth
// column is a translation. Element (row r, column c) lives at index c*4+r.
type Transfo [16]float64

// Identity returns the identity transformation.
func Identity() Transfo {
	return Transfo{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns element (r, c).
func (t Transfo) At(r, c int) float64 { return t[c*4+r] }

func (t *Transfo) set(r, c int, v float64) { t[c*4+r] = v }

// Mul returns the composition t then-applied-after o, i.e. the matrix
// product t * o: (t.Mul(o)).Apply(p) == t.Apply(o.Apply(p)).
func (t Transfo) Mul(o Transfo) Transfo {
	var out Transfo
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += t.At(r, k) * o.At(k, c)
			}
			out.set(r, c, sum)
		}
	}
	return out
}

// Apply transforms a point.
func (t Transfo) Apply(p Point) Point {
	return Point{
		X: t.At(0, 0)*p.X + t.At(0, 1)*p.Y + t.At(0, 2)*p.Z + t.At(0, 3),
		Y: t.At(1, 0)*p.X + t.At(1, 1)*p.Y + t.At(1, 2)*p.Z + t.At(1, 3),
		Z: t.At(2, 0)*p.X + t.At(2, 1)*p.Y + t.At(2, 2)*p.Z + t.At(2, 3),
	}
}

// Translation returns the pure translation by v.
func Translation(v Point) Transfo {
	t := Identity()
	t.set(0, 3, v.X)
	t.set(1, 3, v.Y)
	t.set(2, 3, v.Z)
	return t
}

// Origin returns the translation column of t.
func (t Transfo) Origin() Point {
	return Point{X: t.At(0, 3), Y: t.At(1, 3), Z: t.At(2, 3)}
}

// Rotation returns the rotation of theta radians around the given axis
// through the origin.
func Rotation(axis Point, theta float64) Transfo {
	a := Normalize(axis)
	c := math.Cos(theta)
	s := math.Sin(theta)
	ic := 1 - c

	t := Identity()
	t.set(0, 0, ic*a.X*a.X+c)
	t.set(0, 1, ic*a.X*a.Y-s*a.Z)
	t.set(0, 2, ic*a.X*a.Z+s*a.Y)
	t.set(1, 0, ic*a.Y*a.X+s*a.Z)
	t.set(1, 1, ic*a.Y*a.Y+c)
	t.set(1, 2, ic*a.Y*a.Z-s*a.X)
	t.set(2, 0, ic*a.Z*a.X-s*a.Y)
	t.set(2, 1, ic*a.Z*a.Y+s*a.X)
	t.set(2, 2, ic*a.Z*a.Z+c)
	return t
}

// RotationX, RotationY and RotationZ rotate around the coordinate axes.
func RotationX(theta float64) Transfo { return Rotation(Point{X: 1}, theta) }
func RotationY(theta float64) Transfo { return Rotation(Point{Y: 1}, theta) }
func RotationZ(theta float64) Transfo { return Rotation(Point{Z: 1}, theta) }

// Invert returns the inverse transformation, exploiting the rigid form:
// the 3x3 block is transposed and the translation rotated back.
func (t Transfo) Invert() Transfo {
	var out Transfo
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.set(r, c, t.At(c, r))
		}
	}
	o := t.Origin()
	out.set(0, 3, -(t.At(0, 0)*o.X + t.At(1, 0)*o.Y + t.At(2, 0)*o.Z))
	out.set(1, 3, -(t.At(0, 1)*o.X + t.At(1, 1)*o.Y + t.At(2, 1)*o.Z))
	out.set(2, 3, -(t.At(0, 2)*o.X + t.At(1, 2)*o.Y + t.At(2, 2)*o.Z))
	out.set(3, 3, 1)
	return out
}

// Align returns the frame whose origin is p1, whose +X axis points along
// p2-p1 and whose +Z axis points along (p2-p1) x (p3-p1). Applying the
// result maps local coordinates into the world frame of the three points.
func Align(p1, p2, p3 Point) Transfo {
	x := Normalize(p2.Sub(p1))
	z := Normalize(Cross(p2.Sub(p1), p3.Sub(p1)))
	y := Cross(z, x)

	t := Identity()
	t.set(0, 0, x.X)
	t.set(1, 0, x.Y)
	t.set(2, 0, x.Z)
	t.set(0, 1, y.X)
	t.set(1, 1, y.Y)
	t.set(2, 1, y.Z)
	t.set(0, 2, z.X)
	t.set(1, 2, z.Y)
	t.set(2, 2, z.Z)
	t.set(0, 3, p1.X)
	t.set(1, 3, p1.Y)
	t.set(2, 3, p1.Z)
	return t
}

// theta returns the rotation angle of the 3x3 block.
func (t Transfo) theta() float64 {
	tr := t.At(0, 0) + t.At(1, 1) + t.At(2, 2)
	cos := (tr - 1) / 2
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// A half-turn of pure rotation counts like a 4 A displacement in the
// conformational metric (Gendron, Lemieux & Major 2001).
const rotationWeight = 4.0

// Strength measures how far t is from the identity, combining the
// translation length with the weighted versine of the rotation angle.
func (t Transfo) Strength() float64 {
	o := t.Origin()
	f := 1 - math.Cos(t.theta())
	return math.Sqrt(Dot(o, o) + rotationWeight*f*f)
}

// Distance is the conformational metric between two frames: the strength
// of the transformation taking one onto the other.
func (t Transfo) Distance(o Transfo) float64 {
	return t.Invert().Mul(o).Strength()
}
