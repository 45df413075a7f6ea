package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func pointNear(a, b Point, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

func TestPointArithmetic(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}
	q := Point{X: -2, Y: 0.5, Z: 4}

	if got := p.Add(q).Sub(q); !pointNear(got, p, eps) {
		t.Errorf("p+q-q = %+v, want %+v", got, p)
	}
	if got := p.Scale(2).Sub(p); !pointNear(got, p, eps) {
		t.Errorf("2p-p = %+v, want %+v", got, p)
	}
	if got := Dot(p, q); !near(got, 11, eps) {
		t.Errorf("dot = %v, want 11", got)
	}
	if got := Cross(Point{X: 1}, Point{Y: 1}); !pointNear(got, Point{Z: 1}, eps) {
		t.Errorf("x cross y = %+v, want +z", got)
	}
	if got := Norm(Point{X: 3, Y: 4}); !near(got, 5, eps) {
		t.Errorf("norm = %v, want 5", got)
	}
	if got := Norm(Normalize(q)); !near(got, 1, eps) {
		t.Errorf("normalized length = %v", got)
	}
	if got := Distance(p, q); !near(got, math.Sqrt(9+2.25+1), eps) {
		t.Errorf("distance = %v", got)
	}
}

func TestAngle(t *testing.T) {
	o := Point{}
	x := Point{X: 1}
	y := Point{Y: 2}
	if got := Angle(x, o, y); !near(got, math.Pi/2, eps) {
		t.Errorf("right angle = %v", got)
	}
	if got := Angle(x, o, Point{X: -3}); !near(got, math.Pi, eps) {
		t.Errorf("straight angle = %v", got)
	}
}

func TestTorsionSign(t *testing.T) {
	// A chain in the XY plane twisted out of plane by the last point;
	// mirroring d through the plane must negate the torsion.
	a := Point{X: -1, Y: 1}
	b := Point{}
	c := Point{X: 1}
	dUp := Point{X: 2, Y: 0.5, Z: 0.5}
	dDown := Point{X: 2, Y: 0.5, Z: -0.5}

	up := Torsion(a, b, c, dUp)
	down := Torsion(a, b, c, dDown)
	if !near(up, -down, eps) {
		t.Errorf("mirrored torsions should negate: %v vs %v", up, down)
	}
	if got := Torsion(a, b, c, Point{X: 2, Y: 1}); !near(got, 0, eps) {
		t.Errorf("cis torsion = %v", got)
	}
	if got := math.Abs(Torsion(a, b, c, Point{X: 2, Y: -1})); !near(got, math.Pi, eps) {
		t.Errorf("trans torsion = %v", got)
	}
}

func TestTransfoComposeApply(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}
	tr := Translation(Point{X: 10})
	rot := RotationZ(math.Pi / 2)

	got := tr.Mul(rot).Apply(p)
	want := Point{X: 8, Y: 1, Z: 3}
	if !pointNear(got, want, eps) {
		t.Errorf("tr*rot apply = %+v, want %+v", got, want)
	}
}

func TestTransfoInvert(t *testing.T) {
	tf := Translation(Point{X: 3, Y: -1, Z: 2}).
		Mul(Rotation(Point{X: 1, Y: 1, Z: 0.2}, 1.1))
	id := tf.Mul(tf.Invert())
	want := Identity()
	for i := range id {
		if !near(id[i], want[i], 1e-12) {
			t.Fatalf("t * t^-1 element %d = %v", i, id[i])
		}
	}
}

func TestAlignFrame(t *testing.T) {
	p1 := Point{X: 4, Y: 5, Z: 6}
	p2 := Point{X: 5, Y: 5, Z: 6}
	p3 := Point{X: 4, Y: 6, Z: 6}
	f := Align(p1, p2, p3)

	if !pointNear(f.Apply(Point{}), p1, eps) {
		t.Error("frame origin should be p1")
	}
	if !pointNear(f.Apply(Point{X: 1}), p2, eps) {
		t.Error("+X should point along p2-p1")
	}
	// p3 lies in the local XY plane with positive Y.
	loc := f.Invert().Apply(p3)
	if !near(loc.Z, 0, eps) || loc.Y <= 0 {
		t.Errorf("p3 in local frame = %+v", loc)
	}
}

func TestStrengthAndDistance(t *testing.T) {
	if got := Identity().Strength(); !near(got, 0, eps) {
		t.Errorf("identity strength = %v", got)
	}
	if got := Translation(Point{X: 3, Y: 4}).Strength(); !near(got, 5, eps) {
		t.Errorf("pure translation strength = %v", got)
	}
	a := Translation(Point{X: 1})
	b := Translation(Point{X: 4})
	if got := a.Distance(b); !near(got, 3, eps) {
		t.Errorf("translation distance = %v", got)
	}
	if got := a.Distance(a); !near(got, 0, eps) {
		t.Errorf("self distance = %v", got)
	}
}
