package residue

import (
	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/types"
)

// Idealized covalent geometry from the AMBER all_nuc94 parameter set.
const (
	chDistCyc = 1.08 // aromatic C-H
	chDist    = 1.09 // sp3 C-H
	nhDist    = 1.01 // N-H in NH2 conformations
	ohDist    = 0.96
	oLPDist   = 1.00
	nLPDist   = 1.00

	tan19 = 0.354 // O2' hydroxyl proton
	tan30 = 0.57735027
	tan54 = 1.376
	tan60 = 1.7320508 // NH2-like conformations
	tan70 = 2.7474774 // CH3-like conformations
)

// bisector returns the unit sum of the unit vectors from b toward its
// two substituent directions, the placement axis of a ring proton.
func bisector(center, s1, s2 geom.Point) geom.Point {
	x := geom.Normalize(center.Sub(s1))
	y := geom.Normalize(center.Sub(s2))
	return geom.Normalize(x.Add(y))
}

// amine places the pair of exocyclic NH2 or carbonyl LP positions: two
// directions splayed tan(60) off the bond axis in the base plane.
func amine(axis, up geom.Point) (geom.Point, geom.Point) {
	a := geom.Normalize(axis.Add(geom.Normalize(geom.Cross(up, axis)).Scale(tan60)))
	b := geom.Normalize(axis.Add(geom.Normalize(geom.Cross(axis, up)).Scale(tan60)))
	return a, b
}

func (r *Residue) skipHydrogen(t *types.AtomType, err error) {
	Warn.Printf("failed to add %s in %s: %v", t, r, err)
}

// AddHydrogens constructs the base hydrogens of the residue at idealized
// positions, then the ribose hydrogens. A hydrogen whose heavy anchors
// are missing is skipped with a warning.
func (r *Residue) AddHydrogens() {
	switch {
	case r.typ.IsA():
		if c2, n1, n3, err := r.get3(types.AtomC2, types.AtomN1, types.AtomN3); err != nil {
			r.skipHydrogen(types.AtomH2, err)
		} else {
			v := c2.Pos.Add(bisector(c2.Pos, n1.Pos, n3.Pos).Scale(chDistCyc))
			r.Insert(Atom{Pos: v, Type: types.AtomH2})
		}
		if c8, n7, n9, err := r.get3(types.AtomC8, types.AtomN7, types.AtomN9); err != nil {
			r.skipHydrogen(types.AtomH8, err)
		} else {
			v := c8.Pos.Add(bisector(c8.Pos, n7.Pos, n9.Pos).Scale(chDistCyc))
			r.Insert(Atom{Pos: v, Type: types.AtomH8})
		}
		if err := r.addAmineHydrogens(types.AtomC6, types.AtomN1, types.AtomC5,
			types.AtomN6, types.Atom1H6, types.Atom2H6); err != nil {
			r.skipHydrogen(types.Atom1H6, err)
		}

	case r.typ.IsG():
		if n1, c2, c6, err := r.get3(types.AtomN1, types.AtomC2, types.AtomC6); err != nil {
			r.skipHydrogen(types.AtomH1, err)
		} else {
			v := n1.Pos.Add(bisector(n1.Pos, c2.Pos, c6.Pos).Scale(nhDist))
			r.Insert(Atom{Pos: v, Type: types.AtomH1})
		}
		if c8, n7, n9, err := r.get3(types.AtomC8, types.AtomN7, types.AtomN9); err != nil {
			r.skipHydrogen(types.AtomH8, err)
		} else {
			v := c8.Pos.Add(bisector(c8.Pos, n7.Pos, n9.Pos).Scale(chDistCyc))
			r.Insert(Atom{Pos: v, Type: types.AtomH8})
		}
		if err := r.addAmineHydrogens(types.AtomC2, types.AtomN1, types.AtomN3,
			types.AtomN2, types.Atom2H2, types.Atom1H2); err != nil {
			r.skipHydrogen(types.Atom1H2, err)
		}

	case r.typ.IsC():
		if c5, c4, c6, err := r.get3(types.AtomC5, types.AtomC4, types.AtomC6); err != nil {
			r.skipHydrogen(types.AtomH5, err)
		} else {
			v := c5.Pos.Add(bisector(c5.Pos, c4.Pos, c6.Pos).Scale(chDist))
			r.Insert(Atom{Pos: v, Type: types.AtomH5})
		}
		if c6, c5, n1, err := r.get3(types.AtomC6, types.AtomC5, types.AtomN1); err != nil {
			r.skipHydrogen(types.AtomH6, err)
		} else {
			v := c6.Pos.Add(bisector(c6.Pos, c5.Pos, n1.Pos).Scale(chDistCyc))
			r.Insert(Atom{Pos: v, Type: types.AtomH6})
		}
		if err := r.addAmineHydrogens(types.AtomC4, types.AtomN3, types.AtomC5,
			types.AtomN4, types.Atom2H4, types.Atom1H4); err != nil {
			r.skipHydrogen(types.Atom1H4, err)
		}

	case r.typ.IsU(), r.typ.IsT():
		if n3, c2, c4, err := r.get3(types.AtomN3, types.AtomC2, types.AtomC4); err != nil {
			r.skipHydrogen(types.AtomH3, err)
		} else {
			v := n3.Pos.Add(bisector(n3.Pos, c2.Pos, c4.Pos).Scale(chDist))
			r.Insert(Atom{Pos: v, Type: types.AtomH3})
		}
		if r.typ.IsU() {
			if c5, c4, c6, err := r.get3(types.AtomC5, types.AtomC4, types.AtomC6); err != nil {
				r.skipHydrogen(types.AtomH5, err)
			} else {
				v := c5.Pos.Add(bisector(c5.Pos, c4.Pos, c6.Pos).Scale(chDist))
				r.Insert(Atom{Pos: v, Type: types.AtomH5})
			}
		}
		if c6, c5, n1, err := r.get3(types.AtomC6, types.AtomC5, types.AtomN1); err != nil {
			r.skipHydrogen(types.AtomH6, err)
		} else {
			v := c6.Pos.Add(bisector(c6.Pos, c5.Pos, n1.Pos).Scale(chDistCyc))
			r.Insert(Atom{Pos: v, Type: types.AtomH6})
		}
		if r.typ.IsT() {
			if c5m, c5, c4, err := r.get3(types.AtomC5M, types.AtomC5, types.AtomC4); err != nil {
				r.skipHydrogen(types.Atom1H5M, err)
			} else {
				x := geom.Normalize(c5m.Pos.Sub(c5.Pos))
				y := geom.Normalize(c5.Pos.Sub(c4.Pos))
				up := geom.Normalize(geom.Cross(x, y))
				z := geom.Cross(x, up)

				v := c5m.Pos.Add(geom.Normalize(x.Add(z.Scale(tan70))).Scale(chDist))
				r.Insert(Atom{Pos: v, Type: types.Atom1H5M})

				a := geom.Normalize(up.Sub(z.Scale(tan30)))
				v = c5m.Pos.Add(geom.Normalize(x.Add(a.Scale(tan70))).Scale(chDist))
				r.Insert(Atom{Pos: v, Type: types.Atom2H5M})

				b := geom.Normalize(up.Scale(-1).Sub(z.Scale(tan30)))
				v = c5m.Pos.Add(geom.Normalize(x.Add(b.Scale(tan70))).Scale(chDist))
				r.Insert(Atom{Pos: v, Type: types.Atom3H5M})
			}
		}
	}

	r.addRiboseHydrogens()
}

// addAmineHydrogens places the two protons of an exocyclic amine: ring
// substituents r1 (with ring neighbors n1, n2) bearing the amine n.
func (r *Residue) addAmineHydrogens(ring, ringN1, ringN2, n, h1, h2 *types.AtomType) error {
	c, a1, a2, err := r.get3(ring, ringN1, ringN2)
	if err != nil {
		return err
	}
	am, err := r.SafeGet(n)
	if err != nil {
		return err
	}
	x := geom.Normalize(c.Pos.Sub(a1.Pos))
	y := geom.Normalize(c.Pos.Sub(a2.Pos))
	z := geom.Normalize(am.Pos.Sub(c.Pos))
	up := geom.Normalize(geom.Cross(x, y))

	a, b := amine(z, up)
	r.Insert(Atom{Pos: am.Pos.Add(a.Scale(nhDist)), Type: h1})
	r.Insert(Atom{Pos: am.Pos.Add(b.Scale(nhDist)), Type: h2})
	return nil
}

// addRiboseHydrogens places the sugar protons shared by AddHydrogens and
// the ribose builders. Already present protons are kept.
func (r *Residue) addRiboseHydrogens() {
	tetra := func(h, c, s1, s2, s3 *types.AtomType) {
		if r.Contains(h) {
			return
		}
		r1, r2, r3, err := r.get3(c, s1, s2)
		if err != nil {
			r.skipHydrogen(h, err)
			return
		}
		r4, err := r.SafeGet(s3)
		if err != nil {
			r.skipHydrogen(h, err)
			return
		}
		x := geom.Normalize(r1.Pos.Sub(r2.Pos))
		y := geom.Normalize(r1.Pos.Sub(r3.Pos))
		z := geom.Normalize(r1.Pos.Sub(r4.Pos))
		v := r1.Pos.Add(geom.Normalize(x.Add(y).Add(z)).Scale(chDist))
		r.Insert(Atom{Pos: v, Type: h})
	}

	base := types.AtomN1
	if r.typ.IsPurine() {
		base = types.AtomN9
	}
	tetra(types.AtomH1p, types.AtomC1p, types.AtomC2p, base, types.AtomO4p)
	tetra(types.AtomH3p, types.AtomC3p, types.AtomC2p, types.AtomO3p, types.AtomC4p)
	tetra(types.AtomH4p, types.AtomC4p, types.AtomC3p, types.AtomO4p, types.AtomC5p)

	if !r.Contains(types.Atom1H5p) || !r.Contains(types.Atom2H5p) {
		if c5p, c4p, o5p, err := r.get3(types.AtomC5p, types.AtomC4p, types.AtomO5p); err != nil {
			r.skipHydrogen(types.Atom1H5p, err)
		} else {
			x := geom.Normalize(c5p.Pos.Sub(c4p.Pos))
			y := geom.Normalize(c5p.Pos.Sub(o5p.Pos))
			z := geom.Normalize(x.Add(y))
			up := geom.Normalize(geom.Cross(x, y))

			v := c5p.Pos.Add(geom.Normalize(up.Scale(tan54).Add(z)).Scale(chDist))
			r.Insert(Atom{Pos: v, Type: types.Atom1H5p})
			v = c5p.Pos.Add(geom.Normalize(up.Scale(-tan54).Add(z)).Scale(chDist))
			r.Insert(Atom{Pos: v, Type: types.Atom2H5p})
		}
	}

	if !r.Contains(types.AtomO2p) {
		// deoxyribose: geminal pair on C2'
		if !r.Contains(types.AtomH2p) || !r.Contains(types.Atom2H2p) {
			if c2p, c1p, c3p, err := r.get3(types.AtomC2p, types.AtomC1p, types.AtomC3p); err != nil {
				r.skipHydrogen(types.AtomH2p, err)
			} else {
				x := geom.Normalize(c2p.Pos.Sub(c1p.Pos))
				y := geom.Normalize(c2p.Pos.Sub(c3p.Pos))
				z := geom.Normalize(x.Add(y))
				up := geom.Normalize(geom.Cross(x, y))

				v := c2p.Pos.Add(geom.Normalize(up.Scale(tan54).Add(z)).Scale(chDist))
				r.Insert(Atom{Pos: v, Type: types.AtomH2p})
				v = c2p.Pos.Add(geom.Normalize(up.Scale(-tan54).Add(z)).Scale(chDist))
				r.Insert(Atom{Pos: v, Type: types.Atom2H2p})
			}
		}
	} else {
		tetra(types.AtomH2p, types.AtomC2p, types.AtomC1p, types.AtomC3p, types.AtomO2p)
		if !r.Contains(types.AtomHO2p) {
			if o2p, c2p, c1p, err := r.get3(types.AtomO2p, types.AtomC2p, types.AtomC1p); err != nil {
				r.skipHydrogen(types.AtomHO2p, err)
			} else {
				x := geom.Normalize(c2p.Pos.Sub(c1p.Pos))
				y := geom.Normalize(o2p.Pos.Sub(c2p.Pos))
				z := geom.Normalize(geom.Cross(geom.Cross(x, y), y))
				v := o2p.Pos.Add(geom.Normalize(y.Scale(tan19).Sub(z)).Scale(ohDist))
				r.Insert(Atom{Pos: v, Type: types.AtomHO2p})
			}
		}
	}
}

// AddHO3p places the 3' terminal hydroxyl proton.
func (r *Residue) AddHO3p() {
	if r.Contains(types.AtomHO3p) {
		return
	}
	o3p, c3p, c4p, err := r.get3(types.AtomO3p, types.AtomC3p, types.AtomC4p)
	if err != nil {
		r.skipHydrogen(types.AtomHO3p, err)
		return
	}
	x := geom.Normalize(c3p.Pos.Sub(c4p.Pos))
	y := geom.Normalize(o3p.Pos.Sub(c3p.Pos))
	z := geom.Normalize(geom.Cross(geom.Cross(x, y), y))
	v := o3p.Pos.Add(geom.Normalize(y.Scale(tan19).Add(z)).Scale(ohDist))
	r.Insert(Atom{Pos: v, Type: types.AtomHO3p})
}

// AddLonePairs constructs the acceptor lone pairs of the base: ring
// nitrogen pairs on the bisector, carbonyl pairs splayed like an amine.
func (r *Residue) AddLonePairs() {
	ringLP := func(lp, n, s1, s2 *types.AtomType) {
		a, b, c, err := r.get3(n, s1, s2)
		if err != nil {
			r.skipHydrogen(lp, err)
			return
		}
		v := a.Pos.Add(bisector(a.Pos, b.Pos, c.Pos).Scale(nLPDist))
		r.Insert(Atom{Pos: v, Type: lp})
	}
	carbonylLP := func(lp1, lp2, c, s1, s2, o *types.AtomType) {
		cc, a1, a2, err := r.get3(c, s1, s2)
		if err != nil {
			r.skipHydrogen(lp1, err)
			return
		}
		oo, err := r.SafeGet(o)
		if err != nil {
			r.skipHydrogen(lp1, err)
			return
		}
		x := geom.Normalize(cc.Pos.Sub(a1.Pos))
		y := geom.Normalize(cc.Pos.Sub(a2.Pos))
		z := geom.Normalize(oo.Pos.Sub(cc.Pos))
		up := geom.Normalize(geom.Cross(x, y))

		a, b := amine(z, up)
		r.Insert(Atom{Pos: oo.Pos.Add(a.Scale(oLPDist)), Type: lp1})
		r.Insert(Atom{Pos: oo.Pos.Add(b.Scale(oLPDist)), Type: lp2})
	}

	switch {
	case r.typ.IsA():
		ringLP(types.AtomLP1, types.AtomN1, types.AtomC2, types.AtomC6)
		ringLP(types.AtomLP3, types.AtomN3, types.AtomC2, types.AtomC4)
		ringLP(types.AtomLP7, types.AtomN7, types.AtomC5, types.AtomC8)
	case r.typ.IsG():
		ringLP(types.AtomLP3, types.AtomN3, types.AtomC2, types.AtomC4)
		ringLP(types.AtomLP7, types.AtomN7, types.AtomC5, types.AtomC8)
		carbonylLP(types.Atom2LP6, types.Atom1LP6, types.AtomC6, types.AtomN1, types.AtomC5, types.AtomO6)
	case r.typ.IsC():
		ringLP(types.AtomLP3, types.AtomN3, types.AtomC2, types.AtomC4)
		carbonylLP(types.Atom1LP2, types.Atom2LP2, types.AtomC2, types.AtomN1, types.AtomN3, types.AtomO2)
	case r.typ.IsU(), r.typ.IsT():
		carbonylLP(types.Atom1LP2, types.Atom2LP2, types.AtomC2, types.AtomN1, types.AtomN3, types.AtomO2)
		carbonylLP(types.Atom2LP4, types.Atom1LP4, types.AtomC4, types.AtomN3, types.AtomC5, types.AtomO4)
	}
}
