package relation

import (
	"sync"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

// The face reference points are sampled on the theoretical bases in the
// identity referential: the hydrogens and lone pairs around the base
// edge, plus the midpoints between consecutive ones. A contact point is
// tagged with the face of the nearest reference point, in the local
// frame of the residue.
type faceEntry struct {
	pos  geom.Point
	face *types.PropertyType
}

var (
	faceOnce  sync.Once
	faceTable map[*types.ResidueType][]faceEntry
)

func initFaces() {
	faceTable = make(map[*types.ResidueType][]faceEntry)

	at := func(r *residue.Residue, t *types.AtomType) geom.Point {
		a, err := r.SafeGet(t)
		if err != nil {
			panic("relation: face table: " + err.Error())
		}
		return a.Pos
	}
	mid := func(r *residue.Residue, t1, t2 *types.AtomType) geom.Point {
		return at(r, t1).Add(at(r, t2)).Scale(0.5)
	}
	build := func(typ *types.ResidueType, f func(r *residue.Residue) []faceEntry) {
		r, err := residue.NewTheoretical(typ)
		if err != nil {
			panic("relation: face table: " + err.Error())
		}
		faceTable[typ] = f(r)
	}

	build(types.ResidueA, func(r *residue.Residue) []faceEntry {
		return []faceEntry{
			{at(r, types.AtomH8), types.FaceC8},
			{mid(r, types.AtomH8, types.AtomLP7), types.FaceHh},
			{mid(r, types.Atom2H6, types.AtomLP7), types.FaceHh},
			{at(r, types.Atom2H6), types.FaceHw},
			{mid(r, types.Atom1H6, types.Atom2H6), types.FaceBh},
			{at(r, types.Atom1H6), types.FaceWh},
			{mid(r, types.AtomLP1, types.Atom1H6), types.FaceWw},
			{mid(r, types.AtomLP1, types.AtomH2), types.FaceWw},
			{at(r, types.AtomH2), types.FaceBs},
			{mid(r, types.AtomH2, types.AtomLP3), types.FaceSs},
			{at(r, types.AtomLP3), types.FaceSs},
		}
	})

	build(types.ResidueC, func(r *residue.Residue) []faceEntry {
		return []faceEntry{
			{at(r, types.AtomH6), types.FaceHh},
			{mid(r, types.Atom1H4, types.AtomH5), types.FaceHh},
			{at(r, types.Atom1H4), types.FaceHw},
			{mid(r, types.Atom1H4, types.Atom2H4), types.FaceBh},
			{at(r, types.Atom2H4), types.FaceWh},
			{mid(r, types.Atom2H4, types.AtomLP3), types.FaceWw},
			{mid(r, types.AtomLP3, types.Atom2LP2), types.FaceWw},
			{at(r, types.Atom2LP2), types.FaceWs},
			{mid(r, types.Atom2LP2, types.Atom1LP2), types.FaceBs},
			{at(r, types.Atom1LP2), types.FaceSs},
		}
	})

	build(types.ResidueG, func(r *residue.Residue) []faceEntry {
		return []faceEntry{
			{at(r, types.AtomH8), types.FaceC8},
			{mid(r, types.AtomH8, types.AtomLP7), types.FaceHh},
			{mid(r, types.Atom1LP6, types.AtomLP7), types.FaceHh},
			{at(r, types.Atom1LP6), types.FaceHw},
			{mid(r, types.Atom1LP6, types.Atom2LP6), types.FaceBh},
			{at(r, types.Atom2LP6), types.FaceWh},
			{mid(r, types.Atom2LP6, types.AtomH1), types.FaceWw},
			{mid(r, types.AtomH1, types.Atom2H2), types.FaceWw},
			{at(r, types.Atom2H2), types.FaceWs},
			{mid(r, types.Atom2H2, types.Atom1H2), types.FaceBs},
			{at(r, types.Atom1H2), types.FaceSw},
			{mid(r, types.Atom1H2, types.AtomLP3), types.FaceSs},
		}
	})

	pyrimidineKeto := func(r *residue.Residue, hC5 *types.AtomType) []faceEntry {
		return []faceEntry{
			{at(r, types.AtomH6), types.FaceHh},
			{mid(r, types.Atom1LP4, hC5), types.FaceHh},
			{at(r, types.Atom1LP4), types.FaceHw},
			{mid(r, types.Atom1LP4, types.Atom2LP4), types.FaceBh},
			{at(r, types.Atom2LP4), types.FaceWh},
			{mid(r, types.Atom2LP4, types.AtomH3), types.FaceWw},
			{at(r, types.AtomH3), types.FaceWw},
			{mid(r, types.Atom2LP2, types.AtomH3), types.FaceWs},
			{at(r, types.Atom2LP2), types.FaceWs},
			{mid(r, types.Atom2LP2, types.Atom1LP2), types.FaceBs},
			{at(r, types.Atom1LP2), types.FaceSs},
		}
	}
	build(types.ResidueU, func(r *residue.Residue) []faceEntry {
		return pyrimidineKeto(r, types.AtomH5)
	})
	build(types.ResidueT, func(r *residue.Residue) []faceEntry {
		return pyrimidineKeto(r, types.AtomC5M)
	})
}

// GetFace tags a contact point with the nearest face reference of the
// residue's base, in its local frame. Returns the Null face for types
// without a face table.
func GetFace(r *residue.Residue, p geom.Point) *types.PropertyType {
	faceOnce.Do(initFaces)

	var entries []faceEntry
	switch {
	case r.Type().IsA():
		entries = faceTable[types.ResidueA]
	case r.Type().IsC():
		entries = faceTable[types.ResidueC]
	case r.Type().IsG():
		entries = faceTable[types.ResidueG]
	case r.Type().IsU():
		entries = faceTable[types.ResidueU]
	case r.Type().IsT():
		entries = faceTable[types.ResidueT]
	default:
		return types.FaceNull
	}

	local := r.Referential().Invert().Apply(p)
	best := types.FaceNull
	bestD := 0.0
	for i, e := range entries {
		d := geom.SquareDistance(local, e.pos)
		if i == 0 || d < bestD {
			bestD = d
			best = e.face
		}
	}
	return best
}
