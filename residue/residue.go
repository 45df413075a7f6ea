package residue

import (
	"fmt"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/types"
)

// NoSuchAtomError reports a required atom missing from a residue.
type NoSuchAtomError struct {
	Res  types.ResId
	Atom *types.AtomType
}

func (e NoSuchAtomError) Error() string {
	return fmt.Sprintf("residue: residue %s is missing atom %s", e.Res, e.Atom)
}

// InvalidTypeError reports a residue whose type cannot support the
// requested operation.
type InvalidTypeError struct {
	Res types.ResId
	Op  string
}

func (e InvalidTypeError) Error() string {
	return fmt.Sprintf("residue: cannot %s for residue %s", e.Op, e.Res)
}

// Residue is a container of atoms keyed by atom type, carrying a residue
// id and a residue type. Atom insertion order is preserved; inserting an
// atom whose type is already present overwrites the position in place.
type Residue struct {
	id    types.ResId
	typ   *types.ResidueType
	atoms []Atom
	index map[*types.AtomType]int

	rib         riboseRefs
	ribDirty    bool
	ribValid    bool
	ribBuilt    int
}

// New returns an empty residue of the given type and id.
func New(typ *types.ResidueType, id types.ResId) *Residue {
	return &Residue{
		id:       id,
		typ:      typ,
		index:    make(map[*types.AtomType]int),
		ribDirty: true,
	}
}

func (r *Residue) ID() types.ResId            { return r.id }
func (r *Residue) SetID(id types.ResId)       { r.id = id }
func (r *Residue) Type() *types.ResidueType   { return r.typ }
func (r *Residue) SetType(t *types.ResidueType) { r.typ = t }

func (r *Residue) String() string {
	return fmt.Sprintf("%s%s", r.id, r.typ)
}

// Len returns the number of atoms.
func (r *Residue) Len() int { return len(r.atoms) }

// Insert adds an atom, replacing any atom of the same type.
func (r *Residue) Insert(a Atom) {
	if i, ok := r.index[a.Type]; ok {
		r.atoms[i] = a
		return
	}
	r.index[a.Type] = len(r.atoms)
	r.atoms = append(r.atoms, a)
	r.ribDirty = true
}

// Erase removes the atom of the given type if present.
func (r *Residue) Erase(t *types.AtomType) {
	i, ok := r.index[t]
	if !ok {
		return
	}
	r.atoms = append(r.atoms[:i], r.atoms[i+1:]...)
	delete(r.index, t)
	for k, j := range r.index {
		if j > i {
			r.index[k] = j - 1
		}
	}
	r.ribDirty = true
}

// Clear drops every atom.
func (r *Residue) Clear() {
	r.atoms = r.atoms[:0]
	r.index = make(map[*types.AtomType]int)
	r.ribDirty = true
	r.ribValid = false
}

// Get returns a pointer to the atom of the given type, or nil.
func (r *Residue) Get(t *types.AtomType) *Atom {
	if i, ok := r.index[t]; ok {
		return &r.atoms[i]
	}
	return nil
}

// SafeGet is Get returning a NoSuchAtomError instead of nil.
func (r *Residue) SafeGet(t *types.AtomType) (*Atom, error) {
	if a := r.Get(t); a != nil {
		return a, nil
	}
	return nil, NoSuchAtomError{Res: r.id, Atom: t}
}

// Contains reports whether an atom of the given type is present.
func (r *Residue) Contains(t *types.AtomType) bool {
	_, ok := r.index[t]
	return ok
}

// Atoms returns pointers to the atoms matching the set, in insertion
// order. Atoms(types.All) walks everything.
func (r *Residue) Atoms(set types.AtomSet) []*Atom {
	var out []*Atom
	for i := range r.atoms {
		if set.Match(r.atoms[i].Type) {
			out = append(out, &r.atoms[i])
		}
	}
	return out
}

// Clone returns a deep copy.
func (r *Residue) Clone() *Residue {
	c := New(r.typ, r.id)
	c.atoms = append([]Atom(nil), r.atoms...)
	for k, v := range r.index {
		c.index[k] = v
	}
	c.ribValid = r.ribValid
	c.ribBuilt = r.ribBuilt
	return c
}

// Transform rigidly moves every atom.
func (r *Residue) Transform(t geom.Transfo) {
	for i := range r.atoms {
		r.atoms[i].Transform(t)
	}
}

// Finalize computes the pseudo-atoms that anchor the local referential:
// PSY and PSZ from the glycosidic nitrogen frame for nucleic acids, PSAZ
// for amino acids. Phosphate and ribose residues need none. A missing
// heavy anchor is logged and leaves the residue without pseudo-atoms.
func (r *Residue) Finalize() {
	var v1, v2, v3 *Atom
	var err error

	place := func() error {
		a := geom.Normalize(v2.Pos.Sub(v1.Pos))
		b := geom.Normalize(v3.Pos.Sub(v1.Pos))
		y := v1.Pos.Add(geom.Normalize(a.Add(b)))
		z := v1.Pos.Add(geom.Normalize(geom.Cross(b, a)))
		r.Insert(Atom{Pos: y, Type: types.AtomPSY})
		r.Insert(Atom{Pos: z, Type: types.AtomPSZ})
		return nil
	}

	switch {
	case r.typ.IsPurine():
		if v1, v2, v3, err = r.get3(types.AtomN9, types.AtomC8, types.AtomC4); err == nil {
			err = place()
		}
	case r.typ.IsPyrimidine():
		if v1, v2, v3, err = r.get3(types.AtomN1, types.AtomC6, types.AtomC2); err == nil {
			err = place()
		}
	case r.typ.IsPhosphate() || r.typ.IsRibose():
		// referential pivots are real atoms
	case r.typ.IsAminoAcid():
		if v1, v2, v3, err = r.get3(types.AtomAminoCA, types.AtomAminoN, types.AtomAminoC); err == nil {
			a := geom.Normalize(v2.Pos.Sub(v1.Pos))
			b := geom.Normalize(v3.Pos.Sub(v1.Pos))
			z := v1.Pos.Add(geom.Normalize(geom.Cross(b, a)))
			r.Insert(Atom{Pos: z, Type: types.AtomPSAZ})
		}
	default:
		Warn.Printf("unknown pseudo-atoms for residue type %s", r)
	}
	if err != nil {
		Warn.Printf("unknown pseudo-atoms for residue %s: %v", r, err)
	}
}

func (r *Residue) get3(t1, t2, t3 *types.AtomType) (*Atom, *Atom, *Atom, error) {
	a1, err := r.SafeGet(t1)
	if err != nil {
		return nil, nil, nil, err
	}
	a2, err := r.SafeGet(t2)
	if err != nil {
		return nil, nil, nil, err
	}
	a3, err := r.SafeGet(t3)
	if err != nil {
		return nil, nil, nil, err
	}
	return a1, a2, a3, nil
}

// referentialPivots returns the three atoms whose aligned frame is the
// residue's referential.
func (r *Residue) referentialPivots() (*Atom, *Atom, *Atom, error) {
	switch {
	case r.typ.IsPurine():
		return r.get3(types.AtomN9, types.AtomPSY, types.AtomPSZ)
	case r.typ.IsPyrimidine():
		return r.get3(types.AtomN1, types.AtomPSY, types.AtomPSZ)
	case r.typ.IsPhosphate():
		return r.get3(types.AtomP, types.AtomO3p, types.AtomO5p)
	case r.typ.IsRibose():
		return r.get3(types.AtomC1p, types.AtomC2p, types.AtomO4p)
	case r.typ.IsAminoAcid():
		return r.get3(types.AtomAminoCA, types.AtomAminoN, types.AtomPSAZ)
	}
	if len(r.atoms) >= 3 {
		return &r.atoms[0], &r.atoms[1], &r.atoms[2], nil
	}
	return nil, nil, nil, fmt.Errorf("residue: no referential for residue %s", r)
}

// Referential returns the rigid frame of the residue. Residues whose
// pivots are missing report the identity.
func (r *Residue) Referential() geom.Transfo {
	p1, p2, p3, err := r.referentialPivots()
	if err != nil {
		Warn.Printf("%v", err)
		return geom.Identity()
	}
	return geom.Align(p1.Pos, p2.Pos, p3.Pos)
}

// SetReferential rigidly transforms the residue so that its referential
// becomes m.
func (r *Residue) SetReferential(m geom.Transfo) {
	r.Transform(m.Mul(r.Referential().Invert()))
}

// Distance is the conformational distance between two nucleic-acid
// residues: the metric between their referentials.
func (r *Residue) Distance(o *Residue) float64 {
	return r.Referential().Distance(o.Referential())
}

// Validate verifies that every obligatory heavy atom of the residue type
// is present; when one is missing the residue type is demoted to its
// invalid twin. Unknown residue types are left untouched.
func (r *Residue) Validate() {
	obl := obligatory(r.typ)
	if obl == nil {
		return
	}
	for _, t := range obl {
		if !r.Contains(t) {
			r.typ = r.typ.Invalid()
			return
		}
	}
}

// RemoveOptionals drops every atom that is not obligatory for the
// residue type: hydrogens, lone pairs, pseudo-atoms and stray atoms.
func (r *Residue) RemoveOptionals() {
	obl := obligatory(r.typ)
	if obl == nil {
		return
	}
	keep := make(map[*types.AtomType]bool, len(obl))
	for _, t := range obl {
		keep[t] = true
	}
	var kept []Atom
	for _, a := range r.atoms {
		if keep[a.Type] {
			kept = append(kept, a)
		}
	}
	r.atoms = kept
	r.index = make(map[*types.AtomType]int, len(kept))
	for i, a := range r.atoms {
		r.index[a.Type] = i
	}
	r.ribDirty = true
}

// SetupHLP normalizes the proton content of a residue before annotation:
// optional atoms are dropped and hydrogens and lone pairs are rebuilt at
// their idealized positions.
func (r *Residue) SetupHLP() {
	r.RemoveOptionals()
	r.AddHydrogens()
	r.AddLonePairs()
}

var nucleobaseObligatory = map[*types.ResidueType][]*types.AtomType{
	types.ResidueA: {
		types.AtomN9, types.AtomC4, types.AtomN3, types.AtomC2, types.AtomN1,
		types.AtomC6, types.AtomN6, types.AtomC5, types.AtomN7, types.AtomC8,
	},
	types.ResidueC: {
		types.AtomN1, types.AtomC6, types.AtomC2, types.AtomO2, types.AtomN3,
		types.AtomC4, types.AtomN4, types.AtomC5,
	},
	types.ResidueG: {
		types.AtomN9, types.AtomC4, types.AtomN3, types.AtomC2, types.AtomN2,
		types.AtomN1, types.AtomC6, types.AtomO6, types.AtomC5, types.AtomN7,
		types.AtomC8,
	},
	types.ResidueU: {
		types.AtomN1, types.AtomC6, types.AtomC2, types.AtomO2, types.AtomN3,
		types.AtomC4, types.AtomO4, types.AtomC5,
	},
	types.ResidueT: {
		types.AtomN1, types.AtomC6, types.AtomC2, types.AtomO2, types.AtomN3,
		types.AtomC4, types.AtomO4, types.AtomC5, types.AtomC5M,
	},
}

var riboseObligatory = []*types.AtomType{
	types.AtomC1p, types.AtomC2p, types.AtomC3p, types.AtomC4p, types.AtomC5p,
	types.AtomO3p, types.AtomO4p, types.AtomO5p, types.AtomP,
}

// obligatory returns the heavy atoms a complete residue of this type
// must carry, or nil when no topology is known for the type.
func obligatory(typ *types.ResidueType) []*types.AtomType {
	base, ok := nucleobaseObligatory[typ]
	if !ok {
		switch typ {
		case types.ResiduePhosphate:
			return []*types.AtomType{
				types.AtomP, types.AtomO1P, types.AtomO2P, types.AtomO5p, types.AtomO3p,
			}
		case types.ResidueRibose:
			return []*types.AtomType{
				types.AtomC1p, types.AtomC2p, types.AtomC3p, types.AtomC4p,
				types.AtomC5p, types.AtomO4p,
			}
		}
		return nil
	}
	out := append([]*types.AtomType(nil), base...)
	out = append(out, riboseObligatory...)
	if typ.IsRNA() {
		out = append(out, types.AtomO2p)
	}
	return out
}
