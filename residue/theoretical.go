package residue

import (
	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/types"
)

// SetTheoretical replaces the residue content with the idealized base
// geometry of its type, finalizes it in the identity referential, and
// decorates it with hydrogens and lone pairs. Only the five bases, the
// standalone phosphate and the ribose have theoretical coordinates.
func (r *Residue) SetTheoretical() error {
	r.Clear()

	var table []Atom
	switch {
	case r.typ.IsA():
		table = []Atom{
			NewAtom(0.213, 0.660, 1.287, types.AtomN9),
			NewAtom(0.250, 2.016, 1.509, types.AtomC4),
			NewAtom(0.016, 2.995, 0.619, types.AtomN3),
			NewAtom(0.142, 4.189, 1.194, types.AtomC2),
			NewAtom(0.451, 4.493, 2.459, types.AtomN1),
			NewAtom(0.681, 3.485, 3.329, types.AtomC6),
			NewAtom(0.990, 3.787, 4.592, types.AtomN6),
			NewAtom(0.579, 2.170, 2.844, types.AtomC5),
			NewAtom(0.747, 0.934, 3.454, types.AtomN7),
			NewAtom(0.520, 0.074, 2.491, types.AtomC8),
		}
	case r.typ.IsC():
		table = []Atom{
			NewAtom(0.212, 0.668, 1.294, types.AtomN1),
			NewAtom(0.193, -0.043, 2.462, types.AtomC6),
			NewAtom(0.374, 2.055, 1.315, types.AtomC2),
			NewAtom(0.388, 2.673, 0.240, types.AtomO2),
			NewAtom(0.511, 2.687, 2.504, types.AtomN3),
			NewAtom(0.491, 1.984, 3.638, types.AtomC4),
			NewAtom(0.631, 2.649, 4.788, types.AtomN4),
			NewAtom(0.328, 0.569, 3.645, types.AtomC5),
		}
	case r.typ.IsG():
		table = []Atom{
			NewAtom(0.214, 0.659, 1.283, types.AtomN9),
			NewAtom(0.254, 2.014, 1.509, types.AtomC4),
			NewAtom(0.034, 2.979, 0.591, types.AtomN3),
			NewAtom(0.142, 4.190, 1.110, types.AtomC2),
			NewAtom(-0.047, 5.269, 0.336, types.AtomN2),
			NewAtom(0.444, 4.437, 2.427, types.AtomN1),
			NewAtom(0.676, 3.459, 3.389, types.AtomC6),
			NewAtom(0.941, 3.789, 4.552, types.AtomO6),
			NewAtom(0.562, 2.154, 2.846, types.AtomC5),
			NewAtom(0.712, 0.912, 3.448, types.AtomN7),
			NewAtom(0.498, 0.057, 2.485, types.AtomC8),
		}
	case r.typ.IsU():
		table = []Atom{
			NewAtom(0.212, 0.676, 1.281, types.AtomN1),
			NewAtom(0.195, -0.023, 2.466, types.AtomC6),
			NewAtom(0.370, 2.048, 1.265, types.AtomC2),
			NewAtom(0.390, 2.698, 0.235, types.AtomO2),
			NewAtom(0.505, 2.629, 2.502, types.AtomN3),
			NewAtom(0.497, 1.990, 3.725, types.AtomC4),
			NewAtom(0.629, 2.653, 4.755, types.AtomO4),
			NewAtom(0.329, 0.571, 3.657, types.AtomC5),
		}
	case r.typ.IsT():
		table = []Atom{
			NewAtom(0.214, 0.668, 1.296, types.AtomN1),
			NewAtom(0.171, -0.052, 2.470, types.AtomC6),
			NewAtom(0.374, 2.035, 1.303, types.AtomC2),
			NewAtom(0.416, 2.705, 0.284, types.AtomO2),
			NewAtom(0.483, 2.592, 2.553, types.AtomN3),
			NewAtom(0.449, 1.933, 3.767, types.AtomC4),
			NewAtom(0.560, 2.568, 4.812, types.AtomO4),
			NewAtom(0.279, 0.500, 3.685, types.AtomC5),
			NewAtom(0.231, -0.299, 4.949, types.AtomC5M),
		}
	case r.typ.IsPhosphate():
		table = []Atom{
			NewAtom(4.691, 0.327, -2.444, types.AtomP),
			NewAtom(5.034, 1.678, -1.932, types.AtomO1P),
			NewAtom(4.718, 0.068, -3.906, types.AtomO2P),
			NewAtom(3.246, -0.057, -1.895, types.AtomO5p),
			NewAtom(5.662, -0.712, -1.734, types.AtomO3p),
		}
	case r.typ.IsRibose():
		table = []Atom{
			NewAtom(0.000, 0.000, 0.000, types.AtomC1p),
			NewAtom(-0.694, -0.627, -1.210, types.AtomC2p),
			NewAtom(0.499, -1.031, -2.067, types.AtomC3p),
			NewAtom(1.509, -1.478, -1.022, types.AtomC4p),
			NewAtom(2.957, -1.393, -1.443, types.AtomC5p),
			NewAtom(1.286, -0.587, 0.103, types.AtomO4p),
		}
		if r.typ.IsRNA() {
			table = append(table, NewAtom(-1.474, -1.731, -0.795, types.AtomO2p))
		}
	default:
		return InvalidTypeError{Res: r.id, Op: "create a theoretical residue"}
	}

	for _, a := range table {
		r.Insert(a)
	}
	r.Finalize()
	r.SetReferential(geom.Identity())
	r.AddHydrogens()
	r.AddLonePairs()
	return nil
}

// NewTheoretical returns a finalized theoretical residue of the given
// type in the identity referential.
func NewTheoretical(typ *types.ResidueType) (*Residue, error) {
	r := New(typ, types.NewResId(' ', 1))
	if err := r.SetTheoretical(); err != nil {
		return nil, err
	}
	return r, nil
}

// SetFullTheoretical extends SetTheoretical for nucleobases with a
// C3'-endo anti ribose and the two free phosphate oxygens.
func (r *Residue) SetFullTheoretical() error {
	if !r.typ.IsNucleicAcid() {
		return InvalidTypeError{Res: r.id, Op: "create a full theoretical residue"}
	}
	if err := r.SetTheoretical(); err != nil {
		return err
	}
	if err := r.BuildRiboseByClass(types.PuckerC3pEndo, types.GlycosylAnti, true, true); err != nil {
		return err
	}
	po4, err := CreatePhosphate5p(r)
	if err != nil {
		return err
	}
	r.Insert(*po4.Get(types.AtomO1P))
	r.Insert(*po4.Get(types.AtomO2P))
	return nil
}

// CreatePhosphate5p builds a standalone phosphate residue superposed on
// the reference residue's own P and O5' atoms, giving the adjacency
// analyzer a full O3'-P(O1P,O2P)-O5' group to frame.
func CreatePhosphate5p(reference *Residue) (*Residue, error) {
	refP, err := reference.SafeGet(types.AtomP)
	if err != nil {
		return nil, err
	}
	refO5p, err := reference.SafeGet(types.AtomO5p)
	if err != nil {
		return nil, err
	}
	ribPhos := refP.Pos
	ribOxy := refO5p.Pos

	po4 := New(types.ResiduePhosphate, types.NewResId('p', 0))
	if err := po4.SetTheoretical(); err != nil {
		return nil, err
	}

	po4.Transform(geom.Translation(ribPhos.Sub(po4.Get(types.AtomP).Pos)))

	oxy := po4.Get(types.AtomO5p).Pos
	u := oxy.Sub(ribPhos)
	v := ribOxy.Sub(ribPhos)
	po4.Transform(geom.Translation(ribPhos).
		Mul(geom.Rotation(geom.Normalize(geom.Cross(u, v)), geom.Angle(oxy, ribPhos, ribOxy))).
		Mul(geom.Translation(ribPhos.Scale(-1))))

	return po4, nil
}
