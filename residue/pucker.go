package residue

import (
	"math"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/types"
)

const rad36 = 36 * math.Pi / 180

// puckerOrder lists the pucker classes by increasing pseudorotation, one
// 36 degree bin each starting at 0.
var puckerOrder = []*types.PropertyType{
	types.PuckerC3pEndo,
	types.PuckerC4pExo,
	types.PuckerO4pEndo,
	types.PuckerC1pExo,
	types.PuckerC2pEndo,
	types.PuckerC3pExo,
	types.PuckerC4pEndo,
	types.PuckerO4pExo,
	types.PuckerC1pEndo,
	types.PuckerC2pExo,
}

// Rho returns the furanose pseudorotation phase in [0, 2pi), computed
// from the five endocyclic torsions (Altona & Sundaralingam).
func (r *Residue) Rho() (float64, error) {
	c1p, c2p, c3p, err := r.get3(types.AtomC1p, types.AtomC2p, types.AtomC3p)
	if err != nil {
		return 0, err
	}
	c4p, err := r.SafeGet(types.AtomC4p)
	if err != nil {
		return 0, err
	}
	o4p, err := r.SafeGet(types.AtomO4p)
	if err != nil {
		return 0, err
	}

	nu0 := geom.Torsion(c4p.Pos, o4p.Pos, c1p.Pos, c2p.Pos)
	nu1 := geom.Torsion(o4p.Pos, c1p.Pos, c2p.Pos, c3p.Pos)
	nu2 := geom.Torsion(c1p.Pos, c2p.Pos, c3p.Pos, c4p.Pos)
	nu3 := geom.Torsion(c2p.Pos, c3p.Pos, c4p.Pos, o4p.Pos)
	nu4 := geom.Torsion(c3p.Pos, c4p.Pos, o4p.Pos, c1p.Pos)

	rho := math.Atan2(nu4+nu1-nu3-nu0, nu2*3.07768354)
	if rho < 0 {
		rho += 2 * math.Pi
	}
	return rho, nil
}

// Chi returns the glycosyl torsion O4'-C1'-N1-C2 for pyrimidines and
// O4'-C1'-N9-C4 for purines, in (-pi, pi].
func (r *Residue) Chi() (float64, error) {
	var n, c *types.AtomType
	switch {
	case r.typ.IsPyrimidine():
		n, c = types.AtomN1, types.AtomC2
	case r.typ.IsPurine():
		n, c = types.AtomN9, types.AtomC4
	default:
		return 0, InvalidTypeError{Res: r.id, Op: "evaluate glycosyl torsion"}
	}

	c1p, o4p, n19, err := r.get3(types.AtomC1p, types.AtomO4p, n)
	if err != nil {
		return 0, err
	}
	c24, err := r.SafeGet(c)
	if err != nil {
		return 0, err
	}
	return geom.Torsion(o4p.Pos, c1p.Pos, n19.Pos, c24.Pos), nil
}

// PuckerType maps a pseudorotation phase to its pucker class.
func PuckerType(rho float64) *types.PropertyType {
	for rho < 0 {
		rho += 2 * math.Pi
	}
	for rho >= 2*math.Pi {
		rho -= 2 * math.Pi
	}
	i := int(rho / rad36)
	if i >= len(puckerOrder) {
		i = len(puckerOrder) - 1
	}
	return puckerOrder[i]
}

// GlycosylType maps a glycosyl torsion to syn or anti: syn lives in
// [-pi/2, pi/2), anti everywhere else.
func GlycosylType(chi float64) *types.PropertyType {
	for chi < -math.Pi/2 {
		chi += 2 * math.Pi
	}
	for chi >= 3*math.Pi/2 {
		chi -= 2 * math.Pi
	}
	if chi < math.Pi/2 {
		return types.GlycosylSyn
	}
	return types.GlycosylAnti
}

// Pucker returns the pucker class of the residue's sugar.
func (r *Residue) Pucker() (*types.PropertyType, error) {
	rho, err := r.Rho()
	if err != nil {
		return nil, err
	}
	return PuckerType(rho), nil
}

// Glycosyl returns the glycosyl rotamer class of the residue.
func (r *Residue) Glycosyl() (*types.PropertyType, error) {
	chi, err := r.Chi()
	if err != nil {
		return nil, err
	}
	return GlycosylType(chi), nil
}
