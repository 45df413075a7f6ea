// Package hbond evaluates candidate hydrogen bonds between residues.
// A bond is a quadruplet of atom types (donor, hydrogen, acceptor, lone
// pair) together with the two residues carrying them; the package
// provides a quick distance score and a Gaussian-mixture score over the
// bond geometry, and the catalog of base-pairing patterns assembled
// from such bonds.
package hbond

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

// HBond is a candidate hydrogen bond. The donor and acceptor are heavy
// atoms; the hydrogen sits on the donor, the lone pair on the acceptor.
// DonorRes and AcceptorRes are set by the evaluation entry points.
type HBond struct {
	Donor    *types.AtomType
	Hydrogen *types.AtomType
	Acceptor *types.AtomType
	LonePair *types.AtomType

	DonorRes    *residue.Residue
	AcceptorRes *residue.Residue

	value float64
}

// New returns a hydrogen bond between the four atom types, unattached
// to any residue pair.
func New(donor, hydrogen, acceptor, lonepair *types.AtomType) HBond {
	return HBond{Donor: donor, Hydrogen: hydrogen, Acceptor: acceptor, LonePair: lonepair}
}

// Value returns the score of the last evaluation.
func (h *HBond) Value() float64 { return h.value }

func (h *HBond) String() string {
	return fmt.Sprintf("%s-%s -> %s-%s", h.Donor, h.Hydrogen, h.LonePair, h.Acceptor)
}

// Equal compares the four atom types.
func (h *HBond) Equal(o *HBond) bool {
	return h.Donor == o.Donor && h.Hydrogen == o.Hydrogen &&
		h.Acceptor == o.Acceptor && h.LonePair == o.LonePair
}

// ReassignResiduePointers redirects the bond's residues through the
// id-keyed map, used when a deserialized or deep-copied relation must
// point into a new residue set.
func (h *HBond) ReassignResiduePointers(resMap map[types.ResId]*residue.Residue) error {
	if h.DonorRes != nil {
		r, ok := resMap[h.DonorRes.ID()]
		if !ok {
			return NoSuchElementError{ID: h.DonorRes.ID()}
		}
		h.DonorRes = r
	}
	if h.AcceptorRes != nil {
		r, ok := resMap[h.AcceptorRes.ID()]
		if !ok {
			return NoSuchElementError{ID: h.AcceptorRes.ID()}
		}
		h.AcceptorRes = r
	}
	return nil
}

// NoSuchElementError reports a residue id that cannot be resolved
// against the current residue set.
type NoSuchElementError struct {
	ID types.ResId
}

func (e NoSuchElementError) Error() string {
	return fmt.Sprintf("hbond: cannot find residue id %s", e.ID)
}

// The quick score is a bell over the hydrogen to lone pair distance,
// centered on the separation of an ideal straight bond.
const (
	hlpIdeal = 0.9
	hlpWidth = 0.6
)

// Eval scores the bond on the hydrogen to lone pair distance alone and
// binds it to the residue pair: 1 at the ideal separation, falling off
// as a Gaussian. Returns 0 when an atom is missing.
func (h *HBond) Eval(ra, rb *residue.Residue) float64 {
	h.DonorRes = ra
	h.AcceptorRes = rb
	h.value = 0

	hyd := ra.Get(h.Hydrogen)
	lp := rb.Get(h.LonePair)
	if hyd == nil || lp == nil {
		return 0
	}
	d := hyd.Distance(*lp) - hlpIdeal
	h.value = math.Exp(-(d * d) / (2 * hlpWidth * hlpWidth))
	return h.value
}

// EvalStatistically scores the bond with the Gaussian mixture model of
// base-pair hydrogen bond geometry (Lemieux & Major 2002). The feature
// vector is the log-cubed donor-acceptor distance and the hyperbolic
// arctangent of the cosines of the donor- and acceptor-side angles;
// the score is the posterior probability of the bonded mixture
// components. Returns 0 when an atom is missing or the donor and
// acceptor are more than 5 A apart.
func (h *HBond) EvalStatistically(ra, rb *residue.Residue) float64 {
	h.DonorRes = ra
	h.AcceptorRes = rb
	h.value = 0

	don := ra.Get(h.Donor)
	hyd := ra.Get(h.Hydrogen)
	acc := rb.Get(h.Acceptor)
	lp := rb.Get(h.LonePair)
	if don == nil || hyd == nil || acc == nil || lp == nil {
		return 0
	}
	if don.Distance(*acc) > 5 {
		return 0
	}

	x := mat.NewVecDense(3, []float64{
		math.Log(math.Pow(don.Distance(*acc), 3)),
		atanhCos(don.Pos, hyd.Pos, acc.Pos),
		atanhCos(acc.Pos, don.Pos, lp.Pos),
	})

	var pTotal, pBond float64
	diff := mat.NewVecDense(3, nil)
	tmp := mat.NewVecDense(3, nil)
	for i := 0; i < nGauss; i++ {
		diff.SubVec(x, gaussMean[i])
		tmp.MulVec(gaussCovarInv[i], diff)
		q := mat.Dot(diff, tmp)
		density := math.Exp(-0.5*q) * gaussWeight[i] /
			(math.Pow(2*math.Pi, 1.5) * math.Sqrt(gaussCovarDet[i]))
		pTotal += density
		pBond += gaussProbH[i] * density
	}
	if pTotal > 0 {
		h.value = pBond / pTotal
	}
	return h.value
}

// atanhCos maps the angle at vertex toward (a, b) into an unbounded
// feature: atanh of its cosine, clamped away from the poles.
func atanhCos(vertex, a, b geom.Point) float64 {
	u := a.Sub(vertex)
	v := b.Sub(vertex)
	cos := geom.Dot(u, v) / (geom.Norm(u) * geom.Norm(v))
	if cos > 0.999999 {
		cos = 0.999999
	} else if cos < -0.999999 {
		cos = -0.999999
	}
	return math.Atanh(cos)
}
