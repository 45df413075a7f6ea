package hbond

import (
	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

// PatternBond is one characteristic bond of a pairing pattern, named by
// its heavy atoms only. RefDonor tells on which side of the pattern the
// donor lives.
type PatternBond struct {
	Donor    *types.AtomType
	Acceptor *types.AtomType
	RefDonor bool
}

// PairingPattern describes one catalogued base pair: the two residue
// types, the base-plane orientation and the set of characteristic
// bonds. A nil Orientation matches either orientation.
type PairingPattern struct {
	Name        *types.PropertyType
	Ref, Res    *types.ResidueType
	Orientation *types.PropertyType
	Bonds       []PatternBond
}

// Size returns the number of characteristic bonds.
func (p *PairingPattern) Size() int { return len(p.Bonds) }

// Evaluate returns the pattern name when the residue types match in
// either direction, the base-plane orientation agrees, and every
// characteristic bond appears in the flow list. Returns nil otherwise.
func (p *PairingPattern) Evaluate(ref, res *residue.Residue, bpo *types.PropertyType, flows []Flow) *types.PropertyType {
	if p.Orientation != nil && bpo != p.Orientation {
		return nil
	}
	if ref.Type() == p.Ref && res.Type() == p.Res && p.bondsMatch(ref, res, flows) {
		return p.Name
	}
	if ref.Type() == p.Res && res.Type() == p.Ref && p.bondsMatch(res, ref, flows) {
		return p.Name
	}
	return nil
}

// bondsMatch verifies the bond subset with refSide playing the pattern's
// ref residue.
func (p *PairingPattern) bondsMatch(refSide, resSide *residue.Residue, flows []Flow) bool {
	for _, b := range p.Bonds {
		donorRes := resSide
		if b.RefDonor {
			donorRes = refSide
		}
		found := false
		for i := range flows {
			bond := &flows[i].Bond
			if bond.Donor == b.Donor && bond.Acceptor == b.Acceptor && bond.DonorRes == donorRes {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Patterns is the catalog of recognized base pairs, by Saenger number.
// Selection by the relation analyzer keeps the catalog entry with the
// most matched bonds.
var Patterns = []PairingPattern{
	{
		// Watson-Crick G=C
		Name: types.PairXIX, Ref: types.ResidueG, Res: types.ResidueC,
		Orientation: types.PropAntiparallel,
		Bonds: []PatternBond{
			{Donor: types.AtomN1, Acceptor: types.AtomN3, RefDonor: true},
			{Donor: types.AtomN2, Acceptor: types.AtomO2, RefDonor: true},
			{Donor: types.AtomN4, Acceptor: types.AtomO6, RefDonor: false},
		},
	},
	{
		// Watson-Crick A-U
		Name: types.PairXX, Ref: types.ResidueA, Res: types.ResidueU,
		Orientation: types.PropAntiparallel,
		Bonds: []PatternBond{
			{Donor: types.AtomN3, Acceptor: types.AtomN1, RefDonor: false},
			{Donor: types.AtomN6, Acceptor: types.AtomO4, RefDonor: true},
		},
	},
	{
		// Watson-Crick A-T
		Name: types.PairXX, Ref: types.ResidueA, Res: types.ResidueT,
		Orientation: types.PropAntiparallel,
		Bonds: []PatternBond{
			{Donor: types.AtomN3, Acceptor: types.AtomN1, RefDonor: false},
			{Donor: types.AtomN6, Acceptor: types.AtomO4, RefDonor: true},
		},
	},
	{
		// reverse Watson-Crick A-U
		Name: types.PairXXI, Ref: types.ResidueA, Res: types.ResidueU,
		Bonds: []PatternBond{
			{Donor: types.AtomN3, Acceptor: types.AtomN1, RefDonor: false},
			{Donor: types.AtomN6, Acceptor: types.AtomO2, RefDonor: true},
		},
	},
	{
		// Hoogsteen A-U
		Name: types.PairXXIII, Ref: types.ResidueA, Res: types.ResidueU,
		Bonds: []PatternBond{
			{Donor: types.AtomN3, Acceptor: types.AtomN7, RefDonor: false},
			{Donor: types.AtomN6, Acceptor: types.AtomO4, RefDonor: true},
		},
	},
	{
		// wobble G-U
		Name: types.PairXXVIII, Ref: types.ResidueG, Res: types.ResidueU,
		Orientation: types.PropAntiparallel,
		Bonds: []PatternBond{
			{Donor: types.AtomN1, Acceptor: types.AtomO2, RefDonor: true},
			{Donor: types.AtomN3, Acceptor: types.AtomO6, RefDonor: false},
		},
	},
	{
		// imino G-A
		Name: types.PairVIII, Ref: types.ResidueG, Res: types.ResidueA,
		Bonds: []PatternBond{
			{Donor: types.AtomN1, Acceptor: types.AtomN1, RefDonor: true},
			{Donor: types.AtomN6, Acceptor: types.AtomO6, RefDonor: false},
		},
	},
	{
		// sheared G-A
		Name: types.PairXI, Ref: types.ResidueG, Res: types.ResidueA,
		Bonds: []PatternBond{
			{Donor: types.AtomN6, Acceptor: types.AtomN3, RefDonor: false},
			{Donor: types.AtomN2, Acceptor: types.AtomN7, RefDonor: true},
		},
	},
	{
		// symmetric U-U
		Name: types.PairXII, Ref: types.ResidueU, Res: types.ResidueU,
		Bonds: []PatternBond{
			{Donor: types.AtomN3, Acceptor: types.AtomO4, RefDonor: true},
			{Donor: types.AtomN3, Acceptor: types.AtomO2, RefDonor: false},
		},
	},
}
