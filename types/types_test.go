package types

import "testing"

func TestParseAtomTypeIdentity(t *testing.T) {
	names := []string{"C1'", "O3'", "N9", "PSY", "1LP2", "XYZ42"}
	for _, n := range names {
		a := ParseAtomType(n)
		b := ParseAtomType(n)
		if a != b {
			t.Errorf("ParseAtomType(%q) returned distinct tags on repeated calls", n)
		}
		if a.String() != n {
			t.Errorf("ParseAtomType(%q).String() = %q", n, a.String())
		}
	}
}

func TestAtomTypePredicates(t *testing.T) {
	tests := []struct {
		at       *AtomType
		backbone bool
		side     bool
		hydro    bool
		lp       bool
		pseudo   bool
	}{
		{AtomP, true, false, false, false, false},
		{AtomC1p, true, false, false, false, false},
		{AtomN9, false, true, false, false, false},
		{AtomH8, false, true, true, false, false},
		{Atom1LP2, false, true, false, true, false},
		{AtomPSY, false, false, false, false, true},
	}
	for _, tt := range tests {
		if tt.at.IsBackbone() != tt.backbone {
			t.Errorf("%s: IsBackbone = %v", tt.at, tt.at.IsBackbone())
		}
		if tt.at.IsSideChain() != tt.side {
			t.Errorf("%s: IsSideChain = %v", tt.at, tt.at.IsSideChain())
		}
		if tt.at.IsHydrogen() != tt.hydro {
			t.Errorf("%s: IsHydrogen = %v", tt.at, tt.at.IsHydrogen())
		}
		if tt.at.IsLonePair() != tt.lp {
			t.Errorf("%s: IsLonePair = %v", tt.at, tt.at.IsLonePair())
		}
		if tt.at.IsPseudo() != tt.pseudo {
			t.Errorf("%s: IsPseudo = %v", tt.at, tt.at.IsPseudo())
		}
	}
}

func TestUnknownAtomTypeElement(t *testing.T) {
	if !ParseAtomType("OXT").IsOxygen() {
		t.Error("OXT should infer oxygen from its name")
	}
	if !ParseAtomType("2HB").IsHydrogen() {
		t.Error("2HB should skip the leading digit and infer hydrogen")
	}
}

func TestParseResidueType(t *testing.T) {
	if ParseResidueType("RG") != ResidueG || ParseResidueType("GUA") != ResidueG {
		t.Error("RNA and long spellings of G should intern to the same tag")
	}
	if ParseResidueType("???") != nil {
		t.Error("unknown residue names should not parse")
	}
	if !ResidueG.IsPurine() || ResidueG.IsPyrimidine() {
		t.Error("G should be a purine")
	}
	if !ParseResidueType("HOH").IsWater() {
		t.Error("HOH should be water")
	}
	if !ParseResidueType("ALA").IsAminoAcid() {
		t.Error("ALA should be an amino acid")
	}
}

func TestInvalidResidueType(t *testing.T) {
	inv := ResidueU.Invalid()
	if !inv.IsInvalid() {
		t.Error("Invalid() should mark the tag invalid")
	}
	if inv != ResidueU.Invalid() {
		t.Error("Invalid() should intern")
	}
	if ResidueU.IsInvalid() {
		t.Error("Invalid() must not touch the original tag")
	}
}

func TestPropertyInversion(t *testing.T) {
	tests := []struct{ in, out *PropertyType }{
		{PropAdjacent5p, PropAdjacent3p},
		{PropAdjacent3p, PropAdjacent5p},
		{PropUpward, PropDownward},
		{PropDownward, PropUpward},
		{PropPairing, PropPairing},
		{PropCis, PropCis},
	}
	for _, tt := range tests {
		if got := tt.in.Invert5p3p(); got != tt.out {
			t.Errorf("%s.Invert5p3p() = %s, want %s", tt.in, got, tt.out)
		}
	}
}

func TestResIdRoundTrip(t *testing.T) {
	ids := []ResId{
		NewResId('A', 1),
		NewResId('B', 1047),
		{Chain: ' ', Number: -4, ICode: ' '},
		{Chain: 'C', Number: 12, ICode: 'a'},
	}
	for _, id := range ids {
		back, err := ParseResId(id.String())
		if err != nil {
			t.Errorf("ParseResId(%q): %v", id.String(), err)
			continue
		}
		if back != id {
			t.Errorf("round trip of %q gave %q", id.String(), back.String())
		}
	}
}

func TestResIdOrder(t *testing.T) {
	a := NewResId('A', 5)
	b := NewResId('A', 6)
	c := NewResId('B', 1)
	d := ResId{Chain: 'A', Number: 5, ICode: 'a'}
	if !a.Less(b) || !b.Less(c) || !a.Less(d) || d.Less(a) {
		t.Error("ResId order must be chain, number, insertion code")
	}
}

func TestAtomSetComposition(t *testing.T) {
	side := And(SideChain, Not(Hydrogen))
	if !side.Match(AtomN9) {
		t.Error("N9 is a non-hydrogen side chain atom")
	}
	if side.Match(AtomH8) {
		t.Error("H8 is a hydrogen")
	}
	if side.Match(AtomC1p) {
		t.Error("C1' is backbone")
	}
	if !Or(Atom(AtomO2p), Atom(AtomO1P)).Match(AtomO1P) {
		t.Error("Or should match either alternative")
	}
	if Heavy.Match(AtomPSY) {
		t.Error("pseudo atoms are not heavy")
	}
}
