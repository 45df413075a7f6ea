package residue

import (
	"bytes"
	"io"
	"log"
	"math"
	"testing"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/types"
)

func init() {
	// placement warnings are noise here
	Warn = log.New(io.Discard, "", 0)
}

func mustTheoretical(t *testing.T, typ *types.ResidueType) *Residue {
	t.Helper()
	r, err := NewTheoretical(typ)
	if err != nil {
		t.Fatalf("theoretical %s: %v", typ, err)
	}
	return r
}

func mustFullTheoretical(t *testing.T, typ *types.ResidueType) *Residue {
	t.Helper()
	r := New(typ, types.NewResId('A', 1))
	if err := r.SetFullTheoretical(); err != nil {
		t.Fatalf("full theoretical %s: %v", typ, err)
	}
	return r
}

func TestInsertEraseGet(t *testing.T) {
	r := New(types.ResidueA, types.NewResId('A', 7))

	r.Insert(NewAtom(1, 2, 3, types.AtomN9))
	r.Insert(NewAtom(4, 5, 6, types.AtomC8))
	if r.Len() != 2 {
		t.Fatalf("got %d atoms, want 2", r.Len())
	}

	// insertion by type overwrites in place
	r.Insert(NewAtom(9, 9, 9, types.AtomN9))
	if r.Len() != 2 {
		t.Fatalf("overwrite changed length to %d", r.Len())
	}
	if got := r.Get(types.AtomN9).Pos; got.X != 9 {
		t.Errorf("overwrite kept old position %v", got)
	}

	r.Erase(types.AtomN9)
	if r.Contains(types.AtomN9) {
		t.Error("erased atom still present")
	}
	if r.Get(types.AtomC8) == nil {
		t.Error("erase dropped an unrelated atom")
	}

	if _, err := r.SafeGet(types.AtomN9); err == nil {
		t.Error("SafeGet on a missing atom should fail")
	}
}

func TestAtomsSelection(t *testing.T) {
	r := mustTheoretical(t, types.ResidueA)

	for _, a := range r.Atoms(types.Hydrogen) {
		if !a.Type.IsHydrogen() {
			t.Errorf("hydrogen selection returned %s", a.Type)
		}
	}
	nAll := len(r.Atoms(types.All))
	nH := len(r.Atoms(types.Hydrogen))
	nLP := len(r.Atoms(types.LonePair))
	if nH == 0 || nLP == 0 {
		t.Fatalf("theoretical A has %d hydrogens, %d lone pairs", nH, nLP)
	}
	if n := len(r.Atoms(types.Not(types.Hydrogen))); n != nAll-nH {
		t.Errorf("complement selection: got %d, want %d", n, nAll-nH)
	}
}

func TestTheoreticalDecoration(t *testing.T) {
	r := mustTheoretical(t, types.ResidueA)

	// base protons and lone pairs of adenine
	for _, typ := range []*types.AtomType{
		types.AtomH2, types.AtomH8, types.Atom1H6, types.Atom2H6,
		types.AtomLP1, types.AtomLP3, types.AtomLP7,
	} {
		if !r.Contains(typ) {
			t.Errorf("theoretical A is missing %s", typ)
		}
	}

	// AMBER bond lengths
	checks := []struct {
		a, b *types.AtomType
		d    float64
	}{
		{types.AtomH2, types.AtomC2, 1.08},
		{types.AtomH8, types.AtomC8, 1.08},
		{types.Atom1H6, types.AtomN6, 1.01},
		{types.Atom2H6, types.AtomN6, 1.01},
		{types.AtomLP1, types.AtomN1, 1.00},
	}
	for _, c := range checks {
		d := r.Get(c.a).Distance(*r.Get(c.b))
		if math.Abs(d-c.d) > 1e-6 {
			t.Errorf("|%s-%s| = %.4f, want %.4f", c.a, c.b, d, c.d)
		}
	}

	// referential has been reset to identity: N9 at origin
	n9 := r.Get(types.AtomN9).Pos
	if geom.Norm(n9) > 1e-6 {
		t.Errorf("N9 at %v after identity referential", n9)
	}
}

func TestGuanineLonePairs(t *testing.T) {
	r := mustTheoretical(t, types.ResidueG)
	for _, typ := range []*types.AtomType{
		types.AtomH1, types.AtomH8, types.Atom1H2, types.Atom2H2,
		types.AtomLP3, types.AtomLP7, types.Atom1LP6, types.Atom2LP6,
	} {
		if !r.Contains(typ) {
			t.Errorf("theoretical G is missing %s", typ)
		}
	}
	for _, lp := range []*types.AtomType{types.Atom1LP6, types.Atom2LP6} {
		d := r.Get(lp).Distance(*r.Get(types.AtomO6))
		if math.Abs(d-1.0) > 1e-6 {
			t.Errorf("|%s-O6| = %.4f, want 1.0", lp, d)
		}
	}
}

func TestReferentialRoundTrip(t *testing.T) {
	r := mustTheoretical(t, types.ResidueC)

	m := geom.Translation(geom.Point{X: 3, Y: -2, Z: 7}).
		Mul(geom.RotationZ(0.8)).
		Mul(geom.RotationX(-0.3))
	r.SetReferential(m)

	if d := r.Referential().Distance(m); d > 1e-6 {
		t.Errorf("referential off by %g after SetReferential", d)
	}
	if d := r.Distance(r); d > 1e-9 {
		t.Errorf("self distance = %g", d)
	}
}

func TestValidateDemotesIncomplete(t *testing.T) {
	r := mustFullTheoretical(t, types.ResidueA)
	r.Validate()
	if r.Type() != types.ResidueA {
		t.Fatalf("complete residue demoted to %s", r.Type())
	}

	r.Erase(types.AtomN1)
	r.Validate()
	if r.Type() == types.ResidueA || !r.Type().IsInvalid() {
		t.Errorf("incomplete residue kept type %s", r.Type())
	}
}

func TestRemoveOptionals(t *testing.T) {
	r := mustFullTheoretical(t, types.ResidueU)
	if len(r.Atoms(types.Hydrogen)) == 0 {
		t.Fatal("full theoretical U carries no hydrogens")
	}
	r.RemoveOptionals()
	if n := len(r.Atoms(types.Hydrogen)); n != 0 {
		t.Errorf("%d hydrogens survived RemoveOptionals", n)
	}
	if n := len(r.Atoms(types.LonePair)); n != 0 {
		t.Errorf("%d lone pairs survived RemoveOptionals", n)
	}
	if !r.Contains(types.AtomO2p) {
		t.Error("RemoveOptionals dropped the obligatory O2'")
	}
}

func TestFullTheoretical(t *testing.T) {
	r := mustFullTheoretical(t, types.ResidueG)

	for _, typ := range []*types.AtomType{
		types.AtomC1p, types.AtomC2p, types.AtomC3p, types.AtomC4p,
		types.AtomC5p, types.AtomO2p, types.AtomO3p, types.AtomO4p,
		types.AtomO5p, types.AtomP, types.AtomO1P, types.AtomO2P,
	} {
		if !r.Contains(typ) {
			t.Errorf("full theoretical G is missing %s", typ)
		}
	}

	// glycosidic bond
	d := r.Get(types.AtomC1p).Distance(*r.Get(types.AtomN9))
	if math.Abs(d-1.465) > 1e-3 {
		t.Errorf("|C1'-N9| = %.4f, want 1.465", d)
	}

	pucker, err := r.Pucker()
	if err != nil {
		t.Fatalf("pucker: %v", err)
	}
	if pucker != types.PuckerC3pEndo {
		t.Errorf("pucker = %s, want %s", pucker, types.PuckerC3pEndo)
	}
	glyc, err := r.Glycosyl()
	if err != nil {
		t.Fatalf("glycosyl: %v", err)
	}
	if glyc != types.GlycosylAnti {
		t.Errorf("glycosyl = %s, want %s", glyc, types.GlycosylAnti)
	}
}

func TestRhoChiTheoretical(t *testing.T) {
	// the sugar is rebuilt from the same internal parameters for every
	// base, so the measured pseudorotation is shared while the
	// glycosyl torsion tracks each base frame
	tests := []struct {
		typ *types.ResidueType
		chi float64
	}{
		{types.ResidueA, 2.2178},
		{types.ResidueC, 2.0914},
		{types.ResidueG, 2.2132},
		{types.ResidueU, 2.0851},
		{types.ResidueT, 2.0838},
	}
	for _, tt := range tests {
		r := mustFullTheoretical(t, tt.typ)
		rho, err := r.Rho()
		if err != nil {
			t.Fatalf("%s rho: %v", tt.typ, err)
		}
		if math.Abs(rho-0.3284) > 1e-3 {
			t.Errorf("%s rho = %.6f, want 0.3284", tt.typ, rho)
		}
		chi, err := r.Chi()
		if err != nil {
			t.Fatalf("%s chi: %v", tt.typ, err)
		}
		if math.Abs(chi-tt.chi) > 1e-3 {
			t.Errorf("%s chi = %.6f, want %.4f", tt.typ, chi, tt.chi)
		}
	}
}

func TestPuckerBins(t *testing.T) {
	tests := []struct {
		rho  float64
		want *types.PropertyType
	}{
		{0, types.PuckerC3pEndo},
		{0.5, types.PuckerC3pEndo},
		{0.7, types.PuckerC4pExo},
		{math.Pi, types.PuckerC3pExo},
		{2*math.Pi - 0.1, types.PuckerC2pExo},
		{-0.1, types.PuckerC2pExo},
	}
	for _, tt := range tests {
		if got := PuckerType(tt.rho); got != tt.want {
			t.Errorf("PuckerType(%.2f) = %s, want %s", tt.rho, got, tt.want)
		}
	}

	if GlycosylType(0) != types.GlycosylSyn {
		t.Error("chi=0 should be syn")
	}
	if GlycosylType(math.Pi) != types.GlycosylAnti {
		t.Error("chi=pi should be anti")
	}
	if GlycosylType(-math.Pi) != types.GlycosylAnti {
		t.Error("chi=-pi should be anti")
	}
	if GlycosylType(2*math.Pi) != types.GlycosylSyn {
		t.Error("chi=2pi should wrap to syn")
	}
}

func TestBuildRiboseBondLengths(t *testing.T) {
	r := mustTheoretical(t, types.ResidueA)
	if err := r.BuildRibose(0.3, math.Pi, 1, math.Pi, true, true); err != nil {
		t.Fatalf("build ribose: %v", err)
	}

	checks := []struct {
		a, b *types.AtomType
		d    float64
	}{
		{types.AtomC1p, types.AtomC2p, 1.529},
		{types.AtomC1p, types.AtomO4p, 1.417},
		{types.AtomC2p, types.AtomC3p, 1.523},
		{types.AtomC2p, types.AtomO2p, 1.414},
		{types.AtomC5p, types.AtomO5p, 1.440},
		{types.AtomO5p, types.AtomP, 1.593},
		{types.AtomC3p, types.AtomO3p, 1.431},
	}
	for _, c := range checks {
		d := r.Get(c.a).Distance(*r.Get(c.b))
		if math.Abs(d-c.d) > 1e-3 {
			t.Errorf("|%s-%s| = %.4f, want %.3f", c.a, c.b, d, c.d)
		}
	}
	if !r.ValidateRiboseBuilding() {
		t.Error("explicit build should validate")
	}
	if r.RiboseBuiltCount() != 1 {
		t.Errorf("built count = %d, want 1", r.RiboseBuiltCount())
	}
}

func TestCCM4DAnchorsOnSelf(t *testing.T) {
	r := mustFullTheoretical(t, types.ResidueA)
	c5p := r.Get(types.AtomC5p).Pos
	c3p := r.Get(types.AtomC3p).Pos

	po45 := New(types.ResiduePhosphate, types.NewResId('p', 0))
	po45.Insert(Atom{Pos: c5p, Type: types.AtomO5p})
	po43 := New(types.ResiduePhosphate, types.NewResId('p', 2))
	po43.Insert(Atom{Pos: c3p, Type: types.AtomO3p})

	val, err := r.BuildRiboseByCCM4D(po45, po43, types.PuckerC3pEndo, types.GlycosylAnti)
	if err != nil {
		t.Fatalf("CCM4D: %v", err)
	}
	if val > 1e-4 {
		t.Errorf("objective = %g, want <= 1e-4", val)
	}
	if d := geom.Distance(r.Get(types.AtomC5p).Pos, c5p); d > 0.02 {
		t.Errorf("rebuilt C5' moved %.4f A", d)
	}
	if d := geom.Distance(r.Get(types.AtomC3p).Pos, c3p); d > 0.02 {
		t.Errorf("rebuilt C3' moved %.4f A", d)
	}
	if r.RiboseBuiltCount() == 0 {
		t.Error("descent built nothing")
	}
}

func TestCCM4DImprovesDisplacedAnchors(t *testing.T) {
	r := mustFullTheoretical(t, types.ResidueG)
	c5p := r.Get(types.AtomC5p).Pos
	c3p := r.Get(types.AtomC3p).Pos

	// both anchors 0.3 A off the linkers of the starting conformation
	po45 := New(types.ResiduePhosphate, types.NewResId('p', 0))
	po45.Insert(Atom{Pos: c5p.Add(geom.Point{X: 0.3}), Type: types.AtomO5p})
	po43 := New(types.ResiduePhosphate, types.NewResId('p', 2))
	po43.Insert(Atom{Pos: c3p.Add(geom.Point{Y: 0.3}), Type: types.AtomO3p})

	val, err := r.BuildRiboseByCCM4D(po45, po43, types.PuckerC3pEndo, types.GlycosylAnti)
	if err != nil {
		t.Fatalf("CCM4D: %v", err)
	}
	// the restricted search opens at the range midpoint, where both
	// linkers sit 0.3 A from their anchors; accepted steps only ever
	// lower the objective, so the returned rms may not exceed that
	if val > 0.3 {
		t.Errorf("rms = %.6f above the starting 0.3", val)
	}
	if math.Abs(val-0.2643) > 1e-3 {
		t.Errorf("rms = %.6f, want 0.2643", val)
	}
}

func TestCCMNeedsAnchor(t *testing.T) {
	r := mustTheoretical(t, types.ResidueC)
	if _, err := r.BuildRiboseByCCM4D(nil, nil, nil, nil); err == nil {
		t.Error("CCM4D without anchors should fail")
	} else if _, ok := err.(MissingAnchorError); !ok {
		t.Errorf("got %T, want MissingAnchorError", err)
	}
	if _, err := r.BuildRiboseByCCM2D(nil, nil, nil, nil); err == nil {
		t.Error("CCM2D without anchors should fail")
	}
	if _, err := r.BuildRiboseByEstimation(nil, nil); err == nil {
		t.Error("estimation without 3' anchor should fail")
	}
}

func TestCCM2DAnchorsOnSelf(t *testing.T) {
	r := mustFullTheoretical(t, types.ResidueU)
	c3p := r.Get(types.AtomC3p).Pos

	po43 := New(types.ResiduePhosphate, types.NewResId('p', 2))
	po43.Insert(Atom{Pos: c3p, Type: types.AtomO3p})

	val, err := r.BuildRiboseByCCM2D(nil, po43, types.PuckerC3pEndo, types.GlycosylAnti)
	if err != nil {
		t.Fatalf("CCM2D: %v", err)
	}
	// the free 5' branch contributes its ideal bond length to the value
	if val > 1.1 {
		t.Errorf("objective = %g, want about sqrt(2.0736/2)", val)
	}
	if d := geom.Distance(r.Get(types.AtomC3p).Pos, c3p); d > 0.02 {
		t.Errorf("rebuilt C3' moved %.4f A", d)
	}
}

func TestEstimationAmplitude(t *testing.T) {
	// anchor at the maximum of the cosine fit: amplitude test passes
	r := mustTheoretical(t, types.ResidueA)
	po43 := New(types.ResiduePhosphate, types.NewResId('p', 2))
	po43.Insert(NewAtom(estimVShift+estimAmplitude, -1, 0, types.AtomO3p))

	val, err := r.BuildRiboseByEstimation(nil, po43)
	if err != nil {
		t.Fatalf("estimation: %v", err)
	}
	if !r.ValidateRiboseBuilding() {
		t.Error("in-range anchor should validate")
	}
	if val == math.MaxFloat64 {
		t.Error("in-range anchor returned an infinite value")
	}
	for _, typ := range []*types.AtomType{
		types.AtomC1p, types.AtomC2p, types.AtomC3p, types.AtomC4p,
		types.AtomC5p, types.AtomO4p, types.AtomO5p, types.AtomP,
	} {
		if !r.Contains(typ) {
			t.Errorf("estimation left %s unbuilt", typ)
		}
	}

	// the anchor length equals the cosine-fit maximum, so the acos
	// argument saturates and the kept mirror candidate lands just
	// under 2 pi; the measured pseudorotation and the anchor rms
	// follow from it
	rho, err := r.Rho()
	if err != nil {
		t.Fatalf("rho after estimation: %v", err)
	}
	if math.Abs(rho-5.9712) > 1e-3 {
		t.Errorf("rho = %.6f, want 5.9712", rho)
	}
	if math.Abs(val-1.8070) > 1e-3 {
		t.Errorf("anchor rms = %.6f, want 1.8070", val)
	}
	glyc, err := r.Glycosyl()
	if err != nil {
		t.Fatalf("glycosyl after estimation: %v", err)
	}
	if glyc != types.GlycosylSyn {
		t.Errorf("glycosyl = %s, want %s", glyc, types.GlycosylSyn)
	}

	// anchor far outside the furanose reach: invalidated
	r2 := mustTheoretical(t, types.ResidueA)
	far := New(types.ResiduePhosphate, types.NewResId('p', 2))
	far.Insert(NewAtom(10, 0, 0, types.AtomO3p))
	val, err = r2.BuildRiboseByEstimation(nil, far)
	if err != nil {
		t.Fatalf("estimation: %v", err)
	}
	if r2.ValidateRiboseBuilding() {
		t.Error("out-of-range anchor should not validate")
	}
	if val != math.MaxFloat64 {
		t.Errorf("out-of-range anchor returned %g", val)
	}
}

func TestCreatePhosphate5p(t *testing.T) {
	r := mustFullTheoretical(t, types.ResidueC)
	po4, err := CreatePhosphate5p(r)
	if err != nil {
		t.Fatalf("createPhosphate5p: %v", err)
	}
	if po4.Type() != types.ResiduePhosphate {
		t.Fatalf("created a %s", po4.Type())
	}

	// superposed on the reference P, O5' aligned with the reference bond
	if d := geom.Distance(po4.Get(types.AtomP).Pos, r.Get(types.AtomP).Pos); d > 1e-4 {
		t.Errorf("phosphate P off by %.5f A", d)
	}
	u := geom.Normalize(po4.Get(types.AtomO5p).Pos.Sub(po4.Get(types.AtomP).Pos))
	v := geom.Normalize(r.Get(types.AtomO5p).Pos.Sub(r.Get(types.AtomP).Pos))
	if geom.Dot(u, v) < 0.9999 {
		t.Errorf("O5' direction misaligned, cos = %.5f", geom.Dot(u, v))
	}
}

func TestCloneIsDeep(t *testing.T) {
	r := mustTheoretical(t, types.ResidueU)
	c := r.Clone()
	c.Get(types.AtomN1).Pos = geom.Point{X: 99}
	if r.Get(types.AtomN1).Pos.X == 99 {
		t.Error("clone shares atom storage with the original")
	}
	c.SetID(types.NewResId('Z', 42))
	if r.ID() == c.ID() {
		t.Error("clone shares the id")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	r := mustFullTheoretical(t, types.ResidueG)
	r.SetID(types.NewResId('B', 17))

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	in := New(nil, types.ResId{})
	if err := in.Read(&buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if in.Type() != types.ResidueG {
		t.Errorf("type = %s, want %s", in.Type(), types.ResidueG)
	}
	if in.ID() != r.ID() {
		t.Errorf("id = %s, want %s", in.ID(), r.ID())
	}
	if in.Len() != r.Len() {
		t.Fatalf("atom count = %d, want %d", in.Len(), r.Len())
	}
	for _, a := range r.Atoms(types.All) {
		b := in.Get(a.Type)
		if b == nil {
			t.Fatalf("round trip lost %s", a.Type)
		}
		// binary32 positions
		if geom.Distance(a.Pos, b.Pos) > 1e-5 {
			t.Errorf("%s moved %g", a.Type, geom.Distance(a.Pos, b.Pos))
		}
	}
}

func TestRhoChiErrors(t *testing.T) {
	r := New(types.ResidueA, types.NewResId('A', 1))
	if _, err := r.Rho(); err == nil {
		t.Error("rho without a sugar should fail")
	}
	if _, err := r.Chi(); err == nil {
		t.Error("chi without a sugar should fail")
	}
	w := New(types.ResidueWater, types.NewResId('A', 2))
	if _, err := w.Chi(); err == nil {
		t.Error("chi on water should fail")
	}
}
