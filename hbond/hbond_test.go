package hbond

import (
	"bytes"
	"io"
	"log"
	"math"
	"testing"

	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

func init() {
	// placement warnings are noise here
	residue.Warn = log.New(io.Discard, "", 0)
}

// donorAcceptorPair builds a donor residue carrying N1-H1 and an
// acceptor residue carrying N3-LP3 at the given geometry: the acceptor
// nitrogen sits at dist along +X from the donor nitrogen, and the
// proton and lone pair are rotated off the axis by the given angles.
func donorAcceptorPair(dist, donorAngle, acceptorAngle float64) (*residue.Residue, *residue.Residue) {
	don := residue.New(types.ResidueG, types.NewResId('A', 1))
	don.Insert(residue.NewAtom(0, 0, 0, types.AtomN1))
	don.Insert(residue.NewAtom(math.Cos(donorAngle), math.Sin(donorAngle), 0, types.AtomH1))

	acc := residue.New(types.ResidueC, types.NewResId('A', 2))
	acc.Insert(residue.NewAtom(dist, 0, 0, types.AtomN3))
	acc.Insert(residue.NewAtom(
		dist-math.Cos(acceptorAngle), math.Sin(acceptorAngle), 0, types.AtomLP3))
	return don, acc
}

func TestEvalDistanceBell(t *testing.T) {
	don, acc := donorAcceptorPair(2.9, 0.05, 0.05)
	h := New(types.AtomN1, types.AtomH1, types.AtomN3, types.AtomLP3)

	// H at x=1.0, LP at x=1.9: separation right at the ideal
	v := h.Eval(don, acc)
	if v < 0.95 {
		t.Fatalf("ideal separation scored %.3f", v)
	}
	if h.Value() != v {
		t.Errorf("Value %.3f does not track last Eval %.3f", h.Value(), v)
	}

	don, acc = donorAcceptorPair(4.0, 0.05, 0.05)
	if far := h.Eval(don, acc); far >= v {
		t.Errorf("stretched bond scored %.3f, not below %.3f", far, v)
	}

	don.Erase(types.AtomH1)
	if got := h.Eval(don, acc); got != 0 {
		t.Errorf("missing hydrogen scored %.3f, want 0", got)
	}
}

func TestEvalStatisticallyIdealGeometry(t *testing.T) {
	// near-linear N1-H1...LP3-N3 at canonical donor-acceptor distance
	don, acc := donorAcceptorPair(2.9, 0.08, 0.08)
	h := New(types.AtomN1, types.AtomH1, types.AtomN3, types.AtomLP3)

	v := h.EvalStatistically(don, acc)
	if v < 0.5 {
		t.Fatalf("canonical geometry scored %.4f", v)
	}
	if v > 1 {
		t.Fatalf("posterior %.4f out of range", v)
	}
	if h.DonorRes != don || h.AcceptorRes != acc {
		t.Error("evaluation did not bind the residue pair")
	}
}

func TestEvalStatisticallyRejectsReversedGeometry(t *testing.T) {
	// proton and lone pair both point away from the partner
	don, acc := donorAcceptorPair(3.5, 2.45, 2.45)
	h := New(types.AtomN1, types.AtomH1, types.AtomN3, types.AtomLP3)

	if v := h.EvalStatistically(don, acc); v >= 0.01 {
		t.Fatalf("reversed geometry scored %.4f, want < 0.01", v)
	}
}

func TestEvalStatisticallyDistanceGate(t *testing.T) {
	don, acc := donorAcceptorPair(5.5, 0.08, 0.08)
	h := New(types.AtomN1, types.AtomH1, types.AtomN3, types.AtomLP3)

	if v := h.EvalStatistically(don, acc); v != 0 {
		t.Fatalf("donor-acceptor beyond 5 A scored %.4f, want 0", v)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	don, acc := donorAcceptorPair(2.9, 0.08, 0.08)
	h := New(types.AtomN1, types.AtomH1, types.AtomN3, types.AtomLP3)
	h.EvalStatistically(don, acc)

	fl := Flow{Bond: h, Flow: 0.75}
	var buf bytes.Buffer
	if err := fl.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	resMap := map[types.ResId]*residue.Residue{
		don.ID(): don,
		acc.ID(): acc,
	}
	var back Flow
	if err := back.Read(&buf, resMap); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !back.Bond.Equal(&h) {
		t.Errorf("bond changed across codec: %s vs %s", &back.Bond, &h)
	}
	if back.Bond.DonorRes != don || back.Bond.AcceptorRes != acc {
		t.Error("residues not reattached through the map")
	}
	if math.Abs(back.Flow-0.75) > 1e-6 {
		t.Errorf("flow changed across codec: %.4f", back.Flow)
	}
	if math.Abs(back.Bond.Value()-h.Value()) > 1e-6 {
		t.Errorf("value changed across codec: %.4f vs %.4f", back.Bond.Value(), h.Value())
	}

	// unknown residue id fails with a resolvable error
	var missing Flow
	buf.Reset()
	if err := fl.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := missing.Read(&buf, map[types.ResId]*residue.Residue{})
	if _, ok := err.(NoSuchElementError); !ok {
		t.Fatalf("got %v, want NoSuchElementError", err)
	}
}

func TestReassignResiduePointers(t *testing.T) {
	don, acc := donorAcceptorPair(2.9, 0.08, 0.08)
	h := New(types.AtomN1, types.AtomH1, types.AtomN3, types.AtomLP3)
	h.EvalStatistically(don, acc)

	don2 := don.Clone()
	acc2 := acc.Clone()
	resMap := map[types.ResId]*residue.Residue{
		don2.ID(): don2,
		acc2.ID(): acc2,
	}
	if err := h.ReassignResiduePointers(resMap); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if h.DonorRes != don2 || h.AcceptorRes != acc2 {
		t.Error("bond still points at the old residues")
	}

	if err := h.ReassignResiduePointers(map[types.ResId]*residue.Residue{}); err == nil {
		t.Error("reassign against an empty map should fail")
	}
}

// wcFlows builds the flow list of an ideal G=C Watson-Crick pair.
func wcFlows(g, c *residue.Residue) []Flow {
	mk := func(donor, hydrogen, acceptor, lonepair *types.AtomType, donRes, accRes *residue.Residue) Flow {
		h := New(donor, hydrogen, acceptor, lonepair)
		h.DonorRes = donRes
		h.AcceptorRes = accRes
		return Flow{Bond: h, Flow: 0.9}
	}
	return []Flow{
		mk(types.AtomN1, types.AtomH1, types.AtomN3, types.AtomLP3, g, c),
		mk(types.AtomN2, types.Atom2H2, types.AtomO2, types.Atom2LP2, g, c),
		mk(types.AtomN4, types.Atom1H4, types.AtomO6, types.Atom2LP6, c, g),
	}
}

func TestPatternEvaluateWatsonCrickGC(t *testing.T) {
	g := residue.New(types.ResidueG, types.NewResId('A', 1))
	c := residue.New(types.ResidueC, types.NewResId('A', 2))
	flows := wcFlows(g, c)

	var xix *PairingPattern
	for i := range Patterns {
		if Patterns[i].Name == types.PairXIX {
			xix = &Patterns[i]
			break
		}
	}
	if xix == nil {
		t.Fatal("no XIX entry in the catalog")
	}

	if got := xix.Evaluate(g, c, types.PropAntiparallel, flows); got != types.PairXIX {
		t.Errorf("G -> C evaluation: got %v", got)
	}
	// the catalog matches regardless of relation direction
	if got := xix.Evaluate(c, g, types.PropAntiparallel, flows); got != types.PairXIX {
		t.Errorf("C -> G evaluation: got %v", got)
	}
	if got := xix.Evaluate(g, c, types.PropParallel, flows); got != nil {
		t.Errorf("parallel orientation matched %v", got)
	}
	if got := xix.Evaluate(g, c, types.PropAntiparallel, flows[:2]); got != nil {
		t.Errorf("incomplete bond set matched %v", got)
	}
}
