// Package relation classifies the spatial relationship between two
// residues: backbone adjacency, base stacking, base pairing through
// hydrogen-bond flow matching, and backbone hydrogen bonds. A Relation
// is directed from a reference residue toward the other; annotating it
// assigns property labels, Leontis-Westhof style face tags and a
// pair-type from the pattern catalog.
package relation

import (
	"log"
	"math"
	"os"
	"sort"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/hbond"
	"github.com/qczhang/mccore/maxflow"
	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

// Warn receives the recoverable complaints of the annotation passes:
// sub-analyses skipped because the residues are missing atoms.
var Warn = log.New(os.Stderr, "relation: ", 0)

// Pairing annotation cutoffs: the minimum total flow for a pairing
// label, the flow thresholds separating one, two and three retained
// hydrogen bonds, and the maximum distance between a proton or lone
// pair and its heavy neighbor when enumerating candidates.
const (
	PairingCutoff    = 0.8
	TwoBondsCutoff   = 1.5
	ThreeBondsCutoff = 2.1
	HBondDistMax     = 1.7
)

// Geometry cutoffs: O3'-P squared distance for backbone adjacency,
// squared ring-center distance, plane tilt and overlap angles for
// stacking.
const (
	adjacencyDistSq = 4.00  // 2.0 A
	stackDistSq     = 20.25 // 4.5 A
	stackTilt       = 0.61  // 35 deg
	stackOverlap    = 0.61  // 35 deg
)

// Annotation mask bits selecting the sub-analyses.
const (
	AdjacentMask uint8 = 1 << iota
	StackingMask
	PairingMask
	BackboneMask

	AllMask = AdjacentMask | StackingMask | PairingMask | BackboneMask
)

// FacePair records the faces brought into contact by one hydrogen bond
// or by the flow-weighted pairing contact.
type FacePair struct {
	Ref, Res *types.PropertyType
}

// Relation is the annotated directed relationship ref -> res.
type Relation struct {
	ref, res *residue.Residue

	tfo    geom.Transfo // T_ref^-1 * T_res
	po4Tfo geom.Transfo // frame of the linking phosphate, adjacency only

	refFace, resFace *types.PropertyType
	labels           map[*types.PropertyType]bool
	mask             uint8

	hbonds      []hbond.Flow
	sumFlow     float64
	pairedFaces []FacePair
}

// New returns an unannotated relation between the two residues.
func New(ref, res *residue.Residue) *Relation {
	r := &Relation{}
	r.Reset(ref, res)
	return r
}

// Reset rebinds the relation to a residue pair and clears every
// annotation.
func (r *Relation) Reset(ref, res *residue.Residue) {
	r.ref = ref
	r.res = res
	r.tfo = ref.Referential().Invert().Mul(res.Referential())
	r.po4Tfo = geom.Identity()
	r.refFace = types.FaceNull
	r.resFace = types.FaceNull
	r.labels = make(map[*types.PropertyType]bool)
	r.mask = 0
	r.hbonds = nil
	r.sumFlow = 0
	r.pairedFaces = nil
}

func (r *Relation) Ref() *residue.Residue          { return r.ref }
func (r *Relation) Res() *residue.Residue          { return r.res }
func (r *Relation) Transfo() geom.Transfo          { return r.tfo }
func (r *Relation) Po4Transfo() geom.Transfo       { return r.po4Tfo }
func (r *Relation) RefFace() *types.PropertyType   { return r.refFace }
func (r *Relation) ResFace() *types.PropertyType   { return r.resFace }
func (r *Relation) HBonds() []hbond.Flow           { return r.hbonds }
func (r *Relation) SumFlow() float64               { return r.sumFlow }
func (r *Relation) PairedFaces() []FacePair        { return r.pairedFaces }

func (r *Relation) IsAdjacent() bool { return r.mask&AdjacentMask != 0 }
func (r *Relation) IsStacking() bool { return r.mask&StackingMask != 0 }
func (r *Relation) IsPairing() bool  { return r.mask&PairingMask != 0 }

// Empty reports whether no label has been assigned.
func (r *Relation) Empty() bool { return len(r.labels) == 0 }

// Has reports whether the exact label was assigned.
func (r *Relation) Has(t *types.PropertyType) bool { return r.labels[t] }

// labelParent maps a directional or orientational label to its family.
var labelParent = map[*types.PropertyType]*types.PropertyType{
	types.PropAdjacent5p: types.PropAdjacent,
	types.PropAdjacent3p: types.PropAdjacent,
	types.PropUpward:     types.PropStack,
	types.PropDownward:   types.PropStack,
	types.PropInward:     types.PropStack,
	types.PropOutward:    types.PropStack,
	types.PropOneHbond:   types.PropPairing,
}

// Is reports whether a label or one of its specializations was
// assigned: Is(adjacent) holds when the relation has adjacent_5p.
func (r *Relation) Is(t *types.PropertyType) bool {
	if r.labels[t] {
		return true
	}
	for l := range r.labels {
		if labelParent[l] == t {
			return true
		}
	}
	return false
}

// Labels returns the assigned labels in catalog string order.
func (r *Relation) Labels() []*types.PropertyType {
	out := make([]*types.PropertyType, 0, len(r.labels))
	for l := range r.labels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Annotate runs the sub-analyses selected by the mask and reports
// whether at least one label was assigned.
func (r *Relation) Annotate(mask uint8) bool {
	if mask&AdjacentMask != 0 {
		r.areAdjacent()
	}
	if mask&StackingMask != 0 {
		r.areStacked()
	}
	if mask&PairingMask != 0 {
		r.arePaired()
	}
	if mask&BackboneMask != 0 {
		r.areHBonded()
	}
	return !r.Empty()
}

// Clone returns a deep copy sharing the residue handles.
func (r *Relation) Clone() *Relation {
	c := *r
	c.labels = make(map[*types.PropertyType]bool, len(r.labels))
	for l := range r.labels {
		c.labels[l] = true
	}
	c.hbonds = append([]hbond.Flow(nil), r.hbonds...)
	c.pairedFaces = append([]FacePair(nil), r.pairedFaces...)
	return &c
}

// Invert reverses the relation in place: residues and faces swap, the
// transform inverts, the phosphate transform is rebased on the new
// reference, direction-bearing labels flip, and every face pair swaps.
// Returns the receiver.
func (r *Relation) Invert() *Relation {
	r.ref, r.res = r.res, r.ref
	r.refFace, r.resFace = r.resFace, r.refFace
	r.tfo = r.tfo.Invert()
	if r.IsAdjacent() {
		r.po4Tfo = r.tfo.Mul(r.po4Tfo)
	}

	labels := make(map[*types.PropertyType]bool, len(r.labels))
	for l := range r.labels {
		labels[l.Invert5p3p()] = true
	}
	r.labels = labels

	for i := range r.pairedFaces {
		r.pairedFaces[i].Ref, r.pairedFaces[i].Res = r.pairedFaces[i].Res, r.pairedFaces[i].Ref
	}
	return r
}

// ReassignResiduePointers redirects the relation and its hydrogen
// bonds through the id-keyed residue map.
func (r *Relation) ReassignResiduePointers(resMap map[types.ResId]*residue.Residue) error {
	ref, ok := resMap[r.ref.ID()]
	if !ok {
		return hbond.NoSuchElementError{ID: r.ref.ID()}
	}
	res, ok := resMap[r.res.ID()]
	if !ok {
		return hbond.NoSuchElementError{ID: r.res.ID()}
	}
	r.ref = ref
	r.res = res
	for i := range r.hbonds {
		if err := r.hbonds[i].Bond.ReassignResiduePointers(resMap); err != nil {
			return err
		}
	}
	return nil
}

// areAdjacent tests the backbone link in both directions: O3'(ref) to
// P(res) for nucleic acids, C(ref) to N(res) for amino acids, each
// within 2 A. When two nucleotides are adjacent the frame of the
// linking phosphate group is also recorded, expressed relative to the
// reference residue.
func (r *Relation) areAdjacent() {
	var adj *types.PropertyType

	within := func(a, b *residue.Atom) bool {
		return a != nil && b != nil && a.SquareDistance(*b) <= adjacencyDistSq
	}

	switch {
	case within(r.ref.Get(types.AtomO3p), r.res.Get(types.AtomP)):
		adj = types.PropAdjacent5p
	case within(r.res.Get(types.AtomO3p), r.ref.Get(types.AtomP)):
		adj = types.PropAdjacent3p
	case within(r.ref.Get(types.AtomAminoC), r.res.Get(types.AtomAminoN)):
		adj = types.PropAdjacent5p
	case within(r.res.Get(types.AtomAminoC), r.ref.Get(types.AtomAminoN)):
		adj = types.PropAdjacent3p
	}

	if adj == nil {
		return
	}
	r.labels[adj] = true
	r.mask |= AdjacentMask

	r.po4Tfo = geom.Identity()
	if !r.ref.Type().IsNucleicAcid() || !r.res.Type().IsNucleicAcid() {
		return
	}

	// The phosphate group is rebuilt as a standalone residue from the
	// five linker atoms so its referential is well-defined.
	down, up := r.ref, r.res
	if adj == types.PropAdjacent3p {
		down, up = r.res, r.ref
	}
	po4 := residue.New(types.ResiduePhosphate, types.NewResId('p', 0))
	ok := true
	if a, err := down.SafeGet(types.AtomO3p); err == nil {
		po4.Insert(*a)
	} else {
		ok = false
	}
	for _, t := range []*types.AtomType{types.AtomP, types.AtomO1P, types.AtomO2P, types.AtomO5p} {
		if a, err := up.SafeGet(t); err == nil {
			po4.Insert(*a)
		} else {
			ok = false
		}
	}
	if !ok {
		Warn.Printf("unable to compute phosphate transfo in adjacent relation %s -> %s",
			r.ref.ID(), r.res.ID())
		return
	}
	po4.Finalize()
	r.po4Tfo = r.ref.Referential().Invert().Mul(po4.Referential())
}

// pyrimidineRingCenter averages the six-membered ring atoms. Purines
// share the atom names, so the same ring is read on both families.
func pyrimidineRingCenter(r *residue.Residue) (geom.Point, error) {
	var c geom.Point
	for _, t := range []*types.AtomType{
		types.AtomN1, types.AtomC2, types.AtomN3, types.AtomC4, types.AtomC5, types.AtomC6,
	} {
		a, err := r.SafeGet(t)
		if err != nil {
			return c, err
		}
		c = c.Add(a.Pos)
	}
	return c.Scale(1.0 / 6.0), nil
}

// imidazoleRingCenter averages the purine five-membered ring atoms.
func imidazoleRingCenter(r *residue.Residue) (geom.Point, error) {
	var c geom.Point
	for _, t := range []*types.AtomType{
		types.AtomC4, types.AtomC5, types.AtomN7, types.AtomC8, types.AtomN9,
	} {
		a, err := r.SafeGet(t)
		if err != nil {
			return c, err
		}
		c = c.Add(a.Pos)
	}
	return c.Scale(1.0 / 5.0), nil
}

// ringNormal builds a plane normal as the cross product of two
// orthogonal in-plane combinations of the ring atoms: each atom's
// offset from the center is weighted by the cosine (r1) and sine (r2)
// of its position around an ideal ring.
func ringNormal(r *residue.Residue, center geom.Point, atoms []*types.AtomType, cosw, sinw []float64) (geom.Point, error) {
	var r1, r2 geom.Point
	for i, t := range atoms {
		a, err := r.SafeGet(t)
		if err != nil {
			return geom.Point{}, err
		}
		d := a.Pos.Sub(center)
		r1 = r1.Add(d.Scale(cosw[i]))
		r2 = r2.Add(d.Scale(sinw[i]))
	}
	return geom.Normalize(geom.Cross(r1, r2)), nil
}

var (
	pyrRingAtoms = []*types.AtomType{
		types.AtomN1, types.AtomC2, types.AtomN3, types.AtomC4, types.AtomC5, types.AtomC6,
	}
	pyrRingCos = []float64{1, 0.5, -0.5, -1, -0.5, 0.5}
	pyrRingSin = []float64{0, 0.8660254, 0.8660254, 0, -0.8660254, -0.8660254}

	imidRingAtoms = []*types.AtomType{
		types.AtomC4, types.AtomC5, types.AtomN7, types.AtomC8, types.AtomN9,
	}
	imidRingCos = []float64{1, 0.30901699, -0.80901699, -0.80901699, 0.30901699}
	imidRingSin = []float64{0, 0.95105652, 0.58778525, -0.58778525, -0.95105652}
)

// pyrimidineRingNormal returns the weighted six-ring plane normal,
// negated for purines. Edge-to-edge pairs have their raw six-ring
// normals on the same side, so the flip makes a canonical pair read
// antiparallel, following the strand sense.
func pyrimidineRingNormal(r *residue.Residue, center geom.Point) (geom.Point, error) {
	n, err := ringNormal(r, center, pyrRingAtoms, pyrRingCos, pyrRingSin)
	if err != nil {
		return n, err
	}
	if r.Type().IsPurine() {
		return n.Scale(-1), nil
	}
	return n, nil
}

func imidazoleRingNormal(r *residue.Residue, center geom.Point) (geom.Point, error) {
	return ringNormal(r, center, imidRingAtoms, imidRingCos, imidRingSin)
}

// ringStacking classifies one ring pair. The two bits of the
// annotation encode the overlap side (up or down) and the tilt sense
// (straight or reverse); nil means the rings do not stack.
func (r *Relation) ringStacking(centerA, normalA, centerB, normalB geom.Point) *types.PropertyType {
	annotation := 0

	if geom.SquareDistance(centerA, centerB) > stackDistSq {
		return nil
	}

	theta := math.Acos(clampCos(geom.Dot(normalA, normalB)))
	if theta > stackTilt {
		if math.Pi-theta >= stackTilt {
			return nil
		}
		annotation = 2
	}

	// Overlap is not symmetric: stack if either side is satisfied.
	vAB := geom.Normalize(centerB.Sub(centerA))
	theta = math.Acos(clampCos(geom.Dot(normalA, vAB)))
	if theta > stackOverlap {
		if math.Pi-theta < stackOverlap {
			annotation |= 1
		} else {
			theta2 := math.Acos(clampCos(geom.Dot(normalB, vAB)))
			if theta2 >= stackOverlap && math.Pi-theta2 >= stackOverlap {
				return nil
			}
			if theta > math.Pi/2 {
				annotation |= 1
			}
		}
	}

	r.mask |= StackingMask

	switch annotation {
	case 0:
		return types.PropUpward
	case 1:
		return types.PropDownward
	case 2:
		return types.PropInward
	case 3:
		return types.PropOutward
	}
	panic("relation: invalid stacking annotation value")
}

func clampCos(c float64) float64 {
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}

// areStacked tests every ring pair of the two bases, six-membered
// rings first, then the purine imidazole combinations.
func (r *Relation) areStacked() {
	if !r.ref.Type().IsNucleicAcid() || !r.res.Type().IsNucleicAcid() {
		return
	}
	if !(r.ref.Type().IsPurine() || r.ref.Type().IsPyrimidine()) ||
		!(r.res.Type().IsPurine() || r.res.Type().IsPyrimidine()) {
		return
	}

	pyrCA, err := pyrimidineRingCenter(r.ref)
	if err != nil {
		Warn.Printf("stacking annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
		return
	}
	pyrNA, err := pyrimidineRingNormal(r.ref, pyrCA)
	if err != nil {
		Warn.Printf("stacking annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
		return
	}
	pyrCB, err := pyrimidineRingCenter(r.res)
	if err != nil {
		Warn.Printf("stacking annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
		return
	}
	pyrNB, err := pyrimidineRingNormal(r.res, pyrCB)
	if err != nil {
		Warn.Printf("stacking annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
		return
	}

	var imidCA, imidNA, imidCB, imidNB geom.Point
	if r.ref.Type().IsPurine() {
		if imidCA, err = imidazoleRingCenter(r.ref); err == nil {
			imidNA, err = imidazoleRingNormal(r.ref, imidCA)
		}
		if err != nil {
			Warn.Printf("stacking annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
			return
		}
	}
	if r.res.Type().IsPurine() {
		if imidCB, err = imidazoleRingCenter(r.res); err == nil {
			imidNB, err = imidazoleRingNormal(r.res, imidCB)
		}
		if err != nil {
			Warn.Printf("stacking annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
			return
		}
	}

	stacking := r.ringStacking(pyrCA, pyrNA, pyrCB, pyrNB)
	if stacking == nil && r.ref.Type().IsPurine() {
		stacking = r.ringStacking(imidCA, imidNA, pyrCB, pyrNB)
	}
	if stacking == nil && r.res.Type().IsPurine() {
		stacking = r.ringStacking(pyrCA, pyrNA, imidCB, imidNB)
	}
	if stacking == nil && r.ref.Type().IsPurine() && r.res.Type().IsPurine() {
		stacking = r.ringStacking(imidCA, imidNA, imidCB, imidNB)
	}

	if stacking != nil {
		r.labels[stacking] = true
	}
}

// arePaired enumerates donor-hydrogen / acceptor-lone-pair candidates
// on the base sidechains, scores them with the Gaussian mixture,
// resolves the competition for shared protons and lone pairs with a
// maximum flow, and assigns the pairing labels when the total flow
// reaches the cutoff.
func (r *Relation) arePaired() {
	if !r.ref.Type().IsNucleicAcid() || !r.res.Type().IsNucleicAcid() {
		return
	}

	// sidechain, minus the two out-of-plane methyl protons of T
	da := types.And(types.SideChain,
		types.Not(types.Or(types.Atom(types.Atom2H5M), types.Atom(types.Atom3H5M))))

	// protons and lone pairs paired with the heavy atom they sit on
	type anchored struct {
		light, heavy *residue.Atom
	}
	gather := func(res *residue.Residue) []anchored {
		var out []anchored
		for _, heavy := range res.Atoms(da) {
			if !heavy.Type.IsCarbon() && !heavy.Type.IsNitrogen() && !heavy.Type.IsOxygen() {
				continue
			}
			for _, light := range res.Atoms(da) {
				if (light.Type.IsHydrogen() || light.Type.IsLonePair()) &&
					heavy.Distance(*light) < HBondDistMax {
					out = append(out, anchored{light: light, heavy: heavy})
				}
			}
		}
		return out
	}
	refAt := gather(r.ref)
	resAt := gather(r.res)

	const source, sink = 0, 1
	graph := maxflow.New()
	graph.Insert(source, 1)
	graph.Insert(sink, 1)
	node := 2
	atomNode := make(map[*residue.Atom]int)
	type flowEdge struct {
		from, to int
		bond     hbond.HBond
	}
	var edges []flowEdge

	connect := func(hydrogen, lonepair *residue.Atom, h hbond.HBond) {
		hn, ok := atomNode[hydrogen]
		if !ok {
			hn = node
			node++
			atomNode[hydrogen] = hn
			graph.Insert(hn, 1)
			graph.Connect(source, hn, 1)
		}
		ln, ok := atomNode[lonepair]
		if !ok {
			ln = node
			node++
			atomNode[lonepair] = ln
			graph.Insert(ln, 1)
			graph.Connect(ln, sink, 1)
		}
		if graph.Connect(hn, ln, h.Value()) {
			edges = append(edges, flowEdge{from: hn, to: ln, bond: h})
		}
	}

	for _, ra := range refAt {
		for _, rb := range resAt {
			switch {
			case ra.light.Type.IsHydrogen() && rb.light.Type.IsLonePair():
				h := hbond.New(ra.heavy.Type, ra.light.Type, rb.heavy.Type, rb.light.Type)
				if h.EvalStatistically(r.ref, r.res) > 0.01 {
					connect(ra.light, rb.light, h)
				}
			case rb.light.Type.IsHydrogen() && ra.light.Type.IsLonePair():
				h := hbond.New(rb.heavy.Type, rb.light.Type, ra.heavy.Type, ra.light.Type)
				if h.EvalStatistically(r.res, r.ref) > 0.01 {
					connect(rb.light, ra.light, h)
				}
			}
		}
	}

	if graph.Size() < 3 {
		return
	}

	graph.PreFlowPush(source, sink)

	for _, e := range edges {
		flow := graph.Flow(e.from, e.to)
		r.sumFlow += flow
		r.hbonds = append(r.hbonds, hbond.Flow{Bond: e.bond, Flow: flow})
	}

	if r.sumFlow >= PairingCutoff {
		r.addPairingLabels()
	}
}

// addPairingLabels assigns the pairing label set from the computed
// hydrogen-bond flows: base-plane orientation, face tags at the
// flow-weighted contact points, the catalog pair-type, and cis or
// trans from the torsion across the two glycosidic directions.
func (r *Relation) addPairingLabels() {
	r.mask |= PairingMask
	r.labels[types.PropPairing] = true
	if r.sumFlow < TwoBondsCutoff {
		r.labels[types.PropOneHbond] = true
	}

	refPyrC, err := pyrimidineRingCenter(r.ref)
	if err != nil {
		Warn.Printf("pairing annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
		return
	}
	refPyrN, err := pyrimidineRingNormal(r.ref, refPyrC)
	if err != nil {
		Warn.Printf("pairing annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
		return
	}
	resPyrC, err := pyrimidineRingCenter(r.res)
	if err != nil {
		Warn.Printf("pairing annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
		return
	}
	resPyrN, err := pyrimidineRingNormal(r.res, resPyrC)
	if err != nil {
		Warn.Printf("pairing annotation %s -> %s: %v", r.ref.ID(), r.res.ID(), err)
		return
	}

	bpo := types.PropAntiparallel
	if geom.Dot(refPyrN, resPyrN) > 0 {
		bpo = types.PropParallel
	}
	r.labels[bpo] = true

	// flow-weighted contact points, one on each residue
	var pa, pb geom.Point
	for i := range r.hbonds {
		fl := &r.hbonds[i]
		hyd := fl.Bond.DonorRes.Get(fl.Bond.Hydrogen)
		lp := fl.Bond.AcceptorRes.Get(fl.Bond.LonePair)
		if hyd == nil || lp == nil {
			continue
		}
		if fl.Bond.DonorRes == r.ref {
			pa = pa.Add(hyd.Pos.Scale(fl.Flow))
			pb = pb.Add(lp.Pos.Scale(fl.Flow))
		} else {
			pa = pa.Add(lp.Pos.Scale(fl.Flow))
			pb = pb.Add(hyd.Pos.Scale(fl.Flow))
		}
	}
	pa = pa.Scale(1 / r.sumFlow)
	pb = pb.Scale(1 / r.sumFlow)

	r.refFace = GetFace(r.ref, pa)
	r.resFace = GetFace(r.res, pb)
	if types.FaceNull != r.refFace && types.FaceNull != r.resFace {
		r.pairedFaces = append(r.pairedFaces, FacePair{Ref: r.refFace, Res: r.resFace})

		var sizeHint int
		switch {
		case r.sumFlow < TwoBondsCutoff:
			sizeHint = 1
		case r.sumFlow < ThreeBondsCutoff:
			sizeHint = 2
		default:
			sizeHint = 3
		}
		if sizeHint > len(r.hbonds) {
			sizeHint = len(r.hbonds)
		}
		strongest := append([]hbond.Flow(nil), r.hbonds...)
		sort.Slice(strongest, func(i, j int) bool { return strongest[i].Flow > strongest[j].Flow })
		strongest = strongest[:sizeHint]

		if pp := translatePairing(r.ref, r.res, bpo, strongest, sizeHint); pp != nil {
			r.labels[pp] = true
		}
	}

	// cis/trans from the torsion around the axis joining the ring
	// centers, with each C1' direction rebased on its ring center
	refC1p := r.ref.Get(types.AtomC1p)
	resC1p := r.res.Get(types.AtomC1p)
	refPSY := r.ref.Get(types.AtomPSY)
	resPSY := r.res.Get(types.AtomPSY)
	if refC1p == nil || resC1p == nil || refPSY == nil || resPSY == nil {
		Warn.Printf("pairing annotation %s -> %s: missing C1' or pseudo-atoms for cis/trans",
			r.ref.ID(), r.res.ID())
		return
	}
	pc := refC1p.Pos.Sub(refPSY.Pos).Add(refPyrC)
	pd := resC1p.Pos.Sub(resPSY.Pos).Add(resPyrC)
	if math.Abs(geom.Torsion(pc, refPyrC, resPyrC, pd)) < math.Pi/2 {
		r.labels[types.PropCis] = true
	} else {
		r.labels[types.PropTrans] = true
	}
}

// translatePairing picks the catalog pattern with the most matched
// bonds among those no larger than the size hint.
func translatePairing(ref, res *residue.Residue, bpo *types.PropertyType, flows []hbond.Flow, sizeHint int) *types.PropertyType {
	var best *types.PropertyType
	bestSize := 0
	for i := range hbond.Patterns {
		p := &hbond.Patterns[i]
		if p.Size() > sizeHint {
			continue
		}
		if t := p.Evaluate(ref, res, bpo, flows); t != nil && p.Size() > bestSize {
			bestSize = p.Size()
			best = t
		}
	}
	return best
}

// areHBonded finds backbone hydrogen bonds: a base nitrogen of one
// residue against a backbone oxygen (O2', O1P, O2P) of the other,
// separated by more than the proton reach but less than 3.2 A. The
// faces in contact are recorded, with the reserved Ribose and
// Phosphate tags for the oxygen side. Matches set bhbond and the
// backbone mask bit only, never pairing, so a pairing label always
// rests on a flow of at least PairingCutoff.
func (r *Relation) areHBonded() {
	if !r.ref.Type().IsNucleicAcid() || !r.res.Type().IsNucleicAcid() {
		return
	}

	as := types.Or(types.SideChain,
		types.Or(types.Atom(types.AtomO2p),
			types.Or(types.Atom(types.AtomO1P), types.Atom(types.AtomO2P))))

	face := func(res *residue.Residue, a *residue.Atom) *types.PropertyType {
		switch {
		case a.Type.IsNitrogen():
			return GetFace(res, a.Pos)
		case a.Type == types.AtomO2p:
			return types.FaceRibose
		default:
			return types.FacePhosphate
		}
	}

	for _, i := range r.ref.Atoms(as) {
		if !i.Type.IsNitrogen() && !i.Type.IsOxygen() {
			continue
		}
		for _, j := range r.res.Atoms(as) {
			if !j.Type.IsNitrogen() && !j.Type.IsOxygen() {
				continue
			}
			if !(i.Type.IsNitrogen() && j.Type.IsBackbone()) &&
				!(j.Type.IsNitrogen() && i.Type.IsBackbone()) {
				continue
			}
			d := i.Distance(*j)
			if d <= HBondDistMax || d >= 3.2 {
				continue
			}
			r.labels[types.PropBHbond] = true
			r.mask |= BackboneMask
			r.pairedFaces = append(r.pairedFaces, FacePair{
				Ref: face(r.ref, i),
				Res: face(r.res, j),
			})
		}
	}
}
