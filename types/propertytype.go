package types

import "sync"

// PropertyType is an interned label describing one facet of a pairwise
// relation: adjacency direction, stacking orientation, pairing character,
// a base face, or a pair-type from the catalog.
type PropertyType struct {
	name string
}

func (t *PropertyType) String() string { return t.name }

var (
	propertyCatalog   = make(map[string]*PropertyType)
	propertyCatalogMu sync.Mutex
)

func newPropertyType(name string) *PropertyType {
	t := &PropertyType{name: name}
	propertyCatalog[name] = t
	return t
}

// ParsePropertyType returns the interned property for the given key,
// interning unknown keys on first sight.
func ParsePropertyType(name string) *PropertyType {
	propertyCatalogMu.Lock()
	defer propertyCatalogMu.Unlock()
	if t, ok := propertyCatalog[name]; ok {
		return t
	}
	return newPropertyType(name)
}

// Relation labels.
var (
	PropAdjacent   = newPropertyType("adjacent")
	PropAdjacent5p = newPropertyType("adjacent_5p")
	PropAdjacent3p = newPropertyType("adjacent_3p")
	PropStack      = newPropertyType("stack")
	PropUpward     = newPropertyType("upward")
	PropDownward   = newPropertyType("downward")
	PropInward     = newPropertyType("inward")
	PropOutward    = newPropertyType("outward")
	PropPairing    = newPropertyType("pairing")
	PropOneHbond   = newPropertyType("one_hbond")
	PropBHbond     = newPropertyType("bhbond")
	PropCis        = newPropertyType("cis")
	PropTrans      = newPropertyType("trans")
	PropParallel   = newPropertyType("parallel")
	PropAntiparallel = newPropertyType("antiparallel")
)

// Base faces. Ww/Wh/Ws border the Watson-Crick edge, Hh/Hw the Hoogsteen
// edge, Ss/Sw the sugar edge; Bh and Bs sit between edges, C8 caps the
// purine imidazole. FacePhosphate and FaceRibose name backbone oxygen
// contacts that are not on a base edge.
var (
	FaceWw        = newPropertyType("Ww")
	FaceWh        = newPropertyType("Wh")
	FaceWs        = newPropertyType("Ws")
	FaceHh        = newPropertyType("Hh")
	FaceHw        = newPropertyType("Hw")
	FaceSs        = newPropertyType("Ss")
	FaceSw        = newPropertyType("Sw")
	FaceBh        = newPropertyType("Bh")
	FaceBs        = newPropertyType("Bs")
	FaceC8        = newPropertyType("C8")
	FacePhosphate = newPropertyType("Phosphate")
	FaceRibose    = newPropertyType("Ribose")
	FaceNull      = newPropertyType("Null")
)

// Furanose pucker modes, one per 36 degree bin of the pseudorotation
// phase, and the two glycosyl torsion classes.
var (
	PuckerC3pEndo = newPropertyType("C3'_endo")
	PuckerC4pExo  = newPropertyType("C4'_exo")
	PuckerO4pEndo = newPropertyType("O4'_endo")
	PuckerC1pExo  = newPropertyType("C1'_exo")
	PuckerC2pEndo = newPropertyType("C2'_endo")
	PuckerC3pExo  = newPropertyType("C3'_exo")
	PuckerC4pEndo = newPropertyType("C4'_endo")
	PuckerO4pExo  = newPropertyType("O4'_exo")
	PuckerC1pEndo = newPropertyType("C1'_endo")
	PuckerC2pExo  = newPropertyType("C2'_exo")

	GlycosylSyn  = newPropertyType("syn")
	GlycosylAnti = newPropertyType("anti")
)

// Saenger pair types assigned by the pairing-pattern catalog.
var (
	PairXIX    = newPropertyType("XIX")
	PairXX     = newPropertyType("XX")
	PairXXI    = newPropertyType("XXI")
	PairXXIII  = newPropertyType("XXIII")
	PairXXVIII = newPropertyType("XXVIII")
	PairXI     = newPropertyType("XI")
	PairXII    = newPropertyType("XII")
	PairVIII   = newPropertyType("VIII")
)

// IsFace reports whether the property names a base face or one of the
// backbone contact faces.
func (t *PropertyType) IsFace() bool {
	switch t {
	case FaceWw, FaceWh, FaceWs, FaceHh, FaceHw, FaceSs, FaceSw,
		FaceBh, FaceBs, FaceC8, FacePhosphate, FaceRibose, FaceNull:
		return true
	}
	return false
}

// Invert5p3p maps direction-bearing labels to their reverse-edge
// counterparts; other labels map to themselves.
func (t *PropertyType) Invert5p3p() *PropertyType {
	switch t {
	case PropAdjacent5p:
		return PropAdjacent3p
	case PropAdjacent3p:
		return PropAdjacent5p
	case PropUpward:
		return PropDownward
	case PropDownward:
		return PropUpward
	}
	return t
}
