// Package types defines the interned symbolic tags used throughout the
// library: atom types, residue types and property types, along with the
// residue identifier and the composable atom-set predicates.
//
// Tags are interned process-wide: parsing the same key twice returns the
// same *AtomType (or *ResidueType, *PropertyType) value, so tags compare
// by pointer identity. The catalogs are populated at init time and extended
// lazily under a lock for keys never seen before.
package types

import (
	"sync"
)

// Element and role flags carried by an atom type. An atom type may carry
// several (O2' is both oxygen and backbone, LP1 is both lone pair and
// side chain).
const (
	atomNucleicAcid = 1 << iota
	atomAminoAcid
	atomBackbone
	atomPhosphate
	atomSideChain
	atomCarbon
	atomNitrogen
	atomOxygen
	atomPhosphorus
	atomSulfur
	atomHydrogen
	atomLonePair
	atomPseudo
	atomMagnesium
)

// AtomType is an interned atom tag. Two atom types are the same atom if
// and only if they are the same pointer.
type AtomType struct {
	name  string
	flags uint32
}

func (t *AtomType) String() string { return t.name }

func (t *AtomType) IsNucleicAcid() bool { return t.flags&atomNucleicAcid != 0 }
func (t *AtomType) IsAminoAcid() bool   { return t.flags&atomAminoAcid != 0 }
func (t *AtomType) IsBackbone() bool    { return t.flags&atomBackbone != 0 }
func (t *AtomType) IsPhosphate() bool   { return t.flags&atomPhosphate != 0 }
func (t *AtomType) IsSideChain() bool   { return t.flags&atomSideChain != 0 }
func (t *AtomType) IsCarbon() bool      { return t.flags&atomCarbon != 0 }
func (t *AtomType) IsNitrogen() bool    { return t.flags&atomNitrogen != 0 }
func (t *AtomType) IsOxygen() bool      { return t.flags&atomOxygen != 0 }
func (t *AtomType) IsPhosphorus() bool  { return t.flags&atomPhosphorus != 0 }
func (t *AtomType) IsSulfur() bool      { return t.flags&atomSulfur != 0 }
func (t *AtomType) IsHydrogen() bool    { return t.flags&atomHydrogen != 0 }
func (t *AtomType) IsLonePair() bool    { return t.flags&atomLonePair != 0 }
func (t *AtomType) IsPseudo() bool      { return t.flags&atomPseudo != 0 }
func (t *AtomType) IsMagnesium() bool   { return t.flags&atomMagnesium != 0 }

var (
	atomCatalog   = make(map[string]*AtomType)
	atomCatalogMu sync.Mutex
)

func newAtomType(name string, flags uint32) *AtomType {
	t := &AtomType{name: name, flags: flags}
	atomCatalog[name] = t
	return t
}

// ParseAtomType returns the interned atom type for the given PDB-style
// name. Unrecognized names are interned on first sight with their element
// inferred from the first letter of the name, so repeated parses still
// return the identical tag.
func ParseAtomType(name string) *AtomType {
	atomCatalogMu.Lock()
	defer atomCatalogMu.Unlock()

	if t, ok := atomCatalog[name]; ok {
		return t
	}

	var flags uint32
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= '0' && c <= '9' {
			continue
		}
		switch c {
		case 'C':
			flags = atomCarbon
		case 'N':
			flags = atomNitrogen
		case 'O':
			flags = atomOxygen
		case 'P':
			flags = atomPhosphorus
		case 'S':
			flags = atomSulfur
		case 'H':
			flags = atomHydrogen
		case 'M':
			flags = atomMagnesium
		}
		break
	}
	return newAtomType(name, flags)
}

// Nucleic-acid backbone.
var (
	AtomP   = newAtomType("P", atomNucleicAcid|atomBackbone|atomPhosphate|atomPhosphorus)
	AtomO1P = newAtomType("O1P", atomNucleicAcid|atomBackbone|atomPhosphate|atomOxygen)
	AtomO2P = newAtomType("O2P", atomNucleicAcid|atomBackbone|atomPhosphate|atomOxygen)
	AtomO3p = newAtomType("O3'", atomNucleicAcid|atomBackbone|atomPhosphate|atomOxygen)
	AtomO5p = newAtomType("O5'", atomNucleicAcid|atomBackbone|atomPhosphate|atomOxygen)
	AtomC1p = newAtomType("C1'", atomNucleicAcid|atomBackbone|atomCarbon)
	AtomC2p = newAtomType("C2'", atomNucleicAcid|atomBackbone|atomCarbon)
	AtomC3p = newAtomType("C3'", atomNucleicAcid|atomBackbone|atomCarbon)
	AtomC4p = newAtomType("C4'", atomNucleicAcid|atomBackbone|atomCarbon)
	AtomC5p = newAtomType("C5'", atomNucleicAcid|atomBackbone|atomCarbon)
	AtomO4p = newAtomType("O4'", atomNucleicAcid|atomBackbone|atomOxygen)
	AtomO2p = newAtomType("O2'", atomNucleicAcid|atomBackbone|atomOxygen)
)

// Nucleobase heavy atoms.
var (
	AtomN1  = newAtomType("N1", atomNucleicAcid|atomSideChain|atomNitrogen)
	AtomN2  = newAtomType("N2", atomNucleicAcid|atomSideChain|atomNitrogen)
	AtomN3  = newAtomType("N3", atomNucleicAcid|atomSideChain|atomNitrogen)
	AtomN4  = newAtomType("N4", atomNucleicAcid|atomSideChain|atomNitrogen)
	AtomN6  = newAtomType("N6", atomNucleicAcid|atomSideChain|atomNitrogen)
	AtomN7  = newAtomType("N7", atomNucleicAcid|atomSideChain|atomNitrogen)
	AtomN9  = newAtomType("N9", atomNucleicAcid|atomSideChain|atomNitrogen)
	AtomC2  = newAtomType("C2", atomNucleicAcid|atomSideChain|atomCarbon)
	AtomC4  = newAtomType("C4", atomNucleicAcid|atomSideChain|atomCarbon)
	AtomC5  = newAtomType("C5", atomNucleicAcid|atomSideChain|atomCarbon)
	AtomC5M = newAtomType("C5M", atomNucleicAcid|atomSideChain|atomCarbon)
	AtomC6  = newAtomType("C6", atomNucleicAcid|atomSideChain|atomCarbon)
	AtomC8  = newAtomType("C8", atomNucleicAcid|atomSideChain|atomCarbon)
	AtomO2  = newAtomType("O2", atomNucleicAcid|atomSideChain|atomOxygen)
	AtomO4  = newAtomType("O4", atomNucleicAcid|atomSideChain|atomOxygen)
	AtomO6  = newAtomType("O6", atomNucleicAcid|atomSideChain|atomOxygen)
)

// Hydrogens.
var (
	AtomH1   = newAtomType("H1", atomNucleicAcid|atomSideChain|atomHydrogen)
	AtomH2   = newAtomType("H2", atomNucleicAcid|atomSideChain|atomHydrogen)
	AtomH3   = newAtomType("H3", atomNucleicAcid|atomSideChain|atomHydrogen)
	AtomH5   = newAtomType("H5", atomNucleicAcid|atomSideChain|atomHydrogen)
	AtomH6   = newAtomType("H6", atomNucleicAcid|atomSideChain|atomHydrogen)
	AtomH8   = newAtomType("H8", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom1H2  = newAtomType("1H2", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom2H2  = newAtomType("2H2", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom1H4  = newAtomType("1H4", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom2H4  = newAtomType("2H4", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom1H6  = newAtomType("1H6", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom2H6  = newAtomType("2H6", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom1H5M = newAtomType("1H5M", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom2H5M = newAtomType("2H5M", atomNucleicAcid|atomSideChain|atomHydrogen)
	Atom3H5M = newAtomType("3H5M", atomNucleicAcid|atomSideChain|atomHydrogen)
	AtomH1p  = newAtomType("H1'", atomNucleicAcid|atomBackbone|atomHydrogen)
	AtomH2p  = newAtomType("H2'", atomNucleicAcid|atomBackbone|atomHydrogen)
	Atom2H2p = newAtomType("2H2'", atomNucleicAcid|atomBackbone|atomHydrogen)
	AtomH3p  = newAtomType("H3'", atomNucleicAcid|atomBackbone|atomHydrogen)
	AtomH4p  = newAtomType("H4'", atomNucleicAcid|atomBackbone|atomHydrogen)
	Atom1H5p = newAtomType("1H5'", atomNucleicAcid|atomBackbone|atomHydrogen)
	Atom2H5p = newAtomType("2H5'", atomNucleicAcid|atomBackbone|atomHydrogen)
	AtomHO2p = newAtomType("HO2'", atomNucleicAcid|atomBackbone|atomHydrogen)
	AtomHO3p = newAtomType("HO3'", atomNucleicAcid|atomBackbone|atomHydrogen)
)

// Lone pairs.
var (
	AtomLP1  = newAtomType("LP1", atomNucleicAcid|atomSideChain|atomLonePair)
	AtomLP3  = newAtomType("LP3", atomNucleicAcid|atomSideChain|atomLonePair)
	AtomLP7  = newAtomType("LP7", atomNucleicAcid|atomSideChain|atomLonePair)
	Atom1LP2 = newAtomType("1LP2", atomNucleicAcid|atomSideChain|atomLonePair)
	Atom2LP2 = newAtomType("2LP2", atomNucleicAcid|atomSideChain|atomLonePair)
	Atom1LP4 = newAtomType("1LP4", atomNucleicAcid|atomSideChain|atomLonePair)
	Atom2LP4 = newAtomType("2LP4", atomNucleicAcid|atomSideChain|atomLonePair)
	Atom1LP6 = newAtomType("1LP6", atomNucleicAcid|atomSideChain|atomLonePair)
	Atom2LP6 = newAtomType("2LP6", atomNucleicAcid|atomSideChain|atomLonePair)
)

// Pseudo-atoms defining local referentials.
var (
	AtomPSY  = newAtomType("PSY", atomNucleicAcid|atomPseudo)
	AtomPSZ  = newAtomType("PSZ", atomNucleicAcid|atomPseudo)
	AtomPSAZ = newAtomType("PSAZ", atomAminoAcid|atomPseudo)
)

// Amino-acid atoms used by the adjacency analyzer.
var (
	AtomAminoN  = newAtomType("N", atomAminoAcid|atomBackbone|atomNitrogen)
	AtomAminoCA = newAtomType("CA", atomAminoAcid|atomBackbone|atomCarbon)
	AtomAminoC  = newAtomType("C", atomAminoAcid|atomBackbone|atomCarbon)
	AtomAminoO  = newAtomType("O", atomAminoAcid|atomBackbone|atomOxygen)
)
