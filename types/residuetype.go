package types

import "sync"

const (
	resNucleicAcid = 1 << iota
	resAminoAcid
	resRNA
	resDNA
	resPurine
	resPyrimidine
	resPhosphate
	resRibose
	resWater
	resInvalid
)

// ResidueType is an interned residue tag. Like atom types, residue types
// compare by pointer identity.
type ResidueType struct {
	name  string
	flags uint32
}

func (t *ResidueType) String() string { return t.name }

func (t *ResidueType) IsNucleicAcid() bool { return t.flags&resNucleicAcid != 0 }
func (t *ResidueType) IsAminoAcid() bool   { return t.flags&resAminoAcid != 0 }
func (t *ResidueType) IsRNA() bool         { return t.flags&resRNA != 0 }
func (t *ResidueType) IsDNA() bool         { return t.flags&resDNA != 0 }
func (t *ResidueType) IsPurine() bool      { return t.flags&resPurine != 0 }
func (t *ResidueType) IsPyrimidine() bool  { return t.flags&resPyrimidine != 0 }
func (t *ResidueType) IsPhosphate() bool   { return t.flags&resPhosphate != 0 }
func (t *ResidueType) IsRibose() bool      { return t.flags&resRibose != 0 }
func (t *ResidueType) IsWater() bool       { return t.flags&resWater != 0 }
func (t *ResidueType) IsInvalid() bool     { return t.flags&resInvalid != 0 }

func (t *ResidueType) IsA() bool { return t == ResidueA }
func (t *ResidueType) IsC() bool { return t == ResidueC }
func (t *ResidueType) IsG() bool { return t == ResidueG }
func (t *ResidueType) IsU() bool { return t == ResidueU }
func (t *ResidueType) IsT() bool { return t == ResidueT }

// Invalid returns a distinct tag carrying the same name but marked
// invalid. Validation uses it to demote a residue missing an obligatory
// atom without losing the original name.
func (t *ResidueType) Invalid() *ResidueType {
	residueCatalogMu.Lock()
	defer residueCatalogMu.Unlock()
	key := t.name + "?"
	if it, ok := residueCatalog[key]; ok {
		return it
	}
	it := &ResidueType{name: key, flags: t.flags | resInvalid}
	residueCatalog[key] = it
	return it
}

var (
	residueCatalog   = make(map[string]*ResidueType)
	residueCatalogMu sync.Mutex
)

func newResidueType(flags uint32, names ...string) *ResidueType {
	t := &ResidueType{name: names[0], flags: flags}
	for _, n := range names {
		residueCatalog[n] = t
	}
	return t
}

// ParseResidueType returns the interned residue type for a PDB residue
// name, or nil when the name is unknown. RNA and DNA spellings of the same
// base map to the same tag.
func ParseResidueType(name string) *ResidueType {
	residueCatalogMu.Lock()
	defer residueCatalogMu.Unlock()
	return residueCatalog[name]
}

var (
	ResidueA = newResidueType(resNucleicAcid|resRNA|resPurine, "A", "RA", "ADE")
	ResidueC = newResidueType(resNucleicAcid|resRNA|resPyrimidine, "C", "RC", "CYT")
	ResidueG = newResidueType(resNucleicAcid|resRNA|resPurine, "G", "RG", "GUA")
	ResidueU = newResidueType(resNucleicAcid|resRNA|resPyrimidine, "U", "RU", "URA")
	ResidueT = newResidueType(resNucleicAcid|resDNA|resPyrimidine, "T", "DT", "THY")

	ResiduePhosphate = newResidueType(resNucleicAcid|resPhosphate, "PO4")
	ResidueRibose    = newResidueType(resNucleicAcid|resRibose, "RIB")
	ResidueWater     = newResidueType(resWater, "HOH", "WAT", "H2O")
)

// The twenty standard amino acids, recognized so that protein residues in
// a mixed model participate in adjacency analysis instead of being
// rejected as unknown.
var aminoThree = []string{
	"ALA", "ARG", "ASN", "ASP", "CYS", "GLN", "GLU", "GLY", "HIS", "ILE",
	"LEU", "LYS", "MET", "PHE", "PRO", "SER", "THR", "TRP", "TYR", "VAL",
}

func init() {
	for _, n := range aminoThree {
		newResidueType(resAminoAcid, n)
	}
}
