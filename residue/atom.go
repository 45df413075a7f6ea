// Package residue implements the residue geometry core: the atom
// container with its local referential and pseudo-atoms, hydrogen and
// lone-pair placement, pseudorotation and glycosyl torsion measures, and
// the ribose reconstruction entry points.
package residue

import (
	"log"
	"os"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/types"
)

// Warn receives the recoverable complaints of the placement routines:
// hydrogens or lone pairs skipped because a heavy anchor is missing.
// Callers that want silence may swap in a logger writing to io.Discard.
var Warn = log.New(os.Stderr, "residue: ", 0)

// Atom is a position with an atom type. Atoms carry no identity beyond
// the pair; equality of atoms inside a residue is equality of type.
type Atom struct {
	Pos  geom.Point
	Type *types.AtomType
}

// NewAtom builds an atom from coordinates and a type.
func NewAtom(x, y, z float64, t *types.AtomType) Atom {
	return Atom{Pos: geom.Point{X: x, Y: y, Z: z}, Type: t}
}

// Distance returns the euclidean distance to another atom.
func (a Atom) Distance(b Atom) float64 {
	return geom.Distance(a.Pos, b.Pos)
}

// SquareDistance returns the squared euclidean distance to another atom.
func (a Atom) SquareDistance(b Atom) float64 {
	return geom.SquareDistance(a.Pos, b.Pos)
}

// Transform applies a rigid transformation to the atom position.
func (a *Atom) Transform(t geom.Transfo) {
	a.Pos = t.Apply(a.Pos)
}
