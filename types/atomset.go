package types

// AtomSet is a composable predicate over atom types, used to filter
// residue iteration.
type AtomSet interface {
	Match(t *AtomType) bool
}

// AtomSetFunc adapts a plain function to an AtomSet.
type AtomSetFunc func(t *AtomType) bool

func (f AtomSetFunc) Match(t *AtomType) bool { return f(t) }

// All matches every atom.
var All AtomSet = AtomSetFunc(func(*AtomType) bool { return true })

// Not negates a predicate.
func Not(s AtomSet) AtomSet {
	return AtomSetFunc(func(t *AtomType) bool { return !s.Match(t) })
}

// And matches atoms matched by both predicates.
func And(a, b AtomSet) AtomSet {
	return AtomSetFunc(func(t *AtomType) bool { return a.Match(t) && b.Match(t) })
}

// Or matches atoms matched by either predicate.
func Or(a, b AtomSet) AtomSet {
	return AtomSetFunc(func(t *AtomType) bool { return a.Match(t) || b.Match(t) })
}

// Atom matches exactly one atom type.
func Atom(want *AtomType) AtomSet {
	return AtomSetFunc(func(t *AtomType) bool { return t == want })
}

// SideChain matches base atoms, Backbone sugar-phosphate atoms.
var (
	SideChain AtomSet = AtomSetFunc((*AtomType).IsSideChain)
	Backbone  AtomSet = AtomSetFunc((*AtomType).IsBackbone)
	Hydrogen  AtomSet = AtomSetFunc((*AtomType).IsHydrogen)
	LonePair  AtomSet = AtomSetFunc((*AtomType).IsLonePair)
	PSE       AtomSet = AtomSetFunc((*AtomType).IsPseudo)
)

// Heavy matches the atoms that define a residue's bounding box: anything
// that is not a pseudo-atom.
var Heavy AtomSet = Not(PSE)
