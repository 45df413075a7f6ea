// Package model holds an annotated collection of residues: a graph
// whose vertices are residues and whose directed edges are the
// annotated relations between residues in contact. Contacts are found
// with an axis-aligned bounding box sweep, and the relation graph
// supports minimum cycle basis extraction.
package model

import (
	"log"
	"os"
	"sort"

	"github.com/qczhang/mccore/relation"
	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

// Warn receives recoverable complaints of the annotation pass.
var Warn = log.New(os.Stderr, "model: ", 0)

// ContactCutoff is the bounding-box distance within which two residues
// are candidates for a relation.
const ContactCutoff = 5.0

// GraphModel is the residue container and its relation graph. The
// graph is built lazily by Annotate and invalidated by any mutation of
// the residue set.
type GraphModel struct {
	residues  []*residue.Residue
	relations []*relation.Relation
	annotated bool
}

// New returns an empty model.
func New() *GraphModel {
	return &GraphModel{}
}

// Len returns the number of residues.
func (m *GraphModel) Len() int { return len(m.residues) }

// Residues returns the residue slice in model order.
func (m *GraphModel) Residues() []*residue.Residue { return m.residues }

// Relations returns the directed relation edges of the last
// annotation, both orientations of every annotated pair.
func (m *GraphModel) Relations() []*relation.Relation { return m.relations }

// Annotated reports whether the relation graph is current.
func (m *GraphModel) Annotated() bool { return m.annotated }

// Insert adds a residue and invalidates the annotation.
func (m *GraphModel) Insert(r *residue.Residue) {
	m.residues = append(m.residues, r)
	m.invalidate()
}

// Find returns the residue with the given id, or nil.
func (m *GraphModel) Find(id types.ResId) *residue.Residue {
	for _, r := range m.residues {
		if r.ID() == id {
			return r
		}
	}
	return nil
}

// Sort orders the residues by id.
func (m *GraphModel) Sort() {
	sort.Slice(m.residues, func(i, j int) bool {
		return m.residues[i].ID().Less(m.residues[j].ID())
	})
}

// RemoveWater drops every water residue and invalidates the
// annotation.
func (m *GraphModel) RemoveWater() {
	kept := m.residues[:0]
	for _, r := range m.residues {
		if !r.Type().IsWater() {
			kept = append(kept, r)
		}
	}
	if len(kept) != len(m.residues) {
		m.residues = kept
		m.invalidate()
	}
}

func (m *GraphModel) invalidate() {
	m.relations = nil
	m.annotated = false
}

// GetRelation returns the directed relation from ref to res, or nil.
func (m *GraphModel) GetRelation(ref, res *residue.Residue) *relation.Relation {
	for _, rel := range m.relations {
		if rel.Ref() == ref && rel.Res() == res {
			return rel
		}
	}
	return nil
}

// Annotate builds the relation graph: waters are removed, protons and
// lone pairs are placed, contacts are extracted with the bounding-box
// sweep, and each contact pair is annotated with the given mask. Pairs
// that receive at least one label contribute an edge in each
// direction. A second call is a no-op until the residue set changes.
func (m *GraphModel) Annotate(mask uint8) {
	if m.annotated {
		return
	}
	m.relations = nil

	m.RemoveWater()
	for _, r := range m.residues {
		r.SetupHLP()
	}

	for _, c := range ExtractContacts(m.residues, ContactCutoff) {
		ri, rj := m.residues[c[0]], m.residues[c[1]]
		rel := relation.New(ri, rj)
		if rel.Annotate(mask) {
			m.relations = append(m.relations, rel, rel.Clone().Invert())
		}
	}
	m.annotated = true
}

// Clone returns a deep copy: residues are cloned and every relation is
// reattached to the copies.
func (m *GraphModel) Clone() (*GraphModel, error) {
	c := New()
	resMap := make(map[types.ResId]*residue.Residue, len(m.residues))
	for _, r := range m.residues {
		cr := r.Clone()
		c.residues = append(c.residues, cr)
		resMap[cr.ID()] = cr
	}
	for _, rel := range m.relations {
		crel := rel.Clone()
		if err := crel.ReassignResiduePointers(resMap); err != nil {
			return nil, err
		}
		c.relations = append(c.relations, crel)
	}
	c.annotated = m.annotated
	return c, nil
}
