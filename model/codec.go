package model

import (
	"encoding/binary"
	"io"

	"github.com/qczhang/mccore/relation"
	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

// Write emits the model: the residues, then the relation edges with
// their residues recorded by id, then the annotation state.
func (m *GraphModel) Write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.residues))); err != nil {
		return err
	}
	for _, r := range m.residues {
		if err := r.Write(w); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.relations))); err != nil {
		return err
	}
	for _, rel := range m.relations {
		if err := rel.Write(w); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, m.annotated)
}

// Read replaces the model with a binary record written by Write. The
// relations are reattached to the freshly read residues through their
// ids.
func (m *GraphModel) Read(rd io.Reader) error {
	var n uint32
	if err := binary.Read(rd, binary.LittleEndian, &n); err != nil {
		return err
	}
	residues := make([]*residue.Residue, n)
	resMap := make(map[types.ResId]*residue.Residue, n)
	for i := range residues {
		r := residue.New(nil, types.ResId{})
		if err := r.Read(rd); err != nil {
			return err
		}
		residues[i] = r
		resMap[r.ID()] = r
	}

	if err := binary.Read(rd, binary.LittleEndian, &n); err != nil {
		return err
	}
	relations := make([]*relation.Relation, n)
	for i := range relations {
		rel := &relation.Relation{}
		if err := rel.Read(rd, resMap); err != nil {
			return err
		}
		relations[i] = rel
	}

	var annotated bool
	if err := binary.Read(rd, binary.LittleEndian, &annotated); err != nil {
		return err
	}

	m.residues = residues
	m.relations = relations
	m.annotated = annotated
	return nil
}
