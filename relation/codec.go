package relation

import (
	"encoding/binary"
	"io"

	"github.com/qczhang/mccore/geom"
	"github.com/qczhang/mccore/hbond"
	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeTransfo(w io.Writer, t geom.Transfo) error {
	for _, v := range t {
		if err := binary.Write(w, binary.LittleEndian, float32(v)); err != nil {
			return err
		}
	}
	return nil
}

func readTransfo(r io.Reader) (geom.Transfo, error) {
	var t geom.Transfo
	for i := range t {
		var v float32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return t, err
		}
		t[i] = float64(v)
	}
	return t, nil
}

// Write emits the relation in binary form: the two residue ids, the two
// transforms, the faces, the label set, the annotation mask, the
// hydrogen-bond flows, the total flow and the face pairs. Residues are
// recorded by id only; Read reattaches them through a residue map.
func (r *Relation) Write(w io.Writer) error {
	if err := residue.WriteResId(w, r.ref.ID()); err != nil {
		return err
	}
	if err := residue.WriteResId(w, r.res.ID()); err != nil {
		return err
	}
	if err := writeTransfo(w, r.tfo); err != nil {
		return err
	}
	if err := writeTransfo(w, r.po4Tfo); err != nil {
		return err
	}
	if err := writeString(w, r.refFace.String()); err != nil {
		return err
	}
	if err := writeString(w, r.resFace.String()); err != nil {
		return err
	}

	labels := r.Labels()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(labels))); err != nil {
		return err
	}
	for _, l := range labels {
		if err := writeString(w, l.String()); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.LittleEndian, r.mask); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(r.hbonds))); err != nil {
		return err
	}
	for i := range r.hbonds {
		if err := r.hbonds[i].Write(w); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, float32(r.sumFlow)); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(r.pairedFaces))); err != nil {
		return err
	}
	for _, fp := range r.pairedFaces {
		if err := writeString(w, fp.Ref.String()); err != nil {
			return err
		}
		if err := writeString(w, fp.Res.String()); err != nil {
			return err
		}
	}
	return nil
}

// Read replaces the relation with a binary record written by Write,
// resolving residue ids against resMap.
func (r *Relation) Read(rd io.Reader, resMap map[types.ResId]*residue.Residue) error {
	refID, err := residue.ReadResId(rd)
	if err != nil {
		return err
	}
	resID, err := residue.ReadResId(rd)
	if err != nil {
		return err
	}
	ref, ok := resMap[refID]
	if !ok {
		return hbond.NoSuchElementError{ID: refID}
	}
	res, ok := resMap[resID]
	if !ok {
		return hbond.NoSuchElementError{ID: resID}
	}
	r.ref = ref
	r.res = res

	if r.tfo, err = readTransfo(rd); err != nil {
		return err
	}
	if r.po4Tfo, err = readTransfo(rd); err != nil {
		return err
	}

	s, err := readString(rd)
	if err != nil {
		return err
	}
	r.refFace = types.ParsePropertyType(s)
	if s, err = readString(rd); err != nil {
		return err
	}
	r.resFace = types.ParsePropertyType(s)

	var n uint32
	if err = binary.Read(rd, binary.LittleEndian, &n); err != nil {
		return err
	}
	r.labels = make(map[*types.PropertyType]bool, n)
	for i := uint32(0); i < n; i++ {
		if s, err = readString(rd); err != nil {
			return err
		}
		r.labels[types.ParsePropertyType(s)] = true
	}

	if err = binary.Read(rd, binary.LittleEndian, &r.mask); err != nil {
		return err
	}

	if err = binary.Read(rd, binary.LittleEndian, &n); err != nil {
		return err
	}
	r.hbonds = make([]hbond.Flow, n)
	for i := range r.hbonds {
		if err = r.hbonds[i].Read(rd, resMap); err != nil {
			return err
		}
	}
	var f float32
	if err = binary.Read(rd, binary.LittleEndian, &f); err != nil {
		return err
	}
	r.sumFlow = float64(f)

	if err = binary.Read(rd, binary.LittleEndian, &n); err != nil {
		return err
	}
	r.pairedFaces = make([]FacePair, n)
	for i := range r.pairedFaces {
		if s, err = readString(rd); err != nil {
			return err
		}
		r.pairedFaces[i].Ref = types.ParsePropertyType(s)
		if s, err = readString(rd); err != nil {
			return err
		}
		r.pairedFaces[i].Res = types.ParsePropertyType(s)
	}
	return nil
}
