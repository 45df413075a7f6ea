package hbond

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

// Flow pairs a hydrogen bond with the flow the bipartite matcher
// assigned to it.
type Flow struct {
	Bond HBond
	Flow float64
}

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

// Write emits the bond: the four atom-type tags, the two residue ids
// and the last score.
func (h *HBond) Write(w io.Writer) error {
	for _, t := range []*types.AtomType{h.Donor, h.Hydrogen, h.Acceptor, h.LonePair} {
		if err := writeString(w, t.String()); err != nil {
			return err
		}
	}
	if err := residue.WriteResId(w, h.DonorRes.ID()); err != nil {
		return err
	}
	if err := residue.WriteResId(w, h.AcceptorRes.ID()); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, float32(h.value))
}

// Read replaces the bond with a binary record written by Write,
// resolving the residue ids against resMap.
func (h *HBond) Read(r io.Reader, resMap map[types.ResId]*residue.Residue) error {
	tags := make([]*types.AtomType, 4)
	for i := range tags {
		s, err := readString(r)
		if err != nil {
			return err
		}
		tags[i] = types.ParseAtomType(s)
	}
	h.Donor, h.Hydrogen, h.Acceptor, h.LonePair = tags[0], tags[1], tags[2], tags[3]

	for _, slot := range []**residue.Residue{&h.DonorRes, &h.AcceptorRes} {
		id, err := residue.ReadResId(r)
		if err != nil {
			return err
		}
		res, ok := resMap[id]
		if !ok {
			return NoSuchElementError{ID: id}
		}
		*slot = res
	}

	var v float32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return err
	}
	h.value = float64(v)
	return nil
}

// WriteFlow emits a bond and its flow.
func (f *Flow) Write(w io.Writer) error {
	if err := f.Bond.Write(w); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, float32(f.Flow))
}

// ReadFlow reads a record written by WriteFlow.
func (f *Flow) Read(r io.Reader, resMap map[types.ResId]*residue.Residue) error {
	if err := f.Bond.Read(r, resMap); err != nil {
		return err
	}
	var v float32
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return err
	}
	f.Flow = float64(v)
	return nil
}

func (f Flow) String() string {
	return fmt.Sprintf("%s %.3f", &f.Bond, f.Flow)
}
