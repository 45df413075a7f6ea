package residue

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/qczhang/mccore/types"
)

// The binary layout of a residue is its residue-type tag, its id, and a
// counted sequence of atoms, each a binary32 position followed by an
// atom-type tag. Integers are little-endian fixed width; strings are
// length-prefixed.

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

// WriteResId emits a residue id.
func WriteResId(w io.Writer, id types.ResId) error {
	if err := binary.Write(w, binary.LittleEndian, uint8(id.Chain)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(id.Number)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint8(id.ICode))
}

// ReadResId reads a residue id written by WriteResId.
func ReadResId(r io.Reader) (types.ResId, error) {
	var chain, icode uint8
	var number int32
	if err := binary.Read(r, binary.LittleEndian, &chain); err != nil {
		return types.ResId{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &number); err != nil {
		return types.ResId{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &icode); err != nil {
		return types.ResId{}, err
	}
	return types.ResId{Chain: byte(chain), Number: int(number), ICode: byte(icode)}, nil
}

// Write emits the residue in binary form.
func (r *Residue) Write(w io.Writer) error {
	if err := writeString(w, r.typ.String()); err != nil {
		return err
	}
	if err := WriteResId(w, r.id); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(r.atoms))); err != nil {
		return err
	}
	for _, a := range r.atoms {
		pos := [3]float32{float32(a.Pos.X), float32(a.Pos.Y), float32(a.Pos.Z)}
		if err := binary.Write(w, binary.LittleEndian, pos); err != nil {
			return err
		}
		if err := writeString(w, a.Type.String()); err != nil {
			return err
		}
	}
	return nil
}

// Read replaces the residue content with a binary record written by
// Write, then finalizes the residue.
func (r *Residue) Read(rd io.Reader) error {
	r.Clear()

	tag, err := readString(rd)
	if err != nil {
		return err
	}
	typ := types.ParseResidueType(tag)
	if typ == nil {
		return fmt.Errorf("residue: unknown residue type tag %q", tag)
	}
	r.typ = typ

	if r.id, err = ReadResId(rd); err != nil {
		return err
	}

	var n uint32
	if err := binary.Read(rd, binary.LittleEndian, &n); err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		var pos [3]float32
		if err := binary.Read(rd, binary.LittleEndian, &pos); err != nil {
			return err
		}
		atag, err := readString(rd)
		if err != nil {
			return err
		}
		r.Insert(NewAtom(float64(pos[0]), float64(pos[1]), float64(pos[2]),
			types.ParseAtomType(atag)))
	}

	r.Finalize()
	return nil
}
