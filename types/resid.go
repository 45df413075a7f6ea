package types

import (
	"fmt"
	"strconv"
)

// ResId identifies a residue inside a model: chain identifier, residue
// number and insertion code. The zero insertion code is a space, matching
// the PDB convention.
type ResId struct {
	Chain  byte
	Number int
	ICode  byte
}

// NewResId returns a ResId with a blank insertion code.
func NewResId(chain byte, number int) ResId {
	return ResId{Chain: chain, Number: number, ICode: ' '}
}

// String renders the canonical text form "<chain><number>[<icode>]".
// A blank chain is omitted; a blank insertion code is omitted.
func (r ResId) String() string {
	s := ""
	if r.Chain != ' ' && r.Chain != 0 {
		s += string(r.Chain)
	}
	s += strconv.Itoa(r.Number)
	if r.ICode != ' ' && r.ICode != 0 {
		s += string(r.ICode)
	}
	return s
}

// ParseResId parses the canonical text form produced by String.
func ParseResId(s string) (ResId, error) {
	r := ResId{Chain: ' ', ICode: ' '}
	if len(s) == 0 {
		return r, fmt.Errorf("types: cannot parse an empty residue id")
	}
	i := 0
	if c := s[0]; (c < '0' || c > '9') && c != '-' {
		r.Chain = c
		i = 1
	}
	j := i
	if j < len(s) && s[j] == '-' {
		j++
	}
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	n, err := strconv.Atoi(s[i:j])
	if err != nil {
		return r, fmt.Errorf("types: residue id '%s' has no number", s)
	}
	r.Number = n
	switch len(s) - j {
	case 0:
	case 1:
		r.ICode = s[j]
	default:
		return r, fmt.Errorf("types: residue id '%s' has trailing characters", s)
	}
	return r, nil
}

// Less imposes the total order chain, number, insertion code.
func (r ResId) Less(o ResId) bool {
	if r.Chain != o.Chain {
		return r.Chain < o.Chain
	}
	if r.Number != o.Number {
		return r.Number < o.Number
	}
	return r.ICode < o.ICode
}
