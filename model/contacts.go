package model

import (
	"math"
	"sort"

	"github.com/qczhang/mccore/residue"
	"github.com/qczhang/mccore/types"
)

type residueRange struct {
	index        int
	lower, upper float64
}

// sweep walks one sorted axis and counts, for every pair whose ranges
// come within cutoff, one vote in the contact map. With onlyVoted it
// votes only for pairs already in the map, so a pair pruned after the
// earlier axes cannot re-enter.
func sweep(ranges []residueRange, contact map[[2]int]int, cutoff float64, onlyVoted bool) {
	for i := range ranges {
		for j := i + 1; j < len(ranges); j++ {
			if ranges[j].lower-cutoff > ranges[i].upper {
				break
			}
			a, b := ranges[i].index, ranges[j].index
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if onlyVoted {
				if _, ok := contact[key]; !ok {
					continue
				}
			}
			contact[key]++
		}
	}
}

// ExtractContacts returns the index pairs of residues whose axis
// aligned bounding boxes come within cutoff on all three axes. Boxes
// are computed over the non-pseudo atoms; each axis is swept in sorted
// order, and pairs that miss an axis are pruned between sweeps.
func ExtractContacts(residues []*residue.Residue, cutoff float64) [][2]int {
	xr := make([]residueRange, 0, len(residues))
	yr := make([]residueRange, 0, len(residues))
	zr := make([]residueRange, 0, len(residues))

	for i, r := range residues {
		minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
		maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
		for _, a := range r.Atoms(types.Heavy) {
			minX = math.Min(minX, a.Pos.X)
			maxX = math.Max(maxX, a.Pos.X)
			minY = math.Min(minY, a.Pos.Y)
			maxY = math.Max(maxY, a.Pos.Y)
			minZ = math.Min(minZ, a.Pos.Z)
			maxZ = math.Max(maxZ, a.Pos.Z)
		}
		xr = append(xr, residueRange{i, minX, maxX})
		yr = append(yr, residueRange{i, minY, maxY})
		zr = append(zr, residueRange{i, minZ, maxZ})
	}

	byRange := func(rs []residueRange) func(i, j int) bool {
		return func(i, j int) bool {
			if rs[i].lower != rs[j].lower {
				return rs[i].lower < rs[j].lower
			}
			return rs[i].upper < rs[j].upper
		}
	}
	sort.Slice(xr, byRange(xr))
	sort.Slice(yr, byRange(yr))
	sort.Slice(zr, byRange(zr))

	contact := make(map[[2]int]int)
	sweep(xr, contact, cutoff, false)
	sweep(yr, contact, cutoff, false)
	for pair, votes := range contact {
		if votes < 2 {
			delete(contact, pair)
		}
	}
	sweep(zr, contact, cutoff, true)

	var out [][2]int
	for pair, votes := range contact {
		if votes == 3 {
			out = append(out, pair)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
