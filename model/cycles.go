package model

import (
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/qczhang/mccore/residue"
)

// A cycle candidate: its vertex walk, its edge set as a bit vector and
// its hop count.
type cycleCandidate struct {
	verts  []int
	bits   []uint64
	weight int
}

func newBits(n int) []uint64 { return make([]uint64, (n+63)/64) }

func setBit(b []uint64, i int) { b[i/64] |= 1 << (uint(i) % 64) }

func xorInto(dst, src []uint64) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func firstBit(b []uint64) int {
	for i, w := range b {
		if w != 0 {
			for j := 0; j < 64; j++ {
				if w&(1<<uint(j)) != 0 {
					return i*64 + j
				}
			}
		}
	}
	return -1
}

// reduce eliminates v against the echelon basis in place and reports
// whether anything remains.
func reduce(v []uint64, basis [][]uint64, pivots []int) bool {
	for i, b := range basis {
		p := pivots[i]
		if v[p/64]&(1<<(uint(p)%64)) != 0 {
			xorInto(v, b)
		}
	}
	return firstBit(v) >= 0
}

// relationGraph projects the directed relation edges onto an
// undirected gonum graph over residue indices, and returns the edge
// index map used for the cycle bit vectors.
func (m *GraphModel) relationGraph() (*simple.UndirectedGraph, map[[2]int64]int) {
	g := simple.NewUndirectedGraph()
	index := make(map[*residue.Residue]int64, len(m.residues))
	for i, r := range m.residues {
		index[r] = int64(i)
		g.AddNode(simple.Node(int64(i)))
	}

	edgeIndex := make(map[[2]int64]int)
	for _, rel := range m.relations {
		a, aok := index[rel.Ref()]
		b, bok := index[rel.Res()]
		if !aok || !bok || a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if _, dup := edgeIndex[[2]int64{a, b}]; dup {
			continue
		}
		edgeIndex[[2]int64{a, b}] = len(edgeIndex)
		g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	}
	return g, edgeIndex
}

// hortonCandidates generates the Horton cycle candidates: for each
// vertex v and edge (x, y), the two shortest paths v..x and v..y plus
// the edge, kept when the paths share only v. Candidates are returned
// sorted by hop count and deduplicated on their edge sets.
func (m *GraphModel) hortonCandidates() []cycleCandidate {
	g, edgeIndex := m.relationGraph()
	nEdges := len(edgeIndex)

	type edge struct{ a, b int64 }
	edges := make([]edge, nEdges)
	for k, i := range edgeIndex {
		edges[i] = edge{k[0], k[1]}
	}

	var out []cycleCandidate
	seen := make(map[string]bool)

	for v := 0; v < len(m.residues); v++ {
		sp := path.DijkstraFrom(simple.Node(int64(v)), g)
		for _, e := range edges {
			if e.a == int64(v) || e.b == int64(v) {
				continue
			}
			px, _ := sp.To(e.a)
			py, _ := sp.To(e.b)
			if px == nil || py == nil {
				continue
			}

			// the two tree paths must branch immediately
			shared := 0
			onX := make(map[int64]bool, len(px))
			for _, n := range px {
				onX[n.ID()] = true
			}
			for _, n := range py {
				if onX[n.ID()] {
					shared++
				}
			}
			if shared != 1 {
				continue
			}

			c := cycleCandidate{
				bits:   newBits(nEdges),
				weight: len(px) + len(py) - 1,
			}
			for _, n := range px {
				c.verts = append(c.verts, int(n.ID()))
			}
			for i := len(py) - 1; i > 0; i-- {
				c.verts = append(c.verts, int(py[i].ID()))
			}
			mark := func(a, b int64) {
				if a > b {
					a, b = b, a
				}
				setBit(c.bits, edgeIndex[[2]int64{a, b}])
			}
			for i := 1; i < len(px); i++ {
				mark(px[i-1].ID(), px[i].ID())
			}
			for i := 1; i < len(py); i++ {
				mark(py[i-1].ID(), py[i].ID())
			}
			mark(e.a, e.b)

			key := string(bitsKey(c.bits))
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].weight < out[j].weight })
	return out
}

func bitsKey(b []uint64) []byte {
	key := make([]byte, 0, len(b)*8)
	for _, w := range b {
		for s := 0; s < 64; s += 8 {
			key = append(key, byte(w>>uint(s)))
		}
	}
	return key
}

func (m *GraphModel) cycleResidues(c cycleCandidate) []*residue.Residue {
	out := make([]*residue.Residue, len(c.verts))
	for i, v := range c.verts {
		out[i] = m.residues[v]
	}
	return out
}

// CycleBase returns a minimum cycle basis of the relation graph:
// Horton candidates in hop-count order, kept greedily when independent
// over GF(2) of the cycles already taken.
func (m *GraphModel) CycleBase() [][]*residue.Residue {
	candidates := m.hortonCandidates()

	var basis [][]uint64
	var pivots []int
	var out [][]*residue.Residue
	for _, c := range candidates {
		v := append([]uint64(nil), c.bits...)
		if !reduce(v, basis, pivots) {
			continue
		}
		basis = append(basis, v)
		pivots = append(pivots, firstBit(v))
		out = append(out, m.cycleResidues(c))
	}
	return out
}

// CycleBaseUnion returns the union of all minimum cycle bases: a
// candidate belongs to some minimum basis exactly when it is
// independent of the span of the strictly shorter candidates.
func (m *GraphModel) CycleBaseUnion() [][]*residue.Residue {
	candidates := m.hortonCandidates()

	var basis [][]uint64
	var pivots []int
	var out [][]*residue.Residue

	for start := 0; start < len(candidates); {
		end := start
		for end < len(candidates) && candidates[end].weight == candidates[start].weight {
			end++
		}

		// membership is judged against shorter cycles only
		for _, c := range candidates[start:end] {
			v := append([]uint64(nil), c.bits...)
			if reduce(v, basis, pivots) {
				out = append(out, m.cycleResidues(c))
			}
		}
		// then the whole weight class joins the span
		for _, c := range candidates[start:end] {
			v := append([]uint64(nil), c.bits...)
			if reduce(v, basis, pivots) {
				basis = append(basis, v)
				pivots = append(pivots, firstBit(v))
			}
		}
		start = end
	}
	return out
}
