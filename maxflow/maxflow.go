// Package maxflow solves maximum-flow problems on small directed
// networks with a preflow-push (push-relabel) algorithm. The push step
// is modified to split excess evenly over the available residual edges,
// so that when several edges compete for the same excess none of them
// is saturated at the expense of the others. For hydrogen-bond
// matching this keeps bifurcated geometries alive when the data
// supports them.
package maxflow

import (
	"math"
	"sort"
)

// Vertices are small non-negative integers chosen by the caller.
// Edges carry a capacity fixed at Connect time and a flow computed by
// PreFlowPush.

type edge struct {
	from, to  int
	cap, flow float64
}

// Graph is a directed flow network. The zero value is not usable; use
// New.
type Graph struct {
	weights map[int]float64
	verts   []int
	edges   []edge
	out     map[int][]int
	in      map[int][]int
	index   map[[2]int]int
}

// New returns an empty flow network.
func New() *Graph {
	return &Graph{
		weights: make(map[int]float64),
		out:     make(map[int][]int),
		in:      make(map[int][]int),
		index:   make(map[[2]int]int),
	}
}

// Size returns the number of vertices.
func (g *Graph) Size() int { return len(g.verts) }

// EdgeSize returns the number of edges.
func (g *Graph) EdgeSize() int { return len(g.edges) }

// Contains reports whether the vertex is in the graph.
func (g *Graph) Contains(v int) bool {
	_, ok := g.weights[v]
	return ok
}

// Insert adds a vertex with the given capacity weight. It returns
// false if the vertex is already present.
func (g *Graph) Insert(v int, weight float64) bool {
	if g.Contains(v) {
		return false
	}
	g.weights[v] = weight
	g.verts = append(g.verts, v)
	return true
}

// Connect adds a directed edge with the given capacity and zero flow.
// It returns false if either endpoint is missing or the edge already
// exists.
func (g *Graph) Connect(from, to int, capacity float64) bool {
	if !g.Contains(from) || !g.Contains(to) {
		return false
	}
	key := [2]int{from, to}
	if _, ok := g.index[key]; ok {
		return false
	}
	g.index[key] = len(g.edges)
	g.out[from] = append(g.out[from], len(g.edges))
	g.in[to] = append(g.in[to], len(g.edges))
	g.edges = append(g.edges, edge{from: from, to: to, cap: capacity})
	return true
}

// Flow returns the flow currently assigned to the edge, or zero when
// the edge does not exist.
func (g *Graph) Flow(from, to int) float64 {
	if i, ok := g.index[[2]int{from, to}]; ok {
		return g.edges[i].flow
	}
	return 0
}

// Capacity returns the capacity of the edge, or zero when the edge
// does not exist.
func (g *Graph) Capacity(from, to int) float64 {
	if i, ok := g.index[[2]int{from, to}]; ok {
		return g.edges[i].cap
	}
	return 0
}

// Edges calls f once per edge in insertion order.
func (g *Graph) Edges(f func(from, to int, capacity, flow float64)) {
	for _, e := range g.edges {
		f(e.from, e.to, e.cap, e.flow)
	}
}

// PreFlowPush computes a maximum flow from source to sink and leaves
// it on the edges. Vertices are first labeled with their BFS hop count
// from the source over the union of out- and in-neighborhoods, the
// source's out-edges are flooded to capacity, and excess is then pushed
// (or pushed back) toward higher-labeled vertices until no active
// vertex remains. Unknown source or sink vertices leave the graph
// untouched.
func (g *Graph) PreFlowPush(source, sink int) {
	if !g.Contains(source) || !g.Contains(sink) {
		return
	}

	// Dense indices for the label and excess tables.
	pos := make(map[int]int, len(g.verts))
	for i, v := range g.verts {
		pos[v] = i
	}

	labels := make([]int, len(g.verts))
	for i := range labels {
		labels[i] = math.MaxInt
	}
	excess := make([]float64, len(g.verts))

	// Initial distance labels.
	queue := []int{source}
	labels[pos[source]] = 0
	for len(queue) > 0 {
		front := queue[0]
		queue = queue[1:]
		distance := labels[pos[front]] + 1
		for _, nb := range g.neighborhood(front) {
			if labels[pos[nb]] > distance {
				labels[pos[nb]] = distance
				queue = append(queue, nb)
			}
		}
	}

	// Flood from the source.
	var active []int
	for _, ei := range g.out[source] {
		e := &g.edges[ei]
		e.flow = e.cap
		excess[pos[e.to]] = e.flow
		excess[pos[source]] -= e.flow
		active = append(active, e.to)
	}

	for len(active) > 0 {
		g.pushRelabel(&active, excess, labels, pos, source, sink)
		if excess[pos[active[0]]] == 0 {
			active = active[1:]
		}
	}
}

// neighborhood lists out-neighbors then in-neighbors of v.
func (g *Graph) neighborhood(v int) []int {
	var nbs []int
	for _, ei := range g.out[v] {
		nbs = append(nbs, g.edges[ei].to)
	}
	for _, ei := range g.in[v] {
		nbs = append(nbs, g.edges[ei].from)
	}
	return nbs
}

func (g *Graph) pushRelabel(active *[]int, excess []float64, labels []int, pos map[int]int, source, sink int) {
	front := (*active)[0]
	fi := pos[front]

	if excess[fi] > 0 {
		// Push forward on unsaturated out-edges toward
		// higher-labeled vertices.
		var caps []float64
		for _, ei := range g.out[front] {
			e := &g.edges[ei]
			if labels[pos[e.to]] > labels[fi] && e.flow < e.cap {
				caps = append(caps, e.cap-e.flow)
			}
		}
		eq := equilibrateFlow(caps, excess[fi])
		for _, ei := range g.out[front] {
			e := &g.edges[ei]
			if labels[pos[e.to]] > labels[fi] && e.flow < e.cap {
				delta := math.Min(eq, e.cap-e.flow)
				e.flow += delta
				excess[fi] -= delta
				if math.Abs(excess[fi]) < 1e-5 {
					excess[fi] = 0
				}
				if e.to != source && e.to != sink {
					*active = append(*active, e.to)
				}
				excess[pos[e.to]] += delta
			}
		}
	}

	if excess[fi] > 0 {
		// Push back on in-edges that carry flow.
		var caps []float64
		for _, ei := range g.in[front] {
			e := &g.edges[ei]
			if labels[pos[e.from]] > labels[fi] && e.flow > 0 {
				caps = append(caps, e.flow)
			}
		}
		eq := equilibrateFlow(caps, excess[fi])
		for _, ei := range g.in[front] {
			e := &g.edges[ei]
			if labels[pos[e.from]] > labels[fi] && e.flow > 0 {
				delta := math.Min(eq, e.flow)
				e.flow -= delta
				excess[fi] -= delta
				if math.Abs(excess[fi]) < 1e-5 {
					excess[fi] = 0
				}
				if e.from != source && e.from != sink {
					*active = append(*active, e.from)
				}
				excess[pos[e.from]] += delta
			}
		}
	}

	if excess[fi] > 0 {
		// Relabel below the highest-labeled residual neighbor.
		maxDist := -2 * len(g.verts)
		for _, ei := range g.out[front] {
			e := &g.edges[ei]
			if e.cap-e.flow > 0 && labels[pos[e.to]] > maxDist {
				maxDist = labels[pos[e.to]]
			}
		}
		for _, ei := range g.in[front] {
			e := &g.edges[ei]
			if e.flow > 0 && labels[pos[e.from]] > maxDist {
				maxDist = labels[pos[e.from]]
			}
		}
		labels[fi] = maxDist - 1
	}
}

// equilibrateFlow chooses the per-edge push amount for a vertex with
// the given excess and sorted residual capacities: capacities below the
// equal share of the remaining excess are taken whole, the rest of the
// excess is split equally. When every capacity fits the excess the
// edges can take everything they have.
func equilibrateFlow(capacities []float64, excess float64) float64 {
	sort.Float64s(capacities)
	i := 0
	for ; i < len(capacities); i++ {
		if capacities[i] < excess/float64(len(capacities)-i) {
			excess -= capacities[i]
		} else {
			break
		}
	}
	if i == len(capacities) {
		return 1
	}
	return excess / float64(len(capacities)-i)
}
