package maxflow

import (
	"math"
	"testing"
)

func conservation(t *testing.T, g *Graph, source, sink int) {
	t.Helper()
	in := make(map[int]float64)
	out := make(map[int]float64)
	g.Edges(func(from, to int, capacity, flow float64) {
		out[from] += flow
		in[to] += flow
	})
	for _, v := range g.verts {
		if v == source || v == sink {
			continue
		}
		if d := math.Abs(in[v] - out[v]); d > 1e-4 {
			t.Errorf("vertex %d: inflow %f != outflow %f", v, in[v], out[v])
		}
	}
}

func TestInsertConnect(t *testing.T) {
	g := New()
	if !g.Insert(0, 1) || !g.Insert(1, 1) {
		t.Fatal("fresh vertices should insert")
	}
	if g.Insert(0, 1) {
		t.Error("duplicate vertex should not insert")
	}
	if !g.Connect(0, 1, 0.5) {
		t.Error("edge between known vertices should connect")
	}
	if g.Connect(0, 1, 0.5) {
		t.Error("duplicate edge should not connect")
	}
	if g.Connect(0, 7, 1) {
		t.Error("edge to unknown vertex should not connect")
	}
	if g.Size() != 2 || g.EdgeSize() != 1 {
		t.Errorf("got size %d, edge size %d", g.Size(), g.EdgeSize())
	}
	if c := g.Capacity(0, 1); c != 0.5 {
		t.Errorf("got capacity %f, want 0.5", c)
	}
}

func TestPreFlowPushChain(t *testing.T) {
	// The middle edge bottlenecks the chain; the surplus pushed out
	// of the source must come back.
	g := New()
	for v := 0; v < 4; v++ {
		g.Insert(v, 1)
	}
	g.Connect(0, 2, 1.0)
	g.Connect(2, 3, 0.9)
	g.Connect(3, 1, 1.0)
	g.PreFlowPush(0, 1)

	for _, e := range []struct {
		from, to int
		want     float64
	}{
		{0, 2, 0.9},
		{2, 3, 0.9},
		{3, 1, 0.9},
	} {
		if f := g.Flow(e.from, e.to); math.Abs(f-e.want) > 1e-9 {
			t.Errorf("flow(%d,%d) = %f, want %f", e.from, e.to, f, e.want)
		}
	}
	conservation(t, g, 0, 1)
}

func TestPreFlowPushBifurcation(t *testing.T) {
	// One donor hydrogen reaching two acceptors: the equilibrated
	// push splits the unit excess instead of saturating one bond.
	g := New()
	for v := 0; v < 5; v++ {
		g.Insert(v, 1)
	}
	g.Connect(0, 2, 1.0)
	g.Connect(2, 3, 0.6)
	g.Connect(2, 4, 0.6)
	g.Connect(3, 1, 1.0)
	g.Connect(4, 1, 1.0)
	g.PreFlowPush(0, 1)

	if f := g.Flow(2, 3); math.Abs(f-0.5) > 1e-9 {
		t.Errorf("flow(2,3) = %f, want 0.5", f)
	}
	if f := g.Flow(2, 4); math.Abs(f-0.5) > 1e-9 {
		t.Errorf("flow(2,4) = %f, want 0.5", f)
	}
	conservation(t, g, 0, 1)
}

func TestPreFlowPushCompetition(t *testing.T) {
	// Two hydrogens competing for one lone pair can jointly move at
	// most one unit through it.
	g := New()
	for v := 0; v < 5; v++ {
		g.Insert(v, 1)
	}
	g.Connect(0, 2, 1.0)
	g.Connect(0, 3, 1.0)
	g.Connect(2, 4, 0.9)
	g.Connect(3, 4, 0.8)
	g.Connect(4, 1, 1.0)
	g.PreFlowPush(0, 1)

	total := g.Flow(2, 4) + g.Flow(3, 4)
	if math.Abs(total-1.0) > 1e-6 {
		t.Errorf("total flow into shared acceptor = %f, want 1", total)
	}
	if g.Flow(2, 4) > 0.9+1e-9 || g.Flow(3, 4) > 0.8+1e-9 {
		t.Errorf("edge capacities exceeded: %f, %f", g.Flow(2, 4), g.Flow(3, 4))
	}
	if f := g.Flow(4, 1); math.Abs(f-1.0) > 1e-6 {
		t.Errorf("flow(4,1) = %f, want 1", f)
	}
	conservation(t, g, 0, 1)
}

func TestPreFlowPushDisjoint(t *testing.T) {
	// Three independent bonds: each carries its own capacity.
	g := New()
	for v := 0; v < 8; v++ {
		g.Insert(v, 1)
	}
	caps := []float64{0.95, 0.9, 0.85}
	for i, h := range []int{2, 3, 4} {
		g.Connect(0, h, 1.0)
		g.Connect(h, 5+i, caps[i])
		g.Connect(5+i, 1, 1.0)
	}
	g.PreFlowPush(0, 1)

	sum := 0.0
	for i, h := range []int{2, 3, 4} {
		f := g.Flow(h, 5+i)
		sum += f
		if math.Abs(f-caps[i]) > 1e-9 {
			t.Errorf("flow on bond %d = %f, want %f", i, f, caps[i])
		}
	}
	if math.Abs(sum-2.7) > 1e-9 {
		t.Errorf("total flow = %f, want 2.7", sum)
	}
	conservation(t, g, 0, 1)
}

func TestPreFlowPushUnknownTerminals(t *testing.T) {
	g := New()
	g.Insert(0, 1)
	g.Insert(1, 1)
	g.Connect(0, 1, 1)
	g.PreFlowPush(0, 9)
	if f := g.Flow(0, 1); f != 0 {
		t.Errorf("unknown sink should leave flows untouched, got %f", f)
	}
}

func TestEquilibrateFlow(t *testing.T) {
	tests := []struct {
		caps   []float64
		excess float64
		want   float64
	}{
		{[]float64{0.6, 0.6}, 1.0, 0.5},
		{[]float64{0.2, 0.9}, 1.0, 0.8},
		{[]float64{0.3, 0.3}, 1.0, 1},
		{[]float64{1.0}, 0.1, 0.1},
	}
	for _, test := range tests {
		caps := append([]float64(nil), test.caps...)
		if got := equilibrateFlow(caps, test.excess); math.Abs(got-test.want) > 1e-9 {
			t.Errorf("equilibrateFlow(%v, %f) = %f, want %f",
				test.caps, test.excess, got, test.want)
		}
	}
}
