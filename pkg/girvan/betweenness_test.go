package girvan

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/telliott/graph-community-service/pkg/graph"
)

// accumulateAll runs the full (unsampled) estimator: one accumulation per
// node, summed into g.EdgeBet.
func accumulateAll(g *graph.Graph) {
	state := newBFSState(g.N)
	delta := make([]float64, g.N)
	g.ResetBetweenness()
	for v := 0; v < g.N; v++ {
		state.run(g, v)
		accumulateDependencies(g, state, delta)
	}
}

func TestPathGraphBetweenness(t *testing.T) {
	// Path 0-1-2-3-4-5. Edge (i, i+1) lies on 2*(i+1)*(5-i) source-target
	// pairs when every node is a source.
	g := buildGraph(t, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}})
	accumulateAll(g)

	want := []float64{10, 16, 18, 16, 10}
	for id, w := range want {
		if math.Abs(g.EdgeBet[id]-w) > 1e-9 {
			t.Errorf("EdgeBet[%d] = %v, want %v", id, g.EdgeBet[id], w)
		}
	}
}

func TestBridgeDominatesBetweenness(t *testing.T) {
	// Two triangles joined by a bridge: the bridge carries all 9 crossing
	// pairs in both directions.
	g := buildGraph(t, [][2]int{
		{0, 1}, {1, 2}, {0, 2},
		{3, 4}, {4, 5}, {3, 5},
		{2, 3},
	})
	accumulateAll(g)

	bridge, ok := g.EdgeID(2, 3)
	if !ok {
		t.Fatal("bridge edge missing")
	}
	for id := 0; id < g.M; id++ {
		if id != bridge && g.EdgeBet[id] >= g.EdgeBet[bridge] {
			t.Errorf("edge %d credit %v >= bridge credit %v", id, g.EdgeBet[id], g.EdgeBet[bridge])
		}
	}
}

// TestBetweennessMatchesGonum checks the accumulator against gonum's exact
// Brandes implementation, which likewise sums dependencies over every
// source without halving the undirected double count.
func TestBetweennessMatchesGonum(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]int
	}{
		{
			name:  "diamond",
			edges: [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}},
		},
		{
			name: "barbell",
			edges: [][2]int{
				{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
				{4, 5}, {4, 6}, {4, 7}, {5, 6}, {5, 7}, {6, 7},
				{3, 4},
			},
		},
		{
			name: "irregular",
			edges: [][2]int{
				{0, 1}, {1, 2}, {2, 3}, {3, 0}, {1, 3}, {3, 4}, {4, 5}, {2, 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, tt.edges)
			accumulateAll(g)

			ug := simple.NewUndirectedGraph()
			for _, e := range tt.edges {
				ug.SetEdge(simple.Edge{F: simple.Node(int64(e[0])), T: simple.Node(int64(e[1]))})
			}
			want := network.EdgeBetweenness(ug)

			for id := 0; id < g.M; id++ {
				u, v := g.Endpoints(id)
				key := [2]int64{int64(u), int64(v)}
				if math.Abs(g.EdgeBet[id]-want[key]) > 1e-9 {
					t.Errorf("edge {%d,%d}: got %v, want %v", u, v, g.EdgeBet[id], want[key])
				}
			}
		})
	}
}

func TestSelectMaxEdge(t *testing.T) {
	g := buildGraph(t, [][2]int{{0, 1}, {1, 2}, {2, 3}})

	g.EdgeBet[0] = 2.0
	g.EdgeBet[1] = 5.0
	g.EdgeBet[2] = 5.0

	id, ok := selectMaxEdge(g)
	if !ok || id != 1 {
		t.Errorf("selectMaxEdge = (%d, %v), want (1, true): ties break to smallest id", id, ok)
	}
}

func TestSelectMaxEdgeIgnoresCutAndZero(t *testing.T) {
	g := buildGraph(t, [][2]int{{0, 1}, {1, 2}})

	// All zero: nothing selectable.
	if _, ok := selectMaxEdge(g); ok {
		t.Error("selectMaxEdge should find nothing with all-zero credit")
	}

	// A cut edge's negative sentinel must never win.
	if err := g.CutEdge(0, 1); err != nil {
		t.Fatalf("CutEdge failed: %v", err)
	}
	if _, ok := selectMaxEdge(g); ok {
		t.Error("selectMaxEdge should ignore cut edges")
	}

	g.EdgeBet[1] = 0.5
	id, ok := selectMaxEdge(g)
	if !ok || id != 1 {
		t.Errorf("selectMaxEdge = (%d, %v), want (1, true)", id, ok)
	}
}

func TestAccumulateSkipsCutEdges(t *testing.T) {
	// Square 0-1-2-3-0 with 0-1 cut: remaining path 1-2-3-0.
	g := buildGraph(t, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	id, _ := g.EdgeID(0, 1)
	if err := g.CutEdge(id, 1); err != nil {
		t.Fatalf("CutEdge failed: %v", err)
	}
	accumulateAll(g)

	if g.EdgeBet[id] >= 0 {
		t.Errorf("cut edge credit = %v, sentinel must survive accumulation", g.EdgeBet[id])
	}
	// Path 1-2-3-0 edge betweenness: ends carry 6, the middle edge 8.
	check := []struct {
		u, v int
		want float64
	}{
		{1, 2, 6}, {2, 3, 8}, {3, 0, 6},
	}
	for _, c := range check {
		eid, _ := g.EdgeID(c.u, c.v)
		if math.Abs(g.EdgeBet[eid]-c.want) > 1e-9 {
			t.Errorf("edge {%d,%d} credit %v, want %v", c.u, c.v, g.EdgeBet[eid], c.want)
		}
	}
}
