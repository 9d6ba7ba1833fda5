package girvan

import (
	"testing"

	"github.com/telliott/graph-community-service/pkg/graph"
)

// buildGraph compresses raw edges into a graph for tests.
func buildGraph(t *testing.T, edges [][2]int) *graph.Graph {
	t.Helper()
	el := graph.NewEdgeList(len(edges))
	for e, pair := range edges {
		el.Nodes[graph.ColI][e] = pair[0]
		el.Nodes[graph.ColJ][e] = pair[1]
	}
	g, err := graph.FromEdgeList(el)
	if err != nil {
		t.Fatalf("FromEdgeList failed: %v", err)
	}
	return g
}

func TestBFSDistancesAndSigma(t *testing.T) {
	// Diamond: 0-1, 0-2, 1-3, 2-3. Two shortest paths from 0 to 3.
	g := buildGraph(t, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}})

	state := newBFSState(g.N)
	state.run(g, 0)

	wantDist := []int{0, 1, 1, 2}
	wantSigma := []int64{1, 1, 1, 2}
	for v := range wantDist {
		if state.distance[v] != wantDist[v] {
			t.Errorf("distance[%d] = %d, want %d", v, state.distance[v], wantDist[v])
		}
		if state.sigma[v] != wantSigma[v] {
			t.Errorf("sigma[%d] = %d, want %d", v, state.sigma[v], wantSigma[v])
		}
	}

	// Predecessors of 3 are exactly its DAG in-neighbors.
	if len(state.preds[3]) != 2 {
		t.Fatalf("preds[3] = %v, want two entries", state.preds[3])
	}
	seen := map[int]bool{state.preds[3][0]: true, state.preds[3][1]: true}
	if !seen[1] || !seen[2] {
		t.Errorf("preds[3] = %v, want {1, 2}", state.preds[3])
	}
}

func TestBFSStackOrder(t *testing.T) {
	g := buildGraph(t, [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 4}})

	state := newBFSState(g.N)
	state.run(g, 0)

	if len(state.stack) != g.N {
		t.Fatalf("stack holds %d nodes, want %d", len(state.stack), g.N)
	}
	seen := make(map[int]bool)
	for i, v := range state.stack {
		if seen[v] {
			t.Errorf("node %d appears twice in stack", v)
		}
		seen[v] = true
		if i > 0 && state.distance[v] < state.distance[state.stack[i-1]] {
			t.Errorf("stack not in non-decreasing distance order at %d", i)
		}
	}
}

func TestBFSUnreachable(t *testing.T) {
	// Two components; search from the first must not discover the second.
	g := buildGraph(t, [][2]int{{0, 1}, {2, 3}})

	state := newBFSState(g.N)
	state.run(g, 0)

	if state.distance[2] != -1 || state.distance[3] != -1 {
		t.Errorf("unreachable nodes discovered: distances %d, %d", state.distance[2], state.distance[3])
	}
	if state.sigma[2] != 0 {
		t.Errorf("sigma[2] = %d, want 0", state.sigma[2])
	}
	if len(state.stack) != 2 {
		t.Errorf("stack holds %d nodes, want 2", len(state.stack))
	}
}

func TestBFSSkipsCutEdges(t *testing.T) {
	// Triangle with the direct 0-1 edge cut: distance detours through 2.
	g := buildGraph(t, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	id, ok := g.EdgeID(0, 1)
	if !ok {
		t.Fatal("edge {0,1} missing")
	}
	if err := g.CutEdge(id, 1); err != nil {
		t.Fatalf("CutEdge failed: %v", err)
	}

	state := newBFSState(g.N)
	state.run(g, 0)

	if state.distance[1] != 2 {
		t.Errorf("distance[1] = %d with cut direct edge, want 2", state.distance[1])
	}
	if state.parent[1] != 2 {
		t.Errorf("parent[1] = %d, want 2", state.parent[1])
	}
}

func TestBFSStateReuse(t *testing.T) {
	g := buildGraph(t, [][2]int{{0, 1}, {1, 2}})

	state := newBFSState(g.N)
	state.run(g, 0)
	first := append([]int(nil), state.distance...)

	state.run(g, 2)
	if state.distance[0] != 2 || state.distance[2] != 0 {
		t.Errorf("second run distances wrong: %v", state.distance)
	}

	state.run(g, 0)
	for v, want := range first {
		if state.distance[v] != want {
			t.Errorf("rerun from 0: distance[%d] = %d, want %d", v, state.distance[v], want)
		}
	}
}
