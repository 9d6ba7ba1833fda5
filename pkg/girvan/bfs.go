package girvan

import (
	"github.com/telliott/graph-community-service/pkg/graph"
)

// bfsState holds everything one breadth-first search discovers about the
// shortest-path DAG rooted at a source: distances, path counts, the full
// predecessor sets, and the discovery stack the dependency accumulation
// pops in reverse. The state is allocated once and reset between sources
// so repeated searches do not churn the allocator.
type bfsState struct {
	src      int
	distance []int   // -1 means undiscovered
	parent   []int   // first-discovered predecessor
	sigma    []int64 // shortest path counts; 64-bit, these overflow 32 on dense graphs
	preds    [][]int // all shortest-path predecessors, deduplicated
	stack    []int   // discovery order = non-decreasing distance from src
	queue    []int   // FIFO scratch for the search itself
}

func newBFSState(n int) *bfsState {
	s := &bfsState{
		distance: make([]int, n),
		parent:   make([]int, n),
		sigma:    make([]int64, n),
		preds:    make([][]int, n),
		stack:    make([]int, 0, n),
		queue:    make([]int, 0, n),
	}
	s.reset()
	return s
}

// reset prepares the state for a new source, preserving capacity.
func (s *bfsState) reset() {
	for i := range s.distance {
		s.distance[i] = -1
		s.parent[i] = -1
		s.sigma[i] = 0
		s.preds[i] = s.preds[i][:0]
	}
	s.stack = s.stack[:0]
	s.queue = s.queue[:0]
}

func (s *bfsState) discovered(node int) bool {
	return s.distance[node] >= 0
}

// run performs a FIFO breadth-first search from src over the uncut edges
// of g, recording the shortest-path DAG. On return the stack holds every
// reachable node exactly once in non-decreasing distance order, sigma[v]
// counts the shortest paths from src to v, and preds[v] is the complete
// set of in-neighbors of v on the DAG.
func (s *bfsState) run(g *graph.Graph, src int) {
	s.reset()
	s.src = src
	s.distance[src] = 0
	s.sigma[src] = 1
	s.queue = append(s.queue, src)
	s.stack = append(s.stack, src)

	for head := 0; head < len(s.queue); head++ {
		u := s.queue[head]
		for idx := g.Offset[u]; idx < g.Offset[u+1]; idx++ {
			if g.IsCut(g.EdgeIDs[idx]) {
				continue
			}
			w := g.Neighbors[idx]
			if !s.discovered(w) {
				s.distance[w] = s.distance[u] + 1
				s.parent[w] = u
				s.queue = append(s.queue, w)
				s.stack = append(s.stack, w)
			}
			if s.distance[w] == s.distance[u]+1 {
				s.sigma[w] += s.sigma[u]
				s.preds[w] = appendUnique(s.preds[w], u)
			}
		}
	}
}

// appendUnique appends v unless already present. Predecessor lists are
// short, so the linear scan is cheaper than any set structure.
func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}
