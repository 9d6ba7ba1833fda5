package girvan

import (
	"github.com/telliott/graph-community-service/pkg/graph"
)

// accumulateDependencies back-propagates Brandes dependency scores along
// the shortest-path DAG of one finished search, crediting every DAG edge
// in g.EdgeBet. delta is caller-owned scratch of length g.N; it is zeroed
// here before use.
//
// Credits are additive across sources and no normalization is applied;
// the selector only ever compares relative magnitudes.
func accumulateDependencies(g *graph.Graph, s *bfsState, delta []float64) {
	for i := range delta {
		delta[i] = 0
	}

	// Popping the discovery stack in reverse yields non-increasing
	// distance from the source, so every node's delta is final before
	// it is propagated to its predecessors.
	for i := len(s.stack) - 1; i >= 0; i-- {
		w := s.stack[i]
		if s.sigma[w] == 0 {
			continue
		}
		for _, u := range s.preds[w] {
			credit := float64(s.sigma[u]) / float64(s.sigma[w]) * (1 + delta[w])
			delta[u] += credit
			if id, ok := g.EdgeID(u, w); ok && !g.IsCut(id) {
				g.EdgeBet[id] += credit
			}
		}
	}
}

// selectMaxEdge returns the uncut edge with the largest strictly positive
// betweenness, ties broken by smallest edge id. The second return is
// false when no positive entry remains, which ends the outer loop: cut
// edges carry negative sentinels and zero-credit edges cannot split
// anything.
func selectMaxEdge(g *graph.Graph) (int, bool) {
	best := -1
	bestBet := 0.0
	for id := 0; id < g.M; id++ {
		if g.EdgeBet[id] > bestBet {
			best = id
			bestBet = g.EdgeBet[id]
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
