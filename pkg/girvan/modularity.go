package girvan

import (
	"github.com/telliott/graph-community-service/pkg/graph"
)

// Modularity computes Newman's modularity of a partition against the
// graph as built, cut edges included: the quality of the communities is
// judged on the original topology, not on whatever the divisive loop has
// carved away.
func Modularity(g *graph.Graph, nodeToCommunity []int) float64 {
	if g.M == 0 {
		return 0
	}

	numComms := 0
	for _, c := range nodeToCommunity {
		if c+1 > numComms {
			numComms = c + 1
		}
	}

	internal := make([]float64, numComms) // intra-community edge counts
	degTotal := make([]float64, numComms) // summed degrees per community

	for id := 0; id < g.M; id++ {
		u, v := g.Endpoints(id)
		if nodeToCommunity[u] == nodeToCommunity[v] {
			internal[nodeToCommunity[u]]++
		}
	}
	for v := 0; v < g.N; v++ {
		degTotal[nodeToCommunity[v]] += float64(g.Degree(v))
	}

	m := float64(g.M)
	q := 0.0
	for c := 0; c < numComms; c++ {
		q += internal[c]/m - (degTotal[c]/(2*m))*(degTotal[c]/(2*m))
	}
	return q
}
