package girvan

import (
	"github.com/telliott/graph-community-service/pkg/graph"
)

// unionFind is a weighted quick-union with path compression. Union and
// find are effectively constant amortized, so labelling components is
// near-linear in nodes plus edges.
type unionFind struct {
	parent []int
	size   []int
	count  int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
		count:  n,
	}
	for i := 0; i < n; i++ {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(p int) int {
	root := p
	for root != uf.parent[root] {
		root = uf.parent[root]
	}
	// Compress the path walked.
	for p != root {
		p, uf.parent[p] = uf.parent[p], root
	}
	return root
}

func (uf *unionFind) union(p, q int) {
	rootP, rootQ := uf.find(p), uf.find(q)
	if rootP == rootQ {
		return
	}
	// Attach the smaller tree under the larger.
	if uf.size[rootP] < uf.size[rootQ] {
		rootP, rootQ = rootQ, rootP
	}
	uf.parent[rootQ] = rootP
	uf.size[rootP] += uf.size[rootQ]
	uf.count--
}

func (uf *unionFind) connected(p, q int) bool {
	return uf.find(p) == uf.find(q)
}

// labelComponents unions the endpoints of every surviving edge and
// partitions [0, N) into connected components. Community ids are assigned
// in ascending order of each component's smallest member, so the labelling
// is deterministic. Returns the member lists and the per-node assignment.
func labelComponents(g *graph.Graph) ([][]int, []int) {
	uf := newUnionFind(g.N)
	for id := 0; id < g.M; id++ {
		if g.IsCut(id) {
			continue
		}
		u, v := g.Endpoints(id)
		uf.union(u, v)
	}

	rootToComm := make(map[int]int, uf.count)
	communities := make([][]int, 0, uf.count)
	nodeToCommunity := make([]int, g.N)

	for v := 0; v < g.N; v++ {
		root := uf.find(v)
		comm, ok := rootToComm[root]
		if !ok {
			comm = len(communities)
			rootToComm[root] = comm
			communities = append(communities, nil)
		}
		communities[comm] = append(communities[comm], v)
		nodeToCommunity[v] = comm
	}
	return communities, nodeToCommunity
}
