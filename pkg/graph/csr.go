package graph

import (
	"fmt"
	"math"
	"sort"
)

// Graph is a sparse undirected graph in compressed-row form.
//
// Every undirected edge {u,v} is stored twice, once in u's slice and once
// in v's slice, so enumerating the neighbors of a node never requires
// scanning anyone else's slice. Both directed copies carry the same edge
// id in [0, M), and per-edge state (betweenness credit, cut markers) is
// keyed by that id.
type Graph struct {
	N int // number of nodes
	M int // number of undirected edges

	Offset    []int     // len N+1; neighbors of v live in [Offset[v], Offset[v+1])
	Neighbors []int     // len 2M
	EdgeIDs   []int     // len 2M, parallel to Neighbors
	EdgeBet   []float64 // len M; negative value marks a cut edge

	edges     [][2]int       // len M; canonical (min, max) endpoints per edge id
	edgeIndex map[[2]int]int // canonical pair -> edge id
	degree    []int
	idmap     *IDMap
}

// FromEdgeList remaps the node labels of el to contiguous ids and
// compresses it into CSR form. The edge list is consumed: its endpoint
// columns are rewritten to contiguous ids in place; its row order is left
// unchanged.
func FromEdgeList(el *EdgeList) (*Graph, error) {
	idmap, err := BuildIDMap(el)
	if err != nil {
		return nil, err
	}

	m := el.Len()
	n := idmap.Len()

	g := &Graph{
		N:         n,
		M:         m,
		Offset:    make([]int, n+1),
		EdgeBet:   make([]float64, m),
		edges:     make([][2]int, m),
		edgeIndex: make(map[[2]int]int, m),
		degree:    make([]int, n),
		idmap:     idmap,
	}

	// Register each undirected edge once under its canonical key.
	for e := 0; e < m; e++ {
		a, b := el.Nodes[ColI][e], el.Nodes[ColJ][e]
		if a > b {
			a, b = b, a
		}
		g.edges[el.ID[e]] = [2]int{a, b}
		g.edgeIndex[[2]int{a, b}] = el.ID[e]
	}

	// Duplicate every edge into two directed records sharing one id,
	// then stable-sort by source to obtain the row layout.
	doubled := NewEdgeList(2 * m)
	for e := 0; e < m; e++ {
		doubled.Nodes[ColI][e] = el.Nodes[ColI][e]
		doubled.Nodes[ColJ][e] = el.Nodes[ColJ][e]
		doubled.ID[e] = el.ID[e]

		doubled.Nodes[ColI][m+e] = el.Nodes[ColJ][e]
		doubled.Nodes[ColJ][m+e] = el.Nodes[ColI][e]
		doubled.ID[m+e] = el.ID[e]
	}
	if err := doubled.SortByColumn(ColI); err != nil {
		return nil, err
	}

	g.Neighbors = doubled.Nodes[ColJ]
	g.EdgeIDs = doubled.ID

	// Offsets: index of the first record per source node, gaps carried
	// forward so isolated ids keep an empty slice.
	prev := 0
	for rec := 0; rec < 2*m; rec++ {
		src := doubled.Nodes[ColI][rec]
		for v := prev + 1; v <= src; v++ {
			g.Offset[v] = rec
		}
		if src > prev {
			prev = src
		}
	}
	for v := prev + 1; v <= n; v++ {
		g.Offset[v] = 2 * m
	}

	for v := 0; v < n; v++ {
		g.degree[v] = g.Offset[v+1] - g.Offset[v]
	}
	return g, nil
}

// OriginalID returns the raw input label for a contiguous node id.
func (g *Graph) OriginalID(v int) int {
	return g.idmap.Original(v)
}

// Degree returns the degree of a node in the graph as built, cut edges
// included.
func (g *Graph) Degree(v int) int {
	return g.degree[v]
}

// Endpoints returns the canonical (min, max) endpoints of an edge id.
func (g *Graph) Endpoints(id int) (int, int) {
	return g.edges[id][0], g.edges[id][1]
}

// EdgeID looks up the id of the edge {a, b}.
func (g *Graph) EdgeID(a, b int) (int, bool) {
	if a > b {
		a, b = b, a
	}
	id, ok := g.edgeIndex[[2]int{a, b}]
	return id, ok
}

// HasEdge reports whether {a, b} is an edge of the graph as built.
func (g *Graph) HasEdge(a, b int) bool {
	_, ok := g.EdgeID(a, b)
	return ok
}

// IsCut reports whether an edge has been removed.
func (g *Graph) IsCut(id int) bool {
	return g.EdgeBet[id] < 0
}

// CutEdge removes an edge by overwriting its betweenness slot with the
// negated iteration number. Iterations start at 1, so the sentinel is
// always strictly negative. Readers treat a negative slot as "edge
// absent"; the CSR arrays themselves are never rewritten.
func (g *Graph) CutEdge(id, iteration int) error {
	if id < 0 || id >= g.M {
		return fmt.Errorf("edge id out of range: %d", id)
	}
	if iteration < 1 {
		return fmt.Errorf("cut iteration must be >= 1, got %d", iteration)
	}
	g.EdgeBet[id] = -float64(iteration)
	return nil
}

// CutIteration returns the iteration in which an edge was cut.
func (g *Graph) CutIteration(id int) (int, bool) {
	if !g.IsCut(id) {
		return 0, false
	}
	return int(-g.EdgeBet[id]), true
}

// NumCut returns the number of cut edges.
func (g *Graph) NumCut() int {
	cut := 0
	for id := 0; id < g.M; id++ {
		if g.IsCut(id) {
			cut++
		}
	}
	return cut
}

// ResetBetweenness zeroes the betweenness accumulator, leaving cut
// sentinels untouched.
func (g *Graph) ResetBetweenness() {
	for id := 0; id < g.M; id++ {
		if g.EdgeBet[id] >= 0 {
			g.EdgeBet[id] = 0
		}
	}
}

// RankedByDegree returns all node ids ordered by degree descending, ties
// broken by ascending id for determinism.
func (g *Graph) RankedByDegree() []int {
	ranked := make([]int, g.N)
	for v := range ranked {
		ranked[v] = v
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if g.degree[a] != g.degree[b] {
			return g.degree[a] > g.degree[b]
		}
		return a < b
	})
	return ranked
}

// SampleSources returns the ceil(rate * N) highest-degree nodes, the BFS
// sources used for betweenness estimation.
func (g *Graph) SampleSources(rate float64) ([]int, error) {
	if rate <= 0 || rate > 1 {
		return nil, fmt.Errorf("%w: sample rate must be in (0, 1], got %v", ErrInvalidInput, rate)
	}
	size := int(math.Ceil(rate * float64(g.N)))
	if size > g.N {
		size = g.N
	}
	return g.RankedByDegree()[:size], nil
}
