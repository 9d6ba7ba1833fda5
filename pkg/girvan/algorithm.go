package girvan

import (
	"context"
	"fmt"
	"time"

	"github.com/telliott/graph-community-service/pkg/graph"
)

// Result represents the algorithm output
type Result struct {
	Communities     [][]int         `json:"communities"`       // contiguous node ids per community
	NodeToCommunity []int           `json:"node_to_community"` // nodeToComm[i] = community ID of node i
	NumCommunities  int             `json:"num_communities"`
	Modularity      float64         `json:"modularity"`
	Unsatisfiable   bool            `json:"unsatisfiable"` // stopped before reaching k: no cuttable edge left, or the iteration cap was hit
	Iterations      []IterationInfo `json:"iterations"`
	Statistics      Statistics      `json:"statistics"`
}

// IterationInfo records one pass of the divisive loop
type IterationInfo struct {
	Iteration     int     `json:"iteration"`
	CutEdgeID     int     `json:"cut_edge_id"`
	CutEdge       [2]int  `json:"cut_edge"` // original labels
	Betweenness   float64 `json:"betweenness"`
	NumComponents int     `json:"num_components"`
	RuntimeMS     int64   `json:"runtime_ms"`
}

// Statistics contains algorithm performance metrics
type Statistics struct {
	TotalIterations int   `json:"total_iterations"`
	EdgesCut        int   `json:"edges_cut"`
	SampledSources  int   `json:"sampled_sources"`
	RuntimeMS       int64 `json:"runtime_ms"`
}

// Run divisively clusters g into k communities with the Girvan-Newman
// algorithm. Each iteration estimates edge betweenness from the sampled
// highest-degree sources, cuts the top edge, and relabels the surviving
// components; the loop stops once at least k components exist or no edge
// with positive credit remains.
//
// Betweenness is recomputed from scratch every iteration: removing one
// edge can reshape shortest paths anywhere, so credit cached from a
// previous topology is unsafe. Sampling keeps the per-iteration cost
// bounded instead.
func Run(g *graph.Graph, config *Config, ctx context.Context) (*Result, error) {
	startTime := time.Now()
	logger := config.CreateLogger()

	k := config.NumCommunities()
	if g == nil || g.N == 0 {
		return nil, fmt.Errorf("%w: empty graph", graph.ErrInvalidInput)
	}
	if k < 1 || k > g.N {
		return nil, fmt.Errorf("%w: k must be in [1, %d], got %d", graph.ErrInvalidInput, g.N, k)
	}

	sources, err := g.SampleSources(config.SampleRate())
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("nodes", g.N).
		Int("edges", g.M).
		Int("k", k).
		Float64("sample_rate", config.SampleRate()).
		Int("sources", len(sources)).
		Msg("Starting Girvan-Newman")

	result := &Result{
		Iterations: make([]IterationInfo, 0),
		Statistics: Statistics{SampledSources: len(sources)},
	}

	state := newBFSState(g.N)
	delta := make([]float64, g.N)

	// The initial graph may already have enough components.
	communities, nodeToComm := labelComponents(g)

	maxIterations := config.MaxIterations()
	iteration := 0
	for len(communities) < k {
		if maxIterations > 0 && iteration >= maxIterations {
			logger.Warn().Int("iteration", iteration).Msg("Iteration cap reached")
			result.Unsatisfiable = true
			break
		}
		iteration++
		iterStart := time.Now()

		g.ResetBetweenness()
		for _, src := range sources {
			state.run(g, src)
			accumulateDependencies(g, state, delta)
		}

		id, ok := selectMaxEdge(g)
		if !ok {
			// Already split as far as sampled betweenness can see.
			logger.Warn().
				Int("components", len(communities)).
				Int("k", k).
				Msg("No positive-betweenness edge remains, returning best partition")
			result.Unsatisfiable = true
			break
		}

		bet := g.EdgeBet[id]
		if err := g.CutEdge(id, iteration); err != nil {
			return nil, fmt.Errorf("cut failed at iteration %d: %w", iteration, err)
		}
		communities, nodeToComm = labelComponents(g)

		u, v := g.Endpoints(id)
		info := IterationInfo{
			Iteration:     iteration,
			CutEdgeID:     id,
			CutEdge:       [2]int{g.OriginalID(u), g.OriginalID(v)},
			Betweenness:   bet,
			NumComponents: len(communities),
			RuntimeMS:     time.Since(iterStart).Milliseconds(),
		}
		result.Iterations = append(result.Iterations, info)

		if interval := config.ProgressInterval(); config.EnableProgress() && interval > 0 && iteration%interval == 0 {
			logger.Info().
				Int("iteration", iteration).
				Int("components", len(communities)).
				Float64("betweenness", bet).
				Msg("Divisive loop progress")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	result.Communities = communities
	result.NodeToCommunity = nodeToComm
	result.NumCommunities = len(communities)
	result.Modularity = Modularity(g, nodeToComm)
	result.Statistics.TotalIterations = iteration
	result.Statistics.EdgesCut = len(result.Iterations)
	result.Statistics.RuntimeMS = time.Since(startTime).Milliseconds()

	logger.Info().
		Int("communities", result.NumCommunities).
		Int("edges_cut", result.Statistics.EdgesCut).
		Float64("modularity", result.Modularity).
		Int64("runtime_ms", result.Statistics.RuntimeMS).
		Msg("Girvan-Newman completed")

	return result, nil
}
