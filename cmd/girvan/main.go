package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/telliott/graph-community-service/pkg/girvan"
	"github.com/telliott/graph-community-service/pkg/graph"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] <edge-list> <k> <output>

Divisive community detection: repeatedly cuts the highest-betweenness
edge until the graph splits into k communities. Betweenness is estimated
from the highest-degree nodes; -rate 1.0 uses every node as a source.

Flags:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	rate := flag.Float64("rate", 1.0, "fraction of highest-degree nodes sampled as BFS sources, in (0, 1]")
	maxIterations := flag.Int("max-iterations", 0, "cap on divisive iterations, 0 for no cap")
	logLevel := flag.String("log-level", "info", "zerolog level (trace, debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 3 {
		usage()
		os.Exit(2)
	}
	infile := flag.Arg(0)
	outfile := flag.Arg(2)

	var k int
	if _, err := fmt.Sscanf(flag.Arg(1), "%d", &k); err != nil {
		fmt.Fprintf(os.Stderr, "error: k must be an integer, got %q\n", flag.Arg(1))
		os.Exit(2)
	}

	if err := run(infile, outfile, k, *rate, *maxIterations, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, graph.ErrInvalidInput) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(infile, outfile string, k int, rate float64, maxIterations int, logLevel string) error {
	el, err := graph.ReadEdgeList(infile)
	if err != nil {
		return err
	}
	g, err := graph.FromEdgeList(el)
	if err != nil {
		return err
	}

	config := girvan.NewConfig()
	config.Set("algorithm.num_communities", k)
	config.Set("algorithm.sample_rate", rate)
	config.Set("algorithm.max_iterations", maxIterations)
	config.Set("logging.level", logLevel)

	result, err := girvan.Run(g, config, context.Background())
	if err != nil {
		return err
	}

	return g.WriteCommunities(outfile, result.NodeToCommunity)
}
