package graph

import "errors"

// ErrInvalidInput reports malformed or empty input: a bad edge line, an
// empty graph, or algorithm parameters that cannot apply to this graph.
var ErrInvalidInput = errors.New("invalid input")
