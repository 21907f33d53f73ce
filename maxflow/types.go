package maxflow

import (
	"errors"
	"fmt"
)

// ErrNodeRange is returned when an arc endpoint is not a node of the network.
var ErrNodeRange = errors.New("maxflow: node index out of range")

// EdgeError is returned when an arc is added with a negative capacity.
type EdgeError struct {
	From, To int
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("maxflow: negative capacity on arc %d→%d: %g", e.From, e.To, e.Cap)
}

// DefaultEpsilon is the residual threshold below which an arc counts as
// exhausted.
const DefaultEpsilon = 1e-9

// Options configures MaxFlow.
//   - Epsilon: residual capacities ≤ Epsilon are treated as zero (default 1e-9).
//   - Verbose: if true, print each augmentation's amount and running total via fmt.Printf.
type Options struct {
	Epsilon float64
	Verbose bool
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}
