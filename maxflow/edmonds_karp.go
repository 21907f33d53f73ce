package maxflow

import (
	"context"
	"fmt"
	"math"
)

// MaxFlow computes the maximum flow from source to sink using the
// Edmonds–Karp algorithm (BFS for shortest augmenting paths) and returns the
// total flow pushed by this call. The network is left in its residual state;
// calling MaxFlow again continues from that state.
//
// Options (nil uses defaults):
//   - Epsilon: residual capacities ≤ Epsilon treated as zero (default 1e-9)
//   - Verbose: print each augmentation via fmt.Printf
//
// Complexity: O(V · E²)
// Memory:     O(V + E)
func (nw *Network) MaxFlow(ctx context.Context, source, sink int, opts *Options) (float64, error) {
	if source < 0 || source >= len(nw.adj) || sink < 0 || sink >= len(nw.adj) {
		return 0, ErrNodeRange
	}

	eps := DefaultEpsilon
	verbose := false
	if opts != nil {
		if opts.Epsilon > 0 {
			eps = opts.Epsilon
		}
		verbose = opts.Verbose
	}

	var total float64
	parent := make([]int, len(nw.adj)) // arc used to enter each node
	for {
		bottle, err := nw.bfsAugment(ctx, source, sink, eps, parent)
		if err != nil {
			return total, err
		}
		if bottle <= eps {
			break
		}

		// Walk sink→source along parent arcs, updating residuals.
		for v := sink; v != source; {
			e := parent[v]
			nw.res[e] -= bottle
			nw.res[e^1] += bottle
			v = nw.head[e^1]
		}
		total += bottle
		if verbose {
			fmt.Printf("augmented %g (total %g)\n", bottle, total)
		}
	}

	return total, nil
}

// bfsAugment finds the shortest (fewest-arc) augmenting path from source to
// sink with residual capacity > eps on every arc, records the entering arc
// of each visited node in parent, and returns the path's bottleneck.
// A zero bottleneck means no path remains.
func (nw *Network) bfsAugment(ctx context.Context, source, sink int, eps float64, parent []int) (float64, error) {
	for i := range parent {
		parent[i] = -1
	}

	carry := make([]float64, len(nw.adj)) // bottleneck from source to node
	carry[source] = math.Inf(1)
	queue := []int{source}
	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		u := queue[0]
		queue = queue[1:]
		for _, e := range nw.adj[u] {
			v := nw.head[e]
			if v == source || parent[v] >= 0 || nw.res[e] <= eps {
				continue
			}
			parent[v] = e
			carry[v] = math.Min(carry[u], nw.res[e])
			if v == sink {
				return carry[sink], nil
			}
			queue = append(queue, v)
		}
	}

	return 0, nil
}
