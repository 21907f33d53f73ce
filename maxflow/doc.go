// Package maxflow implements the Edmonds–Karp maximum-flow algorithm on a
// compact arena-style flow network.
//
// Unlike an adjacency-map graph, a Network stores arcs in flat parallel
// slices indexed by integer arc IDs, with per-node adjacency kept as slices
// of arc indices in insertion order. Every AddEdge call creates a forward
// arc e and its paired reverse arc e^1, so residual bookkeeping is a pair of
// slice writes. This layout pins iteration order everywhere: BFS visits
// arcs strictly in the order edges were added, which makes the computed flow
// (not just its value) reproducible run to run.
//
// The network survives a MaxFlow call in its residual state, so callers can
// chain phases on one network: run a flow, disable helper arcs with Disable,
// and run another flow on the remaining residual. Per-arc flow is recovered
// as Capacity(e) − Residual(e), and Reachable reports the source side of the
// minimum cut in the current residual.
//
// Capacities are float64; math.Inf(1) is a valid capacity for helper arcs.
//
// # API
//
//	nw := maxflow.NewNetwork()
//	s, t := nw.AddNode(), nw.AddNode()
//	e, _ := nw.AddEdge(s, t, 5)
//	val, err := nw.MaxFlow(context.Background(), s, t, nil)
//	flow := nw.Flow(e)
//
// Options (nil uses defaults):
//
//	Epsilon - residual capacities ≤ Epsilon are treated as exhausted (1e-9).
//	Verbose - print each augmentation's amount and running total via fmt.Printf.
//
// # Errors
//
//	ErrNodeRange - an arc endpoint is not a node of the network.
//	EdgeError    - an arc was added with negative capacity.
//
// Complexity: O(V·E²) time in the worst case, O(V+E) memory.
package maxflow
