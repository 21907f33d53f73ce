// Package belts computes the maximum feasible throughput of a conveyor
// network with per-edge lower and upper bounds and per-node throughput caps.
//
// A Problem is a directed graph: nodes tagged source/sink/internal, each
// optionally capped, and edges (u→v, lo, hi) with 0 ≤ lo ≤ hi. The graph may
// be cyclic. Solve reduces the bounded-flow question to plain max flow on a
// transformed network:
//
//  1. Node-splitting: every capped node v becomes v_in→v_out with an arc of
//     capacity cap(v); edges into v retarget to v_in, edges out of v leave
//     from v_out.
//  2. Lower-bound elimination: edge (u→v, lo, hi) becomes an arc of capacity
//     hi−lo, crediting lo of excess to v and debiting lo from u.
//  3. A super-source feeds every positive-excess node and every
//     negative-excess node drains to a super-sink, with an infinite
//     circulation arc from the sink side back to a pre-source that feeds all
//     source nodes.
//
// Lower bounds are satisfiable exactly when the super-source/super-sink max
// flow saturates all excess arcs. If they are not, Solve reports the
// reachable side of the minimum cut plus the saturated ("tight") nodes and
// edges as an infeasibility certificate. Otherwise the helper arcs are
// retired and a second max-flow pass from the pre-source to the sink runs on
// the remaining residual — free to reroute the feasibility flow down to the
// lower bounds — and per-edge flows are mapped back by adding lo.
//
// Both passes use the Edmonds–Karp solver from planfab/maxflow, so the
// computed flows follow input edge order deterministically.
//
// Verify independently re-checks a Result against its Problem: bounds,
// conservation at non-source/non-sink nodes, node caps, and the reported
// maximum against the sink's inflow.
package belts
