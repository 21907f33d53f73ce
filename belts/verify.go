package belts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Verifier tolerances: bound and cap checks get 1e-6 of absolute headroom;
// balance comparisons accept 1e-6 relative or 1e-9 absolute error.
const (
	verifyAbsTol = 1e-9
	verifyRelTol = 1e-6
	verifySlack  = 1e-6
)

func approxEq(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, verifyAbsTol, verifyRelTol)
}

// Verify independently re-checks a solver Result against its Problem using
// only the constraint definitions. It returns one diagnostic per violation;
// an empty slice means the result passes.
func Verify(p *Problem, res *Result) []string {
	if err := p.Validate(); err != nil {
		return []string{fmt.Sprintf("input invalid: %v", err)}
	}

	switch res.Status {
	case StatusOK:
		return verifyOK(p, res)
	case StatusInfeasible:
		return verifyInfeasible(res)
	default:
		return []string{fmt.Sprintf("unknown status %q", res.Status)}
	}
}

func verifyOK(p *Problem, res *Result) []string {
	var fails []string

	type key struct{ from, to string }
	known := make(map[key]bool, len(p.Edges))
	for _, e := range p.Edges {
		known[key{e.From, e.To}] = true
	}
	flowOn := make(map[key]float64, len(res.Flows))
	for _, f := range res.Flows {
		k := key{f.From, f.To}
		if !known[k] {
			fails = append(fails, fmt.Sprintf("flow reported on unknown edge %s→%s", f.From, f.To))
			continue
		}
		flowOn[k] += f.Flow
	}

	// Bounds per input edge; a missing entry counts as zero flow.
	inflow := make(map[string]float64)
	outflow := make(map[string]float64)
	for i, e := range p.Edges {
		flow := flowOn[key{e.From, e.To}]
		if flow < e.Lo-verifySlack {
			fails = append(fails, fmt.Sprintf("edge %d %s→%s flow %g below lower bound %g", i, e.From, e.To, flow, e.Lo))
		}
		if flow > e.Hi+verifySlack {
			fails = append(fails, fmt.Sprintf("edge %d %s→%s flow %g above upper bound %g", i, e.From, e.To, flow, e.Hi))
		}
		outflow[e.From] += flow
		inflow[e.To] += flow
	}

	sinkInflow := 0.0
	for _, n := range p.Nodes {
		in, out := inflow[n.ID], outflow[n.ID]
		switch n.Role {
		case RoleSink:
			sinkInflow += in
		case RoleSource:
			// Sources originate flow freely.
		default:
			if !approxEq(in, out) {
				fails = append(fails, fmt.Sprintf("node %q conservation violated: inflow %g, outflow %g", n.ID, in, out))
			}
		}
		if n.Cap != nil {
			throughput := math.Max(in, out)
			if throughput-*n.Cap > verifySlack {
				fails = append(fails, fmt.Sprintf("node %q throughput %g exceeds cap %g", n.ID, throughput, *n.Cap))
			}
		}
	}

	if !approxEq(res.MaxFlowPerMin, sinkInflow) {
		fails = append(fails, fmt.Sprintf("max_flow_per_min reported %g but sink inflow is %g", res.MaxFlowPerMin, sinkInflow))
	}

	return fails
}

func verifyInfeasible(res *Result) []string {
	var fails []string
	if res.Deficit == nil {
		return []string{"infeasible result missing deficit"}
	}
	if res.Deficit.DemandBalance <= verifyAbsTol {
		fails = append(fails, fmt.Sprintf("infeasible result with non-positive demand_balance %g", res.Deficit.DemandBalance))
	}
	if res.CutReachable == nil {
		fails = append(fails, "infeasible result missing cut_reachable")
	}

	return fails
}
