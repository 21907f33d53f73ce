package belts

import (
	"context"
	"math"
	"sort"

	"github.com/planfab/planfab/maxflow"
)

// network is the transformed max-flow instance built from a Problem, with
// the bookkeeping needed to link transformed arcs back to the original
// graph. in[i]/out[i] are the transformed endpoints of problem node i (equal
// unless the node is split), edgeArc[i] is the arc carrying original edge i.
type network struct {
	nw *maxflow.Network

	in, out []int
	capArc  []int // arc in[i]→out[i] for capped nodes, -1 otherwise
	edgeArc []int

	preSource, postSink    int
	superSource, superSink int
	circArc                int
	helperArcs             []int // excess arcs, retired before phase 2

	totalExcess float64
}

// buildNetwork applies node-splitting, lower-bound elimination, and the
// super-source/super-sink construction to a validated Problem.
func buildNetwork(p *Problem) (*network, error) {
	t := &network{
		nw:      maxflow.NewNetwork(),
		in:      make([]int, len(p.Nodes)),
		out:     make([]int, len(p.Nodes)),
		capArc:  make([]int, len(p.Nodes)),
		edgeArc: make([]int, len(p.Edges)),
	}
	inf := math.Inf(1)

	idx := make(map[string]int, len(p.Nodes))
	for i, n := range p.Nodes {
		idx[n.ID] = i
		t.in[i] = t.nw.AddNode()
		t.out[i] = t.in[i]
		t.capArc[i] = -1
		if n.Cap != nil {
			t.out[i] = t.nw.AddNode()
			arc, err := t.nw.AddEdge(t.in[i], t.out[i], *n.Cap)
			if err != nil {
				return nil, err
			}
			t.capArc[i] = arc
		}
	}

	// Sources are fed through a pre-source, sinks collapse into a
	// post-sink; both arcs are unbounded so only the network constrains.
	t.preSource = t.nw.AddNode()
	t.postSink = t.nw.AddNode()
	for i, n := range p.Nodes {
		switch n.Role {
		case RoleSource:
			if _, err := t.nw.AddEdge(t.preSource, t.in[i], inf); err != nil {
				return nil, err
			}
		case RoleSink:
			if _, err := t.nw.AddEdge(t.out[i], t.postSink, inf); err != nil {
				return nil, err
			}
		}
	}

	// Lower-bound elimination: capacity hi−lo, excess credited downstream.
	excess := make([]float64, t.nw.NumNodes())
	for i, e := range p.Edges {
		u, v := t.out[idx[e.From]], t.in[idx[e.To]]
		arc, err := t.nw.AddEdge(u, v, e.Hi-e.Lo)
		if err != nil {
			return nil, err
		}
		t.edgeArc[i] = arc
		excess[v] += e.Lo
		excess[u] -= e.Lo
	}

	// Close the circulation so mandatory flow can return to the sources.
	circ, err := t.nw.AddEdge(t.postSink, t.preSource, inf)
	if err != nil {
		return nil, err
	}
	t.circArc = circ

	t.superSource = t.nw.AddNode()
	t.superSink = t.nw.AddNode()
	for w, x := range excess {
		switch {
		case x > Tol:
			arc, err := t.nw.AddEdge(t.superSource, w, x)
			if err != nil {
				return nil, err
			}
			t.helperArcs = append(t.helperArcs, arc)
			t.totalExcess += x
		case x < -Tol:
			arc, err := t.nw.AddEdge(w, t.superSink, -x)
			if err != nil {
				return nil, err
			}
			t.helperArcs = append(t.helperArcs, arc)
		}
	}

	return t, nil
}

// Solve computes the maximum feasible sink throughput of p, or an
// infeasibility certificate when the edge lower bounds cannot be met.
func Solve(ctx context.Context, p *Problem) (*Result, error) {
	t, err := buildNetwork(p)
	if err != nil {
		return nil, err
	}

	// Feasibility pass: lower bounds hold iff every excess arc saturates.
	feasVal, err := t.nw.MaxFlow(ctx, t.superSource, t.superSink, nil)
	if err != nil {
		return nil, err
	}
	if t.totalExcess-feasVal > saturationTol {
		return t.certificate(p, feasVal), nil
	}

	// The base circulation already delivers the mandatory flow; record how
	// much of it reaches the sink before augmenting further.
	isSink := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		if n.Role == RoleSink {
			isSink[n.ID] = true
		}
	}
	baseInto := 0.0
	for i, e := range p.Edges {
		if isSink[e.To] {
			baseInto += e.Lo + t.nw.Flow(t.edgeArc[i])
		}
	}

	// Maximization pass on the true residual: helper arcs retired, phase-1
	// flow free to reroute down to the lower bounds.
	t.nw.Disable(t.circArc)
	for _, arc := range t.helperArcs {
		t.nw.Disable(arc)
	}
	addVal, err := t.nw.MaxFlow(ctx, t.preSource, t.postSink, nil)
	if err != nil {
		return nil, err
	}

	flows := make([]FlowEntry, len(p.Edges))
	for i, e := range p.Edges {
		flows[i] = FlowEntry{From: e.From, To: e.To, Flow: e.Lo + t.nw.Flow(t.edgeArc[i])}
	}

	return &Result{
		Status:        StatusOK,
		MaxFlowPerMin: baseInto + addVal,
		Flows:         flows,
	}, nil
}

// certificate derives the infeasibility report from the phase-1 residual:
// the reachable side of the minimum cut, the shortfall, and the saturated
// nodes and edges holding it back.
func (t *network) certificate(p *Problem, feasVal float64) *Result {
	reachable := t.nw.Reachable(t.superSource, maxflow.DefaultEpsilon)

	var cut []string
	for i, n := range p.Nodes {
		if reachable[t.in[i]] || reachable[t.out[i]] {
			cut = append(cut, n.ID)
		}
	}
	sort.Strings(cut)

	var tightNodes []string
	for i, n := range p.Nodes {
		if t.capArc[i] >= 0 && t.nw.Residual(t.capArc[i]) <= saturationTol && reachable[t.in[i]] {
			tightNodes = append(tightNodes, n.ID)
		}
	}
	sort.Strings(tightNodes)

	idx := make(map[string]int, len(p.Nodes))
	for i, n := range p.Nodes {
		idx[n.ID] = i
	}
	tightEdges := []TightEdge{}
	for i, e := range p.Edges {
		u, v := t.out[idx[e.From]], t.in[idx[e.To]]
		if reachable[u] && !reachable[v] && t.nw.Residual(t.edgeArc[i]) <= saturationTol {
			tightEdges = append(tightEdges, TightEdge{From: e.From, To: e.To})
		}
	}

	if tightNodes == nil {
		tightNodes = []string{}
	}
	if cut == nil {
		cut = []string{}
	}

	return &Result{
		Status:       StatusInfeasible,
		CutReachable: cut,
		Deficit: &Deficit{
			DemandBalance: math.Max(0, t.totalExcess-feasVal),
			TightNodes:    tightNodes,
			TightEdges:    tightEdges,
		},
	}
}
