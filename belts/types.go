package belts

import (
	"encoding/json"
	"errors"
)

// Sentinel errors for problem validation.
var (
	// ErrDuplicateNode indicates two node declarations sharing an ID.
	ErrDuplicateNode = errors.New("belts: duplicate node id")
	// ErrUnknownNode indicates an edge endpoint with no node declaration.
	ErrUnknownNode = errors.New("belts: edge references unknown node")
	// ErrBadRole indicates a role other than source, sink, or internal.
	ErrBadRole = errors.New("belts: node role must be source, sink, or internal")
	// ErrBadBounds indicates lo < 0 or hi < lo on an edge.
	ErrBadBounds = errors.New("belts: edge bounds must satisfy 0 ≤ lo ≤ hi")
	// ErrBadCap indicates a negative node throughput cap.
	ErrBadCap = errors.New("belts: node caps must be non-negative")
	// ErrNoSink indicates a problem without a sink node.
	ErrNoSink = errors.New("belts: at least one sink node is required")
)

// Tol is the absolute numeric tolerance shared by the solver passes.
const Tol = 1e-9

// saturationTol marks an arc as tight when its residual is below this.
const saturationTol = 1e-7

// Result statuses.
const (
	StatusOK         = "ok"
	StatusInfeasible = "infeasible"
)

// Node roles.
const (
	RoleSource   = "source"
	RoleSink     = "sink"
	RoleInternal = "internal"
)

// Node is one conveyor junction. A nil Cap means unlimited throughput.
type Node struct {
	ID   string   `json:"id"`
	Role string   `json:"role"`
	Cap  *float64 `json:"cap"`
}

// Edge is a directed belt segment with throughput bounds.
type Edge struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Lo   float64 `json:"lo"`
	Hi   float64 `json:"hi"`
}

// Problem is a parsed bounded-flow instance. Edge order is significant: the
// solver iterates it everywhere and reported flows preserve it.
type Problem struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// FlowEntry reports the flow on one original edge.
type FlowEntry struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Flow float64 `json:"flow"`
}

// TightEdge names a saturated edge in an infeasibility certificate.
type TightEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Deficit quantifies why the lower bounds cannot be met.
type Deficit struct {
	// DemandBalance is the shortfall Σ excess⁺ − maxflow(S*→T*).
	DemandBalance float64 `json:"demand_balance"`
	// TightNodes lists capped nodes saturated on the reachable cut side.
	TightNodes []string `json:"tight_nodes"`
	// TightEdges lists saturated edges crossing the cut, in input order.
	TightEdges []TightEdge `json:"tight_edges"`
}

// Result is the solver's structured output: an "ok" flow assignment or an
// "infeasible" certificate. MarshalJSON emits only the active shape.
type Result struct {
	Status string `json:"status"`

	MaxFlowPerMin float64     `json:"max_flow_per_min"`
	Flows         []FlowEntry `json:"flows"`

	CutReachable []string `json:"cut_reachable"`
	Deficit      *Deficit `json:"deficit"`
}

// MarshalJSON renders the two document shapes of the output contract.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Status == StatusOK {
		flows := r.Flows
		if flows == nil {
			flows = []FlowEntry{}
		}

		return json.Marshal(struct {
			Status  string      `json:"status"`
			MaxFlow float64     `json:"max_flow_per_min"`
			Flows   []FlowEntry `json:"flows"`
		}{r.Status, r.MaxFlowPerMin, flows})
	}

	reachable := r.CutReachable
	if reachable == nil {
		reachable = []string{}
	}

	return json.Marshal(struct {
		Status       string   `json:"status"`
		CutReachable []string `json:"cut_reachable"`
		Deficit      *Deficit `json:"deficit"`
	}{r.Status, reachable, r.Deficit})
}
