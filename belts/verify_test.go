package belts_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planfab/planfab/belts"
)

func chainProblem() *belts.Problem {
	return &belts.Problem{
		Nodes: []belts.Node{
			{ID: "s", Role: belts.RoleSource},
			{ID: "m", Cap: capPtr(3)},
			{ID: "t", Role: belts.RoleSink},
		},
		Edges: []belts.Edge{
			{From: "s", To: "m", Lo: 1, Hi: 10},
			{From: "m", To: "t", Lo: 0, Hi: 10},
		},
	}
}

func TestVerifyAcceptsExactFlow(t *testing.T) {
	res := &belts.Result{
		Status:        belts.StatusOK,
		MaxFlowPerMin: 3,
		Flows: []belts.FlowEntry{
			{From: "s", To: "m", Flow: 3},
			{From: "m", To: "t", Flow: 3},
		},
	}
	require.Empty(t, belts.Verify(chainProblem(), res))
}

func TestVerifyRejectsLowerBoundBreach(t *testing.T) {
	res := &belts.Result{
		Status:        belts.StatusOK,
		MaxFlowPerMin: 0,
		Flows: []belts.FlowEntry{
			{From: "s", To: "m", Flow: 0}, // lo is 1
			{From: "m", To: "t", Flow: 0},
		},
	}
	fails := belts.Verify(chainProblem(), res)
	require.NotEmpty(t, fails)
	require.Contains(t, fails[0], "below lower bound")
}

func TestVerifyRejectsConservationBreach(t *testing.T) {
	res := &belts.Result{
		Status:        belts.StatusOK,
		MaxFlowPerMin: 2,
		Flows: []belts.FlowEntry{
			{From: "s", To: "m", Flow: 3},
			{From: "m", To: "t", Flow: 2},
		},
	}
	fails := belts.Verify(chainProblem(), res)
	require.NotEmpty(t, fails)
	require.Contains(t, fails[0], "conservation")
}

func TestVerifyRejectsNodeCapBreach(t *testing.T) {
	res := &belts.Result{
		Status:        belts.StatusOK,
		MaxFlowPerMin: 5,
		Flows: []belts.FlowEntry{
			{From: "s", To: "m", Flow: 5},
			{From: "m", To: "t", Flow: 5},
		},
	}
	fails := belts.Verify(chainProblem(), res)
	require.NotEmpty(t, fails)
	require.Contains(t, fails[0], "cap")
}

func TestVerifyRejectsMisreportedMaxFlow(t *testing.T) {
	res := &belts.Result{
		Status:        belts.StatusOK,
		MaxFlowPerMin: 9,
		Flows: []belts.FlowEntry{
			{From: "s", To: "m", Flow: 3},
			{From: "m", To: "t", Flow: 3},
		},
	}
	fails := belts.Verify(chainProblem(), res)
	require.NotEmpty(t, fails)
	require.Contains(t, fails[0], "max_flow_per_min")
}

func TestVerifyRejectsUnknownEdge(t *testing.T) {
	res := &belts.Result{
		Status:        belts.StatusOK,
		MaxFlowPerMin: 3,
		Flows: []belts.FlowEntry{
			{From: "s", To: "m", Flow: 3},
			{From: "m", To: "t", Flow: 3},
			{From: "t", To: "s", Flow: 1},
		},
	}
	fails := belts.Verify(chainProblem(), res)
	require.NotEmpty(t, fails)
	require.Contains(t, fails[0], "unknown edge")
}

func TestVerifyRejectsEmptyCertificate(t *testing.T) {
	res := &belts.Result{Status: belts.StatusInfeasible}
	fails := belts.Verify(chainProblem(), res)
	require.NotEmpty(t, fails)
}
