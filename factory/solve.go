package factory

import (
	"errors"
	"math"

	"github.com/planfab/planfab/linprog"
)

// bindingTol marks an inequality row as a bottleneck when its slack is below
// this threshold.
const bindingTol = 1e-7

// Solve plans a minimum-machine schedule for the requested target rate.
//
// Phase 1 checks feasibility with a zero objective. When feasible, phase 2
// re-solves the same constraint set minimizing total machines Σ x_r/eff_r;
// if that re-solve fails unexpectedly the phase-1 point is reported instead.
// When phase 1 is infeasible the target equality is relaxed to a free
// variable t which is maximized, and the result reports the achievable
// maximum with bottleneck hints read off the binding inequality rows.
//
// Solver failures other than infeasibility (unbounded, singular basis) are
// returned as errors; the caller should treat them as internal faults.
func Solve(p *Problem) (*Result, error) {
	m := buildModel(p)

	feas, _, err := m.lpFor(phaseFeasible)
	if err != nil {
		return nil, err
	}
	sol, err := linprog.Solve(feas)
	if err != nil {
		if errors.Is(err, linprog.ErrInfeasible) {
			return m.solveMaxTarget()
		}

		return nil, err
	}

	opt, _, err := m.lpFor(phaseMinimize)
	if err != nil {
		return nil, err
	}
	if optSol, err := linprog.Solve(opt); err == nil {
		sol = optSol
	}

	return m.extract(sol.X), nil
}

// solveMaxTarget runs the infeasibility fallback: maximize the achievable
// target rate and name the binding resources.
func (m *model) solveMaxTarget() (*Result, error) {
	lp, labels, err := m.lpFor(phaseMaxTarget)
	if err != nil {
		return nil, err
	}
	sol, err := linprog.Solve(lp)
	if err != nil {
		// Not even a zero rate is producible under the constraint set.
		return &Result{Status: StatusInfeasible, Bottlenecks: []string{}}, nil
	}

	maxT := sol.X[len(m.recipes)]
	if maxT < Tol {
		maxT = 0
	}

	return &Result{
		Status:            StatusInfeasible,
		MaxFeasibleTarget: maxT,
		Bottlenecks:       m.bottlenecks(labels, sol.Slack),
	}, nil
}

// bottlenecks converts binding labeled rows into human-readable hints,
// deduplicated in first-mention order.
func (m *model) bottlenecks(labels []rowLabel, slack []float64) []string {
	hints := []string{}
	seen := make(map[string]bool)
	for i, label := range labels {
		if label.kind == rowPlain || slack[i] > bindingTol {
			continue
		}
		var hint string
		switch label.kind {
		case rowRawCap:
			hint = label.name + " supply"
		case rowMachineCap:
			hint = label.name + " cap"
		}
		if !seen[hint] {
			seen[hint] = true
			hints = append(hints, hint)
		}
	}

	return hints
}

// extract builds the "ok" result from a solved rate vector.
func (m *model) extract(x []float64) *Result {
	res := &Result{
		Status:                StatusOK,
		PerRecipeCraftsPerMin: make(map[string]float64),
		PerMachineCounts:      make(map[string]int),
		RawConsumptionPerMin:  make(map[string]float64),
	}

	rates := make([]float64, len(m.recipes))
	for i, name := range m.recipes {
		v := x[i]
		if v < Tol {
			v = 0
		}
		rates[i] = v
		if v > 0 {
			res.PerRecipeCraftsPerMin[name] = v
		}
	}

	for _, class := range m.classes {
		usage := 0.0
		for i, name := range m.recipes {
			if m.p.Recipes[name].Machine == class && m.eff[i] > 0 {
				usage += rates[i] / m.eff[i]
			}
		}
		if usage > Tol {
			res.PerMachineCounts[class] = int(math.Ceil(usage - Tol))
		}
	}

	for _, item := range m.items {
		if !m.isRaw[item] {
			continue
		}
		consumption := 0.0
		for i, name := range m.recipes {
			r := m.p.Recipes[name]
			consumption += r.In[item] * rates[i]
			consumption -= r.Out[item] * m.prodMult[i] * rates[i]
		}
		if consumption < 0 && consumption > -Tol {
			consumption = 0
		}
		res.RawConsumptionPerMin[item] = consumption
	}

	return res
}
