package factory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Verifier tolerances: comparisons accept 1e-6 relative or 1e-9 absolute
// error; constraint slacks get 1e-6 of absolute headroom.
const (
	verifyAbsTol = 1e-9
	verifyRelTol = 1e-6
	verifySlack  = 1e-6
)

func approxEq(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, verifyAbsTol, verifyRelTol)
}

// Verify independently re-checks a solver Result against its Problem using
// only the mathematical constraint definitions. It returns one diagnostic
// per violation; an empty slice means the result passes.
func Verify(p *Problem, res *Result) []string {
	if err := p.Validate(); err != nil {
		return []string{fmt.Sprintf("input invalid: %v", err)}
	}

	m := buildModel(p)
	switch res.Status {
	case StatusOK:
		return m.verifyOK(res)
	case StatusInfeasible:
		return m.verifyInfeasible(res)
	default:
		return []string{fmt.Sprintf("unknown status %q", res.Status)}
	}
}

func (m *model) verifyOK(res *Result) []string {
	var fails []string

	rates := make([]float64, len(m.recipes))
	for i, name := range m.recipes {
		v := res.PerRecipeCraftsPerMin[name]
		if v < -verifyAbsTol {
			fails = append(fails, fmt.Sprintf("per_recipe_crafts_per_min[%q] negative: %g", name, v))
			continue
		}
		rates[i] = v
	}
	for _, name := range sortedKeys(res.PerRecipeCraftsPerMin) {
		if _, ok := m.ridx[name]; !ok {
			fails = append(fails, fmt.Sprintf("per_recipe_crafts_per_min names unknown recipe %q", name))
		}
	}

	// Conservation: target at the requested rate, intermediates at zero,
	// raws net-consumed within their caps.
	for _, item := range m.items {
		net := 0.0
		for i, name := range m.recipes {
			r := m.p.Recipes[name]
			net += r.Out[item]*m.prodMult[i]*rates[i] - r.In[item]*rates[i]
		}

		switch {
		case item == m.p.Target.Item:
			if !approxEq(net, m.p.Target.RatePerMin) {
				fails = append(fails, fmt.Sprintf("target %q balance %g != requested %g", item, net, m.p.Target.RatePerMin))
			}
		case m.isRaw[item]:
			consumption := -net
			if consumption < -verifySlack {
				fails = append(fails, fmt.Sprintf("raw %q net-produced: %g", item, -consumption))
			}
			if supplyCap, ok := m.p.RawSupplyPerMin[item]; ok && consumption-supplyCap > verifySlack {
				fails = append(fails, fmt.Sprintf("raw %q consumption %g exceeds cap %g", item, consumption, supplyCap))
			}
			if reported, ok := res.RawConsumptionPerMin[item]; ok && !approxEq(reported, math.Max(consumption, 0)) {
				fails = append(fails, fmt.Sprintf("raw_consumption_per_min[%q] reported %g, computed %g", item, reported, consumption))
			}
		default:
			if !approxEq(net, 0) {
				fails = append(fails, fmt.Sprintf("intermediate %q not balanced: net %g", item, net))
			}
		}
	}

	// Machine utilization within caps, and reported whole-machine counts
	// able to realize the rates.
	for _, class := range m.classes {
		usage := 0.0
		for i, name := range m.recipes {
			if m.p.Recipes[name].Machine != class {
				continue
			}
			if m.eff[i] > 0 {
				usage += rates[i] / m.eff[i]
			} else if rates[i] > verifyAbsTol {
				fails = append(fails, fmt.Sprintf("recipe %q runs at %g with zero effective rate", name, rates[i]))
			}
		}
		if mc := m.p.Machines[class]; mc.MaxMachines != nil && usage-float64(*mc.MaxMachines) > verifySlack {
			fails = append(fails, fmt.Sprintf("machine class %q usage %g exceeds cap %d", class, usage, *mc.MaxMachines))
		}
		if count, ok := res.PerMachineCounts[class]; ok {
			if float64(count) < usage-verifySlack {
				fails = append(fails, fmt.Sprintf("per_machine_counts[%q] = %d cannot realize usage %g", class, count, usage))
			}
		} else if usage > verifySlack {
			fails = append(fails, fmt.Sprintf("per_machine_counts missing class %q with usage %g", class, usage))
		}
	}

	return fails
}

func (m *model) verifyInfeasible(res *Result) []string {
	var fails []string
	if res.MaxFeasibleTarget < -verifyAbsTol {
		fails = append(fails, fmt.Sprintf("max_feasible_target negative: %g", res.MaxFeasibleTarget))
	}
	if res.MaxFeasibleTarget-m.p.Target.RatePerMin > verifySlack {
		fails = append(fails, fmt.Sprintf("max_feasible_target %g exceeds the requested rate %g yet status is infeasible",
			res.MaxFeasibleTarget, m.p.Target.RatePerMin))
	}

	return fails
}
