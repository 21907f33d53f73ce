package factory

import (
	"github.com/planfab/planfab/linprog"
)

// phase selects which LP variant lpFor assembles.
type phase int

const (
	phaseFeasible phase = iota // zero objective, target fixed at the requested rate
	phaseMinimize              // minimize Σ x_r/eff_r, target fixed
	phaseMaxTarget             // free target variable t, maximize t
)

// rowKind tags inequality rows that can become bottleneck hints.
type rowKind int

const (
	rowPlain rowKind = iota
	rowRawCap
	rowMachineCap
)

type rowLabel struct {
	kind rowKind
	name string
}

// model is the LP-ready view of a Problem: recipes, machine classes, and
// items pinned to sorted index order so every run assembles the identical
// program.
type model struct {
	p *Problem

	recipes []string
	ridx    map[string]int

	classes []string

	items []string
	isRaw map[string]bool

	eff      []float64 // effective crafts per minute per machine, per recipe
	prodMult []float64 // output multiplier per recipe (1 unless productivity applies)
}

// buildModel indexes a validated Problem for LP assembly.
func buildModel(p *Problem) *model {
	m := &model{
		p:       p,
		recipes: sortedKeys(p.Recipes),
		classes: sortedKeys(p.Machines),
		ridx:    make(map[string]int, len(p.Recipes)),
		isRaw:   make(map[string]bool),
	}
	for i, name := range m.recipes {
		m.ridx[name] = i
	}

	m.eff = make([]float64, len(m.recipes))
	m.prodMult = make([]float64, len(m.recipes))
	for i, name := range m.recipes {
		r := p.Recipes[name]
		speed, prod := 0.0, 0.0
		if r.Modules != nil {
			speed, prod = r.Modules.Speed, r.Modules.Prod
		}
		m.eff[i] = p.Machines[r.Machine].CraftsPerMin * (1 + speed) / r.TimeS
		m.prodMult[i] = 1
		if p.ApplyProductivity {
			m.prodMult[i] = 1 + prod
		}
	}

	// Items: everything mentioned by recipes, plus the target and any caps.
	produced := make(map[string]bool)
	consumed := make(map[string]bool)
	seen := make(map[string]bool)
	for _, name := range m.recipes {
		r := p.Recipes[name]
		for item := range r.Out {
			produced[item] = true
			seen[item] = true
		}
		for item := range r.In {
			consumed[item] = true
			seen[item] = true
		}
	}
	seen[p.Target.Item] = true
	for item := range p.RawSupplyPerMin {
		seen[item] = true
	}
	m.items = sortedKeys(seen)

	// Raw items: explicitly capped, or consumed without ever being produced.
	for item := range p.RawSupplyPerMin {
		m.isRaw[item] = true
	}
	for item := range consumed {
		if !produced[item] {
			m.isRaw[item] = true
		}
	}

	return m
}

// balanceRow fills coeffs with the net production of item per unit of each
// recipe variable: Σ out·prodMult − Σ in.
func (m *model) balanceRow(item string, coeffs []float64) {
	for i := range coeffs {
		coeffs[i] = 0
	}
	for i, name := range m.recipes {
		r := m.p.Recipes[name]
		coeffs[i] = r.Out[item]*m.prodMult[i] - r.In[item]
	}
}

// lpFor assembles the LP for the given phase. The returned labels parallel
// the problem's inequality rows; rows without a hint carry rowPlain.
func (m *model) lpFor(ph phase) (*linprog.Problem, []rowLabel, error) {
	nR := len(m.recipes)
	nVars := nR
	if ph == phaseMaxTarget {
		nVars++ // trailing variable t: the achievable target rate
	}

	lp := linprog.NewProblem(nVars)
	var labels []rowLabel
	addLe := func(coeffs []float64, rhs float64, label rowLabel) error {
		if _, err := lp.AddLe(coeffs, rhs); err != nil {
			return err
		}
		labels = append(labels, label)

		return nil
	}

	row := make([]float64, nVars)
	for _, item := range m.items {
		m.balanceRow(item, row[:nR])
		if ph == phaseMaxTarget {
			row[nR] = 0
		}

		switch {
		case item == m.p.Target.Item:
			if ph == phaseMaxTarget {
				row[nR] = -1
				if err := lp.AddEq(row, 0); err != nil {
					return nil, nil, err
				}
				row[nR] = 0
			} else if err := lp.AddEq(row, m.p.Target.RatePerMin); err != nil {
				return nil, nil, err
			}
		case m.isRaw[item]:
			// Raws may be net-consumed but never net-produced.
			if err := addLe(row, 0, rowLabel{kind: rowPlain}); err != nil {
				return nil, nil, err
			}
			if supplyCap, ok := m.p.RawSupplyPerMin[item]; ok {
				neg := make([]float64, nVars)
				for i := range row {
					neg[i] = -row[i]
				}
				if err := addLe(neg, supplyCap, rowLabel{kind: rowRawCap, name: item}); err != nil {
					return nil, nil, err
				}
			}
		default:
			if err := lp.AddEq(row, 0); err != nil {
				return nil, nil, err
			}
		}
	}

	// Machine capacity: Σ_{r on class} x_r/eff_r ≤ max_machines.
	for _, class := range m.classes {
		mc := m.p.Machines[class]
		if mc.MaxMachines == nil {
			continue
		}
		for i := range row {
			row[i] = 0
		}
		used := false
		for i, name := range m.recipes {
			if m.p.Recipes[name].Machine == class && m.eff[i] > 0 {
				row[i] = 1 / m.eff[i]
				used = true
			}
		}
		if !used {
			continue
		}
		if err := addLe(row, float64(*mc.MaxMachines), rowLabel{kind: rowMachineCap, name: class}); err != nil {
			return nil, nil, err
		}
	}

	// Recipes with no effective rate cannot run: x_r ≤ 0 together with
	// x_r ≥ 0 pins them at zero. As an inequality row it brings its own
	// slack column, so the standard form never has more rows than columns.
	for i := range m.recipes {
		if m.eff[i] > 0 {
			continue
		}
		for j := range row {
			row[j] = 0
		}
		row[i] = 1
		if err := addLe(row, 0, rowLabel{kind: rowPlain}); err != nil {
			return nil, nil, err
		}
	}

	// Objective.
	c := make([]float64, nVars)
	switch ph {
	case phaseMinimize:
		for i := range m.recipes {
			if m.eff[i] > 0 {
				c[i] = 1 / m.eff[i]
			}
		}
	case phaseMaxTarget:
		c[nR] = -1
	}
	if err := lp.SetObjective(c); err != nil {
		return nil, nil, err
	}

	return lp, labels, nil
}
