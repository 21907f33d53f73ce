package factory

import (
	"encoding/json"
	"errors"
)

// Sentinel errors for problem validation.
var (
	// ErrBadTarget indicates a missing target item or a non-positive rate.
	ErrBadTarget = errors.New("factory: target must name an item with a positive rate_per_min")
	// ErrTargetNotProduced indicates no recipe outputs the target item.
	ErrTargetNotProduced = errors.New("factory: target item is not produced by any recipe")
	// ErrUnknownMachine indicates a recipe referencing an undeclared machine class.
	ErrUnknownMachine = errors.New("factory: recipe references unknown machine class")
	// ErrBadMachine indicates a non-positive crafts_per_min or negative max_machines.
	ErrBadMachine = errors.New("factory: machine class must have positive crafts_per_min and non-negative max_machines")
	// ErrBadRecipe indicates a non-positive time_s or a negative item coefficient.
	ErrBadRecipe = errors.New("factory: recipe must have positive time_s and non-negative item coefficients")
	// ErrBadModules indicates speed < -1 or prod < 0 in a module loadout.
	ErrBadModules = errors.New("factory: module loadout must have speed ≥ -1 and prod ≥ 0")
	// ErrBadRawCap indicates a negative raw supply cap.
	ErrBadRawCap = errors.New("factory: raw supply caps must be non-negative")
)

// Tol is the absolute numeric tolerance shared by the solver and extractor.
const Tol = 1e-9

// Result statuses.
const (
	StatusOK         = "ok"
	StatusInfeasible = "infeasible"
)

// Machine is one machine class.
type Machine struct {
	// CraftsPerMin is the nominal base crafts per minute of one machine.
	CraftsPerMin float64 `json:"crafts_per_min"`
	// MaxMachines caps the fleet size; nil means unbounded.
	MaxMachines *int `json:"max_machines"`
}

// Modules is a per-recipe module loadout.
type Modules struct {
	// Speed multiplies the effective crafting rate; must be ≥ -1.
	Speed float64 `json:"speed"`
	// Prod multiplies output quantities when apply_productivity is set.
	Prod float64 `json:"prod"`
}

// Recipe transforms input items into output items on one machine class.
type Recipe struct {
	Machine string             `json:"machine"`
	TimeS   float64            `json:"time_s"`
	In      map[string]float64 `json:"in"`
	Out     map[string]float64 `json:"out"`
	Modules *Modules           `json:"modules"`
}

// Target is the requested output.
type Target struct {
	Item       string  `json:"item"`
	RatePerMin float64 `json:"rate_per_min"`
}

// Problem is a parsed factory planning instance. It is immutable once
// validated.
type Problem struct {
	Target          Target             `json:"target"`
	Machines        map[string]Machine `json:"machines"`
	Recipes         map[string]Recipe  `json:"recipes"`
	RawSupplyPerMin map[string]float64 `json:"raw_supply_per_min"`
	// ApplyProductivity switches productivity modules from parsed-but-ignored
	// (the reference behavior) to applied in conservation and accounting.
	ApplyProductivity bool `json:"apply_productivity"`
}

// Result is the solver's structured output: an "ok" schedule or an
// "infeasible" report. MarshalJSON emits only the fields of the active
// shape.
type Result struct {
	Status string `json:"status"`

	PerRecipeCraftsPerMin map[string]float64 `json:"per_recipe_crafts_per_min"`
	PerMachineCounts      map[string]int     `json:"per_machine_counts"`
	RawConsumptionPerMin  map[string]float64 `json:"raw_consumption_per_min"`

	MaxFeasibleTarget float64  `json:"max_feasible_target"`
	Bottlenecks       []string `json:"bottlenecks"`
}

// MarshalJSON renders the "ok" and "infeasible" document shapes of the
// output contract; absent-but-empty collections marshal as {} / [].
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Status == StatusOK {
		return json.Marshal(struct {
			Status    string             `json:"status"`
			PerRecipe map[string]float64 `json:"per_recipe_crafts_per_min"`
			PerClass  map[string]int     `json:"per_machine_counts"`
			Raw       map[string]float64 `json:"raw_consumption_per_min"`
		}{
			Status:    r.Status,
			PerRecipe: nonNilRates(r.PerRecipeCraftsPerMin),
			PerClass:  nonNilCounts(r.PerMachineCounts),
			Raw:       nonNilRates(r.RawConsumptionPerMin),
		})
	}

	return json.Marshal(struct {
		Status      string   `json:"status"`
		MaxFeasible float64  `json:"max_feasible_target"`
		Bottlenecks []string `json:"bottlenecks"`
	}{
		Status:      r.Status,
		MaxFeasible: r.MaxFeasibleTarget,
		Bottlenecks: nonNilHints(r.Bottlenecks),
	})
}

func nonNilRates(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}

	return m
}

func nonNilCounts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}

	return m
}

func nonNilHints(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
