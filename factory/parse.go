package factory

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Decode reads a JSON problem document and validates it.
func Decode(r io.Reader) (*Problem, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("factory: read input: %w", err)
	}

	var p Problem
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("factory: parse input: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks the problem invariants. Entities are iterated in sorted
// order so the first reported violation is deterministic.
func (p *Problem) Validate() error {
	if p.Target.Item == "" || p.Target.RatePerMin <= 0 {
		return ErrBadTarget
	}

	for _, name := range sortedKeys(p.Machines) {
		m := p.Machines[name]
		if m.CraftsPerMin <= 0 {
			return fmt.Errorf("machine %q: %w", name, ErrBadMachine)
		}
		if m.MaxMachines != nil && *m.MaxMachines < 0 {
			return fmt.Errorf("machine %q: %w", name, ErrBadMachine)
		}
	}

	targetProduced := false
	for _, name := range sortedKeys(p.Recipes) {
		r := p.Recipes[name]
		if _, ok := p.Machines[r.Machine]; !ok {
			return fmt.Errorf("recipe %q: %w", name, ErrUnknownMachine)
		}
		if r.TimeS <= 0 {
			return fmt.Errorf("recipe %q: %w", name, ErrBadRecipe)
		}
		for _, item := range sortedKeys(r.In) {
			if r.In[item] < 0 {
				return fmt.Errorf("recipe %q input %q: %w", name, item, ErrBadRecipe)
			}
		}
		for _, item := range sortedKeys(r.Out) {
			if r.Out[item] < 0 {
				return fmt.Errorf("recipe %q output %q: %w", name, item, ErrBadRecipe)
			}
		}
		if r.Modules != nil && (r.Modules.Speed < -1 || r.Modules.Prod < 0) {
			return fmt.Errorf("recipe %q: %w", name, ErrBadModules)
		}
		if _, ok := r.Out[p.Target.Item]; ok {
			targetProduced = true
		}
	}
	if !targetProduced {
		return ErrTargetNotProduced
	}

	for _, item := range sortedKeys(p.RawSupplyPerMin) {
		if p.RawSupplyPerMin[item] < 0 {
			return fmt.Errorf("raw %q: %w", item, ErrBadRawCap)
		}
	}

	return nil
}

// sortedKeys returns the map's keys in lexicographic order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
