package factory_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/planfab/planfab/factory"
)

const tol = 1e-6

func intPtr(v int) *int { return &v }

// smeltProblem is the one-recipe furnace line: 60 iron/min from iron_ore.
func smeltProblem(oreCap float64) *factory.Problem {
	return &factory.Problem{
		Target: factory.Target{Item: "iron", RatePerMin: 60},
		Machines: map[string]factory.Machine{
			"furnace": {CraftsPerMin: 60},
		},
		Recipes: map[string]factory.Recipe{
			"smelt": {
				Machine: "furnace",
				TimeS:   1,
				In:      map[string]float64{"iron_ore": 1},
				Out:     map[string]float64{"iron": 1},
			},
		},
		RawSupplyPerMin: map[string]float64{"iron_ore": oreCap},
	}
}

// SolveSuite covers the planner end to end at the package level.
type SolveSuite struct {
	suite.Suite
}

// TestTrivialSmelt: one recipe, ample ore => exactly the target rate on one
// furnace.
func (s *SolveSuite) TestTrivialSmelt() {
	res, err := factory.Solve(smeltProblem(1000))
	require.NoError(s.T(), err)

	require.Equal(s.T(), factory.StatusOK, res.Status)
	require.InDelta(s.T(), 60.0, res.PerRecipeCraftsPerMin["smelt"], tol)
	require.Equal(s.T(), 1, res.PerMachineCounts["furnace"])
	require.InDelta(s.T(), 60.0, res.RawConsumptionPerMin["iron_ore"], tol)
}

// TestRawCapInfeasible: ore capped below the target => infeasible with the
// cap as the achievable maximum and the ore named as the bottleneck.
func (s *SolveSuite) TestRawCapInfeasible() {
	res, err := factory.Solve(smeltProblem(30))
	require.NoError(s.T(), err)

	require.Equal(s.T(), factory.StatusInfeasible, res.Status)
	require.InDelta(s.T(), 30.0, res.MaxFeasibleTarget, tol)
	require.Contains(s.T(), res.Bottlenecks, "iron_ore supply")
}

// TestChainedRecipes: ore → plate → gear with a 2:1 plate ratio.
func (s *SolveSuite) TestChainedRecipes() {
	p := &factory.Problem{
		Target: factory.Target{Item: "gear", RatePerMin: 10},
		Machines: map[string]factory.Machine{
			"assembler": {CraftsPerMin: 60},
		},
		Recipes: map[string]factory.Recipe{
			"plate": {
				Machine: "assembler",
				TimeS:   1,
				In:      map[string]float64{"ore": 1},
				Out:     map[string]float64{"plate": 1},
			},
			"gear": {
				Machine: "assembler",
				TimeS:   1,
				In:      map[string]float64{"plate": 2},
				Out:     map[string]float64{"gear": 1},
			},
		},
	}

	res, err := factory.Solve(p)
	require.NoError(s.T(), err)

	require.Equal(s.T(), factory.StatusOK, res.Status)
	require.InDelta(s.T(), 20.0, res.PerRecipeCraftsPerMin["plate"], tol)
	require.InDelta(s.T(), 10.0, res.PerRecipeCraftsPerMin["gear"], tol)
	require.InDelta(s.T(), 20.0, res.RawConsumptionPerMin["ore"], tol)
}

// TestMachineCapInfeasible: one furnace cannot hit double its throughput.
func (s *SolveSuite) TestMachineCapInfeasible() {
	p := smeltProblem(1000)
	p.Target.RatePerMin = 120
	p.Machines["furnace"] = factory.Machine{CraftsPerMin: 60, MaxMachines: intPtr(1)}

	res, err := factory.Solve(p)
	require.NoError(s.T(), err)

	require.Equal(s.T(), factory.StatusInfeasible, res.Status)
	require.InDelta(s.T(), 60.0, res.MaxFeasibleTarget, tol)
	require.Contains(s.T(), res.Bottlenecks, "furnace cap")
}

// TestGreenCircuitSample: the chained two-ore sample with speed modules,
// machine caps, and raw caps. With speed 0.1 the chemical line tops out at
// 4T/20.625 ≤ 300 machines, i.e. T = 1546.875, before the copper cap binds.
func (s *SolveSuite) TestGreenCircuitSample() {
	p := &factory.Problem{
		Target: factory.Target{Item: "green_circuit", RatePerMin: 1800},
		Machines: map[string]factory.Machine{
			"assembler_1": {CraftsPerMin: 30, MaxMachines: intPtr(300)},
			"chemical":    {CraftsPerMin: 60, MaxMachines: intPtr(300)},
		},
		Recipes: map[string]factory.Recipe{
			"iron_plate": {
				Machine: "chemical",
				TimeS:   3.2,
				In:      map[string]float64{"iron_ore": 1},
				Out:     map[string]float64{"iron_plate": 1},
				Modules: &factory.Modules{Speed: 0.1, Prod: 0.2},
			},
			"copper_plate": {
				Machine: "chemical",
				TimeS:   3.2,
				In:      map[string]float64{"copper_ore": 1},
				Out:     map[string]float64{"copper_plate": 1},
				Modules: &factory.Modules{Speed: 0.1, Prod: 0.2},
			},
			"green_circuit": {
				Machine: "assembler_1",
				TimeS:   0.5,
				In:      map[string]float64{"iron_plate": 1, "copper_plate": 3},
				Out:     map[string]float64{"green_circuit": 1},
				Modules: &factory.Modules{Speed: 0.15, Prod: 0.1},
			},
		},
		RawSupplyPerMin: map[string]float64{"iron_ore": 5000, "copper_ore": 5000},
	}

	res, err := factory.Solve(p)
	require.NoError(s.T(), err)

	require.Equal(s.T(), factory.StatusInfeasible, res.Status)
	require.InDelta(s.T(), 1546.875, res.MaxFeasibleTarget, 1e-3)
	require.Contains(s.T(), res.Bottlenecks, "chemical cap")
}

// TestZeroEffectiveRate: speed -1 stalls the only producer; the achievable
// maximum is zero and nothing is named a bottleneck.
func (s *SolveSuite) TestZeroEffectiveRate() {
	p := smeltProblem(1000)
	r := p.Recipes["smelt"]
	r.Modules = &factory.Modules{Speed: -1}
	p.Recipes["smelt"] = r

	res, err := factory.Solve(p)
	require.NoError(s.T(), err)

	require.Equal(s.T(), factory.StatusInfeasible, res.Status)
	require.InDelta(s.T(), 0.0, res.MaxFeasibleTarget, tol)
	require.Empty(s.T(), res.Bottlenecks)
}

// TestApplyProductivity: with the flag set, a 25% productivity bonus lets
// 8 crafts/min deliver 10 plates/min from 8 ore.
func (s *SolveSuite) TestApplyProductivity() {
	p := &factory.Problem{
		Target: factory.Target{Item: "plate", RatePerMin: 10},
		Machines: map[string]factory.Machine{
			"smelter": {CraftsPerMin: 60},
		},
		Recipes: map[string]factory.Recipe{
			"plate": {
				Machine: "smelter",
				TimeS:   1,
				In:      map[string]float64{"ore": 1},
				Out:     map[string]float64{"plate": 1},
				Modules: &factory.Modules{Prod: 0.25},
			},
		},
		ApplyProductivity: true,
	}

	res, err := factory.Solve(p)
	require.NoError(s.T(), err)

	require.Equal(s.T(), factory.StatusOK, res.Status)
	require.InDelta(s.T(), 8.0, res.PerRecipeCraftsPerMin["plate"], tol)
	require.InDelta(s.T(), 8.0, res.RawConsumptionPerMin["ore"], tol)
}

// TestProductivityIgnoredByDefault: same loadout without the flag behaves
// as if prod were zero.
func (s *SolveSuite) TestProductivityIgnoredByDefault() {
	p := &factory.Problem{
		Target: factory.Target{Item: "plate", RatePerMin: 10},
		Machines: map[string]factory.Machine{
			"smelter": {CraftsPerMin: 60},
		},
		Recipes: map[string]factory.Recipe{
			"plate": {
				Machine: "smelter",
				TimeS:   1,
				In:      map[string]float64{"ore": 1},
				Out:     map[string]float64{"plate": 1},
				Modules: &factory.Modules{Prod: 0.25},
			},
		},
	}

	res, err := factory.Solve(p)
	require.NoError(s.T(), err)

	require.Equal(s.T(), factory.StatusOK, res.Status)
	require.InDelta(s.T(), 10.0, res.PerRecipeCraftsPerMin["plate"], tol)
	require.InDelta(s.T(), 10.0, res.RawConsumptionPerMin["ore"], tol)
}

// TestRoundTripVerifier: the solver's own output passes the independent
// checker, feasible and infeasible alike.
func (s *SolveSuite) TestRoundTripVerifier() {
	for _, oreCap := range []float64{1000, 30} {
		p := smeltProblem(oreCap)
		res, err := factory.Solve(p)
		require.NoError(s.T(), err)
		require.Empty(s.T(), factory.Verify(p, res), "verifier must accept the solver output (cap %g)", oreCap)
	}
}

func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}
