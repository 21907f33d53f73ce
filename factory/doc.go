// Package factory plans steady-state production schedules for a factory of
// crafting machines.
//
// A Problem names machine classes (base crafts per minute, optional fleet
// cap), recipes (seconds per craft, input/output items per craft, optional
// speed/productivity module loadout), a target item rate, and optional raw
// supply caps. Solve formulates the plan as a linear program over one
// crafts-per-minute variable per recipe:
//
//   - every intermediate item must balance exactly (steady state),
//   - the target item must balance to the requested rate,
//   - raw items may be net-consumed, up to their supply cap when one is set,
//   - each machine class's total utilization Σ x_r/eff_r must fit its cap.
//
// Solving is two-phase: a feasibility pass with a zero objective, then a
// re-solve minimizing total machines Σ x_r/eff_r. When the requested rate is
// infeasible the solver instead maximizes a free target-rate variable and
// reports the achievable maximum together with bottleneck hints derived from
// the binding supply and machine-cap rows.
//
// Verify independently re-checks a Result against its Problem using only the
// mathematical constraints; it shares no state with the solver beyond the
// input definitions.
//
// The effective crafting rate of one machine running recipe r is
//
//	eff_r = crafts_per_min(machine) × (1 + speed_r) / time_s(r)
//
// matching the documented sample outputs. Productivity modules are parsed
// but ignored unless the input sets "apply_productivity": true, in which
// case output coefficients are scaled by (1 + prod_r) in both conservation
// and the reported accounting.
//
// All numeric work uses a fixed absolute tolerance of 1e-9; rates below it
// are clamped to zero before reporting.
package factory
