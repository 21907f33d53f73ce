// Package linprog models small dense linear programs in general form and
// solves them deterministically with the simplex method.
//
// A Problem holds a minimization objective c·x over variables x ≥ 0, a set of
// equality rows A·x = b, and a set of inequality rows G·x ≤ h. Solve converts
// the problem to standard form (one slack variable per inequality row) and
// hands it to gonum's simplex (gonum.org/v1/gonum/optimize/convex/lp), then
// maps the solution back onto the original variables and reports the slack of
// every inequality row so callers can identify binding constraints.
//
// Maximization is expressed by negating the objective before SetObjective.
//
// # Determinism
//
// The solver is configured for reproducible runs: a fixed pivot tolerance
// (DefaultTol), no initial basis hint, and a row/column layout derived purely
// from insertion order. The same Problem always yields the same Solution.
//
// # Errors
//
//	ErrInfeasible   - the constraint set admits no x ≥ 0.
//	ErrUnbounded    - the objective decreases without bound.
//	ErrNoVariables  - the problem has no variables.
//	ErrBadDimension - a row or objective has the wrong length.
//
// Any other simplex failure (singular basis, degenerate cycling) is wrapped
// and returned verbatim; callers should treat it as an internal error.
//
// Complexity: simplex is exponential in the worst case but fast for the
// small dense systems this package targets (tens of variables and rows).
package linprog
