package linprog

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Solve converts p to standard form and runs gonum's simplex on it.
//
// Standard-form layout: xt = [x; s] where s holds one slack variable per
// inequality row, so
//
//	minimize  [c, 0]·xt
//	s.t.      [A, 0]·xt = b
//	          [G, I]·xt = h
//	          xt ≥ 0
//
// Rows whose right-hand side is negative are negated in place so the kernel
// starts from a non-negative b. The original x ≥ 0 bounds survive the
// conversion directly because Problem variables are non-negative by contract
// (no free-variable splitting is needed).
//
// Complexity: O((mEq+mLe)·(n+mLe)) to assemble, simplex cost to solve.
func Solve(p *Problem) (*Solution, error) {
	if p.nVars == 0 {
		return nil, ErrNoVariables
	}

	n := p.nVars
	mEq := len(p.eq)
	mLe := len(p.le)
	rows := mEq + mLe
	cols := n + mLe

	if rows == 0 {
		// Nothing constrains x; the minimum over x ≥ 0 is at the origin
		// unless some objective coefficient is negative.
		for _, ci := range p.c {
			if ci < 0 {
				return nil, ErrUnbounded
			}
		}

		return &Solution{X: make([]float64, n), Slack: nil}, nil
	}

	c := make([]float64, cols)
	copy(c, p.c)

	b := make([]float64, rows)
	a := mat.NewDense(rows, cols, nil)
	for i, row := range p.eq {
		a.SetRow(i, padRow(row, cols))
		b[i] = p.eqRHS[i]
	}
	for j, row := range p.le {
		full := padRow(row, cols)
		full[n+j] = 1 // slack
		a.SetRow(mEq+j, full)
		b[mEq+j] = p.leRHS[j]
	}

	// Simplex wants b ≥ 0; flipping a whole row preserves the constraint.
	for i := 0; i < rows; i++ {
		if b[i] < 0 {
			b[i] = -b[i]
			rv := a.RawRowView(i)
			floats.Scale(-1, rv)
		}
	}

	_, xt, err := lp.Simplex(c, a, b, DefaultTol, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return nil, ErrInfeasible
		case errors.Is(err, lp.ErrUnbounded):
			return nil, ErrUnbounded
		default:
			return nil, fmt.Errorf("linprog: simplex: %w", err)
		}
	}

	sol := &Solution{
		X:     make([]float64, n),
		Slack: make([]float64, mLe),
	}
	copy(sol.X, xt[:n])
	copy(sol.Slack, xt[n:])
	sol.Objective = floats.Dot(p.c, sol.X)

	return sol, nil
}

// padRow copies row into a fresh slice of length cols.
func padRow(row []float64, cols int) []float64 {
	full := make([]float64, cols)
	copy(full, row)

	return full
}
