package simulation

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// TrajectoryMatrix holds the simulated balances: row m is the balance at the
// end of month m for every simulation column, row 0 is the starting savings.
// It is owned by the run that produced it and read-only once returned.
type TrajectoryMatrix struct {
	dense  *mat.Dense
	months int
	sims   int
}

func newTrajectoryMatrix(months, sims int) *TrajectoryMatrix {
	return &TrajectoryMatrix{
		dense:  mat.NewDense(months+1, sims, nil),
		months: months,
		sims:   sims,
	}
}

func (t *TrajectoryMatrix) Rows() int   { return t.months + 1 }
func (t *TrajectoryMatrix) Cols() int   { return t.sims }
func (t *TrajectoryMatrix) Months() int { return t.months }

// Balances returns the balance of every simulation column at the end of the
// given month. The returned slice aliases the matrix storage; callers must
// not modify it.
func (t *TrajectoryMatrix) Balances(month int) []float64 {
	if t.dense == nil {
		return nil
	}
	return t.dense.RawRowView(month)
}

// FinalBalances is the last row of the matrix, the sample the aggregator
// reduces.
func (t *TrajectoryMatrix) FinalBalances() []float64 {
	return t.Balances(t.months)
}

// SamplePath returns one trajectory sampled at yearly intervals: the balance
// at month 0, 12, 24, ..., months. Used by the plotting consumers.
func (t *TrajectoryMatrix) SamplePath(col int) []float64 {
	years := t.months / 12
	path := make([]float64, years+1)
	for y := 0; y <= years; y++ {
		path[y] = t.dense.At(y*12, col)
	}
	return path
}

// MedianPath returns the per-year median balance across the first maxCols
// columns (all columns when maxCols exceeds the simulation count).
func (t *TrajectoryMatrix) MedianPath(maxCols int) []float64 {
	if maxCols > t.sims {
		maxCols = t.sims
	}
	years := t.months / 12
	path := make([]float64, years+1)
	scratch := make([]float64, maxCols)
	for y := 0; y <= years; y++ {
		row := t.dense.RawRowView(y * 12)
		copy(scratch, row[:maxCols])
		sort.Float64s(scratch)
		mid := len(scratch) / 2
		if len(scratch)%2 == 0 {
			path[y] = (scratch[mid-1] + scratch[mid]) / 2
		} else {
			path[y] = scratch[mid]
		}
	}
	return path
}
