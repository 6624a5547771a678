package simulation

import (
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator produces trajectory matrices. It owns an explicit random source
// so runs can be reproduced under a fixed seed; nothing touches the global
// generator. Run is safe for concurrent use: every run draws from its own
// source, seeded off the generator's stream under the lock.
type Generator struct {
	mu  sync.Mutex
	src rand.Source
}

// NewGenerator returns a time-seeded generator.
func NewGenerator() *Generator {
	return NewSeededGenerator(uint64(time.Now().UnixNano()))
}

// NewSeededGenerator returns a generator with a pinned seed. Two generators
// with the same seed produce identical matrices for identical parameters.
func NewSeededGenerator(seed uint64) *Generator {
	return &Generator{src: rand.NewSource(seed)}
}

// Run simulates params.NSimulations balance trajectories over
// params.Years×12 months of i.i.d. normal monthly returns and returns the
// completed matrix. The month loop is sequential (each month depends on the
// previous) but every month draws and applies its returns as one batch
// across all columns.
func (g *Generator) Run(params Parameters) (*TrajectoryMatrix, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// The one percentage-to-decimal conversion for this run.
	annualReturn := params.AnnualReturn / 100
	annualVolatility := params.AnnualVolatility / 100

	months := params.Months()
	// Geometric de-annualization: (1+r)^(1/12)-1, not r/12. Dividing by 12
	// understates compounding.
	monthlyReturn := math.Pow(1+annualReturn, 1.0/12.0) - 1
	// Variance scales linearly with time, so volatility scales with sqrt.
	monthlyVolatility := annualVolatility / math.Sqrt(12)

	// A child source per run: concurrent runs never touch shared PCG state,
	// and a fixed generator seed still yields a fixed child-seed sequence.
	g.mu.Lock()
	childSeed := g.src.Uint64()
	g.mu.Unlock()

	dist := distuv.Normal{Mu: monthlyReturn, Sigma: monthlyVolatility, Src: rand.NewSource(childSeed)}

	t := newTrajectoryMatrix(months, params.NSimulations)
	start := t.dense.RawRowView(0)
	for j := range start {
		start[j] = params.CurrentSavings
	}

	draws := make([]float64, params.NSimulations)
	for month := 1; month <= months; month++ {
		for j := range draws {
			draws[j] = dist.Rand()
		}
		contribution := params.MonthlyContribution
		if params.Policy == ContributeSkipYearEnd && month%12 == 0 {
			contribution = 0
		}
		prev := t.dense.RawRowView(month - 1)
		cur := t.dense.RawRowView(month)
		for j, r := range draws {
			// No floor at zero: paths may go negative, clamping would skew
			// every downstream statistic.
			cur[j] = prev[j]*(1+r) + contribution
		}
	}
	return t, nil
}
