package statistics

import (
	"errors"
	"math"
	"sort"

	"github.com/dryack/gRetireSim/core/simulation"
	"github.com/dryack/gRetireSim/core/utils"
	"gonum.org/v1/gonum/floats"
)

// ErrEmptySample indicates a trajectory matrix with no simulation columns.
// The generator cannot produce one, so hitting this means a contract
// violation between generator and aggregator.
var ErrEmptySample = errors.New("statistics: empty final-balance sample")

// PercentileLabels are the reported percentile marks, in order.
var PercentileLabels = []string{"5th", "25th", "50th", "75th", "95th"}

var percentileMarks = map[string]float64{
	"5th": 5, "25th": 25, "50th": 50, "75th": 75, "95th": 95,
}

// Summary is the immutable reduction of one simulation run. Field names
// match the JSON contract served to clients.
type Summary struct {
	SuccessProbability   float64            `json:"success_probability"`
	FutureGoal           float64            `json:"future_goal"`
	MedianFinalValue     float64            `json:"median_final_value"`
	MeanFinalValue       float64            `json:"mean_final_value"`
	StdFinalValue        float64            `json:"std_final_value"`
	MinValue             float64            `json:"min_value"`
	MaxValue             float64            `json:"max_value"`
	Percentiles          map[string]float64 `json:"percentiles"`
	ShortfallProbability float64            `json:"shortfall_probability"`
	AvgShortfall         float64            `json:"avg_shortfall"`
	NSimulations         int                `json:"n_simulations"`
}

// Summarize reduces the final row of the matrix to a Summary. Balances
// exactly equal to the inflation-adjusted goal count as success.
func Summarize(matrix *simulation.TrajectoryMatrix, params simulation.Parameters) (*Summary, error) {
	final := matrix.FinalBalances()
	if len(final) == 0 {
		return nil, ErrEmptySample
	}
	n := float64(len(final))

	futureGoal := params.FutureGoal()

	successCount := 0
	for _, b := range final {
		if b >= futureGoal {
			successCount++
		}
	}
	successProbability := float64(successCount) / n * 100

	sorted := append([]float64(nil), final...)
	sort.Float64s(sorted)

	percentiles := make(map[string]float64, len(percentileMarks))
	for label, p := range percentileMarks {
		percentiles[label] = percentile(sorted, p)
	}

	mean := floats.Sum(final) / n
	m2 := 0.0
	for _, b := range final {
		diff := b - mean
		m2 += diff * diff
	}
	// Population standard deviation, no Bessel correction.
	stdDev := math.Sqrt(m2 / n)

	// Average deficit across the paths that miss the goal, zero when none do.
	shortfallSum := 0.0
	shortfallCount := 0
	for _, b := range final {
		if b < futureGoal {
			shortfallSum += futureGoal - b
			shortfallCount++
		}
	}
	avgShortfall := 0.0
	if shortfallCount > 0 {
		avgShortfall = shortfallSum / float64(shortfallCount)
	}

	return &Summary{
		SuccessProbability:   utils.Round(successProbability, 2),
		FutureGoal:           utils.Round(futureGoal, 2),
		MedianFinalValue:     utils.Round(percentiles["50th"], 2),
		MeanFinalValue:       utils.Round(mean, 2),
		StdFinalValue:        utils.Round(stdDev, 2),
		MinValue:             utils.Round(floats.Min(final), 2),
		MaxValue:             utils.Round(floats.Max(final), 2),
		Percentiles:          utils.RoundMap(percentiles, 2),
		ShortfallProbability: utils.Round(100-successProbability, 2),
		AvgShortfall:         utils.Round(avgShortfall, 2),
		NSimulations:         len(final),
	}, nil
}

// percentile interpolates linearly between order statistics at
// index = p/100 × (n−1). Input must be sorted.
func percentile(sorted []float64, p float64) float64 {
	index := float64(len(sorted)-1) * p / 100
	i := int(index)
	if i == len(sorted)-1 {
		return sorted[i]
	}
	return sorted[i] + (sorted[i+1]-sorted[i])*(index-float64(i))
}
