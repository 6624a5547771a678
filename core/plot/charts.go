// Package plot turns a finished simulation into chart-ready payloads. It is
// a one-way consumer of the matrix and summary; rendering happens on the
// client.
package plot

import (
	"github.com/dryack/gRetireSim/core/simulation"
	"github.com/dryack/gRetireSim/core/statistics"
	"gonum.org/v1/gonum/floats"
)

const (
	histogramBins = 40
	maxPaths      = 10
	medianOfFirst = 50
)

type Charts struct {
	Histogram      Histogram      `json:"histogram"`
	SuccessPie     SuccessPie     `json:"success_pie"`
	PercentileBars PercentileBars `json:"percentile_bars"`
	Paths          Paths          `json:"paths"`
}

// Histogram is the distribution of final balances: Edges has one more entry
// than Counts, and bin i covers [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
	Goal   float64   `json:"goal"`
	Median float64   `json:"median"`
}

type SuccessPie struct {
	Success   float64 `json:"success"`
	Shortfall float64 `json:"shortfall"`
}

type PercentileBars struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Goal   float64   `json:"goal"`
}

// Paths carries up to maxPaths trajectories sampled at yearly intervals,
// in thousands of dollars, plus the median path across the first
// medianOfFirst columns.
type Paths struct {
	Years         []int       `json:"years"`
	Series        [][]float64 `json:"series"`
	Median        []float64   `json:"median"`
	GoalThousands float64     `json:"goal_thousands"`
}

func Build(matrix *simulation.TrajectoryMatrix, summary *statistics.Summary, params simulation.Parameters) *Charts {
	return &Charts{
		Histogram:      buildHistogram(matrix.FinalBalances(), summary),
		SuccessPie:     SuccessPie{Success: summary.SuccessProbability, Shortfall: summary.ShortfallProbability},
		PercentileBars: buildPercentileBars(summary),
		Paths:          buildPaths(matrix, summary),
	}
}

func buildHistogram(final []float64, summary *statistics.Summary) Histogram {
	min := floats.Min(final)
	max := floats.Max(final)

	h := Histogram{
		Edges:  make([]float64, histogramBins+1),
		Counts: make([]int, histogramBins),
		Goal:   summary.FutureGoal,
		Median: summary.MedianFinalValue,
	}

	width := (max - min) / histogramBins
	if width == 0 {
		// Degenerate sample, every value identical: one bin holds everything.
		for i := range h.Edges {
			h.Edges[i] = min
		}
		h.Counts[0] = len(final)
		return h
	}

	for i := range h.Edges {
		h.Edges[i] = min + width*float64(i)
	}
	for _, v := range final {
		bin := int((v - min) / width)
		if bin >= histogramBins {
			bin = histogramBins - 1
		}
		h.Counts[bin]++
	}
	return h
}

func buildPercentileBars(summary *statistics.Summary) PercentileBars {
	bars := PercentileBars{
		Labels: statistics.PercentileLabels,
		Values: make([]float64, len(statistics.PercentileLabels)),
		Goal:   summary.FutureGoal,
	}
	for i, label := range bars.Labels {
		bars.Values[i] = summary.Percentiles[label]
	}
	return bars
}

func buildPaths(matrix *simulation.TrajectoryMatrix, summary *statistics.Summary) Paths {
	years := matrix.Months() / 12
	p := Paths{
		Years:         make([]int, years+1),
		GoalThousands: summary.FutureGoal / 1000,
	}
	for y := range p.Years {
		p.Years[y] = y
	}

	nPaths := maxPaths
	if matrix.Cols() < nPaths {
		nPaths = matrix.Cols()
	}
	p.Series = make([][]float64, nPaths)
	for col := 0; col < nPaths; col++ {
		path := matrix.SamplePath(col)
		scaled := make([]float64, len(path))
		floats.ScaleTo(scaled, 1.0/1000, path)
		p.Series[col] = scaled
	}

	median := matrix.MedianPath(medianOfFirst)
	p.Median = make([]float64, len(median))
	floats.ScaleTo(p.Median, 1.0/1000, median)
	return p
}
