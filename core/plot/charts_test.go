package plot

import (
	"testing"

	"github.com/dryack/gRetireSim/core/simulation"
	"github.com/dryack/gRetireSim/core/statistics"
	"github.com/stretchr/testify/assert"
)

func buildCharts(t *testing.T, params simulation.Parameters) *Charts {
	t.Helper()
	matrix, err := simulation.NewSeededGenerator(5).Run(params)
	assert.NoError(t, err)
	summary, err := statistics.Summarize(matrix, params)
	assert.NoError(t, err)
	return Build(matrix, summary, params)
}

func TestBuildHistogram(t *testing.T) {
	params := simulation.DefaultParameters()
	params.Years = 5
	params.NSimulations = 1000
	charts := buildCharts(t, params)

	h := charts.Histogram
	assert.Len(t, h.Edges, histogramBins+1)
	assert.Len(t, h.Counts, histogramBins)

	total := 0
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, params.NSimulations, total)

	for i := 1; i < len(h.Edges); i++ {
		assert.GreaterOrEqual(t, h.Edges[i], h.Edges[i-1])
	}
}

func TestBuildDegenerateHistogram(t *testing.T) {
	// Zero volatility collapses every final balance to the same value.
	params := simulation.Parameters{
		CurrentSavings: 1000,
		Years:          1,
		NSimulations:   20,
	}
	charts := buildCharts(t, params)

	assert.Equal(t, 20, charts.Histogram.Counts[0])
	assert.Equal(t, charts.Histogram.Edges[0], charts.Histogram.Edges[histogramBins])
}

func TestBuildSuccessPie(t *testing.T) {
	params := simulation.DefaultParameters()
	params.Years = 2
	params.NSimulations = 500
	charts := buildCharts(t, params)

	assert.InDelta(t, 100.0, charts.SuccessPie.Success+charts.SuccessPie.Shortfall, 1e-9)
}

func TestBuildPercentileBars(t *testing.T) {
	params := simulation.DefaultParameters()
	params.Years = 3
	params.NSimulations = 800
	charts := buildCharts(t, params)

	bars := charts.PercentileBars
	assert.Equal(t, statistics.PercentileLabels, bars.Labels)
	for i := 1; i < len(bars.Values); i++ {
		assert.GreaterOrEqual(t, bars.Values[i], bars.Values[i-1])
	}
}

func TestBuildPaths(t *testing.T) {
	params := simulation.DefaultParameters()
	params.Years = 4
	params.NSimulations = 6
	charts := buildCharts(t, params)

	p := charts.Paths
	assert.Equal(t, []int{0, 1, 2, 3, 4}, p.Years)
	// Fewer columns than the path budget: one series per column.
	assert.Len(t, p.Series, 6)
	for _, series := range p.Series {
		assert.Len(t, series, 5)
		assert.InDelta(t, params.CurrentSavings/1000, series[0], 1e-9)
	}
	assert.Len(t, p.Median, 5)
}
