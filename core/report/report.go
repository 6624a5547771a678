// Package report renders a simulation summary as a formatted text report
// with qualitative recommendations. It consumes the summary; it never feeds
// back into the core.
package report

import (
	"fmt"
	"strings"

	"github.com/dryack/gRetireSim/core/simulation"
	"github.com/dryack/gRetireSim/core/statistics"
	"github.com/leekchan/accounting"
)

const divider = "============================================================"
const rule = "----------------------------------------"

var money = accounting.Accounting{Symbol: "$", Precision: 0}

// Generate renders the full text report for one simulation run.
func Generate(summary *statistics.Summary, params simulation.Parameters) string {
	var b strings.Builder

	b.WriteString(divider + "\n")
	b.WriteString("MONTE CARLO RETIREMENT SIMULATION REPORT\n")
	b.WriteString(divider + "\n\n")

	b.WriteString("INPUT PARAMETERS\n" + rule + "\n")
	fmt.Fprintf(&b, "Current Savings: %s\n", money.FormatMoney(params.CurrentSavings))
	fmt.Fprintf(&b, "Monthly Contribution: %s\n", money.FormatMoney(params.MonthlyContribution))
	fmt.Fprintf(&b, "Years: %d\n", params.Years)
	fmt.Fprintf(&b, "Annual Return: %g%%\n", params.AnnualReturn)
	fmt.Fprintf(&b, "Annual Volatility: %g%%\n", params.AnnualVolatility)
	fmt.Fprintf(&b, "Inflation Rate: %g%%\n", params.InflationRate)
	fmt.Fprintf(&b, "Goal Amount: %s\n", money.FormatMoney(params.GoalAmount))
	fmt.Fprintf(&b, "Simulations: %d\n", params.NSimulations)

	b.WriteString("\nSIMULATION RESULTS\n" + rule + "\n")
	fmt.Fprintf(&b, "Probability of Reaching Goal: %.1f%%\n", summary.SuccessProbability)
	fmt.Fprintf(&b, "Shortfall Probability: %.1f%%\n", summary.ShortfallProbability)
	fmt.Fprintf(&b, "Future Goal (inflation-adjusted): %s\n", money.FormatMoney(summary.FutureGoal))
	b.WriteString("\nFinal Portfolio Statistics:\n")
	fmt.Fprintf(&b, "  Mean: %s\n", money.FormatMoney(summary.MeanFinalValue))
	fmt.Fprintf(&b, "  Median: %s\n", money.FormatMoney(summary.MedianFinalValue))
	fmt.Fprintf(&b, "  Standard Deviation: %s\n", money.FormatMoney(summary.StdFinalValue))
	fmt.Fprintf(&b, "  Minimum: %s\n", money.FormatMoney(summary.MinValue))
	fmt.Fprintf(&b, "  Maximum: %s\n", money.FormatMoney(summary.MaxValue))

	b.WriteString("\nPERCENTILE ANALYSIS\n" + rule + "\n")
	for _, label := range statistics.PercentileLabels {
		fmt.Fprintf(&b, "%s percentile: %s\n", label, money.FormatMoney(summary.Percentiles[label]))
	}

	b.WriteString("\nRISK ANALYSIS\n" + rule + "\n")
	fmt.Fprintf(&b, "Average Shortfall (if goal not met): %s\n", money.FormatMoney(summary.AvgShortfall))

	b.WriteString("\nRECOMMENDATIONS\n" + rule + "\n")
	b.WriteString(Recommendation(summary.SuccessProbability))

	b.WriteString("\n" + divider + "\n")
	b.WriteString("End of Report\n")
	b.WriteString(divider + "\n")
	return b.String()
}

// Recommendation returns the qualitative guidance tier for a success
// probability: at least 80 is on track, 60 to 79 is moderate, anything
// lower calls for immediate action.
func Recommendation(successProbability float64) string {
	switch {
	case successProbability >= 80:
		return "You're on track! Your current plan has a high probability of success.\n" +
			"Consider maintaining your strategy or potentially reducing risk.\n"
	case successProbability >= 60:
		return "Your plan has a moderate chance of success.\n" +
			"Consider:\n" +
			"  - Increasing monthly contributions by 10-20%\n" +
			"  - Extending retirement by 2-3 years\n" +
			"  - Reviewing investment strategy for better returns\n"
	default:
		return "Your current plan has a low probability of reaching your goal.\n" +
			"Immediate actions needed:\n" +
			"  - Increase monthly contributions significantly\n" +
			"  - Consider working longer (5+ years)\n" +
			"  - Consult a financial advisor\n" +
			"  - Review and potentially increase risk tolerance\n"
	}
}
