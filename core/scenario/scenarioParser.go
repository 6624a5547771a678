package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dryack/gRetireSim/core/simulation"
)

// Parse takes a shorthand string and returns the simulation parameters it
// describes, with omitted clauses taken from the deployment defaults.
func Parse(input string) (simulation.Parameters, error) {
	sh, err := ShorthandParser.ParseString("", input)
	if err != nil {
		return simulation.Parameters{}, fmt.Errorf("parsing error: %w", err)
	}
	return sh.Parameters(), nil
}

// Parameters maps a parsed Shorthand onto a full parameter set.
func (sh *Shorthand) Parameters() simulation.Parameters {
	params := simulation.DefaultParameters()
	params.Years = sh.Years
	params.AnnualReturn = sh.Return
	if sh.From != nil {
		params.CurrentSavings = *sh.From
	}
	if sh.Monthly != nil {
		params.MonthlyContribution = sh.Monthly.Amount
	}
	if sh.Vol != nil {
		params.AnnualVolatility = *sh.Vol
	}
	if sh.Inflation != nil {
		params.InflationRate = *sh.Inflation
	}
	if sh.Goal != nil {
		params.GoalAmount = *sh.Goal
	}
	if sh.Sims != nil {
		params.NSimulations = *sh.Sims
	}
	if sh.SkipDec {
		params.Policy = simulation.ContributeSkipYearEnd
	}
	return params
}

// Canonical renders the full shorthand for a parameter set, every clause
// spelled out. Equal parameter sets always render identically, which makes
// the canonical form usable as a cache and persistence key.
func Canonical(params simulation.Parameters) string {
	var b strings.Builder
	fmt.Fprintf(&b, "from %s %s/m %dy %s%% ~%s%% i%s%% goal %s x%d",
		num(params.CurrentSavings),
		num(params.MonthlyContribution),
		params.Years,
		num(params.AnnualReturn),
		num(params.AnnualVolatility),
		num(params.InflationRate),
		num(params.GoalAmount),
		params.NSimulations,
	)
	if params.Policy == simulation.ContributeSkipYearEnd {
		b.WriteString(" skipDec")
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
