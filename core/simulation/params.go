package simulation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter indicates an out-of-range or non-finite input field.
// The simulation does not proceed when validation fails.
var ErrInvalidParameter = errors.New("simulation: invalid parameter")

// ContributionPolicy controls which months receive the monthly contribution.
type ContributionPolicy int

const (
	// ContributeEveryMonth adds the contribution for every month of every year.
	ContributeEveryMonth ContributionPolicy = iota
	// ContributeSkipYearEnd skips the contribution on months 12, 24, ... of
	// the projection (the year-end month).
	ContributeSkipYearEnd
)

// Parameters is the immutable input record for one simulation run. Rate
// fields are human-entered percentages (7.0 means 7%); conversion to
// decimals happens exactly once, inside the engine.
type Parameters struct {
	CurrentSavings      float64            `json:"current_savings"`
	MonthlyContribution float64            `json:"monthly_contribution"`
	Years               int                `json:"years"`
	AnnualReturn        float64            `json:"annual_return"`
	AnnualVolatility    float64            `json:"annual_volatility"`
	InflationRate       float64            `json:"inflation_rate"`
	GoalAmount          float64            `json:"goal_amount"`
	NSimulations        int                `json:"n_simulations"`
	Policy              ContributionPolicy `json:"contribution_policy,omitempty"`
}

// DefaultParameters returns the deployment defaults used by the web handler
// when a request omits fields.
func DefaultParameters() Parameters {
	return Parameters{
		CurrentSavings:      50000,
		MonthlyContribution: 1000,
		Years:               30,
		AnnualReturn:        7.0,
		AnnualVolatility:    15.0,
		InflationRate:       2.5,
		GoalAmount:          1500000,
		NSimulations:        5000,
		Policy:              ContributeEveryMonth,
	}
}

// Months returns the number of simulated months.
func (p Parameters) Months() int {
	return p.Years * 12
}

// FutureGoal is the inflation-adjusted target in future dollars:
// goal × (1+inflation)^years.
func (p Parameters) FutureGoal() float64 {
	return p.GoalAmount * math.Pow(1+p.InflationRate/100, float64(p.Years))
}

// Validate checks every field before a run. It reports the first offending
// field wrapped around ErrInvalidParameter.
func (p Parameters) Validate() error {
	if p.NSimulations < 1 {
		return fmt.Errorf("%w: n_simulations must be >= 1, got %d", ErrInvalidParameter, p.NSimulations)
	}
	if p.Years < 1 {
		return fmt.Errorf("%w: years must be >= 1, got %d", ErrInvalidParameter, p.Years)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"current_savings", p.CurrentSavings},
		{"monthly_contribution", p.MonthlyContribution},
		{"annual_return", p.AnnualReturn},
		{"annual_volatility", p.AnnualVolatility},
		{"inflation_rate", p.InflationRate},
		{"goal_amount", p.GoalAmount},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidParameter, f.name)
		}
	}
	if p.CurrentSavings < 0 {
		return fmt.Errorf("%w: current_savings must be >= 0", ErrInvalidParameter)
	}
	if p.MonthlyContribution < 0 {
		return fmt.Errorf("%w: monthly_contribution must be >= 0", ErrInvalidParameter)
	}
	if p.AnnualVolatility < 0 {
		return fmt.Errorf("%w: annual_volatility must be >= 0", ErrInvalidParameter)
	}
	if p.GoalAmount < 0 {
		return fmt.Errorf("%w: goal_amount must be >= 0", ErrInvalidParameter)
	}
	return nil
}
