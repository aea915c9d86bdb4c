package finance

import (
	"errors"
	"math"
)

// Plan selects how money is invested.
type Plan string

const (
	// PlanSIP is a fixed monthly contribution compounded monthly.
	PlanSIP Plan = "sip"
	// PlanLumpsum is a single up-front amount compounded yearly.
	PlanLumpsum Plan = "lumpsum"
)

// Default annual rates in percent.
const (
	DefaultReturnRate = 12.0
	DefaultInflation  = 6.0
)

var (
	ErrInvalidPeriod = errors.New("investment period must be positive")
	ErrInvalidAmount = errors.New("investment amount must be positive")
	ErrUnknownPlan   = errors.New("plan must be sip or lumpsum")
)

type ProjectionInput struct {
	Plan Plan
	// Amount is the monthly contribution for PlanSIP and the principal for
	// PlanLumpsum.
	Amount float64
	Years  float64
	// ReturnRate and Inflation are annual percentages.
	ReturnRate float64
	Inflation  float64
}

type Projection struct {
	Invested    float64
	FutureValue float64
	Returns     float64
	// ReturnsPercent is Returns relative to Invested, in percent.
	ReturnsPercent float64
	// RealValue is FutureValue in today's money after inflation.
	RealValue float64
}

// Project computes the future value of an investment plan.
func Project(in ProjectionInput) (Projection, error) {
	if !(in.Years > 0) {
		return Projection{}, ErrInvalidPeriod
	}
	if !(in.Amount > 0) {
		return Projection{}, ErrInvalidAmount
	}

	r := in.ReturnRate / 100
	var p Projection

	switch in.Plan {
	case PlanLumpsum:
		p.Invested = in.Amount
		p.FutureValue = in.Amount * math.Pow(1+r, in.Years)
	case PlanSIP:
		months := in.Years * 12
		p.Invested = in.Amount * months
		monthly := r / 12
		if monthly == 0 {
			p.FutureValue = p.Invested
		} else {
			// contributions at the start of each month
			p.FutureValue = in.Amount * ((math.Pow(1+monthly, months) - 1) / monthly) * (1 + monthly)
		}
	default:
		return Projection{}, ErrUnknownPlan
	}

	p.Returns = p.FutureValue - p.Invested
	p.ReturnsPercent = p.Returns / p.Invested * 100
	p.RealValue = p.FutureValue / math.Pow(1+in.Inflation/100, in.Years)
	return p, nil
}
