// Package credit computes the credit valuation adjustment on the note from a
// flat CDS spread, and backs out the spread implied by an observed market
// price.
package credit

import (
	"fmt"
	"math"
	"time"

	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/frn"
	"github.com/quantdesk/frnlib/utils"
)

const creditDayCount = "ACT/360"

// Params holds the flat-spread credit model inputs.
type Params struct {
	Spread   float64
	Recovery float64
}

// Validate rejects parameter combinations the survival curve cannot support.
func (p Params) Validate() error {
	if p.Spread < 0 {
		return fmt.Errorf("Validate: negative CDS spread %v", p.Spread)
	}
	if p.Recovery < 0 || p.Recovery >= 1 {
		return fmt.Errorf("Validate: recovery %v outside [0, 1)", p.Recovery)
	}
	return nil
}

// Survival returns the recovery-adjusted survival probability to time t.
// At t = 0 it is exactly one, and it decays toward zero as exp(-s·t)
// approaches the recovery level.
func (p Params) Survival(t float64) float64 {
	if t <= 0 {
		return 1
	}
	s := (math.Exp(-p.Spread*t) - p.Recovery) / (1 - p.Recovery)
	return math.Max(s, 0)
}

// DefaultProb returns the probability of default by time t.
func (p Params) DefaultProb(t float64) float64 {
	return 1 - p.Survival(t)
}

// CVARow is the marginal adjustment attached to one cashflow. PD is the
// cumulative probability of default by the payment date.
type CVARow struct {
	PaymentDate time.Time
	Time        float64
	Amount      float64
	DF          float64
	Survival    float64
	PD          float64
	Marginal    float64
}

// CVAResult is the adjustment decomposed by cashflow.
type CVAResult struct {
	Rows  []CVARow
	Total float64
}

// CVA values the adjustment over the note's remaining projected cashflows:
// each flow loses its full amount with the cumulative probability of default
// by its payment date, discounted to spot.
func CVA(n frn.Note, disc *curve.Curve, spot time.Time, p Params) (CVAResult, error) {
	if err := p.Validate(); err != nil {
		return CVAResult{}, fmt.Errorf("CVA: %w", err)
	}

	flows := n.ProjectedLeg(disc, spot)
	if len(flows) == 0 {
		return CVAResult{}, fmt.Errorf("CVA: no cashflows after %s", spot.Format("2006-01-02"))
	}

	var res CVAResult
	for _, cf := range flows {
		t := utils.YearFraction(spot, cf.PaymentDate, creditDayCount)
		if t <= 0 {
			continue
		}
		surv := p.Survival(t)
		pd := 1 - surv
		marginal := cf.Amount() * pd * cf.DF
		res.Rows = append(res.Rows, CVARow{
			PaymentDate: cf.PaymentDate,
			Time:        t,
			Amount:      cf.Amount(),
			DF:          cf.DF,
			Survival:    surv,
			PD:          pd,
			Marginal:    marginal,
		})
		res.Total += marginal
	}
	return res, nil
}

// SpreadGrid evaluates the total CVA at each spread on the grid, holding
// recovery fixed. The slope of this grid is the credit beta fed to the
// factor risk model.
func SpreadGrid(n frn.Note, disc *curve.Curve, spot time.Time, recovery float64, spreads []float64) ([]float64, error) {
	out := make([]float64, len(spreads))
	for i, s := range spreads {
		res, err := CVA(n, disc, spot, Params{Spread: s, Recovery: recovery})
		if err != nil {
			return nil, fmt.Errorf("SpreadGrid: spread %v: %w", s, err)
		}
		out[i] = res.Total
	}
	return out, nil
}

// SpreadDV is the change in CVA per one basis point of spread, from a
// symmetric bump around the base parameters.
func SpreadDV(n frn.Note, disc *curve.Curve, spot time.Time, p Params, bumpBP float64) (float64, error) {
	bump := bumpBP / 10000
	up, err := CVA(n, disc, spot, Params{Spread: p.Spread + bump, Recovery: p.Recovery})
	if err != nil {
		return 0, fmt.Errorf("SpreadDV: %w", err)
	}
	down, err := CVA(n, disc, spot, Params{Spread: math.Max(p.Spread-bump, 0), Recovery: p.Recovery})
	if err != nil {
		return 0, fmt.Errorf("SpreadDV: %w", err)
	}
	return (up.Total - down.Total) / (2 * bumpBP), nil
}
