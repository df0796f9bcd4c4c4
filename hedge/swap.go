// Package hedge sizes an interest rate swap hedge for the note. The hedge
// instrument is a freshly reset payer swap, so its floating leg collapses to
// notional times one minus the terminal discount factor.
package hedge

import (
	"fmt"
	"time"

	"github.com/quantdesk/frnlib/calendar"
	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/utils"
)

// Swap is a plain vanilla payer swap with an annual fixed leg.
type Swap struct {
	Effective time.Time
	Maturity  time.Time
	FixedRate float64
	Notional  float64
	Cal       calendar.CalendarID
	DayCount  string
}

// NewSwap builds a payer swap spanning effective to maturity on the TARGET
// calendar with ACT/360 fixed accruals.
func NewSwap(effective, maturity time.Time, fixedRate, notional float64) (Swap, error) {
	if !maturity.After(effective) {
		return Swap{}, fmt.Errorf("NewSwap: maturity %s not after effective %s",
			maturity.Format("2006-01-02"), effective.Format("2006-01-02"))
	}
	if notional <= 0 {
		return Swap{}, fmt.Errorf("NewSwap: non-positive notional %v", notional)
	}
	return Swap{
		Effective: effective,
		Maturity:  maturity,
		FixedRate: fixedRate,
		Notional:  notional,
		Cal:       calendar.TARGET,
		DayCount:  "ACT/360",
	}, nil
}

// FixedDates returns the adjusted annual fixed leg payment dates. An
// effective date at month end rolls each anniversary to month end before
// the business day adjustment.
func (s Swap) FixedDates() []time.Time {
	var dates []time.Time
	for i := 1; ; i++ {
		raw := s.Effective.AddDate(i, 0, 0)
		if raw.After(s.Maturity) {
			break
		}
		dates = append(dates, calendar.AddYearsWithRoll(s.Cal, s.Effective, i))
		if raw.Equal(s.Maturity) {
			break
		}
	}
	if len(dates) == 0 || dates[len(dates)-1].Before(calendar.Adjust(s.Cal, s.Maturity)) {
		dates = append(dates, calendar.Adjust(s.Cal, s.Maturity))
	}
	return dates
}

// FixedLegPV discounts the annual fixed coupons.
func (s Swap) FixedLegPV(disc *curve.Curve) float64 {
	prev := calendar.Adjust(s.Cal, s.Effective)
	var pv float64
	for _, d := range s.FixedDates() {
		alpha := utils.YearFraction(prev, d, s.DayCount)
		pv += s.Notional * s.FixedRate * alpha * disc.DF(d)
		prev = d
	}
	return pv
}

// FloatingLegPV values a leg that has just reset: par less the discounted
// final notional exchange.
func (s Swap) FloatingLegPV(disc *curve.Curve) float64 {
	return s.Notional * (1 - disc.DF(calendar.Adjust(s.Cal, s.Maturity)))
}

// NPV is the payer's value: receive floating, pay fixed.
func (s Swap) NPV(disc *curve.Curve) float64 {
	return s.FloatingLegPV(disc) - s.FixedLegPV(disc)
}

// BumpedNPV reprices the swap off a rebuilt curve whose sampled zeros are
// shifted in parallel by bumpBP.
func (s Swap) BumpedNPV(disc *curve.Curve, bumpBP float64) (float64, error) {
	grid := curve.SampleGrid(disc.Settlement(), 60, 100)
	rates := curve.ParallelShift(curve.SampleZeroRates(disc, grid), bumpBP)
	bumped, err := curve.NewZeroCurve(disc.Settlement(), grid, rates)
	if err != nil {
		return 0, fmt.Errorf("BumpedNPV: %w", err)
	}
	return s.NPV(bumped), nil
}

// DV01 is the symmetric-difference value change per basis point. It is
// positive for a payer swap.
func (s Swap) DV01(disc *curve.Curve, bumpBP float64) (float64, error) {
	up, err := s.BumpedNPV(disc, bumpBP)
	if err != nil {
		return 0, fmt.Errorf("DV01: %w", err)
	}
	down, err := s.BumpedNPV(disc, -bumpBP)
	if err != nil {
		return 0, fmt.Errorf("DV01: %w", err)
	}
	return (up - down) / (2 * bumpBP), nil
}

// ScenarioNPV is the swap value under one named curve scenario.
type ScenarioNPV struct {
	Label string
	NPV   float64
}

// ScenarioNPVs reprices the swap under every curve in the set.
func (s Swap) ScenarioNPVs(set *curve.ScenarioSet) []ScenarioNPV {
	out := make([]ScenarioNPV, 0, len(set.Labels))
	for _, label := range set.Labels {
		out = append(out, ScenarioNPV{Label: label, NPV: s.NPV(set.Curves[label])})
	}
	return out
}
