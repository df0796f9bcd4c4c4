package frn

import (
	"fmt"
	"time"

	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/utils"
)

// PriceResult is the model price of the note as of a spot date.
type PriceResult struct {
	Dirty     float64
	Accrued   float64
	Clean     float64
	Cashflows []Cashflow
}

// Price discounts the projected collared coupons plus redemption and splits
// the dirty price into clean and accrued (30/360 from period start to spot).
func (n Note) Price(disc *curve.Curve, spot time.Time) (PriceResult, error) {
	if disc == nil {
		return PriceResult{}, fmt.Errorf("Price: discount curve is required")
	}
	if spot.IsZero() {
		spot = disc.Settlement()
	}

	flows := n.ProjectedLeg(disc, spot)
	dirty := 0.0
	for _, cf := range flows {
		dirty += cf.PV
	}

	accrued := n.AccruedInterest(disc, spot)
	return PriceResult{
		Dirty:     dirty,
		Accrued:   accrued,
		Clean:     dirty - accrued,
		Cashflows: flows,
	}, nil
}

// AccruedInterest accrues the running period's collared rate from period
// start to spot on the coupon basis.
func (n Note) AccruedInterest(disc *curve.Curve, spot time.Time) float64 {
	p, ok := n.CurrentPeriod(spot)
	if !ok {
		return 0.0
	}
	fwd := n.periodForward(disc, p, spot)
	rate := n.CouponRate(fwd)
	return n.Notional * rate * utils.YearFraction(p.Start, spot, n.CouponDayCount)
}

// BumpedCleanPrice reprices the note off a curve whose sampled zeros are all
// moved by bumpBP basis points.
func (n Note) BumpedCleanPrice(disc *curve.Curve, spot time.Time, bumpBP float64) (float64, error) {
	grid := curve.SampleGrid(disc.Settlement(), 60, 100)
	bumpedRates := curve.ParallelShift(curve.SampleZeroRates(disc, grid), bumpBP)
	bumped, err := curve.NewZeroCurve(disc.Settlement(), grid, bumpedRates)
	if err != nil {
		return 0, fmt.Errorf("BumpedCleanPrice: %w", err)
	}
	res, err := n.Price(bumped, spot)
	if err != nil {
		return 0, err
	}
	return res.Clean, nil
}

// DV01 estimates the clean-price sensitivity per basis point via a symmetric
// finite difference.
func (n Note) DV01(disc *curve.Curve, spot time.Time, bumpBP float64) (float64, error) {
	up, err := n.BumpedCleanPrice(disc, spot, bumpBP)
	if err != nil {
		return 0, err
	}
	down, err := n.BumpedCleanPrice(disc, spot, -bumpBP)
	if err != nil {
		return 0, err
	}
	return (down - up) / (2.0 * bumpBP), nil
}

// ScenarioPrice is the note repriced under one curve scenario.
type ScenarioPrice struct {
	Label   string
	Gross   float64
	Accrued float64
	Clean   float64
}

// ScenarioPrices reprices the note under each curve of a scenario set, in
// the set's label order.
func (n Note) ScenarioPrices(set *curve.ScenarioSet, spot time.Time) ([]ScenarioPrice, error) {
	prices := make([]ScenarioPrice, 0, len(set.Labels))
	for _, label := range set.Labels {
		res, err := n.Price(set.Curves[label], spot)
		if err != nil {
			return nil, fmt.Errorf("ScenarioPrices: %s: %w", label, err)
		}
		prices = append(prices, ScenarioPrice{
			Label:   label,
			Gross:   res.Dirty,
			Accrued: res.Accrued,
			Clean:   res.Clean,
		})
	}
	return prices, nil
}
