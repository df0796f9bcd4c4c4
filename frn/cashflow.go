package frn

import (
	"fmt"
	"time"

	"github.com/quantdesk/frnlib/calendar"
	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/marketdata"
)

// Cashflow is one projected or realised payment of the note.
type Cashflow struct {
	Period      CouponPeriod
	PaymentDate time.Time
	ForwardRate float64 // raw reference rate before the collar, decimal
	Rate        float64 // collared rate actually paid, decimal
	Accrual     float64
	Coupon      float64
	Principal   float64
	DF          float64
	PV          float64
}

// Amount is coupon plus principal.
func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// FixedScenarioLeg prices the remaining coupons at one constant rate
// (cap for the best case, floor for the worst case). Only coupon periods
// starting on or after `from` are included; no redemption row.
func (n Note) FixedScenarioLeg(disc *curve.Curve, rate float64, from time.Time) []Cashflow {
	var flows []Cashflow
	for _, p := range n.ScheduleFrom(from) {
		accrual := p.Accrual(n.CouponDayCount)
		coupon := n.Notional * rate * accrual
		df := disc.DF(p.End)
		flows = append(flows, Cashflow{
			Period:      p,
			PaymentDate: p.End,
			Rate:        rate,
			Accrual:     accrual,
			Coupon:      coupon,
			DF:          df,
			PV:          coupon * df,
		})
	}
	return flows
}

// ProjectedLeg projects the remaining collared coupons off the curve's
// forwards and appends the redemption at maturity.
//
// For the period containing spot, the forward is taken from the reset date
// (or spot, whichever is later) so the stub is projected rather than fixed;
// the snapshot has no published fixing for it.
func (n Note) ProjectedLeg(disc *curve.Curve, spot time.Time) []Cashflow {
	var flows []Cashflow
	for _, p := range n.Schedule() {
		if !p.End.After(spot) {
			continue
		}
		fwd := n.periodForward(disc, p, spot)
		rate := n.CouponRate(fwd)
		accrual := p.Accrual(n.CouponDayCount)
		coupon := n.Notional * rate * accrual
		df := disc.DF(p.End)
		flows = append(flows, Cashflow{
			Period:      p,
			PaymentDate: p.End,
			ForwardRate: fwd,
			Rate:        rate,
			Accrual:     accrual,
			Coupon:      coupon,
			DF:          df,
			PV:          coupon * df,
		})
	}

	redemptionDate := calendar.Adjust(n.Cal, n.MaturityDate)
	df := disc.DF(redemptionDate)
	flows = append(flows, Cashflow{
		PaymentDate: redemptionDate,
		Principal:   n.Notional,
		DF:          df,
		PV:          n.Notional * df,
	})
	return flows
}

// periodForward picks the forward start for a coupon period: the adjusted
// start for future periods, the reset date (capped at spot) for the period
// already running.
func (n Note) periodForward(disc *curve.Curve, p CouponPeriod, spot time.Time) float64 {
	start := p.Start
	if p.Start.Before(spot) {
		start = p.ResetDate
		if spot.After(p.ResetDate) {
			start = spot
		}
	}
	if !start.Before(p.End) {
		return 0.0
	}
	if start.Before(spot) {
		start = spot
	}
	return disc.ForwardRate(start, p.End)
}

// HistoricalCoupon is a past coupon reconstructed from published fixings.
type HistoricalCoupon struct {
	Period        CouponPeriod
	FixingPercent float64 // published index fixing, percent
	RatePercent   float64 // collared coupon rate, percent
	Amount        float64
}

// HistoricalCoupons reconstructs the coupons already fixed before asOf from
// an index fixing feed (3M Euribor). Periods whose reset has no published
// fixing (weekends in the export) search back up to five calendar days.
func (n Note) HistoricalCoupons(feed marketdata.FixingFeed, tenor string, asOf time.Time) ([]HistoricalCoupon, error) {
	var coupons []HistoricalCoupon
	for _, p := range n.Schedule() {
		if p.ResetDate.After(asOf) {
			break
		}
		fixing, ok := lookbackFixing(feed, tenor, p.ResetDate)
		if !ok {
			return nil, fmt.Errorf("HistoricalCoupons: no %s fixing on or before %s", tenor, p.ResetDate.Format("2006-01-02"))
		}
		rate := n.CouponRate(fixing/100.0) * 100.0
		coupons = append(coupons, HistoricalCoupon{
			Period:        p,
			FixingPercent: fixing,
			RatePercent:   rate,
			Amount:        n.Notional * rate / 100.0 * p.Accrual(n.CouponDayCount),
		})
	}
	return coupons, nil
}

func lookbackFixing(feed marketdata.FixingFeed, tenor string, reset time.Time) (float64, bool) {
	for i := 0; i < 5; i++ {
		if rate, ok := feed.RateOn(reset.AddDate(0, 0, -i), tenor); ok {
			return rate, true
		}
	}
	return 0, false
}
