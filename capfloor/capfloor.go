// Package capfloor values the embedded optionality of a collared floating
// rate note as a strip of caplets and floorlets under the shifted Black
// model. Euro rates trade with a displaced lognormal quote convention, so
// both forward and strike carry the market shift before the usual Black
// formula applies.
package capfloor

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/frn"
	"github.com/quantdesk/frnlib/marketdata"
	"github.com/quantdesk/frnlib/utils"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ShiftedBlackCall returns the undiscounted value of a call on a shifted
// lognormal forward. At or past expiry it degenerates to intrinsic value.
func ShiftedBlackCall(forward, strike, shift, vol, expiry float64) float64 {
	f := forward + shift
	k := strike + shift
	if expiry <= 0 || vol <= 0 || f <= 0 || k <= 0 {
		return math.Max(forward-strike, 0)
	}
	sd := vol * math.Sqrt(expiry)
	d1 := (math.Log(f/k) + 0.5*sd*sd) / sd
	d2 := d1 - sd
	return f*stdNormal.CDF(d1) - k*stdNormal.CDF(d2)
}

// ShiftedBlackPut is the put counterpart of ShiftedBlackCall.
func ShiftedBlackPut(forward, strike, shift, vol, expiry float64) float64 {
	f := forward + shift
	k := strike + shift
	if expiry <= 0 || vol <= 0 || f <= 0 || k <= 0 {
		return math.Max(strike-forward, 0)
	}
	sd := vol * math.Sqrt(expiry)
	d1 := (math.Log(f/k) + 0.5*sd*sd) / sd
	d2 := d1 - sd
	return k*stdNormal.CDF(-d2) - f*stdNormal.CDF(-d1)
}

// Optionlet is one quarterly slice of the cap and floor strips.
type Optionlet struct {
	ResetDate   time.Time
	PaymentDate time.Time
	Expiry      float64
	Forward     float64
	Accrual     float64
	DF          float64
	CapletVol   float64
	FloorletVol float64
	CapletPV    float64
	FloorletPV  float64
}

// StripResult aggregates the strip values over the remaining life of a note.
type StripResult struct {
	Optionlets []Optionlet
	CapPV      float64
	FloorPV    float64
}

// Collar is the net option value held by the investor: long the floor,
// short the cap.
func (r StripResult) Collar() float64 {
	return r.FloorPV - r.CapPV
}

// PriceStrip values the caplet and floorlet strips embedded in the note at
// the cap and floor strikes. Only coupons whose fixing is still open at spot
// carry optionality; the running coupon is already set and contributes
// nothing. Option expiry is measured from spot to the reset date on ACT/360,
// matching the curve axis.
func PriceStrip(n frn.Note, disc *curve.Curve, vols *marketdata.VolSurface, shift float64, spot time.Time) (StripResult, error) {
	if vols == nil {
		return StripResult{}, fmt.Errorf("PriceStrip: nil vol surface")
	}
	if shift < 0 {
		return StripResult{}, fmt.Errorf("PriceStrip: negative shift %v", shift)
	}

	var res StripResult
	for _, p := range n.ScheduleFrom(spot) {
		if !p.ResetDate.After(spot) {
			continue
		}
		expiry := utils.YearFraction(spot, p.ResetDate, "ACT/360")
		fwd := disc.ForwardRate(p.Start, p.End)
		accrual := p.Accrual(n.CouponDayCount)
		df := disc.DF(p.End)

		capVol := vols.Vol(expiry, n.Cap*100)
		floorVol := vols.Vol(expiry, n.Floor*100)

		capPV := n.Notional * accrual * df * ShiftedBlackCall(fwd, n.Cap, shift, capVol, expiry)
		floorPV := n.Notional * accrual * df * ShiftedBlackPut(fwd, n.Floor, shift, floorVol, expiry)

		res.Optionlets = append(res.Optionlets, Optionlet{
			ResetDate:   p.ResetDate,
			PaymentDate: p.End,
			Expiry:      expiry,
			Forward:     fwd,
			Accrual:     accrual,
			DF:          df,
			CapletVol:   capVol,
			FloorletVol: floorVol,
			CapletPV:    capPV,
			FloorletPV:  floorPV,
		})
		res.CapPV += capPV
		res.FloorPV += floorPV
	}
	if len(res.Optionlets) == 0 {
		return res, fmt.Errorf("PriceStrip: no open fixings after %s", spot.Format("2006-01-02"))
	}
	return res, nil
}
