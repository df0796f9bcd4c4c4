package frn

import (
	"math"
	"testing"
	"time"
)

func TestFixedScenarioLegs(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	spot := n.ValueDate()
	disc := flatCurve(t, spot, 0.02)

	floorLeg := n.FixedScenarioLeg(disc, n.Floor, n.IssueDate)
	capLeg := n.FixedScenarioLeg(disc, n.Cap, n.IssueDate)
	if len(floorLeg) != 20 || len(capLeg) != 20 {
		t.Fatalf("got %d / %d cashflows, want 20", len(floorLeg), len(capLeg))
	}

	var floorPV, capPV float64
	for i := range floorLeg {
		if floorLeg[i].Coupon <= 0 {
			t.Errorf("row %d: non-positive floor coupon %v", i, floorLeg[i].Coupon)
		}
		if capLeg[i].Coupon <= floorLeg[i].Coupon {
			t.Errorf("row %d: cap coupon %v not above floor coupon %v", i, capLeg[i].Coupon, floorLeg[i].Coupon)
		}
		floorPV += floorLeg[i].PV
		capPV += capLeg[i].PV
	}
	if capPV <= floorPV {
		t.Errorf("cap leg PV %v not above floor leg PV %v", capPV, floorPV)
	}
}

func TestProjectedLeg(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	spot := n.ValueDate()
	disc := flatCurve(t, spot, 0.02)

	flows := n.ProjectedLeg(disc, spot)
	if len(flows) == 0 {
		t.Fatal("no cashflows")
	}

	last := flows[len(flows)-1]
	if last.Principal != n.Notional {
		t.Errorf("last row principal %v, want notional %v", last.Principal, n.Notional)
	}
	for i, cf := range flows {
		if cf.Principal != 0 {
			continue
		}
		if cf.Rate < n.Floor-1e-15 || cf.Rate > n.Cap+1e-15 {
			t.Errorf("row %d: rate %v outside collar [%v, %v]", i, cf.Rate, n.Floor, n.Cap)
		}
		if cf.PaymentDate.Before(spot) {
			t.Errorf("row %d: payment %s before spot", i, cf.PaymentDate.Format("2006-01-02"))
		}
		if cf.DF <= 0 || cf.DF > 1 {
			t.Errorf("row %d: discount factor %v out of range", i, cf.DF)
		}
	}

	// A flat 2% curve projects forwards near 2%, which the floor lifts to 1.6%
	// only when the forward dips below it; here every rate should sit at the
	// projected forward, inside the collar.
	if flows[1].Rate <= n.Floor || flows[1].Rate >= n.Cap {
		t.Errorf("second coupon rate %v should be strictly inside the collar on a flat 2%% curve", flows[1].Rate)
	}
}

func TestPriceIdentities(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	spot := n.ValueDate()
	disc := flatCurve(t, spot, 0.02)

	res, err := n.Price(disc, spot)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if math.Abs(res.Dirty-res.Accrued-res.Clean) > 1e-10 {
		t.Errorf("clean %v != dirty %v - accrued %v", res.Clean, res.Dirty, res.Accrued)
	}
	if res.Accrued <= 0 {
		t.Errorf("accrued %v should be positive mid-period", res.Accrued)
	}
	// Roughly par on a flat curve near the collar mid.
	if res.Dirty < 0.9*n.Notional || res.Dirty > 1.1*n.Notional {
		t.Errorf("dirty price %v far from par %v", res.Dirty, n.Notional)
	}
}

func TestDV01(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	spot := n.ValueDate()
	disc := flatCurve(t, spot, 0.02)

	base, err := n.Price(disc, spot)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}

	up, err := n.BumpedCleanPrice(disc, spot, 10)
	if err != nil {
		t.Fatalf("BumpedCleanPrice(+10): %v", err)
	}
	down, err := n.BumpedCleanPrice(disc, spot, -10)
	if err != nil {
		t.Fatalf("BumpedCleanPrice(-10): %v", err)
	}
	if up >= base.Clean {
		t.Errorf("clean price should fall when rates rise: up %v, base %v", up, base.Clean)
	}
	if down <= base.Clean {
		t.Errorf("clean price should rise when rates fall: down %v, base %v", down, base.Clean)
	}

	dv01, err := n.DV01(disc, spot, 10)
	if err != nil {
		t.Fatalf("DV01: %v", err)
	}
	if dv01 <= 0 {
		t.Errorf("DV01 %v should be positive for a long bond", dv01)
	}
	want := (down - up) / 20
	if math.Abs(dv01-want) > 1e-10 {
		t.Errorf("DV01 %v != symmetric difference %v", dv01, want)
	}
}

func TestHistoricalCoupons(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	asOf := time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)

	// A feed that always fixes at 0.5%, below the floor.
	feed := stubFeed(0.5)
	rows, err := n.HistoricalCoupons(feed, "3M", asOf)
	if err != nil {
		t.Fatalf("HistoricalCoupons: %v", err)
	}
	// Ten quarterly fixings from Jul 2022 through Oct 2024.
	if len(rows) != 10 {
		t.Fatalf("got %d fixed coupons, want 10", len(rows))
	}
	for i, r := range rows {
		if r.RatePercent != n.Floor*100 {
			t.Errorf("row %d: rate %v%%, want floor %v%%", i, r.RatePercent, n.Floor*100)
		}
		if r.Period.ResetDate.After(asOf) {
			t.Errorf("row %d: reset %s after as-of", i, r.Period.ResetDate.Format("2006-01-02"))
		}
		want := n.Notional * n.Floor * r.Period.Accrual(n.CouponDayCount)
		if math.Abs(r.Amount-want) > 1e-10 {
			t.Errorf("row %d: amount %v, want %v", i, r.Amount, want)
		}
	}
}

type stubFeed float64

func (s stubFeed) RateOn(time.Time, string) (float64, bool) { return float64(s), true }
