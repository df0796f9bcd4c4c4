package frn

import (
	"math"
	"testing"
	"time"

	"github.com/quantdesk/frnlib/config"
	"github.com/quantdesk/frnlib/curve"
)

func testNote(t *testing.T) Note {
	t.Helper()
	n, err := FromConfig(config.Default().Note)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	return n
}

func flatCurve(t *testing.T, settlement time.Time, rate float64) *curve.Curve {
	t.Helper()
	dates := []time.Time{settlement, settlement.AddDate(40, 0, 0)}
	c, err := curve.NewZeroCurve(settlement, dates, []float64{rate, rate})
	if err != nil {
		t.Fatalf("NewZeroCurve: %v", err)
	}
	return c
}

func TestCouponRateCollar(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	cases := []struct{ ref, want float64 }{
		{0.000, 0.016},
		{0.016, 0.016},
		{0.028, 0.028},
		{0.037, 0.037},
		{0.081, 0.037},
	}
	for _, tc := range cases {
		if got := n.CouponRate(tc.ref); math.Abs(got-tc.want) > 1e-15 {
			t.Errorf("CouponRate(%v) = %v, want %v", tc.ref, got, tc.want)
		}
	}
}

func TestValueDate(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	// Trade date 2024-11-24 is a Sunday; two business days later is Tuesday 26.
	got := n.ValueDate()
	want := time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ValueDate = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestNextPaymentDate(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	got := n.NextPaymentDate(n.TradeDate)
	want := time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextPaymentDate = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestScheduleCoversIssueToMaturity(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	periods := n.Schedule()

	// Five years of quarterly coupons.
	if len(periods) != 20 {
		t.Fatalf("got %d periods, want 20", len(periods))
	}
	if !periods[0].StartUnadjusted.Equal(n.IssueDate) {
		t.Errorf("first period starts %s, want issue date", periods[0].StartUnadjusted.Format("2006-01-02"))
	}
	last := periods[len(periods)-1]
	if !last.EndUnadjusted.Equal(n.MaturityDate) {
		t.Errorf("last period ends %s, want maturity", last.EndUnadjusted.Format("2006-01-02"))
	}

	for i, p := range periods {
		if !p.End.After(p.Start) {
			t.Errorf("period %d: end %s not after start %s", i, p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
		}
		if !p.ResetDate.Before(p.Start) {
			t.Errorf("period %d: reset %s not before start", i, p.ResetDate.Format("2006-01-02"))
		}
		// Quarterly 30/360 accrual should hover around a quarter year.
		acc := p.Accrual(n.CouponDayCount)
		if acc < 0.23 || acc > 0.27 {
			t.Errorf("period %d: accrual %v outside [0.23, 0.27]", i, acc)
		}
	}
}

func TestCurrentPeriod(t *testing.T) {
	t.Parallel()

	n := testNote(t)
	spot := time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)
	p, ok := n.CurrentPeriod(spot)
	if !ok {
		t.Fatal("expected a running period at spot")
	}
	if p.Start.After(spot) || p.End.Before(spot) {
		t.Errorf("period [%s, %s] does not contain spot", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
	}
	// The running period at the snapshot date spans Oct 2024 to Jan 2025.
	if p.EndUnadjusted.Month() != time.January || p.EndUnadjusted.Year() != 2025 {
		t.Errorf("running period ends %s, want Jan 2025", p.EndUnadjusted.Format("2006-01-02"))
	}

	if _, ok := n.CurrentPeriod(n.MaturityDate.AddDate(1, 0, 0)); ok {
		t.Error("no period should contain a date after maturity")
	}
}
