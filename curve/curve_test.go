package curve

import (
	"math"
	"testing"
	"time"

	"github.com/quantdesk/frnlib/calendar"
	"github.com/quantdesk/frnlib/marketdata"
	"github.com/quantdesk/frnlib/utils"
)

var testSettlement = time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)

func testInput() BootstrapInput {
	return BootstrapInput{
		Settlement: testSettlement,
		Cal:        calendar.TARGET,
		Deposits: []marketdata.DepositQuote{
			{RIC: "EURSWD", TenorMonths: 0, Rate: 3.153},
			{RIC: "EUR1MD", TenorMonths: 1, Rate: 3.091},
			{RIC: "EUR3MD", TenorMonths: 3, Rate: 2.983},
			{RIC: "EUR6MD", TenorMonths: 6, Rate: 2.812},
			{RIC: "EUR9MD", TenorMonths: 9, Rate: 2.662},
		},
		Swaps: []marketdata.SwapQuote{
			{Name: "EURAB6E2Y", MaturityYears: 2, Rate: 2.379},
			{Name: "EURAB6E3Y", MaturityYears: 3, Rate: 2.272},
			{Name: "EURAB6E4Y", MaturityYears: 4, Rate: 2.227},
			{Name: "EURAB6E5Y", MaturityYears: 5, Rate: 2.202},
			{Name: "EURAB6E7Y", MaturityYears: 7, Rate: 2.234},
			{Name: "EURAB6E10Y", MaturityYears: 10, Rate: 2.263},
			{Name: "EURAB6E20Y", MaturityYears: 20, Rate: 2.282},
			{Name: "EURAB6E30Y", MaturityYears: 30, Rate: 2.121},
		},
	}
}

func TestBootstrapDepositPillar(t *testing.T) {
	t.Parallel()

	c, err := Bootstrap(testInput(), InterpFlatForward)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	// The 3M deposit discounts exactly at its simple money-market rate.
	maturity := calendar.Adjust(calendar.TARGET, utils.AddMonth(testSettlement, 3))
	alpha := utils.YearFraction(testSettlement, maturity, "ACT/360")
	want := 1.0 / (1.0 + 0.02983*alpha)
	if got := c.DF(maturity); math.Abs(got-want) > 1e-10 {
		t.Errorf("DF(3M) = %.12f, want %.12f", got, want)
	}
}

func TestBootstrapRepricesParSwaps(t *testing.T) {
	t.Parallel()

	in := testInput()
	curves, err := BootstrapAll(in)
	if err != nil {
		t.Fatalf("BootstrapAll: %v", err)
	}

	for _, scheme := range Interpolations {
		c := curves[scheme]
		for _, q := range in.Swaps {
			maturity := calendar.Adjust(calendar.TARGET, utils.AddMonth(testSettlement, 12*q.MaturityYears))
			pv := c.DF(maturity)
			prev := testSettlement
			for i := 1; i <= q.MaturityYears; i++ {
				pay := calendar.Adjust(calendar.TARGET, utils.AddMonth(testSettlement, 12*i))
				if i == q.MaturityYears {
					pay = maturity
				}
				pv += q.Rate / 100.0 * utils.YearFraction(prev, pay, "30/360") * c.DF(pay)
				prev = pay
			}
			// Par condition: fixed leg plus redemption reprices to 1.
			if math.Abs(pv-1.0) > 5e-4 {
				t.Errorf("%s: %dY par swap PV = %.6f, want 1", scheme, q.MaturityYears, pv)
			}
		}
	}
}

func TestSchemesAgreeAtPillars(t *testing.T) {
	t.Parallel()

	curves, err := BootstrapAll(testInput())
	if err != nil {
		t.Fatalf("BootstrapAll: %v", err)
	}

	ref := curves[InterpFlatForward]
	for _, d := range ref.PillarDates()[1:] {
		want := ref.DF(d)
		for _, scheme := range Interpolations {
			if got := curves[scheme].DF(d); math.Abs(got-want) > 1e-9 {
				t.Errorf("%s: DF(%s) = %.12f, want %.12f", scheme, d.Format("2006-01-02"), got, want)
			}
		}
	}
}

func TestDiscountFactorsDecrease(t *testing.T) {
	t.Parallel()

	c, err := Bootstrap(testInput(), InterpLogCubicDiscount)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	prev := 1.0
	for months := 3; months <= 360; months += 3 {
		d := utils.AddMonth(testSettlement, months)
		df := c.DF(d)
		if df <= 0 || df > prev+1e-12 {
			t.Fatalf("DF not decreasing at %dM: %.12f after %.12f", months, df, prev)
		}
		prev = df
	}
}

func TestForwardRateFlatCurve(t *testing.T) {
	t.Parallel()

	// A single flat zero rate implies forwards close to that rate.
	dates := []time.Time{testSettlement, testSettlement.AddDate(10, 0, 0)}
	c, err := NewZeroCurve(testSettlement, dates, []float64{0.02, 0.02})
	if err != nil {
		t.Fatalf("NewZeroCurve: %v", err)
	}

	start := testSettlement.AddDate(1, 0, 0)
	end := testSettlement.AddDate(1, 3, 0)
	fwd := c.ForwardRate(start, end)
	// Continuous 2% compounded onto an ACT/360 simple quarter.
	if math.Abs(fwd-0.02) > 15e-4 {
		t.Errorf("forward = %.6f, want ~0.02", fwd)
	}
}

func TestZeroRateRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := Bootstrap(testInput(), InterpLinearZero)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	d := utils.AddMonth(testSettlement, 30)
	z := c.ZeroRate(d)
	tt := utils.YearFraction(testSettlement, d, "ACT/360")
	if got := c.DF(d); math.Abs(got-math.Exp(-z*tt)) > 1e-12 {
		t.Errorf("DF/zero mismatch: DF=%.12f exp(-zt)=%.12f", got, math.Exp(-z*tt))
	}
}

func TestAnnualForwardsStayPlausible(t *testing.T) {
	t.Parallel()

	// The 1Y forwards drive the scheme-comparison table and chart out to
	// 60 years, past the last 30Y pillar.
	curves, err := BootstrapAll(testInput())
	if err != nil {
		t.Fatalf("BootstrapAll: %v", err)
	}
	for _, scheme := range Interpolations {
		c := curves[scheme]
		for y := 1; y <= 60; y++ {
			d := testSettlement.AddDate(y, 0, 0)
			if df := c.DF(d); df <= 0 || df > 1 {
				t.Fatalf("%s: DF at %dY = %v outside (0, 1]", scheme, y, df)
			}
			fwd := c.ForwardRate(d, d.AddDate(1, 0, 0))
			if fwd < -0.02 || fwd > 0.10 {
				t.Errorf("%s: 1Y forward at %dY = %v outside [-2%%, 10%%]", scheme, y, fwd)
			}
		}
	}
}

func TestCubicSplineReproducesKnots(t *testing.T) {
	t.Parallel()

	xs := []float64{0, 1, 2.5, 4, 7}
	ys := []float64{0.03, 0.027, 0.024, 0.0225, 0.023}
	s := newCubicSpline(xs, ys)
	for i := range xs {
		if got := s.at(xs[i]); math.Abs(got-ys[i]) > 1e-12 {
			t.Errorf("spline at knot %v = %.12f, want %.12f", xs[i], got, ys[i])
		}
	}
	// Between knots the natural spline stays within a loose band of its
	// neighbours for this gently varying data.
	mid := s.at(1.75)
	if mid < 0.023 || mid > 0.028 {
		t.Errorf("spline at 1.75 = %.6f outside [0.023, 0.028]", mid)
	}
}
