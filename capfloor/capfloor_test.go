package capfloor

import (
	"math"
	"testing"
	"time"

	"github.com/quantdesk/frnlib/config"
	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/frn"
	"github.com/quantdesk/frnlib/marketdata"
)

func TestShiftedBlackParity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                          string
		forward, strike, shift, vol, expiry float64
	}{
		{"atm", 0.025, 0.025, 0.03, 0.30, 1.0},
		{"itm call", 0.030, 0.016, 0.03, 0.45, 0.5},
		{"otm call", 0.020, 0.037, 0.03, 0.25, 2.0},
		{"negative forward", -0.005, 0.016, 0.03, 0.60, 1.5},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			call := ShiftedBlackCall(tc.forward, tc.strike, tc.shift, tc.vol, tc.expiry)
			put := ShiftedBlackPut(tc.forward, tc.strike, tc.shift, tc.vol, tc.expiry)
			if got, want := call-put, tc.forward-tc.strike; math.Abs(got-want) > 1e-12 {
				t.Errorf("parity: call-put = %v, want %v", got, want)
			}
			if call < math.Max(tc.forward-tc.strike, 0)-1e-12 {
				t.Errorf("call %v below intrinsic", call)
			}
			if put < math.Max(tc.strike-tc.forward, 0)-1e-12 {
				t.Errorf("put %v below intrinsic", put)
			}
		})
	}
}

func TestShiftedBlackExpiry(t *testing.T) {
	t.Parallel()

	if got := ShiftedBlackCall(0.03, 0.02, 0.03, 0.4, 0); got != 0.01 {
		t.Errorf("expired call = %v, want intrinsic 0.01", got)
	}
	if got := ShiftedBlackPut(0.01, 0.02, 0.03, 0.4, 0); got != 0.01 {
		t.Errorf("expired put = %v, want intrinsic 0.01", got)
	}
}

func TestShiftedBlackVolMonotone(t *testing.T) {
	t.Parallel()

	lo := ShiftedBlackCall(0.025, 0.037, 0.03, 0.20, 1.0)
	hi := ShiftedBlackCall(0.025, 0.037, 0.03, 0.50, 1.0)
	if hi <= lo {
		t.Errorf("call value should grow with vol: %v <= %v", hi, lo)
	}
}

func testSurface() *marketdata.VolSurface {
	return &marketdata.VolSurface{
		Maturities: []float64{0.25, 1, 2, 3},
		Strikes:    []float64{1.0, 2.0, 3.0, 4.0},
		Vols: [][]float64{
			{0.50, 0.45, 0.42, 0.40},
			{0.42, 0.38, 0.35, 0.34},
			{0.38, 0.34, 0.32, 0.31},
			{0.35, 0.32, 0.30, 0.29},
		},
	}
}

func TestPriceStrip(t *testing.T) {
	t.Parallel()

	n, err := frn.FromConfig(config.Default().Note)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	spot := n.ValueDate()

	dates := []time.Time{spot, spot.AddDate(40, 0, 0)}
	disc, err := curve.NewZeroCurve(spot, dates, []float64{0.025, 0.025})
	if err != nil {
		t.Fatalf("NewZeroCurve: %v", err)
	}

	res, err := PriceStrip(n, disc, testSurface(), 0.03, spot)
	if err != nil {
		t.Fatalf("PriceStrip: %v", err)
	}

	// Nov 2024 to Jul 2027 leaves ten open fixings once the running coupon
	// is excluded.
	if len(res.Optionlets) != 10 {
		t.Fatalf("got %d optionlets, want 10", len(res.Optionlets))
	}
	if res.CapPV <= 0 || res.FloorPV <= 0 {
		t.Errorf("strip PVs should be positive: cap %v, floor %v", res.CapPV, res.FloorPV)
	}
	if got := res.Collar(); math.Abs(got-(res.FloorPV-res.CapPV)) > 1e-12 {
		t.Errorf("Collar() = %v, want floor-cap", got)
	}
	for i, o := range res.Optionlets {
		if !o.ResetDate.After(spot) {
			t.Errorf("optionlet %d: reset %s not after spot", i, o.ResetDate.Format("2006-01-02"))
		}
		if o.Expiry <= 0 {
			t.Errorf("optionlet %d: non-positive expiry %v", i, o.Expiry)
		}
		if i > 0 && o.Expiry <= res.Optionlets[i-1].Expiry {
			t.Errorf("optionlet %d: expiries not increasing", i)
		}
	}

	// With forwards near 2.5% and a 1.6% floor against a 3.7% cap, the floor
	// is closer to the money only in vol terms; both strips stay small
	// relative to notional.
	if res.CapPV > 0.05*n.Notional || res.FloorPV > 0.05*n.Notional {
		t.Errorf("strip values implausibly large: cap %v, floor %v", res.CapPV, res.FloorPV)
	}
}
