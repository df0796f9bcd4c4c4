package curve

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/quantdesk/frnlib/calendar"
	"github.com/quantdesk/frnlib/marketdata"
	"github.com/quantdesk/frnlib/utils"
)

// Interpolation selects how the curve interpolates between bootstrapped pillars.
type Interpolation string

const (
	// InterpLinearZero interpolates linearly on continuous zero rates.
	InterpLinearZero Interpolation = "Linear"
	// InterpFlatForward interpolates log-linearly on discount factors
	// (piecewise-constant instantaneous forwards).
	InterpFlatForward Interpolation = "Flat"
	// InterpCubicZero fits a natural cubic spline through zero rates.
	InterpCubicZero Interpolation = "Cubic"
	// InterpLogCubicDiscount fits a natural cubic spline through log
	// discount factors. This is the scheme the valuation tools use.
	InterpLogCubicDiscount Interpolation = "Log-Cubic"
)

// Interpolations lists the supported schemes in presentation order.
var Interpolations = []Interpolation{InterpLinearZero, InterpFlatForward, InterpCubicZero, InterpLogCubicDiscount}

// curveDayCount is the time basis of the curve axis. The snapshot curves are
// EUR money-market curves quoted ACT/360.
const curveDayCount = "ACT/360"

// Curve is a discount curve over bootstrapped (or supplied) pillars.
type Curve struct {
	settlement time.Time
	dates      []time.Time
	times      []float64 // year fractions from settlement, ACT/360
	dfs        []float64
	zeros      []float64 // continuous zero rates, decimal
	interp     Interpolation
	spline     *cubicSpline // on zeros or log-DFs, scheme dependent
}

// BootstrapInput collects the snapshot quotes that pin the curve.
type BootstrapInput struct {
	Settlement time.Time
	Cal        calendar.CalendarID
	Deposits   []marketdata.DepositQuote
	Swaps      []marketdata.SwapQuote
}

// Bootstrap builds a discount curve from deposit and par swap quotes.
//
// Deposits give discount factors directly (simple ACT/360 money-market
// rates). Swap pillars are solved sequentially: each quoted maturity is the
// unknown in the par equation 1 = s·Σ αᵢ·D(tᵢ) + D(T), with coupon dates
// between the previous pillar and the new maturity interpolated log-linearly
// on the unknown, Newton-Raphson style.
func Bootstrap(in BootstrapInput, interp Interpolation) (*Curve, error) {
	if in.Settlement.IsZero() {
		return nil, fmt.Errorf("Bootstrap: Settlement is required")
	}
	if len(in.Deposits) == 0 {
		return nil, fmt.Errorf("Bootstrap: deposit quotes are required")
	}
	if len(in.Swaps) == 0 {
		return nil, fmt.Errorf("Bootstrap: swap quotes are required")
	}
	if in.Cal == "" {
		in.Cal = calendar.TARGET
	}

	pillarDF := map[time.Time]float64{in.Settlement: 1.0}
	pillars := []time.Time{in.Settlement}

	// Deposit pillars: DF = 1 / (1 + r·α).
	deposits := append([]marketdata.DepositQuote(nil), in.Deposits...)
	sort.Slice(deposits, func(i, j int) bool { return deposits[i].TenorMonths < deposits[j].TenorMonths })
	for _, q := range deposits {
		maturity := depositMaturity(in.Cal, in.Settlement, q.TenorMonths)
		alpha := utils.YearFraction(in.Settlement, maturity, "ACT/360")
		df := 1.0 / (1.0 + q.Rate/100.0*alpha)
		if _, dup := pillarDF[maturity]; dup {
			continue
		}
		pillarDF[maturity] = df
		pillars = append(pillars, maturity)
	}
	utils.SortDates(pillars)

	// Swap pillars, solved in maturity order.
	swaps := append([]marketdata.SwapQuote(nil), in.Swaps...)
	sort.Slice(swaps, func(i, j int) bool { return swaps[i].MaturityYears < swaps[j].MaturityYears })
	for _, q := range swaps {
		maturity := calendar.Adjust(in.Cal, utils.AddMonth(in.Settlement, 12*q.MaturityYears))
		if _, dup := pillarDF[maturity]; dup {
			continue
		}
		coupons := annualFixedCoupons(in.Cal, in.Settlement, maturity, q.MaturityYears)
		df, err := solvePillarDF(in.Settlement, pillars, pillarDF, coupons, maturity, q.Rate/100.0)
		if err != nil {
			return nil, fmt.Errorf("Bootstrap: %dY pillar: %w", q.MaturityYears, err)
		}
		pillarDF[maturity] = df
		pillars = append(pillars, maturity)
		utils.SortDates(pillars)
	}

	dfs := make([]float64, len(pillars))
	for i, d := range pillars {
		dfs[i] = pillarDF[d]
	}
	return NewCurve(in.Settlement, pillars, dfs, interp)
}

// BootstrapAll builds one curve per interpolation scheme over a shared
// pillar set.
func BootstrapAll(in BootstrapInput) (map[Interpolation]*Curve, error) {
	base, err := Bootstrap(in, InterpFlatForward)
	if err != nil {
		return nil, err
	}
	out := make(map[Interpolation]*Curve, len(Interpolations))
	for _, scheme := range Interpolations {
		c, err := NewCurve(base.settlement, base.dates, base.dfs, scheme)
		if err != nil {
			return nil, err
		}
		out[scheme] = c
	}
	return out, nil
}

// NewCurve builds a curve from explicit pillar discount factors.
// Dates must be ascending and start at the settlement date with DF 1.
func NewCurve(settlement time.Time, dates []time.Time, dfs []float64, interp Interpolation) (*Curve, error) {
	if len(dates) != len(dfs) {
		return nil, fmt.Errorf("NewCurve: %d dates vs %d discount factors", len(dates), len(dfs))
	}
	if len(dates) < 2 {
		return nil, fmt.Errorf("NewCurve: need at least 2 pillars")
	}

	c := &Curve{
		settlement: settlement,
		dates:      append([]time.Time(nil), dates...),
		dfs:        append([]float64(nil), dfs...),
		interp:     interp,
	}
	c.times = make([]float64, len(dates))
	c.zeros = make([]float64, len(dates))
	for i, d := range dates {
		c.times[i] = utils.YearFraction(settlement, d, curveDayCount)
		if i == 0 {
			continue
		}
		if dfs[i] <= 0 {
			return nil, fmt.Errorf("NewCurve: non-positive discount factor at %s", d.Format("2006-01-02"))
		}
		c.zeros[i] = -math.Log(dfs[i]) / c.times[i]
	}
	// Zero rate at the settlement pillar: extend the first segment flat.
	if len(c.zeros) > 1 {
		c.zeros[0] = c.zeros[1]
	}

	switch interp {
	case InterpCubicZero:
		c.spline = newCubicSpline(c.times, c.zeros)
	case InterpLogCubicDiscount:
		logDFs := make([]float64, len(dfs))
		for i, df := range c.dfs {
			logDFs[i] = math.Log(df)
		}
		c.spline = newCubicSpline(c.times, logDFs)
	case InterpLinearZero, InterpFlatForward:
		// piecewise schemes need no precomputation
	default:
		return nil, fmt.Errorf("NewCurve: unknown interpolation %q", interp)
	}
	return c, nil
}

// NewZeroCurve builds a linear-zero curve from sampled continuous zero rates,
// with flat extrapolation outside the node range. This mirrors what the
// scenario shifts produce.
func NewZeroCurve(settlement time.Time, dates []time.Time, zeroRates []float64) (*Curve, error) {
	if len(dates) != len(zeroRates) {
		return nil, fmt.Errorf("NewZeroCurve: %d dates vs %d rates", len(dates), len(zeroRates))
	}
	if len(dates) < 2 {
		return nil, fmt.Errorf("NewZeroCurve: need at least 2 nodes")
	}
	c := &Curve{
		settlement: settlement,
		dates:      append([]time.Time(nil), dates...),
		zeros:      append([]float64(nil), zeroRates...),
		interp:     InterpLinearZero,
	}
	c.times = make([]float64, len(dates))
	c.dfs = make([]float64, len(dates))
	for i, d := range dates {
		c.times[i] = utils.YearFraction(settlement, d, curveDayCount)
		c.dfs[i] = math.Exp(-c.zeros[i] * c.times[i])
	}
	return c, nil
}

// Settlement returns the curve's settlement date.
func (c *Curve) Settlement() time.Time {
	return c.settlement
}

// Scheme returns the interpolation scheme.
func (c *Curve) Scheme() Interpolation {
	return c.interp
}

// PillarDates returns the pillar date grid.
func (c *Curve) PillarDates() []time.Time {
	return c.dates
}

// ZeroRate returns the continuously compounded zero rate (decimal) at t.
func (c *Curve) ZeroRate(t time.Time) float64 {
	x := utils.YearFraction(c.settlement, t, curveDayCount)
	if x <= 0 {
		return c.zeros[0]
	}
	return c.zeroAt(x)
}

// DF returns the discount factor at t, extrapolating flat in zero rate
// beyond the last pillar.
func (c *Curve) DF(t time.Time) float64 {
	x := utils.YearFraction(c.settlement, t, curveDayCount)
	if x <= 0 {
		return 1.0
	}
	return math.Exp(-c.zeroAt(x) * x)
}

// ForwardRate returns the simply compounded forward rate (decimal, ACT/360)
// between start and end.
func (c *Curve) ForwardRate(start, end time.Time) float64 {
	if !end.After(start) {
		return 0.0
	}
	alpha := utils.YearFraction(start, end, "ACT/360")
	return (c.DF(start)/c.DF(end) - 1.0) / alpha
}

func (c *Curve) zeroAt(x float64) float64 {
	n := len(c.times)
	last := c.times[n-1]
	if x >= last {
		return c.zeros[n-1]
	}
	if x <= c.times[0] {
		return c.zeros[0]
	}

	switch c.interp {
	case InterpCubicZero:
		return c.spline.at(x)
	case InterpLogCubicDiscount:
		return -c.spline.at(x) / x
	case InterpFlatForward:
		i := c.segment(x)
		t1, t2 := c.times[i], c.times[i+1]
		df1, df2 := c.dfs[i], c.dfs[i+1]
		fwd := math.Log(df1/df2) / (t2 - t1)
		df := df1 * math.Exp(-fwd*(x-t1))
		return -math.Log(df) / x
	default: // InterpLinearZero
		i := c.segment(x)
		t1, t2 := c.times[i], c.times[i+1]
		w := (x - t1) / (t2 - t1)
		return c.zeros[i] + w*(c.zeros[i+1]-c.zeros[i])
	}
}

// segment returns i such that times[i] <= x < times[i+1].
func (c *Curve) segment(x float64) int {
	i := sort.SearchFloat64s(c.times, x)
	if i > 0 && (i >= len(c.times) || c.times[i] != x) {
		i--
	}
	if i >= len(c.times)-1 {
		i = len(c.times) - 2
	}
	return i
}

// depositMaturity returns the adjusted maturity of a deposit quote.
// TenorMonths 0 stands for the one-week deposit.
func depositMaturity(cal calendar.CalendarID, settlement time.Time, tenorMonths int) time.Time {
	if tenorMonths == 0 {
		return calendar.AdjustFollowing(cal, settlement.AddDate(0, 0, 7))
	}
	return calendar.Adjust(cal, utils.AddMonth(settlement, tenorMonths))
}

type fixedCoupon struct {
	payDate time.Time
	accrual float64
}

// annualFixedCoupons builds the annual 30/360 fixed leg of a EUR par swap.
func annualFixedCoupons(cal calendar.CalendarID, settlement, maturity time.Time, years int) []fixedCoupon {
	coupons := make([]fixedCoupon, 0, years)
	prev := settlement
	for i := 1; i <= years; i++ {
		pay := calendar.Adjust(cal, utils.AddMonth(settlement, 12*i))
		if i == years {
			pay = maturity
		}
		coupons = append(coupons, fixedCoupon{
			payDate: pay,
			accrual: utils.YearFraction(prev, pay, "30/360"),
		})
		prev = pay
	}
	return coupons
}

// solvePillarDF solves the par equation for the discount factor at maturity.
// Coupons paying on or before the previous pillar use known DFs; later ones
// are interpolated log-linearly against the unknown.
func solvePillarDF(settlement time.Time, pillars []time.Time, pillarDF map[time.Time]float64, coupons []fixedCoupon, maturity time.Time, parRate float64) (float64, error) {
	prevPillar := pillars[len(pillars)-1]
	dfPrev := pillarDF[prevPillar]

	guess := dfPrev
	const tolerance = 1e-12
	const maxIter = 50

	tPrev := utils.YearFraction(settlement, prevPillar, curveDayCount)
	tMat := utils.YearFraction(settlement, maturity, curveDayCount)
	if tMat <= tPrev {
		return 0, fmt.Errorf("solvePillarDF: maturity before last pillar")
	}

	for iter := 0; iter < maxIter; iter++ {
		pvFixed := 0.0
		derivative := 0.0

		for _, cpn := range coupons {
			var d, dPrime float64
			if !cpn.payDate.After(prevPillar) {
				d = knownDF(settlement, pillars, pillarDF, cpn.payDate)
			} else {
				// Log-linear between the previous pillar and the unknown:
				// D(t) = D(prev)^(1-r) · x^r, dD/dx = r·D(t)/x.
				tc := utils.YearFraction(settlement, cpn.payDate, curveDayCount)
				ratio := (tc - tPrev) / (tMat - tPrev)
				x := guess
				if x <= 1e-9 {
					x = 1e-9
				}
				d = math.Pow(dfPrev, 1.0-ratio) * math.Pow(x, ratio)
				dPrime = ratio * d / x
			}
			pvFixed += d * cpn.accrual * parRate
			derivative += dPrime * cpn.accrual * parRate
		}

		// Par equation: 1 = PV_fixed + D(maturity).
		fVal := pvFixed + guess - 1.0
		fPrime := derivative + 1.0

		if math.Abs(fVal) < tolerance {
			return guess, nil
		}
		if math.Abs(fPrime) < 1e-15 {
			break
		}
		guess -= fVal / fPrime
		if guess <= 1e-9 {
			guess = 1e-9
		}
	}
	return guess, nil
}

// knownDF interpolates log-linearly over already-solved pillars.
func knownDF(settlement time.Time, pillars []time.Time, pillarDF map[time.Time]float64, t time.Time) float64 {
	if df, ok := pillarDF[t]; ok {
		return df
	}
	d1, d2 := utils.AdjacentDates(t, pillars)
	df1, df2 := pillarDF[d1], pillarDF[d2]
	t1 := utils.YearFraction(settlement, d1, curveDayCount)
	t2 := utils.YearFraction(settlement, d2, curveDayCount)
	tt := utils.YearFraction(settlement, t, curveDayCount)
	if t2 == t1 {
		return df1
	}
	fwd := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-fwd*(tt-t1))
}
