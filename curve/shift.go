package curve

import (
	"fmt"
	"math"
	"time"
)

// ShiftFamily names a scenario shift applied to sampled zero rates.
type ShiftFamily string

const (
	ShiftParallel  ShiftFamily = "Parallel"
	ShiftSlope     ShiftFamily = "Slope"
	ShiftCurvature ShiftFamily = "Curvature"
)

// ParallelShift adds a uniform bp move to every rate.
func ParallelShift(rates []float64, shiftBP float64) []float64 {
	out := make([]float64, len(rates))
	for i, r := range rates {
		out[i] = r + shiftBP/10000.0
	}
	return out
}

// SlopeShift tilts the curve linearly: -shift at the short end, +shift at the
// long end, pivoting at the middle node.
func SlopeShift(rates []float64, shiftBP float64) []float64 {
	n := len(rates)
	out := make([]float64, n)
	for i, r := range rates {
		out[i] = r + shiftBP/10000.0*(2.0*float64(i)/float64(n)-1.0)
	}
	return out
}

// CurvatureShift adds a Gaussian bump centred on the middle node, width a
// quarter of the grid.
func CurvatureShift(rates []float64, bump float64) []float64 {
	n := len(rates)
	mid, width := n/2, n/4
	out := make([]float64, n)
	for i, r := range rates {
		d := float64(i - mid)
		out[i] = r + bump*math.Exp(-d*d/(2.0*float64(width*width)))
	}
	return out
}

// SampleGrid returns nPoints+1 dates evenly spanning settlement to
// settlement+years.
func SampleGrid(settlement time.Time, years, nPoints int) []time.Time {
	end := settlement.AddDate(years, 0, 0)
	span := end.Sub(settlement)
	dates := make([]time.Time, 0, nPoints+1)
	for i := 0; i <= nPoints; i++ {
		offset := time.Duration(int64(span) / int64(nPoints) * int64(i))
		dates = append(dates, settlement.Add(offset))
	}
	return dates
}

// SampleZeroRates reads the curve's continuous zeros on a date grid.
func SampleZeroRates(c *Curve, dates []time.Time) []float64 {
	rates := make([]float64, len(dates))
	for i, d := range dates {
		rates[i] = c.ZeroRate(d)
	}
	return rates
}

// ScenarioSet bundles the base curve with its six shifted variants in the
// order the sensitivity report presents them.
type ScenarioSet struct {
	Labels []string
	Curves map[string]*Curve
}

// BuildScenarioSet samples the base curve on a grid and rebuilds zero curves
// under ±shiftBP parallel and slope moves and a ±bump curvature move.
func BuildScenarioSet(base *Curve, dates []time.Time, shiftBP, curvatureBump float64) (*ScenarioSet, error) {
	baseRates := SampleZeroRates(base, dates)

	variants := []struct {
		label string
		rates []float64
	}{
		{fmt.Sprintf("Parallel +%gbps", shiftBP), ParallelShift(baseRates, shiftBP)},
		{fmt.Sprintf("Parallel -%gbps", shiftBP), ParallelShift(baseRates, -shiftBP)},
		{fmt.Sprintf("Slope +%gbps", shiftBP), SlopeShift(baseRates, shiftBP)},
		{fmt.Sprintf("Slope -%gbps", shiftBP), SlopeShift(baseRates, -shiftBP)},
		{fmt.Sprintf("Curvature +%gbps", shiftBP), CurvatureShift(baseRates, curvatureBump)},
		{fmt.Sprintf("Curvature -%gbps", shiftBP), CurvatureShift(baseRates, -curvatureBump)},
	}

	set := &ScenarioSet{
		Labels: []string{"Base"},
		Curves: map[string]*Curve{"Base": base},
	}
	for _, v := range variants {
		c, err := NewZeroCurve(base.Settlement(), dates, v.rates)
		if err != nil {
			return nil, fmt.Errorf("BuildScenarioSet: %s: %w", v.label, err)
		}
		set.Labels = append(set.Labels, v.label)
		set.Curves[v.label] = c
	}
	return set, nil
}
