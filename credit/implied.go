package credit

import (
	"fmt"
	"math"
	"time"

	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/frn"
)

const (
	impliedTol      = 1e-10
	impliedMaxIters = 200
)

// ImpliedSpread backs out the flat CDS spread at which the credit-adjusted
// clean price matches an observed market clean price, by bisection on
// clean - CVA(s). marketClean is quoted on the note's notional, so a quote
// of 98.43 per 100 on a 1000 notional enters as 984.3.
func ImpliedSpread(n frn.Note, disc *curve.Curve, spot time.Time, recovery, marketClean float64) (float64, error) {
	base, err := n.Price(disc, spot)
	if err != nil {
		return 0, fmt.Errorf("ImpliedSpread: %w", err)
	}
	if marketClean > base.Clean {
		return 0, fmt.Errorf("ImpliedSpread: market clean %v above risk-free clean %v, no positive spread matches", marketClean, base.Clean)
	}

	adjusted := func(s float64) (float64, error) {
		res, err := CVA(n, disc, spot, Params{Spread: s, Recovery: recovery})
		if err != nil {
			return 0, err
		}
		return base.Clean - res.Total, nil
	}

	lo, hi := 0.0, 0.10
	fhi, err := adjusted(hi)
	if err != nil {
		return 0, fmt.Errorf("ImpliedSpread: %w", err)
	}
	if fhi > marketClean {
		return 0, fmt.Errorf("ImpliedSpread: spread above %v needed to reach clean %v", hi, marketClean)
	}

	for i := 0; i < impliedMaxIters; i++ {
		mid := 0.5 * (lo + hi)
		fmid, err := adjusted(mid)
		if err != nil {
			return 0, fmt.Errorf("ImpliedSpread: %w", err)
		}
		if math.Abs(fmid-marketClean) < impliedTol || hi-lo < impliedTol {
			return mid, nil
		}
		// Adjusted clean decreases in the spread.
		if fmid > marketClean {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}
