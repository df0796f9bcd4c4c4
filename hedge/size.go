package hedge

import (
	"fmt"
	"math"
	"time"

	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/frn"
	"github.com/quantdesk/frnlib/utils"
)

// Result summarizes a DV01-neutral hedge: sell hedgeNotional of payer swap
// risk against a long position in the note.
type Result struct {
	BondDV01     float64
	SwapDV01     float64
	HedgeRatio   float64
	SwapNotional float64
}

// Size matches the note's rate sensitivity with the swap's. The swap is
// quoted per unit notional and scaled so the two DV01s offset.
func Size(n frn.Note, s Swap, disc *curve.Curve, spot time.Time, bumpBP float64) (Result, error) {
	bondDV01, err := n.DV01(disc, spot, bumpBP)
	if err != nil {
		return Result{}, fmt.Errorf("Size: %w", err)
	}
	swapDV01, err := s.DV01(disc, bumpBP)
	if err != nil {
		return Result{}, fmt.Errorf("Size: %w", err)
	}
	if swapDV01 == 0 {
		return Result{}, fmt.Errorf("Size: swap DV01 is zero, cannot hedge")
	}
	ratio := math.Abs(bondDV01) / math.Abs(swapDV01)
	return Result{
		BondDV01:     bondDV01,
		SwapDV01:     swapDV01,
		HedgeRatio:   ratio,
		// The ticket notional is quoted to the cent.
		SwapNotional: utils.RoundTo(ratio*s.Notional, 2),
	}, nil
}
