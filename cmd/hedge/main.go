package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantdesk/frnlib/hedge"
	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to built-in snapshot)")
	bumpBP := flag.Float64("bump", 10, "bump in basis points for the DV01s")
	tenorYears := flag.Int("tenor", 5, "hedge swap tenor in years")
	flag.Parse()

	ws, err := workspace.Load(*configPath, "hedge")
	if err != nil {
		fmt.Fprintln(os.Stderr, "hedge:", err)
		os.Exit(1)
	}
	n := ws.Note

	disc, err := ws.DiscountCurve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hedge:", err)
		os.Exit(1)
	}

	swap, err := hedge.NewSwap(ws.Spot, ws.Spot.AddDate(*tenorYears, 0, 0), ws.Cfg.Valuation.SwapRate, n.Notional)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hedge:", err)
		os.Exit(1)
	}

	res, err := hedge.Size(n, swap, disc, ws.Spot, *bumpBP)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hedge:", err)
		os.Exit(1)
	}

	fmt.Println("================================================================================")
	fmt.Printf("DV01 HEDGE: %s (%s)\n", n.Name, n.ISIN)
	fmt.Println("================================================================================")
	fmt.Printf("Hedge instrument: %dY payer swap, fixed %.3f%% annual ACT/360, notional %.0f\n",
		*tenorYears, swap.FixedRate*100, swap.Notional)
	fmt.Printf("Effective: %s | Maturity: %s\n\n",
		swap.Effective.Format("2006-01-02"), swap.Maturity.Format("2006-01-02"))

	fmt.Printf("Swap NPV at spot:   %12.4f\n", swap.NPV(disc))
	fmt.Printf("Bond DV01:          %12.6f per bp\n", res.BondDV01)
	fmt.Printf("Swap DV01:          %12.6f per bp\n", res.SwapDV01)
	fmt.Printf("Hedge ratio:        %12.6f\n", res.HedgeRatio)
	fmt.Printf("Swap notional:      %12.2f\n", res.SwapNotional)

	ws.Log.WithFields(logger.Fields{
		"bond_dv01":     res.BondDV01,
		"swap_dv01":     res.SwapDV01,
		"swap_notional": res.SwapNotional,
	}).Info("hedge sized")
}
