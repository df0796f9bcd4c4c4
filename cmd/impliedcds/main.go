package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantdesk/frnlib/credit"
	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to built-in snapshot)")
	flag.Parse()

	ws, err := workspace.Load(*configPath, "impliedcds")
	if err != nil {
		fmt.Fprintln(os.Stderr, "impliedcds:", err)
		os.Exit(1)
	}
	n := ws.Note

	disc, err := ws.DiscountCurve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "impliedcds:", err)
		os.Exit(1)
	}

	marketClean := ws.Cfg.Valuation.MarketCln / 100 * n.Notional
	recovery := ws.Cfg.Credit.RecoveryRate

	spread, err := credit.ImpliedSpread(n, disc, ws.Spot, recovery, marketClean)
	if err != nil {
		fmt.Fprintln(os.Stderr, "impliedcds:", err)
		os.Exit(1)
	}

	base, err := n.Price(disc, ws.Spot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "impliedcds:", err)
		os.Exit(1)
	}
	check, err := credit.CVA(n, disc, ws.Spot, credit.Params{Spread: spread, Recovery: recovery})
	if err != nil {
		fmt.Fprintln(os.Stderr, "impliedcds:", err)
		os.Exit(1)
	}

	fmt.Println("================================================================================")
	fmt.Printf("IMPLIED CDS SPREAD: %s (%s)\n", n.Name, n.ISIN)
	fmt.Println("================================================================================")
	fmt.Printf("Market clean:        %10.4f  (%.2f per 100)\n", marketClean, ws.Cfg.Valuation.MarketCln)
	fmt.Printf("Model clean:         %10.4f\n", base.Clean)
	fmt.Printf("Quoted CDS spread:   %10.2f bp\n", ws.Cfg.Credit.CDSSpread*10000)
	fmt.Printf("Implied CDS spread:  %10.2f bp\n", spread*10000)
	fmt.Printf("Clean less CVA(s*):  %10.4f\n", base.Clean-check.Total)

	ws.Log.WithFields(logger.Fields{"implied_bp": spread * 10000}).Info("implied spread solved")
}
