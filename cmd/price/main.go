package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to built-in snapshot)")
	bumpBP := flag.Float64("bump", 1, "parallel zero bump in basis points for the DV01")
	flag.Parse()

	ws, err := workspace.Load(*configPath, "price")
	if err != nil {
		fmt.Fprintln(os.Stderr, "price:", err)
		os.Exit(1)
	}
	n := ws.Note

	disc, err := ws.DiscountCurve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "price:", err)
		os.Exit(1)
	}

	res, err := n.Price(disc, ws.Spot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "price:", err)
		os.Exit(1)
	}

	fmt.Println("================================================================================")
	fmt.Printf("MODEL PRICE: %s %s (%s)\n", n.Issuer, n.Name, n.ISIN)
	fmt.Println("================================================================================")
	fmt.Printf("Valuation date: %s | Notional: %s %.0f\n\n", ws.Spot.Format("2006-01-02"), n.Currency, n.Notional)

	per100 := 100 / n.Notional
	fmt.Printf("Dirty price:   %10.4f  (%7.4f per 100)\n", res.Dirty, res.Dirty*per100)
	fmt.Printf("Accrued:       %10.4f  (%7.4f per 100)\n", res.Accrued, res.Accrued*per100)
	fmt.Printf("Clean price:   %10.4f  (%7.4f per 100)\n", res.Clean, res.Clean*per100)

	bumped, err := n.BumpedCleanPrice(disc, ws.Spot, *bumpBP)
	if err != nil {
		fmt.Fprintln(os.Stderr, "price:", err)
		os.Exit(1)
	}
	dv01, err := n.DV01(disc, ws.Spot, *bumpBP)
	if err != nil {
		fmt.Fprintln(os.Stderr, "price:", err)
		os.Exit(1)
	}
	fmt.Printf("\nClean at +%gbp: %10.4f\n", *bumpBP, bumped)
	fmt.Printf("DV01:          %10.6f per bp\n", dv01)

	ws.Log.WithFields(logger.Fields{"clean": res.Clean, "dv01": dv01}).Info("price computed")
}
