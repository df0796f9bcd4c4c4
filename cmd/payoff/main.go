package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/report"
	"github.com/quantdesk/frnlib/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to built-in snapshot)")
	flag.Parse()

	ws, err := workspace.Load(*configPath, "payoff")
	if err != nil {
		fmt.Fprintln(os.Stderr, "payoff:", err)
		os.Exit(1)
	}
	n := ws.Note

	fmt.Println("================================================================================")
	fmt.Printf("COUPON PAYOFF: %s %s (%s)\n", n.Issuer, n.Name, n.ISIN)
	fmt.Println("================================================================================")
	fmt.Printf("Floor: %.2f%% | Cap: %.2f%% | Reference: EURIBOR 3M\n", n.Floor*100, n.Cap*100)
	fmt.Println()

	// Sweep the reference rate from 0 to 5% in 1bp steps.
	steps := 500
	refs := make([]float64, steps+1)
	coupons := make([]float64, steps+1)
	capLine := make([]float64, steps+1)
	floorLine := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		r := float64(i) / 10000
		refs[i] = r * 100
		coupons[i] = n.CouponRate(r) * 100
		capLine[i] = n.Cap * 100
		floorLine[i] = n.Floor * 100
	}

	fmt.Println("Reference   Coupon")
	for _, r := range []float64{0.000, 0.010, 0.016, 0.025, 0.037, 0.050} {
		fmt.Printf("  %5.2f%%    %5.2f%%\n", r*100, n.CouponRate(r)*100)
	}

	pts, err := report.XYs(refs, coupons)
	if err != nil {
		fmt.Fprintln(os.Stderr, "payoff:", err)
		os.Exit(1)
	}
	capPts, err := report.XYs(refs, capLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, "payoff:", err)
		os.Exit(1)
	}
	floorPts, err := report.XYs(refs, floorLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, "payoff:", err)
		os.Exit(1)
	}
	chart := ws.ResultsPath("payoff.png")
	if err := report.SaveLineChart(chart, "Coupon rate vs EURIBOR 3M", "Reference rate (%)", "Coupon rate (%)",
		report.Series{Name: "Collared coupon", Points: pts},
		report.Series{Name: fmt.Sprintf("Cap %.1f%%", n.Cap*100), Points: capPts},
		report.Series{Name: fmt.Sprintf("Floor %.1f%%", n.Floor*100), Points: floorPts}); err != nil {
		fmt.Fprintln(os.Stderr, "payoff:", err)
		os.Exit(1)
	}

	ws.Log.WithFields(logger.Fields{"chart": chart}).Info("payoff chart written")
	fmt.Println("\nChart:", chart)
}
