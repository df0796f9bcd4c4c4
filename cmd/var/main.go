package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantdesk/frnlib/credit"
	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/report"
	"github.com/quantdesk/frnlib/risk"
	"github.com/quantdesk/frnlib/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to built-in snapshot)")
	shiftBP := flag.Float64("shift", 10, "scenario shift in basis points for the factor betas")
	flag.Parse()

	ws, err := workspace.Load(*configPath, "var")
	if err != nil {
		fmt.Fprintln(os.Stderr, "var:", err)
		os.Exit(1)
	}
	n := ws.Note

	disc, err := ws.DiscountCurve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "var:", err)
		os.Exit(1)
	}

	// Factor betas per basis point, from symmetric scenario differences.
	grid := curve.SampleGrid(ws.Spot, ws.Cfg.Valuation.CurveYears, 100)
	set, err := curve.BuildScenarioSet(disc, grid, *shiftBP, *shiftBP/10000)
	if err != nil {
		fmt.Fprintln(os.Stderr, "var:", err)
		os.Exit(1)
	}
	prices, err := n.ScenarioPrices(set, ws.Spot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "var:", err)
		os.Exit(1)
	}
	clean := map[string]float64{}
	for _, p := range prices {
		clean[p.Label] = p.Clean
	}
	beta := func(family string) float64 {
		up := clean[fmt.Sprintf("%s +%gbps", family, *shiftBP)]
		down := clean[fmt.Sprintf("%s -%gbps", family, *shiftBP)]
		return -(up - down) / (2 * *shiftBP)
	}

	credBeta, err := credit.SpreadDV(n, disc, ws.Spot, credit.Params{
		Spread:   ws.Cfg.Credit.CDSSpread,
		Recovery: ws.Cfg.Credit.RecoveryRate,
	}, 1)
	if err != nil {
		fmt.Fprintln(os.Stderr, "var:", err)
		os.Exit(1)
	}

	model := risk.Model{Factors: []risk.Factor{
		{Name: "Level", Beta: beta("Parallel"), Variance: ws.Cfg.Risk.VarLevel},
		{Name: "Slope", Beta: beta("Slope"), Variance: ws.Cfg.Risk.VarSlope},
		{Name: "Curvature", Beta: beta("Curvature"), Variance: ws.Cfg.Risk.VarCurve},
		{Name: "Credit", Beta: credBeta, Variance: ws.Cfg.Risk.VarCDS},
	}}

	analytic, err := model.Analytic(ws.Cfg.Risk.Confidence)
	if err != nil {
		fmt.Fprintln(os.Stderr, "var:", err)
		os.Exit(1)
	}
	mc, err := model.MonteCarlo(ws.Cfg.Risk.Simulations, ws.Cfg.Risk.Seed, ws.Cfg.Risk.Confidence)
	if err != nil {
		fmt.Fprintln(os.Stderr, "var:", err)
		os.Exit(1)
	}

	conf := ws.Cfg.Risk.Confidence * 100
	fmt.Println("================================================================================")
	fmt.Printf("FACTOR VaR / EXPECTED SHORTFALL AT %.0f%%: %s (%s)\n", conf, n.Name, n.ISIN)
	fmt.Println("================================================================================")
	fmt.Printf("Simulations: %d | Seed: %d\n\n", ws.Cfg.Risk.Simulations, ws.Cfg.Risk.Seed)

	fmt.Println("Factor       Beta (per bp)   Variance   Marginal VaR   Component VaR")
	for i, f := range model.Factors {
		fmt.Printf("%-10s   %12.6f   %8.4f   %12.6f   %13.6f\n",
			f.Name, f.Beta, f.Variance, analytic.Marginal[i], analytic.Component[i])
	}

	fmt.Printf("\nPortfolio sigma:  %10.6f\n", analytic.Sigma)
	fmt.Printf("Analytic VaR:     %10.6f\n", analytic.VaR)
	fmt.Printf("Analytic ES:      %10.6f\n", analytic.ES)
	fmt.Printf("Monte Carlo VaR:  %10.6f\n", mc.VaR)
	fmt.Printf("Monte Carlo ES:   %10.6f\n", mc.ES)

	chart := ws.ResultsPath("pnl_histogram.png")
	if err := report.SaveHistogram(chart, fmt.Sprintf("Simulated PnL, VaR/ES at %.0f%%", conf), "PnL", mc.PnL, 100,
		report.Marker{Label: fmt.Sprintf("VaR %.0f%%", conf), X: -mc.VaR},
		report.Marker{Label: fmt.Sprintf("ES %.0f%%", conf), X: -mc.ES}); err != nil {
		fmt.Fprintln(os.Stderr, "var:", err)
		os.Exit(1)
	}

	ws.Log.WithFields(logger.Fields{
		"var_mc":       mc.VaR,
		"es_mc":        mc.ES,
		"var_analytic": analytic.VaR,
	}).Info("risk measures written")
	fmt.Println("\nChart:", chart)
}
