package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantdesk/frnlib/credit"
	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/report"
	"github.com/quantdesk/frnlib/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to built-in snapshot)")
	flag.Parse()

	ws, err := workspace.Load(*configPath, "cva")
	if err != nil {
		fmt.Fprintln(os.Stderr, "cva:", err)
		os.Exit(1)
	}
	n := ws.Note

	disc, err := ws.DiscountCurve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cva:", err)
		os.Exit(1)
	}

	params := credit.Params{
		Spread:   ws.Cfg.Credit.CDSSpread,
		Recovery: ws.Cfg.Credit.RecoveryRate,
	}
	res, err := credit.CVA(n, disc, ws.Spot, params)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cva:", err)
		os.Exit(1)
	}
	base, err := n.Price(disc, ws.Spot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cva:", err)
		os.Exit(1)
	}

	fmt.Println("================================================================================")
	fmt.Printf("CVA: %s (%s)\n", n.Name, n.ISIN)
	fmt.Println("================================================================================")
	fmt.Printf("CDS spread: %.2fbp | Recovery: %.0f%%\n\n", params.Spread*10000, params.Recovery*100)

	fmt.Println("Payment      Time     Amount      DF         Survival    Default PD  Marginal CVA")
	table := make([][]string, len(res.Rows))
	for i, r := range res.Rows {
		fmt.Printf("%s   %5.3f   %9.4f   %.6f   %.6f   %.6f    %9.6f\n",
			r.PaymentDate.Format("2006-01-02"), r.Time, r.Amount, r.DF, r.Survival, r.PD, r.Marginal)
		table[i] = []string{
			r.PaymentDate.Format("2006-01-02"),
			fmt.Sprintf("%.6f", r.Time),
			fmt.Sprintf("%.6f", r.Amount),
			fmt.Sprintf("%.8f", r.DF),
			fmt.Sprintf("%.8f", r.Survival),
			fmt.Sprintf("%.8f", r.PD),
			fmt.Sprintf("%.8f", r.Marginal),
		}
	}

	fmt.Printf("\nTotal CVA:             %10.6f\n", res.Total)
	fmt.Printf("Risk-free dirty:       %10.4f\n", base.Dirty)
	fmt.Printf("Credit-adjusted dirty: %10.4f\n", base.Dirty-res.Total)

	// CVA across a spread grid, for the credit sensitivity chart.
	spreads := make([]float64, 41)
	for i := range spreads {
		spreads[i] = float64(i) * 0.0005
	}
	grid, err := credit.SpreadGrid(n, disc, ws.Spot, params.Recovery, spreads)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cva:", err)
		os.Exit(1)
	}
	bps := make([]float64, len(spreads))
	for i, s := range spreads {
		bps[i] = s * 10000
	}
	pts, err := report.XYs(bps, grid)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cva:", err)
		os.Exit(1)
	}
	chart := ws.ResultsPath("cva_vs_spread.png")
	if err := report.SaveLineChart(chart, "CVA vs CDS spread", "Spread (bp)", "CVA", report.Series{Name: "CVA", Points: pts}); err != nil {
		fmt.Fprintln(os.Stderr, "cva:", err)
		os.Exit(1)
	}

	csvPath := ws.ResultsPath("cva_by_cashflow.csv")
	header := []string{"payment", "time", "amount", "df", "survival", "default_prob", "marginal_cva"}
	if err := report.WriteCSV(csvPath, header, table); err != nil {
		fmt.Fprintln(os.Stderr, "cva:", err)
		os.Exit(1)
	}

	ws.Log.WithFields(logger.Fields{"cva": res.Total, "chart": chart}).Info("cva written")
	fmt.Println("\nTable:", csvPath)
	fmt.Println("Chart:", chart)
}
