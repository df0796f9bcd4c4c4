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

	ws, err := workspace.Load(*configPath, "couponhist")
	if err != nil {
		fmt.Fprintln(os.Stderr, "couponhist:", err)
		os.Exit(1)
	}
	n := ws.Note

	feed, err := ws.Fixings()
	if err != nil {
		fmt.Fprintln(os.Stderr, "couponhist:", err)
		os.Exit(1)
	}

	rows, err := n.HistoricalCoupons(feed, "3M", ws.Spot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "couponhist:", err)
		os.Exit(1)
	}

	fmt.Println("================================================================================")
	fmt.Printf("SETTLED COUPONS: %s (%s)\n", n.Name, n.ISIN)
	fmt.Println("================================================================================")
	fmt.Printf("Issue: %s | As-of: %s | Notional: %s %.0f\n\n",
		n.IssueDate.Format("2006-01-02"), ws.Spot.Format("2006-01-02"), n.Currency, n.Notional)

	fmt.Println("Reset        Payment      Fixing   Coupon Rate   Amount")
	labels := make([]string, len(rows))
	amounts := make([]float64, len(rows))
	table := make([][]string, len(rows))
	for i, r := range rows {
		fmt.Printf("%s   %s   %5.3f%%     %5.3f%%   %8.4f\n",
			r.Period.ResetDate.Format("2006-01-02"), r.Period.End.Format("2006-01-02"),
			r.FixingPercent, r.RatePercent, r.Amount)
		labels[i] = r.Period.End.Format("2006-01")
		amounts[i] = r.Amount
		table[i] = []string{
			r.Period.ResetDate.Format("2006-01-02"),
			r.Period.End.Format("2006-01-02"),
			fmt.Sprintf("%.5f", r.FixingPercent),
			fmt.Sprintf("%.5f", r.RatePercent),
			fmt.Sprintf("%.6f", r.Amount),
		}
	}

	csvPath := ws.ResultsPath("settled_coupons.csv")
	if err := report.WriteCSV(csvPath, []string{"reset", "payment", "fixing", "rate", "amount"}, table); err != nil {
		fmt.Fprintln(os.Stderr, "couponhist:", err)
		os.Exit(1)
	}
	chart := ws.ResultsPath("settled_coupons.png")
	if err := report.SaveBarChart(chart, "Settled coupon amounts", fmt.Sprintf("Amount (%s)", n.Currency), labels, amounts); err != nil {
		fmt.Fprintln(os.Stderr, "couponhist:", err)
		os.Exit(1)
	}

	ws.Log.WithFields(logger.Fields{"coupons": len(rows), "chart": chart}).Info("coupon history written")
	fmt.Println("\nTable:", csvPath)
	fmt.Println("Chart:", chart)
}
