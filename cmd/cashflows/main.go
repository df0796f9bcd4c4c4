package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantdesk/frnlib/frn"
	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/report"
	"github.com/quantdesk/frnlib/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to built-in snapshot)")
	flag.Parse()

	ws, err := workspace.Load(*configPath, "cashflows")
	if err != nil {
		fmt.Fprintln(os.Stderr, "cashflows:", err)
		os.Exit(1)
	}
	n := ws.Note

	disc, err := ws.DiscountCurve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cashflows:", err)
		os.Exit(1)
	}

	fmt.Println("================================================================================")
	fmt.Printf("CASHFLOW LEGS: %s (%s)\n", n.Name, n.ISIN)
	fmt.Println("================================================================================")

	// Bounding scenarios: the coupon pinned at the floor and at the cap.
	floorLeg := n.FixedScenarioLeg(disc, n.Floor, ws.Spot)
	capLeg := n.FixedScenarioLeg(disc, n.Cap, ws.Spot)
	projected := n.ProjectedLeg(disc, ws.Spot)

	fmt.Printf("\nFLOOR SCENARIO (%.2f%%): PV of coupons %.4f\n", n.Floor*100, legPV(floorLeg))
	fmt.Printf("CAP SCENARIO   (%.2f%%): PV of coupons %.4f\n", n.Cap*100, legPV(capLeg))

	fmt.Println("\nPROJECTED LEG (forwards, collared)")
	fmt.Println("Payment      Rate      Accrual   Coupon     Principal   DF         PV")
	table := make([][]string, len(projected))
	for i, cf := range projected {
		fmt.Printf("%s   %5.3f%%   %.5f   %8.4f   %9.2f   %.6f   %9.4f\n",
			cf.PaymentDate.Format("2006-01-02"), cf.Rate*100, cf.Accrual, cf.Coupon, cf.Principal, cf.DF, cf.PV)
		table[i] = []string{
			cf.PaymentDate.Format("2006-01-02"),
			fmt.Sprintf("%.6f", cf.Rate),
			fmt.Sprintf("%.6f", cf.Accrual),
			fmt.Sprintf("%.6f", cf.Coupon),
			fmt.Sprintf("%.2f", cf.Principal),
			fmt.Sprintf("%.8f", cf.DF),
			fmt.Sprintf("%.6f", cf.PV),
		}
	}
	fmt.Printf("\nTotal PV: %.4f\n", legPV(projected))

	csvPath := ws.ResultsPath("projected_cashflows.csv")
	header := []string{"payment", "rate", "accrual", "coupon", "principal", "df", "pv"}
	if err := report.WriteCSV(csvPath, header, table); err != nil {
		fmt.Fprintln(os.Stderr, "cashflows:", err)
		os.Exit(1)
	}

	// Best vs worst coupons, side by side per payment date.
	labels := make([]string, len(capLeg))
	capCoupons := make([]float64, len(capLeg))
	floorCoupons := make([]float64, len(capLeg))
	fwdCoupons := make([]float64, len(capLeg))
	for i, cf := range capLeg {
		labels[i] = cf.PaymentDate.Format("Jan 06")
		capCoupons[i] = cf.Coupon
		floorCoupons[i] = floorLeg[i].Coupon
	}
	for _, cf := range projected {
		if cf.Principal != 0 {
			continue
		}
		for i := range capLeg {
			if cf.PaymentDate.Equal(capLeg[i].PaymentDate) {
				fwdCoupons[i] = cf.Coupon
			}
		}
	}

	scenChart := ws.ResultsPath("coupon_scenarios.png")
	if err := report.SaveGroupedBarChart(scenChart, "Best and worst case coupons", "Coupon", labels,
		report.BarGroup{Name: fmt.Sprintf("Cap %.1f%%", n.Cap*100), Values: capCoupons},
		report.BarGroup{Name: fmt.Sprintf("Floor %.1f%%", n.Floor*100), Values: floorCoupons},
	); err != nil {
		fmt.Fprintln(os.Stderr, "cashflows:", err)
		os.Exit(1)
	}

	cmpChart := ws.ResultsPath("coupon_projection.png")
	if err := report.SaveGroupedBarChart(cmpChart, "Projected coupons against the collar", "Coupon", labels,
		report.BarGroup{Name: fmt.Sprintf("Cap %.1f%%", n.Cap*100), Values: capCoupons},
		report.BarGroup{Name: "Projected", Values: fwdCoupons},
		report.BarGroup{Name: fmt.Sprintf("Floor %.1f%%", n.Floor*100), Values: floorCoupons},
	); err != nil {
		fmt.Fprintln(os.Stderr, "cashflows:", err)
		os.Exit(1)
	}

	ws.Log.WithFields(logger.Fields{"rows": len(projected), "table": csvPath, "charts": 2}).Info("cashflow outputs written")
	fmt.Println("Table:", csvPath)
	fmt.Println("Charts:", scenChart, cmpChart)
}

func legPV(flows []frn.Cashflow) float64 {
	var pv float64
	for _, cf := range flows {
		pv += cf.PV
	}
	return pv
}
