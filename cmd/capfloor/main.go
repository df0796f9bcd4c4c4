package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantdesk/frnlib/capfloor"
	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/report"
	"github.com/quantdesk/frnlib/workspace"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to built-in snapshot)")
	flag.Parse()

	ws, err := workspace.Load(*configPath, "capfloor")
	if err != nil {
		fmt.Fprintln(os.Stderr, "capfloor:", err)
		os.Exit(1)
	}
	n := ws.Note

	disc, err := ws.DiscountCurve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "capfloor:", err)
		os.Exit(1)
	}
	vols, err := ws.VolSurface()
	if err != nil {
		fmt.Fprintln(os.Stderr, "capfloor:", err)
		os.Exit(1)
	}

	res, err := capfloor.PriceStrip(n, disc, vols, ws.Cfg.Valuation.VolShift, ws.Spot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "capfloor:", err)
		os.Exit(1)
	}

	fmt.Println("================================================================================")
	fmt.Printf("EMBEDDED CAP AND FLOOR STRIPS, SHIFTED BLACK (shift %.1f%%)\n", ws.Cfg.Valuation.VolShift*100)
	fmt.Println("================================================================================")
	fmt.Printf("Cap strike: %.2f%% | Floor strike: %.2f%% | Open fixings: %d\n\n",
		n.Cap*100, n.Floor*100, len(res.Optionlets))

	fmt.Println("Reset        Payment      Expiry   Forward   CapVol  FloorVol   Caplet     Floorlet")
	table := make([][]string, len(res.Optionlets))
	for i, o := range res.Optionlets {
		fmt.Printf("%s   %s   %5.3f   %5.3f%%   %5.1f%%   %5.1f%%   %8.5f   %8.5f\n",
			o.ResetDate.Format("2006-01-02"), o.PaymentDate.Format("2006-01-02"),
			o.Expiry, o.Forward*100, o.CapletVol*100, o.FloorletVol*100, o.CapletPV, o.FloorletPV)
		table[i] = []string{
			o.ResetDate.Format("2006-01-02"),
			o.PaymentDate.Format("2006-01-02"),
			fmt.Sprintf("%.6f", o.Expiry),
			fmt.Sprintf("%.6f", o.Forward),
			fmt.Sprintf("%.6f", o.CapletVol),
			fmt.Sprintf("%.6f", o.FloorletVol),
			fmt.Sprintf("%.6f", o.CapletPV),
			fmt.Sprintf("%.6f", o.FloorletPV),
		}
	}

	fmt.Printf("\nCap strip value:   %9.5f\n", res.CapPV)
	fmt.Printf("Floor strip value: %9.5f\n", res.FloorPV)
	fmt.Printf("Collar (long floor, short cap): %9.5f\n", res.Collar())

	csvPath := ws.ResultsPath("capfloor_strip.csv")
	header := []string{"reset", "payment", "expiry", "forward", "cap_vol", "floor_vol", "caplet_pv", "floorlet_pv"}
	if err := report.WriteCSV(csvPath, header, table); err != nil {
		fmt.Fprintln(os.Stderr, "capfloor:", err)
		os.Exit(1)
	}

	ws.Log.WithFields(logger.Fields{
		"cap_pv":   res.CapPV,
		"floor_pv": res.FloorPV,
	}).Info("strip valuation written")
	fmt.Println("\nTable:", csvPath)
}
