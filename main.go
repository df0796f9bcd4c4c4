package main

import (
	"fmt"
	"time"

	"github.com/quantdesk/frnlib/calendar"
	"github.com/quantdesk/frnlib/config"
	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/frn"
	"github.com/quantdesk/frnlib/marketdata"
)

func main() {
	deposits := []marketdata.DepositQuote{
		{RIC: "EURSWD", TenorMonths: 0, Rate: 3.153},
		{RIC: "EUR1MD", TenorMonths: 1, Rate: 3.091},
		{RIC: "EUR3MD", TenorMonths: 3, Rate: 2.983},
		{RIC: "EUR6MD", TenorMonths: 6, Rate: 2.812},
		{RIC: "EUR9MD", TenorMonths: 9, Rate: 2.662},
	}
	swaps := []marketdata.SwapQuote{
		{Name: "EURAB6E2Y=", MaturityYears: 2, Rate: 2.379},
		{Name: "EURAB6E3Y=", MaturityYears: 3, Rate: 2.308},
		{Name: "EURAB6E4Y=", MaturityYears: 4, Rate: 2.293},
		{Name: "EURAB6E5Y=", MaturityYears: 5, Rate: 2.301},
		{Name: "EURAB6E7Y=", MaturityYears: 7, Rate: 2.337},
		{Name: "EURAB6E10Y=", MaturityYears: 10, Rate: 2.407},
		{Name: "EURAB6E15Y=", MaturityYears: 15, Rate: 2.448},
		{Name: "EURAB6E20Y=", MaturityYears: 20, Rate: 2.379},
		{Name: "EURAB6E30Y=", MaturityYears: 30, Rate: 2.121},
	}

	note, err := frn.FromConfig(config.Default().Note)
	if err != nil {
		panic(err)
	}
	spot := time.Date(2024, 11, 26, 0, 0, 0, 0, time.UTC)

	disc, err := curve.Bootstrap(curve.BootstrapInput{
		Settlement: spot,
		Cal:        calendar.TARGET,
		Deposits:   deposits,
		Swaps:      swaps,
	}, curve.InterpLogCubicDiscount)
	if err != nil {
		panic(err)
	}

	res, err := note.Price(disc, spot)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s %s (%s)\n", note.Issuer, note.Name, note.ISIN)
	fmt.Printf("Valuation date: %s\n", spot.Format("2006-01-02"))
	fmt.Printf("Dirty price: %.4f\n", res.Dirty)
	fmt.Printf("Accrued:     %.4f\n", res.Accrued)
	fmt.Printf("Clean price: %.4f\n", res.Clean)
}
