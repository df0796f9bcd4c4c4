package utils

import "time"

// YearFraction computes the accrual fraction between two dates.
//
// The note's coupons accrue on the 30/360 Eurobond basis of its term sheet;
// everything quoted off the money market (deposits, swap fixed legs, the
// curve axis, CDS survival times) uses ACT/360, which is also the fallback
// for unknown conventions.
func YearFraction(start, end time.Time, convention string) float64 {
	switch convention {
	case "30/360":
		// Eurobond basis: both day numbers cap at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default: // ACT/360
		return Days(start, end) / 360.0
	}
}
