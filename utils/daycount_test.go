package utils

import (
	"math"
	"testing"
	"time"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		start, end time.Time
		convention string
		want       float64
	}{
		{"ACT/360 quarter", d(2025, time.January, 29), d(2025, time.April, 29), "ACT/360", 90.0 / 360.0},
		{"30/360 regular quarter", d(2025, time.January, 29), d(2025, time.April, 29), "30/360", 0.25},
		{"30/360 across month ends", d(2025, time.January, 31), d(2025, time.July, 31), "30/360", 0.5},
		{"30/360 full year", d(2024, time.July, 29), d(2025, time.July, 29), "30/360", 1.0},
		{"unknown falls back to ACT/360", d(2025, time.January, 29), d(2025, time.April, 29), "ACT/ACT", 90.0 / 360.0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := YearFraction(tc.start, tc.end, tc.convention)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("YearFraction = %.12f, want %.12f", got, tc.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	t.Parallel()

	if got := Days(d(2024, time.November, 26), d(2025, time.January, 29)); got != 64 {
		t.Errorf("Days = %v, want 64", got)
	}
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	if got := RoundTo(123.45678, 2); got != 123.46 {
		t.Errorf("RoundTo(2) = %v, want 123.46", got)
	}
	if got := RoundTo(2.70833, 3); got != 2.708 {
		t.Errorf("RoundTo(3) = %v, want 2.708", got)
	}
}

func TestClip(t *testing.T) {
	t.Parallel()

	floor, cap := 0.016, 0.037
	cases := []struct{ in, want float64 }{
		{0.010, 0.016},
		{0.016, 0.016},
		{0.025, 0.025},
		{0.037, 0.037},
		{0.050, 0.037},
	}
	for _, tc := range cases {
		if got := Clip(tc.in, floor, cap); got != tc.want {
			t.Errorf("Clip(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAddMonthEndOfMonth(t *testing.T) {
	t.Parallel()

	// EDATE semantics: 31 Jan + 1M lands on the last day of February.
	got := AddMonth(d(2025, time.January, 31), 1)
	if !got.Equal(d(2025, time.February, 28)) {
		t.Errorf("AddMonth = %s, want 2025-02-28", got.Format("2006-01-02"))
	}

	got = AddMonth(d(2024, time.November, 29), 3)
	if !got.Equal(d(2025, time.February, 28)) {
		t.Errorf("AddMonth = %s, want 2025-02-28", got.Format("2006-01-02"))
	}
}
