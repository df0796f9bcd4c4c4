package marketdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// FixingFeed supplies historical index fixings (e.g., 3M Euribor) by date.
type FixingFeed interface {
	// RateOn returns the fixing in percent for the given reset date.
	RateOn(date time.Time, tenor string) (float64, bool)
}

// MapFixingFeed is a static map-backed implementation for development/testing.
type MapFixingFeed struct {
	rates map[string]map[string]float64 // date -> tenor -> percent
}

func NewMapFixingFeed(rates map[string]map[string]float64) *MapFixingFeed {
	return &MapFixingFeed{rates: rates}
}

func (m *MapFixingFeed) RateOn(date time.Time, tenor string) (float64, bool) {
	row, ok := m.rates[date.Format("2006-01-02")]
	if !ok {
		return 0, false
	}
	val, ok := row[tenor]
	return val, ok
}

// euriborTenors are the columns of the historical Euribor export, in order.
var euriborTenors = []string{"1W", "1M", "3M", "6M", "12M"}

// LoadEuriborFixings parses the historical Euribor CSV export.
//
// The file is semicolon-delimited with a header row, dates as DD/MM/YYYY or
// YYYY-MM-DD, and decimal commas. Empty cells (holidays) are skipped.
func LoadEuriborFixings(path string) (*MapFixingFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadEuriborFixings: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("LoadEuriborFixings: parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("LoadEuriborFixings: %s has no data rows", path)
	}

	rates := make(map[string]map[string]float64, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < len(euriborTenors)+1 {
			continue
		}
		date, err := parseFixingDate(strings.TrimSpace(rec[0]))
		if err != nil {
			continue
		}
		row := make(map[string]float64, len(euriborTenors))
		for i, tenor := range euriborTenors {
			cell := strings.TrimSpace(rec[i+1])
			if cell == "" || cell == "-" {
				continue
			}
			val, err := parseDecimalComma(cell)
			if err != nil {
				return nil, fmt.Errorf("LoadEuriborFixings: row %s column %s: %w", rec[0], tenor, err)
			}
			row[tenor] = val
		}
		if len(row) > 0 {
			rates[date.Format("2006-01-02")] = row
		}
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("LoadEuriborFixings: %s yielded no fixings", path)
	}
	return &MapFixingFeed{rates: rates}, nil
}

func parseFixingDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// parseDecimalComma reads a float that may use a comma as decimal separator.
func parseDecimalComma(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
