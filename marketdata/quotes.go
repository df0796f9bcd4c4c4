package marketdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// DepositQuote is a money-market deposit quote from the snapshot.
type DepositQuote struct {
	RIC         string
	TenorMonths int // 0 means one week
	Rate        float64
}

// SwapQuote is an annual-fixed-leg par swap quote versus 3M Euribor.
type SwapQuote struct {
	Name          string
	MaturityYears int
	Rate          float64
}

// depositRICTenors maps the snapshot deposit RICs to tenors in months
// (0 stands for the one-week deposit).
var depositRICTenors = map[string]int{
	"EURSWD": 0,
	"EUR1MD": 1,
	"EUR3MD": 3,
	"EUR6MD": 6,
	"EUR9MD": 9,
}

// LoadDepositQuotes parses the deposit-rates sheet export (columns RIC,Last,
// rates in percent). Unknown RICs are skipped, matching the original sheet
// which carries quotes the curve does not use.
func LoadDepositQuotes(path string) ([]DepositQuote, error) {
	records, err := readQuoteCSV(path)
	if err != nil {
		return nil, fmt.Errorf("LoadDepositQuotes: %w", err)
	}

	cols, err := headerIndex(records[0], "RIC", "Last")
	if err != nil {
		return nil, fmt.Errorf("LoadDepositQuotes: %s: %w", path, err)
	}

	var quotes []DepositQuote
	for _, rec := range records[1:] {
		ric := strings.TrimSpace(rec[cols["RIC"]])
		tenor, ok := depositRICTenors[ric]
		if !ok {
			continue
		}
		rate, err := parseDecimalComma(strings.TrimSpace(rec[cols["Last"]]))
		if err != nil {
			return nil, fmt.Errorf("LoadDepositQuotes: %s rate: %w", ric, err)
		}
		quotes = append(quotes, DepositQuote{RIC: ric, TenorMonths: tenor, Rate: rate})
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("LoadDepositQuotes: %s yielded no usable quotes", path)
	}
	return quotes, nil
}

var swapMaturityRe = regexp.MustCompile(`(\d+)Y`)

// LoadSwapQuotes parses the IRS-rates sheet export (columns Name,Last, rates
// in percent). The maturity is read from the instrument name (e.g. "EURAB6E5Y").
// Quotes at or below one year are dropped; the deposits cover that segment.
func LoadSwapQuotes(path string) ([]SwapQuote, error) {
	records, err := readQuoteCSV(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSwapQuotes: %w", err)
	}

	cols, err := headerIndex(records[0], "Name", "Last")
	if err != nil {
		return nil, fmt.Errorf("LoadSwapQuotes: %s: %w", path, err)
	}

	var quotes []SwapQuote
	for _, rec := range records[1:] {
		name := strings.TrimSpace(rec[cols["Name"]])
		m := swapMaturityRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil || years <= 1 {
			continue
		}
		rate, err := parseDecimalComma(strings.TrimSpace(rec[cols["Last"]]))
		if err != nil {
			return nil, fmt.Errorf("LoadSwapQuotes: %s rate: %w", name, err)
		}
		quotes = append(quotes, SwapQuote{Name: name, MaturityYears: years, Rate: rate})
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("LoadSwapQuotes: %s yielded no usable quotes", path)
	}
	return quotes, nil
}

func readQuoteCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}
	return records, nil
}

func headerIndex(header []string, wanted ...string) (map[string]int, error) {
	cols := make(map[string]int, len(wanted))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, w := range wanted {
		if _, ok := cols[w]; !ok {
			return nil, fmt.Errorf("missing column %q", w)
		}
	}
	return cols, nil
}
