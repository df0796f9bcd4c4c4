package marketdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// VolSurface holds a shifted-Black volatility surface: maturity rows (years)
// by strike columns (percent), volatilities stored as decimals.
type VolSurface struct {
	Maturities []float64 // ascending
	Strikes    []float64 // ascending
	Vols       [][]float64
}

// LoadShiftedVolSurface parses the shifted Black vol CSV. The first column is
// the option maturity in years, remaining columns are strikes in percent; the
// "STK" and "ATM" helper columns of the original sheet are dropped. Values are
// quoted in percentage points and converted to decimals.
func LoadShiftedVolSurface(path string) (*VolSurface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadShiftedVolSurface: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("LoadShiftedVolSurface: parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("LoadShiftedVolSurface: %s has no data rows", path)
	}

	header := records[0]
	matCol := -1
	type strikeCol struct {
		idx    int
		strike float64
	}
	var strikeCols []strikeCol
	for i, h := range header {
		name := strings.TrimSpace(h)
		switch name {
		case "Maturity":
			matCol = i
		case "STK", "ATM", "":
			continue
		default:
			strike, err := parseDecimalComma(name)
			if err != nil {
				continue
			}
			strikeCols = append(strikeCols, strikeCol{idx: i, strike: strike})
		}
	}
	if matCol < 0 {
		return nil, fmt.Errorf("LoadShiftedVolSurface: %s: missing Maturity column", path)
	}
	if len(strikeCols) == 0 {
		return nil, fmt.Errorf("LoadShiftedVolSurface: %s: no strike columns", path)
	}
	sort.Slice(strikeCols, func(i, j int) bool { return strikeCols[i].strike < strikeCols[j].strike })

	surface := &VolSurface{}
	for _, sc := range strikeCols {
		surface.Strikes = append(surface.Strikes, sc.strike)
	}

	type volRow struct {
		maturity float64
		vols     []float64
	}
	var rows []volRow
	for _, rec := range records[1:] {
		mat, err := parseDecimalComma(strings.TrimSpace(rec[matCol]))
		if err != nil {
			continue
		}
		vols := make([]float64, len(strikeCols))
		for j, sc := range strikeCols {
			v, err := parseDecimalComma(strings.TrimSpace(rec[sc.idx]))
			if err != nil {
				return nil, fmt.Errorf("LoadShiftedVolSurface: maturity %v strike %v: %w", mat, sc.strike, err)
			}
			vols[j] = v / 100.0
		}
		rows = append(rows, volRow{maturity: mat, vols: vols})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("LoadShiftedVolSurface: %s yielded no rows", path)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].maturity < rows[j].maturity })
	for _, row := range rows {
		surface.Maturities = append(surface.Maturities, row.maturity)
		surface.Vols = append(surface.Vols, row.vols)
	}
	return surface, nil
}

// Vol interpolates the surface at the given maturity (years) and strike
// (percent): nearest maturity row, linear interpolation across strikes with
// flat extrapolation beyond the quoted wings.
func (s *VolSurface) Vol(maturity, strikePercent float64) float64 {
	row := s.Vols[s.nearestMaturity(maturity)]

	strikes := s.Strikes
	if strikePercent <= strikes[0] {
		return row[0]
	}
	if strikePercent >= strikes[len(strikes)-1] {
		return row[len(row)-1]
	}
	i := sort.SearchFloat64s(strikes, strikePercent)
	k0, k1 := strikes[i-1], strikes[i]
	w := (strikePercent - k0) / (k1 - k0)
	return row[i-1] + w*(row[i]-row[i-1])
}

func (s *VolSurface) nearestMaturity(maturity float64) int {
	best, bestDiff := 0, -1.0
	for i, m := range s.Maturities {
		diff := m - maturity
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}
