package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func testConfigFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "deposit_rates.csv", `RIC,Last
EURSWD,3.153
EUR1MD,3.091
EUR3MD,2.983
EUR6MD,2.812
EUR9MD,2.662
`)
	writeFile(t, dir, "irs_rates.csv", `Name,Last
EURAB6E2Y=,2.379
EURAB6E5Y=,2.301
EURAB6E10Y=,2.407
EURAB6E30Y=,2.121
`)
	writeFile(t, dir, "vols.csv", `Maturity,1.0,4.0
1,16.2,13.9
5,13.2,12.1
`)
	writeFile(t, dir, "fixings.csv", "Date;1W;1M;3M;6M;12M\n25/10/2024;2,72;2,92;3,17;3,35;3,52\n")

	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, dir, "config.yaml", `datasets:
  dir: `+dir+`
  deposit_quotes: deposit_rates.csv
  swap_quotes: irs_rates.csv
  euribor_fixings: fixings.csv
  shifted_vols: vols.csv
results:
  dir: `+filepath.Join(dir, "results")+`
`)
	return cfgPath
}

func TestLoadDefaults(t *testing.T) {
	ws, err := Load("", "test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ws.Note.ISIN != "XS2392609181" {
		t.Errorf("ISIN = %s", ws.Note.ISIN)
	}
	if got := ws.Spot.Format("2006-01-02"); got != "2024-11-26" {
		t.Errorf("spot = %s, want 2024-11-26", got)
	}
}

func TestLoadAndBuild(t *testing.T) {
	ws, err := Load(testConfigFile(t), "test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	disc, err := ws.DiscountCurve()
	if err != nil {
		t.Fatalf("DiscountCurve: %v", err)
	}
	if df := disc.DF(ws.Note.MaturityDate); df <= 0 || df >= 1 {
		t.Errorf("DF(maturity) = %v out of range", df)
	}

	curves, err := ws.AllCurves()
	if err != nil {
		t.Fatalf("AllCurves: %v", err)
	}
	if len(curves) != 4 {
		t.Errorf("got %d curves, want 4", len(curves))
	}

	vols, err := ws.VolSurface()
	if err != nil {
		t.Fatalf("VolSurface: %v", err)
	}
	if v := vols.Vol(1, 2.5); v <= 0 || v > 1 {
		t.Errorf("Vol(1, 2.5) = %v out of range", v)
	}

	feed, err := ws.Fixings()
	if err != nil {
		t.Fatalf("Fixings: %v", err)
	}
	d := time.Date(2024, 10, 25, 0, 0, 0, 0, time.UTC)
	if rate, ok := feed.RateOn(d, "3M"); !ok || rate != 3.17 {
		t.Errorf("RateOn(2024-10-25, 3M) = %v, %v; want 3.17", rate, ok)
	}
	if _, ok := feed.RateOn(d.AddDate(0, 0, 1), "3M"); ok {
		t.Error("unexpected fixing outside the fixture row")
	}

	if got := ws.ResultsPath("x.png"); filepath.Base(got) != "x.png" {
		t.Errorf("ResultsPath = %s", got)
	}
}
