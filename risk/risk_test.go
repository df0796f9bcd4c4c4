package risk

import (
	"math"
	"testing"
)

func testModel() Model {
	return Model{Factors: []Factor{
		{Name: "Level", Beta: -0.35, Variance: 0.022},
		{Name: "Slope", Beta: 0.08, Variance: 0.003},
		{Name: "Curvature", Beta: -0.02, Variance: 0.001},
		{Name: "Credit", Beta: 0.12, Variance: 0.002},
	}}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := testModel().Validate(); err != nil {
		t.Errorf("valid model rejected: %v", err)
	}
	if err := (Model{}).Validate(); err == nil {
		t.Error("empty model accepted")
	}
	bad := Model{Factors: []Factor{{Name: "Level", Beta: 1, Variance: 0}}}
	if err := bad.Validate(); err == nil {
		t.Error("zero variance accepted")
	}
}

func TestAnalytic(t *testing.T) {
	t.Parallel()

	m := testModel()
	res, err := m.Analytic(0.99)
	if err != nil {
		t.Fatalf("Analytic: %v", err)
	}

	var want float64
	for _, f := range m.Factors {
		want += f.Beta * f.Beta * f.Variance
	}
	want = math.Sqrt(want)
	if math.Abs(res.Sigma-want) > 1e-12 {
		t.Errorf("sigma %v, want %v", res.Sigma, want)
	}

	// z at 1% is about 2.326; ES always exceeds VaR.
	if math.Abs(res.VaR-2.3263478740408408*res.Sigma) > 1e-9 {
		t.Errorf("VaR %v inconsistent with sigma %v", res.VaR, res.Sigma)
	}
	if res.ES <= res.VaR {
		t.Errorf("ES %v should exceed VaR %v", res.ES, res.VaR)
	}

	// Marginal VaR is beta times factor vol over portfolio vol; component
	// VaR scales the marginal by the total. The short rate-level position
	// makes both signed, and the components do not sum to the total.
	for i, f := range m.Factors {
		marg := f.Beta * math.Sqrt(f.Variance) / res.Sigma
		if math.Abs(res.Marginal[i]-marg) > 1e-12 {
			t.Errorf("factor %s: marginal %v, want %v", f.Name, res.Marginal[i], marg)
		}
		if comp := marg * res.VaR; math.Abs(res.Component[i]-comp) > 1e-12 {
			t.Errorf("factor %s: component %v, want %v", f.Name, res.Component[i], comp)
		}
		if math.Signbit(res.Marginal[i]) != math.Signbit(f.Beta) {
			t.Errorf("factor %s: marginal %v should carry beta's sign", f.Name, res.Marginal[i])
		}
	}
}

func TestAnalyticRejectsBadConfidence(t *testing.T) {
	t.Parallel()

	if _, err := testModel().Analytic(0.3); err == nil {
		t.Error("confidence 0.3 accepted")
	}
	if _, err := testModel().Analytic(1); err == nil {
		t.Error("confidence 1 accepted")
	}
}

func TestMonteCarloMatchesAnalytic(t *testing.T) {
	t.Parallel()

	m := testModel()
	analytic, err := m.Analytic(0.99)
	if err != nil {
		t.Fatalf("Analytic: %v", err)
	}
	mc, err := m.MonteCarlo(1_000_000, 42, 0.99)
	if err != nil {
		t.Fatalf("MonteCarlo: %v", err)
	}
	if len(mc.PnL) != 1_000_000 {
		t.Fatalf("got %d draws, want 1e6", len(mc.PnL))
	}

	// One million normal draws pin the 1% quantile to about a percent.
	if rel := math.Abs(mc.VaR-analytic.VaR) / analytic.VaR; rel > 0.02 {
		t.Errorf("MC VaR %v vs analytic %v, rel err %v", mc.VaR, analytic.VaR, rel)
	}
	if rel := math.Abs(mc.ES-analytic.ES) / analytic.ES; rel > 0.02 {
		t.Errorf("MC ES %v vs analytic %v, rel err %v", mc.ES, analytic.ES, rel)
	}
	if mc.ES <= mc.VaR {
		t.Errorf("MC ES %v should exceed VaR %v", mc.ES, mc.VaR)
	}
}

func TestMonteCarloReproducible(t *testing.T) {
	t.Parallel()

	m := testModel()
	a, err := m.MonteCarlo(10_000, 42, 0.99)
	if err != nil {
		t.Fatalf("MonteCarlo: %v", err)
	}
	b, err := m.MonteCarlo(10_000, 42, 0.99)
	if err != nil {
		t.Fatalf("MonteCarlo: %v", err)
	}
	if a.VaR != b.VaR || a.ES != b.ES {
		t.Errorf("same seed gave different results: %v/%v vs %v/%v", a.VaR, a.ES, b.VaR, b.ES)
	}

	c, err := m.MonteCarlo(10_000, 7, 0.99)
	if err != nil {
		t.Fatalf("MonteCarlo: %v", err)
	}
	if c.VaR == a.VaR {
		t.Error("different seeds gave identical VaR")
	}
}
