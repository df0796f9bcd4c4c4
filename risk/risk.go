// Package risk estimates VaR and expected shortfall of the hedged note
// position under a linear factor model. Factor moves are independent
// normals; the portfolio PnL is the beta-weighted sum of draws.
package risk

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Factor is one risk driver with its position sensitivity and move variance.
type Factor struct {
	Name     string
	Beta     float64
	Variance float64
}

// Model is the set of independent factors describing the position.
type Model struct {
	Factors []Factor
}

// Validate rejects empty models and non-positive variances.
func (m Model) Validate() error {
	if len(m.Factors) == 0 {
		return fmt.Errorf("Validate: no factors")
	}
	for _, f := range m.Factors {
		if f.Variance <= 0 {
			return fmt.Errorf("Validate: factor %s has non-positive variance %v", f.Name, f.Variance)
		}
	}
	return nil
}

// Sigma is the portfolio PnL standard deviation.
func (m Model) Sigma() float64 {
	var v float64
	for _, f := range m.Factors {
		v += f.Beta * f.Beta * f.Variance
	}
	return math.Sqrt(v)
}

// AnalyticResult carries closed-form risk measures and their per-factor
// decomposition.
type AnalyticResult struct {
	Sigma     float64
	VaR       float64
	ES        float64
	Marginal  []float64
	Component []float64
}

// Analytic evaluates normal VaR and ES at the given confidence level.
// Marginal VaR per factor is beta times the factor volatility over the
// portfolio volatility; component VaR is the marginal scaled by the total
// VaR. The components need not sum back to the total.
func (m Model) Analytic(confidence float64) (AnalyticResult, error) {
	if err := m.Validate(); err != nil {
		return AnalyticResult{}, fmt.Errorf("Analytic: %w", err)
	}
	if confidence <= 0.5 || confidence >= 1 {
		return AnalyticResult{}, fmt.Errorf("Analytic: confidence %v outside (0.5, 1)", confidence)
	}

	std := distuv.Normal{Mu: 0, Sigma: 1}
	alpha := 1 - confidence
	z := std.Quantile(alpha)
	sigma := m.Sigma()

	res := AnalyticResult{
		Sigma:     sigma,
		VaR:       -z * sigma,
		ES:        sigma * std.Prob(z) / alpha,
		Marginal:  make([]float64, len(m.Factors)),
		Component: make([]float64, len(m.Factors)),
	}
	if sigma == 0 {
		return res, nil
	}
	for i, f := range m.Factors {
		res.Marginal[i] = f.Beta * math.Sqrt(f.Variance) / sigma
		res.Component[i] = res.Marginal[i] * res.VaR
	}
	return res, nil
}

// MCResult carries the simulated risk measures and the PnL sample for
// charting.
type MCResult struct {
	VaR float64
	ES  float64
	PnL []float64
}

// MonteCarlo simulates independent factor draws and reports the loss
// quantile and tail mean at the given confidence. The seed pins the draw
// sequence so runs reproduce.
func (m Model) MonteCarlo(nSims int, seed uint64, confidence float64) (MCResult, error) {
	if err := m.Validate(); err != nil {
		return MCResult{}, fmt.Errorf("MonteCarlo: %w", err)
	}
	if nSims < 1000 {
		return MCResult{}, fmt.Errorf("MonteCarlo: %d simulations too few", nSims)
	}
	if confidence <= 0.5 || confidence >= 1 {
		return MCResult{}, fmt.Errorf("MonteCarlo: confidence %v outside (0.5, 1)", confidence)
	}

	src := rand.NewSource(seed)
	dists := make([]distuv.Normal, len(m.Factors))
	for i, f := range m.Factors {
		dists[i] = distuv.Normal{Mu: 0, Sigma: math.Sqrt(f.Variance), Src: src}
	}

	pnl := make([]float64, nSims)
	for i := range pnl {
		var p float64
		for j, f := range m.Factors {
			p -= f.Beta * dists[j].Rand()
		}
		pnl[i] = p
	}

	sorted := make([]float64, nSims)
	copy(sorted, pnl)
	sort.Float64s(sorted)

	alpha := 1 - confidence
	q := stat.Quantile(alpha, stat.Empirical, sorted, nil)

	// Tail mean over the draws at or below the loss quantile.
	k := sort.SearchFloat64s(sorted, q)
	for k < nSims && sorted[k] <= q {
		k++
	}
	if k == 0 {
		k = 1
	}
	es := -stat.Mean(sorted[:k], nil)

	return MCResult{VaR: -q, ES: es, PnL: pnl}, nil
}
