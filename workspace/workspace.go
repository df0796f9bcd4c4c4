// Package workspace wires configuration, market data, and the note together
// for the analysis tools. Each tool is a standalone run that re-reads the
// snapshot files, so the loaders here are plain constructors with no caching
// across processes.
package workspace

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/quantdesk/frnlib/calendar"
	"github.com/quantdesk/frnlib/config"
	"github.com/quantdesk/frnlib/curve"
	"github.com/quantdesk/frnlib/frn"
	"github.com/quantdesk/frnlib/logger"
	"github.com/quantdesk/frnlib/marketdata"
	"github.com/quantdesk/frnlib/utils"
)

// Workspace bundles what every tool needs before its own computation.
type Workspace struct {
	Cfg  *config.Config
	Log  *logger.Entry
	Note frn.Note
	Spot time.Time
}

// Load reads the config (or falls back to snapshot defaults when path is
// empty), configures logging, and builds the note and spot date.
func Load(path, component string) (*Workspace, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("workspace.Load: %w", err)
		}
		cfg = loaded
	}

	log := logger.Get()
	if cfg.Logging.File != "" {
		log.ToFile(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays)
	}
	entry := log.WithComponent(component)

	note, err := frn.FromConfig(cfg.Note)
	if err != nil {
		return nil, fmt.Errorf("workspace.Load: %w", err)
	}

	spot := note.ValueDate()
	if cfg.Valuation.SpotDate != "" {
		spot, err = utils.ParseDate(cfg.Valuation.SpotDate)
		if err != nil {
			return nil, fmt.Errorf("workspace.Load: spot date: %w", err)
		}
	}

	entry.WithFields(logger.Fields{
		"isin": note.ISIN,
		"spot": spot.Format("2006-01-02"),
	}).Info("workspace ready")

	return &Workspace{Cfg: cfg, Log: entry, Note: note, Spot: spot}, nil
}

// BootstrapInput loads the deposit and swap quote files.
func (w *Workspace) BootstrapInput() (curve.BootstrapInput, error) {
	deposits, err := marketdata.LoadDepositQuotes(w.Cfg.DatasetPath(w.Cfg.Datasets.DepositQuotes))
	if err != nil {
		return curve.BootstrapInput{}, fmt.Errorf("BootstrapInput: %w", err)
	}
	swaps, err := marketdata.LoadSwapQuotes(w.Cfg.DatasetPath(w.Cfg.Datasets.SwapQuotes))
	if err != nil {
		return curve.BootstrapInput{}, fmt.Errorf("BootstrapInput: %w", err)
	}
	w.Log.WithFields(logger.Fields{"deposits": len(deposits), "swaps": len(swaps)}).Info("quotes loaded")
	return curve.BootstrapInput{
		Settlement: w.Spot,
		Cal:        calendar.TARGET,
		Deposits:   deposits,
		Swaps:      swaps,
	}, nil
}

// DiscountCurve bootstraps the valuation curve on the log-cubic discount
// scheme.
func (w *Workspace) DiscountCurve() (*curve.Curve, error) {
	in, err := w.BootstrapInput()
	if err != nil {
		return nil, fmt.Errorf("DiscountCurve: %w", err)
	}
	c, err := curve.Bootstrap(in, curve.InterpLogCubicDiscount)
	if err != nil {
		return nil, fmt.Errorf("DiscountCurve: %w", err)
	}
	return c, nil
}

// AllCurves bootstraps one curve per interpolation scheme.
func (w *Workspace) AllCurves() (map[curve.Interpolation]*curve.Curve, error) {
	in, err := w.BootstrapInput()
	if err != nil {
		return nil, fmt.Errorf("AllCurves: %w", err)
	}
	curves, err := curve.BootstrapAll(in)
	if err != nil {
		return nil, fmt.Errorf("AllCurves: %w", err)
	}
	return curves, nil
}

// VolSurface loads the shifted Black volatility sheet.
func (w *Workspace) VolSurface() (*marketdata.VolSurface, error) {
	s, err := marketdata.LoadShiftedVolSurface(w.Cfg.DatasetPath(w.Cfg.Datasets.ShiftedVols))
	if err != nil {
		return nil, fmt.Errorf("VolSurface: %w", err)
	}
	return s, nil
}

// Fixings opens the Euribor fixing feed. When the Postgres feed is enabled
// and reachable it wins; otherwise the CSV history backs the feed.
func (w *Workspace) Fixings() (marketdata.FixingFeed, error) {
	if w.Cfg.Datasets.FixingsPGEnable {
		feed, err := marketdata.OpenPGFixingFeed()
		if err == nil {
			w.Log.Info("using Postgres fixing feed")
			return feed, nil
		}
		w.Log.WithError(err).Warn("Postgres fixing feed unavailable, falling back to CSV")
	}
	feed, err := marketdata.LoadEuriborFixings(w.Cfg.DatasetPath(w.Cfg.Datasets.EuriborFixings))
	if err != nil {
		return nil, fmt.Errorf("Fixings: %w", err)
	}
	return feed, nil
}

// ResultsPath joins the results dir with a file name.
func (w *Workspace) ResultsPath(name string) string {
	return filepath.Join(w.Cfg.Results.Dir, name)
}
