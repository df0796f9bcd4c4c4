package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root analysis configuration loaded from YAML.
type Config struct {
	Datasets  DatasetsConfig  `yaml:"datasets"`
	Results   ResultsConfig   `yaml:"results"`
	Note      NoteConfig      `yaml:"note"`
	Valuation ValuationConfig `yaml:"valuation"`
	Credit    CreditConfig    `yaml:"credit"`
	Risk      RiskConfig      `yaml:"risk"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatasetsConfig names the market-data snapshot files.
type DatasetsConfig struct {
	Dir             string `yaml:"dir"`
	DepositQuotes   string `yaml:"deposit_quotes"`
	SwapQuotes      string `yaml:"swap_quotes"`
	EuriborFixings  string `yaml:"euribor_fixings"`
	ShiftedVols     string `yaml:"shifted_vols"`
	FixingsPGEnable bool   `yaml:"fixings_pg_enable"`
}

// ResultsConfig controls where tables and charts land.
type ResultsConfig struct {
	Dir string `yaml:"dir"`
}

// NoteConfig mirrors the term sheet of the structured note.
type NoteConfig struct {
	Issuer         string  `yaml:"issuer"`
	Name           string  `yaml:"name"`
	ISIN           string  `yaml:"isin"`
	Currency       string  `yaml:"currency"`
	Notional       float64 `yaml:"notional"`
	IssueDate      string  `yaml:"issue_date"`
	MaturityDate   string  `yaml:"maturity_date"`
	TradeDate      string  `yaml:"trade_date"`
	Floor          float64 `yaml:"floor"`
	Cap            float64 `yaml:"cap"`
	FrequencyMonth int     `yaml:"frequency_months"`
	SettlementLag  int     `yaml:"settlement_lag"`
}

// ValuationConfig fixes the curve and spot dates of the snapshot.
type ValuationConfig struct {
	SpotDate   string  `yaml:"spot_date"`
	VolShift   float64 `yaml:"vol_shift"`
	SwapRate   float64 `yaml:"hedge_swap_fixed_rate"`
	MarketCln  float64 `yaml:"market_clean_per_100"`
	CurveYears int     `yaml:"curve_plot_years"`
}

// CreditConfig holds the issuer CDS data.
type CreditConfig struct {
	CDSSpread    float64 `yaml:"cds_spread"`
	RecoveryRate float64 `yaml:"recovery_rate"`
}

// RiskConfig holds Monte Carlo and factor-model settings.
type RiskConfig struct {
	Simulations int     `yaml:"simulations"`
	Seed        uint64  `yaml:"seed"`
	Confidence  float64 `yaml:"confidence"`
	VarLevel    float64 `yaml:"var_level"`
	VarSlope    float64 `yaml:"var_slope"`
	VarCurve    float64 `yaml:"var_curvature"`
	VarCDS      float64 `yaml:"var_cds"`
}

// LoggingConfig mirrors the logger setup.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the coursework snapshot parameters. A config file only
// needs to override what differs.
func Default() *Config {
	return &Config{
		Datasets: DatasetsConfig{
			Dir:            "datasets",
			DepositQuotes:  "deposit_rates.csv",
			SwapQuotes:     "irs_rates.csv",
			EuriborFixings: "HistoricalEuribor.csv",
			ShiftedVols:    "shifted_black_vols.csv",
		},
		Results: ResultsConfig{Dir: "results"},
		Note: NoteConfig{
			Issuer:         "BNP Paribas",
			Name:           "Variable Rate Bond 2033",
			ISIN:           "XS2392609181",
			Currency:       "EUR",
			Notional:       1000,
			IssueDate:      "2022-07-29",
			MaturityDate:   "2027-07-29",
			TradeDate:      "2024-11-24",
			Floor:          0.016,
			Cap:            0.037,
			FrequencyMonth: 3,
			SettlementLag:  2,
		},
		Valuation: ValuationConfig{
			SpotDate:   "2024-11-26",
			VolShift:   0.03,
			SwapRate:   0.02202,
			MarketCln:  98.43,
			CurveYears: 60,
		},
		Credit: CreditConfig{
			CDSSpread:    0.004921,
			RecoveryRate: 0.40,
		},
		Risk: RiskConfig{
			Simulations: 1_000_000,
			Seed:        42,
			Confidence:  0.99,
			VarLevel:    0.022,
			VarSlope:    0.003,
			VarCurve:    0.001,
			VarCDS:      0.002,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate checks the fields every tool depends on.
func (c *Config) Validate() error {
	if c.Note.Notional <= 0 {
		return fmt.Errorf("config: note.notional must be positive")
	}
	if c.Note.Floor >= c.Note.Cap {
		return fmt.Errorf("config: note.floor (%v) must be below note.cap (%v)", c.Note.Floor, c.Note.Cap)
	}
	if c.Note.FrequencyMonth <= 0 {
		return fmt.Errorf("config: note.frequency_months must be positive")
	}
	if c.Risk.Simulations <= 0 {
		return fmt.Errorf("config: risk.simulations must be positive")
	}
	if c.Risk.Confidence <= 0 || c.Risk.Confidence >= 1 {
		return fmt.Errorf("config: risk.confidence must be in (0, 1)")
	}
	return nil
}

// DatasetPath joins the datasets dir with a file name.
func (c *Config) DatasetPath(name string) string {
	return filepath.Join(c.Datasets.Dir, name)
}
