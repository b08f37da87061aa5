package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable of the validation engine. It is constructed
// once at startup, validated, and passed by reference; the engine never
// reads configuration lazily.
type Config struct {
	Amount    AmountLimits   `yaml:"amount"`
	Velocity  VelocityLimits `yaml:"velocity"`
	Weights   RiskWeights    `yaml:"risk_weights"`
	RiskBands RiskThresholds `yaml:"risk_thresholds"`
	Toggles   Toggles        `yaml:"toggles"`
	Lists     ScreeningLists `yaml:"lists"`

	// BatchConcurrency bounds the worker pool in batch validation.
	BatchConcurrency int `yaml:"batch_concurrency"`
}

// AmountLimits are the absolute and daily amount thresholds.
type AmountLimits struct {
	HighValue            float64 `yaml:"high_value"`
	VeryHighValue        float64 `yaml:"very_high_value"`
	MaxSingleTransaction float64 `yaml:"max_single_transaction"`
	MaxDailyLimit        float64 `yaml:"max_daily_limit"`

	// ReportingThreshold anchors the structuring heuristic: amounts parked
	// just under it are flagged for review.
	ReportingThreshold float64 `yaml:"reporting_threshold"`
}

// VelocityLimits are per-account transaction-count ceilings per window.
type VelocityLimits struct {
	PerMinute int `yaml:"per_minute"`
	PerHour   int `yaml:"per_hour"`
	PerDay    int `yaml:"per_day"`
}

// RiskWeights combine the five sub-scores. They need not sum to 1; the
// combined score is clamped to [0,1].
type RiskWeights struct {
	Amount         float64 `yaml:"amount"`
	Velocity       float64 `yaml:"velocity"`
	Pattern        float64 `yaml:"pattern"`
	AccountHistory float64 `yaml:"account_history"`
	Geographic     float64 `yaml:"geographic"`
}

// RiskThresholds are the four ascending cut points mapping score to level.
// A score below Low still classifies as LOW.
type RiskThresholds struct {
	Low      float64 `yaml:"low"`
	Medium   float64 `yaml:"medium"`
	High     float64 `yaml:"high"`
	Critical float64 `yaml:"critical"`
}

// Toggles switch whole check subsystems on or off.
type Toggles struct {
	EnableAMLChecks        bool `yaml:"enable_aml_checks"`
	EnableFraudChecks      bool `yaml:"enable_fraud_checks"`
	EnablePatternDetection bool `yaml:"enable_pattern_detection"`
}

// ScreeningLists are the currency allow-list and the country risk sets. They
// ship with defaults and are overridable like every other value.
type ScreeningLists struct {
	AllowedCurrencies   []string `yaml:"allowed_currencies"`
	SanctionedCountries []string `yaml:"sanctioned_countries"`
	HighRiskCountries   []string `yaml:"high_risk_countries"`
	MediumRiskCountries []string `yaml:"medium_risk_countries"`
}

// DefaultConfig returns the production defaults. Callers override fields and
// re-validate rather than building a Config from scratch.
func DefaultConfig() *Config {
	return &Config{
		Amount: AmountLimits{
			HighValue:            10_000,
			VeryHighValue:        50_000,
			MaxSingleTransaction: 1_000_000,
			MaxDailyLimit:        250_000,
			ReportingThreshold:   10_000,
		},
		Velocity: VelocityLimits{
			PerMinute: 10,
			PerHour:   50,
			PerDay:    200,
		},
		Weights: RiskWeights{
			Amount:         0.45,
			Velocity:       0.25,
			Pattern:        0.15,
			AccountHistory: 0.05,
			Geographic:     0.45,
		},
		RiskBands: RiskThresholds{
			Low:      0.2,
			Medium:   0.4,
			High:     0.6,
			Critical: 0.8,
		},
		Toggles: Toggles{
			EnableAMLChecks:        true,
			EnableFraudChecks:      true,
			EnablePatternDetection: true,
		},
		Lists: ScreeningLists{
			AllowedCurrencies:   []string{"USD", "EUR", "GBP", "CHF", "JPY", "CAD", "AUD"},
			SanctionedCountries: []string{"IR", "KP", "CU", "SY", "SD"},
			HighRiskCountries:   []string{"AF", "IQ", "LY", "SO", "YE"},
			MediumRiskCountries: []string{"PK", "NG", "VE", "MM"},
		},
		BatchConcurrency: 8,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected at load
// time, not at lookup time.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults with strict key checking.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects inconsistent configuration once, at startup.
func (c *Config) Validate() error {
	if c.Amount.HighValue <= 0 {
		return fmt.Errorf("amount.high_value must be positive, got %v", c.Amount.HighValue)
	}
	if c.Amount.VeryHighValue <= c.Amount.HighValue {
		return fmt.Errorf("amount.very_high_value (%v) must exceed high_value (%v)",
			c.Amount.VeryHighValue, c.Amount.HighValue)
	}
	if c.Amount.MaxSingleTransaction <= 0 {
		return fmt.Errorf("amount.max_single_transaction must be positive, got %v", c.Amount.MaxSingleTransaction)
	}
	if c.Amount.MaxDailyLimit <= 0 {
		return fmt.Errorf("amount.max_daily_limit must be positive, got %v", c.Amount.MaxDailyLimit)
	}
	if c.Amount.ReportingThreshold <= 0 {
		return fmt.Errorf("amount.reporting_threshold must be positive, got %v", c.Amount.ReportingThreshold)
	}
	if c.Velocity.PerMinute <= 0 || c.Velocity.PerHour <= 0 || c.Velocity.PerDay <= 0 {
		return fmt.Errorf("velocity limits must be positive, got %d/%d/%d",
			c.Velocity.PerMinute, c.Velocity.PerHour, c.Velocity.PerDay)
	}
	for name, w := range map[string]float64{
		"amount":          c.Weights.Amount,
		"velocity":        c.Weights.Velocity,
		"pattern":         c.Weights.Pattern,
		"account_history": c.Weights.AccountHistory,
		"geographic":      c.Weights.Geographic,
	} {
		if w < 0 {
			return fmt.Errorf("risk_weights.%s must not be negative, got %v", name, w)
		}
	}
	t := c.RiskBands
	if t.Low < 0 || t.Low >= t.Medium || t.Medium >= t.High || t.High >= t.Critical || t.Critical > 1 {
		return fmt.Errorf("risk_thresholds must ascend within [0,1], got %v/%v/%v/%v",
			t.Low, t.Medium, t.High, t.Critical)
	}
	if len(c.Lists.AllowedCurrencies) == 0 {
		return fmt.Errorf("lists.allowed_currencies must not be empty")
	}
	if c.BatchConcurrency <= 0 {
		return fmt.Errorf("batch_concurrency must be positive, got %d", c.BatchConcurrency)
	}
	return nil
}
