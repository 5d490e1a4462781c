// Package config provides configuration management for the trade planner.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Risk  RiskConfig  `mapstructure:"risk"`
	Scan  ScanConfig  `mapstructure:"scan"`
	Fetch FetchConfig `mapstructure:"fetch"`
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

// RiskConfig holds the thresholds driving the risk assessment pipeline.
type RiskConfig struct {
	// Volatility regime boundaries, as ATR percent of price.
	VolLowThreshold  float64 `mapstructure:"vol_low_threshold"`
	VolHighThreshold float64 `mapstructure:"vol_high_threshold"`

	// Stop placement: ATR multiple per timeframe, and the validity band.
	SwingATRMultiple float64 `mapstructure:"swing_atr_multiple"`
	DayATRMultiple   float64 `mapstructure:"day_atr_multiple"`
	ScalpATRMultiple float64 `mapstructure:"scalp_atr_multiple"`
	MinATRMultiple   float64 `mapstructure:"min_atr_multiple"`
	MaxATRMultiple   float64 `mapstructure:"max_atr_multiple"`

	// Risk:reward requirements.
	MinRiskReward       float64 `mapstructure:"min_risk_reward"`
	PreferredRiskReward float64 `mapstructure:"preferred_risk_reward"`

	// Trend and signal-conflict gates.
	TrendingADX         float64 `mapstructure:"trending_adx"`
	MaxConflictingRatio float64 `mapstructure:"max_conflicting_ratio"`

	// Vehicle selection.
	MinMoveForOptions float64 `mapstructure:"min_move_for_options"`

	// Invalidation detection lookback in bars.
	SwingLookback int `mapstructure:"swing_lookback"`
}

// ScanConfig holds multi-symbol scan configuration.
type ScanConfig struct {
	Concurrency int      `mapstructure:"concurrency"`
	Symbols     []string `mapstructure:"symbols"`
}

// FetchConfig holds market data fetcher configuration.
type FetchConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Period      string        `mapstructure:"period"`
	MaxRetries  int           `mapstructure:"max_retries"`
	MinBars     int           `mapstructure:"min_bars"`
}

// StoreConfig holds persistence configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`    // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`     // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trade-planner"
	}
	return filepath.Join(home, ".config", "trade-planner")
}

// DefaultRisk returns the default risk thresholds.
func DefaultRisk() RiskConfig {
	return RiskConfig{
		VolLowThreshold:     1.0,
		VolHighThreshold:    3.0,
		SwingATRMultiple:    2.5,
		DayATRMultiple:      1.5,
		ScalpATRMultiple:    1.0,
		MinATRMultiple:      0.5,
		MaxATRMultiple:      3.0,
		MinRiskReward:       1.5,
		PreferredRiskReward: 2.0,
		TrendingADX:         25.0,
		MaxConflictingRatio: 0.4,
		MinMoveForOptions:   5.0,
		SwingLookback:       10,
	}
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used. A missing config file is
// not an error: defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	risk := DefaultRisk()
	v.SetDefault("risk.vol_low_threshold", risk.VolLowThreshold)
	v.SetDefault("risk.vol_high_threshold", risk.VolHighThreshold)
	v.SetDefault("risk.swing_atr_multiple", risk.SwingATRMultiple)
	v.SetDefault("risk.day_atr_multiple", risk.DayATRMultiple)
	v.SetDefault("risk.scalp_atr_multiple", risk.ScalpATRMultiple)
	v.SetDefault("risk.min_atr_multiple", risk.MinATRMultiple)
	v.SetDefault("risk.max_atr_multiple", risk.MaxATRMultiple)
	v.SetDefault("risk.min_risk_reward", risk.MinRiskReward)
	v.SetDefault("risk.preferred_risk_reward", risk.PreferredRiskReward)
	v.SetDefault("risk.trending_adx", risk.TrendingADX)
	v.SetDefault("risk.max_conflicting_ratio", risk.MaxConflictingRatio)
	v.SetDefault("risk.min_move_for_options", risk.MinMoveForOptions)
	v.SetDefault("risk.swing_lookback", risk.SwingLookback)

	v.SetDefault("scan.concurrency", 5)

	v.SetDefault("fetch.timeout", 15*time.Second)
	v.SetDefault("fetch.period", "6mo")
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.min_bars", 50)

	v.SetDefault("store.path", filepath.Join(configDir, "planner.db"))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", true)
	v.SetDefault("log.file_path", filepath.Join(configDir, "logs", "planner.log"))
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANNER_DATA_API_KEY"); v != "" {
		cfg.Fetch.APIKey = v
	}
	if v := os.Getenv("PLANNER_DATA_BASE_URL"); v != "" {
		cfg.Fetch.BaseURL = v
	}
	if v := os.Getenv("PLANNER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	r := c.Risk
	if r.VolLowThreshold < 0 || r.VolHighThreshold < 0 {
		return fmt.Errorf("volatility thresholds must be non-negative")
	}
	if r.VolLowThreshold >= r.VolHighThreshold {
		return fmt.Errorf("vol_low_threshold must be below vol_high_threshold")
	}
	if r.MinATRMultiple <= 0 || r.MaxATRMultiple <= 0 {
		return fmt.Errorf("ATR multiple band must be positive")
	}
	if r.MinATRMultiple >= r.MaxATRMultiple {
		return fmt.Errorf("min_atr_multiple must be below max_atr_multiple")
	}
	if r.MinRiskReward < 0 {
		return fmt.Errorf("min_risk_reward must be non-negative")
	}
	if r.PreferredRiskReward <= 0 {
		return fmt.Errorf("preferred_risk_reward must be positive")
	}
	if r.MaxConflictingRatio < 0 || r.MaxConflictingRatio > 0.5 {
		return fmt.Errorf("max_conflicting_ratio must be in [0, 0.5]")
	}
	if r.SwingLookback <= 0 {
		return fmt.Errorf("swing_lookback must be positive")
	}
	if c.Scan.Concurrency <= 0 {
		return fmt.Errorf("scan concurrency must be positive")
	}
	return nil
}
