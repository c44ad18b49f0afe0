// Package config loads service configuration from environment variables and
// the triage threshold file. Thresholds are deliberately configuration rather
// than constants: the business owners tune them per quarter.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds process-level configuration read from the environment.
type Config struct {
	DatabaseURL    string
	JWTSecret      string
	ThresholdsPath string
	LogJSON        bool
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		ThresholdsPath: getEnv("TRIAGE_THRESHOLDS", ""),
		LogJSON:        getBoolEnv("LOG_JSON", false),
	}
}

// Thresholds are the tunable triage limits shared by the evaluators.
type Thresholds struct {
	// StaleStageDays is the business-day limit a record may sit in one stage.
	StaleStageDays int `yaml:"stale_stage_days"`
	// ActivityDroughtDays is the business-day limit since the last logged activity.
	ActivityDroughtDays int `yaml:"activity_drought_days"`
	// HighValueAmount marks a deal as high value, in CRM-native currency units.
	HighValueAmount float64 `yaml:"high_value_amount"`
	// TouchTarget is the expected outreach count inside the onboarding window.
	TouchTarget int `yaml:"touch_target"`
	// TouchWindowDays is the onboarding window length in business days.
	TouchWindowDays int `yaml:"touch_window_days"`
	// AnalysisFreshnessDays bounds how old a next-step analysis may be before
	// re-extraction is required, in calendar days.
	AnalysisFreshnessDays int `yaml:"analysis_freshness_days"`
	// CommitmentMinDays / CommitmentMaxDays bound how far out a fix-by promise
	// may be set, in calendar days.
	CommitmentMinDays int `yaml:"commitment_min_days"`
	CommitmentMaxDays int `yaml:"commitment_max_days"`
}

// DefaultThresholds returns the stock limits used when no file is provided.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StaleStageDays:        10,
		ActivityDroughtDays:   5,
		HighValueAmount:       50000,
		TouchTarget:           6,
		TouchWindowDays:       5,
		AnalysisFreshnessDays: 7,
		CommitmentMinDays:     1,
		CommitmentMaxDays:     30,
	}
}

// LoadThresholds reads the yaml threshold file at path. Missing keys keep
// their defaults; an empty path returns the defaults unchanged.
func LoadThresholds(path string) (Thresholds, error) {
	th := DefaultThresholds()
	if path == "" {
		return th, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, fmt.Errorf("config: read thresholds: %w", err)
	}
	if err := yaml.Unmarshal(data, &th); err != nil {
		return Thresholds{}, fmt.Errorf("config: parse thresholds: %w", err)
	}
	if err := th.validate(); err != nil {
		return Thresholds{}, err
	}
	return th, nil
}

func (t Thresholds) validate() error {
	if t.StaleStageDays <= 0 || t.ActivityDroughtDays <= 0 {
		return fmt.Errorf("config: stage and drought limits must be positive")
	}
	if t.TouchTarget <= 0 || t.TouchWindowDays <= 0 {
		return fmt.Errorf("config: touch target and window must be positive")
	}
	if t.AnalysisFreshnessDays <= 0 {
		return fmt.Errorf("config: analysis freshness must be positive")
	}
	if t.CommitmentMinDays < 1 || t.CommitmentMaxDays < t.CommitmentMinDays {
		return fmt.Errorf("config: invalid commitment day range %d-%d", t.CommitmentMinDays, t.CommitmentMaxDays)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
