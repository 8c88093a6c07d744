package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config contains all configurable parameters that influence scraping and
// prediction outcomes. This centralizes all magic numbers and constants for
// easy adjustment.
type Config struct {
	// Cache parameters
	CacheDir     string // directory holding file-backed cache entries
	CacheDbPath  string // location of the sqlite cache database
	CacheBackend string // "file" or "sqlite"

	// External sources
	TennisBaseURL   string // the scraped tennis results site
	OddsAPIBaseURL  string // the bookmaker odds provider
	OddsAPIKey      string // provider API key; empty key yields empty results
	ScheduleBaseURL string // alternate schedule/odds JSON source

	// Cache TTLs
	PlayerStatsTTL time.Duration // player surface stats (default: 24h)
	SurfaceTTL     time.Duration // tournament surface lookups (default: 14 days)
	SlugTTL        time.Duration // player name to slug resolution (default: 7 days)

	// === PREDICTION PARAMETERS ===

	// Logistic model weights over signed feature differences (A-B).
	// Tuned constants; calibrate against settled matches, do not treat as exact.
	LogisticBias          float64 // intercept (default: 0.0)
	WeightWinrateOverall  float64 // overall winrate difference (default: 2.0)
	WeightWinrateSurface  float64 // surface winrate difference (default: 3.0)
	WeightRankScore       float64 // rank score difference (default: 1.2)
	MinProbability        float64 // lower probability clamp (default: 0.015)
	MaxProbability        float64 // upper probability clamp (default: 0.985)
	DefaultRank           int     // rank assumed for unranked players (default: 2000)
	DefaultWinrate        float64 // winrate assumed when no record parses (default: 0.5)
	CalibrationSlope      float64 // market-to-model calibration, logit space (default: 1.05)
	CalibrationIntercept  float64 // market-to-model calibration, logit space (default: 0.0)

	// === VALUE SCORING PARAMETERS ===

	EloCoefficient       float64 // points per Elo difference unit (default: 0.05)
	EloClamp             float64 // symmetric clamp on Elo points (default: 10)
	HoldBreakCoefficient float64 // points per hold+break pct difference (default: 0.08)
	HoldBreakClamp       float64 // symmetric clamp on hold/break points (default: 8)
	FormCoefficient      float64 // points per 30-day form difference (default: 0.07)
	FormClamp            float64 // symmetric clamp on form points (default: 7)
	ChallengerDiscount   float64 // confidence for challenger-tier events (default: 0.9)
	ITFDiscount          float64 // confidence for ITF-tier events (default: 0.85)
	StrongValueThreshold float64 // badge threshold (default: 75)
	LikelyValueThreshold float64 // badge threshold (default: 55)
	SlightValueThreshold float64 // badge threshold (default: 45)

	// Minimum model-vs-market edge for a selection to count as value
	MinEdge float64 // (default: 0.0, callers usually pass their own)

	// Accepted decimal odds must exceed this; values at or near 1.0 are noise
	MinDecimalOdds float64 // (default: 1.01)
}

// DefaultConfig returns the default configuration with all standard values
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	assets := filepath.Join(home, ".valueodds")

	return &Config{
		CacheDir:     filepath.Join(assets, "cache"),
		CacheDbPath:  filepath.Join(assets, "cache.db"),
		CacheBackend: "file",

		TennisBaseURL:   "https://www.tennisexplorer.com",
		OddsAPIBaseURL:  "https://api.the-odds-api.com/v4",
		OddsAPIKey:      "",
		ScheduleBaseURL: "https://api.sofascore.com",

		PlayerStatsTTL: 24 * time.Hour,
		SurfaceTTL:     14 * 24 * time.Hour,
		SlugTTL:        7 * 24 * time.Hour,

		// === PREDICTION PARAMETERS ===
		LogisticBias:         0.0,
		WeightWinrateOverall: 2.0,
		WeightWinrateSurface: 3.0,
		WeightRankScore:      1.2,
		MinProbability:       0.015,
		MaxProbability:       0.985,
		DefaultRank:          2000,
		DefaultWinrate:       0.5,
		CalibrationSlope:     1.05,
		CalibrationIntercept: 0.0,

		// === VALUE SCORING PARAMETERS ===
		EloCoefficient:       0.05,
		EloClamp:             10,
		HoldBreakCoefficient: 0.08,
		HoldBreakClamp:       8,
		FormCoefficient:      0.07,
		FormClamp:            7,
		ChallengerDiscount:   0.9,
		ITFDiscount:          0.85,
		StrongValueThreshold: 75,
		LikelyValueThreshold: 55,
		SlightValueThreshold: 45,

		MinEdge:        0.0,
		MinDecimalOdds: 1.01,
	}
}

// Global configuration instance
var Cfg *Config

// init initializes the global configuration with defaults and then applies
// any environment overrides
func init() {
	Cfg = DefaultConfig()
	ApplyEnv(Cfg)
}

// ApplyEnv loads a .env file if one exists and applies environment overrides.
// Absence of the odds API key is not an error; the provider client degrades
// to an empty result set.
func ApplyEnv(c *Config) {
	// best effort, projects without a .env just use the process environment
	_ = godotenv.Load()

	if v := os.Getenv("THE_ODDS_API_KEY"); v != "" {
		c.OddsAPIKey = v
	}
	if v := os.Getenv("SCHEDULE_BASE_URL"); v != "" {
		c.ScheduleBaseURL = v
	}
	if v := os.Getenv("TENNIS_BASE_URL"); v != "" {
		c.TennisBaseURL = v
	}
	if v := os.Getenv("VALUEODDS_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("VALUEODDS_CACHE_BACKEND"); v != "" {
		c.CacheBackend = v
	}
}

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(c *Config) error {
	if c.MinProbability <= 0 || c.MinProbability >= 0.5 {
		return fmt.Errorf("MinProbability must be in (0, 0.5), got: %f", c.MinProbability)
	}
	if c.MaxProbability <= 0.5 || c.MaxProbability >= 1 {
		return fmt.Errorf("MaxProbability must be in (0.5, 1), got: %f", c.MaxProbability)
	}
	if c.DefaultRank < 1 {
		return fmt.Errorf("DefaultRank must be positive, got: %d", c.DefaultRank)
	}
	if c.CalibrationSlope <= 0 {
		return fmt.Errorf("CalibrationSlope must be positive, got: %f", c.CalibrationSlope)
	}
	if c.ChallengerDiscount <= 0 || c.ChallengerDiscount > 1 {
		return fmt.Errorf("ChallengerDiscount must be in (0, 1], got: %f", c.ChallengerDiscount)
	}
	if c.ITFDiscount <= 0 || c.ITFDiscount > 1 {
		return fmt.Errorf("ITFDiscount must be in (0, 1], got: %f", c.ITFDiscount)
	}
	if c.MinDecimalOdds < 1.0 {
		return fmt.Errorf("MinDecimalOdds must be at least 1.0, got: %f", c.MinDecimalOdds)
	}
	if c.CacheBackend != "file" && c.CacheBackend != "sqlite" {
		return fmt.Errorf("CacheBackend must be 'file' or 'sqlite', got: %s", c.CacheBackend)
	}
	return nil
}
