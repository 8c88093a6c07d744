package predict

import (
	"math"

	"github.com/richard-senior/valueodds/pkg/config"
	"github.com/richard-senior/valueodds/pkg/scraper"
)

// ImpliedNoVig converts a pair of two-way decimal odds into de-vigged
// implied probabilities. Raw implied probabilities (1/odds) sum to more
// than 1 because bookmaker prices embed a margin; normalizing by their sum
// yields a pair summing to exactly 1 up to floating-point epsilon.
func ImpliedNoVig(oddsA, oddsB float64) (p1, p2 float64) {
	rawA := 1.0 / oddsA
	rawB := 1.0 / oddsB
	total := rawA + rawB
	return rawA / total, rawB / total
}

// Edge is the signed difference between the model's probability and the
// market's for the same outcome. Positive means the model favors the side
// more than the market does. This is one-directional: it is not symmetric
// unless both arguments are swapped consistently.
func Edge(pModel, pMarket float64) float64 {
	return pModel - pMarket
}

// PredictHome maps a market-implied probability into the engine's own
// estimate through a fixed monotonic calibration curve, a linear map in
// logit space. The slope and intercept are tuned constants held in one
// place; swap them without touching callers.
func PredictHome(pMarket float64) float64 {
	cfg := config.Cfg
	p := clamp(pMarket, cfg.MinProbability, cfg.MaxProbability)
	z := cfg.CalibrationIntercept + cfg.CalibrationSlope*logit(p)
	return clamp(sigmoid(z), cfg.MinProbability, cfg.MaxProbability)
}

// Features are the normalized player-strength signals fed to the logistic
// model, each in [0, 1]
type Features struct {
	WinrateOverall float64
	WinrateSurface float64
	RankScore      float64
}

// FeaturesFromStats derives a player's features from their scraped surface
// statistics. A missing overall winrate defaults to even; a missing
// surface winrate falls back to the overall figure; unranked players are
// treated as holding the default (worst credible) rank.
func FeaturesFromStats(s *scraper.PlayerSurfaceStats, surface scraper.Surface) Features {
	cfg := config.Cfg

	overall := cfg.DefaultWinrate
	if s.Totals.Overall.Pct != nil {
		overall = *s.Totals.Overall.Pct
	}

	onSurface := overall
	if wl := s.Totals.ForSurface(surface); wl.Pct != nil {
		onSurface = *wl.Pct
	}

	rank := cfg.DefaultRank
	if s.Rank != nil {
		rank = *s.Rank
	}

	return Features{
		WinrateOverall: overall,
		WinrateSurface: onSurface,
		RankScore:      RankScore(rank),
	}
}

// RankScore maps a ranking onto [0, 1] on a log scale so that rank 1 is
// ~1.0 and the default rank is 0
func RankScore(rank int) float64 {
	r := float64(rank)
	score := 1 - math.Min(1, math.Log10(1+r)/math.Log10(1+float64(config.Cfg.DefaultRank)))
	return score
}

// LogisticPredict combines the signed feature differences (A-B) through a
// sigmoid with fixed weights, yielding the probability that player A wins.
// The result is clamped away from 0 and 1 to keep downstream division and
// edge math out of the overconfident extremes.
func LogisticPredict(fa, fb Features) float64 {
	cfg := config.Cfg
	dOverall := fa.WinrateOverall - fb.WinrateOverall
	dSurface := fa.WinrateSurface - fb.WinrateSurface
	dRank := fa.RankScore - fb.RankScore

	z := cfg.LogisticBias +
		cfg.WeightWinrateOverall*dOverall +
		cfg.WeightWinrateSurface*dSurface +
		cfg.WeightRankScore*dRank

	return clamp(sigmoid(z), cfg.MinProbability, cfg.MaxProbability)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
