package valuebet

import (
	"math"
	"strings"

	"github.com/richard-senior/valueodds/pkg/config"
	"github.com/richard-senior/valueodds/pkg/predict"
)

// Badge labels for scored selections
const (
	BadgeStrong = "strong value"
	BadgeLikely = "likely value"
	BadgeSlight = "slight value"
)

// ScoreFeatures are the inputs to the confidence scorer for one side of
// one event. The auxiliary diffs are optional signals (A-B for side A,
// negated for side B); the tier key is whatever competition label the
// event carries (provider sport key, or tournament name for scraped
// matches).
type ScoreFeatures struct {
	TierKey       string
	PMarket       float64
	PModel        float64
	EloDiff       *float64
	HoldBreakDiff *float64
	Form30Diff    *float64
}

// Score combines the model-vs-market edge with the auxiliary signals into
// a bounded confidence score and qualitative badge. Each auxiliary signal
// is independently clamped after scaling so that none of them can dominate
// the base edge signal, and lower-certainty competition tiers discount the
// whole score. Tier discounts are independent factors; tier keys are
// mutually exclusive in practice but exclusivity is not assumed.
func Score(f ScoreFeatures) (score float64, badge string) {
	cfg := config.Cfg

	base := math.Max(0, predict.Edge(f.PModel, f.PMarket)) * 100

	eloPts := clampSym(deref(f.EloDiff)*cfg.EloCoefficient, cfg.EloClamp)
	hbPts := clampSym(deref(f.HoldBreakDiff)*cfg.HoldBreakCoefficient, cfg.HoldBreakClamp)
	formPts := clampSym(deref(f.Form30Diff)*cfg.FormCoefficient, cfg.FormClamp)

	conf := 1.0
	tier := strings.ToLower(f.TierKey)
	if strings.Contains(tier, "challenger") {
		conf *= cfg.ChallengerDiscount
	}
	if strings.Contains(tier, "itf") {
		conf *= cfg.ITFDiscount
	}

	raw := (base + eloPts + hbPts + formPts) * conf
	score = math.Max(0, math.Min(100, raw))

	switch {
	case score >= cfg.StrongValueThreshold:
		badge = BadgeStrong
	case score >= cfg.LikelyValueThreshold:
		badge = BadgeLikely
	case score >= cfg.SlightValueThreshold:
		badge = BadgeSlight
	}
	return score, badge
}

// clampSym clamps v to the symmetric range [-limit, limit]
func clampSym(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
