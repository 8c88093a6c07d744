package predict

import (
	"testing"

	"github.com/richard-senior/valueodds/pkg/config"
	"github.com/richard-senior/valueodds/pkg/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpliedNoVigSumsToOne(t *testing.T) {
	pairs := [][2]float64{
		{2.0, 2.0},
		{1.5, 2.6},
		{1.02, 15.0},
		{3.4, 1.33},
		{10.0, 1.05},
	}
	for _, p := range pairs {
		p1, p2 := ImpliedNoVig(p[0], p[1])
		assert.InDelta(t, 1.0, p1+p2, 1e-12, "odds %v", p)
		assert.Greater(t, p1, 0.0)
		assert.Less(t, p1, 1.0)
		assert.Greater(t, p2, 0.0)
		assert.Less(t, p2, 1.0)
	}
}

func TestImpliedNoVigEvenMoney(t *testing.T) {
	p1, p2 := ImpliedNoVig(2.0, 2.0)
	assert.InDelta(t, 0.5, p1, 1e-12)
	assert.InDelta(t, 0.5, p2, 1e-12)
}

func TestImpliedNoVigStripsMargin(t *testing.T) {
	// 1.90/1.90 carries ~5% overround; the de-vigged pair is still even
	p1, p2 := ImpliedNoVig(1.90, 1.90)
	assert.InDelta(t, 0.5, p1, 1e-12)
	assert.InDelta(t, 0.5, p2, 1e-12)
}

func TestEdge(t *testing.T) {
	for _, p := range []float64{0.015, 0.25, 0.5, 0.75, 0.985} {
		assert.Zero(t, Edge(p, p))
	}
	assert.InDelta(t, 0.1, Edge(0.6, 0.5), 1e-12)
	assert.InDelta(t, -0.1, Edge(0.5, 0.6), 1e-12)
	// one-directional signed quantity: swapping arguments negates it
	assert.InDelta(t, -Edge(0.6, 0.5), Edge(0.5, 0.6), 1e-12)
}

func TestLogisticPredictStaysClamped(t *testing.T) {
	cfg := config.Cfg

	// saturated features in both directions must not escape the clamp
	strong := Features{WinrateOverall: 1, WinrateSurface: 1, RankScore: 1}
	weak := Features{WinrateOverall: 0, WinrateSurface: 0, RankScore: 0}

	p := LogisticPredict(strong, weak)
	assert.LessOrEqual(t, p, cfg.MaxProbability)
	assert.GreaterOrEqual(t, p, cfg.MinProbability)

	p = LogisticPredict(weak, strong)
	assert.GreaterOrEqual(t, p, cfg.MinProbability)
	assert.LessOrEqual(t, p, cfg.MaxProbability)
}

func TestLogisticPredictEvenFeatures(t *testing.T) {
	f := Features{WinrateOverall: 0.5, WinrateSurface: 0.5, RankScore: 0.5}
	assert.InDelta(t, 0.5, LogisticPredict(f, f), 1e-12)
}

func TestLogisticPredictFavorsStrongerPlayer(t *testing.T) {
	stronger := Features{WinrateOverall: 0.7, WinrateSurface: 0.8, RankScore: 0.9}
	weaker := Features{WinrateOverall: 0.5, WinrateSurface: 0.4, RankScore: 0.3}
	assert.Greater(t, LogisticPredict(stronger, weaker), 0.5)
	assert.Less(t, LogisticPredict(weaker, stronger), 0.5)

	// swapping the players complements the probability
	assert.InDelta(t, 1.0,
		LogisticPredict(stronger, weaker)+LogisticPredict(weaker, stronger), 1e-12)
}

func TestRankScore(t *testing.T) {
	assert.Greater(t, RankScore(1), 0.9)
	assert.LessOrEqual(t, RankScore(1), 1.0)
	assert.InDelta(t, 0.0, RankScore(config.Cfg.DefaultRank), 1e-12)
	assert.Greater(t, RankScore(10), RankScore(100))
	assert.Greater(t, RankScore(100), RankScore(1000))
}

func TestPredictHomeIsMonotonic(t *testing.T) {
	prev := 0.0
	for p := 0.05; p <= 0.95; p += 0.05 {
		got := PredictHome(p)
		assert.Greater(t, got, prev, "p=%f", p)
		assert.GreaterOrEqual(t, got, config.Cfg.MinProbability)
		assert.LessOrEqual(t, got, config.Cfg.MaxProbability)
		prev = got
	}
}

func TestPredictHomeFixedPointAtEvenMoney(t *testing.T) {
	// with zero intercept the logit-space map leaves even money unchanged
	assert.InDelta(t, 0.5, PredictHome(0.5), 1e-9)
}

func TestFeaturesFromStats(t *testing.T) {
	pct := func(v float64) *float64 { return &v }
	rank := 8
	s := &scraper.PlayerSurfaceStats{
		Slug: "a",
		Rank: &rank,
		Totals: scraper.SurfaceTotals{
			Overall: scraper.WinLoss{W: 30, L: 10, Pct: pct(0.75)},
			Clay:    scraper.WinLoss{W: 9, L: 1, Pct: pct(0.9)},
		},
	}

	f := FeaturesFromStats(s, scraper.SurfaceClay)
	assert.InDelta(t, 0.75, f.WinrateOverall, 1e-12)
	assert.InDelta(t, 0.9, f.WinrateSurface, 1e-12)
	assert.InDelta(t, RankScore(8), f.RankScore, 1e-12)
}

func TestFeaturesFromStatsDefaults(t *testing.T) {
	s := &scraper.PlayerSurfaceStats{Slug: "b"}

	f := FeaturesFromStats(s, scraper.SurfaceGrass)
	assert.InDelta(t, config.Cfg.DefaultWinrate, f.WinrateOverall, 1e-12)
	// missing surface record falls back to the overall winrate
	assert.InDelta(t, f.WinrateOverall, f.WinrateSurface, 1e-12)
	// unranked players hold the default rank
	assert.InDelta(t, 0.0, f.RankScore, 1e-12)
}

func TestMetricsFor(t *testing.T) {
	m := MetricsFor("novak djokovic")
	require.NotNil(t, m.Elo)
	assert.InDelta(t, 2400, *m.Elo, 1e-12)

	empty := MetricsFor("Unknown Player")
	assert.Nil(t, empty.Elo)
	assert.Nil(t, empty.HoldPct)
}
