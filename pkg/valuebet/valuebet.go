package valuebet

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/richard-senior/valueodds/internal/logger"
	"github.com/richard-senior/valueodds/pkg/predict"
	"github.com/richard-senior/valueodds/pkg/scraper"
	"github.com/richard-senior/valueodds/pkg/theodds"
)

// Side identifies which competitor a value bet backs
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// ValueBet is one selection where the model's probability exceeds the
// market-implied probability. Derived per request, never persisted.
type ValueBet struct {
	ID     string  `json:"id"`
	Side   Side    `json:"side"`
	Player string  `json:"player"`
	Slug   string  `json:"slug,omitempty"`
	Prob   float64 `json:"prob"`
	Odds   float64 `json:"odds"`
	Edge   float64 `json:"edge"`
	EV     float64 `json:"ev"`
	Score  float64 `json:"score"`
	Badge  string  `json:"badge,omitempty"`

	Match *scraper.Match `json:"match,omitempty"`
}

// FindValueBets runs the full scrape-and-score pipeline for a calendar
// date: scrape the daily listing, predict each playable match from both
// players' surface statistics, and keep the sides whose model-vs-market
// edge exceeds minEdge, ranked by expected value. A failed stats lookup
// skips that one match; only the listing scrape itself can fail the batch.
func FindValueBets(ds *scraper.Datasource, date time.Time, minEdge float64) ([]*ValueBet, error) {
	matches, err := ds.MatchesForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve matches: %w", err)
	}

	out := []*ValueBet{}
	for _, m := range matches {
		if m.SlugA == "" || m.SlugB == "" || m.OddsA == nil || m.OddsB == nil {
			continue
		}

		sa, sb, err := fetchBothStats(ds, m.SlugA, m.SlugB)
		if err != nil {
			logger.Warn("Skipping match, player stats unavailable", m.ID, err)
			continue
		}

		surface := m.Surface
		if surface == scraper.SurfaceUnknown {
			surface = scraper.SurfaceHard
		}

		fa := predict.FeaturesFromStats(sa, surface)
		fb := predict.FeaturesFromStats(sb, surface)
		pA := predict.LogisticPredict(fa, fb)
		pB := 1 - pA

		// Site odds carry the margin; edges here are against raw implied
		// probabilities per side
		impA := 1 / *m.OddsA
		impB := 1 / *m.OddsB

		if vb := buildValueBet(m, SideA, pA, impA, *m.OddsA, minEdge); vb != nil {
			out = append(out, vb)
		}
		if vb := buildValueBet(m, SideB, pB, impB, *m.OddsB, minEdge); vb != nil {
			out = append(out, vb)
		}
	}

	sortByEV(out)
	logger.Info("Value bet scan complete", len(out))
	return out, nil
}

// fetchBothStats issues the two independent player lookups concurrently
// and joins before proceeding
func fetchBothStats(ds *scraper.Datasource, slugA, slugB string) (*scraper.PlayerSurfaceStats, *scraper.PlayerSurfaceStats, error) {
	var (
		wg       sync.WaitGroup
		sa, sb   *scraper.PlayerSurfaceStats
		ea, eb   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sa, ea = ds.PlayerStats(slugA)
	}()
	go func() {
		defer wg.Done()
		sb, eb = ds.PlayerStats(slugB)
	}()
	wg.Wait()
	if ea != nil {
		return nil, nil, ea
	}
	if eb != nil {
		return nil, nil, eb
	}
	return sa, sb, nil
}

// buildValueBet assembles one side's selection, or nil when its edge does
// not clear the threshold
func buildValueBet(m *scraper.Match, side Side, prob, pMarket, odds, minEdge float64) *ValueBet {
	edge := predict.Edge(prob, pMarket)
	if edge <= minEdge {
		return nil
	}
	player, slug := m.PlayerA, m.SlugA
	if side == SideB {
		player, slug = m.PlayerB, m.SlugB
	}

	score, badge := Score(ScoreFeatures{
		TierKey:       m.Tournament,
		PMarket:       pMarket,
		PModel:        prob,
		EloDiff:       metricDiff(m.PlayerA, m.PlayerB, side, eloOf),
		HoldBreakDiff: metricDiff(m.PlayerA, m.PlayerB, side, holdBreakOf),
		Form30Diff:    metricDiff(m.PlayerA, m.PlayerB, side, form30Of),
	})

	return &ValueBet{
		ID:     m.ID,
		Side:   side,
		Player: player,
		Slug:   slug,
		Prob:   prob,
		Odds:   odds,
		Edge:   edge,
		EV:     prob*odds - 1,
		Score:  score,
		Badge:  badge,
		Match:  m,
	}
}

// FindOddsValueBets scores provider odds events against the calibrated
// market model: best prices per side, de-vigged implied probabilities, and
// the fixed market-to-model response curve. Events without both prices are
// skipped.
func FindOddsValueBets(events []theodds.OddsEvent, minEdge float64) []*ValueBet {
	out := []*ValueBet{}
	for i := range events {
		e := &events[i]
		home, away := theodds.PickBestH2H(e)
		if home == nil || away == nil {
			continue
		}

		pHome, pAway := predict.ImpliedNoVig(*home, *away)
		pModelHome := predict.PredictHome(pHome)
		pModelAway := 1 - pModelHome

		sides := []struct {
			side    Side
			player  string
			prob    float64
			pMarket float64
			odds    float64
		}{
			{SideA, e.HomeTeam, pModelHome, pHome, *home},
			{SideB, e.AwayTeam, pModelAway, pAway, *away},
		}

		for _, s := range sides {
			edge := predict.Edge(s.prob, s.pMarket)
			if edge <= minEdge {
				continue
			}
			score, badge := Score(ScoreFeatures{
				TierKey: e.SportKey,
				PMarket: s.pMarket,
				PModel:  s.prob,
			})
			out = append(out, &ValueBet{
				ID:     e.ID,
				Side:   s.side,
				Player: s.player,
				Prob:   s.prob,
				Odds:   s.odds,
				Edge:   edge,
				EV:     s.prob*s.odds - 1,
				Score:  score,
				Badge:  badge,
			})
		}
	}
	sortByEV(out)
	return out
}

func sortByEV(bets []*ValueBet) {
	sort.SliceStable(bets, func(i, j int) bool {
		return bets[i].EV > bets[j].EV
	})
}

// metric accessors used to build signed auxiliary diffs

func eloOf(m predict.PlayerMetrics) *float64 { return m.Elo }

func holdBreakOf(m predict.PlayerMetrics) *float64 {
	if m.HoldPct == nil || m.BreakPct == nil {
		return nil
	}
	v := (*m.HoldPct + *m.BreakPct) * 100
	return &v
}

func form30Of(m predict.PlayerMetrics) *float64 {
	if m.Form30 == nil {
		return nil
	}
	v := *m.Form30 * 100
	return &v
}

// metricDiff computes the signed metric difference for the backed side,
// nil when either player lacks the metric
func metricDiff(playerA, playerB string, side Side, get func(predict.PlayerMetrics) *float64) *float64 {
	va := get(predict.MetricsFor(playerA))
	vb := get(predict.MetricsFor(playerB))
	if va == nil || vb == nil {
		return nil
	}
	d := *va - *vb
	if side == SideB {
		d = -d
	}
	return &d
}
