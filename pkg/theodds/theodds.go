package theodds

import (
	"encoding/json"
	"fmt"

	"github.com/richard-senior/valueodds/internal/logger"
	"github.com/richard-senior/valueodds/pkg/config"
	"github.com/richard-senior/valueodds/pkg/transport"
)

// Outcome is one quoted side of a market
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Market is one bookmaker market; this client only consumes h2h
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Bookmaker is one bookmaker's quotes for an event
type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update"`
	Markets    []Market `json:"markets"`
}

// OddsEvent is one upcoming event with bookmaker quotes, mirroring the
// provider's JSON
type OddsEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// ListOdds fetches current head-to-head odds for each sport category key
// and returns the concatenation in request order. A missing API key yields
// an empty result set, not an error; a failed category is logged, skipped
// and contributes no events.
func ListOdds(keys []string) ([]OddsEvent, error) {
	apiKey := config.Cfg.OddsAPIKey
	if apiKey == "" {
		logger.Debug("No odds API key configured, returning no events")
		return []OddsEvent{}, nil
	}

	out := []OddsEvent{}
	for _, k := range keys {
		url := fmt.Sprintf("%s/sports/%s/odds?markets=h2h&regions=eu&oddsFormat=decimal&dateFormat=iso&apiKey=%s",
			config.Cfg.OddsAPIBaseURL, k, apiKey)
		body, err := transport.GetJson(url)
		if err != nil {
			logger.Warn("Skipping odds category", k, err)
			continue
		}
		var events []OddsEvent
		if err := json.Unmarshal(body, &events); err != nil {
			logger.Warn("Odds category response did not parse, skipping", k, err)
			continue
		}
		out = append(out, events...)
	}
	return out, nil
}

// PickBestH2H returns the best (highest) quoted price per side across all
// bookmakers' head-to-head markets, mapped to the event's recorded home
// and away names. Absent or unmatched outcomes yield nil for that side.
func PickBestH2H(e *OddsEvent) (home, away *float64) {
	best := map[string]float64{}
	for _, b := range e.Bookmakers {
		for _, m := range b.Markets {
			if m.Key != "h2h" {
				continue
			}
			for _, o := range m.Outcomes {
				if cur, ok := best[o.Name]; !ok || o.Price > cur {
					best[o.Name] = o.Price
				}
			}
		}
	}
	if p, ok := best[e.HomeTeam]; ok {
		home = &p
	}
	if p, ok := best[e.AwayTeam]; ok {
		away = &p
	}
	return home, away
}
