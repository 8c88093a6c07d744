package sofascore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/richard-senior/valueodds/pkg/config"
	"github.com/richard-senior/valueodds/pkg/transport"
)

// Event is one scheduled tennis event from the alternate schedule source
type Event struct {
	ID             int    `json:"id"`
	StartTimestamp int64  `json:"startTimestamp"`
	CustomID       string `json:"customId"`
	Tournament     struct {
		Name     string `json:"name"`
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
	} `json:"tournament"`
	HomeTeam struct {
		Name string `json:"name"`
	} `json:"homeTeam"`
	AwayTeam struct {
		Name string `json:"name"`
	} `json:"awayTeam"`
	Status struct {
		Type string `json:"type"`
	} `json:"status"`
}

type scheduleResponse struct {
	Events []Event `json:"events"`
}

// choice is one priced selection inside a winner market; the source is
// inconsistent about which price field it populates
type choice struct {
	Name         string   `json:"name"`
	Price        *float64 `json:"price"`
	DecimalValue *float64 `json:"decimalValue"`
}

type market struct {
	Name      string   `json:"name"`
	MarketKey string   `json:"marketKey"`
	Choices   []choice `json:"choices"`
}

type oddsResponse struct {
	Markets []market `json:"markets"`
}

// Schedule fetches the scheduled tennis events for a calendar date
func Schedule(date time.Time) ([]Event, error) {
	url := fmt.Sprintf("%s/api/v1/sport/tennis/scheduled-events/%s",
		config.Cfg.ScheduleBaseURL, date.UTC().Format("2006-01-02"))
	body, err := transport.GetJson(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	var resp scheduleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse schedule response: %w", err)
	}
	return resp.Events, nil
}

// EventWinnerOdds fetches the prematch winner odds for one event. Either
// side may be nil when the market carries no usable price for it.
func EventWinnerOdds(eventID int) (oddsA, oddsB *float64, err error) {
	url := fmt.Sprintf("%s/api/v1/event/%d/odds/", config.Cfg.ScheduleBaseURL, eventID)
	body, err := transport.GetJson(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch event odds: %w", err)
	}
	var resp oddsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to parse event odds response: %w", err)
	}

	m := findWinnerMarket(resp.Markets)
	if m == nil || len(m.Choices) == 0 {
		return nil, nil, nil
	}

	// Prefer choices explicitly labelled home/away; otherwise assume the
	// first two choices are the two sides in order
	var c0, c1 *choice
	for i := range m.Choices {
		name := strings.ToLower(m.Choices[i].Name)
		if strings.Contains(name, "home") {
			c0 = &m.Choices[i]
		} else if strings.Contains(name, "away") {
			c1 = &m.Choices[i]
		}
	}
	if c0 == nil || c1 == nil {
		c0 = &m.Choices[0]
		if len(m.Choices) > 1 {
			c1 = &m.Choices[1]
		} else {
			c1 = nil
		}
	}

	return choicePrice(c0), choicePrice(c1), nil
}

// findWinnerMarket picks the market whose name or key mentions "winner"
func findWinnerMarket(markets []market) *market {
	for i := range markets {
		if strings.Contains(strings.ToLower(markets[i].Name), "winner") {
			return &markets[i]
		}
	}
	for i := range markets {
		if strings.Contains(strings.ToLower(markets[i].MarketKey), "winner") {
			return &markets[i]
		}
	}
	return nil
}

func choicePrice(c *choice) *float64 {
	if c == nil {
		return nil
	}
	if c.Price != nil && *c.Price > 0 {
		return c.Price
	}
	if c.DecimalValue != nil && *c.DecimalValue > 0 {
		return c.DecimalValue
	}
	return nil
}
