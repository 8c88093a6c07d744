package theodds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickBestH2HTakesBestPricePerSide(t *testing.T) {
	e := OddsEvent{
		ID:       "e1",
		HomeTeam: "Novak Djokovic",
		AwayTeam: "Carlos Alcaraz",
		Bookmakers: []Bookmaker{
			{
				Key: "bookie-a",
				Markets: []Market{{
					Key: "h2h",
					Outcomes: []Outcome{
						{Name: "Novak Djokovic", Price: 1.85},
						{Name: "Carlos Alcaraz", Price: 2.10},
					},
				}},
			},
			{
				Key: "bookie-b",
				Markets: []Market{{
					Key: "h2h",
					Outcomes: []Outcome{
						{Name: "Novak Djokovic", Price: 1.92},
						{Name: "Carlos Alcaraz", Price: 2.02},
					},
				}},
			},
		},
	}

	home, away := PickBestH2H(&e)
	require.NotNil(t, home)
	require.NotNil(t, away)
	assert.InDelta(t, 1.92, *home, 1e-9)
	assert.InDelta(t, 2.10, *away, 1e-9)
}

func TestPickBestH2HIgnoresOtherMarkets(t *testing.T) {
	e := OddsEvent{
		HomeTeam: "Home",
		AwayTeam: "Away",
		Bookmakers: []Bookmaker{{
			Key: "bookie",
			Markets: []Market{
				{
					Key: "spreads",
					Outcomes: []Outcome{
						{Name: "Home", Price: 99},
						{Name: "Away", Price: 99},
					},
				},
				{
					Key: "h2h",
					Outcomes: []Outcome{
						{Name: "Home", Price: 1.5},
						{Name: "Away", Price: 2.5},
					},
				},
			},
		}},
	}

	home, away := PickBestH2H(&e)
	require.NotNil(t, home)
	require.NotNil(t, away)
	assert.InDelta(t, 1.5, *home, 1e-9)
	assert.InDelta(t, 2.5, *away, 1e-9)
}

func TestPickBestH2HUnmatchedNamesYieldNil(t *testing.T) {
	e := OddsEvent{
		HomeTeam: "N. Djokovic",
		AwayTeam: "Carlos Alcaraz",
		Bookmakers: []Bookmaker{{
			Key: "bookie",
			Markets: []Market{{
				Key: "h2h",
				Outcomes: []Outcome{
					{Name: "Novak Djokovic", Price: 1.85},
					{Name: "Carlos Alcaraz", Price: 2.10},
				},
			}},
		}},
	}

	home, away := PickBestH2H(&e)
	assert.Nil(t, home)
	require.NotNil(t, away)
	assert.InDelta(t, 2.10, *away, 1e-9)
}

func TestPickBestH2HNoBookmakers(t *testing.T) {
	e := OddsEvent{HomeTeam: "Home", AwayTeam: "Away"}
	home, away := PickBestH2H(&e)
	assert.Nil(t, home)
	assert.Nil(t, away)
}
