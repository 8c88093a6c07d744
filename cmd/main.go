package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/richard-senior/valueodds/internal/logger"
	"github.com/richard-senior/valueodds/pkg/config"
	"github.com/richard-senior/valueodds/pkg/scraper"
	"github.com/richard-senior/valueodds/pkg/theodds"
	"github.com/richard-senior/valueodds/pkg/valuebet"
)

func main() {
	// Configure logging
	logger.SetShowDateTime(true)
	logger.SetLogOutput('c')

	dateArg := flag.String("date", "", "calendar date (YYYY-MM-DD, default today UTC)")
	minEdge := flag.Float64("min-edge", config.Cfg.MinEdge, "minimum model-vs-market edge")
	source := flag.String("source", "scrape", "value bet source: scrape | oddsapi")
	categories := flag.String("categories", "tennis_atp,tennis_wta", "comma-separated odds provider sport keys")
	flag.Parse()

	if err := config.ValidateConfig(config.Cfg); err != nil {
		logger.Fatal("Invalid configuration", err)
	}

	date := time.Now().UTC()
	if *dateArg != "" {
		d, err := time.Parse("2006-01-02", *dateArg)
		if err != nil {
			logger.Fatal("Invalid -date, want YYYY-MM-DD", err)
		}
		date = d
	}

	var bets []*valuebet.ValueBet
	switch *source {
	case "scrape":
		var err error
		bets, err = valuebet.FindValueBets(scraper.GetInstance(), date, *minEdge)
		if err != nil {
			logger.Fatal("Value bet scan failed", err)
		}
	case "oddsapi":
		keys := strings.Split(*categories, ",")
		events, err := theodds.ListOdds(keys)
		if err != nil {
			logger.Fatal("Odds fetch failed", err)
		}
		bets = valuebet.FindOddsValueBets(events, *minEdge)
	default:
		logger.Fatal("Unknown -source, want scrape or oddsapi", *source)
	}

	out, err := json.MarshalIndent(bets, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode results", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
