package scraper

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/valueodds/internal/logger"
	"github.com/richard-senior/valueodds/pkg/cache"
	"github.com/richard-senior/valueodds/pkg/config"
)

var (
	profileSuffix = regexp.MustCompile(`(?i)-+\s*profile`)
	singlesRank   = regexp.MustCompile(`(?i)singles:\s*(\d+)\s*/`)
)

// PlayerStats fetches a player's profile page and extracts their surface
// statistics, cached for the configured player TTL under player:{slug}.
// A fetch failure propagates; every absent or malformed field degrades to
// its zero value instead.
func (ds *Datasource) PlayerStats(slug string) (*PlayerSurfaceStats, error) {
	key := "player:" + slug
	if cached, ok := cache.GetAs[PlayerSurfaceStats](ds.Cache, key, config.Cfg.PlayerStatsTTL); ok {
		return &cached, nil
	}

	body, err := ds.get(ds.playerURL(slug))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player page for %s: %w", slug, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	stats := parsePlayerPage(doc, slug)
	ds.Cache.Set(key, stats)
	return stats, nil
}

// parsePlayerPage extracts a player's display name, country, singles rank
// and yearly surface table from their profile document
func parsePlayerPage(doc *goquery.Document, slug string) *PlayerSurfaceStats {
	stats := &PlayerSurfaceStats{Slug: slug}

	// Display name: the profile heading, else the profile box, else the slug
	name := ""
	doc.Find("h1").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(h.Text()), "profile") {
			name = collapseWhitespace(profileSuffix.ReplaceAllString(h.Text(), ""))
			return false
		}
		return true
	})
	if name == "" {
		name = collapseWhitespace(doc.Find(".profile h3, .profile h2").First().Text())
	}
	if name == "" {
		name = slug
	}
	stats.Name = name

	doc.Find(".box .left").Find("p").Each(func(_ int, p *goquery.Selection) {
		t := strings.TrimSpace(p.Text())
		lower := strings.ToLower(t)
		if strings.HasPrefix(lower, "country:") {
			if _, after, ok := strings.Cut(t, ":"); ok {
				stats.Country = strings.TrimSpace(after)
			}
		}
		if strings.Contains(lower, "current/highest rank - singles") {
			if m := singlesRank.FindStringSubmatch(t); m != nil {
				stats.Rank = cleanRank(m[1])
			}
		}
	})

	stats.Rows = parseSurfaceTable(doc)

	// Totals come from the summary row if one exists, else the first row
	var totalsRow *SurfaceRow
	for i := range stats.Rows {
		if strings.Contains(strings.ToLower(stats.Rows[i].Label), "summary") {
			totalsRow = &stats.Rows[i]
			break
		}
	}
	if totalsRow == nil && len(stats.Rows) > 0 {
		totalsRow = &stats.Rows[0]
	}
	if totalsRow != nil {
		stats.Totals = SurfaceTotals{
			Overall: ParseWinLoss(totalsRow.Summary),
			Clay:    ParseWinLoss(totalsRow.Clay),
			Hard:    ParseWinLoss(totalsRow.Hard),
			Indoors: ParseWinLoss(totalsRow.Indoors),
			Grass:   ParseWinLoss(totalsRow.Grass),
		}
	}

	if len(stats.Rows) == 0 {
		logger.Debug("No surface table found for player", slug)
	}
	return stats
}

// parseSurfaceTable finds the yearly results table, identified by a header
// row carrying at least the year, summary, clay and hard columns
// (case-insensitive, summary as substring), and parses its six-cell rows
func parseSurfaceTable(doc *goquery.Document) []SurfaceRow {
	var rows []SurfaceRow
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var headers []string
		table.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strings.ToLower(strings.TrimSpace(th.Text())))
		})

		hasWanted := containsHeader(headers, "year") &&
			containsHeaderSubstring(headers, "summary") &&
			containsHeader(headers, "clay") &&
			containsHeader(headers, "hard")
		if !hasWanted {
			return true
		}

		table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
			tds := tr.Find("td")
			if tds.Length() < 6 {
				return
			}
			row := SurfaceRow{
				Label:   strings.TrimSpace(tds.Eq(0).Text()),
				Summary: strings.TrimSpace(tds.Eq(1).Text()),
				Clay:    strings.TrimSpace(tds.Eq(2).Text()),
				Hard:    strings.TrimSpace(tds.Eq(3).Text()),
				Indoors: strings.TrimSpace(tds.Eq(4).Text()),
				Grass:   strings.TrimSpace(tds.Eq(5).Text()),
			}
			if row.Label != "" {
				rows = append(rows, row)
			}
		})
		return false
	})
	return rows
}

func containsHeader(headers []string, want string) bool {
	for _, h := range headers {
		if h == want {
			return true
		}
	}
	return false
}

func containsHeaderSubstring(headers []string, want string) bool {
	for _, h := range headers {
		if strings.Contains(h, want) {
			return true
		}
	}
	return false
}
