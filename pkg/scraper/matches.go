package scraper

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/valueodds/internal/logger"
)

var (
	mainRowID = regexp.MustCompile(`^r(\d+)$`)
	contRowID = regexp.MustCompile(`^r\d+b$`)
	slugInURL = regexp.MustCompile(`(?i)/player/([a-z0-9-]+)/`)
	timeOfDay = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// scanState is the running tournament context of a listing scan.
// Tournament name, round hint and surface are positional: a section
// header applies to every match row until the next header overwrites it.
// The scan is strictly sequential over document order; never parallelize it.
type scanState struct {
	tournament string
	href       string
	roundHint  string
	surface    Surface
}

// surfaceResolver resolves a tournament page URL to its surface.
// The listing scan memoizes resolutions per URL for its own duration.
type surfaceResolver func(absURL string) Surface

// MatchesForDate fetches the daily listing page for a calendar date (UTC)
// and extracts every detectable match. A fetch failure propagates; rows
// with unresolvable competitor names are silently skipped and a failed
// surface lookup degrades that one field to unknown.
func (ds *Datasource) MatchesForDate(date time.Time) ([]*Match, error) {
	d := date.UTC()
	pageURL := ds.matchesURL(d.Year(), int(d.Month()), d.Day())

	body, err := ds.get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily listing: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	// Memoize nested surface lookups for the duration of this scan
	memo := make(map[string]Surface)
	resolve := func(absURL string) Surface {
		if s, ok := memo[absURL]; ok {
			return s
		}
		s := ds.TournamentSurface(absURL)
		memo[absURL] = s
		return s
	}

	matches := parseMatchesPage(doc, d, ds.BaseURL, resolve)
	logger.Info("Scraped daily listing", pageURL, len(matches))
	return matches, nil
}

// parseMatchesPage walks the listing document in row order, carrying the
// current tournament context forward, and returns the deduplicated match
// list. Matches appear as a main row (id rN) immediately followed by a
// continuation row (id rNb) naming the second competitor.
func parseMatchesPage(doc *goquery.Document, date time.Time, baseURL string, resolve surfaceResolver) []*Match {
	var out []*Match
	state := scanState{}

	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("head") && tr.HasClass("flags") {
			link := tr.Find("td.t-name a").First()
			state.tournament = collapseWhitespace(link.Text())
			state.roundHint = collapseWhitespace(tr.Text())
			state.href = ""
			state.surface = SurfaceUnknown
			if href, ok := link.Attr("href"); ok && href != "" {
				state.href = absoluteURL(baseURL, href)
				state.surface = resolve(state.href)
			}
			return
		}

		id, _ := tr.Attr("id")
		m := mainRowID.FindStringSubmatch(id)
		if m == nil {
			return
		}
		cont := tr.Next()
		contID, _ := cont.Attr("id")
		if !contRowID.MatchString(contID) {
			return
		}

		match := parseMatchRows(tr, cont, date, m[1], &state)
		if match != nil {
			out = append(out, match)
		}
	})

	return dedupMatches(out)
}

// parseMatchRows extracts one match from a main row and its continuation
// row, or nil when either competitor name is unresolvable (malformed
// markup, not an error)
func parseMatchRows(tr, cont *goquery.Selection, date time.Time, seq string, state *scanState) *Match {
	linkA := tr.Find(`td.t-name a[href*="/player/"], td.t-name a[href*="/doubles-team/"]`).First()
	linkB := cont.Find(`td.t-name a[href*="/player/"], td.t-name a[href*="/doubles-team/"]`).First()
	playerA := collapseWhitespace(linkA.Text())
	playerB := collapseWhitespace(linkB.Text())
	if playerA == "" || playerB == "" {
		return nil
	}

	var slugA, slugB string
	if href, ok := linkA.Attr("href"); ok {
		if m := slugInURL.FindStringSubmatch(href); m != nil {
			slugA = m[1]
		}
	}
	if href, ok := linkB.Attr("href"); ok {
		if m := slugInURL.FindStringSubmatch(href); m != nil {
			slugB = m[1]
		}
	}

	// Start time is an HH:MM local to the row, combined with the
	// requested date and assumed UTC
	var start *time.Time
	timeCell := strings.TrimSpace(tr.Find("td.first.time").First().Text())
	if tm := timeOfDay.FindStringSubmatch(timeCell); tm != nil {
		hh, _ := strconv.Atoi(tm[1])
		mm, _ := strconv.Atoi(tm[2])
		t := time.Date(date.Year(), date.Month(), date.Day(), hh, mm, 0, 0, time.UTC)
		start = &t
	}

	oddsAText := strings.TrimSpace(tr.Find("td.coursew").First().Text())
	if oddsAText == "" {
		oddsAText = strings.TrimSpace(tr.Find("td.course").First().Text())
	}
	oddsA := ParseOdd(oddsAText)
	oddsB := ParseOdd(strings.TrimSpace(tr.Find("td.course").First().Text()))

	link, _ := tr.Find(`a[href*="/match-detail/"]`).First().Attr("href")
	if link == "" {
		link, _ = cont.Find(`a[href*="/match-detail/"]`).First().Attr("href")
	}
	id := link
	if id == "" {
		id = fmt.Sprintf("%s-%s-%s-%s", playerA, playerB, date.Format("20060102"), seq)
	}

	return &Match{
		ID:         id,
		Tournament: state.tournament,
		Round:      RoundFromText(state.roundHint),
		Start:      start,
		PlayerA:    playerA,
		PlayerB:    playerB,
		SlugA:      slugA,
		SlugB:      slugB,
		Surface:    state.surface,
		OddsA:      oddsA,
		OddsB:      oddsB,
	}
}

// dedupMatches drops matches repeating an earlier (playerA, playerB, start)
// triple, keeping the first occurrence
func dedupMatches(matches []*Match) []*Match {
	seen := make(map[string]bool, len(matches))
	out := make([]*Match, 0, len(matches))
	for _, m := range matches {
		start := ""
		if m.Start != nil {
			start = m.Start.Format(time.RFC3339)
		}
		key := strings.ToLower(m.PlayerA + "|" + m.PlayerB + "|" + start)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// absoluteURL resolves a possibly relative href against the site base
func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + "/" + strings.TrimPrefix(href, "/")
}
