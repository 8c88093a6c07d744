package scraper

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/valueodds/internal/logger"
)

const maxMeetings = 10

var (
	h2hHeader  = regexp.MustCompile(`head|match|winner|score`)
	resultWord = regexp.MustCompile(`def|ret|w/o|walkover|score`)
)

// HeadToHead fetches the head-to-head page for a pair of player slugs and
// returns the aggregate win counts plus up to 10 most-recent meetings in
// source order. Uniquely among the scrape operations, every internal
// failure here (network or parse) degrades to (nil, false) rather than
// surfacing; callers must handle the unavailable case explicitly.
func (ds *Datasource) HeadToHead(slugA, slugB string) (*H2H, bool) {
	body, err := ds.get(ds.h2hURL(slugA, slugB))
	if err != nil {
		logger.Debug("Head-to-head unavailable", slugA, slugB, err)
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Debug("Head-to-head page did not parse", slugA, slugB, err)
		return nil, false
	}
	return parseH2HPage(doc, slugA, slugB), true
}

// parseH2HPage scans every table whose header row mentions a head-to-head
// keyword and extracts meeting rows. A data row is kept when its flattened
// text contains a result word, or as a fallback when it has at least five
// cells (some meeting rows carry no result keyword at all).
func parseH2HPage(doc *goquery.Document, slugA, slugB string) *H2H {
	out := &H2H{Meetings: []Meeting{}}
	lowerA := strings.ToLower(slugA)
	lowerB := strings.ToLower(slugB)

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		head := strings.ToLower(table.Find("tr").First().Text())
		if !h2hHeader.MatchString(head) {
			return
		}

		table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
			tds := tr.Find("td")
			if tds.Length() < 3 {
				return
			}
			rowText := strings.ToLower(collapseWhitespace(tr.Text()))
			if !resultWord.MatchString(rowText) && tds.Length() < 5 {
				return
			}

			date := strings.TrimSpace(tds.Eq(0).Text())
			tournament := strings.TrimSpace(tds.Eq(1).Text())
			if tournament == "" {
				tournament = strings.TrimSpace(tds.Eq(2).Text())
			}
			winner := collapseWhitespace(tr.Find(`td a[href*="/player/"]`).First().Text())
			score := strings.TrimSpace(tds.Last().Text())

			// Win attribution is independent substring matching; a winner
			// name can conceivably credit both sides and must not be
			// treated as mutually exclusive
			if winner != "" {
				wl := strings.ToLower(winner)
				if strings.Contains(wl, lowerA) {
					out.WinsA++
				}
				if strings.Contains(wl, lowerB) {
					out.WinsB++
				}
			}

			out.Meetings = append(out.Meetings, Meeting{
				Date:       date,
				Tournament: tournament,
				Winner:     winner,
				Score:      score,
			})
		})
	})

	if len(out.Meetings) > maxMeetings {
		out.Meetings = out.Meetings[:maxMeetings]
	}
	return out
}
