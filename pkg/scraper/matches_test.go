package scraper

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingFixture = `
<html><body><table>
<tr class="head flags"><td class="t-name"><a href="/atp-singles/melbourne/">Melbourne Open</a> - quarterfinal</td></tr>
<tr id="r1">
  <td class="first time">10:30</td>
  <td class="t-name"><a href="/player/djokovic/">Djokovic N.</a></td>
  <td class="coursew">1,50</td>
  <td class="course">2.60</td>
  <td><a href="/match-detail/?id=101">detail</a></td>
</tr>
<tr id="r1b"><td class="t-name"><a href="/player/alcaraz/">Alcaraz C.</a></td></tr>
<tr id="r2">
  <td class="first time">10:30</td>
  <td class="t-name"><a href="/player/djokovic/">Djokovic N.</a></td>
  <td class="coursew">1.90</td>
  <td class="course">1.90</td>
</tr>
<tr id="r2b"><td class="t-name"><a href="/player/alcaraz/">Alcaraz C.</a></td></tr>
<tr class="head flags"><td class="t-name"><a href="/wta-singles/doha-challenger/">Doha Challenger</a> - 1st round</td></tr>
<tr id="r3">
  <td class="first time"></td>
  <td class="t-name"><a href="/player/swiatek/">Swiatek I.</a></td>
  <td class="coursew">1.00</td>
  <td class="course">12.0</td>
</tr>
<tr id="r3b"><td class="t-name"><a href="/player/raducanu/">Raducanu E.</a></td></tr>
<tr id="r4">
  <td class="first time">18:00</td>
  <td class="t-name">cancelled</td>
</tr>
<tr id="r4b"><td class="t-name"><a href="/player/gauff/">Gauff C.</a></td></tr>
</table></body></html>`

func parseFixture(t *testing.T, html string, resolve surfaceResolver) []*Match {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return parseMatchesPage(doc, date, "https://example.test", resolve)
}

func TestParseMatchesPage(t *testing.T) {
	resolved := map[string]Surface{}
	resolve := func(u string) Surface {
		resolved[u] = SurfaceHard
		return SurfaceHard
	}

	matches := parseFixture(t, listingFixture, resolve)
	require.Len(t, matches, 2)

	m := matches[0]
	assert.Equal(t, "/match-detail/?id=101", m.ID)
	assert.Equal(t, "Melbourne Open", m.Tournament)
	assert.Equal(t, RoundQF, m.Round)
	assert.Equal(t, "Djokovic N.", m.PlayerA)
	assert.Equal(t, "Alcaraz C.", m.PlayerB)
	assert.Equal(t, "djokovic", m.SlugA)
	assert.Equal(t, "alcaraz", m.SlugB)
	assert.Equal(t, SurfaceHard, m.Surface)

	require.NotNil(t, m.Start)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), *m.Start)

	require.NotNil(t, m.OddsA)
	assert.InDelta(t, 1.50, *m.OddsA, 1e-12) // decimal comma normalized
	require.NotNil(t, m.OddsB)
	assert.InDelta(t, 2.60, *m.OddsB, 1e-12)

	// tournament pages get resolved through the nested surface lookup
	assert.Contains(t, resolved, "https://example.test/atp-singles/melbourne/")
}

func TestParseMatchesPageDeduplicates(t *testing.T) {
	matches := parseFixture(t, listingFixture, func(string) Surface { return SurfaceUnknown })
	require.Len(t, matches, 2)

	// r2 repeats (playerA, playerB, start) of r1 with different odds and
	// must be discarded, keeping the first occurrence
	assert.Equal(t, "/match-detail/?id=101", matches[0].ID)
	require.NotNil(t, matches[0].OddsA)
	assert.InDelta(t, 1.50, *matches[0].OddsA, 1e-12)
}

func TestParseMatchesPageRunningState(t *testing.T) {
	matches := parseFixture(t, listingFixture, func(string) Surface { return SurfaceClay })
	require.Len(t, matches, 2)

	// the second header overwrote tournament context for later rows
	m := matches[1]
	assert.Equal(t, "Doha Challenger", m.Tournament)
	assert.Equal(t, RoundR1, m.Round)
	assert.Equal(t, "swiatek", m.SlugA)

	// no HH:MM on the row means no start instant
	assert.Nil(t, m.Start)

	// 1.00 is noise, not a genuine quote
	assert.Nil(t, m.OddsA)
	require.NotNil(t, m.OddsB)
	assert.InDelta(t, 12.0, *m.OddsB, 1e-12)

	// the synthesized id combines names, date and row sequence
	assert.Equal(t, "Swiatek I.-Raducanu E.-20250601-3", m.ID)
}

func TestParseMatchesPageSkipsRowsWithoutNames(t *testing.T) {
	matches := parseFixture(t, listingFixture, func(string) Surface { return SurfaceUnknown })
	for _, m := range matches {
		assert.NotEmpty(t, m.PlayerA)
		assert.NotEmpty(t, m.PlayerB)
		assert.NotEqual(t, "Gauff C.", m.PlayerB)
	}
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://x.test/a/b/", absoluteURL("https://x.test", "/a/b/"))
	assert.Equal(t, "https://x.test/a/", absoluteURL("https://x.test", "a/"))
	assert.Equal(t, "https://other.test/z", absoluteURL("https://x.test", "https://other.test/z"))
}
