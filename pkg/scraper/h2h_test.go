package scraper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const h2hFixture = `
<html><body>
<table>
  <tr><th>Date</th><th>Tournament</th><th>Winner</th><th>Score</th></tr>
  <tr><td>05.05.25</td><td>Rome</td><td><a href="/player/alcaraz/">Alcaraz C.</a> def.</td><td>6-4 6-2</td></tr>
  <tr><td>12.01.25</td><td></td><td>Melbourne</td><td><a href="/player/djokovic/">Djokovic N.</a> def.</td><td>7-6 6-4</td></tr>
  <tr><td>too</td><td>short</td></tr>
  <tr><td>01.01.24</td><td>Doha</td><td>no result keyword and only four cells</td><td>x</td></tr>
</table>
<table>
  <tr><th>Ranking history</th></tr>
  <tr><td>2024</td><td>1</td><td>2</td></tr>
</table>
</body></html>`

func h2hDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseH2HPage(t *testing.T) {
	h2h := parseH2HPage(h2hDoc(t, h2hFixture), "alcaraz", "djokovic")

	assert.Equal(t, 1, h2h.WinsA)
	assert.Equal(t, 1, h2h.WinsB)
	require.Len(t, h2h.Meetings, 2)

	first := h2h.Meetings[0]
	assert.Equal(t, "05.05.25", first.Date)
	assert.Equal(t, "Rome", first.Tournament)
	assert.Equal(t, "Alcaraz C.", first.Winner)
	assert.Equal(t, "6-4 6-2", first.Score)

	// empty second cell falls back to the third
	assert.Equal(t, "Melbourne", h2h.Meetings[1].Tournament)
}

func TestParseH2HPageFiveCellFallbackAdmitsRows(t *testing.T) {
	html := `
<html><body>
<table>
  <tr><th>Head to head matches</th></tr>
  <tr><td>02.02.23</td><td>Paris</td><td><a href="/player/alcaraz/">Alcaraz C.</a></td><td>extra</td><td>6-1 6-1</td></tr>
</table>
</body></html>`
	h2h := parseH2HPage(h2hDoc(t, html), "alcaraz", "djokovic")
	require.Len(t, h2h.Meetings, 1)
	assert.Equal(t, 1, h2h.WinsA)
	assert.Equal(t, "6-1 6-1", h2h.Meetings[0].Score)
}

func TestParseH2HPageCapsMeetingsAtTen(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body><table><tr><th>Winner</th></tr>")
	for i := 0; i < 14; i++ {
		sb.WriteString(fmt.Sprintf(
			`<tr><td>0%d.01.25</td><td>Event</td><td><a href="/player/alcaraz/">Alcaraz C.</a> def.</td><td>6-0 6-0</td></tr>`, i))
	}
	sb.WriteString("</table></body></html>")

	h2h := parseH2HPage(h2hDoc(t, sb.String()), "alcaraz", "djokovic")
	assert.Len(t, h2h.Meetings, 10)
	// win counts are taken from every kept row before the cap is applied
	assert.Equal(t, 14, h2h.WinsA)
}

func TestParseH2HPageIndependentWinAttribution(t *testing.T) {
	// a doubles-team style winner containing both slugs credits both sides
	html := `
<html><body>
<table>
  <tr><th>Winner</th></tr>
  <tr><td>01.01.25</td><td>Event</td><td><a href="/player/smith/">smith-jones</a> def.</td><td>6-0 6-0</td></tr>
</table>
</body></html>`
	h2h := parseH2HPage(h2hDoc(t, html), "smith", "jones")
	assert.Equal(t, 1, h2h.WinsA)
	assert.Equal(t, 1, h2h.WinsB)
}

func TestParseH2HPageNoTables(t *testing.T) {
	h2h := parseH2HPage(h2hDoc(t, "<html><body><p>nothing</p></body></html>"), "a", "b")
	assert.Equal(t, 0, h2h.WinsA)
	assert.Equal(t, 0, h2h.WinsB)
	assert.Empty(t, h2h.Meetings)
}
