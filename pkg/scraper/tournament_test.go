package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tournamentDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractSurfaceFromPageText(t *testing.T) {
	cases := []struct {
		body string
		want Surface
	}{
		{"Melbourne Open, Surface: hard, prize money...", SurfaceHard},
		{"Surface: Clay", SurfaceClay},
		{"surface: grass", SurfaceGrass},
		{"Surface: indoor", SurfaceIndoors},
		{"Surface: carpet", SurfaceIndoors},
		{"No surface information at all", SurfaceUnknown},
	}
	for _, tc := range cases {
		doc := tournamentDoc(t, "<html><body><p>"+tc.body+"</p></body></html>")
		assert.Equal(t, tc.want, extractSurface(doc), tc.body)
	}
}

func TestExtractSurfaceFallsBackToInfoBlocks(t *testing.T) {
	// no "surface:" label anywhere, but an info block mentions the
	// surface with intervening markup
	html := `
<html><body>
<p>General tournament chatter.</p>
<div class="box">Surface <b>(clay)</b></div>
</body></html>`
	assert.Equal(t, SurfaceClay, extractSurface(tournamentDoc(t, html)))
}
