package scraper

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/richard-senior/valueodds/internal/logger"
	"github.com/richard-senior/valueodds/pkg/cache"
	"github.com/richard-senior/valueodds/pkg/config"
)

var (
	surfaceLabel  = regexp.MustCompile(`(?i)surface:\s*(hard|clay|grass|indoors?|carpet)`)
	surfaceNearby = regexp.MustCompile(`(?i)surface[^a-z]*(hard|clay|grass|indoors?|carpet)`)
)

// TournamentSurface resolves the playing surface of a tournament from its
// own page, cached for the configured surface TTL under surface:{url}.
// This is a soft signal: failure or no match caches and returns unknown,
// so one bad tournament page never aborts a listing scan.
func (ds *Datasource) TournamentSurface(absURL string) Surface {
	key := "surface:" + absURL
	if cached, ok := cache.GetAs[Surface](ds.Cache, key, config.Cfg.SurfaceTTL); ok {
		return cached
	}

	body, err := ds.get(absURL)
	if err != nil {
		logger.Debug("Tournament surface unavailable", absURL, err)
		ds.Cache.Set(key, SurfaceUnknown)
		return SurfaceUnknown
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.Debug("Tournament page did not parse", absURL, err)
		ds.Cache.Set(key, SurfaceUnknown)
		return SurfaceUnknown
	}

	surface := extractSurface(doc)
	ds.Cache.Set(key, surface)
	return surface
}

// extractSurface searches the whole page for a "surface: <word>" label,
// then narrows to the likely info blocks when the page-wide match fails
func extractSurface(doc *goquery.Document) Surface {
	bodyText := strings.ToLower(doc.Find("body").Text())
	if m := surfaceLabel.FindStringSubmatch(bodyText); m != nil {
		return NormalizeSurface(m[1])
	}
	blockText := doc.Find(".box, .right, .col, .center").Text()
	if m := surfaceNearby.FindStringSubmatch(blockText); m != nil {
		return NormalizeSurface(m[1])
	}
	return SurfaceUnknown
}
