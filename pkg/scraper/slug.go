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

var slugAtEnd = regexp.MustCompile(`(?i)/player/([a-z0-9-]+)/?$`)

// ResolveSlug looks up the site slug for a player's display name via the
// site search page, cached for the configured slug TTL. A failed search
// caches the negative result so repeated lookups of unknown names stay
// cheap. Returns ok=false when no slug could be resolved.
func (ds *Datasource) ResolveSlug(name string) (string, bool) {
	key := "slug:" + strings.ToLower(name)
	if cached, ok := cache.GetAs[string](ds.Cache, key, config.Cfg.SlugTTL); ok {
		return cached, cached != ""
	}

	body, err := ds.get(ds.searchURL(name))
	if err != nil {
		logger.Debug("Slug search failed", name, err)
		ds.Cache.Set(key, "")
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		ds.Cache.Set(key, "")
		return "", false
	}

	slug := ""
	doc.Find(`a[href*="/player/"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if m := slugAtEnd.FindStringSubmatch(href); m != nil {
			slug = m[1]
			return false
		}
		return true
	})

	ds.Cache.Set(key, slug)
	return slug, slug != ""
}
