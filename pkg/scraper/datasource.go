package scraper

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/richard-senior/valueodds/internal/logger"
	"github.com/richard-senior/valueodds/pkg/cache"
	"github.com/richard-senior/valueodds/pkg/config"
	"github.com/richard-senior/valueodds/pkg/transport"
)

// Datasource provides methods to scrape the tennis results site.
// All scraped entities are produced fresh per call; the only state held
// across calls is the TTL cache.
type Datasource struct {
	BaseURL string
	Cache   *cache.Cache
}

var (
	instance *Datasource
	once     sync.Once
)

// GetInstance returns the singleton Datasource, wired to the configured
// base URL and cache backend
func GetInstance() *Datasource {
	once.Do(func() {
		var store cache.Store
		if config.Cfg.CacheBackend == "sqlite" {
			s, err := cache.NewSQLiteStore(config.Cfg.CacheDbPath)
			if err != nil {
				logger.Error("Falling back to file cache store", err)
				store = cache.NewFileStore(config.Cfg.CacheDir)
			} else {
				store = s
			}
		} else {
			store = cache.NewFileStore(config.Cfg.CacheDir)
		}
		instance = NewDatasource(config.Cfg.TennisBaseURL, cache.New(store))
	})
	return instance
}

// NewDatasource creates a datasource against an explicit base URL and cache.
// Tests use this to point at fixtures or at a nil-store cache.
func NewDatasource(baseURL string, c *cache.Cache) *Datasource {
	return &Datasource{
		BaseURL: baseURL,
		Cache:   c,
	}
}

// matchesURL is the daily listing page for a calendar date (UTC)
func (ds *Datasource) matchesURL(year, month, day int) string {
	return fmt.Sprintf("%s/matches/?type=all&year=%d&month=%02d&day=%02d", ds.BaseURL, year, month, day)
}

// playerURL is a player's profile page by slug
func (ds *Datasource) playerURL(slug string) string {
	return fmt.Sprintf("%s/player/%s/", ds.BaseURL, urlEscape(slug))
}

// h2hURL is the head-to-head page for a pair of slugs
func (ds *Datasource) h2hURL(slugA, slugB string) string {
	return fmt.Sprintf("%s/head-to-head/?players=%s-%s", ds.BaseURL, urlEscape(slugA), urlEscape(slugB))
}

// searchURL is the site search page for a free-form name
func (ds *Datasource) searchURL(query string) string {
	return fmt.Sprintf("%s/search/?q=%s", ds.BaseURL, urlEscape(query))
}

func urlEscape(s string) string {
	return url.QueryEscape(s)
}

// get performs a single bounded HTTP GET for a page of the source site
func (ds *Datasource) get(pageURL string) ([]byte, error) {
	logger.Inform("HTTP get called for ", pageURL)
	return transport.GetHtml(pageURL)
}
