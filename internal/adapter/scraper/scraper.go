// Package scraper fetches Wikipedia articles and extracts their text.
package scraper

import (
	"context"
	"net/http"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
)

// Scraper validates, fetches and extracts a Wikipedia article.
type Scraper struct {
	fetcher  *Fetcher
	maxChars int
}

var _ domain.PageScraper = (*Scraper)(nil)

// NewScraper wires a Fetcher from cfg. client may be nil.
func NewScraper(cfg config.ScraperConfig, client *http.Client) *Scraper {
	return &Scraper{
		fetcher:  NewFetcher(client, cfg.Timeout),
		maxChars: cfg.MaxChars,
	}
}

// Scrape returns ErrInvalidURL without touching the network when pageURL is
// not a Wikipedia article, and a *FetchError when both fetch attempts fail.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*domain.Article, error) {
	if err := ValidateURL(pageURL); err != nil {
		return nil, err
	}

	rawHTML, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return Extract(pageURL, rawHTML, s.maxChars)
}
