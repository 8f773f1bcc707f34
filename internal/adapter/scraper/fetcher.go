package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"

	"go.uber.org/zap"
)

const defaultFetchTimeout = 20 * time.Second

var wikipediaArticlePattern = regexp.MustCompile(`(?i)^https?://([a-z0-9-]+\.)*wikipedia\.org/wiki/`)

// ErrInvalidURL is returned for anything that is not a Wikipedia article URL.
var ErrInvalidURL = errors.New("only Wikipedia article URLs are allowed (HTML scraping only)")

// FetchError describes a failed page download.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode == http.StatusForbidden:
		return "Forbidden (403) from Wikipedia"
	case e.StatusCode != 0:
		return fmt.Sprintf("Failed to fetch page: HTTP %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("Failed to fetch page: %v", e.Err)
	default:
		return "Failed to fetch page"
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidateURL reports whether rawURL points at a Wikipedia article.
func ValidateURL(rawURL string) error {
	if !wikipediaArticlePattern.MatchString(rawURL) {
		return ErrInvalidURL
	}
	return nil
}

// MobileURL rewrites a desktop Wikipedia URL to its mobile host. Hosts that
// are already mobile, or not Wikipedia at all, are returned unchanged.
func MobileURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	host := strings.ToLower(u.Host)
	if !strings.HasSuffix(host, "wikipedia.org") || strings.HasSuffix(host, ".m.wikipedia.org") {
		return rawURL
	}

	if strings.Count(host, ".") >= 2 {
		u.Host = strings.Replace(host, ".wikipedia.org", ".m.wikipedia.org", 1)
	} else {
		u.Host = "en.m.wikipedia.org"
	}
	return u.String()
}

// browserHeaders are sent on every request; Wikipedia answers bare clients
// with 403 more often.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
}

// Fetcher downloads article markup, retrying once on the mobile host.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a Fetcher. A nil client gets a default one with the
// given timeout.
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{client: client}
}

// Fetch returns the markup of rawURL. When the first request fails for any
// reason the mobile variant is tried exactly once; its error is returned if
// that fails too.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	body, err := f.get(ctx, rawURL, metrics.VariantDesktop)
	if err == nil {
		return body, nil
	}

	mobileURL := MobileURL(rawURL)
	logger.Get().Warn("Primary fetch failed, retrying on mobile host",
		zap.String("url", rawURL),
		zap.String("mobile_url", mobileURL),
		zap.Error(err))

	return f.get(ctx, mobileURL, metrics.VariantMobile)
}

func (f *Fetcher) get(ctx context.Context, target, variant string) (string, error) {
	body, err := f.do(ctx, target)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	metrics.PageFetches.WithLabelValues(variant, outcome).Inc()
	return body, err
}

func (f *Fetcher) do(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: target, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: target, Err: fmt.Errorf("read body: %w", err)}
	}
	return string(raw), nil
}
