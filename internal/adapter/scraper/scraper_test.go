package scraper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wiki-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html><head><title>Alan Turing - Wikipedia</title></head><body>
<h1 id="firstHeading"><span>Alan</span> <span>Turing</span></h1>
<div id="mw-content-text">
<p>Alan Turing was an English <a href="/wiki/Mathematician">mathematician</a>.</p>
<h2>Early life</h2>
<p>Born in London.</p>
<p></p>
<h3>Education</h3>
<p>Studied at King's College.</p>
<script>var ignored = 1;</script>
</div>
</body></html>`

// hostTransport answers requests by host so that real Wikipedia URLs never
// leave the process.
type hostTransport struct {
	mu        sync.Mutex
	responses map[string]int
	requests  []*http.Request
}

func (t *hostTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req)
	status, ok := t.responses[req.URL.Host]
	t.mu.Unlock()

	if !ok {
		return nil, errors.New("connection refused")
	}
	body := ""
	if status == http.StatusOK {
		body = articleHTML
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newTestScraper(transport http.RoundTripper) *Scraper {
	return NewScraper(
		config.ScraperConfig{Timeout: time.Second, MaxChars: DefaultMaxChars},
		&http.Client{Transport: transport},
	)
}

func TestScrape_ForbiddenRetriesMobileOnce(t *testing.T) {
	transport := &hostTransport{responses: map[string]int{
		"en.wikipedia.org":   http.StatusForbidden,
		"en.m.wikipedia.org": http.StatusOK,
	}}
	s := newTestScraper(transport)

	article, err := s.Scrape(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	require.NoError(t, err)

	require.Len(t, transport.requests, 2)
	assert.Equal(t, "en.wikipedia.org", transport.requests[0].URL.Host)
	assert.Equal(t, "https://en.m.wikipedia.org/wiki/Alan_Turing", transport.requests[1].URL.String())
	assert.Equal(t, "AlanTuring", article.Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Alan_Turing", article.URL)
}

func TestScrape_BothAttemptsFail(t *testing.T) {
	transport := &hostTransport{responses: map[string]int{
		"en.wikipedia.org":   http.StatusForbidden,
		"en.m.wikipedia.org": http.StatusInternalServerError,
	}}
	s := newTestScraper(transport)

	article, err := s.Scrape(context.Background(), "https://en.wikipedia.org/wiki/Alan_Turing")
	assert.Nil(t, article)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, "Failed to fetch page: HTTP 500", err.Error())
	assert.Len(t, transport.requests, 2)
}

func TestScrape_InvalidURLMakesNoRequest(t *testing.T) {
	transport := &hostTransport{responses: map[string]int{}}
	s := newTestScraper(transport)

	for _, u := range []string{
		"https://example.com/wiki/Alan_Turing",
		"https://en.wikipedia.org/w/index.php?title=Alan_Turing",
		"ftp://en.wikipedia.org/wiki/Alan_Turing",
		"",
	} {
		_, err := s.Scrape(context.Background(), u)
		assert.ErrorIs(t, err, ErrInvalidURL, u)
	}
	assert.Empty(t, transport.requests)
}

func TestFetcher_SendsBrowserHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	body, err := NewFetcher(server.Client(), time.Second).Fetch(context.Background(), server.URL+"/wiki/Alan_Turing")
	require.NoError(t, err)

	assert.Equal(t, articleHTML, body)
	assert.Contains(t, got.Get("User-Agent"), "Chrome/120")
	assert.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
	assert.Equal(t, "no-cache", got.Get("Cache-Control"))
}

func TestFetcher_RetriesExactlyOnce(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewFetcher(server.Client(), time.Second).Fetch(context.Background(), server.URL+"/wiki/X")
	require.Error(t, err)
	assert.Equal(t, "Forbidden (403) from Wikipedia", err.Error())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestMobileURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://en.wikipedia.org/wiki/Go_(programming_language)", "https://en.m.wikipedia.org/wiki/Go_(programming_language)"},
		{"https://de.wikipedia.org/wiki/Berlin?action=view#Geschichte", "https://de.m.wikipedia.org/wiki/Berlin?action=view#Geschichte"},
		{"https://wikipedia.org/wiki/Berlin", "https://en.m.wikipedia.org/wiki/Berlin"},
		{"https://en.m.wikipedia.org/wiki/Berlin", "https://en.m.wikipedia.org/wiki/Berlin"},
		{"https://example.com/wiki/Berlin", "https://example.com/wiki/Berlin"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MobileURL(tt.in))
		})
	}
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://en.wikipedia.org/wiki/Alan_Turing"))
	assert.NoError(t, ValidateURL("HTTP://EN.WIKIPEDIA.ORG/wiki/Alan_Turing"))
	assert.NoError(t, ValidateURL("https://wikipedia.org/wiki/Alan_Turing"))
	assert.ErrorIs(t, ValidateURL("https://en.wikipedia.org.evil.com/wiki/X"), ErrInvalidURL)
}
