package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

const (
	defaultBaseURL = "https://www.medi-learn.de"
	reportPath     = "/pruefungsprotokolle/facharztpruefung/detailed.php?ID=%d"

	// FetchTimeout bounds a single page request
	FetchTimeout = 15 * time.Second

	userAgent      = "Mozilla/5.0 (compatible; protokollctl/1.0)"
	acceptLanguage = "de-DE,de;q=0.9,en;q=0.8"
)

// Client handles HTTP requests to the exam report pages. The underlying resty client
// keeps its connections alive, so one Client should be reused for a whole run.
type Client struct {
	http    *resty.Client
	baseURL string
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another host (a mirror or a test server)
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// NewClient creates a new scraper client
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetTimeout(FetchTimeout).
			SetRetryCount(0).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept-Language", acceptLanguage),
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReportURL builds the public URL of a report page
func ReportURL(pageID int) string {
	return defaultBaseURL + fmt.Sprintf(reportPath, pageID)
}

// URL builds the report URL for pageID on the client's host
func (c *Client) URL(pageID int) string {
	return c.baseURL + fmt.Sprintf(reportPath, pageID)
}

// FetchResult is the outcome of fetching one report page
type FetchResult struct {
	Found  bool
	Record Record
	// Status is the HTTP status code, 0 when the request never got a response
	Status int
	// Err explains a miss (transport error, ErrNoTable or ErrNoData). Nil for non-200 statuses.
	Err error
}

// FetchPage downloads and parses a single report page. Every failure is reported as a
// miss in the result, never retried.
func (c *Client) FetchPage(ctx context.Context, pageID int) FetchResult {
	url := c.URL(pageID)

	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return FetchResult{Status: 0, Err: fmt.Errorf("failed to fetch %s: %w", url, err)}
	}

	if resp.StatusCode() != http.StatusOK {
		return FetchResult{Status: resp.StatusCode()}
	}

	// The site may still answer in Latin-1; transcode to UTF-8 so the German labels match
	body, err := charset.NewReader(bytes.NewReader(resp.Body()), resp.Header().Get("Content-Type"))
	if err != nil {
		return FetchResult{Status: http.StatusOK, Err: fmt.Errorf("failed to decode %s: %w", url, err)}
	}

	fields, err := ParseReport(body)
	if err != nil {
		return FetchResult{Status: http.StatusOK, Err: err}
	}

	return FetchResult{
		Found: true,
		Record: Record{
			PageID: pageID,
			URL:    url,
			Fields: fields,
		},
		Status: http.StatusOK,
	}
}
