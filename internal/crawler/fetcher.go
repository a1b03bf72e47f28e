package crawler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nao1215/nanumcorp/internal/config"
	"github.com/nao1215/nanumcorp/internal/model"
)

// Request headers the listing endpoint expects from the portal's own
// search page.
const (
	headerAccept         = "application/json, text/javascript, */*; q=0.01"
	headerXRequestedWith = "X-Requested-With"
	ajaxRequestedWith    = "XMLHttpRequest"
)

// Fetcher retrieves the raw listing fragment for one page of a search.
type Fetcher interface {
	Fetch(ctx context.Context, criteria model.SearchCriteria) (string, error)
}

// HTTPFetcher fetches listing pages from the portal over HTTP.
// No client timeout is configured; a hung request blocks until ctx is
// cancelled.
type HTTPFetcher struct {
	// client is the resty client shared by every request.
	client *resty.Client

	// endpoint is the listing endpoint URL.
	endpoint string

	// userAgent is sent as the User-Agent header.
	userAgent string

	// headers are extra headers sent with every request.
	headers map[string]string

	// now returns the current time; used for the cache-bust parameter.
	now func() time.Time
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithEndpoint sets the listing endpoint URL.
func WithEndpoint(endpoint string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.endpoint = endpoint
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithHeaders adds extra headers to every request. The Accept and
// X-Requested-With headers cannot be overridden.
func WithHeaders(headers map[string]string) FetcherOption {
	return func(f *HTTPFetcher) {
		for k, v := range headers {
			f.headers[k] = v
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = resty.NewWithClient(client)
	}
}

// WithClock sets the time source used for the cache-bust parameter.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *HTTPFetcher) {
		f.now = now
	}
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
// Without options it targets the portal's listing endpoint with a
// browser-style User-Agent.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    resty.New(),
		endpoint:  config.DefaultEndpoint,
		userAgent: config.DefaultUserAgent,
		headers:   make(map[string]string),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch requests one listing page and returns the response body as text.
// The query carries the criteria and a cache-bust value of the current
// time in Unix milliseconds.
func (f *HTTPFetcher) Fetch(ctx context.Context, criteria model.SearchCriteria) (string, error) {
	req := f.client.R().
		SetContext(ctx).
		SetQueryParams(criteria.QueryParams()).
		SetQueryParam(model.ParamCacheBust, strconv.FormatInt(f.now().UnixMilli(), 10))

	for k, v := range f.headers {
		req.SetHeader(k, v)
	}
	req.SetHeader("User-Agent", f.userAgent)
	req.SetHeader("Accept", headerAccept)
	req.SetHeader(headerXRequestedWith, ajaxRequestedWith)

	resp, err := req.Get(f.endpoint)
	if err != nil {
		return "", &NetworkError{URL: f.endpoint, Err: err}
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return "", &NetworkError{URL: f.endpoint, StatusCode: code, Err: ErrUnexpectedStatus}
	}

	return resp.String(), nil
}
