package crawler

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

// Fetcher downloads the markup of one catalog page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// PageURL appends the page number to base with no separator, so base must already end in
// the page query prefix (e.g. "...&page=").
func PageURL(base string, page int) string {
	return base + strconv.Itoa(page)
}

type HTTPFetcher struct {
	Http *resty.Client
}

// NewHTTPFetcher builds a fetcher with one GET per call and no retries. A delay > 0 spaces
// consecutive requests at least that far apart.
func NewHTTPFetcher(timeout, delay time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("user-agent", defaultUserAgent)
	client.SetRetryCount(0)

	if delay > 0 {
		limiter := rate.NewLimiter(rate.Every(delay), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	return &HTTPFetcher{Http: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.Http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}
	return string(resp.Body()), nil
}

// PageCache stores raw page markup keyed by URL.
type PageCache interface {
	Get(ctx context.Context, url string) (string, bool, error)
	Set(ctx context.Context, url, body string) error
}

// CachedFetcher serves pages from Cache when present and stores successful fetches that
// Accept approves (all of them when Accept is nil). Cache failures never fail the fetch.
type CachedFetcher struct {
	Next   Fetcher
	Cache  PageCache
	Accept func(body string) bool
}

// NewCachedFetcher caches only pages that hold product cards, so an empty listing is
// fetched again on the next run instead of ending it early.
func NewCachedFetcher(next Fetcher, cache PageCache, e *Extractor) *CachedFetcher {
	return &CachedFetcher{Next: next, Cache: cache, Accept: e.HasCards}
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, ok, err := f.Cache.Get(ctx, url)
	if err != nil {
		zap.L().Warn("page cache read failed", zap.String("url", url), zap.Error(err))
	}
	if ok {
		return body, nil
	}

	body, err = f.Next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if f.Accept != nil && !f.Accept(body) {
		return body, nil
	}
	if err := f.Cache.Set(ctx, url, body); err != nil {
		zap.L().Warn("page cache write failed", zap.String("url", url), zap.Error(err))
	}
	return body, nil
}
