package crawler

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"atrezzo/internal/model"
	"atrezzo/internal/observability"
)

type State int

const (
	Running State = iota
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// StopReason tells why a crawl left the Running state.
type StopReason int

const (
	NotStopped StopReason = iota
	PageLimit
	NoMoreProducts
	FetchFailure
	LayoutMismatch
	ParseFailure
	Canceled
)

func (r StopReason) String() string {
	switch r {
	case NotStopped:
		return "not_stopped"
	case PageLimit:
		return "page_limit"
	case NoMoreProducts:
		return "no_more_products"
	case FetchFailure:
		return "fetch_failure"
	case LayoutMismatch:
		return "layout_mismatch"
	case ParseFailure:
		return "parse_failure"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Result is the outcome of a crawl. Products holds every row collected before the crawl
// stopped, whatever the final state.
type Result struct {
	State    State
	Reason   StopReason
	Page     int // last page processed or attempted
	Products []model.Product
	Err      error
}

type Pager struct {
	Fetcher   Fetcher
	Extractor *Extractor
	Layout    Layout
	BaseURL   string
	FirstPage int
	LastPage  int
	Workers   int // pages fetched concurrently; rows are still appended in page order

	// OnPage, if set, is called after each page is appended.
	OnPage func(page, rows int)
}

func NewPager(fetcher Fetcher, extractor *Extractor, baseURL string) *Pager {
	return &Pager{
		Fetcher:   fetcher,
		Extractor: extractor,
		Layout:    DefaultLayout(),
		BaseURL:   baseURL,
		FirstPage: 1,
		LastPage:  100,
		Workers:   1,
	}
}

// Page downloads one page and assembles its rows. An empty page returns ErrNoMoreProducts.
func (p *Pager) Page(ctx context.Context, page int) ([]model.Product, error) {
	html, err := p.Fetcher.Fetch(ctx, PageURL(p.BaseURL, page))
	if err != nil {
		return nil, err
	}
	observability.PagesFetched.Inc()

	cards, err := p.Extractor.ParseCards(html)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", page, err)
	}
	if len(cards) == 0 {
		return nil, ErrNoMoreProducts
	}

	return Assemble(page, cards, p.Layout)
}

// Run walks the page range until the last page, an empty page or the first failure.
func (p *Pager) Run(ctx context.Context) Result {
	res := Result{State: Running, Page: p.FirstPage}
	if err := p.Layout.Validate(); err != nil {
		return p.stop(res, LayoutMismatch, err)
	}

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	for start := p.FirstPage; start <= p.LastPage; start += workers {
		if err := ctx.Err(); err != nil {
			return p.stop(res, Canceled, err)
		}

		end := min(start+workers-1, p.LastPage)
		for i, o := range p.fetchWindow(ctx, start, end) {
			res.Page = start + i
			if o.err != nil {
				return p.stop(res, p.classify(ctx, o.err), o.err)
			}

			res.Products = append(res.Products, o.rows...)
			observability.ProductsExtracted.Add(float64(len(o.rows)))
			zap.L().Info("page processed", zap.Int("page", res.Page), zap.Int("rows", len(o.rows)))
			if p.OnPage != nil {
				p.OnPage(res.Page, len(o.rows))
			}
		}
	}

	return p.stop(res, PageLimit, nil)
}

func (p *Pager) classify(ctx context.Context, err error) StopReason {
	var fe *FetchError
	var lm *LayoutMismatchError
	switch {
	case ctx.Err() != nil:
		return Canceled
	case errors.Is(err, ErrNoMoreProducts):
		return NoMoreProducts
	case errors.As(err, &lm), errors.Is(err, ErrInvalidLayout):
		return LayoutMismatch
	case errors.As(err, &fe):
		return FetchFailure
	}
	return ParseFailure
}

func (p *Pager) stop(res Result, reason StopReason, err error) Result {
	res.Reason = reason
	switch reason {
	case PageLimit, NoMoreProducts:
		res.State = Done
	default:
		res.State = Failed
		res.Err = err
	}

	for i := range res.Products {
		res.Products[i].Position = i
	}
	observability.CrawlStops.WithLabelValues(reason.String()).Inc()

	fields := []zap.Field{
		zap.String("state", res.State.String()),
		zap.String("reason", reason.String()),
		zap.Int("page", res.Page),
		zap.Int("rows", len(res.Products)),
	}
	if res.State == Failed {
		zap.L().Error("crawl failed", append(fields, zap.Error(err))...)
	} else {
		zap.L().Info("crawl finished", fields...)
	}
	return res
}
