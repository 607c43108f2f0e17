package crawler

import (
	"context"
	"sync"

	"atrezzo/internal/model"
)

type pageOutcome struct {
	rows []model.Product
	err  error
}

// fetchWindow processes pages first..last concurrently and returns their outcomes indexed
// by page - first.
func (p *Pager) fetchWindow(ctx context.Context, first, last int) []pageOutcome {
	out := make([]pageOutcome, last-first+1)
	if len(out) == 1 {
		rows, err := p.Page(ctx, first)
		out[0] = pageOutcome{rows: rows, err: err}
		return out
	}

	var wg sync.WaitGroup
	for page := first; page <= last; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			rows, err := p.Page(ctx, page)
			out[page-first] = pageOutcome{rows: rows, err: err}
		}(page)
	}
	wg.Wait()

	return out
}
