package extract

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"scraper-go/dom"
	"scraper-go/internal/metrics"
)

// ExtractDataBulk runs the single-document pipeline over every page
// concurrently, with one inner record list per page in the same order as
// the input. See (*Engine).ExtractDataBulk for the contract.
func ExtractDataBulk(pages []string, itemSelector string, fields map[string]string) ([][]Record, error) {
	return New(Options{}).ExtractDataBulk(context.Background(), pages, itemSelector, fields)
}

// ExtractDataBulk fans pages across a fixed worker pool and collects
// results by input index, so output order matches input order regardless of
// completion order. Selectors are compiled exactly once before any worker
// starts: an invalid selector fails the whole call with one diagnostic and
// no partial results, since the same mapping would fail identically on
// every page. Workers share only the compiled selectors, which are
// immutable; each owns its page's Document exclusively.
func (e *Engine) ExtractDataBulk(ctx context.Context, pages []string, itemSelector string, fields map[string]string) ([][]Record, error) {
	itemSel, specs, err := e.compileAll(itemSelector, fields)
	if err != nil {
		return nil, err
	}

	results := make([][]Record, len(pages))
	if len(pages) == 0 {
		return results, nil
	}

	workers := e.opts.Workers
	if workers > len(pages) {
		workers = len(pages)
	}

	// ----- Worker pool -------------------------------------------------------
	jobs := make(chan int)
	errs := make([]error, len(pages))
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				start := time.Now()
				doc, err := dom.Parse(pages[idx])
				if err != nil {
					errs[idx] = fmt.Errorf("page %d: %w", idx, err)
					continue
				}
				metrics.DocumentsParsed.Inc()
				results[idx] = assemble(doc, itemSel, specs)
				e.log.Debug().
					Int("page", idx).
					Int("records", len(results[idx])).
					Dur("took", time.Since(start)).
					Msg("page extracted")
			}
		}()
	}

	// ----- Dispatcher --------------------------------------------------------
	var limiter *rate.Limiter
	if e.opts.PageRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(e.opts.PageRate), 1)
	}
	var dispatchErr error
dispatch:
	for i := range pages {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				dispatchErr = err
				break
			}
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			dispatchErr = ctx.Err()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if dispatchErr != nil {
		return nil, dispatchErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
