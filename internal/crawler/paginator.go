package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/nanumcorp/internal/config"
	"github.com/nao1215/nanumcorp/internal/model"
)

// Progress describes the state of a collection after one page.
type Progress struct {
	// Page is the page just processed, starting at 1.
	Page int

	// TotalPages is the page count computed from the first page.
	TotalPages int

	// PageSize is the number of records on the first page.
	PageSize int

	// Collected is the number of records accumulated so far.
	Collected int

	// ReportedTotal is the registry total reported by the current page.
	ReportedTotal int
}

// Percent returns Page as a percentage of TotalPages. It is 100 when the
// page count is unknown.
func (p Progress) Percent() float64 {
	if p.TotalPages <= 0 {
		return 100
	}
	return float64(p.Page) / float64(p.TotalPages) * 100
}

// String formats the progress as "[page/total] (collected/reported, pct%)".
func (p Progress) String() string {
	return fmt.Sprintf("[%d/%d] (%d/%d, %.1f%%)",
		p.Page, p.TotalPages, p.Collected, p.ReportedTotal, p.Percent())
}

// ProgressFunc receives progress after every page.
type ProgressFunc func(Progress)

// Paginator walks every page of a search and aggregates the records.
// Pages are fetched one at a time; a Paginator is not safe for concurrent
// use by multiple goroutines.
type Paginator struct {
	// fetcher retrieves raw listing pages.
	fetcher Fetcher

	// delay is the wait after a page before requesting the next one.
	delay time.Duration

	// progress is called after every page. Nil means log only.
	progress ProgressFunc

	// logger receives debug and progress messages.
	logger *slog.Logger
}

// PaginatorOption configures a Paginator.
type PaginatorOption func(*Paginator)

// WithDelay sets the delay between pages.
func WithDelay(d time.Duration) PaginatorOption {
	return func(p *Paginator) {
		p.delay = d
	}
}

// WithProgress sets a callback invoked after every page.
func WithProgress(fn ProgressFunc) PaginatorOption {
	return func(p *Paginator) {
		p.progress = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.logger = logger
	}
}

// NewPaginator creates a new Paginator reading pages through fetcher.
func NewPaginator(fetcher Fetcher, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		fetcher: fetcher,
		delay:   config.DefaultPageDelay,
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Collect fetches every page of the search described by criteria,
// starting at page 1, and returns the records of all pages in page order.
//
// The page count is computed once from the first page as
// ceil(reported total / rows on page 1). Collection stops after that many
// pages, or after maxPages pages when maxPages is positive. A first page
// without rows ends the collection with an empty result.
//
// Any fetch or parse failure aborts the collection; no partial result is
// returned.
func (p *Paginator) Collect(ctx context.Context, criteria model.SearchCriteria, maxPages int) (*model.AggregateResult, error) {
	result := model.NewAggregateResult()

	page := 1
	current, err := p.fetchPage(ctx, criteria, page)
	if err != nil {
		return nil, err
	}
	result.ReportedTotal = current.Total

	pageSize := len(current.Corps)
	if pageSize == 0 {
		p.logger.Info("first page has no records", "reported_total", current.Total)
		return result, nil
	}

	totalPages := (current.Total + pageSize - 1) / pageSize
	p.logger.Info("collection planned",
		"reported_total", current.Total,
		"page_size", pageSize,
		"total_pages", totalPages)

	for {
		result.Append(current.Corps...)
		result.Pages = page

		p.report(Progress{
			Page:          page,
			TotalPages:    totalPages,
			PageSize:      pageSize,
			Collected:     result.Total,
			ReportedTotal: current.Total,
		})

		if page >= totalPages || (maxPages > 0 && page >= maxPages) {
			break
		}
		page++

		if err := p.wait(ctx); err != nil {
			return nil, err
		}

		current, err = p.fetchPage(ctx, criteria, page)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// fetchPage fetches and parses a single page.
func (p *Paginator) fetchPage(ctx context.Context, criteria model.SearchCriteria, page int) (*model.PageResult, error) {
	p.logger.Debug("fetching page", "page", page)

	body, err := p.fetcher.Fetch(ctx, criteria.WithPage(page))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}

	result, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %d: %w", page, err)
	}

	p.logger.Debug("parsed page", "page", page, "records", len(result.Corps), "total", result.Total)
	return result, nil
}

// report hands progress to the callback and the logger.
func (p *Paginator) report(progress Progress) {
	p.logger.Info("page processed",
		"page", progress.Page,
		"total_pages", progress.TotalPages,
		"collected", progress.Collected,
		"reported_total", progress.ReportedTotal)

	if p.progress != nil {
		p.progress(progress)
	}
}

// wait pauses for the configured delay. It returns early with the
// context's error if ctx is cancelled.
func (p *Paginator) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
