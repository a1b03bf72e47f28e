// Package crawler collects the public-benefit corporation registry from the
// 1365 donation portal.
//
// # Components
//
//   - HTTPFetcher: requests one listing page from the portal's internal
//     listing endpoint and returns the HTML fragment it answers with
//   - Parse: turns a listing fragment into a model.PageResult
//   - Paginator: walks every page of a search sequentially and aggregates
//     the records into a model.AggregateResult
//
// # Politeness
//
// Pages are fetched strictly one after another. After a page is fetched,
// parsed and reported, the Paginator waits a fixed delay (500ms by default)
// before requesting the next one. There are no retries: the first network
// or parse failure aborts the collection.
//
// # Usage
//
//	fetcher := crawler.NewHTTPFetcher()
//	paginator := crawler.NewPaginator(fetcher, crawler.WithLogger(logger))
//	result, err := paginator.Collect(ctx, model.DefaultSearchCriteria(), 0)
//
// # Caveats
//
// The number of pages is computed once from the first page: the registry
// total divided by the number of rows on page 1. Selectors follow the
// portal's current markup; a markup change yields empty records rather
// than an error.
package crawler
