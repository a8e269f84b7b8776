// Package search runs keyword searches against a Google Custom Search
// engine and turns the responses into records a caller can render.
//
// # Overview
//
// The remote API returns at most ten items per call, while a site may want
// any page size. A Searcher fills one logical page by issuing as many
// sub-calls as the page size needs, each asking for at most ten items at
// the right offset, and concatenates what comes back. The first failed or
// empty sub-call ends the page early.
//
// The API's reported total is not reliable at large offsets: a valid page
// can come back empty with a total of zero even though earlier pages had
// results. When that happens the Searcher walks back one page at a time
// until it finds items or reaches page zero, and reports the page it
// settled on.
//
// The API serves at most the first 100 results of a query
// (Settings.MaxResults). Pages starting past that are rejected with
// ErrInvalidPage, which also bounds how far a search can walk back.
//
// # Usage
//
//	searcher, err := search.New(settings, client, locale.Fixed("en"), secret.Default)
//	outcome, err := searcher.Search(ctx, "annual report", 2)
//	for _, r := range outcome.Results {
//		fmt.Println(r.Title, r.Link)
//	}
//	pager := outcome.Pager(settings.PageSize, searcher.PagerSize())
//
// # Failures
//
// Upstream failures (network, HTTP status, undecodable bodies) never become
// the error returned by Search. The caller sees fewer or no results, and
// the first failure is kept on Outcome.Err so it can be shown or logged.
// Search only returns an error for problems on this side: an invalid page
// index or an API key reference that cannot be resolved.
//
// # Concurrency
//
// A Searcher holds immutable settings and its collaborators, and keeps no
// state between calls. It is safe for concurrent use as long as the
// injected Fetcher is.
package search
