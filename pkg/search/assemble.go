package search

import (
	"context"

	"github.com/rubiojr/gss/pkg/customsearch"
)

// assembly is the result of filling one logical page.
type assembly struct {
	items  []customsearch.Item
	total  int64
	facets [][]Facet
	// page is the logical page the items belong to.
	page  int
	calls int
	// err is the first failure seen while assembling.
	err error
}

// assemblePage fills req.Page with as many sub-calls as the page size
// needs. Each sub-call asks for at most customsearch.MaxNum items. The
// loop stops at the first failed call or the first response without an
// "items" field; what was gathered so far is kept. Total and facets come
// from the last successful call that carried items. Sub-calls never reach
// past Settings.MaxResults; callers keep req.Page within MaxPage.
func (s *Searcher) assemblePage(ctx context.Context, req Request, apiKey string) assembly {
	pageSize := s.settings.PageSize
	base := req.Page * pageSize
	remaining := s.settings.MaxResults - base
	a := assembly{page: req.Page}

	for i := 0; i < pageSize && i < remaining; i += customsearch.MaxNum {
		q := customsearch.Query{
			Keywords: req.Keywords,
			Language: req.Language,
			APIKey:   apiKey,
			EngineID: s.settings.EngineID,
			Count:    min(customsearch.MaxNum, pageSize-i, remaining-i),
			Offset:   base + i,
		}

		resp, err := s.fetcher.Fetch(ctx, q)
		a.calls++
		if err != nil {
			s.logger.Debugf("page %d offset %d: %v", req.Page, q.Offset, err)
			a.err = err
			break
		}
		if !resp.HasItems() {
			s.logger.Debugf("page %d offset %d: no items", req.Page, q.Offset)
			break
		}

		a.items = append(a.items, resp.Items...)
		a.total = resp.TotalResults()
		if facets := ExtractFacets(resp, s.settings.Labels); facets != nil {
			a.facets = facets
		}
		s.logger.Debugf("page %d offset %d: %d items, total %d", req.Page, q.Offset, len(resp.Items), a.total)
	}

	return a
}

// execute assembles req.Page and, while that yields nothing and the page
// is above zero, retries one page earlier. Page zero is always accepted.
// Walking back stops once ctx is done. The returned assembly carries the
// first failure seen across attempts and the total number of calls.
func (s *Searcher) execute(ctx context.Context, req Request, apiKey string) assembly {
	a := s.assemblePage(ctx, req, apiKey)
	calls, firstErr := a.calls, a.err

	for req.Page > 0 && len(a.items) == 0 {
		if err := ctx.Err(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			break
		}
		req.Page--
		a = s.assemblePage(ctx, req, apiKey)
		calls += a.calls
		if firstErr == nil {
			firstErr = a.err
		}
	}

	a.calls = calls
	a.err = firstErr
	return a
}
