package search

// Pager describes the page links to show under a result list. All page
// numbers are zero-based.
type Pager struct {
	Current    int   `json:"current"`
	TotalPages int   `json:"total_pages"`
	Pages      []int `json:"pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

// First returns the first page in the window, or -1 when empty.
func (p Pager) First() int {
	if len(p.Pages) == 0 {
		return -1
	}
	return p.Pages[0]
}

// Last returns the last page in the window, or -1 when empty.
func (p Pager) Last() int {
	if len(p.Pages) == 0 {
		return -1
	}
	return p.Pages[len(p.Pages)-1]
}

// NewPager builds a window of at most pagerSize page links around current.
// The window is shifted rather than shrunk near either end.
func NewPager(total int64, pageSize, pagerSize, current int) Pager {
	if pageSize <= 0 || total <= 0 {
		return Pager{Current: max(current, 0)}
	}
	if pagerSize <= 0 {
		pagerSize = 1
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	current = max(0, min(current, totalPages-1))

	// One-based arithmetic, centred on the current page.
	middle := (pagerSize + 1) / 2
	cur := current + 1
	first := cur - middle + 1
	last := cur + pagerSize - middle

	if last > totalPages {
		first += totalPages - last
		last = totalPages
	}
	if first <= 0 {
		last += 1 - first
		first = 1
	}
	last = min(last, totalPages)

	pages := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		pages = append(pages, i-1)
	}

	return Pager{
		Current:    current,
		TotalPages: totalPages,
		Pages:      pages,
		HasPrev:    current > 0,
		HasNext:    current < totalPages-1,
	}
}

// Pager builds the pager for the outcome. The reported total is raised to
// cover the results actually shown, since the API may report less.
func (o *Outcome) Pager(pageSize, pagerSize int) Pager {
	if o == nil {
		return Pager{}
	}
	total := o.Total
	if shown := int64(o.Page*pageSize + len(o.Results)); len(o.Results) > 0 && shown > total {
		total = shown
	}
	return NewPager(total, pageSize, pagerSize, o.Page)
}
