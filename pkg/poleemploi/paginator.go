package poleemploi

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	defaultPageSize    = 150
	defaultMaxPages    = 8
	maxRangeFirstIndex = 1000 // the API rejects range windows starting past this
)

// Paginator walks successive range windows of a search until the result set
// is exhausted or a page cap is hit, collecting the offers along the way.
type Paginator struct {
	searcher Searcher
	logger   *slog.Logger
	pageSize int
	maxPages int
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithPageSize overrides the default window size of 150 offers, the largest
// span the API accepts.
func WithPageSize(size int) PaginatorOption {
	return func(p *Paginator) {
		p.pageSize = size
	}
}

// WithMaxPages overrides the default page cap.
func WithMaxPages(n int) PaginatorOption {
	return func(p *Paginator) {
		p.maxPages = n
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.logger = l
	}
}

// NewPaginator creates a Paginator over the given Searcher.
func NewPaginator(searcher Searcher, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		searcher: searcher,
		pageSize: defaultPageSize,
		maxPages: defaultMaxPages,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PaginateResult holds the outcome of a paginated search.
type PaginateResult struct {
	Offres           []Offre
	FiltresPossibles []Filtre // aggregates from the first window
	TotalAvailable   int      // max_results reported by the remote service
	PagesUsed        int
	StoppedAt        string // "no_more_results", "max_pages", "offset_limit"
}

// All fetches range windows for the given criteria until no results remain,
// the page cap is reached, or the next window would start past the offset
// the API accepts. Any "range" key in params is overwritten per window.
func (p *Paginator) All(ctx context.Context, params SearchParams) (*PaginateResult, error) {
	result := &PaginateResult{}

	for page := 0; page < p.maxPages; page++ {
		first := page * p.pageSize
		if first > maxRangeFirstIndex {
			result.StoppedAt = "offset_limit"
			return result, nil
		}
		last := first + p.pageSize - 1

		window := make(SearchParams, len(params)+1)
		for k, v := range params {
			window[k] = v
		}
		window["range"] = fmt.Sprintf("%d-%d", first, last)

		resp, err := p.searcher.Search(ctx, window)
		if err != nil {
			return nil, fmt.Errorf("searching window %d-%d: %w", first, last, err)
		}

		result.PagesUsed++

		if page == 0 {
			result.FiltresPossibles = resp.FiltresPossibles
		}
		result.TotalAvailable = resp.ContentRange.MaxResults
		result.Offres = append(result.Offres, resp.Resultats...)

		if p.logger != nil {
			p.logger.Debug("fetched window",
				"first", first,
				"last", last,
				"returned", len(resp.Resultats),
				"max_results", resp.ContentRange.MaxResults,
			)
		}

		if len(resp.Resultats) == 0 || first+len(resp.Resultats) >= resp.ContentRange.MaxResults {
			result.StoppedAt = "no_more_results"
			return result, nil
		}
	}

	result.StoppedAt = "max_pages"
	return result, nil
}
