package pagination

import "strconv"

// Options carries page-based pagination parameters. Zero values are replaced
// with the defaults (page 1, 10 per page) by Normalize.
type Options struct {
	Page  int64
	Limit int64
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Parse builds Options from raw page/limit query-string values. Malformed or
// missing values fall back to the defaults via Normalize.
func Parse(page, limit string) Options {
	p, _ := strconv.ParseInt(page, 10, 64)
	l, _ := strconv.ParseInt(limit, 10, 64)
	return Options{Page: p, Limit: l}.Normalize()
}

// Normalize clamps the options into their supported ranges.
func (o Options) Normalize() Options {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	return o
}

// Skip returns the number of documents to skip for the current page.
func (o Options) Skip() int64 {
	return (o.Page - 1) * o.Limit
}

// Page is a single page of a filtered result set plus the totals the
// frontend pager consumes.
type Page[T any] struct {
	Docs        []T    `json:"docs"`
	TotalDocs   int64  `json:"totalDocs"`
	Limit       int64  `json:"limit"`
	Page        int64  `json:"page"`
	TotalPages  int64  `json:"totalPages"`
	HasNextPage bool   `json:"hasNextPage"`
	HasPrevPage bool   `json:"hasPrevPage"`
	NextPage    *int64 `json:"nextPage"`
	PrevPage    *int64 `json:"prevPage"`
}

// New assembles a Page from a slice of documents and the total count of
// documents matching the filter (independent of the requested page).
func New[T any](docs []T, total int64, opts Options) *Page[T] {
	opts = opts.Normalize()
	if docs == nil {
		docs = []T{}
	}
	totalPages := total / opts.Limit
	if total%opts.Limit != 0 || totalPages == 0 {
		totalPages++
	}
	p := &Page[T]{
		Docs:       docs,
		TotalDocs:  total,
		Limit:      opts.Limit,
		Page:       opts.Page,
		TotalPages: totalPages,
	}
	if opts.Page < totalPages {
		next := opts.Page + 1
		p.HasNextPage = true
		p.NextPage = &next
	}
	if opts.Page > 1 {
		prev := opts.Page - 1
		p.HasPrevPage = true
		p.PrevPage = &prev
	}
	return p
}
