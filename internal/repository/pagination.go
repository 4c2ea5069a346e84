package repository

// Paging bounds for every listing operation.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Paging is a 1-based page window. Out-of-range input is clamped by
// NewPaging, never rejected; a zero Paging is normalized on use.
type Paging struct {
	Page     int
	PageSize int
}

// NewPaging clamps page to >= 1 and pageSize to [1, MaxPageSize].
func NewPaging(page, pageSize int) Paging {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Paging{Page: page, PageSize: pageSize}
}

// DefaultPaging is the window used when a caller supplies none.
func DefaultPaging() Paging { return Paging{Page: 1, PageSize: DefaultPageSize} }

// Offset returns the LIMIT/OFFSET offset for this window.
func (p Paging) Offset() int { return (p.Page - 1) * p.PageSize }

// Limit returns the LIMIT for this window.
func (p Paging) Limit() int { return p.PageSize }

// normalize guards against hand-built Paging values bypassing NewPaging.
func (p Paging) normalize() Paging { return NewPaging(p.Page, p.PageSize) }

// Page carries one window of items plus the total count matching the
// query. I return the total so clients can compute pagination without an
// extra round trip; the derived fields are filled in exactly one place
// (NewPage) so every entity paginates with the same rounding.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPage computes the derived pagination fields from items, total and
// the requested window. TotalPages is ceil(total/pageSize).
func NewPage[T any](items []T, total int, p Paging) Page[T] {
	p = p.normalize()
	if items == nil {
		items = []T{}
	}
	totalPages := (total + p.PageSize - 1) / p.PageSize
	return Page[T]{
		Items:       items,
		Total:       total,
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}
