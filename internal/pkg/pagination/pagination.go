package pagination

import "math"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination holds the window computed for a list query.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	Offset  int   `json:"-"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// New computes the pagination window for the given page, limit and total
// count. Non-positive page defaults to 1, non-positive limit to
// DefaultLimit with a cap of MaxLimit. Pages is 0 when total is 0. A page
// beyond the last yields an offset past the end, never an error.
func New(page, limit int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		Offset:  (page - 1) * limit,
		HasNext: page < pages,
		HasPrev: page > 1 && pages > 0,
	}
}
