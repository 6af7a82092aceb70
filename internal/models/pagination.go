package models

// Pagination contains limit/offset pagination metadata returned in list responses.
type Pagination struct {
	TotalCount int  `json:"total_count"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"has_more"`
}

// NewPagination derives pagination metadata for the returned page.
// HasMore holds exactly when offset + len(page) < total.
func NewPagination(total, limit, offset, pageLen int) *Pagination {
	return &Pagination{
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    offset+pageLen < total,
	}
}

// NormalizePage clamps limit/offset to supported bounds.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
