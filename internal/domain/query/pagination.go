package query

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination is the metadata returned next to a listing page.
type Pagination struct {
	Total      int      `json:"total"`
	TotalPages int      `json:"totalPage"`
	Page       int      `json:"pageNo"`
	Limit      int      `json:"limit"`
	Next       *PageRef `json:"next,omitempty"`
	Prev       *PageRef `json:"prev,omitempty"`

	StartIndex int `json:"-"`
	EndIndex   int `json:"-"`
}

// Paginate computes the window [StartIndex, EndIndex) of page over total
// items. Page and limit below 1 fall back to the defaults. The arithmetic
// never multiplies past total, so any page and limit are safe.
func Paginate(total, page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if total < 0 {
		total = 0
	}

	start := total
	if page-1 <= total/limit {
		start = (page - 1) * limit
	}
	end := total
	if total-start > limit {
		end = start + limit
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	p := Pagination{
		Total:      total,
		TotalPages: pages,
		Page:       page,
		Limit:      limit,
		StartIndex: start,
		EndIndex:   end,
	}
	if end < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
