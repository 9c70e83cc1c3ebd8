package shared

import (
	"math"
	"net/url"
	"strconv"
)

// Pagination carries metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int

	query url.Values
}

// NewPagination computes pagination metadata with sane defaults.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev reports whether an earlier page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the previous page number, clamped at 1.
func (p Pagination) PrevPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// NextPage returns the next page number, clamped at the last page.
func (p Pagination) NextPage() int {
	if p.Page >= p.TotalPages {
		return p.TotalPages
	}
	return p.Page + 1
}

// WithQuery attaches the request query so page links keep the active
// filters.
func (p Pagination) WithQuery(query url.Values) Pagination {
	p.query = query
	return p
}

// PrevHref returns the link target for the previous page.
func (p Pagination) PrevHref() string { return p.href(p.PrevPage()) }

// NextHref returns the link target for the next page.
func (p Pagination) NextHref() string { return p.href(p.NextPage()) }

func (p Pagination) href(page int) string {
	q := url.Values{}
	for key, values := range p.query {
		if key == "page" {
			continue
		}
		q[key] = values
	}
	q.Set("page", strconv.Itoa(page))
	return "?" + q.Encode()
}
