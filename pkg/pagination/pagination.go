// Package pagination parses page/size query parameters and builds the page
// envelope returned by every list endpoint.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Params is a 1-based page request.
type Params struct {
	Page int
	Size int
}

// FromQuery reads ?page=&size=. Missing or invalid values fall back to
// page 1 and DefaultSize; size is capped at MaxSize.
func FromQuery(c *gin.Context) Params {
	return New(atoi(c.Query("page")), atoi(c.Query("size")))
}

func New(page, size int) Params {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Params{Page: page, Size: size}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	PageSize    int   `json:"page_size"`
}

func NewPage[T any](items []T, params Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := int((total + int64(params.Size) - 1) / int64(params.Size))

	return Page[T]{
		Items:       items,
		CurrentPage: params.Page,
		TotalItems:  total,
		TotalPages:  totalPages,
		PageSize:    params.Size,
	}
}

// Map converts the items of a page keeping its counters.
func Map[T, R any](p Page[T], fn func(T) R) Page[R] {
	items := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[R]{
		Items:       items,
		CurrentPage: p.CurrentPage,
		TotalItems:  p.TotalItems,
		TotalPages:  p.TotalPages,
		PageSize:    p.PageSize,
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
