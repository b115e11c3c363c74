package services

import "giftcerts/internal/query"

// Page is one window of a listing result. The same shape serves every
// listable entity kind.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int64 `json:"totalPages"`
}

func newPage[T any](items []T, total int64, w query.Window) *Page[T] {
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       w.Page,
		Size:       w.Limit,
		TotalPages: query.TotalPages(total, w.Limit),
	}
}
