// Package pagination provides deterministic windowing of an ordered listing.
package pagination

// Page is the result of slicing a listing into a single window.
type Page[T any] struct {
	Items []T
	// Number is the clamped page number actually rendered.
	Number int
	// Total is the total page count for the listing.
	Total int
}

// Paginate clamps page into [1, ceil(len(items)/pageSize)] and returns the
// corresponding window. It is a pure function re-invoked on every render, so
// the result always reflects the latest listing. An empty listing yields one
// empty page.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	total := (len(items) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: items[start:end], Number: page, Total: total}
}
