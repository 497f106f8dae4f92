// Package catalog holds the materialized repository and property listings of
// an organization together with their filtered, paginated views.
package catalog

const DefaultViewPageSize = 10

// View windows a filtered list into fixed-size pages. The current page is
// always within [1, TotalPages()].
type View[T any] struct {
	items    []T
	filtered []T
	term     string
	page     int
	pageSize int
	match    func(item T, term string) bool
}

// NewView returns an empty view. match decides whether an item passes a
// search term; a nil match lets every item through.
func NewView[T any](pageSize int, match func(item T, term string) bool) *View[T] {
	if pageSize <= 0 {
		pageSize = DefaultViewPageSize
	}

	return &View[T]{
		page:     1,
		pageSize: pageSize,
		match:    match,
	}
}

// SetItems replaces the catalog and re-applies the active term.
func (v *View[T]) SetItems(items []T) {
	v.items = items
	v.Filter(v.term)
}

// Filter recomputes the filtered items for term using the match function.
func (v *View[T]) Filter(term string) {
	if term == "" || v.match == nil {
		v.SetFiltered(term, v.items)
		return
	}

	filtered := []T{}
	for _, item := range v.items {
		if v.match(item, term) {
			filtered = append(filtered, item)
		}
	}
	v.SetFiltered(term, filtered)
}

// SetFiltered installs an externally computed result set, e.g. local matches
// merged with remote search results.
func (v *View[T]) SetFiltered(term string, items []T) {
	v.term = term
	v.filtered = items
	v.page = 1
}

func (v *View[T]) Items() []T {
	return v.items
}

func (v *View[T]) Filtered() []T {
	return v.filtered
}

func (v *View[T]) Term() string {
	return v.term
}

func (v *View[T]) Page() int {
	return v.page
}

func (v *View[T]) PageSize() int {
	return v.pageSize
}

func (v *View[T]) TotalPages() int {
	n := (len(v.filtered) + v.pageSize - 1) / v.pageSize
	if n < 1 {
		return 1
	}

	return n
}

// GoTo moves to page p. Pages outside [1, TotalPages()] are ignored and
// false is returned.
func (v *View[T]) GoTo(p int) bool {
	if p < 1 || p > v.TotalPages() {
		return false
	}
	v.page = p

	return true
}

func (v *View[T]) NextPage() bool {
	return v.GoTo(v.page + 1)
}

func (v *View[T]) PrevPage() bool {
	return v.GoTo(v.page - 1)
}

// Visible returns the items of the current page.
func (v *View[T]) Visible() []T {
	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return []T{}
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}

	return v.filtered[start:end]
}
