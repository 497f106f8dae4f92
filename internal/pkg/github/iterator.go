package github

import (
	"context"

	"github.com/mageroni/Agent-Quickstart/internal/ratelimit"
)

// PageIterator walks a page-numbered GitHub listing. It stops after a short
// page, an empty page or once Limit items were collected.
type PageIterator[T any] struct {
	fetch   func(ctx context.Context, page, perPage int) ([]T, error)
	perPage int
	limit   int
	pacer   ratelimit.Pacer
	page    int
	count   int
	hasNext bool
}

type PageIteratorOptions[T any] struct {
	Fetch   func(ctx context.Context, page, perPage int) ([]T, error)
	PerPage int
	// Limit caps the number of collected items, zero means no cap.
	Limit int
	// Pacer is consulted before every page except the first.
	Pacer ratelimit.Pacer
}

func NewPageIterator[T any](o *PageIteratorOptions[T]) *PageIterator[T] {
	pacer := o.Pacer
	if pacer == nil {
		pacer = ratelimit.Unlimited
	}
	perPage := o.PerPage
	if perPage <= 0 {
		perPage = 100
	}

	return &PageIterator[T]{
		fetch:   o.Fetch,
		perPage: perPage,
		limit:   o.Limit,
		pacer:   pacer,
		hasNext: true,
	}
}

func (i *PageIterator[T]) HasNext() bool {
	return i.hasNext
}

// Page returns the number of pages requested so far.
func (i *PageIterator[T]) Page() int {
	return i.page
}

func (i *PageIterator[T]) Next(ctx context.Context) ([]T, error) {
	if !i.hasNext {
		return nil, nil
	}

	if i.page > 0 {
		if err := i.pacer.Wait(ctx); err != nil {
			i.hasNext = false
			return nil, err
		}
	}

	i.page++
	items, err := i.fetch(ctx, i.page, i.perPage)
	if err != nil {
		i.hasNext = false
		return nil, err
	}

	i.count += len(items)
	if len(items) == 0 || len(items) < i.perPage || (i.limit > 0 && i.count >= i.limit) {
		i.hasNext = false
	}

	return items, nil
}

// GetAll returns the items of every page. When a page fails, the items
// collected so far are returned together with the error.
func (i *PageIterator[T]) GetAll(ctx context.Context) ([]T, error) {
	result := []T{}
	for i.HasNext() {
		items, err := i.Next(ctx)
		if err != nil {
			return i.truncate(result), err
		}

		result = append(result, items...)
	}

	return i.truncate(result), nil
}

func (i *PageIterator[T]) truncate(items []T) []T {
	if i.limit > 0 && len(items) > i.limit {
		return items[:i.limit]
	}

	return items
}
