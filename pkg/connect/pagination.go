package connect

import (
	"context"
	"errors"
)

// ErrNoMoreItems is returned by PageIterator.Next after the final item.
var ErrNoMoreItems = errors.New("no more items")

// PageFetcher loads one page of results for the given cursor. An empty
// cursor requests the first page.
type PageFetcher[T any] func(ctx context.Context, cursor string) (*ListResponse[T], error)

// PageIterator walks a cursor-paginated list one item at a time, fetching
// pages lazily.
type PageIterator[T any] struct {
	ctx     context.Context
	fetch   PageFetcher[T]
	buffer  []T
	cursor  string
	started bool
	done    bool
	err     error
}

// NewPageIterator creates an iterator over a paginated list endpoint.
func NewPageIterator[T any](ctx context.Context, fetch PageFetcher[T]) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// HasNext reports whether another item is available. It may fetch a page;
// a fetch failure is surfaced by the subsequent Next call.
func (it *PageIterator[T]) HasNext() bool {
	if len(it.buffer) > 0 {
		return true
	}

	if it.done {
		return false
	}

	it.advance()

	return len(it.buffer) > 0 || it.err != nil
}

// Next returns the next item, fetching the next page when the current one
// is exhausted. It returns ErrNoMoreItems once the list is consumed.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if len(it.buffer) == 0 && !it.done {
		it.advance()
	}

	if it.err != nil {
		err := it.err
		it.err = nil

		return zero, err
	}

	if len(it.buffer) == 0 {
		return zero, ErrNoMoreItems
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// advance fetches the next page into the buffer.
func (it *PageIterator[T]) advance() {
	if it.started && it.cursor == "" {
		it.done = true

		return
	}

	page, err := it.fetch(it.ctx, it.cursor)
	if err != nil {
		it.err = err
		it.done = true

		return
	}

	it.started = true
	it.buffer = append(it.buffer, page.Data...)
	it.cursor = page.PageInfo.EndCursor

	if it.cursor == "" || len(page.Data) == 0 {
		it.done = true
	}
}

// CollectAll drains the iterator into a slice.
func CollectAll[T any](it *PageIterator[T]) ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				break
			}

			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}
