package connect_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipedream-labs/connect-go/pkg/connect"
)

var errFetchFailed = errors.New("fetch failed")

func pagedFetcher(pages map[string]*connect.ListResponse[string]) connect.PageFetcher[string] {
	return func(ctx context.Context, cursor string) (*connect.ListResponse[string], error) {
		page, ok := pages[cursor]
		if !ok {
			return &connect.ListResponse[string]{}, nil
		}

		return page, nil
	}
}

func TestPageIterator_WalksAllPages(t *testing.T) {
	t.Parallel()

	pages := map[string]*connect.ListResponse[string]{
		"": {
			PageInfo: connect.PageInfo{EndCursor: "p2"},
			Data:     []string{"a", "b"},
		},
		"p2": {
			PageInfo: connect.PageInfo{EndCursor: ""},
			Data:     []string{"c"},
		},
	}

	it := connect.NewPageIterator(context.Background(), pagedFetcher(pages))

	var items []string

	for it.HasNext() {
		item, err := it.Next()
		require.NoError(t, err)

		items = append(items, item)
	}

	assert.Equal(t, []string{"a", "b", "c"}, items)

	_, err := it.Next()
	assert.ErrorIs(t, err, connect.ErrNoMoreItems)
}

func TestPageIterator_SinglePage(t *testing.T) {
	t.Parallel()

	pages := map[string]*connect.ListResponse[string]{
		"": {Data: []string{"only"}},
	}

	it := connect.NewPageIterator(context.Background(), pagedFetcher(pages))

	item, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "only", item)

	assert.False(t, it.HasNext())
}

func TestPageIterator_EmptyList(t *testing.T) {
	t.Parallel()

	it := connect.NewPageIterator(context.Background(), pagedFetcher(nil))

	assert.False(t, it.HasNext())

	_, err := it.Next()
	assert.ErrorIs(t, err, connect.ErrNoMoreItems)
}

func TestPageIterator_FetchError(t *testing.T) {
	t.Parallel()

	it := connect.NewPageIterator(context.Background(), func(ctx context.Context, cursor string) (*connect.ListResponse[string], error) {
		return nil, errFetchFailed
	})

	_, err := it.Next()
	assert.ErrorIs(t, err, errFetchFailed)
}

func TestCollectAll(t *testing.T) {
	t.Parallel()

	pages := map[string]*connect.ListResponse[string]{
		"": {
			PageInfo: connect.PageInfo{EndCursor: "p2"},
			Data:     []string{"a"},
		},
		"p2": {
			Data: []string{"b"},
		},
	}

	it := connect.NewPageIterator(context.Background(), pagedFetcher(pages))

	items, err := connect.CollectAll(it)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestCollectAll_PropagatesError(t *testing.T) {
	t.Parallel()

	it := connect.NewPageIterator(context.Background(), func(ctx context.Context, cursor string) (*connect.ListResponse[string], error) {
		return nil, errFetchFailed
	})

	_, err := connect.CollectAll(it)
	assert.ErrorIs(t, err, errFetchFailed)
}
