package platz_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platzio/platz-go/pkg/platz"
)

var errPageFailed = errors.New("page failed")

type testItem struct {
	N int `json:"n"`
}

// fakePageSource serves n items in pages of perPage and records every query.
type fakePageSource struct {
	total   int
	perPage int
	failAt  int
	stallAt int
	queries []*platz.QueryParams
}

func (f *fakePageSource) GetPage(_ context.Context, _ string, query *platz.QueryParams) ([]byte, error) {
	f.queries = append(f.queries, query)

	raw, _ := query.Get("page")

	page, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("bad page %q: %w", raw, err)
	}

	if page == f.failAt {
		return nil, errPageFailed
	}

	reported := page
	if page == f.stallAt {
		reported = page - 1
	}

	items := []testItem{}

	for i := (page - 1) * f.perPage; i < page*f.perPage && i < f.total; i++ {
		items = append(items, testItem{N: i})
	}

	return json.Marshal(map[string]interface{}{
		"page":      reported,
		"per_page":  f.perPage,
		"num_total": f.total,
		"items":     items,
	})
}

func TestCollectAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		total         int
		perPage       int
		expectedPages int
	}{
		{name: "empty", total: 0, perPage: 10, expectedPages: 1},
		{name: "single page", total: 3, perPage: 10, expectedPages: 1},
		{name: "exact multiple", total: 20, perPage: 10, expectedPages: 2},
		{name: "partial last page", total: 21, perPage: 10, expectedPages: 3},
		{name: "one per page", total: 5, perPage: 1, expectedPages: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &fakePageSource{total: tt.total, perPage: tt.perPage}

			items, err := platz.CollectAll[testItem](context.Background(), src, "/api/v2/things", nil)
			require.NoError(t, err)
			require.NotNil(t, items)
			assert.Len(t, items, tt.total)
			assert.Len(t, src.queries, tt.expectedPages)

			for i, item := range items {
				assert.Equal(t, i, item.N)
			}
		})
	}
}

func TestCollectAll_PreservesQuery(t *testing.T) {
	t.Parallel()

	src := &fakePageSource{total: 3, perPage: 2}
	query := platz.NewQueryParams().Set("name", "web").Set("page", "7")

	_, err := platz.CollectAll[testItem](context.Background(), src, "/api/v2/things", query)
	require.NoError(t, err)
	require.Len(t, src.queries, 2)

	for i, q := range src.queries {
		name, _ := q.Get("name")
		page, _ := q.Get("page")
		assert.Equal(t, "web", name)
		assert.Equal(t, strconv.Itoa(i+1), page)
	}

	original, _ := query.Get("page")
	assert.Equal(t, "7", original, "caller query must not be mutated")
}

func TestCollectAll_PageFailureDiscardsItems(t *testing.T) {
	t.Parallel()

	src := &fakePageSource{total: 10, perPage: 2, failAt: 3}

	items, err := platz.CollectAll[testItem](context.Background(), src, "/api/v2/things", nil)
	require.ErrorIs(t, err, errPageFailed)
	assert.Nil(t, items)
	assert.Len(t, src.queries, 3)
}

func TestCollectAll_DecodeError(t *testing.T) {
	t.Parallel()

	src := pageSourceFunc(func(context.Context, string, *platz.QueryParams) ([]byte, error) {
		return []byte(`{"page":"one"}`), nil
	})

	_, err := platz.CollectAll[testItem](context.Background(), src, "/api/v2/things", nil)

	var decodeErr *platz.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, platz.KindDecode, platz.KindOf(err))
}

func TestCollectAll_Guards(t *testing.T) {
	t.Parallel()

	t.Run("zero per_page with items remaining", func(t *testing.T) {
		t.Parallel()

		src := pageSourceFunc(func(context.Context, string, *platz.QueryParams) ([]byte, error) {
			return []byte(`{"page":1,"per_page":0,"num_total":5,"items":[]}`), nil
		})

		_, err := platz.CollectAll[testItem](context.Background(), src, "/api/v2/things", nil)
		require.ErrorIs(t, err, platz.ErrInvalidPageSize)
		assert.Equal(t, platz.KindPagination, platz.KindOf(err))
	})

	t.Run("server does not advance", func(t *testing.T) {
		t.Parallel()

		src := &fakePageSource{total: 10, perPage: 2, stallAt: 2}

		_, err := platz.CollectAll[testItem](context.Background(), src, "/api/v2/things", nil)
		require.ErrorIs(t, err, platz.ErrPaginationStalled)
		assert.Len(t, src.queries, 2)
	})
}

func TestCollectExactlyOne(t *testing.T) {
	t.Parallel()

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		_, err := platz.CollectExactlyOne[testItem](context.Background(), &fakePageSource{perPage: 5}, "/api/v2/things", nil)
		require.ErrorIs(t, err, platz.ErrExpectedOneGotNone)
		assert.Equal(t, platz.KindZeroResults, platz.KindOf(err))
	})

	t.Run("one", func(t *testing.T) {
		t.Parallel()

		item, err := platz.CollectExactlyOne[testItem](context.Background(), &fakePageSource{total: 1, perPage: 5}, "/api/v2/things", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, item.N)
	})

	t.Run("many across pages", func(t *testing.T) {
		t.Parallel()

		_, err := platz.CollectExactlyOne[testItem](context.Background(), &fakePageSource{total: 7, perPage: 3}, "/api/v2/things", nil)

		var many *platz.ExpectedOneGotManyError
		require.ErrorAs(t, err, &many)
		assert.Equal(t, 7, many.Count)
		assert.Equal(t, platz.KindMultipleResults, platz.KindOf(err))
	})
}

func TestPages_Restartable(t *testing.T) {
	t.Parallel()

	src := &fakePageSource{total: 5, perPage: 2}
	seq := platz.Pages[testItem](context.Background(), src, "/api/v2/things", nil)

	for run := 0; run < 2; run++ {
		var numbers []int64

		for page, err := range seq {
			require.NoError(t, err)

			numbers = append(numbers, page.Page)
		}

		assert.Equal(t, []int64{1, 2, 3}, numbers)
	}

	assert.Len(t, src.queries, 6)
}

func TestPages_EarlyBreak(t *testing.T) {
	t.Parallel()

	src := &fakePageSource{total: 100, perPage: 10}

	for page, err := range platz.Pages[testItem](context.Background(), src, "/api/v2/things", nil) {
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Page)

		break
	}

	assert.Len(t, src.queries, 1, "no page is fetched ahead of the consumer")
}

func TestItems(t *testing.T) {
	t.Parallel()

	src := &fakePageSource{total: 5, perPage: 2}

	var got []int

	for item, err := range platz.Items[testItem](context.Background(), src, "/api/v2/things", nil) {
		require.NoError(t, err)

		got = append(got, item.N)
		if len(got) == 3 {
			break
		}
	}

	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Len(t, src.queries, 2)
}

func TestPage_HasMore(t *testing.T) {
	t.Parallel()

	assert.True(t, (&platz.Page[testItem]{Page: 1, PerPage: 10, NumTotal: 11}).HasMore())
	assert.False(t, (&platz.Page[testItem]{Page: 2, PerPage: 10, NumTotal: 20}).HasMore())
	assert.False(t, (&platz.Page[testItem]{Page: 1, PerPage: 10, NumTotal: 0}).HasMore())
}

type pageSourceFunc func(ctx context.Context, path string, query *platz.QueryParams) ([]byte, error)

func (f pageSourceFunc) GetPage(ctx context.Context, path string, query *platz.QueryParams) ([]byte, error) {
	return f(ctx, path, query)
}
