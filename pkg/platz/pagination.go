package platz

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"strconv"

	"github.com/platzio/platz-go/internal/constants"
)

// PageSource fetches the raw body of one list request.
type PageSource interface {
	GetPage(ctx context.Context, path string, query *QueryParams) ([]byte, error)
}

// Page is the envelope of a paginated list response.
type Page[T any] struct {
	Page     int64 `json:"page"      yaml:"page"`
	PerPage  int64 `json:"per_page"  yaml:"per_page"`
	Items    []T   `json:"items"     yaml:"items"`
	NumTotal int64 `json:"num_total" yaml:"num_total"`
}

// HasMore reports whether items remain after this page.
func (p *Page[T]) HasMore() bool {
	return p.Page*p.PerPage < p.NumTotal
}

func (p *Page[T]) continuation() (bool, error) {
	if !p.HasMore() {
		return false, nil
	}

	if p.PerPage <= 0 {
		return false, fmt.Errorf("%w: per_page=%d num_total=%d", ErrInvalidPageSize, p.PerPage, p.NumTotal)
	}

	return true, nil
}

// Decode unmarshals a JSON body into T.
func Decode[T any](body []byte) (T, error) {
	var out T

	err := json.Unmarshal(body, &out)
	if err != nil {
		return out, &DecodeError{Target: reflect.TypeFor[T]().String(), Err: err}
	}

	return out, nil
}

// FetchPage fetches a single page. Only the page key of query is overridden.
func FetchPage[T any](ctx context.Context, src PageSource, path string, query *QueryParams, page int64) (*Page[T], error) {
	pageQuery := query.Clone().Set(constants.QueryPage, strconv.FormatInt(page, 10))

	body, err := src.GetPage(ctx, path, pageQuery)
	if err != nil {
		return nil, fmt.Errorf("fetching page %d of %s: %w", page, path, err)
	}

	envelope, err := Decode[Page[T]](body)
	if err != nil {
		return nil, fmt.Errorf("parsing page %d of %s: %w", page, path, err)
	}

	return &envelope, nil
}

// Pages returns a lazy sequence of pages starting at page 1. Every range over
// the sequence restarts from page 1; no cursor survives between runs. A fetch
// error is yielded once and ends the sequence.
func Pages[T any](ctx context.Context, src PageSource, path string, query *QueryParams) iter.Seq2[*Page[T], error] {
	return func(yield func(*Page[T], error) bool) {
		page, err := FetchPage[T](ctx, src, path, query, 1)
		if err != nil {
			yield(nil, err)

			return
		}

		for {
			if !yield(page, nil) {
				return
			}

			more, err := page.continuation()
			if err != nil {
				yield(nil, err)

				return
			}

			if !more {
				return
			}

			previous := page.Page

			page, err = FetchPage[T](ctx, src, path, query, previous+1)
			if err != nil {
				yield(nil, err)

				return
			}

			if page.Page <= previous {
				yield(nil, fmt.Errorf("%w: requested page %d, got %d", ErrPaginationStalled, previous+1, page.Page))

				return
			}
		}
	}
}

// Items flattens Pages into a sequence of items in page order.
func Items[T any](ctx context.Context, src PageSource, path string, query *QueryParams) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for page, err := range Pages[T](ctx, src, path, query) {
			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// CollectAll fetches every page and returns all items in page order. Any page
// failure discards the items collected so far.
func CollectAll[T any](ctx context.Context, src PageSource, path string, query *QueryParams) ([]T, error) {
	var items []T

	for page, err := range Pages[T](ctx, src, path, query) {
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

// CollectExactlyOne returns the single item matching query.
func CollectExactlyOne[T any](ctx context.Context, src PageSource, path string, query *QueryParams) (T, error) {
	var zero T

	items, err := CollectAll[T](ctx, src, path, query)
	if err != nil {
		return zero, err
	}

	switch len(items) {
	case 0:
		return zero, fmt.Errorf("%s: %w", path, ErrExpectedOneGotNone)
	case 1:
		return items[0], nil
	default:
		return zero, fmt.Errorf("%s: %w", path, &ExpectedOneGotManyError{Count: len(items)})
	}
}
