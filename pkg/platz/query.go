package platz

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// QueryParams is an ordered set of query parameters with unique keys.
// Setting an existing key replaces its value in place.
type QueryParams struct {
	keys   []string
	values map[string]string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{values: make(map[string]string)}
}

// Set assigns value to key; the last assignment wins.
func (q *QueryParams) Set(key, value string) *QueryParams {
	if q.values == nil {
		q.values = make(map[string]string)
	}

	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}

	q.values[key] = value

	return q
}

// SetOptional assigns value only when it is non-nil.
func (q *QueryParams) SetOptional(key string, value *string) *QueryParams {
	if value != nil {
		q.Set(key, *value)
	}

	return q
}

// SetBool assigns a boolean value only when it is non-nil.
func (q *QueryParams) SetBool(key string, value *bool) *QueryParams {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}

	return q
}

// SetUUID assigns an identifier only when it is non-nil.
func (q *QueryParams) SetUUID(key string, value *uuid.UUID) *QueryParams {
	if value != nil {
		q.Set(key, value.String())
	}

	return q
}

// SetTime assigns an RFC 3339 UTC timestamp only when it is non-nil.
func (q *QueryParams) SetTime(key string, value *time.Time) *QueryParams {
	if value != nil {
		q.Set(key, value.UTC().Format(time.RFC3339Nano))
	}

	return q
}

// SetInt assigns an integer value.
func (q *QueryParams) SetInt(key string, value int) *QueryParams {
	return q.Set(key, strconv.Itoa(value))
}

// Merge copies every pair from other, overriding existing keys.
func (q *QueryParams) Merge(other *QueryParams) *QueryParams {
	if other == nil {
		return q
	}

	for _, key := range other.keys {
		q.Set(key, other.values[key])
	}

	return q
}

// Get returns the value for key.
func (q *QueryParams) Get(key string) (string, bool) {
	if q == nil {
		return "", false
	}

	value, ok := q.values[key]

	return value, ok
}

// Keys returns keys in first-assignment order.
func (q *QueryParams) Keys() []string {
	if q == nil {
		return nil
	}

	return append([]string(nil), q.keys...)
}

// Len returns the number of keys.
func (q *QueryParams) Len() int {
	if q == nil {
		return 0
	}

	return len(q.keys)
}

// Clone returns an independent copy. A nil receiver yields empty parameters.
func (q *QueryParams) Clone() *QueryParams {
	return NewQueryParams().Merge(q)
}

// ToValues converts the parameters to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}

	for _, key := range q.keys {
		values.Set(key, q.values[key])
	}

	return values
}

// Encode renders the parameters as a query string, keys in first-assignment order.
func (q *QueryParams) Encode() string {
	if q.Len() == 0 {
		return ""
	}

	out := make([]byte, 0, len(q.keys)*16)

	for i, key := range q.keys {
		if i > 0 {
			out = append(out, '&')
		}

		out = append(out, url.QueryEscape(key)...)
		out = append(out, '=')
		out = append(out, url.QueryEscape(q.values[key])...)
	}

	return string(out)
}
