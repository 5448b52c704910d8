package platz

import (
	"context"
	"net/http"
	"net/url"
)

// Request is a fully built outbound request. It is created fresh for every
// attempt and every page so that rotated credentials are always current.
type Request struct {
	Method   string
	Path     string
	URL      *url.URL
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response is a received response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// Requester performs authenticated calls against the Platz API.
type Requester interface {
	PageSource
	Do(ctx context.Context, method, path string, query *QueryParams, body interface{}) (*Response, error)
}

// Get performs a GET and decodes the body into T.
func Get[T any](ctx context.Context, r Requester, path string, query *QueryParams) (T, error) {
	var zero T

	resp, err := r.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return zero, err
	}

	return Decode[T](resp.Body)
}

// Send performs a request with a JSON body and decodes the response into T.
func Send[T any](ctx context.Context, r Requester, method, path string, body interface{}) (T, error) {
	var zero T

	resp, err := r.Do(ctx, method, path, nil, body)
	if err != nil {
		return zero, err
	}

	return Decode[T](resp.Body)
}

// SendNoResponse performs a request and discards the response body.
func SendNoResponse(ctx context.Context, r Requester, method, path string, body interface{}) error {
	_, err := r.Do(ctx, method, path, nil, body)

	return err
}
