package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/pkg/platz"
)

// CredentialStore supplies the credentials attached to every request.
type CredentialStore interface {
	Credentials(ctx context.Context) (*platz.Credentials, error)
}

// Client is the authenticated HTTP pipeline: it builds requests from the
// current credentials and sends each one exactly once.
type Client struct {
	store        CredentialStore
	httpClient   *retryablehttp.Client
	timeout      time.Duration
	userAgent    string
	logger       platz.Logger
	debug        bool
	pageSize     int
	interceptors *platz.InterceptorChain
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger platz.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			clone := *httpClient
			c.httpClient.HTTPClient = &clone
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithPageSize sets the page_size sent on every page request.
func WithPageSize(pageSize int) Option {
	return func(c *Client) {
		c.pageSize = pageSize
	}
}

// WithInterceptors sets the interceptor chain.
func WithInterceptors(chain *platz.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// DefaultUserAgent returns platz-go/<version>/<binary>.
func DefaultUserAgent() string {
	binary := "unknown"
	if len(os.Args) > 0 && os.Args[0] != "" {
		binary = filepath.Base(os.Args[0])
	}

	return fmt.Sprintf("platz-go/%s/%s", constants.Version, binary)
}

// NewClient creates a new HTTP client.
func NewClient(store CredentialStore, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		store:      store,
		httpClient: retryClient,
		timeout:    constants.DefaultHTTPTimeout,
		userAgent:  DefaultUserAgent(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient.HTTPClient.Timeout == 0 {
		client.httpClient.HTTPClient.Timeout = client.timeout
	}

	return client
}

// noRetry stops retryablehttp after the first attempt whatever the outcome.
func noRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// Build creates a request from the current credentials. Nothing is sent.
func (c *Client) Build(ctx context.Context, method, path string, query *platz.QueryParams, body interface{}) (*platz.Request, error) {
	creds, err := c.store.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	target, err := joinURL(creds.ServerURL(), path, query)
	if err != nil {
		return nil, err
	}

	headers := make(http.Header)
	name, value := creds.AuthorizationHeader()
	headers.Set(name, value)
	headers.Set("User-Agent", c.userAgent)
	headers.Set("Accept", constants.ContentTypeJSON)

	var data []byte

	if body != nil {
		data, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		headers.Set("Content-Type", constants.ContentTypeJSON)
	}

	return &platz.Request{
		Method:   method,
		Path:     path,
		URL:      target,
		Headers:  headers,
		Body:     data,
		Metadata: make(map[string]interface{}),
	}, nil
}

// joinURL resolves path against base. Query keys already present in path are
// kept unless query overrides them.
func joinURL(base *url.URL, path string, query *platz.QueryParams) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, &platz.URLJoinError{Path: path, Err: err}
	}

	target := base.ResolveReference(ref)

	if query.Len() == 0 {
		return target, nil
	}

	merged := platz.NewQueryParams()

	embedded := target.Query()
	keys := make([]string, 0, len(embedded))

	for key := range embedded {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		merged.Set(key, embedded.Get(key))
	}

	target.RawQuery = merged.Merge(query).Encode()

	return target, nil
}

// Send performs a single attempt. Non-2xx statuses return the response along
// with an *platz.HTTPError.
func (c *Client) Send(ctx context.Context, req *platz.Request) (*platz.Response, error) {
	err := c.interceptors.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL.String(),
		})
	}

	resp, err := c.roundTrip(ctx, req)
	if resp == nil {
		resp = &platz.Response{}
	}

	resp.Error = err

	if c.debug && c.logger != nil {
		fields := map[string]interface{}{
			"status": resp.StatusCode,
			"method": req.Method,
			"url":    req.URL.String(),
		}
		if err != nil {
			fields["error"] = err.Error()
		}

		c.logger.Debug("HTTP Response", fields)
	}

	interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err == nil && interceptErr != nil {
		err = interceptErr
	}

	if resp.StatusCode == 0 {
		return nil, err
	}

	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, req *platz.Request) (*platz.Response, error) {
	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL.String(), body)
	if err != nil {
		return nil, &platz.TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	httpReq.Header = req.Headers.Clone()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &platz.TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	data, readErr := io.ReadAll(httpResp.Body)

	resp := &platz.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		httpErr := &platz.HTTPError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: httpResp.StatusCode,
		}
		if readErr == nil {
			httpErr.Body = string(data)
			resp.Body = data
		}

		return resp, httpErr
	}

	if readErr != nil {
		return resp, &platz.TransportError{Method: req.Method, URL: req.URL.String(), Err: fmt.Errorf("reading response body: %w", readErr)}
	}

	resp.Body = data

	return resp, nil
}

// Do builds and sends a request.
func (c *Client) Do(ctx context.Context, method, path string, query *platz.QueryParams, body interface{}) (*platz.Response, error) {
	req, err := c.Build(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	return c.Send(ctx, req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query *platz.QueryParams) (*platz.Response, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*platz.Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*platz.Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body)
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*platz.Response, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*platz.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// GetPage implements platz.PageSource. The configured page size is added
// unless the query already carries one.
func (c *Client) GetPage(ctx context.Context, path string, query *platz.QueryParams) ([]byte, error) {
	pageQuery := query.Clone()
	if _, ok := pageQuery.Get(constants.QueryPageSize); !ok && c.pageSize > 0 {
		pageQuery.SetInt(constants.QueryPageSize, c.pageSize)
	}

	resp, err := c.Get(ctx, path, pageQuery)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}
