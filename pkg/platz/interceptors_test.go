package platz_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platzio/platz-go/pkg/platz"
)

var errAbort = errors.New("abort")

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) {
	l.messages = append(l.messages, "debug:"+msg)
}

func (l *recordingLogger) Info(msg string, _ map[string]interface{}) {
	l.messages = append(l.messages, "info:"+msg)
}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.messages = append(l.messages, "warn:"+msg)
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) {
	l.messages = append(l.messages, "error:"+msg)
}

func TestInterceptorChain_Order(t *testing.T) {
	t.Parallel()

	var order []string

	chain := platz.NewInterceptorChain()
	chain.AddRequestInterceptor(func(context.Context, *platz.Request) error {
		order = append(order, "first")

		return nil
	})

	other := platz.NewInterceptorChain()
	other.AddRequestInterceptor(func(context.Context, *platz.Request) error {
		order = append(order, "merged")

		return nil
	})
	other.AddResponseInterceptor(func(context.Context, *platz.Request, *platz.Response) error {
		order = append(order, "response")

		return nil
	})

	chain.Merge(other)
	chain.Merge(nil)

	req := &platz.Request{Method: http.MethodGet, Path: "/api/v2/users"}

	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), req))
	require.NoError(t, chain.ExecuteResponseInterceptors(context.Background(), req, &platz.Response{StatusCode: 200}))
	assert.Equal(t, []string{"first", "merged", "response"}, order)
}

func TestInterceptorChain_Abort(t *testing.T) {
	t.Parallel()

	called := false

	chain := platz.NewInterceptorChain()
	chain.AddRequestInterceptor(func(context.Context, *platz.Request) error { return errAbort })
	chain.AddRequestInterceptor(func(context.Context, *platz.Request) error {
		called = true

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &platz.Request{})
	require.ErrorIs(t, err, errAbort)
	assert.False(t, called)

	var nilChain *platz.InterceptorChain
	assert.NoError(t, nilChain.ExecuteRequestInterceptors(context.Background(), &platz.Request{}))
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	req := &platz.Request{Headers: http.Header{}}
	req.Headers.Set("Authorization", "Bearer real")
	req.Headers.Set("x-platz-token", "real-token")

	interceptor := platz.HeaderInterceptor(map[string]string{
		"Authorization": "Bearer spoofed",
		"X-Platz-Token": "spoofed",
		"X-Request-Id":  "abc",
	})

	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "Bearer real", req.Headers.Get("Authorization"))
	assert.Equal(t, "real-token", req.Headers.Get("x-platz-token"))
	assert.Equal(t, "abc", req.Headers.Get("X-Request-Id"))

	empty := &platz.Request{}
	require.NoError(t, interceptor(context.Background(), empty))
	assert.Equal(t, "abc", empty.Headers.Get("X-Request-Id"))
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	req := &platz.Request{Method: http.MethodGet, Path: "/api/v2/envs"}

	require.NoError(t, platz.LoggingInterceptor(logger)(context.Background(), req))
	require.NoError(t, platz.LoggingResponseInterceptor(logger)(context.Background(), req, &platz.Response{StatusCode: 200}))
	require.NoError(t, platz.LoggingResponseInterceptor(logger)(context.Background(), req, &platz.Response{Error: errAbort}))

	assert.Equal(t, []string{"debug:API Request", "debug:API Response", "error:API Response Error"}, logger.messages)
}

func TestMetricsInterceptors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewPedanticRegistry()

	metrics, err := platz.NewMetrics(reg)
	require.NoError(t, err)

	req := &platz.Request{Method: http.MethodGet, Path: "/api/v2/users"}

	for _, resp := range []*platz.Response{{StatusCode: 200}, {StatusCode: 200}, {StatusCode: 404}, {Error: errAbort}} {
		require.NoError(t, platz.MetricsRequestInterceptor(metrics)(context.Background(), req))
		require.NoError(t, platz.MetricsResponseInterceptor(metrics)(context.Background(), req, resp))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.Requests.WithLabelValues("GET", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Requests.WithLabelValues("GET", "404")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Requests.WithLabelValues("GET", "error")), 0)

	expected := `
# HELP platz_client_requests_total Total number of Platz API requests by method and status
# TYPE platz_client_requests_total counter
platz_client_requests_total{method="GET",status="200"} 2
platz_client_requests_total{method="GET",status="404"} 1
platz_client_requests_total{method="GET",status="error"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "platz_client_requests_total"))

	count, err := testutil.GatherAndCount(reg, "platz_client_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = platz.NewMetrics(reg)
	require.Error(t, err, "registering twice fails")
}
