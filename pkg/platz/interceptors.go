package platz

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestInterceptor is called after a request is built and before it is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received, or after the
// transport failed (resp.Error is then set).
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// Merge appends the interceptors of other to the chain.
func (c *InterceptorChain) Merge(other *InterceptorChain) {
	if other == nil {
		return
	}

	c.requestInterceptors = append(c.requestInterceptors, other.requestInterceptors...)
	c.responseInterceptors = append(c.responseInterceptors, other.responseInterceptors...)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common Interceptors

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor adds custom headers to requests. Credential headers set by
// the request builder are never overwritten.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			if req.Headers.Get(key) != "" && isCredentialHeader(key) {
				continue
			}

			req.Headers.Set(key, value)
		}

		return nil
	}
}

func isCredentialHeader(key string) bool {
	canonical := http.CanonicalHeaderKey(key)

	return canonical == "Authorization" || canonical == "X-Platz-Token"
}

const metricsStartKey = "start_time"

// Metrics holds the Prometheus collectors fed by the metrics interceptors.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates request collectors and registers them on reg when reg is non-nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "platz",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of Platz API requests by method and status",
			},
			[]string{"method", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "platz",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Latency of Platz API requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	if reg == nil {
		return metrics, nil
	}

	for _, collector := range []prometheus.Collector{metrics.Requests, metrics.Duration} {
		err := reg.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("registering client metrics: %w", err)
		}
	}

	return metrics, nil
}

// MetricsRequestInterceptor records request start time.
func MetricsRequestInterceptor(metrics *Metrics) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metricsStartKey] = time.Now()

		return nil
	}
}

// MetricsResponseInterceptor records response metrics.
func MetricsResponseInterceptor(metrics *Metrics) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		status := "error"
		if resp.Error == nil {
			status = strconv.Itoa(resp.StatusCode)
		}

		metrics.Requests.WithLabelValues(req.Method, status).Inc()

		if startTime, ok := req.Metadata[metricsStartKey].(time.Time); ok {
			metrics.Duration.WithLabelValues(req.Method).Observe(time.Since(startTime).Seconds())
		}

		return nil
	}
}
