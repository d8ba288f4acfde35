package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// durationBuckets are the latency boundaries, in seconds, for ledger requests.
var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// HTTPMetricsMiddleware returns a Gin middleware recording request count, latency and
// in-flight requests of the ledger API.
//
// Requests are labeled by method, matched route, the ledger resource the route belongs to
// (transactions, accounts, cards, budgets, recurring, system) and status class. Route
// patterns keep cardinality bounded: ids and bill months never become label values.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requests, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of ledger API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return passThrough
	}
	duration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("Ledger API request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return passThrough
	}
	inFlight, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_http_requests_in_flight", namespace),
		metric.WithDescription("Ledger API requests currently being served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return passThrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		route := routeLabel(c.FullPath())
		resource := attribute.String("resource", resourceOf(route))

		inFlight.Add(ctx, 1, metric.WithAttributes(resource))
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		inFlight.Add(ctx, -1, metric.WithAttributes(resource))

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
			resource,
			attribute.String("status_class", statusClass(c.Writer.Status())),
		)
		requests.Add(ctx, 1, attrs)
		duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}

// routeLabel returns the matched route pattern, or "unmatched" for requests no route
// served.
func routeLabel(fullPath string) string {
	if fullPath == "" {
		return "unmatched"
	}
	return fullPath
}

// resourceOf maps a route pattern to the ledger resource it serves. Routes outside /v1
// are the health endpoints.
func resourceOf(route string) string {
	rest, ok := strings.CutPrefix(route, "/v1/")
	if !ok {
		if route == "unmatched" {
			return route
		}
		return "system"
	}
	resource, _, _ := strings.Cut(rest, "/")
	return resource
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return fmt.Sprintf("%dxx", status/100)
}
