package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/getmentor/persons-api/pkg/logger"
	"github.com/getmentor/persons-api/pkg/metrics"
	"github.com/getmentor/persons-api/pkg/profiling"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// unmatchedRoute labels requests that did not match any route
const unmatchedRoute = "unmatched"

// redactedQueryParams never reach the request log
var redactedQueryParams = map[string]bool{
	"password": true, "token": true, "secret": true, "api_key": true,
}

// ObservabilityMiddleware records request metrics, tags profiles with the
// route and writes one log line per request
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		route := routeLabel(c)

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		profiling.WithRoute(c.Request.Context(), route, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})

		duration := metrics.MeasureDuration(start)
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, route, statusStr).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, statusStr).Inc()

		fields := requestFields(c)
		if status >= 400 {
			fields = append(fields, failureFields(c)...)
		}

		logger.LogHTTPRequest(method, c.Request.URL.Path, status, duration, fields...)
	}
}

// routeLabel is the matched route template, e.g. "/person/detail/:person_id".
// gin resolves the route before running the chain.
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

func requestFields(c *gin.Context) []zap.Field {
	fields := []zap.Field{
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Int("response_size", c.Writer.Size()),
	}
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}
	if c.Writer.Header().Get("Deprecation") != "" {
		fields = append(fields, zap.Bool("deprecated_route", true))
	}
	return fields
}

// failureFields adds path and query parameters plus attached errors
func failureFields(c *gin.Context) []zap.Field {
	var fields []zap.Field

	if len(c.Params) > 0 {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		fields = append(fields, zap.Any("route_params", params))
	}

	if query := c.Request.URL.Query(); len(query) > 0 {
		kept := make(map[string]string, len(query))
		for k, v := range query {
			if !redactedQueryParams[strings.ToLower(k)] && len(v) > 0 {
				kept[k] = v[0]
			}
		}
		if len(kept) > 0 {
			fields = append(fields, zap.Any("query_params", kept))
		}
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}

	return fields
}
