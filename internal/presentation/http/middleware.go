package httppresentation

import (
	"strconv"
	"time"

	"github.com/cartella-shop/fulfillment/internal/pkg/logging"
	"github.com/cartella-shop/fulfillment/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const headerRequestID = "X-Request-ID"

// ObservabilityMiddleware wires each request with:
//   - W3C trace context extraction and a server span named by route template
//   - X-Request-ID generation + echo
//   - a request-scoped logger carrying request/trace ids
//   - RED-ish HTTP metrics with low-cardinality route labels
//   - a single access log line after the handler completes
func ObservabilityMiddleware(base *zap.Logger) gin.HandlerFunc {
	tracer := otel.Tracer("fulfillment.http")
	prop := otel.GetTextMapPropagator()

	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		ctx := prop.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", c.Request.URL.Path),
			),
		)
		defer span.End()

		rid := c.GetHeader(headerRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(headerRequestID, rid)

		fields := []zap.Field{zap.String("request_id", rid)}
		if sc := span.SpanContext(); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
		reqLogger := base.With(fields...)

		c.Request = c.Request.WithContext(logging.ContextWithLogger(ctx, reqLogger))
		c.Next()

		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())

		reqLogger.Info("http_access",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
		)
	}
}
