package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"adrecon/internal/infrastructure"
)

// OTelMiddleware traces and measures HTTP requests
type OTelMiddleware struct {
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewOTelMiddleware creates the middleware from initialized providers and
// the shared instrument set.
func NewOTelMiddleware(providers *infrastructure.OTelProviders, metrics *infrastructure.BusinessMetrics) *OTelMiddleware {
	return &OTelMiddleware{
		tracer:  providers.Tracer,
		metrics: metrics,
		logger:  providers.Logger,
	}
}

// Handler returns the middleware handler function
func (m *OTelMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := m.tracer.Start(ctx, fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.URLPath(r.URL.Path),
				semconv.ServerAddressKey.String(r.Host),
				semconv.UserAgentOriginalKey.String(r.UserAgent()),
				semconv.HTTPRequestBodySizeKey.Int64(r.ContentLength),
				semconv.ClientAddressKey.String(GetRealIP(r)),
			),
		)
		defer span.End()

		if span.SpanContext().IsValid() {
			ctx = infrastructure.WithTraceID(ctx, span.SpanContext().TraceID().String())
		}
		r = r.WithContext(ctx)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		if m.metrics != nil {
			m.metrics.HTTPActiveRequests.Add(ctx, 1)
			defer m.metrics.HTTPActiveRequests.Add(ctx, -1)
		}

		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		statusCode := ww.Status()
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		route := getRoutePattern(r)

		if m.metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("route", route),
				attribute.Int("status_code", statusCode),
			)
			m.metrics.HTTPRequestsTotal.Add(ctx, 1, attrs)
			m.metrics.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
		}

		span.SetName(fmt.Sprintf("%s %s", r.Method, route))
		span.SetAttributes(
			semconv.HTTPRouteKey.String(route),
			semconv.HTTPResponseStatusCodeKey.Int(statusCode),
			semconv.HTTPResponseBodySizeKey.Int(ww.BytesWritten()),
		)
		if statusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(statusCode))
		}
	})
}

// getRoutePattern extracts the route pattern from request context
func getRoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return r.URL.Path
}

// GetRealIP extracts the real IP address from the request
func GetRealIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
