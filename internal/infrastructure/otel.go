package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"adrecon/internal/config"
)

const (
	// MeterName is the instrumentation scope for tracers and meters
	MeterName = "adrecon"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	MetricExporter string // "prometheus", "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers. Tracer and Meter are
// always usable; they fall back to no-op implementations when the
// corresponding signal is disabled.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Registry       *promclient.Registry
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    config.AppName,
		ServiceVersion: config.AppVersion,
		Environment:    env,
		TraceExporter:  "none",
		MetricExporter: "prometheus",
		EnableMetrics:  true,
		EnableTracing:  false,
		SampleRatio:    1.0,
	}
}

// OTelConfigFromTelemetry maps the telemetry section of the application
// config onto an OTelConfig.
func OTelConfigFromTelemetry(tc config.TelemetryConfig) *OTelConfig {
	cfg := DefaultOTelConfig()
	if tc.ServiceName != "" {
		cfg.ServiceName = tc.ServiceName
	}
	if tc.TraceStdout {
		cfg.EnableTracing = true
		cfg.TraceExporter = "stdout"
	}
	cfg.EnableMetrics = tc.MetricsEnabled
	if !tc.MetricsEnabled {
		cfg.MetricExporter = "none"
	}
	return cfg
}

// InitializeOTel initializes tracing and metrics
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = GetLogger()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := createResource(cfg)

	providers := &OTelProviders{
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
		Logger: logger,
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return nil
}

// initializeMetrics wires a Prometheus exporter to a registry owned by the
// providers so several providers can coexist in one process.
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)

		providers.Registry = registry
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
		otel.SetMeterProvider(mp)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))
	return nil
}

// BusinessMetrics holds the application instruments
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Reconciliation metrics
	ReconcileRequestsTotal metric.Int64Counter
	ReconcileDuration      metric.Float64Histogram
	ReconcileRowsEmitted   metric.Int64Counter
	ReconcileRowsDropped   metric.Int64Counter
	ReconcileUnmatched     metric.Int64Counter
	ReconcileErrors        metric.Int64Counter
	ReconcileInFlight      metric.Int64UpDownCounter
	UploadBytes            metric.Int64Histogram
}

// CreateBusinessMetrics creates application-specific metrics
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	var (
		m   BusinessMetrics
		err error
	)

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.ReconcileRequestsTotal, err = meter.Int64Counter(
		"reconcile_requests_total",
		metric.WithDescription("Total number of reconciliation runs"),
	); err != nil {
		return nil, err
	}
	if m.ReconcileDuration, err = meter.Float64Histogram(
		"reconcile_duration_seconds",
		metric.WithDescription("Reconciliation duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.ReconcileRowsEmitted, err = meter.Int64Counter(
		"reconcile_rows_emitted_total",
		metric.WithDescription("Report rows emitted"),
	); err != nil {
		return nil, err
	}
	if m.ReconcileRowsDropped, err = meter.Int64Counter(
		"reconcile_rows_dropped_total",
		metric.WithDescription("Aggregated rows dropped for an empty country or zero cost"),
	); err != nil {
		return nil, err
	}
	if m.ReconcileUnmatched, err = meter.Int64Counter(
		"reconcile_unmatched_countries_total",
		metric.WithDescription("Cost countries without a revenue row"),
	); err != nil {
		return nil, err
	}
	if m.ReconcileErrors, err = meter.Int64Counter(
		"reconcile_errors_total",
		metric.WithDescription("Failed reconciliations by error kind"),
	); err != nil {
		return nil, err
	}
	if m.ReconcileInFlight, err = meter.Int64UpDownCounter(
		"reconcile_in_flight",
		metric.WithDescription("Reconciliations currently running"),
	); err != nil {
		return nil, err
	}
	if m.UploadBytes, err = meter.Int64Histogram(
		"reconcile_upload_bytes",
		metric.WithDescription("Size of uploaded exports"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	if p.Logger != nil {
		p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	}
	return nil
}

func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from ctx
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// AddSpanEvent adds an event to the current span
func AddSpanEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(toAttributes(attributes)...))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || err == nil {
		return
	}
	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(toAttributes(attributes)...)
}

func toAttributes(attributes map[string]interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	return attrs
}

// ReconcileOutcome describes one finished reconciliation for metrics
type ReconcileOutcome struct {
	Format        string
	Duration      time.Duration
	RowsEmitted   int
	RowsDropped   int
	Unmatched     int
	UploadedBytes int64
	ErrorKind     string
}

// RecordReconcileMetrics records a finished reconciliation. An empty
// ErrorKind marks a success.
func RecordReconcileMetrics(ctx context.Context, metrics *BusinessMetrics, out ReconcileOutcome) {
	if metrics == nil {
		return
	}

	status := "success"
	if out.ErrorKind != "" {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("format", out.Format),
		attribute.String("status", status),
	)

	metrics.ReconcileRequestsTotal.Add(ctx, 1, attrs)
	metrics.ReconcileDuration.Record(ctx, out.Duration.Seconds(), attrs)
	if out.UploadedBytes > 0 {
		metrics.UploadBytes.Record(ctx, out.UploadedBytes)
	}

	if out.ErrorKind != "" {
		metrics.ReconcileErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("error.kind", out.ErrorKind)))
		return
	}

	metrics.ReconcileRowsEmitted.Add(ctx, int64(out.RowsEmitted))
	metrics.ReconcileRowsDropped.Add(ctx, int64(out.RowsDropped))
	metrics.ReconcileUnmatched.Add(ctx, int64(out.Unmatched))
}

// RecordReconcileInFlight adjusts the running reconciliation gauge
func RecordReconcileInFlight(ctx context.Context, metrics *BusinessMetrics, delta int64) {
	if metrics == nil {
		return
	}
	metrics.ReconcileInFlight.Add(ctx, delta)
}
