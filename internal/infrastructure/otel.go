package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"sheetcli/internal/config"
)

// MeterName is the instrumentation scope of every tracer and meter.
const MeterName = "sheetcli"

// OTelConfig holds OpenTelemetry configuration. An empty TraceFile disables
// tracing; an empty MetricsFile disables metrics.
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceFile      string
	MetricsFile    string
	SampleRatio    float64
}

// OTelConfigFrom maps the telemetry section of the application config.
func OTelConfigFrom(cfg config.TelemetryConfig, version string) *OTelConfig {
	return &OTelConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Environment,
		TraceFile:      cfg.TraceFile,
		MetricsFile:    cfg.MetricsFile,
		SampleRatio:    cfg.SampleRate,
	}
}

// OTelProviders holds the OpenTelemetry providers. Tracer and Meter are
// always usable; they are no-ops when the signal is disabled.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prom.Registry
	Logger         *slog.Logger

	traceFile   *os.File
	metricsFile string
}

// InitializeOTel sets up tracing and metrics as configured.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = &OTelConfig{ServiceName: MeterName}
	}
	ctx := context.Background()

	providers := &OTelProviders{
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
		Logger: logger,
	}
	if cfg.TraceFile == "" && cfg.MetricsFile == "" {
		return providers, nil
	}

	res := createResource(cfg)

	if cfg.TraceFile != "" {
		if err := initializeTracing(cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}
	if cfg.MetricsFile != "" {
		if err := initializeMetrics(cfg, res, providers); err != nil {
			providers.Shutdown(ctx)
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	logger.DebugContext(ctx, "telemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("trace_file", cfg.TraceFile),
		slog.String("metrics_file", cfg.MetricsFile))
	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) *resource.Resource {
	hostname, _ := os.Hostname()
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", fmt.Sprintf("%s-%d", hostname, os.Getpid())),
	)
}

// initializeTracing exports spans as JSON lines to the trace file
func initializeTracing(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	providers.traceFile = f
	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	return nil
}

// initializeMetrics collects metrics into a private Prometheus registry that
// Shutdown writes out in the node_exporter textfile format.
func initializeMetrics(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := prom.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	providers.metricsFile = cfg.MetricsFile
	return nil
}

// Shutdown writes the metrics file, flushes pending spans and closes the
// trace file.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.Registry != nil && p.metricsFile != "" {
		if err := os.MkdirAll(filepath.Dir(p.metricsFile), 0755); err != nil {
			errs = append(errs, err)
		} else if err := prom.WriteToTextfile(p.metricsFile, p.Registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.traceFile != nil {
		if err := p.traceFile.Close(); err != nil {
			errs = append(errs, err)
		}
		p.traceFile = nil
	}

	return errors.Join(errs...)
}

// ToolMetrics holds the per-run instruments shared by all tools
type ToolMetrics struct {
	FilesProcessed     metric.Int64Counter
	RowsProcessed      metric.Int64Counter
	LookupsMatched     metric.Int64Counter
	LookupsMissed      metric.Int64Counter
	ConversionWarnings metric.Int64Counter
	FileDuration       metric.Float64Histogram
}

// NewToolMetrics creates the tool instruments on meter
func NewToolMetrics(meter metric.Meter) (*ToolMetrics, error) {
	var (
		m   ToolMetrics
		err error
	)
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.FilesProcessed, "sheetcli_files_processed", "Files processed, by tool and status"},
		{&m.RowsProcessed, "sheetcli_rows_processed", "Data rows read from input sheets"},
		{&m.LookupsMatched, "sheetcli_lookups_matched", "Cells whose key was found in a mapping"},
		{&m.LookupsMissed, "sheetcli_lookups_missed", "Cells whose key was not found in a mapping"},
		{&m.ConversionWarnings, "sheetcli_conversion_warnings", "Cells that could not be converted"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}

	m.FileDuration, err = meter.Float64Histogram(
		"sheetcli_file_duration_seconds",
		metric.WithDescription("Time spent on a single input file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordFile records the outcome of one input file
func (m *ToolMetrics) RecordFile(ctx context.Context, tool, status string, rows int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("tool", tool), attribute.String("status", status))
	m.FilesProcessed.Add(ctx, 1, attrs)
	m.RowsProcessed.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("tool", tool)))
	m.FileDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordLookup records lookup hits and misses
func (m *ToolMetrics) RecordLookup(ctx context.Context, tool string, matched, missed int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("tool", tool))
	m.LookupsMatched.Add(ctx, int64(matched), attrs)
	m.LookupsMissed.Add(ctx, int64(missed), attrs)
}

// RecordWarnings records conversion warnings
func (m *ToolMetrics) RecordWarnings(ctx context.Context, tool string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ConversionWarnings.Add(ctx, int64(n), metric.WithAttributes(attribute.String("tool", tool)))
}

// TraceIDFromContext extracts the OpenTelemetry trace ID for log correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attrs...)
	}
}
