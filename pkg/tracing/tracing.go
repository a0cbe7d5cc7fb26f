package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/getmentor/persons-api/config"
	"github.com/getmentor/persons-api/pkg/logger"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/getmentor/persons-api"

// tracer delegates to the global provider, which is a no-op until InitTracer
// installs the SDK provider
var tracer = otel.Tracer(instrumentationName)

// InitTracer installs an OTLP/HTTP tracer provider. An empty exporter
// endpoint disables export and returns a no-op shutdown.
func InitTracer(svc config.ObservabilityConfig, environment string) (func(context.Context) error, error) {
	if svc.ExporterEndpoint == "" {
		logger.Info("Tracing disabled: O11Y_EXPORTER_ENDPOINT not set")
		return func(context.Context) error { return nil }, nil
	}

	logger.Info("Initializing OpenTelemetry tracer",
		zap.String("namespace", svc.ServiceNamespace),
		zap.String("version", svc.ServiceVersion),
		zap.String("environment", environment),
		zap.String("endpoint", svc.ExporterEndpoint))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(svc.ExporterEndpoint),
		otlptracehttp.WithInsecure(), // collector runs on the internal network
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(svc, environment)...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Export failures must not block request handling
	bsp := sdktrace.NewBatchSpanProcessor(exporter,
		sdktrace.WithBatchTimeout(2*time.Second),
		sdktrace.WithExportTimeout(5*time.Second),
		sdktrace.WithMaxQueueSize(2048),
		sdktrace.WithMaxExportBatchSize(512),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bsp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry tracer initialized successfully")

	return tp.Shutdown, nil
}

func resourceAttributes(svc config.ObservabilityConfig, environment string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(svc.ServiceName),
		semconv.ServiceNamespace(svc.ServiceNamespace),
		semconv.ServiceVersion(svc.ServiceVersion),
		attribute.String("deployment.environment.name", environment),
	}
	if svc.ServiceInstanceID != "" {
		attrs = append(attrs, semconv.ServiceInstanceID(svc.ServiceInstanceID))
	}
	return attrs
}

// StartSpan starts a child span of whatever span ctx carries
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tracer.Start(ctx, spanName, opts...)
}

// StartOperation starts a span for a service operation and tags it with the
// operation name. The returned finish func records err on the span and ends it.
func StartOperation(ctx context.Context, component, operation string) (context.Context, func(err error)) {
	ctx, span := StartSpan(ctx, component+"."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("app.component", component),
			attribute.String("app.operation", operation),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
