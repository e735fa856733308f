package tracing

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
)

const traceScope = "eva"

type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider exporting spans over OTLP/HTTP.
// With an empty endpoint no exporter is installed and spans are dropped.
func Setup(ctx context.Context, endpoint, apiKey, project string) (ShutdownFunc, error) {
	if endpoint == "" {
		log.Printf("[INFO] Tracing endpoint not configured, spans will not be exported")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithHeaders(map[string]string{"x-api-key": apiKey}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName("eva"),
			attribute.String("eva.project", project),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	log.Printf("[INFO] Tracing initialized with endpoint %s", endpoint)
	return provider.Shutdown, nil
}

func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(traceScope).Start(ctx, name, trace.WithAttributes(attrs...))
}

// End records err on the span (if any) and ends it.
func End(span trace.Span, err error) {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, codes.Ok.String())
}

func AgentAttrs(agentName, sessionID string, temperature float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		semconv.GenAIAgentName(agentName),
		semconv.GenAIConversationID(sessionID),
		semconv.GenAIRequestTemperature(temperature),
	}
}

func ToolAttrs(toolName string) []attribute.KeyValue {
	return []attribute.KeyValue{semconv.GenAIToolName(toolName)}
}
