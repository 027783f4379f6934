package we

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

type ExporterSettings struct {
	HoneycombTeam    string
	HoneycombDataset string
	JaegerEndpoint   string
}

// NewExporter returns nil for "none" so callers can skip installing a
// tracer provider.
func NewExporter(ctx context.Context, name string, settings ExporterSettings) (trace.SpanExporter, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "console":
		return ConsoleExporter()
	case "honeycomb":
		return HoneycombExporter(ctx, settings.HoneycombTeam, settings.HoneycombDataset)
	case "jaeger":
		return JaegerExporter(settings.JaegerEndpoint)
	default:
		return nil, fmt.Errorf("unknown trace exporter %s", name)
	}
}

func ConsoleExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func HoneycombExporter(ctx context.Context, team string, dataset string) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint("api.honeycomb.io:443"),
		otlptracegrpc.WithHeaders(map[string]string{
			"x-honeycomb-team":    team,
			"x-honeycomb-dataset": dataset,
		}),
		otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")),
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

func JaegerExporter(endpoint string) (*jaeger.Exporter, error) {
	if endpoint == "" {
		endpoint = "http://localhost:14268/api/traces"
	}

	return jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
}
