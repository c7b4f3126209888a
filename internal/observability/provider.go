package observability

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names the span sink behind the tracer provider.
type Exporter string

const (
	ExporterNone   Exporter = "none"
	ExporterStdout Exporter = "stdout"
	ExporterOTLP   Exporter = "otlp"
)

// TracingConfig selects where service spans go.
type TracingConfig struct {
	Exporter    string `mapstructure:"exporter"`
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
	ServiceName string `mapstructure:"service_name"`
}

// Validate rejects unknown exporters and an otlp exporter without endpoint.
func (c TracingConfig) Validate() error {
	switch Exporter(c.Exporter) {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.Endpoint == "" {
			return errors.New("tracing: otlp exporter requires an endpoint")
		}
	default:
		return fmt.Errorf("tracing: unknown exporter %q", c.Exporter)
	}
	return nil
}

// NewTracerProvider builds the provider for cfg. Exporter none yields a
// no-op provider. The returned shutdown flushes buffered spans and must be
// called once the service stops. stdout spans are written to w.
func NewTracerProvider(ctx context.Context, cfg TracingConfig, w io.Writer) (trace.TracerProvider, func(context.Context) error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch Exporter(cfg.Exporter) {
	case "", ExporterNone:
		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	case ExporterStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(w))
	case ExporterOTLP:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err = otlptracegrpc.New(ctx, opts...)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: %s exporter: %w", cfg.Exporter, err)
	}

	name := cfg.ServiceName
	if name == "" {
		name = tracerName
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
	)
	return provider, provider.Shutdown, nil
}
