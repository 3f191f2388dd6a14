package tracing

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTracer registers a global OTLP trace provider. When OTEL_EXPORTER_OTLP_ENDPOINT
// is unset tracing is disabled and a nil provider is returned.
func InitTracer(l logrus.FieldLogger) func(serviceName string) (*sdktrace.TracerProvider, error) {
	return func(serviceName string) (*sdktrace.TracerProvider, error) {
		endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
		if endpoint == "" {
			l.Warnf("OTEL_EXPORTER_OTLP_ENDPOINT not set. Tracing disabled.")
			return nil, nil
		}

		ctx := context.Background()

		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
		if err != nil {
			return nil, err
		}

		res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
		if err != nil {
			return nil, err
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)

		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.TraceContext{})

		return tp, nil
	}
}

func Teardown(l logrus.FieldLogger) func(tp *sdktrace.TracerProvider) func() {
	return func(tp *sdktrace.TracerProvider) func() {
		return func() {
			if tp == nil {
				return
			}
			if err := tp.Shutdown(context.Background()); err != nil {
				l.WithError(err).Errorf("Unable to shutdown tracer provider.")
			}
		}
	}
}
