// Package otel owns tracing for closerlook commands: exporter setup from the
// environment and a tracer that stamps session attributes on every span.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/louisbranch/closerlook/internal/platform/config"
)

const (
	// EnvEndpoint names the OTLP/HTTP collector URL.
	EnvEndpoint = "CLOSERLOOK_OTEL_ENDPOINT"
	// EnvEnabled disables tracing when false.
	EnvEnabled = "CLOSERLOOK_OTEL_ENABLED"
	// EnvSampleRatio is the fraction of root spans kept, from 0 to 1.
	EnvSampleRatio = "CLOSERLOOK_OTEL_SAMPLE_RATIO"
)

// Config controls trace export. Nothing is exported until Endpoint is set.
type Config struct {
	Endpoint    string  `env:"CLOSERLOOK_OTEL_ENDPOINT"`
	Enabled     bool    `env:"CLOSERLOOK_OTEL_ENABLED" envDefault:"true"`
	SampleRatio float64 `env:"CLOSERLOOK_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Service describes the traced process on its resource.
type Service struct {
	Name       string
	Version    string
	Attributes []attribute.KeyValue
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Active reports whether spans will be exported.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}

// Validate checks the sample ratio.
func (c Config) Validate() error {
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %v", EnvSampleRatio, c.SampleRatio)
	}
	return nil
}

// Setup loads Config from the environment and starts tracing for svc.
//
// Tracing is opt-in: when CLOSERLOOK_OTEL_ENDPOINT is empty or
// CLOSERLOOK_OTEL_ENABLED is false, the returned shutdown is a no-op and no
// global provider is registered.
func Setup(ctx context.Context, svc Service) (shutdown func(context.Context) error, err error) {
	cfg, err := LoadConfig()
	if err != nil {
		return noopShutdown, err
	}
	return cfg.Start(ctx, svc)
}

// Start registers a global tracer provider exporting to c.Endpoint. The
// returned shutdown flushes pending spans and should be deferred.
func (c Config) Start(ctx context.Context, svc Service) (shutdown func(context.Context) error, err error) {
	if err := c.Validate(); err != nil {
		return noopShutdown, err
	}
	if svc.Name == "" {
		return noopShutdown, fmt.Errorf("service name is required")
	}
	if !c.Active() {
		return noopShutdown, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(svc.resourceAttributes()...))
	if err != nil {
		return noopShutdown, err
	}
	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(c.Endpoint),
	)
	if err != nil {
		return noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(c.sampler()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func (c Config) sampler() sdktrace.Sampler {
	if c.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio))
}

func (s Service) resourceAttributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{semconv.ServiceName(s.Name)}
	if s.Version != "" {
		attrs = append(attrs, semconv.ServiceVersion(s.Version))
	}
	return append(attrs, s.Attributes...)
}

func noopShutdown(context.Context) error { return nil }
