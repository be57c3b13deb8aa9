package otel_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/closerlook/internal/platform/otel"
)

var inspectService = otel.Service{Name: "inspect", Version: "test"}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv(otel.EnvEndpoint, "")
	t.Setenv(otel.EnvEnabled, "true")

	shutdown, err := otel.Setup(context.Background(), inspectService)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv(otel.EnvEndpoint, "http://localhost:4318")
	t.Setenv(otel.EnvEnabled, "false")

	cfg, err := otel.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Active() {
		t.Fatal("expected tracing to be inactive")
	}
	shutdown, err := otel.Setup(context.Background(), inspectService)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsBadEnv(t *testing.T) {
	tests := map[string]string{
		otel.EnvEnabled:     "maybe",
		otel.EnvSampleRatio: "lots",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := otel.Setup(context.Background(), inspectService); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(otel.EnvEndpoint, "")
	t.Setenv(otel.EnvEnabled, "true")
	t.Setenv(otel.EnvSampleRatio, "1")

	cfg, err := otel.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Enabled || cfg.SampleRatio != 1 || cfg.Active() {
		t.Fatalf("config = %+v, want enabled, full sampling, inactive", cfg)
	}
}

func TestConfigStartValidates(t *testing.T) {
	tests := []struct {
		name string
		cfg  otel.Config
		svc  otel.Service
	}{
		{name: "ratio above one", cfg: otel.Config{Enabled: true, SampleRatio: 1.5}, svc: inspectService},
		{name: "negative ratio", cfg: otel.Config{Enabled: true, SampleRatio: -0.1}, svc: inspectService},
		{name: "missing service", cfg: otel.Config{Enabled: true, SampleRatio: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Start(context.Background(), tt.svc); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestConfigStartCreatesProvider(t *testing.T) {
	// Use a non-routable address so no actual export happens.
	cfg := otel.Config{Endpoint: "http://192.0.2.1:4318", Enabled: true, SampleRatio: 0.5}
	svc := otel.Service{
		Name:       "inspect",
		Version:    "test",
		Attributes: []attribute.KeyValue{attribute.String("closerlook.locale", "en-US")},
	}

	shutdown, err := cfg.Start(context.Background(), svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Shutdown should flush cleanly even though the endpoint is unreachable.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	t.Setenv(otel.EnvEndpoint, "")
	t.Setenv(otel.EnvEnabled, "true")

	shutdown, err := otel.Setup(context.Background(), otel.Service{Name: "noop-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}
