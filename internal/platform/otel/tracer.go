package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer starts internal spans that all carry the same base attributes.
// It reads the global provider on every Start, so a Tracer built before
// Setup still exports once tracing is on.
type Tracer struct {
	name string
	base []attribute.KeyValue
}

// NewTracer returns a Tracer for the instrumentation scope name.
func NewTracer(name string, base ...attribute.KeyValue) *Tracer {
	return &Tracer{name: name, base: append([]attribute.KeyValue(nil), base...)}
}

// With returns a copy that also stamps attrs.
func (t *Tracer) With(attrs ...attribute.KeyValue) *Tracer {
	base := make([]attribute.KeyValue, 0, len(t.base)+len(attrs))
	base = append(base, t.base...)
	return &Tracer{name: t.name, base: append(base, attrs...)}
}

// Attributes returns the base attributes.
func (t *Tracer) Attributes() []attribute.KeyValue {
	return append([]attribute.KeyValue(nil), t.base...)
}

// Start opens a span named name with the base attributes plus attrs.
func (t *Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := make([]attribute.KeyValue, 0, len(t.base)+len(attrs))
	all = append(all, t.base...)
	all = append(all, attrs...)
	return otel.Tracer(t.name).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(all...),
	)
}

// End marks span failed when err is non-nil, then ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
