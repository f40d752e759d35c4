package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("championship-simulator/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler entry points only. Helpers and
// middleware reuse the request span created by RequestTracing, and requests
// without one (filtered routes such as /healthz) get no span at all.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}
