package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCaptureRequestBody_TruncatesAndKeepsBody(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = provider.Shutdown(t.Context()) }()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = string(body)
		w.WriteHeader(http.StatusOK)
	})

	payload := `{"field":"home","value":"3"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/matches/m1/score", strings.NewReader(payload))
	ctx, span := provider.Tracer("test").Start(req.Context(), "PUT /v1/matches/m1/score")
	CaptureRequestBody(10, next).ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	span.End()

	if seen != payload {
		t.Fatalf("handler received %q", seen)
	}

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected one span, got %d", len(ended))
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if got := attrs["http.request.body"].AsString(); got != payload[:10] {
		t.Fatalf("unexpected captured body: %q", got)
	}
	if !attrs["http.request.body_truncated"].AsBool() {
		t.Fatalf("expected truncation flag")
	}
	if got := attrs["http.request.body_size"].AsInt64(); got != int64(len(payload)) {
		t.Fatalf("unexpected body size: %d", got)
	}
}

func TestCaptureRequestBody_SkipsWithoutRecordingSpan(t *testing.T) {
	t.Parallel()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/rounds/current/simulate", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	CaptureRequestBody(10, next).ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, called=%v status=%d", called, rec.Code)
	}
}

func TestResolveClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := resolveClientIP(req); got != "203.0.113.7" {
		t.Fatalf("unexpected forwarded ip: %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.RemoteAddr = "192.0.2.1:4321"
	if got := resolveClientIP(req); got != "192.0.2.1" {
		t.Fatalf("unexpected remote ip: %q", got)
	}
}
