package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q): got=%s want=%s", raw, got, want)
		}
	}
}

func TestLogger_InfoContextAddsTraceFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newJSON(LevelInfo, zapcore.AddSync(&buf)).Named("usecase")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "round simulated", "round", 5, "error", errors.New("none"))
	logger.Debug("dropped below level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := sonic.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "round simulated" || entry["logger"] != "usecase" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["trace_id"] != traceID.String() || entry["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %v", entry)
	}
	if entry["round"] != float64(5) || entry["error"] != "none" {
		t.Fatalf("unexpected fields: %v", entry)
	}
}

func TestLogger_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("nobody listens")
	if logger.With("k", "v") == nil || logger.Named("x") == nil {
		t.Fatalf("nil logger must hand out a usable logger")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync on nil logger: %v", err)
	}
}

func TestLogger_ZapSugarSharesSinkAndName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newJSON(LevelInfo, zapcore.AddSync(&buf))
	logger.Zap().Named("pyroscope").Sugar().Infof("upload %d profiles", 3)

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "upload 3 profiles" || entry["logger"] != "pyroscope" {
		t.Fatalf("unexpected entry: %v", entry)
	}

	var nilLogger *Logger
	if nilLogger.Zap() == nil {
		t.Fatalf("nil logger must hand out a no-op zap logger")
	}
}
