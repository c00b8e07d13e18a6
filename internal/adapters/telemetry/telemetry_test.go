package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/cwaimg/internal/adapters/telemetry"
	"go.trai.ch/cwaimg/internal/core/ports"
	"go.trai.ch/cwaimg/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
	var _ sdktrace.SpanProcessor = (*telemetry.LogBridge)(nil)
}

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr
}

func TestOTelTracer_StartWithAttributes(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test-tracer")

	_, span := tracer.Start(t.Context(), "task", ports.WithAttribute("category", "satellite"))
	span.SetAttribute("matched", 3)
	span.SetAttribute("bytes", int64(2048))
	span.SetAttribute("other", struct{}{})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "task", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("category", "satellite"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("matched", 3))
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("bytes", 2048))
	assert.Contains(t, spans[0].Attributes(), attribute.String("other", "{}"))
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test-tracer")

	_, span := tracer.Start(t.Context(), "cycle")
	span.RecordError(nil)
	span.RecordError(errors.New("listing unavailable"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "listing unavailable", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test-tracer")

	ctx, span := tracer.Start(t.Context(), "cycle")
	tracer.EmitPlan(ctx, []string{"satellite", "radar-rain"})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.StringSlice("categories", []string{"satellite", "radar-rain"}))
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(t.Context(), "noop")
	assert.Equal(t, t.Context(), ctx)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	tracer.EmitPlan(ctx, []string{"a"})
	span.End()
}

func TestLogBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	logger.EXPECT().
		Debug("span task", "category", "satellite", "duration", gomock.Any()).
		Times(1)
	logger.EXPECT().
		Debug("span cycle", "duration", gomock.Any(), "error", "boom").
		Times(1)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogBridge(logger)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tr := tp.Tracer("test")

	_, task := tr.Start(t.Context(), "task")
	task.SetAttributes(attribute.String("category", "satellite"))
	task.End()

	_, cycle := tr.Start(t.Context(), "cycle")
	cycle.SetStatus(codes.Error, "boom")
	cycle.End()
}

func TestLogBridge_NilLogger(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewLogBridge(nil)))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(t.Context(), "task")
	span.End()
}

func TestSetup(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug("span setup", "duration", gomock.Any()).Times(1)

	shutdown := telemetry.Setup(logger)
	t.Cleanup(func() { otel.SetTracerProvider(sdktrace.NewTracerProvider()) })

	_, span := telemetry.NewOTelTracer("test").Start(t.Context(), "setup")
	span.End()

	require.NoError(t, shutdown(t.Context()))
}
