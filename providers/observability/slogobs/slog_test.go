package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leofalp/schemafix/providers/observability"
)

func newTestObserver(level slog.Level) (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(WithOutput(&buf), WithLevel(level), WithFormat(FormatCompact)), &buf
}

func TestObserver_Logging(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelDebug)
	ctx := context.Background()

	obs.Trace(ctx, "trace hidden")
	obs.Debug(ctx, "debug line", observability.String(observability.AttrSource, "a.json"))
	obs.Info(ctx, "info line")
	obs.Warn(ctx, "warn line")
	obs.Error(ctx, "error line", observability.Error(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "trace hidden")
	assert.Contains(t, out, `DEBUG debug line → {"source":"a.json"}`)
	assert.Contains(t, out, "INFO info line")
	assert.Contains(t, out, "WARN warn line")
	assert.Contains(t, out, `{"error":"boom"}`)
}

func TestObserver_SpanLifecycle(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelDebug)

	ctx, span := obs.StartSpan(context.Background(), observability.SpanAutofix,
		observability.Int(observability.AttrInputBytes, 12))
	assert.Same(t, span, observability.SpanFromContext(ctx))

	span.AddEvent("pass", observability.String(observability.AttrPass, "comments"))
	span.SetAttributes(observability.Bool(observability.AttrValid, true))
	span.SetStatus(observability.StatusOK, "")
	span.RecordError(nil)
	span.End()

	out := buf.String()
	assert.Contains(t, out, "Span started")
	assert.Contains(t, out, "Span event")
	assert.Contains(t, out, "Span ended")
	assert.Contains(t, out, `"status":"ok"`)
	assert.NotContains(t, out, "Span error")
}

func TestObserver_SpanRecordError(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelError)

	_, span := obs.StartSpan(context.Background(), "x")
	span.RecordError(errors.New("bad input"))
	span.End()

	out := buf.String()
	assert.Contains(t, out, "Span error")
	assert.Contains(t, out, "bad input")
	assert.NotContains(t, out, "Span ended")
}

func TestObserver_Counters(t *testing.T) {
	obs, _ := newTestObserver(slog.LevelInfo)
	ctx := context.Background()

	c := obs.Counter(observability.MetricPassesApplied)
	c.Add(ctx, 2)
	obs.Counter(observability.MetricPassesApplied).Add(ctx, 3)

	assert.Same(t, c, obs.Counter(observability.MetricPassesApplied))
	assert.EqualValues(t, 5, obs.CounterValue(observability.MetricPassesApplied))
	assert.Zero(t, obs.CounterValue("never.used"))
}

func TestObserver_Histogram(t *testing.T) {
	obs, buf := newTestObserver(slog.LevelDebug)

	h := obs.Histogram(observability.MetricFixDuration)
	assert.Same(t, h, obs.Histogram(observability.MetricFixDuration))
	h.Record(context.Background(), 1.5)

	assert.Contains(t, buf.String(), `"metric":"autofix.duration_ms"`)
}

func TestObserver_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	obs := New(WithLogger(logger))

	assert.Same(t, logger, obs.Logger())
	obs.Info(context.Background(), "via text handler")
	assert.Contains(t, buf.String(), "msg=\"via text handler\"")
}
