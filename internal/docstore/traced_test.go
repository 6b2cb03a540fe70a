package docstore

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
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func attr(attrs []attribute.KeyValue, key string) string {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestWithTracing(t *testing.T) {
	rec := withRecorder(t)
	ctx := context.Background()
	s := WithTracing(NewMemory(), "memory")
	ref := Collection("gyms").Doc("g1")

	require.NoError(t, s.Create(ctx, ref, map[string]any{"id": "g1"}))
	_, err := s.Get(ctx, Collection("gyms").Doc("missing"))
	require.ErrorIs(t, err, ErrNotFound)
	err = s.Create(ctx, ref, map[string]any{"id": "g1"})
	require.ErrorIs(t, err, ErrAlreadyExists)

	spans := rec.Ended()
	require.Len(t, spans, 3)

	assert.Equal(t, "docstore.create", spans[0].Name())
	assert.Equal(t, "memory", attr(spans[0].Attributes(), "db.system"))
	assert.Equal(t, "gyms/g1", attr(spans[0].Attributes(), "docstore.path"))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, "docstore.get", spans[1].Name())
	assert.Equal(t, codes.Unset, spans[1].Status().Code)

	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}
